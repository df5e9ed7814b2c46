package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aglyzov/go-qptrie/qptrie"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	formatText = "text"
	formatJSON = "json"

	maxLineSize = 1 << 20
)

var (
	cfgFile            string
	logLevel           string
	envPrefix          = "QPTRIE"
	defaultCfgFileName = ".qptrie"
	opts               options
)

type options struct {
	Input  string
	Prefix []string
	Remove []string
	Stats  bool
	Verify bool
	Dump   bool
	Format string
}

type match struct {
	Prefix string `json:"prefix"`
	Key    string `json:"key"`
	Line   int    `json:"line"`
}

type report struct {
	Matches []match       `json:"matches"`
	Stats   *qptrie.Stats `json:"stats,omitempty"`
}

// rootCmd represents the root command
var rootCmd = &cobra.Command{
	Use:   "qptrie",
	Short: "Load keys (one per line) into a QP-Trie and list them by prefix",
	Long: `Every input line is a key, the empty one included, and its value is the line number.
Keys are listed in trie order: a key comes before its extensions and the low nibble
of a byte is compared before the high one.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(&opts, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

// initConfig use config file and ENV variables if set.
func initConfig() {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatal(err)
		}
		// Search config in home directory with name ".qptrie" (without extension).
		v.AddConfigPath(home)
		v.SetConfigName(defaultCfgFileName)
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	readErr := v.ReadInConfig()

	bindFlags(rootCmd, v)

	initLogger()

	if readErr == nil {
		log.Infof("using config file: %s", v.ConfigFileUsed())
	}
}

func initLogger() {
	ll, err := log.ParseLevel(logLevel)
	if err != nil {
		ll = log.ErrorLevel
	}
	log.SetLevel(ll)
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{DisableColors: false, FullTimestamp: true})
}

// bindFlags applies viper values (config file, QPTRIE_* env) to the flags not set on
// the command line.
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
		_ = v.BindEnv(f.Name, fmt.Sprintf("%s_%s", envPrefix, envVarSuffix))

		if f.Changed || !v.IsSet(f.Name) {
			return
		}

		if slice, ok := f.Value.(pflag.SliceValue); ok {
			if err := slice.Replace(v.GetStringSlice(f.Name)); err != nil {
				log.Fatalf("can't set flag %s to %v: %s", f.Name, v.Get(f.Name), err)
			}
			return
		}

		if err := cmd.Flags().Set(f.Name, v.GetString(f.Name)); err != nil {
			log.Fatalf("can't set flag %s to %v: %s", f.Name, v.Get(f.Name), err)
		}
	})
}

func initFlags() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", fmt.Sprintf("config file (default is $HOME/%s.yaml)", defaultCfgFileName))
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "error", "Log level: trace, debug, info, warning, error")

	rootCmd.Flags().StringVarP(&opts.Input, "input", "i", "-", "file to read keys from, - for stdin")
	rootCmd.Flags().StringSliceVarP(&opts.Prefix, "prefix", "p", nil, "list the keys with the prefix (all keys when none is given)")
	rootCmd.Flags().StringSliceVarP(&opts.Remove, "remove", "r", nil, "remove the keys after loading")
	rootCmd.Flags().BoolVar(&opts.Stats, "stats", false, "print the trie shape statistics")
	rootCmd.Flags().BoolVar(&opts.Verify, "verify", false, "check the trie structure after loading and removing")
	rootCmd.Flags().BoolVar(&opts.Dump, "dump", false, "print the trie tree (text format only)")
	rootCmd.Flags().StringVarP(&opts.Format, "format", "f", formatText, "output format: text, json")
}

func main() {
	initFlags()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(opts *options, in io.Reader, out io.Writer) error {
	switch opts.Format {
	case formatText:
	case formatJSON:
		if opts.Dump {
			return errors.New("--dump requires the text format")
		}
	default:
		return errors.Errorf("unknown format %q", opts.Format)
	}

	if opts.Input != "" && opts.Input != "-" {
		file, err := os.Open(opts.Input)
		if err != nil {
			return errors.Wrap(err, "failed to open input")
		}
		defer file.Close()

		in = file
	}

	qp := qptrie.New[int](qptrie.WithLogger(log.WithField("component", "qptrie")))

	if err := load(qp, in); err != nil {
		return err
	}

	for _, key := range opts.Remove {
		if !qp.Remove(key) {
			log.Warnf("key %q is not found", key)
		}
	}

	if opts.Verify {
		if err := qp.Verify(); err != nil {
			return errors.Wrap(err, "trie verification failed")
		}
		log.Info("trie verified")
	}

	rep := report{Matches: []match{}}

	prefixes := opts.Prefix
	if len(prefixes) == 0 {
		prefixes = []string{""}
	}

	for _, prefix := range prefixes {
		for it := qp.Prefix(prefix); it.Valid(); it.Next() {
			rep.Matches = append(rep.Matches, match{Prefix: prefix, Key: it.Key(), Line: it.Value()})
		}
	}

	if opts.Stats {
		stats := qp.Stats()
		rep.Stats = &stats
	}

	if opts.Format == formatJSON {
		return writeJSON(out, &rep)
	}

	if opts.Dump {
		if err := qp.Dump(out); err != nil {
			return errors.Wrap(err, "failed to dump the trie")
		}
	}

	return writeText(out, prefixes, &rep)
}

func load(qp *qptrie.Trie[int], in io.Reader) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(nil, maxLineSize)

	for line := 1; scanner.Scan(); line++ {
		key := scanner.Text()

		added, err := qp.Insert(key, line)
		if err != nil {
			return errors.Wrapf(err, "line %d", line)
		}

		if !added {
			log.Debugf("line %d: duplicate key %q is skipped", line, key)
		}
	}

	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "failed to read input")
	}

	log.Infof("loaded %d keys", qp.Len())

	return nil
}

func writeText(out io.Writer, prefixes []string, rep *report) error {
	w := bufio.NewWriter(out)

	for _, prefix := range prefixes {
		var found []match

		for _, m := range rep.Matches {
			if m.Prefix == prefix {
				found = append(found, m)
			}
		}

		fmt.Fprintf(w, "prefix %q: %d keys\n", prefix, len(found))

		for _, m := range found {
			fmt.Fprintf(w, "  %d\t%s\n", m.Line, m.Key)
		}
	}

	if st := rep.Stats; st != nil {
		fmt.Fprintf(w, "leaves=%d fans=%d twigs=%d capacity=%d ends=%d depth=%d\n",
			st.Leaves, st.Fans, st.Twigs, st.Capacity, st.Ends, st.Depth)
	}

	return w.Flush()
}

func writeJSON(out io.Writer, rep *report) error {
	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(out)
	enc.SetIndent("", "  ")

	return errors.Wrap(enc.Encode(rep), "failed to encode the report")
}
