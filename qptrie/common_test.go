package qptrie

import (
	"fmt"
	"slices"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
)

// stringToNibbles renders the nibbles of a string in index order,
// e.g. "ab" -> "1_6_2_6".
func stringToNibbles(str string) string {
	var buf strings.Builder

	for idx := uint64(0); idx < uint64(len(str))<<1; idx++ {
		if idx != 0 {
			buf.WriteByte('_')
		}
		buf.WriteString(fmt.Sprintf("%X", nibAt(str, idx)))
	}

	return buf.String()
}

// collect drains an iterator into a slice of keys.
func collect[V any](it *Iterator[V]) []string {
	var keys []string

	for ; it.Valid(); it.Next() {
		keys = append(keys, it.Key())
	}

	return keys
}

// nibbleSorted returns a sorted copy of the keys in the trie iteration order.
func nibbleSorted(keys []string) []string {
	sorted := slices.Clone(keys)
	slices.SortFunc(sorted, Compare)

	return sorted
}

// withPrefix returns the keys starting with the prefix in the trie iteration order.
func withPrefix(keys []string, prefix string) []string {
	var res []string

	for _, key := range keys {
		if strings.HasPrefix(key, prefix) {
			res = append(res, key)
		}
	}

	return nibbleSorted(res)
}

// fakeKeys returns unique keys mixing sentences, paths and binary strings.
func fakeKeys(fake *gofakeit.Faker, total int) []string {
	var (
		seen = make(map[string]struct{}, total)
		keys = make([]string, 0, total)
	)

	for len(keys) < total {
		var key string

		switch fake.Number(0, 3) {
		case 0:
			key = fake.HipsterSentence(3)
		case 1:
			key = fake.Word() + "/" + fake.Word()
		case 2:
			key = fake.Word()
		default:
			buf := make([]byte, fake.Number(0, 6))
			for i := range buf {
				buf[i] = byte(fake.Number(0, 255))
			}
			key = string(buf)
		}

		if _, ok := seen[key]; ok {
			continue
		}

		seen[key] = struct{}{}
		keys = append(keys, key)
	}

	return keys
}
