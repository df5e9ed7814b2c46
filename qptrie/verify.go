package qptrie

import (
	"fmt"
	"io"
	"math/bits"
	"strings"

	"github.com/pkg/errors"
)

// Stats describes the shape of a trie.
type Stats struct {
	Leaves   int `json:"leaves"`   // number of keys
	Fans     int `json:"fans"`     // number of fan-nodes
	Twigs    int `json:"twigs"`    // number of twigs held by fan-nodes
	Capacity int `json:"capacity"` // number of twigs allocated by fan-nodes
	Ends     int `json:"ends"`     // number of terminal twigs
	Depth    int `json:"depth"`    // the largest number of fan-nodes above a leaf
}

// step is a fan-node on a path from the root: the nibble index and the nibble taken.
type step struct {
	idx uint64
	nib byte
}

// Verify walks the whole trie and checks its structural invariants:
//
//   - every fan-node has count == popcount(bitmap) and 2 <= count <= capacity <= 17;
//   - fan-nodes test strictly increasing nibble indexes from the root down;
//   - every leaf sits under the twigs its key nibbles select;
//   - the number of leaves equals Len().
func (qp *Trie[V]) Verify() error {
	if qp.root == nil {
		if qp.size != 0 {
			return errors.Errorf("empty trie reports %d keys", qp.size)
		}

		return nil
	}

	leaves, err := verifyTwig(qp.root, nil)
	if err != nil {
		return err
	}

	if leaves != qp.size {
		return errors.Errorf("trie has %d leaves but reports %d keys", leaves, qp.size)
	}

	return nil
}

func verifyTwig[V any](twig *Twig[V], path []step) (int, error) {
	switch {
	case twig.leaf != nil && twig.fan != nil:
		return 0, errors.Errorf("twig %v is both a leaf and a fan-node", twig)

	case twig.leaf != nil:
		for _, st := range path {
			if nib := nibAt(twig.leaf.Key, st.idx); nib != st.nib {
				return 0, errors.Errorf("leaf %q has nibble %d at %d but sits under %d",
					twig.leaf.Key, nib, st.idx, st.nib)
			}
		}

		return 1, nil

	case twig.fan == nil:
		return 0, errors.New("empty twig")
	}

	var (
		node  = twig.fan
		idx   = node.index()
		total = node.count()
		size  = node.capacity()
	)

	if len(path) > 0 && path[len(path)-1].idx >= idx {
		return 0, errors.Errorf("fan-node %d is below fan-node %d", idx, path[len(path)-1].idx)
	}

	if num := bits.OnesCount64(node.bitmap()); num != total {
		return 0, errors.Errorf("fan-node %d has %d twigs but %d bits", idx, total, num)
	}

	if total < 2 || total > size || size > twigsMax || size != len(node.twigs) {
		return 0, errors.Errorf("fan-node %d has %d twigs of %d (array %d)", idx, total, size, len(node.twigs))
	}

	var leaves int

	for nib := byte(0); nib <= nibEnd; nib++ {
		if !node.has(nib) {
			continue
		}

		num, err := verifyTwig(&node.twigs[node.slot(nib)], append(path, step{idx, nib}))
		if err != nil {
			return 0, err
		}

		leaves += num
	}

	for i := total; i < size; i++ {
		if node.twigs[i].leaf != nil || node.twigs[i].fan != nil {
			return 0, errors.Errorf("fan-node %d holds a twig in unused slot %d", idx, i)
		}
	}

	return leaves, nil
}

// Stats returns shape statistics of the trie.
func (qp *Trie[V]) Stats() Stats {
	var stats Stats

	if qp.root != nil {
		collectStats(qp.root, 0, &stats)
	}

	return stats
}

func collectStats[V any](twig *Twig[V], depth int, stats *Stats) {
	if twig.IsLeaf() {
		stats.Leaves++
		stats.Depth = max(stats.Depth, depth)

		return
	}

	node := twig.fan

	stats.Fans++
	stats.Twigs += node.count()
	stats.Capacity += node.capacity()

	if node.hasEnd() {
		stats.Ends++
	}

	for i := 0; i < node.count(); i++ {
		collectStats(&node.twigs[i], depth+1, stats)
	}
}

// Dump writes a human readable tree of the trie.
func (qp *Trie[V]) Dump(w io.Writer) error {
	if qp.root == nil {
		_, err := fmt.Fprintln(w, "<qptrie|Empty>")
		return err
	}

	return dumpTwig(w, qp.root, "T:", "")
}

func dumpTwig[V any](w io.Writer, twig *Twig[V], tag, indent string) error {
	if twig.IsLeaf() {
		_, err := fmt.Fprintf(w, "%s%s %v val=%v\n", indent, tag, twig, twig.leaf.Val)
		return err
	}

	if _, err := fmt.Fprintf(w, "%s%s %v\n", indent, tag, twig); err != nil {
		return err
	}

	node := twig.fan

	for nib := byte(0); nib <= nibEnd; nib++ {
		if !node.has(nib) {
			continue
		}

		sub := fmt.Sprintf("%X:", nib)
		if nib == nibEnd {
			sub = "$:"
		}

		if err := dumpTwig(w, &node.twigs[node.slot(nib)], sub, indent+strings.Repeat(" ", 2)); err != nil {
			return err
		}
	}

	return nil
}
