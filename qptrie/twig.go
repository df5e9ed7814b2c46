package qptrie

import (
	"fmt"
	"strconv"
	"strings"
)

// Twig is a uniform element of a QP-Trie (meaning either a fan-node or a leaf).
//
// Exactly one of the fields is set. A leaf turns into a fan-node once ("burst") when
// another key collides with it; a fan-node collapses into its last remaining twig
// ("fusion") when a key is removed from it.
type Twig[V any] struct {
	leaf *KV[V]
	fan  *fan[V]
}

// event describes the structural change a mutation caused.
type event uint8

const (
	eventNone   event = iota // nothing changed (duplicate or absent key)
	eventRoot                // the root leaf was created or dropped
	eventAdd                 // a twig was added to an existing fan-node
	eventGrow                // same as eventAdd but the twigs array was reallocated
	eventBurst               // a leaf was replaced with a fan-node
	eventSplice              // a fan-node was inserted above an existing one
	eventRemove              // a twig was removed from a fan-node
	eventFuse                // a fan-node was replaced with its last twig
)

var eventNames = [...]string{
	eventNone:   "none",
	eventRoot:   "root",
	eventAdd:    "add",
	eventGrow:   "grow",
	eventBurst:  "burst",
	eventSplice: "splice",
	eventRemove: "remove",
	eventFuse:   "fuse",
}

func (ev event) String() string {
	if int(ev) < len(eventNames) {
		return eventNames[ev]
	}

	return "event(" + strconv.Itoa(int(ev)) + ")"
}

func (twig *Twig[V]) IsLeaf() bool {
	return twig.fan == nil
}

func (twig *Twig[V]) IsFan() bool {
	return twig.fan != nil
}

func (twig *Twig[V]) String() string {
	var b strings.Builder

	b.WriteString("<qptrie|")

	switch {
	case twig.leaf != nil:
		b.WriteString("Leaf")
		b.WriteString(fmt.Sprintf("|%#v", twig.leaf.Key))
	case twig.fan != nil:
		node := twig.fan
		b.WriteString("Fan")
		b.WriteString("|idx:" + strconv.FormatUint(node.index(), 10))
		b.WriteString(fmt.Sprintf("|bmp:%017b", node.bitmap()))
		b.WriteString("|" + strconv.Itoa(node.count()) + "/" + strconv.Itoa(node.capacity()))
	default:
		b.WriteString("Empty")
	}

	b.WriteByte('>')

	return b.String()
}

// findSimilar descends to a leaf following the key nibbles where possible and any
// other twig otherwise.
//
// The leaf it reaches is the one the key would be attached to, so the key is only
// present in the trie if it is equal to the leaf key.
func (twig *Twig[V]) findSimilar(key string) *Twig[V] {
	cur := twig

	for cur.fan != nil {
		node := cur.fan

		switch nib := node.nibble(key); {
		case node.has(nib):
			cur = &node.twigs[node.slot(nib)]
		case node.hasEnd():
			cur = &node.twigs[node.count()-1]
		default:
			cur = &node.twigs[0]
		}
	}

	return cur
}

// find returns the leaf twig holding the key or nil.
func (twig *Twig[V]) find(key string) *Twig[V] {
	if similar := twig.findSimilar(key); similar.leaf.Key == key {
		return similar
	}

	return nil
}

func (twig *Twig[V]) containsPrefix(prefix string) bool {
	return twig.findSimilar(prefix).leaf.hasPrefix(prefix)
}

// insert adds a leaf unless the key is already present.
func (twig *Twig[V]) insert(kv *KV[V]) event {
	similar := twig.findSimilar(kv.Key).leaf

	idx, ok := similar.mismatch(kv.Key)
	if !ok {
		return eventNone // already present
	}

	// walk along the common prefix down to the mismatch index
	cur := twig

	for cur.fan != nil {
		node := cur.fan

		switch nodeIdx := node.index(); {
		case nodeIdx < idx:
			// the keys agree at nodeIdx hence the nibble is there
			cur = node.twig(node.nibble(kv.Key))

		case nodeIdx == idx:
			if node.insert(Twig[V]{leaf: kv}, node.nibble(kv.Key)) {
				return eventGrow
			}

			return eventAdd

		default:
			// no fan-node tests idx - splice a new one above the current one
			cur.split(idx, kv, similar)

			return eventSplice
		}
	}

	// the walk stopped at the similar leaf itself
	cur.split(idx, kv, similar)

	return eventBurst
}

// split replaces the twig with a fan-node testing the nibble at idx that holds both
// the new leaf and the previous content of the twig.
//
// similar is any leaf of the twig, all of them share the nibble at idx.
func (twig *Twig[V]) split(idx uint64, kv *KV[V], similar *KV[V]) {
	node := newFan(idx, Twig[V]{leaf: kv}, nibAt(kv.Key, idx))

	node.insert(*twig, nibAt(similar.Key, idx))

	*twig = Twig[V]{fan: node}
}

// remove deletes the key from a fan-node twig following exact nibbles only.
func (twig *Twig[V]) remove(key string) event {
	var (
		cur    = twig
		parent *fan[V]
		pnib   byte
		holder *Twig[V] // the twig holding the parent fan-node
	)

	for cur.fan != nil {
		node := cur.fan
		nib := node.nibble(key)

		if !node.has(nib) {
			return eventNone // not found
		}

		holder, parent, pnib = cur, node, nib
		cur = &node.twigs[node.slot(nib)]
	}

	if cur.leaf.Key != key {
		return eventNone // not found
	}

	if parent.count() > 2 {
		parent.remove(pnib)

		return eventRemove
	}

	// the fan-node would be left with one twig - fuse it away
	*holder = *parent.sibling(pnib)

	return eventFuse
}

// prefix returns the topmost twig whose leaves are exactly the ones having the prefix
// or nil if there are none.
func (twig *Twig[V]) prefix(prefix string) *Twig[V] {
	if !twig.containsPrefix(prefix) {
		return nil
	}

	var (
		cur   = twig
		bound = uint64(len(prefix)) << 1
	)

	for cur.fan != nil && cur.fan.index() < bound {
		// the similar leaf followed the prefix nibbles down here
		cur = cur.fan.twig(cur.fan.nibble(prefix))
	}

	return cur
}
