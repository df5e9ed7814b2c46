package qptrie

import (
	"strings"
)

// KV represents a key-value pair stored in a leaf.
type KV[V any] struct {
	Key string
	Val V
}

func newLeaf[V any](key string, val V) Twig[V] {
	return Twig[V]{leaf: &KV[V]{Key: key, Val: val}}
}

// mismatch returns the index of the first nibble the leaf key differs from the given
// one at. Returns false if the keys are equal.
func (kv *KV[V]) mismatch(key string) (uint64, bool) {
	return mismatch(kv.Key, key)
}

func (kv *KV[V]) hasPrefix(prefix string) bool {
	return strings.HasPrefix(kv.Key, prefix)
}
