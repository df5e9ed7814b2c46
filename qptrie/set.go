package qptrie

import (
	"iter"
)

// Set is a QP-Trie storing keys only.
//
// The zero value is an empty set ready to use.
type Set struct {
	trie Trie[struct{}]
}

// NewSet returns a new empty Set.
func NewSet(opts ...Option) *Set {
	set := &Set{}
	set.trie.configure(opts...)

	return set
}

// Len returns the number of keys in the set.
func (set *Set) Len() int { return set.trie.Len() }

// Empty reports whether the set has no keys.
func (set *Set) Empty() bool { return set.trie.Empty() }

// Insert adds the key unless it is already present. Returns true if the key was added.
func (set *Set) Insert(key string) (bool, error) {
	return set.trie.Insert(key, struct{}{})
}

func (set *Set) Contains(key string) bool { return set.trie.Contains(key) }

func (set *Set) ContainsPrefix(prefix string) bool { return set.trie.ContainsPrefix(prefix) }

// Remove deletes the key. Returns true if the key was present.
func (set *Set) Remove(key string) bool { return set.trie.Remove(key) }

func (set *Set) Find(key string) *Iterator[struct{}] { return set.trie.Find(key) }

func (set *Set) Prefix(prefix string) *Iterator[struct{}] { return set.trie.Prefix(prefix) }

func (set *Set) Begin() *Iterator[struct{}] { return set.trie.Begin() }

func (set *Set) End() *Iterator[struct{}] { return set.trie.End() }

func (set *Set) CBegin() *ConstIterator[struct{}] { return set.trie.CBegin() }

func (set *Set) CEnd() *ConstIterator[struct{}] { return set.trie.CEnd() }

// Walk calls the handler for all keys with a given prefix in nibble order.
// It returns whether all prefixed keys were visited.
func (set *Set) Walk(prefix string, handler func(key string) bool) bool {
	return set.trie.Walk(prefix, func(key string, _ struct{}) bool {
		return handler(key)
	})
}

// Keys returns a sequence of all the keys in nibble order.
func (set *Set) Keys() iter.Seq[string] { return set.trie.Keys() }

// Verify checks the structural invariants of the set.
func (set *Set) Verify() error { return set.trie.Verify() }

// Stats returns shape statistics of the set.
func (set *Set) Stats() Stats { return set.trie.Stats() }
