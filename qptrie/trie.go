package qptrie

import (
	"iter"

	"github.com/sirupsen/logrus"
)

// Trie is a QP-Trie associating byte string keys with values of type V.
//
// The zero value is an empty trie ready to use.
type Trie[V any] struct {
	root *Twig[V] // nil when the trie is empty
	size int
	log  *logrus.Entry
}

// Option configures a Trie or a Set.
type Option func(*options)

type options struct {
	log *logrus.Entry
}

// WithLogger makes the trie report structural changes (burst, splice, fuse, ...) at
// the trace level.
func WithLogger(log *logrus.Entry) Option {
	return func(opts *options) {
		opts.log = log
	}
}

// New returns a new empty Trie.
func New[V any](opts ...Option) *Trie[V] {
	qp := &Trie[V]{}
	qp.configure(opts...)

	return qp
}

func (qp *Trie[V]) configure(opts ...Option) {
	var cfg options

	for _, opt := range opts {
		opt(&cfg)
	}

	qp.log = cfg.log
}

// Len returns the number of keys in the trie.
func (qp *Trie[V]) Len() int {
	return qp.size
}

// Empty reports whether the trie has no keys.
func (qp *Trie[V]) Empty() bool {
	return qp.root == nil
}

// Insert adds a key-value pair unless the key is already present, in which case the
// trie is left untouched.
//
// Returns true if the pair was added. Keys larger than MaxKeySize are rejected with
// ErrKeyTooLong.
func (qp *Trie[V]) Insert(key string, val V) (bool, error) {
	if err := checkKeySize(len(key)); err != nil {
		return false, err
	}

	kv := &KV[V]{Key: key, Val: val}

	if qp.root == nil {
		qp.root = &Twig[V]{leaf: kv}
		qp.size++
		qp.trace(eventRoot, key)

		return true, nil
	}

	ev := qp.root.insert(kv)
	if ev == eventNone {
		return false, nil // duplicate
	}

	qp.size++
	qp.trace(ev, key)

	return true, nil
}

// Get returns a value associated with the given key.
func (qp *Trie[V]) Get(key string) (V, bool) {
	if qp.root != nil {
		if leaf := qp.root.find(key); leaf != nil {
			return leaf.leaf.Val, true
		}
	}

	var zero V

	return zero, false
}

// Find returns an iterator positioned at the key or an invalid one if the key is
// absent. The iterator yields that single key only.
func (qp *Trie[V]) Find(key string) *Iterator[V] {
	if qp.root == nil {
		return &Iterator[V]{}
	}

	return newIterator(qp.root.find(key))
}

// Contains reports whether the key is present.
func (qp *Trie[V]) Contains(key string) bool {
	return qp.root != nil && qp.root.find(key) != nil
}

// ContainsPrefix reports whether any key starts with the prefix.
func (qp *Trie[V]) ContainsPrefix(prefix string) bool {
	return qp.root != nil && qp.root.containsPrefix(prefix)
}

// Prefix returns an iterator over all the keys starting with the prefix.
func (qp *Trie[V]) Prefix(prefix string) *Iterator[V] {
	if qp.root == nil {
		return &Iterator[V]{}
	}

	return newIterator(qp.root.prefix(prefix))
}

// Remove deletes the key. Returns true if the key was present.
func (qp *Trie[V]) Remove(key string) bool {
	if qp.root == nil {
		return false
	}

	var ev event

	if qp.root.IsLeaf() {
		if qp.root.leaf.Key != key {
			return false
		}

		qp.root = nil
		ev = eventRoot
	} else if ev = qp.root.remove(key); ev == eventNone {
		return false
	}

	qp.size--
	qp.trace(ev, key)

	return true
}

// Begin returns an iterator over all the keys in nibble order (see Compare).
func (qp *Trie[V]) Begin() *Iterator[V] {
	return newIterator(qp.root)
}

// End returns an exhausted iterator.
func (qp *Trie[V]) End() *Iterator[V] {
	return &Iterator[V]{}
}

// CBegin is like Begin but the iterator does not allow to modify values.
func (qp *Trie[V]) CBegin() *ConstIterator[V] {
	return &ConstIterator[V]{it: *qp.Begin()}
}

// CEnd is like End but returns a ConstIterator.
func (qp *Trie[V]) CEnd() *ConstIterator[V] {
	return &ConstIterator[V]{}
}

// Walk calls the handler for all keys with a given prefix.
// It returns whether all prefixed keys were visited.
// The handler can continue the process by returning true or abort with false.
func (qp *Trie[V]) Walk(prefix string, handler func(key string, val V) bool) bool {
	for it := qp.Prefix(prefix); it.Valid(); it.Next() {
		if !handler(it.Key(), it.Value()) {
			return false
		}
	}

	return true
}

// All returns a sequence of all the key-value pairs in nibble order.
func (qp *Trie[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		qp.Walk("", yield)
	}
}

// Keys returns a sequence of all the keys in nibble order.
func (qp *Trie[V]) Keys() iter.Seq[string] {
	return func(yield func(string) bool) {
		qp.Walk("", func(key string, _ V) bool {
			return yield(key)
		})
	}
}

func (qp *Trie[V]) trace(ev event, key string) {
	if qp.log == nil || !qp.log.Logger.IsLevelEnabled(logrus.TraceLevel) {
		return
	}

	qp.log.WithFields(logrus.Fields{
		"event": ev.String(),
		"key":   key,
		"size":  qp.size,
	}).Trace("qptrie: structure changed")
}
