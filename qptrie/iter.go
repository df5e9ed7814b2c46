package qptrie

// Iterator walks leaves of a trie (or of its subtree) depth-first in nibble order.
//
// An iterator is invalidated by any Insert or Remove performed on the trie after it
// was created; using it afterwards is undefined.
//
//	for it := qp.Begin(); it.Valid(); it.Next() {
//		fmt.Println(it.Key(), it.Value())
//	}
type Iterator[V any] struct {
	stack []*Twig[V] // twigs to visit, the current leaf on top
}

func newIterator[V any](root *Twig[V]) *Iterator[V] {
	it := &Iterator[V]{}

	if root == nil {
		return it
	}

	it.stack = append(it.stack, root)

	if root.IsFan() {
		it.advance()
	}

	return it
}

// Valid reports whether the iterator points at a leaf.
func (it *Iterator[V]) Valid() bool { return len(it.stack) > 0 }

// Key returns the key of the current leaf. The iterator must be valid.
func (it *Iterator[V]) Key() string { return it.top().leaf.Key }

// Value returns the value of the current leaf. The iterator must be valid.
func (it *Iterator[V]) Value() V { return it.top().leaf.Val }

// SetValue replaces the value of the current leaf. The iterator must be valid.
func (it *Iterator[V]) SetValue(val V) { it.top().leaf.Val = val }

// Next moves the iterator to the next leaf.
func (it *Iterator[V]) Next() {
	it.advance()
}

// Equal reports whether both iterators are exhausted or point at the same leaf.
func (it *Iterator[V]) Equal(other *Iterator[V]) bool {
	if !it.Valid() || !other.Valid() {
		return it.Valid() == other.Valid()
	}

	return it.top() == other.top()
}

func (it *Iterator[V]) top() *Twig[V] {
	return it.stack[len(it.stack)-1]
}

// advance pops the current leaf and expands fan-nodes until a leaf is on top.
func (it *Iterator[V]) advance() {
	if len(it.stack) == 0 {
		return
	}

	if it.top().IsLeaf() {
		it.stack = it.stack[:len(it.stack)-1]
	}

	for len(it.stack) > 0 {
		twig := it.top()
		if twig.IsLeaf() {
			return
		}

		it.stack = it.stack[:len(it.stack)-1]

		var (
			node = twig.fan
			last = node.count() - 1
		)

		assertf(last >= 1, "fan-node %d has %d twigs", node.index(), last+1)

		if node.hasEnd() {
			last-- // the terminal twig goes on top
		}

		for i := last; i >= 0; i-- {
			it.stack = append(it.stack, &node.twigs[i])
		}

		if node.hasEnd() {
			it.stack = append(it.stack, node.end())
		}
	}
}

// ConstIterator is an Iterator which does not allow to modify values.
type ConstIterator[V any] struct {
	it Iterator[V]
}

func (c *ConstIterator[V]) Valid() bool { return c.it.Valid() }
func (c *ConstIterator[V]) Key() string { return c.it.Key() }
func (c *ConstIterator[V]) Value() V    { return c.it.Value() }
func (c *ConstIterator[V]) Next()       { c.it.Next() }

func (c *ConstIterator[V]) Equal(other *ConstIterator[V]) bool {
	return c.it.Equal(&other.it)
}
