package qptrie

import (
	"github.com/hideo55/go-popcount"
)

const (
	// bit fields
	bitmapOffset = 0  // 17-bit map:   16 nibbles + past-end
	countOffset  = 17 // 5-bit number: number of twigs [2..17]
	capOffset    = 22 // 5-bit number: allocated twigs [2..17]
	nibIdxOffset = 27 // 37-bit number: index of the nibble the fan-node tests

	bitmapWidth = nibEnd + 1 // 17
	countWidth  = 5
	capWidth    = 5
	nibIdxWidth = 37

	twigsInit = 2           // capacity of a new fan-node
	twigsMax  = bitmapWidth // 16 nibble twigs + 1 terminal twig

	nibIdxMax = 1<<nibIdxWidth - 1

	bitmapMask uint64 = (1<<bitmapWidth - 1) << bitmapOffset // 0b_0..0000000000011111111111111111
	countMask  uint64 = (1<<countWidth - 1) << countOffset   // 0b_0..0000001111100000000000000000
	capMask    uint64 = (1<<capWidth - 1) << capOffset       // 0b_0..0111110000000000000000000000
	nibIdxMask uint64 = nibIdxMax << nibIdxOffset            // 0b_1..1000000000000000000000000000
	endBitMask uint64 = 1 << nibEnd                          // 0b_0..0000000000010000000000000000
)

// fan is a node dispatching on a single nibble of a key.
type fan[V any] struct {
	bitpack uint64
	twigs   []Twig[V] // len(twigs) is the capacity, only the first count twigs are in use
}

// newFan returns a fan-node testing the nibble at idx with a single twig for nib.
func newFan[V any](idx uint64, twig Twig[V], nib byte) *fan[V] {
	assertf(idx <= nibIdxMax, "nibble index %d is out of range", idx)

	node := &fan[V]{
		bitpack: idx<<nibIdxOffset | 1<<countOffset | twigsInit<<capOffset | uint64(1)<<nib,
		twigs:   make([]Twig[V], twigsInit),
	}

	node.twigs[0] = twig

	return node
}

func (node *fan[V]) index() uint64 {
	return node.bitpack & nibIdxMask >> nibIdxOffset
}

func (node *fan[V]) bitmap() uint64 {
	return node.bitpack & bitmapMask
}

func (node *fan[V]) count() int {
	return int(node.bitpack & countMask >> countOffset)
}

func (node *fan[V]) capacity() int {
	return int(node.bitpack & capMask >> capOffset)
}

func (node *fan[V]) setCount(num int) {
	node.bitpack = node.bitpack&^countMask | uint64(num)<<countOffset
}

func (node *fan[V]) setCapacity(num int) {
	node.bitpack = node.bitpack&^capMask | uint64(num)<<capOffset
}

// nibble returns the nibble of a key the fan-node dispatches on.
func (node *fan[V]) nibble(key string) byte {
	return nibAt(key, node.index())
}

func (node *fan[V]) has(nib byte) bool {
	return node.bitpack&(uint64(1)<<nib) != 0
}

func (node *fan[V]) hasEnd() bool {
	return node.bitpack&endBitMask != 0
}

// slot returns the offset of the nibble twig in the twigs array.
func (node *fan[V]) slot(nib byte) int {
	mask := uint64(1)<<nib - 1

	return int(popcount.Count(node.bitpack & mask))
}

// twig returns the twig for the nibble. The nibble must be present.
func (node *fan[V]) twig(nib byte) *Twig[V] {
	assertf(node.has(nib), "fan-node has no twig for nibble %d", nib)

	return &node.twigs[node.slot(nib)]
}

// end returns the terminal twig. It must be present.
func (node *fan[V]) end() *Twig[V] {
	return node.twig(nibEnd)
}

// insert adds a twig for the nibble growing the array if it is full.
// The nibble must not be present yet.
//
// Returns true if the array was reallocated.
func (node *fan[V]) insert(twig Twig[V], nib byte) bool {
	assertf(!node.has(nib), "fan-node already has a twig for nibble %d", nib)

	var (
		idx   = node.slot(nib)
		total = node.count()
		grow  = total == node.capacity()
	)

	if grow {
		// the old array stays intact until the new one is populated
		var (
			size     = min(node.capacity()*3/2, twigsMax)
			newTwigs = make([]Twig[V], size)
		)

		copy(newTwigs[:idx], node.twigs[:idx])
		newTwigs[idx] = twig
		copy(newTwigs[idx+1:], node.twigs[idx:total])

		node.twigs = newTwigs
		node.setCapacity(size)
	} else {
		copy(node.twigs[idx+1:total+1], node.twigs[idx:total])
		node.twigs[idx] = twig
	}

	node.bitpack |= uint64(1) << nib
	node.setCount(total + 1)

	return grow
}

// remove deletes the twig for the nibble compacting the array in place.
// The nibble must be present.
func (node *fan[V]) remove(nib byte) {
	assertf(node.has(nib), "fan-node has no twig for nibble %d", nib)

	var (
		idx   = node.slot(nib)
		total = node.count()
	)

	copy(node.twigs[idx:total-1], node.twigs[idx+1:total])
	node.twigs[total-1] = Twig[V]{} // release the reference

	node.bitpack &^= uint64(1) << nib
	node.setCount(total - 1)
}

// sibling returns the other twig of a fan-node holding exactly two twigs.
func (node *fan[V]) sibling(nib byte) *Twig[V] {
	assertf(node.count() == 2, "fan-node has %d twigs, expected 2", node.count())

	if node.slot(nib) == 0 {
		return &node.twigs[1]
	}

	return &node.twigs[0]
}
