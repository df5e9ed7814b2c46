package qptrie

const (
	nibWidth = 4
	nibMask  = 1<<nibWidth - 1 // 0b_01111
	nibEnd   = 1 << nibWidth   // 0b_10000 past-end of a key
)

// nibAt returns a nibble of the key at the given nibble index or nibEnd when the index
// is past the end of the key.
func nibAt(key string, idx uint64) byte {
	pos := idx >> 1

	if pos >= uint64(len(key)) {
		return nibEnd
	}

	b := key[pos]

	if idx&1 == 0 {
		return b & nibMask
	}

	return b >> nibWidth
}

// mismatch returns the index of the first nibble the two keys differ at.
//
// Returns false if the keys are equal. When one key is a prefix of another the
// past-end index of the shorter one is returned.
func mismatch(a, b string) (uint64, bool) {
	size := min(len(a), len(b))

	for i := 0; i < size; i++ {
		if diff := a[i] ^ b[i]; diff != 0 {
			idx := uint64(i) << 1

			if diff&nibMask == 0 {
				idx++ // only the high nibble differs
			}

			return idx, true
		}
	}

	if len(a) == len(b) {
		return 0, false
	}

	return uint64(size) << 1, true
}

// Compare compares two keys in the order a Trie iterates them. The result is 0 if
// a == b, -1 if a comes first and +1 if b comes first.
//
// Keys are compared nibble by nibble, the low nibble of each byte before its high
// nibble, and a key that ends comes before any of its continuations.
func Compare(a, b string) int {
	idx, ok := mismatch(a, b)
	if !ok {
		return 0
	}

	switch nibA, nibB := nibAt(a, idx), nibAt(b, idx); {
	case nibA == nibEnd:
		return -1
	case nibB == nibEnd:
		return 1
	case nibA < nibB:
		return -1
	default:
		return 1
	}
}
