package qptrie

import (
	"github.com/pkg/errors"
)

// MaxKeySize is the largest key size in bytes a Trie accepts.
//
// A fan-node stores the index of the nibble it tests in 37 bits and the past-end
// index of a key (2*len) must fit there.
const MaxKeySize uint64 = nibIdxMax >> 1

// ErrKeyTooLong is returned by Insert for keys larger than MaxKeySize.
var ErrKeyTooLong = errors.New("qptrie: key is too long")

func checkKeySize(size int) error {
	if uint64(size) > MaxKeySize {
		return errors.Wrapf(ErrKeyTooLong, "key size %d exceeds %d bytes", size, MaxKeySize)
	}

	return nil
}

// assertf panics if the condition does not hold and the package is built with the
// qptrie_debug tag.
func assertf(cond bool, format string, args ...any) {
	if debug && !cond {
		panic(errors.Errorf("qptrie: corrupted: "+format, args...))
	}
}
