// Package qptrie defines an implementation of a QP-Trie (quadbit popcount radix trie)
// keyed by byte strings.
//
// A QP-Trie consists of a number of connected Twigs. A Twig is either a leaf holding
// a key-value pair (KV) or a fan-node dispatching on a single 4-bit nibble of the key.
// All branches end with a leaf Twig.
//
// Nibble addressing:
// -----------------
//
// A key is addressed by nibble index: index 2*i is the low 4 bits of byte i and index
// 2*i+1 is the high 4 bits of byte i. An index at or past 2*len(key) yields the
// past-end nibble (16), which lets one key be a strict prefix of another.
//
//	key "a" = 0x61      nib[0] = 0x1   nib[1] = 0x6   nib[2] = END
//	key "ab" = 0x61 62  nib[0] = 0x1   nib[1] = 0x6   nib[2] = 0x2   nib[3] = 0x6
//
// Fan-node bitpack:
// ----------------
//
//	[    37:63-27     ] [  5:26-22  ] [  5:21-17  ] [     17:16-00      ]
//	<III...III:nib-idx> <CCCCC:cap> <NNNNN:count> <E|BBBBBBBBBBBBBBBB:bitmap>
//
//	bit E (16) marks the past-end (terminal) twig, bits 0..15 mark nibble twigs.
//
// The twigs of a fan-node live in one contiguous array ordered by nibble; a twig for
// nibble n sits at offset popcount(bitmap & (1<<n - 1)), so the terminal twig is always
// the last one. The array grows by half (2, 3, 4, 6, 9, 13, 17) and never shrinks.
//
// Iteration order:
// ---------------
//
// Keys are visited in nibble order (see Compare): at every fan-node the terminal twig
// comes first, then the twigs in ascending nibble order. Since the low nibble of a byte
// is tested before its high nibble, this is NOT plain byte-lexicographic order:
//
//	"\x10" < "\x01"   (nib[0]: 0x0 < 0x1)
//	"a"    < "ab"     (nib[2]: END comes first)
//
// A Trie is not safe for concurrent use. Iterators are invalidated by any Insert or
// Remove performed after they were created.
//
// Example trie:
// ------------
//
//	                        ,-- [leaf:"a"]        (END)
//	                        |
//	[fan:idx=2:bmp=END|2|4] +-- [fan:idx=4:bmp=END|3] --+-- [leaf:"ab"]     (END)
//	                        |                           `-- [leaf:"abcxy"]  (3)
//	                        `-- [leaf:"ad"]       (4)
package qptrie
