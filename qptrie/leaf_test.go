package qptrie

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLeaf(t *testing.T) {
	t.Parallel()

	twig := newLeaf("abc", 123)

	assert.True(t, twig.IsLeaf())
	assert.False(t, twig.IsFan())
	assert.Equal(t, &KV[int]{Key: "abc", Val: 123}, twig.leaf)
	assert.Equal(t, `<qptrie|Leaf|"abc">`, twig.String())
}

func TestKV_Mismatch(t *testing.T) {
	t.Parallel()

	kv := &KV[int]{Key: "abc", Val: 1}

	for _, tcase := range []*struct {
		Key    string
		ExpIdx uint64
		ExpOK  bool
	}{
		{"abc", 0, false},
		{"", 0, true},
		{"a", 2, true},
		{"ab", 4, true},
		{"abcd", 6, true},
		{"abd", 4, true},
		{"Abc", 1, true}, // 0x41 vs 0x61
		{"bbc", 0, true}, // 0x62 vs 0x61
	} {
		var (
			tcase = tcase
			name  = fmt.Sprintf("%#v", tcase.Key)
		)

		t.Run(name, func(t *testing.T) {
			idx, ok := kv.mismatch(tcase.Key)

			assert.Equal(t, tcase.ExpOK, ok)
			assert.Equal(t, tcase.ExpIdx, idx)
		})
	}
}

func TestKV_HasPrefix(t *testing.T) {
	t.Parallel()

	kv := &KV[int]{Key: "12345"}

	assert.True(t, kv.hasPrefix(""))
	assert.True(t, kv.hasPrefix("12"))
	assert.True(t, kv.hasPrefix("12345"))
	assert.False(t, kv.hasPrefix("123456"))
	assert.False(t, kv.hasPrefix("99"))
}
