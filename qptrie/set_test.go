package qptrie

import (
	"slices"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSet(t *testing.T, keys ...string) *Set {
	t.Helper()

	set := NewSet()

	for _, key := range keys {
		ok, err := set.Insert(key)
		require.NoError(t, err)
		require.True(t, ok, key)
	}

	return set
}

func TestSet_ZeroValue(t *testing.T) {
	t.Parallel()

	var set Set

	assert.True(t, set.Empty())
	assert.Zero(t, set.Len())
	assert.False(t, set.Contains(""))
	assert.False(t, set.ContainsPrefix(""))
	assert.False(t, set.Remove("a"))
	assert.False(t, set.Begin().Valid())
	assert.True(t, set.Begin().Equal(set.End()))
	assert.True(t, set.CBegin().Equal(set.CEnd()))
	assert.NoError(t, set.Verify())

	ok, err := set.Insert("a")

	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, set.Len())
}

func TestSet_Contains(t *testing.T) {
	t.Parallel()

	set := newSet(t, "a", "ab", "abc")

	for key, exp := range map[string]bool{
		"":     false,
		"a":    true,
		"ab":   true,
		"abc":  true,
		"abcd": false,
		"b":    false,
		"ac":   false,
	} {
		assert.Equal(t, exp, set.Contains(key), "%q", key)
	}

	ok, err := set.Insert("ab")

	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 3, set.Len())
}

func TestSet_Prefix(t *testing.T) {
	t.Parallel()

	set := newSet(t, "abc", "abd", "xyz", "ab")

	assert.Equal(t, []string{"ab", "abc", "abd"}, collect(set.Prefix("ab")))
	assert.Equal(t, []string{"xyz"}, collect(set.Prefix("x")))
	assert.Empty(t, collect(set.Prefix("b")))
	assert.True(t, set.ContainsPrefix("xy"))
	assert.False(t, set.ContainsPrefix("xa"))

	var keys []string

	assert.False(t, set.Walk("ab", func(key string) bool {
		keys = append(keys, key)
		return len(keys) < 2
	}))
	assert.Equal(t, []string{"ab", "abc"}, keys)
}

func TestSet_Find(t *testing.T) {
	t.Parallel()

	set := newSet(t, "one", "two", "three")

	it := set.Find("two")

	require.True(t, it.Valid())
	assert.Equal(t, "two", it.Key())
	assert.False(t, set.Find("four").Valid())
}

func TestSet_Remove(t *testing.T) {
	t.Parallel()

	set := newSet(t, "a", "ab", "abc", "b")

	assert.True(t, set.Remove("ab"))
	assert.False(t, set.Remove("ab"))
	assert.False(t, set.Contains("ab"))
	assert.True(t, set.Contains("abc"))
	assert.True(t, set.ContainsPrefix("ab"))
	assert.Equal(t, 3, set.Len())
	assert.NoError(t, set.Verify())

	for _, key := range []string{"a", "abc", "b"} {
		assert.True(t, set.Remove(key), key)
	}

	assert.True(t, set.Empty())
	assert.Equal(t, Stats{}, set.Stats())
}

func TestSet_FakeData(t *testing.T) {
	t.Parallel()

	var (
		fake = gofakeit.New(42)
		keys = fakeKeys(fake, 5000)
		set  = newSet(t, keys...)
	)

	require.NoError(t, set.Verify())

	assert.Equal(t, len(keys), set.Len())
	assert.Equal(t, len(keys), set.Stats().Leaves)
	assert.Equal(t, nibbleSorted(keys), slices.Collect(set.Keys()))

	var consts []string

	for it := set.CBegin(); it.Valid(); it.Next() {
		consts = append(consts, it.Key())
	}

	assert.Equal(t, nibbleSorted(keys), consts)
}
