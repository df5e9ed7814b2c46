package qptrie_test

import (
	"fmt"

	"github.com/aglyzov/go-qptrie/qptrie"
)

func ExampleTrie_Prefix() {
	qp := qptrie.New[int]()

	for i, key := range []string{"abc", "abd", "xyz", "ab"} {
		if _, err := qp.Insert(key, i); err != nil {
			panic(err)
		}
	}

	for it := qp.Prefix("ab"); it.Valid(); it.Next() {
		fmt.Println(it.Key(), it.Value())
	}

	// Output:
	// ab 3
	// abc 0
	// abd 1
}

func ExampleSet() {
	set := qptrie.NewSet()

	for _, key := range []string{"a", "ab", "abc"} {
		_, _ = set.Insert(key)
	}

	set.Remove("ab")

	fmt.Println(set.Len(), set.Contains("ab"), set.ContainsPrefix("ab"))

	for key := range set.Keys() {
		fmt.Println(key)
	}

	// Output:
	// 2 false true
	// a
	// abc
}
