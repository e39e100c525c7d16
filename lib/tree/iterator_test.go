package tree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIterator(t *testing.T) {
	tree := NewAVLTree[int, string]()
	require.False(t, tree.Begin().Valid())
	require.True(t, tree.Begin().Equal(tree.End()))

	for _, key := range []int{3, 1, 4, 5, 9, 2, 6} {
		require.NoError(t, tree.Insert(key, "v"))
	}

	keys := make([]int, 0, 7)
	for it := tree.Begin(); it.Valid(); it.Next() {
		keys = append(keys, it.Key())
	}
	require.Equal(t, []int{1, 2, 3, 4, 5, 6, 9}, keys)

	it := tree.Find(5)
	require.True(t, it.Valid())
	require.Equal(t, 5, it.Key())
	it.Next()
	require.Equal(t, 6, it.Key())
	it.Next()
	it.Next()
	require.False(t, it.Valid())
	require.True(t, it.Equal(tree.End()))
	// Next at the end stays at the end.
	it.Next()
	require.False(t, it.Valid())
	require.Zero(t, it.Key())
	require.Zero(t, it.Val())

	require.False(t, tree.Find(100).Valid())
	require.True(t, tree.Find(100).Equal(tree.End()))
	require.True(t, tree.Find(4).Equal(tree.Find(4)))
	require.False(t, tree.Find(4).Equal(tree.Find(3)))

	other := NewAVLTree[int, string]()
	require.False(t, other.End().Equal(tree.End()))
}

func TestIterator_SetVal(t *testing.T) {
	tree := NewBSTree[int, int]()
	for i := 0; i < 8; i++ {
		require.NoError(t, tree.Insert(i, i))
	}
	it := tree.Find(3)
	require.NoError(t, it.SetVal(30))
	val, err := tree.At(3)
	require.NoError(t, err)
	require.Equal(t, 30, val)

	// Overwriting a value is not structural.
	require.NoError(t, tree.Insert(3, 300))
	require.True(t, it.Valid())
	require.Equal(t, 300, it.Val())

	require.ErrorIs(t, tree.End().SetVal(1), ErrStaleIterator)
}

func TestIterator_Stale(t *testing.T) {
	type testcase struct {
		name   string
		mutate func(tree AVLTree[int, int])
	}
	testcases := []testcase{
		{
			name: "insert",
			mutate: func(tree AVLTree[int, int]) {
				_ = tree.Insert(100, 100)
			},
		},
		{
			name: "remove",
			mutate: func(tree AVLTree[int, int]) {
				_, _ = tree.Remove(7)
			},
		},
		{
			name: "clear",
			mutate: func(tree AVLTree[int, int]) {
				tree.Clear()
			},
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			tree := NewAVLTree[int, int]()
			for i := 0; i < 16; i++ {
				require.NoError(tt, tree.Insert(i, i))
			}
			it := tree.Find(3)
			require.True(tt, it.Valid())
			tc.mutate(tree)
			require.False(tt, it.Valid())
			require.Zero(tt, it.Key())
			require.ErrorIs(tt, it.SetVal(1), ErrStaleIterator)
			it.Next()
			require.False(tt, it.Valid())
		})
	}
}

func TestAll_EarlyBreakAndMutation(t *testing.T) {
	tree := NewAVLTree[int, int]()
	for i := 0; i < 10; i++ {
		require.NoError(t, tree.Insert(i, i*i))
	}

	visited := 0
	for key, val := range tree.All() {
		require.Equal(t, key*key, val)
		visited++
		if key == 4 {
			break
		}
	}
	require.Equal(t, 5, visited)

	// A structural mutation inside the loop ends it.
	visited = 0
	for key := range tree.All() {
		visited++
		if key == 2 {
			_, _ = tree.Remove(9)
		}
	}
	require.Equal(t, 3, visited)
	require.Equal(t, int64(9), tree.Len())
}
