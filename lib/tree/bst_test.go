package tree

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func bstKeys[V any](tree BSTree[int, V]) []int {
	keys := make([]int, 0, tree.Len())
	for key := range tree.All() {
		keys = append(keys, key)
	}
	return keys
}

func TestBSTree_InsertAndStructure(t *testing.T) {
	tree := NewBSTree[int, string]()
	require.True(t, tree.Empty())
	require.Nil(t, tree.Root())

	for _, key := range []int{5, 3, 8, 1, 4} {
		require.NoError(t, tree.Insert(key, "v"))
	}
	root := tree.Root()
	require.Equal(t, 5, root.Key())
	require.Nil(t, root.Parent())
	require.Equal(t, 3, root.Left().Key())
	require.Equal(t, 8, root.Right().Key())
	require.Equal(t, 1, root.Left().Left().Key())
	require.Equal(t, 4, root.Left().Right().Key())
	require.Equal(t, 5, root.Left().Right().Parent().Parent().Key())
	require.Nil(t, root.Right().Left())
	require.Equal(t, []int{1, 3, 4, 5, 8}, bstKeys[string](tree))

	// Overwrite in place.
	require.NoError(t, tree.Insert(4, "replaced"))
	require.Equal(t, "replaced", tree.Root().Left().Right().Val())
	require.Equal(t, int64(5), tree.Len())
	require.ErrorIs(t, tree.Insert(4, "disabled", true), ErrReplaceDisabled)
	require.Equal(t, "replaced", tree.Root().Left().Right().Val())

	require.NoError(t, tree.Validate())
	require.True(t, tree.IsBalanced())
}

func TestBSTree_SequentialIsUnbalanced(t *testing.T) {
	tree := NewBSTree[int, int]()
	for i := 0; i < 10000; i++ {
		require.NoError(t, tree.Insert(i, i))
	}
	require.False(t, tree.IsBalanced())
	require.NoError(t, tree.Validate())

	// A list shaped tree, every node hangs on the right.
	depth := 0
	for node := tree.Root(); node != nil; node = node.Right() {
		require.Nil(t, node.Left())
		depth++
	}
	require.Equal(t, 10000, depth)

	tree.Clear()
	require.True(t, tree.Empty())
	require.True(t, tree.IsBalanced())
}

func TestBSTree_Remove(t *testing.T) {
	type testcase struct {
		name     string
		opts     []TreeOption
		rmKey    int
		rootKey  int
		expected []int
	}
	testcases := []testcase{
		{
			name:     "leaf",
			rmKey:    1,
			rootKey:  5,
			expected: []int{3, 4, 5, 7, 8, 9},
		},
		{
			name:     "inner node by pred",
			rmKey:    8,
			rootKey:  5,
			expected: []int{1, 3, 4, 5, 7, 9},
		},
		{
			name:     "root by pred",
			rmKey:    5,
			rootKey:  4,
			expected: []int{1, 3, 4, 7, 8, 9},
		},
		{
			name:     "root by succ",
			opts:     []TreeOption{WithTreeRemoveBorrowSucc()},
			rmKey:    5,
			rootKey:  7,
			expected: []int{1, 3, 4, 7, 8, 9},
		},
		{
			name:     "absent",
			rmKey:    100,
			rootKey:  5,
			expected: []int{1, 3, 4, 5, 7, 8, 9},
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			tree := NewBSTree[int, int](tc.opts...)
			//       5
			//     /   \
			//    3     8
			//   / \   / \
			//  1   4 7   9
			for _, key := range []int{5, 3, 8, 1, 4, 7, 9} {
				require.NoError(tt, tree.Insert(key, key))
			}
			val, ok := tree.Remove(tc.rmKey)
			require.Equal(tt, tc.rmKey != 100, ok)
			if ok {
				require.Equal(tt, tc.rmKey, val)
			}
			require.Equal(tt, tc.rootKey, tree.Root().Key())
			require.Equal(tt, tc.expected, bstKeys[int](tree))
			require.Equal(tt, int64(len(tc.expected)), tree.Len())
			require.NoError(tt, tree.Validate())
		})
	}
}

func TestBSTree_RoundTripToEmpty(t *testing.T) {
	tree := NewBSTree[int, int]()
	keys := lo.Shuffle(lo.Range(512))
	for _, key := range keys {
		require.NoError(t, tree.Insert(key, key))
	}
	for _, key := range lo.Shuffle(keys) {
		_, ok := tree.Remove(key)
		require.True(t, ok)
	}
	require.True(t, tree.Empty())
	require.Nil(t, tree.Root())
	require.NoError(t, tree.Validate())
}

func TestBSTree_ForeachEarlyStop(t *testing.T) {
	tree := NewBSTree[string, int]()
	for i, key := range []string{"d", "b", "a", "c", "e"} {
		require.NoError(t, tree.Insert(key, i))
	}
	keys := make([]string, 0, 3)
	tree.Foreach(func(idx int64, key string, val int) bool {
		keys = append(keys, key)
		return idx < 2
	})
	require.Equal(t, []string{"a", "b", "c"}, keys)
}
