package infra

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAscOrderedKeyComparator(t *testing.T) {
	cmp := AscOrderedKeyComparator[int]()
	require.Equal(t, int64(0), cmp(1, 1))
	require.Equal(t, int64(-1), cmp(1, 2))
	require.Equal(t, int64(1), cmp(2, 1))

	strCmp := AscOrderedKeyComparator[string]()
	require.Equal(t, int64(-1), strCmp("abc", "abd"))
}

func TestDescOrderedKeyComparator(t *testing.T) {
	cmp := DescOrderedKeyComparator[uint64]()
	require.Equal(t, int64(0), cmp(7, 7))
	require.Equal(t, int64(1), cmp(1, 2))
	require.Equal(t, int64(-1), cmp(2, 1))
}
