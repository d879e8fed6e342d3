package storage

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/relq-db/relq/value"
)

func cellOf(i int32) value.Cell {
	return value.NewCell(value.ValueSlot(value.Int32Scalar(i)))
}

func TestInsertionOrderModeAppendsAndAllowsDuplicates(t *testing.T) {
	require := require.New(t)
	s := New(nil)
	require.NoError(s.Insert(cellOf(3)))
	require.NoError(s.Insert(cellOf(1)))
	require.NoError(s.Insert(cellOf(1)))
	require.Equal(3, s.Size())

	var got []int32
	it := s.Iterate()
	for it.HasValue() {
		got = append(got, it.Current().At(0).Scalar.I32)
		it.Advance()
	}
	require.Equal([]int32{3, 1, 1}, got)
}

func intKeyComparator() Comparator {
	return NewKeyComparator([]int{0})
}

func TestKeyComparatorInsertsSorted(t *testing.T) {
	require := require.New(t)
	s := New(intKeyComparator())
	for _, v := range []int32{5, 1, 3, 2, 4} {
		require.NoError(s.Insert(cellOf(v)))
	}
	var got []int32
	it := s.Iterate()
	for it.HasValue() {
		got = append(got, it.Current().At(0).Scalar.I32)
		it.Advance()
	}
	require.Equal([]int32{1, 2, 3, 4, 5}, got)
}

func TestKeyComparatorRejectsDuplicateKey(t *testing.T) {
	require := require.New(t)
	s := New(intKeyComparator())
	require.NoError(s.Insert(cellOf(1)))
	err := s.Insert(cellOf(1))
	require.Error(err)
	require.Equal(1, s.Size())
}

func TestRangeBounds(t *testing.T) {
	require := require.New(t)
	s := New(intKeyComparator())
	for _, v := range []int32{1, 2, 3, 4, 5} {
		require.NoError(s.Insert(cellOf(v)))
	}
	start := cellOf(2)
	end := cellOf(4)
	it := s.Range(&start, &end)
	var got []int32
	for it.HasValue() {
		got = append(got, it.Current().At(0).Scalar.I32)
		it.Advance()
	}
	require.Equal([]int32{2, 3}, got)
}

func TestRangeOpenOnBothSides(t *testing.T) {
	require := require.New(t)
	s := New(intKeyComparator())
	for _, v := range []int32{1, 2, 3} {
		require.NoError(s.Insert(cellOf(v)))
	}
	it := s.Range(nil, nil)
	count := 0
	for it.HasValue() {
		count++
		it.Advance()
	}
	require.Equal(3, count)
}

func TestIteratorRemoveSplicesAndKeepsCursorOnSuccessor(t *testing.T) {
	require := require.New(t)
	s := New(intKeyComparator())
	for _, v := range []int32{1, 2, 3, 4} {
		require.NoError(s.Insert(cellOf(v)))
	}
	it := s.Iterate()
	it.Advance() // now positioned on 2
	it.Remove()  // removes 2, cursor now on 3
	require.True(it.HasValue())
	require.Equal(int32(3), it.Current().At(0).Scalar.I32)
	require.Equal(3, s.Size())

	var got []int32
	it2 := s.Iterate()
	for it2.HasValue() {
		got = append(got, it2.Current().At(0).Scalar.I32)
		it2.Advance()
	}
	require.Equal([]int32{1, 3, 4}, got)
}

func TestIteratorRemoveWithinBoundedRangeShrinksEnd(t *testing.T) {
	require := require.New(t)
	s := New(intKeyComparator())
	for _, v := range []int32{1, 2, 3, 4, 5} {
		require.NoError(s.Insert(cellOf(v)))
	}
	start := cellOf(2)
	end := cellOf(5)
	it := s.Range(&start, &end) // [2,3,4]
	it.Remove()                 // removes 2, cursor on 3
	require.True(it.HasValue())
	require.Equal(int32(3), it.Current().At(0).Scalar.I32)
	it.Advance()
	it.Remove() // removes 4, bounded end shrinks, cursor past range
	require.False(it.HasValue())
}

func TestKeyComparatorNullSortsBeforeNonNull(t *testing.T) {
	require := require.New(t)
	cmp := NewKeyComparator([]int{0})
	nullCell := value.NewCell(value.NullSlot())
	valCell := cellOf(1)
	require.True(cmp(nullCell, valCell) < 0)
	require.True(cmp(valCell, nullCell) > 0)
	require.Equal(0, cmp(nullCell, nullCell))
}

func TestKeyComparatorMultiKeyLexicographic(t *testing.T) {
	require := require.New(t)
	cmp := NewKeyComparator([]int{0, 1})
	mk := func(a, b int32) value.Cell {
		return value.NewCell(value.ValueSlot(value.Int32Scalar(a)), value.ValueSlot(value.Int32Scalar(b)))
	}
	require.True(cmp(mk(1, 2), mk(1, 3)) < 0)
	require.True(cmp(mk(1, 5), mk(2, 0)) < 0)
	require.Equal(0, cmp(mk(3, 3), mk(3, 3)))
}
