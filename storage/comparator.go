package storage

import "github.com/relq-db/relq/value"

// NewKeyComparator builds the Comparator spec.md §4.5 describes: tuples
// compared lexicographically over a table's KEY column indexes, in
// declaration order. A null slot sorts before any non-null value of the
// same column; two nulls compare equal at that column and comparison
// continues to the next key column.
func NewKeyComparator(keyIndexes []int) Comparator {
	return func(a, b value.Cell) int {
		for _, idx := range keyIndexes {
			sa, sb := a.At(idx), b.At(idx)
			switch {
			case sa.Null && sb.Null:
				continue
			case sa.Null:
				return -1
			case sb.Null:
				return 1
			}
			if c := sa.Scalar.Compare(sb.Scalar); c != 0 {
				return c
			}
		}
		return 0
	}
}
