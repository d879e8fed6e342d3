package value

// Scalar is one concrete, non-null value of a column's type. Exactly one
// of the four payload fields is meaningful, selected by Tag.
type Scalar struct {
	Tag   Tag
	I32   int32
	Bool  bool
	Str   string
	Bytes []byte
}

// Int32Scalar, BoolScalar, StringScalar and BytesScalar build a Scalar of
// the matching tag.
func Int32Scalar(v int32) Scalar  { return Scalar{Tag: Int32, I32: v} }
func BoolScalar(v bool) Scalar    { return Scalar{Tag: Bool, Bool: v} }
func StringScalar(v string) Scalar { return Scalar{Tag: String, Str: v} }
func BytesScalar(v []byte) Scalar { return Scalar{Tag: Bytes, Bytes: v} }

// Slot is one column's worth of a Cell: either null, or a concrete Scalar
// matching the column's declared type.
type Slot struct {
	Null   bool
	Scalar Scalar
}

// NullSlot returns a null Slot.
func NullSlot() Slot { return Slot{Null: true} }

// ValueSlot wraps a concrete Scalar in a non-null Slot.
func ValueSlot(s Scalar) Slot { return Slot{Scalar: s} }

// Cell is an immutable, ordered tuple of typed Slots, one per column of
// its owning table. Cells never change after insertion (UPDATE is
// parse-only, so there is no update path).
type Cell struct {
	Slots []Slot
}

// NewCell builds a Cell from the given slots.
func NewCell(slots ...Slot) Cell {
	return Cell{Slots: slots}
}

// At returns the slot at index i.
func (c Cell) At(i int) Slot {
	return c.Slots[i]
}

// Len returns the number of slots in the cell.
func (c Cell) Len() int {
	return len(c.Slots)
}
