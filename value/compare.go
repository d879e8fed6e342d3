package value

// Compare orders two Scalars of the same Tag, returning a negative, zero
// or positive int the way bytes.Compare does. Bool orders false before
// true. Bytes orders big-endian: the highest-index byte is the most
// significant, matching the CSV hex rendering (spec.md §6) and
// original_source/csql's storage_table.cpp key comparator.
func (s Scalar) Compare(o Scalar) int {
	switch s.Tag {
	case Int32:
		switch {
		case s.I32 < o.I32:
			return -1
		case s.I32 > o.I32:
			return 1
		default:
			return 0
		}
	case Bool:
		if s.Bool == o.Bool {
			return 0
		}
		if !s.Bool {
			return -1
		}
		return 1
	case String:
		switch {
		case s.Str < o.Str:
			return -1
		case s.Str > o.Str:
			return 1
		default:
			return 0
		}
	case Bytes:
		n := len(s.Bytes)
		for i := n - 1; i >= 0; i-- {
			a, b := s.Bytes[i], o.Bytes[i]
			if a != b {
				if a < b {
					return -1
				}
				return 1
			}
		}
		return 0
	default:
		return 0
	}
}

// Equal reports whether s and o carry the same tag and value.
func (s Scalar) Equal(o Scalar) bool {
	if s.Tag != o.Tag {
		return false
	}
	switch s.Tag {
	case Int32:
		return s.I32 == o.I32
	case Bool:
		return s.Bool == o.Bool
	case String:
		return s.Str == o.Str
	case Bytes:
		if len(s.Bytes) != len(o.Bytes) {
			return false
		}
		for i := range s.Bytes {
			if s.Bytes[i] != o.Bytes[i] {
				return false
			}
		}
		return true
	default:
		return true
	}
}
