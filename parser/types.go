package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/relq-db/relq/value"
)

// parseColumnType turns a TYPE token's text ("BOOL", "INT32",
// "STRING[n]", "BYTES[n]") into a value.ColumnType.
func parseColumnType(text string) (value.ColumnType, error) {
	switch {
	case text == "BOOL":
		return value.ColumnType{Tag: value.Bool}, nil
	case text == "INT32":
		return value.ColumnType{Tag: value.Int32}, nil
	case strings.HasPrefix(text, "STRING["):
		n, err := parseWidth(text, "STRING[")
		if err != nil {
			return value.ColumnType{}, err
		}
		return value.ColumnType{Tag: value.String, Length: n}, nil
	case strings.HasPrefix(text, "BYTES["):
		n, err := parseWidth(text, "BYTES[")
		if err != nil {
			return value.ColumnType{}, err
		}
		return value.ColumnType{Tag: value.Bytes, Length: n}, nil
	default:
		return value.ColumnType{}, fmt.Errorf("unrecognized type %q", text)
	}
}

func parseWidth(text, prefix string) (int, error) {
	inner := strings.TrimSuffix(strings.TrimPrefix(text, prefix), "]")
	n, err := strconv.Atoi(inner)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid width in type %q", text)
	}
	return n, nil
}
