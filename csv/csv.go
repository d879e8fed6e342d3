// Package csv implements relq's CSV export/import (spec.md §6), mirroring
// csql::storage::Table::exportToCSV (original_source/csql/src/generic/table.h):
// a Table method rather than a one-shot CLI command, operating on any
// row.Table (storage or virtual), not only a StorageTable.
package csv

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/relq-db/relq/errs"
	"github.com/relq-db/relq/row"
	"github.com/relq-db/relq/table"
	"github.com/relq-db/relq/value"
	"github.com/spf13/cast"
)

// Encode writes t's header row (column names) followed by one row per
// stored row: null prints as "null", INT32 as decimal, BOOL as
// true/false, STRING double-quoted, BYTES as "0x" plus hex digits.
// Fields are comma-separated, lines terminated by "\n" (spec.md §6, §8
// scenario S5).
func Encode(w io.Writer, t row.Table) error {
	bw := bufio.NewWriter(w)
	columns := t.Columns()

	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = c.Name
	}
	if _, err := bw.WriteString(strings.Join(names, ",") + "\n"); err != nil {
		return err
	}

	it, err := t.Iterator()
	if err != nil {
		return err
	}
	for it.HasValue() {
		r, err := it.Current()
		if err != nil {
			return err
		}
		fields := make([]string, len(columns))
		for i := range columns {
			fields[i] = formatSlot(r.Slot(i))
		}
		if _, err := bw.WriteString(strings.Join(fields, ",") + "\n"); err != nil {
			return err
		}
		if err := it.Advance(); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func formatSlot(s value.Slot) string {
	if s.Null {
		return "null"
	}
	switch s.Scalar.Tag {
	case value.Int32:
		return cast.ToString(s.Scalar.I32)
	case value.Bool:
		return cast.ToString(s.Scalar.Bool)
	case value.String:
		return `"` + s.Scalar.Str + `"`
	case value.Bytes:
		// Natural slice order: index 0 first, the highest (most
		// significant, per value.Scalar.Compare) index last.
		return "0x" + fmt.Sprintf("%x", s.Scalar.Bytes)
	default:
		return "null"
	}
}

// Decode reads a header line and one row per subsequent line, inserting
// each parsed row into dest via InsertCell. The header is not checked
// against dest's column names beyond a count match — it exists for
// round-tripping Encode's own output (spec.md §8 property 8).
func Decode(r io.Reader, dest *table.StorageTable) error {
	sc := bufio.NewScanner(r)
	columns := dest.Columns()

	if !sc.Scan() {
		return sc.Err()
	}
	header := strings.Split(sc.Text(), ",")
	if len(header) != len(columns) {
		return errs.Type.New("CSV header column count does not match table")
	}

	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) != len(columns) {
			return errs.Type.New("CSV row field count does not match table")
		}
		slots := make([]value.Slot, len(columns))
		for i, col := range columns {
			slot, err := parseField(fields[i], col.Type)
			if err != nil {
				return err
			}
			slots[i] = slot
		}
		if err := dest.InsertCell(value.NewCell(slots...)); err != nil {
			return err
		}
	}
	return sc.Err()
}

func parseField(field string, colType value.ColumnType) (value.Slot, error) {
	if field == "null" {
		return value.NullSlot(), nil
	}
	switch colType.Tag {
	case value.Int32:
		n, err := cast.ToInt32E(field)
		if err != nil {
			return value.Slot{}, errs.Type.New("malformed INT32 field: " + field)
		}
		return value.ValueSlot(value.Int32Scalar(n)), nil
	case value.Bool:
		b, err := cast.ToBoolE(field)
		if err != nil {
			return value.Slot{}, errs.Type.New("malformed BOOL field: " + field)
		}
		return value.ValueSlot(value.BoolScalar(b)), nil
	case value.String:
		if len(field) < 2 || field[0] != '"' || field[len(field)-1] != '"' {
			return value.Slot{}, errs.Type.New("malformed STRING field: " + field)
		}
		return value.ValueSlot(value.StringScalar(field[1 : len(field)-1])), nil
	case value.Bytes:
		if len(field) < 2 || field[:2] != "0x" {
			return value.Slot{}, errs.Type.New("malformed BYTES field: " + field)
		}
		b, err := hexDecode(field[2:])
		if err != nil {
			return value.Slot{}, errs.Type.New("malformed BYTES field: " + field)
		}
		return value.ValueSlot(value.BytesScalar(b)), nil
	default:
		return value.Slot{}, errs.Internal.New("column has no declared type")
	}
}

func hexDecode(digits string) ([]byte, error) {
	return hex.DecodeString(digits)
}
