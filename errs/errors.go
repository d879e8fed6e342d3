// Package errs declares the typed error kinds relq surfaces to callers
// (spec.md §7), following the same errors.NewKind/.New/.Wrap idiom the
// teacher's auth package uses for its own error kinds.
package errs

import (
	"fmt"

	pkgerrors "github.com/pkg/errors"
	"gopkg.in/src-d/go-errors.v1"
)

var (
	// Parse is raised by the tokenizer/parser: a message plus, via
	// ParseErrorAt, the offending token's text and kind.
	Parse = errors.NewKind("parse error: %s")

	// Type is raised by the evaluator and by CREATE/INSERT literal
	// checks: an invalid operator/type combination, a literal of the
	// wrong kind for a column, or mismatched BYTES lengths.
	Type = errors.NewKind("type error: %s")

	// Constraint is raised on insert (StorageTable.Insert/InsertCell and
	// storage.Insert) for a duplicate KEY or UNIQUE value. A column
	// declared with both AUTOINCREMENT and a default is a Parse error.
	Constraint = errors.NewKind("constraint violation: %s")

	// Name is raised for an unknown table, unknown column, a qualifier
	// that does not match the row's table, or a duplicate CREATE.
	Name = errors.NewKind("name error: %s")

	// Unsupported is raised for an unsupported join kind or plan node at
	// execution time, or UPDATE at execution time.
	Unsupported = errors.NewKind("unsupported operation: %s")

	// Internal is raised when an invariant the engine relies on is
	// violated; it should never surface from well-formed input.
	Internal = errors.NewKind("internal error: %s")
)

// Wrap attaches additional context to err without discarding its
// underlying Kind, mirroring engine.go's use of pkg/errors.Wrap around
// a go-errors.v1 Kind.
func Wrap(err error, context string) error {
	return pkgerrors.Wrap(err, context)
}

// Token carries enough of a token for an error message without this
// package depending on the token package (which would invert the
// dependency direction — parser and the packages above it depend on
// errs, not the reverse; token and ast do not import errs).
type Token struct {
	Kind string
	Text string
	Pos  int
}

// ParseErrorAt builds a Parse error naming the offending token.
func ParseErrorAt(msg string, tok Token) error {
	return Parse.New(fmt.Sprintf("%s (got %s %q at %d)", msg, tok.Kind, tok.Text, tok.Pos))
}
