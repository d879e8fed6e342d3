package table

import uuid "github.com/satori/go.uuid"

// Traced is implemented by the virtual table kinds (FilteredTable,
// EvaluatedTable, JoinTable). Unlike StorageTable they have no catalog
// name of their own, so callers that want to correlate a log line or
// trace span with a specific instance use TraceID instead.
type Traced interface {
	TraceID() string
}

// newTraceID mints the short-lived identity a virtual table is tagged
// with for the lifetime of one plan.Execute call. Generation failure
// (exhausted entropy) is vanishingly rare and not worth propagating
// through every table constructor, so it degrades to the nil UUID.
func newTraceID() string {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil.String()
	}
	return id.String()
}
