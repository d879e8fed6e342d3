// Package relq is an in-process relational query engine: a tokenizer,
// recursive-descent parser, row/cell evaluator, table algebra and
// cost-annotated planner executed against in-memory tables (spec.md §1-2).
// Database is the facade callers embed, mirroring the teacher's own
// Engine/New/NewDefault split (engine.go).
package relq

import (
	"sync"

	"github.com/mitchellh/hashstructure"
	"github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"

	"github.com/relq-db/relq/ast"
	"github.com/relq-db/relq/errs"
	"github.com/relq-db/relq/parser"
	"github.com/relq-db/relq/plan"
	"github.com/relq-db/relq/row"
	"github.com/relq-db/relq/table"
)

// Result is one statement's outcome from Execute. Table is non-nil only
// for SELECT, and is the pull-based row.Table the caller iterates;
// RowsAffected is meaningful for INSERT/DELETE.
type Result struct {
	Statement    *ast.Statement
	Table        row.Table
	RowsAffected int
}

// Database holds the catalog (spec.md §4.8): a process-wide, single-
// threaded map of table name to StorageTable. Concurrent use requires
// external serialization (spec.md §5).
type Database struct {
	mu     sync.Mutex
	cfg    *Config
	log    *logrus.Entry
	tracer opentracing.Tracer

	catalog   map[string]*table.StorageTable
	planCache map[uint64]*plan.Plan
}

// New builds a Database with the given configuration. A nil cfg uses
// DefaultConfig.
func New(cfg *Config) *Database {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Database{
		cfg:       cfg,
		log:       logrus.StandardLogger().WithField("component", "relq"),
		tracer:    opentracing.NoopTracer{},
		catalog:   make(map[string]*table.StorageTable),
		planCache: make(map[uint64]*plan.Plan),
	}
}

// NewDefault builds a Database with DefaultConfig.
func NewDefault() *Database {
	return New(nil)
}

// WithTracer replaces the Database's opentracing.Tracer (default is the
// package's NoopTracer); it returns d for chaining.
func (d *Database) WithTracer(t opentracing.Tracer) *Database {
	d.tracer = t
	return d
}

// Lookup implements plan.Catalog.
func (d *Database) Lookup(name string) (*table.StorageTable, error) {
	t, ok := d.catalog[name]
	if !ok {
		return nil, errs.Name.New("unknown table " + name)
	}
	return t, nil
}

// Execute parses sqlText as a sequence of ";"-separated statements and
// runs each in turn, returning the Results completed so far and the
// first error encountered. A failed statement leaves the catalog as it
// was after the prior statements in the same call (spec.md §7) — there
// is no overall rollback.
func (d *Database) Execute(sqlText string) ([]*Result, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	span := d.tracer.StartSpan("relq.Execute")
	defer span.Finish()

	p := parser.New(sqlText)
	var results []*Result
	for !p.Done() {
		stmt, err := p.ParseStatement()
		if err != nil {
			d.log.WithError(err).Debug("parse error")
			return results, err
		}
		if stmt == nil {
			break
		}
		res, err := d.executeStatement(stmt)
		if err != nil {
			d.log.WithError(err).WithField("kind", stmt.Kind).Debug("statement failed")
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

func (d *Database) executeStatement(stmt *ast.Statement) (*Result, error) {
	d.log.WithField("kind", stmt.Kind).Debug("executing statement")

	switch stmt.Kind {
	case ast.Create:
		return d.executeCreate(stmt)
	case ast.Insert:
		return d.executeInsert(stmt)
	case ast.Select:
		return d.executeSelect(stmt)
	case ast.Delete:
		return d.executeDelete(stmt)
	case ast.Update:
		// UPDATE is parse-only; the executor rejects it (spec.md §9).
		return nil, errs.Unsupported.New("UPDATE is not executable")
	default:
		return nil, errs.Internal.New("unknown statement kind")
	}
}

func (d *Database) executeCreate(stmt *ast.Statement) (*Result, error) {
	if _, exists := d.catalog[stmt.Table]; exists {
		return nil, errs.Name.New("table " + stmt.Table + " already exists")
	}

	if stmt.Source == nil {
		if limit := d.cfg.MaxColumnWidth; limit > 0 {
			for _, c := range stmt.Columns {
				if c.Type.Length > limit {
					return nil, errs.Type.New("column " + c.Name + " is wider than the configured maximum")
				}
			}
		}
		d.catalog[stmt.Table] = table.NewStorageTable(stmt.Table, stmt.Columns)
		d.invalidatePlanCache()
		return &Result{Statement: stmt}, nil
	}

	src, err := d.planAndExecute(stmt.Source)
	if err != nil {
		return nil, err
	}
	t := table.NewStorageTableLike(stmt.Table, src)

	it, err := src.Iterator()
	if err != nil {
		return nil, err
	}
	for it.HasValue() {
		r, err := it.Current()
		if err != nil {
			return nil, err
		}
		if err := t.InsertCell(r.Cell); err != nil {
			return nil, err
		}
		if err := it.Advance(); err != nil {
			return nil, err
		}
	}

	d.catalog[stmt.Table] = t
	d.invalidatePlanCache()
	return &Result{Statement: stmt}, nil
}

func (d *Database) executeInsert(stmt *ast.Statement) (*Result, error) {
	t, err := d.Lookup(stmt.Table)
	if err != nil {
		return nil, err
	}
	if err := t.Insert(stmt.Positional, stmt.Values, stmt.Assignments); err != nil {
		d.log.WithError(err).Warn("insert rejected")
		return nil, err
	}
	return &Result{Statement: stmt, RowsAffected: 1}, nil
}

func (d *Database) executeSelect(stmt *ast.Statement) (*Result, error) {
	p, err := d.planSelect(stmt)
	if err != nil {
		return nil, err
	}
	t, err := plan.Execute(p)
	if err != nil {
		return nil, err
	}
	if traced, ok := t.(table.Traced); ok {
		d.log.WithField("trace_id", traced.TraceID()).Debug("select produced virtual table")
	}
	return &Result{Statement: stmt, Table: t}, nil
}

func (d *Database) executeDelete(stmt *ast.Statement) (*Result, error) {
	t, err := d.Lookup(stmt.Table)
	if err != nil {
		return nil, err
	}
	n, err := t.DeleteWhere(stmt.Where)
	if err != nil {
		return nil, err
	}
	return &Result{Statement: stmt, RowsAffected: n}, nil
}

// planAndExecute plans and runs a table-expression (CREATE TABLE AS's
// Source, which may itself be a SELECT, a JOIN, a parenthesized
// sub-expression, or a bare table reference — spec.md §4.8's
// "CREATE TABLE AS SELECT" plus the cloning-only supplement).
func (d *Database) planAndExecute(expr *ast.Expr) (row.Table, error) {
	p, err := plan.Create(expr, d)
	if err != nil {
		return nil, err
	}
	return plan.Execute(p)
}

// planSelect builds (or retrieves from cache) the Plan for a SELECT
// statement, memoized by a hash of the statement tree (spec.md §4.7,
// domain-stack entry). The cache is invalidated whenever the catalog
// changes, since a cached plan holds resolved *table.StorageTable
// pointers.
func (d *Database) planSelect(stmt *ast.Statement) (*plan.Plan, error) {
	if d.cfg.PlanCacheSize == 0 {
		return plan.CreateSelect(stmt, d)
	}

	key, err := hashstructure.Hash(stmt, nil)
	if err != nil {
		// A hash failure never blocks execution; it only disables
		// memoization for this call.
		return plan.CreateSelect(stmt, d)
	}
	if cached, ok := d.planCache[key]; ok {
		return cached, nil
	}

	p, err := plan.CreateSelect(stmt, d)
	if err != nil {
		return nil, err
	}
	if len(d.planCache) >= d.cfg.PlanCacheSize {
		d.invalidatePlanCache()
	}
	d.planCache[key] = p
	return p, nil
}

func (d *Database) invalidatePlanCache() {
	d.planCache = make(map[uint64]*plan.Plan)
}
