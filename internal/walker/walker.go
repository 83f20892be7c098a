// Package walker enumerates the tables and columns of a connected
// MySQL/MariaDB database and drives the content-aware rewriter (package
// rewrite) across every text-like cell, emitting parameterized UPDATEs
// for rows that changed. It stays a thin table/column walker and update
// emitter; the rewriter itself stays pure and single-threaded per
// invocation.
package walker

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"dbsr/internal/report"
)

// Options configures one Walker run.
type Options struct {
	IncludeTables []string
	ExcludeTables []string
	DryRun        bool
	MaxIterations int
}

// Walker drives one search-and-replace run against a connected database.
type Walker struct {
	db   *sql.DB
	rpt  *report.Reporter
	opts Options
}

// New returns a Walker bound to an already-connected db.
func New(db *sql.DB, rpt *report.Reporter, opts Options) *Walker {
	if rpt == nil {
		rpt = report.New(nil)
	}
	return &Walker{db: db, rpt: rpt, opts: opts}
}

// Connect opens a MySQL connection pool for dsn and pings it: ping
// before returning so that a bad DSN fails fast rather than on the
// first query.
func Connect(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("walker: open connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("walker: ping failed: %w; additionally failed to close: %w", err, closeErr)
		}
		return nil, fmt.Errorf("walker: ping failed: %w", err)
	}
	return db, nil
}

// Run enumerates every table (minus any IncludeTables/ExcludeTables
// filtering) and walks each one in turn. Enumeration failure is fatal
// and returned as an error; every other failure is recorded per-table
// and the walk continues.
func (w *Walker) Run(ctx context.Context, search, replace string) (*Report, error) {
	tables, err := listTables(ctx, w.db)
	if err != nil {
		return nil, err
	}

	rep := &Report{}
	searchBytes, replaceBytes := []byte(search), []byte(replace)
	for _, table := range tables {
		if !w.tableSelected(table) {
			continue
		}
		rep.Tables = append(rep.Tables, w.walkTable(ctx, table, searchBytes, replaceBytes))
	}
	return rep, nil
}

func (w *Walker) tableSelected(table string) bool {
	for _, excluded := range w.opts.ExcludeTables {
		if strings.EqualFold(excluded, table) {
			return false
		}
	}
	if len(w.opts.IncludeTables) == 0 {
		return true
	}
	for _, included := range w.opts.IncludeTables {
		if strings.EqualFold(included, table) {
			return true
		}
	}
	return false
}
