// Package report prints byte-oriented progress output to an io.Writer:
// one line per table announcing its name and target columns, one line
// summarizing rows-examined / rows-updated, and error lines prefixed
// "ERROR". It favors plain printf/println wrappers around an io.Writer
// over a structured logging library -- this is user-facing progress
// text, not a log stream.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Reporter wraps an io.Writer with the handful of line shapes the
// rewrite run needs to emit.
type Reporter struct {
	out io.Writer
}

// New returns a Reporter writing to out. A nil out defaults to os.Stdout.
func New(out io.Writer) *Reporter {
	if out == nil {
		out = os.Stdout
	}
	return &Reporter{out: out}
}

// TableStarted announces a table and the columns it will inspect.
func (r *Reporter) TableStarted(table string, columns []string) {
	r.printf("%s: columns %s\n", table, strings.Join(columns, ", "))
}

// TableSkipped announces that a table has no text-like columns and
// will not be scanned.
func (r *Reporter) TableSkipped(table string) {
	r.printf("%s: no text-like columns, skipping\n", table)
}

// TableSummary reports rows-examined / rows-updated for one table.
func (r *Reporter) TableSummary(table string, examined, updated int) {
	r.printf("%s: %d rows examined, %d rows updated\n", table, examined, updated)
}

// Errorf prints an ERROR-prefixed line.
func (r *Reporter) Errorf(format string, args ...any) {
	r.printf("ERROR: "+format+"\n", args...)
}

func (r *Reporter) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}
