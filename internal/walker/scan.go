package walker

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"dbsr/internal/rewrite"
)

// rowIdentifierValue is one (column, byte-value-or-null) pair of a row
// identifier. Its lifetime is one row: built during SELECT, consumed by
// the matching UPDATE.
type rowIdentifierValue struct {
	column string
	value  []byte
}

// walkTable scans every row of table, rewrites text-like columns, and
// stages/emits UPDATEs for rows that changed. It never returns a Go
// error for table- or row-level failures: those are logged through the
// reporter and recorded on the TableReport, and the walk continues with
// the next table or row.
func (w *Walker) walkTable(ctx context.Context, table string, search, replace []byte) TableReport {
	tr := TableReport{Table: table}

	cols, err := discoverColumns(ctx, w.db, table)
	if err != nil {
		return w.skipTable(tr, err)
	}

	rowIDCols, err := discoverRowIdentifier(ctx, w.db, table, cols)
	if err != nil {
		return w.skipTable(tr, err)
	}

	var textLikeNames []string
	for _, c := range cols {
		if c.TextLike {
			textLikeNames = append(textLikeNames, c.Name)
		}
	}
	tr.Columns = textLikeNames

	if len(textLikeNames) == 0 {
		w.rpt.TableSkipped(table)
		tr.Skipped = true
		tr.SkippedReason = "no text-like columns"
		return tr
	}

	w.rpt.TableStarted(table, textLikeNames)

	selectCols := unionColumns(rowIDCols, textLikeNames)
	query := fmt.Sprintf("SELECT %s FROM %s", quotedList(selectCols), quoteIdentifier(table))

	rows, err := w.db.QueryContext(ctx, query)
	if err != nil {
		tr.Errors = append(tr.Errors, err.Error())
		w.rpt.Errorf("%s: select failed: %v", table, err)
		return tr
	}
	defer rows.Close()

	textLikeIdx := indexOf(selectCols, textLikeNames)
	rowIDIdx := indexOf(selectCols, rowIDCols)

	// appliedKeys tracks which row-identifier signatures have already
	// produced an UPDATE in this table walk. When the identifier is the
	// whole row (no primary or unique key), every text-like column is
	// itself part of the identifier, so two rows with the same
	// signature necessarily have the same rewritten content too -- the
	// first UPDATE's WHERE clause already matches every duplicate, and
	// re-issuing it is a redundant no-op.
	appliedKeys := make(map[string]bool)

	for rows.Next() {
		values := make([][]byte, len(selectCols))
		ptrs := make([]any, len(selectCols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			tr.Errors = append(tr.Errors, err.Error())
			w.rpt.Errorf("%s: row scan failed: %v", table, err)
			continue
		}
		tr.RowsExamined++

		changed := w.rewriteRow(values, selectCols, textLikeIdx, search, replace)
		if len(changed) == 0 {
			continue
		}

		if w.opts.DryRun {
			tr.RowsUpdated++
			continue
		}

		rowID := make([]rowIdentifierValue, len(rowIDIdx))
		for i, idx := range rowIDIdx {
			rowID[i] = rowIdentifierValue{column: selectCols[idx], value: values[idx]}
		}

		key := rowIdentifierKey(rowID)
		if !appliedKeys[key] {
			if err := w.applyUpdate(ctx, table, changed, rowID); err != nil {
				tr.Errors = append(tr.Errors, err.Error())
				w.rpt.Errorf("%s: update failed: %v", table, err)
				continue
			}
			appliedKeys[key] = true
		}
		tr.RowsUpdated++
	}
	if err := rows.Err(); err != nil {
		tr.Errors = append(tr.Errors, err.Error())
		w.rpt.Errorf("%s: row iteration failed: %v", table, err)
	}

	w.rpt.TableSummary(table, tr.RowsExamined, tr.RowsUpdated)
	return tr
}

func (w *Walker) skipTable(tr TableReport, err error) TableReport {
	w.rpt.Errorf("%s: %v", tr.Table, err)
	tr.Skipped = true
	tr.SkippedReason = err.Error()
	tr.Errors = append(tr.Errors, err.Error())
	return tr
}

// rewriteRow invokes the rewriter on every text-like column of one row.
// A null value is left alone.
func (w *Walker) rewriteRow(values [][]byte, selectCols []string, textLikeIdx []int, search, replace []byte) map[string][]byte {
	changed := make(map[string][]byte)
	for _, idx := range textLikeIdx {
		raw := values[idx]
		if raw == nil {
			continue
		}
		rewritten := rewrite.RewriteBytes(raw, search, replace, w.opts.MaxIterations)
		if !bytes.Equal(rewritten, raw) {
			changed[selectCols[idx]] = rewritten
		}
	}
	return changed
}

// rowIdentifierKey encodes a row identifier as a string safe to use as a
// map key. Each value is length-prefixed (or given a dedicated sentinel
// for NULL) so that no pair of distinct value sequences can collide by
// a shifted boundary -- e.g. ("ab","c") and ("a","bc") encode
// differently even though their concatenation is identical.
func rowIdentifierKey(rowID []rowIdentifierValue) string {
	var buf bytes.Buffer
	for _, rv := range rowID {
		if rv.value == nil {
			buf.WriteByte(0)
			continue
		}
		buf.WriteByte(1)
		fmt.Fprintf(&buf, "%d:", len(rv.value))
		buf.Write(rv.value)
	}
	return buf.String()
}

// applyUpdate emits one parameterized UPDATE for the changed columns of
// a single row, addressed by the null-safe-equals chain over rowID.
func (w *Walker) applyUpdate(ctx context.Context, table string, changed map[string][]byte, rowID []rowIdentifierValue) error {
	changedCols := make([]string, 0, len(changed))
	for col := range changed {
		changedCols = append(changedCols, col)
	}
	sort.Strings(changedCols)

	setParts := make([]string, 0, len(changedCols))
	args := make([]any, 0, len(changedCols)+len(rowID))
	for _, col := range changedCols {
		setParts = append(setParts, quoteIdentifier(col)+" = ?")
		args = append(args, changed[col])
	}

	whereParts := make([]string, 0, len(rowID))
	for _, rv := range rowID {
		whereParts = append(whereParts, quoteIdentifier(rv.column)+" <=> ?")
		args = append(args, rv.value)
	}

	query := fmt.Sprintf(
		"UPDATE %s SET %s WHERE %s",
		quoteIdentifier(table),
		strings.Join(setParts, ", "),
		strings.Join(whereParts, " AND "),
	)

	_, err := w.db.ExecContext(ctx, query, args...)
	return err
}

func quotedList(columns []string) string {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = quoteIdentifier(c)
	}
	return strings.Join(quoted, ", ")
}
