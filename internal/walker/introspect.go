package walker

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// textLikeSubstrings are matched case-insensitively against a column's
// declared type name: "char", "text", "blob" cover CHAR/VARCHAR,
// TEXT/TINYTEXT/..., and BLOB/TINYBLOB/... alike.
var textLikeSubstrings = []string{"char", "text", "blob"}

// columnInfo describes one column discovered via SHOW COLUMNS.
type columnInfo struct {
	Name     string
	RawType  string
	TextLike bool
}

func isTextLike(rawType string) bool {
	lower := strings.ToLower(rawType)
	for _, s := range textLikeSubstrings {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

// listTables enumerates every table name in the connected database via
// SHOW TABLES.
func listTables(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, "SHOW TABLES")
	if err != nil {
		return nil, fmt.Errorf("walker: show tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("walker: scan table name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// discoverColumns runs SHOW COLUMNS FROM <table> and classifies each
// column's declared type as text-like or not.
func discoverColumns(ctx context.Context, db *sql.DB, table string) ([]columnInfo, error) {
	query := fmt.Sprintf("SHOW COLUMNS FROM %s", quoteIdentifier(table))
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("walker: show columns from %s: %w", table, err)
	}
	defer rows.Close()

	records, err := scanNamedRows(rows)
	if err != nil {
		return nil, fmt.Errorf("walker: scan columns for %s: %w", table, err)
	}

	cols := make([]columnInfo, 0, len(records))
	for _, r := range records {
		name := r["Field"].String
		rawType := r["Type"].String
		cols = append(cols, columnInfo{
			Name:     name,
			RawType:  rawType,
			TextLike: isTextLike(rawType),
		})
	}
	return cols, nil
}

// discoverRowIdentifier chooses which columns address a row for
// UPDATE: primary key columns first, then the first-encountered unique
// key's columns, then (fallback) every column, meaning whole-row
// addressing.
func discoverRowIdentifier(ctx context.Context, db *sql.DB, table string, allColumns []columnInfo) ([]string, error) {
	pk, err := discoverPrimaryKey(ctx, db, table)
	if err != nil {
		return nil, err
	}
	if len(pk) > 0 {
		return pk, nil
	}

	uq, err := discoverFirstUniqueKey(ctx, db, table)
	if err != nil {
		return nil, err
	}
	if len(uq) > 0 {
		return uq, nil
	}

	names := make([]string, len(allColumns))
	for i, c := range allColumns {
		names[i] = c.Name
	}
	return names, nil
}

func discoverPrimaryKey(ctx context.Context, db *sql.DB, table string) ([]string, error) {
	query := fmt.Sprintf("SHOW KEYS FROM %s WHERE Key_name = 'PRIMARY'", quoteIdentifier(table))
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("walker: show keys from %s: %w", table, err)
	}
	defer rows.Close()

	records, err := scanNamedRows(rows)
	if err != nil {
		return nil, fmt.Errorf("walker: scan keys for %s: %w", table, err)
	}

	var cols []string
	for _, r := range records {
		cols = append(cols, r["Column_name"].String)
	}
	return cols, nil
}

// discoverFirstUniqueKey keeps every row sharing the first-seen
// Key_name and stops at the first row whose Key_name differs.
func discoverFirstUniqueKey(ctx context.Context, db *sql.DB, table string) ([]string, error) {
	query := fmt.Sprintf("SHOW INDEX FROM %s WHERE Non_unique = 0", quoteIdentifier(table))
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("walker: show index from %s: %w", table, err)
	}
	defer rows.Close()

	records, err := scanNamedRows(rows)
	if err != nil {
		return nil, fmt.Errorf("walker: scan index for %s: %w", table, err)
	}

	var cols []string
	var firstName string
	for i, r := range records {
		name := r["Key_name"].String
		if i == 0 {
			firstName = name
		} else if name != firstName {
			break
		}
		cols = append(cols, r["Column_name"].String)
	}
	return cols, nil
}

// scanNamedRows reads every remaining row of rows into a slice of
// column-name -> value maps. SHOW-statement result sets carry a
// different column count across MySQL/MariaDB versions, so scanning by
// name rather than a fixed positional struct keeps this portable.
func scanNamedRows(rows *sql.Rows) ([]map[string]sql.NullString, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []map[string]sql.NullString
	for rows.Next() {
		vals := make([]sql.NullString, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		m := make(map[string]sql.NullString, len(cols))
		for i, c := range cols {
			m[c] = vals[i]
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
