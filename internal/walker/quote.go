package walker

import "strings"

// quoteIdentifier backtick-quotes a table or column name for inclusion
// in a SQL statement, doubling any embedded backtick -- adapted from
// the dialect/mysql Generator.QuoteIdentifier, which does the
// same for DDL identifiers. Table and column names are never
// interpolated as anything else; only identifiers are quoted this way,
// values always go through parameter binding.
func quoteIdentifier(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "`", "``")
	return "`" + name + "`"
}
