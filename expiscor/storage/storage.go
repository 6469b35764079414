// Package storage holds what the SQL-backed record sources share: bag-driven
// row scanning and identifier hygiene.
package storage

import (
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/AlColeNS/search-expiscor-sub001/expiscor"
)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidIdent reports whether s is safe to use as a table or column name.
func ValidIdent(s string) bool {
	return identRe.MatchString(s)
}

// QuoteIdent wraps a validated identifier in double quotes.
func QuoteIdent(s string) string {
	return `"` + s + `"`
}

// SelectQuery builds the column-ordered select over table for the bag's
// fields. Every name must pass ValidIdent.
func SelectQuery(table string, columns *expiscor.Bag) (string, error) {
	if !ValidIdent(table) {
		return "", expiscor.Errorf("invalid table name %q", table)
	}
	names := make([]string, 0, columns.Len())
	for _, f := range columns.Fields() {
		if !ValidIdent(f.Name) {
			return "", expiscor.Errorf("invalid column name %q", f.Name)
		}
		names = append(names, QuoteIdent(f.Name))
	}
	if len(names) == 0 {
		return "", expiscor.NewError("column template has no fields")
	}
	return "SELECT " + strings.Join(names, ", ") + " FROM " + QuoteIdent(table), nil
}

// ScanTable drains rows into a table shaped by the column template. SQL
// NULL becomes an unassigned column in the row's bag.
func ScanTable(name string, columns *expiscor.Bag, rows *sql.Rows) (*expiscor.Table, error) {
	t := expiscor.NewTable(name, columns)
	n := columns.Len()
	for rows.Next() {
		raw := make([]any, n)
		ptrs := make([]any, n)
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, expiscor.WrapError("scan row", err)
		}
		values := make([]string, n)
		for i, v := range raw {
			values[i] = stringify(v)
		}
		if err := t.AddRow(values...); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, expiscor.WrapError("iterate rows", err)
	}
	return t, nil
}

func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case time.Time:
		return x.Format(expiscor.FieldValueFormat)
	case bool:
		return strconv.FormatBool(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}
