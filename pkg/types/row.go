package types

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Fields is a column→value map used as input to the generic insert and
// update helpers. Column order in generated SQL is the sorted key order so
// statements are deterministic.
type Fields map[string]any

// Row is one result row rendered as an ordered column→value mapping.
// Column order matches the SELECT list of the producing query.
type Row struct {
	cols []string
	vals map[string]any
}

// NewRow builds a Row from parallel column and value slices.
func NewRow(cols []string, vals []any) Row {
	m := make(map[string]any, len(cols))
	for i, c := range cols {
		m[c] = vals[i]
	}
	// Copy cols so the Row does not alias the caller's slice.
	cc := make([]string, len(cols))
	copy(cc, cols)
	return Row{cols: cc, vals: m}
}

// Columns returns the column names in query order.
func (r Row) Columns() []string { return r.cols }

// Len returns the number of columns.
func (r Row) Len() int { return len(r.cols) }

// Get returns the value for col, or nil when the column is absent.
func (r Row) Get(col string) any { return r.vals[col] }

// Has reports whether the row carries col.
func (r Row) Has(col string) bool {
	_, ok := r.vals[col]
	return ok
}

// Map returns the row as a plain map. The map is a copy.
func (r Row) Map() map[string]any {
	m := make(map[string]any, len(r.vals))
	for k, v := range r.vals {
		m[k] = v
	}
	return m
}

// String returns the value of col coerced to a string. Nil and absent
// columns yield "".
func (r Row) String(col string) string {
	switch v := r.vals[col].(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// Int returns the value of col coerced to an int64. Nil, absent, and
// non-numeric columns yield 0.
func (r Row) Int(col string) int64 {
	switch v := r.vals[col].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	default:
		return 0
	}
}

// Float returns the value of col coerced to a float64.
func (r Row) Float(col string) float64 {
	switch v := r.vals[col].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	default:
		return 0
	}
}

// Bool returns the value of col as a bool; SQLite stores flags as 0/1.
func (r Row) Bool(col string) bool { return r.Int(col) != 0 }

// Decimal returns the value of col as a decimal. Nil and absent columns
// yield an invalid NullDecimal.
func (r Row) Decimal(col string) decimal.NullDecimal {
	switch v := r.vals[col].(type) {
	case nil:
		return decimal.NullDecimal{}
	case float64:
		return decimal.NewNullDecimal(decimal.NewFromFloat(v))
	case int64:
		return decimal.NewNullDecimal(decimal.NewFromInt(v))
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.NullDecimal{}
		}
		return decimal.NewNullDecimal(d)
	default:
		return decimal.NullDecimal{}
	}
}

// NullInt returns the value of col as an int pointer, nil when the column
// is NULL or absent.
func (r Row) NullInt(col string) *int64 {
	if r.vals[col] == nil {
		return nil
	}
	n := r.Int(col)
	return &n
}

// NullString returns the value of col as a string pointer, nil when NULL.
func (r Row) NullString(col string) *string {
	if r.vals[col] == nil {
		return nil
	}
	s := r.String(col)
	return &s
}
