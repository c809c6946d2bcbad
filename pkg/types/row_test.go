package types

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestRow_ColumnOrderPreserved(t *testing.T) {
	cols := []string{"zeta", "alpha", "mid"}
	r := NewRow(cols, []any{int64(1), int64(2), int64(3)})

	got := r.Columns()
	if len(got) != 3 {
		t.Fatalf("got %d columns", len(got))
	}
	for i, c := range cols {
		if got[i] != c {
			t.Errorf("column %d = %q, want %q", i, got[i], c)
		}
	}

	// Mutating the caller's slice must not change the row.
	cols[0] = "mutated"
	if r.Columns()[0] != "zeta" {
		t.Error("row aliases the caller's column slice")
	}
}

func TestRow_Coercions(t *testing.T) {
	r := NewRow(
		[]string{"s", "b", "i", "f", "flag", "absent_flag", "none"},
		[]any{"text", []byte("blob"), int64(42), 3.5, int64(1), int64(0), nil})

	if r.String("s") != "text" {
		t.Errorf("String(s) = %q", r.String("s"))
	}
	if r.String("b") != "blob" {
		t.Errorf("String(b) = %q", r.String("b"))
	}
	if r.String("i") != "42" {
		t.Errorf("String(i) = %q", r.String("i"))
	}
	if r.String("none") != "" || r.String("missing") != "" {
		t.Error("nil and absent columns should read as empty string")
	}

	if r.Int("i") != 42 {
		t.Errorf("Int(i) = %d", r.Int("i"))
	}
	if r.Int("f") != 3 {
		t.Errorf("Int(f) = %d", r.Int("f"))
	}
	if r.Int("missing") != 0 {
		t.Errorf("Int(missing) = %d", r.Int("missing"))
	}

	if r.Float("f") != 3.5 {
		t.Errorf("Float(f) = %v", r.Float("f"))
	}
	if r.Float("i") != 42 {
		t.Errorf("Float(i) = %v", r.Float("i"))
	}

	if !r.Bool("flag") || r.Bool("absent_flag") || r.Bool("missing") {
		t.Error("Bool coercion wrong")
	}

	if !r.Has("none") || r.Has("missing") {
		t.Error("Has should distinguish NULL columns from absent ones")
	}
}

func TestRow_Decimal(t *testing.T) {
	r := NewRow([]string{"f", "i", "s", "bad", "none"},
		[]any{9.99, int64(7), "12.34", "not-a-number", nil})

	if d := r.Decimal("f"); !d.Valid || !d.Decimal.Equal(decimal.NewFromFloat(9.99)) {
		t.Errorf("Decimal(f) = %+v", d)
	}
	if d := r.Decimal("i"); !d.Valid || !d.Decimal.Equal(decimal.NewFromInt(7)) {
		t.Errorf("Decimal(i) = %+v", d)
	}
	if d := r.Decimal("s"); !d.Valid || !d.Decimal.Equal(decimal.RequireFromString("12.34")) {
		t.Errorf("Decimal(s) = %+v", d)
	}
	if r.Decimal("bad").Valid || r.Decimal("none").Valid || r.Decimal("missing").Valid {
		t.Error("invalid inputs should yield an invalid NullDecimal")
	}
}

func TestRow_NullAccessors(t *testing.T) {
	r := NewRow([]string{"n", "set"}, []any{nil, int64(5)})

	if r.NullInt("n") != nil || r.NullInt("missing") != nil {
		t.Error("NullInt should be nil for NULL and absent columns")
	}
	if got := r.NullInt("set"); got == nil || *got != 5 {
		t.Errorf("NullInt(set) = %v", got)
	}
	if r.NullString("n") != nil {
		t.Error("NullString should be nil for NULL columns")
	}
}

func TestRow_MapIsCopy(t *testing.T) {
	r := NewRow([]string{"a"}, []any{int64(1)})
	m := r.Map()
	m["a"] = int64(99)
	if r.Int("a") != 1 {
		t.Error("Map should return a copy")
	}
}
