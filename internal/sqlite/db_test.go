package sqlite

import (
	"errors"
	"testing"

	"github.com/mesh-intelligence/stockbook/pkg/types"
)

func TestInsertUpdateDelete_Generic(t *testing.T) {
	s := newTestStore(t)

	id, err := s.Insert(types.TableCustomers, types.Fields{"name": "Ada", "discord_id": "u1"})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if id == 0 {
		t.Fatal("expected engine-assigned id")
	}

	n, err := s.Update(types.TableCustomers, types.Fields{"name": "Grace"}, "customer_id = ?", id)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Update affected %d rows, want 1", n)
	}

	row, err := s.GetByID(types.TableCustomers, "customer_id", id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if row.String("name") != "Grace" {
		t.Errorf("name = %q, want Grace", row.String("name"))
	}

	n, err = s.Delete(types.TableCustomers, "customer_id = ?", id)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Delete affected %d rows, want 1", n)
	}

	if _, err := s.GetByID(types.TableCustomers, "customer_id", id); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestGenericOps_RejectUnknownTable(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Insert("secrets", types.Fields{"x": 1}); !errors.Is(err, types.ErrUnknownTable) {
		t.Errorf("Insert: expected ErrUnknownTable, got %v", err)
	}
	if _, err := s.Update("secrets", types.Fields{"x": 1}, "1"); !errors.Is(err, types.ErrUnknownTable) {
		t.Errorf("Update: expected ErrUnknownTable, got %v", err)
	}
	if _, err := s.Delete("secrets", "1"); !errors.Is(err, types.ErrUnknownTable) {
		t.Errorf("Delete: expected ErrUnknownTable, got %v", err)
	}
	if _, err := s.GetByID("secrets", "id", 1); !errors.Is(err, types.ErrUnknownTable) {
		t.Errorf("GetByID: expected ErrUnknownTable, got %v", err)
	}
}

func TestExecute_InvalidatesParsedTable(t *testing.T) {
	s := newTestStore(t)

	id, err := s.AddCustomer(&types.Customer{Name: "Ada"})
	if err != nil {
		t.Fatalf("AddCustomer failed: %v", err)
	}
	if _, err := s.ListCustomers(); err != nil {
		t.Fatalf("ListCustomers failed: %v", err)
	}

	// Raw UPDATE must invalidate customers reads.
	if _, err := s.Execute("UPDATE customers SET name = ? WHERE customer_id = ?", "Grace", id); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	rows, err := s.ListCustomers()
	if err != nil {
		t.Fatalf("ListCustomers failed: %v", err)
	}
	if rows[0].String("name") != "Grace" {
		t.Errorf("cached read not invalidated: name = %q", rows[0].String("name"))
	}
}

func TestTableFromStatement(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"UPDATE products SET x = 1", "products"},
		{"  update sales set x = 1", "sales"},
		{"INSERT INTO expenses (a) VALUES (?)", "expenses"},
		{"DELETE FROM customers WHERE 1", "customers"},
		{"SELECT * FROM products", ""},
		{"DROP TABLE products", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := tableFromStatement(tt.query); got != tt.want {
			t.Errorf("tableFromStatement(%q) = %q, want %q", tt.query, got, tt.want)
		}
	}
}

func TestQuery_RowOrderMatchesSelect(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.AddCustomer(&types.Customer{Name: "Ada", ExternalID: "u1"}); err != nil {
		t.Fatalf("AddCustomer failed: %v", err)
	}

	rows, err := s.Query("SELECT name, discord_id, customer_id FROM customers")
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	cols := rows[0].Columns()
	want := []string{"name", "discord_id", "customer_id"}
	for i, c := range want {
		if cols[i] != c {
			t.Fatalf("columns = %v, want %v", cols, want)
		}
	}
}
