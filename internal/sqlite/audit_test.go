package sqlite

import (
	"testing"

	"github.com/mesh-intelligence/stockbook/pkg/types"
)

func TestLogAudit(t *testing.T) {
	s := newTestStore(t)

	id, err := s.LogAudit("create", "product", 7, "user1", "initial import")
	if err != nil {
		t.Fatalf("LogAudit failed: %v", err)
	}
	if id == 0 {
		t.Fatal("LogAudit returned zero id")
	}

	rows, err := s.ListAuditLog("product", 10)
	if err != nil {
		t.Fatalf("ListAuditLog failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d entries, want 1", len(rows))
	}
	e := types.AuditEntryFromRow(rows[0])
	if e.Action != "create" || e.EntityID != 7 || e.UserID != "user1" {
		t.Errorf("got %+v", e)
	}
	if e.Timestamp == "" {
		t.Error("timestamp not stamped")
	}
}

func TestListAuditLog_FilterAndLimit(t *testing.T) {
	s := newTestStore(t)

	for i := int64(1); i <= 3; i++ {
		if _, err := s.LogAudit("update", "product", i, "user1", ""); err != nil {
			t.Fatalf("LogAudit failed: %v", err)
		}
	}
	if _, err := s.LogAudit("update", "expense", 1, "user1", ""); err != nil {
		t.Fatalf("LogAudit failed: %v", err)
	}

	rows, err := s.ListAuditLog("product", 0)
	if err != nil {
		t.Fatalf("ListAuditLog failed: %v", err)
	}
	if len(rows) != 3 {
		t.Errorf("entity filter returned %d entries, want 3", len(rows))
	}

	rows, err = s.ListAuditLog("", 2)
	if err != nil {
		t.Fatalf("ListAuditLog failed: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("limit 2 returned %d entries", len(rows))
	}
}

func TestInventoryHistory_Queries(t *testing.T) {
	s := newTestStore(t)
	idA := addTestProduct(t, s, "IH001", 10)
	idB := addTestProduct(t, s, "IH002", 10)

	for _, adj := range []struct {
		id    int64
		delta int64
	}{{idA, 5}, {idA, -2}, {idB, 3}} {
		if !s.AdjustProductQuantity(adj.id, adj.delta, "user1", "count") {
			t.Fatal("AdjustProductQuantity failed")
		}
	}

	rows, err := s.ListInventoryHistory(0, "", "", 0)
	if err != nil {
		t.Fatalf("ListInventoryHistory failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d history rows, want 3", len(rows))
	}
	// Joined product columns present.
	if !rows[0].Has("product_name") || !rows[0].Has("sku") {
		t.Errorf("missing joined product columns: %v", rows[0].Columns())
	}

	rows, err = s.GetProductInventoryHistory(idA, 0)
	if err != nil {
		t.Fatalf("GetProductInventoryHistory failed: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("product filter returned %d rows, want 2", len(rows))
	}
	for _, r := range rows {
		if r.Int("product_id") != idA {
			t.Errorf("foreign product in filtered history: %v", r)
		}
	}
}
