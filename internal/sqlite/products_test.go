package sqlite

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mesh-intelligence/stockbook/pkg/types"
)

func addTestProduct(t *testing.T, s *Store, sku string, quantity int64) int64 {
	t.Helper()
	id, err := s.AddProduct(&types.Product{
		Name:         "Test Shirt " + sku,
		Category:     types.CategoryBlank,
		Subcategory:  types.SubcategoryForPressing,
		SKU:          sku,
		Quantity:     quantity,
		SellingPrice: decimal.NewNullDecimal(decimal.NewFromFloat(9.99)),
	})
	if err != nil {
		t.Fatalf("AddProduct(%s) failed: %v", sku, err)
	}
	return id
}

func countRows(t *testing.T, s *Store, table string) int64 {
	t.Helper()
	rows, err := s.Query("SELECT COUNT(*) AS n FROM " + table)
	if err != nil {
		t.Fatalf("counting %s: %v", table, err)
	}
	return rows[0].Int("n")
}

func TestAddProduct_DuplicateSKU(t *testing.T) {
	s := newTestStore(t)

	addTestProduct(t, s, "TS001", 10)
	before := countRows(t, s, types.TableProducts)

	_, err := s.AddProduct(&types.Product{Name: "Dup", Category: types.CategoryOther, SKU: "TS001"})
	if !errors.Is(err, types.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if got := countRows(t, s, types.TableProducts); got != before {
		t.Errorf("row count changed on failed insert: %d, want %d", got, before)
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.GetProduct(999); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetProductBySKU(t *testing.T) {
	s := newTestStore(t)

	id := addTestProduct(t, s, "TS002", 4)
	p, err := s.GetProductBySKU("TS002")
	if err != nil {
		t.Fatalf("GetProductBySKU failed: %v", err)
	}
	if p.ProductID != id || p.Quantity != 4 {
		t.Errorf("got %+v, want id %d quantity 4", p, id)
	}
	if !p.SellingPrice.Valid || !p.SellingPrice.Decimal.Equal(decimal.NewFromFloat(9.99)) {
		t.Errorf("selling price = %+v, want 9.99", p.SellingPrice)
	}
}

// Cache transparency: a repeated read with no intervening write returns the
// same result without hitting the engine again.
func TestListProducts_CacheTransparency(t *testing.T) {
	s := newTestStore(t)
	addTestProduct(t, s, "TS003", 1)

	first, err := s.ListProducts(types.CategoryBlank, "")
	if err != nil {
		t.Fatalf("ListProducts failed: %v", err)
	}
	queriesAfterFirst := s.queries.Load()

	second, err := s.ListProducts(types.CategoryBlank, "")
	if err != nil {
		t.Fatalf("ListProducts failed: %v", err)
	}
	if s.queries.Load() != queriesAfterFirst {
		t.Error("second call re-executed the underlying query")
	}
	if len(first) != len(second) || first[0].String("sku") != second[0].String("sku") {
		t.Errorf("cached result differs: %v vs %v", first, second)
	}
}

// Cache invalidation: after a write to products, cached product reads return
// fresh data.
func TestListProducts_InvalidatedByWrite(t *testing.T) {
	s := newTestStore(t)
	addTestProduct(t, s, "TS004", 1)

	rows, err := s.ListProducts("", "")
	if err != nil {
		t.Fatalf("ListProducts failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d products, want 1", len(rows))
	}

	addTestProduct(t, s, "TS005", 1)
	rows, err = s.ListProducts("", "")
	if err != nil {
		t.Fatalf("ListProducts failed: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("stale cached list after write: %d products, want 2", len(rows))
	}
}

func TestAdjustProductQuantity_PairsHistory(t *testing.T) {
	s := newTestStore(t)
	id := addTestProduct(t, s, "TS006", 10)

	deltas := []int64{5, -3, 7, -2}
	for _, d := range deltas {
		if !s.AdjustProductQuantity(id, d, "user1", "cycle count") {
			t.Fatalf("AdjustProductQuantity(%d) failed", d)
		}
	}

	p, err := s.GetProduct(id)
	if err != nil {
		t.Fatalf("GetProduct failed: %v", err)
	}
	want := int64(10 + 5 - 3 + 7 - 2)
	if p.Quantity != want {
		t.Errorf("quantity = %d, want %d", p.Quantity, want)
	}

	rows, err := s.Query(
		"SELECT * FROM inventory_history WHERE product_id = ? ORDER BY history_id", id)
	if err != nil {
		t.Fatalf("querying history: %v", err)
	}
	if len(rows) != len(deltas) {
		t.Fatalf("got %d history rows, want %d", len(rows), len(deltas))
	}
	for i, r := range rows {
		h := types.InventoryChangeFromRow(r)
		if h.NewQuantity-h.PreviousQuantity != h.ChangeAmount {
			t.Errorf("row %d: new-previous = %d, change = %d",
				i, h.NewQuantity-h.PreviousQuantity, h.ChangeAmount)
		}
		if h.ChangeAmount != deltas[i] {
			t.Errorf("row %d: change = %d, want %d", i, h.ChangeAmount, deltas[i])
		}
		if h.UserID != "user1" {
			t.Errorf("row %d: user = %q, want user1", i, h.UserID)
		}
	}

	// One audit entry per successful adjustment.
	audits, err := s.Query(
		"SELECT * FROM audit_log WHERE entity_type = 'product' AND entity_id = ? AND action = 'adjust_quantity'", id)
	if err != nil {
		t.Fatalf("querying audit log: %v", err)
	}
	if len(audits) != len(deltas) {
		t.Errorf("got %d audit entries, want %d", len(audits), len(deltas))
	}
}

func TestAdjustProductQuantity_AbsentProduct(t *testing.T) {
	s := newTestStore(t)

	if s.AdjustProductQuantity(12345, 1, "user1", "") {
		t.Error("adjustment of absent product should report false")
	}
	if n := countRows(t, s, types.TableInventoryHistory); n != 0 {
		t.Errorf("failed adjustment left %d history rows", n)
	}
	if n := countRows(t, s, types.TableAuditLog); n != 0 {
		t.Errorf("failed adjustment left %d audit rows", n)
	}
}

func TestDeleteProduct_RefusedWhileReferenced(t *testing.T) {
	s := newTestStore(t)
	id := addTestProduct(t, s, "TS007", 5)

	_, err := s.AddSale(&types.Sale{Date: "2026-08-01", TotalAmount: decimal.NewFromInt(10)},
		[]*types.SaleItem{{ProductID: id, Quantity: 1, Price: decimal.NewFromInt(10)}})
	if err != nil {
		t.Fatalf("AddSale failed: %v", err)
	}

	if err := s.DeleteProduct(id, "user1"); !errors.Is(err, types.ErrReferenced) {
		t.Fatalf("expected ErrReferenced, got %v", err)
	}
	if _, err := s.GetProduct(id); err != nil {
		t.Errorf("product should survive refused delete: %v", err)
	}
}

func TestUpdateProduct(t *testing.T) {
	s := newTestStore(t)
	id := addTestProduct(t, s, "TS008", 5)

	ok, err := s.UpdateProduct(id, types.Fields{"color": "black"})
	if err != nil || !ok {
		t.Fatalf("UpdateProduct = %v, %v", ok, err)
	}

	p, err := s.GetProduct(id)
	if err != nil {
		t.Fatalf("GetProduct failed: %v", err)
	}
	if p.Color != "black" {
		t.Errorf("color = %q, want black", p.Color)
	}

	ok, err = s.UpdateProduct(999, types.Fields{"color": "red"})
	if err != nil {
		t.Fatalf("UpdateProduct failed: %v", err)
	}
	if ok {
		t.Error("update of absent product should report false")
	}
}
