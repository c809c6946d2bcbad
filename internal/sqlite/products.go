package sqlite

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mesh-intelligence/stockbook/pkg/types"
)

// AddProduct inserts a new catalog product. Returns ErrDuplicate when the
// SKU already exists.
func (s *Store) AddProduct(p *types.Product) (int64, error) {
	fields := p.Fields()
	now := time.Now().Format(time.RFC3339)
	fields["created_at"] = now
	fields["updated_at"] = now

	id, err := s.Insert(types.TableProducts, fields)
	if err != nil {
		return 0, fmt.Errorf("adding product %q: %w", p.SKU, err)
	}
	p.ProductID = id
	return id, nil
}

// UpdateProduct applies fields to an existing product and stamps updated_at.
// Quantity must not be updated this way; use AdjustProductQuantity so the
// change is paired with a history entry.
func (s *Store) UpdateProduct(id int64, fields types.Fields) (bool, error) {
	fields["updated_at"] = time.Now().Format(time.RFC3339)
	n, err := s.Update(types.TableProducts, fields, "product_id = ?", id)
	if err != nil {
		return false, fmt.Errorf("updating product %d: %w", id, err)
	}
	return n > 0, nil
}

// GetProduct returns a product by id, or ErrNotFound.
func (s *Store) GetProduct(id int64) (*types.Product, error) {
	row, err := s.GetByID(types.TableProducts, "product_id", id)
	if err != nil {
		return nil, err
	}
	return types.ProductFromRow(row), nil
}

// GetProductBySKU returns a product by SKU, or ErrNotFound. Cached.
func (s *Store) GetProductBySKU(sku string) (*types.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := cacheKey("getProductBySKU", types.TableProducts, sku)
	row, err := cached(s.cache, key, 0, func() (types.Row, error) {
		db, err := s.conn()
		if err != nil {
			return types.Row{}, err
		}
		return s.queryOne(db, "SELECT * FROM products WHERE sku = ?", sku)
	})
	if err != nil {
		return nil, err
	}
	return types.ProductFromRow(row), nil
}

// ListProducts returns products ordered by name. Empty category or
// subcategory means no constraint. Cached.
func (s *Store) ListProducts(category, subcategory string) ([]types.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := cacheKey("listProducts", types.TableProducts, category, subcategory)
	return cached(s.cache, key, 0, func() ([]types.Row, error) {
		db, err := s.conn()
		if err != nil {
			return nil, err
		}

		query := "SELECT * FROM products"
		var args []any
		var where []string
		if category != "" {
			where = append(where, "category = ?")
			args = append(args, category)
		}
		if subcategory != "" {
			where = append(where, "subcategory = ?")
			args = append(args, subcategory)
		}
		query += whereClause(where) + " ORDER BY name"
		return s.queryRows(db, query, args...)
	})
}

// DeleteProduct removes a product. Refused with ErrReferenced while any sale
// item references it.
func (s *Store) DeleteProduct(id int64, userID string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	db, err := s.conn()
	if err != nil {
		return err
	}

	var refs int64
	s.queries.Add(1)
	if err := db.QueryRow("SELECT COUNT(*) FROM sale_items WHERE product_id = ?", id).Scan(&refs); err != nil {
		return fmt.Errorf("checking references for product %d: %w", id, err)
	}
	if refs > 0 {
		return fmt.Errorf("product %d has %d sale items: %w", id, refs, types.ErrReferenced)
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if _, err := s.execStmt(tx, "DELETE FROM products WHERE product_id = ?", id); err != nil {
		tx.Rollback()
		return fmt.Errorf("deleting product %d: %w", id, err)
	}
	if _, err := s.insertInto(tx, types.TableAuditLog, types.Fields{
		"action":      "delete",
		"entity_type": "product",
		"entity_id":   id,
		"user_id":     userID,
		"details":     nil,
		"timestamp":   time.Now().Format(time.RFC3339),
	}); err != nil {
		tx.Rollback()
		return fmt.Errorf("logging product delete: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidate(types.TableProducts)
	s.invalidate(types.TableAuditLog)
	return nil
}

// AdjustProductQuantity changes a product's on-hand quantity by delta and
// records one audit entry and one inventory-history row in the same unit of
// work. Returns false without partial effects when the product is absent or
// any write fails; failures are logged, not returned. No floor is enforced,
// so negative results are possible and are the caller's responsibility.
func (s *Store) AdjustProductQuantity(id int64, delta int64, userID, reason string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	db, err := s.conn()
	if err != nil {
		s.log.WithError(err).Error("adjust quantity: opening connection")
		return false
	}

	tx, err := db.Begin()
	if err != nil {
		s.log.WithError(err).Error("adjust quantity: beginning transaction")
		return false
	}

	row, err := s.queryOne(tx, "SELECT quantity FROM products WHERE product_id = ?", id)
	if err != nil {
		tx.Rollback()
		if !errors.Is(err, types.ErrNotFound) {
			s.log.WithError(err).WithField("product_id", id).Error("adjust quantity: reading product")
		}
		return false
	}
	current := row.Int("quantity")
	next := current + delta
	now := time.Now().Format(time.RFC3339)

	if _, err := s.updateWhere(tx, types.TableProducts,
		types.Fields{"quantity": next, "updated_at": now},
		"product_id = ?", id); err != nil {
		tx.Rollback()
		s.log.WithError(err).WithField("product_id", id).Error("adjust quantity: updating product")
		return false
	}

	details := fmt.Sprintf("Quantity changed from %d to %d", current, next)
	if reason != "" {
		details += ". Reason: " + reason
	}
	if _, err := s.insertInto(tx, types.TableAuditLog, types.Fields{
		"action":      "adjust_quantity",
		"entity_type": "product",
		"entity_id":   id,
		"user_id":     userID,
		"details":     details,
		"timestamp":   now,
	}); err != nil {
		tx.Rollback()
		s.log.WithError(err).Error("adjust quantity: writing audit entry")
		return false
	}

	if _, err := s.insertInto(tx, types.TableInventoryHistory, types.Fields{
		"product_id":        id,
		"previous_quantity": current,
		"new_quantity":      next,
		"change_amount":     delta,
		"reason":            nullable(reason),
		"user_id":           userID,
		"timestamp":         now,
	}); err != nil {
		tx.Rollback()
		s.log.WithError(err).Error("adjust quantity: writing inventory history")
		return false
	}

	if err := tx.Commit(); err != nil {
		s.log.WithError(err).Error("adjust quantity: committing")
		return false
	}

	s.invalidate(types.TableProducts)
	s.invalidate(types.TableAuditLog)
	s.invalidate(types.TableInventoryHistory)
	return true
}

// whereClause joins conditions into a WHERE clause, or "" when empty.
func whereClause(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
