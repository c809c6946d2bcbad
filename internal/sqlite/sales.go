package sqlite

import (
	"errors"
	"fmt"
	"time"

	"github.com/mesh-intelligence/stockbook/pkg/types"
)

// AddSale inserts a sale with its items inside one transaction, decrementing
// each referenced product's quantity by the item quantity. Any failure rolls
// back everything: no orphan items, no partial stock change.
//
// The stock decrement deliberately writes no inventory_history row, unlike
// AdjustProductQuantity which always pairs the change with one. The sale
// items themselves are the record of where the stock went.
func (s *Store) AddSale(sale *types.Sale, items []*types.SaleItem) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	db, err := s.conn()
	if err != nil {
		return 0, err
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}

	fields := sale.Fields()
	fields["created_at"] = time.Now().Format(time.RFC3339)
	saleID, err := s.insertInto(tx, types.TableSales, fields)
	if err != nil {
		tx.Rollback()
		s.log.WithError(err).Error("adding sale")
		return 0, fmt.Errorf("inserting sale: %w", err)
	}

	now := time.Now().Format(time.RFC3339)
	for _, item := range items {
		item.SaleID = saleID
		if _, err := s.insertInto(tx, types.TableSaleItems, item.Fields()); err != nil {
			tx.Rollback()
			s.log.WithError(err).WithField("product_id", item.ProductID).Error("adding sale item")
			return 0, fmt.Errorf("inserting sale item for product %d: %w", item.ProductID, err)
		}

		n, err := s.execStmt(tx,
			"UPDATE products SET quantity = quantity - ?, updated_at = ? WHERE product_id = ?",
			item.Quantity, now, item.ProductID)
		if err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("decrementing stock for product %d: %w", item.ProductID, err)
		}
		if n == 0 {
			tx.Rollback()
			return 0, fmt.Errorf("decrementing stock for product %d: %w", item.ProductID, types.ErrNotFound)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	s.invalidate(types.TableSales)
	s.invalidate(types.TableSaleItems)
	s.invalidate(types.TableProducts)

	sale.SaleID = saleID
	return saleID, nil
}

// GetSale assembles a sale with its items (joined with product name and SKU)
// and, when present, the resolved customer. Returns ErrNotFound for an
// unknown id. Cached.
func (s *Store) GetSale(id int64) (*types.SaleDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := cacheKey("getSale", types.TableSales, id)
	return cached(s.cache, key, 0, func() (*types.SaleDetail, error) {
		db, err := s.conn()
		if err != nil {
			return nil, err
		}

		row, err := s.queryOne(db, "SELECT * FROM sales WHERE sale_id = ?", id)
		if err != nil {
			return nil, err
		}
		sale := types.SaleFromRow(row)

		items, err := s.queryRows(db, `SELECT si.*, p.name AS product_name, p.sku
FROM sale_items si
JOIN products p ON si.product_id = p.product_id
WHERE si.sale_id = ?`, id)
		if err != nil {
			return nil, err
		}

		detail := &types.SaleDetail{Sale: sale, Items: items}
		if sale.CustomerID != nil {
			cust, err := s.queryOne(db, "SELECT * FROM customers WHERE customer_id = ?", *sale.CustomerID)
			if err != nil && !errors.Is(err, types.ErrNotFound) {
				return nil, err
			}
			if err == nil {
				detail.Customer = types.CustomerFromRow(cust)
			}
		}
		return detail, nil
	})
}

// ListSales returns sales newest first, joined with the customer name.
// Empty filters mean no constraint; customerID 0 means any customer. Cached
// with the short TTL.
func (s *Store) ListSales(startDate, endDate string, customerID int64) ([]types.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := cacheKey("listSales", types.TableSales, startDate, endDate, customerID)
	return cached(s.cache, key, volatileTTL, func() ([]types.Row, error) {
		db, err := s.conn()
		if err != nil {
			return nil, err
		}

		query := `SELECT s.*, c.name AS customer_name
FROM sales s
LEFT JOIN customers c ON s.customer_id = c.customer_id`
		var args []any
		var where []string
		if startDate != "" {
			where = append(where, "s.date >= ?")
			args = append(args, startDate)
		}
		if endDate != "" {
			where = append(where, "s.date <= ?")
			args = append(args, endDate)
		}
		if customerID != 0 {
			where = append(where, "s.customer_id = ?")
			args = append(args, customerID)
		}
		query += whereClause(where) + " ORDER BY s.date DESC"
		return s.queryRows(db, query, args...)
	})
}
