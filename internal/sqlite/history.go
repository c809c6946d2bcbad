package sqlite

import (
	"github.com/mesh-intelligence/stockbook/pkg/types"
)

// defaultHistoryLimit bounds history queries when the caller passes no limit.
const defaultHistoryLimit = 100

// ListInventoryHistory returns inventory-history entries joined with product
// name, SKU and category, newest first. productID 0 and empty dates mean no
// constraint; limit <= 0 means the default. Cached with the short TTL.
func (s *Store) ListInventoryHistory(productID int64, startDate, endDate string, limit int) ([]types.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	key := cacheKey("listInventoryHistory", types.TableInventoryHistory, productID, startDate, endDate, limit)
	return cached(s.cache, key, volatileTTL, func() ([]types.Row, error) {
		db, err := s.conn()
		if err != nil {
			return nil, err
		}

		query := `SELECT h.*, p.name AS product_name, p.sku, p.category
FROM inventory_history h
JOIN products p ON h.product_id = p.product_id`
		var args []any
		var where []string
		if productID != 0 {
			where = append(where, "h.product_id = ?")
			args = append(args, productID)
		}
		if startDate != "" {
			where = append(where, "h.timestamp >= ?")
			args = append(args, startDate+"T00:00:00")
		}
		if endDate != "" {
			where = append(where, "h.timestamp <= ?")
			args = append(args, endDate+"T23:59:59")
		}
		query += whereClause(where) + " ORDER BY h.timestamp DESC LIMIT ?"
		args = append(args, limit)
		return s.queryRows(db, query, args...)
	})
}

// GetProductInventoryHistory returns the recent history of one product.
func (s *Store) GetProductInventoryHistory(productID int64, limit int) ([]types.Row, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.ListInventoryHistory(productID, "", "", limit)
}
