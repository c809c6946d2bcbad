package sqlite

import (
	"fmt"
	"time"

	"github.com/mesh-intelligence/stockbook/pkg/types"
)

// AddExpense records a new expense and returns its id.
func (s *Store) AddExpense(e *types.Expense) (int64, error) {
	fields := e.Fields()
	fields["created_at"] = time.Now().Format(time.RFC3339)

	id, err := s.Insert(types.TableExpenses, fields)
	if err != nil {
		return 0, fmt.Errorf("adding expense: %w", err)
	}
	e.ExpenseID = id
	return id, nil
}

// UpdateExpense applies fields to an existing expense. Returns false when no
// expense matched.
func (s *Store) UpdateExpense(id int64, fields types.Fields) (bool, error) {
	n, err := s.Update(types.TableExpenses, fields, "expense_id = ?", id)
	if err != nil {
		return false, fmt.Errorf("updating expense %d: %w", id, err)
	}
	return n > 0, nil
}

// GetExpense returns an expense by id, or ErrNotFound.
func (s *Store) GetExpense(id int64) (*types.Expense, error) {
	row, err := s.GetByID(types.TableExpenses, "expense_id", id)
	if err != nil {
		return nil, err
	}
	return types.ExpenseFromRow(row), nil
}

// ListExpenses returns expenses newest first. Empty filters mean no
// constraint; dates compare inclusively as ISO-8601 strings. Cached with the
// short TTL since expenses arrive continuously.
func (s *Store) ListExpenses(startDate, endDate, category string) ([]types.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := cacheKey("listExpenses", types.TableExpenses, startDate, endDate, category)
	return cached(s.cache, key, volatileTTL, func() ([]types.Row, error) {
		db, err := s.conn()
		if err != nil {
			return nil, err
		}

		query := "SELECT * FROM expenses"
		var args []any
		var where []string
		if startDate != "" {
			where = append(where, "date >= ?")
			args = append(args, startDate)
		}
		if endDate != "" {
			where = append(where, "date <= ?")
			args = append(args, endDate)
		}
		if category != "" {
			where = append(where, "category = ?")
			args = append(args, category)
		}
		query += whereClause(where) + " ORDER BY date DESC"
		return s.queryRows(db, query, args...)
	})
}
