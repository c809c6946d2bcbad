package sqlite

import (
	"fmt"
	"time"

	"github.com/mesh-intelligence/stockbook/pkg/types"
)

// AddCustomer records a new customer and returns its id. Returns
// ErrDuplicate when the external id is already registered.
func (s *Store) AddCustomer(c *types.Customer) (int64, error) {
	fields := c.Fields()
	fields["created_at"] = time.Now().Format(time.RFC3339)

	id, err := s.Insert(types.TableCustomers, fields)
	if err != nil {
		return 0, fmt.Errorf("adding customer: %w", err)
	}
	c.CustomerID = id
	return id, nil
}

// UpdateCustomer applies fields to an existing customer. Returns false when
// no customer matched.
func (s *Store) UpdateCustomer(id int64, fields types.Fields) (bool, error) {
	n, err := s.Update(types.TableCustomers, fields, "customer_id = ?", id)
	if err != nil {
		return false, fmt.Errorf("updating customer %d: %w", id, err)
	}
	return n > 0, nil
}

// GetCustomer returns a customer by id, or ErrNotFound.
func (s *Store) GetCustomer(id int64) (*types.Customer, error) {
	row, err := s.GetByID(types.TableCustomers, "customer_id", id)
	if err != nil {
		return nil, err
	}
	return types.CustomerFromRow(row), nil
}

// GetCustomerByExternalID returns the customer carrying the given external
// identity, or ErrNotFound. Cached.
func (s *Store) GetCustomerByExternalID(externalID string) (*types.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := cacheKey("getCustomerByExternalID", types.TableCustomers, externalID)
	row, err := cached(s.cache, key, 0, func() (types.Row, error) {
		db, err := s.conn()
		if err != nil {
			return types.Row{}, err
		}
		return s.queryOne(db, "SELECT * FROM customers WHERE discord_id = ?", externalID)
	})
	if err != nil {
		return nil, err
	}
	return types.CustomerFromRow(row), nil
}

// ListCustomers returns all customers ordered by name. Cached.
func (s *Store) ListCustomers() ([]types.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := cacheKey("listCustomers", types.TableCustomers)
	return cached(s.cache, key, 0, func() ([]types.Row, error) {
		db, err := s.conn()
		if err != nil {
			return nil, err
		}
		return s.queryRows(db, "SELECT * FROM customers ORDER BY name")
	})
}
