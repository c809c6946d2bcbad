package sqlite

import (
	"errors"
	"testing"

	"github.com/mesh-intelligence/stockbook/pkg/types"
)

func TestCustomer_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	id, err := s.AddCustomer(&types.Customer{
		Name:        "Alice",
		ExternalID:  "discord-1234",
		ContactInfo: "alice@example.com",
	})
	if err != nil {
		t.Fatalf("AddCustomer failed: %v", err)
	}

	c, err := s.GetCustomer(id)
	if err != nil {
		t.Fatalf("GetCustomer failed: %v", err)
	}
	if c.Name != "Alice" || c.ExternalID != "discord-1234" {
		t.Errorf("got %+v", c)
	}

	c, err = s.GetCustomerByExternalID("discord-1234")
	if err != nil {
		t.Fatalf("GetCustomerByExternalID failed: %v", err)
	}
	if c.CustomerID != id {
		t.Errorf("lookup by external id returned %d, want %d", c.CustomerID, id)
	}

	if _, err := s.GetCustomerByExternalID("discord-9999"); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	ok, err := s.UpdateCustomer(id, types.Fields{"contact_info": "alice@new.example.com"})
	if err != nil || !ok {
		t.Fatalf("UpdateCustomer = %v, %v", ok, err)
	}
	c, err = s.GetCustomer(id)
	if err != nil {
		t.Fatalf("GetCustomer failed: %v", err)
	}
	if c.ContactInfo != "alice@new.example.com" {
		t.Errorf("contact_info = %q after update", c.ContactInfo)
	}
}

func TestAddCustomer_DuplicateExternalID(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.AddCustomer(&types.Customer{Name: "Alice", ExternalID: "dup-1"}); err != nil {
		t.Fatalf("AddCustomer failed: %v", err)
	}
	_, err := s.AddCustomer(&types.Customer{Name: "Bob", ExternalID: "dup-1"})
	if !errors.Is(err, types.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestListCustomers(t *testing.T) {
	s := newTestStore(t)

	for _, name := range []string{"Carol", "Dan"} {
		if _, err := s.AddCustomer(&types.Customer{Name: name}); err != nil {
			t.Fatalf("AddCustomer(%s) failed: %v", name, err)
		}
	}

	rows, err := s.ListCustomers()
	if err != nil {
		t.Fatalf("ListCustomers failed: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("got %d customers, want 2", len(rows))
	}
}
