package types

// Customer is a counterparty to zero or more sales. ExternalID carries the
// identity of the customer in the calling system (e.g. a chat user id) and
// may be empty.
type Customer struct {
	CustomerID  int64
	ExternalID  string
	Name        string
	ContactInfo string
	CreatedAt   string
}

// Fields renders the customer for insertion.
func (c *Customer) Fields() Fields {
	f := Fields{"name": c.Name}
	putNullString(f, "discord_id", c.ExternalID)
	putNullString(f, "contact_info", c.ContactInfo)
	return f
}

// CustomerFromRow builds a Customer from a generic row.
func CustomerFromRow(r Row) *Customer {
	return &Customer{
		CustomerID:  r.Int("customer_id"),
		ExternalID:  r.String("discord_id"),
		Name:        r.String("name"),
		ContactInfo: r.String("contact_info"),
		CreatedAt:   r.String("created_at"),
	}
}
