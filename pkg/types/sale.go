package types

import "github.com/shopspring/decimal"

// Sale is one sale event. CustomerID is nil for anonymous sales.
type Sale struct {
	SaleID        int64
	CustomerID    *int64
	Date          string // ISO-8601 date (YYYY-MM-DD)
	TotalAmount   decimal.Decimal
	PaymentMethod string
	Notes         string
	CreatedAt     string
}

// SaleItem is one product line within a sale.
type SaleItem struct {
	SaleItemID int64
	SaleID     int64
	ProductID  int64
	Quantity   int64
	Price      decimal.Decimal // unit price
}

// SaleDetail is a sale assembled with its items and resolved customer.
// Items are joined rows carrying product_name and sku alongside the
// sale_items columns.
type SaleDetail struct {
	Sale     *Sale
	Items    []Row
	Customer *Customer // nil when the sale has no customer
}

// Fields renders the sale for insertion.
func (s *Sale) Fields() Fields {
	f := Fields{
		"date":         s.Date,
		"total_amount": s.TotalAmount.InexactFloat64(),
	}
	if s.CustomerID != nil {
		f["customer_id"] = *s.CustomerID
	} else {
		f["customer_id"] = nil
	}
	putNullString(f, "payment_method", s.PaymentMethod)
	putNullString(f, "notes", s.Notes)
	return f
}

// Fields renders the sale item for insertion. The owning sale_id is set by
// the store inside the sale transaction.
func (i *SaleItem) Fields() Fields {
	return Fields{
		"sale_id":    i.SaleID,
		"product_id": i.ProductID,
		"quantity":   i.Quantity,
		"price":      i.Price.InexactFloat64(),
	}
}

// SaleFromRow builds a Sale from a generic row.
func SaleFromRow(r Row) *Sale {
	return &Sale{
		SaleID:        r.Int("sale_id"),
		CustomerID:    r.NullInt("customer_id"),
		Date:          r.String("date"),
		TotalAmount:   r.Decimal("total_amount").Decimal,
		PaymentMethod: r.String("payment_method"),
		Notes:         r.String("notes"),
		CreatedAt:     r.String("created_at"),
	}
}

// SaleItemFromRow builds a SaleItem from a generic row.
func SaleItemFromRow(r Row) *SaleItem {
	return &SaleItem{
		SaleItemID: r.Int("sale_item_id"),
		SaleID:     r.Int("sale_id"),
		ProductID:  r.Int("product_id"),
		Quantity:   r.Int("quantity"),
		Price:      r.Decimal("price").Decimal,
	}
}
