package types

import "github.com/shopspring/decimal"

// Expense is one recorded business expense. Immutable once created except
// through Store.UpdateExpense.
type Expense struct {
	ExpenseID    int64
	Date         string // ISO-8601 date (YYYY-MM-DD)
	Vendor       string
	Amount       decimal.Decimal
	Category     string
	Description  string
	ReceiptImage string // path or URL to the receipt image
	CreatedAt    string
}

// Fields renders the expense for insertion.
func (e *Expense) Fields() Fields {
	f := Fields{
		"date":     e.Date,
		"vendor":   e.Vendor,
		"amount":   e.Amount.InexactFloat64(),
		"category": e.Category,
	}
	putNullString(f, "description", e.Description)
	putNullString(f, "receipt_image", e.ReceiptImage)
	return f
}

// ExpenseFromRow builds an Expense from a generic row.
func ExpenseFromRow(r Row) *Expense {
	return &Expense{
		ExpenseID:    r.Int("expense_id"),
		Date:         r.String("date"),
		Vendor:       r.String("vendor"),
		Amount:       r.Decimal("amount").Decimal,
		Category:     r.String("category"),
		Description:  r.String("description"),
		ReceiptImage: r.String("receipt_image"),
		CreatedAt:    r.String("created_at"),
	}
}
