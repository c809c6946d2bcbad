package types

import "github.com/shopspring/decimal"

// Product categories. Blanks are stock for pressing, DTF transfers are
// produced goods, other covers everything else.
const (
	CategoryBlank = "blank"
	CategoryDTF   = "dtf"
	CategoryOther = "other"
)

// Product subcategories for blanks.
const (
	SubcategoryForPressing = "for_pressing"
	SubcategoryReadyToSell = "ready_to_sell"
)

// Product is one stocked catalog item. Quantity is only ever changed through
// Store.AdjustProductQuantity or a sale, never by direct field update.
type Product struct {
	ProductID    int64
	Name         string
	Category     string
	Subcategory  string
	Manufacturer string
	Vendor       string
	Style        string
	Color        string
	Size         string
	SKU          string
	Quantity     int64
	CostPrice    decimal.NullDecimal
	SellingPrice decimal.NullDecimal
	CreatedAt    string
	UpdatedAt    string
}

// Fields renders the product as a column→value map for insertion. Zero-value
// optional columns are stored as NULL; timestamps are stamped by the store.
func (p *Product) Fields() Fields {
	f := Fields{
		"name":     p.Name,
		"category": p.Category,
		"sku":      p.SKU,
		"quantity": p.Quantity,
	}
	putNullString(f, "subcategory", p.Subcategory)
	putNullString(f, "manufacturer", p.Manufacturer)
	putNullString(f, "vendor", p.Vendor)
	putNullString(f, "style", p.Style)
	putNullString(f, "color", p.Color)
	putNullString(f, "size", p.Size)
	putNullDecimal(f, "cost_price", p.CostPrice)
	putNullDecimal(f, "selling_price", p.SellingPrice)
	return f
}

// ProductFromRow builds a Product from a generic row.
func ProductFromRow(r Row) *Product {
	return &Product{
		ProductID:    r.Int("product_id"),
		Name:         r.String("name"),
		Category:     r.String("category"),
		Subcategory:  r.String("subcategory"),
		Manufacturer: r.String("manufacturer"),
		Vendor:       r.String("vendor"),
		Style:        r.String("style"),
		Color:        r.String("color"),
		Size:         r.String("size"),
		SKU:          r.String("sku"),
		Quantity:     r.Int("quantity"),
		CostPrice:    r.Decimal("cost_price"),
		SellingPrice: r.Decimal("selling_price"),
		CreatedAt:    r.String("created_at"),
		UpdatedAt:    r.String("updated_at"),
	}
}

func putNullString(f Fields, col, v string) {
	if v == "" {
		f[col] = nil
		return
	}
	f[col] = v
}

func putNullDecimal(f Fields, col string, d decimal.NullDecimal) {
	if !d.Valid {
		f[col] = nil
		return
	}
	f[col], _ = d.Decimal.Float64()
}
