package types

// InventoryChange is one immutable inventory-history record. For every row,
// NewQuantity-PreviousQuantity equals ChangeAmount.
type InventoryChange struct {
	HistoryID        int64
	ProductID        int64
	PreviousQuantity int64
	NewQuantity      int64
	ChangeAmount     int64
	Reason           string
	UserID           string
	Timestamp        string
}

// InventoryChangeFromRow builds an InventoryChange from a generic row.
func InventoryChangeFromRow(r Row) *InventoryChange {
	return &InventoryChange{
		HistoryID:        r.Int("history_id"),
		ProductID:        r.Int("product_id"),
		PreviousQuantity: r.Int("previous_quantity"),
		NewQuantity:      r.Int("new_quantity"),
		ChangeAmount:     r.Int("change_amount"),
		Reason:           r.String("reason"),
		UserID:           r.String("user_id"),
		Timestamp:        r.String("timestamp"),
	}
}
