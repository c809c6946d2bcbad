package types

// Table names owned by the store.
const (
	TableProducts         = "products"
	TableExpenses         = "expenses"
	TableCustomers        = "customers"
	TableSales            = "sales"
	TableSaleItems        = "sale_items"
	TableAuditLog         = "audit_log"
	TableBackupLog        = "backup_log"
	TableInventoryHistory = "inventory_history"
	TableSchemaVersion    = "schema_version"
)

// KnownTables lists every data table in a fixed order. Used for backup
// metadata row counts; schema_version is excluded since the sidecar records
// the version separately.
var KnownTables = []string{
	TableProducts,
	TableExpenses,
	TableCustomers,
	TableSales,
	TableSaleItems,
	TableAuditLog,
	TableBackupLog,
	TableInventoryHistory,
}
