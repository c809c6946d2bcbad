package sqlite

import "database/sql"

// Base schema DDL. Idempotent: every statement is IF NOT EXISTS. Later
// structural changes belong in migrate.go, never here.
const (
	createSchemaVersion = `CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TEXT NOT NULL,
    description TEXT
);`

	createProducts = `CREATE TABLE IF NOT EXISTS products (
    product_id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    category TEXT NOT NULL,
    subcategory TEXT,
    manufacturer TEXT,
    vendor TEXT,
    style TEXT,
    color TEXT,
    size TEXT,
    sku TEXT UNIQUE,
    quantity INTEGER DEFAULT 0,
    cost_price REAL,
    selling_price REAL,
    created_at TEXT DEFAULT CURRENT_TIMESTAMP,
    updated_at TEXT DEFAULT CURRENT_TIMESTAMP
);`

	createExpenses = `CREATE TABLE IF NOT EXISTS expenses (
    expense_id INTEGER PRIMARY KEY,
    date TEXT NOT NULL,
    vendor TEXT NOT NULL,
    amount REAL NOT NULL,
    category TEXT NOT NULL,
    description TEXT,
    receipt_image TEXT,
    created_at TEXT DEFAULT CURRENT_TIMESTAMP
);`

	createCustomers = `CREATE TABLE IF NOT EXISTS customers (
    customer_id INTEGER PRIMARY KEY,
    discord_id TEXT UNIQUE,
    name TEXT NOT NULL,
    contact_info TEXT,
    created_at TEXT DEFAULT CURRENT_TIMESTAMP
);`

	createSales = `CREATE TABLE IF NOT EXISTS sales (
    sale_id INTEGER PRIMARY KEY,
    customer_id INTEGER,
    date TEXT NOT NULL,
    total_amount REAL NOT NULL,
    payment_method TEXT,
    notes TEXT,
    created_at TEXT DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (customer_id) REFERENCES customers(customer_id)
);`

	createSaleItems = `CREATE TABLE IF NOT EXISTS sale_items (
    sale_item_id INTEGER PRIMARY KEY,
    sale_id INTEGER NOT NULL,
    product_id INTEGER NOT NULL,
    quantity INTEGER NOT NULL,
    price REAL NOT NULL,
    FOREIGN KEY (sale_id) REFERENCES sales(sale_id),
    FOREIGN KEY (product_id) REFERENCES products(product_id)
);`

	createAuditLog = `CREATE TABLE IF NOT EXISTS audit_log (
    log_id INTEGER PRIMARY KEY,
    action TEXT NOT NULL,
    entity_type TEXT NOT NULL,
    entity_id INTEGER NOT NULL,
    user_id TEXT NOT NULL,
    details TEXT,
    timestamp TEXT DEFAULT CURRENT_TIMESTAMP
);`

	createBackupLog = `CREATE TABLE IF NOT EXISTS backup_log (
    backup_id INTEGER PRIMARY KEY,
    filename TEXT NOT NULL,
    location TEXT NOT NULL,
    size INTEGER NOT NULL,
    timestamp TEXT DEFAULT CURRENT_TIMESTAMP
);`

	createInventoryHistory = `CREATE TABLE IF NOT EXISTS inventory_history (
    history_id INTEGER PRIMARY KEY,
    product_id INTEGER NOT NULL,
    previous_quantity INTEGER NOT NULL,
    new_quantity INTEGER NOT NULL,
    change_amount INTEGER NOT NULL,
    reason TEXT,
    user_id TEXT NOT NULL,
    timestamp TEXT DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (product_id) REFERENCES products(product_id)
);`
)

var schemaStatements = []string{
	createSchemaVersion,
	createProducts,
	createExpenses,
	createCustomers,
	createSales,
	createSaleItems,
	createAuditLog,
	createBackupLog,
	createInventoryHistory,
}

// initSchema creates the full table set. Runs once at construction, before
// migrations.
func (s *Store) initSchema(db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	s.log.WithField("path", s.cfg.Path).Debug("schema initialized")
	return nil
}
