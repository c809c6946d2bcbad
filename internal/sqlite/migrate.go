package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// targetVersion is the schema version this build migrates to.
const targetVersion = 4

// migration is one forward-only schema step. Scripts may hold several
// statements separated by semicolons.
type migration struct {
	version     int
	description string
	script      string
}

// migrations is the fixed, ordered migration list. Versions with no entry
// (version 1 predates the version table) are skipped and never recorded.
// There is no rollback path.
var migrations = []migration{
	{
		version:     2,
		description: "add inventory_history table",
		script: `CREATE TABLE IF NOT EXISTS inventory_history (
    history_id INTEGER PRIMARY KEY,
    product_id INTEGER NOT NULL,
    previous_quantity INTEGER NOT NULL,
    new_quantity INTEGER NOT NULL,
    change_amount INTEGER NOT NULL,
    reason TEXT,
    user_id TEXT NOT NULL,
    timestamp TEXT DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (product_id) REFERENCES products(product_id)
);`,
	},
	{
		version:     3,
		description: "add query indexes",
		script: `CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);
CREATE INDEX IF NOT EXISTS idx_products_sku ON products(sku);
CREATE INDEX IF NOT EXISTS idx_products_name ON products(name);
CREATE INDEX IF NOT EXISTS idx_products_quantity ON products(quantity);
CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses(date);
CREATE INDEX IF NOT EXISTS idx_expenses_category ON expenses(category);
CREATE INDEX IF NOT EXISTS idx_expenses_vendor ON expenses(vendor);
CREATE INDEX IF NOT EXISTS idx_customers_discord_id ON customers(discord_id);
CREATE INDEX IF NOT EXISTS idx_customers_name ON customers(name);
CREATE INDEX IF NOT EXISTS idx_sales_date ON sales(date);
CREATE INDEX IF NOT EXISTS idx_sales_customer_id ON sales(customer_id);
CREATE INDEX IF NOT EXISTS idx_sales_payment_method ON sales(payment_method);
CREATE INDEX IF NOT EXISTS idx_sale_items_sale_id ON sale_items(sale_id);
CREATE INDEX IF NOT EXISTS idx_sale_items_product_id ON sale_items(product_id);
CREATE INDEX IF NOT EXISTS idx_inventory_history_product_id ON inventory_history(product_id);
CREATE INDEX IF NOT EXISTS idx_inventory_history_timestamp ON inventory_history(timestamp);
CREATE INDEX IF NOT EXISTS idx_inventory_history_user_id ON inventory_history(user_id);
CREATE INDEX IF NOT EXISTS idx_audit_log_entity_type ON audit_log(entity_type);
CREATE INDEX IF NOT EXISTS idx_audit_log_entity_id ON audit_log(entity_id);
CREATE INDEX IF NOT EXISTS idx_audit_log_user_id ON audit_log(user_id);
CREATE INDEX IF NOT EXISTS idx_audit_log_timestamp ON audit_log(timestamp);`,
	},
	{
		version:     4,
		description: "extend backup_log with integrity and cloud columns",
		script: `ALTER TABLE backup_log ADD COLUMN checksum TEXT;
ALTER TABLE backup_log ADD COLUMN compressed INTEGER DEFAULT 0;
ALTER TABLE backup_log ADD COLUMN metadata TEXT;
ALTER TABLE backup_log ADD COLUMN verified INTEGER DEFAULT 0;
ALTER TABLE backup_log ADD COLUMN verification_date TEXT;
ALTER TABLE backup_log ADD COLUMN cloud_url TEXT;
ALTER TABLE backup_log ADD COLUMN cloud_provider TEXT;`,
	},
}

// currentVersion returns MAX(version) from schema_version, or 0 when the
// table is empty or absent.
func currentVersion(db *sql.DB) (int, error) {
	var v sql.NullInt64
	err := db.QueryRow("SELECT MAX(version) FROM schema_version").Scan(&v)
	if err != nil {
		if isMissingTable(err) {
			return 0, nil
		}
		return 0, err
	}
	if !v.Valid {
		return 0, nil
	}
	return int(v.Int64), nil
}

// applyMigrations brings the schema from currentVersion to targetVersion,
// recording each applied step. Every step commits on its own, so a crash
// mid-migration resumes from the first unapplied version on next startup.
func (s *Store) applyMigrations(db *sql.DB) error {
	current, err := currentVersion(db)
	if err != nil {
		return err
	}
	if current >= targetVersion {
		return nil
	}

	s.log.WithFields(map[string]any{
		"from": current,
		"to":   targetVersion,
	}).Info("upgrading database schema")

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if m.version > targetVersion {
			break
		}
		if err := s.applyMigration(db, m); err != nil {
			return fmt.Errorf("migration to version %d: %w", m.version, err)
		}
	}
	return nil
}

func (s *Store) applyMigration(db *sql.DB, m migration) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	for _, stmt := range splitScript(m.script) {
		if _, err := tx.Exec(stmt); err != nil {
			tx.Rollback()
			return err
		}
	}
	_, err = tx.Exec(
		"INSERT INTO schema_version (version, applied_at, description) VALUES (?, ?, ?)",
		m.version, time.Now().Format(time.RFC3339), m.description)
	if err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.log.WithField("version", m.version).Info("migration applied")
	return nil
}

// splitScript splits a multi-statement script on semicolons. Sufficient for
// the DDL in the migration table, which carries no string literals with
// semicolons.
func splitScript(script string) []string {
	var out []string
	for _, stmt := range strings.Split(script, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

func isMissingTable(err error) bool {
	return err != nil && strings.Contains(err.Error(), "no such table")
}
