package types

// AuditEntry is one append-only audit record of a mutating action.
type AuditEntry struct {
	LogID      int64
	Action     string
	EntityType string
	EntityID   int64
	UserID     string
	Details    string
	Timestamp  string
}

// AuditEntryFromRow builds an AuditEntry from a generic row.
func AuditEntryFromRow(r Row) *AuditEntry {
	return &AuditEntry{
		LogID:      r.Int("log_id"),
		Action:     r.String("action"),
		EntityType: r.String("entity_type"),
		EntityID:   r.Int("entity_id"),
		UserID:     r.String("user_id"),
		Details:    r.String("details"),
		Timestamp:  r.String("timestamp"),
	}
}
