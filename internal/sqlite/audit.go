package sqlite

import (
	"fmt"
	"time"

	"github.com/mesh-intelligence/stockbook/pkg/types"
)

// LogAudit appends one audit record for a mutating action. details may be
// empty.
func (s *Store) LogAudit(action, entityType string, entityID int64, userID, details string) (int64, error) {
	id, err := s.Insert(types.TableAuditLog, types.Fields{
		"action":      action,
		"entity_type": entityType,
		"entity_id":   entityID,
		"user_id":     userID,
		"details":     nullable(details),
		"timestamp":   time.Now().Format(time.RFC3339),
	})
	if err != nil {
		return 0, fmt.Errorf("writing audit entry: %w", err)
	}
	return id, nil
}

// ListAuditLog returns audit entries newest first. Empty entityType means no
// constraint; limit <= 0 means the default. Cached with the short TTL.
func (s *Store) ListAuditLog(entityType string, limit int) ([]types.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	key := cacheKey("listAuditLog", types.TableAuditLog, entityType, limit)
	return cached(s.cache, key, volatileTTL, func() ([]types.Row, error) {
		db, err := s.conn()
		if err != nil {
			return nil, err
		}

		query := "SELECT * FROM audit_log"
		var args []any
		if entityType != "" {
			query += " WHERE entity_type = ?"
			args = append(args, entityType)
		}
		query += " ORDER BY timestamp DESC LIMIT ?"
		args = append(args, limit)
		return s.queryRows(db, query, args...)
	})
}
