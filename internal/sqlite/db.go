package sqlite

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/mesh-intelligence/stockbook/pkg/types"
)

// dbtx is satisfied by both *sql.DB and *sql.Tx so the generic helpers work
// inside and outside explicit transactions.
type dbtx interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// Query executes a read-only statement and returns every result row as an
// ordered column→value mapping.
func (s *Store) Query(query string, args ...any) ([]types.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	db, err := s.conn()
	if err != nil {
		return nil, err
	}
	return s.queryRows(db, query, args...)
}

// Execute runs an INSERT, UPDATE or DELETE supplied as raw SQL and returns
// the number of affected rows. The target table is parsed from the leading
// keyword and its cached reads are invalidated.
func (s *Store) Execute(query string, args ...any) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	db, err := s.conn()
	if err != nil {
		return 0, err
	}
	n, err := s.execStmt(db, query, args...)
	if err != nil {
		return 0, err
	}
	if table := tableFromStatement(query); table != "" {
		s.invalidate(table)
	}
	return n, nil
}

// Insert builds a parametrized INSERT for table from fields and returns the
// engine-assigned row id. Returns ErrUnknownTable for a table the store does
// not own.
func (s *Store) Insert(table string, fields types.Fields) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !knownTable(table) {
		return 0, fmt.Errorf("%w: %s", types.ErrUnknownTable, table)
	}
	db, err := s.conn()
	if err != nil {
		return 0, err
	}
	id, err := s.insertInto(db, table, fields)
	if err != nil {
		return 0, err
	}
	s.invalidate(table)
	return id, nil
}

// Update applies fields to the rows of table matching the condition and
// returns the number of affected rows.
func (s *Store) Update(table string, fields types.Fields, condition string, args ...any) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !knownTable(table) {
		return 0, fmt.Errorf("%w: %s", types.ErrUnknownTable, table)
	}
	db, err := s.conn()
	if err != nil {
		return 0, err
	}
	n, err := s.updateWhere(db, table, fields, condition, args...)
	if err != nil {
		return 0, err
	}
	s.invalidate(table)
	return n, nil
}

// Delete removes the rows of table matching the condition.
func (s *Store) Delete(table string, condition string, args ...any) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !knownTable(table) {
		return 0, fmt.Errorf("%w: %s", types.ErrUnknownTable, table)
	}
	db, err := s.conn()
	if err != nil {
		return 0, err
	}
	n, err := s.execStmt(db, fmt.Sprintf("DELETE FROM %s WHERE %s", table, condition), args...)
	if err != nil {
		return 0, err
	}
	s.invalidate(table)
	return n, nil
}

// GetByID returns the row of table whose idColumn equals id, or ErrNotFound.
// The read is cached.
func (s *Store) GetByID(table, idColumn string, id int64) (types.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !knownTable(table) {
		return types.Row{}, fmt.Errorf("%w: %s", types.ErrUnknownTable, table)
	}
	key := cacheKey("getByID", table, idColumn, id)
	return cached(s.cache, key, 0, func() (types.Row, error) {
		db, err := s.conn()
		if err != nil {
			return types.Row{}, err
		}
		return s.queryOne(db, fmt.Sprintf("SELECT * FROM %s WHERE %s = ?", table, idColumn), id)
	})
}

// Unlocked helpers. Callers hold s.mu and pass an explicit handle so the
// same code serves plain statements and multi-statement transactions.

func (s *Store) queryRows(x dbtx, query string, args ...any) ([]types.Row, error) {
	s.queries.Add(1)
	rows, err := x.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []types.Row
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		for i, v := range vals {
			if b, ok := v.([]byte); ok {
				vals[i] = string(b)
			}
		}
		out = append(out, types.NewRow(cols, vals))
	}
	return out, rows.Err()
}

// queryOne returns the first row of the result, or ErrNotFound for an empty
// result set.
func (s *Store) queryOne(x dbtx, query string, args ...any) (types.Row, error) {
	rows, err := s.queryRows(x, query, args...)
	if err != nil {
		return types.Row{}, err
	}
	if len(rows) == 0 {
		return types.Row{}, types.ErrNotFound
	}
	return rows[0], nil
}

func (s *Store) execStmt(x dbtx, query string, args ...any) (int64, error) {
	s.queries.Add(1)
	res, err := x.Exec(query, args...)
	if err != nil {
		return 0, classifyErr(err)
	}
	return res.RowsAffected()
}

func (s *Store) insertInto(x dbtx, table string, fields types.Fields) (int64, error) {
	cols := sortedKeys(fields)
	placeholders := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		placeholders[i] = "?"
		args[i] = fields[c]
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(cols, ", "), strings.Join(placeholders, ", "))

	s.queries.Add(1)
	res, err := x.Exec(query, args...)
	if err != nil {
		return 0, classifyErr(err)
	}
	return res.LastInsertId()
}

func (s *Store) updateWhere(x dbtx, table string, fields types.Fields, condition string, condArgs ...any) (int64, error) {
	cols := sortedKeys(fields)
	sets := make([]string, len(cols))
	args := make([]any, 0, len(cols)+len(condArgs))
	for i, c := range cols {
		sets[i] = c + " = ?"
		args = append(args, fields[c])
	}
	args = append(args, condArgs...)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s", table, strings.Join(sets, ", "), condition)
	return s.execStmt(x, query, args...)
}

// invalidate drops every cache entry whose key mentions the table.
func (s *Store) invalidate(table string) {
	if n := s.cache.invalidate(table); n > 0 {
		s.log.WithFields(map[string]any{"table": table, "entries": n}).
			Debug("cache invalidated")
	}
}

// tableFromStatement parses the target table out of the leading keyword of a
// mutating statement. Returns "" for anything it does not recognize.
func tableFromStatement(query string) string {
	f := strings.Fields(strings.TrimSpace(query))
	if len(f) < 2 {
		return ""
	}
	switch strings.ToUpper(f[0]) {
	case "UPDATE":
		return strings.Trim(f[1], "`\"")
	case "INSERT", "REPLACE":
		if len(f) >= 3 && strings.EqualFold(f[1], "INTO") {
			return strings.Trim(f[2], "`\"")
		}
	case "DELETE":
		if len(f) >= 3 && strings.EqualFold(f[1], "FROM") {
			return strings.Trim(f[2], "`\"")
		}
	}
	return ""
}

// knownTable reports whether table is one the store owns. The generic
// primitives refuse everything else; raw SQL through Query and Execute is
// not checked.
func knownTable(table string) bool {
	for _, t := range types.KnownTables {
		if t == table {
			return true
		}
	}
	return false
}

func sortedKeys(fields types.Fields) []string {
	cols := make([]string, 0, len(fields))
	for c := range fields {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return cols
}

// classifyErr maps engine constraint violations onto the package sentinels
// so callers can match with errors.Is.
func classifyErr(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return fmt.Errorf("%w: %v", types.ErrDuplicate, err)
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return fmt.Errorf("%w: %v", types.ErrReferenced, err)
	default:
		return err
	}
}
