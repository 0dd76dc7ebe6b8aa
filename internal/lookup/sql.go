package lookup

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// Queries holds one single-column SELECT per Snapshot set. An empty query
// leaves the set nil.
type Queries map[string]string

// DefaultQueries reads the asset application's tables.
func DefaultQueries() Queries {
	return Queries{
		"office_codes":          "SELECT office_code FROM offices",
		"office_names":          "SELECT office_name FROM offices",
		"phone_numbers":         "SELECT phone_number FROM mobile_phones",
		"management_numbers":    "SELECT management_number FROM mobile_phones",
		"router_terminal_codes": "SELECT terminal_code FROM mobile_routers",
		"sim_numbers":           "SELECT sim_number FROM mobile_routers WHERE sim_number IS NOT NULL",
		"tablet_terminal_codes": "SELECT terminal_code FROM tablets",
		"employee_codes":        "SELECT employee_code FROM employees",
	}
}

// SQLSource loads a Snapshot from a SQL database.
type SQLSource struct {
	db      *sql.DB
	queries Queries
}

// NewSQLSource wraps an open database handle.
func NewSQLSource(db *sql.DB, queries Queries) *SQLSource {
	if queries == nil {
		queries = DefaultQueries()
	}
	return &SQLSource{db: db, queries: queries}
}

// OpenSQL opens a database and verifies the connection.
func OpenSQL(driver, dsn string) (*SQLSource, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database URL is empty")
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return NewSQLSource(db, nil), nil
}

// Close closes the database handle.
func (s *SQLSource) Close() error { return s.db.Close() }

// Load implements Source. Sets are read in a fixed order.
func (s *SQLSource) Load(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{}
	for _, st := range sets {
		query := s.queries[st.name]
		if query == "" {
			continue
		}
		values, err := s.column(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", st.name, err)
		}
		*st.dst(snap) = buildSet(st.kind, values)
	}
	return snap, nil
}

// column runs a single-column query. NULL values are skipped.
func (s *SQLSource) column(ctx context.Context, query string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v sql.NullString
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		if v.Valid {
			values = append(values, v.String)
		}
	}
	return values, rows.Err()
}
