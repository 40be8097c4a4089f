// ============================================================================
// mini - Formula Engine Tools
// ============================================================================
//
// Package:     datasource
// Description: SQLite query results as matrices
// Author:      msto63
// Created:     2025-10-18
// License:     MIT
// ============================================================================

package datasource

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"

	mdwerror "github.com/substance/expression/foundation/core/error"
	"github.com/substance/expression/foundation/formula/value"
)

// SQLiteSource runs queries against a SQLite database
type SQLiteSource struct {
	db *sql.DB
}

// SQLiteConfig holds configuration for a SQLite source
type SQLiteConfig struct {
	DSN string
}

// OpenSQLite opens the database named by cfg.DSN
func OpenSQLite(cfg SQLiteConfig) (*SQLiteSource, error) {
	if cfg.DSN == "" {
		return nil, mdwerror.New("sqlite dsn cannot be empty").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("datasource.OpenSQLite")
	}

	db, err := sql.Open("sqlite3", cfg.DSN)
	if err != nil {
		return nil, databaseError(err, "failed to open database", "datasource.OpenSQLite")
	}
	return &SQLiteSource{db: db}, nil
}

// Query runs query and returns one matrix row per result row
func (s *SQLiteSource) Query(ctx context.Context, query string, args ...interface{}) (value.Matrix, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, databaseError(err, "query failed", "datasource.Query").WithDetail("query", query)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, databaseError(err, "cannot read columns", "datasource.Query")
	}

	m := value.Matrix{}
	for rows.Next() {
		raw := make([]interface{}, len(columns))
		ptrs := make([]interface{}, len(columns))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, databaseError(err, "cannot scan row", "datasource.Query")
		}

		row := make([]value.Value, len(raw))
		for i, v := range raw {
			row[i] = sqlValue(v)
		}
		m = append(m, row)
	}
	if err := rows.Err(); err != nil {
		return nil, databaseError(err, "row iteration failed", "datasource.Query")
	}
	return m, nil
}

// DB exposes the underlying handle
func (s *SQLiteSource) DB() *sql.DB {
	return s.db
}

// Close closes the database
func (s *SQLiteSource) Close() error {
	return s.db.Close()
}

// LoadSQLite opens dsn, runs query and closes the database again
func LoadSQLite(ctx context.Context, dsn, query string) (value.Matrix, error) {
	src, err := OpenSQLite(SQLiteConfig{DSN: dsn})
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return src.Query(ctx, query)
}

func sqlValue(v interface{}) value.Value {
	switch t := v.(type) {
	case []byte:
		return string(t)
	case time.Time:
		return t.Format(time.RFC3339)
	default:
		return value.Normalize(t)
	}
}

func databaseError(err error, message, op string) *mdwerror.Error {
	return mdwerror.Wrap(err, message).
		WithCode(mdwerror.CodeDatabaseError).
		WithOperation(op)
}
