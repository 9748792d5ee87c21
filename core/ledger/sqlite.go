package ledger

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/kilianp07/coverage/core/model"
)

// DefaultSQLitePath is used when no path is configured.
const DefaultSQLitePath = "coverage_tracker.db"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS ledger_entries (
        name TEXT PRIMARY KEY,
        position INTEGER NOT NULL,
        times_covered INTEGER NOT NULL
    );`,
	`CREATE TABLE IF NOT EXISTS coverage_log (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        name TEXT NOT NULL,
        date TEXT,
        covered_for TEXT,
        period TEXT
    );`,
}

// SQLiteStore persists the ledger to a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database at path and ensures schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			if cerr := db.Close(); cerr != nil {
				return nil, fmt.Errorf("close db: %v (schema err: %w)", cerr, err)
			}
			return nil, err
		}
	}
	return &SQLiteStore{db: db}, nil
}

// Load reads all entries in ledger order.
func (s *SQLiteStore) Load(ctx context.Context) (*Ledger, error) {
	l := New()
	rows, err := s.db.QueryContext(ctx, `SELECT name, times_covered FROM ledger_entries ORDER BY position`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var name string
		var count int
		if err := rows.Scan(&name, &count); err != nil {
			_ = rows.Close()
			return nil, err
		}
		l.Ensure(name).TimesCovered = count
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	_ = rows.Close()

	logs, err := s.db.QueryContext(ctx, `SELECT name, date, covered_for, period FROM coverage_log ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = logs.Close() }()
	for logs.Next() {
		var name, period string
		var e LogEntry
		if err := logs.Scan(&name, &e.Date, &e.CoveredFor, &period); err != nil {
			return nil, err
		}
		e.Period = model.Period(period)
		entry := l.Ensure(name)
		entry.CoverageLog = append(entry.CoverageLog, e)
	}
	if err := logs.Err(); err != nil {
		return nil, err
	}
	return l, nil
}

// Save replaces the stored ledger inside one transaction.
func (s *SQLiteStore) Save(ctx context.Context, l *Ledger) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	if _, err = tx.ExecContext(ctx, `DELETE FROM coverage_log`); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM ledger_entries`); err != nil {
		return err
	}
	for i, name := range l.order {
		e := l.entries[name]
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO ledger_entries (name, position, times_covered) VALUES (?, ?, ?)`,
			name, i, e.TimesCovered); err != nil {
			return err
		}
		for _, le := range e.CoverageLog {
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO coverage_log (name, date, covered_for, period) VALUES (?, ?, ?, ?)`,
				name, le.Date, le.CoveredFor, string(le.Period)); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }
