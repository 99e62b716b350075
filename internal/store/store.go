// Package store handles SQLite persistence of the stats journal.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/memento/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Fixed-width so that text ordering in SQL matches time ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store wraps SQLite access for journal snapshots.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			id INTEGER PRIMARY KEY,
			birth_date TEXT NOT NULL,
			computed_at TEXT NOT NULL,
			lived_days INTEGER NOT NULL,
			lived_weeks INTEGER NOT NULL,
			percentage REAL NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_computed_at ON snapshots(computed_at);`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_birth_date ON snapshots(birth_date);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertSnapshot stores one computation and returns its id.
func (s *Store) InsertSnapshot(ctx context.Context, snap model.Snapshot) (int64, error) {
	if snap.BirthDate == "" {
		return 0, fmt.Errorf("snapshot birth date is empty")
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO snapshots (birth_date, computed_at, lived_days, lived_weeks, percentage)
		 VALUES (?, ?, ?, ?, ?)`,
		snap.BirthDate,
		snap.ComputedAt.UTC().Format(timeLayout),
		snap.LivedDays,
		snap.LivedWeeks,
		snap.Percentage,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListSnapshots returns snapshots matching the filter, oldest first.
func (s *Store) ListSnapshots(ctx context.Context, filter model.JournalFilter) ([]model.Snapshot, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if filter.BirthDate != "" {
		clauses = append(clauses, "birth_date = ?")
		args = append(args, filter.BirthDate)
	}
	if filter.Since != nil {
		clauses = append(clauses, "computed_at >= ?")
		args = append(args, filter.Since.UTC().Format(timeLayout))
	}
	query := fmt.Sprintf(`SELECT id, birth_date, computed_at, lived_days, lived_weeks, percentage
		FROM snapshots
		WHERE %s
		ORDER BY computed_at ASC, id ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var snaps []model.Snapshot
	for rows.Next() {
		var snap model.Snapshot
		var computedAt string
		if err := rows.Scan(&snap.ID, &snap.BirthDate, &computedAt, &snap.LivedDays, &snap.LivedWeeks, &snap.Percentage); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(timeLayout, computedAt)
		if err != nil {
			return nil, err
		}
		snap.ComputedAt = parsed
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return snaps, nil
}

// LastBirthDate returns the birth date of the most recent snapshot, or "" when
// the journal is empty.
func (s *Store) LastBirthDate(ctx context.Context) (string, error) {
	var birthDate string
	err := s.db.QueryRowContext(ctx,
		`SELECT birth_date FROM snapshots ORDER BY computed_at DESC, id DESC LIMIT 1`,
	).Scan(&birthDate)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return birthDate, nil
}

// DeleteSnapshots removes the snapshots of birthDate, or every snapshot when
// birthDate is empty. It returns the number of deleted rows.
func (s *Store) DeleteSnapshots(ctx context.Context, birthDate string) (int64, error) {
	query := `DELETE FROM snapshots`
	args := []any{}
	if birthDate != "" {
		query += ` WHERE birth_date = ?`
		args = append(args, birthDate)
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
