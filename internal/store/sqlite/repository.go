// Package sqlite is the SQLite-backed record store, selectable through
// the backend factory for installs that outgrow the JSON file.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"fitlog/internal/core"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// ListRecords returns all records in insertion order.
func (r *Repository) ListRecords(ctx context.Context) ([]core.Record, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, date, training, diet, mood FROM records ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var records []core.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}

func (r *Repository) GetRecord(ctx context.Context, id string) (core.Record, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, date, training, diet, mood FROM records WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Record{}, core.ErrRecordNotFound
	}
	return rec, err
}

// UpsertRecord writes rec keyed on date. A record already stored for
// the same date keeps its ID but moves to the end of the store order,
// matching the file store's replace-then-append behavior.
func (r *Repository) UpsertRecord(ctx context.Context, rec core.Record) (core.Record, error) {
	if err := rec.Validate(); err != nil {
		return core.Record{}, err
	}
	rec = rec.Normalize()

	training, err := json.Marshal(rec.Training)
	if err != nil {
		return core.Record{}, fmt.Errorf("encode training: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Record{}, fmt.Errorf("begin upsert: %w", err)
	}
	defer tx.Rollback()

	var existingID string
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM records WHERE date = ?`, rec.Date).Scan(&existingID)
	switch {
	case err == nil:
		rec.ID = existingID
		if _, err := tx.ExecContext(ctx, `DELETE FROM records WHERE date = ?`, rec.Date); err != nil {
			return core.Record{}, fmt.Errorf("replace record: %w", err)
		}
	case errors.Is(err, sql.ErrNoRows):
		// New date, nothing to replace.
	default:
		return core.Record{}, fmt.Errorf("lookup record by date: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO records (id, date, training, diet, mood) VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.Date, string(training), rec.Diet, rec.Mood); err != nil {
		return core.Record{}, fmt.Errorf("upsert record: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return core.Record{}, fmt.Errorf("commit upsert: %w", err)
	}
	return rec, nil
}

func (r *Repository) DeleteRecord(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM records WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (core.Record, error) {
	var rec core.Record
	var training string
	if err := row.Scan(&rec.ID, &rec.Date, &training, &rec.Diet, &rec.Mood); err != nil {
		return core.Record{}, err
	}
	if err := json.Unmarshal([]byte(training), &rec.Training); err != nil {
		return core.Record{}, fmt.Errorf("decode training for %s: %w", rec.Date, err)
	}
	return rec.Normalize(), nil
}
