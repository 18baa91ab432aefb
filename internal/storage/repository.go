// Package storage is the SQLite implementation of the entry store ports.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"tally/internal/core"
	"tally/internal/store"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

var _ store.EntryStore = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
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

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) Create(ctx context.Context, e core.LedgerEntry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO entries (id, kind, amount_cents, category, sub_category, description, entry_date, currency, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, string(e.Kind), e.Amount.Cents, e.Category, e.SubCategory,
		e.Description, e.Date.String(), e.Currency, e.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}

	slog.InfoContext(ctx, "Entry saved to SQLite",
		"id", e.ID,
		"kind", e.Kind,
		"amount_cents", e.Amount.Cents,
		"category", e.Category,
		"date", e.Date.String())
	return nil
}

func (r *SQLiteRepository) Update(ctx context.Context, e core.LedgerEntry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	// id and created_at are immutable; everything else follows the entry.
	res, err := r.db.ExecContext(ctx, `
		UPDATE entries
		SET kind = ?, amount_cents = ?, category = ?, sub_category = ?, description = ?, entry_date = ?, currency = ?
		WHERE id = ?`,
		string(e.Kind), e.Amount.Cents, e.Category, e.SubCategory,
		e.Description, e.Date.String(), e.Currency, e.ID,
	)
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	slog.InfoContext(ctx, "Entry deleted from SQLite", "id", id)
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id string) (core.LedgerEntry, error) {
	row := r.db.QueryRowContext(ctx, selectColumns+` FROM entries WHERE id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.LedgerEntry{}, store.ErrNotFound
	}
	if err != nil {
		return core.LedgerEntry{}, fmt.Errorf("get entry: %w", err)
	}
	return e, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]core.LedgerEntry, error) {
	rows, err := r.db.QueryContext(ctx, selectColumns+` FROM entries ORDER BY entry_date, created_at`)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()
	return collectEntries(rows)
}

func (r *SQLiteRepository) ListPeriod(ctx context.Context, p core.Period) ([]core.LedgerEntry, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx,
		selectColumns+` FROM entries WHERE entry_date >= ? AND entry_date <= ? ORDER BY entry_date, created_at`,
		p.Start.String(), p.End.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("list entries for period %s: %w", p.Label(), err)
	}
	defer rows.Close()
	return collectEntries(rows)
}

func (r *SQLiteRepository) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT category FROM entries ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return out, nil
}

const selectColumns = `SELECT id, kind, amount_cents, category, sub_category, description, entry_date, currency, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (core.LedgerEntry, error) {
	var (
		e                  core.LedgerEntry
		kind, date, create string
	)
	err := row.Scan(&e.ID, &kind, &e.Amount.Cents, &e.Category, &e.SubCategory,
		&e.Description, &date, &e.Currency, &create)
	if err != nil {
		return core.LedgerEntry{}, err
	}
	e.Kind = core.EntryKind(kind)
	if e.Date, err = core.ParseDate(date); err != nil {
		return core.LedgerEntry{}, fmt.Errorf("parse entry_date %q: %w", date, err)
	}
	if e.CreatedAt, err = time.Parse(time.RFC3339, create); err != nil {
		return core.LedgerEntry{}, fmt.Errorf("parse created_at %q: %w", create, err)
	}
	return e, nil
}

func collectEntries(rows *sql.Rows) ([]core.LedgerEntry, error) {
	var out []core.LedgerEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return out, nil
}
