// Package storage persists expenses in SQLite and owns the process-wide
// connection lifecycle.
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

	"github.com/google/uuid"

	"costconnect/internal/core"

	_ "modernc.org/sqlite"
)

// Repository is the SQLite-backed expense store.
type Repository struct {
	db *sql.DB
}

// NewRepository opens the database at dbPath, creating parent directories
// as needed, and runs pending migrations.
func NewRepository(dbPath string) (*Repository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
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

// Ping reports whether the database is reachable.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// CreateExpense inserts a record, assigning its ID, and returns it as stored.
func (r *Repository) CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	e.Normalize()
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	e.ID = uuid.NewString()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (id, date_unix_ms, description, category, amount_cents) VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.Date.UTC().UnixMilli(), e.Description, e.Category, e.Amount.Cents,
	)
	if err != nil {
		return core.Expense{}, fmt.Errorf("insert expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"id", e.ID,
		"description", e.Description,
		"amount_cents", e.Amount.Cents,
		"date", e.Date.UTC().Format(time.RFC3339))

	return e, nil
}

// GetExpense returns a single record, or (nil, nil) when the ID is unknown.
func (r *Repository) GetExpense(ctx context.Context, id string) (*core.Expense, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, date_unix_ms, description, category, amount_cents FROM expenses WHERE id = ?`, id)
	e, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get expense %s: %w", id, err)
	}
	return e, nil
}

// UpdateExpense applies a partial update: absent fields keep their stored
// values. An unknown ID yields (nil, nil); last write wins, there is no
// conflict detection.
func (r *Repository) UpdateExpense(ctx context.Context, id string, patch core.ExpensePatch) (*core.Expense, error) {
	current, err := r.GetExpense(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, nil
	}

	e := *current
	if patch.Date != nil {
		e.Date = *patch.Date
	}
	if patch.Description != nil {
		e.Description = *patch.Description
	}
	if patch.Category != nil {
		e.Category = *patch.Category
	}
	if patch.Amount != nil {
		e.Amount = *patch.Amount
	}
	e.Normalize()
	if err := e.Validate(); err != nil {
		return nil, err
	}

	_, err = r.db.ExecContext(ctx,
		`UPDATE expenses SET date_unix_ms = ?, description = ?, category = ?, amount_cents = ?, updated_at = datetime('now') WHERE id = ?`,
		e.Date.UTC().UnixMilli(), e.Description, e.Category, e.Amount.Cents, e.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update expense %s: %w", id, err)
	}

	slog.InfoContext(ctx, "Expense updated", "id", e.ID, "amount_cents", e.Amount.Cents)
	return &e, nil
}

// DeleteExpense removes a record. Deleting an unknown ID is a no-op success.
func (r *Repository) DeleteExpense(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete expense %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil {
		slog.InfoContext(ctx, "Expense deleted", "id", id, "rows", n)
	}
	return nil
}

// ListExpensesInRange returns expenses with start <= date <= end, ascending
// by date. The interval is closed on both ends.
func (r *Repository) ListExpensesInRange(ctx context.Context, start, end time.Time) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, date_unix_ms, description, category, amount_cents
		 FROM expenses
		 WHERE date_unix_ms >= ? AND date_unix_ms <= ?
		 ORDER BY date_unix_ms ASC`,
		start.UnixMilli(), end.UnixMilli(),
	)
	if err != nil {
		return nil, fmt.Errorf("query expenses in range: %w", err)
	}
	defer rows.Close()

	expenses := []core.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return expenses, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (*core.Expense, error) {
	var (
		e      core.Expense
		dateMs int64
	)
	if err := row.Scan(&e.ID, &dateMs, &e.Description, &e.Category, &e.Amount.Cents); err != nil {
		return nil, err
	}
	e.Date = core.Date{Time: time.UnixMilli(dateMs).UTC()}
	return &e, nil
}
