// Package services orchestrates expense operations across storage and the
// event broker, and implements the ledger ports the HTTP layer consumes.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"costconnect/internal/amqp"
	"costconnect/internal/core"
	"costconnect/internal/storage"
)

// ExpenseService fronts the lazily-acquired repository. Every call acquires
// the shared handle first, so a store that was unreachable at boot is
// retried on the next request instead of wedging the process.
type ExpenseService struct {
	pool       *storage.Pool
	amqpClient *amqp.Client
}

// NewExpenseService wires the service. amqpClient may be nil; events are
// then skipped.
func NewExpenseService(pool *storage.Pool, amqpClient *amqp.Client) *ExpenseService {
	return &ExpenseService{pool: pool, amqpClient: amqpClient}
}

// CreateExpense persists the record and emits expense.created.
func (s *ExpenseService) CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	repo, err := s.pool.Acquire(ctx)
	if err != nil {
		return core.Expense{}, err
	}
	created, err := repo.CreateExpense(ctx, e)
	if err != nil {
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}
	s.publish(ctx, amqp.EventExpenseCreated, created.ID)
	return created, nil
}

// UpdateExpense applies a partial update. An unknown ID is an empty
// success, mirroring the delete semantics; no event is emitted for it.
func (s *ExpenseService) UpdateExpense(ctx context.Context, id string, patch core.ExpensePatch) (*core.Expense, error) {
	repo, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	updated, err := repo.UpdateExpense(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update expense: %w", err)
	}
	if updated != nil {
		s.publish(ctx, amqp.EventExpenseUpdated, updated.ID)
	}
	return updated, nil
}

// DeleteExpense removes the record and emits expense.deleted.
func (s *ExpenseService) DeleteExpense(ctx context.Context, id string) error {
	repo, err := s.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	if err := repo.DeleteExpense(ctx, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	s.publish(ctx, amqp.EventExpenseDeleted, id)
	return nil
}

// ListMonth resolves the widened month interval and returns the matching
// expenses ascending by date.
func (s *ExpenseService) ListMonth(ctx context.Context, year, month int) ([]core.Expense, error) {
	start, end, err := core.MonthRange(year, month)
	if err != nil {
		return nil, err
	}
	repo, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	items, err := repo.ListExpensesInRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("list month expenses (year=%d, month=%d): %w", year, month, err)
	}
	return items, nil
}

// Ping checks that storage is reachable.
func (s *ExpenseService) Ping(ctx context.Context) error {
	return s.pool.Ready(ctx)
}

// publish emits one event; failures are logged and never fail the request.
func (s *ExpenseService) publish(ctx context.Context, kind, id string) {
	if err := s.amqpClient.PublishExpenseEvent(ctx, kind, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish expense event",
			"event", kind, "expense_id", id, "error", err)
	}
}

// Close releases storage and broker connections.
func (s *ExpenseService) Close() error {
	var errs []error
	if s.pool != nil {
		if err := s.pool.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}
	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close expense service: %v", errs)
	}
	return nil
}
