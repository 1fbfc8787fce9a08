// Package ledger defines the ports the HTTP layer consumes. The service
// layer implements them on top of the SQLite repository.
package ledger

import (
	"context"

	"costconnect/internal/core"
)

type (
	// ExpenseCreator persists a new expense and returns the stored record
	// with its server-assigned ID.
	ExpenseCreator interface {
		CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error)
	}

	// ExpenseUpdater applies a partial update. A nil record with nil error
	// means the ID did not match anything; that is a success, not an error.
	ExpenseUpdater interface {
		UpdateExpense(ctx context.Context, id string, patch core.ExpensePatch) (*core.Expense, error)
	}

	ExpenseDeleter interface {
		DeleteExpense(ctx context.Context, id string) error
	}

	// MonthLister returns all expenses for the widened month interval,
	// ascending by date.
	MonthLister interface {
		ListMonth(ctx context.Context, year, month int) ([]core.Expense, error)
	}

	// Pinger reports whether the backing store is reachable.
	Pinger interface {
		Ping(ctx context.Context) error
	}

	// Store is the full surface the server wires up.
	Store interface {
		ExpenseCreator
		ExpenseUpdater
		ExpenseDeleter
		MonthLister
		Pinger
	}
)
