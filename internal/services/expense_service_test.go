package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"costconnect/internal/core"
	"costconnect/internal/ledger"
	"costconnect/internal/storage"
)

func newTestService(t *testing.T) *ExpenseService {
	t.Helper()
	pool := storage.NewPool(filepath.Join(t.TempDir(), "svc.db"))
	svc := NewExpenseService(pool, nil)
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}

var _ ledger.Store = (*ExpenseService)(nil)

func TestServiceCreateAndListMonth(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateExpense(ctx, core.Expense{
		Date:        core.NewDate(2025, 3, 15),
		Description: "Lunch",
		Category:    core.CategoryFood,
		Amount:      core.Money{Cents: 1250},
	})
	if err != nil {
		t.Fatal(err)
	}
	if created.ID == "" {
		t.Fatal("no ID assigned")
	}

	items, err := svc.ListMonth(ctx, 2025, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].ID != created.ID {
		t.Fatalf("month query returned %d items", len(items))
	}

	// Adjacent month is empty and still a success.
	items, err = svc.ListMonth(ctx, 2025, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty month, got %d", len(items))
	}
}

func TestServiceListMonthValidatesMonth(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.ListMonth(context.Background(), 2025, 0); err == nil {
		t.Fatal("expected invalid month error")
	}
}

func TestServiceListMonthSortsAscending(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	for _, day := range []int{20, 5, 12} {
		_, err := svc.CreateExpense(ctx, core.Expense{
			Date:   core.NewDate(2025, 6, day),
			Amount: core.Money{Cents: 100},
		})
		if err != nil {
			t.Fatal(err)
		}
	}
	items, err := svc.ListMonth(ctx, 2025, 6)
	if err != nil {
		t.Fatal(err)
	}
	var last time.Time
	for _, e := range items {
		if e.Date.Before(last) {
			t.Fatalf("not ascending: %v after %v", e.Date.Time, last)
		}
		last = e.Date.Time
	}
}

func TestServiceUpdateAndDelete(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateExpense(ctx, core.Expense{
		Date:        core.NewDate(2025, 3, 15),
		Description: "Lunch",
		Amount:      core.Money{Cents: 1250},
	})
	if err != nil {
		t.Fatal(err)
	}

	amount := core.Money{Cents: 2000}
	updated, err := svc.UpdateExpense(ctx, created.ID, core.ExpensePatch{Amount: &amount})
	if err != nil {
		t.Fatal(err)
	}
	if updated == nil || updated.Amount.Cents != 2000 || updated.Description != "Lunch" {
		t.Fatalf("partial update wrong: %+v", updated)
	}

	missing, err := svc.UpdateExpense(ctx, "ghost", core.ExpensePatch{Amount: &amount})
	if err != nil || missing != nil {
		t.Fatalf("unknown id: got (%v, %v), want (nil, nil)", missing, err)
	}

	if err := svc.DeleteExpense(ctx, created.ID); err != nil {
		t.Fatal(err)
	}
	items, err := svc.ListMonth(ctx, 2025, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 0 {
		t.Fatalf("deleted expense still listed")
	}
}

func TestServicePing(t *testing.T) {
	svc := newTestService(t)
	if err := svc.Ping(context.Background()); err != nil {
		t.Fatal(err)
	}
}
