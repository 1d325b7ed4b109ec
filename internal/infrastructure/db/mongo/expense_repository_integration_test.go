//go:build integration

package mongo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestion-frais/expense-ledger/internal/core/domain"
)

// Run with: MONGO_TEST_URI=mongodb://... go test -tags integration ./internal/infrastructure/db/mongo/
func newIntegrationRepo(t *testing.T) *ExpenseRepository {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	ctx := context.Background()

	client, db, err := Connect(ctx, Config{
		URI:      uri,
		Database: fmt.Sprintf("expense_ledger_test_%d", time.Now().UnixNano()),
	})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})

	repo := NewExpenseRepository(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}
	return repo
}

func integrationDraft() domain.Draft {
	return domain.Draft{
		EmployeeName:    "Awa",
		WorkDate:        domain.NewWorkDate(2024, 3, 14),
		Destination:     "Thiès",
		Category:        "Transport",
		AmountWithdrawn: decimal.RequireFromString("10.004"),
		Justification:   decimal.RequireFromString("10.001"),
	}
}

func TestExpenseRepository_Integration(t *testing.T) {
	ctx := context.Background()
	repo := newIntegrationRepo(t)

	first, err := repo.Insert(ctx, integrationDraft())
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	second, err := repo.Insert(ctx, integrationDraft())
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if first.ID != "1" || second.ID != "2" {
		t.Errorf("ids = %q, %q; want sequential 1, 2", first.ID, second.ID)
	}

	records, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 || !records[0].Equal(first) {
		t.Fatalf("list after insert = %+v", records)
	}

	if _, err := repo.Replace(ctx, "999999", integrationDraft()); !errors.Is(err, domain.ErrExpenseNotFound) {
		t.Errorf("replace unknown: expected ErrExpenseNotFound, got %v", err)
	}
	if err := repo.Remove(ctx, "999999"); !errors.Is(err, domain.ErrExpenseNotFound) {
		t.Errorf("remove unknown: expected ErrExpenseNotFound, got %v", err)
	}

	edit := integrationDraft()
	edit.Justification = edit.AmountWithdrawn
	updated, err := repo.Replace(ctx, "001", edit)
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if updated.ID != "1" {
		t.Errorf("replace id = %q, want 1", updated.ID)
	}
	records, err = repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !records[0].Equal(updated) {
		t.Fatalf("list after replace = %+v, want %+v", records[0], updated)
	}

	if err := repo.Remove(ctx, first.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := repo.Remove(ctx, first.ID); !errors.Is(err, domain.ErrExpenseNotFound) {
		t.Errorf("second remove: expected ErrExpenseNotFound, got %v", err)
	}
}
