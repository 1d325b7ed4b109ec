package postgres

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"testing"
	"time"

	"github.com/lib/pq"

	"github.com/gestion-frais/expense-ledger/internal/core/domain"
)

type fakeRow struct {
	values []any
}

func (r fakeRow) Scan(dest ...any) error {
	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			*p = r.values[i].(int64)
		case *string:
			*p = r.values[i].(string)
		case *time.Time:
			*p = r.values[i].(time.Time)
		default:
			return fmt.Errorf("unexpected dest %T", d)
		}
	}
	return nil
}

func TestScanExpense(t *testing.T) {
	row := fakeRow{values: []any{
		int64(12), "Awa", time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC), "Thiès", "Transport", "10000.00", "2500.50",
	}}

	rec, err := scanExpense(row)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if rec.ID != "12" {
		t.Errorf("id = %q", rec.ID)
	}
	if rec.WorkDate.String() != "2024-03-14" {
		t.Errorf("work date = %s", rec.WorkDate)
	}
	if rec.Balance().String() != "7499.5" {
		t.Errorf("balance = %s", rec.Balance())
	}
}

func TestMapError_CheckViolationIsValidation(t *testing.T) {
	err := mapError("insert expense", &pq.Error{Code: checkViolation, Constraint: "expenses_justification_within_withdrawn"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	other := mapError("insert expense", errors.New("connection reset"))
	if errors.Is(other, domain.ErrValidation) {
		t.Fatalf("unexpected validation error: %v", other)
	}
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}
	if len(entries) < 2 {
		t.Fatalf("expected up and down migrations, got %d files", len(entries))
	}
}

func TestMigrations_AmountsKeepTheirScale(t *testing.T) {
	raw, err := fs.ReadFile(migrationsFS, "migrations/000001_create_expenses.up.sql")
	if err != nil {
		t.Fatalf("read migration: %v", err)
	}
	// a declared scale would round 10.004 to 10.00 on write
	if regexp.MustCompile(`NUMERIC\s*\(`).Match(raw) {
		t.Fatalf("amount columns must be unconstrained NUMERIC:\n%s", raw)
	}
}

func TestParseID_Canonical(t *testing.T) {
	for _, in := range []domain.ExpenseID{"7", "+7", "007"} {
		n, ok := parseID(in)
		if !ok || formatID(n) != "7" {
			t.Errorf("parseID(%q) = %d, %v", in, n, ok)
		}
	}
}
