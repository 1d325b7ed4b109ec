package ports

import (
	"context"

	"github.com/gestion-frais/expense-ledger/internal/core/domain"
)

// RecordStore is the durable keyed collection of expense records. Each
// implementation owns its identifier strategy; nothing above this interface
// may assume anything about the shape of an ExpenseID.
type RecordStore interface {
	List(ctx context.Context) ([]domain.ExpenseRecord, error)
	// Insert validates the draft, assigns an identifier and persists it.
	Insert(ctx context.Context, draft domain.Draft) (domain.ExpenseRecord, error)
	// Replace overwrites every field of an existing record.
	// Returns domain.ErrExpenseNotFound for unknown ids.
	Replace(ctx context.Context, id domain.ExpenseID, draft domain.Draft) (domain.ExpenseRecord, error)
	// Remove deletes a record. Returns domain.ErrExpenseNotFound for unknown ids.
	Remove(ctx context.Context, id domain.ExpenseID) error
}
