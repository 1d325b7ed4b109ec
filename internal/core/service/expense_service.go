package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/gestion-frais/expense-ledger/internal/core/domain"
	"github.com/gestion-frais/expense-ledger/internal/core/ledger"
	"github.com/gestion-frais/expense-ledger/internal/core/ports"
)

// ExpenseService serves the API use cases over any record store. Aggregates
// are recomputed from a full listing on every call.
type ExpenseService struct {
	store  ports.RecordStore
	logger zerolog.Logger
}

func NewExpenseService(store ports.RecordStore, logger zerolog.Logger) *ExpenseService {
	return &ExpenseService{store: store, logger: logger}
}

// List returns the records matching query in store order.
func (s *ExpenseService) List(ctx context.Context, query string) ([]domain.ExpenseRecord, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list expenses")
		return nil, err
	}
	return ledger.FilterRecords(records, query), nil
}

func (s *ExpenseService) Create(ctx context.Context, draft domain.Draft) (domain.ExpenseRecord, error) {
	rec, err := s.store.Insert(ctx, draft)
	if err != nil {
		s.logFailure(err, "", "create")
		return domain.ExpenseRecord{}, err
	}
	s.logger.Info().
		Str("id", rec.ID.String()).
		Str("employee", rec.EmployeeName).
		Str("amount_withdrawn", rec.AmountWithdrawn.String()).
		Msg("expense created")
	return rec, nil
}

func (s *ExpenseService) Update(ctx context.Context, id domain.ExpenseID, draft domain.Draft) (domain.ExpenseRecord, error) {
	rec, err := s.store.Replace(ctx, id, draft)
	if err != nil {
		s.logFailure(err, id, "update")
		return domain.ExpenseRecord{}, err
	}
	s.logger.Info().Str("id", id.String()).Msg("expense updated")
	return rec, nil
}

func (s *ExpenseService) Delete(ctx context.Context, id domain.ExpenseID) error {
	if err := s.store.Remove(ctx, id); err != nil {
		s.logFailure(err, id, "delete")
		return err
	}
	s.logger.Info().Str("id", id.String()).Msg("expense deleted")
	return nil
}

// Summaries returns per-employee totals sorted by name, restricted to
// employees whose name matches query.
func (s *ExpenseService) Summaries(ctx context.Context, query string) ([]domain.EmployeeSummary, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list expenses for summaries")
		return nil, err
	}
	sorted := ledger.SortedSummaries(ledger.Summarize(records))
	return ledger.FilterSummaries(sorted, query), nil
}

func (s *ExpenseService) Employees(ctx context.Context) ([]string, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return ledger.EmployeeNames(records), nil
}

func (s *ExpenseService) Chart(ctx context.Context, employeeFilter, mode string) (domain.ChartData, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return domain.ChartData{}, err
	}
	if employeeFilter == "" {
		employeeFilter = ledger.AllEmployees
	}
	return ledger.Chart(records, employeeFilter, ledger.ParseChartMode(mode)), nil
}

// logFailure keeps expected outcomes (bad input, unknown id) out of the error
// log.
func (s *ExpenseService) logFailure(err error, id domain.ExpenseID, op string) {
	ev := s.logger.Error()
	if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrExpenseNotFound) {
		ev = s.logger.Warn()
	}
	ev.Err(err).Str("op", op).Str("id", id.String()).Msg("expense mutation rejected")
}

var _ ports.ExpenseService = (*ExpenseService)(nil)
