package ports

import (
	"context"

	"github.com/gestion-frais/expense-ledger/internal/core/domain"
)

// DashboardInput carries the view selections of a dashboard request.
type DashboardInput struct {
	Query          string
	EmployeeFilter string // "all" or an employee name
	ChartMode      string // "summary" or "category"
}

// ExpenseService defines the server-side use cases behind /api.
type ExpenseService interface {
	List(ctx context.Context, query string) ([]domain.ExpenseRecord, error)
	Create(ctx context.Context, draft domain.Draft) (domain.ExpenseRecord, error)
	Update(ctx context.Context, id domain.ExpenseID, draft domain.Draft) (domain.ExpenseRecord, error)
	Delete(ctx context.Context, id domain.ExpenseID) error
	Summaries(ctx context.Context, query string) ([]domain.EmployeeSummary, error)
	Employees(ctx context.Context) ([]string, error)
	Chart(ctx context.Context, employeeFilter, mode string) (domain.ChartData, error)
}
