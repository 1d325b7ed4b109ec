package handler

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/gestion-frais/expense-ledger/internal/core/domain"
	"github.com/gestion-frais/expense-ledger/internal/core/view"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

// expenseRequest is the body of POST /api/expenses and PUT /api/expenses/:id.
// Amounts accept JSON numbers or numeric strings.
type expenseRequest struct {
	EmployeeName    string           `json:"employeeName"    validate:"required,max=200"`
	WorkDate        string           `json:"workDate"        validate:"required,datetime=2006-01-02"`
	Destination     string           `json:"destination"     validate:"max=200"`
	Category        string           `json:"category"        validate:"required,max=100"`
	AmountWithdrawn *decimal.Decimal `json:"amountWithdrawn" validate:"required,gte=0"`
	Justification   *decimal.Decimal `json:"justification"   validate:"required,gte=0,ltefield=AmountWithdrawn"`
}

type expenseResponse struct {
	ID              domain.ExpenseID `json:"id"`
	EmployeeName    string           `json:"employeeName"`
	WorkDate        string           `json:"workDate"`
	Destination     string           `json:"destination"`
	Category        string           `json:"category"`
	AmountWithdrawn json.Number      `json:"amountWithdrawn"`
	Justification   json.Number      `json:"justification"`
	Balance         json.Number      `json:"balance"`
}

type deleteResponse struct {
	Success bool `json:"success"`
}

type summaryResponse struct {
	EmployeeName   string      `json:"employeeName"`
	TotalWithdrawn json.Number `json:"totalWithdrawn"`
	TotalJustified json.Number `json:"totalJustified"`
	TotalBalance   json.Number `json:"totalBalance"`
}

type datasetResponse struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
}

type chartResponse struct {
	Labels   []string          `json:"labels"`
	Datasets []datasetResponse `json:"datasets"`
}

type dashboardResponse struct {
	Details        []view.DetailRow  `json:"details"`
	Summaries      []view.SummaryRow `json:"summaries"`
	Employees      []string          `json:"employees"`
	EmployeeFilter string            `json:"employeeFilter"`
	ChartMode      string            `json:"chartMode"`
	Chart          chartResponse     `json:"chart"`
}
