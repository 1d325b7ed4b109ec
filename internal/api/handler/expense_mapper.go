package handler

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/gestion-frais/expense-ledger/internal/core/domain"
)

// --- Request → Draft ---

func toDraft(req expenseRequest) (domain.Draft, error) {
	date, err := domain.ParseWorkDate(req.WorkDate)
	if err != nil {
		return domain.Draft{}, err
	}
	return domain.Draft{
		EmployeeName:    req.EmployeeName,
		WorkDate:        date,
		Destination:     req.Destination,
		Category:        req.Category,
		AmountWithdrawn: deref(req.AmountWithdrawn),
		Justification:   deref(req.Justification),
	}, nil
}

func deref(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

// --- Domain → Response ---

func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func toExpenseResponse(r domain.ExpenseRecord) expenseResponse {
	return expenseResponse{
		ID:              r.ID,
		EmployeeName:    r.EmployeeName,
		WorkDate:        r.WorkDate.String(),
		Destination:     r.Destination,
		Category:        r.Category,
		AmountWithdrawn: number(r.AmountWithdrawn),
		Justification:   number(r.Justification),
		Balance:         number(r.Balance()),
	}
}

func toExpenseResponses(records []domain.ExpenseRecord) []expenseResponse {
	out := make([]expenseResponse, len(records))
	for i, r := range records {
		out[i] = toExpenseResponse(r)
	}
	return out
}

func toSummaryResponses(summaries []domain.EmployeeSummary) []summaryResponse {
	out := make([]summaryResponse, len(summaries))
	for i, s := range summaries {
		out[i] = summaryResponse{
			EmployeeName:   s.EmployeeName,
			TotalWithdrawn: number(s.TotalWithdrawn),
			TotalJustified: number(s.TotalJustified),
			TotalBalance:   number(s.TotalBalance),
		}
	}
	return out
}

func toChartResponse(c domain.ChartData) chartResponse {
	out := chartResponse{
		Labels:   c.Labels,
		Datasets: make([]datasetResponse, len(c.Datasets)),
	}
	if out.Labels == nil {
		out.Labels = []string{}
	}
	for i, ds := range c.Datasets {
		data := ds.Data
		if data == nil {
			data = []float64{}
		}
		out.Datasets[i] = datasetResponse{Label: ds.Label, Data: data}
	}
	return out
}
