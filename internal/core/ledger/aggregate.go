// Package ledger derives every aggregate view of the expense log from a flat
// list of records. All functions are pure: they keep no state between calls
// and recompute from the full input each time, so a derived view can never
// drift from the records it was computed from.
package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/gestion-frais/expense-ledger/internal/core/domain"
)

// AllEmployees disables the employee restriction of chart aggregates.
const AllEmployees = "all"

// ChartMode selects how Chart buckets the records.
type ChartMode string

const (
	// ModeSummary charts withdrawn / justified / balance totals.
	ModeSummary ChartMode = "summary"
	// ModeCategory charts withdrawn totals per category.
	ModeCategory ChartMode = "category"
)

// ParseChartMode maps free text to a mode, defaulting to ModeSummary.
func ParseChartMode(s string) ChartMode {
	if ChartMode(s) == ModeCategory {
		return ModeCategory
	}
	return ModeSummary
}

// Bucket labels of the summary chart.
const (
	LabelWithdrawn = "Montant retiré"
	LabelJustified = "Justification"
	LabelBalance   = "Solde"
)

// Summarize groups records by employee name.
func Summarize(records []domain.ExpenseRecord) map[string]domain.EmployeeSummary {
	out := make(map[string]domain.EmployeeSummary)
	for _, r := range records {
		s, ok := out[r.EmployeeName]
		if !ok {
			s = domain.EmployeeSummary{
				EmployeeName:   r.EmployeeName,
				TotalWithdrawn: decimal.Zero,
				TotalJustified: decimal.Zero,
			}
		}
		s.TotalWithdrawn = s.TotalWithdrawn.Add(r.AmountWithdrawn)
		s.TotalJustified = s.TotalJustified.Add(r.Justification)
		out[r.EmployeeName] = s
	}
	for name, s := range out {
		s.TotalBalance = s.TotalWithdrawn.Sub(s.TotalJustified)
		out[name] = s
	}
	return out
}

// SortedSummaries returns the summaries ordered by employee name.
func SortedSummaries(m map[string]domain.EmployeeSummary) []domain.EmployeeSummary {
	out := make([]domain.EmployeeSummary, 0, len(m))
	for _, s := range m {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeName < out[j].EmployeeName })
	return out
}

// ForEmployee keeps the records of one employee, or all of them when filter
// is AllEmployees or empty.
func ForEmployee(records []domain.ExpenseRecord, filter string) []domain.ExpenseRecord {
	if filter == "" || filter == AllEmployees {
		return records
	}
	out := make([]domain.ExpenseRecord, 0, len(records))
	for _, r := range records {
		if r.EmployeeName == filter {
			out = append(out, r)
		}
	}
	return out
}

// CategoryTotals sums the withdrawn amount per category. Labels keep the
// order in which each category first appears.
func CategoryTotals(records []domain.ExpenseRecord, employeeFilter string) ([]string, []decimal.Decimal) {
	var (
		labels []string
		totals []decimal.Decimal
		index  = make(map[string]int)
	)
	for _, r := range ForEmployee(records, employeeFilter) {
		i, ok := index[r.Category]
		if !ok {
			i = len(labels)
			index[r.Category] = i
			labels = append(labels, r.Category)
			totals = append(totals, decimal.Zero)
		}
		totals[i] = totals[i].Add(r.AmountWithdrawn)
	}
	return labels, totals
}

// BucketTotals computes the three-bucket summary for one employee or the
// whole set.
func BucketTotals(records []domain.ExpenseRecord, employeeFilter string) domain.Buckets {
	b := domain.Buckets{Withdrawn: decimal.Zero, Justified: decimal.Zero}
	for _, r := range ForEmployee(records, employeeFilter) {
		b.Withdrawn = b.Withdrawn.Add(r.AmountWithdrawn)
		b.Justified = b.Justified.Add(r.Justification)
	}
	b.Balance = b.Withdrawn.Sub(b.Justified)
	return b
}

// Chart builds the data handed to a chart widget.
func Chart(records []domain.ExpenseRecord, employeeFilter string, mode ChartMode) domain.ChartData {
	if mode == ModeCategory {
		labels, totals := CategoryTotals(records, employeeFilter)
		return domain.ChartData{
			Labels:   nonNil(labels),
			Datasets: []domain.Dataset{{Label: LabelWithdrawn, Data: floats(totals)}},
		}
	}

	b := BucketTotals(records, employeeFilter)
	return domain.ChartData{
		Labels: []string{LabelWithdrawn, LabelJustified, LabelBalance},
		Datasets: []domain.Dataset{{
			Label: ChartTitle(employeeFilter),
			Data:  floats([]decimal.Decimal{b.Withdrawn, b.Justified, b.Balance}),
		}},
	}
}

// EmployeeNames lists distinct employee names in first-seen order.
func EmployeeNames(records []domain.ExpenseRecord) []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)
	for _, r := range records {
		if _, ok := seen[r.EmployeeName]; ok {
			continue
		}
		seen[r.EmployeeName] = struct{}{}
		names = append(names, r.EmployeeName)
	}
	return names
}

// ChartTitle names the population a chart covers.
func ChartTitle(employeeFilter string) string {
	if employeeFilter == "" || employeeFilter == AllEmployees {
		return "Tous les employés"
	}
	return employeeFilter
}

func floats(ds []decimal.Decimal) []float64 {
	out := make([]float64, len(ds))
	for i, d := range ds {
		out[i] = d.InexactFloat64()
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
