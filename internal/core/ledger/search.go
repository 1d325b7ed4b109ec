package ledger

import (
	"strings"

	"github.com/gestion-frais/expense-ledger/internal/core/domain"
)

// MatchesDetail reports whether any field of the record, lower-cased,
// contains the lower-cased query. An empty query matches every record.
func MatchesDetail(r domain.ExpenseRecord, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, field := range fieldStrings(r) {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// MatchesSummary applies the same rule to an employee name.
func MatchesSummary(employeeName, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(employeeName), strings.ToLower(query))
}

// FilterRecords keeps the records matching query.
func FilterRecords(records []domain.ExpenseRecord, query string) []domain.ExpenseRecord {
	out := make([]domain.ExpenseRecord, 0, len(records))
	for _, r := range records {
		if MatchesDetail(r, query) {
			out = append(out, r)
		}
	}
	return out
}

// FilterSummaries keeps the summaries whose employee name matches query.
func FilterSummaries(summaries []domain.EmployeeSummary, query string) []domain.EmployeeSummary {
	out := make([]domain.EmployeeSummary, 0, len(summaries))
	for _, s := range summaries {
		if MatchesSummary(s.EmployeeName, query) {
			out = append(out, s)
		}
	}
	return out
}

func fieldStrings(r domain.ExpenseRecord) []string {
	return []string{
		r.ID.String(),
		r.EmployeeName,
		r.WorkDate.String(),
		r.Destination,
		r.Category,
		r.AmountWithdrawn.String(),
		r.Justification.String(),
	}
}
