package ledger

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/gestion-frais/expense-ledger/internal/core/domain"
)

func TestMatchesDetail_EmptyQueryMatchesEverything(t *testing.T) {
	for _, r := range []domain.ExpenseRecord{
		{},
		rec("1", "Awa", "Transport", 10, 0),
	} {
		if !MatchesDetail(r, "") {
			t.Errorf("empty query must match %+v", r)
		}
	}
}

func TestMatchesDetail_AnyFieldCaseInsensitive(t *testing.T) {
	r := rec("1712", "Awa Ndiaye", "Hôtel", 10000, 4000)
	r.Destination = "Saint-Louis"
	r.Justification = decimal.RequireFromString("4000.5")

	tests := []struct {
		query string
		want  bool
	}{
		{"awa", true},
		{"NDIAYE", true},
		{"saint-l", true},
		{"HÔTEL", true},
		{"2024-03", true},
		{"10000", true},
		{"4000.5", true},
		{"171", true},
		{"thiès", false},
		{"6000", false}, // the balance is derived, not a field
	}
	for _, tc := range tests {
		if got := MatchesDetail(r, tc.query); got != tc.want {
			t.Errorf("MatchesDetail(%q) = %v, want %v", tc.query, got, tc.want)
		}
	}
}

func TestMatchesSummary(t *testing.T) {
	if !MatchesSummary("Awa Ndiaye", "") {
		t.Error("empty query must match")
	}
	if !MatchesSummary("Awa Ndiaye", "ndi") {
		t.Error("substring must match case-insensitively")
	}
	if MatchesSummary("Awa Ndiaye", "moussa") {
		t.Error("unrelated query must not match")
	}
}

func TestFilterRecordsAndSummaries(t *testing.T) {
	records := []domain.ExpenseRecord{
		rec("1", "Awa", "Transport", 1000, 0),
		rec("2", "Moussa", "Hôtel", 2000, 0),
	}

	if got := FilterRecords(records, "hôtel"); len(got) != 1 || got[0].ID != "2" {
		t.Errorf("FilterRecords: got %+v", got)
	}
	if got := FilterRecords(records, ""); len(got) != 2 {
		t.Errorf("empty query must keep all records, got %d", len(got))
	}

	summaries := SortedSummaries(Summarize(records))
	if got := FilterSummaries(summaries, "AW"); len(got) != 1 || got[0].EmployeeName != "Awa" {
		t.Errorf("FilterSummaries: got %+v", got)
	}
}
