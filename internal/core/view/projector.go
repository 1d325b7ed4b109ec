// Package view turns records and aggregates into presentation values. It
// exposes flags rather than colours so any renderer (HTML, terminal, PDF)
// can map them to its own visual cue.
package view

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/gestion-frais/expense-ledger/internal/core/domain"
	"github.com/gestion-frais/expense-ledger/internal/core/ports"
)

// BalanceFlag classifies a balance. A positive balance is money still to be
// justified, which is the problem state.
type BalanceFlag string

const (
	FlagPositive    BalanceFlag = "positive"
	FlagNonPositive BalanceFlag = "nonpositive"
)

// FlagFor maps a balance to its flag. Negative balances, which can only exist
// if the store was edited behind the validation, count as non-positive.
func FlagFor(balance decimal.Decimal) BalanceFlag {
	if balance.IsPositive() {
		return FlagPositive
	}
	return FlagNonPositive
}

type DetailRow struct {
	ID              domain.ExpenseID `json:"id"`
	EmployeeName    string           `json:"employeeName"`
	WorkDate        string           `json:"workDate"`
	Destination     string           `json:"destination"`
	Category        string           `json:"category"`
	AmountWithdrawn string           `json:"amountWithdrawn"`
	Justification   string           `json:"justification"`
	Balance         string           `json:"balance"`
	BalanceFlag     BalanceFlag      `json:"balanceFlag"`
}

type SummaryRow struct {
	EmployeeName   string      `json:"employeeName"`
	TotalWithdrawn string      `json:"totalWithdrawn"`
	TotalJustified string      `json:"totalJustified"`
	TotalBalance   string      `json:"totalBalance"`
	BalanceFlag    BalanceFlag `json:"balanceFlag"`
}

// Projector formats amounts for one locale and currency.
type Projector struct {
	group   string
	point   string
	suffix  string
}

// NewProjector builds a Projector. Unparseable locales fall back to French,
// the locale of the FCFA ledgers this tool was written for.
func NewProjector(locale, currencySuffix string) *Projector {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.French
	}
	group, dec := separators(message.NewPrinter(tag))
	return &Projector{
		group:   group,
		point:   dec,
		suffix:  strings.TrimSpace(currencySuffix),
	}
}

// separators reads the grouping and decimal symbols off a sample printed in
// the locale. Locales that do not group yield an empty group separator.
func separators(p *message.Printer) (group, dec string) {
	sample := p.Sprint(number.Decimal(1234567.5, number.MinFractionDigits(1), number.MaxFractionDigits(1)))
	var runs []string
	var cur strings.Builder
	for _, r := range sample {
		if unicode.IsDigit(r) {
			if cur.Len() > 0 {
				runs = append(runs, cur.String())
				cur.Reset()
			}
			continue
		}
		cur.WriteRune(r)
	}
	switch len(runs) {
	case 0:
		return ",", "."
	case 1:
		return "", runs[0]
	default:
		return runs[0], runs[len(runs)-1]
	}
}

// FormatAmount groups thousands per locale. It works on the decimal digits
// themselves and never pads fraction digits: a value stored as 1500 prints
// without decimals, 1500.5 keeps one.
func (p *Projector) FormatAmount(d decimal.Decimal) string {
	intPart, frac, _ := strings.Cut(d.Abs().String(), ".")

	var b strings.Builder
	if d.IsNegative() {
		b.WriteByte('-')
	}
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(p.group)
		}
		b.WriteRune(c)
	}
	if frac != "" {
		b.WriteString(p.point)
		b.WriteString(frac)
	}
	if p.suffix != "" {
		b.WriteString(" ")
		b.WriteString(p.suffix)
	}
	return b.String()
}

// Details projects each record into a display row.
func (p *Projector) Details(records []domain.ExpenseRecord) []DetailRow {
	rows := make([]DetailRow, len(records))
	for i, r := range records {
		balance := r.Balance()
		rows[i] = DetailRow{
			ID:              r.ID,
			EmployeeName:    r.EmployeeName,
			WorkDate:        r.WorkDate.String(),
			Destination:     r.Destination,
			Category:        r.Category,
			AmountWithdrawn: p.FormatAmount(r.AmountWithdrawn),
			Justification:   p.FormatAmount(r.Justification),
			Balance:         p.FormatAmount(balance),
			BalanceFlag:     FlagFor(balance),
		}
	}
	return rows
}

// Summaries projects employee summaries into display rows.
func (p *Projector) Summaries(summaries []domain.EmployeeSummary) []SummaryRow {
	rows := make([]SummaryRow, len(summaries))
	for i, s := range summaries {
		rows[i] = SummaryRow{
			EmployeeName:   s.EmployeeName,
			TotalWithdrawn: p.FormatAmount(s.TotalWithdrawn),
			TotalJustified: p.FormatAmount(s.TotalJustified),
			TotalBalance:   p.FormatAmount(s.TotalBalance),
			BalanceFlag:    FlagFor(s.TotalBalance),
		}
	}
	return rows
}

// DetailTable renders detail rows as an exportable table.
func DetailTable(rows []DetailRow) ports.Table {
	t := ports.Table{
		Title:   "Détail des frais",
		Headers: []string{"Employé", "Date", "Destination", "Catégorie", "Montant retiré", "Justification", "Solde"},
		Rows:    make([][]string, len(rows)),
	}
	for i, r := range rows {
		t.Rows[i] = []string{r.EmployeeName, r.WorkDate, r.Destination, r.Category, r.AmountWithdrawn, r.Justification, r.Balance}
	}
	return t
}

// SummaryTable renders summary rows as an exportable table.
func SummaryTable(rows []SummaryRow) ports.Table {
	t := ports.Table{
		Title:   "Résumé par employé",
		Headers: []string{"Employé", "Total retiré", "Total justifié", "Solde"},
		Rows:    make([][]string, len(rows)),
	}
	for i, r := range rows {
		t.Rows[i] = []string{r.EmployeeName, r.TotalWithdrawn, r.TotalJustified, r.TotalBalance}
	}
	return t
}
