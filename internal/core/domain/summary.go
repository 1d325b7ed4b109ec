package domain

import "github.com/shopspring/decimal"

// EmployeeSummary aggregates every record of one employee. It is derived on
// demand and never stored.
type EmployeeSummary struct {
	EmployeeName   string          `json:"employeeName"`
	TotalWithdrawn decimal.Decimal `json:"totalWithdrawn"`
	TotalJustified decimal.Decimal `json:"totalJustified"`
	TotalBalance   decimal.Decimal `json:"totalBalance"`
}

// Buckets is the three-bar summary used by the dashboard chart.
type Buckets struct {
	Withdrawn decimal.Decimal
	Justified decimal.Decimal
	Balance   decimal.Decimal
}

// Dataset is one series of a chart.
type Dataset struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
}

// ChartData is what a chart widget consumes: one label per bar or slice and
// one or more datasets aligned with the labels.
type ChartData struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}
