package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gestion-frais/expense-ledger/internal/core/domain"
	"github.com/gestion-frais/expense-ledger/internal/core/ledger"
	"github.com/gestion-frais/expense-ledger/internal/core/ports"
	"github.com/gestion-frais/expense-ledger/internal/core/view"
)

// ErrNotEditing is returned by SaveEdit when no record is in the edit buffer.
var ErrNotEditing = errors.New("no expense is being edited")

// Snapshot is everything a front end needs to draw the ledger screen.
type Snapshot struct {
	Records        []domain.ExpenseRecord `json:"-"`
	Details        []view.DetailRow       `json:"details"`
	Summaries      []view.SummaryRow      `json:"summaries"`
	Employees      []string               `json:"employees"`
	Query          string                 `json:"query"`
	EmployeeFilter string                 `json:"employeeFilter"`
	ChartMode      ledger.ChartMode       `json:"chartMode"`
	Chart          domain.ChartData       `json:"chart"`
	Mode           view.Mode              `json:"mode"`
	Editing        *domain.ExpenseRecord  `json:"editing,omitempty"`
}

// Workspace is the interactive controller behind the CLI. Every mutating
// command waits for the store, then re-lists; no local patching. On failure
// the user is alerted and the visible state is left as it was.
type Workspace struct {
	store     ports.RecordStore
	projector *view.Projector
	alerter   ports.Alerter
	logger    zerolog.Logger

	records        []domain.ExpenseRecord
	query          string
	employeeFilter string
	chartMode      ledger.ChartMode
	editor         view.Editor
}

func NewWorkspace(store ports.RecordStore, projector *view.Projector, alerter ports.Alerter, logger zerolog.Logger) *Workspace {
	return &Workspace{
		store:          store,
		projector:      projector,
		alerter:        alerter,
		logger:         logger,
		employeeFilter: ledger.AllEmployees,
		chartMode:      ledger.ModeSummary,
	}
}

// Refresh reloads the full record list from the store.
func (w *Workspace) Refresh(ctx context.Context) (Snapshot, error) {
	records, err := w.store.List(ctx)
	if err != nil {
		return w.Snapshot(), w.fail(ctx, "Impossible de charger les frais", err)
	}
	w.records = records
	return w.Snapshot(), nil
}

func (w *Workspace) SubmitExpense(ctx context.Context, draft domain.Draft) (Snapshot, error) {
	rec, err := w.store.Insert(ctx, draft)
	if err != nil {
		return w.Snapshot(), w.fail(ctx, "Impossible d'ajouter la dépense", err)
	}
	w.logger.Info().Str("id", rec.ID.String()).Msg("expense submitted")
	return w.Refresh(ctx)
}

// BeginEdit loads a known record into the edit buffer.
func (w *Workspace) BeginEdit(id domain.ExpenseID) (Snapshot, error) {
	for _, r := range w.records {
		if r.ID == id {
			w.editor.Begin(r)
			return w.Snapshot(), nil
		}
	}
	return w.Snapshot(), fmt.Errorf("edit %s: %w", id, domain.ErrExpenseNotFound)
}

// SaveEdit replaces the buffered record with draft. A refused save keeps the
// draft in the buffer so the user can correct it.
func (w *Workspace) SaveEdit(ctx context.Context, draft domain.Draft) (Snapshot, error) {
	buf, ok := w.editor.Buffer()
	if !ok {
		return w.Snapshot(), ErrNotEditing
	}

	if _, err := w.store.Replace(ctx, buf.ID, draft); err != nil {
		w.editor.Begin(draft.WithID(buf.ID))
		return w.Snapshot(), w.fail(ctx, "Impossible d'enregistrer la modification", err)
	}
	w.editor.Cancel()
	w.logger.Info().Str("id", buf.ID.String()).Msg("expense saved")
	return w.Refresh(ctx)
}

func (w *Workspace) CancelEdit() Snapshot {
	w.editor.Cancel()
	return w.Snapshot()
}

func (w *Workspace) DeleteExpense(ctx context.Context, id domain.ExpenseID) (Snapshot, error) {
	if err := w.store.Remove(ctx, id); err != nil {
		return w.Snapshot(), w.fail(ctx, "Impossible de supprimer la dépense", err)
	}
	if buf, ok := w.editor.Buffer(); ok && buf.ID == id {
		w.editor.Cancel()
	}
	w.logger.Info().Str("id", id.String()).Msg("expense deleted")
	return w.Refresh(ctx)
}

func (w *Workspace) Search(query string) Snapshot {
	w.query = query
	return w.Snapshot()
}

// SelectEmployeeFilter restricts the chart to one employee; "" or "all"
// clears the restriction.
func (w *Workspace) SelectEmployeeFilter(name string) Snapshot {
	if name == "" {
		name = ledger.AllEmployees
	}
	w.employeeFilter = name
	return w.Snapshot()
}

func (w *Workspace) SelectChartMode(mode string) Snapshot {
	w.chartMode = ledger.ParseChartMode(mode)
	return w.Snapshot()
}

// Snapshot derives the current view from the last listing.
func (w *Workspace) Snapshot() Snapshot {
	summaries := ledger.FilterSummaries(ledger.SortedSummaries(ledger.Summarize(w.records)), w.query)

	s := Snapshot{
		Records:        w.records,
		Details:        w.projector.Details(ledger.FilterRecords(w.records, w.query)),
		Summaries:      w.projector.Summaries(summaries),
		Employees:      ledger.EmployeeNames(w.records),
		Query:          w.query,
		EmployeeFilter: w.employeeFilter,
		ChartMode:      w.chartMode,
		Chart:          ledger.Chart(w.records, w.employeeFilter, w.chartMode),
		Mode:           w.editor.Mode(),
	}
	if buf, ok := w.editor.Buffer(); ok {
		s.Editing = &buf
	}
	return s
}

func (w *Workspace) fail(ctx context.Context, message string, err error) error {
	w.logger.Error().Err(err).Msg(message)
	if w.alerter != nil {
		w.alerter.Alert(ctx, alertText(message, err))
	}
	return err
}

func alertText(message string, err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return message + " : données invalides (" + err.Error() + ")"
	case errors.Is(err, domain.ErrExpenseNotFound):
		return message + " : dépense introuvable"
	case errors.Is(err, domain.ErrTransport):
		return message + " : serveur injoignable"
	default:
		return message + " : " + err.Error()
	}
}
