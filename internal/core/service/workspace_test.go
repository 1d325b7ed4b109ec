package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/gestion-frais/expense-ledger/internal/core/domain"
	"github.com/gestion-frais/expense-ledger/internal/core/ledger"
	"github.com/gestion-frais/expense-ledger/internal/core/view"
)

type recordingAlerter struct {
	messages []string
}

func (a *recordingAlerter) Alert(_ context.Context, message string) {
	a.messages = append(a.messages, message)
}

func newTestWorkspace(store *stubRecordStore) (*Workspace, *recordingAlerter) {
	alerter := &recordingAlerter{}
	return NewWorkspace(store, view.NewProjector("en", ""), alerter, zerolog.Nop()), alerter
}

func TestWorkspace_SubmitRefreshes(t *testing.T) {
	ctx := context.Background()
	ws, alerter := newTestWorkspace(&stubRecordStore{})

	snap, err := ws.SubmitExpense(ctx, draft("Awa", "Transport", 10000, 4000))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(snap.Details) != 1 || snap.Details[0].Balance != "6,000" {
		t.Fatalf("unexpected details: %+v", snap.Details)
	}
	if snap.Details[0].BalanceFlag != view.FlagPositive {
		t.Errorf("flag = %s", snap.Details[0].BalanceFlag)
	}
	if len(alerter.messages) != 0 {
		t.Errorf("unexpected alerts: %v", alerter.messages)
	}
}

func TestWorkspace_FailedSubmitAlertsAndKeepsState(t *testing.T) {
	ctx := context.Background()
	store := &stubRecordStore{}
	ws, alerter := newTestWorkspace(store)
	if _, err := ws.SubmitExpense(ctx, draft("Awa", "Transport", 100, 0)); err != nil {
		t.Fatalf("seed: %v", err)
	}

	store.mutateErr = fmt.Errorf("post: %w", domain.ErrTransport)
	snap, err := ws.SubmitExpense(ctx, draft("Moussa", "Hôtel", 200, 0))
	if !errors.Is(err, domain.ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
	if len(snap.Records) != 1 {
		t.Errorf("state changed on failure: %d records", len(snap.Records))
	}
	if len(alerter.messages) != 1 {
		t.Errorf("expected one alert, got %v", alerter.messages)
	}
}

func TestWorkspace_EditLifecycle(t *testing.T) {
	ctx := context.Background()
	ws, _ := newTestWorkspace(&stubRecordStore{})
	snap, _ := ws.SubmitExpense(ctx, draft("Awa", "Transport", 10000, 4000))
	id := snap.Records[0].ID

	snap, err := ws.BeginEdit(id)
	if err != nil || snap.Mode != view.ModeEdit || snap.Editing == nil || snap.Editing.ID != id {
		t.Fatalf("begin edit: mode=%s editing=%v err=%v", snap.Mode, snap.Editing, err)
	}

	// invalid save keeps the buffer with the user's input
	bad := draft("Awa", "Transport", 10000, 12000)
	snap, err = ws.SaveEdit(ctx, bad)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if snap.Mode != view.ModeEdit || !snap.Editing.Justification.Equal(bad.Justification) {
		t.Fatalf("buffer lost after failed save: %+v", snap.Editing)
	}

	snap, err = ws.SaveEdit(ctx, draft("Awa", "Transport", 10000, 10000))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if snap.Mode != view.ModeView || snap.Editing != nil {
		t.Fatalf("expected view mode after save")
	}
	if snap.Details[0].BalanceFlag != view.FlagNonPositive {
		t.Errorf("flag after full justification = %s", snap.Details[0].BalanceFlag)
	}
}

func TestWorkspace_SaveWithoutEdit(t *testing.T) {
	ws, _ := newTestWorkspace(&stubRecordStore{})
	if _, err := ws.SaveEdit(context.Background(), draft("Awa", "Transport", 1, 0)); !errors.Is(err, ErrNotEditing) {
		t.Fatalf("expected ErrNotEditing, got %v", err)
	}
}

func TestWorkspace_CancelAndBeginUnknown(t *testing.T) {
	ctx := context.Background()
	ws, _ := newTestWorkspace(&stubRecordStore{})
	snap, _ := ws.SubmitExpense(ctx, draft("Awa", "Transport", 1, 0))

	if _, err := ws.BeginEdit("missing"); !errors.Is(err, domain.ErrExpenseNotFound) {
		t.Errorf("expected ErrExpenseNotFound, got %v", err)
	}
	_, _ = ws.BeginEdit(snap.Records[0].ID)
	if s := ws.CancelEdit(); s.Mode != view.ModeView {
		t.Errorf("mode after cancel = %s", s.Mode)
	}
}

func TestWorkspace_DeleteEditedRecordLeavesEditMode(t *testing.T) {
	ctx := context.Background()
	ws, _ := newTestWorkspace(&stubRecordStore{})
	snap, _ := ws.SubmitExpense(ctx, draft("Awa", "Transport", 1, 0))
	id := snap.Records[0].ID
	_, _ = ws.BeginEdit(id)

	snap, err := ws.DeleteExpense(ctx, id)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(snap.Records) != 0 || snap.Mode != view.ModeView {
		t.Fatalf("records=%d mode=%s", len(snap.Records), snap.Mode)
	}

	if _, err := ws.DeleteExpense(ctx, id); !errors.Is(err, domain.ErrExpenseNotFound) {
		t.Errorf("second delete: expected ErrExpenseNotFound, got %v", err)
	}
}

func TestWorkspace_SearchAndChartSelections(t *testing.T) {
	ctx := context.Background()
	ws, _ := newTestWorkspace(&stubRecordStore{})
	_, _ = ws.SubmitExpense(ctx, draft("Awa", "Transport", 1500, 0))
	_, _ = ws.SubmitExpense(ctx, draft("Awa", "Hôtel", 2000, 0))
	_, _ = ws.SubmitExpense(ctx, draft("Moussa", "Transport", 500, 500))

	snap := ws.Search("moussa")
	if len(snap.Details) != 1 || len(snap.Summaries) != 1 {
		t.Fatalf("search: details=%d summaries=%d", len(snap.Details), len(snap.Summaries))
	}
	// charts ignore the search query
	if got := snap.Chart.Datasets[0].Data[0]; got != 4000 {
		t.Errorf("withdrawn bucket = %v, want 4000", got)
	}

	ws.SelectEmployeeFilter("Awa")
	snap = ws.SelectChartMode("category")
	if snap.ChartMode != ledger.ModeCategory || snap.EmployeeFilter != "Awa" {
		t.Fatalf("selection not kept: %s %s", snap.ChartMode, snap.EmployeeFilter)
	}
	if len(snap.Chart.Labels) != 2 || snap.Chart.Datasets[0].Data[0] != 1500 {
		t.Errorf("unexpected chart: %+v", snap.Chart)
	}

	if s := ws.SelectEmployeeFilter(""); s.EmployeeFilter != ledger.AllEmployees {
		t.Errorf("empty filter = %q", s.EmployeeFilter)
	}
}

func TestWorkspace_RefreshFailureAlerts(t *testing.T) {
	ws, alerter := newTestWorkspace(&stubRecordStore{listErr: fmt.Errorf("get: %w", domain.ErrTransport)})
	if _, err := ws.Refresh(context.Background()); !errors.Is(err, domain.ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
	if len(alerter.messages) != 1 {
		t.Fatalf("alerts = %v", alerter.messages)
	}
}
