package view

import "github.com/gestion-frais/expense-ledger/internal/core/domain"

// Mode is the state of the edit UI.
type Mode string

const (
	ModeView Mode = "view"
	ModeEdit Mode = "edit"
)

// Editor tracks which record, if any, is loaded into the edit buffer.
// The zero value is in view mode.
type Editor struct {
	buffer *domain.ExpenseRecord
}

func (e *Editor) Mode() Mode {
	if e.buffer == nil {
		return ModeView
	}
	return ModeEdit
}

// Begin enters edit mode for r. Calling it while already editing simply
// replaces the buffer.
func (e *Editor) Begin(r domain.ExpenseRecord) {
	e.buffer = &r
}

// Buffer returns the record being edited.
func (e *Editor) Buffer() (domain.ExpenseRecord, bool) {
	if e.buffer == nil {
		return domain.ExpenseRecord{}, false
	}
	return *e.buffer, true
}

// Cancel discards the buffer. Also used once a save has been confirmed.
func (e *Editor) Cancel() {
	e.buffer = nil
}
