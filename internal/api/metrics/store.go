package metrics

import (
	"context"
	"time"

	"github.com/gestion-frais/expense-ledger/internal/core/domain"
	"github.com/gestion-frais/expense-ledger/internal/core/ports"
)

// InstrumentedStore times every call to the wrapped store.
type InstrumentedStore struct {
	next    ports.RecordStore
	backend string
}

func InstrumentStore(backend string, next ports.RecordStore) *InstrumentedStore {
	return &InstrumentedStore{next: next, backend: backend}
}

func (s *InstrumentedStore) List(ctx context.Context) ([]domain.ExpenseRecord, error) {
	start := time.Now()
	records, err := s.next.List(ctx)
	s.observe("list", start, err)
	if err == nil {
		RecordsStored.Set(float64(len(records)))
	}
	return records, err
}

func (s *InstrumentedStore) Insert(ctx context.Context, draft domain.Draft) (domain.ExpenseRecord, error) {
	start := time.Now()
	rec, err := s.next.Insert(ctx, draft)
	s.observe("insert", start, err)
	return rec, err
}

func (s *InstrumentedStore) Replace(ctx context.Context, id domain.ExpenseID, draft domain.Draft) (domain.ExpenseRecord, error) {
	start := time.Now()
	rec, err := s.next.Replace(ctx, id, draft)
	s.observe("replace", start, err)
	return rec, err
}

func (s *InstrumentedStore) Remove(ctx context.Context, id domain.ExpenseID) error {
	start := time.Now()
	err := s.next.Remove(ctx, id)
	s.observe("remove", start, err)
	return err
}

func (s *InstrumentedStore) observe(op string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	StoreOperationDuration.WithLabelValues(s.backend, op, result).Observe(time.Since(start).Seconds())
}
