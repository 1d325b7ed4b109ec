// Package local implements the local persisted record store: the whole
// expense log lives in one named key-value slot as a JSON array, loaded once
// and rewritten in full after every mutation.
package local

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/gestion-frais/expense-ledger/internal/core/domain"
	"github.com/gestion-frais/expense-ledger/internal/core/ports"
)

// DefaultSlot is the key holding the serialized records.
const DefaultSlot = "expenses"

// Clock returns the current time.
type Clock func() time.Time

// Store keeps an in-memory copy of the slot. Memory is only updated once the
// slot write has succeeded, so a failed write leaves both unchanged.
type Store struct {
	mu      sync.Mutex
	kv      ports.KeyValue
	slot    string
	clock   Clock
	log     zerolog.Logger
	records []domain.ExpenseRecord
	lastID  int64
}

// Option configures a Store.
type Option func(*Store)

func WithSlot(name string) Option {
	return func(s *Store) {
		if name != "" {
			s.slot = name
		}
	}
}

// WithClock sets the time source used for identifiers.
func WithClock(c Clock) Option {
	return func(s *Store) {
		if c != nil {
			s.clock = c
		}
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// Open loads the slot from kv. A slot that was never written is an empty log.
func Open(ctx context.Context, kv ports.KeyValue, opts ...Option) (*Store, error) {
	s := &Store{
		kv:    kv,
		slot:  DefaultSlot,
		clock: time.Now,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	raw, found, err := kv.Get(ctx, s.slot)
	if err != nil {
		return nil, fmt.Errorf("read slot %q: %w", s.slot, err)
	}
	if found && len(raw) > 0 {
		if err := json.Unmarshal(raw, &s.records); err != nil {
			return nil, fmt.Errorf("decode slot %q: %w", s.slot, err)
		}
	}
	for _, r := range s.records {
		if n, err := strconv.ParseInt(r.ID.String(), 10, 64); err == nil && n > s.lastID {
			s.lastID = n
		}
	}

	s.log.Debug().Str("slot", s.slot).Int("records", len(s.records)).Msg("local store loaded")
	return s, nil
}

func (s *Store) List(_ context.Context) ([]domain.ExpenseRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.records), nil
}

// Insert assigns a millisecond timestamp id, bumped past the last id handed
// out so that two inserts in the same millisecond still get distinct ids.
func (s *Store) Insert(ctx context.Context, draft domain.Draft) (domain.ExpenseRecord, error) {
	draft, err := domain.Prepare(draft)
	if err != nil {
		return domain.ExpenseRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.clock().UnixMilli()
	if n <= s.lastID {
		n = s.lastID + 1
	}
	rec := draft.WithID(domain.ExpenseID(strconv.FormatInt(n, 10)))

	next := append(clone(s.records), rec)
	if err := s.persist(ctx, next); err != nil {
		return domain.ExpenseRecord{}, err
	}
	s.records = next
	s.lastID = n
	return rec, nil
}

func (s *Store) Replace(ctx context.Context, id domain.ExpenseID, draft domain.Draft) (domain.ExpenseRecord, error) {
	draft, err := domain.Prepare(draft)
	if err != nil {
		return domain.ExpenseRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.ExpenseRecord{}, fmt.Errorf("replace %s: %w", id, domain.ErrExpenseNotFound)
	}
	rec := draft.WithID(id)
	next := clone(s.records)
	next[i] = rec
	if err := s.persist(ctx, next); err != nil {
		return domain.ExpenseRecord{}, err
	}
	s.records = next
	return rec, nil
}

func (s *Store) Remove(ctx context.Context, id domain.ExpenseID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("remove %s: %w", id, domain.ErrExpenseNotFound)
	}
	next := make([]domain.ExpenseRecord, 0, len(s.records)-1)
	next = append(next, s.records[:i]...)
	next = append(next, s.records[i+1:]...)
	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.records = next
	return nil
}

func (s *Store) indexOf(id domain.ExpenseID) int {
	for i, r := range s.records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) persist(ctx context.Context, records []domain.ExpenseRecord) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode slot %q: %w", s.slot, err)
	}
	if err := s.kv.Set(ctx, s.slot, raw); err != nil {
		return fmt.Errorf("write slot %q: %w", s.slot, err)
	}
	return nil
}

func clone(in []domain.ExpenseRecord) []domain.ExpenseRecord {
	out := make([]domain.ExpenseRecord, len(in))
	copy(out, in)
	return out
}
