package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/gestion-frais/expense-ledger/internal/core/domain"
)

// pq error code for check_violation.
const checkViolation = "23514"

// ExpenseRepository persists expenses in PostgreSQL. Ids come from the
// BIGSERIAL column.
type ExpenseRepository struct {
	db    *sql.DB
	clock func() time.Time
}

// Option configures an ExpenseRepository.
type Option func(*ExpenseRepository)

// WithClock sets the clock used for updated_at.
func WithClock(clock func() time.Time) Option {
	return func(r *ExpenseRepository) {
		if clock != nil {
			r.clock = clock
		}
	}
}

func NewExpenseRepository(db *sql.DB, opts ...Option) *ExpenseRepository {
	r := &ExpenseRepository{db: db, clock: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *ExpenseRepository) List(ctx context.Context) ([]domain.ExpenseRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, employee_name, work_date, destination, category, amount_withdrawn, justification
		FROM expenses
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	out := make([]domain.ExpenseRecord, 0)
	for rows.Next() {
		rec, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return out, nil
}

func (r *ExpenseRepository) Insert(ctx context.Context, draft domain.Draft) (domain.ExpenseRecord, error) {
	d, err := domain.Prepare(draft)
	if err != nil {
		return domain.ExpenseRecord{}, err
	}

	var id int64
	err = r.db.QueryRowContext(ctx, `
		INSERT INTO expenses (employee_name, work_date, destination, category, amount_withdrawn, justification, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		d.EmployeeName, d.WorkDate.String(), d.Destination, d.Category,
		d.AmountWithdrawn.String(), d.Justification.String(), r.clock().UTC(),
	).Scan(&id)
	if err != nil {
		return domain.ExpenseRecord{}, mapError("insert expense", err)
	}
	return d.WithID(formatID(id)), nil
}

func (r *ExpenseRepository) Replace(ctx context.Context, id domain.ExpenseID, draft domain.Draft) (domain.ExpenseRecord, error) {
	d, err := domain.Prepare(draft)
	if err != nil {
		return domain.ExpenseRecord{}, err
	}
	n, ok := parseID(id)
	if !ok {
		return domain.ExpenseRecord{}, fmt.Errorf("replace %s: %w", id, domain.ErrExpenseNotFound)
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE expenses
		SET employee_name = $2, work_date = $3, destination = $4, category = $5,
			amount_withdrawn = $6, justification = $7, updated_at = $8
		WHERE id = $1`,
		n, d.EmployeeName, d.WorkDate.String(), d.Destination, d.Category,
		d.AmountWithdrawn.String(), d.Justification.String(), r.clock().UTC(),
	)
	if err != nil {
		return domain.ExpenseRecord{}, mapError("replace expense", err)
	}
	if affected, err := res.RowsAffected(); err != nil {
		return domain.ExpenseRecord{}, fmt.Errorf("replace expense: %w", err)
	} else if affected == 0 {
		return domain.ExpenseRecord{}, fmt.Errorf("replace %s: %w", id, domain.ErrExpenseNotFound)
	}
	return d.WithID(formatID(n)), nil
}

func (r *ExpenseRepository) Remove(ctx context.Context, id domain.ExpenseID) error {
	n, ok := parseID(id)
	if !ok {
		return fmt.Errorf("remove %s: %w", id, domain.ErrExpenseNotFound)
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, n)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("remove %s: %w", id, domain.ErrExpenseNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanExpense(row scanner) (domain.ExpenseRecord, error) {
	var (
		id                   int64
		name, dest, category string
		workDate             time.Time
		withdrawn, justified string
	)
	if err := row.Scan(&id, &name, &workDate, &dest, &category, &withdrawn, &justified); err != nil {
		return domain.ExpenseRecord{}, fmt.Errorf("scan expense: %w", err)
	}

	w, err := decimal.NewFromString(withdrawn)
	if err != nil {
		return domain.ExpenseRecord{}, fmt.Errorf("expense %d amount: %w", id, err)
	}
	j, err := decimal.NewFromString(justified)
	if err != nil {
		return domain.ExpenseRecord{}, fmt.Errorf("expense %d justification: %w", id, err)
	}

	return domain.ExpenseRecord{
		ID:              formatID(id),
		EmployeeName:    name,
		WorkDate:        domain.NewWorkDate(workDate.Year(), workDate.Month(), workDate.Day()),
		Destination:     dest,
		Category:        category,
		AmountWithdrawn: w,
		Justification:   j,
	}, nil
}

// mapError turns constraint violations into validation errors so the API
// answers 422 even when the database is the one refusing.
func mapError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == checkViolation {
		return fmt.Errorf("%s: %w: %s", op, domain.ErrValidation, pqErr.Constraint)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func formatID(n int64) domain.ExpenseID {
	return domain.ExpenseID(strconv.FormatInt(n, 10))
}

func parseID(id domain.ExpenseID) (int64, bool) {
	n, err := strconv.ParseInt(string(id), 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// Pinger adapts the pool to the readiness check.
type Pinger struct {
	DB *sql.DB
}

func (p Pinger) Ping(ctx context.Context) error {
	return p.DB.PingContext(ctx)
}
