package mongo

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gestion-frais/expense-ledger/internal/core/domain"
)

const (
	collectionExpenses = "expenses"
	collectionCounters = "counters"
	expenseSequence    = "expenses"
)

// ExpenseRepository implements ports.RecordStore on MongoDB. Identifiers are
// drawn from a counters document so they stay small sequential integers.
type ExpenseRepository struct {
	col      *mongo.Collection
	counters *mongo.Collection
}

func NewExpenseRepository(db *mongo.Database) *ExpenseRepository {
	return &ExpenseRepository{
		col:      db.Collection(collectionExpenses),
		counters: db.Collection(collectionCounters),
	}
}

type expenseDoc struct {
	ID              int64                `bson:"_id"`
	EmployeeName    string               `bson:"employee_name"`
	WorkDate        string               `bson:"work_date"`
	Destination     string               `bson:"destination"`
	Category        string               `bson:"category"`
	AmountWithdrawn primitive.Decimal128 `bson:"amount_withdrawn"`
	Justification   primitive.Decimal128 `bson:"justification"`
	UpdatedAt       time.Time            `bson:"updated_at"`
}

type counterDoc struct {
	ID  string `bson:"_id"`
	Seq int64  `bson:"seq"`
}

// List returns every expense in id order.
func (r *ExpenseRepository) List(ctx context.Context) ([]domain.ExpenseRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find expenses: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]domain.ExpenseRecord, 0)
	for cur.Next(ctx) {
		var doc expenseDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode expense: %w", err)
		}
		rec, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return out, nil
}

func (r *ExpenseRepository) Insert(ctx context.Context, draft domain.Draft) (domain.ExpenseRecord, error) {
	d, err := domain.Prepare(draft)
	if err != nil {
		return domain.ExpenseRecord{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.nextID(ctx)
	if err != nil {
		return domain.ExpenseRecord{}, err
	}

	doc, err := newExpenseDoc(id, d)
	if err != nil {
		return domain.ExpenseRecord{}, err
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return domain.ExpenseRecord{}, fmt.Errorf("insert expense: %w", err)
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

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc, err := newExpenseDoc(n, d)
	if err != nil {
		return domain.ExpenseRecord{}, err
	}
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": n}, doc)
	if err != nil {
		return domain.ExpenseRecord{}, fmt.Errorf("replace expense: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ExpenseRecord{}, fmt.Errorf("replace %s: %w", id, domain.ErrExpenseNotFound)
	}
	return d.WithID(formatID(n)), nil
}

func (r *ExpenseRepository) Remove(ctx context.Context, id domain.ExpenseID) error {
	n, ok := parseID(id)
	if !ok {
		return fmt.Errorf("remove %s: %w", id, domain.ErrExpenseNotFound)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": n})
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("remove %s: %w", id, domain.ErrExpenseNotFound)
	}
	return nil
}

// EnsureIndexes creates the lookup indexes used by reporting queries.
func (r *ExpenseRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "employee_name", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *ExpenseRepository) nextID(ctx context.Context) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var c counterDoc
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": expenseSequence},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&c)
	if err != nil {
		return 0, fmt.Errorf("next expense id: %w", err)
	}
	return c.Seq, nil
}

func newExpenseDoc(id int64, d domain.Draft) (expenseDoc, error) {
	withdrawn, err := toDecimal128(d.AmountWithdrawn)
	if err != nil {
		return expenseDoc{}, err
	}
	justified, err := toDecimal128(d.Justification)
	if err != nil {
		return expenseDoc{}, err
	}
	return expenseDoc{
		ID:              id,
		EmployeeName:    d.EmployeeName,
		WorkDate:        d.WorkDate.String(),
		Destination:     d.Destination,
		Category:        d.Category,
		AmountWithdrawn: withdrawn,
		Justification:   justified,
		UpdatedAt:       time.Now().UTC(),
	}, nil
}

func (doc expenseDoc) toDomain() (domain.ExpenseRecord, error) {
	date, err := domain.ParseWorkDate(doc.WorkDate)
	if err != nil {
		return domain.ExpenseRecord{}, fmt.Errorf("expense %d: %w", doc.ID, err)
	}
	withdrawn, err := fromDecimal128(doc.AmountWithdrawn)
	if err != nil {
		return domain.ExpenseRecord{}, fmt.Errorf("expense %d: %w", doc.ID, err)
	}
	justified, err := fromDecimal128(doc.Justification)
	if err != nil {
		return domain.ExpenseRecord{}, fmt.Errorf("expense %d: %w", doc.ID, err)
	}
	return domain.ExpenseRecord{
		ID:              formatID(doc.ID),
		EmployeeName:    doc.EmployeeName,
		WorkDate:        date,
		Destination:     doc.Destination,
		Category:        doc.Category,
		AmountWithdrawn: withdrawn,
		Justification:   justified,
	}, nil
}

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	v, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("amount %s: %w", d, err)
	}
	return v, nil
}

func fromDecimal128(v primitive.Decimal128) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("amount %s: %w", v, err)
	}
	return d, nil
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

