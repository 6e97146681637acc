package paymentstore

import (
	"context"
	"time"

	"github.com/emberworks/crewboard/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store holds the payment ledger. The collection is append-only: records
// are written once at charge time and never updated, so the history a
// user sees is exactly what was charged.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("payments")}
}

// Append writes a new payment record. The transaction reference is
// generated here so callers can't reuse one.
func (s *Store) Append(ctx context.Context, p models.Payment) (models.Payment, error) {
	p.ID = primitive.NewObjectID()
	p.TxnRef = uuid.NewString()
	if p.Currency == "" {
		p.Currency = "usd"
	}
	if p.PaymentDate.IsZero() {
		p.PaymentDate = time.Now()
	}

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Payment{}, err
	}
	return p, nil
}

// ListByUser returns the user's payment history, most recent first.
func (s *Store) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Payment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "payment_date", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	var payments []models.Payment
	if err := cur.All(ctx, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// Totals returns the number of succeeded payments and their summed
// amount in cents. Used by admin stats.
func (s *Store) Totals(ctx context.Context) (count, revenueCents int64, err error) {
	cur, err := s.c.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": models.PaymentSucceeded}}},
		{{Key: "$group", Value: bson.M{
			"_id":     nil,
			"count":   bson.M{"$sum": 1},
			"revenue": bson.M{"$sum": "$amount_cents"},
		}}},
	})
	if err != nil {
		return 0, 0, err
	}
	var rows []struct {
		Count   int64 `bson:"count"`
		Revenue int64 `bson:"revenue"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, 0, err
	}
	if len(rows) == 0 {
		return 0, 0, nil
	}
	return rows[0].Count, rows[0].Revenue, nil
}

// DeleteByUser removes all of a user's payment records. Used only by the
// account-deletion cascade.
func (s *Store) DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
