package preferencestore

import (
	"context"
	"time"

	"github.com/emberworks/crewboard/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("preferences")}
}

// Get returns the user's preferences, falling back to defaults when no
// document exists yet. A user who never opened the settings screen still
// gets a fully populated settings response.
func (s *Store) Get(ctx context.Context, userID primitive.ObjectID) (*models.Preferences, error) {
	var p models.Preferences
	err := s.c.FindOne(ctx, bson.M{"user_id": userID}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		def := models.DefaultPreferences(userID)
		return &def, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Upsert replaces the user's preferences document, creating it on first
// save.
func (s *Store) Upsert(ctx context.Context, p models.Preferences) error {
	p.UpdatedAt = time.Now()
	opts := options.Replace().SetUpsert(true)
	_, err := s.c.ReplaceOne(ctx, bson.M{"user_id": p.UserID}, p, opts)
	return err
}

// DeleteByUser removes the user's preferences document. Used only by the
// account-deletion cascade.
func (s *Store) DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
