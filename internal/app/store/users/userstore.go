package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/emberworks/crewboard/internal/app/system/normalize"
	"github.com/emberworks/crewboard/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicateEmail is returned when attempting to create a user with an email that already exists.
	ErrDuplicateEmail = errors.New("an account with this email already exists")
	// ErrBadCredentials is returned by Authenticate for a wrong email or password.
	ErrBadCredentials = errors.New("invalid email or password")
	errBadRole        = errors.New(`role must be "user"|"admin"`)
)

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by case-insensitive email. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email_ci": text.Fold(normalize.Email(email))}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user after normalizing & validating fields.
// New accounts start unsubscribed unless a status was set explicitly
// (the startup seeder creates pre-subscribed sample accounts).
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.Email = normalize.Email(u.Email)
	u.EmailCI = text.Fold(u.Email)
	u.FirstName = normalize.Name(u.FirstName)
	u.LastName = normalize.Name(u.LastName)
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	if u.SubscriptionStatus == "" {
		u.SubscriptionStatus = models.SubscriptionInactive
	}

	if !models.IsValidRole(u.Role) {
		return models.User{}, errBadRole
	}

	now := time.Now()
	u.JoinDate = now
	u.UpdatedAt = now

	// Precheck for a friendlier error; the unique index on email_ci is
	// the real guarantee and catches the insert race below.
	if err := s.c.FindOne(ctx, bson.M{"email_ci": u.EmailCI}).Err(); err == nil {
		return models.User{}, ErrDuplicateEmail
	} else if err != mongo.ErrNoDocuments {
		return models.User{}, err
	}

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// Authenticate looks up the account by email and compares the stored
// password. This is the only place in the codebase that reads
// User.Password; a credential-hardening migration swaps the comparison
// here and nowhere else.
func (s *Store) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.GetByEmail(ctx, email)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrBadCredentials
		}
		return nil, err
	}
	if u.Password != password {
		return nil, ErrBadCredentials
	}
	return u, nil
}

// ProfileUpdate holds the fields a user may change on their own account.
type ProfileUpdate struct {
	Email     string
	FirstName string
	LastName  string
}

// UpdateProfile updates the account's identity fields.
// Returns ErrDuplicateEmail if the email already exists for another user.
func (s *Store) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd ProfileUpdate) error {
	email := normalize.Email(upd.Email)
	set := bson.M{
		"email":      email,
		"email_ci":   text.Fold(email),
		"first_name": normalize.Name(upd.FirstName),
		"last_name":  normalize.Name(upd.LastName),
		"updated_at": time.Now(),
	}

	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// EmailExistsForOther checks if an email already exists for a user other than the given ID.
func (s *Store) EmailExistsForOther(ctx context.Context, email string, excludeID primitive.ObjectID) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{
		"email_ci": text.Fold(normalize.Email(email)),
		"_id":      bson.M{"$ne": excludeID},
	}).Err()
	if err == nil {
		return true, nil // found another user with this email
	}
	if err == mongo.ErrNoDocuments {
		return false, nil // no duplicate
	}
	return false, err // actual error
}

// SetSubscription writes the subscription status and expiry together.
// Status transitions are decided by the billing handlers; the store just
// persists them atomically.
func (s *Store) SetSubscription(ctx context.Context, id primitive.ObjectID, status string, expiry time.Time) error {
	if !models.IsValidSubscriptionStatus(status) {
		return errors.New("unknown subscription status: " + status)
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"subscription_status": status,
		"subscription_expiry": expiry,
		"updated_at":          time.Now(),
	}})
	return err
}

// ToggleBookmark adds or removes jobID from the user's saved postings.
// Returns true when the posting is saved after the call.
func (s *Store) ToggleBookmark(ctx context.Context, id, jobID primitive.ObjectID) (bool, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return false, err
	}

	var op bson.M
	saved := !u.HasSaved(jobID)
	if saved {
		op = bson.M{"$addToSet": bson.M{"saved_jobs": jobID}}
	} else {
		op = bson.M{"$pull": bson.M{"saved_jobs": jobID}}
	}
	if _, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, op); err != nil {
		return false, err
	}
	return saved, nil
}

// UpdateLastLogin stamps the account's last successful sign-in time.
func (s *Store) UpdateLastLogin(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"last_login": time.Now(),
	}})
	return err
}

// SetRole changes the account's role. Used by the startup admin
// bootstrap; there is no request surface for role changes.
func (s *Store) SetRole(ctx context.Context, id primitive.ObjectID, role string) error {
	if !models.IsValidRole(role) {
		return errBadRole
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"role":       role,
		"updated_at": time.Now(),
	}})
	return err
}

// Counts returns the total account count and the number of accounts
// whose subscription is live right now. Used by admin stats.
func (s *Store) Counts(ctx context.Context) (total, subscribed int64, err error) {
	total, err = s.c.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, 0, err
	}
	subscribed, err = s.c.CountDocuments(ctx, bson.M{
		"subscription_status": models.SubscriptionActive,
		"subscription_expiry": bson.M{"$gt": time.Now()},
	})
	if err != nil {
		return 0, 0, err
	}
	return total, subscribed, nil
}

// Delete removes the account document. Callers are responsible for
// cascading deletes of payments and preferences.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
