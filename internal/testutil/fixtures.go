package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/emberworks/crewboard/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user with the given role and an inactive
// subscription. Returns the created user with its generated ID.
func (f *Fixtures) CreateUser(ctx context.Context, firstName, lastName, email, role string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:                 primitive.NewObjectID(),
		Email:              email,
		EmailCI:            text.Fold(email),
		Password:           "test-password",
		FirstName:          firstName,
		LastName:           lastName,
		Role:               role,
		SubscriptionStatus: models.SubscriptionInactive,
		JoinDate:           now,
		UpdatedAt:          now,
	}

	_, err := f.db.Collection("users").InsertOne(ctx, user)
	if err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

// CreateAdmin creates a test admin user.
func (f *Fixtures) CreateAdmin(ctx context.Context, firstName, lastName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, firstName, lastName, email, models.RoleAdmin)
}

// CreateSubscriber creates a test user with a live subscription expiring
// thirty days out.
func (f *Fixtures) CreateSubscriber(ctx context.Context, firstName, lastName, email string) models.User {
	f.t.Helper()

	user := f.CreateUser(ctx, firstName, lastName, email, models.RoleUser)
	expiry := time.Now().UTC().Add(30 * 24 * time.Hour)
	_, err := f.db.Collection("users").UpdateOne(ctx,
		primitiveID(user.ID),
		map[string]any{"$set": map[string]any{
			"subscription_status": models.SubscriptionActive,
			"subscription_expiry": expiry,
		}},
	)
	if err != nil {
		f.t.Fatalf("failed to subscribe test user: %v", err)
	}
	user.SubscriptionStatus = models.SubscriptionActive
	user.SubscriptionExpiry = expiry
	return user
}

// CreateJob creates an active test posting.
func (f *Fixtures) CreateJob(ctx context.Context, title, agency string) models.Job {
	f.t.Helper()

	job := models.Job{
		ID:                primitive.NewObjectID(),
		Title:             title,
		TitleCI:           text.Fold(title),
		Agency:            agency,
		Location:          "Orange County, CA",
		PayRate:           "$20-25/hour",
		JobType:           "Hand Crew",
		ExperienceLevel:   "Entry Level",
		Description:       "Test posting description.",
		Requirements:      []string{"Requirement one"},
		ApplicationMethod: "email",
		ContactEmail:      "hiring@example.gov",
		PostedDate:        time.Now().UTC(),
		IsActive:          true,
	}

	_, err := f.db.Collection("jobs").InsertOne(ctx, job)
	if err != nil {
		f.t.Fatalf("failed to create test job: %v", err)
	}

	return job
}

// CreateInactiveJob creates a test posting with is_active=false.
func (f *Fixtures) CreateInactiveJob(ctx context.Context, title, agency string) models.Job {
	f.t.Helper()

	job := f.CreateJob(ctx, title, agency)
	_, err := f.db.Collection("jobs").UpdateOne(ctx,
		primitiveID(job.ID),
		map[string]any{"$set": map[string]any{"is_active": false}},
	)
	if err != nil {
		f.t.Fatalf("failed to deactivate test job: %v", err)
	}
	job.IsActive = false
	return job
}

// CreatePayment inserts a payment record for the given user.
func (f *Fixtures) CreatePayment(ctx context.Context, userID primitive.ObjectID, amountCents int64, when time.Time) models.Payment {
	f.t.Helper()

	payment := models.Payment{
		ID:          primitive.NewObjectID(),
		UserID:      userID,
		TxnRef:      primitive.NewObjectID().Hex(),
		AmountCents: amountCents,
		Currency:    "usd",
		Status:      models.PaymentSucceeded,
		PaymentDate: when,
		PeriodStart: when,
		PeriodEnd:   when.Add(30 * 24 * time.Hour),
	}

	_, err := f.db.Collection("payments").InsertOne(ctx, payment)
	if err != nil {
		f.t.Fatalf("failed to create test payment: %v", err)
	}

	return payment
}

func primitiveID(id primitive.ObjectID) map[string]any {
	return map[string]any{"_id": id}
}
