// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"github.com/emberworks/crewboard/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates collections (if missing) and tries to attach JSON-Schema
// validators. On servers that don't support collMod/validators (e.g. some
// DocumentDB versions), we log and skip gracefully.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	// helper: ensure collection exists (with truthful logging) and then validator (if provided)
	ensure := func(coll string, schema bson.M) {
		if _, err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			// DocumentDB or other deployments may not support collMod/validators.
			if isNoSuchCommand(err) || isNotImplemented(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	ensure("users", usersSchema())
	ensure("jobs", jobsSchema())
	ensure("payments", paymentsSchema())

	// Preferences are free-form grouped settings; just ensure the collection exists.
	ensure("preferences", nil)

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers & logging ---------------------- */

// collectionExists returns true when <name> already exists.
// Uses ListCollectionNames to avoid "created collection" log when it didn't.
func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// ensureCollection idempotently makes sure <name> exists.
// Returns created==true only if we actually created it.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) (created bool, err error) {
	exists, listErr := collectionExists(ctx, db, name)
	if listErr == nil && exists {
		zap.L().Info("collection exists", zap.String("collection", name))
		return false, nil
	}
	// If listing failed, fall back to create-and-handle-race.
	if err := db.CreateCollection(ctx, name); err != nil {
		// NamespaceExists / already exists is fine (race or prior run).
		if isNamespaceExistsErr(err) {
			zap.L().Info("collection exists", zap.String("collection", name))
			return false, nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return true, nil
}

/* ------------------------------ validators ------------------------------- */

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	var out bson.M
	if err := db.RunCommand(ctx, cmd).Decode(&out); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

func isNamespaceExistsErr(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 48 || strings.Contains(strings.ToLower(ce.Message), "already exists")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "already exists") || strings.Contains(s, "namespace exists")
}

func isNoSuchCommand(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 59 || strings.Contains(strings.ToLower(ce.Message), "no such command")) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "no such command")
}

func isNotImplemented(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 115 ||
		strings.Contains(strings.ToLower(ce.Message), "not implemented") ||
		strings.Contains(strings.ToLower(ce.Message), "not supported")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "not implemented") || strings.Contains(s, "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

func usersSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"email", "email_ci", "first_name", "last_name", "role", "subscription_status"},
			"properties": bson.M{
				"email":               bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"email_ci":            bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"first_name":          bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"last_name":           bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"role":                bson.M{"enum": bson.A{"user", "admin"}},
				"subscription_status": bson.M{"enum": bson.A{"active", "inactive", "cancelled"}},
				"subscription_expiry": bson.M{"bsonType": bson.A{"date", "null"}},
				"saved_jobs":          bson.M{"bsonType": "array"},
				"join_date":           bson.M{"bsonType": "date"},
			},
		},
	}
}

func jobsSchema() bson.M {
	// Build the enums from the canonical lists in the domain models.
	typeEnum := bson.A{}
	for _, t := range models.JobTypes {
		typeEnum = append(typeEnum, t)
	}
	expEnum := bson.A{}
	for _, e := range models.ExperienceLevels {
		expEnum = append(expEnum, e)
	}

	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"title", "title_ci", "agency", "location", "job_type", "is_active"},
			"properties": bson.M{
				"title":    bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"title_ci": bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"agency":   bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"location": bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"pay_rate": bson.M{"bsonType": "string"},

				"job_type": bson.M{
					"bsonType": "string",
					"enum":     typeEnum,
				},
				"experience_level": bson.M{
					"bsonType": "string",
					"enum":     expEnum,
				},

				"description":        bson.M{"bsonType": "string"},
				"requirements":       bson.M{"bsonType": "array"},
				"application_method": bson.M{"bsonType": "string"},
				"contact_email":      bson.M{"bsonType": "string"},
				"is_active":          bson.M{"bsonType": "bool"},
				"views":              bson.M{"bsonType": bson.A{"long", "int"}},
				"applications":       bson.M{"bsonType": bson.A{"long", "int"}},
				"posted_date":        bson.M{"bsonType": "date"},
			},
		},
	}
}

func paymentsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"user_id", "txn_ref", "amount_cents", "status", "payment_date"},
			"properties": bson.M{
				"user_id":      bson.M{"bsonType": "objectId"},
				"txn_ref":      bson.M{"bsonType": "string", "minLength": 1},
				"amount_cents": bson.M{"bsonType": bson.A{"long", "int"}},
				"currency":     bson.M{"bsonType": "string"},
				"status":       bson.M{"enum": bson.A{"succeeded", "failed", "pending"}},
				"payment_date": bson.M{"bsonType": "date"},
				"period_start": bson.M{"bsonType": "date"},
				"period_end":   bson.M{"bsonType": "date"},
			},
		},
	}
}
