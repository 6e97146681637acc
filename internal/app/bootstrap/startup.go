// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"
	"time"

	jobstore "github.com/emberworks/crewboard/internal/app/store/jobs"
	userstore "github.com/emberworks/crewboard/internal/app/store/users"
	"github.com/emberworks/crewboard/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
// It promotes or creates the bootstrap admin account and optionally
// seeds sample postings into an empty jobs collection.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.AdminEmail != "" {
		if err := ensureAdmin(ctx, deps.MongoDatabase, appCfg, logger); err != nil {
			return fmt.Errorf("admin bootstrap: %w", err)
		}
	}

	if appCfg.SeedSampleData {
		if err := seedSampleJobs(ctx, deps.MongoDatabase, logger); err != nil {
			return fmt.Errorf("sample data: %w", err)
		}
	}

	return nil
}

// ensureAdmin guarantees an admin account exists for the configured
// email. An existing account is promoted; a missing one is created with
// the configured password.
func ensureAdmin(ctx context.Context, db *mongo.Database, appCfg AppConfig, logger *zap.Logger) error {
	users := userstore.New(db)

	u, err := users.GetByEmail(ctx, appCfg.AdminEmail)
	if err == mongo.ErrNoDocuments {
		created, err := users.Create(ctx, models.User{
			Email:     appCfg.AdminEmail,
			Password:  appCfg.AdminPassword,
			FirstName: "Admin",
			LastName:  "User",
			Role:      models.RoleAdmin,
		})
		if err != nil {
			return err
		}
		logger.Info("bootstrap admin created",
			zap.String("user_id", created.ID.Hex()),
			zap.String("email", created.Email))
		return nil
	}
	if err != nil {
		return err
	}

	if u.Role != models.RoleAdmin {
		if err := users.SetRole(ctx, u.ID, models.RoleAdmin); err != nil {
			return err
		}
		logger.Info("bootstrap admin promoted",
			zap.String("user_id", u.ID.Hex()),
			zap.String("email", u.Email))
	}
	return nil
}

// seedSampleJobs inserts a handful of postings when the jobs collection
// is empty. Existing data is never touched.
func seedSampleJobs(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	jobs := jobstore.New(db)

	total, _, err := jobs.Counts(ctx)
	if err != nil {
		return err
	}
	if total > 0 {
		return nil
	}

	now := time.Now()
	samples := []models.Job{
		{
			Title:             "Hotshot Crew Member",
			Agency:            "US Forest Service",
			Location:          "Boise, ID",
			PayRate:           "$22-28/hour",
			JobType:           "Hotshot Crew",
			ExperienceLevel:   "Intermediate",
			StartDate:         now.AddDate(0, 1, 0),
			EndDate:           now.AddDate(0, 7, 0),
			Description:       "<p>Join a Type 1 interagency hotshot crew for the upcoming season.</p>",
			Requirements:      []string{"Arduous pack test", "One season of fireline experience"},
			ApplicationMethod: "Apply through USAJOBS",
			ContactEmail:      "recruiting@example.gov",
			IsActive:          true,
		},
		{
			Title:             "Engine Crew Firefighter",
			Agency:            "CAL FIRE",
			Location:          "Redding, CA",
			PayRate:           "$20-25/hour",
			JobType:           "Engine Crew",
			ExperienceLevel:   "Entry Level",
			StartDate:         now.AddDate(0, 1, 15),
			EndDate:           now.AddDate(0, 6, 15),
			Description:       "<p>Seasonal firefighter position on a Type 3 engine.</p>",
			Requirements:      []string{"Valid driver's license", "Basic 32 or equivalent"},
			ApplicationMethod: "Email a resume to the station captain",
			ContactEmail:      "station41@example.gov",
			IsActive:          true,
		},
		{
			Title:             "Helitack Crew Member",
			Agency:            "Bureau of Land Management",
			Location:          "Vale, OR",
			PayRate:           "$45,000-55,000/year",
			JobType:           "Helitack",
			ExperienceLevel:   "Advanced",
			StartDate:         now.AddDate(0, 2, 0),
			EndDate:           now.AddDate(0, 8, 0),
			Description:       "<p>Initial-attack helitack position supporting the Vale district.</p>",
			Requirements:      []string{"Two seasons of helitack experience", "Current rappel qualification"},
			ApplicationMethod: "Apply through USAJOBS",
			ContactEmail:      "vale-fire@example.gov",
			IsActive:          true,
		},
	}

	for _, j := range samples {
		if _, err := jobs.Create(ctx, j); err != nil {
			return err
		}
	}

	logger.Info("sample postings seeded", zap.Int("count", len(samples)))
	return nil
}
