// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/emberworks/crewboard/internal/app/system/inputval"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for Crewboard.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_key, etc.
//   - Environment variables: CREWBOARD_MONGO_URI, CREWBOARD_SESSION_KEY, etc.
//   - Command-line flags: --mongo_uri, --session_key, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "crewboard", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},
	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	// Subscription terms
	{Name: "subscription_price_cents", Default: 500, Desc: "Monthly subscription price in cents"},
	{Name: "subscription_period_days", Default: 30, Desc: "Length of a paid subscription period in days"},
	{Name: "payment_processing_delay", Default: "750ms", Desc: "Simulated payment processor latency (e.g., 750ms, 2s)"},

	// Startup seeding
	{Name: "seed_sample_data", Default: false, Desc: "Seed sample postings into an empty jobs collection on startup"},
	{Name: "admin_email", Default: "", Desc: "Email of the bootstrap admin account (created/promoted on startup)"},
	{Name: "admin_password", Default: "", Desc: "Password for the bootstrap admin account (only used when creating it)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// CoreConfig comes from the shared WAFFLE layer; AppConfig is specific
// to this app. WAFFLE's config.LoadWithAppConfig merges .env files,
// config files, environment variables (WAFFLE_* for core, CREWBOARD_*
// for app), and command-line flags, with precedence
// flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "CREWBOARD", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),
		SessionKey:       appValues.String("session_key"),
		SessionDomain:    appValues.String("session_domain"),

		SubscriptionPriceCents: int64(appValues.Int("subscription_price_cents")),
		SubscriptionPeriodDays: appValues.Int("subscription_period_days"),
		PaymentProcessingDelay: appValues.Duration("payment_processing_delay", 750*time.Millisecond),

		SeedSampleData: appValues.Bool("seed_sample_data"),
		AdminEmail:     appValues.String("admin_email"),
		AdminPassword:  appValues.String("admin_password"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.SubscriptionPriceCents <= 0 {
		return fmt.Errorf("subscription_price_cents must be positive, got %d", appCfg.SubscriptionPriceCents)
	}
	if appCfg.SubscriptionPeriodDays < 1 {
		return fmt.Errorf("subscription_period_days must be at least 1, got %d", appCfg.SubscriptionPeriodDays)
	}
	if appCfg.PaymentProcessingDelay < 0 {
		return fmt.Errorf("payment_processing_delay must not be negative")
	}

	if appCfg.AdminEmail != "" {
		if !inputval.IsValidEmail(appCfg.AdminEmail) {
			return fmt.Errorf("admin_email is not a valid email address")
		}
		if len(appCfg.AdminPassword) < inputval.MinPasswordLength {
			return fmt.Errorf("admin_password must be at least %d characters when admin_email is set", inputval.MinPasswordLength)
		}
	}

	return nil
}
