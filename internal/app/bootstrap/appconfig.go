// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers
// framework-level settings like ports, TLS, logging, and CORS; AppConfig
// is everything specific to this application.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionDomain string // Cookie domain (blank means current host)

	// Subscription terms
	SubscriptionPriceCents int64         // Monthly charge in cents
	SubscriptionPeriodDays int           // Length of a paid period in days
	PaymentProcessingDelay time.Duration // Simulated processor latency per charge

	// Startup seeding
	SeedSampleData bool   // Insert sample postings into an empty jobs collection
	AdminEmail     string // Email of the bootstrap admin account (created/promoted on startup)
	AdminPassword  string // Password for the bootstrap admin account (only used when creating it)
}
