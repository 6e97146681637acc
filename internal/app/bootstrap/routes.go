// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	adminjobsfeature "github.com/emberworks/crewboard/internal/app/features/adminjobs"
	billingfeature "github.com/emberworks/crewboard/internal/app/features/billing"
	healthfeature "github.com/emberworks/crewboard/internal/app/features/health"
	jobsfeature "github.com/emberworks/crewboard/internal/app/features/jobs"
	loginfeature "github.com/emberworks/crewboard/internal/app/features/login"
	profilefeature "github.com/emberworks/crewboard/internal/app/features/profile"
	registerfeature "github.com/emberworks/crewboard/internal/app/features/register"
	settingsfeature "github.com/emberworks/crewboard/internal/app/features/settings"
	jobstore "github.com/emberworks/crewboard/internal/app/store/jobs"
	paymentstore "github.com/emberworks/crewboard/internal/app/store/payments"
	preferencestore "github.com/emberworks/crewboard/internal/app/store/preferences"
	userstore "github.com/emberworks/crewboard/internal/app/store/users"
	"github.com/emberworks/crewboard/internal/app/system/auth"
	"github.com/emberworks/crewboard/internal/app/system/viewtrack"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE
// app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and any Startup hooks have completed. The session store is initialized
// here; every request then passes through LoadSessionUser so handlers
// can read the signed-in account from the request context.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	secure := coreCfg.Env == "prod"
	if err := auth.InitSessionStore(appCfg.SessionKey, appCfg.SessionDomain, secure, logger); err != nil {
		logger.Error("session store init failed", zap.Error(err))
		return nil, err
	}

	db := deps.MongoDatabase
	users := userstore.New(db)
	jobs := jobstore.New(db)
	payments := paymentstore.New(db)
	prefs := preferencestore.New(db)

	// View dedupe cookies are signed with the session key so one secret
	// covers both cookie surfaces.
	views := viewtrack.New([]byte(appCfg.SessionKey))

	r := chi.NewRouter()

	// Global auth middleware: loads the SessionUser into context if
	// signed in, so handlers can use auth.CurrentUser / authz.UserCtx.
	r.Use(auth.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Account creation and sessions
	registerHandler := registerfeature.NewHandler(users, logger)
	r.Mount("/register", registerfeature.Routes(registerHandler))

	loginHandler := loginfeature.NewHandler(users, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))
	r.Mount("/logout", loginfeature.LogoutRoutes(loginHandler))

	// Public posting surface: listing, detail, bookmarks, applications
	jobsHandler := jobsfeature.NewHandler(jobs, users, views, logger)
	r.Mount("/", jobsfeature.Routes(jobsHandler))

	// Signed-in account surfaces
	profileHandler := profilefeature.NewHandler(users, logger)
	r.Mount("/profile", profilefeature.Routes(profileHandler))

	settingsHandler := settingsfeature.NewHandler(users, payments, prefs, logger)
	r.Mount("/settings", settingsfeature.Routes(settingsHandler))

	billingHandler := billingfeature.NewHandler(users, payments, billingfeature.Config{
		PriceCents:      appCfg.SubscriptionPriceCents,
		PeriodDays:      appCfg.SubscriptionPeriodDays,
		ProcessingDelay: appCfg.PaymentProcessingDelay,
	}, logger)
	r.Mount("/billing", billingfeature.Routes(billingHandler))

	// Posting management and stats, admin only
	adminHandler := adminjobsfeature.NewHandler(jobs, users, payments, logger)
	r.Mount("/admin", adminjobsfeature.Routes(adminHandler))

	return r, nil
}
