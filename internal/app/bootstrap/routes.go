// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	activityfeature "github.com/teloworks/telodash/internal/app/features/activity"
	authgooglefeature "github.com/teloworks/telodash/internal/app/features/authgoogle"
	dailyfeature "github.com/teloworks/telodash/internal/app/features/daily"
	dashboardfeature "github.com/teloworks/telodash/internal/app/features/dashboard"
	errorsfeature "github.com/teloworks/telodash/internal/app/features/errors"
	healthfeature "github.com/teloworks/telodash/internal/app/features/health"
	linksfeature "github.com/teloworks/telodash/internal/app/features/links"
	loginfeature "github.com/teloworks/telodash/internal/app/features/login"
	logoutfeature "github.com/teloworks/telodash/internal/app/features/logout"
	monthlyfeature "github.com/teloworks/telodash/internal/app/features/monthly"
	overviewfeature "github.com/teloworks/telodash/internal/app/features/overview"
	appresources "github.com/teloworks/telodash/internal/app/resources"
	loginstore "github.com/teloworks/telodash/internal/app/store/logins"
	"github.com/teloworks/telodash/internal/app/store/oauthstate"
	userstore "github.com/teloworks/telodash/internal/app/store/users"
	"github.com/teloworks/telodash/internal/app/system/auth"
	"github.com/teloworks/telodash/internal/app/system/requestid"
	"github.com/teloworks/telodash/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/middleware"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// The route surface is small: sign-in/out, the dashboard shell, and one
// fragment route per panel. Everything under /dashboard requires a session.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Create the session manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Set up the UserFetcher so LoadSessionUser fetches fresh user data on each request.
	// This ensures role changes and disabled accounts take effect immediately.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(deps.MongoDatabase, logger))

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	// Site name and notice banner for every BaseVM. The notice is
	// sanitized once here.
	viewdata.Init(appCfg.SiteName, appCfg.NoticeHTML)

	// Create error logger for handlers.
	errLog := errorsfeature.NewErrorLogger(logger)

	loginStore := loginstore.New(deps.MongoDatabase)

	r := chi.NewRouter()

	// ─────────────────────────────────────────────────────────────────────────────
	// Global Middleware (applies to ALL routes)
	// ─────────────────────────────────────────────────────────────────────────────

	// Request timeout middleware: prevents requests from hanging indefinitely.
	r.Use(chimw.Timeout(30 * time.Second))

	// Request id for log correlation; echoed back in X-Request-ID.
	r.Use(requestid.Middleware)

	// CORS middleware: must be early in the chain to handle preflight requests.
	r.Use(middleware.CORSFromConfig(coreCfg))

	// Security headers middleware: adds X-Frame-Options, X-Content-Type-Options, etc.
	r.Use(middleware.SecurityHeadersFromConfig(coreCfg))

	// Session middleware: loads SessionUser into context if logged in.
	r.Use(sessionMgr.LoadSessionUser)

	// CSRF protection middleware. Cookie name is "telodash_csrf" to avoid
	// collisions with other services on the same domain. htmx requests that
	// fail validation get an HX-Redirect back to the login page.
	csrfOpts := []csrf.Option{
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.CookieName("telodash_csrf"),
		csrf.FieldName("csrf_token"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			logger.Warn("CSRF validation failed",
				zap.String("path", req.URL.Path),
				zap.String("method", req.Method),
				zap.String("reason", csrf.FailureReason(req).Error()),
			)
			if req.Header.Get("HX-Request") == "true" {
				w.Header().Set("HX-Redirect", "/login")
				w.WriteHeader(http.StatusForbidden)
				return
			}
			http.Error(w, "CSRF token invalid or missing", http.StatusForbidden)
		})),
	}
	// In dev mode, trust localhost origins for CSRF validation.
	if !secure {
		csrfOpts = append(csrfOpts, csrf.TrustedOrigins([]string{
			"localhost:8080",
			"localhost:3000",
			"127.0.0.1:8080",
			"127.0.0.1:3000",
		}))
	}
	if appCfg.SessionDomain != "" {
		csrfOpts = append(csrfOpts, csrf.Domain(appCfg.SessionDomain))
	}
	r.Use(csrf.Protect([]byte(appCfg.CSRFKey), csrfOpts...))

	// ─────────────────────────────────────────────────────────────────────────────
	// Routes
	// ─────────────────────────────────────────────────────────────────────────────

	// Health check endpoints for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	healthfeature.MountRootEndpoints(r, healthHandler)

	// Static assets with pre-compressed file support (gzip/brotli)
	// /static/* serves files from disk (static directory)
	r.Handle("/static/*", fileserver.Handler("/static", "static"))

	// /assets/* serves embedded assets (bundled into the binary)
	r.Handle("/assets/*", appresources.AssetsHandler("/assets"))

	// Authentication
	googleEnabled := appCfg.GoogleClientID != "" && appCfg.GoogleClientSecret != ""

	loginHandler := loginfeature.NewHandler(deps.MongoDatabase, sessionMgr, errLog, googleEnabled, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, loginStore, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler, sessionMgr))

	// Google OAuth (only mount if configured)
	if googleEnabled {
		oauthStateStore := oauthstate.New(deps.MongoDatabase)
		googleHandler := authgooglefeature.NewHandler(
			deps.MongoDatabase,
			sessionMgr,
			errLog,
			oauthStateStore,
			appCfg.GoogleClientID,
			appCfg.GoogleClientSecret,
			appCfg.BaseURL,
			logger,
		)
		r.Mount("/auth/google", authgooglefeature.Routes(googleHandler))
		logger.Info("Google OAuth enabled", zap.String("redirect_url", appCfg.BaseURL+"/auth/google/callback"))
	}

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)

	// Dashboard shell and panel fragments
	dashboardHandler := dashboardfeature.NewHandler(logger)
	r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler, sessionMgr))

	overviewHandler := overviewfeature.NewHandler(deps.MongoDatabase, errLog, logger)
	r.Mount("/dashboard/overview", overviewfeature.Routes(overviewHandler, sessionMgr))

	monthlyHandler := monthlyfeature.NewHandler(deps.MongoDatabase, errLog, logger)
	r.Mount("/dashboard/monthly", monthlyfeature.Routes(monthlyHandler, sessionMgr))

	dailyHandler := dailyfeature.NewHandler(deps.MongoDatabase, errLog, logger)
	r.Mount("/dashboard/daily", dailyfeature.Routes(dailyHandler, sessionMgr))

	activityHandler := activityfeature.NewHandler(deps.MongoDatabase, errLog, logger)
	r.Mount("/dashboard/activity", activityfeature.Routes(activityHandler, sessionMgr))

	linksHandler := linksfeature.NewHandler(deps.MongoDatabase, errLog, logger)
	r.Mount("/dashboard/links", linksfeature.Routes(linksHandler, sessionMgr))

	// The root is the dashboard; the shell redirects to /login when the
	// session is missing.
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/dashboard", http.StatusSeeOther)
	})

	// 404 catch-all for unmatched routes
	r.NotFound(errorsHandler.NotFound)

	return r, nil
}
