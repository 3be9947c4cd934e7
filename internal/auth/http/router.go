package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/hogarcare/hogar/internal/auth/domain"
	"github.com/hogarcare/hogar/internal/auth/service"
	"github.com/hogarcare/hogar/internal/auth/store"
	"github.com/hogarcare/hogar/pkg/httpx"
	"github.com/hogarcare/hogar/pkg/jwtx"
	"github.com/hogarcare/hogar/pkg/slogx"

	_ "github.com/hogarcare/hogar/api/auth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// adminRoles may hit the /v1/admin surface. Directors additionally get the
// read-only reports.
var (
	adminRoles = []string{
		string(domain.RoleSuperAdmin),
		string(domain.RoleAdmin),
	}
	reportRoles = append(adminRoles, string(domain.RoleDirector))
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	signer       *jwtx.Signer
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store              store.Store
	AuthService        *service.AuthService
	TwoFactorService   *service.TwoFactorService
	ResetService       *service.PasswordResetService
	SessionService     *service.SessionService
	MaintenanceService *service.MaintenanceService
	BootstrapService   *service.BootstrapService
}

func NewRouter(signer *jwtx.Signer, buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		signer:       signer,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerTwoFactor()
	r.registerPassword()
	r.registerSessions()
	r.registerAdmin()
	r.registerSystem()
	r.registerBootstrap()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Hogar Authentication Service API
//	@version		0.1.0
//	@description	Authentication and session lifecycle service for the Hogar care facility
//	@description	administration backend: password login with optional TOTP two-factor,
//	@description	bearer sessions with refresh rotation, and password recovery by mailed code.
//	@description
//	@description				All tokens are Ed25519-signed JWTs carrying a kind claim; sessions are stored
//	@description				as SHA-256 fingerprints only.
//
//	@contact.name				Hogar Team
//	@contact.url				https://github.com/hogarcare/hogar
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}
	guard := SessionGuard(r.SessionService)

	// POST /login - strict rate limit by IP + email to slow brute force on a
	// single account without locking out a whole office behind one NAT.
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "email"),
		),
	)

	// POST /2fa/complete - strict rate limit by IP (code guessing window)
	r.Mux.Handle("POST /v1/auth/2fa/complete",
		httpx.Chain(http.HandlerFunc(h.HandleComplete2FA),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /refresh - moderate rate limit by IP
	r.Mux.Handle("POST /v1/auth/refresh",
		httpx.Chain(http.HandlerFunc(h.HandleRefresh),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// POST /logout - no session guard: logout is idempotent and must succeed
	// even when the token is already dead.
	r.Mux.Handle("POST /v1/auth/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	me := &MeHandler{AuthService: r.AuthService}
	r.Mux.Handle("GET /v1/me",
		httpx.Chain(http.HandlerFunc(me.HandleMe),
			guard,
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerTwoFactor() {
	h := &TwoFactorHandler{TwoFactorService: r.TwoFactorService}
	guard := SessionGuard(r.SessionService)

	// POST /2fa/setup - moderate rate limit by user
	r.Mux.Handle("POST /v1/2fa/setup",
		httpx.Chain(http.HandlerFunc(h.HandleSetup),
			guard,
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// POST /2fa/enable - strict rate limit by user (code guessing)
	r.Mux.Handle("POST /v1/2fa/enable",
		httpx.Chain(http.HandlerFunc(h.HandleEnable),
			guard,
			httpx.RateLimitByUser(httpx.StrictLimit),
		),
	)

	// DELETE /2fa - strict rate limit by user (code guessing)
	r.Mux.Handle("DELETE /v1/2fa",
		httpx.Chain(http.HandlerFunc(h.HandleDisable),
			guard,
			httpx.RateLimitByUser(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerPassword() {
	h := &PasswordHandler{ResetService: r.ResetService}

	// POST /password/forgot - strict rate limit by IP + email
	r.Mux.Handle("POST /v1/auth/password/forgot",
		httpx.Chain(http.HandlerFunc(h.HandleForgot),
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "email"),
		),
	)

	// POST /password/reset - strict rate limit by IP (8-digit code guessing)
	r.Mux.Handle("POST /v1/auth/password/reset",
		httpx.Chain(http.HandlerFunc(h.HandleReset),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerSessions() {
	h := &SessionsHandler{SessionService: r.SessionService}
	guard := SessionGuard(r.SessionService)

	r.Mux.Handle("GET /v1/sessions",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			guard,
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("DELETE /v1/sessions/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleRevoke),
			guard,
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerAdmin() {
	h := &SessionsHandler{SessionService: r.SessionService}
	m := &MaintenanceHandler{MaintenanceService: r.MaintenanceService}
	guard := SessionGuard(r.SessionService)

	// Destructive admin operations additionally require the admin to have
	// two-factor enabled on their own account.
	r.Mux.Handle("DELETE /v1/admin/users/{id}/sessions",
		httpx.Chain(http.HandlerFunc(h.HandleRevokeAllForUser),
			guard,
			httpx.RequireAnyRole(adminRoles...),
			httpx.RequireTwoFactor(r.TwoFactorService),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("GET /v1/admin/sessions/suspicious",
		httpx.Chain(http.HandlerFunc(h.HandleSuspicious),
			guard,
			httpx.RequireAnyRole(reportRoles...),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("POST /v1/admin/maintenance/cleanup",
		httpx.Chain(http.HandlerFunc(m.HandleCleanup),
			guard,
			httpx.RequireAnyRole(adminRoles...),
			httpx.RequireTwoFactor(r.TwoFactorService),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerBootstrap() {
	// POST /bootstrap - very strict rate limit by IP (one-time setup endpoint)
	h := &BootstrapHandler{BootstrapService: r.BootstrapService}
	r.Mux.Handle("POST /v1/bootstrap",
		httpx.Chain(http.HandlerFunc(h.HandleBootstrap),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.signer),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
