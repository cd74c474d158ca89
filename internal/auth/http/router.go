package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/soomhq/soom-auth/internal/auth/service"
	"github.com/soomhq/soom-auth/internal/auth/store"
	"github.com/soomhq/soom-auth/pkg/httpx"
	"github.com/soomhq/soom-auth/pkg/jwtx"
	"github.com/soomhq/soom-auth/pkg/slogx"

	_ "github.com/soomhq/soom-auth/api/docs" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	codec        *jwtx.Codec
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store       store.Store
	AuthService *service.AuthService

	Cookies CookieConfig
	CORS    httpx.CORSConfig
}

func NewRouter(
	codec *jwtx.Codec,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		codec:        codec,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	// CORS and the bearer gate wrap every route. The gate never rejects;
	// routes that need an identity add RequireAuth themselves.
	r.middlewares = append(r.middlewares,
		httpx.CORS(r.CORS),
		httpx.Authenticate(r.codec, r.AuthService),
	)

	r.registerAuth()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Soom Authentication Service API
//	@version		0.1.0
//	@description	Session service issuing short-lived HS256 access tokens and
//	@description	long-lived rotating refresh tokens delivered via HttpOnly cookie.
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@schemes	http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	login := &LoginHandler{AuthService: r.AuthService, Cookies: r.Cookies}
	refresh := &RefreshHandler{AuthService: r.AuthService, Cookies: r.Cookies}
	logout := &LogoutHandler{AuthService: r.AuthService, Cookies: r.Cookies}
	me := &MeHandler{AuthService: r.AuthService}

	// Credential endpoints take the strict per-IP budget to slow down
	// brute force and refresh token guessing.
	r.Mux.Handle("POST /auth/login",
		httpx.Chain(login, httpx.RateLimitByIP(httpx.StrictLimit)),
	)
	r.Mux.Handle("POST /auth/refresh",
		httpx.Chain(refresh, httpx.RateLimitByIP(httpx.StrictLimit)),
	)
	r.Mux.Handle("POST /auth/logout",
		httpx.Chain(logout, httpx.RateLimitByIP(httpx.ModerateLimit)),
	)

	r.Mux.Handle("GET /auth/me",
		httpx.Chain(me,
			httpx.RequireAuth,
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /api/health", HealthHandler(r.startTime, r.buildVersion, r.store))
}
