package adapthttp

import (
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"ecoguardian/internal/ai"
	"ecoguardian/internal/app"
)

const sessionCookieName = "session"

// OIDCConfig carries the provider wiring for the optional SSO login flow.
// Enabled is false when no issuer is configured.
type OIDCConfig struct {
	Enabled      bool
	Provider     *oidc.Provider
	OAuth2Config *oauth2.Config
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	auth        *app.AuthService
	entries     *app.EntryService
	goals       *app.GoalService
	insights    *app.InsightsService
	predictions *app.PredictionService
	routes      *app.RouteService
	advisor     *ai.Advisor
	oidcConfig  OIDCConfig
	log         zerolog.Logger
	webDir      string
}

// New creates a Server wired to the given application services.
func New(
	auth *app.AuthService,
	entries *app.EntryService,
	goals *app.GoalService,
	insights *app.InsightsService,
	predictions *app.PredictionService,
	routes *app.RouteService,
	advisor *ai.Advisor,
	oidcConfig OIDCConfig,
	log zerolog.Logger,
	webDir string,
) *Server {
	return &Server{
		auth:        auth,
		entries:     entries,
		goals:       goals,
		insights:    insights,
		predictions: predictions,
		routes:      routes,
		advisor:     advisor,
		oidcConfig:  oidcConfig,
		log:         log,
		webDir:      webDir,
	}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	public := http.NewServeMux()
	public.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	public.HandleFunc("/auth/signup", s.handleSignup)
	public.HandleFunc("/auth/login", s.handleLogin)
	public.HandleFunc("/auth/logout", s.handleLogout)
	public.HandleFunc("/auth/sso/login", s.handleSSOLogin)
	public.HandleFunc("/auth/sso/callback", s.handleSSOCallback)

	private := http.NewServeMux()
	private.HandleFunc("/auth/me", s.handleMe)
	private.HandleFunc("/carbon-entries", s.handleEntries)
	private.HandleFunc("/carbon-entries/stats", s.handleStats)
	private.HandleFunc("/carbon-entries/analytics", s.handleAnalytics)
	private.HandleFunc("/dashboard-metrics", s.handleDashboardMetrics)
	private.HandleFunc("/goals", s.handleGoals)
	private.HandleFunc("/goals/active", s.handleActiveGoal)
	private.HandleFunc("/chat", s.handleChat)
	private.HandleFunc("/recommendations", s.handleRecommendations)
	private.HandleFunc("/predictions", s.handlePredictions)
	private.HandleFunc("/eco-route", s.handleEcoRoute)

	api := http.NewServeMux()
	api.Handle("/auth/sso/", public)
	api.Handle("/auth/signup", public)
	api.Handle("/auth/login", public)
	api.Handle("/auth/logout", public)
	api.Handle("/health", public)
	api.Handle("/", s.authMiddleware(private))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	root.Handle("/", spaFromDisk(s.webDir))

	return s.loggingMiddleware(withNoCache(root))
}
