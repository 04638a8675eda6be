package main

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	adapthttp "ecoguardian/internal/adapter/http"
	"ecoguardian/internal/adapter/memory"
	"ecoguardian/internal/adapter/postgres"
	"ecoguardian/internal/ai"
	"ecoguardian/internal/app"
	"ecoguardian/internal/config"
	"ecoguardian/internal/domain"
)

type store interface {
	domain.EntryRepository
	domain.GoalRepository
	domain.UserRepository
	domain.SessionRepository
}

func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	cfg := config.Load()

	var db store
	switch cfg.Store {
	case "postgres":
		if cfg.DatabaseURL == "" {
			log.Fatal().Msg("DATABASE_URL is required with STORE=postgres")
		}
		pg, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("db open")
		}
		defer func() { _ = pg.Close() }()
		db = pg
	case "memory":
		db = memory.New()
		log.Warn().Msg("using in-memory store; data is lost on restart")
	default:
		log.Fatal().Str("store", cfg.Store).Msg("unknown store")
	}

	authSvc := app.NewAuthService(db, db, cfg.SessionTTL)
	entrySvc := app.NewEntryService(db)
	goalSvc := app.NewGoalService(db)
	insightsSvc := app.NewInsightsService(db)

	advisor := ai.NewAdvisor(ai.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.AITimeout))
	predictSvc := app.NewPredictionService(db, advisor)
	routeSvc := app.NewRouteService(rand.New(rand.NewSource(time.Now().UnixNano())))

	oidcCfg := setupOIDC(cfg, log)

	srv := adapthttp.New(authSvc, entrySvc, goalSvc, insightsSvc, predictSvc, routeSvc, advisor, oidcCfg, log, cfg.WebDir)

	go reapSessions(db, log)

	log.Info().Str("addr", cfg.Addr).Str("store", cfg.Store).Msg("listening")
	if err := http.ListenAndServe(cfg.Addr, srv.Handler()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server")
	}
}

func setupOIDC(cfg config.Config, log zerolog.Logger) adapthttp.OIDCConfig {
	if !cfg.SSOConfigured() {
		return adapthttp.OIDCConfig{}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	provider, err := oidc.NewProvider(ctx, cfg.OIDCIssuer)
	if err != nil {
		log.Error().Err(err).Msg("oidc provider discovery failed; sso disabled")
		return adapthttp.OIDCConfig{}
	}

	return adapthttp.OIDCConfig{
		Enabled:  true,
		Provider: provider,
		OAuth2Config: &oauth2.Config{
			ClientID:     cfg.OIDCClientID,
			ClientSecret: cfg.OIDCClientSecret,
			RedirectURL:  cfg.OIDCRedirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
	}
}

// reapSessions periodically removes expired sessions.
func reapSessions(sessions domain.SessionRepository, log zerolog.Logger) {
	for range time.Tick(time.Hour) {
		if err := sessions.DeleteExpiredSessions(context.Background()); err != nil {
			log.Error().Err(err).Msg("session cleanup")
		}
	}
}
