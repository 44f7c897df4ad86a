// README: Entry point; loads config, wires services, starts the HTTP API with graceful shutdown.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"voyage/internal/ai"
	"voyage/internal/config"
	httptransport "voyage/internal/http"
	"voyage/internal/http/handlers"
	"voyage/internal/http/middleware"
	"voyage/internal/infra"
	"voyage/internal/modules/dialogue"
	"voyage/internal/modules/imagesearch"
	"voyage/internal/modules/itinerary"
	"voyage/internal/modules/quota"
	"voyage/internal/modules/session"
	"voyage/internal/modules/trip"
	"voyage/internal/modules/user"
	"voyage/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var verifier infra.TokenVerifier
	if cfg.Firebase.DevAuth {
		log.Printf("auth: dev tokens enabled, do not use in production")
		verifier = infra.DevVerifier{}
	} else {
		if cfg.Firebase.ProjectID == "" {
			log.Fatal("VOYAGE_FIREBASE_PROJECT_ID is required")
		}
		verifier, err = infra.NewFirebaseVerifier(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
		if err != nil {
			log.Fatalf("firebase init: %v", err)
		}
	}

	provider, err := ai.NewProvider(ctx, cfg.AI.Provider, providerKey(cfg.AI), ai.Options{
		ChatModel:    cfg.AI.ChatModel,
		PlanModel:    cfg.AI.PlanModel,
		HistoryLimit: cfg.AI.HistoryLimit,
	})
	if err != nil {
		log.Fatalf("ai init: %v", err)
	}
	defer provider.Close()

	var (
		searcher itinerary.ImageSearcher
		photos   handlers.PhotoSource
	)
	if cfg.Images.MapsKey != "" {
		places, err := imagesearch.NewPlacesSearcher(cfg.Images.MapsKey, cfg.Images.PhotoBaseURL, cfg.Images.MaxWidth)
		if err != nil {
			log.Fatalf("places init: %v", err)
		}
		searcher = imagesearch.NewCachedSearcher(places, cfg.Images.CacheTTL)
		photos = places
	} else {
		log.Printf("images: GOOGLE_MAPS_API_KEY not set, itineraries use the default image")
	}
	enricher := itinerary.NewEnricher(searcher, cfg.Images.Concurrency)

	sessions, err := newSessionStore(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer sessions.Close()

	deps := httptransport.RouterDeps{
		Photos:   photos,
		Verifier: verifier,
		Limiter:  middleware.NewRateLimiter(cfg.HTTP.RatePerMinute, cfg.HTTP.RateBurst),
	}
	var (
		charger service.QuotaCharger
		saver   service.TripSaver
	)
	if cfg.DB.DSN != "" {
		dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			log.Fatal(err)
		}
		defer dbPool.Close()
		if cfg.DB.Migrate {
			if err := infra.Migrate(ctx, dbPool, migrationsDir()); err != nil {
				log.Fatalf("migrate: %v", err)
			}
		}

		deps.Users = user.NewService(user.NewStore(dbPool))
		deps.Quota = quota.NewService(quota.NewStore(dbPool), cfg.Quota.Allowance)
		deps.Trips = trip.NewService(trip.NewStore(dbPool))
		charger, saver = deps.Quota, deps.Trips
	} else {
		log.Printf("db: VOYAGE_DB_DSN not set, quota, users and saved trips are disabled")
	}

	deps.Planner = service.NewTripPlanner(provider, enricher, sessions, charger, saver, service.PlannerConfig{
		Dialogue: dialogueConfig(cfg.AI, cfg.Images),
		PlanCost: cfg.Quota.PlanCost,
	})

	gin.SetMode(gin.ReleaseMode)
	router := httptransport.NewRouter(deps)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.HTTP.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           corsHandler.Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("voyage-api listening on %s (provider %s, sessions %s)", cfg.HTTP.Addr, cfg.AI.Provider, cfg.Session.Store)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.AI.PlanTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

func newSessionStore(ctx context.Context, cfg config.Config) (session.Store, error) {
	if cfg.Session.Store != "redis" {
		return session.NewMemoryStore(cfg.Session.TTL), nil
	}
	client, err := infra.NewRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, err
	}
	return session.NewRedisStore(client, cfg.Session.TTL), nil
}

func providerKey(cfg config.AIConfig) string {
	if cfg.Provider == "openai" {
		return cfg.OpenAIKey
	}
	return cfg.GeminiKey
}

func dialogueConfig(aiCfg config.AIConfig, images config.ImagesConfig) dialogue.Config {
	return dialogue.Config{ChatTimeout: aiCfg.ChatTimeout, PlanTimeout: aiCfg.PlanTimeout, EnrichTimeout: images.Timeout}
}

func migrationsDir() string {
	if root, err := infra.RepoRoot(); err == nil {
		return filepath.Join(root, "migrations")
	}
	return "migrations"
}
