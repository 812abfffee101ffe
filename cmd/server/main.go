package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lifehubapp/backend/internal/auth"
	"github.com/lifehubapp/backend/internal/budgets"
	"github.com/lifehubapp/backend/internal/config"
	"github.com/lifehubapp/backend/internal/dashboard"
	"github.com/lifehubapp/backend/internal/events"
	"github.com/lifehubapp/backend/internal/flashcards"
	"github.com/lifehubapp/backend/internal/metrics"
	"github.com/lifehubapp/backend/internal/middleware"
	"github.com/lifehubapp/backend/internal/notifications"
	"github.com/lifehubapp/backend/internal/profile"
	"github.com/lifehubapp/backend/internal/routines"
	"github.com/lifehubapp/backend/internal/store"
	"github.com/lifehubapp/backend/internal/wellness"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	// ── PostgreSQL ────────────────────────────────────────────
	if err := store.RunMigrations(ctx, cfg.PostgresDSN); err != nil {
		log.Fatal().Err(err).Msg("postgres migrate")
	}
	pgPool, err := pgxpool.New(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connect")
	}
	defer pgPool.Close()
	pgStore := store.NewPostgresStore(pgPool)

	// ── MongoDB ──────────────────────────────────────────────
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect")
	}
	defer mongoClient.Disconnect(ctx)
	deckStore := store.NewDeckStore(mongoClient.Database(cfg.MongoDB))

	// ── MinIO ────────────────────────────────────────────────
	avatarStore, err := store.NewAvatarStore(
		ctx, cfg.MinioEndpoint, cfg.MinioAccessKey,
		cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("minio connect")
	}

	// ── Auth ─────────────────────────────────────────────────
	tokens := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)
	requireAuth := middleware.RequireAuth(tokens, log)

	// ── Rate limiter ─────────────────────────────────────────
	limiter := middleware.NewRateLimiter(cfg.RateLimitWindow, cfg.RateLimitMax, cfg.RateLimitDisabled)
	limiter.StartSweeper()
	defer limiter.Stop()

	// ── Handlers ─────────────────────────────────────────────
	authHandler := auth.NewHandler(pgStore, tokens, log)
	routineHandler := routines.NewHandler(pgStore, log)
	budgetHandler := budgets.NewHandler(pgStore, pgStore, log)
	eventHandler := events.NewHandler(pgStore, log)
	deckHandler := flashcards.NewHandler(deckStore, log)
	wellnessHandler := wellness.NewHandler(pgStore, log)
	profileHandler := profile.NewHandler(pgStore, avatarStore, log)
	notificationHandler := notifications.NewHandler(pgStore, log)
	dashboardHandler := dashboard.NewHandler(pgStore, log)

	// ── Router ───────────────────────────────────────────────
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(metrics.Middleware)
	// CORS runs ahead of the limiter so preflights skip the quota and
	// rate-limit responses still carry CORS headers.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(limiter.Handler)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	// Auth routes (public except /me)
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.Signup)
		r.Post("/login", authHandler.Login)
		r.With(requireAuth).Get("/me", authHandler.Me)
	})

	// Domain routes (protected)
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Route("/api/routines", routineHandler.Routes)
		r.Route("/api/budgets", budgetHandler.Routes)
		r.Route("/api/events", eventHandler.Routes)
		r.Route("/api/decks", deckHandler.Routes)
		r.Route("/api/wellness", wellnessHandler.Routes)
		r.Route("/api/profile", profileHandler.Routes)
		r.Route("/api/notifications", notificationHandler.Routes)
		r.Get("/api/dashboard", dashboardHandler.Get)
	})

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("backend listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	srv.Shutdown(shutCtx)
}
