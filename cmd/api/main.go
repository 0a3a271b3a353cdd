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
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/edusave/edusave-api/internal/config"
	"github.com/edusave/edusave-api/internal/domain/account"
	"github.com/edusave/edusave-api/internal/domain/auth"
	"github.com/edusave/edusave-api/internal/domain/dashboard"
	"github.com/edusave/edusave-api/internal/domain/layout"
	"github.com/edusave/edusave-api/internal/domain/rule"
	"github.com/edusave/edusave-api/internal/domain/schedule"
	"github.com/edusave/edusave-api/internal/domain/transaction"
	"github.com/edusave/edusave-api/internal/domain/user"
	"github.com/edusave/edusave-api/internal/middleware"
	"github.com/edusave/edusave-api/internal/pkg/database"
	"github.com/edusave/edusave-api/internal/pkg/jwt"
	"github.com/edusave/edusave-api/internal/pkg/response"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting EduSave API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

	// ---------- Repositories ----------
	userRepo := user.NewRepository(db)
	accountRepo := account.NewRepository(db)
	ruleRepo := rule.NewRepository(db)
	scheduleRepo := schedule.NewRepository(db)
	ledgerRepo := transaction.NewRepository(db)
	dashboardRepo := dashboard.NewRepository(db)

	// ---------- Services ----------
	authService := auth.NewService(userRepo, jwtService, redis)
	accountService := account.NewService(accountRepo, userRepo)
	ruleService := rule.NewService(ruleRepo, accountRepo)
	transactionService := transaction.NewService(ledgerRepo, accountRepo)
	scheduleService := schedule.NewService(scheduleRepo, ruleRepo, accountRepo, ledgerRepo)
	layoutStore := layout.NewStore(redis)

	// ---------- Handlers ----------
	authHandler := auth.NewHandler(authService)
	accountHandler := account.NewHandler(accountService)
	ruleHandler := rule.NewHandler(ruleService)
	transactionHandler := transaction.NewHandler(transactionService)
	scheduleHandler := schedule.NewHandler(scheduleService)
	dashboardHandler := dashboard.NewHandler(dashboardRepo)
	layoutHandler := layout.NewHandler(layoutStore)

	authMiddleware := middleware.Auth(jwtService)

	// ---------- Background worker ----------
	var worker *schedule.Worker
	if cfg.ExecutorEnabled {
		worker = schedule.NewWorker(scheduleService, cfg.ExecutorInterval)
		worker.Start()
	}

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes(authMiddleware))

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Mount("/layouts", layoutHandler.Routes())
		})

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(middleware.RequireMember())
			r.Mount("/me", transactionHandler.MemberRoutes())
		})
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(middleware.RequireAdmin())

		r.Mount("/dashboard", dashboardHandler.Routes())
		r.Mount("/rules", ruleHandler.Routes())
		r.Mount("/schedules", scheduleHandler.Routes())

		r.Route("/accounts", func(r chi.Router) {
			r.Get("/", accountHandler.List)
			r.Post("/", accountHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", accountHandler.Get)
				r.Put("/", accountHandler.Update)
				r.Delete("/", accountHandler.Deactivate)
				r.Get("/transactions", transactionHandler.Statement)
				r.Post("/charges", transactionHandler.Charge)
			})
		})
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	if worker != nil {
		worker.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		})
	}
}
