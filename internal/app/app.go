package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/uptrace/bun"

	"school-service/internal/auth"
	"school-service/internal/config"
	"school-service/internal/db"
	"school-service/internal/health"
	"school-service/internal/logger"
	"school-service/internal/marks"
	"school-service/internal/middleware"
	"school-service/internal/user"
	"school-service/internal/web"
)

type App struct {
	config *config.Config
	router chi.Router
	server *http.Server
	logger *slog.Logger
	db     *bun.DB
}

func New() *App {
	slogLogger := logger.NewWithServiceContext(ServiceName, Version)

	// Set as default logger so slog.Info() uses the same handler
	slog.SetDefault(slogLogger)

	slogLogger.Info("initializing application")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	slogLogger.Info("config loaded", "env", cfg.Env)

	database := db.New(cfg.Database)

	if err := Setup(context.Background(), cfg, database); err != nil {
		log.Fatal("failed to set up database:", err)
	}

	app := &App{
		config: cfg,
		router: NewRouter(cfg, database, slogLogger),
		logger: slogLogger,
		db:     database,
	}

	slogLogger.Info("application initialized successfully")

	return app
}

// Setup runs the table migrations and seeds the admin account.
func Setup(ctx context.Context, cfg *config.Config, database *bun.DB) error {
	err := db.RunMigrations(ctx, database,
		(*user.User)(nil),
		(*auth.Session)(nil),
		(*marks.Mark)(nil),
	)
	if err != nil {
		return err
	}

	userService := user.NewService(user.NewRepository(database))
	return userService.SeedAdmin(ctx, cfg.Admin.Name, cfg.Admin.Username, cfg.Admin.Password)
}

// NewRouter wires every handler behind the auth and role gates.
func NewRouter(cfg *config.Config, database *bun.DB, slogLogger *slog.Logger) chi.Router {
	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.RequestLogger(slogLogger))

	render := web.NewRenderer(slogLogger)

	// Health endpoints (no auth required)
	healthHandler := health.NewHandler()
	healthHandler.RegisterRoutes(router)

	userRepo := user.NewRepository(database)
	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService, render, slogLogger)

	sessionTTL := time.Duration(cfg.Auth.SessionTTLMinutes) * time.Minute
	authService := auth.NewService(auth.NewRepository(database), userRepo, cfg.Auth.JWTSecret, sessionTTL)
	authHandler := auth.NewHandler(authService, render, slogLogger)
	authHandler.RegisterRoutes(router)

	marksService := marks.NewService(marks.NewRepository(database), userRepo)
	marksHandler := marks.NewHandler(marksService, render, slogLogger)

	// Protected pages: authentication first, then the role policy gate.
	router.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(authService, slogLogger))
		r.Use(auth.RequireRole(auth.DefaultPolicy))

		r.Get("/dashboard", authHandler.Dashboard)
		r.Get("/logout", authHandler.Logout)
		userHandler.RegisterRoutes(r)
		marksHandler.RegisterRoutes(r)
	})

	return router
}

func (a *App) Run() error {
	a.server = &http.Server{
		Addr:         fmt.Sprintf(":%s", a.config.Server.Port),
		Handler:      a.router,
		ReadTimeout:  time.Duration(a.config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(a.config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(a.config.Server.IdleTimeout) * time.Second,
	}

	a.logger.Info("server starting", "port", a.config.Server.Port)
	return a.server.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down server")
	defer db.Close(a.db)
	return a.server.Shutdown(ctx)
}
