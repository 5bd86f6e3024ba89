// Package server wires the application together and runs the HTTP server.
//
// This is the composition root: the one place that knows about every
// concrete type. The dependency chain assembled here:
//
//	sqlite.DB → BlogService/AuthService → BlogHandler/AuthHandler → routes
//
// Each layer receives only what it needs — services get repository
// interfaces, handlers get services. Nothing below this package imports
// anything above it.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/rahulv/blog-platform/internal/auth"
	"github.com/rahulv/blog-platform/internal/config"
	"github.com/rahulv/blog-platform/internal/handler"
	"github.com/rahulv/blog-platform/internal/middleware"
	sqliteRepo "github.com/rahulv/blog-platform/internal/repository/sqlite"
	"github.com/rahulv/blog-platform/internal/service"
	"github.com/rahulv/blog-platform/internal/validate"
)

// Server owns the router and every long-lived resource behind it.
// The database connection is opened in New and closed on shutdown, so one
// pool serves the whole process lifetime — never a connection per request.
type Server struct {
	router *chi.Mux
	cfg    *config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New builds the full dependency graph. The returned server is ready to
// Start; on error nothing is left open.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		cfg:    cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures middleware and mounts every route.
//
// ROUTE STRUCTURE:
//
//	POST /api/v1/user/signup       → create account, returns {"jwt"}
//	POST /api/v1/user/signin       → verify credentials, returns {"jwt"}
//	GET  /api/v1/user/me           → profile (auth required)
//	POST /api/v1/blog              → create post (auth required)
//	PUT  /api/v1/blog              → update post (auth required)
//	GET  /api/v1/blog/bulk         → list all posts (auth required)
//	GET  /api/v1/blog/{id}         → one post (auth required)
//	GET  /auth/github/login        → redirect to GitHub (when configured)
//	GET  /auth/github/callback     → complete OAuth, returns {"jwt"}
//
// Middleware order: RequestID first so the request log can include the id,
// Recoverer before the routes so a panicking handler becomes a 500 instead
// of a dead process.
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(chimiddleware.Recoverer)

	tokens, err := auth.NewTokenService(s.cfg.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()
	validator := validate.New()

	var github *auth.GitHubProvider
	if s.cfg.GitHubClientID != "" && s.cfg.GitHubClientSecret != "" {
		github = auth.NewGitHubProvider(
			s.cfg.GitHubClientID,
			s.cfg.GitHubClientSecret,
			s.cfg.GitHubCallbackURL,
		)
	}

	blogService := service.NewBlogService(s.db, s.logger)
	authService := service.NewAuthService(s.db, tokens, passwords, s.logger)

	blogHandler := handler.NewBlogHandler(blogService, validator, s.logger)
	authHandler := handler.NewAuthHandler(authService, github, validator, s.logger)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Route("/blog", func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))
			r.Post("/", blogHandler.HandleCreate)
			r.Put("/", blogHandler.HandleUpdate)
			r.Get("/bulk", blogHandler.HandleList)
			r.Get("/{id}", blogHandler.HandleGetByID)
		})

		r.Route("/user", func(r chi.Router) {
			r.Post("/signup", authHandler.HandleSignup)
			r.Post("/signin", authHandler.HandleSignin)
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAuth(tokens))
				r.Get("/me", authHandler.HandleMe)
			})
		})
	})

	if github != nil {
		s.router.Route("/auth/github", func(r chi.Router) {
			r.Get("/login", authHandler.HandleGitHubLogin)
			r.Get("/callback", authHandler.HandleGitHubCallback)
		})
	} else {
		s.logger.Info("GitHub OAuth not configured — social sign-in routes disabled")
	}

	return nil
}

// Start runs the server until SIGINT/SIGTERM, then drains in-flight
// requests (30s budget) and closes the database so the WAL is flushed.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.cfg.Port),
			slog.String("database", s.cfg.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
