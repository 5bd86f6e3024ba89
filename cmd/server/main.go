// Package main is the entry point for the blog platform API server.
//
// main stays minimal: load config, build the logger, create the server,
// run it. Everything else lives in internal/ so it can be tested without
// going through main.
package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rahulv/blog-platform/internal/config"
	"github.com/rahulv/blog-platform/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// No logger yet — config decides its level, so fall back to a
		// default one for this single message.
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	}))

	// The SQLite file lives inside a directory that may not exist yet
	// (default: data/blog.db).
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Error("failed to create database directory",
				slog.String("dir", dir),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Blocks until SIGINT/SIGTERM
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// parseLevel maps the config string to a slog level, defaulting to info.
func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
