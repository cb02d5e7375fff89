package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"notekeeper/internal/config"
	"notekeeper/internal/db"
	"notekeeper/internal/logger"
	mcpserver "notekeeper/internal/mcp"
	"notekeeper/internal/metrics"
	"notekeeper/internal/notes"
	httpserver "notekeeper/internal/server"
)

func main() {
	// Config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Logger
	logr, err := logger.New(cfg.Logging)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = logr.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logr); err != nil {
		logr.Fatal("service stopped with error", zap.Error(err))
	}
	logr.Info("server stopped")
}

// run serves until ctx is cancelled. A cancellation while still waiting for
// the database is a normal stop, not a failure.
func run(ctx context.Context, cfg *config.Config, logr *zap.Logger) error {
	// Connect to MongoDB, giving it time to come up alongside us
	logr.Info("connecting to MongoDB", zap.String("database", cfg.Mongo.Database))
	handle, err := db.Connect(ctx, cfg.Mongo, db.DefaultRetryPolicy, logr)
	if err != nil {
		if ctx.Err() != nil {
			logr.Info("startup interrupted before the database was reachable", zap.Error(err))
			return nil
		}
		return fmt.Errorf("could not connect to database: %w", err)
	}
	logr.Info("connected to MongoDB", zap.String("database", cfg.Mongo.Database))
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown.Timeout)
		defer cancel()
		if err := handle.Close(shutdownCtx); err != nil {
			logr.Warn("failed to close database", zap.Error(err))
		}
	}()

	// Wire dependencies
	collector := metrics.NewCollector("notes")
	store := notes.Instrument(notes.NewRepo(handle.Collection(cfg.Mongo.Collection)), collector)
	noteSvc := notes.NewService(store)
	noteHandler := notes.NewHandler(noteSvc, logr)

	var mcpHTTP http.Handler
	if cfg.MCP.Enabled {
		mcpHTTP = server.NewStreamableHTTPServer(mcpserver.NewServer(noteSvc))
	}

	router := httpserver.NewRouter(noteHandler, mcpHTTP, collector, cfg.CORS, logr)

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", srv.Addr, err)
	}

	logr.Info("server starting",
		zap.String("addr", ln.Addr().String()),
		zap.Bool("mcp", cfg.MCP.Enabled),
		zap.Int("pid", os.Getpid()))

	// Serve blocks until the drain has finished, so the deferred database
	// close runs only after the last request.
	return httpserver.Serve(ctx, srv, ln, cfg.Shutdown.Timeout, logr)
}
