package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/claude/workouttracker/internal/catalog"
	"github.com/claude/workouttracker/internal/config"
	"github.com/claude/workouttracker/internal/mcp"
	"github.com/claude/workouttracker/internal/metrics"
	"github.com/claude/workouttracker/internal/performance"
	"github.com/claude/workouttracker/internal/server"
	"github.com/claude/workouttracker/internal/storage"
	"github.com/claude/workouttracker/internal/tracker"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"tailscale.com/tsnet"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file (empty for defaults)")
	migrateOnly := flag.Bool("migrate-only", false, "prepare storage and exit")
	flag.Parse()

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))
	log.Info("WorkoutTracker starting", "version", Version)

	// Program catalog
	cat := catalog.Default()
	if cfg.Catalog.Path != "" {
		cat, err = catalog.Load(cfg.Catalog.Path)
		if err != nil {
			log.Error("failed to load catalog", "path", cfg.Catalog.Path, "error", err)
			os.Exit(1)
		}
	}
	log.Info("catalog loaded", "workouts", len(cat.WorkoutDays()))

	// Persistence slot
	ctx := context.Background()
	promRegistry := metrics.SetupPrometheus()
	slot, closeSlot, err := openSlot(ctx, cfg.Storage, promRegistry, log)
	if err != nil {
		log.Error("failed to open storage", "driver", cfg.Storage.Driver, "error", err)
		os.Exit(1)
	}
	defer closeSlot()

	if *migrateOnly {
		log.Info("migrate-only: exiting")
		return
	}

	tr := tracker.New(ctx, cat, slot, log)
	srv := server.New(tr, metrics.NewManager("workouttracker", "http", promRegistry), log)
	srv.MountMetrics(promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))

	if cfg.MCP.Enabled {
		mcpSrv := mcp.New(mcp.NewLocal(tr), Version, log)
		srv.MountMCP(mcpserver.NewStreamableHTTPServer(mcpSrv))
		log.Info("mcp endpoint enabled", "path", "/mcp")
	}

	// Start server: tsnet or plain HTTP
	var listener net.Listener

	if cfg.Tailscale.Enabled {
		tsServer := &tsnet.Server{
			Hostname: cfg.Tailscale.Hostname,
			Dir:      cfg.Tailscale.StateDir,
		}
		if err := tsServer.Start(); err != nil {
			log.Error("tsnet start failed", "error", err)
			os.Exit(1)
		}
		defer tsServer.Close()

		listener, err = tsServer.Listen("tcp", ":80")
		if err != nil {
			log.Error("tsnet listen failed", "error", err)
			os.Exit(1)
		}
		log.Info("tsnet server starting", "hostname", cfg.Tailscale.Hostname)
	} else {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			log.Error("listen failed", "addr", addr, "error", err)
			os.Exit(1)
		}
		log.Info("server starting", "addr", addr, "url", "http://"+listener.Addr().String()+"/")
	}

	httpSrv := &http.Server{Handler: srv, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		if err := httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("server stopped")
}

// openSlot returns the persistence slot for the configured driver and a
// function releasing its resources.
func openSlot(ctx context.Context, cfg config.StorageConfig, reg prometheus.Registerer, log *slog.Logger) (performance.Slot, func(), error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		dsn := cfg.Postgres.DSN()
		if err := storage.RunMigrations(dsn); err != nil {
			return nil, nil, fmt.Errorf("migrations: %w", err)
		}
		log.Info("migrations applied")

		db, err := storage.New(ctx, dsn)
		if err != nil {
			return nil, nil, err
		}
		reg.MustRegister(pgxpoolprometheus.NewCollector(db.Pool, map[string]string{"db_name": cfg.Postgres.Name}))
		log.Info("database connected", "slot", cfg.Slot)
		return db.Slot(cfg.Slot), db.Close, nil

	case config.DriverMemory:
		log.Warn("using in-memory storage; edits are lost on exit")
		return storage.NewMemorySlot(), func() {}, nil

	default:
		s, err := storage.OpenSQLite(cfg.Path, cfg.Slot)
		if err != nil {
			return nil, nil, err
		}
		log.Info("sqlite storage opened", "path", cfg.Path, "slot", cfg.Slot)
		return s, func() {
			if err := s.Close(); err != nil {
				log.Warn("closing sqlite", "error", err)
			}
		}, nil
	}
}
