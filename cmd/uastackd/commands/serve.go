package commands

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/avencourt/uastack/internal/logger"
	"github.com/avencourt/uastack/internal/service"
	"github.com/avencourt/uastack/internal/service/session"
	"github.com/avencourt/uastack/internal/service/view"
	"github.com/avencourt/uastack/internal/telemetry"
	"github.com/avencourt/uastack/pkg/addrspace/memspace"
	"github.com/avencourt/uastack/pkg/api"
	"github.com/avencourt/uastack/pkg/config"
	"github.com/avencourt/uastack/pkg/metrics"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the services core against the sample address space",
	Long: `Starts the services dispatcher with the built-in sample address
space, the diagnostics HTTP API, and (when configured) tracing and
profiling. The secure-channel and encoding layers are external; this
command runs the core for development and diagnostics.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if err := logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Init(ctx, telemetry.Config{
		Enabled:     cfg.Telemetry.Enabled,
		ServiceName: cfg.Telemetry.ServiceName,
		Endpoint:    cfg.Telemetry.Endpoint,
		SampleRatio: cfg.Telemetry.SampleRatio,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("Tracing shutdown failed", "error", err)
		}
	}()

	stopProfiling, err := telemetry.InitProfiling(telemetry.ProfilingConfig{
		Enabled:      cfg.Profiling.Enabled,
		ServiceName:  cfg.Profiling.ServiceName,
		Endpoint:     cfg.Profiling.Endpoint,
		ProfileTypes: cfg.Profiling.ProfileTypes,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := stopProfiling(); err != nil {
			logger.Warn("Profiler shutdown failed", "error", err)
		}
	}()

	reg := metrics.Init()

	svc := service.New(service.Config{
		MaxSessions:             cfg.Server.MaxSessions,
		MaxOperationsPerRequest: cfg.Server.MaxOperationsPerRequest,
		SessionTimeout:          cfg.Server.SessionTimeout,
		View: view.Config{
			MaxReferencesPerNode:   cfg.Server.MaxReferencesPerNode,
			MaxBrowsePathMatches:   cfg.Server.MaxBrowsePathMatches,
			MaxBrowsePathRemaining: cfg.Server.MaxBrowsePathRemaining,
		},
	}, memspace.NewSampleSpace(), nil,
		session.NewMetrics(reg), view.NewMetrics(reg))

	dispatcher := service.NewDispatcher(svc.In(), svc.HandleEvent)
	go dispatcher.Run(ctx)

	var diag *api.Server
	if cfg.Diagnostics.Enabled {
		diag = api.NewServer(cfg.Diagnostics.Listen, svc.Sessions())
		go func() {
			if err := diag.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("Diagnostics API failed", "error", err)
			}
		}()
	}

	logger.Info("uastack services core running",
		"max_sessions", cfg.Server.MaxSessions,
		"diagnostics", cfg.Diagnostics.Enabled)

	<-ctx.Done()
	logger.Info("Shutting down")
	if diag != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.SessionTimeout)
		defer cancel()
		if err := diag.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Diagnostics API shutdown failed", "error", err)
		}
	}
	return nil
}
