package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jsamuelsen/library-ledger/internal/adapters/export"
	"github.com/jsamuelsen/library-ledger/internal/adapters/metrics"
	"github.com/jsamuelsen/library-ledger/internal/app"
	"github.com/jsamuelsen/library-ledger/internal/platform/config"
	"github.com/jsamuelsen/library-ledger/internal/platform/logging"
	"github.com/jsamuelsen/library-ledger/internal/platform/telemetry"
	"github.com/jsamuelsen/library-ledger/internal/ports"
)

func newDemoCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the demonstration scenario and export its statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(cmd.Context(), cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "statistics file (default: export.path from config)")

	return cmd
}

func runDemo(ctx context.Context, stdout io.Writer, out string) error {
	// 1. Determine profile from environment
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	// 2. Load and validate configuration (fail fast)
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if out != "" {
		cfg.Export.Path = out
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 3. Initialize logging
	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	ctx = logging.WithRunID(logging.WithContext(ctx, logger), uuid.NewString())
	logger = logging.FromContext(ctx)

	logger.InfoContext(ctx, "starting demo",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
	)

	// 4. Initialize telemetry (global noop providers if disabled)
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(context.WithoutCancel(ctx)); shutdownErr != nil {
			logger.ErrorContext(ctx, "telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	instruments, err := telemetry.NewInstruments(telProvider.TracerProvider(), telProvider.MeterProvider())
	if err != nil {
		return fmt.Errorf("creating instruments: %w", err)
	}

	// 5. Create adapters and register their preflight checks
	healthRegistry := ports.NewHealthRegistry()

	exporter := export.NewJSONExporter(export.Config{
		DefaultPath: cfg.Export.Path,
		Logger:      logger,
	})
	if err := healthRegistry.Register(exporter); err != nil {
		return fmt.Errorf("registering exporter health check: %w", err)
	}

	var (
		loanMetrics ports.LoanMetrics = ports.NoopLoanMetrics{}
		recorder    *metrics.Recorder
	)

	if cfg.Metrics.Enabled {
		if err := os.MkdirAll(filepath.Dir(cfg.Metrics.TextfilePath), 0o755); err != nil {
			return fmt.Errorf("creating metrics directory: %w", err)
		}

		recorder = metrics.NewRecorder(cfg.Metrics.TextfilePath)
		loanMetrics = recorder

		if err := healthRegistry.Register(recorder); err != nil {
			return fmt.Errorf("registering metrics health check: %w", err)
		}
	}

	// 6. Preflight: refuse to run if any output cannot be written
	if err := healthRegistry.CheckAll(ctx).Err(); err != nil {
		return fmt.Errorf("preflight checks failed: %w", err)
	}

	// 7. Create the library service and run the scenario
	svc := app.NewLibraryService(app.LibraryServiceConfig{
		Exporter:    exporter,
		Metrics:     loanMetrics,
		Instruments: instruments,
		Logger:      logger,
	})

	if err := app.RunDemo(ctx, svc); err != nil {
		return err
	}

	// 8. Print and export statistics
	stats, err := svc.ExportStatistics(ctx, cfg.Export.Path)
	if err != nil {
		return err
	}

	rendered, err := export.MarshalStatistics(stats)
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, "Library statistics:")
	if _, err := stdout.Write(rendered); err != nil {
		return fmt.Errorf("printing statistics: %w", err)
	}

	if recorder != nil {
		if err := recorder.WriteTextfile(); err != nil {
			return err
		}
	}

	logger.InfoContext(ctx, "demo complete", slog.String("stats_path", cfg.Export.Path))

	return nil
}
