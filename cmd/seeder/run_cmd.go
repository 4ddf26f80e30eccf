package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tea-backend/internal/cache"
	"tea-backend/internal/logger"
	"tea-backend/internal/metrics"
	"tea-backend/internal/monitoring"
	"tea-backend/internal/models"
	"tea-backend/internal/repositories"
	"tea-backend/internal/repositories/memstore"
	"tea-backend/internal/services"
	"tea-backend/internal/source"
	"tea-backend/internal/timeutil"
)

type runOptions struct {
	dataDir     string
	source      string
	noReset     bool
	dryRun      bool
	only        []string
	summaryJSON string
	summaryPDF  string
	listen      string
}

func newRunCmd(a *app) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Reset the database and load every batch in dependency order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, a, opts)
		},
	}

	cmd.Flags().StringVar(&opts.dataDir, "data-dir", "", "Directory holding <entity>.json or .xlsx batches (default: seed.data_dir)")
	cmd.Flags().StringVar(&opts.source, "source", "", "Batch source: dir or s3 (default: seed.source)")
	cmd.Flags().BoolVar(&opts.noReset, "no-reset", false, "Skip the destructive reset before loading")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Load into an in-memory store; the database is not touched")
	cmd.Flags().StringSliceVar(&opts.only, "only", nil, "Load only these entities, e.g. Admin,User")
	cmd.Flags().StringVar(&opts.summaryJSON, "summary-json", "", "Write the run summary as JSON to this file")
	cmd.Flags().StringVar(&opts.summaryPDF, "summary-pdf", "", "Write the run summary as PDF to this file")
	cmd.Flags().StringVar(&opts.listen, "listen", "", "Serve /health and /metrics on this address during the run (default: metrics.listen)")

	return cmd
}

func runSeed(cmd *cobra.Command, a *app, opts runOptions) error {
	ctx := cmd.Context()
	cfg := a.cfg

	kinds, err := parseKinds(opts.only)
	if err != nil {
		return withCode(exitUsage, err)
	}
	if opts.dataDir != "" {
		cfg.Seed.DataDir = opts.dataDir
	}
	if opts.source != "" {
		cfg.Seed.Source = opts.source
	}
	if opts.listen == "" {
		opts.listen = cfg.Metrics.Listen
	}

	src, err := openSource(ctx, a)
	if err != nil {
		return err
	}

	var database repositories.Database
	if opts.dryRun {
		database = memstore.New()
	} else {
		pg, err := a.openDatabase(ctx)
		if err != nil {
			return err
		}
		defer pg.Close()
		database = pg
	}

	var lock services.LockFunc
	if !opts.dryRun {
		if err := cache.Init(cfg.Redis.Addr, cfg.Redis.Password); err != nil {
			logger.Warn("redis unavailable; running without run lock", zap.Error(err))
		}
		defer cache.Close()
		lock = func(ctx context.Context) (func(), error) {
			return cache.AcquireRunLock(ctx, cfg.Redis.LockKey, cfg.Redis.LockTTL)
		}
	}

	if opts.listen != "" {
		monitor := monitoring.NewServer(opts.listen, database)
		if err := monitor.Start(); err != nil {
			return withCode(exitUsage, fmt.Errorf("failed to listen on %s: %w", opts.listen, err))
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = monitor.Stop(stopCtx)
		}()
	}

	ledger := services.NewStockLedgerService(cfg.Seed.DuplicateWindow, timeutil.Now)
	loader := services.NewLoaderService(ledger, nil, timeutil.Now)
	seeder := services.NewSeederService(database, src, loader, lock)

	report, runErr := seeder.Run(ctx, services.RunOptions{
		Reset:  cfg.Seed.Reset && !opts.noReset && !opts.dryRun,
		Kinds:  kinds,
		DryRun: opts.dryRun,
	})

	if err := services.WriteSummary(cmd.OutOrStdout(), report); err != nil {
		logger.Warn("failed to print summary", zap.Error(err))
	}
	if err := writeSummaries(ctx, report, opts); err != nil {
		logger.Warn("failed to write summary", zap.Error(err))
	}
	if cfg.Metrics.PushgatewayURL != "" {
		if err := metrics.Push(ctx, cfg.Metrics.PushgatewayURL, cfg.Metrics.Job, report.RunID); err != nil {
			logger.Warn("failed to push metrics", zap.Error(err))
		}
	}

	return classify(runErr)
}

func openSource(ctx context.Context, a *app) (source.Source, error) {
	switch a.cfg.Seed.Source {
	case "", "dir":
		info, err := os.Stat(a.cfg.Seed.DataDir)
		if err != nil || !info.IsDir() {
			return nil, withCode(exitUsage, fmt.Errorf("data directory %q not found", a.cfg.Seed.DataDir))
		}
		return source.NewDir(a.cfg.Seed.DataDir), nil
	case "s3":
		src, err := source.NewS3(ctx, a.cfg)
		if err != nil {
			return nil, withCode(exitUsage, err)
		}
		return src, nil
	default:
		return nil, withCode(exitUsage, fmt.Errorf("unknown source %q (want dir or s3)", a.cfg.Seed.Source))
	}
}

func parseKinds(names []string) ([]models.EntityKind, error) {
	var kinds []models.EntityKind
	for _, name := range names {
		kind := models.EntityKind(strings.TrimSpace(name))
		if !kind.Known() {
			return nil, fmt.Errorf("unknown entity %q", name)
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}

func writeSummaries(ctx context.Context, report *models.RunReport, opts runOptions) error {
	var buf bytes.Buffer
	if err := services.WriteSummaryJSON(&buf, report); err != nil {
		return err
	}
	if !opts.dryRun {
		cache.SetLastRun(ctx, buf.Bytes())
	}

	var errList []error
	if opts.summaryJSON != "" {
		errList = append(errList, os.WriteFile(opts.summaryJSON, buf.Bytes(), 0o644))
	}
	if opts.summaryPDF != "" {
		f, err := os.Create(opts.summaryPDF)
		if err != nil {
			errList = append(errList, err)
		} else {
			errList = append(errList, services.WriteSummaryPDF(f, report), f.Close())
		}
	}
	return errors.Join(errList...)
}
