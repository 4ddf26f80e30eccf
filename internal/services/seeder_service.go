package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tea-backend/internal/errs"
	"tea-backend/internal/health"
	"tea-backend/internal/logger"
	"tea-backend/internal/metrics"
	"tea-backend/internal/models"
	"tea-backend/internal/repositories"
	"tea-backend/internal/source"
	"tea-backend/internal/timeutil"
)

// LockFunc takes the exclusive run lock and returns its release.
type LockFunc func(ctx context.Context) (release func(), err error)

// RunOptions controls one seeder run.
type RunOptions struct {
	// Reset empties every table before loading.
	Reset bool
	// Kinds restricts the run to these kinds, still in load order. Empty
	// means all of them.
	Kinds  []models.EntityKind
	DryRun bool
}

// ResetResult lists what a reset emptied and what it could not.
type ResetResult struct {
	Truncated []string
	Failed    map[string]error
}

// SeederService drives a full run: lock, ping, reset, load every batch in
// dependency order, then verify.
type SeederService struct {
	DB       repositories.Database
	Source   source.Source
	Loader   *LoaderService
	Verifier *VerifyService
	Health   *health.HealthChecker
	Lock     LockFunc
	Now      func() time.Time
}

func NewSeederService(db repositories.Database, src source.Source, loader *LoaderService, lock LockFunc) *SeederService {
	return &SeederService{
		DB:       db,
		Source:   src,
		Loader:   loader,
		Verifier: NewVerifyService(db),
		Health:   health.NewHealthChecker(db),
		Lock:     lock,
		Now:      timeutil.Now,
	}
}

// Run executes one seeding run. The report is returned even when the run
// fails, holding whatever completed before the failure.
func (s *SeederService) Run(ctx context.Context, opts RunOptions) (*models.RunReport, error) {
	runID := uuid.NewString()
	report := models.NewRunReport(runID, s.Now())
	report.Source = s.Source.Describe()
	report.DryRun = opts.DryRun
	log := logger.Get().With(zap.String("run_id", runID))

	err := s.run(ctx, log, opts, report)
	report.FinishedAt = s.Now()
	if err != nil {
		report.Error = err.Error()
		completed := make([]string, len(report.Completed))
		for i, k := range report.Completed {
			completed[i] = string(k)
		}
		log.Error("seed run failed",
			zap.Strings("completed_batches", completed),
			zap.Error(err))
		return report, err
	}

	success, skipped, failed := report.Entities.Totals()
	log.Info("seed run finished",
		zap.Int("success", success),
		zap.Int("skipped", skipped),
		zap.Int("errors", failed),
		zap.Duration("duration", report.Duration()))
	return report, nil
}

func (s *SeederService) run(ctx context.Context, log *zap.Logger, opts RunOptions, report *models.RunReport) error {
	if s.Lock != nil {
		release, err := s.Lock(ctx)
		if err != nil {
			return err
		}
		defer release()
	}

	if err := s.Health.Check(ctx); err != nil {
		return errs.Infrastructure("database unreachable", err)
	}

	if opts.Reset {
		res, err := s.Reset(ctx)
		if err != nil {
			return err
		}
		report.Reset = true
		report.Truncated = res.Truncated
		if len(res.Failed) > 0 {
			report.TruncateFailures = make(map[string]string, len(res.Failed))
			for table, ferr := range res.Failed {
				report.TruncateFailures[table] = ferr.Error()
			}
		}
	}

	log.Info("loading batches", zap.String("source", report.Source))
	for _, kind := range selectKinds(opts.Kinds) {
		if err := ctx.Err(); err != nil {
			return err
		}

		records, err := s.Source.Open(ctx, kind)
		if errors.Is(err, source.ErrNotFound) {
			log.Warn("batch file not found, skipping", zap.String("entity", string(kind)))
			report.Missing = append(report.Missing, kind)
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to open %s batch: %w", kind, err)
		}

		batch, err := s.loadBatch(ctx, kind, records)
		if err != nil {
			return fmt.Errorf("%s batch: %w", kind, err)
		}
		report.Entities.Merge(batch)
		report.Completed = append(report.Completed, kind)

		stats := batch.Stats(kind)
		log.Info("batch committed",
			zap.String("entity", string(kind)),
			zap.Int("records", len(records)),
			zap.Int("success", stats.Success),
			zap.Int("skipped", stats.Skipped),
			zap.Int("errors", len(stats.Errors)))
	}

	report.Tables = s.Verifier.Verify(ctx)
	return nil
}

// loadBatch runs one batch in its own transaction.
func (s *SeederService) loadBatch(ctx context.Context, kind models.EntityKind, records []json.RawMessage) (models.BatchReport, error) {
	timer := time.Now()
	defer func() {
		metrics.BatchDuration.WithLabelValues(string(kind)).Observe(time.Since(timer).Seconds())
	}()

	var batch models.BatchReport
	err := s.DB.WithinTx(ctx, func(ctx context.Context, st repositories.Store) error {
		var err error
		batch, err = s.Loader.LoadBatch(ctx, st, kind, records)
		return err
	})
	if err != nil {
		return nil, err
	}
	return batch, nil
}

// Reset empties every existing table, dependents first. A table that fails
// to truncate is logged and counted; the reset goes on with the rest.
func (s *SeederService) Reset(ctx context.Context) (ResetResult, error) {
	tables, err := s.DB.Tables(ctx)
	if err != nil {
		return ResetResult{}, errs.Infrastructure("failed to list tables", err)
	}

	order := repositories.DeletionOrder(tables)
	logger.Info("resetting database", zap.Strings("tables", order))

	failed, err := s.DB.Truncate(ctx, order)
	if err != nil {
		return ResetResult{}, errs.Infrastructure("failed to reset database", err)
	}

	res := ResetResult{Failed: failed}
	for _, table := range order {
		if ferr, ok := failed[table]; ok {
			metrics.TruncateFailuresTotal.Inc()
			logger.Warn("failed to truncate table", zap.String("table", table), zap.Error(ferr))
			continue
		}
		res.Truncated = append(res.Truncated, table)
	}
	return res, nil
}

func selectKinds(only []models.EntityKind) []models.EntityKind {
	if len(only) == 0 {
		return models.LoadOrder
	}
	want := make(map[models.EntityKind]bool, len(only))
	for _, k := range only {
		want[k] = true
	}
	var kinds []models.EntityKind
	for _, k := range models.LoadOrder {
		if want[k] {
			kinds = append(kinds, k)
		}
	}
	return kinds
}
