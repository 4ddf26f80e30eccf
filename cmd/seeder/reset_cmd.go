package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tea-backend/internal/cache"
	"tea-backend/internal/errs"
	"tea-backend/internal/health"
	"tea-backend/internal/logger"
	"tea-backend/internal/services"
)

func newResetCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Empty every table without loading anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return withCode(exitUsage, errors.New("reset deletes all data; pass --yes to confirm"))
			}
			ctx := cmd.Context()

			database, err := a.openDatabase(ctx)
			if err != nil {
				return err
			}
			defer database.Close()

			if err := health.NewHealthChecker(database).Check(ctx); err != nil {
				return withCode(exitDB, errs.Infrastructure("database unreachable", err))
			}

			if err := cache.Init(a.cfg.Redis.Addr, a.cfg.Redis.Password); err != nil {
				logger.Warn("redis unavailable; running without run lock", zap.Error(err))
			}
			defer cache.Close()
			release, err := cache.AcquireRunLock(ctx, a.cfg.Redis.LockKey, a.cfg.Redis.LockTTL)
			if err != nil {
				return err
			}
			defer release()

			seeder := services.NewSeederService(database, nil, nil, nil)
			res, err := seeder.Reset(ctx)
			if err != nil {
				return classify(err)
			}
			return printReset(cmd, res)
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the destructive reset")
	return cmd
}

func printReset(cmd *cobra.Command, res services.ResetResult) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Truncated %d tables\n", len(res.Truncated))
	failed := make([]string, 0, len(res.Failed))
	for table := range res.Failed {
		failed = append(failed, table)
	}
	sort.Strings(failed)
	for _, table := range failed {
		fmt.Fprintf(out, "  failed: %s: %v\n", table, res.Failed[table])
	}
	return nil
}

