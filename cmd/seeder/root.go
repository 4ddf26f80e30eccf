package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tea-backend/internal/config"
	"tea-backend/internal/db"
	"tea-backend/internal/logger"
	"tea-backend/internal/repositories"
	"tea-backend/internal/timeutil"
)

// app carries state shared by subcommands, filled in by the root pre-run.
type app struct {
	configPath string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "seeder",
		Short:         "Seed the tea auction back-office database from batch files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return withCode(exitUsage, err)
			}
			if err := logger.Init(cfg.Log.Environment); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			if err := timeutil.SetLocation(cfg.Seed.Timezone); err != nil {
				return withCode(exitUsage, err)
			}
			a.cfg = cfg
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Close()
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultPath, "Path to the yaml config file (optional)")

	cmd.AddCommand(newRunCmd(a))
	cmd.AddCommand(newResetCmd(a))
	cmd.AddCommand(newVerifyCmd(a))
	cmd.AddCommand(newMigrateCmd(a))
	return cmd
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		code := exitCode(err)
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(code)
	}
}

// openDatabase connects to Postgres. The caller closes it.
func (a *app) openDatabase(ctx context.Context) (*repositories.PostgresDatabase, error) {
	pool, err := db.Connect(ctx, a.cfg)
	if err != nil {
		return nil, withCode(exitDB, err)
	}
	return repositories.NewPostgresDatabase(pool), nil
}
