package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"tea-backend/internal/cache"
	"tea-backend/internal/models"
	"tea-backend/internal/services"
)

func newVerifyCmd(a *app) *cobra.Command {
	var last bool

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Count rows in every entity table",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if last {
				return printLastRun(cmd, a)
			}

			database, err := a.openDatabase(ctx)
			if err != nil {
				return err
			}
			defer database.Close()

			counts := services.NewVerifyService(database).Verify(ctx)
			return printCounts(cmd.OutOrStdout(), counts)
		},
	}

	cmd.Flags().BoolVar(&last, "last", false, "Print the summary of the last finished run from Redis instead")
	return cmd
}

// printLastRun shows the summary cached by the most recent non-dry run.
func printLastRun(cmd *cobra.Command, a *app) error {
	ctx := cmd.Context()
	if a.cfg.Redis.Addr == "" {
		return withCode(exitUsage, fmt.Errorf("--last needs redis.addr: %w", cache.ErrNotConfigured))
	}
	if err := cache.Init(a.cfg.Redis.Addr, a.cfg.Redis.Password); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	defer cache.Close()

	data, err := cache.GetLastRun(ctx)
	if err != nil {
		return err
	}
	var report models.RunReport
	if err := json.Unmarshal(data, &report); err != nil {
		return fmt.Errorf("cached run summary is corrupt: %w", err)
	}
	return services.WriteSummary(cmd.OutOrStdout(), &report)
}

func printCounts(w io.Writer, counts []models.TableCount) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ENTITY\tTABLE\tROWS")
	for _, tc := range counts {
		if tc.Count < 0 {
			fmt.Fprintf(tw, "%s\t%s\tn/a (%s)\n", tc.Entity, tc.Table, tc.Error)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\n", tc.Entity, tc.Table, tc.Count)
	}
	return tw.Flush()
}
