package services

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"tea-backend/internal/models"
)

// WriteSummary prints the per-entity outcome table, the first errors of each
// entity, then the verification counts.
func WriteSummary(w io.Writer, r *models.RunReport) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Run %s (%s)\n", r.RunID, r.Source)
	if r.DryRun {
		fmt.Fprintln(tw, "Dry run: nothing was written")
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "ENTITY\tSUCCESS\tSKIPPED\tERRORS")
	for _, kind := range r.Entities.Kinds() {
		s := r.Entities[kind]
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", kind, s.Success, s.Skipped, len(s.Errors))
	}
	success, skipped, failed := r.Entities.Totals()
	fmt.Fprintf(tw, "TOTAL\t%d\t%d\t%d\n", success, skipped, failed)

	if len(r.Missing) > 0 {
		fmt.Fprintf(tw, "\nNo batch file: %v\n", r.Missing)
	}
	if len(r.TruncateFailures) > 0 {
		fmt.Fprintln(tw, "\nTables not truncated:")
		for _, table := range sortedKeys(r.TruncateFailures) {
			fmt.Fprintf(tw, "  %s\t%s\n", table, r.TruncateFailures[table])
		}
	}

	for _, kind := range r.Entities.Kinds() {
		errors := r.Entities[kind].Errors
		if len(errors) == 0 {
			continue
		}
		fmt.Fprintf(tw, "\n%s errors:\n", kind)
		for i, msg := range errors {
			if i == maxSummaryErrors {
				fmt.Fprintf(tw, "  ... and %d more\n", len(errors)-maxSummaryErrors)
				break
			}
			fmt.Fprintf(tw, "  %s\n", msg)
		}
	}

	if len(r.Tables) > 0 {
		fmt.Fprintln(tw, "\nTABLE\tROWS")
		for _, tc := range r.Tables {
			if tc.Count < 0 {
				fmt.Fprintf(tw, "%s\tn/a (%s)\n", tc.Table, tc.Error)
				continue
			}
			fmt.Fprintf(tw, "%s\t%d\n", tc.Table, tc.Count)
		}
	}

	if r.Error != "" {
		fmt.Fprintf(tw, "\nRun failed: %s\n", r.Error)
	}
	return tw.Flush()
}

const maxSummaryErrors = 20

// WriteSummaryJSON writes the full report, every error message included.
func WriteSummaryJSON(w io.Writer, r *models.RunReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
