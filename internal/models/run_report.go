package models

import "time"

// RunReport is the outcome of one seeder run.
type RunReport struct {
	RunID      string    `json:"runId"`
	Source     string    `json:"source"`
	DryRun     bool      `json:"dryRun"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`

	Reset            bool              `json:"reset"`
	Truncated        []string          `json:"truncated,omitempty"`
	TruncateFailures map[string]string `json:"truncateFailures,omitempty"`

	// Completed lists committed batches in load order. Missing lists kinds
	// with no batch file.
	Completed []EntityKind `json:"completed"`
	Missing   []EntityKind `json:"missing,omitempty"`

	Entities BatchReport  `json:"entities"`
	Tables   []TableCount `json:"tables,omitempty"`
	Error    string       `json:"error,omitempty"`
}

// NewRunReport starts a report for runID.
func NewRunReport(runID string, startedAt time.Time) *RunReport {
	return &RunReport{
		RunID:     runID,
		StartedAt: startedAt,
		Completed: []EntityKind{},
		Entities:  NewBatchReport(),
	}
}

// Duration is the wall time of the run, zero while it is still running.
func (r *RunReport) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
