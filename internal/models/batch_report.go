package models

import "sort"

// EntityStats counts the outcome of loading records of one entity kind.
type EntityStats struct {
	Success int      `json:"success"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors"`
}

// BatchReport holds per-entity outcomes. Each loader call returns its own
// report and the orchestrator merges them; nothing is kept in globals.
type BatchReport map[EntityKind]*EntityStats

// NewBatchReport returns an empty report.
func NewBatchReport() BatchReport {
	return BatchReport{}
}

// Stats returns the stats for kind, creating them on first use.
func (r BatchReport) Stats(kind EntityKind) *EntityStats {
	s, ok := r[kind]
	if !ok {
		s = &EntityStats{Errors: []string{}}
		r[kind] = s
	}
	return s
}

// Merge adds other's counters into r.
func (r BatchReport) Merge(other BatchReport) {
	for kind, s := range other {
		dst := r.Stats(kind)
		dst.Success += s.Success
		dst.Skipped += s.Skipped
		dst.Errors = append(dst.Errors, s.Errors...)
	}
}

// Kinds returns the kinds present in r, built-in kinds in load order first
// and unknown kinds after them alphabetically.
func (r BatchReport) Kinds() []EntityKind {
	var kinds []EntityKind
	seen := make(map[EntityKind]bool, len(r))
	for _, k := range LoadOrder {
		if _, ok := r[k]; ok {
			kinds = append(kinds, k)
			seen[k] = true
		}
	}
	var extra []string
	for k := range r {
		if !seen[k] {
			extra = append(extra, string(k))
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		kinds = append(kinds, EntityKind(k))
	}
	return kinds
}

// Totals sums success and skipped counts across all kinds.
func (r BatchReport) Totals() (success, skipped, errors int) {
	for _, s := range r {
		success += s.Success
		skipped += s.Skipped
		errors += len(s.Errors)
	}
	return success, skipped, errors
}

// TableCount is one row of the verification pass.
type TableCount struct {
	Entity EntityKind `json:"entity"`
	Table  string     `json:"table"`
	Count  int64      `json:"count"` // -1 when counting failed
	Error  string     `json:"error,omitempty"`
}
