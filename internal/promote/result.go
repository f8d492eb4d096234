package promote

import "fmt"

// Contract key names for the marshaled result shapes.
//
// Both Outcome and BatchResult are a versioned contract consumed by multiple
// independent callers (CLI reports, scheduled jobs, dashboards). Key names and
// nesting must never drift silently: the struct tags below reference these
// constants' values and the contract tests assert the exact marshaled key
// sets. Renaming a key is a breaking change to every caller.
const (
	KeySuccess         = "success"
	KeySource          = "source"
	KeyDestination     = "destination"
	KeyType            = "type"
	KeyError           = "error"
	KeyTotalCandidates = "totalCandidates"
	KeyPromotedCount   = "promotedCount"
	KeySkippedCount    = "skippedCount"
	KeyErrorCount      = "errorCount"
	KeyByType          = "byType"
	KeyPromoted        = "promoted"
	KeySkipped         = "skipped"
	KeyErrors          = "errors"
	KeyDryRun          = "dryRun"
)

// Outcome is the result of attempting to promote one note.
//
// Success is always meaningful, in both branches. When Success is true,
// Destination and Type are populated; when false, Error is populated and
// non-empty. Exactly one of Destination or Error is ever set.
type Outcome struct {
	Success     bool   `json:"success"`
	Source      string `json:"source"`
	Destination string `json:"destination,omitempty"`
	Type        string `json:"type,omitempty"`
	Error       string `json:"error,omitempty"`
}

// TypeCounts holds the per-type slice of a batch result.
type TypeCounts struct {
	Promoted int `json:"promoted"`
	Skipped  int `json:"skipped"`
}

// BatchResult is the aggregate returned by a full capture-directory sweep.
//
// The counting invariant holds after every sweep, dry-run or not:
//
//	TotalCandidates == PromotedCount + SkippedCount + ErrorCount
//	PromotedCount   == sum over ByType of Promoted
//	SkippedCount    == sum over ByType of Skipped
//
// TotalCandidates == 0 means no candidate notes existed; it is never
// ambiguous with "every candidate failed", which reports
// ErrorCount == TotalCandidates.
type BatchResult struct {
	TotalCandidates int                   `json:"totalCandidates"`
	PromotedCount   int                   `json:"promotedCount"`
	SkippedCount    int                   `json:"skippedCount"`
	ErrorCount      int                   `json:"errorCount"`
	ByType          map[string]TypeCounts `json:"byType"`
	Promoted        []Outcome             `json:"promoted"`
	Skipped         map[string]string     `json:"skipped"`
	Errors          map[string]string     `json:"errors"`
	DryRun          bool                  `json:"dryRun"`
}

// newBatchResult returns an empty result with all collections allocated so
// callers always see maps and slices, never JSON null.
func newBatchResult(dryRun bool) BatchResult {
	return BatchResult{
		ByType:   map[string]TypeCounts{},
		Promoted: []Outcome{},
		Skipped:  map[string]string{},
		Errors:   map[string]string{},
		DryRun:   dryRun,
	}
}

// recordPromoted counts a successful (or would-be, under dry-run) promotion.
func (r *BatchResult) recordPromoted(out Outcome) {
	r.TotalCandidates++
	r.PromotedCount++
	r.Promoted = append(r.Promoted, out)

	counts := r.ByType[out.Type]
	counts.Promoted++
	r.ByType[out.Type] = counts
}

// recordSkipped counts an ineligible candidate with its human-readable reason.
// Skips are not failures; they never surface as errors to the caller.
func (r *BatchResult) recordSkipped(path, noteType, reason string) {
	r.TotalCandidates++
	r.SkippedCount++
	r.Skipped[path] = reason

	counts := r.ByType[noteType]
	counts.Skipped++
	r.ByType[noteType] = counts
}

// recordError counts a candidate whose promotion failed at the storage level.
// Errors are a distinct outcome class from skips.
func (r *BatchResult) recordError(path, message string) {
	r.TotalCandidates++
	r.ErrorCount++
	r.Errors[path] = message
}

// Reconcile verifies the counting invariant. A non-nil error indicates an
// engine defect, not a runtime condition.
func (r BatchResult) Reconcile() error {
	var promoted, skipped int

	for _, counts := range r.ByType {
		promoted += counts.Promoted
		skipped += counts.Skipped
	}

	if promoted != r.PromotedCount {
		return fmt.Errorf("promotedCount %d != byType sum %d", r.PromotedCount, promoted)
	}

	if skipped != r.SkippedCount {
		return fmt.Errorf("skippedCount %d != byType sum %d", r.SkippedCount, skipped)
	}

	if total := r.PromotedCount + r.SkippedCount + r.ErrorCount; total != r.TotalCandidates {
		return fmt.Errorf("totalCandidates %d != promoted+skipped+errors %d", r.TotalCandidates, total)
	}

	return nil
}
