// Package promote implements the promotion engine: the component that decides
// whether a note may advance lifecycle stage, performs the move safely, and
// reports aggregate outcomes through a stable contract.
//
// The engine runs to completion synchronously per invocation and keeps no
// state between calls; each call is self-contained given the current
// filesystem. It is safe to invoke from a scheduler, a watcher, or a CLI
// without coordination, provided the filesystem serializes individual file
// operations. Per-note failures are reported as data ([Outcome],
// [BatchResult]), never as errors across the API boundary; only a
// directory-level failure aborts a sweep.
package promote

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"time"

	"zet/internal/note"
)

// Config carries everything a single engine invocation needs. There is no
// shared manager object: callers construct the engine with explicit values,
// which keeps it testable in isolation.
type Config struct {
	CaptureDir   string
	RefinedDir   string
	PublishedDir string
	Thresholds   Thresholds
}

// Engine orchestrates single-note and batch promotion.
type Engine struct {
	store *note.Store
	cfg   Config
	log   *slog.Logger
	now   func() time.Time
}

// New returns an Engine. A nil logger disables logging.
func New(store *note.Store, cfg Config, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &Engine{store: store, cfg: cfg, log: log, now: time.Now}
}

// acceptedStatuses are the statuses that make a note an auto-promotion
// candidate: fresh captures and manually triaged notes both qualify directly.
// Everything later in the lifecycle is excluded from candidacy entirely,
// which also makes a repeated sweep a no-op.
//
//nolint:gochecknoglobals // package-level constant
var acceptedStatuses = []string{note.StatusCaptured, note.StatusTriaged}

// IsCandidate reports whether a note's status makes it an auto-promotion
// candidate.
func IsCandidate(status string) bool {
	return slices.Contains(acceptedStatuses, status)
}

// target maps a note type to its promoted status and destination directory.
func (e *Engine) target(noteType string) (status, destDir string, ok bool) {
	switch noteType {
	case note.TypeFleeting, note.TypeLiterature:
		return note.StatusRefined, e.cfg.RefinedDir, true
	case note.TypePermanent:
		return note.StatusPublished, e.cfg.PublishedDir, true
	default:
		return "", "", false
	}
}

// PromoteOne moves the note at path to its next lifecycle stage.
//
// The note's metadata is re-read under the file lock immediately before
// mutation; an in-memory snapshot from an earlier scan is never trusted, so
// the engine stays safe next to external edits. The move and the metadata
// rewrite form one logical operation: on any mid-operation failure the
// filesystem is restored to its pre-operation state before the failure
// outcome is returned, so a re-run always sees the note either fully moved
// or fully unchanged.
//
// PromoteOne never returns a Go error; every failure is an Outcome with
// Success=false and a descriptive Error.
func (e *Engine) PromoteOne(path string) Outcome {
	outcome := failure(path, "lock not acquired")

	lockErr := e.store.WithLock(path, func() error {
		outcome = e.promoteLocked(path)

		return nil
	})
	if lockErr != nil {
		return failure(path, lockErr.Error())
	}

	return outcome
}

func (e *Engine) promoteLocked(path string) Outcome {
	n, readErr := e.store.Read(path)
	if readErr != nil {
		return failure(path, readErr.Error())
	}

	if !IsCandidate(n.Meta.Status) {
		return failure(path, fmt.Sprintf("status %q is not promotable", n.Meta.Status))
	}

	targetStatus, destDir, ok := e.target(n.Meta.Type)
	if !ok {
		return failure(path, fmt.Sprintf("unsupported note type %q", n.Meta.Type))
	}

	dst := filepath.Join(destDir, filepath.Base(path))

	exists, existsErr := e.store.Exists(dst)
	if existsErr != nil {
		return failure(path, existsErr.Error())
	}

	if exists {
		return failure(path, fmt.Sprintf("destination already exists: %s", dst))
	}

	n.Meta.Status = targetStatus
	n.Meta.Modified = e.now().UTC().Truncate(time.Second)

	writeErr := e.store.Create(dst, n)
	if writeErr != nil {
		return failure(path, writeErr.Error())
	}

	removeErr := e.store.Remove(path)
	if removeErr != nil {
		// The source survived, so removing the half-written destination
		// restores the pre-operation state.
		_ = e.store.Remove(dst)

		return failure(path, fmt.Sprintf("completing move: %v", removeErr))
	}

	e.log.Info("promoted note",
		"source", path, "destination", dst, "type", n.Meta.Type, "status", targetStatus)

	return Outcome{Success: true, Source: path, Destination: dst, Type: n.Meta.Type}
}

// Sweep scans the capture directory and promotes every eligible candidate.
//
// With dryRun set, no filesystem mutation occurs; the returned counts equal
// what a real run over the same state would report. Sweep returns an error
// only when the capture directory is missing or unreadable, or when ctx is
// canceled mid-batch - no complete batch result is meaningful then.
// Everything else is captured in the BatchResult, whose counting invariant
// holds by construction.
//
// Cancellation is checked between notes, never mid-move, so an interrupted
// sweep leaves every individual note fully moved or fully unchanged.
func (e *Engine) Sweep(ctx context.Context, dryRun bool) (BatchResult, error) {
	listing, err := e.store.List(e.cfg.CaptureDir)
	if err != nil {
		return BatchResult{}, err
	}

	result := newBatchResult(dryRun)

	for _, entry := range listing {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, ctxErr
		}

		if entry.Err != nil {
			// Unreadable notes are errored candidates: reporting them keeps
			// "nothing to do" distinguishable from "files I could not read".
			result.recordError(entry.Path, entry.Err.Error())
			e.log.Warn("unreadable note", "path", entry.Path, "err", entry.Err)

			continue
		}

		n := entry.Note

		if !IsCandidate(n.Meta.Status) {
			e.log.Debug("not a candidate", "path", entry.Path, "status", n.Meta.Status)

			continue
		}

		verdict := Evaluate(n, e.cfg.Thresholds)
		e.log.Debug("evaluated note",
			"path", entry.Path, "type", n.Meta.Type, "eligible", verdict.Eligible, "reason", verdict.Reason)

		if !verdict.Eligible {
			result.recordSkipped(entry.Path, n.Meta.Type, verdict.Reason)

			continue
		}

		if dryRun {
			outcome, dryErr := e.dryRunOutcome(entry.Path, n)
			if dryErr != "" {
				result.recordError(entry.Path, dryErr)
			} else {
				result.recordPromoted(outcome)
			}

			continue
		}

		outcome := e.PromoteOne(entry.Path)
		if outcome.Success {
			result.recordPromoted(outcome)
		} else {
			result.recordError(entry.Path, outcome.Error)
		}
	}

	return result, nil
}

// dryRunOutcome reports what PromoteOne would do for n without mutating
// anything. Collisions are reported as the error the real run would hit.
func (e *Engine) dryRunOutcome(path string, n note.Note) (Outcome, string) {
	_, destDir, ok := e.target(n.Meta.Type)
	if !ok {
		return Outcome{}, fmt.Sprintf("unsupported note type %q", n.Meta.Type)
	}

	dst := filepath.Join(destDir, filepath.Base(path))

	exists, err := e.store.Exists(dst)
	if err != nil {
		return Outcome{}, err.Error()
	}

	if exists {
		return Outcome{}, fmt.Sprintf("destination already exists: %s", dst)
	}

	return Outcome{Success: true, Source: path, Destination: dst, Type: n.Meta.Type}, ""
}

func failure(path, message string) Outcome {
	return Outcome{Success: false, Source: path, Error: message}
}
