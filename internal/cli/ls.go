package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"zet/internal/note"
	"zet/internal/promote"

	flag "github.com/spf13/pflag"
)

// LsCmd returns the ls command.
func LsCmd(cfg *note.Config, store *note.Store) *Command {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	fs.String("type", "", "Filter by type (fleeting|literature|permanent)")
	fs.Bool("ready", false, "Show only notes eligible for promotion")

	return &Command{
		Flags: fs,
		Usage: "ls [flags]",
		Short: "List capture notes with eligibility",
		Long:  "List notes in the capture directory. Output sorted by ID (oldest first).",
		Exec: func(_ context.Context, io *IO, _ []string) error {
			return execLs(io, cfg, store, fs)
		},
	}
}

func execLs(o *IO, cfg *note.Config, store *note.Store, fs *flag.FlagSet) error {
	typeFilter, _ := fs.GetString("type")
	if fs.Changed("type") && !note.IsValidType(typeFilter) {
		return fmt.Errorf("%w: %s", errInvalidType, typeFilter)
	}

	readyOnly, _ := fs.GetBool("ready")

	// A vault with no captures yet has no capture directory; listing it is
	// an empty result, not a failure. The sweep verb is the strict one.
	exists, err := store.Exists(cfg.CaptureDir())
	if err != nil {
		return fmt.Errorf("checking capture directory: %w", err)
	}

	if !exists {
		return nil
	}

	results, err := store.List(cfg.CaptureDir())
	if err != nil {
		return fmt.Errorf("list notes: %w", err)
	}

	thresholds := promote.Thresholds{
		FleetingScore:  cfg.FleetingScore,
		PermanentScore: cfg.PermanentScore,
	}

	for _, result := range results {
		if result.Err != nil {
			o.Warn(
				fmt.Sprintf("%s: %v", result.Path, result.Err),
				"fix the note header or delete the file if invalid",
			)

			continue
		}

		n := result.Note

		if typeFilter != "" && n.Meta.Type != typeFilter {
			continue
		}

		verdict := promote.Evaluate(n, thresholds)
		if readyOnly && !verdict.Eligible {
			continue
		}

		o.Println(formatNoteLine(result.Path, n, verdict))
	}

	return nil
}

func formatNoteLine(path string, n note.Note, verdict promote.Verdict) string {
	var builder strings.Builder

	id := strings.TrimSuffix(filepath.Base(path), ".md")

	builder.WriteString(id)
	builder.WriteString(" [")
	builder.WriteString(n.Meta.Status)
	builder.WriteString("/")
	builder.WriteString(n.Meta.Type)
	builder.WriteString("] - ")

	title := n.Title()
	if title == "" {
		title = "(untitled)"
	}

	builder.WriteString(title)

	if verdict.Eligible {
		builder.WriteString(" (ready)")
	} else {
		builder.WriteString(" (")
		builder.WriteString(verdict.Reason)
		builder.WriteString(")")
	}

	return builder.String()
}
