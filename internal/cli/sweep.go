package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"zet/internal/promote"

	flag "github.com/spf13/pflag"
)

// Sweep exit codes mirror the batch taxonomy: per-note errors are partial
// success, a missing or unreadable capture directory is fatal.
const (
	exitPartial = 1
	exitFatal   = 2
)

// SweepCmd returns the sweep command.
func SweepCmd(engine *promote.Engine) *Command {
	fs := flag.NewFlagSet("sweep", flag.ContinueOnError)
	fs.Bool("dry-run", false, "Report what would be promoted without moving anything")
	fs.Bool("json", false, "Emit the batch result as JSON")

	return &Command{
		Flags: fs,
		Usage: "sweep [flags]",
		Short: "Promote every eligible capture note",
		Long: `Scan the capture directory and promote every note that passes its type's
eligibility rule. Exit code 0 when no note errored, 1 when the batch
completed with per-note errors, 2 when the capture directory is missing or
unreadable.`,
		Exec: func(ctx context.Context, io *IO, _ []string) error {
			return execSweep(ctx, io, engine, fs)
		},
	}
}

func execSweep(ctx context.Context, o *IO, engine *promote.Engine, fs *flag.FlagSet) error {
	dryRun, _ := fs.GetBool("dry-run")
	asJSON, _ := fs.GetBool("json")

	result, err := engine.Sweep(ctx, dryRun)
	if err != nil {
		return &ExitError{Code: exitFatal, Err: err}
	}

	if asJSON {
		data, encErr := json.Marshal(result)
		if encErr != nil {
			return fmt.Errorf("encoding batch result: %w", encErr)
		}

		o.Println(string(data))
	} else {
		printBatchResult(o, result)
	}

	if result.ErrorCount > 0 {
		return &ExitError{
			Code: exitPartial,
			Err:  fmt.Errorf("sweep completed with %d error(s)", result.ErrorCount),
		}
	}

	return nil
}

func printBatchResult(o *IO, result promote.BatchResult) {
	for _, outcome := range result.Promoted {
		verb := "promoted:"
		if result.DryRun {
			verb = "would promote:"
		}

		o.Println(verb, outcome.Source, "->", outcome.Destination)
	}

	for _, path := range sortedKeys(result.Skipped) {
		o.Println("skipped:", path, "-", result.Skipped[path])
	}

	for _, path := range sortedKeys(result.Errors) {
		o.Println("error:", path, "-", result.Errors[path])
	}

	suffix := ""
	if result.DryRun {
		suffix = " (dry run)"
	}

	o.Printf("%d candidate(s): %d promoted, %d skipped, %d error(s)%s\n",
		result.TotalCandidates, result.PromotedCount, result.SkippedCount, result.ErrorCount, suffix)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
