package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"zet/internal/note"
	"zet/internal/promote"

	flag "github.com/spf13/pflag"
)

// PromoteCmd returns the promote command.
func PromoteCmd(cfg *note.Config, engine *promote.Engine) *Command {
	fs := flag.NewFlagSet("promote", flag.ContinueOnError)
	fs.Bool("json", false, "Emit the outcome as JSON")

	return &Command{
		Flags: fs,
		Usage: "promote <id|path>",
		Short: "Promote a single note",
		Long: `Move a note to its next lifecycle stage: fleeting and literature notes to
the refined directory, permanent notes to the published directory. The note
must be in a promotable status (captured or triaged).`,
		Exec: func(_ context.Context, io *IO, args []string) error {
			return execPromote(io, cfg, engine, fs, args)
		},
	}
}

func execPromote(o *IO, cfg *note.Config, engine *promote.Engine, fs *flag.FlagSet, args []string) error {
	if len(args) == 0 {
		return errArgRequired
	}

	// Resolution is scoped to paths and capture-dir IDs: only capture notes
	// are promotable, and a bare ID that matches nothing should say so.
	path := args[0]
	if looksLikePath(path) {
		path = absNotePath(cfg, path)
	} else {
		path = note.Path(cfg.CaptureDir(), path)
	}

	outcome := engine.PromoteOne(path)

	asJSON, _ := fs.GetBool("json")
	if asJSON {
		data, err := json.Marshal(outcome)
		if err != nil {
			return fmt.Errorf("encoding outcome: %w", err)
		}

		o.Println(string(data))
	} else if outcome.Success {
		o.Println("promoted:", outcome.Source, "->", outcome.Destination)
	}

	if !outcome.Success {
		return errors.New(outcome.Error)
	}

	return nil
}
