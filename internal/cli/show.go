package cli

import (
	"context"
	"errors"
	"fmt"

	"zet/internal/note"

	flag "github.com/spf13/pflag"
)

var errArgRequired = errors.New("note id or path required")

// ShowCmd returns the show command.
func ShowCmd(cfg *note.Config, store *note.Store) *Command {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "show <id|path>",
		Short: "Print a note",
		Exec: func(_ context.Context, io *IO, args []string) error {
			return execShow(io, cfg, store, args)
		},
	}
}

func execShow(o *IO, cfg *note.Config, store *note.Store, args []string) error {
	if len(args) == 0 {
		return errArgRequired
	}

	path, err := resolveNotePath(cfg, store, args[0])
	if err != nil {
		return err
	}

	n, err := store.Read(path)
	if err != nil {
		return err
	}

	content, err := note.Format(n)
	if err != nil {
		return fmt.Errorf("formatting note: %w", err)
	}

	o.Printf("%s", content)

	return nil
}
