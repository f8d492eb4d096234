package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"zet/internal/note"

	flag "github.com/spf13/pflag"
)

var errAlreadyArchived = errors.New("note is already archived")

// ArchiveCmd returns the archive command.
func ArchiveCmd(cfg *note.Config, store *note.Store) *Command {
	fs := flag.NewFlagSet("archive", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "archive <id|path>",
		Short: "Archive a note",
		Long: `Move a note into the archive directory and mark it archived. Archival is
always user-initiated; the promotion engine never retires a note on its own.`,
		Exec: func(_ context.Context, io *IO, args []string) error {
			return execArchive(io, cfg, store, args)
		},
	}
}

func execArchive(o *IO, cfg *note.Config, store *note.Store, args []string) error {
	if len(args) == 0 {
		return errArgRequired
	}

	src, err := resolveNotePath(cfg, store, args[0])
	if err != nil {
		return err
	}

	dst := filepath.Join(cfg.ArchiveDir(), filepath.Base(src))

	err = store.WithLock(src, func() error {
		n, readErr := store.Read(src)
		if readErr != nil {
			return readErr
		}

		if n.Meta.Status == note.StatusArchived {
			return fmt.Errorf("%w: %s", errAlreadyArchived, src)
		}

		if moveErr := store.Move(src, dst); moveErr != nil {
			return moveErr
		}

		n.Meta.Status = note.StatusArchived
		n.Meta.Modified = time.Now().UTC().Truncate(time.Second)

		if writeErr := store.WriteMetadata(dst, n.Meta); writeErr != nil {
			// Move back so a failed archive leaves the note where it was.
			_ = store.Move(dst, src)

			return writeErr
		}

		return nil
	})
	if err != nil {
		return err
	}

	o.Println("archived:", src, "->", dst)

	return nil
}
