package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"zet/internal/note"

	flag "github.com/spf13/pflag"
)

var (
	errTitleRequired = errors.New("title is required")
	errEmptyValue    = errors.New("empty value not allowed")
	errInvalidType   = errors.New("invalid type")
)

// CaptureCmd returns the capture command.
func CaptureCmd(cfg *note.Config, store *note.Store, stdin io.Reader) *Command {
	fs := flag.NewFlagSet("capture", flag.ContinueOnError)
	fs.StringP("type", "t", note.TypeFleeting, "Type: fleeting|literature|permanent")
	fs.StringArray("tag", nil, "Tag (repeatable)")

	return &Command{
		Flags: fs,
		Usage: "capture <title>",
		Short: "Capture a new note, prints its path",
		Long: `Capture a new note into the vault's capture directory. The note body is
read from stdin; end it with EOF (Ctrl-D). Prints the note path on success.`,
		Exec: func(_ context.Context, io *IO, args []string) error {
			return execCapture(io, cfg, store, stdin, fs, args)
		},
	}
}

func execCapture(o *IO, cfg *note.Config, store *note.Store, stdin io.Reader, fs *flag.FlagSet, args []string) error {
	title := ""
	if len(args) > 0 {
		title = args[0]
	}

	if title == "" {
		return errTitleRequired
	}

	noteType, _ := fs.GetString("type")
	if noteType == "" {
		return fmt.Errorf("%w: --type", errEmptyValue)
	}

	if !note.IsValidType(noteType) {
		return fmt.Errorf("%w: %s", errInvalidType, noteType)
	}

	tags, _ := fs.GetStringArray("tag")
	for _, tag := range tags {
		if tag == "" {
			return fmt.Errorf("%w: --tag", errEmptyValue)
		}
	}

	body := "# " + title + "\n"

	if stdin != nil {
		content, readErr := io.ReadAll(stdin)
		if readErr != nil {
			return fmt.Errorf("reading stdin: %w", readErr)
		}

		if text := strings.TrimSpace(string(content)); text != "" {
			body += "\n" + text + "\n"
		}
	}

	now := time.Now().UTC().Truncate(time.Second)

	id, idErr := store.GenerateUniqueID(cfg.CaptureDir(), now)
	if idErr != nil {
		return idErr
	}

	path := note.Path(cfg.CaptureDir(), id)

	n := note.Note{
		Meta: note.Metadata{
			Type:    noteType,
			Status:  note.StatusCaptured,
			Created: now,
			Tags:    tags,
		},
		Body: body,
	}

	if err := store.Create(path, n); err != nil {
		return fmt.Errorf("writing note: %w", err)
	}

	o.Println(path)

	return nil
}
