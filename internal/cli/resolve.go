package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"zet/internal/note"
)

// resolveNotePath turns a CLI argument into an absolute note path. Arguments
// that look like paths (a separator or a .md suffix) are resolved against the
// effective working directory; bare IDs are looked up across the vault
// directories in lifecycle order.
func resolveNotePath(cfg *note.Config, store *note.Store, arg string) (string, error) {
	if looksLikePath(arg) {
		return absNotePath(cfg, arg), nil
	}

	dirs := []string{cfg.CaptureDir(), cfg.RefinedDir(), cfg.PublishedDir(), cfg.ArchiveDir()}

	for _, dir := range dirs {
		path := note.Path(dir, arg)

		exists, err := store.Exists(path)
		if err != nil {
			return "", fmt.Errorf("resolving %s: %w", arg, err)
		}

		if exists {
			return path, nil
		}
	}

	return "", fmt.Errorf("%w: %s", note.ErrNoteNotFound, arg)
}

func looksLikePath(arg string) bool {
	return strings.ContainsRune(arg, filepath.Separator) || strings.HasSuffix(arg, ".md")
}

func absNotePath(cfg *note.Config, arg string) string {
	if filepath.IsAbs(arg) {
		return arg
	}

	return filepath.Join(cfg.EffectiveCwd, arg)
}
