package note

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"zet/internal/fs"
)

const (
	dirPerms  = 0o750
	filePerms = 0o600
)

// Store reads and writes note files through an [fs.FS].
//
// The store owns the on-disk format and the per-file locking discipline. It
// has no knowledge of promotion rules; the engine composes store primitives
// into higher-level operations.
type Store struct {
	fsys fs.FS
}

// NewStore returns a Store backed by fsys.
func NewStore(fsys fs.FS) *Store {
	return &Store{fsys: fsys}
}

// Read parses the note at path. The metadata is validated against the schema.
func (s *Store) Read(path string) (Note, error) {
	content, err := s.fsys.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Note{}, fmt.Errorf("%w: %s", ErrNoteNotFound, path)
		}

		return Note{}, fmt.Errorf("reading note: %w", err)
	}

	meta, body, parseErr := Parse(content)
	if parseErr != nil {
		return Note{}, fmt.Errorf("parsing %s: %w", path, parseErr)
	}

	return Note{Path: path, Meta: meta, Body: body}, nil
}

// Write serializes n and writes it to path atomically, creating parent
// directories as needed. Existing files are overwritten.
func (s *Store) Write(path string, n Note) error {
	content, err := Format(n)
	if err != nil {
		return err
	}

	mkdirErr := s.fsys.MkdirAll(filepath.Dir(path), dirPerms)
	if mkdirErr != nil {
		return fmt.Errorf("creating note directory: %w", mkdirErr)
	}

	writeErr := s.fsys.WriteFileAtomic(path, content, filePerms)
	if writeErr != nil {
		return fmt.Errorf("writing note: %w", writeErr)
	}

	return nil
}

// Create writes a new note to path, refusing to overwrite an existing file.
func (s *Store) Create(path string, n Note) error {
	exists, err := s.fsys.Exists(path)
	if err != nil {
		return fmt.Errorf("checking note path: %w", err)
	}

	if exists {
		return fmt.Errorf("%w: %s", ErrNoteFileExists, path)
	}

	return s.Write(path, n)
}

// WriteMetadata rewrites the frontmatter of the note at path, preserving the
// body. The read-modify-write runs under the file lock.
func (s *Store) WriteMetadata(path string, meta Metadata) error {
	return s.WithLock(path, func() error {
		current, err := s.Read(path)
		if err != nil {
			return err
		}

		current.Meta = meta

		return s.Write(path, current)
	})
}

// Move renames a note file. Atomic on the same filesystem; the metadata is
// untouched. Fails if dst already exists.
func (s *Store) Move(src, dst string) error {
	exists, err := s.fsys.Exists(dst)
	if err != nil {
		return fmt.Errorf("checking destination: %w", err)
	}

	if exists {
		return fmt.Errorf("%w: %s", ErrNoteFileExists, dst)
	}

	mkdirErr := s.fsys.MkdirAll(filepath.Dir(dst), dirPerms)
	if mkdirErr != nil {
		return fmt.Errorf("creating destination directory: %w", mkdirErr)
	}

	renameErr := s.fsys.Rename(src, dst)
	if renameErr != nil {
		return fmt.Errorf("moving note: %w", renameErr)
	}

	return nil
}

// Remove deletes a note file.
func (s *Store) Remove(path string) error {
	return s.fsys.Remove(path)
}

// Exists reports whether a note file exists at path.
func (s *Store) Exists(path string) (bool, error) {
	return s.fsys.Exists(path)
}

// WithLock runs fn while holding the advisory lock for path.
func (s *Store) WithLock(path string, fn func() error) error {
	lock, err := s.fsys.Lock(path)
	if err != nil {
		return fmt.Errorf("locking note: %w", err)
	}

	defer func() { _ = lock.Close() }()

	return fn()
}

// Result holds the outcome of reading a single note during a listing.
// Exactly one of Note or Err is meaningful.
type Result struct {
	Path string
	Note Note
	Err  error
}

// List reads all note files directly under dir (non-recursive) and returns
// one Result per file. The directory must exist: a missing or unreadable
// directory is a hard failure since no partial listing is meaningful, and
// "nothing to do" must stay distinguishable from a misconfigured vault.
// Individual results may carry per-file errors.
func (s *Store) List(dir string) ([]Result, error) {
	entries, err := s.fsys.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNoteDirNotFound, dir)
	}

	if err != nil {
		return nil, fmt.Errorf("reading note directory: %w", err)
	}

	results := make([]Result, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		path := filepath.Join(dir, entry.Name())

		parsed, readErr := s.Read(path)
		if readErr != nil {
			results = append(results, Result{Path: path, Err: readErr})

			continue
		}

		results = append(results, Result{Path: path, Note: parsed})
	}

	return results, nil
}
