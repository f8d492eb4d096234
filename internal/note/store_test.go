package note_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"zet/internal/fs"
	"zet/internal/note"
)

func newTestStore(t *testing.T) (*note.Store, string) {
	t.Helper()

	return note.NewStore(fs.NewReal()), t.TempDir()
}

func captureNote(noteType string) note.Note {
	return note.Note{
		Meta: note.Metadata{
			Type:    noteType,
			Status:  note.StatusCaptured,
			Created: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
		},
		Body: "# A note\n",
	}
}

func TestStoreCreateAndRead(t *testing.T) {
	t.Parallel()

	store, dir := newTestStore(t)
	path := filepath.Join(dir, "a.md")

	err := store.Create(path, captureNote(note.TypeFleeting))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := store.Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if gotStatus, want := got.Meta.Status, note.StatusCaptured; gotStatus != want {
		t.Errorf("status=%q, want=%q", gotStatus, want)
	}

	if gotTitle, want := got.Title(), "A note"; gotTitle != want {
		t.Errorf("title=%q, want=%q", gotTitle, want)
	}
}

func TestStoreCreateRefusesOverwrite(t *testing.T) {
	t.Parallel()

	store, dir := newTestStore(t)
	path := filepath.Join(dir, "a.md")

	if err := store.Create(path, captureNote(note.TypeFleeting)); err != nil {
		t.Fatalf("Create: %v", err)
	}

	err := store.Create(path, captureNote(note.TypeFleeting))
	if !errors.Is(err, note.ErrNoteFileExists) {
		t.Errorf("err=%v, want ErrNoteFileExists", err)
	}
}

func TestStoreReadMissingNote(t *testing.T) {
	t.Parallel()

	store, dir := newTestStore(t)

	_, err := store.Read(filepath.Join(dir, "missing.md"))
	if !errors.Is(err, note.ErrNoteNotFound) {
		t.Errorf("err=%v, want ErrNoteNotFound", err)
	}
}

func TestStoreWriteMetadataPreservesBody(t *testing.T) {
	t.Parallel()

	store, dir := newTestStore(t)
	path := filepath.Join(dir, "a.md")

	n := captureNote(note.TypeFleeting)
	n.Body = "# Keep me\n\nBody text with [[link]].\n"

	if err := store.Create(path, n); err != nil {
		t.Fatalf("Create: %v", err)
	}

	meta := n.Meta
	meta.Status = note.StatusTriaged
	meta.Modified = time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)

	if err := store.WriteMetadata(path, meta); err != nil {
		t.Fatalf("WriteMetadata: %v", err)
	}

	got, err := store.Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if gotStatus, want := got.Meta.Status, note.StatusTriaged; gotStatus != want {
		t.Errorf("status=%q, want=%q", gotStatus, want)
	}

	if gotBody, want := got.Body, n.Body; gotBody != want {
		t.Errorf("body=%q, want=%q", gotBody, want)
	}
}

func TestStoreMove(t *testing.T) {
	t.Parallel()

	store, dir := newTestStore(t)
	src := filepath.Join(dir, "a.md")
	dst := filepath.Join(dir, "sub", "a.md")

	if err := store.Create(src, captureNote(note.TypeFleeting)); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := store.Move(src, dst); err != nil {
		t.Fatalf("Move: %v", err)
	}

	srcExists, _ := store.Exists(src)
	if srcExists {
		t.Error("source still exists after move")
	}

	if _, err := store.Read(dst); err != nil {
		t.Errorf("reading moved note: %v", err)
	}
}

func TestStoreMoveRefusesCollision(t *testing.T) {
	t.Parallel()

	store, dir := newTestStore(t)
	src := filepath.Join(dir, "a.md")
	dst := filepath.Join(dir, "b.md")

	if err := store.Create(src, captureNote(note.TypeFleeting)); err != nil {
		t.Fatal(err)
	}

	if err := store.Create(dst, captureNote(note.TypeLiterature)); err != nil {
		t.Fatal(err)
	}

	err := store.Move(src, dst)
	if !errors.Is(err, note.ErrNoteFileExists) {
		t.Errorf("err=%v, want ErrNoteFileExists", err)
	}

	// Collision must not clobber either file.
	if _, readErr := store.Read(src); readErr != nil {
		t.Errorf("source damaged: %v", readErr)
	}
}

func TestStoreListSkipsNonNotes(t *testing.T) {
	t.Parallel()

	store, dir := newTestStore(t)

	if err := store.Create(filepath.Join(dir, "a.md"), captureNote(note.TypeFleeting)); err != nil {
		t.Fatal(err)
	}

	// Directories, lock files, and other extensions are not notes.
	if err := os.MkdirAll(filepath.Join(dir, "nested"), 0o750); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(dir, "a.md.lock"), nil, 0o600); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(dir, "stray.txt"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	results, err := store.List(dir)
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	if got, want := len(results), 1; got != want {
		t.Fatalf("len(results)=%d, want=%d", got, want)
	}

	if results[0].Err != nil {
		t.Errorf("unexpected per-file error: %v", results[0].Err)
	}
}

func TestStoreListReportsPerFileErrors(t *testing.T) {
	t.Parallel()

	store, dir := newTestStore(t)

	if err := store.Create(filepath.Join(dir, "good.md"), captureNote(note.TypeFleeting)); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(dir, "bad.md"), []byte("no header\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	results, err := store.List(dir)
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	var good, bad int

	for _, r := range results {
		if r.Err != nil {
			bad++
		} else {
			good++
		}
	}

	if good != 1 || bad != 1 {
		t.Errorf("good=%d bad=%d, want 1 and 1", good, bad)
	}
}

func TestStoreListMissingDirFails(t *testing.T) {
	t.Parallel()

	store, dir := newTestStore(t)
	missing := filepath.Join(dir, "nope")

	_, err := store.List(missing)
	if !errors.Is(err, note.ErrNoteDirNotFound) {
		t.Fatalf("err=%v, want ErrNoteDirNotFound", err)
	}

	if got := err.Error(); !strings.Contains(got, missing) {
		t.Errorf("err=%q, want the directory path included", got)
	}
}

func TestStoreListEmptyDir(t *testing.T) {
	t.Parallel()

	store, dir := newTestStore(t)
	empty := filepath.Join(dir, "capture")

	if err := os.MkdirAll(empty, 0o750); err != nil {
		t.Fatal(err)
	}

	results, err := store.List(empty)
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	if len(results) != 0 {
		t.Errorf("len(results)=%d, want 0", len(results))
	}
}
