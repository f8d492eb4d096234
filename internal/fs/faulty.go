package fs

import "os"

// Faulty wraps another [FS] and injects deterministic failures.
//
// Each hook receives the path of the operation and returns the error to
// inject, or nil to pass the call through to the wrapped filesystem. Hooks
// that are nil never inject.
//
// Unlike a randomized chaos filesystem, Faulty is aimed at scripted failure
// scenarios: "the write to this destination fails", "removing this source
// fails". Tests use it to exercise the engine's rollback paths.
type Faulty struct {
	// Inner is the wrapped filesystem. Must be non-nil.
	Inner FS

	WriteErr   func(path string) error
	RemoveErr  func(path string) error
	RenameErr  func(path string) error
	ReadErr    func(path string) error
	ReadDirErr func(path string) error
}

// Compile-time interface check.
var _ FS = (*Faulty)(nil)

func (f *Faulty) ReadFile(path string) ([]byte, error) {
	if f.ReadErr != nil {
		if err := f.ReadErr(path); err != nil {
			return nil, err
		}
	}

	return f.Inner.ReadFile(path)
}

func (f *Faulty) WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	if f.WriteErr != nil {
		if err := f.WriteErr(path); err != nil {
			return err
		}
	}

	return f.Inner.WriteFileAtomic(path, data, perm)
}

func (f *Faulty) ReadDir(path string) ([]os.DirEntry, error) {
	if f.ReadDirErr != nil {
		if err := f.ReadDirErr(path); err != nil {
			return nil, err
		}
	}

	return f.Inner.ReadDir(path)
}

func (f *Faulty) MkdirAll(path string, perm os.FileMode) error {
	return f.Inner.MkdirAll(path, perm)
}

func (f *Faulty) Stat(path string) (os.FileInfo, error) {
	return f.Inner.Stat(path)
}

func (f *Faulty) Exists(path string) (bool, error) {
	return f.Inner.Exists(path)
}

func (f *Faulty) Remove(path string) error {
	if f.RemoveErr != nil {
		if err := f.RemoveErr(path); err != nil {
			return err
		}
	}

	return f.Inner.Remove(path)
}

func (f *Faulty) Rename(oldpath, newpath string) error {
	if f.RenameErr != nil {
		if err := f.RenameErr(oldpath); err != nil {
			return err
		}
	}

	return f.Inner.Rename(oldpath, newpath)
}

func (f *Faulty) Lock(path string) (Locker, error) {
	return f.Inner.Lock(path)
}
