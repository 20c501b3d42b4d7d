package bitmap

import (
	"fmt"
	"os"
	"path/filepath"
)

// File is a Writer backed by a temporary file that is renamed to its
// destination only when Close succeeds.
type File struct {
	*Writer

	f    *os.File
	path string

	// done is set once the file has been committed or aborted.
	done bool
}

// Create opens a temporary file next to path and writes the BMP headers
// for a width x height image. The destination is not touched until Close.
func Create(path string, width, height int) (*File, error) {
	if _, err := FileSize(width, height); err != nil {
		return nil, err
	}

	path = filepath.Clean(path)
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("bitmap: create file: %w", err)
	}

	w, err := NewWriter(f, width, height)
	if err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return nil, err
	}
	return &File{Writer: w, f: f, path: path}, nil
}

// Path returns the destination path.
func (f *File) Path() string {
	return f.path
}

// Close flushes the image, syncs it and renames the temporary file to
// the destination path. If any step fails the temporary file is removed.
func (f *File) Close() error {
	if f.done {
		return nil
	}
	f.done = true

	if err := f.Writer.Close(); err != nil {
		f.discard()
		return err
	}
	if err := f.f.Sync(); err != nil {
		f.discard()
		return fmt.Errorf("bitmap: sync: %w", err)
	}
	if err := f.f.Close(); err != nil {
		_ = os.Remove(f.f.Name())
		return fmt.Errorf("bitmap: close: %w", err)
	}
	if err := os.Rename(f.f.Name(), f.path); err != nil {
		_ = os.Remove(f.f.Name())
		return fmt.Errorf("bitmap: rename: %w", err)
	}
	return nil
}

// Abort discards the temporary file. The destination path is left as it
// was before Create. Abort after a successful Close is a no-op.
func (f *File) Abort() error {
	if f.done {
		return nil
	}
	f.done = true
	f.Writer.closed = true
	return f.discard()
}

func (f *File) discard() error {
	_ = f.f.Close()
	if err := os.Remove(f.f.Name()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("bitmap: remove temp file: %w", err)
	}
	return nil
}
