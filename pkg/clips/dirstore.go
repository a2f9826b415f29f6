package clips

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DirStore resolves clips against a flat directory of WAV files.
type DirStore struct {
	dir string
}

// NewDirStore creates a store over the given clip directory.
func NewDirStore(dir string) *DirStore {
	return &DirStore{dir: dir}
}

// Ping verifies the clip directory exists and is readable.
func (s *DirStore) Ping() error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUnavailable, s.dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrUnavailable, s.dir)
	}
	return nil
}

// Open resolves id to "<id>.wav" in the clip directory, case-insensitively.
func (s *DirStore) Open(id ID) (io.ReadSeekCloser, error) {
	if !id.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrBadID, string(id))
	}

	want := string(id) + Ext

	// Fast path: exact name as provisioned.
	f, err := os.Open(filepath.Join(s.dir, want))
	if err == nil {
		return f, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("clips: open %s: %w", want, err)
	}

	// Slow path: the asset may have been copied from a FAT volume with
	// different casing. Scan for a case-insensitive match.
	entries, readErr := os.ReadDir(s.dir)
	if readErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, readErr)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(e.Name(), want) {
			continue
		}
		f, err := os.Open(filepath.Join(s.dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("clips: open %s: %w", e.Name(), err)
		}
		return f, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrNotFound, string(id))
}
