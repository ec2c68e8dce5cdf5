// Package scanner computes the total on-disk size of directory trees.
package scanner

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
)

// AccessError indicates the root of a tree could not be traversed at all.
type AccessError struct {
	Path string
	Err  error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("access directory %s: %v", e.Path, e.Err)
}

func (e *AccessError) Unwrap() error { return e.Err }

// Sizer walks directory trees and sums regular file sizes.
type Sizer struct {
	logger *slog.Logger
}

// New creates a Sizer that reports skipped entries through logger.
func New(logger *slog.Logger) *Sizer {
	return &Sizer{logger: logger}
}

// DirectorySize returns the total size in bytes of all regular files under
// root, recursively. Symbolic links are excluded entirely: neither the link
// nor its target contributes. An entry below the root that cannot be read or
// statted is logged and counted as zero; only a failure on the root itself
// aborts the walk, returned as *AccessError.
func (s *Sizer) DirectorySize(root string) (int64, error) {
	var total int64

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			s.logger.Warn("skipping unreadable entry", "path", path, "error", err)
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			s.logger.Warn("could not stat file", "path", path, "error", err)
			return nil
		}
		total += info.Size()
		return nil
	})
	if err != nil {
		return 0, &AccessError{Path: root, Err: err}
	}

	return total, nil
}
