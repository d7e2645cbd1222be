// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrEmptyPath is returned when a write target is empty.
var ErrEmptyPath = errors.New("path cannot be empty")

// FilePermissions is the mode of files written for other users to read.
const FilePermissions fs.FileMode = 0o644

// WriteAtomic writes the output of fill to path through a temporary file in
// the same directory, renamed into place with mode perm once fill and Close
// succeed. On any failure the temporary file is removed and path is left
// untouched.
func WriteAtomic(path string, perm fs.FileMode, fill func(w io.Writer) error) (err error) {
	if path == "" {
		return ErrEmptyPath
	}

	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmpFile, err := os.CreateTemp(dir, "."+base+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	tmpPath := tmpFile.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	if fillErr := fill(tmpFile); fillErr != nil {
		_ = tmpFile.Close()
		return fillErr
	}

	if chmodErr := tmpFile.Chmod(perm); chmodErr != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("setting file mode: %w", chmodErr)
	}

	if closeErr := tmpFile.Close(); closeErr != nil {
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if renameErr := os.Rename(tmpPath, path); renameErr != nil {
		return fmt.Errorf("renaming temp file: %w", renameErr)
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// IsSymlink returns true if the path itself is a symbolic link.
// The link target is not followed.
func IsSymlink(path string) bool {
	info, err := os.Lstat(path)
	if err != nil {
		return false
	}
	return info.Mode()&fs.ModeSymlink != 0
}
