// Package filex contains filesystem helpers for the local upload store.
package filex

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir creates dir (and parents) if needed and returns its absolute
// path. Relative paths are resolved against the working directory.
func EnsureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", dir, err)
	}

	if err := os.MkdirAll(abs, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}

	return abs, nil
}

// WriteExclusive writes data to a new file at path. It fails with an error
// matching os.ErrExist if the file is already there, and removes the partial
// file if the write does not complete.
func WriteExclusive(path string, data []byte) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o660)
	if err != nil {
		return err
	}

	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	if _, err = f.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Sync()
}

// IsNotExist reports whether err means the file is missing.
func IsNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
