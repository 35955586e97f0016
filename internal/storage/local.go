package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/placebot/internal/common"
	"github.com/dmitrijs2005/placebot/internal/filex"
)

// placeholderFile is left in upload directories by deployments and is never
// treated as an upload.
const placeholderFile = ".gitkeep"

// LocalStore keeps uploads as files in a single directory.
type LocalStore struct {
	dir string
	now func() time.Time
}

// NewLocalStore creates dir if needed and returns a store rooted there.
func NewLocalStore(dir string) (*LocalStore, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, err
	}
	return &LocalStore{dir: abs, now: time.Now}, nil
}

// Dir is the absolute upload directory.
func (s *LocalStore) Dir() string {
	return s.dir
}

func (s *LocalStore) path(id string) (string, error) {
	if !ValidateID(id) {
		return "", fmt.Errorf("%w: %q", common.ErrInvalidIdentifier, id)
	}
	return filepath.Join(s.dir, id), nil
}

func (s *LocalStore) Save(ctx context.Context, id string, data []byte) error {
	p, err := s.path(id)
	if err != nil {
		return err
	}
	if err := filex.WriteExclusive(p, data); err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %s", common.ErrAlreadyExists, id)
		}
		return fmt.Errorf("save %s: %w", id, err)
	}
	return nil
}

func (s *LocalStore) Load(ctx context.Context, id string) ([]byte, error) {
	p, err := s.path(id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if filex.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", common.ErrNotFound, id)
		}
		return nil, fmt.Errorf("load %s: %w", id, err)
	}
	return data, nil
}

func (s *LocalStore) Stat(ctx context.Context, id string) (Object, error) {
	p, err := s.path(id)
	if err != nil {
		return Object{}, err
	}
	fi, err := os.Stat(p)
	if err != nil {
		if filex.IsNotExist(err) {
			return Object{}, fmt.Errorf("%w: %s", common.ErrNotFound, id)
		}
		return Object{}, fmt.Errorf("stat %s: %w", id, err)
	}
	if !fi.Mode().IsRegular() {
		return Object{}, fmt.Errorf("%w: %s", common.ErrNotFound, id)
	}
	return Object{ID: id, Size: fi.Size(), CreatedAt: fi.ModTime()}, nil
}

func (s *LocalStore) Remove(ctx context.Context, id string) error {
	p, err := s.path(id)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		if filex.IsNotExist(err) {
			return fmt.Errorf("%w: %s", common.ErrNotFound, id)
		}
		return fmt.Errorf("remove %s: %w", id, err)
	}
	return nil
}

func (s *LocalStore) List(ctx context.Context) ([]Object, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.dir, err)
	}

	objs := make([]Object, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if name == placeholderFile || strings.HasPrefix(name, ".") || !e.Type().IsRegular() {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			// removed concurrently
			continue
		}
		objs = append(objs, Object{ID: name, Size: fi.Size(), CreatedAt: fi.ModTime()})
	}
	return objs, nil
}

func (s *LocalStore) RemoveOlderThan(ctx context.Context, maxAge time.Duration) (int, error) {
	return sweep(ctx, s, s.now().Add(-maxAge))
}
