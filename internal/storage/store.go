// Package storage keeps accepted place files until they are published or
// swept. Identifiers are flat keys produced by NameFor; there is no
// directory structure and no index beyond the backend's own listing.
package storage

import (
	"context"
	"path/filepath"
	"strings"
	"time"
)

// Object describes one stored upload.
type Object struct {
	ID        string
	Size      int64
	CreatedAt time.Time
}

// Store is a flat blob store for validated uploads. Implementations return
// errors matching common.ErrNotFound for unknown ids and
// common.ErrInvalidIdentifier for ids that fail ValidateID.
type Store interface {
	Save(ctx context.Context, id string, data []byte) error
	Load(ctx context.Context, id string) ([]byte, error)
	Stat(ctx context.Context, id string) (Object, error)
	Remove(ctx context.Context, id string) error
	List(ctx context.Context) ([]Object, error)
	// RemoveOlderThan deletes every object created more than maxAge ago and
	// returns how many were removed.
	RemoveOlderThan(ctx context.Context, maxAge time.Duration) (int, error)
}

// Stats summarises the store contents for the status report.
type Stats struct {
	FileCount   int
	TotalSize   int64
	FileTypes   map[string]int
	AverageSize float64
}

// Summarize computes Stats over objs. Extensions are lower-cased.
func Summarize(objs []Object) Stats {
	st := Stats{FileTypes: make(map[string]int)}
	for _, o := range objs {
		st.FileCount++
		st.TotalSize += o.Size
		st.FileTypes[strings.ToLower(filepath.Ext(o.ID))]++
	}
	if st.FileCount > 0 {
		st.AverageSize = float64(st.TotalSize) / float64(st.FileCount)
	}
	return st
}

type sweeper interface {
	List(ctx context.Context) ([]Object, error)
	Remove(ctx context.Context, id string) error
}

// sweep removes objects created before cutoff. It keeps going after a
// failed removal and reports the first error together with the count.
func sweep(ctx context.Context, s sweeper, cutoff time.Time) (int, error) {
	objs, err := s.List(ctx)
	if err != nil {
		return 0, err
	}

	var firstErr error
	removed := 0
	for _, o := range objs {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if !o.CreatedAt.Before(cutoff) {
			continue
		}
		if err := s.Remove(ctx, o.ID); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		removed++
	}
	return removed, firstErr
}
