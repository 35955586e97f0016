// Package intake accepts uploaded place files. It rejects by filename and
// declared size before reading anything, reads at most the size limit,
// validates the bytes in memory and persists only valid files.
package intake

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/placebot/internal/common"
	"github.com/dmitrijs2005/placebot/internal/logging"
	"github.com/dmitrijs2005/placebot/internal/placefile"
	"github.com/dmitrijs2005/placebot/internal/storage"
	"github.com/zeebo/blake3"
)

// DefaultMaxFileSize is the largest upload accepted unless configured
// otherwise.
const DefaultMaxFileSize int64 = 100 << 20

// Attachment is an uploaded file as the front end sees it. Size is the
// declared size and may be wrong.
type Attachment interface {
	Filename() string
	Size() int64
	Open(ctx context.Context) (io.ReadCloser, error)
}

// Result describes what happened to one attachment. Err is set for
// rejections and matches common.ErrUnsupportedFormat, common.ErrFileTooLarge
// or common.ErrUnreadable; structural failures leave Err nil and carry the
// Verdict instead.
type Result struct {
	Accepted bool
	Kind     placefile.Kind
	Verdict  placefile.Verdict
	UploadID string
	Digest   string
	Size     int64
	Err      error
}

// Reason is a one-line explanation suitable for the user.
func (r Result) Reason() string {
	if r.Err != nil {
		return r.Err.Error()
	}
	return r.Verdict.Reason
}

type namer interface {
	NameFor(ownerID, originalFilename string) string
}

// Service ties validation to a Store.
type Service struct {
	store   storage.Store
	namer   namer
	maxSize int64
	logger  logging.Logger
}

type Option func(*Service)

// WithMaxFileSize overrides DefaultMaxFileSize. Non-positive values are
// ignored.
func WithMaxFileSize(n int64) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxSize = n
		}
	}
}

func withNamer(n namer) Option {
	return func(s *Service) { s.namer = n }
}

func NewService(store storage.Store, logger logging.Logger, opts ...Option) *Service {
	s := &Service{
		store:   store,
		namer:   storage.NewNamer(),
		maxSize: DefaultMaxFileSize,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MaxFileSize is the configured upload limit in bytes.
func (s *Service) MaxFileSize() int64 {
	return s.maxSize
}

// Accept runs one attachment through intake. The returned error is reserved
// for storage failures; every rejection is reported through Result.
func (s *Service) Accept(ctx context.Context, owner string, a Attachment) (Result, error) {
	name := a.Filename()
	res := Result{Kind: placefile.Classify(name), Size: a.Size()}
	log := s.logger.With("owner", owner, "filename", name)

	if res.Kind == placefile.KindUnknown {
		res.Err = fmt.Errorf("%w: allowed extensions are %s", common.ErrUnsupportedFormat, strings.Join(placefile.SupportedExtensions, ", "))
		log.Info(ctx, "upload rejected", "reason", "extension")
		return res, nil
	}
	if res.Size > s.maxSize {
		res.Err = s.tooLarge()
		log.Info(ctx, "upload rejected", "reason", "declared size", "size", res.Size)
		return res, nil
	}

	data, digest, err := s.read(ctx, a)
	if err != nil {
		if errors.Is(err, common.ErrFileTooLarge) {
			res.Err = s.tooLarge()
			log.Warn(ctx, "upload rejected", "reason", "actual size exceeds limit", "declared", res.Size)
			return res, nil
		}
		res.Err = fmt.Errorf("%w: %v", common.ErrUnreadable, err)
		log.Warn(ctx, "upload unreadable", "error", err)
		return res, nil
	}
	res.Size = int64(len(data))
	res.Digest = digest

	res.Verdict = placefile.Candidate{Filename: name, Size: res.Size, Data: data}.Validate()
	if !res.Verdict.Valid {
		log.Info(ctx, "upload invalid", "reason", res.Verdict.Reason)
		return res, nil
	}

	id := s.namer.NameFor(owner, name)
	if err := s.store.Save(ctx, id, data); err != nil {
		return res, fmt.Errorf("save %s: %w", id, err)
	}

	res.Accepted = true
	res.UploadID = id
	log.Info(ctx, "upload stored", "file_id", id, "size", res.Size, "digest", digest,
		"place_name", res.Verdict.Metadata.DeclaredName)
	return res, nil
}

func (s *Service) tooLarge() error {
	return fmt.Errorf("%w: maximum size is %d bytes", common.ErrFileTooLarge, s.maxSize)
}

// read copies at most maxSize bytes while hashing them. A body longer than
// the limit yields common.ErrFileTooLarge.
func (s *Service) read(ctx context.Context, a Attachment) ([]byte, string, error) {
	rc, err := a.Open(ctx)
	if err != nil {
		return nil, "", err
	}
	defer rc.Close()

	h := blake3.New()
	data, err := io.ReadAll(io.TeeReader(io.LimitReader(rc, s.maxSize+1), h))
	if err != nil {
		return nil, "", err
	}
	if int64(len(data)) > s.maxSize {
		return nil, "", common.ErrFileTooLarge
	}
	return data, hex.EncodeToString(h.Sum(nil)), nil
}

// Cleanup removes stored files older than maxAge.
func (s *Service) Cleanup(ctx context.Context, maxAge time.Duration) (int, error) {
	n, err := s.store.RemoveOlderThan(ctx, maxAge)
	if err != nil {
		s.logger.Error(ctx, "cleanup failed", "removed", n, "error", err)
		return n, err
	}
	if n > 0 {
		s.logger.Info(ctx, "cleaned up old files", "removed", n, "max_age", maxAge.String())
	}
	return n, nil
}

// Stats summarises what is currently stored.
func (s *Service) Stats(ctx context.Context) (storage.Stats, error) {
	objs, err := s.store.List(ctx)
	if err != nil {
		return storage.Stats{}, err
	}
	return storage.Summarize(objs), nil
}

// RunCleanup sweeps every interval until ctx is done. It returns nil on
// cancellation; a failed sweep is logged and retried on the next tick.
func (s *Service) RunCleanup(ctx context.Context, interval, maxAge time.Duration) error {
	if interval <= 0 {
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			_, _ = s.Cleanup(ctx, maxAge)
		}
	}
}
