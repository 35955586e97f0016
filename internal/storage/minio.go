package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/dmitrijs2005/placebot/internal/common"
)

// minioAPI is the part of *minio.Client used by MinioStore. Get returns a
// reader so tests do not need a *minio.Object.
type minioAPI interface {
	BucketExists(ctx context.Context, bucket string) (bool, error)
	MakeBucket(ctx context.Context, bucket string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucket, key string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	Get(ctx context.Context, bucket, key string) (io.ReadCloser, error)
	StatObject(ctx context.Context, bucket, key string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	RemoveObject(ctx context.Context, bucket, key string, opts minio.RemoveObjectOptions) error
	ListObjects(ctx context.Context, bucket string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
}

type minioClient struct {
	*minio.Client
}

func (c minioClient) Get(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	return c.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
}

// MinioStore keeps uploads in a MinIO bucket through the native client.
type MinioStore struct {
	client minioAPI
	bucket string
	prefix string
	now    func() time.Time
}

// NewMinioStore connects to the endpoint in c.BaseEndpoint (a URL; https
// selects TLS) and creates the bucket when it does not exist yet.
func NewMinioStore(ctx context.Context, c S3Config) (*MinioStore, error) {
	host, secure, err := minioEndpoint(c.BaseEndpoint)
	if err != nil {
		return nil, err
	}

	client, err := minio.New(host, &minio.Options{
		Creds:  credentials.NewStaticV4(c.User, c.Password, ""),
		Secure: secure,
		Region: c.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	s := newMinioStore(minioClient{client}, c.Bucket, c.Prefix)
	if err := s.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func newMinioStore(client minioAPI, bucket, prefix string) *MinioStore {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &MinioStore{client: client, bucket: bucket, prefix: prefix, now: time.Now}
}

// minioEndpoint turns "http://host:9000/" into ("host:9000", false). A bare
// host:port is accepted and means plain HTTP.
func minioEndpoint(raw string) (string, bool, error) {
	if !strings.Contains(raw, "://") {
		if raw == "" {
			return "", false, errors.New("minio endpoint is empty")
		}
		return strings.TrimSuffix(raw, "/"), false, nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", false, fmt.Errorf("minio endpoint: %w", err)
	}
	if u.Host == "" {
		return "", false, fmt.Errorf("minio endpoint %q has no host", raw)
	}
	return u.Host, u.Scheme == "https", nil
}

func (s *MinioStore) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket %s: %w", s.bucket, err)
	}
	return nil
}

func (s *MinioStore) key(id string) (string, error) {
	if !ValidateID(id) {
		return "", fmt.Errorf("%w: %q", common.ErrInvalidIdentifier, id)
	}
	return s.prefix + id, nil
}

func isMinioNotFound(err error) bool {
	code := minio.ToErrorResponse(err).Code
	return code == "NoSuchKey" || code == "NotFound"
}

// Save refuses to overwrite. The existence check and the put are separate
// requests; identifiers carry a random suffix, so the window is accepted.
func (s *MinioStore) Save(ctx context.Context, id string, data []byte) error {
	key, err := s.key(id)
	if err != nil {
		return err
	}
	if _, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{}); err == nil {
		return fmt.Errorf("%w: %s", common.ErrAlreadyExists, id)
	} else if !isMinioNotFound(err) {
		return fmt.Errorf("stat %s: %w", id, err)
	}

	_, err = s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", id, err)
	}
	return nil
}

func (s *MinioStore) Load(ctx context.Context, id string) ([]byte, error) {
	key, err := s.key(id)
	if err != nil {
		return nil, err
	}
	r, err := s.client.Get(ctx, s.bucket, key)
	if err != nil {
		return nil, s.readErr(id, err)
	}
	defer r.Close()

	// minio reports a missing object on the first read, not on GetObject
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, s.readErr(id, err)
	}
	return data, nil
}

func (s *MinioStore) readErr(id string, err error) error {
	if isMinioNotFound(err) {
		return fmt.Errorf("%w: %s", common.ErrNotFound, id)
	}
	return fmt.Errorf("get %s: %w", id, err)
}

func (s *MinioStore) Stat(ctx context.Context, id string) (Object, error) {
	key, err := s.key(id)
	if err != nil {
		return Object{}, err
	}
	info, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if isMinioNotFound(err) {
			return Object{}, fmt.Errorf("%w: %s", common.ErrNotFound, id)
		}
		return Object{}, fmt.Errorf("stat %s: %w", id, err)
	}
	return Object{ID: id, Size: info.Size, CreatedAt: info.LastModified}, nil
}

func (s *MinioStore) Remove(ctx context.Context, id string) error {
	if _, err := s.Stat(ctx, id); err != nil {
		return err
	}
	key, _ := s.key(id)
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}
	return nil
}

func (s *MinioStore) List(ctx context.Context) ([]Object, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var objs []Object
	for info := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: s.prefix}) {
		if info.Err != nil {
			return nil, fmt.Errorf("list %s: %w", s.bucket, info.Err)
		}
		id := strings.TrimPrefix(info.Key, s.prefix)
		if id == "" || strings.Contains(id, "/") {
			continue
		}
		objs = append(objs, Object{ID: id, Size: info.Size, CreatedAt: info.LastModified})
	}
	return objs, nil
}

func (s *MinioStore) RemoveOlderThan(ctx context.Context, maxAge time.Duration) (int, error) {
	return sweep(ctx, s, s.now().Add(-maxAge))
}
