package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/placebot/internal/common"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errNoSuchKey = minio.ErrorResponse{Code: "NoSuchKey", Message: "The specified key does not exist."}

// fakeMinio is an in-memory bucket implementing minioAPI.
type fakeMinio struct {
	mu       sync.Mutex
	buckets  map[string]bool
	objects  map[string]fakeObject
	now      time.Time
	listErr  error
	made     []string
	existErr error
}

func newFakeMinio(now time.Time) *fakeMinio {
	return &fakeMinio{buckets: map[string]bool{}, objects: map[string]fakeObject{}, now: now}
}

func (f *fakeMinio) BucketExists(ctx context.Context, bucket string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.buckets[bucket], f.existErr
}

func (f *fakeMinio) MakeBucket(ctx context.Context, bucket string, _ minio.MakeBucketOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.buckets[bucket] = true
	f.made = append(f.made, bucket)
	return nil
}

func (f *fakeMinio) PutObject(ctx context.Context, bucket, key string, r io.Reader, size int64, _ minio.PutObjectOptions) (minio.UploadInfo, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = fakeObject{data: data, modified: f.now}
	return minio.UploadInfo{Bucket: bucket, Key: key, Size: size}, nil
}

type errReader struct{ err error }

func (r errReader) Read([]byte) (int, error) { return 0, r.err }
func (r errReader) Close() error             { return nil }

func (f *fakeMinio) Get(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.objects[key]
	if !ok {
		return errReader{errNoSuchKey}, nil
	}
	return io.NopCloser(bytes.NewReader(o.data)), nil
}

func (f *fakeMinio) StatObject(ctx context.Context, bucket, key string, _ minio.StatObjectOptions) (minio.ObjectInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.objects[key]
	if !ok {
		return minio.ObjectInfo{}, errNoSuchKey
	}
	return minio.ObjectInfo{Key: key, Size: int64(len(o.data)), LastModified: o.modified}, nil
}

func (f *fakeMinio) RemoveObject(ctx context.Context, bucket, key string, _ minio.RemoveObjectOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	return nil
}

func (f *fakeMinio) ListObjects(ctx context.Context, bucket string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	f.mu.Lock()
	defer f.mu.Unlock()

	ch := make(chan minio.ObjectInfo, len(f.objects)+1)
	if f.listErr != nil {
		ch <- minio.ObjectInfo{Err: f.listErr}
		close(ch)
		return ch
	}
	keys := make([]string, 0, len(f.objects))
	for k := range f.objects {
		if strings.HasPrefix(k, opts.Prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		o := f.objects[k]
		ch <- minio.ObjectInfo{Key: k, Size: int64(len(o.data)), LastModified: o.modified}
	}
	close(ch)
	return ch
}

func TestMinioStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	f := newFakeMinio(now)
	s := newMinioStore(f, "places", "uploads")

	require.NoError(t, s.Save(ctx, "1_a.rbxlx", []byte("<roblox/>")))

	data, err := s.Load(ctx, "1_a.rbxlx")
	require.NoError(t, err)
	assert.Equal(t, []byte("<roblox/>"), data)

	obj, err := s.Stat(ctx, "1_a.rbxlx")
	require.NoError(t, err)
	assert.Equal(t, Object{ID: "1_a.rbxlx", Size: 9, CreatedAt: now}, obj)

	_, ok := f.objects["uploads/1_a.rbxlx"]
	assert.True(t, ok)

	err = s.Save(ctx, "1_a.rbxlx", []byte("other"))
	assert.ErrorIs(t, err, common.ErrAlreadyExists)
}

func TestMinioStore_NotFoundAndInvalid(t *testing.T) {
	ctx := context.Background()
	s := newMinioStore(newFakeMinio(time.Now()), "places", "")

	_, err := s.Load(ctx, "missing.rbxl")
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = s.Stat(ctx, "missing.rbxl")
	assert.ErrorIs(t, err, common.ErrNotFound)

	assert.ErrorIs(t, s.Remove(ctx, "missing.rbxl"), common.ErrNotFound)

	_, err = s.Load(ctx, "../etc/passwd")
	assert.ErrorIs(t, err, common.ErrInvalidIdentifier)
}

func TestMinioStore_ListAndSweep(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	f := newFakeMinio(now)
	s := newMinioStore(f, "places", "uploads/")
	s.now = func() time.Time { return now }

	f.objects["uploads/1_old.rbxl"] = fakeObject{data: []byte("12345"), modified: now.Add(-48 * time.Hour)}
	f.objects["uploads/1_new.rbxlx"] = fakeObject{data: []byte("123"), modified: now.Add(-time.Hour)}
	f.objects["uploads/nested/x.rbxl"] = fakeObject{data: []byte("1"), modified: now.Add(-72 * time.Hour)}
	f.objects["other/2_old.rbxl"] = fakeObject{data: []byte("1"), modified: now.Add(-72 * time.Hour)}

	objs, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, objs, 2)
	assert.Equal(t, "1_new.rbxlx", objs[0].ID)
	assert.Equal(t, "1_old.rbxl", objs[1].ID)

	n, err := s.RemoveOlderThan(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	_, ok := f.objects["uploads/1_old.rbxl"]
	assert.False(t, ok)
	_, ok = f.objects["other/2_old.rbxl"]
	assert.True(t, ok)
}

func TestMinioStore_ListError(t *testing.T) {
	f := newFakeMinio(time.Now())
	f.listErr = errors.New("connection refused")
	s := newMinioStore(f, "places", "")

	_, err := s.List(context.Background())
	assert.ErrorContains(t, err, "connection refused")
}

func TestMinioStore_EnsureBucket(t *testing.T) {
	ctx := context.Background()
	f := newFakeMinio(time.Now())
	s := newMinioStore(f, "places", "")

	require.NoError(t, s.ensureBucket(ctx))
	require.NoError(t, s.ensureBucket(ctx))
	assert.Equal(t, []string{"places"}, f.made)

	f.existErr = errors.New("denied")
	assert.Error(t, s.ensureBucket(ctx))
}

func TestMinioEndpoint(t *testing.T) {
	tests := []struct {
		raw        string
		wantHost   string
		wantSecure bool
		wantErr    bool
	}{
		{"http://127.0.0.1:9000/", "127.0.0.1:9000", false, false},
		{"https://s3.example.com", "s3.example.com", true, false},
		{"minio:9000", "minio:9000", false, false},
		{"", "", false, true},
		{"http://", "", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			host, secure, err := minioEndpoint(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHost, host)
			assert.Equal(t, tt.wantSecure, secure)
		})
	}
}
