package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/dmitrijs2005/placebot/internal/common"
)

// S3Config selects an S3-compatible bucket (AWS or MinIO) for uploads.
type S3Config struct {
	User         string
	Password     string
	Bucket       string
	Region       string
	BaseEndpoint string
	Prefix       string
}

// s3API is the subset of *s3.Client used by S3Store.
type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

var loadDefaultAWSConfig = config.LoadDefaultConfig

// S3Store keeps uploads as objects under a key prefix in one bucket.
type S3Store struct {
	client s3API
	bucket string
	prefix string
	now    func() time.Time
}

// NewS3Store builds an S3 client from static credentials. Path-style
// addressing is used so MinIO endpoints work without DNS buckets.
func NewS3Store(ctx context.Context, c S3Config) (*S3Store, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(c.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(c.User, c.Password, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if c.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(c.BaseEndpoint)
		}
		o.UsePathStyle = true
	})

	return newS3Store(client, c.Bucket, c.Prefix), nil
}

func newS3Store(client s3API, bucket, prefix string) *S3Store {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &S3Store{client: client, bucket: bucket, prefix: prefix, now: time.Now}
}

func (s *S3Store) key(id string) (string, error) {
	if !ValidateID(id) {
		return "", fmt.Errorf("%w: %q", common.ErrInvalidIdentifier, id)
	}
	return s.prefix + id, nil
}

func isS3NotFound(err error) bool {
	var noKey *types.NoSuchKey
	var notFound *types.NotFound
	return errors.As(err, &noKey) || errors.As(err, &notFound)
}

func (s *S3Store) Save(ctx context.Context, id string, data []byte) error {
	key, err := s.key(id)
	if err != nil {
		return err
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("application/octet-stream"),
		IfNoneMatch:   aws.String("*"),
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", id, err)
	}
	return nil
}

func (s *S3Store) Load(ctx context.Context, id string) ([]byte, error) {
	key, err := s.key(id)
	if err != nil {
		return nil, err
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isS3NotFound(err) {
			return nil, fmt.Errorf("%w: %s", common.ErrNotFound, id)
		}
		return nil, fmt.Errorf("get %s: %w", id, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", id, err)
	}
	return data, nil
}

func (s *S3Store) Stat(ctx context.Context, id string) (Object, error) {
	key, err := s.key(id)
	if err != nil {
		return Object{}, err
	}
	out, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isS3NotFound(err) {
			return Object{}, fmt.Errorf("%w: %s", common.ErrNotFound, id)
		}
		return Object{}, fmt.Errorf("head %s: %w", id, err)
	}
	return Object{
		ID:        id,
		Size:      aws.ToInt64(out.ContentLength),
		CreatedAt: aws.ToTime(out.LastModified),
	}, nil
}

// Remove deletes the object. S3 deletes are idempotent, so a missing id is
// detected with a HEAD first to keep the Store contract.
func (s *S3Store) Remove(ctx context.Context, id string) error {
	if _, err := s.Stat(ctx, id); err != nil {
		return err
	}
	key, _ := s.key(id)
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}
	return nil
}

func (s *S3Store) List(ctx context.Context) ([]Object, error) {
	p := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	})

	var objs []Object
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", s.bucket, err)
		}
		for _, o := range page.Contents {
			id := strings.TrimPrefix(aws.ToString(o.Key), s.prefix)
			if id == "" || strings.Contains(id, "/") {
				continue
			}
			objs = append(objs, Object{
				ID:        id,
				Size:      aws.ToInt64(o.Size),
				CreatedAt: aws.ToTime(o.LastModified),
			})
		}
	}
	return objs, nil
}

func (s *S3Store) RemoveOlderThan(ctx context.Context, maxAge time.Duration) (int, error) {
	return sweep(ctx, s, s.now().Add(-maxAge))
}
