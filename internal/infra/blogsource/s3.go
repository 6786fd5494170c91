package blogsource

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/yanqian/vat-directory/internal/domain/blog"
)

// S3Options describes an S3 compatible bucket holding post files.
type S3Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	Prefix    string
}

// S3Source reads posts from an S3 compatible bucket such as R2 or MinIO.
type S3Source struct {
	client *minio.Client
	bucket string
	prefix string
	logger *slog.Logger
}

// NewS3Source constructs the bucket-backed source.
func NewS3Source(opts S3Options, logger *slog.Logger) (*S3Source, error) {
	if logger == nil {
		logger = slog.Default()
	}
	useSSL := !strings.HasPrefix(strings.ToLower(opts.Endpoint), "http://")
	client, err := minio.New(sanitizeEndpoint(opts.Endpoint), &minio.Options{
		Creds:        credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure:       useSSL,
		Region:       opts.Region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}
	return &S3Source{
		client: client,
		bucket: opts.Bucket,
		prefix: normalizePrefix(opts.Prefix),
		logger: logger.With("component", "blogsource.s3"),
	}, nil
}

// List implements blog.Source. Only objects directly under the prefix are returned.
func (s *S3Source) List(ctx context.Context) ([]string, error) {
	var names []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: s.prefix}) {
		if obj.Err != nil {
			s.logger.Error("list posts failed", "bucket", s.bucket, "prefix", s.prefix, "error", obj.Err)
			return nil, fmt.Errorf("list s3 objects: %w", obj.Err)
		}
		name := strings.TrimPrefix(obj.Key, s.prefix)
		if name == "" || strings.Contains(name, "/") {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

// Read implements blog.Source.
func (s *S3Source) Read(ctx context.Context, name string) ([]byte, bool, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return nil, false, nil
	}
	key := s.prefix + name
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		s.logger.Error("read post failed", "bucket", s.bucket, "key", key, "error", err)
		return nil, false, fmt.Errorf("get s3 object: %w", err)
	}
	defer obj.Close()
	// GetObject is lazy; a missing key only surfaces on the first read.
	data, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == minio.NoSuchKey {
			s.logger.Debug("post not found", "bucket", s.bucket, "key", key)
			return nil, false, nil
		}
		s.logger.Error("read post failed", "bucket", s.bucket, "key", key, "error", err)
		return nil, false, fmt.Errorf("read s3 object: %w", err)
	}
	return data, true, nil
}

func sanitizeEndpoint(endpoint string) string {
	clean := strings.TrimSpace(endpoint)
	clean = strings.TrimPrefix(clean, "https://")
	clean = strings.TrimPrefix(clean, "http://")
	return strings.TrimRight(clean, "/")
}

func normalizePrefix(prefix string) string {
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		return ""
	}
	return prefix + "/"
}

var _ blog.Source = (*S3Source)(nil)
