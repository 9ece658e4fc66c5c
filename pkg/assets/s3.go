package assets

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/dmitrymomot/portfolio/pkg/cache"
)

// S3Config holds bucket settings.
type S3Config struct {
	Bucket    string        `env:"BUCKET"`
	AccessKey string        `env:"ACCESS_KEY"`
	SecretKey string        `env:"SECRET_KEY"`
	Region    string        `env:"REGION" envDefault:"us-east-1"`
	Endpoint  string        `env:"ENDPOINT"`
	PathStyle bool          `env:"PATH_STYLE" envDefault:"false"`
	PublicURL string        `env:"PUBLIC_URL"`
	Prefix    string        `env:"PREFIX"`
	URLExpiry time.Duration `env:"URL_EXPIRY" envDefault:"15m"`
}

// Enabled reports whether a bucket is configured.
func (c S3Config) Enabled() bool { return c.Bucket != "" }

type headObjectAPI interface {
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

type presignAPI interface {
	PresignGetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3 resolves names to objects in a bucket.
type S3 struct {
	cfg     S3Config
	head    headObjectAPI
	presign presignAPI
	urls    cache.Cache[string]
}

// NewS3 builds a client with static credentials. urls caches presigned URLs;
// nil selects an in-memory cache.
func NewS3(cfg S3Config, urls cache.Cache[string]) (*S3, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("%w: bucket is required", ErrInvalidConfig)
	}
	if cfg.PublicURL == "" && (cfg.AccessKey == "" || cfg.SecretKey == "") {
		return nil, fmt.Errorf("%w: credentials are required for presigned urls", ErrInvalidConfig)
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	if cfg.URLExpiry <= 0 {
		cfg.URLExpiry = 15 * time.Minute
	}

	client := s3.New(s3.Options{
		Region:      cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
	}, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.PathStyle
		}
	})

	return newS3(cfg, client, s3.NewPresignClient(client), urls), nil
}

func newS3(cfg S3Config, head headObjectAPI, presign presignAPI, urls cache.Cache[string]) *S3 {
	if urls == nil {
		urls = cache.NewMemory[string]()
	}
	return &S3{cfg: cfg, head: head, presign: presign, urls: urls}
}

// URL returns the public URL when one is configured, otherwise a presigned
// URL valid for at least a fifth of the configured expiry.
func (s *S3) URL(ctx context.Context, name string) (string, error) {
	clean, err := cleanName(name)
	if err != nil {
		return "", err
	}
	key := s.key(clean)

	if s.cfg.PublicURL != "" {
		return strings.TrimRight(s.cfg.PublicURL, "/") + "/" + (&url.URL{Path: key}).EscapedPath(), nil
	}

	return cache.GetOrSet(ctx, s.urls, "assets:"+s.cfg.Bucket+"/"+key, func(ctx context.Context) (string, time.Duration, error) {
		if _, err := s.head.HeadObject(ctx, &s3.HeadObjectInput{
			Bucket: aws.String(s.cfg.Bucket),
			Key:    aws.String(key),
		}); err != nil {
			return "", 0, wrapS3Error(err, ErrUnavailable)
		}

		req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(s.cfg.Bucket),
			Key:    aws.String(key),
		}, func(o *s3.PresignOptions) { o.Expires = s.cfg.URLExpiry })
		if err != nil {
			return "", 0, wrapS3Error(err, ErrPresignFailed)
		}
		return req.URL, s.cfg.URLExpiry * 4 / 5, nil
	})
}

// Close releases the URL cache.
func (s *S3) Close() error { return s.urls.Close() }

func (s *S3) key(name string) string {
	if s.cfg.Prefix == "" {
		return name
	}
	return strings.Trim(s.cfg.Prefix, "/") + "/" + name
}

func wrapS3Error(err, fallback error) error {
	var nsk *types.NoSuchKey
	var nf *types.NotFound
	if errors.As(err, &nsk) || errors.As(err, &nf) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return fmt.Errorf("%w: %v", ErrNotFound, err)
		case "AccessDenied", "Forbidden":
			return fmt.Errorf("%w: %v", ErrAccessDenied, err)
		}
	}
	return fmt.Errorf("%w: %v", fallback, err)
}
