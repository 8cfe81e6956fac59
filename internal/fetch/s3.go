package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// S3Config locates an S3-compatible object store. Endpoint is only needed
// for non-AWS stores such as R2 or MinIO.
type S3Config struct {
	Region       string
	Endpoint     string
	AccessKey    string
	SecretKey    string
	UsePathStyle bool
}

// S3API is the subset of the S3 client used by S3Source.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// NewS3Client builds an S3 client. Static credentials are used when
// AccessKey is set; otherwise the default AWS credential chain applies.
func NewS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	region := cfg.Region
	if region == "" {
		region = "auto"
	}
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}
	awsConfig, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	return s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	}), nil
}

// ParseS3Ref splits s3://bucket/key.
func ParseS3Ref(ref string) (bucket, key string, err error) {
	parsed, err := url.Parse(ref)
	if err != nil {
		return "", "", err
	}
	if parsed.Scheme != "s3" {
		return "", "", fmt.Errorf("expected s3:// reference, got %q", ref)
	}
	bucket = parsed.Host
	key = strings.TrimPrefix(parsed.Path, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("s3 reference %q needs a bucket and a key", ref)
	}
	return bucket, key, nil
}

// S3Source downloads documents from object storage.
type S3Source struct {
	client S3API
	opts   *Options
	logger *zap.Logger
}

// NewS3Source wraps an S3 client.
func NewS3Source(client S3API, opts *Options, logger *zap.Logger) *S3Source {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &S3Source{client: client, opts: normalizeOptions(opts), logger: logger}
}

// Fetch downloads the object named by an s3://bucket/key reference.
func (s *S3Source) Fetch(ctx context.Context, ref string) (*types.ResumeDocument, error) {
	bucket, key, err := ParseS3Ref(ref)
	if err != nil {
		return nil, &Error{Ref: ref, Message: "invalid S3 reference", Cause: err}
	}
	if !allowedName(bucket, s.opts.AllowedBuckets) {
		return nil, &Error{Ref: ref, Message: "bucket not allowed", Cause: ErrForbiddenDestination}
	}

	attempt := 0
	operation := func() (*types.ResumeDocument, error) {
		attempt++
		out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			fetchErr := &Error{Ref: ref, Message: "failed to get object", Temporary: true, Cause: err}
			var respErr *awshttp.ResponseError
			if errors.As(err, &respErr) {
				fetchErr.StatusCode = respErr.HTTPStatusCode()
				fetchErr.Temporary = IsRetryableStatus(fetchErr.StatusCode)
			}
			if !fetchErr.Temporary {
				return nil, backoff.Permanent(fetchErr)
			}
			s.logger.Debug("fetch attempt failed", zap.String("ref", ref), zap.Int("attempt", attempt), zap.Error(err))
			return nil, fetchErr
		}
		defer func() { _ = out.Body.Close() }()

		data, err := io.ReadAll(io.LimitReader(out.Body, s.opts.MaxBytes+1))
		if err != nil {
			return nil, &Error{Ref: ref, Message: "failed to read object body", Temporary: true, Cause: err}
		}
		filename := path.Base(key)
		return &types.ResumeDocument{
			Data:     data,
			MIMEType: ingestion.ResolveMIMEType(aws.ToString(out.ContentType), filename),
			Filename: filename,
		}, nil
	}

	doc, err := withRetry(ctx, s.opts, operation)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("fetched document", zap.String("ref", ref), zap.Int("attempts", attempt), zap.Int64("size_bytes", doc.Size()))
	return doc, nil
}
