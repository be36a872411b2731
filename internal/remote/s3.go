package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	appconfig "github.com/platekeeper/platekeeper/internal/config"
	"github.com/platekeeper/platekeeper/internal/logging"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// s3API is the slice of the S3 client surface the remote tier calls.
type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// S3Client implements Client against any S3-compatible store.
type S3Client struct {
	api      s3API
	bucket   string
	status   *Status
	attempts int
	delay    time.Duration
	logger   logging.Logger
}

func NewS3Client(cfg *appconfig.Config, status *Status, logger logging.Logger) (*S3Client, error) {
	awsCfg, err := loadDefaultAWSConfig(context.Background(),
		config.WithRegion(cfg.S3Region),
		// Retries are handled by this client; the SDK gets one shot per call.
		config.WithRetryMaxAttempts(1),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	api := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		o.UsePathStyle = true // MinIO-style endpoints have no per-bucket DNS
	})

	return &S3Client{
		api:      api,
		bucket:   cfg.S3Bucket,
		status:   status,
		attempts: cfg.RetryAttempts,
		delay:    cfg.RetryDelay,
		logger:   logger.With("module", "remote"),
	}, nil
}

// storageKey returns a fresh object key. Keys are opaque to callers; the
// date prefix only keeps bucket listings browsable.
func storageKey() string {
	d := time.Now()
	return fmt.Sprintf("plates/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (c *S3Client) Upload(ctx context.Context, name string, data []byte) (string, error) {
	if err := c.gate(); err != nil {
		return "", err
	}

	key := storageKey()
	err := c.call(ctx, "upload", func(ctx context.Context) error {
		_, err := c.api.PutObject(ctx, &s3.PutObjectInput{
			Bucket:        aws.String(c.bucket),
			Key:           aws.String(key),
			Body:          bytes.NewReader(data), // fresh reader per attempt
			ContentType:   aws.String(http.DetectContentType(data)),
			ContentLength: aws.Int64(int64(len(data))),
			Metadata: map[string]string{
				"filename":    name,
				"uploaded-at": time.Now().UTC().Format(time.RFC3339),
			},
		})
		return err
	})
	if err != nil {
		return "", err
	}
	return key, nil
}

func (c *S3Client) Download(ctx context.Context, key string) ([]byte, error) {
	if err := c.gate(); err != nil {
		return nil, err
	}

	var data []byte
	err := c.call(ctx, "download", func(ctx context.Context) error {
		out, err := c.api.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(c.bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			return err
		}
		defer out.Body.Close()

		data, err = io.ReadAll(out.Body)
		return err
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (c *S3Client) Delete(ctx context.Context, key string) error {
	if err := c.gate(); err != nil {
		return err
	}

	return c.call(ctx, "delete", func(ctx context.Context) error {
		_, err := c.api.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(c.bucket),
			Key:    aws.String(key),
		})
		return err
	})
}

// Probe checks bucket reachability with a single HeadBucket call, outside
// the retry policy. Success reopens the availability gate.
func (c *S3Client) Probe(ctx context.Context) error {
	_, err := c.api.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(c.bucket)})
	if err != nil {
		cerr := classify(err)
		c.status.MarkDegraded()
		c.logger.Warn(ctx, "cloud probe failed", "bucket", c.bucket, "error", cerr)
		return fmt.Errorf("probe: %w", cerr)
	}

	c.status.Reset()
	c.logger.Info(ctx, "cloud reachable", "bucket", c.bucket)
	return nil
}

func (c *S3Client) gate() error {
	if c.status.Degraded() {
		return fmt.Errorf("%w: availability gate closed", ErrUnavailable)
	}
	return nil
}

// call runs one store operation under the retry policy. Transient failures
// are retried; every other class returns immediately, and the service-level
// ones close the availability gate.
func (c *S3Client) call(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	err := withRetry(ctx, c.attempts, c.delay, func(ctx context.Context) error {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		cerr := classify(err)
		if errors.Is(cerr, ErrTransient) {
			c.logger.Debug(ctx, "transient storage error", "op", op, "error", cerr)
			return retry.RetryableError(cerr)
		}
		return cerr
	})
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrAuthRequired) || errors.Is(err, ErrQuotaExceeded) || errors.Is(err, ErrUnavailable) {
		c.status.MarkDegraded()
		c.logger.Warn(ctx, "cloud marked unavailable", "op", op, "error", err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
