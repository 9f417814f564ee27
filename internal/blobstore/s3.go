package blobstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"lead-intake/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"
)

// S3 stores blobs in a bucket of any S3-compatible service (AWS, MinIO).
// The relative blob path is used as the object key.
type S3 struct {
	client *s3.Client
	bucket string
	log    *zap.Logger
}

var _ Store = (*S3)(nil)

func NewS3(ctx context.Context, cfg config.StorageConfig, log *zap.Logger) (*S3, error) {
	if cfg.S3Bucket == "" {
		return nil, errors.New("s3 bucket is required")
	}
	if (cfg.S3AccessKey == "") != (cfg.S3SecretKey == "") {
		return nil, errors.New("s3 access key and secret key must be set together")
	}
	if log == nil {
		log = zap.NewNop()
	}

	region := cfg.S3Region
	if region == "" {
		region = "us-east-1"
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.S3AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.S3PathStyle
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(endpointURL(cfg.S3Endpoint))
		}
	})

	return &S3{client: client, bucket: cfg.S3Bucket, log: log.Named("s3")}, nil
}

func (s *S3) Bucket() string { return s.bucket }

func (s *S3) Save(ctx context.Context, subdir, name string, data []byte) (Object, error) {
	key, err := objectKey(subdir, name)
	if err != nil {
		return Object{}, err
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(http.DetectContentType(data)),
	})
	if err != nil {
		return Object{}, fmt.Errorf("put object %s: %w", key, err)
	}

	s.log.Debug("object stored", zap.String("key", key), zap.Int("size", len(data)))
	return Object{Path: key, Size: int64(len(data)), Checksum: Checksum(data)}, nil
}

func (s *S3) Open(ctx context.Context, p string) (io.ReadCloser, int64, error) {
	key, err := cleanKey(p)
	if err != nil {
		return nil, 0, ErrNotFound
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, fmt.Errorf("get object %s: %w", key, err)
	}
	return out.Body, aws.ToInt64(out.ContentLength), nil
}

func (s *S3) Delete(ctx context.Context, p string) error {
	key, err := cleanKey(p)
	if err != nil {
		return err
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

func isNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	var notFound *types.NotFound
	if errors.As(err, &noSuchKey) || errors.As(err, &notFound) {
		return true
	}
	// some S3-compatible services only report the code in the message
	msg := err.Error()
	return strings.Contains(msg, "NoSuchKey") || strings.Contains(msg, "NotFound")
}

func endpointURL(endpoint string) string {
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	return "https://" + endpoint
}
