package backup

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// seams for unit tests
var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in)
	}
)

// S3Options configures access to the blob store. BaseEndpoint points the
// client at a MinIO deployment; leave it empty for AWS proper.
type S3Options struct {
	Region       string
	RootUser     string // MINIO_ROOT_USER
	RootPassword string // MINIO_ROOT_PASSWORD
	BaseEndpoint string
	Bucket       string
}

// S3Uploader writes artifacts to an S3-compatible bucket.
type S3Uploader struct {
	client *s3.Client
	bucket string
}

func NewS3Uploader(ctx context.Context, opts S3Options) (*S3Uploader, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(opts.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.RootUser,
			opts.RootPassword,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if opts.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(opts.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Uploader{client: client, bucket: opts.Bucket}, nil
}

// Upload stores the payload under key, overwriting any previous object.
func (u *S3Uploader) Upload(ctx context.Context, key string, body []byte) error {
	contentType := "application/json"
	_, err := putObject(u.client, ctx, &s3.PutObjectInput{
		Bucket:      &u.bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: &contentType,
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	return nil
}
