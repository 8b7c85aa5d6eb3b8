package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appconfig "github.com/rotemgl/jars_backend/internal/config"
)

// S3Client is the subset of the S3 API the store uses.
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// ObjectStore is one bucket's worth of blob storage.
type ObjectStore struct {
	bucket     string
	publicBase string
	client     S3Client
}

// NewS3Client builds the shared S3 client from app config.
func NewS3Client(cfg *appconfig.Config) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
	}
	if cfg.S3AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})
	return client, nil
}

// NewObjectStore scopes a client to one bucket. publicBase overrides the
// default virtual-hosted URL scheme (useful for S3-compatible endpoints).
func NewObjectStore(client S3Client, bucket, publicBase string) *ObjectStore {
	return &ObjectStore{
		bucket:     bucket,
		publicBase: strings.TrimSuffix(publicBase, "/"),
		client:     client,
	}
}

// Upload writes data under key and returns the object's public URL.
func (s *ObjectStore) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s/%s: %w", s.bucket, key, err)
	}
	return s.PublicURL(key), nil
}

// Remove deletes the object under key.
func (s *ObjectStore) Remove(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to remove %s/%s: %w", s.bucket, key, err)
	}
	return nil
}

// PublicURL resolves the public location of an object.
func (s *ObjectStore) PublicURL(key string) string {
	if s.publicBase != "" {
		return fmt.Sprintf("%s/%s/%s", s.publicBase, s.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key)
}
