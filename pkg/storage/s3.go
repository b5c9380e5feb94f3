package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/noah-isme/school-admin-api/pkg/config"
)

// S3API is the subset of the S3 client used by S3MediaHost.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3MediaHost stores media in an S3 compatible bucket (AWS, DigitalOcean Spaces, MinIO).
type S3MediaHost struct {
	client     S3API
	presign    func(ctx context.Context, key string, ttl time.Duration) (string, error)
	bucket     string
	publicBase string
	ttl        time.Duration
}

// NewS3MediaHost builds an S3 client from configuration.
func NewS3MediaHost(ctx context.Context, cfg config.MediaConfig) (*S3MediaHost, error) {
	opts := []func(*awsConfig.LoadOptions) error{awsConfig.WithRegion(cfg.S3Region)}
	if cfg.S3AccessKeyID != "" {
		opts = append(opts, awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKeyID, cfg.S3SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsConfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})
	presignClient := s3.NewPresignClient(client)

	host := NewS3MediaHostWithClient(client, cfg.S3Bucket, cfg.S3PublicBaseURL, cfg.SignedURLTTL)
	host.presign = func(ctx context.Context, key string, ttl time.Duration) (string, error) {
		req, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(cfg.S3Bucket),
			Key:    aws.String(key),
		}, func(o *s3.PresignOptions) {
			o.Expires = ttl
		})
		if err != nil {
			return "", err
		}
		return req.URL, nil
	}
	return host, nil
}

// NewS3MediaHostWithClient wires an existing client. Without a public base URL
// and without a presigner, URL falls back to the virtual-hosted bucket address.
func NewS3MediaHostWithClient(client S3API, bucket, publicBase string, ttl time.Duration) *S3MediaHost {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &S3MediaHost{
		client:     client,
		bucket:     bucket,
		publicBase: strings.TrimRight(publicBase, "/"),
		ttl:        ttl,
	}
}

// Put uploads the object. Objects are private unless a public base URL is configured.
func (s *S3MediaHost) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (*Object, error) {
	key, err := CleanKey(key)
	if err != nil {
		return nil, err
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPrivate,
	}
	if size >= 0 {
		input.ContentLength = aws.Int64(size)
	}
	if s.publicBase != "" {
		input.ACL = types.ObjectCannedACLPublicRead
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return nil, fmt.Errorf("failed to upload media: %w", err)
	}

	link, err := s.URL(ctx, key)
	if err != nil {
		return nil, err
	}

	return &Object{Key: key, URL: link, ContentType: contentType, Bytes: size}, nil
}

// URL returns a public or presigned link for key.
func (s *S3MediaHost) URL(ctx context.Context, key string) (string, error) {
	key, err := CleanKey(key)
	if err != nil {
		return "", err
	}

	if _, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return "", ErrObjectNotFound
		}
		return "", fmt.Errorf("failed to get media info: %w", err)
	}

	if s.publicBase != "" {
		return s.publicBase + "/" + escapeKey(key), nil
	}
	if s.presign != nil {
		link, err := s.presign(ctx, key, s.ttl)
		if err != nil {
			return "", fmt.Errorf("failed to generate presigned URL: %w", err)
		}
		return link, nil
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, escapeKey(key)), nil
}

// Delete removes key from the bucket.
func (s *S3MediaHost) Delete(ctx context.Context, key string) error {
	key, err := CleanKey(key)
	if err != nil {
		return err
	}
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("failed to delete media: %w", err)
	}
	return nil
}

func escapeKey(key string) string {
	segments := strings.Split(key, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.Join(segments, "/")
}
