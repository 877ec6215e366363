// Package archive copies generated reports to an S3-compatible bucket
// (R2, MinIO, or S3 proper).
package archive

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	appconfig "hostel-backend/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type Client struct {
	s3     *s3.Client
	bucket string
}

// New builds an archive client from config. Returns an error when the
// bucket is not configured; callers treat that as "archiving disabled".
func New(cfg *appconfig.Config) (*Client, error) {
	if cfg.Archive.Bucket == "" || cfg.Archive.AccessKey == "" {
		return nil, fmt.Errorf("archive bucket not configured")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Archive.AccessKey,
			cfg.Archive.SecretKey,
			"",
		)),
		awsconfig.WithRegion(cfg.Archive.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("configure archive client: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Archive.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Archive.Endpoint)
		}
	})

	return &Client{s3: client, bucket: cfg.Archive.Bucket}, nil
}

// Upload puts one object into the archive bucket.
func (c *Client) Upload(ctx context.Context, key string, body []byte, contentType string) error {
	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return err
	}
	log.Printf("[Archive] Uploaded %s", key)
	return nil
}
