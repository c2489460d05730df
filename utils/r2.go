// utils/r2.go
package utils

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type R2Options struct {
	AccountID       string
	AccessKeyID     string
	AccessKeySecret string
	Bucket          string
	// PublicBaseURL prefixes returned object URLs. Defaults to the bucket endpoint.
	PublicBaseURL string
}

// R2Uploader writes export files to a Cloudflare R2 bucket through the S3 API.
type R2Uploader struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewR2Uploader(ctx context.Context, opts R2Options) (*R2Uploader, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion("auto"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.AccessKeyID, opts.AccessKeySecret, "",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load R2 config: %w", err)
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", opts.AccountID)
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})

	return &R2Uploader{
		client:  client,
		bucket:  opts.Bucket,
		baseURL: publicBaseURL(opts, endpoint),
	}, nil
}

func publicBaseURL(opts R2Options, endpoint string) string {
	if opts.PublicBaseURL != "" {
		return strings.TrimRight(opts.PublicBaseURL, "/")
	}
	return endpoint + "/" + opts.Bucket
}

// ObjectURL is where key can be fetched once uploaded.
func (u *R2Uploader) ObjectURL(key string) string {
	return u.baseURL + "/" + strings.TrimLeft(key, "/")
}

// Upload stores data under key and returns the object URL.
func (u *R2Uploader) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s to R2: %w", key, err)
	}
	return u.ObjectURL(key), nil
}
