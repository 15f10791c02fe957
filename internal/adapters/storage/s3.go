// Package storage provides the image-store adapter. Uploads are
// pass-through: a failed upload fails the caller's request, no retries.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"devevent/internal/domain"
)

// S3Config holds configuration for the S3 image store.
type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	// BaseURL overrides the default public URL prefix (e.g. a CDN or
	// S3-compatible endpoint). Empty means the standard S3 URL form.
	BaseURL string
}

// Config holds configuration for creating an image store.
type Config struct {
	Provider string
	S3       S3Config
}

// NewImageStore creates an image store from config. Provider "s3" uses AWS S3;
// "noop" or unknown uses a no-op store that returns placeholder URLs.
func NewImageStore(config Config) (domain.ImageStore, error) {
	switch config.Provider {
	case "s3":
		awsCfg := aws.Config{
			Region: config.S3.Region,
			Credentials: aws.NewCredentialsCache(
				credentials.NewStaticCredentialsProvider(
					config.S3.AccessKeyID,
					config.S3.SecretAccessKey,
					"",
				),
			),
		}
		return &s3Store{
			client:  s3.NewFromConfig(awsCfg),
			bucket:  config.S3.Bucket,
			region:  config.S3.Region,
			baseURL: strings.TrimSuffix(config.S3.BaseURL, "/"),
		}, nil
	case "noop":
		return &noopStore{}, nil
	default:
		log.Printf("[STORAGE] Unknown image store provider %q, using noop", config.Provider)
		return &noopStore{}, nil
	}
}

type s3Store struct {
	client  *s3.Client
	bucket  string
	region  string
	baseURL string
}

func (s *s3Store) Upload(ctx context.Context, data []byte, contentType, folder string) (string, error) {
	key := fmt.Sprintf("%s/%s%s", folder, uuid.NewString(), extensionFor(contentType))
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}
	if s.baseURL != "" {
		return fmt.Sprintf("%s/%s", s.baseURL, key), nil
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}

// noopStore is for local development without object storage credentials.
type noopStore struct{}

func (n *noopStore) Upload(_ context.Context, _ []byte, contentType, folder string) (string, error) {
	url := fmt.Sprintf("https://images.invalid/%s/%s%s", folder, uuid.NewString(), extensionFor(contentType))
	log.Printf("[STORAGE] noop store discarded upload, returning %s", url)
	return url, nil
}
