package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/mealsnap/backend/config"
)

// ImageStore persists scan photos and returns a URL the app can load.
type ImageStore interface {
	UploadScanImage(ctx context.Context, imageData []byte, contentType string) (string, error)
}

// S3ImageStore stores scan photos in an S3 bucket.
type S3ImageStore struct {
	s3Config *config.S3Config
}

func NewS3ImageStore(s3Config *config.S3Config) *S3ImageStore {
	return &S3ImageStore{s3Config: s3Config}
}

// UploadScanImage uploads the photo under a random key and returns the
// public URL.
func (s *S3ImageStore) UploadScanImage(ctx context.Context, imageData []byte, contentType string) (string, error) {
	ext := "jpg"
	if contentType == "image/png" {
		ext = "png"
	}
	fileName := fmt.Sprintf("scans/%s.%s", uuid.NewString(), ext)

	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(fileName),
		Body:        bytes.NewReader(imageData),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, fileName), nil
}
