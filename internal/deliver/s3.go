package deliver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Uploader is the self-hosted alternative to PutUploader: the file is
// written to a bucket under a per-upload UUID key and the retrieval URL
// is a presigned GET whose lifetime drives the retention note.
type S3Uploader struct {
	uploader *manager.Uploader
	presign  *s3.PresignClient
	bucket   string
	prefix   string
	linkTTL  time.Duration
}

func NewS3Uploader(ctx context.Context, bucket, prefix string, linkTTL time.Duration) (*S3Uploader, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRetryMode("adaptive"))
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %v", err)
	}
	client := s3.NewFromConfig(cfg)
	return &S3Uploader{
		uploader: manager.NewUploader(client),
		presign:  s3.NewPresignClient(client),
		bucket:   bucket,
		prefix:   prefix,
		linkTTL:  linkTTL,
	}, nil
}

func (u *S3Uploader) Upload(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", &DeliveryError{Op: "upload", Err: err}
	}
	defer f.Close()

	key := u.prefix + uuid.New().String() + "/" + filepath.Base(path)
	if _, err := u.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
		Body:   f,
	}); err != nil {
		return "", &DeliveryError{Op: "upload", Err: err}
	}

	signed, err := u.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(u.linkTTL))
	if err != nil {
		return "", &DeliveryError{Op: "upload", Err: err}
	}
	return signed.URL, nil
}
