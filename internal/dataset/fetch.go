package dataset

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Fetcher downloads dataset archives from S3.
type Fetcher struct {
	client *s3.Client
	bucket string
}

// NewFetcher creates a fetcher for one bucket using the default AWS
// credential chain.
func NewFetcher(ctx context.Context, bucket, region string) (*Fetcher, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &Fetcher{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
	}, nil
}

// Fetch downloads s3://<bucket>/<key> to destPath, creating parent
// directories as needed.
func (f *Fetcher) Fetch(ctx context.Context, key, destPath string) error {
	out, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to fetch s3://%s/%s: %w", f.bucket, key, err)
	}
	defer out.Body.Close()

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", destPath, err)
	}
	dest, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", destPath, err)
	}
	written, err := io.Copy(dest, out.Body)
	if err != nil {
		dest.Close()
		return fmt.Errorf("failed to write %s: %w", destPath, err)
	}
	if err := dest.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", destPath, err)
	}
	slog.Info("dataset fetched", "bucket", f.bucket, "key", key, "dest", destPath, "bytes", written)
	return nil
}
