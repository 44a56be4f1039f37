package dataset

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/calvarezg/recipe-search/internal/domain/ingest"
	"github.com/calvarezg/recipe-search/internal/domain/search"
)

// MinioLoader reads the recipe corpus from an S3-compatible object store.
type MinioLoader struct {
	client *minio.Client
	bucket string
	object string
	logger *slog.Logger
}

// NewMinioLoader constructs the loader.
func NewMinioLoader(endpoint, accessKey, secretKey, bucket, object string, useSSL bool, logger *slog.Logger) (*MinioLoader, error) {
	if logger == nil {
		logger = slog.Default()
	}
	client, err := minio.New(endpoint, &minio.Options{
		Creds:        credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure:       useSSL,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("init object store client: %w", err)
	}
	return &MinioLoader{
		client: client,
		bucket: bucket,
		object: object,
		logger: logger.With("component", "dataset.minio"),
	}, nil
}

// Load streams and decodes the dataset object.
func (l *MinioLoader) Load(ctx context.Context) ([]search.Document, error) {
	obj, err := l.client.GetObject(ctx, l.bucket, l.object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("fetch dataset object: %w", err)
	}
	defer obj.Close()

	docs, err := decodeDocuments(obj)
	if err != nil {
		return nil, fmt.Errorf("decode dataset %s/%s: %w", l.bucket, l.object, err)
	}
	l.logger.Info("dataset loaded", "bucket", l.bucket, "object", l.object, "documents", len(docs))
	return docs, nil
}

var _ ingest.Loader = (*MinioLoader)(nil)
