package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/kurin/blazer/b2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const signedURLDuration = 24 * time.Hour

// B2BlobStore keeps blob payloads in a Backblaze B2 bucket. Refs are the
// object names inside the bucket.
type B2BlobStore struct {
	client *b2.Client
	bucket *b2.Bucket
	prefix string
}

func NewB2BlobStore(ctx context.Context, keyID, applicationKey, bucketName string) (*B2BlobStore, error) {
	client, err := b2.NewClient(ctx, keyID, applicationKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create B2 client: %w", err)
	}

	bucket, err := client.Bucket(ctx, bucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to get bucket %s: %w", bucketName, err)
	}

	return &B2BlobStore{
		client: client,
		bucket: bucket,
		prefix: "blobs/",
	}, nil
}

func (s *B2BlobStore) Store(ctx context.Context, data []byte) (string, error) {
	ref := s.prefix + primitive.NewObjectID().Hex()

	writer := s.bucket.Object(ref).NewWriter(ctx)
	if _, err := io.Copy(writer, bytes.NewReader(data)); err != nil {
		writer.Close()
		return "", fmt.Errorf("failed to upload blob to B2: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close B2 writer: %w", err)
	}
	return ref, nil
}

func (s *B2BlobStore) Get(ctx context.Context, ref string) ([]byte, error) {
	reader := s.bucket.Object(ref).NewReader(ctx)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		if b2.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read blob from B2: %w", err)
	}
	return data, nil
}

func (s *B2BlobStore) Delete(ctx context.Context, ref string) error {
	if err := s.bucket.Object(ref).Delete(ctx); err != nil {
		if b2.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete blob from B2: %w", err)
	}
	return nil
}

func (s *B2BlobStore) URL(ctx context.Context, ref string) (string, error) {
	urlObj, err := s.bucket.Object(ref).AuthURL(ctx, signedURLDuration, "GET")
	if err != nil {
		if b2.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to generate signed URL: %w", err)
	}
	return urlObj.String(), nil
}
