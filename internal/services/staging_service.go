package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// StagingService stores the raw import payload keyed by session id before the
// pipeline runs, so a failed run can be inspected or replayed from the exact
// bytes the user uploaded.
type StagingService interface {
	EnsureBucket(ctx context.Context, bucket string) error
	StagePayload(ctx context.Context, bucket, sessionID, filename string, payload []byte) error
	FetchPayload(ctx context.Context, bucket, sessionID string) ([]byte, error)
	RemovePayload(ctx context.Context, bucket, sessionID string) error
	// PublishFeed stores a generated marketplace feed under a stable key so
	// each refresh overwrites the previous one for that tenant.
	PublishFeed(ctx context.Context, bucket, feedName, content string) error
}

type minioStaging struct {
	client *minio.Client
}

func NewStagingService(endpoint, accessKey, secretKey string, useSSL bool) (StagingService, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	return &minioStaging{client: client}, nil
}

func (m *minioStaging) EnsureBucket(ctx context.Context, bucket string) error {
	found, err := m.client.BucketExists(ctx, bucket)
	if err != nil {
		return err
	}
	if !found {
		return m.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{})
	}
	return nil
}

func stagingKey(sessionID string) string {
	return "sessions/" + sessionID
}

func (m *minioStaging) StagePayload(ctx context.Context, bucket, sessionID, filename string, payload []byte) error {
	_, err := m.client.PutObject(ctx, bucket, stagingKey(sessionID), bytes.NewReader(payload), int64(len(payload)), minio.PutObjectOptions{
		ContentType:  "application/octet-stream",
		UserMetadata: map[string]string{"filename": filename},
	})
	if err != nil {
		return fmt.Errorf("failed to stage import payload: %w", err)
	}
	return nil
}

func (m *minioStaging) FetchPayload(ctx context.Context, bucket, sessionID string) ([]byte, error) {
	object, err := m.client.GetObject(ctx, bucket, stagingKey(sessionID), minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch staged payload: %w", err)
	}
	defer object.Close()
	return io.ReadAll(object)
}

func (m *minioStaging) RemovePayload(ctx context.Context, bucket, sessionID string) error {
	return m.client.RemoveObject(ctx, bucket, stagingKey(sessionID), minio.RemoveObjectOptions{})
}

func (m *minioStaging) PublishFeed(ctx context.Context, bucket, feedName, content string) error {
	_, err := m.client.PutObject(ctx, bucket, "feeds/"+feedName, strings.NewReader(content), int64(len(content)), minio.PutObjectOptions{
		ContentType: "text/csv",
	})
	if err != nil {
		return fmt.Errorf("failed to publish feed: %w", err)
	}
	return nil
}
