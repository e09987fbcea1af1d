// utils/s3.go
package utils

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var snapshotClient *s3.Client
var snapshotBucket string

// InitSnapshotStore configures the S3-compatible bucket used to archive
// weekly leaderboard snapshots. Returns an error when the required env vars
// are missing; callers may treat that as "archiving disabled".
func InitSnapshotStore() error {
	endpoint := os.Getenv("SNAPSHOT_S3_ENDPOINT")
	accessKeyID := os.Getenv("SNAPSHOT_S3_ACCESS_KEY_ID")
	accessKeySecret := os.Getenv("SNAPSHOT_S3_ACCESS_KEY_SECRET")
	snapshotBucket = os.Getenv("SNAPSHOT_S3_BUCKET")
	if endpoint == "" || accessKeyID == "" || accessKeySecret == "" || snapshotBucket == "" {
		return fmt.Errorf("snapshot store not configured (SNAPSHOT_S3_* env vars missing)")
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion("auto"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKeyID, accessKeySecret, "",
		)),
		config.WithEndpointResolver(aws.EndpointResolverFunc(
			func(service, region string) (aws.Endpoint, error) {
				return aws.Endpoint{URL: endpoint}, nil
			}),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to load snapshot store config: %w", err)
	}

	snapshotClient = s3.NewFromConfig(cfg)
	return nil
}

// SnapshotStoreReady reports whether InitSnapshotStore succeeded.
func SnapshotStoreReady() bool {
	return snapshotClient != nil
}

// UploadSnapshotJSON archives one JSON document under the given object key
// (e.g., "leaderboards/2024-01-01.json").
func UploadSnapshotJSON(key string, body []byte) error {
	if snapshotClient == nil {
		return fmt.Errorf("snapshot store not initialized")
	}
	_, err := snapshotClient.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(snapshotBucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload snapshot %s: %w", key, err)
	}
	return nil
}
