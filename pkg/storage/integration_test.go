//go:build integration

package storage

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/localstack"
)

// TestCloudStores_Integration runs the BlobStore contract against S3 and
// DynamoDB on LocalStack. Requires Docker.
func TestCloudStores_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	container, err := localstack.Run(ctx, "localstack/localstack:3.0")
	testcontainers.CleanupContainer(t, container)
	if err != nil {
		t.Fatalf("Failed to start LocalStack: %v", err)
	}

	endpoint, err := container.PortEndpoint(ctx, "4566/tcp", "http")
	if err != nil {
		t.Fatalf("Failed to get endpoint: %v", err)
	}

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion("us-east-1"),
		config.WithBaseEndpoint(endpoint),
		config.WithCredentialsProvider(aws.CredentialsProviderFunc(func(ctx context.Context) (aws.Credentials, error) {
			return aws.Credentials{
				AccessKeyID:     "test",
				SecretAccessKey: "test",
				SessionToken:    "test",
			}, nil
		})),
	)
	require.NoError(t, err)

	t.Run("s3", func(t *testing.T) {
		client := s3.NewFromConfig(cfg, func(o *s3.Options) { o.UsePathStyle = true })
		_, err := client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String("graphs")})
		require.NoError(t, err)

		store, err := Open(ctx, "s3://graphs/team?endpoint="+endpoint, WithAWSConfig(cfg))
		require.NoError(t, err)
		exerciseStore(t, store)
	})

	t.Run("dynamodb", func(t *testing.T) {
		store, err := Open(ctx, "dynamodb://graphs?create=true", WithAWSConfig(cfg))
		require.NoError(t, err)
		exerciseStore(t, store)
	})
}
