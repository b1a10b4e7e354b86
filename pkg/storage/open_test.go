package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	awsCfg := WithAWSConfig(aws.Config{Region: "us-east-1"})

	tests := []struct {
		name  string
		url   string
		check func(t *testing.T, s BlobStore)
	}{
		{
			name: "bare path",
			url:  dir,
			check: func(t *testing.T, s BlobStore) {
				require.IsType(t, &LocalStore{}, s)
				assert.Equal(t, dir, s.(*LocalStore).Root)
			},
		},
		{
			name: "file url",
			url:  "file://" + dir,
			check: func(t *testing.T, s BlobStore) {
				require.IsType(t, &LocalStore{}, s)
				assert.Equal(t, dir, s.(*LocalStore).Root)
			},
		},
		{
			name: "memory",
			url:  "mem://",
			check: func(t *testing.T, s BlobStore) {
				assert.IsType(t, &MemoryStore{}, s)
			},
		},
		{
			name: "sqlite",
			url:  "sqlite://" + filepath.Join(dir, "g.db"),
			check: func(t *testing.T, s BlobStore) {
				require.IsType(t, &SQLiteStore{}, s)
				c, ok := s.(io.Closer)
				require.True(t, ok)
				assert.NoError(t, c.Close())
			},
		},
		{
			name: "s3 with prefix",
			url:  "s3://my-bucket/graphs/team/",
			check: func(t *testing.T, s BlobStore) {
				require.IsType(t, &S3Store{}, s)
				st := s.(*S3Store)
				assert.Equal(t, "my-bucket", st.Bucket)
				assert.Equal(t, "graphs/team", st.Prefix)
				assert.Equal(t, "graphs/team/graph.json", st.objectKey("graph.json"))
			},
		},
		{
			name: "dynamodb",
			url:  "dynamodb://graphs",
			check: func(t *testing.T, s BlobStore) {
				require.IsType(t, &DynamoStore{}, s)
				assert.Equal(t, "graphs", s.(*DynamoStore).Table)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := Open(ctx, tc.url, awsCfg)
			require.NoError(t, err)
			tc.check(t, s)
		})
	}
}

func TestOpen_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := Open(ctx, "ftp://host/x")
	assert.ErrorIs(t, err, ErrUnsupportedScheme)

	_, err = Open(ctx, "")
	assert.ErrorIs(t, err, ErrUnsupportedScheme)

	_, err = Open(ctx, "s3://", WithAWSConfig(aws.Config{}))
	assert.Error(t, err)

	_, err = Open(ctx, "dynamodb://", WithAWSConfig(aws.Config{}))
	assert.Error(t, err)
}

func TestS3Store_ObjectKeyWithoutPrefix(t *testing.T) {
	s := NewS3Store(aws.Config{Region: "us-east-1"}, "b", "")
	assert.Equal(t, "graph.json", s.objectKey("graph.json"))
}

// dynamoStub answers DescribeTable for an existing table and records the
// operations it receives.
func dynamoStub(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()
	var mu sync.Mutex
	var ops []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		target := r.Header.Get("X-Amz-Target")
		mu.Lock()
		ops = append(ops, strings.TrimPrefix(target, "DynamoDB_20120810."))
		mu.Unlock()

		w.Header().Set("Content-Type", "application/x-amz-json-1.0")
		if target == "DynamoDB_20120810.DescribeTable" {
			_, _ = io.WriteString(w, `{"Table":{"TableName":"graphs","TableStatus":"ACTIVE"}}`)
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"__type":"com.amazon.coral.validate#ValidationException","message":"unexpected"}`)
	}))
	t.Cleanup(srv.Close)
	return srv, &ops
}

func stubAWSConfig(endpoint string) aws.Config {
	return aws.Config{
		Region:       "us-east-1",
		BaseEndpoint: aws.String(endpoint),
		Credentials: aws.CredentialsProviderFunc(func(ctx context.Context) (aws.Credentials, error) {
			return aws.Credentials{AccessKeyID: "test", SecretAccessKey: "test"}, nil
		}),
	}
}

func TestOpen_DynamoCreateTable(t *testing.T) {
	ctx := context.Background()

	t.Run("checks the table when asked", func(t *testing.T) {
		srv, ops := dynamoStub(t)
		s, err := Open(ctx, "dynamodb://graphs?create=true", WithAWSConfig(stubAWSConfig(srv.URL)))
		require.NoError(t, err)
		assert.IsType(t, &DynamoStore{}, s)
		assert.Equal(t, []string{"DescribeTable"}, *ops)
	})

	t.Run("option form", func(t *testing.T) {
		srv, ops := dynamoStub(t)
		_, err := Open(ctx, "dynamodb://graphs", WithAWSConfig(stubAWSConfig(srv.URL)), WithCreateTable(true))
		require.NoError(t, err)
		assert.Equal(t, []string{"DescribeTable"}, *ops)
	})

	t.Run("leaves the table alone by default", func(t *testing.T) {
		srv, ops := dynamoStub(t)
		_, err := Open(ctx, "dynamodb://graphs", WithAWSConfig(stubAWSConfig(srv.URL)))
		require.NoError(t, err)
		assert.Empty(t, *ops)
	})

	t.Run("invalid flag", func(t *testing.T) {
		_, err := Open(ctx, "dynamodb://graphs?create=maybe", WithAWSConfig(aws.Config{}))
		assert.Error(t, err)
	})
}
