package storage

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go/middleware"
	smithyhttp "github.com/aws/smithy-go/transport/http"

	"github.com/Alekasndr/graphedit/pkg/version"
)

// OpenOptions carries settings for the cloud backends. URL query
// parameters (?region=, ?endpoint=, ?create=) take precedence.
type OpenOptions struct {
	Region   string
	Endpoint string
	// CreateTable makes Open create a missing DynamoDB table. Without it
	// the table must already exist.
	CreateTable bool
	// AWSConfig, when set, is used as-is instead of loading the default
	// credential chain.
	AWSConfig *aws.Config
}

// OpenOption configures Open.
type OpenOption func(*OpenOptions)

func WithRegion(region string) OpenOption {
	return func(o *OpenOptions) { o.Region = region }
}

func WithEndpoint(endpoint string) OpenOption {
	return func(o *OpenOptions) { o.Endpoint = endpoint }
}

func WithCreateTable(create bool) OpenOption {
	return func(o *OpenOptions) { o.CreateTable = create }
}

func WithAWSConfig(cfg aws.Config) OpenOption {
	return func(o *OpenOptions) { o.AWSConfig = &cfg }
}

// Open returns the BlobStore addressed by rawURL:
//
//	file:///var/lib/graphedit   LocalStore (a bare path works too)
//	mem://                      MemoryStore
//	sqlite:///path/to/graph.db  SQLiteStore
//	s3://bucket/prefix          S3Store
//	dynamodb://table            DynamoStore (?create=true creates the table)
//
// Stores holding resources (SQLite) implement io.Closer.
func Open(ctx context.Context, rawURL string, opts ...OpenOption) (BlobStore, error) {
	var o OpenOptions
	for _, opt := range opts {
		opt(&o)
	}

	if !strings.Contains(rawURL, "://") {
		if rawURL == "" {
			return nil, fmt.Errorf("%w: empty store URL", ErrUnsupportedScheme)
		}
		return NewLocalStore(rawURL), nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid store URL %q: %w", rawURL, err)
	}
	if v := u.Query().Get("region"); v != "" {
		o.Region = v
	}
	if v := u.Query().Get("endpoint"); v != "" {
		o.Endpoint = v
	}
	if v := u.Query().Get("create"); v != "" {
		create, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid create parameter in %q: %w", rawURL, err)
		}
		o.CreateTable = create
	}

	switch u.Scheme {
	case "file":
		return NewLocalStore(hostPath(u)), nil
	case "mem", "memory":
		return NewMemoryStore(), nil
	case "sqlite", "sqlite3":
		return NewSQLiteStore(ctx, hostPath(u))
	case "s3":
		if u.Host == "" {
			return nil, fmt.Errorf("s3 URL %q has no bucket", rawURL)
		}
		cfg, err := o.awsConfig(ctx)
		if err != nil {
			return nil, err
		}
		pathStyle := o.Endpoint != ""
		return NewS3Store(cfg, u.Host, u.Path, func(so *s3.Options) {
			so.UsePathStyle = pathStyle
		}), nil
	case "dynamodb":
		if u.Host == "" {
			return nil, fmt.Errorf("dynamodb URL %q has no table", rawURL)
		}
		cfg, err := o.awsConfig(ctx)
		if err != nil {
			return nil, err
		}
		store := NewDynamoStore(cfg, u.Host)
		if o.CreateTable {
			if err := store.EnsureTable(ctx); err != nil {
				return nil, err
			}
		}
		return store, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
}

// hostPath rebuilds the filesystem path from a URL, so that both
// file:///abs/dir and file://relative/dir work.
func hostPath(u *url.URL) string {
	if u.Host == "" {
		return u.Path
	}
	return u.Host + u.Path
}

func (o OpenOptions) awsConfig(ctx context.Context) (aws.Config, error) {
	if o.AWSConfig != nil {
		return *o.AWSConfig, nil
	}

	var loadOpts []func(*config.LoadOptions) error
	if o.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(o.Region))
	}
	endpoint := o.Endpoint
	if endpoint == "" {
		endpoint = os.Getenv("AWS_ENDPOINT_URL")
	}
	if endpoint != "" {
		loadOpts = append(loadOpts, config.WithBaseEndpoint(endpoint))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("unable to load SDK config: %w", err)
	}
	cfg.APIOptions = append(cfg.APIOptions, userAgent)
	return cfg, nil
}

// userAgent tags outgoing AWS requests with the application version.
func userAgent(stack *middleware.Stack) error {
	return stack.Build.Add(middleware.BuildMiddlewareFunc("GraphEditUserAgent", func(ctx context.Context, input middleware.BuildInput, next middleware.BuildHandler) (
		middleware.BuildOutput, middleware.Metadata, error,
	) {
		if req, ok := input.Request.(*smithyhttp.Request); ok {
			ua := req.Header.Get("User-Agent")
			tag := fmt.Sprintf("%s/%s", version.AppName, version.Current)
			if ua == "" {
				ua = tag
			} else {
				ua += " " + tag
			}
			req.Header.Set("User-Agent", ua)
		}
		return next.HandleBuild(ctx, input)
	}), middleware.After)
}
