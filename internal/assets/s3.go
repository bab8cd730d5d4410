package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"renonx-go/internal/cms"
)

const defaultS3Region = "us-east-1"

// S3Options configures an S3Bucket. Empty credentials fall back to the AWS
// default credential chain.
type S3Options struct {
	Bucket        string
	Prefix        string
	Region        string
	Endpoint      string
	PublicBaseURL string
	AccessKey     string
	SecretKey     string
}

// S3Bucket stores assets as objects in an S3 (or S3-compatible) bucket.
type S3Bucket struct {
	client   *s3.Client
	uploader *manager.Uploader
	opts     S3Options
}

// NewS3Bucket builds the S3 client. It does not contact the service; use
// ValidateSetup for that.
func NewS3Bucket(ctx context.Context, opts S3Options) (*S3Bucket, error) {
	if opts.Bucket == "" {
		opts.Bucket = cms.AssetBucketName
	}
	if opts.Region == "" {
		opts.Region = defaultS3Region
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(opts.Region)}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Bucket{
		client:   client,
		uploader: manager.NewUploader(client),
		opts:     opts,
	}, nil
}

func (b *S3Bucket) key(name string) string {
	return b.opts.Prefix + name
}

func (b *S3Bucket) Put(ctx context.Context, name string, contentType string, r io.Reader, size int64) error {
	if err := validName(name); err != nil {
		return err
	}
	input := &s3.PutObjectInput{
		Bucket:      aws.String(b.opts.Bucket),
		Key:         aws.String(b.key(name)),
		Body:        r,
		ContentType: aws.String(contentType),
	}
	if size >= 0 {
		input.ContentLength = aws.Int64(size)
	}
	if _, err := b.uploader.Upload(ctx, input); err != nil {
		return fmt.Errorf("uploading %s: %w", name, err)
	}
	return nil
}

func (b *S3Bucket) Get(ctx context.Context, name string, w io.Writer) (string, error) {
	out, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.opts.Bucket),
		Key:    aws.String(b.key(name)),
	})
	if err != nil {
		var missing *types.NoSuchKey
		if errors.As(err, &missing) {
			return "", fmt.Errorf("asset %s: %w", name, cms.ErrNotFound)
		}
		return "", fmt.Errorf("fetching %s: %w", name, err)
	}
	defer out.Body.Close()

	if _, err := io.Copy(w, out.Body); err != nil {
		return "", fmt.Errorf("reading %s: %w", name, err)
	}
	return aws.ToString(out.ContentType), nil
}

// URL returns the public object URL: below PublicBaseURL when set, otherwise
// the virtual-hosted S3 URL.
func (b *S3Bucket) URL(name string) string {
	key := b.key(name)
	escaped := (&url.URL{Path: key}).EscapedPath()
	if b.opts.PublicBaseURL != "" {
		return strings.TrimRight(b.opts.PublicBaseURL, "/") + "/" + escaped
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", b.opts.Bucket, b.opts.Region, escaped)
}

// ValidateSetup checks that the bucket exists and the credentials can reach it.
func (b *S3Bucket) ValidateSetup(ctx context.Context) error {
	if _, err := b.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(b.opts.Bucket)}); err != nil {
		return fmt.Errorf("bucket %s not accessible: %w", b.opts.Bucket, err)
	}
	return nil
}

var _ cms.AssetBucket = (*S3Bucket)(nil)
