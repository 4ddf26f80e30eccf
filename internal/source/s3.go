package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"tea-backend/internal/config"
	"tea-backend/internal/models"
)

// ObjectGetter is the part of the S3 client the source needs.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads batches from <prefix>/<fileName>.json or .xlsx in a bucket.
// Works with any S3 compatible store, R2 included.
type S3Source struct {
	Client ObjectGetter
	Bucket string
	Prefix string
}

// NewS3 builds a client from the s3 config section. Static keys are used when
// set, otherwise the default AWS credential chain.
func NewS3(ctx context.Context, cfg *config.Config) (*S3Source, error) {
	if cfg.S3.Bucket == "" {
		return nil, errors.New("s3 source needs s3.bucket")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3.Region),
	}
	if cfg.S3.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3.AccessKey,
			cfg.S3.SecretKey,
			"",
		)))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to configure s3 client: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Source{Client: client, Bucket: cfg.S3.Bucket, Prefix: cfg.S3.Prefix}, nil
}

func (s *S3Source) Describe() string {
	return fmt.Sprintf("s3://%s/%s", s.Bucket, s.Prefix)
}

func (s *S3Source) Open(ctx context.Context, kind models.EntityKind) ([]json.RawMessage, error) {
	for _, ext := range []string{ExtJSON, ExtXLSX} {
		key := path.Join(s.Prefix, kind.FileName()+ext)
		result, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(s.Bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			var noKey *types.NoSuchKey
			if errors.As(err, &noKey) {
				continue
			}
			return nil, fmt.Errorf("failed to fetch %s: %w", key, err)
		}

		data, err := io.ReadAll(result.Body)
		result.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", key, err)
		}

		records, err := decode(kind, ext, data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		return records, nil
	}
	return nil, ErrNotFound
}
