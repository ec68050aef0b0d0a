package recordstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	appconfig "github.com/Shamanth-8/drones/internal/config"
	"github.com/Shamanth-8/drones/internal/models/entities"
)

// objectClient is the subset of *s3.Client the backend uses.
type objectClient interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Backend stores each table as one JSON object under prefix.
type S3Backend struct {
	client objectClient
	bucket string
	prefix string
}

// NewS3Backend builds an S3 client from static keys when configured,
// otherwise from the default credential chain.
// An endpoint enables S3-compatible stores such as MinIO.
func NewS3Backend(ctx context.Context, cfg appconfig.S3Config) (*S3Backend, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return newS3Backend(client, cfg.Bucket, cfg.Prefix), nil
}

func newS3Backend(client objectClient, bucket, prefix string) *S3Backend {
	return &S3Backend{client: client, bucket: bucket, prefix: prefix}
}

func (b *S3Backend) Name() string { return "s3" }

func (b *S3Backend) key(table string) string {
	return path.Join(b.prefix, table+".json")
}

func (b *S3Backend) Load(ctx context.Context, table string) (entities.Table, error) {
	out, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(b.key(table)),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return entities.Table{Name: table}, nil
		}
		return entities.Table{}, err
	}
	defer out.Body.Close()

	var t entities.Table
	if err := json.NewDecoder(out.Body).Decode(&t); err != nil {
		return entities.Table{}, fmt.Errorf("decode %s: %w", b.key(table), err)
	}
	t.Name = table
	return t, nil
}

func (b *S3Backend) Save(ctx context.Context, table entities.Table, _ int64) error {
	data, err := json.Marshal(table)
	if err != nil {
		return err
	}
	_, err = b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(b.key(table.Name)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	return err
}
