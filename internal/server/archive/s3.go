package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/learningjournal/internal/server/models"
	"github.com/google/uuid"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}
)

// S3Config describes the target bucket. Credentials are static, which suits
// MinIO as well as AWS.
type S3Config struct {
	Bucket       string
	Region       string
	BaseEndpoint string
	RootUser     string
	RootPassword string
}

type S3Archiver struct {
	client *s3.Client
	bucket string
	now    func() time.Time
}

func NewS3Archiver(ctx context.Context, cfg S3Config) (*S3Archiver, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.RootUser,
			cfg.RootPassword,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Archiver{client: client, bucket: cfg.Bucket, now: time.Now}, nil
}

// ObjectKey is where an entry deleted at t is stored.
func ObjectKey(slug string, t time.Time) string {
	return fmt.Sprintf("entries/%04d/%02d/%02d/%s-%s.json", t.Year(), t.Month(), t.Day(), slug, uuid.NewString())
}

func (a *S3Archiver) Archive(ctx context.Context, entry *models.Entry) error {
	body, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("encode entry %q: %w", entry.Slug, err)
	}

	key := ObjectKey(entry.Slug, a.now().UTC())
	_, err = putObject(a.client, ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("archive entry %q: %w", entry.Slug, err)
	}
	return nil
}
