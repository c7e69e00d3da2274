package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const defaultPresignTTL = 15 * time.Minute

// S3LogoResolverConfig описывает S3-совместимый бакет (R2, MinIO, AWS) с логотипами команд.
type S3LogoResolverConfig struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicBaseURL   string
	PresignTTL      time.Duration
}

type s3LogoResolver struct {
	presigner  *s3.PresignClient
	bucketName string
	publicBase *url.URL
	ttl        time.Duration
}

// NewS3LogoResolver отдаёт публичные URL, если задан PublicBaseURL,
// иначе подписанные GET-ссылки на объект.
func NewS3LogoResolver(ctx context.Context, cfg S3LogoResolverConfig) (LogoResolver, error) {
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" || cfg.BucketName == "" {
		return nil, errors.New("invalid storage configuration: access key, secret key and bucket are required")
	}

	region := cfg.Region
	if region == "" {
		region = "auto" // R2
	}

	sdkCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
		config.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config: %w", err)
	}

	client := s3.NewFromConfig(sdkCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	resolver := &s3LogoResolver{
		presigner:  s3.NewPresignClient(client),
		bucketName: cfg.BucketName,
		ttl:        cfg.PresignTTL,
	}
	if resolver.ttl <= 0 {
		resolver.ttl = defaultPresignTTL
	}
	if cfg.PublicBaseURL != "" {
		base, err := parseBaseURL(cfg.PublicBaseURL)
		if err != nil {
			return nil, err
		}
		resolver.publicBase = base
	}
	return resolver, nil
}

func (r *s3LogoResolver) LogoURL(ctx context.Context, key string) (string, error) {
	if r.publicBase != nil {
		return joinPublicURL(r.publicBase, key)
	}

	key = strings.TrimLeft(key, "/")
	if key == "" {
		return "", ErrEmptyKey
	}
	req, err := r.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucketName),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(r.ttl))
	if err != nil {
		return "", fmt.Errorf("failed to presign object (key: %s): %w", key, err)
	}
	return req.URL, nil
}
