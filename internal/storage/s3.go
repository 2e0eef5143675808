package storage

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/JojoFlex1/done/internal/config"
	"github.com/JojoFlex1/done/internal/util"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
)

// PutObjectAPI is the part of the S3 client the store needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store uploads photos to an S3 compatible bucket.
type S3Store struct {
	client        PutObjectAPI
	bucket        string
	publicBaseURL string
	maxSize       int64
}

func NewS3Store(ctx context.Context, cfg config.Storage) (*S3Store, error) {
	if len(cfg.S3.Bucket) == 0 {
		return nil, errors.New("S3_BUCKET is required for the s3 storage driver")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3.Region),
	}
	if len(cfg.S3.AccessKeyID) > 0 {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3.AccessKeyID, cfg.S3.SecretAccessKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load aws config")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if len(cfg.S3.Endpoint) > 0 {
			o.BaseEndpoint = aws.String(cfg.S3.Endpoint)
		}
		o.UsePathStyle = cfg.S3.UsePathStyle
	})

	return NewS3StoreWithClient(client, cfg.S3.Bucket, cfg.S3.PublicBaseURL, cfg.MaxFileSize), nil
}

func NewS3StoreWithClient(client PutObjectAPI, bucket string, publicBaseURL string, maxSize int64) *S3Store {
	return &S3Store{
		client:        client,
		bucket:        bucket,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
		maxSize:       maxSize,
	}
}

func (s *S3Store) Save(ctx context.Context, userID string, r io.Reader) (string, error) {
	photo, err := ReadPhoto(r, s.maxSize)
	if err != nil {
		return "", err
	}

	key := "waste/" + userID + "/" + objectName(time.Now(), photo.Extension)

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          photo.Reader(),
		ContentType:   aws.String(photo.MediaType),
		ContentLength: aws.Int64(int64(len(photo.Data))),
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to upload photo")
	}

	util.LogFromContext(ctx).Debug().Str("user_id", userID).Str("key", key).Msg("Uploaded photo")

	if len(s.publicBaseURL) > 0 {
		return s.publicBaseURL + "/" + key, nil
	}

	return "s3://" + s.bucket + "/" + key, nil
}
