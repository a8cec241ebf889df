// Package storage keeps photo blobs in an S3-compatible bucket.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/SscSPs/blog_backend/internal/apperrors"
	"github.com/SscSPs/blog_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/blog_backend/internal/core/ports/repositories"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Options configure the bucket connection. Endpoint and static keys are for MinIO style deployments.
type Options struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// objectAPI is the part of *s3.Client used here.
type objectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3PhotoStore implements the photo repository on S3.
type S3PhotoStore struct {
	client objectAPI
	bucket string
}

var _ portsrepo.PhotoRepositoryFacade = (*S3PhotoStore)(nil)

func NewS3PhotoStore(ctx context.Context, opts Options) (*S3PhotoStore, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(opts.Region)}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3PhotoStore{client: client, bucket: opts.Bucket}, nil
}

func objectKey(owner domain.PhotoOwner, ownerID string) string {
	return string(owner) + "/" + ownerID
}

func (s *S3PhotoStore) PutPhoto(ctx context.Context, owner domain.PhotoOwner, ownerID string, photo domain.Photo) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(objectKey(owner, ownerID)),
		Body:          bytes.NewReader(photo.Data),
		ContentType:   aws.String(photo.ContentType),
		ContentLength: aws.Int64(int64(len(photo.Data))),
	})
	if err != nil {
		return apperrors.NewBadGatewayError("Photo could not be stored", err)
	}
	return nil
}

func (s *S3PhotoStore) GetPhoto(ctx context.Context, owner domain.PhotoOwner, ownerID string) (*domain.Photo, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey(owner, ownerID)),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, fmt.Errorf("get photo: %w", apperrors.ErrNotFound)
		}
		return nil, apperrors.NewBadGatewayError("Photo could not be loaded", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read photo body: %w", err)
	}
	return &domain.Photo{Data: data, ContentType: aws.ToString(out.ContentType)}, nil
}

func (s *S3PhotoStore) DeletePhoto(ctx context.Context, owner domain.PhotoOwner, ownerID string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey(owner, ownerID)),
	})
	if err != nil {
		return apperrors.NewBadGatewayError("Photo could not be deleted", err)
	}
	return nil
}
