package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/SscSPs/blog_backend/internal/apperrors"
	"github.com/SscSPs/blog_backend/internal/core/domain"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memObjects is an in-memory objectAPI.
type memObjects struct {
	objects map[string]domain.Photo
	failPut bool
}

func (m *memObjects) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if m.failPut {
		return nil, errors.New("connection refused")
	}
	data, _ := io.ReadAll(in.Body)
	m.objects[aws.ToString(in.Key)] = domain.Photo{Data: data, ContentType: aws.ToString(in.ContentType)}
	return &s3.PutObjectOutput{}, nil
}

func (m *memObjects) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	p, ok := m.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(p.Data)), ContentType: aws.String(p.ContentType)}, nil
}

func (m *memObjects) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(m.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3PhotoStore_RoundTrip(t *testing.T) {
	objs := &memObjects{objects: map[string]domain.Photo{}}
	store := &S3PhotoStore{client: objs, bucket: "photos"}
	ctx := context.Background()

	require.NoError(t, store.PutPhoto(ctx, domain.PhotoOwnerBlog, "b1", domain.Photo{Data: []byte{1, 2, 3}, ContentType: "image/png"}))
	assert.Contains(t, objs.objects, "blogs/b1")

	got, err := store.GetPhoto(ctx, domain.PhotoOwnerBlog, "b1")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got.Data)
	assert.Equal(t, "image/png", got.ContentType)

	require.NoError(t, store.DeletePhoto(ctx, domain.PhotoOwnerBlog, "b1"))
	_, err = store.GetPhoto(ctx, domain.PhotoOwnerBlog, "b1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestS3PhotoStore_PutFailureIsUpstream(t *testing.T) {
	store := &S3PhotoStore{client: &memObjects{objects: map[string]domain.Photo{}, failPut: true}, bucket: "photos"}
	err := store.PutPhoto(context.Background(), domain.PhotoOwnerUser, "u1", domain.Photo{Data: []byte{1}})
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
	assert.Equal(t, 502, apperrors.StatusOf(err))
}
