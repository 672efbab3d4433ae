package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (f *fakePutter) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.input = params
	b, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.body = string(b)
	return &s3.PutObjectOutput{ETag: aws.String(`"abc123"`)}, nil
}

func TestGetPublicURL(t *testing.T) {
	tests := []struct {
		base, key, want string
	}{
		{"https://cdn.example.com", "snapshots/bracket.json", "https://cdn.example.com/snapshots/bracket.json"},
		{"https://cdn.example.com/", "/snapshots/bracket.json", "https://cdn.example.com/snapshots/bracket.json"},
		{"https://cdn.example.com/predictor", "leaderboard.json", "https://cdn.example.com/predictor/leaderboard.json"},
		{"", "leaderboard.json", ""},
		{"https://cdn.example.com", "", ""},
	}
	for _, tt := range tests {
		u := &cloudflareR2Uploader{publicBaseURL: tt.base}
		assert.Equal(t, tt.want, u.GetPublicURL(tt.key), "base %q key %q", tt.base, tt.key)
	}
}

func TestUpload(t *testing.T) {
	putter := &fakePutter{}
	u := &cloudflareR2Uploader{client: putter, bucketName: "predictor", publicBaseURL: "https://cdn.example.com"}

	res, err := u.Upload(context.Background(), "snapshots/standings.json", "application/json", strings.NewReader(`{"A":[]}`))
	require.NoError(t, err)

	assert.Equal(t, "abc123", res.ETag)
	assert.Equal(t, "https://cdn.example.com/snapshots/standings.json", res.Location)
	assert.Equal(t, "predictor", aws.ToString(putter.input.Bucket))
	assert.Equal(t, "application/json", aws.ToString(putter.input.ContentType))
	assert.Equal(t, `{"A":[]}`, putter.body)

	putter.err = errors.New("boom")
	_, err = u.Upload(context.Background(), "k", "application/json", strings.NewReader("{}"))
	assert.ErrorContains(t, err, "boom")
}

func TestNewCloudflareR2UploaderRequiresAllFields(t *testing.T) {
	_, err := NewCloudflareR2Uploader(context.Background(), CloudflareR2UploaderConfig{AccountID: "acc"})
	assert.Error(t, err)
}
