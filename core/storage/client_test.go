package storage_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"variant-manager/core/storage"
	"variant-manager/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name string
		cfg  storage.Config
	}{
		{"ValidConfig", storage.Config{Endpoint: "localhost:9000", AccessKey: "k", SecretKey: "s", Bucket: "catalog", Region: "us-east-1"}},
		{"EndpointWithHTTP", storage.Config{Endpoint: "http://localhost:9000", AccessKey: "k", SecretKey: "s"}},
		{"EndpointWithHTTPS", storage.Config{Endpoint: "https://s3.amazonaws.com", AccessKey: "k", SecretKey: "s", UseSSL: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := storage.NewClient(tt.cfg)
			assert.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}

func TestPutBytes(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, "catalog", "reports/a.json", mock.Anything, int64(2),
		mock.MatchedBy(func(o minio.PutObjectOptions) bool { return o.ContentType == "application/json" }),
	).Return(minio.UploadInfo{}, nil).Once()
	client.On("PutObject", mock.Anything, "catalog", "reports/b.json", mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("denied")).Once()

	require.NoError(t, storage.PutBytes(ctx, client, "catalog", "reports/a.json", []byte("{}"), "application/json"))
	assert.ErrorContains(t, storage.PutBytes(ctx, client, "catalog", "reports/b.json", []byte("{}"), "application/json"), "denied")
	client.AssertExpectations(t)
}

func TestReadAll(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "catalog", "reports/a.json", mock.Anything).
		Return(io.NopCloser(strings.NewReader(`{"ok":true}`)), nil)

	data, err := storage.ReadAll(context.Background(), client, "catalog", "reports/a.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(data))
}
