package checks

import (
	"context"
	"errors"
	"testing"

	"variant-manager/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func emptyListing() <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo)
	close(ch)
	return ch
}

func TestRequiredFolders(t *testing.T) {
	assert.Equal(t, []string{"reports/reconcile"}, RequiredFolders("/reports/reconcile/"))
	assert.Nil(t, RequiredFolders(""))
	assert.Nil(t, RequiredFolders("/"))
}

func TestCheckStructure(t *testing.T) {
	folders := RequiredFolders("reports/reconcile")

	t.Run("Bucket Missing", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "catalog").Return(false, nil)

		_, err := CheckStructure(context.Background(), mockClient, "catalog", folders)
		assert.ErrorIs(t, err, ErrBucketMissing)
	})

	t.Run("Bucket Check Fails", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "catalog").Return(false, errors.New("timeout"))

		_, err := CheckStructure(context.Background(), mockClient, "catalog", folders)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrBucketMissing)
	})

	t.Run("All Missing", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "catalog").Return(true, nil)
		mockClient.On("ListObjects", mock.Anything, "catalog", mock.Anything).Return(emptyListing())

		missing, err := CheckStructure(context.Background(), mockClient, "catalog", folders)
		assert.NoError(t, err)
		assert.Equal(t, folders, missing)
	})

	t.Run("All Present", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "catalog").Return(true, nil)

		ch := make(chan minio.ObjectInfo, 1)
		ch <- minio.ObjectInfo{Key: "reports/reconcile/"}
		close(ch)
		mockClient.On("ListObjects", mock.Anything, "catalog", mock.MatchedBy(func(o minio.ListObjectsOptions) bool {
			return o.Prefix == "reports/reconcile/" && o.MaxKeys == 1
		})).Return((<-chan minio.ObjectInfo)(ch))

		missing, err := CheckStructure(context.Background(), mockClient, "catalog", folders)
		assert.NoError(t, err)
		assert.Empty(t, missing)
	})
}

func TestEnsureBucket(t *testing.T) {
	t.Run("Exists", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "catalog").Return(true, nil)

		require.NoError(t, EnsureBucket(context.Background(), mockClient, "catalog", "", zap.NewNop()))
		mockClient.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Created", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "catalog").Return(false, nil)
		mockClient.On("MakeBucket", mock.Anything, "catalog", minio.MakeBucketOptions{Region: "eu-west-1"}).Return(nil).Once()

		require.NoError(t, EnsureBucket(context.Background(), mockClient, "catalog", "eu-west-1", zap.NewNop()))
		mockClient.AssertExpectations(t)
	})

	t.Run("Create Fails", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "catalog").Return(false, nil)
		mockClient.On("MakeBucket", mock.Anything, "catalog", mock.Anything).Return(errors.New("denied"))

		err := EnsureBucket(context.Background(), mockClient, "catalog", "", zap.NewNop())
		assert.ErrorContains(t, err, "denied")
	})
}

func TestFixStructure(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("PutObject", mock.Anything, "catalog", "reports/reconcile/", mock.Anything, int64(0), mock.Anything).
		Return(minio.UploadInfo{}, nil).Once()
	mockClient.On("PutObject", mock.Anything, "catalog", "broken/", mock.Anything, int64(0), mock.Anything).
		Return(minio.UploadInfo{}, errors.New("denied")).Once()

	require.NoError(t, FixStructure(context.Background(), mockClient, "catalog", zap.NewNop(), []string{"reports/reconcile"}))
	assert.Error(t, FixStructure(context.Background(), mockClient, "catalog", zap.NewNop(), []string{"broken/"}))
	mockClient.AssertExpectations(t)
}
