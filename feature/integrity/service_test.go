package integrity

import (
	"context"
	"errors"
	"testing"

	"variant-manager/core/storage/mocks"
	"variant-manager/feature/catalog/catalogtest"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testConfig = Config{Bucket: "catalog", Region: "us-east-1", ReportPrefix: "reports/reconcile"}

func emptyListing() <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo)
	close(ch)
	return ch
}

func TestService_Structure(t *testing.T) {
	ctx := context.Background()

	t.Run("CheckStructure", func(t *testing.T) {
		mockClient := new(mocks.Client)
		svc := NewService(mockClient, testConfig, zap.NewNop(), nil)
		mockClient.On("BucketExists", mock.Anything, "catalog").Return(true, nil)
		mockClient.On("ListObjects", mock.Anything, "catalog", mock.Anything).Return(emptyListing())

		missing, err := svc.CheckStructure(ctx)
		assert.NoError(t, err)
		assert.Equal(t, []string{"reports/reconcile"}, missing)
	})

	t.Run("FixStructure", func(t *testing.T) {
		mockClient := new(mocks.Client)
		svc := NewService(mockClient, testConfig, zap.NewNop(), nil)
		mockClient.On("BucketExists", mock.Anything, "catalog").Return(true, nil)
		mockClient.On("PutObject", mock.Anything, "catalog", "reports/reconcile/", mock.Anything, int64(0), mock.Anything).
			Return(minio.UploadInfo{}, nil).Once()

		assert.NoError(t, svc.FixStructure(ctx, []string{"reports/reconcile"}))
		mockClient.AssertExpectations(t)
	})

	t.Run("RepairCreatesBucket", func(t *testing.T) {
		mockClient := new(mocks.Client)
		svc := NewService(mockClient, testConfig, zap.NewNop(), nil)
		mockClient.On("BucketExists", mock.Anything, "catalog").Return(false, nil)
		mockClient.On("MakeBucket", mock.Anything, "catalog", minio.MakeBucketOptions{Region: "us-east-1"}).Return(nil).Once()
		mockClient.On("PutObject", mock.Anything, "catalog", "reports/reconcile/", mock.Anything, int64(0), mock.Anything).
			Return(minio.UploadInfo{}, nil).Once()

		fixed, err := svc.RepairStructure(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"reports/reconcile"}, fixed)
		mockClient.AssertExpectations(t)
	})

	t.Run("RepairNothingMissing", func(t *testing.T) {
		mockClient := new(mocks.Client)
		svc := NewService(mockClient, testConfig, zap.NewNop(), nil)
		ch := make(chan minio.ObjectInfo, 1)
		ch <- minio.ObjectInfo{Key: "reports/reconcile/"}
		close(ch)
		mockClient.On("BucketExists", mock.Anything, "catalog").Return(true, nil)
		mockClient.On("ListObjects", mock.Anything, "catalog", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

		fixed, err := svc.RepairStructure(ctx)
		require.NoError(t, err)
		assert.Empty(t, fixed)
		mockClient.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("RepairPropagatesErrors", func(t *testing.T) {
		mockClient := new(mocks.Client)
		svc := NewService(mockClient, testConfig, zap.NewNop(), nil)
		mockClient.On("BucketExists", mock.Anything, "catalog").Return(false, errors.New("unreachable"))

		_, err := svc.RepairStructure(ctx)
		assert.ErrorContains(t, err, "unreachable")
	})

	t.Run("StorageDisabled", func(t *testing.T) {
		svc := NewService(nil, testConfig, zap.NewNop(), nil)

		_, err := svc.CheckStructure(ctx)
		assert.ErrorIs(t, err, ErrStorageDisabled)
		assert.ErrorIs(t, svc.FixStructure(ctx, []string{"reports"}), ErrStorageDisabled)
	})
}

func TestService_Database(t *testing.T) {
	db := catalogtest.Open(t)
	catalogtest.Seed(t, db)
	svc := NewService(nil, testConfig, zap.NewNop(), db)

	schema, err := svc.CheckSchema()
	require.NoError(t, err)
	assert.True(t, schema.Matched)

	master, err := svc.CheckMasterData(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", master.Status)
}
