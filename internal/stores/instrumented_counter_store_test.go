package stores_test

import (
	"context"
	"errors"
	"testing"

	"usage-metrics/internal/models"
	"usage-metrics/internal/stores"
	storemocks "usage-metrics/internal/stores/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestInstrumentedCounterStore_DelegatesCalls(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	next := storemocks.NewMockCounterStore(ctrl)
	store := stores.NewInstrumentedCounterStore(next, stores.DriverMemory)
	ctx := context.Background()

	key := models.BucketKey{Scope: models.ScopeWorkspace, ScopeID: "ws-1", MetricID: "m", Granularity: models.GranularityDaily, Bucket: "2024-01-15"}
	series := key.Series()
	segment := models.RangeSegment{Granularity: models.GranularityDaily}
	readErr := errors.New("read failed")

	next.EXPECT().Increment(ctx, key, int64(4)).Return(nil)
	next.EXPECT().RangeSum(ctx, series, segment).Return(int64(0), readErr)
	next.EXPECT().RangeSum(ctx, series, segment).Return(int64(12), nil)
	next.EXPECT().Close().Return(nil)

	require.NoError(t, store.Increment(ctx, key, 4))

	_, err := store.RangeSum(ctx, series, segment)
	assert.ErrorIs(t, err, readErr)

	sum, err := store.RangeSum(ctx, series, segment)
	require.NoError(t, err)
	assert.Equal(t, int64(12), sum)

	require.NoError(t, store.Close())
}
