package recordsource

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hdbmap/geoquery/v1/filters"
)

func TestWrap(t *testing.T) {
	assert.NoError(t, Wrap(OpFindOne, "cleanedResale", nil))

	err := Wrap(OpFindMany, "cleanedResale", fmt.Errorf("%w: connection refused", ErrStorageUnavailable))
	require.Error(t, err)
	assert.True(t, IsStorageUnavailable(err))
	assert.True(t, IsRetryable(err))
	assert.False(t, IsNotFound(err))
	assert.Equal(t, `find_many on "cleanedResale": recordsource: storage unavailable: connection refused`, err.Error())

	var oe *OperationError
	require.True(t, errors.As(err, &oe))
	assert.Equal(t, OpFindMany, oe.Op)
	assert.Equal(t, "cleanedResale", oe.Collection)
}

func TestWrap_DoesNotDoubleWrap(t *testing.T) {
	inner := Wrap(OpAggregate, "listingsData", filters.ErrInvalidPipeline)
	outer := Wrap(OpAggregate, "listingsData", inner)

	assert.Same(t, inner, outer)
	assert.True(t, filters.IsInvalidPipeline(outer))
	assert.False(t, IsRetryable(outer))
}
