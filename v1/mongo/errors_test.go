package mongo

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hdbmap/geoquery/v1/filters"
	"github.com/hdbmap/geoquery/v1/recordsource"
)

func TestTranslateError(t *testing.T) {
	assert.NoError(t, TranslateError(nil))

	assert.ErrorIs(t, TranslateError(mongo.ErrNoDocuments), recordsource.ErrNotFound)
	assert.ErrorIs(t, TranslateError(mongo.ErrClientDisconnected), recordsource.ErrStorageUnavailable)
	assert.ErrorIs(t, TranslateError(context.DeadlineExceeded), recordsource.ErrStorageUnavailable)
	assert.ErrorIs(t, TranslateError(context.Canceled), context.Canceled)
	assert.False(t, recordsource.IsStorageUnavailable(TranslateError(context.Canceled)))

	cmdErr := mongo.CommandError{Code: 40324, Message: "Unrecognized pipeline stage name: '$bogus'"}
	assert.ErrorIs(t, TranslateError(cmdErr), filters.ErrInvalidPipeline)

	other := errors.New("something else")
	assert.Same(t, other, TranslateError(other))
}
