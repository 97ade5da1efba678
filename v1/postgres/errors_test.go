package postgres

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/hdbmap/geoquery/v1/filters"
	"github.com/hdbmap/geoquery/v1/recordsource"
)

func TestTranslateError(t *testing.T) {
	t.Run("Nil", func(t *testing.T) {
		assert.NoError(t, TranslateError(nil))
	})

	t.Run("Canceled", func(t *testing.T) {
		err := fmt.Errorf("query: %w", context.Canceled)
		assert.Same(t, err, TranslateError(err))
	})

	t.Run("RecordNotFound", func(t *testing.T) {
		assert.True(t, recordsource.IsNotFound(TranslateError(gorm.ErrRecordNotFound)))
	})

	t.Run("UndefinedColumn", func(t *testing.T) {
		err := TranslateError(&pgconn.PgError{Code: "42703", Message: `column "Psff" does not exist`})
		assert.True(t, filters.IsInvalidPipeline(err))
	})

	t.Run("ConnectionException", func(t *testing.T) {
		err := TranslateError(&pgconn.PgError{Code: "08006"})
		assert.True(t, recordsource.IsStorageUnavailable(err))
	})

	t.Run("AdminShutdown", func(t *testing.T) {
		err := TranslateError(&pgconn.PgError{Code: "57P01"})
		assert.True(t, recordsource.IsStorageUnavailable(err))
	})

	t.Run("BadConn", func(t *testing.T) {
		assert.True(t, recordsource.IsStorageUnavailable(TranslateError(driver.ErrBadConn)))
	})

	t.Run("DeadlineExceeded", func(t *testing.T) {
		assert.True(t, recordsource.IsStorageUnavailable(TranslateError(context.DeadlineExceeded)))
	})

	t.Run("OtherPgErrorUnchanged", func(t *testing.T) {
		in := &pgconn.PgError{Code: "23505"}
		out := TranslateError(in)
		var pgErr *pgconn.PgError
		assert.True(t, errors.As(out, &pgErr))
		assert.False(t, recordsource.IsStorageUnavailable(out))
	})
}
