package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/hdbmap/geoquery/v1/filters"
	"github.com/hdbmap/geoquery/v1/recordsource"
)

// SQLSTATE codes for statements that reference unknown relations or columns.
const (
	codeUndefinedColumn   = "42703"
	codeUndefinedTable    = "42P01"
	codeUndefinedFunction = "42883"
	codeGroupingError     = "42803"
	codeDatatypeMismatch  = "42804"
	codeTooManyConns      = "53300"
	codeCannotConnectNow  = "57P03"
	codeAdminShutdown     = "57P01"
	codeCrashShutdown     = "57P02"
)

// TranslateError maps GORM, pgx and network errors to recordsource and
// filters sentinels. Context cancellation is returned unchanged.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, sql.ErrNoRows):
		return recordsource.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case strings.HasPrefix(pgErr.Code, "08"),
			pgErr.Code == codeTooManyConns,
			pgErr.Code == codeCannotConnectNow,
			pgErr.Code == codeAdminShutdown,
			pgErr.Code == codeCrashShutdown:
			return fmt.Errorf("%w: %v", recordsource.ErrStorageUnavailable, err)
		case pgErr.Code == codeUndefinedColumn,
			pgErr.Code == codeUndefinedTable,
			pgErr.Code == codeUndefinedFunction,
			pgErr.Code == codeGroupingError,
			pgErr.Code == codeDatatypeMismatch:
			return fmt.Errorf("%w: %v", filters.ErrInvalidPipeline, err)
		}
		return err
	}

	var connectErr *pgconn.ConnectError
	var netErr net.Error
	switch {
	case errors.As(err, &connectErr),
		errors.As(err, &netErr),
		pgconn.Timeout(err),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, driver.ErrBadConn),
		errors.Is(err, sql.ErrConnDone):
		return fmt.Errorf("%w: %v", recordsource.ErrStorageUnavailable, err)
	}

	return err
}
