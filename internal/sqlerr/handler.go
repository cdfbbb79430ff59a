package sqlerr

import (
	"context"
	"database/sql"
	"errors"

	mssql "github.com/microsoft/go-mssqldb"

	"mssql-bridge/internal/errs"
)

// HandleError converts a database error into an *errs.HTTPError.
//
// Mapping:
//   - connection-class driver errors -> 500 CONNECTION_ERROR
//   - every other driver error       -> 500 QUERY_EXECUTION_ERROR with
//     the driver's message passed through verbatim
//   - context deadline/cancel        -> 500 QUERY_EXECUTION_ERROR
//   - anything else                  -> generic 500
func HandleError(err error) *errs.HTTPError {
	if err == nil {
		return nil
	}

	var driverErr mssql.Error
	if errors.As(err, &driverErr) {
		if Classify(err) == Connection {
			return errs.NewConnectionError(driverErr.Message)
		}
		return errs.NewQueryExecutionError(driverErr.Message)
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errs.NewQueryExecutionError("query timed out")
	}

	if errors.Is(err, sql.ErrConnDone) || errors.Is(err, sql.ErrTxDone) {
		return errs.NewConnectionError("database connection closed")
	}

	return errs.NewInternalServerError()
}
