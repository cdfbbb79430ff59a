package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Query executes one ad hoc statement against the shared pool and
// returns the rows of its first result set.
//
// The pool is acquired (and lazily created) first; a failure there is
// reported as a *ConnectionError so the HTTP layer can distinguish it
// from a statement failure. Execution is bounded by RequestTimeout.
func (d *Database) Query(ctx context.Context, query string, args ...any) ([]map[string]any, error) {
	db, err := d.Acquire(ctx)
	if err != nil {
		return nil, &ConnectionError{Err: err}
	}

	queryCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	start := time.Now()
	rows, err := db.QueryContext(queryCtx, query, args...)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer rows.Close()

	out, err := collectRows(rows)
	if err != nil {
		return nil, err
	}

	// Request-scoped logger attached by the HTTP layer; a disabled
	// logger outside of requests.
	zerolog.Ctx(ctx).Debug().
		Dur("duration", time.Since(start)).
		Int("rows", len(out)).
		Msg("query executed")

	return out, nil
}

// collectRows scans every row into a column-name -> value map.
//
// []byte values are normalized to string so they serialize as JSON
// strings instead of base64. The result is never nil: an empty result
// set yields an empty slice, which serializes as [].
func collectRows(rows *sql.Rows) ([]map[string]any, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	out := make([]map[string]any, 0)
	for rows.Next() {
		values := make([]any, len(cols))
		scanArgs := make([]any, len(cols))
		for i := range values {
			scanArgs[i] = &values[i]
		}

		if err := rows.Scan(scanArgs...); err != nil {
			return nil, errors.WithStack(err)
		}

		row := make(map[string]any, len(cols))
		for i, col := range cols {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
				continue
			}
			row[col] = values[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	return out, nil
}
