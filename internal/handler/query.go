package handler

import (
	"database/sql"
	"net/http"
	"sort"
	"strings"

	"github.com/labstack/echo/v4"

	"mssql-bridge/internal/errs"
	"mssql-bridge/internal/scalar"
	"mssql-bridge/internal/server"
	"mssql-bridge/internal/validation"
)

// QueryRequest is the payload of POST /.
//
// Parameters are bound by name into the query via the driver; the
// bridge itself performs no SQL construction or escaping.
type QueryRequest struct {
	Query      string                  `json:"query" validate:"required"`
	Parameters map[string]scalar.Value `json:"parameters"`
}

// Validate enforces that the query field is present and non-empty.
// Parameter values are already constrained to scalars at decode time
// by scalar.Value.
func (r *QueryRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}
	if strings.TrimSpace(r.Query) == "" {
		return errs.NewBadRequestError("query is required")
	}
	return nil
}

// QueryHandler executes one ad hoc query per POST to the root path.
type QueryHandler struct {
	Handler
}

// NewQueryHandler constructs a QueryHandler with access to shared app
// dependencies.
func NewQueryHandler(s *server.Server) *QueryHandler {
	return &QueryHandler{
		Handler: NewHandler(s),
	}
}

// Execute runs the posted query against the shared pool and responds
// with the resulting rows as a bare JSON array.
//
// Validation failures respond 400 before the pool is touched. Pool and
// driver failures propagate to the global error handler, which maps
// them to 500 responses.
func (h *QueryHandler) Execute(c echo.Context) error {
	req := new(QueryRequest)
	if err := validation.BindAndValidate(c, req); err != nil {
		return err
	}

	rows, err := h.server.DB.Query(c.Request().Context(), req.Query, buildNamedArgs(req.Parameters)...)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, rows)
}

// buildNamedArgs converts the parameter map into driver named args.
// A leading "@" on a name is tolerated and stripped, since the query
// text references parameters as @name. Keys are sorted so argument
// order is deterministic.
func buildNamedArgs(params map[string]scalar.Value) []any {
	if len(params) == 0 {
		return nil
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]any, 0, len(keys))
	for _, key := range keys {
		name := strings.TrimPrefix(key, "@")
		args = append(args, sql.Named(name, params[key].Driver()))
	}
	return args
}
