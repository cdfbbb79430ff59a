package handler_test

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	mssql "github.com/microsoft/go-mssqldb"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mssql-bridge/internal/config"
	"mssql-bridge/internal/database"
	"mssql-bridge/internal/router"
	"mssql-bridge/internal/server"
)

type testBridge struct {
	echo  *echo.Echo
	mock  sqlmock.Sqlmock
	opens *int
}

// newTestBridge wires the full router against a sqlmock-backed pool.
// opens counts pool creations, so tests can assert the pool was never
// touched.
func newTestBridge(t *testing.T, env string) *testBridge {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	cfg := &config.Config{
		Env:    env,
		Server: config.ServerConfig{Port: "3000"},
		Database: config.DatabaseConfig{
			Server:   "db.example.com",
			Name:     "appdb",
			Username: "bridge",
			Password: "s3cret",
			Port:     1433,
		},
	}

	logger := zerolog.Nop()
	opens := 0
	db := database.New(cfg, &logger, database.WithOpenFunc(func(dsn string) (*sql.DB, error) {
		opens++
		return mockDB, nil
	}))

	srv := &server.Server{Config: cfg, Logger: &logger, DB: db}

	return &testBridge{
		echo:  router.New(srv),
		mock:  mock,
		opens: &opens,
	}
}

func (b *testBridge) request(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	b.echo.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestExecuteSelectOne(t *testing.T) {
	bridge := newTestBridge(t, "development")
	bridge.mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 AS x")).
		WillReturnRows(sqlmock.NewRows([]string{"x"}).AddRow(int64(1)))

	rec := bridge.request(http.MethodPost, "/", `{"query": "SELECT 1 AS x"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"x": 1}]`, rec.Body.String())
	assert.NoError(t, bridge.mock.ExpectationsWereMet())
}

func TestExecuteEmptyResultSet(t *testing.T) {
	bridge := newTestBridge(t, "development")
	bridge.mock.ExpectQuery("SELECT").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	rec := bridge.request(http.MethodPost, "/", `{"query": "SELECT id FROM users WHERE 1 = 0"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestExecuteNamedParameters(t *testing.T) {
	bridge := newTestBridge(t, "development")
	bridge.mock.ExpectQuery(regexp.QuoteMeta("SELECT name FROM users WHERE id = @id")).
		WithArgs(sql.Named("id", int64(5))).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("ada"))

	rec := bridge.request(http.MethodPost, "/",
		`{"query": "SELECT name FROM users WHERE id = @id", "parameters": {"id": 5}}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"name": "ada"}]`, rec.Body.String())
	assert.NoError(t, bridge.mock.ExpectationsWereMet())
}

func TestExecuteMissingQueryDoesNotTouchPool(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "no query field", body: `{}`},
		{name: "empty query", body: `{"query": ""}`},
		{name: "whitespace query", body: `{"query": "   "}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bridge := newTestBridge(t, "development")

			rec := bridge.request(http.MethodPost, "/", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, "query is required", body["error"])
			assert.Equal(t, "BAD_REQUEST", body["code"])
			assert.Equal(t, 0, *bridge.opens)
		})
	}
}

func TestExecuteNonScalarParameterRejected(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "array value", body: `{"query": "SELECT 1", "parameters": {"ids": [1, 2]}}`},
		{name: "object value", body: `{"query": "SELECT 1", "parameters": {"filter": {"a": 1}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bridge := newTestBridge(t, "development")

			rec := bridge.request(http.MethodPost, "/", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			body := decodeBody(t, rec)
			assert.Contains(t, body["error"], "scalar")
			assert.Equal(t, 0, *bridge.opens)
		})
	}
}

func TestExecuteMalformedJSON(t *testing.T) {
	bridge := newTestBridge(t, "development")

	rec := bridge.request(http.MethodPost, "/", `{"query": `)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "invalid JSON body", body["error"])
	assert.Equal(t, 0, *bridge.opens)
}

func TestExecuteDriverError(t *testing.T) {
	driverErr := mssql.Error{Number: 208, Message: "Invalid object name 'missing'."}

	t.Run("development exposes details", func(t *testing.T) {
		bridge := newTestBridge(t, "development")
		bridge.mock.ExpectQuery("SELECT").WillReturnError(driverErr)

		rec := bridge.request(http.MethodPost, "/", `{"query": "SELECT x FROM missing"}`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "Invalid object name 'missing'.", body["error"])
		assert.Equal(t, "QUERY_EXECUTION_ERROR", body["code"])
		assert.NotEmpty(t, body["details"])
	})

	t.Run("production hides details", func(t *testing.T) {
		bridge := newTestBridge(t, "production")
		bridge.mock.ExpectQuery("SELECT").WillReturnError(driverErr)

		rec := bridge.request(http.MethodPost, "/", `{"query": "SELECT x FROM missing"}`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "Invalid object name 'missing'.", body["error"])
		assert.NotContains(t, body, "details")
	})
}

func TestExecutePoolFailure(t *testing.T) {
	cfg := &config.Config{
		Env:      "production",
		Server:   config.ServerConfig{Port: "3000"},
		Database: config.DatabaseConfig{Server: "db", Name: "appdb", Username: "u", Password: "p", Port: 1433},
	}
	logger := zerolog.Nop()
	db := database.New(cfg, &logger, database.WithOpenFunc(func(dsn string) (*sql.DB, error) {
		return nil, errors.New("dial tcp: connection refused")
	}))
	srv := &server.Server{Config: cfg, Logger: &logger, DB: db}
	e := router.New(srv)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"query": "SELECT 1"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "CONNECTION_ERROR", body["code"])
	assert.Contains(t, body["error"], "could not connect")
}

func TestUnknownRoute(t *testing.T) {
	bridge := newTestBridge(t, "development")

	rec := bridge.request(http.MethodGet, "/nope", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "NOT_FOUND", body["code"])
}

func TestRequestIDEchoedOnResponse(t *testing.T) {
	bridge := newTestBridge(t, "development")

	rec := bridge.request(http.MethodGet, "/health", "")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec = httptest.NewRecorder()
	bridge.echo.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}
