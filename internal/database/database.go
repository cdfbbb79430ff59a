// Package database contains the logic for establishing connections
// to SQL Server.
//
// It owns the single process-wide connection pool: the pool is created
// lazily on first use (or eagerly at startup), guarded by a mutex so
// concurrent requests racing to connect cannot open duplicate pools,
// and closed once on shutdown.
//
// It handles:
//   - building a sqlserver DSN from config
//   - creating the database/sql pool with fixed bounds and timeouts
//   - single-flight lazy (re)initialization
//   - executing one query per request and collecting its rows
package database

import (
	"context"
	"database/sql"
	"net"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	// Registers the "sqlserver" driver with database/sql.
	_ "github.com/microsoft/go-mssqldb"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"mssql-bridge/internal/config"
)

// Pool settings are fixed rather than configurable. Timeouts are 30s
// across the board; the pool holds at most 10 connections and reaps
// idle ones after 30s.
const (
	ConnectTimeout  = 30 * time.Second
	RequestTimeout  = 30 * time.Second
	MaxOpenConns    = 10
	MaxIdleConns    = 10
	ConnMaxIdleTime = 30 * time.Second
)

// ConnectionError reports that the pool could not be established.
// It wraps the underlying dial/login failure for logging.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return "could not connect to the database: " + e.Err.Error()
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// Database wraps the shared SQL Server pool and a logger.
//
// The zero pool state is "not connected": the handle is opened on the
// first Acquire (or the eager startup Connect) and replaced only if a
// previous attempt never produced a live pool. database/sql manages
// broken individual connections itself, so an established handle is
// never torn down between requests.
type Database struct {
	cfg *config.Config
	log *zerolog.Logger

	mu        sync.Mutex
	db        *sql.DB
	connected atomic.Bool

	openFn func(dsn string) (*sql.DB, error)
}

// Option customizes Database construction.
type Option func(*Database)

// WithOpenFunc replaces the function used to open the underlying pool
// handle. Used by tests to substitute a mock driver.
func WithOpenFunc(openFn func(dsn string) (*sql.DB, error)) Option {
	return func(d *Database) {
		d.openFn = openFn
	}
}

// New creates a Database. No connection is attempted here; call
// Connect for an eager startup attempt or let Acquire connect lazily.
func New(cfg *config.Config, logger *zerolog.Logger, opts ...Option) *Database {
	d := &Database{
		cfg: cfg,
		log: logger,
		openFn: func(dsn string) (*sql.DB, error) {
			return sql.Open("sqlserver", dsn)
		},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Connect eagerly establishes the pool. Failure leaves the service in
// a degraded state (Connected reports false) rather than exiting; the
// next request retries via Acquire.
func (d *Database) Connect(ctx context.Context) error {
	_, err := d.Acquire(ctx)
	return err
}

// Acquire returns the live pool handle, creating it if no previous
// attempt succeeded. The check-and-create sequence holds a mutex, so
// concurrent requests racing to reconnect perform a single attempt.
func (d *Database) Acquire(ctx context.Context) (*sql.DB, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db != nil && d.connected.Load() {
		return d.db, nil
	}

	if d.db == nil {
		db, err := d.openFn(buildDSN(d.cfg.Database))
		if err != nil {
			return nil, errors.Wrap(err, "open sql server pool")
		}
		db.SetMaxOpenConns(MaxOpenConns)
		db.SetMaxIdleConns(MaxIdleConns)
		db.SetConnMaxIdleTime(ConnMaxIdleTime)
		d.db = db
	}

	pingCtx, cancel := context.WithTimeout(ctx, ConnectTimeout)
	defer cancel()

	if err := d.db.PingContext(pingCtx); err != nil {
		_ = d.db.Close()
		d.db = nil
		return nil, errors.Wrap(err, "ping sql server")
	}

	d.connected.Store(true)
	d.log.Info().
		Str("server", d.cfg.Database.Server).
		Str("database", d.cfg.Database.Name).
		Msg("connected to the database")

	return d.db, nil
}

// Connected reports whether the pool has been established. It is false
// until the first successful connect and false again after Close.
func (d *Database) Connected() bool {
	return d.connected.Load()
}

// Close closes the pool handle if one is open. Safe to call more than
// once.
func (d *Database) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db == nil {
		return nil
	}

	d.log.Info().Msg("closing database connection pool")
	err := d.db.Close()
	d.db = nil
	d.connected.Store(false)
	return err
}

// buildDSN builds a sqlserver URL-style DSN from config.
// The password is escaped by url.UserPassword, so credentials with
// reserved characters cannot break the URL structure.
func buildDSN(cfg config.DatabaseConfig) string {
	u := &url.URL{
		Scheme: "sqlserver",
		User:   url.UserPassword(cfg.Username, cfg.Password),
		Host:   net.JoinHostPort(cfg.Server, strconv.Itoa(cfg.Port)),
	}

	q := url.Values{}
	q.Set("database", cfg.Name)
	q.Set("encrypt", strconv.FormatBool(cfg.Encrypt))
	q.Set("TrustServerCertificate", strconv.FormatBool(cfg.TrustServerCertificate))
	q.Set("dial timeout", strconv.Itoa(int(ConnectTimeout.Seconds())))
	q.Set("connection timeout", strconv.Itoa(int(RequestTimeout.Seconds())))
	u.RawQuery = q.Encode()

	return u.String()
}
