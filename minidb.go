package minidb

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/thisizaro/MiniDB/internal/minidb"
	"github.com/thisizaro/MiniDB/internal/parser"
	"github.com/thisizaro/MiniDB/internal/pkg/logging"
)

// Version of the database engine.
const Version = "1.0.0"

type config struct {
	logger       *zap.Logger
	poolCapacity int
	pageSize     int
}

// Option configures a DB returned by Open.
type Option func(*config)

// WithLogger sets the logger used by the engine. Without it a production
// logger at warn level is built.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithPoolCapacity sets the maximum number of pages the buffer pool holds.
func WithPoolCapacity(capacity int) Option {
	return func(c *config) {
		c.poolCapacity = capacity
	}
}

// WithPageSize sets the size in bytes of each page in the buffer pool.
func WithPageSize(size int) Option {
	return func(c *config) {
		c.pageSize = size
	}
}

// DB is a handle to an in-memory database instance.
type DB struct {
	db     *minidb.Database
	logger *zap.Logger
	mu     sync.Mutex
	closed bool
}

// Open creates a new in-memory database with the given name.
func Open(name string, opts ...Option) (*DB, error) {
	c := &config{
		poolCapacity: minidb.DefaultPoolCapacity,
		pageSize:     minidb.DefaultPageSize,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		logConf := logging.DefaultConfig()
		logConf.Level.SetLevel(zap.WarnLevel)
		logger, err := logConf.Build()
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
		c.logger = logger
	}

	db, err := minidb.NewDatabase(
		c.logger,
		name,
		parser.New(),
		minidb.WithBufferPool(c.pageSize, c.poolCapacity),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &DB{
		db:     db,
		logger: c.logger,
	}, nil
}

// Result holds the outcome of an executed statement.
type Result struct {
	Columns      []string
	Rows         [][]any
	RowsAffected int
}

// Exec parses and executes a single SQL statement.
func (d *DB) Exec(ctx context.Context, query string) (Result, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return Result{}, fmt.Errorf("database is closed")
	}

	result, err := d.db.Execute(ctx, query)
	if err != nil {
		return Result{}, err
	}

	return convertResult(result), nil
}

// ListTableNames returns names of all tables in the database, sorted.
func (d *DB) ListTableNames() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.db.ListTableNames()
}

// PoolStats returns a snapshot of buffer pool statistics.
func (d *DB) PoolStats() minidb.BufferPoolStats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.db.BufferPool().Stats()
}

// Close releases all resources held by the database.
func (d *DB) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true

	return d.db.Close()
}

func convertResult(result minidb.StatementResult) Result {
	rows := make([][]any, 0, len(result.Rows))
	for _, aRow := range result.Rows {
		values := make([]any, 0, len(aRow.Values))
		for _, aValue := range aRow.Values {
			values = append(values, valueToAny(aValue))
		}
		rows = append(rows, values)
	}
	return Result{
		Columns:      result.Columns,
		Rows:         rows,
		RowsAffected: result.RowsAffected,
	}
}

func valueToAny(v minidb.Value) any {
	switch v.Kind {
	case minidb.Integer:
		n, _ := v.Int()
		return n
	case minidb.Text:
		s, _ := v.Text()
		return s
	case minidb.Real:
		f, _ := v.Real()
		return f
	case minidb.Blob:
		b, _ := v.Bytes()
		return b
	default:
		return nil
	}
}
