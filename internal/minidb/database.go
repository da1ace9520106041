package minidb

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
)

var (
	errTableDoesNotExist  = fmt.Errorf("table does not exist")
	errTableAlreadyExists = fmt.Errorf("table already exists")
)

type Parser interface {
	Parse(context.Context, string) ([]Statement, error)
}

// Database is the engine instance. It owns the buffer pool and all
// tables; a table owns its rows and indexes. Single call chain, no
// concurrent mutation is supported.
type Database struct {
	name      string
	parser    Parser
	pool      *BufferPool
	tables    map[string]*Table
	stmtCache *statementCache
	logger    *zap.Logger
}

type DatabaseOption func(*Database) error

func WithBufferPool(pageSize, capacity int) DatabaseOption {
	return func(d *Database) error {
		d.pool = NewBufferPool(d.logger, pageSize, capacity)
		return nil
	}
}

func WithStatementCacheSize(maxEntries int64) DatabaseOption {
	return func(d *Database) error {
		cache, err := newStatementCache(maxEntries)
		if err != nil {
			return err
		}
		d.stmtCache.close()
		d.stmtCache = cache
		return nil
	}
}

func NewDatabase(logger *zap.Logger, name string, aParser Parser, opts ...DatabaseOption) (*Database, error) {
	stmtCache, err := newStatementCache(DefaultMaxCachedStatements)
	if err != nil {
		return nil, err
	}

	db := &Database{
		name:      name,
		parser:    aParser,
		tables:    make(map[string]*Table),
		stmtCache: stmtCache,
		logger:    logger,
	}
	db.pool = NewBufferPool(logger, DefaultPageSize, DefaultPoolCapacity)

	for _, opt := range opts {
		if err := opt(db); err != nil {
			return nil, err
		}
	}

	return db, nil
}

func (d *Database) Name() string {
	return d.name
}

// BufferPool exposes the page-backed storage resource manager. Row data
// is not routed through page storage, the pool is a standalone resource
// manager for storage layers built above it.
func (d *Database) BufferPool() *BufferPool {
	return d.pool
}

func (d *Database) Close() error {
	d.pool.Close()
	d.stmtCache.close()
	return nil
}

func (d *Database) CreateTable(name string, columns []Column) (*Table, error) {
	if _, ok := d.tables[name]; ok {
		return nil, fmt.Errorf("'%s': %w", name, errTableAlreadyExists)
	}

	schema, err := NewSchema(columns...)
	if err != nil {
		return nil, err
	}

	aTable := NewTable(d.logger, name, schema)
	d.tables[name] = aTable

	d.logger.Sugar().With(
		"table", name,
		"columns", schema.ColumnCount(),
	).Debug("created table")

	return aTable, nil
}

func (d *Database) DropTable(name string) error {
	if _, ok := d.tables[name]; !ok {
		return fmt.Errorf("'%s': %w", name, errTableDoesNotExist)
	}
	delete(d.tables, name)
	return nil
}

func (d *Database) Table(name string) (*Table, bool) {
	aTable, ok := d.tables[name]
	return aTable, ok
}

func (d *Database) ListTableNames() []string {
	names := make([]string, 0, len(d.tables))
	for name := range d.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PrepareStatement parses a single SQL statement, consulting the parsed
// statement cache first.
func (d *Database) PrepareStatement(ctx context.Context, sql string) (Statement, error) {
	if stmt, ok := d.stmtCache.get(sql); ok {
		return stmt, nil
	}

	statements, err := d.parser.Parse(ctx, sql)
	if err != nil {
		return Statement{}, err
	}
	if len(statements) != 1 {
		return Statement{}, fmt.Errorf("expected exactly 1 statement, got %d", len(statements))
	}

	d.stmtCache.put(sql, statements[0])

	return statements[0], nil
}

// Execute parses and executes a single SQL statement.
func (d *Database) Execute(ctx context.Context, sql string) (StatementResult, error) {
	stmt, err := d.PrepareStatement(ctx, sql)
	if err != nil {
		return StatementResult{}, err
	}
	return d.ExecuteStatement(ctx, stmt)
}
