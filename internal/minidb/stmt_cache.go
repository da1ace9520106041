package minidb

import (
	"github.com/dgraph-io/ristretto/v2"
)

const (
	DefaultMaxCachedStatements = 1000
)

// statementCache keeps parsed statements keyed by their SQL text so
// repeated queries skip the parser.
type statementCache struct {
	cache *ristretto.Cache[string, Statement]
}

func newStatementCache(maxEntries int64) (*statementCache, error) {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxCachedStatements
	}
	cache, err := ristretto.NewCache(&ristretto.Config[string, Statement]{
		NumCounters: maxEntries * 10,
		MaxCost:     maxEntries,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &statementCache{cache: cache}, nil
}

func (c *statementCache) get(sql string) (Statement, bool) {
	return c.cache.Get(sql)
}

func (c *statementCache) put(sql string, stmt Statement) {
	c.cache.Set(sql, stmt, 1)
}

// wait blocks until buffered writes are applied, only needed by tests.
func (c *statementCache) wait() {
	c.cache.Wait()
}

func (c *statementCache) close() {
	c.cache.Close()
}
