package minidb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatementCache(t *testing.T) {
	t.Parallel()

	cache, err := newStatementCache(100)
	require.NoError(t, err)
	defer cache.close()

	sql := "SELECT id FROM users;"
	_, ok := cache.get(sql)
	assert.False(t, ok)

	stmt := Statement{Kind: Select, TableName: "users", Fields: []string{"id"}}
	cache.put(sql, stmt)
	cache.wait()

	cached, ok := cache.get(sql)
	require.True(t, ok)
	assert.Equal(t, stmt, cached)
}

func TestStatementCache_DefaultSize(t *testing.T) {
	t.Parallel()

	cache, err := newStatementCache(0)
	require.NoError(t, err)
	defer cache.close()

	cache.put("a", Statement{Kind: Select})
	cache.wait()
	_, ok := cache.get("a")
	assert.True(t, ok)
}
