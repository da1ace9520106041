package minidb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDB_EndToEnd(t *testing.T) {
	t.Parallel()

	db, err := Open("testdb", WithLogger(zap.NewNop()), WithPoolCapacity(16))
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()

	_, err = db.Exec(ctx, "CREATE TABLE users (id INTEGER PRIMARY KEY, email TEXT, age INTEGER);")
	require.NoError(t, err)

	result, err := db.Exec(ctx, "INSERT INTO users VALUES (1, 'a@example.com', 30), (2, 'b@example.com', 40);")
	require.NoError(t, err)
	assert.Equal(t, 2, result.RowsAffected)

	_, err = db.Exec(ctx, "CREATE INDEX ON users (email) USING HASH;")
	require.NoError(t, err)

	result, err = db.Query(ctx, "SELECT id, age FROM users WHERE email = 'b@example.com';")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "age"}, result.Columns)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, []any{int64(2), int64(40)}, result.Rows[0])

	result, err = db.Exec(ctx, "UPDATE users SET age = 41 WHERE id = 2;")
	require.NoError(t, err)
	assert.Equal(t, 1, result.RowsAffected)

	result, err = db.Query(ctx, "SELECT * FROM users WHERE age > 35;")
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, []any{int64(2), "b@example.com", int64(41)}, result.Rows[0])

	result, err = db.Exec(ctx, "DELETE FROM users WHERE id = 1;")
	require.NoError(t, err)
	assert.Equal(t, 1, result.RowsAffected)

	result, err = db.Query(ctx, "SELECT * FROM users;")
	require.NoError(t, err)
	assert.Len(t, result.Rows, 1)

	assert.Equal(t, []string{"users"}, db.ListTableNames())

	stats := db.PoolStats()
	assert.Equal(t, 16, stats.Capacity)
}

func TestDB_ParseErrorSurfaces(t *testing.T) {
	t.Parallel()

	db, err := Open("testdb", WithLogger(zap.NewNop()))
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(context.Background(), "EXPLAIN;")
	require.Error(t, err)
}

func TestDB_ClosedHandleRejectsQueries(t *testing.T) {
	t.Parallel()

	db, err := Open("testdb", WithLogger(zap.NewNop()))
	require.NoError(t, err)

	require.NoError(t, db.Close())
	require.NoError(t, db.Close(), "closing twice is fine")

	_, err = db.Exec(context.Background(), "SELECT * FROM users;")
	require.Error(t, err)
	_, err = db.Query(context.Background(), "SELECT * FROM users;")
	require.Error(t, err)
}
