package parser

import (
	"testing"

	"github.com/thisizaro/MiniDB/internal/minidb"
)

func TestParse_CreateIndex(t *testing.T) {
	t.Parallel()

	testCases := []testCase{
		{
			"CREATE INDEX without column fails",
			"CREATE INDEX ON users",
			nil,
			errEmptyIndexColumn,
		},
		{
			"CREATE INDEX with unknown kind fails",
			"CREATE INDEX ON users (email) USING GIN;",
			nil,
			errCreateIndexUnknownKind,
		},
		{
			"CREATE INDEX defaults to a btree index",
			"CREATE INDEX ON users (email);",
			[]minidb.Statement{
				{
					Kind:        minidb.CreateIndex,
					TableName:   "users",
					IndexColumn: "email",
					IndexKind:   minidb.BTreeIndexKind,
				},
			},
			nil,
		},
		{
			"CREATE INDEX USING BTREE works",
			"CREATE INDEX ON users (age) USING BTREE;",
			[]minidb.Statement{
				{
					Kind:        minidb.CreateIndex,
					TableName:   "users",
					IndexColumn: "age",
					IndexKind:   minidb.BTreeIndexKind,
				},
			},
			nil,
		},
		{
			"CREATE INDEX USING HASH works",
			"create index on users (email) using hash;",
			[]minidb.Statement{
				{
					Kind:        minidb.CreateIndex,
					TableName:   "users",
					IndexColumn: "email",
					IndexKind:   minidb.HashIndexKind,
				},
			},
			nil,
		},
	}

	runTestCases(t, testCases)
}

func TestParse_DropIndex(t *testing.T) {
	t.Parallel()

	testCases := []testCase{
		{
			"DROP INDEX without column fails",
			"DROP INDEX ON users",
			nil,
			errEmptyIndexColumn,
		},
		{
			"DROP INDEX works",
			"DROP INDEX ON users (email);",
			[]minidb.Statement{
				{
					Kind:        minidb.DropIndex,
					TableName:   "users",
					IndexColumn: "email",
				},
			},
			nil,
		},
	}

	runTestCases(t, testCases)
}
