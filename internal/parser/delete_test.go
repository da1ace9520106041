package parser

import (
	"testing"

	"github.com/thisizaro/MiniDB/internal/minidb"
)

func TestParse_Delete(t *testing.T) {
	t.Parallel()

	testCases := []testCase{
		{
			"DELETE FROM without table name fails",
			"DELETE FROM",
			nil,
			errEmptyTableName,
		},
		{
			"DELETE FROM without WHERE works",
			"DELETE FROM users;",
			[]minidb.Statement{
				{
					Kind:      minidb.Delete,
					TableName: "users",
				},
			},
			nil,
		},
		{
			"DELETE FROM with WHERE works",
			"DELETE FROM users WHERE id = 1;",
			[]minidb.Statement{
				{
					Kind:      minidb.Delete,
					TableName: "users",
					Conditions: []minidb.Condition{
						{Field: "id", Operator: minidb.Eq, Value: minidb.NewInteger(1)},
					},
				},
			},
			nil,
		},
	}

	runTestCases(t, testCases)
}
