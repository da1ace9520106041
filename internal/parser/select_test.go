package parser

import (
	"testing"

	"github.com/thisizaro/MiniDB/internal/minidb"
)

func TestParse_Select(t *testing.T) {
	t.Parallel()

	testCases := []testCase{
		{
			"SELECT without FROM fails",
			"SELECT",
			nil,
			errEmptyTableName,
		},
		{
			"SELECT without fields fails",
			"SELECT FROM users",
			nil,
			errSelectWithoutFields,
		},
		{
			"SELECT with comma and empty field fails",
			"SELECT id, FROM users",
			nil,
			errSelectWithoutFields,
		},
		{
			"SELECT works",
			"SELECT id FROM users;",
			[]minidb.Statement{
				{
					Kind:      minidb.Select,
					TableName: "users",
					Fields:    []string{"id"},
				},
			},
			nil,
		},
		{
			"SELECT works with lowercase",
			" select id fRoM users;",
			[]minidb.Statement{
				{
					Kind:      minidb.Select,
					TableName: "users",
					Fields:    []string{"id"},
				},
			},
			nil,
		},
		{
			"SELECT many fields works",
			"SELECT id, email, age FROM users;",
			[]minidb.Statement{
				{
					Kind:      minidb.Select,
					TableName: "users",
					Fields:    []string{"id", "email", "age"},
				},
			},
			nil,
		},
		{
			"SELECT * works",
			"SELECT * FROM users;",
			[]minidb.Statement{
				{
					Kind:      minidb.Select,
					TableName: "users",
					Fields:    []string{"*"},
				},
			},
			nil,
		},
	}

	runTestCases(t, testCases)
}
