package minidb

import (
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	gen = gofakeit.New(time.Now().Unix())

	testLogger = zap.NewNop()

	testColumns = []Column{
		{
			Name:       "id",
			Kind:       Integer,
			PrimaryKey: true,
		},
		{
			Name: "email",
			Kind: Text,
		},
		{
			Name: "age",
			Kind: Integer,
		},
		{
			Name: "score",
			Kind: Real,
		},
	}
)

func newTestSchema(t *testing.T) *Schema {
	t.Helper()
	aSchema, err := NewSchema(testColumns...)
	require.NoError(t, err)
	return aSchema
}

func newTestTable(t *testing.T) *Table {
	t.Helper()
	return NewTable(testLogger, "test_table", newTestSchema(t))
}

func testRowValues(id int64) []Value {
	return []Value{
		NewInteger(id),
		NewText(gen.Email()),
		NewInteger(int64(gen.Number(18, 100))),
		NewReal(gen.Float64Range(0, 100)),
	}
}
