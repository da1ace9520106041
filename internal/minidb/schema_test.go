package minidb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSchema(t *testing.T) {
	t.Parallel()

	aSchema, err := NewSchema(testColumns...)
	require.NoError(t, err)
	assert.Equal(t, len(testColumns), aSchema.ColumnCount())

	pos, ok := aSchema.ColumnPosition("email")
	require.True(t, ok)
	assert.Equal(t, 1, pos)

	aColumn, ok := aSchema.ColumnByName("age")
	require.True(t, ok)
	assert.Equal(t, Integer, aColumn.Kind)

	aColumn, ok = aSchema.Column(0)
	require.True(t, ok)
	assert.Equal(t, "id", aColumn.Name)

	_, ok = aSchema.Column(len(testColumns))
	assert.False(t, ok)
	_, ok = aSchema.ColumnByName("missing")
	assert.False(t, ok)
}

func TestNewSchema_Invalid(t *testing.T) {
	t.Parallel()

	_, err := NewSchema()
	assert.ErrorIs(t, err, errSchemaNoColumns)

	_, err = NewSchema(
		Column{Name: "a", Kind: Integer, PrimaryKey: true},
		Column{Name: "b", Kind: Integer, PrimaryKey: true},
	)
	assert.ErrorIs(t, err, errSchemaMultiplePrimaryKeys)

	_, err = NewSchema(
		Column{Name: "a", Kind: Integer},
		Column{Name: "a", Kind: Text},
	)
	require.Error(t, err)
}

func TestSchema_AddColumn(t *testing.T) {
	t.Parallel()

	aSchema, err := NewSchema(Column{Name: "a", Kind: Integer})
	require.NoError(t, err)

	assert.True(t, aSchema.AddColumn(Column{Name: "b", Kind: Text}))
	assert.False(t, aSchema.AddColumn(Column{Name: "a", Kind: Text}))
	assert.Equal(t, 2, aSchema.ColumnCount())
}
