package minidb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_InsertRow(t *testing.T) {
	t.Parallel()

	aTable := newTestTable(t)

	id1, err := aTable.InsertRow(testRowValues(1))
	require.NoError(t, err)
	assert.Equal(t, RowID(1), id1)

	id2, err := aTable.InsertRow(testRowValues(2))
	require.NoError(t, err)
	assert.Equal(t, RowID(2), id2)

	assert.Equal(t, 2, aTable.RowCount())

	aRow, ok := aTable.GetRow(id1)
	require.True(t, ok)
	assert.Equal(t, id1, aRow.ID)

	_, ok = aTable.GetRow(RowID(99))
	assert.False(t, ok)
}

func TestTable_InsertRow_ArityMismatch(t *testing.T) {
	t.Parallel()

	aTable := newTestTable(t)

	_, err := aTable.InsertRow([]Value{NewInteger(1)})
	assert.ErrorIs(t, err, errRowArityMismatch)
	assert.Equal(t, 0, aTable.RowCount())
}

func TestTable_InsertRow_DuplicateIndexKeyRollsBack(t *testing.T) {
	t.Parallel()

	aTable := newTestTable(t)
	require.NoError(t, aTable.CreateIndex("email", HashIndexKind))

	values := testRowValues(1)
	id1, err := aTable.InsertRow(values)
	require.NoError(t, err)

	// Same email, the hash index rejects the duplicate and the row must
	// not be kept
	duplicate := testRowValues(2)
	duplicate[1] = values[1]
	_, err = aTable.InsertRow(duplicate)
	require.Error(t, err)
	assert.ErrorIs(t, err, errDuplicateKey)
	assert.Equal(t, 1, aTable.RowCount())

	// A failed insert must not consume a row id
	id2, err := aTable.InsertRow(testRowValues(3))
	require.NoError(t, err)
	assert.Equal(t, id1+1, id2)
}

func TestTable_InsertRow_RollbackRestoresOtherIndexes(t *testing.T) {
	t.Parallel()

	aTable := newTestTable(t)
	require.NoError(t, aTable.CreateIndex("age", BTreeIndexKind))
	require.NoError(t, aTable.CreateIndex("email", HashIndexKind))

	first := []Value{NewInteger(1), NewText("a@example.com"), NewInteger(30), NewReal(1.0)}
	_, err := aTable.InsertRow(first)
	require.NoError(t, err)

	// Fails on the email index, the age index entry applied for this row
	// must be rolled back
	second := []Value{NewInteger(2), NewText("a@example.com"), NewInteger(55), NewReal(2.0)}
	_, err = aTable.InsertRow(second)
	require.Error(t, err)

	ageIdx, ok := aTable.Index("age")
	require.True(t, ok)
	_, found := ageIdx.Find(NewInteger(55))
	assert.False(t, found, "rolled back index entry must be gone")
	_, found = ageIdx.Find(NewInteger(30))
	assert.True(t, found)
}

func TestTable_UpdateRow(t *testing.T) {
	t.Parallel()

	aTable := newTestTable(t)
	require.NoError(t, aTable.CreateIndex("age", BTreeIndexKind))

	id, err := aTable.InsertRow([]Value{NewInteger(1), NewText("a@example.com"), NewInteger(30), NewReal(1.0)})
	require.NoError(t, err)

	err = aTable.UpdateRow(id, []Value{NewInteger(1), NewText("a@example.com"), NewInteger(31), NewReal(1.0)})
	require.NoError(t, err)

	aRow, ok := aTable.GetRow(id)
	require.True(t, ok)
	assert.Equal(t, NewInteger(31), aRow.Values[2])

	ageIdx, ok := aTable.Index("age")
	require.True(t, ok)
	_, found := ageIdx.Find(NewInteger(30))
	assert.False(t, found, "stale index entry must be removed")
	foundID, found := ageIdx.Find(NewInteger(31))
	require.True(t, found)
	assert.Equal(t, id, foundID)
}

func TestTable_UpdateRow_SameIndexedValue(t *testing.T) {
	t.Parallel()

	aTable := newTestTable(t)
	require.NoError(t, aTable.CreateIndex("email", HashIndexKind))

	id, err := aTable.InsertRow([]Value{NewInteger(1), NewText("a@example.com"), NewInteger(30), NewReal(1.0)})
	require.NoError(t, err)

	// Keeping the indexed column unchanged must not trip the duplicate
	// check against the row's own entry
	err = aTable.UpdateRow(id, []Value{NewInteger(1), NewText("a@example.com"), NewInteger(99), NewReal(2.0)})
	require.NoError(t, err)

	emailIdx, ok := aTable.Index("email")
	require.True(t, ok)
	foundID, found := emailIdx.Find(NewText("a@example.com"))
	require.True(t, found)
	assert.Equal(t, id, foundID)
}

func TestTable_UpdateRow_RollbackOnDuplicate(t *testing.T) {
	t.Parallel()

	aTable := newTestTable(t)
	require.NoError(t, aTable.CreateIndex("email", HashIndexKind))

	_, err := aTable.InsertRow([]Value{NewInteger(1), NewText("a@example.com"), NewInteger(30), NewReal(1.0)})
	require.NoError(t, err)
	id2, err := aTable.InsertRow([]Value{NewInteger(2), NewText("b@example.com"), NewInteger(40), NewReal(2.0)})
	require.NoError(t, err)

	err = aTable.UpdateRow(id2, []Value{NewInteger(2), NewText("a@example.com"), NewInteger(40), NewReal(2.0)})
	require.Error(t, err)
	assert.ErrorIs(t, err, errDuplicateKey)

	// The row and its index entry must be unchanged after the rollback
	aRow, ok := aTable.GetRow(id2)
	require.True(t, ok)
	assert.Equal(t, NewText("b@example.com"), aRow.Values[1])

	emailIdx, ok := aTable.Index("email")
	require.True(t, ok)
	foundID, found := emailIdx.Find(NewText("b@example.com"))
	require.True(t, found)
	assert.Equal(t, id2, foundID)
}

func TestTable_UpdateRow_NotFound(t *testing.T) {
	t.Parallel()

	aTable := newTestTable(t)
	err := aTable.UpdateRow(RowID(1), testRowValues(1))
	assert.ErrorIs(t, err, errRowNotFound)
}

func TestTable_DeleteRow(t *testing.T) {
	t.Parallel()

	aTable := newTestTable(t)
	require.NoError(t, aTable.CreateIndex("age", BTreeIndexKind))

	id1, err := aTable.InsertRow([]Value{NewInteger(1), NewText("a@example.com"), NewInteger(30), NewReal(1.0)})
	require.NoError(t, err)
	id2, err := aTable.InsertRow([]Value{NewInteger(2), NewText("b@example.com"), NewInteger(40), NewReal(2.0)})
	require.NoError(t, err)
	id3, err := aTable.InsertRow([]Value{NewInteger(3), NewText("c@example.com"), NewInteger(50), NewReal(3.0)})
	require.NoError(t, err)

	require.NoError(t, aTable.DeleteRow(id2))
	assert.ErrorIs(t, aTable.DeleteRow(id2), errRowNotFound)

	// Insertion order of the survivors is preserved
	rows := aTable.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, id1, rows[0].ID)
	assert.Equal(t, id3, rows[1].ID)

	ageIdx, ok := aTable.Index("age")
	require.True(t, ok)
	_, found := ageIdx.Find(NewInteger(40))
	assert.False(t, found)
}

func TestTable_DeleteRow_SharedIndexedValue(t *testing.T) {
	t.Parallel()

	aTable := newTestTable(t)
	require.NoError(t, aTable.CreateIndex("age", BTreeIndexKind))

	id1, err := aTable.InsertRow([]Value{NewInteger(1), NewText("a@example.com"), NewInteger(30), NewReal(1.0)})
	require.NoError(t, err)
	id2, err := aTable.InsertRow([]Value{NewInteger(2), NewText("b@example.com"), NewInteger(30), NewReal(2.0)})
	require.NoError(t, err)

	// Deleting one of two rows sharing the indexed value must drop that
	// row's entry and leave the survivor's entry in place
	require.NoError(t, aTable.DeleteRow(id2))

	ageIdx, ok := aTable.Index("age")
	require.True(t, ok)
	foundID, found := ageIdx.Find(NewInteger(30))
	require.True(t, found)
	assert.Equal(t, id1, foundID)
	assert.Equal(t, []RowID{id1}, ageIdx.RangeQuery(NewInteger(30), NewInteger(30)))
}

func TestTable_UpdateRow_SharedIndexedValue(t *testing.T) {
	t.Parallel()

	aTable := newTestTable(t)
	require.NoError(t, aTable.CreateIndex("age", BTreeIndexKind))

	id1, err := aTable.InsertRow([]Value{NewInteger(1), NewText("a@example.com"), NewInteger(30), NewReal(1.0)})
	require.NoError(t, err)
	id2, err := aTable.InsertRow([]Value{NewInteger(2), NewText("b@example.com"), NewInteger(30), NewReal(2.0)})
	require.NoError(t, err)

	require.NoError(t, aTable.UpdateRow(id2, []Value{NewInteger(2), NewText("b@example.com"), NewInteger(31), NewReal(2.0)}))

	ageIdx, ok := aTable.Index("age")
	require.True(t, ok)
	foundID, found := ageIdx.Find(NewInteger(30))
	require.True(t, found)
	assert.Equal(t, id1, foundID, "the unchanged row keeps its entry")
	foundID, found = ageIdx.Find(NewInteger(31))
	require.True(t, found)
	assert.Equal(t, id2, foundID)
}

func TestTable_CreateIndex(t *testing.T) {
	t.Parallel()

	aTable := newTestTable(t)

	// Backfill from existing rows
	id1, err := aTable.InsertRow([]Value{NewInteger(1), NewText("a@example.com"), NewInteger(30), NewReal(1.0)})
	require.NoError(t, err)
	id2, err := aTable.InsertRow([]Value{NewInteger(2), NewText("b@example.com"), NewInteger(40), NewReal(2.0)})
	require.NoError(t, err)

	require.NoError(t, aTable.CreateIndex("age", BTreeIndexKind))

	ageIdx, ok := aTable.Index("age")
	require.True(t, ok)
	foundID, found := ageIdx.Find(NewInteger(30))
	require.True(t, found)
	assert.Equal(t, id1, foundID)
	foundID, found = ageIdx.Find(NewInteger(40))
	require.True(t, found)
	assert.Equal(t, id2, foundID)

	err = aTable.CreateIndex("age", BTreeIndexKind)
	assert.ErrorIs(t, err, errIndexExists)

	err = aTable.CreateIndex("missing", BTreeIndexKind)
	assert.ErrorIs(t, err, errColumnNotFound)

	err = aTable.CreateIndex("score", IndexKind(99))
	assert.ErrorIs(t, err, errUnknownIndexKind)
}

func TestTable_CreateIndex_BackfillDuplicateFails(t *testing.T) {
	t.Parallel()

	aTable := newTestTable(t)

	_, err := aTable.InsertRow([]Value{NewInteger(1), NewText("same@example.com"), NewInteger(30), NewReal(1.0)})
	require.NoError(t, err)
	_, err = aTable.InsertRow([]Value{NewInteger(2), NewText("same@example.com"), NewInteger(40), NewReal(2.0)})
	require.NoError(t, err)

	err = aTable.CreateIndex("email", HashIndexKind)
	require.Error(t, err)
	assert.ErrorIs(t, err, errDuplicateKey)

	_, ok := aTable.Index("email")
	assert.False(t, ok, "failed backfill must not register the index")
}

func TestTable_DropIndex(t *testing.T) {
	t.Parallel()

	aTable := newTestTable(t)
	require.NoError(t, aTable.CreateIndex("age", BTreeIndexKind))

	require.NoError(t, aTable.DropIndex("age"))
	_, ok := aTable.Index("age")
	assert.False(t, ok)

	assert.ErrorIs(t, aTable.DropIndex("age"), errIndexNotFound)
}

func TestTable_Clear(t *testing.T) {
	t.Parallel()

	aTable := newTestTable(t)
	require.NoError(t, aTable.CreateIndex("age", BTreeIndexKind))
	_, err := aTable.InsertRow(testRowValues(1))
	require.NoError(t, err)

	aTable.Clear()
	assert.Equal(t, 0, aTable.RowCount())
	_, ok := aTable.Index("age")
	assert.False(t, ok)

	// Row ids restart after a clear
	id, err := aTable.InsertRow(testRowValues(2))
	require.NoError(t, err)
	assert.Equal(t, RowID(1), id)
}
