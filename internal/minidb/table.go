package minidb

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var (
	errRowArityMismatch = fmt.Errorf("row value count does not match schema column count")
	errRowNotFound      = fmt.Errorf("row not found")
	errColumnNotFound   = fmt.Errorf("column not found")
	errIndexExists      = fmt.Errorf("index already exists")
	errIndexNotFound    = fmt.Errorf("index does not exist")
	errUnknownIndexKind = fmt.Errorf("unknown index kind")
	errDuplicateKey     = fmt.Errorf("duplicate index key")
)

// Table owns a schema, an insertion-ordered collection of live rows and
// zero or more secondary indexes keyed by column name. Indexes are kept
// consistent with row mutations; a row mutation and its index updates
// succeed or fail as one unit.
type Table struct {
	name      string
	schema    *Schema
	rows      []Row
	indexes   map[string]Index
	nextRowID RowID
	logger    *zap.Logger
}

func NewTable(logger *zap.Logger, name string, schema *Schema) *Table {
	return &Table{
		name:      name,
		schema:    schema,
		indexes:   make(map[string]Index),
		nextRowID: 1,
		logger:    logger,
	}
}

func (t *Table) Name() string {
	return t.name
}

func (t *Table) Schema() *Schema {
	return t.schema
}

func (t *Table) RowCount() int {
	return len(t.rows)
}

func (t *Table) ColumnCount() int {
	return t.schema.ColumnCount()
}

// Rows returns the live rows in insertion order. Callers must not mutate
// the returned slice.
func (t *Table) Rows() []Row {
	return t.rows
}

func (t *Table) Index(columnName string) (Index, bool) {
	idx, ok := t.indexes[columnName]
	return idx, ok
}

// InsertRow appends a row and inserts its values into every registered
// index. The row id is assigned monotonically and only consumed when the
// insert succeeds. On any index failure previously applied index entries
// are removed again and the row is not kept.
func (t *Table) InsertRow(values []Value) (RowID, error) {
	if len(values) != t.schema.ColumnCount() {
		return 0, errRowArityMismatch
	}

	aRow := Row{ID: t.nextRowID, Values: values}

	applied := make([]string, 0, len(t.indexes))
	for columnName, idx := range t.indexes {
		pos, ok := t.schema.ColumnPosition(columnName)
		if !ok {
			continue
		}
		if !idx.Insert(values[pos], aRow.ID) {
			err := fmt.Errorf("index on column '%s': %w", columnName, errDuplicateKey)
			return 0, multierr.Append(err, t.rollbackIndexInserts(applied, values, aRow.ID))
		}
		applied = append(applied, columnName)
	}

	t.rows = append(t.rows, aRow)
	t.nextRowID += 1

	t.logger.Sugar().With(
		"table", t.name,
		"row_id", aRow.ID,
	).Debug("inserted row")

	return aRow.ID, nil
}

// UpdateRow replaces the values of an existing row. For every index the
// old value is removed before the new one is inserted so that the new key
// is not spuriously rejected while the old one is still present.
func (t *Table) UpdateRow(id RowID, values []Value) error {
	if len(values) != t.schema.ColumnCount() {
		return errRowArityMismatch
	}

	rowIdx := t.rowPosition(id)
	if rowIdx < 0 {
		return errRowNotFound
	}
	oldValues := t.rows[rowIdx].Values

	updated := make([]string, 0, len(t.indexes))
	for columnName, idx := range t.indexes {
		pos, ok := t.schema.ColumnPosition(columnName)
		if !ok {
			continue
		}
		idx.Remove(oldValues[pos], id)
		if !idx.Insert(values[pos], id) {
			err := fmt.Errorf("index on column '%s': %w", columnName, errDuplicateKey)
			return multierr.Append(err, t.rollbackIndexUpdates(updated, columnName, oldValues, values, id))
		}
		updated = append(updated, columnName)
	}

	t.rows[rowIdx].Values = values

	return nil
}

// DeleteRow removes the row's values from every index, then removes the
// row itself. Insertion order of the remaining rows is preserved.
func (t *Table) DeleteRow(id RowID) error {
	rowIdx := t.rowPosition(id)
	if rowIdx < 0 {
		return errRowNotFound
	}

	values := t.rows[rowIdx].Values
	for columnName, idx := range t.indexes {
		pos, ok := t.schema.ColumnPosition(columnName)
		if !ok {
			continue
		}
		idx.Remove(values[pos], id)
	}

	t.rows = append(t.rows[:rowIdx], t.rows[rowIdx+1:]...)

	t.logger.Sugar().With(
		"table", t.name,
		"row_id", id,
	).Debug("deleted row")

	return nil
}

// GetRow looks a row up by id with a linear scan over the row collection.
func (t *Table) GetRow(id RowID) (Row, bool) {
	rowIdx := t.rowPosition(id)
	if rowIdx < 0 {
		return Row{}, false
	}
	return t.rows[rowIdx], true
}

// CreateIndex registers a new index on a column and eagerly backfills it
// from every live row. The index is discarded if any backfill insert
// fails, cost is proportional to the row count.
func (t *Table) CreateIndex(columnName string, kind IndexKind) error {
	pos, ok := t.schema.ColumnPosition(columnName)
	if !ok {
		return fmt.Errorf("cannot index '%s': %w", columnName, errColumnNotFound)
	}
	if _, ok := t.indexes[columnName]; ok {
		return fmt.Errorf("column '%s': %w", columnName, errIndexExists)
	}

	idx, ok := newIndex(kind)
	if !ok {
		return errUnknownIndexKind
	}

	for _, aRow := range t.rows {
		if !idx.Insert(aRow.Values[pos], aRow.ID) {
			return fmt.Errorf("backfill of %s index on '%s' row %d: %w", kind, columnName, aRow.ID, errDuplicateKey)
		}
	}

	t.indexes[columnName] = idx

	t.logger.Sugar().With(
		"table", t.name,
		"column", columnName,
		"kind", kind.String(),
		"rows", len(t.rows),
	).Debug("created index")

	return nil
}

// DropIndex removes the index mapping and discards its data.
func (t *Table) DropIndex(columnName string) error {
	if _, ok := t.indexes[columnName]; !ok {
		return fmt.Errorf("column '%s': %w", columnName, errIndexNotFound)
	}
	delete(t.indexes, columnName)
	return nil
}

// Clear drops all rows and indexes and resets the row id counter.
func (t *Table) Clear() {
	t.rows = nil
	t.indexes = make(map[string]Index)
	t.nextRowID = 1
}

func (t *Table) rowPosition(id RowID) int {
	for i, aRow := range t.rows {
		if aRow.ID == id {
			return i
		}
	}
	return -1
}

func (t *Table) rollbackIndexInserts(applied []string, values []Value, id RowID) error {
	var err error
	for _, columnName := range applied {
		pos, ok := t.schema.ColumnPosition(columnName)
		if !ok {
			continue
		}
		if !t.indexes[columnName].Remove(values[pos], id) {
			err = multierr.Append(err, fmt.Errorf("rollback of index on column '%s' failed", columnName))
		}
	}
	return err
}

// rollbackIndexUpdates restores old index entries after a failed update.
// The failing index already had its old entry removed, so it is restored
// too. Best effort, restore failures are aggregated and reported.
func (t *Table) rollbackIndexUpdates(updated []string, failed string, oldValues, newValues []Value, id RowID) error {
	var err error
	restore := append(append([]string{}, updated...), failed)
	for _, columnName := range restore {
		pos, ok := t.schema.ColumnPosition(columnName)
		if !ok {
			continue
		}
		idx := t.indexes[columnName]
		if columnName != failed {
			idx.Remove(newValues[pos], id)
		}
		if !idx.Insert(oldValues[pos], id) {
			err = multierr.Append(err, fmt.Errorf("rollback of index on column '%s' failed", columnName))
		}
	}
	return err
}
