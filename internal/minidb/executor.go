package minidb

import (
	"context"
	"fmt"
)

var errUnrecognizedStatementKind = fmt.Errorf("unrecognised statement kind")

// ExecuteStatement dispatches a parsed statement to the table layer.
func (d *Database) ExecuteStatement(ctx context.Context, stmt Statement) (StatementResult, error) {
	switch stmt.Kind {
	case CreateTable:
		return d.executeCreateTable(stmt)
	case DropTable:
		if err := d.DropTable(stmt.TableName); err != nil {
			return StatementResult{}, err
		}
		return StatementResult{}, nil
	case CreateIndex:
		return d.executeCreateIndex(stmt)
	case DropIndex:
		return d.executeDropIndex(stmt)
	case Insert:
		return d.executeInsert(stmt)
	case Select:
		return d.executeSelect(stmt)
	case Update:
		return d.executeUpdate(stmt)
	case Delete:
		return d.executeDelete(stmt)
	default:
		return StatementResult{}, errUnrecognizedStatementKind
	}
}

func (d *Database) executeCreateTable(stmt Statement) (StatementResult, error) {
	if _, err := d.CreateTable(stmt.TableName, stmt.Columns); err != nil {
		return StatementResult{}, err
	}
	return StatementResult{}, nil
}

func (d *Database) executeCreateIndex(stmt Statement) (StatementResult, error) {
	aTable, ok := d.Table(stmt.TableName)
	if !ok {
		return StatementResult{}, fmt.Errorf("'%s': %w", stmt.TableName, errTableDoesNotExist)
	}
	if err := aTable.CreateIndex(stmt.IndexColumn, stmt.IndexKind); err != nil {
		return StatementResult{}, err
	}
	return StatementResult{}, nil
}

func (d *Database) executeDropIndex(stmt Statement) (StatementResult, error) {
	aTable, ok := d.Table(stmt.TableName)
	if !ok {
		return StatementResult{}, fmt.Errorf("'%s': %w", stmt.TableName, errTableDoesNotExist)
	}
	if err := aTable.DropIndex(stmt.IndexColumn); err != nil {
		return StatementResult{}, err
	}
	return StatementResult{}, nil
}

func (d *Database) executeInsert(stmt Statement) (StatementResult, error) {
	aTable, ok := d.Table(stmt.TableName)
	if !ok {
		return StatementResult{}, fmt.Errorf("'%s': %w", stmt.TableName, errTableDoesNotExist)
	}

	affected := 0
	for _, values := range stmt.Inserts {
		ordered, err := orderInsertValues(aTable.Schema(), stmt.Fields, values)
		if err != nil {
			return StatementResult{RowsAffected: affected}, err
		}
		if _, err := aTable.InsertRow(ordered); err != nil {
			return StatementResult{RowsAffected: affected}, err
		}
		affected += 1
	}

	return StatementResult{RowsAffected: affected}, nil
}

// orderInsertValues maps an INSERT value list onto schema column order.
// Without an explicit field list values are taken positionally; columns
// missing from an explicit field list become NULL.
func orderInsertValues(schema *Schema, fields []string, values []Value) ([]Value, error) {
	if len(fields) == 0 {
		return values, nil
	}
	if len(fields) != len(values) {
		return nil, fmt.Errorf("insert field count %d does not match value count %d", len(fields), len(values))
	}

	ordered := make([]Value, schema.ColumnCount())
	for i := range ordered {
		ordered[i] = NewNull()
	}
	for i, field := range fields {
		pos, ok := schema.ColumnPosition(field)
		if !ok {
			return nil, fmt.Errorf("insert field '%s': %w", field, errColumnNotFound)
		}
		ordered[pos] = values[i]
	}
	return ordered, nil
}

func (d *Database) executeSelect(stmt Statement) (StatementResult, error) {
	aTable, ok := d.Table(stmt.TableName)
	if !ok {
		return StatementResult{}, fmt.Errorf("'%s': %w", stmt.TableName, errTableDoesNotExist)
	}

	columns, positions, err := selectProjection(aTable.Schema(), stmt.Fields)
	if err != nil {
		return StatementResult{}, err
	}

	matched, err := d.selectRows(aTable, stmt.Conditions)
	if err != nil {
		return StatementResult{}, err
	}

	result := StatementResult{Columns: columns}
	for _, aRow := range matched {
		projected := Row{ID: aRow.ID, Values: make([]Value, 0, len(positions))}
		for _, pos := range positions {
			projected.Values = append(projected.Values, aRow.Values[pos])
		}
		result.Rows = append(result.Rows, projected)
	}

	return result, nil
}

// selectRows picks candidate rows, using an index point lookup when the
// WHERE clause is a single equality on an indexed column and falling back
// to a full scan with predicate evaluation otherwise.
func (d *Database) selectRows(aTable *Table, conditions []Condition) ([]Row, error) {
	if len(conditions) == 1 && conditions[0].Operator == Eq {
		if idx, ok := aTable.Index(conditions[0].Field); ok {
			d.logger.Sugar().With(
				"table", aTable.Name(),
				"column", conditions[0].Field,
			).Debug("using index point lookup")

			id, found := idx.Find(conditions[0].Value)
			if !found {
				return nil, nil
			}
			aRow, ok := aTable.GetRow(id)
			if !ok {
				return nil, fmt.Errorf("index entry references missing row %d", id)
			}
			return []Row{aRow}, nil
		}
	}

	var matched []Row
	for _, aRow := range aTable.Rows() {
		ok, err := rowMatches(aTable.Schema(), aRow, conditions)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, aRow)
		}
	}
	return matched, nil
}

func selectProjection(schema *Schema, fields []string) ([]string, []int, error) {
	if len(fields) == 0 || (len(fields) == 1 && fields[0] == "*") {
		columns := make([]string, 0, schema.ColumnCount())
		positions := make([]int, 0, schema.ColumnCount())
		for i, aColumn := range schema.Columns() {
			columns = append(columns, aColumn.Name)
			positions = append(positions, i)
		}
		return columns, positions, nil
	}

	columns := make([]string, 0, len(fields))
	positions := make([]int, 0, len(fields))
	for _, field := range fields {
		pos, ok := schema.ColumnPosition(field)
		if !ok {
			return nil, nil, fmt.Errorf("select field '%s': %w", field, errColumnNotFound)
		}
		columns = append(columns, field)
		positions = append(positions, pos)
	}
	return columns, positions, nil
}

func (d *Database) executeUpdate(stmt Statement) (StatementResult, error) {
	aTable, ok := d.Table(stmt.TableName)
	if !ok {
		return StatementResult{}, fmt.Errorf("'%s': %w", stmt.TableName, errTableDoesNotExist)
	}

	assignments := make(map[int]Value, len(stmt.Updates))
	for field, value := range stmt.Updates {
		pos, ok := aTable.Schema().ColumnPosition(field)
		if !ok {
			return StatementResult{}, fmt.Errorf("update field '%s': %w", field, errColumnNotFound)
		}
		assignments[pos] = value
	}

	matched, err := d.selectRows(aTable, stmt.Conditions)
	if err != nil {
		return StatementResult{}, err
	}

	affected := 0
	for _, aRow := range matched {
		values := make([]Value, len(aRow.Values))
		copy(values, aRow.Values)
		for pos, value := range assignments {
			values[pos] = value
		}
		if err := aTable.UpdateRow(aRow.ID, values); err != nil {
			return StatementResult{RowsAffected: affected}, err
		}
		affected += 1
	}

	return StatementResult{RowsAffected: affected}, nil
}

func (d *Database) executeDelete(stmt Statement) (StatementResult, error) {
	aTable, ok := d.Table(stmt.TableName)
	if !ok {
		return StatementResult{}, fmt.Errorf("'%s': %w", stmt.TableName, errTableDoesNotExist)
	}

	matched, err := d.selectRows(aTable, stmt.Conditions)
	if err != nil {
		return StatementResult{}, err
	}

	affected := 0
	for _, aRow := range matched {
		if err := aTable.DeleteRow(aRow.ID); err != nil {
			return StatementResult{RowsAffected: affected}, err
		}
		affected += 1
	}

	return StatementResult{RowsAffected: affected}, nil
}
