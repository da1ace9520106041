package minidb

import (
	"fmt"
)

var (
	errSchemaNoColumns           = fmt.Errorf("schema must have at least one column")
	errSchemaMultiplePrimaryKeys = fmt.Errorf("schema cannot have more than one primary key column")
)

// Schema is an ordered sequence of columns plus a name to position map
// for constant time lookups by column name.
type Schema struct {
	columns   []Column
	positions map[string]int
}

func NewSchema(columns ...Column) (*Schema, error) {
	s := &Schema{
		columns:   make([]Column, 0, len(columns)),
		positions: make(map[string]int, len(columns)),
	}
	for _, aColumn := range columns {
		if !s.AddColumn(aColumn) {
			return nil, fmt.Errorf("duplicate column name '%s'", aColumn.Name)
		}
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// AddColumn appends a column, returns false if the name is already taken.
func (s *Schema) AddColumn(aColumn Column) bool {
	if _, ok := s.positions[aColumn.Name]; ok {
		return false
	}
	s.positions[aColumn.Name] = len(s.columns)
	s.columns = append(s.columns, aColumn)
	return true
}

func (s *Schema) Column(idx int) (Column, bool) {
	if idx < 0 || idx >= len(s.columns) {
		return Column{}, false
	}
	return s.columns[idx], true
}

func (s *Schema) ColumnByName(name string) (Column, bool) {
	idx, ok := s.positions[name]
	if !ok {
		return Column{}, false
	}
	return s.columns[idx], true
}

func (s *Schema) ColumnPosition(name string) (int, bool) {
	idx, ok := s.positions[name]
	return idx, ok
}

func (s *Schema) ColumnCount() int {
	return len(s.columns)
}

func (s *Schema) Columns() []Column {
	return s.columns
}

func (s *Schema) Validate() error {
	if len(s.columns) == 0 {
		return errSchemaNoColumns
	}
	primaryKeys := 0
	for _, aColumn := range s.columns {
		if aColumn.PrimaryKey {
			primaryKeys += 1
		}
	}
	if primaryKeys > 1 {
		return errSchemaMultiplePrimaryKeys
	}
	return nil
}
