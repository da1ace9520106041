package minidb

import (
	"fmt"
)

type StatementKind int

const (
	CreateTable StatementKind = iota + 1
	DropTable
	CreateIndex
	DropIndex
	Insert
	Select
	Update
	Delete
)

type Operator int

const (
	Eq Operator = iota + 1
	Ne
	Lt
	Le
	Gt
	Ge
)

func (o Operator) String() string {
	switch o {
	case Eq:
		return "="
	case Ne:
		return "!="
	case Lt:
		return "<"
	case Le:
		return "<="
	case Gt:
		return ">"
	case Ge:
		return ">="
	default:
		return "?"
	}
}

// Condition is a single field-operator-literal predicate. Conditions on a
// statement are ANDed together.
type Condition struct {
	Field    string
	Operator Operator
	Value    Value
}

// Matches evaluates the condition against a value using the engine's
// value ordering.
func (c Condition) Matches(v Value) bool {
	// NULL compares equal only to NULL, ordering against non-NULL is
	// not observable through comparison operators
	if v.IsNull() || c.Value.IsNull() {
		switch c.Operator {
		case Eq:
			return v.IsNull() && c.Value.IsNull()
		case Ne:
			return v.IsNull() != c.Value.IsNull()
		default:
			return false
		}
	}

	cmp := v.Compare(c.Value)
	switch c.Operator {
	case Eq:
		return cmp == 0
	case Ne:
		return cmp != 0
	case Lt:
		return cmp < 0
	case Le:
		return cmp <= 0
	case Gt:
		return cmp > 0
	case Ge:
		return cmp >= 0
	default:
		return false
	}
}

// Statement is the parsed form of a single SQL statement.
type Statement struct {
	Kind        StatementKind
	TableName   string
	Columns     []Column          // CREATE TABLE
	Fields      []string          // SELECT projection / INSERT field list
	Inserts     [][]Value         // INSERT row literals
	Updates     map[string]Value  // UPDATE SET assignments
	Conditions  []Condition       // WHERE clause, ANDed
	IndexColumn string            // CREATE/DROP INDEX
	IndexKind   IndexKind         // CREATE INDEX
}

// StatementResult carries the outcome of executing a statement.
type StatementResult struct {
	Columns      []string
	Rows         []Row
	RowsAffected int
}

// rowMatches evaluates all conditions against a row of the given schema.
func rowMatches(schema *Schema, aRow Row, conditions []Condition) (bool, error) {
	for _, aCondition := range conditions {
		pos, ok := schema.ColumnPosition(aCondition.Field)
		if !ok {
			return false, fmt.Errorf("condition field '%s': %w", aCondition.Field, errColumnNotFound)
		}
		if !aCondition.Matches(aRow.Values[pos]) {
			return false, nil
		}
	}
	return true, nil
}
