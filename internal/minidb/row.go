package minidb

// RowID identifies a table row. IDs are assigned monotonically at insertion
// time and are never reused, not even after the row is deleted.
type RowID uint64

type Row struct {
	ID     RowID
	Values []Value
}

func NewRow(values ...Value) Row {
	return Row{Values: values}
}

func (r Row) Clone() Row {
	aClone := Row{
		ID:     r.ID,
		Values: make([]Value, 0, len(r.Values)),
	}
	aClone.Values = append(aClone.Values, r.Values...)
	return aClone
}
