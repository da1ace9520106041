package minidb

// Column describes a single table column.
type Column struct {
	Name       string
	Kind       ColumnKind
	PrimaryKey bool
	NotNull    bool
	Unique     bool
}
