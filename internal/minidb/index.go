package minidb

import (
	"math"
	"strings"
)

// IndexKind enumerates the supported secondary index implementations.
type IndexKind int

const (
	BTreeIndexKind IndexKind = iota + 1
	HashIndexKind
)

func (k IndexKind) String() string {
	switch k {
	case BTreeIndexKind:
		return "btree"
	case HashIndexKind:
		return "hash"
	default:
		return "unknown"
	}
}

func IndexKindFromString(s string) (IndexKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "btree":
		return BTreeIndexKind, true
	case "hash":
		return HashIndexKind, true
	default:
		return 0, false
	}
}

// Index maps column values to row ids. Remove deletes the entry for the
// exact (value, row) pair; Find returns the entry with the lowest row id
// for the value.
type Index interface {
	Insert(key Value, id RowID) bool
	Remove(key Value, id RowID) bool
	Find(key Value) (RowID, bool)
	// RangeQuery returns ids for all keys in [lo, hi], nil when the
	// index kind does not support range scans
	RangeQuery(lo, hi Value) []RowID
}

// indexKey orders B-tree index entries by column value first and row id
// second, letting multiple rows share the same column value.
type indexKey struct {
	value Value
	rowID RowID
}

func compareIndexKeys(a, b indexKey) int {
	if cmp := a.value.Compare(b.value); cmp != 0 {
		return cmp
	}
	switch {
	case a.rowID < b.rowID:
		return -1
	case a.rowID > b.rowID:
		return 1
	default:
		return 0
	}
}

// BTreeIndex is an ordered secondary index supporting range queries.
type BTreeIndex struct {
	tree *BTree[indexKey]
}

func NewBTreeIndex() *BTreeIndex {
	return &BTreeIndex{
		tree: NewBTree(DefaultBTreeOrder, compareIndexKeys),
	}
}

func (idx *BTreeIndex) Insert(key Value, id RowID) bool {
	return idx.tree.Insert(indexKey{value: key, rowID: id})
}

// Remove deletes the entry for the exact (key, id) pair. Other rows
// sharing the same column value keep their entries.
func (idx *BTreeIndex) Remove(key Value, id RowID) bool {
	return idx.tree.Delete(indexKey{value: key, rowID: id})
}

func (idx *BTreeIndex) Find(key Value) (RowID, bool) {
	entries := idx.entriesForValue(key)
	if len(entries) == 0 {
		return 0, false
	}
	return entries[0].rowID, true
}

func (idx *BTreeIndex) RangeQuery(lo, hi Value) []RowID {
	entries := idx.tree.RangeQuery(
		indexKey{value: lo, rowID: 0},
		indexKey{value: hi, rowID: math.MaxUint64},
	)
	ids := make([]RowID, 0, len(entries))
	for _, anEntry := range entries {
		ids = append(ids, anEntry.rowID)
	}
	return ids
}

func (idx *BTreeIndex) entriesForValue(key Value) []indexKey {
	return idx.tree.RangeQuery(
		indexKey{value: key, rowID: 0},
		indexKey{value: key, rowID: math.MaxUint64},
	)
}

// HashIndex is a point-lookup secondary index without range support.
type HashIndex struct {
	table *HashMap[Value, RowID]
}

func NewHashIndex() *HashIndex {
	return &HashIndex{
		table: NewHashMap[Value, RowID](hashValue, Value.Equal),
	}
}

func (idx *HashIndex) Insert(key Value, id RowID) bool {
	return idx.table.Insert(key, id)
}

// Remove deletes the entry only when it belongs to the given row.
func (idx *HashIndex) Remove(key Value, id RowID) bool {
	stored, ok := idx.table.Find(key)
	if !ok || stored != id {
		return false
	}
	return idx.table.Remove(key)
}

func (idx *HashIndex) Find(key Value) (RowID, bool) {
	return idx.table.Find(key)
}

// RangeQuery is not supported by hash indexes.
func (idx *HashIndex) RangeQuery(lo, hi Value) []RowID {
	return nil
}

func newIndex(kind IndexKind) (Index, bool) {
	switch kind {
	case BTreeIndexKind:
		return NewBTreeIndex(), true
	case HashIndexKind:
		return NewHashIndex(), true
	default:
		return nil, false
	}
}
