package minidb

// DefaultBTreeOrder is the default maximum number of children per node.
const DefaultBTreeOrder = 5

type btreeNode[T any] struct {
	keys     []T
	children []*btreeNode[T]
	leaf     bool
	// parent is navigational only, ownership flows root to leaves
	parent *btreeNode[T]
}

func newBTreeNode[T any](leaf bool) *btreeNode[T] {
	return &btreeNode[T]{leaf: leaf}
}

func (n *btreeNode[T]) isFull(order int) bool {
	return len(n.keys) == order-1
}

// BTree is a balanced multiway search tree of order M (at most M children
// and M-1 keys per node), generic over any key type with a total order
// given by the comparator.
type BTree[T any] struct {
	root    *btreeNode[T]
	compare func(a, b T) int
	order   int
	size    int
}

func NewBTree[T any](order int, compare func(a, b T) int) *BTree[T] {
	// The floor((M-1)/2) median split leaves the right sibling empty for
	// order 3, so 4 is the smallest order the splitting scheme supports
	if order < 4 {
		order = DefaultBTreeOrder
	}
	return &BTree[T]{
		root:    newBTreeNode[T](true),
		compare: compare,
		order:   order,
	}
}

func (t *BTree[T]) Size() int {
	return t.size
}

func (t *BTree[T]) Empty() bool {
	return t.size == 0
}

// Clear resets the tree to a single empty leaf root.
func (t *BTree[T]) Clear() {
	t.root = newBTreeNode[T](true)
	t.size = 0
}

// Insert adds a key, returns false without mutating the tree if the key
// already exists. Splitting is done top-down on the way to the insertion
// point so every node entered has room for one more key.
func (t *BTree[T]) Insert(key T) bool {
	if t.Search(key) {
		return false
	}

	if t.root.isFull(t.order) {
		newRoot := newBTreeNode[T](false)
		newRoot.children = append(newRoot.children, t.root)
		t.root.parent = newRoot
		t.splitChild(newRoot, 0)
		t.root = newRoot
	}

	t.insertNonFull(t.root, key)
	t.size += 1
	return true
}

func (t *BTree[T]) Search(key T) bool {
	return t.searchNode(t.root, key) != nil
}

// Traverse performs an in-order depth-first walk, visiting every key in
// ascending order.
func (t *BTree[T]) Traverse(visit func(key T)) {
	t.traverseNode(t.root, visit)
}

// RangeQuery returns all keys in [lo, hi] by filtering a full traversal.
// O(n) over the whole tree, a known limitation.
func (t *BTree[T]) RangeQuery(lo, hi T) []T {
	var result []T
	t.Traverse(func(key T) {
		if t.compare(key, lo) >= 0 && t.compare(key, hi) <= 0 {
			result = append(result, key)
		}
	})
	return result
}

func (t *BTree[T]) Min() (T, bool) {
	var zero T
	if t.Empty() {
		return zero, false
	}
	current := t.root
	for !current.leaf {
		current = current.children[0]
	}
	return current.keys[0], true
}

func (t *BTree[T]) Max() (T, bool) {
	var zero T
	if t.Empty() {
		return zero, false
	}
	current := t.root
	for !current.leaf {
		current = current.children[len(current.children)-1]
	}
	return current.keys[len(current.keys)-1], true
}

// splitChild splits the full child at childIdx, promoting its median key
// into the parent. Keys before the median stay put, keys after it move to
// a new right sibling, child links are partitioned the same way.
func (t *BTree[T]) splitChild(parent *btreeNode[T], childIdx int) {
	fullChild := parent.children[childIdx]
	newChild := newBTreeNode[T](fullChild.leaf)

	midIdx := (t.order - 1) / 2
	middleKey := fullChild.keys[midIdx]

	newChild.keys = append(newChild.keys, fullChild.keys[midIdx+1:]...)
	fullChild.keys = fullChild.keys[:midIdx]

	if !fullChild.leaf {
		newChild.children = append(newChild.children, fullChild.children[midIdx+1:]...)
		fullChild.children = fullChild.children[:midIdx+1]
		for _, aChild := range newChild.children {
			aChild.parent = newChild
		}
	}

	parent.children = append(parent.children, nil)
	copy(parent.children[childIdx+2:], parent.children[childIdx+1:])
	parent.children[childIdx+1] = newChild

	parent.keys = append(parent.keys, middleKey)
	copy(parent.keys[childIdx+1:], parent.keys[childIdx:])
	parent.keys[childIdx] = middleKey

	newChild.parent = parent
	fullChild.parent = parent
}

func (t *BTree[T]) insertNonFull(node *btreeNode[T], key T) {
	for {
		i := len(node.keys) - 1

		if node.leaf {
			var zero T
			node.keys = append(node.keys, zero)
			for i >= 0 && t.compare(key, node.keys[i]) < 0 {
				node.keys[i+1] = node.keys[i]
				i -= 1
			}
			node.keys[i+1] = key
			return
		}

		for i >= 0 && t.compare(key, node.keys[i]) < 0 {
			i -= 1
		}
		i += 1

		// Split a full child before descending into it
		if node.children[i].isFull(t.order) {
			t.splitChild(node, i)
			if t.compare(key, node.keys[i]) > 0 {
				i += 1
			}
		}

		node = node.children[i]
	}
}

func (t *BTree[T]) searchNode(node *btreeNode[T], key T) *btreeNode[T] {
	for {
		i := 0
		for i < len(node.keys) && t.compare(key, node.keys[i]) > 0 {
			i += 1
		}

		if i < len(node.keys) && t.compare(key, node.keys[i]) == 0 {
			return node
		}

		if node.leaf {
			return nil
		}

		node = node.children[i]
	}
}

func (t *BTree[T]) traverseNode(node *btreeNode[T], visit func(key T)) {
	if node == nil {
		return
	}
	var i int
	for i = 0; i < len(node.keys); i++ {
		if !node.leaf {
			t.traverseNode(node.children[i], visit)
		}
		visit(node.keys[i])
	}
	if !node.leaf {
		t.traverseNode(node.children[i], visit)
	}
}

// minKeys is the minimum number of keys a non-root node may hold.
func (t *BTree[T]) minKeys() int {
	return (t.order+1)/2 - 1
}

// Delete removes a key, rebalancing with borrow-from-sibling and
// merge-on-underflow. Returns false without mutating the tree if the key
// is not present.
func (t *BTree[T]) Delete(key T) bool {
	if !t.Search(key) {
		return false
	}

	t.deleteFrom(t.root, key)

	// Shrink the root when it runs out of keys
	if len(t.root.keys) == 0 && !t.root.leaf {
		t.root = t.root.children[0]
		t.root.parent = nil
	}

	t.size -= 1
	return true
}

func (t *BTree[T]) deleteFrom(node *btreeNode[T], key T) {
	idx := 0
	for idx < len(node.keys) && t.compare(key, node.keys[idx]) > 0 {
		idx += 1
	}

	if idx < len(node.keys) && t.compare(key, node.keys[idx]) == 0 {
		if node.leaf {
			node.keys = append(node.keys[:idx], node.keys[idx+1:]...)
			return
		}
		t.deleteInternal(node, idx, key)
		return
	}

	// Key lives in the subtree under children[idx]. Make sure the child
	// we descend into has more than the minimum number of keys first.
	child := node.children[idx]
	if len(child.keys) <= t.minKeys() {
		idx = t.fillChild(node, idx)
	}
	t.deleteFrom(node.children[idx], key)
}

func (t *BTree[T]) deleteInternal(node *btreeNode[T], idx int, key T) {
	left, right := node.children[idx], node.children[idx+1]

	switch {
	case len(left.keys) > t.minKeys():
		// Replace with the in-order predecessor and delete it instead
		pred := t.subtreeMax(left)
		node.keys[idx] = pred
		t.deleteFrom(left, pred)
	case len(right.keys) > t.minKeys():
		succ := t.subtreeMin(right)
		node.keys[idx] = succ
		t.deleteFrom(right, succ)
	default:
		// Both neighbours are minimal, merge them around the key and
		// recurse into the merged child
		t.mergeChildren(node, idx)
		t.deleteFrom(node.children[idx], key)
	}
}

// fillChild guarantees children[idx] holds more than minKeys keys before a
// descent, borrowing from a sibling or merging. Returns the child index to
// descend into, which shifts left when the child is merged into its left
// sibling.
func (t *BTree[T]) fillChild(node *btreeNode[T], idx int) int {
	if idx > 0 && len(node.children[idx-1].keys) > t.minKeys() {
		t.borrowFromLeft(node, idx)
		return idx
	}
	if idx < len(node.children)-1 && len(node.children[idx+1].keys) > t.minKeys() {
		t.borrowFromRight(node, idx)
		return idx
	}
	if idx > 0 {
		t.mergeChildren(node, idx-1)
		return idx - 1
	}
	t.mergeChildren(node, idx)
	return idx
}

func (t *BTree[T]) borrowFromLeft(node *btreeNode[T], idx int) {
	child, left := node.children[idx], node.children[idx-1]

	child.keys = append(child.keys, child.keys[0])
	copy(child.keys[1:], child.keys)
	child.keys[0] = node.keys[idx-1]

	node.keys[idx-1] = left.keys[len(left.keys)-1]
	left.keys = left.keys[:len(left.keys)-1]

	if !child.leaf {
		moved := left.children[len(left.children)-1]
		left.children = left.children[:len(left.children)-1]
		child.children = append(child.children, nil)
		copy(child.children[1:], child.children)
		child.children[0] = moved
		moved.parent = child
	}
}

func (t *BTree[T]) borrowFromRight(node *btreeNode[T], idx int) {
	child, right := node.children[idx], node.children[idx+1]

	child.keys = append(child.keys, node.keys[idx])
	node.keys[idx] = right.keys[0]
	right.keys = append(right.keys[:0], right.keys[1:]...)

	if !child.leaf {
		moved := right.children[0]
		right.children = append(right.children[:0], right.children[1:]...)
		child.children = append(child.children, moved)
		moved.parent = child
	}
}

// mergeChildren merges children[idx+1] into children[idx] around the
// separating key at idx.
func (t *BTree[T]) mergeChildren(node *btreeNode[T], idx int) {
	left, right := node.children[idx], node.children[idx+1]

	left.keys = append(left.keys, node.keys[idx])
	left.keys = append(left.keys, right.keys...)

	if !left.leaf {
		for _, aChild := range right.children {
			aChild.parent = left
		}
		left.children = append(left.children, right.children...)
	}

	node.keys = append(node.keys[:idx], node.keys[idx+1:]...)
	node.children = append(node.children[:idx+1], node.children[idx+2:]...)
}

func (t *BTree[T]) subtreeMax(node *btreeNode[T]) T {
	for !node.leaf {
		node = node.children[len(node.children)-1]
	}
	return node.keys[len(node.keys)-1]
}

func (t *BTree[T]) subtreeMin(node *btreeNode[T]) T {
	for !node.leaf {
		node = node.children[0]
	}
	return node.keys[0]
}
