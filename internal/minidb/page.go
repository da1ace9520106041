package minidb

const (
	// DefaultPageSize is 4 kilobytes
	DefaultPageSize = 4096
)

// PageID identifies a page within a buffer pool. IDs are assigned
// monotonically and never reused, so an evicted page can never alias
// a later allocation.
type PageID uint64

const InvalidPageID PageID = 0

// Page is a fixed-size byte buffer owned exclusively by the buffer pool.
// The pin count only protects the page from eviction, it is not a lock.
type Page struct {
	id       PageID
	data     []byte
	dirty    bool
	inUse    bool
	refCount int
}

func newPage(id PageID, size int) *Page {
	return &Page{
		id:   id,
		data: make([]byte, size),
	}
}

func (p *Page) ID() PageID {
	return p.id
}

func (p *Page) Size() int {
	return len(p.data)
}

// Write copies data into the page at the given offset and marks the page
// dirty. It fails if the write would exceed the page boundary.
func (p *Page) Write(offset int, data []byte) bool {
	if offset < 0 || offset+len(data) > len(p.data) {
		return false
	}
	copy(p.data[offset:], data)
	p.dirty = true
	return true
}

// Read copies length bytes starting at offset out of the page. It fails if
// the read would exceed the page boundary.
func (p *Page) Read(offset, length int) ([]byte, bool) {
	if offset < 0 || length < 0 || offset+length > len(p.data) {
		return nil, false
	}
	out := make([]byte, length)
	copy(out, p.data[offset:offset+length])
	return out, true
}

// Clear zeroes the page contents and resets the dirty flag.
func (p *Page) Clear() {
	for i := range p.data {
		p.data[i] = 0
	}
	p.dirty = false
}

func (p *Page) IsDirty() bool {
	return p.dirty
}

func (p *Page) markClean() {
	p.dirty = false
}

func (p *Page) RefCount() int {
	return p.refCount
}

func (p *Page) addRef() {
	p.refCount += 1
}

func (p *Page) releaseRef() {
	if p.refCount > 0 {
		p.refCount -= 1
	}
}
