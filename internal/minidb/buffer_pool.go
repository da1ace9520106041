package minidb

import (
	"fmt"
	"sort"

	"go.uber.org/zap"
)

const (
	DefaultPoolCapacity = 1000
)

var (
	errPoolExhausted = fmt.Errorf("buffer pool exhausted, no evictable pages")
	errPageNotFound  = fmt.Errorf("page not found")
	errPagePinned    = fmt.Errorf("page is pinned")
)

// BufferPool owns all pages and keeps the number of resident pages under
// a capacity bound by evicting unpinned pages through a replacement policy.
// Flushing only clears dirty flags, no byte ever reaches durable storage.
type BufferPool struct {
	pageSize   int
	capacity   int
	nextPageID PageID
	pages      map[PageID]*Page
	policy     ReplacementPolicy
	logger     *zap.Logger
}

type BufferPoolStats struct {
	Capacity    int
	Resident    int
	PageSize    int
	TotalMemory int
	DirtyPages  int
	PinnedPages int
	// HitRate is constant, there is no backing store to miss against
	HitRate float64
}

type BufferPoolOption func(*BufferPool)

func WithReplacementPolicy(policy ReplacementPolicy) BufferPoolOption {
	return func(b *BufferPool) {
		b.policy = policy
	}
}

func NewBufferPool(logger *zap.Logger, pageSize, capacity int, opts ...BufferPoolOption) *BufferPool {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if capacity <= 0 {
		capacity = DefaultPoolCapacity
	}
	aPool := &BufferPool{
		pageSize:   pageSize,
		capacity:   capacity,
		nextPageID: 1,
		pages:      make(map[PageID]*Page),
		policy:     NewLRUPolicy(),
		logger:     logger,
	}
	for _, opt := range opts {
		opt(aPool)
	}
	return aPool
}

// AllocatePage creates a new page, evicting one unpinned page first if the
// pool is at capacity. Returns errPoolExhausted when every resident page
// is pinned.
func (b *BufferPool) AllocatePage() (PageID, error) {
	if len(b.pages) >= b.capacity {
		if !b.evictPages(1) {
			return InvalidPageID, errPoolExhausted
		}
	}

	id := b.nextPageID
	b.nextPageID += 1

	aPage := newPage(id, b.pageSize)
	aPage.inUse = true
	b.pages[id] = aPage

	b.policy.PageAdded(id)

	b.logger.Sugar().With("page", id).Debug("allocated page")

	return id, nil
}

// DeallocatePage frees a page, fails if the page is unknown or pinned.
func (b *BufferPool) DeallocatePage(id PageID) error {
	aPage, ok := b.pages[id]
	if !ok {
		return errPageNotFound
	}
	if aPage.RefCount() > 0 {
		return errPagePinned
	}

	b.policy.PageRemoved(id)
	delete(b.pages, id)

	return nil
}

// GetPage looks up a resident page. Every lookup counts as an access for
// the replacement policy, reads and writes alike.
func (b *BufferPool) GetPage(id PageID) (*Page, bool) {
	aPage, ok := b.pages[id]
	if !ok {
		return nil, false
	}
	b.policy.PageAccessed(id)
	return aPage, true
}

// PinPage protects a page from eviction. Pinning is advisory only, it is
// not a mutual exclusion mechanism.
func (b *BufferPool) PinPage(id PageID) bool {
	aPage, ok := b.GetPage(id)
	if !ok {
		return false
	}
	aPage.addRef()
	return true
}

func (b *BufferPool) UnpinPage(id PageID) bool {
	aPage, ok := b.GetPage(id)
	if !ok {
		return false
	}
	aPage.releaseRef()
	return true
}

// FlushPage clears the dirty flag, standing in for a write to storage.
func (b *BufferPool) FlushPage(id PageID) bool {
	aPage, ok := b.GetPage(id)
	if !ok {
		return false
	}
	if aPage.IsDirty() {
		aPage.markClean()
	}
	return true
}

func (b *BufferPool) FlushAll() {
	for _, aPage := range b.pages {
		if aPage.IsDirty() {
			aPage.markClean()
		}
	}
}

// Stats returns a point in time snapshot of the pool.
func (b *BufferPool) Stats() BufferPoolStats {
	stats := BufferPoolStats{
		Capacity:    b.capacity,
		Resident:    len(b.pages),
		PageSize:    b.pageSize,
		TotalMemory: len(b.pages) * b.pageSize,
		HitRate:     1.0,
	}
	for _, aPage := range b.pages {
		if aPage.IsDirty() {
			stats.DirtyPages += 1
		}
		if aPage.RefCount() > 0 {
			stats.PinnedPages += 1
		}
	}
	return stats
}

// Clear drops every page and resets the id counter.
func (b *BufferPool) Clear() {
	for id := range b.pages {
		b.policy.PageRemoved(id)
	}
	b.pages = make(map[PageID]*Page)
	b.nextPageID = 1
}

// Close flushes and releases all pages.
func (b *BufferPool) Close() {
	b.FlushAll()
	b.Clear()
}

// evictPages evicts needed pages. The whole attempt fails unless at least
// that many unpinned pages exist; pages evicted before the failure is
// detected stay evicted, eviction is not transactional.
func (b *BufferPool) evictPages(needed int) bool {
	if needed == 0 {
		return true
	}

	evictable := make([]PageID, 0, len(b.pages))
	for id, aPage := range b.pages {
		if aPage.RefCount() == 0 {
			evictable = append(evictable, id)
		}
	}
	// Deterministic candidate order, map iteration is randomised
	sort.Slice(evictable, func(i, j int) bool { return evictable[i] < evictable[j] })

	if len(evictable) < needed {
		return false
	}

	for i := 0; i < needed; i++ {
		victim := b.policy.SelectVictim(evictable)
		if victim == InvalidPageID {
			return false
		}

		b.FlushPage(victim)
		if err := b.DeallocatePage(victim); err != nil {
			return false
		}

		b.logger.Sugar().With("page", victim).Debug("evicted page")

		for j, id := range evictable {
			if id == victim {
				evictable = append(evictable[:j], evictable[j+1:]...)
				break
			}
		}
	}

	return true
}
