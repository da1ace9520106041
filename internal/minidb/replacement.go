package minidb

import (
	"github.com/thisizaro/MiniDB/pkg/lrucache"
)

// ReplacementPolicy decides which page to evict when the buffer pool is
// full. The pool only ever passes unpinned pages as candidates.
type ReplacementPolicy interface {
	// SelectVictim picks one of the candidate pages for eviction,
	// returns InvalidPageID if candidates is empty.
	SelectVictim(candidates []PageID) PageID
	PageAccessed(id PageID)
	PageAdded(id PageID)
	PageRemoved(id PageID)
}

// lruPolicy evicts the least recently accessed candidate. Recency is
// tracked across all pages, not just the eviction candidates.
type lruPolicy struct {
	accessOrder *lrucache.RecencyList[PageID]
}

func NewLRUPolicy() ReplacementPolicy {
	return &lruPolicy{
		accessOrder: lrucache.New[PageID](),
	}
}

func (p *lruPolicy) SelectVictim(candidates []PageID) PageID {
	if len(candidates) == 0 {
		return InvalidPageID
	}

	candidateSet := make(map[PageID]struct{}, len(candidates))
	for _, id := range candidates {
		candidateSet[id] = struct{}{}
	}

	// Keys are ordered least to most recently used, the first tracked
	// candidate is the victim.
	for _, id := range p.accessOrder.Keys() {
		if _, ok := candidateSet[id]; ok {
			return id
		}
	}

	// No candidate is tracked, fall back to an arbitrary one.
	return candidates[0]
}

func (p *lruPolicy) PageAccessed(id PageID) {
	p.accessOrder.Touch(id)
}

func (p *lruPolicy) PageAdded(id PageID) {
	p.accessOrder.Touch(id)
}

func (p *lruPolicy) PageRemoved(id PageID) {
	p.accessOrder.Remove(id)
}
