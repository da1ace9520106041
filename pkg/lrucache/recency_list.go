package lrucache

import (
	"sync"
)

type entry[K comparable] struct {
	key  K
	prev *entry[K]
	next *entry[K]
}

// RecencyList tracks access recency of a set of keys. The most recently
// touched key sits at the head, the least recently touched at the tail.
type RecencyList[K comparable] struct {
	entries map[K]*entry[K]
	head    *entry[K]
	tail    *entry[K]
	mu      sync.RWMutex
}

func New[K comparable]() *RecencyList[K] {
	return &RecencyList[K]{
		entries: make(map[K]*entry[K]),
	}
}

// Touch records an access, adding the key if it is not tracked yet and
// moving it to the front (most recently used) otherwise.
func (l *RecencyList[K]) Touch(key K) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if anEntry, ok := l.entries[key]; ok {
		l.moveToFront(anEntry)
		return
	}

	anEntry := &entry[K]{key: key}
	l.entries[key] = anEntry
	l.addToFront(anEntry)
}

// Remove stops tracking the key, returns false if it was not tracked.
func (l *RecencyList[K]) Remove(key K) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	anEntry, ok := l.entries[key]
	if !ok {
		return false
	}
	l.unlink(anEntry)
	delete(l.entries, key)
	return true
}

func (l *RecencyList[K]) Contains(key K) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	_, ok := l.entries[key]
	return ok
}

func (l *RecencyList[K]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.entries)
}

// LeastRecent returns the key at the tail of the list.
func (l *RecencyList[K]) LeastRecent() (K, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var zero K
	if l.tail == nil {
		return zero, false
	}
	return l.tail.key, true
}

// Keys returns all tracked keys ordered from least to most recently used.
func (l *RecencyList[K]) Keys() []K {
	l.mu.RLock()
	defer l.mu.RUnlock()

	keys := make([]K, 0, len(l.entries))
	for anEntry := l.tail; anEntry != nil; anEntry = anEntry.prev {
		keys = append(keys, anEntry.key)
	}
	return keys
}

func (l *RecencyList[K]) moveToFront(anEntry *entry[K]) {
	if anEntry == l.head {
		return
	}
	l.unlink(anEntry)
	l.addToFront(anEntry)
}

func (l *RecencyList[K]) addToFront(anEntry *entry[K]) {
	anEntry.next = l.head
	anEntry.prev = nil

	if l.head != nil {
		l.head.prev = anEntry
	}
	l.head = anEntry

	if l.tail == nil {
		l.tail = anEntry
	}
}

func (l *RecencyList[K]) unlink(anEntry *entry[K]) {
	if anEntry.prev != nil {
		anEntry.prev.next = anEntry.next
	}
	if anEntry.next != nil {
		anEntry.next.prev = anEntry.prev
	}
	if anEntry == l.head {
		l.head = anEntry.next
	}
	if anEntry == l.tail {
		l.tail = anEntry.prev
	}
	anEntry.prev = nil
	anEntry.next = nil
}
