package minidb

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

const (
	defaultBucketCount = 16
	maxLoadFactor      = 0.75
)

type hashEntry[K, V any] struct {
	key   K
	value V
}

// HashMap is a separate-chaining hash table generic over key and value
// types, with injectable hash and equality functions.
type HashMap[K, V any] struct {
	buckets [][]hashEntry[K, V]
	size    int
	hash    func(K) uint64
	equal   func(a, b K) bool
}

func NewHashMap[K, V any](hash func(K) uint64, equal func(a, b K) bool) *HashMap[K, V] {
	return &HashMap[K, V]{
		buckets: make([][]hashEntry[K, V], defaultBucketCount),
		hash:    hash,
		equal:   equal,
	}
}

func (m *HashMap[K, V]) Len() int {
	return m.size
}

func (m *HashMap[K, V]) BucketCount() int {
	return len(m.buckets)
}

func (m *HashMap[K, V]) LoadFactor() float64 {
	return float64(m.size) / float64(len(m.buckets))
}

func (m *HashMap[K, V]) bucketIdx(key K) int {
	return int(m.hash(key) % uint64(len(m.buckets)))
}

// Insert adds a new entry, returns false if the key already exists.
// The load factor is checked before inserting so the table grows ahead
// of the entry that would push it over the threshold.
func (m *HashMap[K, V]) Insert(key K, value V) bool {
	if m.Contains(key) {
		return false
	}

	if m.LoadFactor() >= maxLoadFactor {
		m.Rehash(len(m.buckets) * 2)
	}

	idx := m.bucketIdx(key)
	m.buckets[idx] = append(m.buckets[idx], hashEntry[K, V]{key: key, value: value})
	m.size += 1
	return true
}

func (m *HashMap[K, V]) Find(key K) (V, bool) {
	idx := m.bucketIdx(key)
	for _, anEntry := range m.buckets[idx] {
		if m.equal(anEntry.key, key) {
			return anEntry.value, true
		}
	}
	var zero V
	return zero, false
}

func (m *HashMap[K, V]) Contains(key K) bool {
	_, ok := m.Find(key)
	return ok
}

func (m *HashMap[K, V]) Remove(key K) bool {
	idx := m.bucketIdx(key)
	bucket := m.buckets[idx]
	for i, anEntry := range bucket {
		if m.equal(anEntry.key, key) {
			m.buckets[idx] = append(bucket[:i], bucket[i+1:]...)
			m.size -= 1
			return true
		}
	}
	return false
}

// Update replaces the value of an existing key, fails if the key is absent.
func (m *HashMap[K, V]) Update(key K, value V) bool {
	idx := m.bucketIdx(key)
	for i, anEntry := range m.buckets[idx] {
		if m.equal(anEntry.key, key) {
			m.buckets[idx][i].value = value
			return true
		}
	}
	return false
}

// Upsert inserts or replaces, returns true when a new entry was inserted
// and false when an existing one was updated.
func (m *HashMap[K, V]) Upsert(key K, value V) bool {
	if m.Update(key, value) {
		return false
	}
	m.Insert(key, value)
	return true
}

// GetOrInsert returns a pointer to the value stored under key, inserting
// defaultValue first on a miss. Lookup and insert happen as one logical
// operation. The pointer is only valid until the next mutation of the map.
func (m *HashMap[K, V]) GetOrInsert(key K, defaultValue V) *V {
	idx := m.bucketIdx(key)
	for i, anEntry := range m.buckets[idx] {
		if m.equal(anEntry.key, key) {
			return &m.buckets[idx][i].value
		}
	}

	if m.LoadFactor() >= maxLoadFactor {
		m.Rehash(len(m.buckets) * 2)
		idx = m.bucketIdx(key)
	}

	m.buckets[idx] = append(m.buckets[idx], hashEntry[K, V]{key: key, value: defaultValue})
	m.size += 1
	return &m.buckets[idx][len(m.buckets[idx])-1].value
}

// Rehash grows the table to newBucketCount buckets, shrink requests are a
// no-op. Entries are redistributed with direct bucket appends so the
// reinsertion can never re-trigger growth recursively.
func (m *HashMap[K, V]) Rehash(newBucketCount int) {
	if newBucketCount <= len(m.buckets) {
		return
	}

	oldBuckets := m.buckets
	m.buckets = make([][]hashEntry[K, V], newBucketCount)

	for _, bucket := range oldBuckets {
		for _, anEntry := range bucket {
			idx := m.bucketIdx(anEntry.key)
			m.buckets[idx] = append(m.buckets[idx], anEntry)
		}
	}
}

func (m *HashMap[K, V]) Clear() {
	for i := range m.buckets {
		m.buckets[i] = nil
	}
	m.size = 0
}

// Range calls f for every live entry, bucket order outer and chain order
// inner, stopping early when f returns false.
func (m *HashMap[K, V]) Range(f func(key K, value V) bool) {
	for _, bucket := range m.buckets {
		for _, anEntry := range bucket {
			if !f(anEntry.key, anEntry.value) {
				return
			}
		}
	}
}

// Iterator walks entries lazily in bucket order, chain order within a
// bucket, skipping empty buckets.
type Iterator[K, V any] struct {
	m      *HashMap[K, V]
	bucket int
	index  int
}

// Iter returns an iterator positioned at the first live entry, or at the
// end for an empty map.
func (m *HashMap[K, V]) Iter() *Iterator[K, V] {
	it := &Iterator[K, V]{m: m}
	it.advanceToValid()
	return it
}

func (it *Iterator[K, V]) Valid() bool {
	return it.bucket < len(it.m.buckets)
}

func (it *Iterator[K, V]) Key() K {
	return it.m.buckets[it.bucket][it.index].key
}

func (it *Iterator[K, V]) Value() V {
	return it.m.buckets[it.bucket][it.index].value
}

func (it *Iterator[K, V]) Next() {
	if !it.Valid() {
		return
	}
	it.index += 1
	it.advanceToValid()
}

// Equal reports whether two iterators reference the same position. Two
// end iterators are always equal.
func (it *Iterator[K, V]) Equal(other *Iterator[K, V]) bool {
	if it.m != other.m {
		return false
	}
	if !it.Valid() && !other.Valid() {
		return true
	}
	return it.bucket == other.bucket && it.index == other.index
}

func (it *Iterator[K, V]) advanceToValid() {
	for it.bucket < len(it.m.buckets) {
		if it.index < len(it.m.buckets[it.bucket]) {
			return
		}
		it.bucket += 1
		it.index = 0
	}
}

// Default hash functions built on xxhash.

func HashString(s string) uint64 {
	return xxhash.Sum64String(s)
}

func HashInt64(n int64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(n))
	return xxhash.Sum64(buf[:])
}

func HashBytes(b []byte) uint64 {
	return xxhash.Sum64(b)
}

// hashValue hashes a tagged value, mixing the type tag in so equal byte
// payloads of different kinds do not collide systematically.
func hashValue(v Value) uint64 {
	d := xxhash.New()
	_, _ = d.Write([]byte{byte(v.Kind)})
	switch v.Kind {
	case Integer:
		var buf [8]byte
		n, _ := v.Int()
		binary.LittleEndian.PutUint64(buf[:], uint64(n))
		_, _ = d.Write(buf[:])
	case Text:
		s, _ := v.Text()
		_, _ = d.WriteString(s)
	case Real:
		var buf [8]byte
		f, _ := v.Real()
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		_, _ = d.Write(buf[:])
	case Blob:
		b, _ := v.Bytes()
		_, _ = d.Write(b)
	}
	return d.Sum64()
}
