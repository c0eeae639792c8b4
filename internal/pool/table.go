// Package pool implements a hash-consing probe table used by green.Builder
// to intern nodes and tokens.
//
// It is modeled on github.com/flier/goutil's pkg/arena/swiss.Map, which
// builds an open-addressing table on top of github.com/dolthub/maphash's
// seeded Hasher[K]. That table stores its groups in a pointer-free arena
// slice, which is exactly the representation greentree's core data model
// (§3.5/§9 of SPEC_FULL.md) cannot use for values that hold live *Node /
// *Token pointers. Table keeps the ingredient that does transfer — a single
// seeded Hasher[K] per key type, shared by every probe and every insert, so
// that hashing a candidate key always lands in the same bucket as the
// canonical copy already stored — and falls back to separate chaining
// (map[uint64][]slot) instead of swiss.Map's open addressing.
package pool

import "github.com/dolthub/maphash"

// Table is a hash-consing pool keyed by K with values V, built on a single
// seeded Hasher[K] so that probe hashes and stored-key hashes always agree.
type Table[K comparable, V any] struct {
	hasher  maphash.Hasher[K]
	buckets map[uint64][]slot[K, V]
	count   int
}

type slot[K comparable, V any] struct {
	key K
	val V
}

// New constructs an empty Table with a freshly seeded hasher for K.
func New[K comparable, V any]() *Table[K, V] {
	return &Table[K, V]{
		hasher:  maphash.NewHasher[K](),
		buckets: make(map[uint64][]slot[K, V]),
	}
}

// Get looks up key, returning its value and whether it was present.
func (t *Table[K, V]) Get(key K) (V, bool) {
	h := t.hasher.Hash(key)
	for _, s := range t.buckets[h] {
		if s.key == key {
			return s.val, true
		}
	}
	var zero V
	return zero, false
}

// Insert adds key/val to the table. The caller is responsible for checking
// Get first if it needs to detect a pre-existing entry.
func (t *Table[K, V]) Insert(key K, val V) {
	h := t.hasher.Hash(key)
	t.buckets[h] = append(t.buckets[h], slot[K, V]{key, val})
	t.count++
}

// Delete removes key from the table, if present.
func (t *Table[K, V]) Delete(key K) {
	h := t.hasher.Hash(key)
	bucket := t.buckets[h]
	for i, s := range bucket {
		if s.key == key {
			bucket = append(bucket[:i:i], bucket[i+1:]...)
			if len(bucket) == 0 {
				delete(t.buckets, h)
			} else {
				t.buckets[h] = bucket
			}
			t.count--
			return
		}
	}
}

// Len returns the number of entries currently stored.
func (t *Table[K, V]) Len() int { return t.count }

// Each calls f once per entry. f returns whether to keep the entry; entries
// for which it returns false are removed. Each snapshots each bucket before
// calling f, so f may safely trigger further Table operations on other keys
// without corrupting this traversal — this is how Builder's GC sweep removes
// dead entries without invalidating its own iteration (SPEC_FULL.md, Builder
// §4.5: "materializing a removal list first").
func (t *Table[K, V]) Each(f func(key K, val V) (keep bool)) {
	for h, bucket := range t.buckets {
		kept := bucket[:0:0]
		for _, s := range bucket {
			if f(s.key, s.val) {
				kept = append(kept, s)
			} else {
				t.count--
			}
		}
		if len(kept) == 0 {
			delete(t.buckets, h)
		} else {
			t.buckets[h] = kept
		}
	}
}
