package green

import (
	"iter"

	"github.com/flier/greentree/internal/assert"
)

// Children is a fused, random-access iterator over a node's direct
// children (spec.md §4.4). It yields borrowed Elements whose validity is
// tied to the parent Node's lifetime; Children never touches refcounts.
type Children struct {
	elems []element
}

// Len returns the number of children (also satisfies size_hint/count, which
// spec.md lists as separate operations: here they always agree exactly,
// since the underlying slice length is always known).
func (c Children) Len() int { return len(c.elems) }

// Peek returns the first child without otherwise consuming the iterator
// (Children is a plain value, so "consuming" it only ever means taking a
// narrower slice via SplitAt).
func (c Children) Peek() (Element, bool) { return c.Get(0) }

// Get returns the child at index n.
func (c Children) Get(n int) (Element, bool) {
	if n < 0 || n >= len(c.elems) {
		return Element{}, false
	}
	return c.elems[n].toElement(), true
}

// Last returns the final child.
func (c Children) Last() (Element, bool) { return c.Get(len(c.elems) - 1) }

// SplitAt splits the children at index mid into two independent iterators.
func (c Children) SplitAt(mid int) (Children, Children) {
	assert.That(mid >= 0 && mid <= len(c.elems),
		"split_at index %d out of range for %d children", mid, len(c.elems))
	return Children{c.elems[:mid]}, Children{c.elems[mid:]}
}

// Nth returns the nth child from the front; equivalent to Get, provided for
// parity with spec.md's next/nth naming (property 5: nth(k) == get(k)).
func (c Children) Nth(n int) (Element, bool) { return c.Get(n) }

// NthBack returns the nth child counting from the back.
func (c Children) NthBack(n int) (Element, bool) { return c.Get(len(c.elems) - 1 - n) }

// All yields every child from front to back.
func (c Children) All() iter.Seq[Element] {
	return func(yield func(Element) bool) {
		for _, e := range c.elems {
			if !yield(e.toElement()) {
				return
			}
		}
	}
}

// Backward yields every child from back to front; property 5 requires that
// collecting All and reversing it equals collecting Backward directly.
func (c Children) Backward() iter.Seq[Element] {
	return func(yield func(Element) bool) {
		for i := len(c.elems) - 1; i >= 0; i-- {
			if !yield(c.elems[i].toElement()) {
				return
			}
		}
	}
}

// Fold is the internal-iteration entry point spec.md §4.4 calls out as the
// performance-sensitive path: "internal iteration (fold / for-each) is
// significantly faster than repeated next because the implementer can
// unroll the two-stride alternation between full- and half-aligned reads."
// That alternation is a property of the packed element layout described in
// spec.md §4.1; element.go documents why this module falls back to a
// uniform (offset, tagged-pointer) slot instead (every slot has the same
// shape, so there is no alternation left to unroll). Fold is kept as the
// dedicated internal-iteration operation regardless — modeled on
// github.com/flier/goutil's pkg/xiter.Fold — both because callers written
// against the contract should still prefer it (a single tight loop, no
// closure call per element beyond f itself) and because a future packed
// layout could reintroduce the two-phase unrolling here without changing
// Fold's signature.
func Fold[B any](c Children, init B, f func(B, Element) B) B {
	acc := init
	for _, e := range c.elems {
		acc = f(acc, e.toElement())
	}
	return acc
}

// ChildrenWithOffsets is a parallel iterator yielding each child alongside
// the byte offset, relative to the owning node, at which it starts. The
// offset is read directly from the stored per-slot field (spec.md §4.4's
// "random-access form") by Get and by the All/Backward iteration forms
// alike, so they can never disagree.
type ChildrenWithOffsets struct {
	elems []element
}

// Len returns the number of children.
func (c ChildrenWithOffsets) Len() int { return len(c.elems) }

// Get returns the offset and element at index n.
func (c ChildrenWithOffsets) Get(n int) (TextSize, Element, bool) {
	if n < 0 || n >= len(c.elems) {
		return 0, Element{}, false
	}
	e := c.elems[n]
	return e.offset, e.toElement(), true
}

// All yields every (offset, child) pair from front to back.
func (c ChildrenWithOffsets) All() iter.Seq2[TextSize, Element] {
	return func(yield func(TextSize, Element) bool) {
		for _, e := range c.elems {
			if !yield(e.offset, e.toElement()) {
				return
			}
		}
	}
}

// Backward yields every (offset, child) pair from back to front.
func (c ChildrenWithOffsets) Backward() iter.Seq2[TextSize, Element] {
	return func(yield func(TextSize, Element) bool) {
		for i := len(c.elems) - 1; i >= 0; i-- {
			e := c.elems[i]
			if !yield(e.offset, e.toElement()) {
				return
			}
		}
	}
}

// WithoutOffsets discards the offsets, returning the plain Children form.
func (c ChildrenWithOffsets) WithoutOffsets() Children { return Children{c.elems} }
