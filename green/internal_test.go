package green

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestDeepChainDrop reproduces spec.md §8 scenario S5 / original_source's
// tests/whoops-linked-list.rs: dropping a 10,000-deep left-spine chain must
// not recurse native stack proportional to depth. This builds nodes
// directly via newNode/newToken, bypassing Builder's pool entirely, so that
// releasing the root's sole external reference drives its refcount to zero
// immediately and exercises Node.Release's iterative teardown (node.go) in
// one call rather than spreading it across many GC turns.
func TestDeepChainDrop(t *testing.T) {
	t.Parallel()

	const depth = 10_000

	leaf := newToken(kindAtom, "leaf")
	cur := newNode(kindAtom, []element{elementOfToken(0, leaf)})

	for i := 0; i < depth; i++ {
		cur = newNode(kindList, []element{elementOfNode(0, cur)})
	}

	assert.EqualValues(t, 1, cur.refcount())
	assert.NotPanics(t, func() { cur.Release() })
}

// TestElementPacking exercises the tagged-pointer discriminant element.go
// relies on: a node-backed slot and a token-backed slot must round-trip
// through isToken/asNode/asToken without corrupting each other.
func TestElementPacking(t *testing.T) {
	t.Parallel()

	tok := newToken(kindAtom, "x")
	defer tok.Release()

	n := newNode(kindList, nil)
	defer n.Release()

	te := elementOfToken(3, tok)
	ne := elementOfNode(5, n)

	assert.True(t, te.isToken())
	assert.False(t, ne.isToken())
	assert.Same(t, tok, te.asToken())
	assert.Same(t, n, ne.asNode())
	assert.EqualValues(t, 3, te.offset)
	assert.EqualValues(t, 5, ne.offset)
}

// TestNode_RejectsTooManyChildren covers spec.md §6.4's child-count fault at
// the real boundary: a slice of MaxChildren+1 zero slots is rejected before
// any slot is read. The token-length fault has no test here, since a
// MaxTextSize+1-byte string is impractical to allocate in a test.
func TestNode_RejectsTooManyChildren(t *testing.T) {
	t.Parallel()

	children := make([]element, MaxChildren+1)
	assert.Panics(t, func() { newNode(kindList, children) })
}
