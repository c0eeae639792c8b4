package green

import (
	"encoding/binary"

	"github.com/flier/greentree/internal/assert"
	"github.com/flier/greentree/internal/pool"
)

// tokenKey is the Builder's token pool key: (kind, text), matching spec.md
// §4.5's "Token pool keyed by (kind, text)". text is hashed and compared by
// content (Go string equality/hash is always content-based, never by
// backing-array address), satisfying the contract that distinct buffers
// holding equal bytes collide.
type tokenKey struct {
	kind Kind
	text string
}

// nodeKey is the Builder's node pool key: kind plus the pointer identity of
// every child, packed into a string so it remains `comparable` (Go slices
// are not). spec.md §4.5/§9: nodes are deduplicated by identity of their
// already-interned children, never by deep structural equality, so encoding
// each child as its raw (tagged) pointer bit-pattern is exactly the key the
// spec calls for. Two nodeKey values compare equal iff every encoded
// pointer matches, so a hit on this key is already a correct dedup match
// with no further verification needed.
type nodeKey string

func newNodeKey(kind Kind, children []element) nodeKey {
	buf := make([]byte, 2+8*len(children))
	binary.LittleEndian.PutUint16(buf, uint16(kind))
	for i, c := range children {
		binary.LittleEndian.PutUint64(buf[2+8*i:], c.identity())
	}
	return nodeKey(buf)
}

// Logger receives one trace line per pool hit/miss or GC sweep, in the
// same (op, format, args) shape internal/assert.Log already uses for its
// build-tag-gated stderr tracing. Wiring a Logger lets a consumer observe
// that tracing without rebuilding with -tags debug or losing it to
// os.Stderr.
type Logger func(op, format string, args ...any)

// Builder is the construction cache (spec.md §4.5): a hash-consed pool that
// deduplicates structurally-equal tokens and nodes, plus a garbage
// collector that prunes entries no external handle retains any more.
//
// A Builder is not safe for concurrent use (spec.md §5: "single-owner
// mutators... concurrent construction requires external coordination").
type Builder struct {
	tokens *pool.Table[tokenKey, *Token]
	nodes  *pool.Table[nodeKey, *Node]
	logger Logger
}

// NewBuilder constructs an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		tokens: pool.New[tokenKey, *Token](),
		nodes:  pool.New[nodeKey, *Node](),
	}
}

// SetLogger installs logger as the consumer-visible trace sink for pool
// hits/misses and GC sweeps (SPEC_FULL.md's Ambient Stack "Logging"
// section), alongside the always-present, build-tag-gated
// internal/assert.Log tracing. Pass nil to stop tracing.
func (b *Builder) SetLogger(logger Logger) { b.logger = logger }

func (b *Builder) trace(op, format string, args ...any) {
	assert.Log(op, format, args...)

	if b.logger != nil {
		b.logger(op, format, args...)
	}
}

// Size returns the number of entries currently cached (tokens plus nodes).
func (b *Builder) Size() int { return b.tokens.Len() + b.nodes.Len() }

// Token interns a token of the given kind and text, returning the shared
// handle. A second call with an equal (kind, text) pair returns a
// pointer-equal handle (spec.md §8 property 4) without growing the pool.
func (b *Builder) Token(kind Kind, text string) *Token {
	key := tokenKey{kind, text}

	if t, ok := b.tokens.Get(key); ok {
		b.trace("token/hit", "kind=%d text=%q refs=%d", kind, text, t.refcount())

		return t.Retain()
	}

	t := newToken(kind, text)
	b.tokens.Insert(key, t)

	b.trace("token/miss", "kind=%d text=%q", kind, text)

	return t.Retain()
}

// Node interns a node of the given kind over the given already-interned
// children, returning the shared handle. Lookup is O(len(children)): the
// key is the children's pointer identities, not their structure, so a miss
// costs one allocation and a hit costs none (spec.md §4.5).
//
// children is logically consumed: ownership of each child's reference
// passes to whichever handle Node returns. On a pool hit the freshly built
// candidate is discarded and each child is Released once to undo the
// candidate's hold on it, leaving the canonical node's own references
// untouched.
func (b *Builder) Node(kind Kind, children []Element) *Node {
	elems := make([]element, len(children))
	for i, c := range children {
		elems[i] = elementOf(0, c)
	}

	key := newNodeKey(kind, elems)

	if n, ok := b.nodes.Get(key); ok {
		for _, e := range elems {
			e.release()
		}

		b.trace("node/hit", "kind=%d children=%d refs=%d", kind, len(elems), n.refcount())

		return n.Retain()
	}

	n := newNode(kind, elems)
	b.nodes.Insert(key, n)

	b.trace("node/miss", "kind=%d children=%d", kind, len(elems))

	return n.Retain()
}

// TurnGC runs one sweep of garbage collection, removing pool entries whose
// external refcount has dropped to exactly the pool's own hold (spec.md
// §4.5's "turn" variant). It reports whether anything was removed.
func (b *Builder) TurnGC() bool {
	removedNodes := b.turnNodeGC()
	removedTokens := b.turnTokenGC()

	return removedNodes || removedTokens
}

// GC runs TurnGC to a fixed point. Because removing a dead node Releases
// its own hold on its children, a removal can make a child dead in turn
// (spec.md §4.5 step 2: "queue its children for reconsideration"), so nodes
// are swept repeatedly until a turn removes nothing. Tokens are leaves, so
// a single trailing sweep suffices.
func (b *Builder) GC() {
	for b.turnNodeGC() {
	}

	b.turnTokenGC()
}

func (b *Builder) turnNodeGC() bool {
	var dead []*Node

	b.nodes.Each(func(_ nodeKey, n *Node) bool {
		if n.refcount() > 1 {
			return true
		}

		dead = append(dead, n)

		return false
	})

	for _, n := range dead {
		n.Release()
	}

	b.trace("gc/node", "removed=%d", len(dead))

	return len(dead) > 0
}

func (b *Builder) turnTokenGC() bool {
	var dead []*Token

	b.tokens.Each(func(_ tokenKey, t *Token) bool {
		if t.refcount() > 1 {
			return true
		}

		dead = append(dead, t)

		return false
	})

	for _, t := range dead {
		t.Release()
	}

	b.trace("gc/token", "removed=%d", len(dead))

	return len(dead) > 0
}
