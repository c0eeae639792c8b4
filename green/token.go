package green

import (
	"sync/atomic"

	"github.com/flier/greentree/internal/assert"
)

// Token is an immutable leaf of the tree: a kind tag and the exact source
// text it covers. Tokens are heap-allocated exactly once per distinct
// (kind, text) pair by a Builder and referenced thereafter via an atomic
// reference-counted handle (*Token itself, per spec.md §3.7).
type Token struct {
	kind Kind
	text string
	refs atomic.Int32
}

func newToken(kind Kind, text string) *Token {
	assert.That(uint64(len(text)) <= MaxTextSize,
		"token text length %d exceeds maximum %d", len(text), MaxTextSize)

	t := &Token{kind: kind, text: text}
	t.refs.Store(1)
	return t
}

// Kind returns the token's kind tag.
func (t *Token) Kind() Kind { return t.kind }

// Text returns the token's exact source text.
func (t *Token) Text() string { return t.text }

// Len returns the byte length of the token's text.
func (t *Token) Len() TextSize { return TextSize(len(t.text)) }

// Retain increments t's reference count and returns t, mirroring Arc::clone
// for callers that need to hold an additional independent handle.
func (t *Token) Retain() *Token {
	t.refs.Add(1)
	return t
}

// Release decrements t's reference count. Tokens are leaves, so once the
// count reaches zero there is nothing further to tear down: Go's garbage
// collector reclaims the allocation once every referencing pointer —
// including the Builder's own pool entry, which Release does not touch — is
// gone. Builder.GC (or TurnGC) is what removes the pool's reference.
func (t *Token) Release() {
	assert.That(t.refs.Load() > 0, "Release on a token with no outstanding references")
	t.refs.Add(-1)
}

func (t *Token) refcount() int32 { return t.refs.Load() }
