package green_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flier/greentree/green"
)

// TestSerde_RoundTrip is spec.md §8 scenario S6: encoding a tree and
// decoding it through a fresh Builder must produce a handle pointer-equal
// to building the same tree directly through that Builder (property 7).
func TestSerde_RoundTrip(t *testing.T) {
	t.Parallel()

	src := green.NewBuilder()
	original := buildSExpr(t, src)

	data, err := green.EncodeNode(original)
	require.NoError(t, err)

	dst := green.NewBuilder()
	decoded, err := dst.DecodeNode(data)
	require.NoError(t, err)

	direct := buildSExpr(t, dst)
	assert.Same(t, direct, decoded)
}

func TestSerde_TaggedElementShape(t *testing.T) {
	t.Parallel()

	b := green.NewBuilder()
	tok := b.Token(kindAtom, "x")

	data, err := green.EncodeElement(green.OfToken[*green.Node, *green.Token](tok))
	require.NoError(t, err)
	assert.JSONEq(t, `{"Token":{"kind":3,"text":"x"}}`, string(data))
}

// TestSerde_UntaggedForm covers spec.md §4.7's "self-describing formats may
// additionally accept the untagged form": a bare object distinguished only
// by having a "children" or "text" field, with no Node/Token wrapper.
func TestSerde_UntaggedForm(t *testing.T) {
	t.Parallel()

	b := green.NewBuilder()

	node, err := b.DecodeNode([]byte(`{
		"kind": 4,
		"children": [
			{"kind": 3, "text": "a"},
			{"kind": 4, "children": [{"kind": 3, "text": "b"}]}
		]
	}`))
	require.NoError(t, err)

	assert.Equal(t, kindList, node.Kind())
	assert.Equal(t, 2, node.NumChildren())

	el, ok := node.Children().Get(0)
	require.True(t, ok)
	tok, ok := el.Token()
	require.True(t, ok)
	assert.Equal(t, "a", tok.Text())
}

// TestSerde_FailedChildReleasesPriorSiblings is the exception-safety case
// (spec.md §4.3 point 4, §7): if decoding child k fails, children 0..k
// already interned must be released rather than leak an extra reference,
// so the pool returns to its pre-decode size once the error propagates.
func TestSerde_FailedChildReleasesPriorSiblings(t *testing.T) {
	t.Parallel()

	b := green.NewBuilder()
	sizeBefore := b.Size()

	_, err := b.DecodeNode([]byte(`{
		"kind": 4,
		"children": [
			{"Token": {"kind": 3, "text": "ok"}},
			{"NeitherNodeNorToken": true}
		]
	}`))
	require.Error(t, err)

	b.GC()
	assert.Equal(t, sizeBefore, b.Size())
}

func TestSerde_EncodeRoundTripsThroughDecode(t *testing.T) {
	t.Parallel()

	b := green.NewBuilder()
	tok := b.Token(kindAtom, "hello")

	data, err := green.EncodeToken(tok)
	require.NoError(t, err)

	decoded, err := b.DecodeToken(data)
	require.NoError(t, err)
	assert.Same(t, tok, decoded)
}
