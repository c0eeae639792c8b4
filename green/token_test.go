package green_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flier/greentree/green"
)

func TestToken(t *testing.T) {
	t.Parallel()

	b := green.NewBuilder()

	tok := b.Token(3, "hello")
	assert.Equal(t, green.Kind(3), tok.Kind())
	assert.Equal(t, "hello", tok.Text())
	assert.Equal(t, green.TextSize(5), tok.Len())
}

func TestToken_EmptyText(t *testing.T) {
	t.Parallel()

	b := green.NewBuilder()

	tok := b.Token(0, "")
	assert.Equal(t, green.TextSize(0), tok.Len())
	assert.Equal(t, "", tok.Text())
}

// TestToken_Interning covers spec.md §8 property 4: interning the same
// (kind, text) pair twice through the same Builder yields a pointer-equal
// handle.
func TestToken_Interning(t *testing.T) {
	t.Parallel()

	b := green.NewBuilder()

	a := b.Token(3, "atom")
	c := b.Token(3, "atom")
	assert.Same(t, a, c)

	// distinct kind or text must not collide
	d := b.Token(4, "atom")
	e := b.Token(3, "atoms")
	assert.NotSame(t, a, d)
	assert.NotSame(t, a, e)
}

// TestToken_InterningByContent verifies the Builder hashes text by content,
// not by the backing array's address: two independently allocated strings
// with equal bytes must still collide (spec.md §4.5).
func TestToken_InterningByContent(t *testing.T) {
	t.Parallel()

	b := green.NewBuilder()

	buf1 := []byte("shared")
	buf2 := append([]byte(nil), "shared"...)

	a := b.Token(1, string(buf1))
	c := b.Token(1, string(buf2))
	assert.Same(t, a, c)
}
