package layout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flier/greentree/internal/layout"
)

func TestRoundUp(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 8, layout.RoundUp(8, 8))
	assert.Equal(t, 16, layout.RoundUp(9, 8))
	assert.Equal(t, 16, layout.RoundUp(16, 8))
	assert.Equal(t, 5, layout.RoundUp(5, 0))
}

func TestOf(t *testing.T) {
	t.Parallel()

	l := layout.Of[uint64]()
	assert.Equal(t, 8, l.Size)
	assert.Equal(t, 8, l.Align)
}
