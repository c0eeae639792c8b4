package green

import "github.com/flier/greentree/internal/assert"

// Checkpoint is a saved position in a TreeBuilder's child buffer that can
// later become the start of a retroactively-inserted node (spec.md §4.6,
// the Pratt-parser motivation in the GLOSSARY).
type Checkpoint int

type frame struct {
	kind       Kind
	firstChild int
}

// TreeBuilder is the stack-oriented top-down constructor built on top of a
// Builder (spec.md §4.6): a parser drives it with StartNode/Token/
// Checkpoint/StartNodeAt/FinishNode, and every FinishNode* call routes
// through the Builder's interning so identical subtrees within (or across)
// a shared Builder collapse onto one allocation.
type TreeBuilder struct {
	cache    *Builder
	stack    []frame
	children []Element
}

// NewTreeBuilder constructs a TreeBuilder backed by a fresh Builder.
func NewTreeBuilder() *TreeBuilder {
	return NewTreeBuilderWith(NewBuilder())
}

// NewTreeBuilderWith constructs a TreeBuilder reusing an existing Builder,
// so that a caller parsing many inputs can keep one shared interning pool
// across trees (original_source/src/green/builder.rs's
// `Builder::new_with`).
func NewTreeBuilderWith(cache *Builder) *TreeBuilder {
	return &TreeBuilder{cache: cache}
}

// Cache returns the Builder backing this TreeBuilder.
func (b *TreeBuilder) Cache() *Builder { return b.cache }

// Add appends an already-interned element to the current branch.
func (b *TreeBuilder) Add(el Element) *TreeBuilder {
	b.children = append(b.children, el)

	return b
}

// Token interns a token of the given kind and text through the backing
// Builder and appends it to the current branch.
func (b *TreeBuilder) Token(kind Kind, text string) *TreeBuilder {
	return b.Add(OfToken[*Node, *Token](b.cache.Token(kind, text)))
}

// Node interns a node of the given kind over children through the backing
// Builder and appends the result to the current branch.
func (b *TreeBuilder) Node(kind Kind, children []Element) *TreeBuilder {
	return b.Add(OfNode[*Node, *Token](b.cache.Node(kind, children)))
}

// StartNode pushes a new frame and makes it the current branch: every
// Token/Add/Node call until the matching FinishNode becomes one of its
// children.
func (b *TreeBuilder) StartNode(kind Kind) *TreeBuilder {
	b.stack = append(b.stack, frame{kind: kind, firstChild: len(b.children)})

	return b
}

// FinishNode pops the current branch, interns a node of its kind over every
// child added since the matching StartNode, and appends the result to the
// (now current) parent branch. Faults if the frame stack is empty
// (spec.md §6.4).
func (b *TreeBuilder) FinishNode() *TreeBuilder {
	assert.That(len(b.stack) > 0, "FinishNode called without a matching StartNode")

	top := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]

	children := append([]Element(nil), b.children[top.firstChild:]...)
	b.children = b.children[:top.firstChild]

	return b.Node(top.kind, children)
}

// Checkpoint captures the current length of the child buffer, to later
// retroactively wrap the elements added since into a new node via
// StartNodeAt or FinishNodeAt.
func (b *TreeBuilder) Checkpoint() Checkpoint {
	return Checkpoint(len(b.children))
}

// StartNodeAt pushes a new frame whose first child is an earlier
// checkpoint rather than the buffer's current length, making the elements
// added between the checkpoint and now retroactively become that frame's
// leading children once finished. This is what lets a Pratt parser wrap
// previously emitted siblings into a newly discovered higher-precedence
// node (GLOSSARY: Checkpoint, Pratt parser).
//
// Faults if checkpoint no longer lies within the currently open branch:
// either past the buffer's current length (a FinishNode already drained
// it) or before the enclosing frame's own first child (an unmatched
// StartNode happened since) — spec.md §6.4 and SPEC_FULL.md's
// supplemented-features note 1.
func (b *TreeBuilder) StartNodeAt(checkpoint Checkpoint, kind Kind) *TreeBuilder {
	assert.That(int(checkpoint) <= len(b.children),
		"checkpoint %d no longer valid: past the buffer's current length %d (was FinishNode called early?)",
		checkpoint, len(b.children))

	if len(b.stack) > 0 {
		top := b.stack[len(b.stack)-1]
		assert.That(int(checkpoint) >= top.firstChild,
			"checkpoint %d no longer valid: precedes the enclosing branch's first child %d (was an unmatched StartNode called?)",
			checkpoint, top.firstChild)
	}

	b.stack = append(b.stack, frame{kind: kind, firstChild: int(checkpoint)})

	return b
}

// FinishNodeAt is the asymmetric counterpart to FinishNode: it wraps only
// children[firstChild:checkpoint] into the new node, leaving whatever was
// added after the checkpoint as later siblings of that node in the parent
// branch. More expensive than FinishNode because the tail must be shifted
// down over the wrapped range.
func (b *TreeBuilder) FinishNodeAt(checkpoint Checkpoint) *TreeBuilder {
	assert.That(int(checkpoint) <= len(b.children),
		"checkpoint %d no longer valid: past the buffer's current length %d (was FinishNode called early?)",
		checkpoint, len(b.children))

	assert.That(len(b.stack) > 0, "FinishNodeAt called without a matching StartNode")

	top := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]

	assert.That(int(checkpoint) >= top.firstChild,
		"checkpoint %d no longer valid: precedes the enclosing branch's first child %d (was an unmatched StartNode called?)",
		checkpoint, top.firstChild)

	wrapped := append([]Element(nil), b.children[top.firstChild:checkpoint]...)
	tail := append([]Element(nil), b.children[checkpoint:]...)
	b.children = b.children[:top.firstChild]

	b.Node(top.kind, wrapped)
	b.children = append(b.children, tail...)

	return b
}

// Finish asserts the frame stack is empty and exactly one element remains
// in the buffer, then returns it as the completed tree's root, resetting
// the builder so it may be reused to build another tree sharing the same
// Builder cache.
func (b *TreeBuilder) Finish() *Node {
	assert.That(len(b.stack) == 0, "Finish called with %d node(s) still open", len(b.stack))
	assert.That(len(b.children) == 1,
		"Finish called with %d elements at the root, expected exactly 1", len(b.children))

	root := b.children[0].UnwrapNode()
	b.children = nil

	return root
}

// Recycle discards this TreeBuilder and returns its Builder cache, so a
// caller can construct another TreeBuilder over the same interning pool
// (original_source/src/green/builder.rs's `TreeBuilder::recycle`).
func (b *TreeBuilder) Recycle() *Builder {
	return b.cache
}
