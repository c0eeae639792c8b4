package green

import (
	"unsafe"

	"github.com/flier/greentree/internal/layout"
)

// element is the physical representation of one child slot inside a node's
// children array: logically the pair (offset TextSize, child NodeOrToken).
//
// spec.md §4.1 describes an alternating full/half-aligned byte layout that
// eliminates the 4 bytes of tail padding a naive (pointer, TextSize) pair
// wastes on a 64-bit target, recovering the discriminant for free from the
// pointer's spare low bit. That layout requires reinterpreting a node's
// trailing bytes at hand-computed offsets with no per-slot static type —
// exactly the shape Go's precise, type-directed garbage collector cannot
// trace: the collector only knows which words of memory hold pointers by
// consulting the static type of the storage location, so a pointer value
// sitting inside a []byte (or any byte-addressed reinterpretation of one) is
// invisible to it and may be collected out from under a live reference.
// SPEC_FULL.md's "Open Questions" note sanctions exactly this situation:
// "an implementer who cannot replicate the packing ... should fall back to
// the naive (offset, pointer) slot and document the resulting per-child
// overhead." That is what element does.
//
// It still keeps the discriminant out of a separate field. unsafe.Pointer is itself a
// GC-traced type (unlike uintptr), and the Go spec's pointer-arithmetic rule
// ("conversion of a Pointer to a uintptr and back, with arithmetic, in a
// single expression") is the standard, supported way to tag its low bit: the
// resulting value still points one byte into a live, >=2-byte-aligned
// allocation, which Go's span-based interior-pointer tracing keeps alive
// exactly as it would keep alive a pointer to the allocation's first byte.
// So ref below stores the child pointer with its discriminant folded into
// bit 0, rather than a separate tag byte, keeping element at one
// pointer-word plus one TextSize: 8 bytes on a 32-bit target instead of the
// 12 a pointer + byte discriminant + TextSize struct takes there. On a
// 64-bit target both shapes pad to 16 bytes, so the tag bit saves nothing
// there.
type element struct {
	offset TextSize
	ref    unsafe.Pointer
}

const tokenTag = uintptr(1)

func init() {
	// spec.md §6.2: node and token allocations must be at least 2-byte
	// aligned to free a tag bit. Both structs embed a sync/atomic.Int32
	// refcount field, which forces at least 4-byte alignment on every
	// platform Go targets, but this is asserted rather than assumed.
	if layout.Align[Node]() < 2 || layout.Align[Token]() < 2 {
		panic("greentree: Node and Token allocations must be at least 2-byte aligned")
	}
}

func elementOfNode(offset TextSize, n *Node) element {
	return element{offset: offset, ref: unsafe.Pointer(n)}
}

func elementOfToken(offset TextSize, t *Token) element {
	return element{offset: offset, ref: unsafe.Pointer(uintptr(unsafe.Pointer(t)) | tokenTag)}
}

func elementOf(offset TextSize, v Element) element {
	if t, ok := v.Token(); ok {
		return elementOfToken(offset, t)
	}
	n, _ := v.Node()
	return elementOfNode(offset, n)
}

func (e element) isToken() bool { return uintptr(e.ref)&tokenTag != 0 }

func (e element) asNode() *Node { return (*Node)(e.ref) }

func (e element) asToken() *Token {
	return (*Token)(unsafe.Pointer(uintptr(e.ref) &^ tokenTag))
}

func (e element) len() TextSize {
	if e.isToken() {
		return e.asToken().Len()
	}
	return e.asNode().Len()
}

func (e element) kind() Kind {
	if e.isToken() {
		return e.asToken().Kind()
	}
	return e.asNode().Kind()
}

// toElement converts the internal packed slot into the public borrow type.
func (e element) toElement() Element {
	if e.isToken() {
		return OfToken[*Node, *Token](e.asToken())
	}
	return OfNode[*Node, *Token](e.asNode())
}

// release drops the one reference this slot holds on its child. Builder.Node
// uses it to undo a discarded dedup candidate's hold on its children (see
// builder.go); newNode never retains a child on construction, since
// ownership of the reference a child arrived with transfers directly into
// the node's slot, so release is this file's only half of that pairing.
func (e element) release() {
	if e.isToken() {
		e.asToken().Release()
	} else {
		e.asNode().Release()
	}
}

// identity is the tagged pointer bit-pattern used as the node pool's dedup
// key for a single child slot: spec.md §4.5 / §9 require deduping
// nodes by the pointer identity of their children, not by deep equality.
func (e element) identity() uint64 {
	return uint64(uintptr(e.ref))
}
