package green

import (
	"math"
	"unsafe"
)

// Kind is an opaque tag assigned by the consumer to every token and node.
// The tree itself never interprets it.
type Kind uint16

// TextSize is a byte offset or byte length into UTF-8 text.
type TextSize uint32

// MaxTextSize is the largest representable TextSize.
const MaxTextSize = math.MaxUint32

// MaxChildren is the largest number of children a single node may hold.
const MaxChildren = math.MaxUint16

func init() {
	// SPEC_FULL.md / spec.md §3.2 require rejecting targets where TextSize
	// cannot fit the platform word, mirroring sorbus's
	// compile_error!("... u32 or u64") and its transmute::<u32, TextSize>
	// assertion. Every Go GOARCH in active use has a >=32-bit uintptr, so
	// this can only fire on a hypothetical future 16-bit port.
	if unsafe.Sizeof(uintptr(0)) < 4 {
		panic("greentree: TextSize requires a platform with at least a 32-bit word size")
	}
}
