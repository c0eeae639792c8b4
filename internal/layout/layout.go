// Package layout includes helpers for working with type layouts.
//
// It is separate from the rest of greentree because nothing in this package
// is actually unsafe: it only reads the sizes and alignments the Go compiler
// already computed for us, the same split github.com/flier/goutil draws
// between pkg/xunsafe and pkg/xunsafe/layout.
package layout

import "unsafe"

// Int is any integer type.
type Int interface {
	int | int8 | int16 | int32 | int64 | uint | uint8 | uint16 | uint32 | uint64 | uintptr
}

// Size returns T's size in bytes.
func Size[T any]() int {
	var z T
	return int(unsafe.Sizeof(z))
}

// Align returns T's required alignment in bytes.
func Align[T any]() int {
	var z T
	return int(unsafe.Alignof(z))
}

// Layout is the size and alignment of some type.
type Layout struct {
	Size, Align int
}

// Of returns the size and alignment of a given type.
func Of[T any]() Layout {
	return Layout{Size[T](), Align[T]()}
}

// RoundUp rounds v up to a multiple of align, which must be a power of two.
func RoundUp[T Int](v, align T) T {
	if align <= 0 {
		return v
	}
	return (v + align - 1) &^ (align - 1)
}
