// Package assert implements the fault-on-programmer-error discipline used
// throughout greentree: every documented fault (an out-of-range offset, an
// oversized child count, an unbalanced builder stack, ...) is a programmer
// error, and is reported by panicking rather than by a status return.
//
// The check and its panic message are the same in every build; the debug
// build tag only decides whether Log prints trace lines (see debug.go /
// release.go), mirroring the split github.com/flier/goutil draws between
// its internal/debug.Log and the no-op build without the debug tag — except
// that here the assertion can never be compiled out, since spec faults must
// abort unconditionally.
package assert

import "fmt"

// That panics with a formatted message if cond is false.
func That(cond bool, format string, args ...any) {
	if !cond {
		panic(fault(format, args...))
	}
}

// Fail unconditionally panics with a formatted message.
func Fail(format string, args ...any) {
	panic(fault(format, args...))
}

func fault(format string, args ...any) error {
	return fmt.Errorf("greentree: "+format, args...)
}
