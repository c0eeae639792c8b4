//go:build !debug

package assert

// Enabled reports whether the binary was built with the debug tag, which
// enables caller-site tracing for Log.
const Enabled = false

// Log is a no-op outside of debug builds.
func Log(op string, format string, args ...any) {}
