//go:build debug

package assert

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Enabled reports whether the binary was built with the debug tag, which
// enables caller-site tracing for Log.
const Enabled = true

// Log prints a trace line identifying the caller's package, file and line,
// patterned after github.com/flier/goutil's internal/debug.Log. Builder
// calls this on pool hits/misses and GC sweeps; without the debug
// tag it is a no-op (see release.go).
func Log(op, format string, args ...any) {
	pc, file, line, ok := runtime.Caller(1)
	if !ok {
		fmt.Fprintf(os.Stderr, "%s: "+format+"\n", append([]any{op}, args...)...)
		return
	}

	fn := runtime.FuncForPC(pc)
	name := fn.Name()
	if slash := strings.LastIndexByte(name, '/'); slash >= 0 {
		name = name[slash+1:]
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, "%s:%d [%s] %s: ", filepath.Base(file), line, name, op)
	fmt.Fprintf(&buf, format, args...)
	buf.WriteByte('\n')

	os.Stderr.WriteString(buf.String())
}
