package verbose

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// Logger is a minimal printf-style trace logger. It is threaded explicitly
// through the pipeline rather than read from ambient process state, so tests
// can capture output and stages stay pure with respect to their inputs.
//
// A nil *Logger is valid and silent, as is a Logger constructed with a nil
// writer.
type Logger struct {
	mu sync.Mutex
	w  io.Writer
}

// New returns a Logger writing to w. Pass nil to get a silent logger.
func New(w io.Writer) *Logger {
	return &Logger{w: w}
}

// Enabled reports whether Logf would write anything. Callers computing an
// expensive value purely for logging should check it first.
func (l *Logger) Enabled() bool {
	return l != nil && l.w != nil
}

// Logf formats its arguments and writes them to the logger's writer, appending
// a newline if the message doesn't end in one.
func (l *Logger) Logf(format string, args ...any) {
	if l == nil || l.w == nil {
		return
	}

	// Serialize writes so parallel workers don't interleave within a line.
	l.mu.Lock()
	defer l.mu.Unlock()

	var b bytes.Buffer
	_, _ = fmt.Fprintf(&b, format, args...)
	if b.Len() == 0 || b.Bytes()[b.Len()-1] != '\n' {
		_ = b.WriteByte('\n')
	}
	_, _ = l.w.Write(b.Bytes())
}
