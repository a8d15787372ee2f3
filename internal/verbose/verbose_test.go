package verbose

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogf_WritesAndAppendsNewline(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)

	l.Logf("hello %s", "world")
	l.Logf("already terminated\n")

	require.Equal(t, "hello world\nalready terminated\n", buf.String())
}

func TestLogf_NilLoggerIsSilent(t *testing.T) {
	var l *Logger
	l.Logf("should not %s", "panic")

	l = New(nil)
	l.Logf("also fine")
}

func TestEnabled(t *testing.T) {
	var l *Logger
	require.False(t, l.Enabled(), "nil logger")
	require.False(t, New(nil).Enabled(), "nil writer")
	require.True(t, New(&bytes.Buffer{}).Enabled())
}
