package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCommand() (*Command, *bool, *string, *[]string) {
	cmd := &Command{Name: "tool", Short: "does things"}
	verbose := cmd.Flags().Bool("verbose", 'v', false, "enable trace output")
	branch := cmd.Flags().String("branch", 0, "", "comparison branch")
	excludes := cmd.Flags().StringSlice("exclude", 'x', "basename to exclude")
	return cmd, verbose, branch, excludes
}

func TestRun_FlagParsing(t *testing.T) {
	cmd, verbose, branch, excludes := newTestCommand()
	var gotArgs []string
	cmd.Run = func(c *Context) error {
		gotArgs = c.Args
		return nil
	}

	code := Run(cmd, Options{Args: []string{"-v", "--branch", "main", "-x", "A.swift", "--exclude=B.swift", "positional"}})
	require.Equal(t, 0, code)
	assert.True(t, *verbose)
	assert.Equal(t, "main", *branch)
	assert.Equal(t, []string{"A.swift", "B.swift"}, *excludes)
	assert.Equal(t, []string{"positional"}, gotArgs)
}

func TestRun_DashDashEndsFlagParsing(t *testing.T) {
	cmd, verbose, _, _ := newTestCommand()
	var gotArgs []string
	cmd.Run = func(c *Context) error {
		gotArgs = c.Args
		return nil
	}

	code := Run(cmd, Options{Args: []string{"--", "-v", "literal"}})
	require.Equal(t, 0, code)
	assert.False(t, *verbose)
	assert.Equal(t, []string{"-v", "literal"}, gotArgs)
}

func TestRun_UnknownFlag(t *testing.T) {
	cmd, _, _, _ := newTestCommand()
	cmd.Run = func(c *Context) error { return nil }

	var errOut bytes.Buffer
	code := Run(cmd, Options{Args: []string{"--bogus"}, Err: &errOut})
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut.String(), "unknown flag: --bogus")
	assert.Contains(t, errOut.String(), "Usage:")
}

func TestRun_MissingFlagValue(t *testing.T) {
	cmd, _, _, _ := newTestCommand()
	cmd.Run = func(c *Context) error { return nil }

	var errOut bytes.Buffer
	code := Run(cmd, Options{Args: []string{"--branch"}, Err: &errOut})
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut.String(), "flag needs a value")
}

func TestRun_Help(t *testing.T) {
	cmd, _, _, _ := newTestCommand()
	cmd.Example = "tool --branch main ."
	cmd.Run = func(c *Context) error { t.Fatal("handler must not run"); return nil }

	var out bytes.Buffer
	code := Run(cmd, Options{Args: []string{"--help"}, Out: &out})
	require.Equal(t, 0, code)
	assert.Contains(t, out.String(), "tool - does things")
	assert.Contains(t, out.String(), "--exclude <string (repeatable)>")
	assert.Contains(t, out.String(), "Example:")
}

func TestRun_HandlerErrorCodes(t *testing.T) {
	cmd := &Command{Name: "tool"}
	cmd.Run = func(c *Context) error { return errors.New("boom") }
	var errOut bytes.Buffer
	assert.Equal(t, 1, Run(cmd, Options{Err: &errOut}))
	assert.Contains(t, errOut.String(), "boom")

	cmd = &Command{Name: "tool"}
	cmd.Run = func(c *Context) error { return ExitError{Code: 3, Err: errors.New("bad")} }
	assert.Equal(t, 3, Run(cmd, Options{Err: &bytes.Buffer{}}))

	cmd = &Command{Name: "tool"}
	cmd.Run = func(c *Context) error { return Usagef("wrong usage") }
	errOut.Reset()
	assert.Equal(t, 2, Run(cmd, Options{Err: &errOut}))
	assert.Contains(t, errOut.String(), "wrong usage")
}

func TestRun_ArgsValidation(t *testing.T) {
	cmd := &Command{
		Name: "tool",
		Args: func(args []string) error {
			if len(args) > 1 {
				return Usagef("expected at most 1 arg, got %d", len(args))
			}
			return nil
		},
		Run: func(c *Context) error { return nil },
	}

	assert.Equal(t, 0, Run(cmd, Options{Args: []string{"one"}, Err: &bytes.Buffer{}}))

	var errOut bytes.Buffer
	assert.Equal(t, 2, Run(cmd, Options{Args: []string{"one", "two"}, Err: &errOut}))
	assert.Contains(t, errOut.String(), "expected at most 1 arg")
}

func TestRun_BoolFlagConsumesLiteralBool(t *testing.T) {
	cmd, verbose, _, _ := newTestCommand()
	var gotArgs []string
	cmd.Run = func(c *Context) error {
		gotArgs = c.Args
		return nil
	}

	code := Run(cmd, Options{Args: []string{"--verbose", "false", "arg"}})
	require.Equal(t, 0, code)
	assert.False(t, *verbose)
	assert.Equal(t, []string{"arg"}, gotArgs)
}
