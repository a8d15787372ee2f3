// Package cli is a small single-command CLI runner: typed flags bound to
// variables, positional args, help text, and error-to-exit-code mapping.
package cli

import (
	"fmt"
	"io"
	"os"
)

// RunFunc is the command handler.
type RunFunc func(c *Context) error

// ArgsFunc validates positional args. It should return a UsageError (or any
// ExitCoder with code 2) for user-facing usage mistakes.
type ArgsFunc func(args []string) error

// Command describes the program: its flags, arg validation, and handler.
type Command struct {
	// Name is the program name as shown in usage and help output.
	Name string

	Short   string
	Long    string
	Example string

	Args ArgsFunc // optional
	Run  RunFunc  // required

	flags *FlagSet
}

// Flags returns the command's flag set, creating it on first use.
func (c *Command) Flags() *FlagSet {
	if c.flags == nil {
		c.flags = newFlagSet()
	}
	return c.flags
}

// Options configure Run's I/O and argv.
type Options struct {
	// Args is the argv excluding the program name (typically os.Args[1:]).
	Args []string

	// Out/Err override standard output and error. If nil, defaults are used.
	Out io.Writer
	Err io.Writer
}

// Context is passed to the command handler. Flag values are read via the
// variables bound at flag-registration time.
type Context struct {
	Command *Command
	Args    []string

	Out io.Writer
	Err io.Writer
}

// Run executes the command as a CLI program and returns a process exit code.
func Run(cmd *Command, opts Options) int {
	if cmd == nil || cmd.Run == nil {
		panic("cli: Run called without a runnable command")
	}
	if cmd.Name == "" {
		panic("cli: Run called with empty command Name")
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	errOut := opts.Err
	if errOut == nil {
		errOut = os.Stderr
	}

	args, helpRequested, err := cmd.Flags().parse(opts.Args)
	if helpRequested {
		writeHelp(out, cmd)
		return 0
	}
	if err != nil {
		printUsageError(cmd, err, errOut)
		return 2
	}

	if cmd.Args != nil {
		if err := cmd.Args(args); err != nil {
			return exitFor(cmd, err, errOut, true)
		}
	}

	c := &Context{Command: cmd, Args: args, Out: out, Err: errOut}
	if err := cmd.Run(c); err != nil {
		return exitFor(cmd, err, errOut, false)
	}
	return 0
}

// exitFor maps a handler or validation error to an exit code. usageDefault
// controls how plain errors are treated: arg validation failures default to
// usage errors, handler failures to code 1.
func exitFor(cmd *Command, err error, errOut io.Writer, usageDefault bool) int {
	if ec, ok := asExitCoder(err); ok {
		code := ec.ExitCode()
		switch {
		case code == 2:
			printUsageError(cmd, err, errOut)
			return 2
		case code == 0:
			return 0
		default:
			if msg := err.Error(); msg != "" {
				fmt.Fprintln(errOut, msg)
			}
			return code
		}
	}

	if usageDefault {
		printUsageError(cmd, err, errOut)
		return 2
	}
	if msg := err.Error(); msg != "" {
		fmt.Fprintln(errOut, msg)
	}
	return 1
}

func printUsageError(cmd *Command, err error, errOut io.Writer) {
	if err != nil && err.Error() != "" {
		fmt.Fprintln(errOut, err.Error())
		fmt.Fprintln(errOut)
	}
	writeHelp(errOut, cmd)
}
