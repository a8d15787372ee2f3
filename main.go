package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/swiftprompt/swiftprompt/internal/cli"
	"github.com/swiftprompt/swiftprompt/internal/clipboard"
	"github.com/swiftprompt/swiftprompt/internal/gitrepo"
	"github.com/swiftprompt/swiftprompt/internal/pipeline"
	"github.com/swiftprompt/swiftprompt/internal/verbose"
)

func main() {
	os.Exit(cli.Run(rootCommand(), cli.Options{Args: os.Args[1:]}))
}

func rootCommand() *cli.Command {
	cmd := &cli.Command{
		Name:  "swiftprompt",
		Short: "copy an LLM-ready context bundle for the marked TODO to the clipboard",
		Long: "swiftprompt finds the single '// TODO: ChatGPT:' (or legacy '// TODO: -')\n" +
			"instruction comment in a Swift repository, resolves the type names used near\n" +
			"it to the files declaring them, and copies those files plus the instruction\n" +
			"to the clipboard as one bundle.\n\n" +
			"With no root argument, the enclosing git repository's root is used.",
		Example: "swiftprompt --slim ~/code/MyApp\nswiftprompt --diff-branch main --exclude Generated.swift",
	}

	fs := cmd.Flags()
	slim := fs.Bool("slim", 's', false, "restrict to the instruction file and model-like files")
	singular := fs.Bool("singular", '1', false, "include only the instruction file")
	global := fs.Bool("global", 'g', false, "ignore package boundaries when searching")
	references := fs.Bool("references", 'r', false, "also include files referencing the enclosing type")
	diffBranch := fs.String("diff-branch", 'd', "", "annotate changed files with a diff against this branch")
	excludes := fs.StringSlice("exclude", 'x', "basename to exclude from the bundle")
	verboseFlag := fs.Bool("verbose", 'v', false, "trace resolution steps to stderr")

	cmd.Args = func(args []string) error {
		if len(args) > 1 {
			return cli.Usagef("expected at most one root argument, got %d", len(args))
		}
		return nil
	}

	cmd.Run = func(c *cli.Context) error {
		var log *verbose.Logger
		if *verboseFlag {
			log = verbose.New(c.Err)
		}

		var root string
		if len(c.Args) == 1 {
			root = c.Args[0]
		} else {
			discovered, err := gitrepo.Root(".")
			if err != nil {
				return fmt.Errorf("no root argument and %w", err)
			}
			root = discovered
		}

		res, err := pipeline.Run(pipeline.Config{
			Root:              root,
			Slim:              *slim,
			Singular:          *singular,
			ForceGlobal:       *global,
			IncludeReferences: *references,
			DiffBranch:        *diffBranch,
			Excludes:          *excludes,
			Log:               log,
		})
		if err != nil {
			return err
		}

		if res.SizeWarning != "" {
			fmt.Fprintln(c.Out, res.SizeWarning)
		}

		return deliver(c, res)
	}

	return cmd
}

// deliver hands the bundle to the clipboard, falling back to stdout when no
// clipboard utility exists and stdout is not an interactive terminal.
func deliver(c *cli.Context, res *pipeline.Result) error {
	if clipboard.Available() {
		if err := clipboard.Write(res.Bundle); err != nil {
			return fmt.Errorf("copy bundle to clipboard: %w", err)
		}
		fmt.Fprintf(c.Out, "copied %d files (%d characters) to the clipboard\n", len(res.Files), len(res.Bundle))
		return nil
	}

	if f, ok := c.Out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return fmt.Errorf("clipboard unavailable; redirect stdout to receive the bundle instead")
	}
	_, err := fmt.Fprint(c.Out, res.Bundle)
	return err
}
