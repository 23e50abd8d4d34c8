package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/htmlcut"
	"github.com/fwojciec/htmlcut/fs"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Storage used by the commands. Replaced in end-to-end tests.
	Reader htmlcut.DocumentReader
	Writer htmlcut.DocumentWriter
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Reader: fs.NewReader(),
		Writer: fs.NewWriter(),
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Reader: m.Reader,
		Writer: m.Writer,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("htmlcut"),
		kong.Description("Cut a dialog subtree out of a saved HTML page"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'htmlcut --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	return kongCtx.Run(deps)
}
