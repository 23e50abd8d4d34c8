package main

import (
	"context"
	"fmt"
	"io"

	"github.com/fwojciec/htmlcut"
	"github.com/fwojciec/htmlcut/batch"
	"github.com/fwojciec/htmlcut/fs"
)

// stdoutPath selects standard output as the output file.
const stdoutPath = "-"

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	logger := c.Logger(deps.Stderr)
	ext, conv, err := c.Services(logger)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", htmlcut.ErrorMessage(err))
		return err
	}

	output := c.Output
	if output == "" {
		output = fs.OutputPathExt(c.Input, fs.DefaultSuffix, c.outputExt())
	}

	// The report goes to stderr when the document itself goes to stdout.
	out := deps.Stdout
	if output == stdoutPath {
		out = deps.Stderr
	}

	r := &batch.Runner{
		Reader:    deps.Reader,
		Writer:    &stdoutWriter{w: deps.Stdout, next: deps.Writer},
		Extractor: ext,
		Converter: conv,
	}
	rep := r.Process(deps.Ctx, batch.Job{Input: c.Input, Output: output})
	if rep.Err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", htmlcut.ErrorMessage(rep.Err))
		return rep.Err
	}

	if rep.Outcome == htmlcut.OutcomePassThrough {
		fmt.Fprintln(deps.Stderr, "Target not found; the input was written unchanged.")
		if rep.Result != nil {
			for _, cand := range rep.Result.Candidates {
				fmt.Fprintf(deps.Stderr, "  candidate: class=%q\n", cand)
			}
		}
	}

	printReport(out, rep)
	return nil
}

// printReport writes the size reduction summary of one job.
func printReport(w io.Writer, rep batch.Report) {
	dest := rep.Output
	if dest == stdoutPath {
		dest = "stdout"
	}
	fmt.Fprintf(w, "Wrote %s (%s)\n", dest, rep.Outcome)
	fmt.Fprintf(w, "  size: %s\n", batch.FormatReduction(rep.InputBytes, rep.OutputBytes))
	if res := rep.Result; res != nil && res.Outcome == htmlcut.OutcomeExtracted {
		fmt.Fprintf(w, "  resources: %d preserved", res.Preserved)
		if res.Dropped > 0 {
			fmt.Fprintf(w, ", %d dropped", res.Dropped)
		}
		if res.Skipped > 0 {
			fmt.Fprintf(w, ", %d skipped", res.Skipped)
		}
		fmt.Fprintln(w)
	}
}

// stdoutWriter writes documents addressed to "-" to w and everything else
// to next.
type stdoutWriter struct {
	w    io.Writer
	next htmlcut.DocumentWriter
}

func (s *stdoutWriter) WriteDocument(ctx context.Context, path, content string) error {
	if path != stdoutPath {
		return s.next.WriteDocument(ctx, path, content)
	}
	_, err := io.WriteString(s.w, content)
	return err
}
