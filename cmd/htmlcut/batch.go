package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/htmlcut"
	"github.com/fwojciec/htmlcut/batch"
	"github.com/fwojciec/htmlcut/fs"
)

// Run executes the batch command.
func (c *BatchCmd) Run(deps *Dependencies) error {
	logger := c.Logger(deps.Stderr)
	ext, conv, err := c.Services(logger)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", htmlcut.ErrorMessage(err))
		return err
	}

	jobs := make([]batch.Job, 0, len(c.Inputs))
	for _, input := range c.Inputs {
		output := fs.OutputPathExt(input, c.Suffix, c.outputExt())
		if c.OutDir != "" {
			output = filepath.Join(c.OutDir, filepath.Base(output))
		}
		jobs = append(jobs, batch.Job{Input: input, Output: output})
	}

	r := &batch.Runner{
		Reader:      deps.Reader,
		Writer:      deps.Writer,
		Extractor:   ext,
		Converter:   conv,
		Concurrency: c.Concurrency,
	}

	summary, err := r.Run(deps.Ctx, jobs, func(ev batch.ProgressEvent) {
		switch ev.Type {
		case batch.ProgressCompleted:
			fmt.Fprintf(deps.Stderr, "[%d/%d] %s %s\n", ev.Completed, ev.Total,
				batch.ShortPath(ev.Report.Input, 60), ev.Report.Outcome)
		case batch.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "[%d/%d] %s failed: %s\n", ev.Completed, ev.Total,
				batch.ShortPath(ev.Report.Input, 60), htmlcut.ErrorMessage(ev.Report.Err))
		}
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", htmlcut.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Processed %d files: %d extracted, %d passed through, %d failed\n",
		len(jobs), summary.Extracted, summary.PassThrough, summary.Failed)
	fmt.Fprintf(deps.Stdout, "  size: %s\n", batch.FormatReduction(summary.InputBytes, summary.OutputBytes))

	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d files failed", summary.Failed, len(jobs))
	}
	return nil
}
