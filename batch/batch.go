// Package batch runs extractions over files.
// It coordinates reading, extraction, optional Markdown conversion, and
// writing for one or many documents.
package batch

import (
	"context"
	"path/filepath"
	"sync/atomic"

	"github.com/fwojciec/htmlcut"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of documents processed at once when
// Runner.Concurrency is not set.
const DefaultConcurrency = 4

// Runner orchestrates extraction jobs.
type Runner struct {
	Reader    htmlcut.DocumentReader
	Writer    htmlcut.DocumentWriter
	Extractor htmlcut.Extractor

	// Converter, when set, turns the output into Markdown before writing.
	Converter htmlcut.Converter

	Concurrency int
}

// Job names one input document and where its output goes.
type Job struct {
	Input  string
	Output string
}

// Report holds the outcome of a single job.
type Report struct {
	Job

	Outcome     htmlcut.Outcome
	InputBytes  int
	OutputBytes int
	InputHash   string
	OutputHash  string

	// Result is the extraction result. Nil when the job failed before or
	// during extraction.
	Result *htmlcut.Result

	Err error
}

// Summary aggregates the reports of a run. Reports are in job order.
// Byte totals cover successful jobs only.
type Summary struct {
	Reports     []Report
	Extracted   int
	PassThrough int
	Failed      int
	InputBytes  int
	OutputBytes int
}

// ProgressEvent reports progress during a run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Report    *Report
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting run progress.
type ProgressFunc func(event ProgressEvent)

// Run processes every job and returns a summary in job order.
// A failing job is counted and reported, not fatal. A job whose output path
// was already claimed by an earlier job fails with EINVALID without being
// run. The returned error is non-nil only when ctx is done before all jobs
// were attempted.
func (r *Runner) Run(ctx context.Context, jobs []Job, progress ProgressFunc) (*Summary, error) {
	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(jobs)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	type indexed struct {
		position int
		report   Report
	}
	resultCh := make(chan indexed, total)
	collisions := outputCollisions(jobs)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, job := range jobs {
			if err := collisions[i]; err != nil {
				resultCh <- indexed{position: i, report: Report{Job: job, Err: err}}
				continue
			}
			g.Go(func() error {
				resultCh <- indexed{position: i, report: r.Process(gctx, job)}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var completed atomic.Int64
	summary := &Summary{Reports: make([]Report, total)}
	for res := range resultCh {
		n := int(completed.Add(1))
		summary.Reports[res.position] = res.report
		rep := &summary.Reports[res.position]

		typ := ProgressCompleted
		if rep.Err != nil {
			typ = ProgressFailed
		}
		if progress != nil {
			progress(ProgressEvent{Type: typ, Completed: n, Total: total, Report: rep})
		}
	}

	for _, rep := range summary.Reports {
		if rep.Err != nil {
			summary.Failed++
			continue
		}
		summary.InputBytes += rep.InputBytes
		summary.OutputBytes += rep.OutputBytes
		switch rep.Outcome {
		case htmlcut.OutcomeExtracted:
			summary.Extracted++
		case htmlcut.OutcomePassThrough:
			summary.PassThrough++
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	if err := ctx.Err(); err != nil {
		return summary, err
	}
	return summary, nil
}

// outputCollisions returns, by job index, an error for every job writing to
// an output path an earlier job already writes to.
func outputCollisions(jobs []Job) map[int]error {
	owner := make(map[string]string, len(jobs))
	collisions := make(map[int]error)
	for i, job := range jobs {
		key := filepath.Clean(job.Output)
		if first, ok := owner[key]; ok {
			collisions[i] = htmlcut.Errorf(htmlcut.EINVALID, "output %s for %s is already written by %s", job.Output, job.Input, first)
			continue
		}
		owner[key] = job.Input
	}
	return collisions
}

// Process runs a single job: read, extract, convert when configured, write.
// Pass-through results are written as well; their output equals the input.
func (r *Runner) Process(ctx context.Context, job Job) Report {
	rep := Report{Job: job}

	if err := ctx.Err(); err != nil {
		rep.Err = err
		return rep
	}

	input, err := r.Reader.ReadDocument(ctx, job.Input)
	if err != nil {
		rep.Err = err
		return rep
	}
	rep.InputBytes = len(input)
	rep.InputHash = ComputeHash(input)

	res, err := r.Extractor.Extract(input)
	if err != nil {
		rep.Err = err
		return rep
	}
	rep.Result = res
	rep.Outcome = res.Outcome

	output := res.HTML
	if r.Converter != nil {
		src := res.TargetHTML
		if res.Outcome == htmlcut.OutcomePassThrough || src == "" {
			src = res.HTML
		}
		if output, err = r.Converter.Convert(src); err != nil {
			rep.Err = err
			return rep
		}
	}

	if err := r.Writer.WriteDocument(ctx, job.Output, output); err != nil {
		rep.Err = err
		return rep
	}
	rep.OutputBytes = len(output)
	rep.OutputHash = ComputeHash(output)

	return rep
}
