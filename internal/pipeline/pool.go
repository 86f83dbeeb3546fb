package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/backmassage/jxlmigrate/internal/planner"
)

// Task processes one file to completion. A non-nil error is turned into a
// Failed outcome by the pool.
type Task func(ctx context.Context, src SourceFile) (Outcome, error)

type job struct {
	index int
	src   SourceFile
}

type result struct {
	index   int
	outcome Outcome
}

// RunPool runs task for every file on a fixed pool of workers and returns the
// outcomes in the order of files. onDone, when non-nil, is called once per
// outcome from the single collecting goroutine, so it needs no locking.
//
// Errors and panics raised by a task are contained: the file becomes Failed
// and the remaining files carry on. Once ctx is cancelled no new file is
// started; files not yet started become Skipped("interrupted"). Running tasks
// are always allowed to finish. RunPool returns only after every task has
// returned.
func RunPool(ctx context.Context, files []SourceFile, workers int, task Task, onDone func(Outcome)) []Outcome {
	outcomes := make([]Outcome, len(files))
	if len(files) == 0 {
		return outcomes
	}
	if workers < 1 {
		workers = 1
	}
	if workers > len(files) {
		workers = len(files)
	}

	jobs := make(chan job)
	results := make(chan result, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results <- result{index: j.index, outcome: runTask(ctx, task, j.src)}
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(jobs)
		dispatch(ctx, files, jobs, results)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	for r := range results {
		outcomes[r.index] = r.outcome
		if onDone != nil {
			onDone(r.outcome)
		}
	}
	return outcomes
}

// dispatch feeds files to the workers in order until ctx is cancelled, then
// reports every remaining file as interrupted.
func dispatch(ctx context.Context, files []SourceFile, jobs chan<- job, results chan<- result) {
	for i, f := range files {
		if ctx.Err() == nil {
			select {
			case jobs <- job{index: i, src: f}:
				continue
			case <-ctx.Done():
			}
		}
		results <- result{index: i, outcome: interrupted(f)}
	}
}

// runTask calls task and converts errors and panics into Failed outcomes.
func runTask(ctx context.Context, task Task, src SourceFile) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = failed(src, actionOf(src), ReasonInternalError, fmt.Errorf("panic: %v", r))
		}
	}()

	o, err := task(ctx, src)
	if err != nil {
		return failureFromError(src, err)
	}
	return o
}

func failureFromError(src SourceFile, err error) Outcome {
	reason := err.Error()
	var se *StageError
	if errors.As(err, &se) && se.Stage == StageProbe {
		reason = ReasonProbeError
	}
	return failed(src, actionOf(src), reason, err)
}

func interrupted(src SourceFile) Outcome {
	return skipped(src, actionOf(src), ReasonInterrupted)
}

// actionOf classifies src for outcomes built outside the converter. The
// action does not depend on the conversion options.
func actionOf(src SourceFile) planner.Action {
	return planner.Classify(src.Path, planner.Options{}).Action
}
