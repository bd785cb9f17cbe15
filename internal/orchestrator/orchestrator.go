package orchestrator

import (
	"context"
	"log"
	"path/filepath"
	"sync"

	"github.com/ytget/stream-downloader/internal/caption"
	"github.com/ytget/stream-downloader/internal/model"
	"github.com/ytget/stream-downloader/internal/platform"
	"github.com/ytget/stream-downloader/internal/progress"
	"github.com/ytget/stream-downloader/internal/resolve"
	"github.com/ytget/stream-downloader/internal/transcode"
)

// Orchestrator drains all tasks through a fixed-size worker pool
type Orchestrator struct {
	resolver   resolve.Resolver
	captions   caption.Fetcher
	transcoder transcode.Runner
	sink       progress.Sink
	mediaDir   string
	logger     *log.Logger
}

// New wires the per-task pipeline into an orchestrator
func New(resolver resolve.Resolver, captions caption.Fetcher, transcoder transcode.Runner, sink progress.Sink, mediaDir string, logger *log.Logger) *Orchestrator {
	if sink == nil {
		sink = progress.NopSink{}
	}
	return &Orchestrator{
		resolver:   resolver,
		captions:   captions,
		transcoder: transcoder,
		sink:       sink,
		mediaDir:   mediaDir,
		logger:     logger,
	}
}

// RunAll processes every task on a pool of `workers` concurrent workers
// and aggregates their outcomes. Submission order is load order;
// completion order is whatever finishes first. The aggregation loop is
// the only writer of the counters, fed over a result channel, so no
// locking is needed.
func (o *Orchestrator) RunAll(ctx context.Context, tasks []model.Task, workers int) model.Summary {
	var summary model.Summary
	if len(tasks) == 0 {
		return summary
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan model.Task)
	results := make(chan model.TaskOutcome)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range jobs {
				results <- o.processTask(ctx, task)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, task := range tasks {
			select {
			case jobs <- task:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	for outcome := range results {
		o.logger.Printf("Task %s (%q): %s", outcome.Task.ID, outcome.Task.Title, outcome.Status)
		summary.Record(outcome)
	}
	return summary
}

// processTask runs the full pipeline for one task: sanitize, short-circuit
// on an existing output file, resolve, side-fetch the caption, transcode.
// Every failure mode, panics included, is absorbed here so a broken task
// can never take down its siblings.
func (o *Orchestrator) processTask(ctx context.Context, task model.Task) (outcome model.TaskOutcome) {
	outcome = model.TaskOutcome{Task: task, Status: model.TaskStatusError}

	defer func() {
		if r := recover(); r != nil {
			o.logger.Printf("Task %s (%q) panicked: %v", task.ID, task.Title, r)
			outcome = model.TaskOutcome{Task: task, Status: model.TaskStatusError}
		}
	}()

	safeTitle := platform.SanitizeFilename(task.Title)
	if safeTitle != task.Title {
		o.logger.Printf("Task %s: filename corrected: %s -> %s", task.ID, task.Title, safeTitle)
	}

	outputPath := filepath.Join(o.mediaDir, transcode.OutputFileName(safeTitle))

	// An existing output file short-circuits the whole task before any
	// network traffic; it is never overwritten.
	if platform.FileExists(outputPath) {
		o.logger.Printf("Task %s: file already exists: %s", task.ID, outputPath)
		outcome.Status = model.TaskStatusSkipped
		return outcome
	}

	target := o.resolver.Resolve(ctx, task.URL)

	mediaURL := target.MediaURL
	if mediaURL == "" {
		// Resolution failed soft; the page URL itself is the last resort
		mediaURL = task.URL
	}

	if target.CaptionURL != "" {
		o.captions.Fetch(ctx, target.CaptionURL, task.Title)
	}

	ok := o.transcoder.Run(ctx, mediaURL, outputPath, safeTitle, func(percent float64) {
		o.sink.Update(safeTitle, percent)
	})
	if ok {
		outcome.Status = model.TaskStatusCompleted
	}
	return outcome
}
