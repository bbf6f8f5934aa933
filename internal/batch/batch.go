// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch submits several package files, one workflow controller per
// file, and reports per-file status to a writer.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/datafix/internal/effects"
	"github.com/pdiddy/datafix/internal/workflow"
	"github.com/pdiddy/datafix/pkg/types"
)

// Recorder persists settled attempts.
type Recorder interface {
	RecordAttempt(ctx context.Context, rec types.AttemptRecord) error
}

// Runner holds what every file submission shares.
type Runner struct {
	Uploader workflow.Uploader
	Saver    workflow.Saver
	Recorder Recorder
	Effects  effects.Effects
	Logger   *slog.Logger

	// Parallel bounds concurrent submissions. Values below 1 mean 1.
	Parallel int

	// Where reports the saved location of a result for display. Optional.
	Where func(name string) string
}

// Result holds the outcome of a batch run.
type Result struct {
	Completed int
	Failed    int
	Attempts  []workflow.Attempt
}

// Total returns the number of files processed.
func (r Result) Total() int {
	return r.Completed + r.Failed
}

// HasFailures reports whether any file failed.
func (r Result) HasFailures() bool {
	return r.Failed > 0
}

// Run submits each path and saves every completed result. It continues
// after individual failures. Attempts are reported in input order.
func (r *Runner) Run(ctx context.Context, paths []string, w io.Writer) Result {
	parallel := r.Parallel
	if parallel < 1 {
		parallel = 1
	}
	fx := r.Effects
	if fx == nil || parallel > 1 {
		// Concurrent spinners would overwrite each other's line.
		fx = effects.None()
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	out := &lockedWriter{w: w}
	attempts := make([]workflow.Attempt, len(paths))
	ok := make([]bool, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, path := range paths {
		g.Go(func() error {
			attempts[i], ok[i] = r.runOne(gctx, path, fx, logger, out)
			return nil
		})
	}
	g.Wait()

	var result Result
	for i := range paths {
		if ok[i] {
			result.Completed++
		} else {
			result.Failed++
		}
	}
	result.Attempts = attempts

	fmt.Fprintf(out, "\nBatch summary: %d completed, %d failed (total: %d)\n",
		result.Completed, result.Failed, result.Total())
	return result
}

func (r *Runner) runOne(ctx context.Context, path string, fx effects.Effects, logger *slog.Logger, w io.Writer) (workflow.Attempt, bool) {
	name := filepath.Base(path)

	var stopSpin func()
	observer := func(s workflow.State) {
		if s.Phase == workflow.PhaseProcessing {
			stopSpin = fx.Spin(w, "Processing "+name)
			return
		}
		if stopSpin != nil {
			stopSpin()
			stopSpin = nil
		}
	}
	c := workflow.NewController(r.Uploader, workflow.WithLogger(logger), workflow.WithObserver(observer))

	var body io.Reader
	if strings.HasSuffix(name, workflow.PkgSuffix) {
		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", path, err)
			att := workflow.Attempt{ID: uuid.NewString(), FileName: name, Message: err.Error()}
			r.record(ctx, logger, att, types.AttemptFailed)
			return att, false
		}
		defer f.Close()
		body = f
	}

	att, err := c.SubmitFile(ctx, workflow.File{Name: name, Body: body})
	if err != nil {
		msg := err.Error()
		var we *workflow.Error
		if errors.As(err, &we) {
			msg = we.UserMessage()
		}
		fmt.Fprintf(w, "failed:  %s (%s)\n", name, msg)
		r.record(ctx, logger, att, types.AttemptFailed)
		return att, false
	}

	if err := c.Download(r.Saver); err != nil {
		fmt.Fprintf(w, "failed:  %s (saving %s: %v)\n", name, att.Filename, err)
		att.Message = err.Error()
		r.record(ctx, logger, att, types.AttemptFailed)
		return att, false
	}

	where := att.Filename
	if r.Where != nil {
		where = r.Where(att.Filename)
	}
	if att.CaseID != "" {
		fmt.Fprintf(w, "saved:   %s -> %s (case %s)\n", name, where, att.CaseID)
	} else {
		fmt.Fprintf(w, "saved:   %s -> %s\n", name, where)
	}
	if c.Advisory().Visible() {
		fmt.Fprintf(w, "         %s\n", fx.Accent(c.Advisory().Text()))
	}
	r.record(ctx, logger, att, types.AttemptCompleted)
	return att, true
}

func (r *Runner) record(ctx context.Context, logger *slog.Logger, att workflow.Attempt, status types.AttemptStatus) {
	if r.Recorder == nil || att.ID == "" {
		return
	}
	rec := types.AttemptRecord{
		ID:             att.ID,
		FileName:       att.FileName,
		ResultFilename: att.Filename,
		CaseID:         att.CaseID,
		Status:         status,
		Message:        att.Message,
		CreatedAt:      time.Now(),
	}
	if err := r.Recorder.RecordAttempt(ctx, rec); err != nil {
		logger.Warn("recording attempt", "attempt", att.ID, "error", err)
	}
}

// lockedWriter serializes writes from concurrent submissions.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
