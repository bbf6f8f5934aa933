// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package feedback submits free-text feedback to the service.
package feedback

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/pdiddy/datafix/internal/notice"
)

// Confirmation is shown for notice.FeedbackDuration after a successful send.
const Confirmation = "Thank you for your feedback!"

// Sender delivers feedback text and reports the service's success flag.
type Sender interface {
	SendFeedback(ctx context.Context, text string) (bool, error)
}

// Form holds the draft text and the submit affordance.
type Form struct {
	sender  Sender
	logger  *slog.Logger
	confirm *notice.Notice

	mu      sync.Mutex
	text    string
	enabled bool
}

// NewForm returns an empty form with the submit affordance enabled.
func NewForm(s Sender, logger *slog.Logger) *Form {
	if logger == nil {
		logger = slog.Default()
	}
	return &Form{
		sender:  s,
		logger:  logger,
		confirm: notice.New(Confirmation, notice.FeedbackDuration),
		enabled: true,
	}
}

// SetText replaces the draft.
func (f *Form) SetText(s string) {
	f.mu.Lock()
	f.text = s
	f.mu.Unlock()
}

// Text returns the draft.
func (f *Form) Text() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.text
}

// Enabled reports whether the submit affordance accepts input. It is
// disabled only while a submission is in flight.
func (f *Form) Enabled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.enabled
}

// Confirmation returns the success notice.
func (f *Form) Confirmation() *notice.Notice { return f.confirm }

// Submit sends the trimmed draft. A blank draft, or a call while another
// submission is in flight, does nothing and returns false. On a success
// flag the draft is cleared and the confirmation shown; any failure is
// logged and otherwise ignored. The affordance is re-enabled either way.
func (f *Form) Submit(ctx context.Context) bool {
	f.mu.Lock()
	text := strings.TrimSpace(f.text)
	if text == "" || !f.enabled {
		f.mu.Unlock()
		return false
	}
	f.enabled = false
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.enabled = true
		f.mu.Unlock()
	}()

	ok, err := f.sender.SendFeedback(ctx, text)
	if err != nil {
		f.logger.Error("submitting feedback", "error", err)
		return false
	}
	if !ok {
		f.logger.Warn("feedback not accepted by service")
		return false
	}

	f.mu.Lock()
	f.text = ""
	f.mu.Unlock()
	f.confirm.Show()
	return true
}
