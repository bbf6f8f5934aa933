// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package workflow drives one .pkg submission from file selection through
// the conversion service to a saved result.
//
// A Controller moves between four phases:
//
//	Idle -> Processing -> Completed -> (Reset) -> Idle
//	             \-> Failed -> (new file) -> Processing
//
// Only the latest submission's outcome is applied; see SubmitFile.
package workflow

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/pdiddy/datafix/internal/notice"
)

// Phase is the controller's current display state.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseProcessing Phase = "processing"
	PhaseCompleted  Phase = "completed"
	PhaseFailed     Phase = "failed"
)

// PkgSuffix is the required file name suffix. The check is case-sensitive.
const PkgSuffix = ".pkg"

// DownloadAdvisory is shown for notice.DownloadDuration after a download.
const DownloadAdvisory = "Review the generated script and validate it before running it against production."

// Attempt is the transient record of one submission.
type Attempt struct {
	ID       string
	FileName string

	// Content, Filename and CaseID are set only in PhaseCompleted.
	Content  string
	Filename string
	CaseID   string

	// Message is set only in PhaseFailed.
	Message string
}

// State is a snapshot of the controller.
type State struct {
	Phase   Phase
	Attempt Attempt

	// AdvisoryVisible reports whether the post-download notice is shown.
	AdvisoryVisible bool
}

// UploadSurfaceVisible reports whether a new file can be picked: the
// surface is hidden while processing and once a result is shown.
func (s State) UploadSurfaceVisible() bool {
	return s.Phase == PhaseIdle || s.Phase == PhaseFailed
}

// PhaseObserver is called after every phase transition with the new state.
type PhaseObserver func(State)

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger that receives errors hidden from the user.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithObserver registers a phase observer.
func WithObserver(o PhaseObserver) Option {
	return func(c *Controller) { c.observers = append(c.observers, o) }
}

// Controller owns the upload workflow state.
type Controller struct {
	uploader  Uploader
	logger    *slog.Logger
	advisory  *notice.Notice
	observers []PhaseObserver

	mu    sync.Mutex
	state State
	gen   uint64
}

// NewController returns a controller in PhaseIdle.
func NewController(u Uploader, opts ...Option) *Controller {
	c := &Controller{
		uploader: u,
		logger:   slog.Default(),
		advisory: notice.New(DownloadAdvisory, notice.DownloadDuration),
		state:    State{Phase: PhaseIdle},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	s := c.state
	c.mu.Unlock()
	s.AdvisoryVisible = c.advisory.Visible()
	return s
}

// Advisory returns the post-download notice.
func (c *Controller) Advisory() *notice.Notice { return c.advisory }

// SubmitFile validates f, sends it to the service, and blocks until the
// response settles the attempt. Any previous result is discarded.
//
// A name without the .pkg suffix fails with a KindValidation *Error and no
// request is made. Server-reported and transport failures return
// KindServer and KindTransport errors. If another SubmitFile or a Reset
// happens while the request is in flight, the stale response is dropped and
// ErrSuperseded is returned.
func (c *Controller) SubmitFile(ctx context.Context, f File) (Attempt, error) {
	att := Attempt{ID: uuid.NewString(), FileName: f.Name}

	if !strings.HasSuffix(f.Name, PkgSuffix) {
		att.Message = MsgInvalidFile
		c.mu.Lock()
		c.gen++
		c.set(PhaseFailed, att)
		c.mu.Unlock()
		c.advisory.Hide()
		c.notify()
		return att, &Error{Kind: KindValidation, Message: MsgInvalidFile}
	}

	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.set(PhaseProcessing, att)
	c.mu.Unlock()
	c.advisory.Hide()
	c.notify()

	out := c.uploader.Upload(ctx, f)

	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		c.logger.Debug("dropping stale upload response", "attempt", att.ID, "file", f.Name)
		return att, ErrSuperseded
	}

	var err error
	switch out.Kind {
	case OutcomeSucceeded:
		att.Content = out.Content
		att.Filename = out.Filename
		att.CaseID = out.CaseID
		c.set(PhaseCompleted, att)
	case OutcomeRejected:
		att.Message = out.Message
		c.set(PhaseFailed, att)
		err = &Error{Kind: KindServer, Message: out.Message}
	default:
		cause := out.Err
		if out.Kind != OutcomeTransportFailed {
			cause = errUnknownOutcome
		}
		att.Message = MsgTransport
		c.set(PhaseFailed, att)
		err = &Error{Kind: KindTransport, Message: MsgTransport, Err: cause}
		c.logger.Error("upload failed", "attempt", att.ID, "file", f.Name, "error", cause)
	}
	c.mu.Unlock()
	c.notify()

	return att, err
}

// Download saves the completed result through s as text/plain under the
// filename the service returned, then shows the advisory notice. It
// returns ErrNoResult unless the controller is in PhaseCompleted.
func (c *Controller) Download(s Saver) error {
	c.mu.Lock()
	if c.state.Phase != PhaseCompleted {
		c.mu.Unlock()
		return ErrNoResult
	}
	name, content := c.state.Attempt.Filename, c.state.Attempt.Content
	c.mu.Unlock()

	if err := s.Save(name, MIMEPlainText, strings.NewReader(content)); err != nil {
		return err
	}
	c.advisory.Show()
	return nil
}

// Reset clears any result, hides the advisory notice, and returns to
// PhaseIdle. An in-flight request is abandoned.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.gen++
	changed := c.state.Phase != PhaseIdle
	c.set(PhaseIdle, Attempt{})
	c.mu.Unlock()
	c.advisory.Hide()
	if changed {
		c.notify()
	}
}

// set must be called with c.mu held.
func (c *Controller) set(p Phase, a Attempt) {
	c.state.Phase = p
	c.state.Attempt = a
}

func (c *Controller) notify() {
	if len(c.observers) == 0 {
		return
	}
	s := c.Snapshot()
	for _, o := range c.observers {
		o(s)
	}
}
