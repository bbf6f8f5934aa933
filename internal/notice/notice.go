// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package notice implements time-limited banners that hide themselves.
package notice

import (
	"sync"
	"time"
)

// Durations for the two banners. Tests shrink these.
var (
	DownloadDuration = 5 * time.Second
	FeedbackDuration = 3 * time.Second
)

// Notice is a banner that stays visible for a fixed window after Show.
// Showing it again restarts the window instead of queueing a second hide.
type Notice struct {
	text     string
	duration time.Duration

	mu      sync.Mutex
	visible bool
	timer   *time.Timer
	gen     uint64
}

// New returns a hidden notice that displays text for d after each Show.
func New(text string, d time.Duration) *Notice {
	return &Notice{text: text, duration: d}
}

// Text returns the banner text.
func (n *Notice) Text() string { return n.text }

// Duration returns the visibility window.
func (n *Notice) Duration() time.Duration { return n.duration }

// Show makes the notice visible and (re)starts its hide timer.
func (n *Notice) Show() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.timer != nil {
		n.timer.Stop()
	}
	n.gen++
	gen := n.gen
	n.visible = true
	n.timer = time.AfterFunc(n.duration, func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		// A Stop that lost the race with the timer leaves a stale callback.
		if n.gen == gen {
			n.visible = false
			n.timer = nil
		}
	})
}

// Hide dismisses the notice immediately.
func (n *Notice) Hide() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.gen++
	n.visible = false
}

// Visible reports whether the notice is currently shown.
func (n *Notice) Visible() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.visible
}
