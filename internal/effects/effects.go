// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package effects holds purely decorative terminal output: a typing
// effect, a spinner, and theme colours. Nothing here changes what the
// commands do; callers disable it with a no-op Effects.
package effects

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Effects is the decorative surface the CLI draws through.
type Effects interface {
	// Type writes text one rune at a time.
	Type(w io.Writer, text string)
	// Spin starts a spinner labelled msg; the returned func stops it.
	Spin(w io.Writer, msg string) (stop func())
	// Accent wraps s in the theme's accent colour.
	Accent(s string) string
}

// None returns Effects that print plainly.
func None() Effects { return plain{} }

type plain struct{}

func (plain) Type(w io.Writer, text string) { fmt.Fprintln(w, text) }
func (plain) Spin(io.Writer, string) func() { return func() {} }
func (plain) Accent(s string) string        { return s }

// Terminal returns animated Effects for an interactive terminal.
func Terminal(dark bool) Effects {
	accent := "\033[36m" // cyan on dark backgrounds
	if !dark {
		accent = "\033[34m"
	}
	return &terminal{accent: accent, typeDelay: 12 * time.Millisecond, frameDelay: 90 * time.Millisecond}
}

type terminal struct {
	accent     string
	typeDelay  time.Duration
	frameDelay time.Duration
}

func (t *terminal) Type(w io.Writer, text string) {
	for _, r := range text {
		fmt.Fprint(w, string(r))
		time.Sleep(t.typeDelay)
	}
	fmt.Fprintln(w)
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func (t *terminal) Spin(w io.Writer, msg string) func() {
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(t.frameDelay)
		defer ticker.Stop()
		for i := 0; ; i++ {
			fmt.Fprintf(w, "\r%s %s", t.Accent(spinnerFrames[i%len(spinnerFrames)]), msg)
			select {
			case <-done:
				fmt.Fprint(w, "\r\033[K")
				return
			case <-ticker.C:
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			wg.Wait()
		})
	}
}

func (t *terminal) Accent(s string) string {
	return t.accent + s + "\033[0m"
}
