// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package effects

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// syncBuffer guards a bytes.Buffer written from the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestNone(t *testing.T) {
	var buf bytes.Buffer
	e := None()
	e.Type(&buf, "hello")
	stop := e.Spin(&buf, "working")
	stop()
	assert.Equal(t, "hello\n", buf.String())
	assert.Equal(t, "x", e.Accent("x"))
}

func TestTerminal_Type(t *testing.T) {
	var buf bytes.Buffer
	e := &terminal{accent: "", typeDelay: 0}
	e.Type(&buf, "héllo")
	assert.Equal(t, "héllo\n", buf.String())
}

func TestTerminal_SpinStops(t *testing.T) {
	var buf syncBuffer
	e := &terminal{accent: "", frameDelay: time.Millisecond}
	stop := e.Spin(&buf, "Processing")
	time.Sleep(10 * time.Millisecond)
	stop()
	stop()

	out := buf.String()
	assert.Contains(t, out, "Processing")
	assert.True(t, strings.HasSuffix(out, "\r\033[K"))

	// Nothing written after stop returns.
	before := buf.String()
	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, before, buf.String())
}

func TestTerminal_Accent(t *testing.T) {
	dark := Terminal(true).Accent("x")
	light := Terminal(false).Accent("x")
	assert.NotEqual(t, dark, light)
	assert.True(t, strings.HasSuffix(dark, "x\033[0m"))
}
