// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNotice_HidesAfterDuration(t *testing.T) {
	n := New("saved", 20*time.Millisecond)
	assert.False(t, n.Visible())

	n.Show()
	assert.True(t, n.Visible())

	assert.Eventually(t, func() bool { return !n.Visible() }, time.Second, 5*time.Millisecond)
}

func TestNotice_ShowRestartsWindow(t *testing.T) {
	n := New("saved", 80*time.Millisecond)

	n.Show()
	time.Sleep(50 * time.Millisecond)
	n.Show()
	time.Sleep(50 * time.Millisecond)

	// 100ms after the first Show, but only 50ms after the second.
	assert.True(t, n.Visible())

	assert.Eventually(t, func() bool { return !n.Visible() }, time.Second, 5*time.Millisecond)
}

func TestNotice_Hide(t *testing.T) {
	n := New("saved", time.Hour)
	n.Show()
	n.Hide()
	assert.False(t, n.Visible())

	// Hiding twice is harmless.
	n.Hide()
	assert.False(t, n.Visible())
}

func TestNotice_Accessors(t *testing.T) {
	n := New("Thank you", FeedbackDuration)
	assert.Equal(t, "Thank you", n.Text())
	assert.Equal(t, 3*time.Second, n.Duration())
	assert.Equal(t, 5*time.Second, DownloadDuration)
}
