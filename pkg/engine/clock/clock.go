// Package clock provides the pausable game clock and the level stopwatch.
package clock

import (
	"fmt"
	"time"
)

// Clock converts frame time into game time. While paused it stops advancing,
// so everything driven by it (timed sequences, easing, the stopwatch) pauses too.
type Clock struct {
	now    time.Duration
	paused bool
	ticks  uint64
}

// New creates a running clock at zero.
func New() *Clock {
	return &Clock{}
}

// Advance moves the clock forward by frame and returns the game-time delta
// for this tick (zero while paused or for negative input).
func (c *Clock) Advance(frame time.Duration) time.Duration {
	c.ticks++
	if c.paused || frame <= 0 {
		return 0
	}
	c.now += frame
	return frame
}

// Now returns the total game time elapsed.
func (c *Clock) Now() time.Duration {
	return c.now
}

// Ticks returns how many times Advance has been called.
func (c *Clock) Ticks() uint64 {
	return c.ticks
}

// Pause stops game time.
func (c *Clock) Pause() {
	c.paused = true
}

// Resume restarts game time.
func (c *Clock) Resume() {
	c.paused = false
}

// Paused reports whether the clock is paused.
func (c *Clock) Paused() bool {
	return c.paused
}

// FormatTime formats d as mm:ss.cc.
func FormatTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int(d / time.Minute)
	seconds := int((d % time.Minute) / time.Second)
	centis := int((d % time.Second) / (10 * time.Millisecond))
	return fmt.Sprintf("%02d:%02d.%02d", minutes, seconds, centis)
}
