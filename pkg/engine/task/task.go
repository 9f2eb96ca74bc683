// Package task runs timed, cancellable sequences on the game loop.
//
// A Sequence is an ordered list of steps advanced once per tick by a
// Scheduler. Steps only ever suspend between ticks; nothing runs in the
// background. A cancelled sequence runs its cancel hook so the objects it was
// animating can be put back into a safe state.
package task

import "time"

// Step is one stage of a sequence. It is called with the game time elapsed
// since the step began and returns true once the step has finished.
type Step func(elapsed time.Duration) bool

// Do runs fn once and finishes immediately.
func Do(fn func()) Step {
	return func(time.Duration) bool {
		fn()
		return true
	}
}

// Wait finishes after d of game time.
func Wait(d time.Duration) Step {
	return func(elapsed time.Duration) bool {
		return elapsed >= d
	}
}

// Tween calls fn every tick with progress in [0,1] over d, ending with exactly 1.
func Tween(d time.Duration, fn func(t float64)) Step {
	return func(elapsed time.Duration) bool {
		if d <= 0 || elapsed >= d {
			fn(1)
			return true
		}
		fn(float64(elapsed) / float64(d))
		return false
	}
}

// Lerp interpolates between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

type status int

const (
	statusPending status = iota
	statusRunning
	statusDone
	statusCancelled
)

// Sequence is an ordered list of steps.
type Sequence struct {
	name     string
	steps    []Step
	index    int
	elapsed  time.Duration
	status   status
	onCancel func()
	onDone   func()
}

// NewSequence creates a sequence. It does nothing until started by a Scheduler.
func NewSequence(name string, steps ...Step) *Sequence {
	return &Sequence{name: name, steps: steps}
}

// OnCancel sets the hook run if the sequence is cancelled before finishing.
func (s *Sequence) OnCancel(fn func()) *Sequence {
	s.onCancel = fn
	return s
}

// OnDone sets the hook run when the last step finishes.
func (s *Sequence) OnDone(fn func()) *Sequence {
	s.onDone = fn
	return s
}

// Name returns the sequence name.
func (s *Sequence) Name() string {
	return s.name
}

// Done reports whether the sequence ran to completion.
func (s *Sequence) Done() bool {
	return s.status == statusDone
}

// Cancelled reports whether the sequence was cancelled.
func (s *Sequence) Cancelled() bool {
	return s.status == statusCancelled
}

// Active reports whether the sequence still has steps to run.
func (s *Sequence) Active() bool {
	return s.status == statusPending || s.status == statusRunning
}

// Cancel stops the sequence and runs the cancel hook. It has no effect on a
// sequence that already finished or was cancelled.
func (s *Sequence) Cancel() {
	if !s.Active() {
		return
	}
	s.status = statusCancelled
	if s.onCancel != nil {
		s.onCancel()
	}
}

// advance runs steps until one needs more time or the sequence ends.
func (s *Sequence) advance(dt time.Duration) {
	if !s.Active() {
		return
	}
	s.status = statusRunning
	s.elapsed += dt
	for s.index < len(s.steps) {
		if !s.steps[s.index](s.elapsed) {
			return
		}
		// A step may cancel its own sequence.
		if !s.Active() {
			return
		}
		s.index++
		s.elapsed = 0
	}
	s.status = statusDone
	if s.onDone != nil {
		s.onDone()
	}
}
