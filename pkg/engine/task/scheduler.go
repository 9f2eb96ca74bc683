package task

import (
	"log/slog"
	"time"
)

// Scheduler advances running sequences once per tick.
type Scheduler struct {
	running []*Sequence
	logger  *slog.Logger
}

// NewScheduler creates an empty scheduler.
func NewScheduler(logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{logger: logger}
}

// Start schedules seq and runs it up to its first suspension point.
func (s *Scheduler) Start(seq *Sequence) *Sequence {
	if seq == nil || !seq.Active() {
		return seq
	}
	s.logger.Debug("sequence started", "sequence", seq.name, "steps", len(seq.steps))
	s.running = append(s.running, seq)
	seq.advance(0)
	s.prune()
	return seq
}

// Tick advances every running sequence by dt of game time. A zero dt (paused
// clock) still lets zero-length steps complete but never moves timers forward.
func (s *Scheduler) Tick(dt time.Duration) {
	snapshot := append([]*Sequence(nil), s.running...)
	for _, seq := range snapshot {
		seq.advance(dt)
	}
	s.prune()
}

// CancelAll cancels every running sequence, oldest first.
func (s *Scheduler) CancelAll() {
	snapshot := s.running
	s.running = nil
	for _, seq := range snapshot {
		seq.Cancel()
	}
}

// Busy reports whether any sequence is still running.
func (s *Scheduler) Busy() bool {
	s.prune()
	return len(s.running) > 0
}

// Len returns the number of running sequences.
func (s *Scheduler) Len() int {
	s.prune()
	return len(s.running)
}

func (s *Scheduler) prune() {
	kept := s.running[:0]
	for _, seq := range s.running {
		if seq.Active() {
			kept = append(kept, seq)
			continue
		}
		s.logger.Debug("sequence finished", "sequence", seq.name, "cancelled", seq.Cancelled())
	}
	for i := len(kept); i < len(s.running); i++ {
		s.running[i] = nil
	}
	s.running = kept
}
