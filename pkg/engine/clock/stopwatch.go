package clock

import "time"

// Stopwatch measures how long the player takes to finish a level.
// It only advances through Tick, so it follows game time.
type Stopwatch struct {
	elapsed  time.Duration
	final    time.Duration
	running  bool
	finished bool
}

// Start resets and starts the stopwatch.
func (s *Stopwatch) Start() {
	s.elapsed = 0
	s.final = 0
	s.running = true
	s.finished = false
}

// Stop records the final time. Only the first Stop after Start counts.
func (s *Stopwatch) Stop() {
	if s.finished {
		return
	}
	s.running = false
	s.finished = true
	s.final = s.elapsed
}

// Pause suspends timing without finishing.
func (s *Stopwatch) Pause() {
	s.running = false
}

// Resume continues timing unless the stopwatch has finished.
func (s *Stopwatch) Resume() {
	if !s.finished {
		s.running = true
	}
}

// Tick adds dt if the stopwatch is running.
func (s *Stopwatch) Tick(dt time.Duration) {
	if s.running && dt > 0 {
		s.elapsed += dt
	}
}

// Elapsed returns the current reading.
func (s *Stopwatch) Elapsed() time.Duration {
	return s.elapsed
}

// Final returns the recorded time and whether Stop has been called.
func (s *Stopwatch) Final() (time.Duration, bool) {
	return s.final, s.finished
}

// Running reports whether the stopwatch is counting.
func (s *Stopwatch) Running() bool {
	return s.running
}

// String formats the current reading.
func (s *Stopwatch) String() string {
	return FormatTime(s.elapsed)
}
