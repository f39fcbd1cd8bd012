package main

import "time"

// silenceTracker accumulates consecutive silent windows. Any voiced window
// resets the run, so only an unbroken stretch of silence triggers the
// auto-stop.
type silenceTracker struct {
	limit time.Duration
	run   time.Duration
}

func newSilenceTracker(limit time.Duration) *silenceTracker {
	return &silenceTracker{limit: limit}
}

// Tick records one window and reports whether the silence limit is reached.
func (s *silenceTracker) Tick(silent bool, dt time.Duration) bool {
	if !silent {
		s.run = 0
		return false
	}
	s.run += dt
	return s.run >= s.limit
}
