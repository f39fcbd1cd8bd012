package main

import (
	"testing"
	"time"
)

func TestSilenceTrackerTriggersAtLimit(t *testing.T) {
	tr := newSilenceTracker(2 * time.Second)
	for i := 0; i < 19; i++ {
		if tr.Tick(true, 100*time.Millisecond) {
			t.Fatalf("triggered after %d windows", i+1)
		}
	}
	if !tr.Tick(true, 100*time.Millisecond) {
		t.Fatal("did not trigger at the limit")
	}
}

func TestSilenceTrackerResetsOnVoice(t *testing.T) {
	tr := newSilenceTracker(2 * time.Second)
	for i := 0; i < 19; i++ {
		tr.Tick(true, 100*time.Millisecond)
	}
	// One voiced window wipes the whole run.
	if tr.Tick(false, 100*time.Millisecond) {
		t.Fatal("voiced window must not trigger")
	}
	for i := 0; i < 19; i++ {
		if tr.Tick(true, 100*time.Millisecond) {
			t.Fatalf("triggered %d windows after reset", i+1)
		}
	}
	if !tr.Tick(true, 100*time.Millisecond) {
		t.Fatal("did not trigger after full run post-reset")
	}
}
