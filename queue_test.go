package main

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/xptea/VWisper/encoder"
)

func TestQueuePreservesArrivalOrder(t *testing.T) {
	var mu sync.Mutex
	var seen []byte

	q := newProcessingQueue(func(j transcriptionJob) {
		mu.Lock()
		seen = append(seen, j.payload[0])
		mu.Unlock()
	})
	q.interJobDelay = 0

	for i := byte(0); i < 5; i++ {
		q.Push(transcriptionJob{payload: []byte{i}, format: encoder.FormatWAV})
	}
	if !q.WaitIdle(5 * time.Second) {
		t.Fatal("queue did not drain")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 5 {
		t.Fatalf("processed %d jobs, want 5", len(seen))
	}
	for i := byte(0); i < 5; i++ {
		if seen[i] != i {
			t.Fatalf("jobs processed out of order: %v", seen)
		}
	}
}

func TestQueueRunsOneJobAtATime(t *testing.T) {
	var inFlight, maxInFlight atomic.Int32

	q := newProcessingQueue(func(transcriptionJob) {
		n := inFlight.Add(1)
		if m := maxInFlight.Load(); n > m {
			maxInFlight.Store(n)
		}
		time.Sleep(10 * time.Millisecond)
		inFlight.Add(-1)
	})
	q.interJobDelay = 0

	for i := 0; i < 8; i++ {
		q.Push(transcriptionJob{payload: []byte{byte(i)}})
	}
	if !q.WaitIdle(5 * time.Second) {
		t.Fatal("queue did not drain")
	}
	if maxInFlight.Load() != 1 {
		t.Errorf("max concurrent jobs = %d, want 1", maxInFlight.Load())
	}
}

func TestQueueWorkerExitsWhenDrained(t *testing.T) {
	var processed atomic.Int32
	q := newProcessingQueue(func(transcriptionJob) { processed.Add(1) })
	q.interJobDelay = 0

	q.Push(transcriptionJob{payload: []byte{1}})
	if !q.WaitIdle(time.Second) {
		t.Fatal("queue did not drain")
	}
	if q.Pending() != 0 {
		t.Errorf("pending = %d after drain", q.Pending())
	}

	// A later push must spawn a fresh worker.
	q.Push(transcriptionJob{payload: []byte{2}})
	if !q.WaitIdle(time.Second) {
		t.Fatal("second drain timed out")
	}
	if processed.Load() != 2 {
		t.Errorf("processed = %d, want 2", processed.Load())
	}
}
