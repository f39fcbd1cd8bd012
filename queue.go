package main

import (
	"sync"
	"time"

	"github.com/xptea/VWisper/encoder"
)

// transcriptionJob is one finished session's encoded payload heading to the
// transcription service.
type transcriptionJob struct {
	payload  []byte
	format   encoder.Format
	audioMs  int64
	queuedAt time.Time
}

// processingQueue runs jobs strictly one at a time in arrival order. A
// worker goroutine is spawned on the first push and exits once the queue
// drains, so an idle app has no background goroutine.
type processingQueue struct {
	process func(transcriptionJob)
	// pause between jobs so back-to-back injections land in the right
	// order in the focused app
	interJobDelay time.Duration

	mu      sync.Mutex
	jobs    []transcriptionJob
	running bool
}

func newProcessingQueue(process func(transcriptionJob)) *processingQueue {
	return &processingQueue{
		process:       process,
		interJobDelay: 50 * time.Millisecond,
	}
}

func (q *processingQueue) Push(j transcriptionJob) {
	q.mu.Lock()
	q.jobs = append(q.jobs, j)
	if q.running {
		q.mu.Unlock()
		return
	}
	q.running = true
	q.mu.Unlock()
	go q.drain()
}

func (q *processingQueue) drain() {
	for {
		q.mu.Lock()
		if len(q.jobs) == 0 {
			q.running = false
			q.mu.Unlock()
			return
		}
		j := q.jobs[0]
		q.jobs = q.jobs[1:]
		q.mu.Unlock()

		q.process(j)
		time.Sleep(q.interJobDelay)
	}
}

func (q *processingQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := len(q.jobs)
	if q.running {
		n++
	}
	return n
}

// WaitIdle blocks until every queued job has finished or the timeout
// expires. Used on shutdown so in-flight transcriptions complete.
func (q *processingQueue) WaitIdle(timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		q.mu.Lock()
		idle := !q.running && len(q.jobs) == 0
		q.mu.Unlock()
		if idle {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return false
}
