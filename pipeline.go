package main

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/xptea/VWisper/beep"
	"github.com/xptea/VWisper/config"
	"github.com/xptea/VWisper/encoder"
	"github.com/xptea/VWisper/inject"
	"github.com/xptea/VWisper/log"
	"github.com/xptea/VWisper/store"
	"github.com/xptea/VWisper/transcriber"
)

// Pipeline ties hotkey-driven sessions to the capture, encoding,
// transcription and injection stages. One session may be recording while
// earlier sessions are still in the processing queue.
type Pipeline struct {
	cfg      *config.Config
	recorder *Recorder
	queue    *processingQueue
	sink     EventSink
	injector inject.Injector
	store    store.Store
	trans    transcriber.Transcriber
	format   encoder.Format

	// wait between the compact resize and the hide so the shell's
	// collapse animation can finish
	collapseDelay time.Duration

	recording       atomic.Bool
	cancelRequested atomic.Bool
	processing      atomic.Int32

	mu     sync.Mutex
	active bool
}

func NewPipeline(cfg *config.Config, rec *Recorder, sink EventSink, inj inject.Injector, st store.Store, trans transcriber.Transcriber) *Pipeline {
	format, err := encoder.ParseFormat(cfg.Format)
	if err != nil {
		format = encoder.FormatWAV
	}
	p := &Pipeline{
		cfg:           cfg,
		recorder:      rec,
		sink:          sink,
		injector:      inj,
		store:         st,
		trans:         trans,
		format:        format,
		collapseDelay: 300 * time.Millisecond,
	}
	p.queue = newProcessingQueue(p.processJob)
	return p
}

// record appends a session record, logging rather than dropping a failure
// so a broken persistence collaborator stays visible.
func (p *Pipeline) record(rec store.RecordingSession) {
	if err := p.store.Record(rec); err != nil {
		log.Errorf("session store append failed: %v", err)
	}
}

// StartSession begins capturing. A second start while a session is still
// assembling is ignored, so hotkey chatter cannot overlap sessions.
func (p *Pipeline) StartSession() error {
	p.mu.Lock()
	if p.active {
		p.mu.Unlock()
		return nil
	}
	p.active = true
	p.mu.Unlock()

	p.cancelRequested.Store(false)
	if err := p.recorder.Start(); err != nil {
		p.mu.Lock()
		p.active = false
		p.mu.Unlock()
		p.sink.TranscriptionError("microphone unavailable: " + err.Error())
		p.sink.PlaySound(beep.Error)
		return err
	}

	p.recording.Store(true)
	p.sink.RecordingStarted()
	p.sink.PlaySound(beep.Start)
	go p.runSession()
	return nil
}

// StopSession ends capture; the assembler finishes the session and hands
// it to the processing queue.
func (p *Pipeline) StopSession() {
	p.recording.Store(false)
}

// CancelSession ends capture and discards the session instead of
// transcribing it. A cancel with no session in progress is a no-op.
func (p *Pipeline) CancelSession() {
	if p.recording.Load() {
		p.cancelRequested.Store(true)
		p.recording.Store(false)
	}
}

func (p *Pipeline) Recording() bool { return p.recording.Load() }

// WaitIdle blocks until no session is assembling and the queue is empty.
func (p *Pipeline) WaitIdle(timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		p.mu.Lock()
		active := p.active
		p.mu.Unlock()
		if !active && p.queue.WaitIdle(time.Until(deadline)) {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return false
}
