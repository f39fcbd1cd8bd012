package main

import (
	"time"

	"github.com/xptea/VWisper/beep"
	"github.com/xptea/VWisper/encoder"
	"github.com/xptea/VWisper/log"
	"github.com/xptea/VWisper/store"
)

// windowDur is the visualization and silence-detection granularity.
const windowDur = 100 * time.Millisecond

// runSession assembles one recording: it accumulates capture chunks while
// the chord is held, emits visualization windows, auto-stops on sustained
// silence, then encodes the buffer and queues it for transcription.
func (p *Pipeline) runSession() {
	defer func() {
		p.mu.Lock()
		p.active = false
		p.mu.Unlock()
	}()

	frames := p.recorder.Frames()
	rate := p.recorder.SampleRate()
	channels := p.recorder.Channels()
	if rate == 0 {
		rate = 44100
	}
	if channels == 0 {
		channels = 1
	}

	winFrames := int(rate / 10) // 100ms of audio
	threshold := p.cfg.VolumeThreshold
	tracker := newSilenceTracker(time.Duration(p.cfg.SilenceAutoStopMs) * time.Millisecond)

	var buf, window []float32

	for p.recording.Load() {
		select {
		case chunk := <-frames:
			mono := encoder.Downmix(chunk, channels)
			buf = append(buf, mono...)
			window = append(window, mono...)
		default:
			time.Sleep(10 * time.Millisecond)
			continue
		}

		for len(window) >= winFrames {
			points, volume := vizFrame(window[:winFrames], threshold)
			p.sink.AudioData(points, volume)
			window = window[winFrames:]
			if tracker.Tick(volume < threshold, windowDur) {
				log.Info("sustained silence, auto-stopping session")
				p.recording.Store(false)
			}
		}
	}

	p.recorder.Stop()

	// Capture tail: chunks delivered before Stop landed are still queued.
	for drained := false; !drained; {
		select {
		case chunk := <-frames:
			buf = append(buf, encoder.Downmix(chunk, channels)...)
		default:
			drained = true
		}
	}

	p.sink.RecordingStopped()
	p.sink.WaveReset()

	audioMs := int64(len(buf)) * 1000 / int64(rate)
	if dropped := p.recorder.Dropped(); dropped > 0 {
		log.Warnf("capture channel overflow, %d chunks dropped", dropped)
	}

	if p.cancelRequested.Swap(false) {
		p.sink.TranscriptionCancelled()
		p.hideIndicator()
		log.SessionOutcome("cancelled", audioMs, 0, 0, "")
		return
	}

	if audioMs < int64(p.cfg.MinDurationMs) {
		p.sink.TranscriptionCompleted("")
		p.hideIndicator()
		log.SessionOutcome("too_short", audioMs, 0, 0, "")
		return
	}

	// A session that never rose above the threshold has nothing to
	// transcribe. This covers the pure-silence auto-stop.
	if encoder.RMS(buf) < threshold {
		p.sink.TranscriptionCompleted("")
		p.hideIndicator()
		log.SessionOutcome("no_speech", audioMs, 0, 0, "")
		return
	}

	payload, err := encoder.Encode(buf, rate, p.format)
	if err != nil || len(payload) == 0 {
		msg := "encoding failed"
		if err != nil {
			msg = err.Error()
		}
		p.sink.TranscriptionError(msg)
		p.sink.PlaySound(beep.Error)
		p.hideIndicator()
		p.record(store.NewSession("", audioMs, 0, false, msg))
		log.SessionOutcome("error", audioMs, 0, 0, msg)
		return
	}

	p.sink.ExpandForProcessing()
	p.processing.Add(1)
	p.queue.Push(transcriptionJob{
		payload:  payload,
		format:   p.format,
		audioMs:  audioMs,
		queuedAt: time.Now(),
	})
}

// hideIndicator collapses the indicator when nothing else is processing.
// The pause between resize and hide gives the shell's collapse animation
// time to finish.
func (p *Pipeline) hideIndicator() {
	if p.processing.Load() == 0 {
		p.sink.ResizeCompact()
		if p.collapseDelay > 0 {
			time.Sleep(p.collapseDelay)
		}
		p.sink.HideIndicator()
	}
}
