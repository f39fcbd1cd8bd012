package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xptea/VWisper/beep"
	"github.com/xptea/VWisper/log"
	"github.com/xptea/VWisper/store"
	"github.com/xptea/VWisper/transcriber"
)

// processJob runs on the queue worker: one transcription round trip and
// exactly one terminal outcome per job. The indicator and the processing
// counter are reset no matter which branch is taken.
func (p *Pipeline) processJob(j transcriptionJob) {
	defer func() {
		p.processing.Add(-1)
		p.sink.WaveReset()
		p.hideIndicator()
	}()

	p.sink.TranscriptionStarted()

	start := time.Now()
	text, err := p.trans.Transcribe(j.payload, string(j.format))
	processingMs := time.Since(start).Milliseconds()

	switch {
	case err != nil:
		msg := friendlyError(err)
		log.SessionOutcome("error", j.audioMs, processingMs, 0, msg)
		p.record(store.NewSession("", j.audioMs, processingMs, false, msg))
		p.sink.TranscriptionError(msg)
		p.sink.PlaySound(beep.Error)

	case strings.TrimSpace(text) == "":
		log.SessionOutcome("empty", j.audioMs, processingMs, 0, "")
		p.record(store.NewSession("", j.audioMs, processingMs, true, ""))
		p.sink.TranscriptionCompleted("")
		p.sink.PlaySound(beep.Ending)

	default:
		// The transcription succeeded regardless of what injection does,
		// so the record is written first and stays successful even when
		// delivery fails.
		log.TranscriptionText(text)
		log.SessionOutcome("success", j.audioMs, processingMs, len(text), "")
		p.record(store.NewSession(text, j.audioMs, processingMs, true, ""))
		p.sink.TranscriptionCompleted(text)

		// The final cue reports the injection outcome.
		if injErr := p.injector.Inject(text); injErr != nil {
			log.Errorf("injection failed: %v", injErr)
			p.sink.TranscriptionError("injection failed: " + injErr.Error())
			p.sink.PlaySound(beep.Error)
		} else {
			p.sink.PlaySound(beep.Ending)
		}
	}
}

// friendlyError turns gateway failures into something worth showing a user.
func friendlyError(err error) string {
	if errors.Is(err, transcriber.ErrMissingCredential) {
		return "no API key configured (set GROQ_API_KEY or edit config.json)"
	}
	var ge *transcriber.GatewayError
	if errors.As(err, &ge) {
		switch ge.Status {
		case 0:
			return "network error: " + ge.Message
		case 401, 403:
			return "invalid API key"
		case 429:
			return "rate limited, try again shortly"
		default:
			return fmt.Sprintf("transcription service error (%d): %s", ge.Status, ge.Message)
		}
	}
	return err.Error()
}
