package main

import (
	"github.com/xptea/VWisper/beep"
	"github.com/xptea/VWisper/log"
)

const vizPoints = 12

// EventSink abstracts the indicator surface so the pipeline can drive a
// terminal today and a window shell later. Every session transition lands
// here exactly once.
type EventSink interface {
	RecordingStarted()
	RecordingStopped()
	// AudioData carries one visualization frame: twelve smoothed points in
	// [0,1] plus the window's average volume.
	AudioData(points [vizPoints]float64, volume float64)
	TranscriptionStarted()
	TranscriptionCompleted(text string)
	TranscriptionError(message string)
	TranscriptionCancelled()
	WaveReset()
	ExpandForProcessing()
	ResizeCompact()
	HideIndicator()
	PlaySound(kind beep.Kind)
}

// logSink is the headless sink: transitions go to the diagnostics log and
// audio cues, visualization frames are dropped.
type logSink struct {
	sounds bool
}

func newLogSink(sounds bool) *logSink { return &logSink{sounds: sounds} }

func (s *logSink) RecordingStarted() { log.Info("recording started") }
func (s *logSink) RecordingStopped() { log.Info("recording stopped") }

func (s *logSink) AudioData([vizPoints]float64, float64) {}

func (s *logSink) TranscriptionStarted() { log.Info("transcription started") }

func (s *logSink) TranscriptionCompleted(text string) {
	log.Infof("transcription completed (%d chars)", len(text))
}

func (s *logSink) TranscriptionError(message string) {
	log.Errorf("transcription failed: %s", message)
}

func (s *logSink) TranscriptionCancelled() { log.Info("transcription cancelled") }

func (s *logSink) WaveReset()           {}
func (s *logSink) ExpandForProcessing() {}
func (s *logSink) ResizeCompact()       {}
func (s *logSink) HideIndicator()       {}

func (s *logSink) PlaySound(kind beep.Kind) {
	if s.sounds {
		beep.Play(kind)
	}
}
