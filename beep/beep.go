// Package beep plays the short UI cues around a dictation session.
package beep

import (
	"math"
	"sync"
)

type Kind string

const (
	Start  Kind = "start"
	Ending Kind = "ending"
	Error  Kind = "error"
)

var (
	disabled  bool
	soundOnce sync.Once

	startTone  []int16
	endingTone []int16
	errorTone  []int16
)

func Disable() { disabled = true }

const (
	sampleRate = 44100

	// Start cue: high pitch, short
	startFreq   = 1200
	startVolume = 0.5
	startDecay  = 60

	// Ending cue: medium pitch, slightly longer
	endingFreq   = 900
	endingVolume = 0.5
	endingDecay  = 40

	// Error cue: low pitch double-beep
	errorFreq   = 350
	errorVolume = 0.6
	errorDecay  = 30
)

func initTones() {
	startTone = tone(startFreq, 0.2, startVolume, startDecay)
	endingTone = tone(endingFreq, 0.2, endingVolume, endingDecay)
	errorTone = doubleBeep(errorFreq, 0.08, 0.05, errorVolume, errorDecay)
}

// tone synthesizes a mono sine burst with an exponential decay envelope.
func tone(freq, duration, volume, decay float64) []int16 {
	n := int(sampleRate * duration)
	samples := make([]int16, n)
	for i := 0; i < n; i++ {
		t := float64(i) / sampleRate
		envelope := math.Exp(-t * decay)
		samples[i] = int16(math.Sin(2*math.Pi*freq*t) * 32767 * volume * envelope)
	}
	return samples
}

func doubleBeep(freq, beepDur, gapDur, volume, decay float64) []int16 {
	b := tone(freq, beepDur, volume, decay)
	gap := make([]int16, int(sampleRate*gapDur))
	out := make([]int16, 0, len(b)*2+len(gap))
	out = append(out, b...)
	out = append(out, gap...)
	out = append(out, b...)
	return out
}

func Init() {
	soundOnce.Do(initTones)
}

// Play fires the cue asynchronously; playback errors are swallowed since a
// missing sound must never block the pipeline.
func Play(kind Kind) {
	if disabled {
		return
	}
	soundOnce.Do(initTones)
	switch kind {
	case Start:
		go playTone(startTone)
	case Ending:
		go playTone(endingTone)
	case Error:
		go playTone(errorTone)
	}
}
