package encoder

import "math"

const (
	targetRMS     = 0.1  // speech loudness target after normalization
	highpassAlpha = 0.98 // one-pole high-pass, rolls off below ~80Hz at 16kHz
	clipCeiling   = 0.95
)

// PreprocessSpeech cleans a mono buffer for recognition: DC offset removal,
// RMS normalization to a fixed loudness target, a high-pass to strip
// low-frequency rumble, and a soft limit. Output is guaranteed to stay
// inside [-1,1] regardless of input.
func PreprocessSpeech(samples []float32) []float32 {
	if len(samples) == 0 {
		return nil
	}
	out := make([]float32, len(samples))
	copy(out, samples)

	var sum float64
	for _, s := range out {
		sum += float64(s)
	}
	mean := float32(sum / float64(len(out)))
	for i := range out {
		out[i] -= mean
	}

	var sumSquares float64
	for _, s := range out {
		sumSquares += float64(s) * float64(s)
	}
	rms := float32(math.Sqrt(sumSquares / float64(len(out))))
	if rms > 0 {
		scale := targetRMS / rms
		for i := range out {
			out[i] *= scale
		}
	}

	var prevIn, prevOut float32
	for i := range out {
		in := out[i]
		out[i] = highpassAlpha * (prevOut + in - prevIn)
		prevIn = in
		prevOut = out[i]
	}

	for i := range out {
		if out[i] > clipCeiling {
			out[i] = clipCeiling
		} else if out[i] < -clipCeiling {
			out[i] = -clipCeiling
		}
	}
	return out
}

// RMS reports the root mean square amplitude of a buffer.
func RMS(samples []float32) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sumSquares float64
	for _, s := range samples {
		sumSquares += float64(s) * float64(s)
	}
	return math.Sqrt(sumSquares / float64(len(samples)))
}
