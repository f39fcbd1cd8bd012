package main

import (
	"math"

	"github.com/xptea/VWisper/encoder"
)

// vizBoost scales raw sample magnitude into the indicator's [0,1] range;
// quiet windows get double the boost so breathing-level noise still moves
// the wave.
const (
	vizBoost     = 10.0
	vizIdleBoost = 20.0
)

// vizFrame reduces one 100ms mono window to the indicator's twelve bar
// heights plus the window's RMS volume.
func vizFrame(window []float32, threshold float64) ([vizPoints]float64, float64) {
	var points [vizPoints]float64
	if len(window) == 0 {
		return points, 0
	}

	volume := encoder.RMS(window)
	boost := vizBoost
	if volume < threshold {
		boost = vizIdleBoost
	}

	for i := 0; i < vizPoints; i++ {
		start := i * len(window) / vizPoints
		end := (i + 1) * len(window) / vizPoints
		if end <= start {
			end = start + 1
			if end > len(window) {
				break
			}
		}
		sum := 0.0
		for _, s := range window[start:end] {
			sum += math.Abs(float64(s))
		}
		v := sum / float64(end-start) * boost
		points[i] = math.Min(v, 1.0)
	}
	return points, volume
}
