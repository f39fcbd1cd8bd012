package encoder

import (
	"bytes"
	"fmt"

	"github.com/youpy/go-wav"
)

func writeWAV(samples []float32) ([]byte, error) {
	pcm := quantize(samples)
	var buf bytes.Buffer
	w := wav.NewWriter(&buf, uint32(len(pcm)), Channels, TargetRate, BitsPerSample)
	out := make([]wav.Sample, len(pcm))
	for i, s := range pcm {
		out[i].Values[0] = int(s)
	}
	if err := w.WriteSamples(out); err != nil {
		return nil, fmt.Errorf("writing wav samples: %w", err)
	}
	return buf.Bytes(), nil
}
