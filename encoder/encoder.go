// Package encoder turns a session's mono capture buffer into the canonical
// payload the transcription API consumes: resampled to 16kHz, loudness
// normalized, quantized to 16-bit PCM and wrapped in a WAV (or optionally
// FLAC) container.
package encoder

import "fmt"

const (
	// TargetRate is the sample rate the transcription service expects.
	TargetRate    = 16000
	Channels      = 1
	BitsPerSample = 16
)

type Format string

const (
	FormatWAV  Format = "wav"
	FormatFLAC Format = "flac"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatWAV, FormatFLAC:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown format %q (use wav or flac)", s)
	}
}

// MIMEType reports the content type sent with the multipart upload.
func (f Format) MIMEType() string {
	if f == FormatFLAC {
		return "audio/flac"
	}
	return "audio/wav"
}

// Encode runs the full preprocessing chain on a mono sample buffer.
// An empty buffer yields an empty payload without touching the container
// writer, so nothing downstream ever sees a zero-frame file.
func Encode(mono []float32, srcRate uint32, format Format) ([]byte, error) {
	if len(mono) == 0 {
		return nil, nil
	}
	samples := Resample(mono, srcRate, TargetRate)
	samples = PreprocessSpeech(samples)
	switch format {
	case FormatFLAC:
		return writeFLAC(samples)
	default:
		return writeWAV(samples)
	}
}

func quantize(samples []float32) []int16 {
	out := make([]int16, len(samples))
	for i, s := range samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		out[i] = int16(s * 32767)
	}
	return out
}
