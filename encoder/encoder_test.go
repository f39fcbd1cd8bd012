package encoder

import (
	"bytes"
	"math"
	"testing"

	"github.com/youpy/go-wav"
)

func genSine(freq float64, rate uint32, durationMs int) []float32 {
	n := int(rate) * durationMs / 1000
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(0.5 * math.Sin(2*math.Pi*freq*float64(i)/float64(rate)))
	}
	return out
}

func TestResampleIdentity(t *testing.T) {
	in := genSine(440, TargetRate, 100)
	out := Resample(in, TargetRate, TargetRate)
	if len(out) != len(in) {
		t.Fatalf("length changed: %d -> %d", len(in), len(out))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("sample %d changed: %v -> %v", i, in[i], out[i])
		}
	}
}

func TestResampleRatio(t *testing.T) {
	in := genSine(440, 44100, 1000)
	out := Resample(in, 44100, TargetRate)
	want := TargetRate
	if got := len(out); got < want-2 || got > want+2 {
		t.Errorf("resampled length = %d, want ~%d", got, want)
	}
}

func TestResamplePreservesTone(t *testing.T) {
	// A 440Hz sine survives 44.1k -> 16k resampling with its RMS intact.
	in := genSine(440, 44100, 1000)
	out := Resample(in, 44100, TargetRate)
	inRMS, outRMS := RMS(in), RMS(out)
	if math.Abs(inRMS-outRMS) > 0.01 {
		t.Errorf("RMS drifted: %.4f -> %.4f", inRMS, outRMS)
	}
}

func TestDownmix(t *testing.T) {
	stereo := []float32{1, 0, 0.5, 0.5, -1, 1}
	mono := Downmix(stereo, 2)
	want := []float32{0.5, 0.5, 0}
	if len(mono) != len(want) {
		t.Fatalf("len = %d, want %d", len(mono), len(want))
	}
	for i := range want {
		if mono[i] != want[i] {
			t.Errorf("mono[%d] = %v, want %v", i, mono[i], want[i])
		}
	}
}

func TestDownmixMonoPassthrough(t *testing.T) {
	in := []float32{0.1, 0.2, 0.3}
	out := Downmix(in, 1)
	if &out[0] != &in[0] {
		t.Error("mono input should pass through without copying")
	}
}

func TestPreprocessHitsLoudnessTarget(t *testing.T) {
	// Quiet input gets scaled up toward the RMS target.
	in := genSine(440, TargetRate, 500)
	for i := range in {
		in[i] *= 0.01
	}
	out := PreprocessSpeech(in)
	rms := RMS(out)
	// The high-pass shaves a little energy off; allow a loose band.
	if rms < 0.05 || rms > 0.15 {
		t.Errorf("RMS after preprocess = %.4f, want near %.2f", rms, targetRMS)
	}
}

func TestPreprocessRemovesDCOffset(t *testing.T) {
	in := make([]float32, 8000)
	for i := range in {
		in[i] = 0.4 + float32(0.1*math.Sin(2*math.Pi*440*float64(i)/TargetRate))
	}
	out := PreprocessSpeech(in)
	var sum float64
	for _, s := range out {
		sum += float64(s)
	}
	if mean := sum / float64(len(out)); math.Abs(mean) > 0.01 {
		t.Errorf("mean after preprocess = %.4f, want ~0", mean)
	}
}

func TestPreprocessBounded(t *testing.T) {
	// Pathological input must still come out inside [-1,1].
	in := []float32{5, -5, 100, -100, 0.001, 0}
	out := PreprocessSpeech(in)
	for i, s := range out {
		if s > 1 || s < -1 {
			t.Errorf("sample %d out of range: %v", i, s)
		}
	}
}

func TestPreprocessEmpty(t *testing.T) {
	if out := PreprocessSpeech(nil); out != nil {
		t.Errorf("expected nil for empty input, got %d samples", len(out))
	}
}

func TestEncodeEmptyInput(t *testing.T) {
	payload, err := Encode(nil, 44100, FormatWAV)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if payload != nil {
		t.Errorf("expected no payload for empty input, got %d bytes", len(payload))
	}
}

func TestEncodeWAVContainer(t *testing.T) {
	in := genSine(440, 44100, 250)
	payload, err := Encode(in, 44100, FormatWAV)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	r := wav.NewReader(bytes.NewReader(payload))
	format, err := r.Format()
	if err != nil {
		t.Fatalf("parsing wav header: %v", err)
	}
	if format.NumChannels != Channels {
		t.Errorf("channels = %d, want %d", format.NumChannels, Channels)
	}
	if format.SampleRate != TargetRate {
		t.Errorf("sample rate = %d, want %d", format.SampleRate, TargetRate)
	}
	if format.BitsPerSample != BitsPerSample {
		t.Errorf("bits = %d, want %d", format.BitsPerSample, BitsPerSample)
	}
}

func TestEncodeWAVSampleCount(t *testing.T) {
	in := genSine(440, TargetRate, 1000)
	payload, err := Encode(in, TargetRate, FormatWAV)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	// 44-byte header + 2 bytes per sample at identity resampling.
	want := 44 + len(in)*2
	if len(payload) != want {
		t.Errorf("payload = %d bytes, want %d", len(payload), want)
	}
}

func TestEncodeFLACMagic(t *testing.T) {
	in := genSine(440, TargetRate, 500)
	payload, err := Encode(in, TargetRate, FormatFLAC)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(payload) < 4 || string(payload[:4]) != "fLaC" {
		t.Fatal("output does not start with FLAC magic")
	}
	rawSize := len(in) * 2
	if len(payload) >= rawSize {
		t.Errorf("FLAC (%d bytes) not smaller than raw PCM (%d bytes)", len(payload), rawSize)
	}
}

func TestSineRoundTrip(t *testing.T) {
	// 1s of 440Hz at 44.1kHz through mono downmix and the full encode chain:
	// decoded PCM should land near the preprocessor's loudness target.
	stereo := make([]float32, 0, 2*44100)
	mono := genSine(440, 44100, 1000)
	for _, s := range mono {
		stereo = append(stereo, s, s)
	}
	downmixed := Downmix(stereo, 2)
	payload, err := Encode(downmixed, 44100, FormatWAV)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	r := wav.NewReader(bytes.NewReader(payload))
	var decoded []float32
	for {
		samples, err := r.ReadSamples()
		if err != nil {
			break
		}
		for _, s := range samples {
			decoded = append(decoded, float32(r.FloatValue(s, 0)))
		}
	}
	if len(decoded) < TargetRate-100 {
		t.Fatalf("decoded only %d samples", len(decoded))
	}
	rms := RMS(decoded)
	if rms < 0.05 || rms > 0.15 {
		t.Errorf("round-trip RMS = %.4f, want near %.2f", rms, targetRMS)
	}
}

func TestParseFormat(t *testing.T) {
	for _, tt := range []struct {
		input string
		want  Format
		ok    bool
	}{
		{"wav", FormatWAV, true},
		{"flac", FormatFLAC, true},
		{"mp3", "", false},
		{"", "", false},
	} {
		got, err := ParseFormat(tt.input)
		if tt.ok && (err != nil || got != tt.want) {
			t.Errorf("ParseFormat(%q) = %v, %v", tt.input, got, err)
		}
		if !tt.ok && err == nil {
			t.Errorf("ParseFormat(%q): expected error", tt.input)
		}
	}
}
