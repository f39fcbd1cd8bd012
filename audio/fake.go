package audio

import (
	"sync"
	"time"
)

// FakeContext plays back a fixed sample buffer as if it were a microphone.
// Once the buffer is exhausted the capture keeps delivering zero-valued
// frames, which downstream consumers see as silence.
type FakeContext struct {
	samples  []float32
	rate     uint32
	channels uint32

	// Interval between emitted chunks. The default (1ms) runs much faster
	// than real time so tests stay quick.
	Interval time.Duration
	// ChunkFrames is the number of frames per emitted chunk.
	ChunkFrames int
}

func NewFakeContext(samples []float32, rate, channels uint32) *FakeContext {
	return &FakeContext{
		samples:     samples,
		rate:        rate,
		channels:    channels,
		Interval:    time.Millisecond,
		ChunkFrames: 512,
	}
}

func (f *FakeContext) Devices() ([]DeviceInfo, error) {
	return []DeviceInfo{{ID: "fake", Name: "fake"}}, nil
}

func (f *FakeContext) Close() {}

func (f *FakeContext) NewCapture(_ *DeviceInfo, _ CaptureConfig) (CaptureDevice, error) {
	return &FakeCapture{
		samples:     f.samples,
		rate:        f.rate,
		channels:    f.channels,
		interval:    f.Interval,
		chunkFrames: f.ChunkFrames,
		audioDone:   make(chan struct{}),
	}, nil
}

type FakeCapture struct {
	samples     []float32
	rate        uint32
	channels    uint32
	interval    time.Duration
	chunkFrames int
	audioDone   chan struct{}

	mu       sync.Mutex
	cb       DataCallback
	stopCh   chan struct{}
	feedDone chan struct{}
}

// AudioDone is closed once every real sample has been delivered and the
// capture has switched to emitting silence.
func (f *FakeCapture) AudioDone() <-chan struct{} { return f.audioDone }

func (f *FakeCapture) SetCallback(cb DataCallback) {
	f.mu.Lock()
	f.cb = cb
	f.mu.Unlock()
}

func (f *FakeCapture) ClearCallback() {
	f.mu.Lock()
	f.cb = nil
	f.mu.Unlock()
}

func (f *FakeCapture) DeviceName() string { return "fake" }
func (f *FakeCapture) SampleRate() uint32 { return f.rate }
func (f *FakeCapture) Channels() uint32   { return f.channels }

func (f *FakeCapture) Start() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stopCh != nil {
		return nil
	}
	f.stopCh = make(chan struct{})
	f.feedDone = make(chan struct{})

	chunkLen := f.chunkFrames * int(f.channels)
	go func(stopCh, feedDone chan struct{}) {
		defer close(feedDone)
		pos := 0
		exhausted := false
		silence := make([]float32, chunkLen)
		for {
			select {
			case <-stopCh:
				return
			case <-time.After(f.interval):
			}

			f.mu.Lock()
			cb := f.cb
			f.mu.Unlock()
			if cb == nil {
				continue
			}

			if pos < len(f.samples) {
				end := min(pos+chunkLen, len(f.samples))
				chunk := make([]float32, end-pos)
				copy(chunk, f.samples[pos:end])
				pos = end
				cb(chunk, uint32(len(chunk)/int(f.channels)))
			} else {
				if !exhausted {
					exhausted = true
					close(f.audioDone)
				}
				cb(silence, uint32(f.chunkFrames))
			}
		}
	}(f.stopCh, f.feedDone)

	return nil
}

func (f *FakeCapture) Stop() {
	f.mu.Lock()
	stopCh, feedDone := f.stopCh, f.feedDone
	f.stopCh, f.feedDone = nil, nil
	f.mu.Unlock()
	if stopCh == nil {
		return
	}
	close(stopCh)
	<-feedDone
}

func (f *FakeCapture) Close() { f.Stop() }
