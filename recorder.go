package main

import (
	"sync"
	"sync/atomic"

	"github.com/xptea/VWisper/audio"
	"github.com/xptea/VWisper/log"
)

// frameBuffer bounds the capture channel. A full channel means the session
// assembler has stalled; chunks are dropped rather than blocking the
// real-time audio callback.
const frameBuffer = 256

// Recorder owns the capture device and hands interleaved sample chunks to
// the session assembler over a channel. A fresh channel is created per
// session so stale audio from a previous session can never leak forward.
type Recorder struct {
	ctx    audio.Context
	device *audio.DeviceInfo

	mu     sync.Mutex
	dev    audio.CaptureDevice
	frames chan []float32

	dropped atomic.Uint64
}

func NewRecorder(ctx audio.Context, deviceName string) *Recorder {
	dev := audio.Resolve(ctx, deviceName)
	if deviceName != "" && dev == nil {
		log.Warnf("audio device %q not found, using system default", deviceName)
	}
	return &Recorder{ctx: ctx, device: dev}
}

// Open initializes the capture device without starting it.
func (r *Recorder) Open() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.openLocked()
}

func (r *Recorder) openLocked() error {
	if r.dev != nil {
		return nil
	}
	dev, err := r.ctx.NewCapture(r.device, audio.CaptureConfig{})
	if err != nil {
		return err
	}
	if audio.IsBluetooth(dev.DeviceName()) {
		log.Warnf("bluetooth input %q detected, capture quality may be reduced", dev.DeviceName())
	}
	r.dev = dev
	return nil
}

// Start begins capture, replacing the frame channel.
func (r *Recorder) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.openLocked(); err != nil {
		return err
	}

	ch := make(chan []float32, frameBuffer)
	r.frames = ch
	r.dev.SetCallback(func(samples []float32, _ uint32) {
		// The callback runs on the audio thread: copy and never block.
		buf := make([]float32, len(samples))
		copy(buf, samples)
		select {
		case ch <- buf:
		default:
			r.dropped.Add(1)
		}
	})
	return r.dev.Start()
}

// Stop halts capture. Frames already in the channel stay readable so the
// assembler can finish draining the session tail.
func (r *Recorder) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.dev == nil {
		return
	}
	r.dev.ClearCallback()
	r.dev.Stop()
}

func (r *Recorder) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.dev != nil {
		r.dev.Close()
		r.dev = nil
	}
}

func (r *Recorder) Frames() <-chan []float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

func (r *Recorder) Dropped() uint64 { return r.dropped.Load() }

func (r *Recorder) SampleRate() uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.dev == nil {
		return 0
	}
	return r.dev.SampleRate()
}

func (r *Recorder) Channels() uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.dev == nil {
		return 0
	}
	return r.dev.Channels()
}

func (r *Recorder) DeviceName() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.dev == nil {
		return ""
	}
	return r.dev.DeviceName()
}
