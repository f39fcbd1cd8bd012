//go:build !linux

package beep

import (
	"encoding/binary"
	"sync"
	"sync/atomic"

	"github.com/gen2brain/malgo"
)

var (
	malgoCtx *malgo.AllocatedContext
	device   *malgo.Device
	deviceMu sync.Mutex
	initOnce sync.Once
	playData atomic.Pointer[[]byte]
	playPos  atomic.Uint32
)

func initPlayback() {
	var err error
	malgoCtx, err = malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return
	}
	if err := initDevice(); err != nil {
		malgoCtx.Uninit()
		malgoCtx = nil
	}
}

func initDevice() error {
	config := malgo.DefaultDeviceConfig(malgo.Playback)
	config.Playback.Format = malgo.FormatS16
	config.Playback.Channels = 1
	config.SampleRate = sampleRate

	var err error
	device, err = malgo.InitDevice(malgoCtx.Context, malgo.DeviceCallbacks{
		Data: dataCallback,
	})
	return err
}

func dataCallback(pOutput, _ []byte, frameCount uint32) {
	data := playData.Load()
	if data == nil || len(*data) == 0 {
		for i := range pOutput {
			pOutput[i] = 0
		}
		return
	}

	pos := playPos.Load()
	total := uint32(len(*data))
	want := frameCount * 2
	remaining := total - pos

	if remaining == 0 {
		playData.Store(nil)
		for i := range pOutput {
			pOutput[i] = 0
		}
		return
	}
	if want > remaining {
		want = remaining
	}

	copy(pOutput[:want], (*data)[pos:pos+want])
	playPos.Store(pos + want)

	for i := want; i < frameCount*2; i++ {
		pOutput[i] = 0
	}
}

func playTone(samples []int16) {
	initOnce.Do(initPlayback)
	if malgoCtx == nil || len(samples) == 0 {
		return
	}

	buf := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(s))
	}

	deviceMu.Lock()
	defer deviceMu.Unlock()
	if device == nil {
		return
	}

	device.Stop()
	playPos.Store(0)
	playData.Store(&buf)

	if err := device.Start(); err != nil {
		// Recreate the device after sleep/wake invalidates it.
		device.Uninit()
		if err := initDevice(); err != nil {
			playData.Store(nil)
			return
		}
		if err := device.Start(); err != nil {
			playData.Store(nil)
		}
	}
}
