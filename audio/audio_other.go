//go:build !linux

package audio

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/gen2brain/malgo"
)

// Backend order tried when the default context has no capture devices.
// Mirrors the degraded setups seen in the wild: the default host may be
// present but driverless, while an alternate backend still works.
var fallbackBackends = [][]malgo.Backend{
	{malgo.BackendWasapi},
	{malgo.BackendCoreaudio},
	{malgo.BackendDsound},
	{malgo.BackendAlsa},
	{malgo.BackendPulseaudio},
}

type malgoContext struct {
	ctx *malgo.AllocatedContext
}

// NewContext initializes the default miniaudio host, falling back through
// alternate backends until one reports a capture device. Returns
// ErrNoInputDevice when every backend comes up empty.
func NewContext() (Context, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err == nil {
		if hasCapture(ctx) {
			return &malgoContext{ctx: ctx}, nil
		}
		ctx.Uninit()
		ctx.Free()
	}
	for _, backends := range fallbackBackends {
		ctx, err = malgo.InitContext(backends, malgo.ContextConfig{}, nil)
		if err != nil {
			continue
		}
		if hasCapture(ctx) {
			return &malgoContext{ctx: ctx}, nil
		}
		ctx.Uninit()
		ctx.Free()
	}
	return nil, ErrNoInputDevice
}

func hasCapture(ctx *malgo.AllocatedContext) bool {
	devices, err := ctx.Devices(malgo.Capture)
	return err == nil && len(devices) > 0
}

func (m *malgoContext) Devices() ([]DeviceInfo, error) {
	devices, err := m.ctx.Devices(malgo.Capture)
	if err != nil {
		return nil, fmt.Errorf("malgo devices: %w", err)
	}
	var result []DeviceInfo
	for _, d := range devices {
		result = append(result, DeviceInfo{
			ID:   hex.EncodeToString(d.ID.Pointer()[:]),
			Name: d.Name(),
		})
	}
	return result, nil
}

func (m *malgoContext) NewCapture(device *DeviceInfo, config CaptureConfig) (CaptureDevice, error) {
	deviceConfig := malgo.DefaultDeviceConfig(malgo.Capture)
	deviceConfig.Capture.Format = malgo.FormatF32
	deviceConfig.Capture.Channels = config.Channels
	deviceConfig.SampleRate = config.SampleRate

	name := "system default"
	if device != nil {
		idBytes, err := hex.DecodeString(device.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid device ID: %w", err)
		}
		var devID malgo.DeviceID
		copy(devID[:], idBytes)
		deviceConfig.Capture.DeviceID = devID.Pointer()
		name = device.Name
	}

	mc := &malgoCapture{name: name}
	callbacks := malgo.DeviceCallbacks{
		Data: func(_, data []byte, frameCount uint32) {
			cb := mc.callback.Load()
			if cb == nil || len(data) < 4 {
				return
			}
			samples := make([]float32, len(data)/4)
			for i := range samples {
				samples[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
			}
			(*cb)(samples, frameCount)
		},
	}

	dev, err := malgo.InitDevice(m.ctx.Context, deviceConfig, callbacks)
	if err != nil {
		return nil, fmt.Errorf("malgo capture init: %w", err)
	}
	mc.device = dev
	return mc, nil
}

func (m *malgoContext) Close() {
	m.ctx.Uninit()
	m.ctx.Free()
}

type malgoCapture struct {
	device   *malgo.Device
	name     string
	callback atomic.Pointer[DataCallback]
}

func (c *malgoCapture) Start() error {
	if c.device.IsStarted() {
		return nil
	}
	return c.device.Start()
}

func (c *malgoCapture) Stop() {
	if c.device.IsStarted() {
		c.device.Stop()
	}
}

func (c *malgoCapture) Close() {
	c.device.Uninit()
}

func (c *malgoCapture) SetCallback(cb DataCallback) {
	c.callback.Store(&cb)
}

func (c *malgoCapture) ClearCallback() {
	c.callback.Store(nil)
}

func (c *malgoCapture) DeviceName() string { return c.name }

func (c *malgoCapture) SampleRate() uint32 { return c.device.SampleRate() }

func (c *malgoCapture) Channels() uint32 { return c.device.CaptureChannels() }
