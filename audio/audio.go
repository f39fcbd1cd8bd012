package audio

import (
	"errors"
	"strings"
)

// ErrNoInputDevice is returned when no backend yields a usable capture device.
var ErrNoInputDevice = errors.New("no input device available")

// DataCallback receives one capture buffer of float32 samples in [-1,1].
// Samples are interleaved when the device delivers more than one channel.
type DataCallback func(samples []float32, frameCount uint32)

type CaptureConfig struct {
	SampleRate uint32 // 0 = device native rate
	Channels   uint32 // 0 = device native channel count
}

type DeviceInfo struct {
	ID   string // opaque platform-specific identifier
	Name string
}

type Context interface {
	Devices() ([]DeviceInfo, error)
	NewCapture(device *DeviceInfo, config CaptureConfig) (CaptureDevice, error)
	Close()
}

type CaptureDevice interface {
	Start() error
	Stop()
	Close()
	SetCallback(cb DataCallback)
	ClearCallback()
	DeviceName() string
	// SampleRate reports the rate the device actually delivers at.
	SampleRate() uint32
	Channels() uint32
}

// Resolve finds a device by name, returning nil (system default) when the
// name is empty or not found.
func Resolve(ctx Context, name string) *DeviceInfo {
	if name == "" {
		return nil
	}
	devices, err := ctx.Devices()
	if err != nil {
		return nil
	}
	for i := range devices {
		if devices[i].Name == name {
			return &devices[i]
		}
	}
	return nil
}

var btKeywords = []string{
	"airpods", "beats", "bose", "wh-1000", "wf-1000",
	"jabra", "galaxy buds", "pixel buds", "powerbeats",
	"jbl ", "sennheiser momentum", "plantronics",
	"bluetooth", " bt ", " bt)", " bt]",
}

// IsBluetooth guesses whether a device name refers to a Bluetooth headset,
// which typically records at reduced quality.
func IsBluetooth(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range btKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
