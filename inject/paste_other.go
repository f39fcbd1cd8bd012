//go:build !darwin

package inject

import (
	"errors"

	"github.com/micmonay/keybd_event"
)

var errClipboardUnavailable = errors.New("clipboard unavailable")

func sendPaste() error {
	k, err := bonding()
	if err != nil {
		return err
	}
	k.Clear()
	k.SetKeys(keybd_event.VK_V)
	k.HasCTRL(true)
	return k.Launching()
}
