//go:build !linux

package hotkey

import (
	"golang.design/x/hotkey"
)

type xHotkey struct {
	hk       *hotkey.Hotkey
	cancelHk *hotkey.Hotkey
	keydown  chan struct{}
	keyup    chan struct{}
	cancel   chan struct{}
}

func New() Hotkey {
	mods := []hotkey.Modifier{hotkey.ModCtrl, hotkey.ModShift}
	return &xHotkey{
		hk:       hotkey.New(mods, hotkey.KeySpace),
		cancelHk: hotkey.New(mods, hotkey.KeyEscape),
		keydown:  make(chan struct{}, 1),
		keyup:    make(chan struct{}, 1),
		cancel:   make(chan struct{}, 1),
	}
}

func (h *xHotkey) Register() error {
	if err := h.hk.Register(); err != nil {
		return err
	}
	if err := h.cancelHk.Register(); err != nil {
		h.hk.Unregister()
		return err
	}
	go func() {
		for {
			<-h.hk.Keydown()
			h.keydown <- struct{}{}
		}
	}()
	go func() {
		for {
			<-h.hk.Keyup()
			h.keyup <- struct{}{}
		}
	}()
	go func() {
		for {
			<-h.cancelHk.Keydown()
			select {
			case h.cancel <- struct{}{}:
			default:
			}
		}
	}()
	return nil
}

func (h *xHotkey) Unregister() {
	h.hk.Unregister()
	h.cancelHk.Unregister()
}

func (h *xHotkey) Keydown() <-chan struct{} { return h.keydown }
func (h *xHotkey) Keyup() <-chan struct{}   { return h.keyup }
func (h *xHotkey) Cancel() <-chan struct{}  { return h.cancel }

func Diagnose() (string, error) {
	return "hotkey support available (Ctrl+Shift+Space, cancel Ctrl+Shift+Esc)", nil
}
