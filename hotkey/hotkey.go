// Package hotkey watches the global push-to-talk chord (Ctrl+Shift+Space)
// and the cancel gesture.
package hotkey

type Hotkey interface {
	Register() error
	Unregister()
	Keydown() <-chan struct{}
	Keyup() <-chan struct{}
	// Cancel fires on the cancel gesture (Esc while the chord is held on
	// Linux, Ctrl+Shift+Esc elsewhere).
	Cancel() <-chan struct{}
}
