package inject

import (
	"time"

	"github.com/xptea/VWisper/clipboard"
)

// ClipboardPaste copies the text, sends the platform paste chord, waits for
// the focused app to consume it, then restores the previous clipboard
// contents. On any failure it falls back to key typing.
type ClipboardPaste struct {
	fallback Injector
}

func (*ClipboardPaste) Name() string { return StrategyClipboard }

func (c *ClipboardPaste) Inject(text string) error {
	if !clipboard.Available() {
		return c.fallbackOr(text, errClipboardUnavailable)
	}
	restore := clipboard.Snapshot()

	if err := clipboard.Copy(text); err != nil {
		restore()
		return c.fallbackOr(text, err)
	}

	err := sendPaste()
	// The target app reads the clipboard asynchronously after the chord
	// lands. Restoring too early pastes the old contents.
	time.Sleep(150 * time.Millisecond)
	restore()

	if err != nil {
		return c.fallbackOr(text, err)
	}
	return nil
}

func (c *ClipboardPaste) fallbackOr(text string, err error) error {
	if c.fallback != nil {
		return c.fallback.Inject(text)
	}
	return err
}
