// Package inject delivers transcribed text into the focused application.
package inject

import "runtime"

const (
	StrategyClipboard = "clipboard"
	StrategyKeystroke = "keystroke"
)

type Injector interface {
	Name() string
	Inject(text string) error
}

// New picks the injection strategy. Empty means the platform default:
// clipboard paste on macOS and Windows, key typing on Linux where the paste
// chord differs between terminals and everything else.
func New(strategy string) Injector {
	if strategy == "" {
		if runtime.GOOS == "linux" {
			strategy = StrategyKeystroke
		} else {
			strategy = StrategyClipboard
		}
	}
	switch strategy {
	case StrategyKeystroke:
		return &Keystroke{}
	default:
		return &ClipboardPaste{fallback: &Keystroke{}}
	}
}
