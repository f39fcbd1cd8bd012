// Package clipboard wraps the system clipboard and supports the
// snapshot/restore dance of the paste injection strategy.
package clipboard

import cb "github.com/atotto/clipboard"

func Read() (string, error) {
	return cb.ReadAll()
}

func Copy(text string) error {
	return cb.WriteAll(text)
}

// Available reports whether a clipboard backend exists on this system.
func Available() bool {
	return !cb.Unsupported
}

// Snapshot captures the current clipboard contents and returns a function
// restoring them. The restore is a no-op when the read failed, so callers
// can always defer it.
func Snapshot() func() {
	prev, err := cb.ReadAll()
	if err != nil {
		return func() {}
	}
	return func() { cb.WriteAll(prev) }
}
