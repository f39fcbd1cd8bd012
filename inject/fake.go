package inject

import "sync"

// Fake records injected text instead of touching the desktop.
type Fake struct {
	Err error

	mu    sync.Mutex
	texts []string
}

func NewFake() *Fake { return &Fake{} }

func (*Fake) Name() string { return "fake" }

func (f *Fake) Inject(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.texts = append(f.texts, text)
	return nil
}

func (f *Fake) Injected() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.texts))
	copy(out, f.texts)
	return out
}
