package hotkey

import (
	"sync"
	"time"
)

// Debounced filters chatter from a Hotkey: repeated edges of the same kind
// arriving within the window are dropped. Cancel events pass through
// untouched.
type Debounced struct {
	inner  Hotkey
	window time.Duration

	keydown chan struct{}
	keyup   chan struct{}
	stop    chan struct{}
	once    sync.Once
}

func Debounce(inner Hotkey, window time.Duration) *Debounced {
	return &Debounced{
		inner:   inner,
		window:  window,
		keydown: make(chan struct{}, 1),
		keyup:   make(chan struct{}, 1),
		stop:    make(chan struct{}),
	}
}

func (d *Debounced) Register() error {
	if err := d.inner.Register(); err != nil {
		return err
	}
	go d.filter(d.inner.Keydown(), d.keydown)
	go d.filter(d.inner.Keyup(), d.keyup)
	return nil
}

func (d *Debounced) filter(in <-chan struct{}, out chan<- struct{}) {
	var last time.Time
	for {
		select {
		case <-d.stop:
			return
		case <-in:
			now := time.Now()
			if !last.IsZero() && now.Sub(last) < d.window {
				continue
			}
			last = now
			select {
			case out <- struct{}{}:
			default:
			}
		}
	}
}

func (d *Debounced) Unregister() {
	d.once.Do(func() { close(d.stop) })
	d.inner.Unregister()
}

func (d *Debounced) Keydown() <-chan struct{} { return d.keydown }
func (d *Debounced) Keyup() <-chan struct{}   { return d.keyup }
func (d *Debounced) Cancel() <-chan struct{}  { return d.inner.Cancel() }
