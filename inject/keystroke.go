package inject

import (
	"fmt"
	"sync"
	"time"

	"github.com/micmonay/keybd_event"
)

var (
	kb     keybd_event.KeyBonding
	kbOnce sync.Once
	kbErr  error
)

func bonding() (*keybd_event.KeyBonding, error) {
	kbOnce.Do(func() {
		kb, kbErr = keybd_event.NewKeyBonding()
	})
	if kbErr != nil {
		return nil, kbErr
	}
	return &kb, nil
}

// Keystroke types text into the focused window one key event at a time.
type Keystroke struct{}

func (*Keystroke) Name() string { return StrategyKeystroke }

// Inject types the text rune by rune. Runes with no key on a US layout are
// skipped rather than failing the whole injection.
func (*Keystroke) Inject(text string) error {
	k, err := bonding()
	if err != nil {
		return err
	}
	for _, r := range text {
		key, shift, ok := keyFor(r)
		if !ok {
			continue
		}
		k.Clear()
		k.SetKeys(key)
		k.HasSHIFT(shift)
		if err := k.Launching(); err != nil {
			return fmt.Errorf("typing %q: %w", r, err)
		}
		// Fast apps drop events when they arrive back to back.
		time.Sleep(2 * time.Millisecond)
	}
	return nil
}

var plainKeys = map[rune]int{
	' ':  keybd_event.VK_SPACE,
	'\n': keybd_event.VK_ENTER,
	'\t': keybd_event.VK_TAB,
	'`':  keybd_event.VK_SP1,
	'-':  keybd_event.VK_SP2,
	'=':  keybd_event.VK_SP3,
	'[':  keybd_event.VK_SP4,
	']':  keybd_event.VK_SP5,
	';':  keybd_event.VK_SP6,
	'\'': keybd_event.VK_SP7,
	',':  keybd_event.VK_SP8,
	'.':  keybd_event.VK_SP9,
	'/':  keybd_event.VK_SP10,
	'\\': keybd_event.VK_SP11,
}

var shiftKeys = map[rune]int{
	'~': keybd_event.VK_SP1,
	'_': keybd_event.VK_SP2,
	'+': keybd_event.VK_SP3,
	'{': keybd_event.VK_SP4,
	'}': keybd_event.VK_SP5,
	':': keybd_event.VK_SP6,
	'"': keybd_event.VK_SP7,
	'<': keybd_event.VK_SP8,
	'>': keybd_event.VK_SP9,
	'?': keybd_event.VK_SP10,
	'|': keybd_event.VK_SP11,
	'!': keybd_event.VK_1,
	'@': keybd_event.VK_2,
	'#': keybd_event.VK_3,
	'$': keybd_event.VK_4,
	'%': keybd_event.VK_5,
	'^': keybd_event.VK_6,
	'&': keybd_event.VK_7,
	'*': keybd_event.VK_8,
	'(': keybd_event.VK_9,
	')': keybd_event.VK_0,
}

var letterKeys = [26]int{
	keybd_event.VK_A, keybd_event.VK_B, keybd_event.VK_C, keybd_event.VK_D,
	keybd_event.VK_E, keybd_event.VK_F, keybd_event.VK_G, keybd_event.VK_H,
	keybd_event.VK_I, keybd_event.VK_J, keybd_event.VK_K, keybd_event.VK_L,
	keybd_event.VK_M, keybd_event.VK_N, keybd_event.VK_O, keybd_event.VK_P,
	keybd_event.VK_Q, keybd_event.VK_R, keybd_event.VK_S, keybd_event.VK_T,
	keybd_event.VK_U, keybd_event.VK_V, keybd_event.VK_W, keybd_event.VK_X,
	keybd_event.VK_Y, keybd_event.VK_Z,
}

var digitKeys = [10]int{
	keybd_event.VK_0, keybd_event.VK_1, keybd_event.VK_2, keybd_event.VK_3,
	keybd_event.VK_4, keybd_event.VK_5, keybd_event.VK_6, keybd_event.VK_7,
	keybd_event.VK_8, keybd_event.VK_9,
}

// keyFor maps a rune to its US-layout key code and shift state.
func keyFor(r rune) (key int, shift bool, ok bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return letterKeys[r-'a'], false, true
	case r >= 'A' && r <= 'Z':
		return letterKeys[r-'A'], true, true
	case r >= '0' && r <= '9':
		return digitKeys[r-'0'], false, true
	}
	if key, ok := plainKeys[r]; ok {
		return key, false, true
	}
	if key, ok := shiftKeys[r]; ok {
		return key, true, true
	}
	return 0, false, false
}
