package input

import (
	"git.lost.host/meutraa/divads/internal/game"
	"github.com/eiannone/keyboard"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("divads.input")

// DefaultHold is how many ticks a key counts as held after its last event.
// Terminals only report presses, so a held key is seen through auto repeat.
const DefaultHold = 30

// KeyboardSampler turns terminal key events into held buttons.
type KeyboardSampler struct {
	keys     []rune
	events   <-chan keyboard.KeyEvent
	hold     int
	tick     int
	lastSeen [game.ButtonCount]int
	pressed  game.ButtonMask
	quit     bool
	other    []keyboard.KeyEvent
}

// OpenKeyboard puts the terminal in raw mode. keys lists the key of every
// button in button order.
func OpenKeyboard(keys []rune, hold int) (*KeyboardSampler, error) {
	events, err := keyboard.GetKeys(128)
	if nil != err {
		return nil, err
	}
	return newKeyboardSampler(events, keys, hold), nil
}

func newKeyboardSampler(events <-chan keyboard.KeyEvent, keys []rune, hold int) *KeyboardSampler {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &KeyboardSampler{keys: keys, events: events, hold: hold}
}

func (k *KeyboardSampler) button(r rune) (game.Button, bool) {
	for i, c := range k.keys {
		if r == c && i < game.ButtonCount {
			return game.Button(i), true
		}
	}
	return 0, false
}

func (k *KeyboardSampler) handle(ev keyboard.KeyEvent) {
	if ev.Err != nil {
		log.Errorf("keyboard: %v", ev.Err)
		return
	}
	if ev.Key == keyboard.KeyEsc || ev.Key == keyboard.KeyCtrlC {
		k.quit = true
		return
	}
	b, ok := k.button(ev.Rune)
	if !ok {
		k.other = append(k.other, ev)
		return
	}
	k.lastSeen[b] = k.tick
	k.pressed |= b.Mask()
}

// Sample reads the events that arrived since the last tick.
func (k *KeyboardSampler) Sample() game.ButtonMask {
	k.tick++
	for i := len(k.events); i > 0; i-- {
		k.handle(<-k.events)
	}

	var held game.ButtonMask
	for b := game.Button(0); b < game.ButtonCount; b++ {
		if !k.pressed.Has(b) {
			continue
		}
		if k.tick-k.lastSeen[b] < k.hold {
			held |= b.Mask()
		} else {
			k.pressed &^= b.Mask()
		}
	}
	return held
}

// Quit is true once escape was pressed during play.
func (k *KeyboardSampler) Quit() bool {
	return k.quit
}

// Reset forgets held keys and pending events.
func (k *KeyboardSampler) Reset() {
	for i := len(k.events); i > 0; i-- {
		<-k.events
	}
	k.pressed = 0
	k.quit = false
	k.other = k.other[:0]
}

// Key blocks until the next key event, for menus.
func (k *KeyboardSampler) Key() keyboard.KeyEvent {
	if len(k.other) > 0 {
		ev := k.other[0]
		k.other = k.other[1:]
		return ev
	}
	return <-k.events
}

func (k *KeyboardSampler) Close() error {
	return keyboard.Close()
}
