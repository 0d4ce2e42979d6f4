package input

// #include <linux/input-event-codes.h>
// #include <linux/input.h>
import "C"

import (
	"encoding/binary"
	"os"
	"syscall"

	"git.lost.host/meutraa/divads/internal/game"
)

type keyEvent struct {
	Time  syscall.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

type Event struct {
	Pressed  bool
	Released bool
	//https://github.com/torvalds/linux/blob/master/include/uapi/linux/input-event-codes.h
	Code uint16
	Time syscall.Timeval
}

// DefaultCodes are the evdev codes of W, D, S, A, Q and E.
var DefaultCodes = [game.ButtonCount]uint16{C.KEY_W, C.KEY_D, C.KEY_S, C.KEY_A, C.KEY_Q, C.KEY_E}

func ReadInput(kbd string, events chan *Event) error {
	file, err := os.Open(kbd)
	if err != nil {
		return err
	}
	go func() {
		defer file.Close()

		var ev keyEvent
		for {
			err = binary.Read(file, binary.LittleEndian, &ev)
			if nil != err {
				log.Errorf("unable to read keyboard input: %v", err)
				return
			}
			if ev.Type != C.EV_KEY {
				continue
			}
			// Auto repeat reports a value of 2
			if ev.Value != 0 && ev.Value != 1 {
				continue
			}
			events <- &Event{
				Pressed:  ev.Value == 1,
				Released: ev.Value == 0,
				Code:     ev.Code,
				Time:     ev.Time,
			}
		}
	}()
	return nil
}

// EvdevSampler reads real press and release events from an input device,
// usually /dev/input/eventN.
type EvdevSampler struct {
	codes  [game.ButtonCount]uint16
	events chan *Event
	held   game.ButtonMask
}

func OpenEvdev(device string, codes [game.ButtonCount]uint16) (*EvdevSampler, error) {
	s := &EvdevSampler{codes: codes, events: make(chan *Event, 128)}
	if err := ReadInput(device, s.events); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *EvdevSampler) apply(ev *Event) {
	for b, code := range s.codes {
		if code != ev.Code {
			continue
		}
		if ev.Pressed {
			s.held |= game.Button(b).Mask()
		} else if ev.Released {
			s.held &^= game.Button(b).Mask()
		}
	}
}

func (s *EvdevSampler) Sample() game.ButtonMask {
	for i := len(s.events); i > 0; i-- {
		s.apply(<-s.events)
	}
	return s.held
}
