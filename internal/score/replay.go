package score

import (
	"fmt"

	"git.lost.host/meutraa/divads/internal/game"
	"github.com/fxamacker/cbor/v2"
)

var encMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("score: failed to create CBOR enc mode: %v", err))
	}
	encMode = em
}

// Replay is the held state of every button for each tick of a run.
type Replay struct {
	Sum     string
	FlyTime game.Time
	Inputs  []game.ButtonMask
}

// InputsCompact lists the ticks at which one button changed state.
type InputsCompact struct {
	Button  game.Button `cbor:"1,keyasint"`
	Toggles []uint32    `cbor:"2,keyasint,omitempty"`
}

type replayData struct {
	Ticks   uint32          `cbor:"1,keyasint"`
	FlyTime int64           `cbor:"2,keyasint"`
	Buttons []InputsCompact `cbor:"3,keyasint"`
}

func compactInputs(inputs []game.ButtonMask) []InputsCompact {
	ins := make([]InputsCompact, game.ButtonCount)
	var last game.ButtonMask
	for tick, held := range inputs {
		changed := held ^ last
		for b := game.Button(0); b < game.ButtonCount; b++ {
			if changed.Has(b) {
				ins[b].Toggles = append(ins[b].Toggles, uint32(tick))
			}
		}
		last = held
	}
	for b := range ins {
		ins[b].Button = game.Button(b)
	}
	return ins
}

func uncompactInputs(inputs []InputsCompact, ticks int) []game.ButtonMask {
	held := make([]game.ButtonMask, ticks)
	for _, in := range inputs {
		if in.Button >= game.ButtonCount {
			continue
		}
		down := false
		next := 0
		for tick := 0; tick < ticks; tick++ {
			for next < len(in.Toggles) && int(in.Toggles[next]) == tick {
				down = !down
				next++
			}
			if down {
				held[tick] |= in.Button.Mask()
			}
		}
	}
	return held
}

// MarshalReplay encodes the replay inputs.
func MarshalReplay(r *Replay) ([]byte, error) {
	return encMode.Marshal(&replayData{
		Ticks:   uint32(len(r.Inputs)),
		FlyTime: int64(r.FlyTime),
		Buttons: compactInputs(r.Inputs),
	})
}

func UnmarshalReplay(data []byte) (*Replay, error) {
	var d replayData
	if err := cbor.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("score: unmarshal replay: %w", err)
	}
	return &Replay{
		FlyTime: game.Time(d.FlyTime),
		Inputs:  uncompactInputs(d.Buttons, int(d.Ticks)),
	}, nil
}
