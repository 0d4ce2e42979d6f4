package judge

import "git.lost.host/meutraa/divads/internal/game"

const (
	HoldTickPoints      = 10
	HoldCommitTicks     = 30
	HoldMaxTicks        = 300
	HoldCompletionBonus = 1500
)

type hold struct {
	active      bool
	elapsed     int
	provisional int
}

// HoldTracker scores hold notes that stay pressed after being hit. Points
// earned in the first HoldCommitTicks are lost if the button is released
// early.
type HoldTracker struct {
	holds [game.ButtonCount]hold
}

// Start begins a session for every button in mask, replacing any running one.
func (h *HoldTracker) Start(mask game.ButtonMask) {
	for b := game.Button(0); b < game.ButtonCount; b++ {
		if mask.Has(b) {
			h.holds[b] = hold{active: true}
		}
	}
}

// Cancel drops the sessions of mask along with their provisional points.
func (h *HoldTracker) Cancel(mask game.ButtonMask) {
	for b := game.Button(0); b < game.ButtonCount; b++ {
		if mask.Has(b) {
			h.holds[b] = hold{}
		}
	}
}

func (h *HoldTracker) Active() game.ButtonMask {
	var mask game.ButtonMask
	for b := game.Button(0); b < game.ButtonCount; b++ {
		if h.holds[b].active {
			mask |= b.Mask()
		}
	}
	return mask
}

// Update advances every session by one tick and returns the points committed
// during it.
func (h *HoldTracker) Update(held game.ButtonMask) int {
	committed := 0
	for b := game.Button(0); b < game.ButtonCount; b++ {
		hd := &h.holds[b]
		if !hd.active {
			continue
		}
		if !held.Has(b) {
			*hd = hold{}
			continue
		}

		hd.elapsed++
		switch {
		case hd.elapsed < HoldCommitTicks:
			hd.provisional += HoldTickPoints
		case hd.elapsed == HoldCommitTicks:
			committed += hd.provisional + HoldTickPoints
			hd.provisional = 0
		default:
			committed += HoldTickPoints
		}

		if hd.elapsed >= HoldMaxTicks {
			committed += HoldCompletionBonus
			*hd = hold{}
		}
	}
	return committed
}

func (h *HoldTracker) Reset() {
	*h = HoldTracker{}
}
