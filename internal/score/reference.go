package score

import (
	"fmt"

	"git.lost.host/meutraa/divads/internal/game"
	"git.lost.host/meutraa/divads/internal/interpreter"
	"git.lost.host/meutraa/divads/internal/queue"
)

const (
	// Bonus assumed for every group of a perfect run
	referenceBonus = 250
	// Groups after which the combo bonus saturates
	referenceRamp = 49
)

// Reference is the score a perfect run of the chart earns, used to normalize
// the clear percentage. The chart is run to completion without judgment.
func Reference(words []uint32) (int, error) {
	it := interpreter.New(words, 0)
	q := queue.New()
	var clock game.Time
	for !it.Finished() {
		effects, err := it.Resume(clock)
		if err != nil {
			return 0, fmt.Errorf("reference score: %w", err)
		}
		for _, e := range effects {
			if s, ok := e.(interpreter.SpawnNote); ok {
				q.PushBack(s.Note)
			}
		}
		if target, ok := it.WaitTarget(); ok {
			clock = target
		}
	}

	total, groups := 0, 0
	for !q.Empty() {
		n := q.GroupSize()
		points := game.Judgements[game.TierBest].Points
		if q.Head().Kind == game.KindHoldSlideContinuation {
			points = ContinuationPoints
		}
		total += points*n + referenceBonus
		groups++
		if err := q.DequeueGroup(n); err != nil {
			return 0, err
		}
	}

	// The combo bonus ramps up over the first groups
	for k := 1; k <= groups && k <= referenceRamp; k++ {
		total -= referenceBonus - ComboBonus(uint32(k))
	}
	return total, nil
}

// ClearPercent normalizes a performance against the reference score. The hold
// score contributes at most a twentieth of the reference.
func ClearPercent(base, hold uint32, reference int, d game.Difficulty) float64 {
	if reference <= 0 {
		return 0
	}
	ref := float64(reference)
	bonus := float64(hold) * d.HoldWeight()
	if bonus > ref/20 {
		bonus = ref / 20
	}
	return 100 * (float64(base) + bonus) / ref
}
