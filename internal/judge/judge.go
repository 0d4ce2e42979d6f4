package judge

import (
	"fmt"

	"git.lost.host/meutraa/divads/internal/game"
	"git.lost.host/meutraa/divads/internal/queue"
)

var (
	// PreWindow is how early the head group starts accepting input.
	PreWindow = game.Ticks(12)
	// PostWindow is how late the head group can still be hit.
	PostWindow = game.Ticks(12)
)

// Judge resolves the head group of a queue against sampled input.
type Judge struct {
	queue *queue.Queue

	// Bookkeeping for the group being awaited, zero while idle
	current   int
	time      game.Time
	required  game.ButtonMask
	satisfied game.ButtonMask
	holds     game.ButtonMask
	level     bool
	kind      game.Kind
	x, y      int32
}

func New(q *queue.Queue) *Judge {
	return &Judge{queue: q}
}

// Awaiting is true while a group is within its judgment window.
func (j *Judge) Awaiting() bool {
	return j.current > 0
}

// recognize captures the head group. It runs again when a spawn changes the
// group while it is awaited, keeping presses that still apply.
func (j *Judge) recognize(time game.Time) {
	n := j.queue.GroupSize()
	head := j.queue.Head()
	j.current = n
	j.time = time
	j.level = head.LevelSampled()
	j.kind = head.Kind
	j.required, j.holds = 0, 0

	var sx, sy int32
	for i := 0; i < n; i++ {
		note := j.queue.At(i)
		j.required |= note.Button.Mask()
		if note.Kind == game.KindHoldTap {
			j.holds |= note.Button.Mask()
		}
		sx += note.X + 16
		sy += note.Y + 16
	}
	j.x = sx/int32(n) - 16
	j.y = sy/int32(n) - 28
	j.satisfied &= j.required
}

// Update samples one tick of input. It returns a verdict when the head group
// was resolved this tick.
func (j *Judge) Update(clock game.Time, in game.Input) (*game.Verdict, error) {
	head, ok := j.queue.PeekHeadTime()
	if !ok || head-PreWindow > clock {
		return nil, nil
	}

	if j.current != j.queue.GroupSize() || j.time != head {
		j.recognize(head)
	}

	for b := game.Button(0); b < game.ButtonCount; b++ {
		bit := b.Mask()
		switch {
		case j.level && in.Held&bit != 0:
			if j.required&bit != 0 {
				j.satisfied |= bit
			}
		case !j.level && in.Down&bit != 0:
			if j.required&bit != 0 {
				j.satisfied |= bit
				continue
			}
			return j.resolve(game.OutcomeWrongKey, clock)
		case in.Up&bit != 0:
			j.satisfied &^= bit
		}
	}

	if j.satisfied == j.required {
		return j.resolve(game.OutcomeHit, clock)
	} else if clock > head+PostWindow {
		return j.resolve(game.OutcomeTimeout, clock)
	}
	return nil, nil
}

func (j *Judge) resolve(outcome game.Outcome, clock game.Time) (*game.Verdict, error) {
	head := j.queue.Head()
	v := &game.Verdict{
		Outcome: outcome,
		Kind:    j.kind,
		Notes:   j.current,
		Offset:  head.Time - clock,
		X:       j.x,
		Y:       j.y,
		Holds:   j.holds,
	}
	switch {
	case outcome == game.OutcomeTimeout:
		v.Tier = game.TierPoor
	case outcome == game.OutcomeHit && j.kind == game.KindHoldSlideContinuation:
		v.Tier = game.TierBest
	default:
		v.Tier = game.Judge(v.Offset, j.kind.IsSlide())
	}

	button := head.Button
	if err := j.queue.DequeueGroup(j.current); err != nil {
		return nil, fmt.Errorf("resolving %v group: %w", j.kind, err)
	}
	if j.kind == game.KindHoldSlideContinuation {
		next := j.queue.Head()
		v.ChainEnd = next == nil || next.Kind != game.KindHoldSlideContinuation || next.Button != button
	}

	j.Reset()
	return v, nil
}

// Reset forgets the awaited group without touching the queue.
func (j *Judge) Reset() {
	*j = Judge{queue: j.queue}
}
