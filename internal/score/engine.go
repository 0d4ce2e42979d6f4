package score

import "git.lost.host/meutraa/divads/internal/game"

const (
	InitialLife = 127
	MaxLife     = 255

	// Flat bonus for a hit landed at full life
	FullLifeBonus = 10

	ContinuationPoints = 100
	SlideStep          = 10
	SlideCompletion    = 1000
)

// ComboBonus is the bonus a qualifying hit earns at the given combo.
func ComboBonus(combo uint32) int {
	switch {
	case combo >= 50:
		return 250
	case combo >= 40:
		return 200
	case combo >= 30:
		return 150
	case combo >= 20:
		return 100
	case combo >= 10:
		return 50
	}
	return 0
}

// Engine turns verdicts into life, combo and score.
type Engine struct {
	life    int
	combo   uint32
	results game.Results
	slide   int  // Continuation hits in the current held slide
	broken  bool // The current held slide missed a segment
}

func NewEngine() *Engine {
	return &Engine{life: InitialLife}
}

func (e *Engine) Life() int        { return e.life }
func (e *Engine) Combo() uint32    { return e.combo }
func (e *Engine) MaxCombo() uint32 { return e.results.ComboMax }
func (e *Engine) SlideCombo() int  { return e.slide }

// Dead is true once life has run out.
func (e *Engine) Dead() bool {
	return e.life == 0
}

func (e *Engine) addLife(delta int) {
	e.life += delta
	if e.life < 0 {
		e.life = 0
	} else if e.life > MaxLife {
		e.life = MaxLife
	}
}

func (e *Engine) addBase(points int) {
	if points > 0 {
		e.results.ScoreBase += uint32(points)
	}
}

func (e *Engine) breakCombo() {
	e.combo = 0
}

func (e *Engine) extendCombo() {
	e.combo++
	if e.combo > e.results.ComboMax {
		e.results.ComboMax = e.combo
	}
	e.addBase(ComboBonus(e.combo))
}

func (e *Engine) count(t game.Tier) {
	switch t {
	case game.TierBest:
		e.results.Cools++
	case game.TierGood:
		e.results.Fines++
	case game.TierOk:
		e.results.Safes++
	default:
		e.results.Sads++
	}
}

// Apply scores one resolved group.
func (e *Engine) Apply(v *game.Verdict) {
	e.results.Total++
	if v.Kind == game.KindHoldSlideContinuation {
		e.applyContinuation(v)
		return
	}

	n := v.Notes
	j := game.Judgements[v.Tier]
	switch v.Outcome {
	case game.OutcomeHit:
		e.count(v.Tier)
		if e.life == MaxLife {
			e.addBase(FullLifeBonus)
		}
		e.addBase(j.Points * n)
		e.addLife(j.Life)
		if v.Tier <= game.TierGood {
			e.extendCombo()
		} else {
			e.breakCombo()
		}
		if v.Kind == game.KindHoldSlideStart {
			e.slide = 0
			e.broken = false
		}
	case game.OutcomeWrongKey:
		e.results.Wrongs++
		e.addBase(j.WrongPoints * n)
		e.addLife(j.WrongLife)
		e.breakCombo()
		if v.Kind == game.KindHoldSlideStart {
			e.broken = true
		}
	case game.OutcomeTimeout:
		worst := game.Judgements[game.TierPoor]
		e.results.Misses++
		e.addBase(worst.WrongPoints * n)
		e.addLife(worst.WrongLife)
		e.breakCombo()
		if v.Kind == game.KindHoldSlideStart {
			e.broken = true
		}
	}
}

func (e *Engine) applyContinuation(v *game.Verdict) {
	switch v.Outcome {
	case game.OutcomeHit:
		e.results.Cools++
		e.addBase(ContinuationPoints * v.Notes)
		e.extendCombo()
		e.slide++
		e.results.ScoreSlide += uint32(SlideStep * e.slide)
		if v.ChainEnd && !e.broken {
			e.results.ScoreSlide += SlideCompletion
		}
	default:
		// Continuations are level sampled so only timeouts get here
		e.results.Misses++
		e.breakCombo()
		e.slide = 0
		e.broken = true
	}
	if v.ChainEnd {
		e.slide = 0
		e.broken = false
	}
}

// AddHold commits hold bonus points.
func (e *Engine) AddHold(points int) {
	if points > 0 {
		e.results.ScoreHold += uint32(points)
	}
}

// Results returns the running totals. Clear is left for the caller, who
// knows the reference score.
func (e *Engine) Results() game.Results {
	return e.results
}
