package game

type Tier uint8

const (
	TierBest Tier = iota
	TierGood
	TierOk
	TierPoor
	TierCount
)

type Judgement struct {
	Name        string
	Window      Time // Largest offset resolving to this tier
	Life        int
	Points      int
	WrongLife   int
	WrongPoints int
}

// Judgements is indexed by Tier. Poor catches everything past Ok.
var Judgements = [TierCount]Judgement{
	{Name: "COOL", Window: Ticks(3), Life: 2, Points: 500, WrongLife: -3, WrongPoints: 250},
	{Name: "FINE", Window: Ticks(6), Life: 1, Points: 300, WrongLife: -6, WrongPoints: 150},
	{Name: "SAFE", Window: Ticks(9), Life: 0, Points: 100, WrongLife: -10, WrongPoints: 50},
	{Name: "SAD", Window: Ticks(12), Life: -10, Points: 50, WrongLife: -20, WrongPoints: 30},
}

// Slides only distinguish between the first two tiers.
var slideWindows = [TierCount]Time{Ticks(6), Ticks(12), Ticks(12), Ticks(12)}

func (t Tier) String() string {
	if t >= TierCount {
		return "WORST"
	}
	return Judgements[t].Name
}

// Judge returns the tier an absolute offset falls into. Slides are never
// worse than Good.
func Judge(offset Time, slide bool) Tier {
	offset = Abs(offset)
	for i := TierBest; i < TierPoor; i++ {
		window := Judgements[i].Window
		if slide {
			window = slideWindows[i]
		}
		if offset <= window {
			return i
		}
	}
	// A slide hit late enough to land on the tick after the window is Good
	if slide {
		return TierGood
	}
	return TierPoor
}

type Outcome uint8

const (
	OutcomeHit Outcome = iota
	OutcomeWrongKey
	OutcomeTimeout
)

func (o Outcome) String() string {
	switch o {
	case OutcomeHit:
		return "hit"
	case OutcomeWrongKey:
		return "wrong"
	case OutcomeTimeout:
		return "timeout"
	}
	return "unknown"
}

// Verdict is the resolution of one note group.
type Verdict struct {
	Outcome Outcome
	Tier    Tier // Only for hits and wrong keys
	Kind    Kind // Kind of the head note
	Notes   int  // Group size
	Offset  Time // Scheduled time minus the clock at resolution
	X, Y    int32

	// Buttons of hold notes in the group
	Holds ButtonMask

	// The group was the last segment of a held slide
	ChainEnd bool
}

// Name is the label shown as on-screen feedback.
func (v *Verdict) Name() string {
	if v.Outcome == OutcomeTimeout {
		return "WORST"
	}
	if v.Outcome == OutcomeWrongKey {
		return "WRONG"
	}
	return v.Tier.String()
}
