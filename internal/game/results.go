package game

type Rank uint8

const (
	RankFailed Rank = iota
	RankCheap
	RankStandard
	RankGreat
	RankExcellent
	RankPerfect
)

var rankNames = [...]string{"FAILED", "CHEAP", "STANDARD", "GREAT", "EXCELLENT", "PERFECT"}

func (r Rank) String() string {
	if int(r) >= len(rankNames) {
		return "?"
	}
	return rankNames[r]
}

// Results summarises a performance.
type Results struct {
	Clear      float64
	Total      uint32
	Cools      uint32
	Fines      uint32
	Safes      uint32
	Sads       uint32
	Wrongs     uint32
	Misses     uint32
	ComboMax   uint32
	ScoreBase  uint32
	ScoreHold  uint32
	ScoreSlide uint32
}

func (r *Results) Score() uint32 {
	return r.ScoreBase + r.ScoreHold + r.ScoreSlide
}

// Flawless is true when every group was a cool or fine.
func (r *Results) Flawless() bool {
	return r.Total > 0 && r.Safes == 0 && r.Sads == 0 && r.Wrongs == 0 && r.Misses == 0
}

// RankFor grades a finished performance.
func RankFor(r *Results, d Difficulty, died bool) Rank {
	info := d.info()
	switch {
	case died:
		return RankFailed
	case r.Clear < info.Clear:
		return RankCheap
	case r.Flawless():
		return RankPerfect
	case r.Clear >= info.Excellent:
		return RankExcellent
	case r.Clear >= info.Great:
		return RankGreat
	}
	return RankStandard
}
