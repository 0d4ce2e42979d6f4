package score

import "git.lost.host/meutraa/divads/internal/game"

// Store keeps best records and replays between runs.
type Store interface {
	Init() error
	Deinit()

	// Best returns the stored record for the chart's song and difficulty
	Best(chart *game.Chart) (Record, bool)

	// Submit merges a finished performance into the stored record. It
	// returns whether anything improved.
	Submit(chart *game.Chart, record Record) (bool, error)

	SaveReplay(chart *game.Chart, replay *Replay) error
	LoadReplays(chart *game.Chart) []Replay
}

type Record struct {
	Score uint32
	Clear float64
	Rank  game.Rank
}

// Merge keeps the best of each field. It reports whether r was improved.
func (r *Record) Merge(o Record) bool {
	improved := false
	if o.Score > r.Score {
		r.Score = o.Score
		improved = true
	}
	if o.Clear > r.Clear {
		r.Clear = o.Clear
		improved = true
	}
	if o.Rank > r.Rank {
		r.Rank = o.Rank
		improved = true
	}
	return improved
}
