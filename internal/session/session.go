package session

import (
	"fmt"

	"git.lost.host/meutraa/divads/internal/game"
	"git.lost.host/meutraa/divads/internal/interpreter"
	"git.lost.host/meutraa/divads/internal/judge"
	"git.lost.host/meutraa/divads/internal/queue"
	"git.lost.host/meutraa/divads/internal/score"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("divads.session")

type State uint8

const (
	Playing State = iota
	Cleared
	Failed
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Cleared:
		return "cleared"
	case Failed:
		return "failed"
	}
	return "unknown"
}

type Options struct {
	// Flight time for charts that never set one, zero for the default
	FlyTime game.Time

	Audio    Audio
	Renderer Renderer
	Sampler  Sampler
	Lyrics   Lyrics
}

// Frame is handed to the renderer once per tick.
type Frame struct {
	Clock   game.Time
	Notes   []game.Note
	Verdict *game.Verdict // Resolved this tick
	Lyric   string
	Held    game.ButtonMask
	Life    int
	Combo   uint32
	Score   uint32
	State   State
}

// Session owns every piece of state of one play of a chart. It is only ever
// reset as a whole.
type Session struct {
	chart     *game.Chart
	opts      Options
	reference int

	interp *interpreter.Interpreter
	queue  *queue.Queue
	judge  *judge.Judge
	holds  judge.HoldTracker
	engine *score.Engine

	clock game.Time
	input game.Input
	state State
	died  bool
	lyric string
	frame Frame
}

func New(chart *game.Chart, opts Options) (*Session, error) {
	if opts.Audio == nil {
		opts.Audio = nopAudio{}
	}
	if opts.Renderer == nil {
		opts.Renderer = nopRenderer{}
	}
	if opts.Sampler == nil {
		opts.Sampler = nopSampler{}
	}
	if opts.Lyrics == nil {
		opts.Lyrics = nopLyrics{}
	}

	reference, err := score.Reference(chart.Words)
	if err != nil {
		return nil, fmt.Errorf("unable to load %v: %w", chart.Name, err)
	}
	log.Debugf("%v %v reference score %v", chart.Name, chart.Difficulty, reference)
	return fresh(chart, opts, reference), nil
}

func fresh(chart *game.Chart, opts Options, reference int) *Session {
	q := queue.New()
	return &Session{
		chart:     chart,
		opts:      opts,
		reference: reference,
		interp:    interpreter.New(chart.Words, opts.FlyTime),
		queue:     q,
		judge:     judge.New(q),
		engine:    score.NewEngine(),
	}
}

// Reset starts the chart over. It must not be called during a tick.
func (s *Session) Reset() {
	s.opts.Audio.Stop()
	*s = *fresh(s.chart, s.opts, s.reference)
}

func (s *Session) Chart() *game.Chart { return s.chart }
func (s *Session) Clock() game.Time   { return s.clock }
func (s *Session) State() State       { return s.state }
func (s *Session) Reference() int     { return s.reference }
func (s *Session) Engine() *score.Engine {
	return s.engine
}

// Tick advances the game by one frame.
func (s *Session) Tick() (*Frame, error) {
	if s.state != Playing {
		return &s.frame, nil
	}

	s.opts.Audio.Advance()

	effects, err := s.interp.Resume(s.clock)
	if err != nil {
		return nil, err
	}
	for _, e := range effects {
		switch e := e.(type) {
		case interpreter.SpawnNote:
			s.queue.PushBack(e.Note)
		case interpreter.StartAudio:
			if err := s.opts.Audio.Play(s.chart.Track()); err != nil {
				log.Warningf("playing without audio: %v", err)
			}
		case interpreter.ShowLyric:
			s.lyric = s.opts.Lyrics.Lyric(s.chart.SongID, e.Index)
		}
	}

	s.input = s.input.Next(s.opts.Sampler.Sample())

	verdict, err := s.judge.Update(s.clock, s.input)
	if err != nil {
		return nil, err
	}

	s.engine.AddHold(s.holds.Update(s.input.Held))
	if verdict != nil {
		s.engine.Apply(verdict)
		switch verdict.Outcome {
		case game.OutcomeHit:
			s.holds.Start(verdict.Holds)
		case game.OutcomeTimeout:
			s.holds.Cancel(verdict.Holds)
		}
	}

	s.queue.Each(func(n *game.Note) {
		n.Advance()
	})

	s.render(verdict)
	s.clock += game.FrameTime
	s.terminate()
	s.frame.State = s.state
	return &s.frame, nil
}

func (s *Session) render(verdict *game.Verdict) {
	f := &s.frame
	f.Clock = s.clock
	f.Notes = f.Notes[:0]
	s.queue.Each(func(n *game.Note) {
		f.Notes = append(f.Notes, *n)
	})
	f.Verdict = verdict
	f.Lyric = s.lyric
	f.Held = s.input.Held
	f.Life = s.engine.Life()
	f.Combo = s.engine.Combo()
	r := s.engine.Results()
	f.Score = r.Score()
	f.State = s.state
	s.opts.Renderer.Render(f)
}

func (s *Session) terminate() {
	switch {
	case s.engine.Dead():
		s.state = Failed
		s.died = true
	case s.interp.Finished() && s.queue.Empty():
		r := s.Results()
		if r.Clear >= s.chart.Difficulty.Threshold() {
			s.state = Cleared
		} else {
			s.state = Failed
		}
	default:
		return
	}
	s.opts.Audio.Stop()
	log.Infof("%v %v %v at %v", s.chart.Name, s.chart.Difficulty, s.state, s.clock.Duration())
}

// Results of the run so far, with the clear percentage filled in.
func (s *Session) Results() game.Results {
	r := s.engine.Results()
	r.Clear = score.ClearPercent(r.ScoreBase, r.ScoreHold, s.reference, s.chart.Difficulty)
	return r
}

func (s *Session) Rank() game.Rank {
	r := s.Results()
	return game.RankFor(&r, s.chart.Difficulty, s.died)
}

// Record summarises a finished run for the score store.
func (s *Session) Record() score.Record {
	r := s.Results()
	return score.Record{Score: r.Score(), Clear: r.Clear, Rank: s.Rank()}
}
