package session

import "git.lost.host/meutraa/divads/internal/game"

type Audio interface {
	Play(track string) error
	Stop()
	// Advance is called once at the start of every tick
	Advance()
}

type Renderer interface {
	Render(frame *Frame)
}

// Sampler reports which buttons are held on the current tick.
type Sampler interface {
	Sample() game.ButtonMask
}

type Lyrics interface {
	Lyric(song, index int) string
}

type nopAudio struct{}

func (nopAudio) Play(string) error { return nil }
func (nopAudio) Stop()             {}
func (nopAudio) Advance()          {}

type nopRenderer struct{}

func (nopRenderer) Render(*Frame) {}

type nopSampler struct{}

func (nopSampler) Sample() game.ButtonMask { return 0 }

type nopLyrics struct{}

func (nopLyrics) Lyric(int, int) string { return "" }

// Recorder passes samples through while keeping them for a replay.
type Recorder struct {
	Sampler Sampler
	Inputs  []game.ButtonMask
}

func (r *Recorder) Sample() game.ButtonMask {
	held := r.Sampler.Sample()
	r.Inputs = append(r.Inputs, held)
	return held
}

func (r *Recorder) Reset() {
	r.Inputs = r.Inputs[:0]
}

// Playback replays recorded samples, releasing everything once they run out.
type Playback struct {
	Inputs []game.ButtonMask
	tick   int
}

func (p *Playback) Sample() game.ButtonMask {
	if p.tick >= len(p.Inputs) {
		return 0
	}
	held := p.Inputs[p.tick]
	p.tick++
	return held
}

func (p *Playback) Reset() {
	p.tick = 0
}
