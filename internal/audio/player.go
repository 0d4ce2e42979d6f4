package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"git.lost.host/meutraa/divads/internal/game"
	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("divads.audio")

var ErrNoTrack = errors.New("no audio for track")

// Extensions searched for a track, in order
var Extensions = []string{".ogg", ".mp3", ".wav"}

// SampleRate the speaker is opened at
const SampleRate = beep.SampleRate(44100)

// Player streams song audio to the speaker. Play and Stop are driven
// from the game loop, one Advance per tick.
type Player struct {
	Dir string
	// Positive lag starts the song late, negative skips into it
	Lag time.Duration

	speakerReady bool
	streamer     beep.StreamSeekCloser
	ctrl         *beep.Ctrl
	wait         int // Ticks before the song starts
}

// Find returns the file holding a track.
func (p *Player) Find(track string) (string, error) {
	for _, ext := range Extensions {
		path := filepath.Join(p.Dir, track+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w %v in %v", ErrNoTrack, track, p.Dir)
}

func decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}
	var s beep.StreamSeekCloser
	var format beep.Format
	switch filepath.Ext(path) {
	case ".ogg":
		s, format, err = vorbis.Decode(f)
	case ".wav":
		s, format, err = wav.Decode(f)
	default:
		s, format, err = mp3.Decode(f)
	}
	if err != nil {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("unable to decode %v: %w", path, err)
	}
	return s, format, nil
}

func (p *Player) init() error {
	if p.speakerReady {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/60)); err != nil {
		return fmt.Errorf("unable to open speaker: %w", err)
	}
	p.speakerReady = true
	return nil
}

// Play loads a track paused. It starts once the lag has passed.
func (p *Player) Play(track string) error {
	p.Close()

	path, err := p.Find(track)
	if err != nil {
		return err
	}
	s, format, err := decode(path)
	if err != nil {
		return err
	}
	if err := p.init(); err != nil {
		s.Close()
		return err
	}

	if p.Lag < 0 {
		skip := format.SampleRate.N(-p.Lag)
		if skip < s.Len() {
			if err := s.Seek(skip); err != nil {
				log.Warningf("unable to skip %v into %v: %v", -p.Lag, track, err)
			}
		}
	}
	p.wait = int(game.FromDuration(p.Lag) / game.FrameTime)

	var stream beep.Streamer = s
	if format.SampleRate != SampleRate {
		stream = beep.Resample(4, format.SampleRate, SampleRate, s)
	}
	p.streamer = s
	p.ctrl = &beep.Ctrl{Streamer: stream, Paused: true}
	speaker.Play(p.ctrl)
	log.Infof("playing %v", path)
	return nil
}

func (p *Player) setPaused(paused bool) {
	if p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = paused
	speaker.Unlock()
}

func (p *Player) Advance() {
	if p.ctrl == nil || p.wait < 0 {
		return
	}
	if p.wait == 0 {
		p.setPaused(false)
	}
	p.wait--
}

// Stop silences the song until the next Play.
func (p *Player) Stop() {
	p.setPaused(true)
	p.wait = -1
}

func (p *Player) Close() {
	if p.streamer == nil {
		return
	}
	speaker.Clear()
	if err := p.streamer.Close(); err != nil {
		log.Warningf("unable to close stream: %v", err)
	}
	p.streamer = nil
	p.ctrl = nil
}
