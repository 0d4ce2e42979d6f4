package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"git.lost.host/meutraa/divads/internal/audio"
	"git.lost.host/meutraa/divads/internal/config"
	"git.lost.host/meutraa/divads/internal/database"
	"git.lost.host/meutraa/divads/internal/game"
	"git.lost.host/meutraa/divads/internal/input"
	"git.lost.host/meutraa/divads/internal/parser"
	"git.lost.host/meutraa/divads/internal/render"
	"git.lost.host/meutraa/divads/internal/score"
	"git.lost.host/meutraa/divads/internal/session"
	"git.lost.host/meutraa/divads/internal/theme"
	"github.com/eiannone/keyboard"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("divads")

// errQuit leaves a screen without an error worth reporting.
var errQuit = errors.New("quit")

// Rows of the song list shown at once
const listRows = 16

type entry struct {
	file       string
	id         int
	difficulty game.Difficulty
}

type Program struct {
	Parser   parser.Parser
	Store    score.Store
	Database *database.Database
	Audio    *audio.Player
	Renderer render.Renderer
	Theme    theme.Theme
	Keyboard *input.KeyboardSampler

	// Sampler is the keyboard unless an input device was given
	Sampler session.Sampler

	entries []entry
	cursor  int
	flyTime uint
}

func (p *Program) Init() error {
	// Ensure our Default implementations are used as interfaces
	p.Parser = &parser.DefaultParser{}
	p.Store = &score.DefaultStore{Path: *config.ScoresPath}
	p.Theme = &theme.DefaultTheme{}
	p.Audio = &audio.Player{Dir: *config.Directory, Lag: *config.Lag}
	p.flyTime = *config.FlyTime

	files, err := p.Parser.Scan(*config.Directory)
	if nil != err {
		return fmt.Errorf("unable to walk song directory: %w", err)
	}
	for _, f := range files {
		id, d, ok := parser.ParseName(filepath.Base(f))
		if !ok {
			log.Warningf("skipping %v", f)
			continue
		}
		p.entries = append(p.entries, entry{file: f, id: id, difficulty: d})
	}
	if len(p.entries) == 0 {
		return fmt.Errorf("no %v charts in %v", parser.Ext, *config.Directory)
	}
	for i, e := range p.entries {
		if e.difficulty == config.Difficulty {
			p.cursor = i
			break
		}
	}

	p.Database, err = database.Load(*config.DatabaseDir)
	if nil != err {
		log.Warningf("unable to load song database: %v", err)
		p.Database = database.New()
	}

	if err := p.Store.Init(); nil != err {
		return err
	}

	p.Keyboard, err = input.OpenKeyboard(config.Keys(), *config.Hold)
	if nil != err {
		return fmt.Errorf("unable to open keyboard: %w", err)
	}
	p.Sampler = p.Keyboard
	if *config.Evdev != "" {
		evdev, err := input.OpenEvdev(*config.Evdev, input.DefaultCodes)
		if nil != err {
			return fmt.Errorf("unable to open %v: %w", *config.Evdev, err)
		}
		p.Sampler = evdev
	}

	p.Renderer = render.NewDefaultRenderer(p.Theme, nil)
	return p.Renderer.Init()
}

func (p *Program) Deinit() {
	if nil != p.Renderer {
		if err := p.Renderer.Deinit(); nil != err {
			log.Errorf("unable to restore terminal: %v", err)
		}
	}
	if nil != p.Keyboard {
		if err := p.Keyboard.Close(); nil != err {
			log.Errorf("unable to close keyboard: %v", err)
		}
	}
	if nil != p.Audio {
		p.Audio.Close()
	}
	if nil != p.Store {
		p.Store.Deinit()
	}
}

// Run shows the song list until escape is pressed there.
func (p *Program) Run() error {
	for {
		e, err := p.selectChart()
		if errors.Is(err, errQuit) {
			return nil
		} else if nil != err {
			return err
		}

		chart, err := p.Parser.Parse(e.file)
		if nil != err {
			log.Errorf("%v", err)
			continue
		}
		chart.Name = p.Database.Name(chart.SongID)
		if err := p.playChart(chart); nil != err && !errors.Is(err, errQuit) {
			return err
		}
	}
}

func (p *Program) listLine(i int) string {
	e := p.entries[i]
	song := p.Database.Song(e.id)
	line := fmt.Sprintf("%-32.32v %-13v %4.1f★", song.Name, e.difficulty, song.Level(e.difficulty))
	if best, ok := p.Store.Best(&game.Chart{SongID: e.id, Difficulty: e.difficulty}); ok {
		line += fmt.Sprintf("  %8v %6.2f%% %v", best.Score, best.Clear, best.Rank)
	}
	if i == p.cursor {
		return "\033[7m" + line + "\033[0m"
	}
	return line
}

func (p *Program) selectChart() (entry, error) {
	for {
		first := p.cursor - listRows/2
		if first > len(p.entries)-listRows {
			first = len(p.entries) - listRows
		}
		if first < 0 {
			first = 0
		}
		lines := []string{fmt.Sprintf("%v charts, fly time %v ms", len(p.entries), p.flyTime), ""}
		for i := first; i < first+listRows && i < len(p.entries); i++ {
			lines = append(lines, p.listLine(i))
		}
		lines = append(lines, "", "↑/↓ select  enter play  esc quit")
		p.Renderer.Print(lines)

		key := p.Keyboard.Key()
		switch key.Key {
		case keyboard.KeyArrowUp:
			if p.cursor > 0 {
				p.cursor--
			}
		case keyboard.KeyArrowDown:
			if p.cursor < len(p.entries)-1 {
				p.cursor++
			}
		case keyboard.KeyEnter:
			return p.entries[p.cursor], nil
		case keyboard.KeyEsc, keyboard.KeyCtrlC:
			return entry{}, errQuit
		}
	}
}

// playChart plays a chart until it is left from the retry screen.
func (p *Program) playChart(chart *game.Chart) error {
	var sampler session.Sampler
	var recorder *session.Recorder
	var playback *session.Playback
	flyTime := config.FlyTimeClock(p.flyTime)

	if *config.Replay {
		replays := p.Store.LoadReplays(chart)
		if len(replays) == 0 {
			log.Warningf("no replays of %v %v", chart.Name, chart.Difficulty)
			return nil
		}
		last := replays[len(replays)-1]
		playback = &session.Playback{Inputs: last.Inputs}
		sampler = playback
		flyTime = last.FlyTime
	} else {
		recorder = &session.Recorder{Sampler: p.Sampler}
		sampler = recorder
	}

	s, err := session.New(chart, session.Options{
		FlyTime:  flyTime,
		Audio:    p.Audio,
		Renderer: p.Renderer,
		Sampler:  sampler,
		Lyrics:   p.Database,
	})
	if nil != err {
		log.Errorf("%v", err)
		return nil
	}

	// The keyboard still has to be read for escape when it is not sampled
	poll := nil != playback || p.Sampler != session.Sampler(p.Keyboard)

	for {
		p.Keyboard.Reset()
		p.Renderer.Print(nil)
		if err := p.play(s, poll); nil != err {
			return err
		}
		p.Keyboard.Reset()

		improved := false
		if nil != recorder {
			improved, err = p.Store.Submit(chart, s.Record())
			if nil != err {
				log.Errorf("%v", err)
			}
			replay := &score.Replay{FlyTime: flyTime, Inputs: recorder.Inputs}
			if err := p.Store.SaveReplay(chart, replay); nil != err {
				log.Errorf("%v", err)
			}
		}
		best, _ := p.Store.Best(chart)

		if err := p.retry(s, best, improved); nil != err {
			return err
		}
		if nil != recorder {
			flyTime = config.FlyTimeClock(p.flyTime)
			recorder.Reset()
			s, err = session.New(chart, session.Options{
				FlyTime:  flyTime,
				Audio:    p.Audio,
				Renderer: p.Renderer,
				Sampler:  sampler,
				Lyrics:   p.Database,
			})
			if nil != err {
				return err
			}
		} else {
			playback.Reset()
			s.Reset()
		}
	}
}

// play ticks the session in real time until it ends or escape is pressed.
func (p *Program) play(s *session.Session, poll bool) error {
	ticker := time.NewTicker(game.FrameTime.Duration())
	defer ticker.Stop()

	for range ticker.C {
		frame, err := s.Tick()
		if nil != err {
			p.Audio.Stop()
			log.Errorf("%v", err)
			return errQuit
		}

		if poll {
			p.Keyboard.Sample()
		}
		if p.Keyboard.Quit() {
			p.Audio.Stop()
			return errQuit
		}
		if frame.State != session.Playing {
			return nil
		}
	}
	return nil
}

func (p *Program) retry(s *session.Session, best score.Record, improved bool) error {
	for {
		lines := render.Results(s, best, improved)
		lines = append(lines,
			"",
			fmt.Sprintf("fly time %v ms", p.flyTime),
			"↑/↓ fly time  enter retry  esc back",
		)
		p.Renderer.Print(lines)

		key := p.Keyboard.Key()
		switch key.Key {
		case keyboard.KeyArrowUp:
			p.flyTime = config.ClampFlyTime(p.flyTime + config.FlyTimeStep)
		case keyboard.KeyArrowDown:
			p.flyTime = config.ClampFlyTime(p.flyTime - config.FlyTimeStep)
		case keyboard.KeyEnter:
			return nil
		case keyboard.KeyEsc, keyboard.KeyCtrlC:
			return errQuit
		}
	}
}
