package config

import (
	"fmt"
	"strconv"
	"time"

	"git.lost.host/meutraa/divads/internal/game"
	"gopkg.in/alecthomas/kingpin.v2"
)

// Fly time limits for the retry screen, in ms
const (
	DefaultFlyTime = 1750
	MinFlyTime     = 500
	MaxFlyTime     = 3000
	FlyTimeStep    = 50
)

var (
	Directory   *string
	DatabaseDir *string
	ScoresPath  *string
	Difficulty  game.Difficulty
	FlyTime     *uint
	Lag         *time.Duration
	Evdev       *string
	Hold        *int
	Replay      *bool
	Verbosity   *int
	LogPath     *string
	keys        *string
	difficulty  *string
)

// Parse reads the command line on top of the settings file.
func Parse(args []string) error {
	s, err := LoadSettings(SettingsPath())
	if err != nil {
		return err
	}
	return parse(args, s)
}

func parse(args []string, s Settings) error {
	app := kingpin.New("divads", "Play DSC charts in the terminal")
	app.Version("0.3.0")
	app.HelpFlag.Short('h')

	Directory = app.Arg("directory", "Song/chart directory").Default(s.Songs).ExistingDir()
	DatabaseDir = app.Flag("database", "Song database directory, defaults to the song directory").Default(s.Database).Short('D').String()
	ScoresPath = app.Flag("scores", "Score database").Default(s.Scores).String()
	difficulty = app.Flag("difficulty", "Preferred difficulty").Default(s.Difficulty).Short('d').String()
	FlyTime = app.Flag("fly-time", "Default note flight time in ms").Default(strconv.FormatUint(uint64(s.FlyTime), 10)).Short('f').Uint()
	Lag = app.Flag("lag", "Audio lag, negative to start the song early").Default((time.Duration(s.Lag) * time.Millisecond).String()).Short('l').Duration()
	keys = app.Flag("keys", "Keys for triangle, circle, cross, square, slide left and slide right").Default(s.Keys).Short('k').String()
	Evdev = app.Flag("evdev", "Read keys from an input device instead of the terminal").Default(s.Evdev).String()
	Hold = app.Flag("hold", "Ticks a terminal key stays held after its last repeat").Default(strconv.Itoa(s.Hold)).Int()
	Replay = app.Flag("replay", "Play back the last replay of the chart").Short('r').Bool()
	Verbosity = app.Flag("verbosity", "Log verbosity").Default(strconv.Itoa(s.Verbosity)).Short('v').Int()
	LogPath = app.Flag("log", "Log file, logs are discarded when empty").Default(s.Log).String()

	if _, err := app.Parse(args); err != nil {
		return err
	}

	d, ok := game.ParseDifficulty(*difficulty)
	if !ok {
		return fmt.Errorf("unknown difficulty %q", *difficulty)
	}
	Difficulty = d

	if n := len([]rune(*keys)); n != game.ButtonCount {
		return fmt.Errorf("expected %v keys, got %v", game.ButtonCount, n)
	}
	*FlyTime = ClampFlyTime(*FlyTime)
	if *DatabaseDir == "" {
		*DatabaseDir = *Directory
	}
	return nil
}

func Keys() []rune {
	return []rune(*keys)
}

func KeyButton(r rune) (game.Button, bool) {
	for i, c := range Keys() {
		if r == c {
			return game.Button(i), true
		}
	}
	return 0, false
}

func ClampFlyTime(ms uint) uint {
	if ms < MinFlyTime {
		return MinFlyTime
	} else if ms > MaxFlyTime {
		return MaxFlyTime
	}
	return ms
}

// FlyTimeClock converts a fly time in ms to clock units.
func FlyTimeClock(ms uint) game.Time {
	return game.Time(ms) * 100
}
