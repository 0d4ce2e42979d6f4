package database

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"git.lost.host/meutraa/divads/internal/game"
	"github.com/tliron/commonlog"
	"gopkg.in/ini.v1"
)

var log = commonlog.GetLogger("divads.database")

type Song struct {
	ID     int
	Name   string
	Lyrics map[int]string
	// Star levels with one fractional bit, zero when unknown
	Levels [game.DifficultyCount]uint8
}

// Level is the star rating of a difficulty.
func (s *Song) Level(d game.Difficulty) float64 {
	if d >= game.DifficultyCount {
		return 0
	}
	return float64(s.Levels[d]) / 2
}

// Database holds song names, lyrics and levels read from the game's text
// database files.
type Database struct {
	songs map[int]*Song
}

func New() *Database {
	return &Database{songs: map[int]*Song{}}
}

// Load reads every .txt file in dir. A missing directory yields an empty
// database.
func Load(dir string) (*Database, error) {
	db := New()
	paths, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		log.Infof("no song database in %v", dir)
		return db, nil
	}
	sort.Strings(paths)

	sources := make([]interface{}, len(paths)-1)
	for i, p := range paths[1:] {
		sources[i] = p
	}
	options := ini.LoadOptions{
		IgnoreInlineComment:     true,
		SkipUnrecognizableLines: true,
		KeyValueDelimiters:      "=",
	}
	f, err := ini.LoadSources(options, paths[0], sources...)
	if err != nil {
		return nil, fmt.Errorf("unable to read song database: %w", err)
	}
	for _, sec := range f.Sections() {
		for _, key := range sec.Keys() {
			db.set(key.Name(), key.String())
		}
	}
	log.Infof("loaded %v songs from %v files", len(db.songs), len(paths))
	return db, nil
}

func (db *Database) song(id int) *Song {
	s, ok := db.songs[id]
	if !ok {
		s = &Song{ID: id, Name: DefaultName(id), Lyrics: map[int]string{}}
		db.songs[id] = s
	}
	return s
}

// set applies one database line, ignoring the ones it does not know.
func (db *Database) set(key, value string) {
	parts := strings.Split(key, ".")
	if len(parts) < 2 || !strings.HasPrefix(parts[0], "pv_") {
		return
	}
	id, err := strconv.Atoi(parts[0][3:])
	if err != nil || id < 0 {
		return
	}

	switch {
	case len(parts) == 2 && parts[1] == "song_name_en":
		db.song(id).Name = formatString(value)
	case len(parts) == 3 && parts[1] == "lyric_en":
		index, err := strconv.Atoi(parts[2])
		if err != nil {
			return
		}
		db.song(id).Lyrics[index] = formatString(value)
	case len(parts) == 5 && parts[1] == "difficulty" && parts[4] == "level":
		d, ok := difficulty(parts[2], parts[3])
		if !ok {
			return
		}
		level, ok := parseLevel(value)
		if !ok {
			log.Debugf("bad level %q for %v", value, key)
			return
		}
		db.song(id).Levels[d] = level
	}
}

func difficulty(tier, index string) (game.Difficulty, bool) {
	if tier == "extreme" && index == "1" {
		return game.DifficultyExtraExtreme, true
	}
	if index != "0" {
		return 0, false
	}
	return game.ParseDifficulty(tier)
}

// parseLevel reads PV_LV_AA_B as AA.B stars in half star steps.
func parseLevel(value string) (uint8, bool) {
	parts := strings.Split(strings.TrimSpace(value), "_")
	if len(parts) != 4 || parts[0] != "PV" || parts[1] != "LV" {
		return 0, false
	}
	whole, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, false
	}
	frac, err := strconv.Atoi(parts[3])
	if err != nil {
		return 0, false
	}
	return uint8(whole*2 + frac/5), true
}

// formatString replaces characters the font cannot draw and collapses
// runs of spaces.
func formatString(s string) string {
	var b strings.Builder
	space := true
	for _, r := range strings.TrimRight(s, "\r\n") {
		if r >= 128 {
			r = ' '
		}
		if r == ' ' {
			if space {
				continue
			}
			space = true
		} else {
			space = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

func DefaultName(id int) string {
	return fmt.Sprintf("pv_%03d", id)
}

// Song returns what is known about a song, falling back to its default name.
func (db *Database) Song(id int) Song {
	if s, ok := db.songs[id]; ok {
		return *s
	}
	return Song{ID: id, Name: DefaultName(id)}
}

func (db *Database) Name(id int) string {
	return db.Song(id).Name
}

func (db *Database) Lyric(song, index int) string {
	if s, ok := db.songs[song]; ok {
		return s.Lyrics[index]
	}
	return ""
}

func (db *Database) Len() int {
	return len(db.songs)
}
