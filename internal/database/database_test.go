package database

import (
	"os"
	"path/filepath"
	"testing"

	"git.lost.host/meutraa/divads/internal/game"
)

const sample = `# song database
pv_001.song_name_en=World  is Mine
pv_001.song_name=ワールドイズマイン
pv_001.lyric_en.001=The number one  princess
pv_001.lyric_en.002=in the  world
pv_001.difficulty.easy.0.level=PV_LV_03_0
pv_001.difficulty.hard.0.level=PV_LV_07_5
pv_001.difficulty.extreme.1.level=PV_LV_09_5
pv_002.song_name_en=Café ; Latte # 2
pv_002.difficulty.normal.0.level=garbage
`

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "mod_pv_db.txt"), []byte(sample), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "pv_db.txt"), []byte("pv_003.song_name_en=Third\n"), 0644); err != nil {
		t.Fatal(err)
	}
	db, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}

	if db.Len() != 3 {
		t.Errorf("%v songs", db.Len())
	}

	names := map[int]string{1: "World is Mine", 2: "Caf ; Latte # 2", 3: "Third", 4: "pv_004"}
	for id, expected := range names {
		if name := db.Name(id); name != expected {
			t.Errorf("song %v named %q, expected %q", id, name, expected)
		}
	}

	if l := db.Lyric(1, 2); l != "in the world" {
		t.Errorf("lyric %q", l)
	}
	if l := db.Lyric(1, 3); l != "" {
		t.Errorf("missing lyric %q", l)
	}

	s := db.Song(1)
	levels := map[game.Difficulty]float64{
		game.DifficultyEasy:         3,
		game.DifficultyNormal:       0,
		game.DifficultyHard:         7.5,
		game.DifficultyExtraExtreme: 9.5,
	}
	for d, expected := range levels {
		if l := s.Level(d); l != expected {
			t.Errorf("%v level %v, expected %v", d, l, expected)
		}
	}
}

func TestLoadEmpty(t *testing.T) {
	db, err := Load(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatal(err)
	}
	if db.Name(12) != "pv_012" {
		t.Errorf("default name %q", db.Name(12))
	}
}

func TestFormatString(t *testing.T) {
	tests := map[string]string{
		"plain":         "plain",
		"  leading":     "leading",
		"a   b":         "a b",
		"tab\there":     "tab\there",
		"ünïcode":       "n code",
		"line\r\n":      "line",
		"end  ":         "end ",
		"Hatsune  Miku": "Hatsune Miku",
	}
	for in, expected := range tests {
		if out := formatString(in); out != expected {
			t.Errorf("%q formatted to %q, expected %q", in, out, expected)
		}
	}
}
