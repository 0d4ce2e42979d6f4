package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Settings are the defaults kept in the settings file. Flags override them.
type Settings struct {
	Songs      string `toml:"songs"`
	Database   string `toml:"database"`
	Scores     string `toml:"scores"`
	Difficulty string `toml:"difficulty"`
	FlyTime    uint   `toml:"fly-time"` // ms
	Lag        int    `toml:"lag"`      // ms
	Keys       string `toml:"keys"`
	Evdev      string `toml:"evdev"`
	Hold       int    `toml:"hold"`
	Verbosity  int    `toml:"verbosity"`
	Log        string `toml:"log"`
}

func DefaultSettings() Settings {
	return Settings{
		Songs:      ".",
		Scores:     "./scores.db",
		Difficulty: "normal",
		FlyTime:    DefaultFlyTime,
		Keys:       "wdsaqe",
		Hold:       30,
	}
}

// SettingsPath is $DIVADS_SETTINGS or settings.toml in the user config dir.
func SettingsPath() string {
	if p := os.Getenv("DIVADS_SETTINGS"); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "divads", "settings.toml")
}

// LoadSettings reads the settings file over the defaults. A missing file is
// not an error.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	} else if err != nil {
		return s, fmt.Errorf("cannot read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse error in %s: %w", path, err)
	}
	return s, nil
}
