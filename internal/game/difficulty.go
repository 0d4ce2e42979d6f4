package game

import "strings"

type Difficulty uint8

const (
	DifficultyEasy Difficulty = iota
	DifficultyNormal
	DifficultyHard
	DifficultyExtreme
	DifficultyExtraExtreme
	DifficultyCount
)

type difficultyInfo struct {
	Name       string
	File       string  // File name suffix
	Clear      float64 // Clear percentage needed to pass
	HoldWeight float64
	Great      float64
	Excellent  float64
}

var difficulties = [DifficultyCount]difficultyInfo{
	{Name: "Easy", File: "easy", Clear: 30, HoldWeight: 4, Great: 65, Excellent: 75},
	{Name: "Normal", File: "normal", Clear: 50, HoldWeight: 2, Great: 75, Excellent: 85},
	{Name: "Hard", File: "hard", Clear: 60, HoldWeight: 0.5, Great: 80, Excellent: 90},
	{Name: "Extreme", File: "extreme", Clear: 70, HoldWeight: 0.2, Great: 85, Excellent: 95},
	{Name: "Extra Extreme", File: "extreme_1", Clear: 70, HoldWeight: 0.2, Great: 85, Excellent: 95},
}

func (d Difficulty) info() difficultyInfo {
	if d >= DifficultyCount {
		return difficulties[DifficultyExtreme]
	}
	return difficulties[d]
}

func (d Difficulty) String() string      { return d.info().Name }
func (d Difficulty) Threshold() float64  { return d.info().Clear }
func (d Difficulty) HoldWeight() float64 { return d.info().HoldWeight }

// ParseDifficulty accepts both display names and file suffixes.
func ParseDifficulty(s string) (Difficulty, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, info := range difficulties {
		if s == info.File || s == strings.ToLower(info.Name) {
			return Difficulty(i), true
		}
	}
	return 0, false
}
