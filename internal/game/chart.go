package game

import "fmt"

type Chart struct {
	Name       string
	SongID     int
	Difficulty Difficulty
	Words      []uint32
}

// Track is the audio file name the chart plays.
func (c *Chart) Track() string {
	return fmt.Sprintf("pv_%03d", c.SongID)
}
