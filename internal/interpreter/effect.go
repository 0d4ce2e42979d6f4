package interpreter

import "git.lost.host/meutraa/divads/internal/game"

// Effect is something the chart asks the game to do.
type Effect interface {
	effect()
}

// SpawnNote queues a new note.
type SpawnNote struct {
	Note game.Note
}

// StartAudio starts the song.
type StartAudio struct{}

// ShowLyric displays a lyric line from the song database.
type ShowLyric struct {
	Index int
}

func (SpawnNote) effect()  {}
func (StartAudio) effect() {}
func (ShowLyric) effect()  {}
