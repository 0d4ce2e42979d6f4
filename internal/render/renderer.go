package render

import (
	"image/color"

	"git.lost.host/meutraa/divads/internal/session"
)

type Renderer interface {
	Init() error
	Deinit() error
	Render(frame *session.Frame)
	// Print shows a full screen of text, for menus and results
	Print(lines []string)
	AddDecoration(col, row uint16, content string, frames int)
	Fill(row, column uint16, message string)
	FillColor(row, column uint16, color color.RGBA, message string)
}
