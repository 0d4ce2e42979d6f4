package theme

import "git.lost.host/meutraa/divads/internal/game"

type Theme interface {
	RenderNote(kind game.Kind, button game.Button) string
	RenderTarget(button game.Button) string
	RenderVerdict(v *game.Verdict) string
	RenderLife(life, max, width int) string
}
