package theme

import (
	"fmt"
	"image/color"
	"strings"

	"git.lost.host/meutraa/divads/internal/game"
)

type DefaultTheme struct {
}

func paint(c color.RGBA, s string) string {
	return fmt.Sprintf("\033[38;2;%v;%v;%vm%v\033[0m", c.R, c.G, c.B, s)
}

func (t *DefaultTheme) RenderNote(kind game.Kind, button game.Button) string {
	if button >= game.ButtonCount {
		return "?"
	}
	c := buttonColors[button]
	switch kind {
	case game.KindHoldTap:
		return paint(c, holdSyms[button])
	case game.KindHoldSlideContinuation:
		return paint(c, continuationSym)
	}
	return paint(c, syms[button])
}

func (t *DefaultTheme) RenderTarget(button game.Button) string {
	if button >= game.ButtonCount {
		return "?"
	}
	c := buttonColors[button]
	c.R, c.G, c.B = c.R/2, c.G/2, c.B/2
	return paint(c, targetSym)
}

func (t *DefaultTheme) RenderVerdict(v *game.Verdict) string {
	if v.Outcome != game.OutcomeHit {
		return paint(missColor, v.Name())
	}
	return paint(tierColors[v.Tier], v.Name())
}

// RenderLife draws a gauge width cells wide.
func (t *DefaultTheme) RenderLife(life, max, width int) string {
	if max <= 0 || width <= 0 {
		return ""
	}
	full := life * width / max
	c := lifeColor
	if life*4 < max {
		c = missColor
	}
	return paint(c, strings.Repeat("█", full)) + strings.Repeat("░", width-full)
}

const (
	targetSym       = "◌"
	continuationSym = "·"
)

var (
	syms     = [game.ButtonCount]string{"▲", "●", "✖", "■", "◀", "▶"}
	holdSyms = [game.ButtonCount]string{"△", "○", "╳", "□", "◁", "▷"}

	buttonColors = [game.ButtonCount]color.RGBA{
		{R: 0, G: 236, B: 128}, // triangle green
		{R: 236, G: 30, B: 0},  // circle red
		{R: 0, G: 118, B: 236}, // cross blue
		{R: 236, G: 0, B: 236}, // square pink
		{R: 236, G: 128, B: 0}, // slides orange
		{R: 236, G: 128, B: 0},
	}
	tierColors = [game.TierCount]color.RGBA{
		{R: 236, G: 195, B: 0},
		{R: 173, G: 236, B: 236},
		{R: 0, G: 236, B: 128},
		{R: 106, G: 0, B: 236},
	}
	missColor = color.RGBA{R: 236, G: 30, B: 0}
	lifeColor = color.RGBA{R: 0, G: 236, B: 236}
)
