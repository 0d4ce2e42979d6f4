package render

import (
	"bytes"
	"strings"
	"testing"

	"git.lost.host/meutraa/divads/internal/game"
	"git.lost.host/meutraa/divads/internal/session"
	"git.lost.host/meutraa/divads/internal/theme"
)

func TestCell(t *testing.T) {
	r := NewDefaultRenderer(&theme.DefaultTheme{}, &bytes.Buffer{})
	tests := []struct {
		x, y     int32
		row, col uint16
		ok       bool
	}{
		{-16, -16, 3, 1, true},
		{112, 80, 13, 41, true},
		{239, 175, 23, 80, true},
		{240, 0, 0, 0, false},
		{0, -17, 0, 0, false},
	}
	for _, test := range tests {
		row, col, ok := r.Cell(test.x, test.y)
		if ok != test.ok || (ok && (row != test.row || col != test.col)) {
			t.Errorf("%v,%v at %v,%v %v", test.x, test.y, row, col, ok)
		}
	}
}

func TestRenderFrame(t *testing.T) {
	out := &bytes.Buffer{}
	r := NewDefaultRenderer(&theme.DefaultTheme{}, out)
	frame := &session.Frame{
		Notes: []game.Note{{Kind: game.KindTap, Button: game.ButtonCross, X: 100, Y: 100}},
		Verdict: &game.Verdict{
			Outcome: game.OutcomeHit, Tier: game.TierBest, X: 50, Y: 50,
		},
		Lyric: "la la",
		Score: 1234,
		Life:  127,
	}
	r.Render(frame)
	s := out.String()
	for _, expected := range []string{"✖", "◌", "COOL", "la la", "00001234"} {
		if !strings.Contains(s, expected) {
			t.Errorf("frame is missing %q", expected)
		}
	}

	// The verdict fades after its frames run out
	out.Reset()
	frame.Verdict = nil
	for i := 0; i <= VerdictFrames; i++ {
		r.Render(frame)
	}
	if len(r.decorations) != 0 {
		t.Errorf("%v decorations left", len(r.decorations))
	}
}
