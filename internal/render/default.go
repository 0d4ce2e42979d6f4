package render

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"

	"git.lost.host/meutraa/divads/internal/game"
	"git.lost.host/meutraa/divads/internal/score"
	"git.lost.host/meutraa/divads/internal/session"
	"git.lost.host/meutraa/divads/internal/theme"
	"golang.org/x/term"
)

// Size of the playfield in note coordinates
const (
	FieldWidth  = 256
	FieldHeight = 192
	fieldOrigin = 16
	hudRows     = 2
)

// VerdictFrames is how long a verdict stays on screen.
const VerdictFrames = 60

type DefaultRenderer struct {
	Theme theme.Theme
	Out   io.Writer

	buffer       strings.Builder
	restoreState *term.State
	decorations  []*decoration
	drawn        []cell
	rows, cols   int
}

type cell struct {
	row, col uint16
}

type decoration struct {
	X, Y    uint16
	Content string
	Frames  int // remaining frames until removed
}

// NewDefaultRenderer draws into out, which is a fixed size when it is not a
// terminal.
func NewDefaultRenderer(th theme.Theme, out io.Writer) *DefaultRenderer {
	return &DefaultRenderer{Theme: th, Out: out, rows: 24, cols: 80}
}

func (r *DefaultRenderer) Init() error {
	fd := int(os.Stdout.Fd())
	if r.Out == nil {
		r.Out = os.Stdout
	}
	if r.Theme == nil {
		r.Theme = &theme.DefaultTheme{}
	}
	if r.Out == os.Stdout && term.IsTerminal(fd) {
		cols, rows, err := term.GetSize(fd)
		if nil != err {
			return fmt.Errorf("unable to get terminal size: %w", err)
		}
		r.cols, r.rows = cols, rows
		state, err := term.MakeRaw(fd)
		if nil != err {
			return err
		}
		r.restoreState = state
	}

	fmt.Fprintf(r.Out, "%s%s%s",
		"\033[?1049h", // Enable alternate buffer
		"\033[?25l",   // Make the cursor invisible
		"\033[J",      // Clear the screen
	)
	return nil
}

func (r *DefaultRenderer) Deinit() error {
	fmt.Fprintf(r.Out, "%s%s",
		"\033[?1049l", // Disable alternate buffer
		"\033[?25h",   // Make the cursor visible
	)
	if r.restoreState == nil {
		return nil
	}
	return term.Restore(int(os.Stdout.Fd()), r.restoreState)
}

func (r *DefaultRenderer) AddDecoration(col, row uint16, content string, frames int) {
	r.decorations = append(r.decorations, &decoration{
		X:       col,
		Y:       row,
		Content: content,
		Frames:  frames,
	})
	r.Fill(row, col, content)
}

func (r *DefaultRenderer) tickDecorations() {
	nd := make([]*decoration, 0, len(r.decorations))
	for _, d := range r.decorations {
		if d.Frames == 0 {
			r.Fill(d.Y, d.X, strings.Repeat(" ", 5))
			continue
		}
		nd = append(nd, d)
		d.Frames--
	}
	r.decorations = nd
}

// Cell maps a playfield position to a terminal cell.
func (r *DefaultRenderer) Cell(x, y int32) (uint16, uint16, bool) {
	x += fieldOrigin
	y += fieldOrigin
	if x < 0 || y < 0 || x >= FieldWidth || y >= FieldHeight {
		return 0, 0, false
	}
	rows := r.rows - hudRows - 1
	row := int(y)*rows/FieldHeight + hudRows + 1
	col := int(x)*r.cols/FieldWidth + 1
	return uint16(row), uint16(col), true
}

func (r *DefaultRenderer) draw(x, y int32, content string) {
	row, col, ok := r.Cell(x, y)
	if !ok {
		return
	}
	r.Fill(row, col, content)
	r.drawn = append(r.drawn, cell{row, col})
}

func (r *DefaultRenderer) Render(f *session.Frame) {
	for _, c := range r.drawn {
		r.Fill(c.row, c.col, " ")
	}
	r.drawn = r.drawn[:0]

	for i := range f.Notes {
		n := &f.Notes[i]
		r.draw(n.X, n.Y, r.Theme.RenderTarget(n.Button))
	}
	for i := range f.Notes {
		n := &f.Notes[i]
		x, y := n.Position()
		r.draw(x, y, r.Theme.RenderNote(n.Kind, n.Button))
	}

	if v := f.Verdict; v != nil {
		if row, col, ok := r.Cell(v.X, v.Y); ok {
			r.AddDecoration(col, row, r.Theme.RenderVerdict(v), VerdictFrames)
		}
	}

	r.Fill(1, 1, fmt.Sprintf("\033[K%08d  combo %4d  %v", f.Score, f.Combo, r.Theme.RenderLife(f.Life, score.MaxLife, 20)))
	r.Fill(uint16(r.rows), 1, "\033[K"+f.Lyric)

	r.tickDecorations()
	r.flush()
}

func (r *DefaultRenderer) Print(lines []string) {
	r.buffer.WriteString("\033[2J")
	r.drawn = r.drawn[:0]
	r.decorations = r.decorations[:0]
	for i, l := range lines {
		r.Fill(uint16(i+1), 1, l)
	}
	r.flush()
}

func (r *DefaultRenderer) Fill(row, column uint16, message string) {
	r.buffer.WriteString("\033[")
	r.buffer.WriteString(strconv.FormatInt(int64(row), 10))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.FormatInt(int64(column), 10))
	r.buffer.WriteString("H")
	r.buffer.WriteString(message)
}

func (r *DefaultRenderer) FillColor(row, column uint16, c color.RGBA, message string) {
	r.buffer.WriteString("\033[")
	r.buffer.WriteString(strconv.FormatInt(int64(row), 10))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.FormatInt(int64(column), 10))
	r.buffer.WriteString("H\033[38;2;")
	r.buffer.WriteString(strconv.FormatInt(int64(c.R), 10))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.FormatInt(int64(c.G), 10))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.FormatInt(int64(c.B), 10))
	r.buffer.WriteString("m")
	r.buffer.WriteString(message)
	r.buffer.WriteString("\033[0m")
}

func (r *DefaultRenderer) flush() {
	io.WriteString(r.Out, r.buffer.String())
	r.buffer.Reset()
}

// Results lists the outcome of a finished session.
func Results(s *session.Session, best score.Record, improved bool) []string {
	res := s.Results()
	chart := s.Chart()
	lines := []string{
		fmt.Sprintf("%v  %v", chart.Name, chart.Difficulty),
		"",
		fmt.Sprintf("      %v  %.2f%%", s.Rank(), res.Clear),
		"",
	}
	for t := game.TierBest; t < game.TierCount; t++ {
		var n uint32
		switch t {
		case game.TierBest:
			n = res.Cools
		case game.TierGood:
			n = res.Fines
		case game.TierOk:
			n = res.Safes
		case game.TierPoor:
			n = res.Sads
		}
		lines = append(lines, fmt.Sprintf("%10v: %6v", t, n))
	}
	lines = append(lines,
		fmt.Sprintf("%10v: %6v", "WRONG", res.Wrongs),
		fmt.Sprintf("%10v: %6v", "WORST", res.Misses),
		"",
		fmt.Sprintf("%10v: %6v", "Max combo", res.ComboMax),
		fmt.Sprintf("%10v: %8v", "Base", res.ScoreBase),
		fmt.Sprintf("%10v: %8v", "Hold", res.ScoreHold),
		fmt.Sprintf("%10v: %8v", "Slide", res.ScoreSlide),
		fmt.Sprintf("%10v: %8v", "Total", res.Score()),
		"",
	)
	if improved {
		lines = append(lines, "New record!")
	}
	lines = append(lines, fmt.Sprintf("Best: %v %.2f%% %v", best.Score, best.Clear, best.Rank))
	return lines
}
