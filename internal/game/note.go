package game

// Kind is the closed set of note kinds a chart can spawn.
type Kind uint8

const (
	KindTap Kind = iota
	KindHoldTap
	KindSlide
	KindHoldSlideStart
	KindHoldSlideContinuation
)

func (k Kind) String() string {
	switch k {
	case KindTap:
		return "tap"
	case KindHoldTap:
		return "hold"
	case KindSlide:
		return "slide"
	case KindHoldSlideStart:
		return "held slide"
	case KindHoldSlideContinuation:
		return "held slide continuation"
	}
	return "unknown"
}

// IsSlide reports whether notes of this kind are judged with the widened
// slide windows.
func (k Kind) IsSlide() bool {
	return k == KindSlide || k == KindHoldSlideStart || k == KindHoldSlideContinuation
}

// Fixed point shift used for note motion
const FixedShift = 8

type Note struct {
	Kind   Kind
	Button Button // Face button for taps and holds, slide side for slides
	X, Y   int32  // Where the note has to be hit, in screen pixels
	Time   Time   // The time the note should be hit

	// This is state
	IncX, IncY int32 // Per tick motion, fixed point
	OfsX, OfsY int32 // Remaining offset from X, Y, fixed point
}

// LevelSampled notes are satisfied by keeping the button held rather than
// pressing it.
func (n *Note) LevelSampled() bool {
	return n.Kind == KindHoldSlideContinuation
}

// Advance moves the note one tick closer to its target.
func (n *Note) Advance() {
	n.OfsX -= n.IncX
	n.OfsY -= n.IncY
}

// Position is where the note is currently drawn.
func (n *Note) Position() (int32, int32) {
	return n.X + (n.OfsX >> FixedShift), n.Y + (n.OfsY >> FixedShift)
}
