package game

// Button is one of the six logical inputs.
type Button uint8

const (
	ButtonTriangle Button = iota
	ButtonCircle
	ButtonCross
	ButtonSquare
	ButtonSlideLeft
	ButtonSlideRight
	ButtonCount = 6
)

var buttonNames = [ButtonCount]string{"triangle", "circle", "cross", "square", "slide-l", "slide-r"}

func (b Button) String() string {
	if b >= ButtonCount {
		return "invalid"
	}
	return buttonNames[b]
}

func (b Button) Mask() ButtonMask {
	return 1 << b
}

type ButtonMask uint8

func (m ButtonMask) Has(b Button) bool {
	return m&b.Mask() != 0
}

// Input is the button state sampled for a single tick.
type Input struct {
	Held ButtonMask // Currently pressed
	Down ButtonMask // Pressed this tick
	Up   ButtonMask // Released this tick
}

// Next derives the input of the following tick from the new held state.
func (in Input) Next(held ButtonMask) Input {
	return Input{
		Held: held,
		Down: held &^ in.Held,
		Up:   in.Held &^ held,
	}
}
