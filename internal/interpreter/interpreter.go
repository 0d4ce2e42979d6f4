package interpreter

import (
	"errors"
	"fmt"
	"math"

	"git.lost.host/meutraa/divads/internal/game"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("divads.interpreter")

// ErrMalformedChart is returned once execution runs off the end of the
// program without reaching an End opcode.
var ErrMalformedChart = errors.New("malformed chart")

// DefaultFlightTime is the time between a note spawning and being hit.
const DefaultFlightTime = 175000

// Travel used when a Target has no distance operand, in pixels
const defaultTravel = 180

type Mode uint8

const (
	Running Mode = iota
	Finished
	Faulted
)

func (m Mode) String() string {
	switch m {
	case Running:
		return "running"
	case Finished:
		return "finished"
	case Faulted:
		return "faulted"
	}
	return "unknown"
}

// previous is the classification of the last Target, needed to tell the
// start of a held slide from its continuations.
type previous struct {
	valid  bool
	kind   game.Kind
	button game.Button
	x, y   int32
}

type Interpreter struct {
	words      []uint32
	pc         int
	flightTime game.Time
	mode       Mode
	err        error

	waiting bool
	target  game.Time

	last previous
}

// New returns an interpreter positioned at the first instruction. Word 0 is
// the format signature and never executed.
func New(words []uint32, flightTime game.Time) *Interpreter {
	if flightTime <= 0 {
		flightTime = DefaultFlightTime
	}
	return &Interpreter{
		words:      words,
		pc:         1,
		flightTime: flightTime,
	}
}

func (it *Interpreter) PC() int        { return it.pc }
func (it *Interpreter) Mode() Mode     { return it.mode }
func (it *Interpreter) Finished() bool { return it.mode == Finished }

// WaitTarget returns the clock value the interpreter is blocked on.
func (it *Interpreter) WaitTarget() (game.Time, bool) {
	return it.target, it.waiting && it.mode == Running
}

func (it *Interpreter) fault(format string, args ...interface{}) error {
	it.mode = Faulted
	it.err = fmt.Errorf("%w: "+format, append([]interface{}{ErrMalformedChart}, args...)...)
	return it.err
}

// Resume executes instructions until the chart waits for a later clock,
// ends, or faults. The effects produced on the way are returned in order.
func (it *Interpreter) Resume(clock game.Time) ([]Effect, error) {
	var effects []Effect

	for it.mode == Running {
		if it.pc >= len(it.words) {
			return effects, it.fault("no END before word %d", it.pc)
		}

		op := Opcode(it.words[it.pc] & 0xFF)
		width := op.Width()
		if it.pc+width > len(it.words) {
			return effects, it.fault("%v at word %d needs %d operands, only %d left",
				op, it.pc, width-1, len(it.words)-it.pc-1)
		}
		args := it.words[it.pc+1 : it.pc+width]

		switch op {
		case OpEnd:
			it.mode = Finished
			it.waiting = false
			return effects, nil

		case OpWait:
			target := game.Time(args[0])
			if clock < target {
				it.waiting = true
				it.target = target
				return effects, nil
			}
			it.waiting = false

		case OpTarget:
			if note, ok := it.classify(args, clock); ok {
				effects = append(effects, SpawnNote{Note: note})
			}

		case OpLyric:
			effects = append(effects, ShowLyric{Index: int(int32(args[0]))})

		case OpMusicPlay:
			effects = append(effects, StartAudio{})

		case OpBarTimeSet:
			bpm, beats := int64(int32(args[0])), int64(int32(args[1]))
			if bpm > 0 {
				it.flightTime = game.Time(6000000 * (beats + 1) / bpm)
			}

		case OpSetFlyTime:
			it.flightTime = game.Time(int32(args[0])) * 100

		default:
			log.Debugf("skipping %v at word %d", op, it.pc)
		}

		it.pc += width
	}

	return effects, it.err
}

// classify turns a Target instruction into a note. Subtypes that are not
// playable notes produce nothing.
func (it *Interpreter) classify(args []uint32, clock game.Time) (game.Note, bool) {
	subtype := args[0]
	x := int32(int64(int32(args[1]))*256/480000) - 16
	y := int32(int64(int32(args[2]))*192/270000) - 16

	note := game.Note{X: x, Y: y}

	switch {
	case subtype <= targetHoldLast:
		note.Button = game.Button(subtype & 3)
		note.Kind = game.KindTap
		if subtype > 3 {
			note.Kind = game.KindHoldTap
		}
	case subtype == targetSlideLeft || subtype == targetSlideRight:
		note.Kind = game.KindSlide
		note.Button = game.ButtonSlideLeft + game.Button(subtype-targetSlideLeft)
	case subtype == targetHeldLeft || subtype == targetHeldRight:
		note.Button = game.ButtonSlideLeft + game.Button(subtype-targetHeldLeft)
		note.Kind = game.KindHoldSlideStart
		if it.continues(note.Button, x, y) {
			note.Kind = game.KindHoldSlideContinuation
		}
	default:
		return note, false
	}

	it.last = previous{valid: true, kind: note.Kind, button: note.Button, x: x, y: y}

	angle := float64(int32(args[3])) * math.Pi / 180000
	travel := int64(args[4]) * 256 / 1920000
	if travel <= 0 {
		travel = defaultTravel
	}
	unitX := int64(math.Sin(angle) * (1 << game.FixedShift))
	unitY := int64(math.Cos(angle) * -(1 << game.FixedShift))
	note.OfsX = int32(unitX * travel)
	note.OfsY = int32(unitY * travel)
	flight := int64(it.flightTime)
	if flight < int64(game.FrameTime) {
		flight = int64(game.FrameTime)
	}
	note.IncX = int32(int64(note.OfsX) * int64(game.FrameTime) / flight)
	note.IncY = int32(int64(note.OfsY) * int64(game.FrameTime) / flight)
	note.Time = clock + it.flightTime

	return note, true
}

// continues reports whether a held slide at x, y extends the previous one.
func (it *Interpreter) continues(button game.Button, x, y int32) bool {
	last := it.last
	if !last.valid || last.button != button || last.y != y {
		return false
	}
	if last.kind != game.KindHoldSlideStart && last.kind != game.KindHoldSlideContinuation {
		return false
	}
	if button == game.ButtonSlideLeft {
		return x < last.x
	}
	return x > last.x
}
