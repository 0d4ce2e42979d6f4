package interpreter

import "fmt"

// Opcode is the low byte of a chart instruction word.
type Opcode uint8

// Interpreted opcodes. Anything else is skipped using ParamCounts.
const (
	OpEnd        Opcode = 0x00 // stop the chart
	OpWait       Opcode = 0x01 // block until the clock reaches an absolute time
	OpTarget     Opcode = 0x06 // spawn a note
	OpLyric      Opcode = 0x18 // show a lyric line
	OpMusicPlay  Opcode = 0x19 // start the song
	OpBarTimeSet Opcode = 0x1C // derive the flight time from tempo
	OpSetFlyTime Opcode = 0x3A // set the flight time in milliseconds
)

// ParamCounts gives the number of operand words following each opcode.
var ParamCounts = [0x100]uint8{
	0, 1, 4, 2, 2, 2, 7, 4, 2, 6, 2, 1, 6, 2, 1, 1, // 0x00-0x0F
	3, 2, 3, 5, 5, 4, 4, 5, 2, 0, 2, 4, 2, 2, 1, 21, // 0x10-0x1F
	0, 3, 2, 5, 1, 1, 7, 1, 1, 2, 1, 2, 1, 2, 3, 3, // 0x20-0x2F
	1, 2, 2, 3, 6, 6, 1, 1, 2, 3, 1, 2, 2, 4, 4, 1, // 0x30-0x3F
	2, 1, 2, 1, 1, 3, 3, 3, 2, 1, 9, 3, 2, 4, 2, 3, // 0x40-0x4F
	2, 24, 1, 2, 1, 3, 1, 3, 4, 1, 2, 6, 3, 2, 3, 3, // 0x50-0x5F
	4, 1, 1, 3, 3, 4, 2, 3, 3, 8, 2, // 0x60-0x6A
}

var opcodeNames = map[Opcode]string{
	OpEnd:        "END",
	OpWait:       "TIME",
	OpTarget:     "TARGET",
	OpLyric:      "LYRIC",
	OpMusicPlay:  "MUSIC_PLAY",
	OpBarTimeSet: "BAR_TIME_SET",
	OpSetFlyTime: "TARGET_FLYING_TIME",
}

func (op Opcode) String() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	return fmt.Sprintf("OP_0x%02X", uint8(op))
}

// Width is the number of words the instruction occupies, opcode included.
func (op Opcode) Width() int {
	return int(ParamCounts[op]) + 1
}

// Target subtypes
const (
	targetHoldLast   = 7
	targetSlideLeft  = 12
	targetSlideRight = 13
	targetHeldLeft   = 15
	targetHeldRight  = 16
)
