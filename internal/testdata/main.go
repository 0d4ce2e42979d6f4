package testdata

import (
	"encoding/binary"

	"git.lost.host/meutraa/divads/internal/game"
)

// Signature is the first word of every chart file.
const Signature = 0x14050921

// Target subtypes
const (
	Triangle     = 0
	Circle       = 1
	Cross        = 2
	Square       = 3
	HoldTriangle = 4
	HoldCircle   = 5
	SlideLeft    = 12
	SlideRight   = 13
	HeldLeft     = 15
	HeldRight    = 16
)

// Builder assembles chart bytecode for tests.
type Builder struct {
	words []uint32
}

func NewChart() *Builder {
	return &Builder{words: []uint32{Signature}}
}

func (b *Builder) Op(op uint32, args ...uint32) *Builder {
	b.words = append(b.words, op)
	b.words = append(b.words, args...)
	return b
}

func (b *Builder) Wait(t game.Time) *Builder {
	return b.Op(0x01, uint32(t))
}

// Target spawns a note of the given subtype. x and y are in chart units,
// 480000 by 270000 for the whole screen.
func (b *Builder) Target(subtype uint32, x, y int32) *Builder {
	return b.Op(0x06, subtype, uint32(x), uint32(y), 0, 0, 500, 2)
}

func (b *Builder) FlyTime(ms uint32) *Builder {
	return b.Op(0x3A, ms)
}

func (b *Builder) BarTime(bpm, beats uint32) *Builder {
	return b.Op(0x1C, bpm, beats)
}

func (b *Builder) MusicPlay() *Builder {
	return b.Op(0x19)
}

func (b *Builder) Lyric(index uint32) *Builder {
	return b.Op(0x18, index, 0xFFFFFFFF)
}

func (b *Builder) End() *Builder {
	return b.Op(0x00)
}

func (b *Builder) Words() []uint32 {
	return append([]uint32(nil), b.words...)
}

func (b *Builder) Chart(d game.Difficulty) *game.Chart {
	return &game.Chart{Name: "pv_001", SongID: 1, Difficulty: d, Words: b.Words()}
}

// Bytes encodes the chart the way it is stored on disk.
func (b *Builder) Bytes() []byte {
	data := make([]byte, 4*len(b.words))
	for i, w := range b.words {
		binary.LittleEndian.PutUint32(data[4*i:], w)
	}
	return data
}

// GetChart returns a short chart using every note kind.
func GetChart() *game.Chart {
	return NewChart().
		FlyTime(1000).
		MusicPlay().
		Wait(100000).
		Target(Triangle, 120000, 135000).
		Wait(150000).
		Target(Circle, 200000, 135000).
		Target(Cross, 280000, 135000).
		Lyric(1).
		Wait(200000).
		Target(HoldTriangle, 240000, 100000).
		Wait(260000).
		Target(SlideLeft, 100000, 200000).
		Wait(300000).
		Target(HeldRight, 100000, 60000).
		Wait(305000).
		Target(HeldRight, 140000, 60000).
		Wait(310000).
		Target(HeldRight, 180000, 60000).
		Wait(400000).
		End().
		Chart(game.DifficultyNormal)
}
