package game

import "time"

// Time is a point on the game clock, in the 10µs units charts use.
type Time int64

// FrameTime is the duration of one tick, about 1/60s.
const FrameTime Time = 1672

const timeUnit = 10 * time.Microsecond

func (t Time) Duration() time.Duration {
	return time.Duration(t) * timeUnit
}

func FromDuration(d time.Duration) Time {
	return Time(d / timeUnit)
}

// Ticks converts a tick count into clock time.
func Ticks(n int) Time {
	return Time(n) * FrameTime
}

func Abs(t Time) Time {
	if t < 0 {
		return -t
	}
	return t
}
