package judge

import (
	"testing"

	"git.lost.host/meutraa/divads/internal/game"
	"git.lost.host/meutraa/divads/internal/queue"
)

type verdictAt struct {
	clock game.Time
	*game.Verdict
}

// pressed returns a held function for the given buttons over [from, to).
func pressed(mask game.ButtonMask, from, to int) func(game.Time) game.ButtonMask {
	return func(clock game.Time) game.ButtonMask {
		if clock >= game.Ticks(from) && clock < game.Ticks(to) {
			return mask
		}
		return 0
	}
}

func either(fs ...func(game.Time) game.ButtonMask) func(game.Time) game.ButtonMask {
	return func(clock game.Time) game.ButtonMask {
		var mask game.ButtonMask
		for _, f := range fs {
			mask |= f(clock)
		}
		return mask
	}
}

func drive(t *testing.T, j *Judge, ticks int, held func(game.Time) game.ButtonMask) []verdictAt {
	t.Helper()
	verdicts := []verdictAt{}
	var in game.Input
	for i := 0; i < ticks; i++ {
		clock := game.Ticks(i)
		in = in.Next(held(clock))
		v, err := j.Update(clock, in)
		if err != nil {
			t.Fatal(err)
		}
		if v != nil {
			verdicts = append(verdicts, verdictAt{clock, v})
		}
	}
	return verdicts
}

func note(kind game.Kind, b game.Button, tick int) game.Note {
	return game.Note{Kind: kind, Button: b, Time: game.Ticks(tick)}
}

func TestSingleTapOnTime(t *testing.T) {
	q := queue.New()
	q.PushBack(note(game.KindTap, game.ButtonCircle, 100))
	j := New(q)

	vs := drive(t, j, 200, pressed(game.ButtonCircle.Mask(), 100, 110))
	if len(vs) != 1 {
		t.Fatalf("%v verdicts", len(vs))
	}
	v := vs[0]
	if v.Outcome != game.OutcomeHit || v.Tier != game.TierBest || v.Offset != 0 {
		t.Errorf("got %v %v offset %v", v.Outcome, v.Tier, v.Offset)
	}
	if !q.Empty() || j.Awaiting() {
		t.Error("group not consumed")
	}
}

func TestTimeout(t *testing.T) {
	q := queue.New()
	q.PushBack(note(game.KindTap, game.ButtonCircle, 100))
	j := New(q)

	vs := drive(t, j, 200, pressed(0, 0, 0))
	if len(vs) != 1 {
		t.Fatalf("%v verdicts", len(vs))
	}
	if vs[0].Outcome != game.OutcomeTimeout {
		t.Errorf("got %v", vs[0].Outcome)
	}
	if vs[0].clock != game.Ticks(113) {
		t.Errorf("timed out at %v, expected %v", vs[0].clock, game.Ticks(113))
	}
}

func TestPartialChordTimesOut(t *testing.T) {
	q := queue.New()
	q.PushBack(note(game.KindTap, game.ButtonCircle, 100))
	q.PushBack(note(game.KindTap, game.ButtonCross, 100))
	j := New(q)

	vs := drive(t, j, 200, pressed(game.ButtonCircle.Mask(), 100, 150))
	if len(vs) != 1 {
		t.Fatalf("%v verdicts", len(vs))
	}
	if vs[0].Outcome != game.OutcomeTimeout || vs[0].Notes != 2 {
		t.Errorf("got %v for %v notes", vs[0].Outcome, vs[0].Notes)
	}
	if !q.Empty() {
		t.Errorf("%v notes left", q.Len())
	}
}

func TestWrongKey(t *testing.T) {
	q := queue.New()
	q.PushBack(note(game.KindTap, game.ButtonCircle, 100))
	q.PushBack(note(game.KindTap, game.ButtonCross, 100))
	q.PushBack(note(game.KindTap, game.ButtonCross, 150))
	j := New(q)

	vs := drive(t, j, 120, pressed(game.ButtonSquare.Mask(), 95, 96))
	if len(vs) != 1 {
		t.Fatalf("%v verdicts", len(vs))
	}
	v := vs[0]
	if v.Outcome != game.OutcomeWrongKey || v.Tier != game.TierGood || v.Notes != 2 {
		t.Errorf("got %v %v for %v notes", v.Outcome, v.Tier, v.Notes)
	}
	if q.Len() != 1 {
		t.Errorf("%v notes left, expected 1", q.Len())
	}
}

func TestPressBeforeWindowIgnored(t *testing.T) {
	q := queue.New()
	q.PushBack(note(game.KindTap, game.ButtonCircle, 100))
	j := New(q)

	// Still held when the window opens, which is not a press
	held := either(
		pressed(game.ButtonCircle.Mask(), 80, 90),
		pressed(game.ButtonCircle.Mask(), 101, 105),
	)
	vs := drive(t, j, 200, held)
	if len(vs) != 1 {
		t.Fatalf("%v verdicts", len(vs))
	}
	if vs[0].Outcome != game.OutcomeHit || vs[0].clock != game.Ticks(101) {
		t.Errorf("got %v at %v", vs[0].Outcome, vs[0].clock)
	}
}

func TestReleaseClearsSatisfied(t *testing.T) {
	q := queue.New()
	q.PushBack(note(game.KindTap, game.ButtonCircle, 100))
	q.PushBack(note(game.KindTap, game.ButtonCross, 100))
	j := New(q)

	held := either(
		pressed(game.ButtonCircle.Mask(), 95, 98),
		pressed(game.ButtonCross.Mask(), 99, 120),
		pressed(game.ButtonCircle.Mask(), 101, 120),
	)
	vs := drive(t, j, 200, held)
	if len(vs) != 1 {
		t.Fatalf("%v verdicts", len(vs))
	}
	if vs[0].Outcome != game.OutcomeHit || vs[0].clock != game.Ticks(101) {
		t.Errorf("got %v at %v", vs[0].Outcome, vs[0].clock)
	}
	if vs[0].Tier != game.TierBest {
		t.Errorf("tier %v", vs[0].Tier)
	}
}

func TestSlideWindows(t *testing.T) {
	tests := []struct {
		kind game.Kind
		b    game.Button
		tier game.Tier
	}{
		{game.KindTap, game.ButtonTriangle, game.TierPoor},
		{game.KindSlide, game.ButtonSlideLeft, game.TierGood},
	}
	for _, test := range tests {
		q := queue.New()
		q.PushBack(note(test.kind, test.b, 100))
		vs := drive(t, New(q), 200, pressed(test.b.Mask(), 110, 112))
		if len(vs) != 1 || vs[0].Tier != test.tier {
			t.Errorf("%v: %v verdicts, expected tier %v", test.kind, len(vs), test.tier)
		}
	}
}

// Note times rarely fall on a tick, so a press can land on the tick after
// the window closes and still count.
func TestLateSlideIsGood(t *testing.T) {
	left := game.ButtonSlideLeft
	tests := map[string]struct {
		b       game.Button
		outcome game.Outcome
	}{
		"hit":   {left, game.OutcomeHit},
		"wrong": {game.ButtonSlideRight, game.OutcomeWrongKey},
	}
	for name, test := range tests {
		q := queue.New()
		q.PushBack(game.Note{Kind: game.KindSlide, Button: left, Time: game.Ticks(100) + 500})
		vs := drive(t, New(q), 200, pressed(test.b.Mask(), 113, 115))
		if len(vs) != 1 {
			t.Fatalf("%v: %v verdicts", name, len(vs))
		}
		v := vs[0]
		if v.clock != game.Ticks(113) || v.Offset >= -PostWindow {
			t.Errorf("%v: resolved at %v with offset %v", name, v.clock, v.Offset)
		}
		if v.Outcome != test.outcome || v.Tier != game.TierGood {
			t.Errorf("%v: got %v %v", name, v.Outcome, v.Tier)
		}
	}
}

func TestGroupChangesWhileAwaited(t *testing.T) {
	circle, cross := game.ButtonCircle.Mask(), game.ButtonCross.Mask()
	tests := map[string]struct {
		spawned game.Note
		held    func(game.Time) game.ButtonMask
		notes   []int
	}{
		"earlier note": {
			note(game.KindTap, game.ButtonCross, 98),
			either(pressed(cross, 98, 100), pressed(circle, 100, 102)),
			[]int{1, 1},
		},
		"joins the group": {
			note(game.KindTap, game.ButtonCross, 100),
			pressed(circle|cross, 100, 102),
			[]int{2},
		},
	}
	for name, test := range tests {
		q := queue.New()
		q.PushBack(note(game.KindTap, game.ButtonCircle, 100))
		j := New(q)

		vs := []verdictAt{}
		var in game.Input
		for i := 0; i < 200; i++ {
			clock := game.Ticks(i)
			if i == 95 {
				q.PushBack(test.spawned)
			}
			in = in.Next(test.held(clock))
			v, err := j.Update(clock, in)
			if err != nil {
				t.Fatal(err)
			}
			if v != nil {
				vs = append(vs, verdictAt{clock, v})
			}
		}

		if len(vs) != len(test.notes) {
			t.Fatalf("%v: %v verdicts", name, len(vs))
		}
		for i, v := range vs {
			if v.Outcome != game.OutcomeHit || v.Tier != game.TierBest || v.Notes != test.notes[i] {
				t.Errorf("%v: verdict %v is %v %v for %v notes", name, i, v.Outcome, v.Tier, v.Notes)
			}
		}
		if !q.Empty() {
			t.Errorf("%v: %v notes left", name, q.Len())
		}
	}
}

func TestHeldSlideChain(t *testing.T) {
	q := queue.New()
	right := game.ButtonSlideRight
	q.PushBack(note(game.KindHoldSlideStart, right, 100))
	q.PushBack(note(game.KindHoldSlideContinuation, right, 130))
	q.PushBack(note(game.KindHoldSlideContinuation, right, 160))
	q.PushBack(note(game.KindHoldSlideContinuation, right, 190))
	j := New(q)

	held := either(pressed(right.Mask(), 100, 140), pressed(right.Mask(), 180, 300))
	vs := drive(t, j, 300, held)

	expected := []struct {
		outcome  game.Outcome
		kind     game.Kind
		clock    int
		chainEnd bool
	}{
		{game.OutcomeHit, game.KindHoldSlideStart, 100, false},
		{game.OutcomeHit, game.KindHoldSlideContinuation, 118, false},
		{game.OutcomeTimeout, game.KindHoldSlideContinuation, 173, false},
		{game.OutcomeHit, game.KindHoldSlideContinuation, 180, true},
	}
	if len(vs) != len(expected) {
		t.Fatalf("%v verdicts, expected %v", len(vs), len(expected))
	}
	for i, e := range expected {
		v := vs[i]
		if v.Outcome != e.outcome || v.Kind != e.kind || v.clock != game.Ticks(e.clock) || v.ChainEnd != e.chainEnd {
			t.Errorf("verdict %v: %v %v at %v end %v", i, v.Outcome, v.Kind, v.clock, v.ChainEnd)
		}
		if v.Outcome == game.OutcomeHit && v.Tier != game.TierBest {
			t.Errorf("verdict %v tier %v", i, v.Tier)
		}
	}
}

func TestHoldMask(t *testing.T) {
	q := queue.New()
	q.PushBack(note(game.KindHoldTap, game.ButtonTriangle, 100))
	q.PushBack(note(game.KindTap, game.ButtonSquare, 100))
	mask := game.ButtonTriangle.Mask() | game.ButtonSquare.Mask()
	vs := drive(t, New(q), 200, pressed(mask, 100, 200))
	if len(vs) != 1 {
		t.Fatalf("%v verdicts", len(vs))
	}
	if vs[0].Holds != game.ButtonTriangle.Mask() {
		t.Errorf("holds %b", vs[0].Holds)
	}
}

func BenchmarkUpdate(b *testing.B) {
	q := queue.New()
	j := New(q)
	var in game.Input
	for n := 0; n < b.N; n++ {
		if q.Empty() {
			for i := 0; i < 100; i++ {
				q.PushBack(note(game.KindTap, game.Button(i%4), n+i*20))
			}
		}
		in = in.Next(game.ButtonMask(n % 16))
		if _, err := j.Update(game.Ticks(n), in); err != nil {
			b.Fatal(err)
		}
	}
}
