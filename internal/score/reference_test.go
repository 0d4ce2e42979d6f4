package score

import (
	"errors"
	"testing"

	"git.lost.host/meutraa/divads/internal/game"
	"git.lost.host/meutraa/divads/internal/interpreter"
	"git.lost.host/meutraa/divads/internal/testdata"
)

func TestReference(t *testing.T) {
	tests := map[string]struct {
		words    []uint32
		expected int
	}{
		"solo": {
			testdata.NewChart().Target(testdata.Circle, 0, 0).End().Words(),
			750 - 250,
		},
		"chord": {
			testdata.NewChart().
				Target(testdata.Circle, 0, 0).
				Target(testdata.Cross, 0, 0).
				End().Words(),
			1250 - 250,
		},
		"two groups": {
			testdata.NewChart().
				Target(testdata.Circle, 0, 0).
				Wait(1000).
				Target(testdata.Cross, 0, 0).
				End().Words(),
			1500 - 500,
		},
		"held slide": {
			testdata.NewChart().
				Target(testdata.HeldRight, 100000, 60000).
				Wait(1000).
				Target(testdata.HeldRight, 140000, 60000).
				End().Words(),
			750 + 350 - 500,
		},
		"nothing playable": {
			testdata.NewChart().Target(9, 0, 0).End().Words(),
			0,
		},
	}
	for name, test := range tests {
		ref, err := Reference(test.words)
		if err != nil {
			t.Errorf("%v: %v", name, err)
			continue
		}
		if ref != test.expected {
			t.Errorf("%v: reference %v, expected %v", name, ref, test.expected)
		}
	}
}

func TestReferenceSaturates(t *testing.T) {
	chart := testdata.NewChart()
	for i := 0; i < 100; i++ {
		chart.Wait(game.Time(i)*1000).Target(testdata.Square, 0, 0)
	}
	ref, err := Reference(chart.End().Words())
	if err != nil {
		t.Fatal(err)
	}
	if ref != 100*750-7250 {
		t.Errorf("reference %v", ref)
	}
}

func TestReferenceMatchesPerfectRun(t *testing.T) {
	chart := testdata.NewChart()
	for i := 0; i < 60; i++ {
		chart.Wait(game.Time(i)*1000).Target(testdata.Triangle, 0, 0)
	}
	ref, err := Reference(chart.End().Words())
	if err != nil {
		t.Fatal(err)
	}

	// Sixty cools stay below full life
	e := NewEngine()
	for i := 0; i < 60; i++ {
		e.Apply(hit(game.KindTap, game.TierBest, 1))
		if e.Life() == MaxLife {
			t.Fatal("reached full life")
		}
	}
	if base := int(e.Results().ScoreBase); base != ref {
		t.Errorf("perfect run scored %v, reference %v", base, ref)
	}
}

func TestReferenceMalformed(t *testing.T) {
	words := testdata.NewChart().Target(testdata.Circle, 0, 0).Words()
	if _, err := Reference(words); !errors.Is(err, interpreter.ErrMalformedChart) {
		t.Errorf("expected malformed chart, got %v", err)
	}
}

func TestClearPercent(t *testing.T) {
	words := testdata.GetChart().Words
	ref, err := Reference(words)
	if err != nil {
		t.Fatal(err)
	}
	if ref <= 0 {
		t.Fatalf("reference %v", ref)
	}
	if c := ClearPercent(uint32(ref), 0, ref, game.DifficultyHard); c != 100 {
		t.Errorf("clear %v for a reference run", c)
	}

	tests := []struct {
		base, hold uint32
		reference  int
		d          game.Difficulty
		expected   float64
	}{
		{500, 0, 1000, game.DifficultyEasy, 50},
		{500, 10, 1000, game.DifficultyEasy, 54},
		{500, 1000, 1000, game.DifficultyEasy, 55},
		{500, 100, 1000, game.DifficultyExtreme, 52},
		{500, 0, 0, game.DifficultyNormal, 0},
	}
	for _, test := range tests {
		if c := ClearPercent(test.base, test.hold, test.reference, test.d); c != test.expected {
			t.Errorf("%+v: clear %v", test, c)
		}
	}
}
