package queue

import (
	"errors"
	"fmt"
	"sort"

	"git.lost.host/meutraa/divads/internal/game"
)

var ErrUnderflow = errors.New("queue underflow")

// Queue holds pending notes ordered by scheduled time. Notes sharing the
// head's time form the group that is judged next.
type Queue struct {
	notes []game.Note
	head  int
}

func New() *Queue {
	return &Queue{}
}

func (q *Queue) Len() int {
	return len(q.notes) - q.head
}

func (q *Queue) Empty() bool {
	return q.Len() == 0
}

// PushBack appends a note. Notes are nearly always spawned in time order; a
// note due earlier than the tail is placed after every note due no later
// than itself.
func (q *Queue) PushBack(n game.Note) {
	if q.Empty() || q.notes[len(q.notes)-1].Time <= n.Time {
		q.notes = append(q.notes, n)
		return
	}
	pending := q.notes[q.head:]
	i := q.head + sort.Search(len(pending), func(i int) bool {
		return pending[i].Time > n.Time
	})
	q.notes = append(q.notes, game.Note{})
	copy(q.notes[i+1:], q.notes[i:])
	q.notes[i] = n
}

// PeekHeadTime returns the scheduled time of the next group.
func (q *Queue) PeekHeadTime() (game.Time, bool) {
	if q.Empty() {
		return 0, false
	}
	return q.notes[q.head].Time, true
}

// Head returns the first pending note.
func (q *Queue) Head() *game.Note {
	if q.Empty() {
		return nil
	}
	return &q.notes[q.head]
}

// At returns the i-th pending note.
func (q *Queue) At(i int) *game.Note {
	return &q.notes[q.head+i]
}

// GroupSize counts the notes at the head sharing the head's time.
func (q *Queue) GroupSize() int {
	if q.Empty() {
		return 0
	}
	t := q.notes[q.head].Time
	n := 1
	for i := q.head + 1; i < len(q.notes) && q.notes[i].Time == t; i++ {
		n++
	}
	return n
}

// DequeueGroup removes exactly n notes from the head.
func (q *Queue) DequeueGroup(n int) error {
	if n < 0 || n > q.Len() {
		return fmt.Errorf("%w: dequeue %d of %d", ErrUnderflow, n, q.Len())
	}
	q.head += n
	// Reclaim the consumed prefix once it dominates the backing array
	if q.head > 64 && q.head*2 > len(q.notes) {
		q.notes = append(q.notes[:0], q.notes[q.head:]...)
		q.head = 0
	}
	return nil
}

// Each visits the pending notes in order.
func (q *Queue) Each(f func(n *game.Note)) {
	for i := q.head; i < len(q.notes); i++ {
		f(&q.notes[i])
	}
}

func (q *Queue) Clear() {
	q.notes = q.notes[:0]
	q.head = 0
}
