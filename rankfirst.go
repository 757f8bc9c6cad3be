// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clubmatch

import (
	"github.com/rs/zerolog"
)

type rankFirstAllocator struct {
	log zerolog.Logger
}

// RankFirstAllocator satisfies every student's first choice, in input order,
// before any second choice is looked at, and so on down the ranks. A placed
// student is never moved.
func RankFirstAllocator(log zerolog.Logger) Allocator {
	return rankFirstAllocator{log}
}

func (m rankFirstAllocator) Allocate(clubs []Club, students []Student) Assignment {
	seats := newSeatTable(clubs)
	a := seats.assignment()

	placed := make([]bool, len(students))

	for rank := 1; rank <= MaxChoices; rank++ {
		for i := range students {
			if placed[i] {
				continue
			}
			choice := students[i].Choice(rank)
			if !seats.take(choice) {
				continue
			}
			a[choice] = append(a[choice], Seat{&students[i], i, rank})
			placed[i] = true

			m.log.Debug().
				Int("rank", rank).
				Int("student", i).
				Str("club", choice).
				Int("left", seats.left(choice)).
				Msg("placed")
		}
	}

	for i := range students {
		if !placed[i] {
			a[Remainder] = append(a[Remainder], Seat{&students[i], i, 0})
		}
	}

	return a
}

// seatTable tracks the seats left per club. Duplicate names collapse onto
// the first position with the last capacity; the reserved name is unknown.
type seatTable struct {
	order []string
	rest  map[string]int
}

func newSeatTable(clubs []Club) *seatTable {
	t := &seatTable{rest: make(map[string]int, len(clubs))}
	for _, c := range clubs {
		if c.Name == "" || c.Name == Remainder {
			continue
		}
		if _, ok := t.rest[c.Name]; !ok {
			t.order = append(t.order, c.Name)
		}
		t.rest[c.Name] = maxInt(c.Capacity, 0)
	}
	return t
}

func (t *seatTable) known(club string) bool {
	_, ok := t.rest[club]
	return ok
}

func (t *seatTable) left(club string) int {
	return t.rest[club]
}

func (t *seatTable) take(club string) bool {
	if t.rest[club] <= 0 {
		return false
	}
	t.rest[club]--
	return true
}

func (t *seatTable) assignment() Assignment {
	a := make(Assignment, len(t.order)+1)
	for _, name := range t.order {
		a[name] = []Seat{}
	}
	a[Remainder] = []Seat{}
	return a
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
