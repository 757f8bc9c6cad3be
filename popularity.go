// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clubmatch

import (
	"sort"

	"github.com/rs/zerolog"
)

type popularityAllocator struct {
	log zerolog.Logger
}

// PopularityAllocator fills clubs one at a time, least voted first, taking
// first choices, then second, then third for each club before moving on.
//
// Its results differ from RankFirstAllocator for the same input: a student
// can lose a first choice to someone else's third choice for a less popular
// club. It is kept for comparing against earlier runs.
func PopularityAllocator(log zerolog.Logger) Allocator {
	return popularityAllocator{log}
}

func (m popularityAllocator) Allocate(clubs []Club, students []Student) Assignment {
	seats := newSeatTable(clubs)
	a := seats.assignment()

	votes := make(map[string]int, len(seats.order))
	for i := range students {
		for rank := 1; rank <= MaxChoices; rank++ {
			if c := students[i].Choice(rank); seats.known(c) {
				votes[c]++
			}
		}
	}

	order := append([]string(nil), seats.order...)
	sort.SliceStable(order, func(i, j int) bool {
		return votes[order[i]] < votes[order[j]]
	})

	placed := make([]bool, len(students))

	for _, club := range order {
		m.log.Debug().Str("club", club).Int("votes", votes[club]).
			Int("capacity", seats.left(club)).Msg("filling")

		for rank := 1; rank <= MaxChoices; rank++ {
			for i := range students {
				if seats.left(club) <= 0 {
					break
				}
				if placed[i] || students[i].Choice(rank) != club {
					continue
				}
				seats.take(club)
				a[club] = append(a[club], Seat{&students[i], i, rank})
				placed[i] = true
			}
		}
	}

	for i := range students {
		if !placed[i] {
			a[Remainder] = append(a[Remainder], Seat{&students[i], i, 0})
		}
	}

	return a
}
