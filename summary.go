// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clubmatch

type Summary struct {
	ClubsCount    int                 `json:"clubs" yaml:"clubs"`
	StudentsCount int                 `json:"students" yaml:"students"`
	Seats         int                 `json:"seats" yaml:"seats"`
	SeatsLeft     int                 `json:"seats_left" yaml:"seats_left"`
	ByRank        [MaxChoices + 1]int `json:"by_rank" yaml:"by_rank"` // index 0 is the remainder
	Unplaced      int                 `json:"unplaced" yaml:"unplaced"`
}

// Summarize counts an assignment. Duplicate clubs are counted once, with the
// capacity the allocators use.
func Summarize(clubs []Club, students []Student, a Assignment) Summary {
	seats := newSeatTable(clubs)

	summ := Summary{
		ClubsCount:    len(seats.order),
		StudentsCount: len(students),
	}
	for _, name := range seats.order {
		summ.Seats += seats.left(name)
	}

	for _, bucket := range a {
		for _, s := range bucket {
			if s.Rank >= 0 && s.Rank <= MaxChoices {
				summ.ByRank[s.Rank]++
			}
		}
	}
	summ.Unplaced = len(a[Remainder])
	summ.SeatsLeft = summ.Seats - a.Placed()

	return summ
}
