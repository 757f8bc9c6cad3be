// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package clubmatch provides seat allocation algorithms that place students
// into capacity-limited clubs according to their ranked choices.
package clubmatch

// Remainder is the reserved bucket for students placed in no club.
const Remainder = "Remainder"

// MaxChoices is the number of ranked choices considered per student.
const MaxChoices = 3

type Allocator interface {
	Allocate(clubs []Club, students []Student) Assignment
}

type Club struct {
	Name     string `json:"name" yaml:"name"`
	Capacity int    `json:"capacity" yaml:"capacity"`
}

type Student struct {
	Timestamp string `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	Email     string `json:"email,omitempty" yaml:"email,omitempty"`
	LastName  string `json:"last_name" yaml:"last_name"`
	FirstName string `json:"first_name" yaml:"first_name"`
	Grade     string `json:"grade" yaml:"grade"`

	// Choices[i] is the rank i+1 choice. A blank entry keeps its rank
	// position but never matches a club.
	Choices []string `json:"choices" yaml:"choices"`
}

// Choice returns the rank-th (1-based) choice, or "" if absent.
func (s *Student) Choice(rank int) string {
	if rank < 1 || rank > MaxChoices || rank > len(s.Choices) {
		return ""
	}
	return s.Choices[rank-1]
}

type Seat struct {
	Student *Student
	Index   int // position in the input student list
	Rank    int // 0 in the remainder
}

type Assignment map[string][]Seat // club name

// Placed reports the total number of students in real clubs.
func (a Assignment) Placed() int {
	n := 0
	for name, seats := range a {
		if name != Remainder {
			n += len(seats)
		}
	}
	return n
}

// Lookup returns the bucket holding the student at input index i.
func (a Assignment) Lookup(i int) (club string, seat Seat, ok bool) {
	for name, seats := range a {
		for _, s := range seats {
			if s.Index == i {
				return name, s, true
			}
		}
	}
	return "", Seat{}, false
}
