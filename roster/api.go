// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package roster loads club and student tables for clubmatch.
//
// Malformed rows are dropped and reported as Issues rather than failing the
// load: the tables are usually hand edited or exported from a form while
// answers are still coming in.
package roster

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/someonegg/clubmatch"
)

// ErrMissingInput is returned when a table is not supplied or has no usable
// rows. Allocation must not run in that case.
var ErrMissingInput = errors.New("missing input")

type Issue struct {
	Table  string `json:"table"`
	Row    int    `json:"row"` // 1-based
	Reason string `json:"reason"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s row %d: %s", i.Table, i.Row, i.Reason)
}

type Source struct {
	Path  string
	Sheet string // xlsx only, defaults to the first sheet
}

type Options struct {
	Clubs    Source
	Students Source

	// StudentHeader skips the first non-blank student row.
	StudentHeader bool

	// Aliases maps a canonical club name to alternative spellings.
	Aliases map[string][]string
}

type Roster struct {
	Clubs    []clubmatch.Club
	Students []clubmatch.Student
	Issues   []Issue
}

// Unmatched counts the non-blank choices naming no club, by choice text.
func (r *Roster) Unmatched() map[string]int {
	known := make(map[string]bool, len(r.Clubs))
	for _, c := range r.Clubs {
		known[c.Name] = true
	}
	out := make(map[string]int)
	for i := range r.Students {
		for rank := 1; rank <= clubmatch.MaxChoices; rank++ {
			c := r.Students[i].Choice(rank)
			if c != "" && !known[c] {
				out[c]++
			}
		}
	}
	return out
}
