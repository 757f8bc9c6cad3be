// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package roster

import (
	"fmt"
	"strconv"

	"github.com/someonegg/clubmatch"
)

const clubsTable = "clubs"

// ParseClubs turns "ClubName, Capacity" rows into clubs. Rows without a
// name, with a capacity that is not a non-negative integer, or using the
// reserved name are dropped; a header row is dropped the same way. A
// repeated name keeps its first position and takes the later capacity.
func ParseClubs(rows [][]string) ([]clubmatch.Club, []Issue) {
	var (
		clubs  []clubmatch.Club
		issues []Issue
		index  = make(map[string]int)
	)

	for i, row := range rows {
		if blank(row) {
			continue
		}
		drop := func(format string, args ...interface{}) {
			issues = append(issues, Issue{clubsTable, i + 1, fmt.Sprintf(format, args...)})
		}

		name, capStr := field(row, 0), field(row, 1)
		if name == "" {
			drop("empty club name")
			continue
		}
		if name == clubmatch.Remainder {
			drop("club name %q is reserved", name)
			continue
		}
		capacity, err := strconv.Atoi(capStr)
		if err != nil {
			drop("club %q: capacity %q is not a number", name, capStr)
			continue
		}
		if capacity < 0 {
			drop("club %q: negative capacity %d", name, capacity)
			continue
		}

		if j, ok := index[name]; ok {
			drop("club %q redefined, capacity %d replaces %d", name, capacity, clubs[j].Capacity)
			clubs[j].Capacity = capacity
			continue
		}
		index[name] = len(clubs)
		clubs = append(clubs, clubmatch.Club{Name: name, Capacity: capacity})
	}

	return clubs, issues
}
