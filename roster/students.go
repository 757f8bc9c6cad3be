// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package roster

import (
	"github.com/someonegg/clubmatch"
)

const studentsTable = "students"

// Column layout of a form export.
const (
	colTimestamp = iota
	colEmail
	colLastName
	colFirstName
	colGrade
	colChoice1
)

// ParseStudents turns form rows into students. Blank rows are skipped;
// anything else is kept, missing trailing fields read as blank.
func ParseStudents(rows [][]string, header bool) ([]clubmatch.Student, []Issue) {
	var (
		students []clubmatch.Student
		issues   []Issue
	)

	for i, row := range rows {
		if blank(row) {
			continue
		}
		if header {
			header = false
			continue
		}

		s := clubmatch.Student{
			Timestamp: field(row, colTimestamp),
			Email:     field(row, colEmail),
			LastName:  field(row, colLastName),
			FirstName: field(row, colFirstName),
			Grade:     field(row, colGrade),
		}

		// Trailing blanks are cut, inner blanks keep the later ranks in place.
		choices := make([]string, clubmatch.MaxChoices)
		n := 0
		for r := range choices {
			choices[r] = field(row, colChoice1+r)
			if choices[r] != "" {
				n = r + 1
			}
		}
		s.Choices = choices[:n]

		if s.FirstName == "" && s.LastName == "" {
			issues = append(issues, Issue{studentsTable, i + 1, "student has no name"})
		}
		if n == 0 {
			issues = append(issues, Issue{studentsTable, i + 1, "student made no choice"})
		}

		students = append(students, s)
	}

	return students, issues
}
