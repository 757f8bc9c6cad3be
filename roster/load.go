// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package roster

import (
	"github.com/pkg/errors"
)

// Load reads and parses both tables. It fails with ErrMissingInput when a
// table is absent or no club survives parsing; row defects only produce
// Issues.
func Load(opts Options) (*Roster, error) {
	if opts.Clubs.Path == "" {
		return nil, errors.Wrap(ErrMissingInput, "no club table")
	}
	if opts.Students.Path == "" {
		return nil, errors.Wrap(ErrMissingInput, "no student table")
	}

	clubRows, clubIssues, err := ReadTable(opts.Clubs, clubsTable)
	if err != nil {
		return nil, errors.WithMessage(err, "load club table")
	}
	studentRows, studentIssues, err := ReadTable(opts.Students, studentsTable)
	if err != nil {
		return nil, errors.WithMessage(err, "load student table")
	}

	r, err := build(clubRows, studentRows, opts)
	if err != nil {
		return nil, err
	}
	r.Issues = append(append(clubIssues, studentIssues...), r.Issues...)
	return r, nil
}

func build(clubRows, studentRows [][]string, opts Options) (*Roster, error) {
	var r Roster

	clubs, issues := ParseClubs(clubRows)
	if len(clubs) == 0 {
		return nil, errors.Wrap(ErrMissingInput, "club table has no usable rows")
	}
	r.Clubs = clubs
	r.Issues = append(r.Issues, issues...)

	r.Students, issues = ParseStudents(studentRows, opts.StudentHeader)
	r.Issues = append(r.Issues, issues...)

	if len(opts.Aliases) > 0 {
		t, err := NewAliasTable(r.Clubs, opts.Aliases)
		if err != nil {
			return nil, err
		}
		t.ResolveChoices(r.Students)
	}

	return &r, nil
}
