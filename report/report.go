// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report renders club assignments.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/someonegg/clubmatch"
)

var Formats = []string{"text", "table", "csv", "json", "yaml"}

var ErrUnknownFormat = errors.New("unknown report format")

type Member struct {
	FirstName string `json:"first_name" yaml:"first_name"`
	LastName  string `json:"last_name" yaml:"last_name"`
	Grade     string `json:"grade" yaml:"grade"`
	Email     string `json:"email,omitempty" yaml:"email,omitempty"`
	Rank      int    `json:"rank" yaml:"rank"`
}

func (m Member) String() string {
	return fmt.Sprintf("%s %s - Grade %s", m.FirstName, m.LastName, m.Grade)
}

type Bucket struct {
	Club     string   `json:"club" yaml:"club"`
	Capacity *int     `json:"capacity" yaml:"capacity"` // nil for the remainder
	Members  []Member `json:"members" yaml:"members"`
}

// Fill renders as "assigned / capacity".
func (b Bucket) Fill() string {
	capacity := "N/A"
	if b.Capacity != nil {
		capacity = strconv.Itoa(*b.Capacity)
	}
	return fmt.Sprintf("%d / %s", len(b.Members), capacity)
}

type Report struct {
	Buckets []Bucket          `json:"buckets" yaml:"buckets"`
	Summary clubmatch.Summary `json:"summary" yaml:"summary"`
}

// New orders the buckets as the clubs are listed, the remainder last.
func New(clubs []clubmatch.Club, students []clubmatch.Student, a clubmatch.Assignment) *Report {
	r := &Report{Summary: clubmatch.Summarize(clubs, students, a)}

	// A repeated club keeps its first position and its last capacity.
	capacity := make(map[string]int, len(clubs))
	for _, c := range clubs {
		capacity[c.Name] = c.Capacity
	}

	done := make(map[string]bool, len(clubs))
	for _, c := range clubs {
		if done[c.Name] || c.Name == clubmatch.Remainder {
			continue
		}
		if _, ok := a[c.Name]; !ok {
			continue
		}
		done[c.Name] = true
		n := capacity[c.Name]
		r.Buckets = append(r.Buckets, newBucket(c.Name, &n, a[c.Name]))
	}
	r.Buckets = append(r.Buckets, newBucket(clubmatch.Remainder, nil, a[clubmatch.Remainder]))

	return r
}

func newBucket(club string, capacity *int, seats []clubmatch.Seat) Bucket {
	b := Bucket{Club: club, Capacity: capacity, Members: make([]Member, len(seats))}
	for i, s := range seats {
		b.Members[i] = Member{
			FirstName: s.Student.FirstName,
			LastName:  s.Student.LastName,
			Grade:     s.Student.Grade,
			Email:     s.Student.Email,
			Rank:      s.Rank,
		}
	}
	return b
}

// Write renders the report in one of Formats.
func (r *Report) Write(w io.Writer, format string) error {
	switch format {
	case "text", "":
		return r.writeText(w)
	case "table":
		return r.writeTable(w)
	case "csv":
		return r.writeCSV(w)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "   ")
		return enc.Encode(r)
	case "yaml":
		return yaml.NewEncoder(w).Encode(r)
	default:
		return errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
}

func (r *Report) writeText(w io.Writer) error {
	for _, b := range r.Buckets {
		if _, err := fmt.Fprintf(w, "%s (%s)\n", b.Club, b.Fill()); err != nil {
			return err
		}
		for _, m := range b.Members {
			if _, err := fmt.Fprintf(w, "  %s\n", m); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, r.footer())
	return err
}

func (r *Report) writeTable(w io.Writer) error {
	table := tablewriter.NewWriter(w)
	table.Header("Club", "Fill", "Student", "Grade", "Choice")

	for _, b := range r.Buckets {
		if len(b.Members) == 0 {
			if err := table.Append([]string{b.Club, b.Fill(), "", "", ""}); err != nil {
				return err
			}
			continue
		}
		for i, m := range b.Members {
			club, fill := "", ""
			if i == 0 {
				club, fill = b.Club, b.Fill()
			}
			row := []string{club, fill, m.FirstName + " " + m.LastName, m.Grade, rankLabel(m.Rank)}
			if err := table.Append(row); err != nil {
				return err
			}
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintln(w, r.footer())
	return err
}

func (r *Report) writeCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"Club", "Rank", "LastName", "FirstName", "Grade", "Email"})
	for _, b := range r.Buckets {
		for _, m := range b.Members {
			_ = cw.Write([]string{b.Club, strconv.Itoa(m.Rank), m.LastName, m.FirstName, m.Grade, m.Email})
		}
	}
	cw.Flush()
	return cw.Error()
}

func rankLabel(rank int) string {
	if rank <= 0 {
		return "-"
	}
	return humanize.Ordinal(rank)
}

func (r *Report) footer() string {
	s := r.Summary
	out := fmt.Sprintf("%s students, %s seats:", humanize.Comma(int64(s.StudentsCount)), humanize.Comma(int64(s.Seats)))
	for rank := 1; rank <= clubmatch.MaxChoices; rank++ {
		out += fmt.Sprintf(" %d got their %s choice,", s.ByRank[rank], humanize.Ordinal(rank))
	}
	return out + fmt.Sprintf(" %d unassigned, %d seats left", s.Unplaced, s.SeatsLeft)
}
