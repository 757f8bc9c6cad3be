// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package roster

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/someonegg/clubmatch"
)

var (
	ErrUnknownAliasTarget = errors.New("alias for unknown club")
	ErrRepeatedAlias      = errors.New("repeated alias")
)

// AliasTable maps alternative spellings of club names, compared lower case
// and trimmed, onto the canonical names.
type AliasTable struct {
	clubs map[string]bool
	alias map[string]string
}

func NewAliasTable(clubs []clubmatch.Club, aliases map[string][]string) (*AliasTable, error) {
	t := &AliasTable{
		clubs: make(map[string]bool, len(clubs)),
		alias: make(map[string]string),
	}
	for _, c := range clubs {
		t.clubs[c.Name] = true
	}

	for club, as := range aliases {
		if !t.clubs[club] {
			return nil, errors.Wrapf(ErrUnknownAliasTarget, "%q", club)
		}
		for _, a := range as {
			a = unify(a)
			if a == "" {
				continue
			}
			if prev, ok := t.alias[a]; ok && prev != club {
				return nil, errors.Wrapf(ErrRepeatedAlias, "%q for %q and %q", a, prev, club)
			}
			t.alias[a] = club
		}
	}
	return t, nil
}

func unify(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Resolve returns the canonical club for a choice. Exact club names win;
// unknown choices come back unchanged.
func (t *AliasTable) Resolve(choice string) string {
	if choice == "" || t.clubs[choice] {
		return choice
	}
	if c, ok := t.alias[unify(choice)]; ok {
		return c
	}
	return choice
}

// ResolveChoices rewrites every student's choices in place and returns how
// many were changed.
func (t *AliasTable) ResolveChoices(students []clubmatch.Student) int {
	n := 0
	for i := range students {
		for j, c := range students[i].Choices {
			if r := t.Resolve(c); r != c {
				students[i].Choices[j] = r
				n++
			}
		}
	}
	return n
}
