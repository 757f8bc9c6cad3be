// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clubmatch

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrEmptyName        = errors.New("empty club name")
	ErrNegativeCapacity = errors.New("negative capacity")
	ErrReservedName     = errors.New("club name is reserved")
	ErrDuplicateClub    = errors.New("duplicate club")
)

// ClubErrors collects every problem found by Validate.
type ClubErrors []error

func (e ClubErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks a club list for the defects the allocators tolerate but a
// careful caller may want to reject. Use errors.Cause on an element to get
// the sentinel.
func Validate(clubs []Club) error {
	var errs ClubErrors
	seen := make(map[string]int, len(clubs))

	for i, c := range clubs {
		at := fmt.Sprintf("club %d", i+1)
		switch {
		case c.Name == "":
			errs = append(errs, errors.Wrap(ErrEmptyName, at))
			continue
		case c.Name == Remainder:
			errs = append(errs, errors.Wrapf(ErrReservedName, "%s %q", at, c.Name))
		}
		if c.Capacity < 0 {
			errs = append(errs, errors.Wrapf(ErrNegativeCapacity, "%s %q: %d", at, c.Name, c.Capacity))
		}
		if first, ok := seen[c.Name]; ok {
			errs = append(errs, errors.Wrapf(ErrDuplicateClub, "%s %q, first defined as club %d", at, c.Name, first))
		} else {
			seen[c.Name] = i + 1
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
