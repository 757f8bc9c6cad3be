// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clubmatch

import (
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeStudent(name string, choices ...string) Student {
	return Student{FirstName: name, LastName: "L" + name, Grade: "9", Choices: choices}
}

func names(seats []Seat) []string {
	out := make([]string, len(seats))
	for i, s := range seats {
		out[i] = s.Student.FirstName
	}
	return out
}

func allocators() map[string]Allocator {
	return map[string]Allocator{
		"RankFirst":  RankFirstAllocator(zerolog.Nop()),
		"Popularity": PopularityAllocator(zerolog.Nop()),
	}
}

// checkPartition asserts every student sits in exactly one bucket and no
// club is over capacity.
func checkPartition(t *testing.T, clubs []Club, students []Student, a Assignment) {
	t.Helper()

	seen := make(map[int]string, len(students))
	for club, seats := range a {
		for _, s := range seats {
			if prev, ok := seen[s.Index]; ok {
				t.Errorf("student %d in both %q and %q", s.Index, prev, club)
			}
			seen[s.Index] = club
			assert.Same(t, &students[s.Index], s.Student)
		}
	}
	assert.Len(t, seen, len(students))

	capacity := map[string]int{}
	for _, c := range clubs {
		capacity[c.Name] = c.Capacity
	}
	for _, c := range clubs {
		assert.LessOrEqual(t, len(a[c.Name]), maxInt(capacity[c.Name], 0), "club %q over capacity", c.Name)
	}
}

func TestRankFirstAllocator_Scenarios(t *testing.T) {
	m := RankFirstAllocator(zerolog.Nop())

	t.Run("ChessAndArt", func(t *testing.T) {
		clubs := []Club{{"Chess", 1}, {"Art", 1}}
		students := []Student{
			makeStudent("S1", "Chess", "Art"),
			makeStudent("S2", "Chess"),
		}

		a := m.Allocate(clubs, students)

		assert.Equal(t, []string{"S1"}, names(a["Chess"]))
		assert.Empty(t, a["Art"])
		assert.Equal(t, []string{"S2"}, names(a[Remainder]))
		assert.Equal(t, 1, a["Chess"][0].Rank)
		assert.Equal(t, 0, a[Remainder][0].Rank)
	})

	t.Run("ZeroCapacity", func(t *testing.T) {
		clubs := []Club{{"Robotics", 0}, {"Drama", 2}}
		students := []Student{
			makeStudent("S1", "Robotics", "Robotics", "Robotics"),
			makeStudent("S2", "Robotics", "Drama"),
		}

		a := m.Allocate(clubs, students)

		require.Contains(t, a, "Robotics")
		assert.Empty(t, a["Robotics"])
		assert.Equal(t, []string{"S2"}, names(a["Drama"]))
		assert.Equal(t, 2, a["Drama"][0].Rank)
		assert.Equal(t, []string{"S1"}, names(a[Remainder]))
	})

	t.Run("UnknownChoices", func(t *testing.T) {
		clubs := []Club{{"Chess", 5}}
		students := []Student{
			makeStudent("S1", "Knitting", "Rowing", "Fencing"),
			makeStudent("S2", "", "", ""),
			makeStudent("S3"),
		}

		a := m.Allocate(clubs, students)

		assert.Empty(t, a["Chess"])
		assert.Equal(t, []string{"S1", "S2", "S3"}, names(a[Remainder]))
	})

	t.Run("InputOrderTieBreak", func(t *testing.T) {
		clubs := []Club{{"Chess", 1}, {"Art", 1}}
		students := []Student{
			makeStudent("S1", "Chess", "Art"),
			makeStudent("S2", "Chess", "Art"),
			makeStudent("S3", "Chess", "Art"),
		}

		a := m.Allocate(clubs, students)

		assert.Equal(t, []string{"S1"}, names(a["Chess"]))
		assert.Equal(t, []string{"S2"}, names(a["Art"]))
		assert.Equal(t, []string{"S3"}, names(a[Remainder]))
	})

	t.Run("FirstChoicesBeforeSecond", func(t *testing.T) {
		// S1 appears first but only wants Art second; S2's first choice wins.
		clubs := []Club{{"Chess", 1}, {"Art", 1}}
		students := []Student{
			makeStudent("S1", "Chess", "Art"),
			makeStudent("S2", "Chess"),
			makeStudent("S3", "Art"),
		}

		a := m.Allocate(clubs, students)

		assert.Equal(t, []string{"S1"}, names(a["Chess"]))
		assert.Equal(t, []string{"S3"}, names(a["Art"]))
		assert.Equal(t, []string{"S2"}, names(a[Remainder]))
	})

	t.Run("BlankFirstChoiceKeepsRanks", func(t *testing.T) {
		clubs := []Club{{"Chess", 1}}
		students := []Student{
			makeStudent("S1", "", "Chess"),
			makeStudent("S2", "Chess"),
		}

		a := m.Allocate(clubs, students)

		assert.Equal(t, []string{"S2"}, names(a["Chess"]))
		assert.Equal(t, []string{"S1"}, names(a[Remainder]))
	})

	t.Run("ExtraChoicesIgnored", func(t *testing.T) {
		clubs := []Club{{"Chess", 1}, {"Art", 1}}
		students := []Student{
			makeStudent("S1", "X", "Y", "Z", "Art"),
		}

		a := m.Allocate(clubs, students)

		assert.Empty(t, a["Art"])
		assert.Equal(t, []string{"S1"}, names(a[Remainder]))
	})

	t.Run("AcceptanceOrder", func(t *testing.T) {
		clubs := []Club{{"Chess", 3}}
		students := []Student{
			makeStudent("S1", "Art", "Chess"),
			makeStudent("S2", "Chess"),
			makeStudent("S3", "Chess"),
		}

		a := m.Allocate(clubs, students)

		// S1 is accepted in the second round, after S2 and S3.
		assert.Equal(t, []string{"S2", "S3", "S1"}, names(a["Chess"]))
	})
}

func TestPopularityAllocator_Scenarios(t *testing.T) {
	m := PopularityAllocator(zerolog.Nop())

	t.Run("LeastPopularFilledFirst", func(t *testing.T) {
		clubs := []Club{{"X", 1}, {"Y", 1}}
		students := []Student{
			makeStudent("S1", "Y", "X"),
			makeStudent("S2", "Y"),
			makeStudent("S3", "Y"),
		}

		a := m.Allocate(clubs, students)

		// X has one vote so it is filled first, with S1's second choice.
		assert.Equal(t, []string{"S1"}, names(a["X"]))
		assert.Equal(t, []string{"S2"}, names(a["Y"]))
		assert.Equal(t, []string{"S3"}, names(a[Remainder]))
		assert.Equal(t, 2, a["X"][0].Rank)

		// The canonical policy gives S1 the first choice instead.
		b := RankFirstAllocator(zerolog.Nop()).Allocate(clubs, students)
		assert.Equal(t, []string{"S1"}, names(b["Y"]))
		assert.Empty(t, b["X"])
		assert.Equal(t, []string{"S2", "S3"}, names(b[Remainder]))
	})

	t.Run("VoteTiesKeepClubOrder", func(t *testing.T) {
		clubs := []Club{{"A", 1}, {"B", 1}}
		students := []Student{
			makeStudent("S1", "B", "A"),
			makeStudent("S2", "A", "B"),
		}

		a := m.Allocate(clubs, students)

		// A is filled first and S2 wants it first.
		assert.Equal(t, []string{"S2"}, names(a["A"]))
		assert.Equal(t, []string{"S1"}, names(a["B"]))
		assert.Empty(t, a[Remainder])
	})

	t.Run("UnknownVotesNotCounted", func(t *testing.T) {
		clubs := []Club{{"A", 1}, {"B", 1}}
		students := []Student{
			makeStudent("S1", "Nope", "B"),
			makeStudent("S2", "A", "Nope", "Nope"),
		}

		a := m.Allocate(clubs, students)

		assert.Equal(t, []string{"S2"}, names(a["A"]))
		assert.Equal(t, []string{"S1"}, names(a["B"]))
	})
}

func TestAllocator_EdgeCases(t *testing.T) {
	for name, m := range allocators() {
		t.Run(name+"/DuplicateClubLaterWins", func(t *testing.T) {
			clubs := []Club{{"Chess", 1}, {"Art", 1}, {"Chess", 2}}
			students := []Student{
				makeStudent("S1", "Chess"),
				makeStudent("S2", "Chess"),
				makeStudent("S3", "Chess"),
			}

			a := m.Allocate(clubs, students)

			assert.Len(t, a, 3)
			assert.Equal(t, []string{"S1", "S2"}, names(a["Chess"]))
			assert.Equal(t, []string{"S3"}, names(a[Remainder]))
		})

		t.Run(name+"/ReservedNameIgnored", func(t *testing.T) {
			clubs := []Club{{Remainder, 10}, {"Chess", 1}}
			students := []Student{
				makeStudent("S1", Remainder, "Chess"),
			}

			a := m.Allocate(clubs, students)

			assert.Equal(t, []string{"S1"}, names(a["Chess"]))
			assert.Empty(t, a[Remainder])
		})

		t.Run(name+"/NegativeCapacity", func(t *testing.T) {
			clubs := []Club{{"Chess", -3}}
			students := []Student{makeStudent("S1", "Chess")}

			a := m.Allocate(clubs, students)

			assert.Empty(t, a["Chess"])
			assert.Equal(t, []string{"S1"}, names(a[Remainder]))
		})

		t.Run(name+"/NoStudents", func(t *testing.T) {
			a := m.Allocate([]Club{{"Chess", 1}}, nil)

			assert.Equal(t, Assignment{"Chess": {}, Remainder: {}}, a)
		})

		t.Run(name+"/NoClubs", func(t *testing.T) {
			students := []Student{makeStudent("S1", "Chess")}

			a := m.Allocate(nil, students)

			assert.Len(t, a, 1)
			assert.Equal(t, []string{"S1"}, names(a[Remainder]))
		})

		t.Run(name+"/InputsUntouched", func(t *testing.T) {
			clubs := []Club{{"Chess", 1}}
			students := []Student{makeStudent("S1", "Chess"), makeStudent("S2", "Chess")}

			m.Allocate(clubs, students)

			assert.Equal(t, []Club{{"Chess", 1}}, clubs)
			assert.Equal(t, []string{"Chess"}, students[1].Choices)
		})
	}
}

// fixture builds a deterministic, crowded roster: more students than seats
// and a mix of valid, unknown and blank choices.
func fixture() ([]Club, []Student) {
	clubs := []Club{
		{"Chess", 3}, {"Art", 2}, {"Drama", 4}, {"Robotics", 0}, {"Choir", 5}, {"Debate", 1},
	}
	pool := []string{"Chess", "Art", "Drama", "Robotics", "Choir", "Debate", "Knitting", ""}

	var students []Student
	for i := 0; i < 40; i++ {
		students = append(students, makeStudent(fmt.Sprintf("S%02d", i),
			pool[(i*7)%len(pool)], pool[(i*3+1)%len(pool)], pool[(i*5+2)%len(pool)]))
	}
	return clubs, students
}

func TestAllocator_Invariants(t *testing.T) {
	for name, m := range allocators() {
		t.Run(name+"/Partition", func(t *testing.T) {
			clubs, students := fixture()
			a := m.Allocate(clubs, students)
			checkPartition(t, clubs, students, a)
		})

		t.Run(name+"/Determinism", func(t *testing.T) {
			clubs, students := fixture()
			a := m.Allocate(clubs, students)
			for i := 0; i < 5; i++ {
				assert.Equal(t, a, m.Allocate(clubs, students))
			}
		})
	}

	t.Run("RankFirst/RankPriority", func(t *testing.T) {
		clubs, students := fixture()
		a := RankFirstAllocator(zerolog.Nop()).Allocate(clubs, students)

		// Replay first choices in input order: whoever found a free seat
		// must have got it with rank 1.
		left := map[string]int{}
		for _, c := range clubs {
			left[c.Name] = c.Capacity
		}
		for i := range students {
			first := students[i].Choice(1)
			if left[first] <= 0 {
				continue
			}
			left[first]--

			club, seat, ok := a.Lookup(i)
			require.True(t, ok)
			assert.Equal(t, first, club, "student %d", i)
			assert.Equal(t, 1, seat.Rank, "student %d", i)
		}
	})
}
