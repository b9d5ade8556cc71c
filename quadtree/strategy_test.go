// Copyright 2023 The quadbox (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package quadtree

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrategy_String(t *testing.T) {
	testCases := []struct {
		input    Strategy
		expected string
	}{
		{0, "Strategy(0)"},
		{Left, "Left"},
		{Overlap, "Overlap"},
		{Same, "Same"},
		{ContainedBy, "ContainedBy"},
		{OverAbove, "OverAbove"},
		{13, "Strategy(13)"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.expected, func(t *testing.T) {
			assert.Equal(t, testCase.expected, testCase.input.String())
			assert.Equal(t, testCase.input >= Left && testCase.input <= OverAbove, testCase.input.Valid())
		})
	}
}

func TestStrategies(t *testing.T) {
	s := Strategies()

	require.Len(t, s, 12)
	assert.Equal(t, Left, s[0])
	assert.Equal(t, OverAbove, s[11])
	for i := range s {
		assert.Equal(t, Strategy(i+1), s[i])
	}
}

func TestParseStrategy(t *testing.T) {
	t.Run("Names", func(t *testing.T) {
		for _, s := range Strategies() {
			actual, err := ParseStrategy(s.String())

			require.NoError(t, err)
			assert.Equal(t, s, actual)
		}
	})

	t.Run("CaseInsensitive", func(t *testing.T) {
		actual, err := ParseStrategy("containedby")

		require.NoError(t, err)
		assert.Equal(t, ContainedBy, actual)
	})

	t.Run("Equals", func(t *testing.T) {
		actual, err := ParseStrategy("EQUALS")

		require.NoError(t, err)
		assert.Equal(t, Same, actual)
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := ParseStrategy("nope")

		assert.EqualError(t, err, `quadtree: unknown strategy name "nope"`)
	})
}

func TestStrategy_Matches(t *testing.T) {
	testCases := []struct {
		name     string
		s        Strategy
		q, c     Box
		expected bool
	}{
		{"Left", Left, box(10, 12, 0, 1), box(0, 5, 0, 1), true},
		{"Left.Touching", Left, box(10, 12, 0, 1), box(0, 10, 0, 1), false},
		{"OverLeft", OverLeft, box(10, 12, 0, 1), box(0, 12, 0, 1), true},
		{"OverLeft.Beyond", OverLeft, box(10, 12, 0, 1), box(0, 13, 0, 1), false},
		{"Overlap", Overlap, box(2, 3, 2, 3), box(1, 5, 1, 5), true},
		{"Overlap.Touching", Overlap, box(0, 1, 0, 1), box(1, 2, 1, 2), true},
		{"Overlap.Disjoint", Overlap, box(2, 3, 2, 3), box(0, 1, 0, 1), false},
		{"OverRight", OverRight, box(1, 5, 0, 1), box(1, 2, 0, 1), true},
		{"OverRight.Beyond", OverRight, box(1, 5, 0, 1), box(0, 2, 0, 1), false},
		{"Right", Right, box(0, 1, 0, 1), box(2, 3, 0, 1), true},
		{"Right.Touching", Right, box(0, 1, 0, 1), box(1, 3, 0, 1), false},
		{"Same", Same, box(1, 2, 3, 4), box(1, 2, 3, 4), true},
		{"Same.Different", Same, box(1, 2, 3, 4), box(1, 2, 3, 5), false},
		{"Same.Point", Same, Box{}, Box{}, true},
		{"Contains", Contains, box(1, 2, 1, 2), box(0, 3, 0, 3), true},
		{"Contains.Equal", Contains, box(1, 2, 1, 2), box(1, 2, 1, 2), true},
		{"Contains.Partial", Contains, box(1, 2, 1, 2), box(0, 1.5, 0, 3), false},
		{"ContainedBy", ContainedBy, box(0, 3, 0, 3), box(1, 2, 1, 2), true},
		{"ContainedBy.Partial", ContainedBy, box(0, 3, 0, 3), box(1, 4, 1, 2), false},
		{"OverBelow", OverBelow, box(0, 1, 0, 12), box(0, 1, 0, 12), true},
		{"OverBelow.Beyond", OverBelow, box(0, 1, 0, 12), box(0, 1, 0, 13), false},
		{"Below", Below, box(0, 1, 10, 12), box(0, 1, 0, 5), true},
		{"Below.Touching", Below, box(0, 1, 10, 12), box(0, 1, 0, 10), false},
		{"Above", Above, box(0, 1, 0, 1), box(0, 1, 2, 3), true},
		{"Above.Touching", Above, box(0, 1, 0, 1), box(0, 1, 1, 3), false},
		{"OverAbove", OverAbove, box(0, 1, 1, 5), box(0, 1, 1, 2), true},
		{"OverAbove.Beyond", OverAbove, box(0, 1, 1, 5), box(0, 1, 0, 2), false},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			actual := testCase.s.Matches(testCase.q, testCase.c)

			assert.Equal(t, testCase.expected, actual)
		})
	}
}

func TestStrategy_Empty(t *testing.T) {
	for _, s := range Strategies() {
		t.Run(s.String(), func(t *testing.T) {
			assert.False(t, s.Matches(box(0, 1, 0, 1), EmptyBox))
			assert.False(t, s.Matches(EmptyBox, box(0, 1, 0, 1)))
			assert.False(t, s.Matches(EmptyBox, EmptyBox))
			assert.False(t, s.Possible(RootEnvelope(), EmptyBox))
			assert.True(t, s.Possible(Envelope{}, UnboundedBox))
		})
	}
}

func TestStrategy_Unknown(t *testing.T) {
	for _, s := range []Strategy{0, 13, 255} {
		t.Run(s.String(), func(t *testing.T) {
			expected := "quadtree: unknown strategy code " + strconv.Itoa(int(s))

			assert.PanicsWithValue(t, expected, func() { s.Matches(Box{}, Box{}) })
			assert.PanicsWithValue(t, expected, func() { s.Possible(RootEnvelope(), Box{}) })
		})
	}
}

// TestStrategy_PossibleSound checks that whenever a box whose
// coordinates lie inside an envelope matches a query, the existence
// form admits the envelope.
func TestStrategy_PossibleSound(t *testing.T) {
	rnd := rand.New(rand.NewSource(0))
	interval := func() Interval {
		a, b := float32(rnd.Intn(11)), float32(rnd.Intn(11))
		if a > b {
			a, b = b, a
		}
		return Interval{a, b}
	}
	pick := func(i Interval) float32 {
		return i.Lo + float32(rnd.Intn(int(i.Hi-i.Lo)+1))
	}

	for i := 0; i < 5000; i++ {
		e := Envelope{XMin: interval(), XMax: interval(), YMin: interval(), YMax: interval()}
		q := randomBox(rnd)
		for j := 0; j < 8; j++ {
			c := box(pick(e.XMin), pick(e.XMax), pick(e.YMin), pick(e.YMax))
			for _, s := range Strategies() {
				if s.Matches(q, c) {
					assert.True(t, s.Possible(e, q), "%s: %s matches %s but %s was pruned", s, c, q, e)
				}
			}
		}
	}
}

func TestStrategy_PossibleTight(t *testing.T) {
	e := Envelope{
		XMin: Interval{0, 1},
		XMax: Interval{1, 2},
		YMin: Interval{0, 1},
		YMax: Interval{1, 2},
	}

	testCases := []struct {
		s        Strategy
		q        Box
		expected bool
	}{
		{Left, box(1.5, 5, 0, 5), true},
		{Left, box(1, 5, 0, 5), false},
		{Right, box(0, 1, 0, 5), false},
		{Right, box(0, 0.5, 0, 5), true},
		{Overlap, box(3, 4, 3, 4), false},
		{Overlap, box(2, 4, 2, 4), true},
		{Same, box(0, 1, 0, 1), true},
		{Same, box(0, 3, 0, 1), false},
		{Contains, box(-1, 1, 0, 1), false},
		{ContainedBy, box(2, 3, 0, 5), false},
		{Below, box(0, 1, 1, 2), false},
		{Above, box(0, 1, 0, 0.5), true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.s.String(), func(t *testing.T) {
			assert.Equal(t, testCase.expected, testCase.s.Possible(e, testCase.q))
		})
	}
}
