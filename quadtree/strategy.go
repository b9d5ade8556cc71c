// Copyright 2023 The quadbox (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package quadtree

import (
	"strconv"
	"strings"
)

// A Strategy is a named spatial relation between a candidate box stored
// in the tree and a query box.
//
// Every Strategy has two forms. The exact form, Matches, decides the
// relation for two concrete boxes. The existence form, Possible,
// decides whether any box inside an Envelope could satisfy it, and is
// used to prune subtrees during a search.
//
// The numeric values follow the conventional R-Tree operator strategy
// numbers. The zero value is not a valid Strategy.
type Strategy uint8

const (
	// Left matches candidates strictly left of the query.
	Left Strategy = iota + 1
	// OverLeft matches candidates that do not extend right of the
	// query.
	OverLeft
	// Overlap matches candidates that intersect the query, boundary
	// included.
	Overlap
	// OverRight matches candidates that do not extend left of the
	// query.
	OverRight
	// Right matches candidates strictly right of the query.
	Right
	// Same matches candidates equal to the query.
	Same
	// Contains matches candidates that contain the query.
	Contains
	// ContainedBy matches candidates contained by the query.
	ContainedBy
	// OverBelow matches candidates that do not extend above the query.
	OverBelow
	// Below matches candidates strictly below the query.
	Below
	// Above matches candidates strictly above the query.
	Above
	// OverAbove matches candidates that do not extend below the query.
	OverAbove

	maxStrategy = OverAbove
)

var strategyNames = [...]string{
	Left:        "Left",
	OverLeft:    "OverLeft",
	Overlap:     "Overlap",
	OverRight:   "OverRight",
	Right:       "Right",
	Same:        "Same",
	Contains:    "Contains",
	ContainedBy: "ContainedBy",
	OverBelow:   "OverBelow",
	Below:       "Below",
	Above:       "Above",
	OverAbove:   "OverAbove",
}

// Strategies returns every valid Strategy in ascending numeric order.
func Strategies() []Strategy {
	s := make([]Strategy, 0, maxStrategy)
	for i := Left; i <= maxStrategy; i++ {
		s = append(s, i)
	}
	return s
}

// ParseStrategy returns the Strategy with the given name. Matching is
// case-insensitive, and "Equals" is accepted as an alias for Same.
func ParseStrategy(name string) (Strategy, error) {
	if strings.EqualFold(name, "Equals") {
		return Same, nil
	}
	for i := Left; i <= maxStrategy; i++ {
		if strings.EqualFold(name, strategyNames[i]) {
			return i, nil
		}
	}
	return 0, fmtErr("unknown strategy name %q", name)
}

// Valid reports whether s is one of the twelve named strategies.
func (s Strategy) Valid() bool {
	return Left <= s && s <= maxStrategy
}

// String returns the name of the strategy.
func (s Strategy) String() string {
	if s.Valid() {
		return strategyNames[s]
	}
	return "Strategy(" + strconv.Itoa(int(s)) + ")"
}

func (s Strategy) mustBeValid() {
	if !s.Valid() {
		fmtPanic("unknown strategy code %d", uint8(s))
	}
}

// Possible reports whether any box whose coordinates lie inside e could
// stand in relation s to the query box q.
//
// Possible is a sound over-approximation of Matches: it may return true
// for an envelope that holds no matching box, but never returns false
// if a box inside e matches. Possible is always false for the empty
// query and always true for the unbounded one.
//
// Panics if s is not a valid Strategy.
func (s Strategy) Possible(e Envelope, q Box) bool {
	s.mustBeValid()
	if q.IsEmpty() {
		return false
	} else if q.IsUnbounded() {
		return true
	}
	switch s {
	case Left:
		return e.XMax.Lo < q.XMin
	case OverLeft:
		return e.XMax.Lo <= q.XMax
	case Overlap:
		return e.XMin.Lo <= q.XMax && e.XMax.Hi >= q.XMin &&
			e.YMin.Lo <= q.YMax && e.YMax.Hi >= q.YMin
	case OverRight:
		return e.XMin.Hi >= q.XMin
	case Right:
		return e.XMin.Hi > q.XMax
	case Same:
		return e.XMin.contains(q.XMin) && e.XMax.contains(q.XMax) &&
			e.YMin.contains(q.YMin) && e.YMax.contains(q.YMax)
	case Contains:
		return e.XMin.Lo <= q.XMin && e.XMax.Hi >= q.XMax &&
			e.YMin.Lo <= q.YMin && e.YMax.Hi >= q.YMax
	case ContainedBy:
		return e.XMin.Hi >= q.XMin && e.XMax.Lo <= q.XMax &&
			e.YMin.Hi >= q.YMin && e.YMax.Lo <= q.YMax
	case OverBelow:
		return e.YMax.Lo <= q.YMax
	case Below:
		return e.YMax.Lo < q.YMin
	case Above:
		return e.YMin.Hi > q.YMax
	case OverAbove:
		return e.YMin.Hi >= q.YMin
	default:
		fmtPanic("unknown strategy code %d", uint8(s))
		return false
	}
}

// Matches reports whether candidate box c stands in relation s to the
// query box q. Matches is always false if either box is empty.
//
// The result is exact for the 32-bit boxes given. If either box is
// Lossy, the caller should recheck the result against the source
// geometries.
//
// Panics if s is not a valid Strategy.
func (s Strategy) Matches(q, c Box) bool {
	s.mustBeValid()
	if q.IsEmpty() || c.IsEmpty() {
		return false
	}
	switch s {
	case Left:
		return c.XMax < q.XMin
	case OverLeft:
		return c.XMax <= q.XMax
	case Overlap:
		return q.XMin <= c.XMax && c.XMin <= q.XMax &&
			q.YMin <= c.YMax && c.YMin <= q.YMax
	case OverRight:
		return c.XMin >= q.XMin
	case Right:
		return c.XMin > q.XMax
	case Same:
		return c.XMin == q.XMin && c.XMax == q.XMax &&
			c.YMin == q.YMin && c.YMax == q.YMax
	case Contains:
		return c.XMin <= q.XMin && c.XMax >= q.XMax &&
			c.YMin <= q.YMin && c.YMax >= q.YMax
	case ContainedBy:
		return c.XMin >= q.XMin && c.XMax <= q.XMax &&
			c.YMin >= q.YMin && c.YMax <= q.YMax
	case OverBelow:
		return c.YMax <= q.YMax
	case Below:
		return c.YMax < q.YMin
	case Above:
		return c.YMin > q.YMax
	case OverAbove:
		return c.YMin >= q.YMin
	default:
		fmtPanic("unknown strategy code %d", uint8(s))
		return false
	}
}
