// Copyright 2023 The quadbox (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package quadtree

import (
	"math"
	"strconv"
	"strings"
)

// An Interval is a closed range [Lo, Hi] of coordinate values.
type Interval struct {
	Lo float32
	Hi float32
}

func (i Interval) contains(v float32) bool {
	return i.Lo <= v && v <= i.Hi
}

// within reports whether i is a subset of j.
func (i Interval) within(j Interval) bool {
	return j.Lo <= i.Lo && i.Hi <= j.Hi
}

// raise returns i with its lower bound raised to v, unless it is
// already at least v.
func (i Interval) raise(v float32) Interval {
	if v > i.Lo {
		i.Lo = v
	}
	return i
}

// lower returns i with its upper bound lowered to v, unless it is
// already at most v.
func (i Interval) lower(v float32) Interval {
	if v < i.Hi {
		i.Hi = v
	}
	return i
}

// An Envelope is the feasible range of each of the four coordinates of
// any box stored in a subtree.
//
// The XMin and YMin intervals together bound the lower-left corner of
// reachable boxes; the XMax and YMax intervals bound the upper-right
// corner.
//
// Envelopes are values. Narrow returns a new Envelope and never
// modifies its input, so an Envelope can be freely handed from a parent
// to each of its children.
type Envelope struct {
	XMin Interval
	XMax Interval
	YMin Interval
	YMax Interval
}

var unbounded = Interval{Lo: float32(math.Inf(-1)), Hi: float32(math.Inf(1))}

// RootEnvelope returns the envelope of the root node, which places no
// constraint on any coordinate.
func RootEnvelope() Envelope {
	return Envelope{XMin: unbounded, XMax: unbounded, YMin: unbounded, YMax: unbounded}
}

// Narrow returns the envelope of child q of a node with centroid c,
// given the node's own envelope e.
//
// For each coordinate, exactly one side of its interval is tightened
// to the centroid's value: the lower side when q's bit for the
// coordinate is set (the coordinate is greater than the centroid's),
// the upper side when it is clear. A bound is never loosened, so the
// result is always a subset of e.
func Narrow(e Envelope, c Box, q Quadrant) Envelope {
	if q&bitXMin != 0 {
		e.XMin = e.XMin.raise(c.XMin)
	} else {
		e.XMin = e.XMin.lower(c.XMin)
	}
	if q&bitXMax != 0 {
		e.XMax = e.XMax.raise(c.XMax)
	} else {
		e.XMax = e.XMax.lower(c.XMax)
	}
	if q&bitYMin != 0 {
		e.YMin = e.YMin.raise(c.YMin)
	} else {
		e.YMin = e.YMin.lower(c.YMin)
	}
	if q&bitYMax != 0 {
		e.YMax = e.YMax.raise(c.YMax)
	} else {
		e.YMax = e.YMax.lower(c.YMax)
	}
	return e
}

// Contains reports whether all four coordinates of b fall inside e.
// The empty box is contained in no envelope.
func (e Envelope) Contains(b Box) bool {
	return !b.IsEmpty() &&
		e.XMin.contains(b.XMin) &&
		e.XMax.contains(b.XMax) &&
		e.YMin.contains(b.YMin) &&
		e.YMax.contains(b.YMax)
}

// Within reports whether e is a subset of f.
func (e Envelope) Within(f Envelope) bool {
	return e.XMin.within(f.XMin) &&
		e.XMax.within(f.XMax) &&
		e.YMin.within(f.YMin) &&
		e.YMax.within(f.YMax)
}

// String returns a compact description of the envelope.
func (e Envelope) String() string {
	var s strings.Builder
	s.WriteString("Envelope{")
	stringInterval(&s, "XMin", e.XMin)
	stringInterval(&s, ",XMax", e.XMax)
	stringInterval(&s, ",YMin", e.YMin)
	stringInterval(&s, ",YMax", e.YMax)
	s.WriteByte('}')
	return s.String()
}

func stringInterval(s *strings.Builder, key string, i Interval) {
	s.WriteString(key)
	s.WriteString(":[")
	s.WriteString(strconv.FormatFloat(float64(i.Lo), 'g', -1, 32))
	s.WriteByte(',')
	s.WriteString(strconv.FormatFloat(float64(i.Hi), 'g', -1, 32))
	s.WriteByte(']')
}
