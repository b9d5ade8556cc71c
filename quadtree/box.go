// Copyright 2023 The quadbox (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package quadtree

import (
	"math"
	"strconv"
	"strings"
)

// boxFlags records the special states a Box can be in.
type boxFlags uint8

const (
	// flagEmpty marks a box that takes part in no spatial relation.
	flagEmpty boxFlags = 1 << iota
	// flagUnbounded marks a box derived from non-finite source bounds.
	flagUnbounded
	// flagLossy marks a box whose bounds were widened when they were
	// projected to 32-bit precision.
	flagLossy
)

// Box is an axis-aligned bounding box stored at 32-bit precision.
//
// The invariants XMin <= XMax and YMin <= YMax hold for every Box
// constructed by NewBox. A box whose minimum and maximum are equal in
// both dimensions is a legal point box.
//
// The zero value is the point box at the origin, which is NOT the same
// thing as EmptyBox.
type Box struct {
	XMin  float32
	XMax  float32
	YMin  float32
	YMax  float32
	flags boxFlags
}

var (
	// EmptyBox is the box of an empty geometry. It matches nothing,
	// not even itself, under every Strategy.
	EmptyBox = Box{flags: flagEmpty}

	// UnboundedBox is the sentinel for a box with at least one
	// infinite or NaN bound. Its bounds are infinite so that every
	// comparison against it is well defined. Searches for it are never
	// pruned, and matches involving it always need a recheck.
	UnboundedBox = Box{
		XMin:  float32(math.Inf(-1)),
		XMax:  float32(math.Inf(1)),
		YMin:  float32(math.Inf(-1)),
		YMax:  float32(math.Inf(1)),
		flags: flagUnbounded | flagLossy,
	}
)

// NewBox projects a box given by 64-bit bounds to a 32-bit Box.
//
// Bounds are rounded outward: XMin and YMin toward negative infinity,
// XMax and YMax toward positive infinity, so the returned box always
// contains the input box. If any bound changed in the process, the
// returned box is Lossy. Reversed bounds are swapped. If any bound is
// infinite or NaN, the result is UnboundedBox.
//
// NewBox is a pure function: projecting the same bounds twice yields
// identical boxes.
func NewBox(xmin, xmax, ymin, ymax float64) Box {
	if !finite(xmin) || !finite(xmax) || !finite(ymin) || !finite(ymax) {
		return UnboundedBox
	}
	if xmin > xmax {
		xmin, xmax = xmax, xmin
	}
	if ymin > ymax {
		ymin, ymax = ymax, ymin
	}
	b := Box{
		XMin: roundDown(xmin),
		XMax: roundUp(xmax),
		YMin: roundDown(ymin),
		YMax: roundUp(ymax),
	}
	if float64(b.XMin) != xmin || float64(b.XMax) != xmax || float64(b.YMin) != ymin || float64(b.YMax) != ymax {
		b.flags |= flagLossy
	}
	return b
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// roundDown returns the largest float32 which is not greater than v.
func roundDown(v float64) float32 {
	if v > math.MaxFloat32 {
		return math.MaxFloat32
	} else if v < -math.MaxFloat32 {
		return float32(math.Inf(-1))
	}
	f := float32(v)
	if float64(f) > v {
		f = math.Nextafter32(f, float32(math.Inf(-1)))
	}
	return f
}

// roundUp returns the smallest float32 which is not less than v.
func roundUp(v float64) float32 {
	if v > math.MaxFloat32 {
		return float32(math.Inf(1))
	} else if v < -math.MaxFloat32 {
		return -math.MaxFloat32
	}
	f := float32(v)
	if float64(f) < v {
		f = math.Nextafter32(f, float32(math.Inf(1)))
	}
	return f
}

// IsEmpty reports whether b is the empty box.
func (b Box) IsEmpty() bool {
	return b.flags&flagEmpty != 0
}

// IsUnbounded reports whether b is the unbounded sentinel.
func (b Box) IsUnbounded() bool {
	return b.flags&flagUnbounded != 0
}

// Lossy reports whether b may be larger than the source bounds it was
// projected from. Relations computed against a lossy box are exact at
// 32-bit precision only and should be rechecked against the source
// geometry.
func (b Box) Lossy() bool {
	return b.flags&flagLossy != 0
}

// Width returns the width of the box. The width of the empty box is
// zero.
func (b Box) Width() float64 {
	if b.IsEmpty() {
		return 0
	}
	return float64(b.XMax) - float64(b.XMin)
}

// Height returns the height of the box. The height of the empty box is
// zero.
func (b Box) Height() float64 {
	if b.IsEmpty() {
		return 0
	}
	return float64(b.YMax) - float64(b.YMin)
}

// Expand returns b grown by distance d on every side, rounded outward.
// The empty and unbounded boxes are returned unchanged. Panics if d is
// negative, infinite or NaN.
func (b Box) Expand(d float64) Box {
	if d < 0 || !finite(d) {
		fmtPanic("invalid expansion distance %v", d)
	}
	if b.IsEmpty() || b.IsUnbounded() {
		return b
	}
	c := NewBox(float64(b.XMin)-d, float64(b.XMax)+d, float64(b.YMin)-d, float64(b.YMax)+d)
	c.flags |= b.flags & flagLossy
	return c
}

// String returns a compact description of the box in the form
// [XMin,XMax,YMin,YMax].
func (b Box) String() string {
	if b.IsEmpty() {
		return "[EMPTY]"
	} else if b.IsUnbounded() {
		return "[UNBOUNDED]"
	}
	var s strings.Builder
	s.WriteByte('[')
	s.WriteString(strconv.FormatFloat(float64(b.XMin), 'g', -1, 32))
	s.WriteByte(',')
	s.WriteString(strconv.FormatFloat(float64(b.XMax), 'g', -1, 32))
	s.WriteByte(',')
	s.WriteString(strconv.FormatFloat(float64(b.YMin), 'g', -1, 32))
	s.WriteByte(',')
	s.WriteString(strconv.FormatFloat(float64(b.YMax), 'g', -1, 32))
	s.WriteByte(']')
	return s.String()
}
