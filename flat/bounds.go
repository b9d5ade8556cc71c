// Copyright 2023 The quadbox (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package flat

import (
	"math"

	"github.com/gogama/quadbox/quadtree"
)

// Bounds returns the bounding box of every XY coordinate in the
// geometry and, recursively, in all of its parts.
//
// A geometry without coordinates has the empty box. A geometry with
// any infinite or NaN coordinate has the unbounded box. Otherwise the
// result is the 64-bit bounds projected outward by quadtree.NewBox.
//
// Bounds returns an error rather than panicking if the underlying
// buffer is malformed.
func (g *Geometry) Bounds() (b quadtree.Box, err error) {
	acc := accumulator{
		xmin: math.Inf(1),
		xmax: math.Inf(-1),
		ymin: math.Inf(1),
		ymax: math.Inf(-1),
	}
	if err = safeFlatBuffersInteraction(func() error {
		g.bounds(&acc)
		return nil
	}); err != nil {
		return
	}
	switch {
	case acc.nonFinite:
		b = quadtree.UnboundedBox
	case acc.n == 0:
		b = quadtree.EmptyBox
	default:
		b = quadtree.NewBox(acc.xmin, acc.xmax, acc.ymin, acc.ymax)
	}
	return
}

type accumulator struct {
	xmin, xmax, ymin, ymax float64
	n                      int
	nonFinite              bool
}

func (acc *accumulator) expand(x, y float64) {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		acc.nonFinite = true
		return
	}
	acc.xmin = math.Min(acc.xmin, x)
	acc.xmax = math.Max(acc.xmax, x)
	acc.ymin = math.Min(acc.ymin, y)
	acc.ymax = math.Max(acc.ymax, y)
	acc.n++
}

func (g *Geometry) bounds(acc *accumulator) {
	n := g.XyLength()
	for i := 0; i+1 < n; i += 2 {
		acc.expand(g.Xy(i+0), g.Xy(i+1))
	}
	n = g.PartsLength()
	for i := 0; i < n; i++ {
		var h Geometry
		if g.Parts(&h, i) {
			h.bounds(acc)
		}
	}
}
