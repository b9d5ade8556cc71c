// Copyright 2023 The quadbox (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package quadtree

// NumQuadrants is the fan-out of every internal tree node: one child
// per combination of the four coordinate comparisons made by Classify.
const NumQuadrants = 16

// A Quadrant selects one of the 16 children of an internal node.
//
// Each of the four low bits records whether one coordinate of a box is
// strictly greater than the same coordinate of the node's centroid:
//
//	bit 3: XMin
//	bit 2: XMax
//	bit 1: YMin
//	bit 0: YMax
type Quadrant uint8

const (
	bitXMin Quadrant = 1 << (3 - iota)
	bitXMax
	bitYMin
	bitYMax
)

// Classify returns the quadrant of box relative to centroid.
//
// Classify is total and deterministic. Ties compare as "not greater",
// so a coordinate equal to the centroid's always routes to the low
// side.
func Classify(centroid, box Box) Quadrant {
	var q Quadrant
	if box.XMin > centroid.XMin {
		q |= bitXMin
	}
	if box.XMax > centroid.XMax {
		q |= bitXMax
	}
	if box.YMin > centroid.YMin {
		q |= bitYMin
	}
	if box.YMax > centroid.YMax {
		q |= bitYMax
	}
	return q
}
