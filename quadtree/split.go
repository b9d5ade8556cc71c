// Copyright 2023 The quadbox (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package quadtree

import (
	"math"
	"sort"
)

// Split picks a centroid for a batch of boxes and assigns every box in
// the batch to the quadrant of the centroid it belongs in, so that
// assignment[i] == Classify(centroid, boxes[i]).
//
// The centroid is the coordinate-wise median of the batch: the median
// XMin, the median XMax, the median YMin and the median YMax, each
// computed independently. For an even number of boxes, the median of a
// coordinate is the mean of its two middle values.
//
// Split produces a single level of partitioning and never recurses. It
// does not guarantee progress: a batch of identical boxes, for
// example, is assigned entirely to quadrant 0. Panics if boxes is
// empty.
func Split(boxes []Box) (centroid Box, assignment []Quadrant) {
	if len(boxes) == 0 {
		textPanic("empty batch cannot be split")
	}

	coords := make([]float32, len(boxes))
	median := func(get func(*Box) float32) float32 {
		for i := range boxes {
			coords[i] = get(&boxes[i])
		}
		return medianOf(coords)
	}
	centroid = Box{
		XMin: median(func(b *Box) float32 { return b.XMin }),
		XMax: median(func(b *Box) float32 { return b.XMax }),
		YMin: median(func(b *Box) float32 { return b.YMin }),
		YMax: median(func(b *Box) float32 { return b.YMax }),
	}

	assignment = make([]Quadrant, len(boxes))
	for i := range boxes {
		assignment[i] = Classify(centroid, boxes[i])
	}
	return
}

// medianOf sorts a non-empty slice in place and returns its median.
func medianOf(v []float32) float32 {
	sort.Slice(v, func(i, j int) bool { return v[i] < v[j] })
	n := len(v)
	if n%2 == 1 {
		return v[n/2]
	}
	a, b := v[n/2-1], v[n/2]
	if a == b || math.IsInf(float64(a), 0) || math.IsInf(float64(b), 0) {
		// Averaging an infinite value is either infinite or NaN, and a
		// NaN centroid would make every comparison false.
		return a
	}
	return float32((float64(a) + float64(b)) / 2)
}
