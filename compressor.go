// Copyright 2023 The quadbox (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package quadbox

import (
	"github.com/gogama/quadbox/flat"
	"github.com/gogama/quadbox/quadtree"
)

// A Compressor reduces a geometry of type G to the bounding box stored
// in, and queried against, an Index.
//
// Compress must return quadtree.EmptyBox for an empty geometry and a
// box containing the geometry otherwise. Boxes produced by
// quadtree.NewBox satisfy the containment requirement automatically.
//
// A Compressor is called concurrently by queries and must be safe for
// concurrent use.
type Compressor[G any] interface {
	Compress(g G) (quadtree.Box, error)
}

// CompressorFunc adapts an ordinary function to the Compressor
// interface.
type CompressorFunc[G any] func(G) (quadtree.Box, error)

// Compress calls f(g).
func (f CompressorFunc[G]) Compress(g G) (quadtree.Box, error) {
	return f(g)
}

// BoxCompressor is the identity Compressor for indexes whose items are
// already boxes.
var BoxCompressor = CompressorFunc[quadtree.Box](func(b quadtree.Box) (quadtree.Box, error) {
	return b, nil
})

// FlatCompressor compresses a FlatGeobuf Geometry table to the bounds
// of its coordinates, including the coordinates of all its parts.
type FlatCompressor struct{}

// Compress returns the bounds of g. It returns an error if g is nil or
// its buffer is malformed.
func (FlatCompressor) Compress(g *flat.Geometry) (quadtree.Box, error) {
	if g == nil {
		return quadtree.EmptyBox, errNilGeometry
	}
	return g.Bounds()
}
