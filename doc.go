// Copyright 2023 The quadbox (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package quadbox provides Index, a concurrent spatial index of
// geometries keyed by caller-supplied IDs and backed by the
// quadrant-partitioning tree of package quadtree.
//
// Each geometry is reduced to a 32-bit bounding box by a Compressor
// supplied when the Index is created. Queries name one of the twelve
// quadtree strategies and a query geometry, and return the IDs of the
// stored geometries whose boxes stand in that relation to the query
// box. Matches flagged for recheck are only known to hold at reduced
// precision and should be confirmed against the source geometries.
//
// Mutations are serialized, and each one publishes a new immutable
// tree version. Queries never block and always see a consistent
// version.
package quadbox
