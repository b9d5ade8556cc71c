// Copyright 2023 The quadbox (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package quadtree provides a 16-way quadrant-partitioning search tree
// over axis-aligned bounding boxes, and the twelve spatial relations
// (overlap, containment, equality and the directional relations) that
// can be searched for in it.
//
// Each box is treated as a point (XMin, XMax, YMin, YMax) in four
// dimensional space. Every internal node of the tree holds a centroid
// box, and each of its up to 16 children holds the boxes whose four
// coordinates compare the same way against the centroid (see
// Classify). During a search, the tree tracks the range of values each
// coordinate can still take below the current node (see Envelope) and
// prunes every child whose range cannot satisfy the relation.
//
// Boxes are stored at 32-bit precision. Bounds projected down from
// 64-bit source data are rounded outward, so a stored box never claims
// less area than its source, and every search Match reports whether
// that projection may have introduced slack.
package quadtree
