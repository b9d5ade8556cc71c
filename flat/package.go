// Copyright 2023 The quadbox (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package flat provides FlatBuffers accessors for the FlatGeobuf
// Geometry table, enough to read geometries serialized by any
// FlatGeobuf writer and to build new ones.
//
// Only the ends, xy, type, and parts fields of the table are exposed.
// The z, m, t, and tm fields occupy their usual vtable slots but are
// neither read nor written.
package flat
