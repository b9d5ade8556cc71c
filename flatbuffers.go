// Copyright 2023 The quadbox (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package quadbox

import (
	"fmt"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/gogama/quadbox/flat"
	"github.com/gogama/quadbox/quadtree"
	flatbuffers "github.com/google/flatbuffers/go"
)

var errNilGeometry = errors.New(packageName + "nil geometry")

// FlatBufferCompressor compresses a buffer holding a size-prefixed
// root FlatGeobuf Geometry table, as found in the geometry field of a
// serialized feature, to the bounds of its coordinates.
type FlatBufferCompressor struct{}

// Compress returns the bounds of the Geometry table in buf. It returns
// an error if buf is too short for its size prefix, or if the table is
// malformed.
func (FlatBufferCompressor) Compress(buf []byte) (b quadtree.Box, err error) {
	if _, err = tableSize(buf); err != nil {
		return
	}
	var g *flat.Geometry
	if err = safeFlatBuffersInteraction(func() error {
		g = flat.GetSizePrefixedRootAsGeometry(buf, 0)
		return nil
	}); err != nil {
		return
	}
	return FlatCompressor{}.Compress(g)
}

// safeFlatBuffersInteraction runs a function that interacts with
// FlatBuffers, trapping any panic that occurs and converting it to a
// normal Go error.
//
// FlatBuffers' Go code doesn't use standard Go error handling, and
// consequently any invalid attempt to interact with FlatBuffer data
// may trigger a panic.
func safeFlatBuffersInteraction(f func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: flatbuffers: %v", r)
		}
	}()
	err = f()
	return
}

// tableSize returns the size recorded in the prefix of a size-prefixed
// FlatBuffers buffer, checking that the buffer holds that many bytes.
func tableSize(buf []byte) (size uint32, err error) {
	if len(buf) < flatbuffers.SizeUint32 {
		err = errors.Newf(packageName+"FlatBuffers buffer is too short for a size prefix (Len=%d)", len(buf))
		return
	}
	size = flatbuffers.GetUint32(buf)
	if uint64(size) > uint64(len(buf)-flatbuffers.SizeUint32) {
		err = errors.Newf(packageName+"FlatBuffers buffer is smaller than the size prefix (Len=%d, size=%d)", len(buf), size)
	}
	return
}
