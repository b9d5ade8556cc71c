// Copyright 2023 The quadbox (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package flat

import (
	flatbuffers "github.com/google/flatbuffers/go"
)

// Field slots of the Geometry table.
const (
	geometrySlotEnds  = 0
	geometrySlotXy    = 1
	geometrySlotType  = 6
	geometrySlotParts = 7
	geometryNumSlots  = 8
)

// GeometryT is the object form of a Geometry table.
type GeometryT struct {
	Ends  []uint32
	Xy    []float64
	Type  GeometryType
	Parts []*GeometryT
}

// Pack writes t to a builder and returns the offset of the new table.
func (t *GeometryT) Pack(builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	if t == nil {
		return 0
	}
	endsOffset := flatbuffers.UOffsetT(0)
	if t.Ends != nil {
		GeometryStartEndsVector(builder, len(t.Ends))
		for j := len(t.Ends) - 1; j >= 0; j-- {
			builder.PrependUint32(t.Ends[j])
		}
		endsOffset = builder.EndVector(len(t.Ends))
	}
	xyOffset := flatbuffers.UOffsetT(0)
	if t.Xy != nil {
		GeometryStartXyVector(builder, len(t.Xy))
		for j := len(t.Xy) - 1; j >= 0; j-- {
			builder.PrependFloat64(t.Xy[j])
		}
		xyOffset = builder.EndVector(len(t.Xy))
	}
	partsOffset := flatbuffers.UOffsetT(0)
	if t.Parts != nil {
		partsOffsets := make([]flatbuffers.UOffsetT, len(t.Parts))
		for j := range t.Parts {
			partsOffsets[j] = t.Parts[j].Pack(builder)
		}
		GeometryStartPartsVector(builder, len(t.Parts))
		for j := len(partsOffsets) - 1; j >= 0; j-- {
			builder.PrependUOffsetT(partsOffsets[j])
		}
		partsOffset = builder.EndVector(len(t.Parts))
	}
	GeometryStart(builder)
	GeometryAddEnds(builder, endsOffset)
	GeometryAddXy(builder, xyOffset)
	GeometryAddType(builder, t.Type)
	GeometryAddParts(builder, partsOffset)
	return GeometryEnd(builder)
}

// UnPack reads the whole table into its object form.
func (rcv *Geometry) UnPack() *GeometryT {
	if rcv == nil {
		return nil
	}
	t := &GeometryT{Type: rcv.Type()}
	if n := rcv.EndsLength(); n > 0 {
		t.Ends = make([]uint32, n)
		for j := 0; j < n; j++ {
			t.Ends[j] = rcv.Ends(j)
		}
	}
	if n := rcv.XyLength(); n > 0 {
		t.Xy = make([]float64, n)
		for j := 0; j < n; j++ {
			t.Xy[j] = rcv.Xy(j)
		}
	}
	if n := rcv.PartsLength(); n > 0 {
		t.Parts = make([]*GeometryT, n)
		for j := 0; j < n; j++ {
			var x Geometry
			rcv.Parts(&x, j)
			t.Parts[j] = x.UnPack()
		}
	}
	return t
}

// Geometry is a FlatGeobuf Geometry table.
type Geometry struct {
	_tab flatbuffers.Table
}

// GetRootAsGeometry returns the Geometry stored as the root table of
// buf.
func GetRootAsGeometry(buf []byte, offset flatbuffers.UOffsetT) *Geometry {
	n := flatbuffers.GetUOffsetT(buf[offset:])
	x := &Geometry{}
	x.Init(buf, n+offset)
	return x
}

// GetSizePrefixedRootAsGeometry returns the Geometry stored as the
// size-prefixed root table of buf.
func GetSizePrefixedRootAsGeometry(buf []byte, offset flatbuffers.UOffsetT) *Geometry {
	n := flatbuffers.GetUOffsetT(buf[offset+flatbuffers.SizeUint32:])
	x := &Geometry{}
	x.Init(buf, n+offset+flatbuffers.SizeUint32)
	return x
}

func (rcv *Geometry) Init(buf []byte, i flatbuffers.UOffsetT) {
	rcv._tab.Bytes = buf
	rcv._tab.Pos = i
}

func (rcv *Geometry) Table() flatbuffers.Table {
	return rcv._tab
}

func slotOffset(slot int) flatbuffers.VOffsetT {
	return flatbuffers.VOffsetT((flatbuffers.VtableMetadataFields + slot) * flatbuffers.SizeVOffsetT)
}

func (rcv *Geometry) Ends(j int) uint32 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(slotOffset(geometrySlotEnds)))
	if o != 0 {
		a := rcv._tab.Vector(o)
		return rcv._tab.GetUint32(a + flatbuffers.UOffsetT(j*4))
	}
	return 0
}

func (rcv *Geometry) EndsLength() int {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(slotOffset(geometrySlotEnds)))
	if o != 0 {
		return rcv._tab.VectorLen(o)
	}
	return 0
}

func (rcv *Geometry) Xy(j int) float64 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(slotOffset(geometrySlotXy)))
	if o != 0 {
		a := rcv._tab.Vector(o)
		return rcv._tab.GetFloat64(a + flatbuffers.UOffsetT(j*8))
	}
	return 0
}

func (rcv *Geometry) XyLength() int {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(slotOffset(geometrySlotXy)))
	if o != 0 {
		return rcv._tab.VectorLen(o)
	}
	return 0
}

func (rcv *Geometry) Type() GeometryType {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(slotOffset(geometrySlotType)))
	if o != 0 {
		return GeometryType(rcv._tab.GetByte(o + rcv._tab.Pos))
	}
	return 0
}

func (rcv *Geometry) Parts(obj *Geometry, j int) bool {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(slotOffset(geometrySlotParts)))
	if o != 0 {
		x := rcv._tab.Vector(o)
		x += flatbuffers.UOffsetT(j) * 4
		x = rcv._tab.Indirect(x)
		obj.Init(rcv._tab.Bytes, x)
		return true
	}
	return false
}

func (rcv *Geometry) PartsLength() int {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(slotOffset(geometrySlotParts)))
	if o != 0 {
		return rcv._tab.VectorLen(o)
	}
	return 0
}

func GeometryStart(builder *flatbuffers.Builder) {
	builder.StartObject(geometryNumSlots)
}

func GeometryAddEnds(builder *flatbuffers.Builder, ends flatbuffers.UOffsetT) {
	builder.PrependUOffsetTSlot(geometrySlotEnds, ends, 0)
}

func GeometryStartEndsVector(builder *flatbuffers.Builder, numElems int) flatbuffers.UOffsetT {
	return builder.StartVector(4, numElems, 4)
}

func GeometryAddXy(builder *flatbuffers.Builder, xy flatbuffers.UOffsetT) {
	builder.PrependUOffsetTSlot(geometrySlotXy, xy, 0)
}

func GeometryStartXyVector(builder *flatbuffers.Builder, numElems int) flatbuffers.UOffsetT {
	return builder.StartVector(8, numElems, 8)
}

func GeometryAddType(builder *flatbuffers.Builder, type_ GeometryType) {
	builder.PrependByteSlot(geometrySlotType, byte(type_), 0)
}

func GeometryAddParts(builder *flatbuffers.Builder, parts flatbuffers.UOffsetT) {
	builder.PrependUOffsetTSlot(geometrySlotParts, parts, 0)
}

func GeometryStartPartsVector(builder *flatbuffers.Builder, numElems int) flatbuffers.UOffsetT {
	return builder.StartVector(4, numElems, 4)
}

func GeometryEnd(builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	return builder.EndObject()
}

// Finish packs t as the root table of a new buffer and returns the
// finished bytes.
func Finish(t *GeometryT) []byte {
	b := flatbuffers.NewBuilder(256)
	b.Finish(t.Pack(b))
	return b.FinishedBytes()
}
