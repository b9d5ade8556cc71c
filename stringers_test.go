// Copyright 2023 The quadbox (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package quadbox

import (
	"context"
	"testing"

	"github.com/gogama/quadbox/quadtree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex_String(t *testing.T) {
	idx := New[quadtree.Box](BoxCompressor, WithName("foo"), WithReorganizeEvery(0))
	assert.Equal(t, "Index{Name:foo,NumItems:0,NumRefs:0,Depth:1,LeafCapacity:1}", idx.String())

	require.NoError(t, idx.Insert(context.Background(), 1, quadtree.EmptyBox))

	assert.Equal(t, "Index{Name:foo,NumItems:1,NumRefs:0,Depth:1,LeafCapacity:1,Pending:1}", idx.String())
}

func TestStats_String(t *testing.T) {
	s := Stats{NumItems: 5, NumRefs: 4, Depth: 2, LeafCapacity: 1}

	assert.Equal(t, "Stats{NumItems:5,NumRefs:4,Depth:2,LeafCapacity:1}", s.String())
}

func TestQuery_String(t *testing.T) {
	assert.Equal(t, "Query{Strategy:Left}", Query[string]{Strategy: quadtree.Left}.String())
	assert.Equal(t, "Query{Strategy:Overlap,Radius:2.5}", Query[string]{Strategy: quadtree.Overlap, Radius: 2.5}.String())
	assert.Equal(t, "Query{Strategy:Strategy(0)}", Query[string]{}.String())
}
