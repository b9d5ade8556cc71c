// Copyright 2023 The quadbox (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package quadbox

import (
	"fmt"
	"strings"
)

// String returns a string summarizing the index. The returned value is
// a summary and not meant to be exhaustive.
func (idx *Index[G]) String() string {
	var b strings.Builder
	b.WriteString("Index{")
	stringStr(&b, "Name", idx.opts.name)
	if idx.check(idx.opts.name) != nil {
		b.WriteString(",CLOSED")
	} else {
		s := idx.Stats()
		stringInt(&b, ",NumItems", s.NumItems)
		stringStats(&b, s)
	}
	b.WriteByte('}')
	return b.String()
}

// String returns a compact description of the statistics.
func (s Stats) String() string {
	var b strings.Builder
	b.WriteString("Stats{")
	stringInt(&b, "NumItems", s.NumItems)
	stringStats(&b, s)
	b.WriteByte('}')
	return b.String()
}

// String returns a compact description of the query.
func (q Query[G]) String() string {
	var b strings.Builder
	b.WriteString("Query{")
	stringStr(&b, "Strategy", q.Strategy.String())
	if q.Radius != 0 {
		stringKey(&b, ",Radius")
		fmt.Fprintf(&b, "%g", q.Radius)
	}
	b.WriteByte('}')
	return b.String()
}

func stringStats(b *strings.Builder, s Stats) {
	stringInt(b, ",NumRefs", s.NumRefs)
	stringInt(b, ",Depth", s.Depth)
	stringInt(b, ",LeafCapacity", s.LeafCapacity)
	if s.Pending > 0 {
		stringInt(b, ",Pending", s.Pending)
	}
}

func stringKey(b *strings.Builder, key string) {
	b.WriteString(key)
	b.WriteByte(':')
}

func stringStr(b *strings.Builder, key string, value string) {
	stringKey(b, key)
	b.WriteString(value)
}

func stringInt(b *strings.Builder, key string, value int) {
	stringKey(b, key)
	fmt.Fprintf(b, "%d", value)
}
