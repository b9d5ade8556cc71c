// Copyright 2023 The quadbox (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package flat

import (
	"fmt"
	"strings"
)

// String returns a string summarizing the Geometry. The returned value
// is a summary and not meant to be exhaustive.
func (g *Geometry) String() string {
	var b strings.Builder
	b.WriteString("Geometry{")
	if err := safeFlatBuffersInteraction(func() error {
		stringStr(&b, "Type", g.Type().String())
		stringInt64(&b, ",NumXY", int64(g.XyLength()/2))
		if n := g.EndsLength(); n > 0 {
			stringInt64(&b, ",NumEnds", int64(n))
		}
		if n := g.PartsLength(); n > 0 {
			stringInt64(&b, ",NumParts", int64(n))
		}
		return nil
	}); err != nil {
		return "error: " + err.Error()
	}
	stringKey(&b, ",Bounds")
	if bounds, err := g.Bounds(); err != nil {
		b.WriteString("<error>")
	} else {
		b.WriteString(bounds.String())
	}
	b.WriteByte('}')
	return b.String()
}

func stringKey(b *strings.Builder, key string) {
	b.WriteString(key)
	b.WriteByte(':')
}

func stringStr(b *strings.Builder, key string, value string) {
	stringKey(b, key)
	b.WriteString(value)
}

func stringInt64(b *strings.Builder, key string, value int64) {
	stringKey(b, key)
	fmt.Fprintf(b, "%d", value)
}
