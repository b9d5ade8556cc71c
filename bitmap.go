// Copyright 2023 The quadbox (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package quadbox

import (
	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/gogama/quadbox/quadtree"
)

// Bitmaps splits the IDs of a result set into the IDs of exact matches
// and the IDs of matches that need a recheck.
func Bitmaps(rs quadtree.Results) (exact, recheck *roaring64.Bitmap) {
	exact, recheck = roaring64.New(), roaring64.New()
	for i := range rs {
		if rs[i].Recheck {
			recheck.Add(rs[i].ID)
		} else {
			exact.Add(rs[i].ID)
		}
	}
	return
}
