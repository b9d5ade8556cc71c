// Copyright 2023 The quadbox (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package quadtree_test

import (
	"fmt"
	"sort"

	"github.com/gogama/quadbox/quadtree"
)

func ExampleSplit() {
	centroid, assignment := quadtree.Split([]quadtree.Box{
		quadtree.NewBox(0, 1, 0, 1),
		quadtree.NewBox(9, 10, 0, 1),
		quadtree.NewBox(0, 1, 9, 10),
		quadtree.NewBox(9, 10, 9, 10),
	})
	fmt.Println(centroid)
	fmt.Println(assignment)
	// Output:
	// [4.5,5.5,4.5,5.5]
	// [0 12 3 15]
}

func ExampleTree_Search() {
	tree := quadtree.Build([]quadtree.Ref{
		{Box: quadtree.NewBox(0, 1, 0, 1), ID: 0},
		{Box: quadtree.NewBox(9, 10, 0, 1), ID: 1},
		{Box: quadtree.NewBox(0, 1, 9, 10), ID: 2},
		{Box: quadtree.NewBox(9, 10, 9, 10), ID: 3},
	}, 1)
	fmt.Println(tree)

	overlap := tree.Search(quadtree.Overlap, quadtree.NewBox(0, 5, 0, 5))
	fmt.Println(overlap)

	left := tree.Search(quadtree.Left, quadtree.NewBox(5, 6, 0, 10))
	sort.Sort(left)
	fmt.Println(left)
	// Output:
	// Tree{NumRefs:4,LeafCapacity:1,Depth:2}
	// [Match{[0,1,0,1],ID:0,Recheck:false}]
	// [Match{[0,1,0,1],ID:0,Recheck:false} Match{[0,1,9,10],ID:2,Recheck:false}]
}

func ExampleParseStrategy() {
	s, err := quadtree.ParseStrategy("containedby")
	fmt.Println(s, uint8(s), err)
	// Output:
	// ContainedBy 8 <nil>
}
