// Copyright 2023 The quadbox (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package quadtree

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomBox returns a small box on an integer grid, so that shared
// and touching coordinates are common.
func randomBox(rnd *rand.Rand) Box {
	x, y := float32(rnd.Intn(20)), float32(rnd.Intn(20))
	return box(x, x+float32(rnd.Intn(5)), y, y+float32(rnd.Intn(5)))
}

// randomQuery is like randomBox, but sometimes returns a lossy,
// unbounded or empty box.
func randomQuery(rnd *rand.Rand) Box {
	switch rnd.Intn(20) {
	case 0:
		return EmptyBox
	case 1:
		return UnboundedBox
	case 2, 3:
		b := randomBox(rnd)
		return NewBox(float64(b.XMin)+0.1, float64(b.XMax)+0.3, float64(b.YMin)-0.7, float64(b.YMax))
	default:
		return randomBox(rnd)
	}
}

func randomRefs(rnd *rand.Rand, n int) []Ref {
	refs := make([]Ref, n)
	for i := range refs {
		refs[i] = Ref{Box: randomQuery(rnd), ID: uint64(i)}
	}
	return refs
}

func sorted(rs Results) Results {
	sort.Sort(rs)
	return rs
}

func TestNew(t *testing.T) {
	tree := New()

	assert.Equal(t, 0, tree.Len())
	assert.Equal(t, 1, tree.Depth())
	assert.Equal(t, DefaultLeafCapacity, tree.LeafCapacity())
	assert.Empty(t, tree.Refs())
	assert.NoError(t, tree.Validate())
	assert.Equal(t, "Tree{NumRefs:0,LeafCapacity:1,Depth:1}", tree.String())
	for _, s := range Strategies() {
		assert.Equal(t, Results{}, tree.Search(s, UnboundedBox))
	}
}

func TestBuild(t *testing.T) {
	t.Run("Panic", func(t *testing.T) {
		assert.PanicsWithValue(t, "quadtree: leaf capacity must be at least 1", func() {
			Build(nil, 0)
		})
	})

	t.Run("Corners", func(t *testing.T) {
		refs := []Ref{
			{Box: box(0, 1, 0, 1), ID: 0},
			{Box: box(9, 10, 0, 1), ID: 1},
			{Box: box(0, 1, 9, 10), ID: 2},
			{Box: box(9, 10, 9, 10), ID: 3},
		}

		tree := Build(refs, 1)

		require.NoError(t, tree.Validate())
		assert.Equal(t, 4, tree.Len())
		assert.Equal(t, 2, tree.Depth())
		assert.Equal(t, box(4.5, 5.5, 4.5, 5.5), tree.root.centroid)
		for i, q := range []Quadrant{0, 12, 3, 15} {
			require.NotNil(t, tree.root.children[q])
			assert.Equal(t, []Ref{refs[i]}, tree.root.children[q].refs)
		}
	})

	t.Run("EmptyBoxesDropped", func(t *testing.T) {
		refs := []Ref{
			{Box: EmptyBox, ID: 0},
			{Box: box(0, 1, 0, 1), ID: 1},
			{Box: EmptyBox, ID: 2},
		}

		tree := Build(refs, 1)

		assert.Equal(t, 1, tree.Len())
		assert.Equal(t, []Ref{refs[1]}, tree.Refs())
	})

	t.Run("Identical", func(t *testing.T) {
		refs := make([]Ref, 10)
		for i := range refs {
			refs[i] = Ref{Box: box(1, 2, 1, 2), ID: uint64(i)}
		}

		tree := Build(refs, 1)

		require.NoError(t, tree.Validate())
		assert.Equal(t, 10, tree.Len())
		assert.Equal(t, 1, tree.Depth())
		assert.Len(t, tree.Search(Same, box(1, 2, 1, 2)), 10)
	})

	t.Run("LeafCapacity", func(t *testing.T) {
		rnd := rand.New(rand.NewSource(0))
		refs := randomRefs(rnd, 500)

		small := Build(refs, 1)
		large := Build(refs, 64)

		require.NoError(t, small.Validate())
		require.NoError(t, large.Validate())
		assert.Equal(t, small.Len(), large.Len())
		assert.Greater(t, small.Depth(), large.Depth())
		assert.ElementsMatch(t, small.Refs(), large.Refs())
	})
}

func TestTree_Search(t *testing.T) {
	rnd := rand.New(rand.NewSource(0))

	for _, n := range []int{0, 1, 2, 3, 10, 100, 1000} {
		refs := randomRefs(rnd, n)
		for _, leafCapacity := range []int{1, 2, 4, 16} {
			tree := Build(refs, leafCapacity)
			require.NoError(t, tree.Validate())

			for i := 0; i < 25; i++ {
				q := randomQuery(rnd)
				for _, s := range Strategies() {
					expected := sorted(Scan(refs, s, q))

					actual := sorted(tree.Search(s, q))

					require.Equal(t, expected, actual, "n=%d, leafCapacity=%d, %s %s", n, leafCapacity, s, q)
				}
			}
		}
	}
}

// TestTree_Search_AncestorsAdmitMatches checks that every envelope on
// the path from the root to a matching reference passes the existence
// form of the strategy.
func TestTree_Search_AncestorsAdmitMatches(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	refs := randomRefs(rnd, 300)
	tree := Build(refs, 1)

	for i := 0; i < 50; i++ {
		q := randomQuery(rnd)
		for _, s := range Strategies() {
			for _, m := range Scan(refs, s, q) {
				n, e := tree.root, RootEnvelope()
				require.True(t, s.Possible(e, q))
				for !n.isLeaf() {
					qd := Classify(n.centroid, m.Box)
					e = Narrow(e, n.centroid, qd)
					assert.True(t, s.Possible(e, q), "%s %s: %s pruned at %s", s, q, m.Ref, e)
					n = n.children[qd]
					require.NotNil(t, n)
				}
				assert.Contains(t, n.refs, m.Ref)
			}
		}
	}
}

func TestTree_Search_Recheck(t *testing.T) {
	exact := Ref{Box: box(0, 1, 0, 1), ID: 1}
	lossy := Ref{Box: NewBox(0, 1.1, 0, 1), ID: 2}
	unbounded := Ref{Box: UnboundedBox, ID: 3}
	tree := Build([]Ref{exact, lossy, unbounded}, 1)

	t.Run("ExactQuery", func(t *testing.T) {
		actual := sorted(tree.Search(Overlap, box(0, 2, 0, 2)))

		assert.Equal(t, Results{
			{Ref: exact, Recheck: false},
			{Ref: lossy, Recheck: true},
			{Ref: unbounded, Recheck: true},
		}, actual)
	})

	t.Run("LossyQuery", func(t *testing.T) {
		actual := sorted(tree.Search(Overlap, NewBox(0.1, 2, 0, 2)))

		require.Len(t, actual, 3)
		assert.True(t, actual[0].Recheck)
	})

	t.Run("UnboundedQuery", func(t *testing.T) {
		actual := sorted(tree.Search(Left, UnboundedBox))

		// Nothing is strictly left of negative infinity, but the
		// search is not pruned.
		assert.Empty(t, actual)
	})

	t.Run("EmptyQuery", func(t *testing.T) {
		for _, s := range Strategies() {
			assert.Empty(t, tree.Search(s, EmptyBox))
		}
	})
}

func TestTree_Visit(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	refs := make([]Ref, 200)
	for i := range refs {
		refs[i] = Ref{Box: randomBox(rnd), ID: uint64(i)}
	}
	tree := Build(refs, 1)

	t.Run("Panic", func(t *testing.T) {
		assert.PanicsWithValue(t, "quadtree: unknown strategy code 99", func() {
			New().Visit(99, Box{}, func(Match) bool { return true })
		})
	})

	t.Run("Stop", func(t *testing.T) {
		var n int

		stats := tree.Visit(Overlap, UnboundedBox, func(Match) bool {
			n++
			return n < 5
		})

		assert.Equal(t, 5, n)
		assert.Equal(t, 5, stats.Matches)
	})

	t.Run("Stats", func(t *testing.T) {
		q := box(0, 1, 0, 1)
		var n int

		stats := tree.Visit(Overlap, q, func(Match) bool {
			n++
			return true
		})

		assert.Equal(t, n, stats.Matches)
		assert.Equal(t, len(Scan(refs, Overlap, q)), stats.Matches)
		assert.Greater(t, stats.Pruned, 0)
		assert.Less(t, stats.RefsChecked, len(refs))
		assert.Greater(t, stats.NodesVisited, 0)
		assert.Equal(t, stats.Add(stats), Stats{
			NodesVisited: 2 * stats.NodesVisited,
			Pruned:       2 * stats.Pruned,
			RefsChecked:  2 * stats.RefsChecked,
			Matches:      2 * stats.Matches,
		})
	})
}

func TestTree_Insert(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	refs := randomRefs(rnd, 300)

	for _, leafCapacity := range []int{1, 3} {
		versions := []*Tree{Build(nil, leafCapacity)}
		for i := range refs {
			versions = append(versions, versions[i].Insert(refs[i]))
		}

		for i, tree := range versions {
			require.NoError(t, tree.Validate(), "version %d", i)
			assert.Equal(t, leafCapacity, tree.LeafCapacity())
			for j := 0; j < 3; j++ {
				q := randomQuery(rnd)
				for _, s := range Strategies() {
					expected := sorted(Scan(refs[:i], s, q))

					actual := sorted(tree.Search(s, q))

					require.Equal(t, expected, actual, "version %d, %s %s", i, s, q)
				}
			}
		}
	}

	t.Run("Empty", func(t *testing.T) {
		tree := New()

		assert.Same(t, tree, tree.Insert(Ref{Box: EmptyBox, ID: 1}))
	})
}

func TestTree_Delete(t *testing.T) {
	rnd := rand.New(rand.NewSource(4))
	refs := randomRefs(rnd, 300)

	for _, leafCapacity := range []int{1, 3} {
		tree := Build(refs, leafCapacity)
		original, before := tree, tree.Refs()
		remaining := make([]Ref, 0, len(refs))

		for i, r := range refs {
			if i%2 == 0 {
				remaining = append(remaining, r)
				continue
			}
			next, ok := tree.Delete(r)
			require.Equal(t, !r.IsEmpty(), ok, "delete %s", r)
			require.NoError(t, next.Validate())
			tree = next
		}

		assert.ElementsMatch(t, before, original.Refs())
		for j := 0; j < 25; j++ {
			q := randomQuery(rnd)
			for _, s := range Strategies() {
				expected := sorted(Scan(remaining, s, q))

				actual := sorted(tree.Search(s, q))

				require.Equal(t, expected, actual, "%s %s", s, q)
			}
		}
	}

	t.Run("NotFound", func(t *testing.T) {
		tree := Build([]Ref{{Box: box(0, 1, 0, 1), ID: 1}}, 1)

		next, ok := tree.Delete(Ref{Box: box(0, 1, 0, 2), ID: 1})

		assert.False(t, ok)
		assert.Same(t, tree, next)
		next, ok = tree.Delete(Ref{Box: box(0, 1, 0, 1), ID: 2})
		assert.False(t, ok)
		assert.Same(t, tree, next)
	})

	t.Run("All", func(t *testing.T) {
		refs := randomRefs(rand.New(rand.NewSource(5)), 50)
		tree := Build(refs, 2)
		old := tree

		for _, r := range refs {
			tree, _ = tree.Delete(r)
		}

		require.NoError(t, tree.Validate())
		assert.Equal(t, 0, tree.Len())
		assert.Equal(t, 1, tree.Depth())
		assert.ElementsMatch(t, Build(refs, 2).Refs(), old.Refs())
	})
}

func TestTree_Validate(t *testing.T) {
	tree := Build([]Ref{
		{Box: box(0, 1, 0, 1), ID: 0},
		{Box: box(9, 10, 9, 10), ID: 1},
	}, 1)
	require.NoError(t, tree.Validate())

	t.Run("Misplaced", func(t *testing.T) {
		broken := &Tree{root: &node{
			centroid: tree.root.centroid,
			children: &[NumQuadrants]*node{
				0: {refs: []Ref{{Box: box(9, 10, 9, 10), ID: 1}}, size: 1},
				15: {refs: []Ref{{Box: box(0, 1, 0, 1), ID: 0}}, size: 1},
			},
			size: 2,
		}, leafCapacity: 1}

		assert.Error(t, broken.Validate())
	})

	t.Run("Size", func(t *testing.T) {
		broken := &Tree{root: &node{refs: []Ref{{ID: 1}}, size: 2}, leafCapacity: 1}

		assert.EqualError(t, broken.Validate(), "quadtree: leaf size 2, but 1 refs at []")
	})

	t.Run("Empty", func(t *testing.T) {
		broken := &Tree{root: &node{refs: []Ref{{Box: EmptyBox, ID: 1}}, size: 1}, leafCapacity: 1}

		assert.EqualError(t, broken.Validate(), "quadtree: empty box stored at []")
	})
}

func TestRef_String(t *testing.T) {
	assert.Equal(t, "Ref{[0,1,2,3],ID:7}", Ref{Box: box(0, 1, 2, 3), ID: 7}.String())
	assert.Equal(t, "Match{[EMPTY],ID:0,Recheck:true}", Match{Ref: Ref{Box: EmptyBox}, Recheck: true}.String())
}

func TestResults(t *testing.T) {
	rs := Results{{Ref: Ref{ID: 3}}, {Ref: Ref{ID: 1}}, {Ref: Ref{ID: 2}}}

	sort.Sort(rs)

	assert.Equal(t, []uint64{1, 2, 3}, rs.IDs())
}
