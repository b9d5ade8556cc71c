// Copyright 2023 The quadbox (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package quadtree

// Stats counts the work done by a single search.
type Stats struct {
	// NodesVisited is the number of nodes, leaves included, that the
	// search descended into.
	NodesVisited int
	// Pruned is the number of child subtrees skipped because their
	// envelope could not hold a match.
	Pruned int
	// RefsChecked is the number of stored references the exact
	// relation was evaluated for.
	RefsChecked int
	// Matches is the number of matches reported.
	Matches int
}

// Add returns the sum of two Stats.
func (s Stats) Add(t Stats) Stats {
	return Stats{
		NodesVisited: s.NodesVisited + t.NodesVisited,
		Pruned:       s.Pruned + t.Pruned,
		RefsChecked:  s.RefsChecked + t.RefsChecked,
		Matches:      s.Matches + t.Matches,
	}
}

// A ticket is a pending work item to be executed during a search loop:
// a node still to be searched, and the envelope of every box below it.
type ticket struct {
	n *node
	e Envelope
}

// Visit searches the tree for stored references whose boxes stand in
// relation s to the query box q, calling fn once for every match. If fn
// returns false, the search stops immediately. The order in which
// matches are visited is not defined.
//
// At every internal node, Visit narrows the node's envelope for each
// child quadrant and skips the child unless s.Possible holds for the
// narrowed envelope. At every leaf, s.Matches decides each reference.
//
// Panics if s is not a valid Strategy, even if the tree is empty.
func (t *Tree) Visit(s Strategy, q Box, fn func(Match) bool) Stats {
	s.mustBeValid()

	var stats Stats
	root := RootEnvelope()
	if !s.Possible(root, q) {
		return stats
	}

	stack := make([]ticket, 1, 16)
	stack[0] = ticket{n: t.root, e: root}
	for len(stack) > 0 {
		// Pop the next work ticket from the top of the stack.
		k := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		stats.NodesVisited++
		// Check the references of a leaf exactly.
		if k.n.isLeaf() {
			for i := range k.n.refs {
				r := &k.n.refs[i]
				stats.RefsChecked++
				if !s.Matches(q, r.Box) {
					continue
				}
				stats.Matches++
				if !fn(Match{Ref: *r, Recheck: r.Lossy() || q.Lossy()}) {
					return stats
				}
			}
			continue
		}
		// Push every child whose envelope may hold a match.
		for i, c := range k.n.children {
			if c == nil {
				continue
			}
			e := Narrow(k.e, k.n.centroid, Quadrant(i))
			if s.Possible(e, q) {
				stack = append(stack, ticket{n: c, e: e})
			} else {
				stats.Pruned++
			}
		}
	}
	return stats
}

// Search searches the tree for stored references whose boxes stand in
// relation s to the query box q. The order of the search results is
// not defined.
//
// Panics if s is not a valid Strategy.
func (t *Tree) Search(s Strategy, q Box) Results {
	r := make(Results, 0)
	t.Visit(s, q, func(m Match) bool {
		r = append(r, m)
		return true
	})
	return r
}

// Scan is the linear-scan equivalent of Search: it checks every
// reference in refs against the query with s.Matches, without using a
// tree. Its results are the reference against which Search is
// verified.
func Scan(refs []Ref, s Strategy, q Box) Results {
	s.mustBeValid()
	r := make(Results, 0)
	for i := range refs {
		if s.Matches(q, refs[i].Box) {
			r = append(r, Match{Ref: refs[i], Recheck: refs[i].Lossy() || q.Lossy()})
		}
	}
	return r
}
