// Copyright 2023 The quadbox (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package quadtree

import (
	"fmt"
	"strconv"
)

// DefaultLeafCapacity is the leaf capacity used by New. A node holding
// at most this many references is a leaf.
const DefaultLeafCapacity = 1

// A Ref is a single item within the Tree and represents a reference to
// an indexed feature. Each Ref consists of the ID the caller uses to
// find the feature plus the Box bounding the feature's geometry.
type Ref struct {
	Box

	// ID identifies the referenced feature to the caller.
	ID uint64
}

// String returns a compact description of the reference.
func (r Ref) String() string {
	return "Ref{" + r.Box.String() + ",ID:" + strconv.FormatUint(r.ID, 10) + "}"
}

// A node is either a leaf, holding references directly, or an internal
// node with a centroid and up to NumQuadrants children. Child q of an
// internal node only holds references whose boxes Classify as q
// against the centroid.
//
// Nodes are never modified once they are reachable from a Tree.
type node struct {
	// centroid is the box the children are classified against. Only
	// meaningful for internal nodes.
	centroid Box
	// children is nil for a leaf. Unused quadrants have nil children.
	children *[NumQuadrants]*node
	// refs holds the references of a leaf.
	refs []Ref
	// size is the number of references in the subtree.
	size int
}

func (n *node) isLeaf() bool {
	return n.children == nil
}

// collect appends every reference in the subtree to refs.
func (n *node) collect(refs []Ref) []Ref {
	if n.isLeaf() {
		return append(refs, n.refs...)
	}
	for _, c := range n.children {
		if c != nil {
			refs = c.collect(refs)
		}
	}
	return refs
}

// Tree is an immutable 16-way quadrant-partitioning tree of bounding
// box references.
//
// A Tree is never modified after it is created. Insert and Delete
// return a new Tree which shares every untouched node with the old one,
// so any number of goroutines may search a Tree, including while a new
// version of it is being built.
type Tree struct {
	root         *node
	leafCapacity int
}

// New returns an empty Tree with the default leaf capacity.
func New() *Tree {
	return Build(nil, DefaultLeafCapacity)
}

// Build creates a new Tree from a list of references. Each node of the
// tree is created by applying Split to the references that reach it,
// until at most leafCapacity references remain, or until a split makes
// no progress because every reference lands in the same quadrant. In
// the latter case the leaf may hold more than leafCapacity references.
//
// References to the empty box are not stored since they can never
// match. Panics if leafCapacity is less than 1.
func Build(refs []Ref, leafCapacity int) *Tree {
	if leafCapacity < 1 {
		textPanic("leaf capacity must be at least 1")
	}
	stored := make([]Ref, 0, len(refs))
	for i := range refs {
		if !refs[i].IsEmpty() {
			stored = append(stored, refs[i])
		}
	}
	return &Tree{
		root:         build(stored, leafCapacity),
		leafCapacity: leafCapacity,
	}
}

// build creates the subtree for a list of references, taking
// ownership of the list.
func build(refs []Ref, leafCapacity int) *node {
	if len(refs) <= leafCapacity {
		return &node{refs: refs, size: len(refs)}
	}

	boxes := make([]Box, len(refs))
	for i := range refs {
		boxes[i] = refs[i].Box
	}
	centroid, assignment := Split(boxes)

	var counts [NumQuadrants]int
	for _, q := range assignment {
		counts[q]++
	}
	if counts[assignment[0]] == len(refs) {
		return &node{refs: refs, size: len(refs)}
	}

	var buckets [NumQuadrants][]Ref
	for q := range buckets {
		if counts[q] > 0 {
			buckets[q] = make([]Ref, 0, counts[q])
		}
	}
	for i, q := range assignment {
		buckets[q] = append(buckets[q], refs[i])
	}

	n := &node{
		centroid: centroid,
		children: new([NumQuadrants]*node),
		size:     len(refs),
	}
	for q := range buckets {
		if len(buckets[q]) > 0 {
			n.children[q] = build(buckets[q], leafCapacity)
		}
	}
	return n
}

// Len returns the number of references stored in the tree.
func (t *Tree) Len() int {
	return t.root.size
}

// LeafCapacity returns the leaf capacity the tree was built with.
func (t *Tree) LeafCapacity() int {
	return t.leafCapacity
}

// Depth returns the number of levels in the tree. A tree whose root is
// a leaf has depth 1.
func (t *Tree) Depth() int {
	return depth(t.root)
}

func depth(n *node) int {
	if n.isLeaf() {
		return 1
	}
	var d int
	for _, c := range n.children {
		if c != nil {
			if e := depth(c); e > d {
				d = e
			}
		}
	}
	return d + 1
}

// Refs returns a copy of every reference stored in the tree. The order
// is not defined.
func (t *Tree) Refs() []Ref {
	return t.root.collect(make([]Ref, 0, t.root.size))
}

// Insert returns a new tree containing every reference in t plus r.
// The receiver is not modified.
//
// Only the nodes on the path from the root to r's leaf are copied. If
// the leaf overflows, it is split as described in Build. Inserting a
// reference to the empty box returns the receiver unchanged.
func (t *Tree) Insert(r Ref) *Tree {
	if r.IsEmpty() {
		return t
	}
	return &Tree{
		root:         t.insert(t.root, r),
		leafCapacity: t.leafCapacity,
	}
}

func (t *Tree) insert(n *node, r Ref) *node {
	if n == nil {
		return &node{refs: []Ref{r}, size: 1}
	}
	if n.isLeaf() {
		refs := make([]Ref, len(n.refs), len(n.refs)+1)
		copy(refs, n.refs)
		return build(append(refs, r), t.leafCapacity)
	}
	q := Classify(n.centroid, r.Box)
	children := *n.children
	children[q] = t.insert(children[q], r)
	return &node{
		centroid: n.centroid,
		children: &children,
		size:     n.size + 1,
	}
}

// Delete returns a new tree containing every reference in t except r,
// and whether r was found. A reference matches r if both its ID and
// its Box are equal to r's. The receiver is not modified.
//
// Internal nodes left holding no more than the leaf capacity are
// collapsed back into leaves.
func (t *Tree) Delete(r Ref) (*Tree, bool) {
	if r.IsEmpty() {
		return t, false
	}
	root, ok := t.delete(t.root, r)
	if !ok {
		return t, false
	}
	if root == nil {
		root = &node{}
	}
	return &Tree{root: root, leafCapacity: t.leafCapacity}, true
}

func (t *Tree) delete(n *node, r Ref) (*node, bool) {
	if n.isLeaf() {
		for i := range n.refs {
			if n.refs[i] == r {
				if n.size == 1 {
					return nil, true
				}
				refs := make([]Ref, 0, len(n.refs)-1)
				refs = append(refs, n.refs[:i]...)
				refs = append(refs, n.refs[i+1:]...)
				return &node{refs: refs, size: len(refs)}, true
			}
		}
		return n, false
	}
	q := Classify(n.centroid, r.Box)
	child := n.children[q]
	if child == nil {
		return n, false
	}
	child, ok := t.delete(child, r)
	if !ok {
		return n, false
	}
	children := *n.children
	children[q] = child
	m := &node{
		centroid: n.centroid,
		children: &children,
		size:     n.size - 1,
	}
	if m.size <= t.leafCapacity {
		refs := m.collect(make([]Ref, 0, m.size))
		return &node{refs: refs, size: len(refs)}, true
	}
	return m, true
}

// Validate checks the structural invariants of the tree: that every
// reference lies inside the envelope of its leaf, that every child only
// holds references which Classify into its quadrant, and that subtree
// sizes are consistent. It returns the first violation found.
func (t *Tree) Validate() error {
	_, err := validate(t.root, RootEnvelope(), nil)
	return err
}

func validate(n *node, e Envelope, path []Quadrant) ([]Ref, error) {
	if n.isLeaf() {
		for i := range n.refs {
			if n.refs[i].IsEmpty() {
				return nil, fmtErr("empty box stored at %v", path)
			} else if !e.Contains(n.refs[i].Box) {
				return nil, fmtErr("%s outside %s at %v", n.refs[i], e, path)
			}
		}
		if n.size != len(n.refs) {
			return nil, fmtErr("leaf size %d, but %d refs at %v", n.size, len(n.refs), path)
		}
		return n.refs, nil
	}
	refs := make([]Ref, 0, n.size)
	for i, c := range n.children {
		if c == nil {
			continue
		}
		q := Quadrant(i)
		sub, err := validate(c, Narrow(e, n.centroid, q), append(path[:len(path):len(path)], q))
		if err != nil {
			return nil, err
		}
		for j := range sub {
			if p := Classify(n.centroid, sub[j].Box); p != q {
				return nil, fmtErr("%s classifies as %d, but is stored in quadrant %d at %v", sub[j], p, q, path)
			}
		}
		refs = append(refs, sub...)
	}
	if len(refs) == 0 {
		return nil, fmtErr("internal node without references at %v", path)
	} else if len(refs) != n.size {
		return nil, fmtErr("node size %d, but %d refs at %v", n.size, len(refs), path)
	}
	return refs, nil
}

// String returns a summary description of the tree.
func (t *Tree) String() string {
	return fmt.Sprintf("Tree{NumRefs:%d,LeafCapacity:%d,Depth:%d}", t.Len(), t.leafCapacity, t.Depth())
}
