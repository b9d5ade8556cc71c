// Copyright 2023 The quadbox (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package quadbox

import (
	"context"
	"math"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/gogama/quadbox/quadtree"
	"golang.org/x/sync/errgroup"
)

// ctxCheckInterval is the number of matches a search collects between
// checks for cancellation.
const ctxCheckInterval = 64

// An Item is a geometry together with the ID it is indexed under.
type Item[G any] struct {
	ID       uint64
	Geometry G
}

// A Query is a single query of a QueryBatch call.
type Query[G any] struct {
	Strategy quadtree.Strategy
	Geometry G
	// Radius, if positive, grows the query box by this distance on
	// every side before searching, as in QueryWithin.
	Radius float64
}

// Index is a spatial index of geometries of type G.
//
// An Index is safe for concurrent use. Mutating methods are serialized
// and each one atomically publishes a new version of the underlying
// tree; queries run against whichever version was current when they
// started and are never blocked by mutations.
type Index[G any] struct {
	stateful
	opts       options
	compressor Compressor[G]
	tree       atomic.Pointer[quadtree.Tree]

	mu sync.Mutex
	// boxes holds the box of every item, including items with the empty
	// box, which are not stored in the tree.
	boxes map[uint64]quadtree.Box
	// pending counts mutations applied since the tree was last rebuilt.
	pending int
}

// New creates an empty Index which uses c to reduce geometries to
// boxes. Panics if c is nil.
func New[G any](c Compressor[G], opts ...Option) *Index[G] {
	if c == nil {
		textPanic("nil compressor")
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	idx := &Index[G]{
		opts:       o,
		compressor: c,
		boxes:      make(map[uint64]quadtree.Box),
	}
	idx.tree.Store(quadtree.Build(nil, o.leafCapacity))
	instrumentTree(o.name, idx.tree.Load())
	return idx
}

// Name returns the name of the index.
func (idx *Index[G]) Name() string {
	return idx.opts.name
}

// Insert adds a geometry to the index under the given ID, replacing any
// geometry already stored under that ID.
//
// If the Compressor fails, the index is not modified and the returned
// error has type ErrTypeCompress. An empty geometry is recorded, but
// never matches any query.
func (idx *Index[G]) Insert(ctx context.Context, id uint64, g G) error {
	if err := idx.check(idx.opts.name); err != nil {
		return err
	} else if err = ctx.Err(); err != nil {
		return err
	}
	b, err := idx.compressor.Compress(g)
	if err != nil {
		return idx.compressErr(id, err)
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	t := idx.tree.Load()
	if old, ok := idx.boxes[id]; ok {
		t, _ = t.Delete(quadtree.Ref{Box: old, ID: id})
	}
	idx.boxes[id] = b
	idx.publish(t.Insert(quadtree.Ref{Box: b, ID: id}), "insert")
	return nil
}

// Remove deletes the geometry stored under the given ID and reports
// whether there was one.
func (idx *Index[G]) Remove(ctx context.Context, id uint64) (bool, error) {
	if err := idx.check(idx.opts.name); err != nil {
		return false, err
	} else if err = ctx.Err(); err != nil {
		return false, err
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	old, ok := idx.boxes[id]
	if !ok {
		return false, nil
	}
	delete(idx.boxes, id)
	t, _ := idx.tree.Load().Delete(quadtree.Ref{Box: old, ID: id})
	idx.publish(t, "remove")
	return true, nil
}

// Load adds a batch of geometries to the index, replacing geometries
// already stored under the same IDs, and rebuilds the tree from
// scratch.
//
// Every geometry is compressed before the index is modified, so if the
// Compressor fails on any of them, or ctx is cancelled, the index is
// left unchanged.
func (idx *Index[G]) Load(ctx context.Context, items []Item[G]) error {
	if err := idx.check(idx.opts.name); err != nil {
		return err
	}
	boxes := make([]quadtree.Box, len(items))
	for i := range items {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		b, err := idx.compressor.Compress(items[i].Geometry)
		if err != nil {
			return idx.compressErr(items[i].ID, err)
		}
		boxes[i] = b
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	for i := range items {
		idx.boxes[items[i].ID] = boxes[i]
	}
	idx.store(idx.rebuild())
	instrumentMutation(idx.opts.name, "load")
	return nil
}

// Reorganize rebuilds the tree from scratch, recomputing every
// centroid from the current contents of the index.
//
// Incremental inserts keep the centroids chosen when a node was first
// split, so a tree grown one item at a time can become unbalanced.
// Reorganize runs automatically every few mutations unless disabled
// with WithReorganizeEvery(0).
func (idx *Index[G]) Reorganize() error {
	if err := idx.check(idx.opts.name); err != nil {
		return err
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.store(idx.rebuild())
	return nil
}

// Box returns the box stored for the given ID. If the index holds no
// item with the ID, the returned error has type ErrTypeNotFound.
func (idx *Index[G]) Box(id uint64) (quadtree.Box, error) {
	if err := idx.check(idx.opts.name); err != nil {
		return quadtree.Box{}, err
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	b, ok := idx.boxes[id]
	if !ok {
		return quadtree.Box{}, errors.New(packageName + "id not found").
			WithType(ErrTypeNotFound).
			WithTag("index", idx.opts.name).
			WithTag("id", id)
	}
	return b, nil
}

// Len returns the number of items in the index, including items with
// the empty box.
func (idx *Index[G]) Len() int {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	return len(idx.boxes)
}

// Stats describes the current shape of an Index.
type Stats struct {
	// NumItems is the number of items in the index.
	NumItems int
	// NumRefs is the number of items stored in the tree. Items with the
	// empty box are not stored.
	NumRefs int
	// Depth is the number of levels in the tree.
	Depth int
	// LeafCapacity is the leaf capacity of the tree.
	LeafCapacity int
	// Pending is the number of mutations applied since the tree was
	// last rebuilt from scratch.
	Pending int
}

// Stats returns the current shape of the index.
func (idx *Index[G]) Stats() Stats {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	t := idx.tree.Load()
	return Stats{
		NumItems:     len(idx.boxes),
		NumRefs:      t.Len(),
		Depth:        t.Depth(),
		LeafCapacity: t.LeafCapacity(),
		Pending:      idx.pending,
	}
}

// Close releases the contents of the index. Every later call to a
// method that returns an error fails with an error of type
// ErrTypeClosed, including a second call to Close.
func (idx *Index[G]) Close() error {
	if err := idx.close(idx.opts.name); err != nil {
		return err
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	logs.WithTag("index", idx.opts.name).
		WithTag("items", len(idx.boxes)).
		Info("closing index")
	idx.boxes = make(map[uint64]quadtree.Box)
	idx.store(quadtree.Build(nil, idx.opts.leafCapacity))
	return nil
}

// Query returns the items whose boxes stand in relation s to the box
// of g, sorted by ID.
//
// If s is not a valid strategy, the returned error has type
// ErrTypeUnknownStrategy. If the Compressor fails on g, the query
// matches nothing: a warning is logged and the result is empty, with a
// nil error. If ctx is cancelled during the search, the error is
// ctx.Err().
func (idx *Index[G]) Query(ctx context.Context, s quadtree.Strategy, g G) (quadtree.Results, error) {
	return idx.query(ctx, s, g, 0)
}

// QueryWithin is like Query, but first grows the box of g by radius on
// every side. With the Overlap strategy it finds every item whose box
// comes within radius of the box of g.
//
// If radius is negative, infinite or NaN, the returned error has type
// ErrTypeInvalidArgument.
func (idx *Index[G]) QueryWithin(ctx context.Context, s quadtree.Strategy, g G, radius float64) (quadtree.Results, error) {
	return idx.query(ctx, s, g, radius)
}

// QueryBox is like Query, but takes the query box directly.
func (idx *Index[G]) QueryBox(ctx context.Context, s quadtree.Strategy, b quadtree.Box) (quadtree.Results, error) {
	if err := idx.precheck(ctx, s); err != nil {
		return nil, err
	}
	return idx.search(ctx, s, b)
}

// QueryBitmap is like Query, but returns the matching IDs as two
// bitmaps: the IDs of exact matches, and the IDs of matches that need a
// recheck.
func (idx *Index[G]) QueryBitmap(ctx context.Context, s quadtree.Strategy, g G) (exact, recheck *roaring64.Bitmap, err error) {
	var rs quadtree.Results
	if rs, err = idx.Query(ctx, s, g); err != nil {
		return
	}
	exact, recheck = Bitmaps(rs)
	return
}

// QueryBatch runs a batch of queries concurrently, at most as many at
// once as set by WithConcurrency, and returns their results in the
// order of the queries. If any query fails, the remaining queries are
// cancelled and the first error is returned.
func (idx *Index[G]) QueryBatch(ctx context.Context, qs []Query[G]) ([]quadtree.Results, error) {
	if err := idx.check(idx.opts.name); err != nil {
		return nil, err
	}
	results := make([]quadtree.Results, len(qs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(idx.opts.concurrency)
	for i := range qs {
		g.Go(func() error {
			rs, err := idx.query(ctx, qs[i].Strategy, qs[i].Geometry, qs[i].Radius)
			results[i] = rs
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (idx *Index[G]) query(ctx context.Context, s quadtree.Strategy, g G, radius float64) (quadtree.Results, error) {
	if err := idx.precheck(ctx, s); err != nil {
		return nil, err
	}
	if radius < 0 || math.IsNaN(radius) || math.IsInf(radius, 0) {
		err := errors.New(packageName + "invalid query radius").
			WithType(ErrTypeInvalidArgument).
			WithTag("index", idx.opts.name).
			WithTag("radius", radius)
		instrumentQueryError(idx.opts.name, err)
		return nil, err
	}
	b, err := idx.compressor.Compress(g)
	if err != nil {
		logs.Warn(errors.New(packageName + "malformed query geometry matches nothing").
			WithTag("index", idx.opts.name).
			WithTag("strategy", s.String()).
			Wrap(err))
		return quadtree.Results{}, nil
	}
	if radius > 0 {
		b = b.Expand(radius)
	}
	return idx.search(ctx, s, b)
}

func (idx *Index[G]) precheck(ctx context.Context, s quadtree.Strategy) error {
	if err := idx.check(idx.opts.name); err != nil {
		return err
	}
	if !s.Valid() {
		err := errors.New(packageName + "unknown strategy").
			WithType(ErrTypeUnknownStrategy).
			WithTag("index", idx.opts.name).
			WithTag("code", uint8(s))
		instrumentQueryError(idx.opts.name, err)
		return err
	}
	return ctx.Err()
}

func (idx *Index[G]) search(ctx context.Context, s quadtree.Strategy, b quadtree.Box) (quadtree.Results, error) {
	start := time.Now()
	rs := make(quadtree.Results, 0)
	var err error
	stats := idx.tree.Load().Visit(s, b, func(m quadtree.Match) bool {
		if len(rs)%ctxCheckInterval == 0 {
			if err = ctx.Err(); err != nil {
				return false
			}
		}
		rs = append(rs, m)
		return true
	})
	instrumentQuery(idx.opts.name, s, stats, start)
	if err != nil {
		instrumentQueryError(idx.opts.name, err)
		return nil, err
	}
	sort.Sort(rs)
	return rs, nil
}

func (idx *Index[G]) compressErr(id uint64, err error) error {
	return errors.New(packageName + "failed to compress geometry").
		WithType(ErrTypeCompress).
		WithTag("index", idx.opts.name).
		WithTag("id", id).
		Wrap(err)
}

// publish makes t the current tree after an incremental mutation,
// rebuilding it from scratch instead if enough mutations are pending.
// The caller must hold idx.mu.
func (idx *Index[G]) publish(t *quadtree.Tree, operation string) {
	instrumentMutation(idx.opts.name, operation)
	idx.pending++
	if idx.opts.reorganizeEvery > 0 && idx.pending >= idx.opts.reorganizeEvery {
		t = idx.rebuild()
	}
	idx.store(t)
}

// rebuild builds a new tree from every stored box. The caller must
// hold idx.mu.
func (idx *Index[G]) rebuild() *quadtree.Tree {
	refs := make([]quadtree.Ref, 0, len(idx.boxes))
	for id, b := range idx.boxes {
		refs = append(refs, quadtree.Ref{Box: b, ID: id})
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].ID < refs[j].ID })
	t := quadtree.Build(refs, idx.opts.leafCapacity)
	idx.pending = 0
	instrumentReorganize(idx.opts.name)
	logs.WithTag("index", idx.opts.name).
		WithTag("refs", t.Len()).
		WithTag("depth", t.Depth()).
		Debug("index reorganized")
	return t
}

func (idx *Index[G]) store(t *quadtree.Tree) {
	idx.tree.Store(t)
	instrumentTree(idx.opts.name, t)
}
