// Copyright 2023 The quadbox (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package quadbox

import (
	"runtime"

	"github.com/gogama/quadbox/quadtree"
)

// DefaultReorganizeEvery is the number of incremental mutations after
// which an Index rebuilds its tree from scratch, unless overridden with
// WithReorganizeEvery.
const DefaultReorganizeEvery = 4096

// DefaultName is the name of an Index created without WithName.
const DefaultName = "default"

// An Option configures an Index.
type Option func(*options)

type options struct {
	leafCapacity    int
	reorganizeEvery int
	concurrency     int
	name            string
}

func defaultOptions() options {
	return options{
		leafCapacity:    quadtree.DefaultLeafCapacity,
		reorganizeEvery: DefaultReorganizeEvery,
		concurrency:     runtime.GOMAXPROCS(0),
		name:            DefaultName,
	}
}

// WithLeafCapacity sets the maximum number of references a tree node
// may hold and still be a leaf. Panics if n is less than 1.
func WithLeafCapacity(n int) Option {
	if n < 1 {
		textPanic("leaf capacity must be at least 1")
	}
	return func(o *options) {
		o.leafCapacity = n
	}
}

// WithReorganizeEvery sets the number of incremental mutations (Insert
// and Remove calls) after which the tree is rebuilt from scratch with
// freshly computed centroids. Zero disables automatic reorganization.
// Panics if n is negative.
func WithReorganizeEvery(n int) Option {
	if n < 0 {
		textPanic("reorganize interval must not be negative")
	}
	return func(o *options) {
		o.reorganizeEvery = n
	}
}

// WithConcurrency sets the maximum number of queries a QueryBatch call
// runs at once. Panics if n is less than 1.
func WithConcurrency(n int) Option {
	if n < 1 {
		textPanic("concurrency must be at least 1")
	}
	return func(o *options) {
		o.concurrency = n
	}
}

// WithName sets the name the Index reports in its logs and metrics.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}
