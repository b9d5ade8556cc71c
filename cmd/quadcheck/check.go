// Copyright 2023 The quadbox (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"math/rand"
	"reflect"
	"sort"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/gogama/quadbox"
	"github.com/gogama/quadbox/quadtree"
)

// report summarizes a check run.
type report struct {
	Seed       int64            `json:"seed"`
	Index      string           `json:"index"`
	Queries    int              `json:"queries"`
	Matches    int              `json:"matches"`
	Rechecks   int              `json:"rechecks"`
	Mismatches int              `json:"mismatches"`
	ByStrategy map[string]count `json:"by_strategy"`
	Duration   time.Duration    `json:"duration"`
}

type count struct {
	Queries    int `json:"queries"`
	Matches    int `json:"matches"`
	Mismatches int `json:"mismatches"`
}

func parseStrategies(names []string) ([]quadtree.Strategy, error) {
	if len(names) == 0 {
		return quadtree.Strategies(), nil
	}
	strategies := make([]quadtree.Strategy, 0, len(names))
	for _, name := range names {
		s, err := quadtree.ParseStrategy(name)
		if err != nil {
			return nil, errors.New("invalid strategy").
				WithTag("name", name).
				Wrap(err)
		}
		strategies = append(strategies, s)
	}
	return strategies, nil
}

// randomBox returns a box with corners on a coarse grid, so that ties
// between coordinates are common, or occasionally a box with
// fractional bounds that cannot be stored exactly.
func randomBox(rnd *rand.Rand) quadtree.Box {
	x, y := float64(rnd.Intn(1000)), float64(rnd.Intn(1000))
	w, h := float64(rnd.Intn(50)), float64(rnd.Intn(50))
	if rnd.Intn(10) == 0 {
		x, y = x+rnd.Float64(), y+rnd.Float64()
	}
	return quadtree.NewBox(x, x+w, y, y+h)
}

// check indexes conf.NumBoxes random boxes, half of them in bulk and
// half one at a time with some removals in between, then runs
// conf.NumQueries random queries per strategy and compares each result
// with a linear scan.
func check(ctx context.Context, conf config) (report, error) {
	strategies, err := parseStrategies(conf.Strategies)
	if err != nil {
		return report{}, err
	}
	rnd := rand.New(rand.NewSource(conf.Seed))
	idx := quadbox.New[quadtree.Box](quadbox.BoxCompressor,
		quadbox.WithName("quadcheck"),
		quadbox.WithLeafCapacity(conf.LeafCapacity),
		quadbox.WithReorganizeEvery(conf.ReorganizeEvery),
		quadbox.WithConcurrency(conf.Concurrency))
	defer idx.Close()

	model := make(map[uint64]quadtree.Box, conf.NumBoxes)
	items := make([]quadbox.Item[quadtree.Box], 0, conf.NumBoxes/2)
	for id := uint64(0); id < uint64(conf.NumBoxes/2); id++ {
		b := randomBox(rnd)
		items = append(items, quadbox.Item[quadtree.Box]{ID: id, Geometry: b})
		model[id] = b
	}
	if err = idx.Load(ctx, items); err != nil {
		return report{}, err
	}
	for id := uint64(conf.NumBoxes / 2); id < uint64(conf.NumBoxes); id++ {
		b := randomBox(rnd)
		if err = idx.Insert(ctx, id, b); err != nil {
			return report{}, err
		}
		model[id] = b
		if rnd.Intn(10) == 0 {
			victim := uint64(rnd.Intn(int(id) + 1))
			if _, err = idx.Remove(ctx, victim); err != nil {
				return report{}, err
			}
			delete(model, victim)
		}
	}
	logs.WithTag("index", idx.String()).Debug("index built")

	refs := make([]quadtree.Ref, 0, len(model))
	for id, b := range model {
		refs = append(refs, quadtree.Ref{Box: b, ID: id})
	}

	r := report{
		Seed:       conf.Seed,
		Index:      idx.String(),
		ByStrategy: make(map[string]count, len(strategies)),
	}
	for _, s := range strategies {
		queries := make([]quadbox.Query[quadtree.Box], conf.NumQueries)
		for i := range queries {
			queries[i] = quadbox.Query[quadtree.Box]{Strategy: s, Geometry: randomBox(rnd)}
		}
		results, err := idx.QueryBatch(ctx, queries)
		if err != nil {
			return report{}, err
		}
		c := r.ByStrategy[s.String()]
		for i := range queries {
			expected := quadtree.Scan(refs, s, queries[i].Geometry)
			sort.Sort(expected)
			c.Queries++
			c.Matches += len(results[i])
			for _, m := range results[i] {
				if m.Recheck {
					r.Rechecks++
				}
			}
			if !reflect.DeepEqual(expected, results[i]) {
				c.Mismatches++
				logs.Warn(errors.New("query disagrees with a linear scan").
					WithTag("strategy", s.String()).
					WithTag("query", queries[i].Geometry.String()).
					WithTag("expected", len(expected)).
					WithTag("actual", len(results[i])))
			}
		}
		r.ByStrategy[s.String()] = c
		r.Queries += c.Queries
		r.Matches += c.Matches
		r.Mismatches += c.Mismatches
	}
	return r, nil
}
