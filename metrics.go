// Copyright 2023 The quadbox (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package quadbox

import (
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/gogama/quadbox/quadtree"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	indexLabel     = "index"
	strategyLabel  = "strategy"
	operationLabel = "operation"
	errTypeLabel   = "error_type"
)

var (
	queries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quadbox_queries",
		Help: "The number of queries run against an index.",
	}, []string{
		indexLabel,
		strategyLabel,
	})

	queryErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quadbox_query_errors",
		Help: "The errors that occured while running a query.",
	}, []string{
		indexLabel,
		errTypeLabel,
	})

	queryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "quadbox_query_latency",
		Help: "The time to run a query.",
	}, []string{
		indexLabel,
		strategyLabel,
	})

	queryNodesVisited = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quadbox_query_nodes_visited",
		Help: "The number of tree nodes descended into by queries.",
	}, []string{
		indexLabel,
		strategyLabel,
	})

	queryNodesPruned = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quadbox_query_nodes_pruned",
		Help: "The number of subtrees skipped by queries.",
	}, []string{
		indexLabel,
		strategyLabel,
	})

	queryMatches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quadbox_query_matches",
		Help: "The number of matches returned by queries.",
	}, []string{
		indexLabel,
		strategyLabel,
	})

	mutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quadbox_mutations",
		Help: "The number of insert, remove and load operations applied to an index.",
	}, []string{
		indexLabel,
		operationLabel,
	})

	reorganizations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quadbox_reorganizations",
		Help: "The number of times an index tree was rebuilt from scratch.",
	}, []string{
		indexLabel,
	})

	indexedRefs = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "quadbox_indexed_refs",
		Help: "The number of references stored in an index tree.",
	}, []string{
		indexLabel,
	})
)

func instrumentQuery(index string, s quadtree.Strategy, stats quadtree.Stats, start time.Time) {
	labels := prometheus.Labels{
		indexLabel:    index,
		strategyLabel: s.String(),
	}
	queries.With(labels).Inc()
	queryLatency.With(labels).Observe(time.Since(start).Seconds())
	queryNodesVisited.With(labels).Add(float64(stats.NodesVisited))
	queryNodesPruned.With(labels).Add(float64(stats.Pruned))
	queryMatches.With(labels).Add(float64(stats.Matches))
}

func instrumentQueryError(index string, err error) {
	queryErrors.
		With(prometheus.Labels{
			indexLabel:   index,
			errTypeLabel: errors.Type(err),
		}).
		Inc()
}

func instrumentMutation(index, operation string) {
	mutations.With(prometheus.Labels{
		indexLabel:     index,
		operationLabel: operation,
	}).Inc()
}

func instrumentReorganize(index string) {
	reorganizations.With(prometheus.Labels{
		indexLabel: index,
	}).Inc()
}

func instrumentTree(index string, t *quadtree.Tree) {
	indexedRefs.With(prometheus.Labels{
		indexLabel: index,
	}).Set(float64(t.Len()))
}
