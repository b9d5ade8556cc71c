// Copyright 2023 The quadbox (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Command quadcheck builds an index of random boxes, runs random
// queries against it for every strategy, and checks each answer
// against a linear scan of the same boxes.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"syscall"
	"time"

	"github.com/aukilabs/go-tooling/pkg/cli"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/gogama/quadbox"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/segmentio/encoding/json"
)

// The quadcheck version number. Set at build.
var version = "v0.1.0"

type config struct {
	NumBoxes        int      `cli:""        env:"QUADCHECK_NUM_BOXES"        help:"The number of random boxes to index."`
	NumQueries      int      `cli:""        env:"QUADCHECK_NUM_QUERIES"      help:"The number of random queries to run per strategy."`
	Strategies      []string `cli:""        env:"QUADCHECK_STRATEGIES"       help:"Comma separated strategy names. All strategies when empty."`
	Seed            int64    `cli:""        env:"QUADCHECK_SEED"             help:"The random seed. A time-based seed when zero."`
	LeafCapacity    int      `cli:",hidden" env:"QUADCHECK_LEAF_CAPACITY"    help:"The maximum number of references in a leaf."`
	ReorganizeEvery int      `cli:",hidden" env:"QUADCHECK_REORGANIZE_EVERY" help:"The number of mutations between tree rebuilds. Zero disables rebuilds."`
	Concurrency     int      `cli:",hidden" env:"QUADCHECK_CONCURRENCY"      help:"The maximum number of queries run at once."`
	MetricsAddr     string   `cli:""        env:"QUADCHECK_METRICS_ADDR"     help:"Listening address for Prometheus metrics. Exits after the check when empty."`
	LogLevel        string   `cli:""        env:"QUADCHECK_LOG_LEVEL"        help:"Log level (debug|info|warning|error)."`
	LogIndent       bool     `cli:""        env:"QUADCHECK_LOG_INDENT"       help:"Indent logs."`
	Version         bool     `cli:""        env:"-"                          help:"Show version."`
	Help            bool     `cli:""        env:"-"                          help:"Show help."`
}

func main() {
	conf := config{
		NumBoxes:        10000,
		NumQueries:      100,
		LeafCapacity:    4,
		ReorganizeEvery: quadbox.DefaultReorganizeEvery,
		Concurrency:     8,
		LogLevel:        logs.InfoLevel.String(),
	}

	ctx, cancel := cli.ContextWithSignals(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	cli.Register().
		Help("Cross-checks quadbox queries against a linear scan.").
		Options(&conf)
	cli.Load()

	if conf.Version {
		fmt.Println(version)
		os.Exit(0)
	}

	logs.SetLevel(logs.ParseLevel(conf.LogLevel))
	logs.Encoder = json.Marshal
	if conf.LogIndent {
		logs.Encoder = func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		}
	}
	errors.Encoder = json.Marshal

	if err := validateConfig(&conf); err != nil {
		logs.Fatal(err)
	}

	var srv *http.Server
	if conf.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		srv = &http.Server{Addr: conf.MetricsAddr, Handler: mux}
		go serve(ctx, srv)
	}

	logs.WithTag("version", version).
		WithTag("num_boxes", conf.NumBoxes).
		WithTag("num_queries", conf.NumQueries).
		WithTag("seed", conf.Seed).
		Info("starting quadcheck")

	start := time.Now()
	r, err := check(ctx, conf)
	if err != nil {
		logs.Fatal(errors.New("check failed").Wrap(err))
	}
	r.Duration = time.Since(start)

	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		logs.Fatal(errors.New("encoding report failed").Wrap(err))
	}
	fmt.Println(string(b))

	if r.Mismatches > 0 {
		logs.Error(errors.Newf("%d queries disagree with a linear scan", r.Mismatches).
			WithTag("seed", conf.Seed))
	} else {
		logs.WithTag("queries", r.Queries).
			WithTag("matches", r.Matches).
			Info("all queries agree with a linear scan")
	}

	if srv != nil {
		<-ctx.Done()
	}
	if r.Mismatches > 0 {
		os.Exit(1)
	}
}

func validateConfig(conf *config) error {
	if conf.NumBoxes < 0 {
		return errors.New("number of boxes must not be negative").
			WithTag("num_boxes", conf.NumBoxes)
	}
	if conf.NumQueries < 0 {
		return errors.New("number of queries must not be negative").
			WithTag("num_queries", conf.NumQueries)
	}
	if conf.LeafCapacity < 1 {
		return errors.New("leaf capacity must be at least 1").
			WithTag("leaf_capacity", conf.LeafCapacity)
	}
	if conf.ReorganizeEvery < 0 {
		return errors.New("reorganize interval must not be negative").
			WithTag("reorganize_every", conf.ReorganizeEvery)
	}
	if conf.Concurrency < 1 {
		return errors.New("concurrency must be at least 1").
			WithTag("concurrency", conf.Concurrency)
	}
	if _, err := parseStrategies(conf.Strategies); err != nil {
		return err
	}
	if conf.Seed == 0 {
		conf.Seed = time.Now().UnixNano()
	}
	return nil
}

func serve(ctx context.Context, s *http.Server) {
	go func() {
		<-ctx.Done()

		if err := s.Shutdown(context.Background()); err != nil {
			logs.Warn(errors.Newf("shutting down the server failed").
				WithTag("addr", s.Addr).
				Wrap(err))
		}
	}()

	logs.WithTag("addr", s.Addr).Info("starting metrics server")

	switch err := s.ListenAndServe(); err {
	case nil, http.ErrServerClosed, context.Canceled:
		logs.WithTag("addr", s.Addr).Info("stopping metrics server")

	default:
		logs.Warn(errors.Newf("metrics server stopped").
			WithTag("addr", s.Addr).
			Wrap(err))
	}
}
