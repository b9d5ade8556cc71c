// Copyright 2023 The quadbox (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package quadbox

import (
	"sync"
	"testing"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/gogama/quadbox/quadtree"
	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/mock"
)

type mockCompressor struct {
	mock.Mock
}

func (m *mockCompressor) Compress(g string) (quadtree.Box, error) {
	args := m.Called(g)
	return args.Get(0).(quadtree.Box), args.Error(1)
}

// logCounter routes log entries to t.Log and counts them.
type logCounter struct {
	mu sync.Mutex
	n  int
}

func (c *logCounter) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.n
}

func captureLogs(t *testing.T) *logCounter {
	var c logCounter
	logger := t.Log

	logs.Encoder = json.Marshal
	errors.Encoder = json.Marshal
	logs.SetLogger(func(e logs.Entry) {
		c.mu.Lock()
		defer c.mu.Unlock()

		c.n++
		if logger != nil {
			logger(e)
		}
	})
	t.Cleanup(func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		logger = nil
	})
	return &c
}

func box(xmin, xmax, ymin, ymax float64) quadtree.Box {
	return quadtree.NewBox(xmin, xmax, ymin, ymax)
}
