// Copyright 2023 The quadbox (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package quadbox

import (
	"sync/atomic"

	"github.com/aukilabs/go-tooling/pkg/errors"
)

type stateful struct {
	state atomic.Int32
}

type state = int32

const (
	open   state = 0x00
	closed state = 0x01
)

// close moves to the closed state. Only the first call succeeds.
func (s *stateful) close(name string) error {
	if !s.state.CompareAndSwap(open, closed) {
		return errClosed(name)
	}
	return nil
}

// check returns an error if the closed state has been reached.
func (s *stateful) check(name string) error {
	if s.state.Load() == closed {
		return errClosed(name)
	}
	return nil
}

func errClosed(name string) error {
	return errors.New(packageName + "index is closed").
		WithType(ErrTypeClosed).
		WithTag("index", name)
}
