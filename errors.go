// Copyright 2023 The quadbox (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package quadbox

// Error types attached to the errors returned by an Index. Use
// errors.IsType from github.com/aukilabs/go-tooling/pkg/errors to test
// for them.
const (
	// ErrTypeUnknownStrategy is the type of the error returned when a
	// query names a strategy code outside the twelve known ones. The
	// error carries the code in its "code" tag.
	ErrTypeUnknownStrategy = "quadbox_unknown_strategy"
	// ErrTypeCompress is the type of the error returned when the
	// Compressor fails to produce a box for an indexed geometry.
	ErrTypeCompress = "quadbox_compress"
	// ErrTypeClosed is the type of the error returned by every
	// operation on an Index which has been closed.
	ErrTypeClosed = "quadbox_closed"
	// ErrTypeNotFound is the type of the error returned when looking up
	// an ID the Index does not hold.
	ErrTypeNotFound = "quadbox_not_found"
	// ErrTypeInvalidArgument is the type of the error returned for a
	// negative, infinite or NaN query radius.
	ErrTypeInvalidArgument = "quadbox_invalid_argument"
)

const packageName = "quadbox: "

func textPanic(text string) {
	panic(packageName + text)
}
