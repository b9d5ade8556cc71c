// Copyright 2023 The quadbox (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package quadtree

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	centroid := box(4.5, 5.5, 4.5, 5.5)

	testCases := []struct {
		name     string
		input    Box
		expected Quadrant
	}{
		{"LowerLeft", box(0, 1, 0, 1), 0},
		{"LowerRight", box(9, 10, 0, 1), bitXMin | bitXMax},
		{"UpperLeft", box(0, 1, 9, 10), bitYMin | bitYMax},
		{"UpperRight", box(9, 10, 9, 10), bitXMin | bitXMax | bitYMin | bitYMax},
		{"Tie", centroid, 0},
		{"TieXMax", box(5, 5.5, 0, 0), bitXMin},
		{"Wide", box(0, 10, 0, 10), bitXMax | bitYMax},
		{"Unbounded", UnboundedBox, bitXMax | bitYMax},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			actual := Classify(centroid, testCase.input)

			assert.Equal(t, testCase.expected, actual)
			assert.Less(t, int(actual), NumQuadrants)
		})
	}
}

func TestClassify_Bits(t *testing.T) {
	rnd := rand.New(rand.NewSource(0))

	for i := 0; i < 1000; i++ {
		c, b := randomBox(rnd), randomBox(rnd)

		q := Classify(c, b)

		assert.Equal(t, q, Classify(c, b))
		assert.Equal(t, b.XMin > c.XMin, q&bitXMin != 0)
		assert.Equal(t, b.XMax > c.XMax, q&bitXMax != 0)
		assert.Equal(t, b.YMin > c.YMin, q&bitYMin != 0)
		assert.Equal(t, b.YMax > c.YMax, q&bitYMax != 0)
	}
}
