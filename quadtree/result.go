// Copyright 2023 The quadbox (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package quadtree

import "strconv"

// Match is a single search result: a stored reference whose box stands
// in the searched relation to the query box.
type Match struct {
	Ref

	// Recheck is true if the match is only known to hold at 32-bit
	// precision, because the stored box or the query box was widened
	// when it was projected from its source, or is unbounded. The
	// caller should then confirm the relation against the source
	// geometries. If Recheck is false, the match is exact.
	Recheck bool
}

// String returns a compact description of the match.
func (m Match) String() string {
	return "Match{" + m.Box.String() + ",ID:" + strconv.FormatUint(m.ID, 10) + ",Recheck:" + strconv.FormatBool(m.Recheck) + "}"
}

// Results is a slice of Match structures which implements
// sort.Interface. The sort.Sort function will sort Results in
// ascending order of ID.
type Results []Match

// Len returns the length of the slice. It implements the corresponding
// method of sort.Interface.
func (rs Results) Len() int {
	return len(rs)
}

// Less establishes an absolute ordering by ascending order of ID. It
// implements the corresponding method of sort.Interface.
func (rs Results) Less(i, j int) bool {
	return rs[i].ID < rs[j].ID
}

// Swap swaps two elements of the slice. It implements the corresponding
// method of sort.Interface.
func (rs Results) Swap(i, j int) {
	rs[i], rs[j] = rs[j], rs[i]
}

// IDs returns the IDs of the results, in the same order.
func (rs Results) IDs() []uint64 {
	ids := make([]uint64, len(rs))
	for i := range rs {
		ids[i] = rs[i].ID
	}
	return ids
}
