// Package slicepool partitions a row source into an immutable pool of
// Slices -- each holding its own CSR page, paginated CSC pages, and
// per-row metadata -- and provides the reindex engine that keeps a
// slice's column-page row ids consistent with whichever view currently
// wants to walk the shared pool.
//
// Single-column-reader invariant: the reindex engine rewrites slice state
// that every view over the pool shares, so at most one view may walk a
// pool's column pages at a time. Pool.AcquireColumnReader hands out that
// single hold. Row iteration reads no reindexed state and needs no hold.
package slicepool

import "github.com/grailbio/sparseslice/sparse"

// MaxSlices is the largest pool size supported: the view-identity token
// (ConfigState) is a 64-bit mask, one bit per slice.
const MaxSlices = 64

// MaxRowsPerColPage bounds how many rows a single CSC page may cover. A
// slice with more rows than this gets multiple CSC pages.
const MaxRowsPerColPage = 32768

// ConfigState is the view-identity token recorded on a Slice: the bitmask
// of pool indices that make up whichever view last reindexed it. Two
// views with the same active set compare equal under this token, which
// is exactly what lets a freshly-reindexed slice be reused without
// rework by a later view that happens to want the same set.
type ConfigState uint64

// BitsFor computes the ConfigState identifying the view whose active set
// is exactly the given pool indices.
func BitsFor(active []int) ConfigState {
	var cs ConfigState
	for _, a := range active {
		cs |= ConfigState(1) << uint(a)
	}
	return cs
}

// RowEntry is one cell of a CSC page: the row at which the value occurs.
// CSC pages are built by transposing a CSR page, which repurposes the
// entry's column-index field to carry a row id instead -- RowEntry names
// that field for what it actually holds, rather than reusing sparse.Entry
// and its Index-means-column semantics.
type RowEntry struct {
	RowID uint32
	Value float32
}

// ColPage is a CSC-like page: RowPtr[c]:RowPtr[c+1] indexes column c's
// entries inside Entries, each naming the row it occurs at. Entries
// within a column are sorted by Value ascending (ties keep scatter
// order), so split-finding algorithms can scan a column in value order.
type ColPage struct {
	RowPtr  []uint64
	Entries []RowEntry
}

// Inst returns column c's entries.
func (p *ColPage) Inst(c int) []RowEntry {
	return p.Entries[p.RowPtr[c]:p.RowPtr[c+1]]
}

// NumCols reports how many columns this page covers.
func (p *ColPage) NumCols() int {
	if len(p.RowPtr) == 0 {
		return 0
	}
	return len(p.RowPtr) - 1
}

// Slice is one unit of pool storage: a CSR page, one or more CSC pages
// paginated at MaxRowsPerColPage, and the metadata for just this slice's
// rows. Everything here is built once by the slice builder; the only
// mutation afterward is the reindex engine rewriting ColOffsets, the CSC
// RowID fields, Rows.BaseRowID, and state, on behalf of whichever view is
// currently iterating columns.
type Slice struct {
	Info sparse.MetaInfo
	Rows sparse.Page

	Cols       []ColPage
	ColOffsets []uint64
	ColSizes   []uint64

	state ConfigState
}

// RowCount is the number of rows stored in this slice.
func (s *Slice) RowCount() int { return s.Rows.NumRows() }

// ConfigState reports the identity of the view that last reindexed this
// slice's column pages.
func (s *Slice) ConfigState() ConfigState { return s.state }
