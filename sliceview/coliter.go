package sliceview

import (
	"github.com/grailbio/base/errors"
	"github.com/grailbio/sparseslice/slicepool"
)

// ColBatch is one CSC page of one active slice, projected onto the
// requested feature subset.
type ColBatch struct {
	features []uint32
	page     *slicepool.ColPage
}

// NumFeatures is the number of features this batch was built for.
func (b ColBatch) NumFeatures() int { return len(b.features) }

// FeatureID returns the column index requested at position i.
func (b ColBatch) FeatureID(i int) uint32 { return b.features[i] }

// Feature returns the entries for the feature requested at position i.
func (b ColBatch) Feature(i int) []slicepool.RowEntry {
	return b.page.Inst(int(b.features[i]))
}

// ColumnIterator walks a view's CSC pages: active slices in ascending
// order, pages within a slice in build order, each page projected onto
// the requested feature subset. Only one ColumnIterator may be open on a
// given pool at a time (see package slicepool's single-column-reader
// invariant); Close releases that hold.
type ColumnIterator struct {
	view     *View
	features []uint32

	sliceCursor int
	pageCursor  int

	release func()
	closed  bool
}

// ColumnIterator triggers the reindex engine (if the pool's slices are
// not already coherent with this view) and returns a walk over the
// view's CSC pages restricted to features, or every column if features
// is empty.
//
// Only one view may hold column access to a given pool at a time; if
// another view's ColumnIterator is still open, this returns an error.
// The returned iterator must be closed to release the hold.
func (v *View) ColumnIterator(features ...uint32) (*ColumnIterator, error) {
	release, ok := v.pool.AcquireColumnReader()
	if !ok {
		return nil, errors.Errorf("sliceview: another view is already iterating columns on this pool")
	}

	v.pool.Reindex(v.active)

	feats := features
	if len(feats) == 0 {
		feats = make([]uint32, v.info.NumCol)
		for i := range feats {
			feats[i] = uint32(i)
		}
	}

	return &ColumnIterator{
		view:        v,
		features:    feats,
		sliceCursor: 0,
		pageCursor:  -1,
		release:     release,
	}, nil
}

// Next advances to the next page, returning false once every active
// slice's pages have been walked.
func (it *ColumnIterator) Next() bool {
	for {
		if it.sliceCursor >= len(it.view.active) {
			return false
		}
		s := it.view.pool.Slice(it.view.active[it.sliceCursor])
		it.pageCursor++
		if it.pageCursor >= len(s.Cols) {
			it.sliceCursor++
			it.pageCursor = -1
			continue
		}
		return true
	}
}

// Batch returns the current page, projected onto the requested features.
func (it *ColumnIterator) Batch() ColBatch {
	s := it.view.pool.Slice(it.view.active[it.sliceCursor])
	return ColBatch{features: it.features, page: &s.Cols[it.pageCursor]}
}

// Close releases the pool's single-column-reader hold. It is safe to
// call more than once.
func (it *ColumnIterator) Close() {
	if it.closed {
		return
	}
	it.closed = true
	it.release()
}
