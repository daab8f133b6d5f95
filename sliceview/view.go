// Package sliceview composes an ordered subset of a slice pool's slices
// into a single virtual matrix: a View. A View derives and caches its
// aggregate metadata at construction, then exposes row and column
// iteration over the pool's shared storage without copying it.
package sliceview

import (
	"sort"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/sparseslice/slicepool"
	"github.com/grailbio/sparseslice/sparse"
)

// View presents the union of an ordered set of pool slices as a virtual
// matrix. Constructing a View never mutates the pool; mutation (the
// reindex engine) only happens lazily, when ColumnIterator is called and
// the active slices are not already tagged for this view.
type View struct {
	pool   *slicepool.Pool
	active []int // sorted ascending

	info       sparse.MetaInfo
	colSizes   []uint64
	rowBatches []RowBatch
}

// New declares a view over the given pool indices. active is sorted
// (ascending) internally; callers may pass it in any order but it is
// always walked in ascending order thereafter.
func New(pool *slicepool.Pool, active []int) (*View, error) {
	if err := slicepool.ValidateActive(pool.Len(), active); err != nil {
		return nil, err
	}

	sorted := append([]int(nil), active...)
	sort.Ints(sorted)
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			return nil, errors.Errorf("sliceview: active index %d given more than once", sorted[i])
		}
	}

	v := &View{pool: pool, active: sorted}
	v.info.NumCol = pool.Slice(sorted[0]).Info.NumCol
	v.colSizes = make([]uint64, v.info.NumCol)

	var offset uint64
	for _, a := range sorted {
		s := pool.Slice(a)
		if s.Info.NumCol != v.info.NumCol {
			return nil, errors.Errorf("sliceview: slice %d has %d columns, view expects %d", a, s.Info.NumCol, v.info.NumCol)
		}

		v.rowBatches = append(v.rowBatches, RowBatch{BaseRowID: offset, Size: s.Info.NumRow, rows: &s.Rows})
		offset += s.Info.NumRow

		v.info.NumRow += s.Info.NumRow
		v.info.NumNonzero += s.Info.NumNonzero

		for k := range s.Cols {
			page := &s.Cols[k]
			for c := 0; c < page.NumCols(); c++ {
				v.colSizes[c] += page.RowPtr[c+1] - page.RowPtr[c]
			}
		}
	}

	v.info.Labels = mergeFloat32(pool, sorted, v.info.NumRow, func(s *slicepool.Slice) []float32 { return s.Info.Labels })
	v.info.Weights = mergeFloat32(pool, sorted, v.info.NumRow, func(s *slicepool.Slice) []float32 { return s.Info.Weights })
	v.info.BaseMargin = mergeFloat32(pool, sorted, v.info.NumRow, func(s *slicepool.Slice) []float32 { return s.Info.BaseMargin })
	v.info.RootIndex = mergeUint32(pool, sorted, v.info.NumRow, func(s *slicepool.Slice) []uint32 { return s.Info.RootIndex })
	v.info.GroupPtr = mergeUint64(pool, sorted, v.info.NumRow, func(s *slicepool.Slice) []uint64 { return s.Info.GroupPtr })

	return v, nil
}

// Info returns the view's aggregated metadata.
func (v *View) Info() sparse.MetaInfo { return v.info }

// ColSize returns the number of non-missing entries in column c across
// the view's active slices.
func (v *View) ColSize(c uint32) uint64 { return v.colSizes[c] }

// ColDensity returns column c's fraction of non-missing rows, in [0,1].
func (v *View) ColDensity(c uint32) float32 {
	if v.info.NumRow == 0 {
		return 0
	}
	return float32(v.colSizes[c]) / float32(v.info.NumRow)
}

// SingleColBlock reports whether the view's active set is a single slice
// with a single CSC page -- the cheapest possible column layout.
func (v *View) SingleColBlock() bool {
	if len(v.active) != 1 {
		return false
	}
	return len(v.pool.Slice(v.active[0]).Cols) == 1
}

func mergeFloat32(pool *slicepool.Pool, active []int, numRow uint64, field func(*slicepool.Slice) []float32) []float32 {
	if len(field(pool.Slice(active[0]))) == 0 {
		return nil
	}
	out := make([]float32, numRow)
	var offset uint64
	for _, a := range active {
		s := pool.Slice(a)
		copy(out[offset:], field(s))
		offset += s.Info.NumRow
	}
	return out
}

func mergeUint32(pool *slicepool.Pool, active []int, numRow uint64, field func(*slicepool.Slice) []uint32) []uint32 {
	if len(field(pool.Slice(active[0]))) == 0 {
		return nil
	}
	out := make([]uint32, numRow)
	var offset uint64
	for _, a := range active {
		s := pool.Slice(a)
		copy(out[offset:], field(s))
		offset += s.Info.NumRow
	}
	return out
}

func mergeUint64(pool *slicepool.Pool, active []int, numRow uint64, field func(*slicepool.Slice) []uint64) []uint64 {
	if len(field(pool.Slice(active[0]))) == 0 {
		return nil
	}
	out := make([]uint64, numRow)
	var offset uint64
	for _, a := range active {
		s := pool.Slice(a)
		copy(out[offset:], field(s))
		offset += s.Info.NumRow
	}
	return out
}
