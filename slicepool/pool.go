package slicepool

import (
	"sync/atomic"

	"github.com/grailbio/base/errors"
)

// Pool is a reference-counted-by-convention (Go's GC does the actual
// refcounting) container of Slices, built once by Build or BuildSynthetic
// and shared by every View constructed over it. The Slices it holds are
// only ever mutated by Reindex, never resized or replaced.
type Pool struct {
	slices []*Slice

	// columnReader enforces the single-column-reader invariant from the
	// package doc: at most one View may hold column access on a pool at
	// a time, because Reindex mutates state shared by every Slice in the
	// active set. 0 means free, 1 means held.
	columnReader int32
}

// Len reports how many slices the pool holds.
func (p *Pool) Len() int { return len(p.slices) }

// Slice returns the i'th slice in the pool.
func (p *Pool) Slice(i int) *Slice { return p.slices[i] }

// AcquireColumnReader claims the pool's single column-reader token. It
// returns false if another view already holds it; the caller must not
// call Reindex or walk column pages without holding the token, and must
// call the returned release func exactly once when done.
func (p *Pool) AcquireColumnReader() (release func(), ok bool) {
	if !atomic.CompareAndSwapInt32(&p.columnReader, 0, 1) {
		return nil, false
	}
	var released int32
	return func() {
		if atomic.CompareAndSwapInt32(&released, 0, 1) {
			atomic.StoreInt32(&p.columnReader, 0)
		}
	}, true
}

// Reindex rewrites base offsets so that every slice in active (sorted
// ascending, already validated to be in range) is contiguous in the order
// given, as seen by the view whose active set this is (identified by
// desired, its BitsFor tag). This is the reindex engine from the package
// doc. It is a no-op if every active slice is already tagged with desired
// -- which is always true the second time the same view reindexes an
// unchanged pool (idempotence). If another view has since reindexed any
// of these slices, the whole walk runs again and restores this view's
// layout (round-trip back to the same layout).
//
// Reindex assumes the caller holds the pool's column-reader token; it
// does not itself synchronize against concurrent callers.
func (p *Pool) Reindex(active []int) {
	desired := BitsFor(active)

	coherent := true
	for _, a := range active {
		if p.slices[a].state != desired {
			coherent = false
			break
		}
	}
	if coherent {
		return
	}

	var offset uint64
	for _, a := range active {
		s := p.slices[a]
		sliceStart := offset
		for k := range s.Cols {
			delta := int64(offset) - int64(s.ColOffsets[k])
			entries := s.Cols[k].Entries
			for i := range entries {
				entries[i].RowID = uint32(int64(entries[i].RowID) + delta)
			}
			s.ColOffsets[k] = offset
			offset += s.ColSizes[k]
		}
		s.Rows.BaseRowID = sliceStart
		s.state = desired
	}
}

// validateActive checks that every index in active is within range and
// that the pool itself never exceeded the bitmask width.
func validateActive(poolLen int, active []int) error {
	if poolLen > MaxSlices {
		return errors.Errorf("slicepool: pool has %d slices, exceeds the %d-slice limit", poolLen, MaxSlices)
	}
	if len(active) == 0 {
		return errors.Errorf("slicepool: active set must not be empty")
	}
	for _, a := range active {
		if a < 0 || a >= poolLen {
			return errors.Errorf("slicepool: active index %d out of range [0,%d)", a, poolLen)
		}
	}
	return nil
}

// ValidateActive is the exported precondition check used by view
// constructors before they touch the pool.
func ValidateActive(poolLen int, active []int) error {
	return validateActive(poolLen, active)
}
