package sliceview

import "github.com/grailbio/sparseslice/matrixdiff"

// RowWalk satisfies matrixdiff.Matrix, letting a View be compared
// directly against any other Matrix (typically the corpus it was sliced
// from, via a refmatrix.MemMatrix).
func (v *View) RowWalk() matrixdiff.RowBatchIterator { return v.RowIterator() }
