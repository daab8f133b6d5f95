// Package matrixdiff structurally compares two matrices -- metadata plus
// a row-by-row walk -- to validate that a reconstructed view is
// bit-for-bit equivalent to the matrix it was built from.
package matrixdiff

import (
	"github.com/grailbio/base/errors"
	"github.com/grailbio/sparseslice/sparse"
)

// Matrix is anything that can report aggregate metadata and hand back a
// restartable row-batch walk. Producers implement RowWalk alongside their
// own, richer RowIterator method so that one concrete iterator type can
// serve both its native API and this package's comparison contract.
type Matrix interface {
	Info() sparse.MetaInfo
	RowWalk() RowBatchIterator
}

// RowBatchIterator is the row-batch walk contract Diff needs: restart,
// advance, and read the current batch. sliceview.RowIterator and
// refmatrix.RowIterator both implement it directly.
type RowBatchIterator interface {
	Rewind()
	Next() bool
	BaseRowID() uint64
	Size() int
	Inst(i int) []sparse.Entry
}

// Diff returns nil if a and b are structurally equal: same metadata, and
// row-by-row identical entries. It returns a descriptive error at the
// first mismatch. a and b must not be the same matrix.
func Diff(a, b Matrix) error {
	if a == b {
		return errors.Errorf("matrixdiff: cannot diff a matrix with itself")
	}

	if err := diffInfo(a.Info(), b.Info()); err != nil {
		return err
	}
	return diffRows(a, b)
}

func diffInfo(a, b sparse.MetaInfo) error {
	if a.NumRow != b.NumRow {
		return errors.Errorf("matrixdiff: num_row mismatch: %d vs %d", a.NumRow, b.NumRow)
	}
	if a.NumCol != b.NumCol {
		return errors.Errorf("matrixdiff: num_col mismatch: %d vs %d", a.NumCol, b.NumCol)
	}
	if a.NumNonzero != b.NumNonzero {
		return errors.Errorf("matrixdiff: num_nonzero mismatch: %d vs %d", a.NumNonzero, b.NumNonzero)
	}
	if !a.Equal(b) {
		return errors.Errorf("matrixdiff: per-row metadata mismatch")
	}
	return nil
}

func diffRows(a, b Matrix) error {
	numRow := a.Info().NumRow
	if numRow == 0 {
		return nil
	}

	itA := a.RowWalk()
	itB := b.RowWalk()
	itA.Rewind()
	itB.Rewind()

	if !itA.Next() {
		return errors.Errorf("matrixdiff: a has no row batches")
	}
	if !itB.Next() {
		return errors.Errorf("matrixdiff: b has no row batches")
	}
	if itA.BaseRowID() != 0 {
		return errors.Errorf("matrixdiff: a's first batch has base_rowid %d, want 0", itA.BaseRowID())
	}
	if itB.BaseRowID() != 0 {
		return errors.Errorf("matrixdiff: b's first batch has base_rowid %d, want 0", itB.BaseRowID())
	}

	var cursorA, cursorB int
	for row := uint64(0); row < numRow; row++ {
		if cursorA >= itA.Size() {
			if !itA.Next() {
				return errors.Errorf("matrixdiff: a ran out of batches at row %d", row)
			}
			if itA.BaseRowID() != row {
				return errors.Errorf("matrixdiff: a's batch at row %d has base_rowid %d", row, itA.BaseRowID())
			}
			cursorA = 0
		}
		if cursorB >= itB.Size() {
			if !itB.Next() {
				return errors.Errorf("matrixdiff: b ran out of batches at row %d", row)
			}
			if itB.BaseRowID() != row {
				return errors.Errorf("matrixdiff: b's batch at row %d has base_rowid %d", row, itB.BaseRowID())
			}
			cursorB = 0
		}

		instA := itA.Inst(cursorA)
		instB := itB.Inst(cursorB)
		if len(instA) != len(instB) {
			return errors.Errorf("matrixdiff: row %d: length mismatch: %d vs %d", row, len(instA), len(instB))
		}
		for i := range instA {
			if instA[i].Index != instB[i].Index || instA[i].Value != instB[i].Value {
				return errors.Errorf("matrixdiff: row %d entry %d: (%d,%v) vs (%d,%v)",
					row, i, instA[i].Index, instA[i].Value, instB[i].Index, instB[i].Value)
			}
		}

		cursorA++
		cursorB++
	}
	return nil
}
