// Package refmatrix provides a minimal, fully in-memory matrix useful as
// both a slicepool.Build source and a matrixdiff comparison target --
// the role the spec calls an "external collaborator": something that
// already has the whole corpus resident and just needs to hand rows to
// the builder, or to diff a reconstructed view against the original.
package refmatrix

import (
	"github.com/grailbio/sparseslice/matrixdiff"
	"github.com/grailbio/sparseslice/sparse"
)

// MemMatrix is a single CSR page plus its metadata, held entirely in
// memory.
type MemMatrix struct {
	info sparse.MetaInfo
	rows *sparse.Page
}

// New wraps a CSR page and its metadata as a MemMatrix.
func New(info sparse.MetaInfo, rows *sparse.Page) *MemMatrix {
	return &MemMatrix{info: info, rows: rows}
}

// Info implements sparse.RowSource and matrixdiff.Matrix.
func (m *MemMatrix) Info() sparse.MetaInfo { return m.info }

// Rows implements sparse.RowSource, letting a MemMatrix feed
// slicepool.Build directly.
func (m *MemMatrix) Rows() sparse.RowCursor {
	return &rowCursor{rows: m.rows, idx: -1}
}

type rowCursor struct {
	rows *sparse.Page
	idx  int
}

func (c *rowCursor) Next() bool {
	c.idx++
	return c.idx < c.rows.NumRows()
}

func (c *rowCursor) RowID() uint64         { return uint64(c.idx) }
func (c *rowCursor) Entries() []sparse.Entry { return c.rows.Inst(c.idx) }

// RowIterator returns a single-batch, restartable walk over the whole
// matrix.
func (m *MemMatrix) RowIterator() *RowIterator {
	return &RowIterator{rows: m.rows, started: false}
}

// RowWalk implements matrixdiff.Matrix.
func (m *MemMatrix) RowWalk() matrixdiff.RowBatchIterator { return m.RowIterator() }

// RowIterator is MemMatrix's single-batch row-batch walk.
type RowIterator struct {
	rows    *sparse.Page
	started bool
}

// Rewind restarts the walk at its single batch.
func (it *RowIterator) Rewind() { it.started = false }

// Next advances to the (only) batch, then reports exhaustion.
func (it *RowIterator) Next() bool {
	if it.started {
		return false
	}
	it.started = true
	return true
}

// BaseRowID is always 0: a MemMatrix is never sliced.
func (it *RowIterator) BaseRowID() uint64 { return 0 }

// Size is the whole matrix's row count.
func (it *RowIterator) Size() int { return it.rows.NumRows() }

// Inst returns row i's entries.
func (it *RowIterator) Inst(i int) []sparse.Entry { return it.rows.Inst(i) }
