package sliceview

import "github.com/grailbio/sparseslice/sparse"

// RowBatch is one active slice's contribution to a view's row walk: its
// rows, with the base row id it occupies within the view. base_rowid
// lives here, in the view, rather than on the underlying slice, which is
// why row iteration never needs to consult (or trigger) the reindex
// engine.
type RowBatch struct {
	BaseRowID uint64
	Size      uint64

	rows *sparse.Page
}

// Inst returns row i's entries, i local to this batch ([0, Size)).
func (b RowBatch) Inst(i int) []sparse.Entry { return b.rows.Inst(i) }

// RowIterator walks a view's active slices in ascending order, one
// RowBatch per slice. It is restartable via Rewind and safe for any
// number of concurrent readers, since it only reads.
type RowIterator struct {
	view *View
	idx  int
}

// RowIterator rewinds and returns the view's row walk. Safe to call at
// any point; unlike ColumnIterator it never triggers a reindex.
func (v *View) RowIterator() *RowIterator {
	return &RowIterator{view: v, idx: -1}
}

// Rewind restarts the walk at the first batch.
func (it *RowIterator) Rewind() { it.idx = -1 }

// Next advances to the next batch, returning false once exhausted.
func (it *RowIterator) Next() bool {
	it.idx++
	return it.idx < len(it.view.rowBatches)
}

// Batch returns the current RowBatch.
func (it *RowIterator) Batch() RowBatch { return it.view.rowBatches[it.idx] }

// BaseRowID, Size, and Inst let RowIterator satisfy matrixdiff's
// RowBatchIterator contract directly, without an adapter type.
func (it *RowIterator) BaseRowID() uint64 { return it.view.rowBatches[it.idx].BaseRowID }
func (it *RowIterator) Size() int         { return int(it.view.rowBatches[it.idx].Size) }
func (it *RowIterator) Inst(i int) []sparse.Entry {
	return it.view.rowBatches[it.idx].Inst(i)
}
