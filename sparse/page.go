// Package sparse defines the row-major storage primitives shared by the
// slice pool and the views built on top of it: the sparse (column, value)
// entry, the CSR page that groups entries into rows, and the per-row
// metadata vectors that travel alongside a matrix.
package sparse

// Entry is a single non-zero cell of a sparse row: the feature (column)
// it belongs to and its value. Zero-valued cells are never stored.
type Entry struct {
	Index uint32
	Value float32
}

// Page is an append-only CSR block: RowPtr[i]:RowPtr[i+1] indexes the
// entries of row i inside Entries. A freshly constructed Page has
// RowPtr == []uint64{0} and no rows.
//
// Page is written by exactly one goroutine during construction (the slice
// builder) and is safe for concurrent readers once that goroutine is done
// appending rows.
type Page struct {
	RowPtr  []uint64
	Entries []Entry

	// BaseRowID is the row offset this page's row 0 corresponds to within
	// whichever view is currently iterating over it. It is not read by
	// Page itself; the reindex engine is the only writer.
	BaseRowID uint64
}

// NewPage returns an empty, ready-to-append Page.
func NewPage() *Page {
	return &Page{RowPtr: []uint64{0}}
}

// PushRow appends one row's worth of entries, copying them into the
// page's own Entries array; the caller's slice is not retained.
func (p *Page) PushRow(entries []Entry) {
	p.Entries = append(p.Entries, entries...)
	p.RowPtr = append(p.RowPtr, uint64(len(p.Entries)))
}

// NumRows reports how many rows have been pushed.
func (p *Page) NumRows() int {
	if len(p.RowPtr) == 0 {
		return 0
	}
	return len(p.RowPtr) - 1
}

// Inst returns row i's entries as a slice into the page's backing array.
// The caller must not retain the slice across further mutation of p.
func (p *Page) Inst(i int) []Entry {
	return p.Entries[p.RowPtr[i]:p.RowPtr[i+1]]
}
