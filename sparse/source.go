package sparse

// RowSource is the collaborator contract the slice builder consumes: any
// concrete matrix type, file loader, or generator can feed the builder as
// long as it can report its shape and hand back a restartable walk over
// its rows. The builder never mutates a RowSource.
type RowSource interface {
	// Info returns the source's scalar shape and per-row metadata.
	Info() MetaInfo
	// Rows returns a fresh, independent walk over the source's rows in
	// row-id order starting at 0. Calling Rows() again must restart from
	// the beginning; the builder relies on this to re-scan the source
	// once per partition element.
	Rows() RowCursor
}

// RowCursor walks a RowSource row by row. Next must be called before the
// first RowID/Entries access.
type RowCursor interface {
	// Next advances to the next row, returning false once the source is
	// exhausted.
	Next() bool
	// RowID is the 0-based position of the current row within the
	// source.
	RowID() uint64
	// Entries is the current row's sparse cells. The slice must not be
	// retained past the next call to Next.
	Entries() []Entry
}
