package slicepool

import (
	"sort"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/traverse"
	"github.com/grailbio/sparseslice/sparse"
)

// buildColumns fills in s.Cols/ColOffsets/ColSizes by transposing s.Rows
// column-wise, one CSC page per block of at most MaxRowsPerColPage rows.
func buildColumns(s *Slice, opts BuildOptions) error {
	nrow := s.Rows.NumRows()
	ncol := int(s.Info.NumCol)

	for pageStart := 0; pageStart < nrow; {
		pageRows := nrow - pageStart
		if pageRows > MaxRowsPerColPage {
			pageRows = MaxRowsPerColPage
		}
		page, err := transposePage(&s.Rows, pageStart, pageRows, ncol, opts.workers())
		if err != nil {
			return err
		}
		s.Cols = append(s.Cols, *page)
		s.ColOffsets = append(s.ColOffsets, uint64(pageStart))
		s.ColSizes = append(s.ColSizes, uint64(pageRows))
		pageStart += pageRows
	}
	return nil
}

// transposePage builds one CSC page covering rows [pageStart,
// pageStart+pageRows) of rows, in four steps:
//
//  1. Budget pass: each worker scans its contiguous share of the page's
//     rows and counts entries per column, privately.
//  2. Reduce: per-column totals become a row_ptr prefix sum; each
//     worker's starting cursor within a column's bucket is derived in
//     ascending worker order, so the result never depends on goroutine
//     scheduling.
//  3. Scatter pass: each worker writes its rows' entries straight into
//     their final slot using the cursor from step 2.
//  4. Sort: each column's entries are stable-sorted by value, so ties
//     keep the scatter (row) order.
func transposePage(rows *sparse.Page, pageStart, pageRows, ncol, workers int) (*ColPage, error) {
	if workers > pageRows {
		workers = pageRows
	}
	if workers < 1 {
		workers = 1
	}

	bounds := make([]int, workers+1)
	for w := 0; w <= workers; w++ {
		bounds[w] = pageStart + (w*pageRows)/workers
	}

	counts := make([][]uint64, workers)
	for w := range counts {
		counts[w] = make([]uint64, ncol)
	}

	if err := traverse.Each(workers, func(w int) error {
		for r := bounds[w]; r < bounds[w+1]; r++ {
			for _, e := range rows.Inst(r) {
				if int(e.Index) >= ncol {
					return errors.Errorf("slicepool: column index %d out of range (num_col=%d)", e.Index, ncol)
				}
				counts[w][e.Index]++
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}

	rowPtr := make([]uint64, ncol+1)
	cursor := make([][]uint64, workers)
	for w := range cursor {
		cursor[w] = make([]uint64, ncol)
	}
	for c := 0; c < ncol; c++ {
		var total uint64
		for w := 0; w < workers; w++ {
			cursor[w][c] = rowPtr[c] + total
			total += counts[w][c]
		}
		rowPtr[c+1] = rowPtr[c] + total
	}

	entries := make([]RowEntry, rowPtr[ncol])

	if err := traverse.Each(workers, func(w int) error {
		cur := cursor[w]
		for r := bounds[w]; r < bounds[w+1]; r++ {
			for _, e := range rows.Inst(r) {
				slot := cur[e.Index]
				entries[slot] = RowEntry{RowID: uint32(r), Value: e.Value}
				cur[e.Index]++
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}

	for c := 0; c < ncol; c++ {
		bucket := entries[rowPtr[c]:rowPtr[c+1]]
		sort.SliceStable(bucket, func(i, j int) bool { return bucket[i].Value < bucket[j].Value })
	}

	return &ColPage{RowPtr: rowPtr, Entries: entries}, nil
}
