package slicepool

import (
	"runtime"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/sparseslice/sparse"
)

// BuildOptions controls the slice builder's internal parallelism.
type BuildOptions struct {
	// Workers bounds how many goroutines the CSC transpose uses per
	// column page. Zero means runtime.NumCPU().
	Workers int
}

func (o BuildOptions) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.NumCPU()
}

// Build partitions src into a pool of slices, one per entry of
// partition. Each partition[i] is a set of distinct, ascending row ids
// into src; the builder extracts those rows' CSR data, gathers the
// aligned metadata, and transposes the result into paginated CSC pages.
//
// len(partition) must not exceed MaxSlices. Overlap between partition
// elements is rejected: every row may belong to at most one slice.
func Build(src sparse.RowSource, partition [][]uint64, opts BuildOptions) (*Pool, error) {
	if len(partition) > MaxSlices {
		return nil, errors.Errorf("slicepool: partition has %d elements, exceeds the %d-slice pool limit", len(partition), MaxSlices)
	}
	srcInfo := src.Info()
	if err := validatePartition(partition, srcInfo.NumRow); err != nil {
		return nil, err
	}

	slices := make([]*Slice, len(partition))
	var totalRows uint64
	for i, idx := range partition {
		rows, err := extractRows(src, idx)
		if err != nil {
			return nil, err
		}
		s := &Slice{Rows: *rows}
		s.Info = sparse.Gather(srcInfo, idx)
		s.Info.NumRow = uint64(len(idx))
		s.Info.NumCol = srcInfo.NumCol
		s.Info.NumNonzero = uint64(len(rows.Entries))

		if err := buildColumns(s, opts); err != nil {
			return nil, errors.E(err, "slicepool: building CSC pages")
		}
		s.state = bitFor(i)
		slices[i] = s
		totalRows += s.Info.NumRow
	}
	log.Debug.Printf("slicepool: built %d slices covering %d rows (source had %d)", len(slices), totalRows, srcInfo.NumRow)
	return &Pool{slices: slices}, nil
}

// ColumnCreator synthesizes the (index, value) cell for a logical column
// group at a given row, given the group's base column offset. A returned
// value of 0 is elided, same as a RowSource's zero cells.
type ColumnCreator func(rowID uint64, base uint32) (index uint32, value float32)

// BuildSynthetic builds a pool without a source matrix: nrow rows are
// generated by invoking each creator in creators per row id, skipping the
// column if it evaluates to zero. colWidths gives each creator's column
// span, so creators can place a cell anywhere within their own width
// (e.g. a one-hot group); the spans are laid out back to back starting at
// column 0.
func BuildSynthetic(nrow uint64, colWidths []int, creators []ColumnCreator, labels, weights []float32, partition [][]uint64) (*Pool, error) {
	if len(colWidths) != len(creators) {
		return nil, errors.Errorf("slicepool: %d column widths but %d creators", len(colWidths), len(creators))
	}
	if len(partition) > MaxSlices {
		return nil, errors.Errorf("slicepool: partition has %d elements, exceeds the %d-slice pool limit", len(partition), MaxSlices)
	}
	if err := validatePartition(partition, nrow); err != nil {
		return nil, err
	}

	colOffsets := make([]uint32, len(colWidths)+1)
	for i, w := range colWidths {
		colOffsets[i+1] = colOffsets[i] + uint32(w)
	}
	numCol := uint64(colOffsets[len(colWidths)])

	slices := make([]*Slice, len(partition))
	for i, idx := range partition {
		page := sparse.NewPage()
		for _, rowID := range idx {
			if rowID >= nrow {
				return nil, errors.Errorf("slicepool: row id %d out of range [0,%d)", rowID, nrow)
			}
			var rowEntries []sparse.Entry
			for c, create := range creators {
				index, value := create(rowID, colOffsets[c])
				if value != 0 {
					rowEntries = append(rowEntries, sparse.Entry{Index: index, Value: value})
				}
			}
			page.PushRow(rowEntries)
		}
		s := &Slice{Rows: *page}
		s.Info.NumRow = uint64(len(idx))
		s.Info.NumCol = numCol
		s.Info.NumNonzero = uint64(len(page.Entries))
		if len(labels) > 0 {
			s.Info.Labels = gatherFloat32(labels, idx)
		}
		if len(weights) > 0 {
			s.Info.Weights = gatherFloat32(weights, idx)
		}

		if err := buildColumns(s, BuildOptions{}); err != nil {
			return nil, errors.E(err, "slicepool: building CSC pages")
		}
		s.state = bitFor(i)
		slices[i] = s
	}
	return &Pool{slices: slices}, nil
}

func gatherFloat32(src []float32, idx []uint64) []float32 {
	dst := make([]float32, len(idx))
	for i, r := range idx {
		dst[i] = src[r]
	}
	return dst
}

func bitFor(i int) ConfigState { return ConfigState(1) << uint(i) }

// validatePartition enforces the builder's preconditions: row ids within
// a partition element are distinct and ascending, in range, and no row is
// claimed by more than one slice.
func validatePartition(partition [][]uint64, numRow uint64) error {
	seen := make([]bool, numRow)
	for pi, idx := range partition {
		var prev uint64
		for i, r := range idx {
			if r >= numRow {
				return errors.Errorf("slicepool: partition %d: row id %d out of range [0,%d)", pi, r, numRow)
			}
			if i > 0 && r <= prev {
				return errors.Errorf("slicepool: partition %d: row ids must be strictly ascending (got %d after %d)", pi, r, prev)
			}
			if seen[r] {
				return errors.Errorf("slicepool: partition %d: row %d already claimed by an earlier partition element", pi, r)
			}
			seen[r] = true
			prev = r
		}
	}
	return nil
}

// extractRows walks src once, picking out the rows named by idx (sorted
// ascending) into a fresh CSR page, in idx order.
func extractRows(src sparse.RowSource, idx []uint64) (*sparse.Page, error) {
	page := sparse.NewPage()
	cur := src.Rows()
	pos := 0
	for pos < len(idx) && cur.Next() {
		if cur.RowID() == idx[pos] {
			page.PushRow(cur.Entries())
			pos++
		}
	}
	if pos != len(idx) {
		return nil, errors.Errorf("slicepool: source exhausted before all %d partition rows were consumed (got %d)", len(idx), pos)
	}
	return page, nil
}
