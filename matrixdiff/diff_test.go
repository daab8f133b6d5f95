package matrixdiff_test

import (
	"math/rand"
	"testing"

	"github.com/grailbio/sparseslice/matrixdiff"
	"github.com/grailbio/sparseslice/refmatrix"
	"github.com/grailbio/sparseslice/slicepool"
	"github.com/grailbio/sparseslice/sliceview"
	"github.com/grailbio/sparseslice/sparse"
	"github.com/stretchr/testify/require"
)

// randomMatrix builds a random nrow x ncol sparse matrix in which each
// cell is present with probability density, values in [0, 1). S2 uses
// 20 rows x 100 cols at density 0.5.
func randomMatrix(seed int64, nrow, ncol int, density float64) *refmatrix.MemMatrix {
	r := rand.New(rand.NewSource(seed))
	page := sparse.NewPage()
	var nnz uint64
	for row := 0; row < nrow; row++ {
		var entries []sparse.Entry
		for c := 0; c < ncol; c++ {
			if r.Float64() < density {
				entries = append(entries, sparse.Entry{Index: uint32(c), Value: float32(r.Float64())})
			}
		}
		page.PushRow(entries)
		nnz += uint64(len(entries))
	}
	info := sparse.MetaInfo{NumRow: uint64(nrow), NumCol: uint64(ncol), NumNonzero: nnz}
	return refmatrix.New(info, page)
}

func TestDiffRoundTripS2(t *testing.T) {
	m := randomMatrix(1, 20, 100, 0.5)

	pool, err := slicepool.Build(m, [][]uint64{allRows(20)}, slicepool.BuildOptions{})
	require.NoError(t, err)

	v, err := sliceview.New(pool, []int{0})
	require.NoError(t, err)

	require.NoError(t, matrixdiff.Diff(m, v))
}

func TestDiffDetectsMismatch(t *testing.T) {
	a := randomMatrix(2, 4, 4, 0.5)
	b := randomMatrix(3, 4, 4, 0.5)
	require.Error(t, matrixdiff.Diff(a, b))
}

func TestDiffRejectsSelfAlias(t *testing.T) {
	a := randomMatrix(4, 2, 2, 1.0)
	require.Error(t, matrixdiff.Diff(a, a))
}

func allRows(n int) []uint64 {
	out := make([]uint64, n)
	for i := range out {
		out[i] = uint64(i)
	}
	return out
}
