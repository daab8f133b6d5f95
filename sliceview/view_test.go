package sliceview

import (
	"testing"

	"github.com/grailbio/sparseslice/slicepool"
	"github.com/grailbio/sparseslice/sparse"
	"github.com/stretchr/testify/require"
)

type memSource struct {
	info sparse.MetaInfo
	rows *sparse.Page
}

func (m *memSource) Info() sparse.MetaInfo { return m.info }
func (m *memSource) Rows() sparse.RowCursor {
	return &memCursor{rows: m.rows, idx: -1}
}

type memCursor struct {
	rows *sparse.Page
	idx  int
}

func (c *memCursor) Next() bool              { c.idx++; return c.idx < c.rows.NumRows() }
func (c *memCursor) RowID() uint64           { return uint64(c.idx) }
func (c *memCursor) Entries() []sparse.Entry { return c.rows.Inst(c.idx) }

// s1Pool builds the spec's trivial S1 scenario: 2 rows x 2 cols, entries
// (0,0,1.0) (0,1,0.5) (1,0,2.0), partitioned [[0],[1]].
func s1Pool(t *testing.T) *slicepool.Pool {
	t.Helper()
	p := sparse.NewPage()
	p.PushRow([]sparse.Entry{{Index: 0, Value: 1.0}, {Index: 1, Value: 0.5}})
	p.PushRow([]sparse.Entry{{Index: 0, Value: 2.0}})
	src := &memSource{info: sparse.MetaInfo{NumRow: 2, NumCol: 2, NumNonzero: 3}, rows: p}

	pool, err := slicepool.Build(src, [][]uint64{{0}, {1}}, slicepool.BuildOptions{})
	require.NoError(t, err)
	return pool
}

func TestViewS1(t *testing.T) {
	pool := s1Pool(t)
	v, err := New(pool, []int{0, 1})
	require.NoError(t, err)

	info := v.Info()
	require.Equal(t, uint64(2), info.NumRow)
	require.Equal(t, uint64(2), info.NumCol)
	require.Equal(t, uint64(2), v.ColSize(0))
	require.Equal(t, uint64(1), v.ColSize(1))
	require.InDelta(t, 1.0, v.ColDensity(0), 1e-9)
	require.InDelta(t, 0.5, v.ColDensity(1), 1e-9)
}

func TestSingleColBlock(t *testing.T) {
	pool := s1Pool(t)

	single, err := New(pool, []int{0})
	require.NoError(t, err)
	require.True(t, single.SingleColBlock())

	both, err := New(pool, []int{0, 1})
	require.NoError(t, err)
	require.False(t, both.SingleColBlock())
}

func TestViewRejectsEmptyOrOutOfRangeActive(t *testing.T) {
	pool := s1Pool(t)
	_, err := New(pool, nil)
	require.Error(t, err)
	_, err = New(pool, []int{5})
	require.Error(t, err)
	_, err = New(pool, []int{0, 0})
	require.Error(t, err)
}

func TestRowIteratorWalksInOrder(t *testing.T) {
	pool := s1Pool(t)
	v, err := New(pool, []int{0, 1})
	require.NoError(t, err)

	it := v.RowIterator()
	var rows [][]sparse.Entry
	for it.Next() {
		b := it.Batch()
		for i := 0; i < int(b.Size); i++ {
			rows = append(rows, b.Inst(i))
		}
	}
	require.Len(t, rows, 2)
	require.Equal(t, []sparse.Entry{{Index: 0, Value: 1.0}, {Index: 1, Value: 0.5}}, rows[0])
	require.Equal(t, []sparse.Entry{{Index: 0, Value: 2.0}}, rows[1])
}

func TestColumnIteratorSingleReaderInvariant(t *testing.T) {
	pool := s1Pool(t)
	v, err := New(pool, []int{0, 1})
	require.NoError(t, err)

	it, err := v.ColumnIterator()
	require.NoError(t, err)
	defer it.Close()

	_, err = v.ColumnIterator()
	require.Error(t, err, "a second concurrent column iterator on the same pool must be rejected")
}
