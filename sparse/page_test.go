package sparse

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPageEmpty(t *testing.T) {
	p := NewPage()
	require.Equal(t, 0, p.NumRows())
	require.Equal(t, []uint64{0}, p.RowPtr)
}

func TestPagePushRow(t *testing.T) {
	p := NewPage()
	p.PushRow([]Entry{{Index: 0, Value: 1}, {Index: 2, Value: 0.5}})
	p.PushRow(nil)
	p.PushRow([]Entry{{Index: 1, Value: 2}})

	require.Equal(t, 3, p.NumRows())
	require.Equal(t, []Entry{{Index: 0, Value: 1}, {Index: 2, Value: 0.5}}, p.Inst(0))
	require.Empty(t, p.Inst(1))
	require.Equal(t, []Entry{{Index: 1, Value: 2}}, p.Inst(2))
}
