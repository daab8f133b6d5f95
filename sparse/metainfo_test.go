package sparse

import (
	"testing"

	"github.com/grailbio/testutil/expect"
	"github.com/stretchr/testify/require"
)

func TestGatherPreservesAbsentFields(t *testing.T) {
	src := MetaInfo{
		NumRow: 4,
		NumCol: 3,
		Labels: []float32{1, 2, 3, 4},
		// Weights and BaseMargin intentionally left nil: S5's "absent
		// metadata" scenario.
	}

	got := Gather(src, []uint64{3, 0})
	require.Equal(t, []float32{4, 1}, got.Labels)
	expect.True(t, got.Weights == nil, "Weights must stay absent, not zero-filled")
	expect.True(t, got.BaseMargin == nil, "BaseMargin must stay absent, not zero-filled")
	expect.EQ(t, uint64(2), got.NumRow)
}

func TestMetaInfoEqual(t *testing.T) {
	a := MetaInfo{NumRow: 2, NumCol: 1, Labels: []float32{1, 2}}
	b := MetaInfo{NumRow: 2, NumCol: 1, Labels: []float32{1, 2}}
	c := MetaInfo{NumRow: 2, NumCol: 1, Labels: []float32{1, 3}}

	expect.True(t, a.Equal(b), "identical MetaInfo values must compare equal")
	expect.False(t, a.Equal(c), "differing Labels must compare unequal")
}
