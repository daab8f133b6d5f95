package sparse

// MetaInfo carries the scalar shape of a matrix plus whatever per-row
// vectors the source data happened to supply. A field that the source
// never populated stays nil on every Slice and on every View built from
// it -- it is never reported as a zero-filled vector.
type MetaInfo struct {
	NumRow     uint64
	NumCol     uint64
	NumNonzero uint64

	Labels     []float32
	Weights    []float32
	BaseMargin []float32
	GroupPtr   []uint64
	RootIndex  []uint32
}

// Gather builds a new MetaInfo by selecting rows at positions idx (in
// order) out of src. Only the per-row vectors are gathered; NumRow is set
// to len(idx), NumCol is copied from src, and NumNonzero is left for the
// caller to fill in, since the caller alone knows the nonzero count of the
// gathered rows.
func Gather(src MetaInfo, idx []uint64) MetaInfo {
	var dst MetaInfo
	dst.NumRow = uint64(len(idx))
	dst.NumCol = src.NumCol

	if len(src.Labels) > 0 {
		dst.Labels = make([]float32, len(idx))
		for i, r := range idx {
			dst.Labels[i] = src.Labels[r]
		}
	}
	if len(src.Weights) > 0 {
		dst.Weights = make([]float32, len(idx))
		for i, r := range idx {
			dst.Weights[i] = src.Weights[r]
		}
	}
	if len(src.BaseMargin) > 0 {
		dst.BaseMargin = make([]float32, len(idx))
		for i, r := range idx {
			dst.BaseMargin[i] = src.BaseMargin[r]
		}
	}
	if len(src.RootIndex) > 0 {
		dst.RootIndex = make([]uint32, len(idx))
		for i, r := range idx {
			dst.RootIndex[i] = src.RootIndex[r]
		}
	}
	if len(src.GroupPtr) > 0 {
		dst.GroupPtr = make([]uint64, len(idx))
		for i, r := range idx {
			dst.GroupPtr[i] = src.GroupPtr[r]
		}
	}
	return dst
}

// Equal compares two MetaInfo values field by field.
func (m MetaInfo) Equal(o MetaInfo) bool {
	if m.NumRow != o.NumRow || m.NumCol != o.NumCol || m.NumNonzero != o.NumNonzero {
		return false
	}
	return float32SliceEqual(m.Labels, o.Labels) &&
		float32SliceEqual(m.Weights, o.Weights) &&
		float32SliceEqual(m.BaseMargin, o.BaseMargin) &&
		uint64SliceEqual(m.GroupPtr, o.GroupPtr) &&
		uint32SliceEqual(m.RootIndex, o.RootIndex)
}

func float32SliceEqual(a, b []float32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func uint64SliceEqual(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func uint32SliceEqual(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
