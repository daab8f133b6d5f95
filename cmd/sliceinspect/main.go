// sliceinspect builds a synthetic slice pool and prints its aggregate
// shape, per-column density, and a fingerprint of that shape -- a quick way to
// sanity-check a partition choice without writing a test.
package main

import (
	"bytes"
	"encoding/binary"
	"fmt"

	farm "github.com/dgryski/go-farm"
	"github.com/grailbio/base/cmdutil"
	"github.com/pkg/errors"
	"v.io/x/lib/cmdline"

	"github.com/grailbio/sparseslice/slicepool"
	"github.com/grailbio/sparseslice/sliceview"
	"github.com/grailbio/sparseslice/sparse"
)

func main() {
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(&cmdline.Command{
		Name:     "sliceinspect",
		Short:    "Inspect a synthetic sliceable-matrix pool",
		LookPath: false,
		Children: []*cmdline.Command{newCmdSynth()},
	})
}

func newCmdSynth() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "synth",
		Short: "Build a synthetic pool and report its shape",
	}
	nrow := cmd.Flags.Int("rows", 8, "Number of rows to generate")
	ncol := cmd.Flags.Int("cols", 2, "Number of one-wide synthetic columns")
	nslices := cmd.Flags.Int("slices", 1, "Number of partition elements to split the rows across")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 0 {
			return errors.Errorf("synth takes no arguments, but found %v", argv)
		}
		return runSynth(*nrow, *ncol, *nslices)
	})
	return cmd
}

func runSynth(nrow, ncol, nslices int) error {
	if nrow <= 0 || ncol <= 0 || nslices <= 0 {
		return errors.Errorf("rows, cols, and slices must all be positive (got %d, %d, %d)", nrow, ncol, nslices)
	}

	widths := make([]int, ncol)
	creators := make([]slicepool.ColumnCreator, ncol)
	for c := 0; c < ncol; c++ {
		widths[c] = 1
		if c%2 == 0 {
			// row index as float, like spec scenario S4's column 0.
			creators[c] = func(rowID uint64, base uint32) (uint32, float32) {
				return base, float32(rowID)
			}
		} else {
			// 1.0 on even rows, elided (zero) on odd rows, like S4's column 1.
			creators[c] = func(rowID uint64, base uint32) (uint32, float32) {
				if rowID%2 == 0 {
					return base, 1.0
				}
				return base, 0
			}
		}
	}

	partition := synthPartition(uint64(nrow), nslices)
	pool, err := slicepool.BuildSynthetic(uint64(nrow), widths, creators, nil, nil, partition)
	if err != nil {
		return errors.Wrap(err, "building synthetic pool")
	}

	active := make([]int, pool.Len())
	for i := range active {
		active[i] = i
	}
	view, err := sliceview.New(pool, active)
	if err != nil {
		return errors.Wrap(err, "constructing view over full pool")
	}

	info := view.Info()
	fmt.Printf("num_row=%d num_col=%d num_nonzero=%d single_col_block=%v\n",
		info.NumRow, info.NumCol, info.NumNonzero, view.SingleColBlock())
	for c := uint32(0); c < uint32(ncol); c++ {
		fmt.Printf("  col %d: size=%d density=%.3f\n", c, view.ColSize(c), view.ColDensity(c))
	}
	fmt.Printf("fingerprint=%016x\n", fingerprint(info))
	return nil
}

// synthPartition splits [0, nrow) into nslices contiguous, ascending,
// non-overlapping row-id groups -- the simplest partition that satisfies
// the builder's overlap and ordering preconditions.
func synthPartition(nrow uint64, nslices int) [][]uint64 {
	if uint64(nslices) > nrow {
		nslices = int(nrow)
	}
	partition := make([][]uint64, nslices)
	base := nrow / uint64(nslices)
	rem := nrow % uint64(nslices)
	var r uint64
	for i := 0; i < nslices; i++ {
		size := base
		if uint64(i) < rem {
			size++
		}
		idx := make([]uint64, size)
		for j := range idx {
			idx[j] = r
			r++
		}
		partition[i] = idx
	}
	return partition
}

// fingerprint hashes a view's aggregate shape so two pools can be
// compared at a glance without a full matrixdiff.Diff run.
func fingerprint(info sparse.MetaInfo) uint64 {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, info.NumRow)
	binary.Write(&buf, binary.LittleEndian, info.NumCol)
	binary.Write(&buf, binary.LittleEndian, info.NumNonzero)
	return farm.Hash64WithSeed(buf.Bytes(), 0)
}
