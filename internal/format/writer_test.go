package format_test

import (
	"testing"

	"github.com/hack-pad/hackpadfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/groute/internal/format"
	"github.com/kittclouds/groute/pkg/gcell"
)

func cellAt(x, y int) *gcell.GCell {
	return &gcell.GCell{LowerLeft: gcell.Point{X: x, Y: y}}
}

func TestWriteLGCoalescesRunsAndEmitsVia(t *testing.T) {
	fsys := newMemFS(t)
	path := []*gcell.GCell{
		cellAt(0, 0), cellAt(0, 10), cellAt(0, 20), // M1 run
		cellAt(10, 20), cellAt(20, 20), // M2 run
	}
	err := format.WriteLG(fsys, "out.lg", []format.NetRoute{{Idx: 7, Path: path}})
	require.NoError(t, err)

	content, err := hackpadfs.ReadFile(fsys, "out.lg")
	require.NoError(t, err)
	assert.Equal(t, "n7\nM1 0 0 0 20\nvia\nM2 0 20 20 20\nvia\n.end\n", string(content),
		"routing starts and ends on M1, so a terminal via is required after a trailing M2 run")
}

func TestWriteLGEmitsLeadingViaWhenFirstRunIsM2(t *testing.T) {
	fsys := newMemFS(t)
	path := []*gcell.GCell{
		cellAt(0, 0), cellAt(10, 0), cellAt(20, 0), // M2 run
		cellAt(20, 10), cellAt(20, 20), // M1 run
	}
	err := format.WriteLG(fsys, "out.lg", []format.NetRoute{{Idx: 3, Path: path}})
	require.NoError(t, err)

	content, err := hackpadfs.ReadFile(fsys, "out.lg")
	require.NoError(t, err)
	assert.Equal(t, "n3\nvia\nM2 0 0 20 0\nvia\nM1 20 0 20 20\n.end\n", string(content))
}

func TestWriteLGSingleCellPathEmitsNoSegments(t *testing.T) {
	fsys := newMemFS(t)
	path := []*gcell.GCell{cellAt(0, 0)}
	err := format.WriteLG(fsys, "out.lg", []format.NetRoute{{Idx: 1, Path: path}})
	require.NoError(t, err)

	content, err := hackpadfs.ReadFile(fsys, "out.lg")
	require.NoError(t, err)
	assert.Equal(t, "n1\n.end\n", string(content))
}

func TestWriteLGRejectsDiagonalStep(t *testing.T) {
	fsys := newMemFS(t)
	path := []*gcell.GCell{cellAt(0, 0), cellAt(10, 10)}
	err := format.WriteLG(fsys, "out.lg", []format.NetRoute{{Idx: 1, Path: path}})
	require.Error(t, err)
	assert.ErrorIs(t, err, format.ErrInvalidStep)
}
