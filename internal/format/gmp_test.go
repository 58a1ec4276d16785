package format_test

import (
	"io"
	"log"
	"testing"

	"github.com/hack-pad/hackpadfs"
	"github.com/hack-pad/hackpadfs/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/groute/internal/format"
)

func newMemFS(t *testing.T) hackpadfs.FS {
	t.Helper()
	fsys, err := mem.NewFS()
	require.NoError(t, err)
	return fsys
}

func writeFile(t *testing.T, fsys hackpadfs.FS, path, content string) {
	t.Helper()
	require.NoError(t, hackpadfs.WriteFullFile(fsys, path, []byte(content), 0644))
}

const sampleGMP = `.ra
0 0 40 40

.g
10 10

.c
0 0 20 20

.b
1 0 0
2 10 10

.c
0 20 20 20

.b
2 0 0
1 10 0
`

func TestParseGMPReadsAllSections(t *testing.T) {
	fsys := newMemFS(t)
	writeFile(t, fsys, "grid.gmp", sampleGMP)

	gmp, err := format.ParseGMP(fsys, "grid.gmp", log.New(io.Discard, "", 0))
	require.NoError(t, err)

	assert.Equal(t, 0, gmp.RoutingAreaLowerLeft.X)
	assert.Equal(t, 40, gmp.RoutingAreaSize.W)
	assert.Equal(t, 10, gmp.GCellSize.W)
	assert.Len(t, gmp.Chip1.Bumps, 2)
	assert.Len(t, gmp.Chip2.Bumps, 2)
	assert.Equal(t, 1, gmp.Chip1.Bumps[0].Idx)
}

func TestParseGMPSkipsMalformedLines(t *testing.T) {
	fsys := newMemFS(t)
	writeFile(t, fsys, "bad.gmp", ".ra\nnot-a-number 0 40 40\n\n.b\n1 0 0\n")

	gmp, err := format.ParseGMP(fsys, "bad.gmp", log.New(io.Discard, "", 0))
	require.NoError(t, err)
	assert.Equal(t, 0, gmp.RoutingAreaLowerLeft.X, "malformed .ra line leaves the zero value")
	require.Len(t, gmp.Chip2.Bumps, 1, "bump default-loads into chip2 since loadingChip1 was never set true")
}

func TestParseGMPPropagatesMissingFile(t *testing.T) {
	fsys := newMemFS(t)
	_, err := format.ParseGMP(fsys, "missing.gmp", log.New(io.Discard, "", 0))
	assert.Error(t, err)
}
