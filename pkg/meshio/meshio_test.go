package meshio

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/chazu/orbishell/pkg/geom"
	"github.com/chazu/orbishell/pkg/kernel"
	"github.com/chazu/orbishell/pkg/meshio/meshiotest"
	"github.com/chazu/orbishell/pkg/voxel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ voxel.Field = (*Surface)(nil)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cube.stl")
	box := geom.Box{Min: geom.V(-5, -5, 0), Max: geom.V(5, 5, 10)}
	require.NoError(t, Save(path, meshiotest.Box(box)))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 12, s.TriangleCount())
	assert.Equal(t, box, s.Bounds())

	assert.True(t, s.Inside(geom.V(0.3, 0.2, 5.1)))
	assert.False(t, s.Inside(geom.V(6, 0, 5)))
	assert.False(t, s.Inside(geom.V(0, 0, -1)))
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.stl")
	require.NoError(t, Save(path, &kernel.Mesh{}))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Zero(t, s.TriangleCount())
	assert.True(t, s.Bounds().IsEmpty())
	assert.False(t, s.Inside(geom.V(0, 0, 0)))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.stl"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSaveBadPath(t *testing.T) {
	err := Save(filepath.Join(t.TempDir(), "missing", "out.stl"), meshiotest.Box(geom.Around(geom.V(0, 0, 0), 1)))
	assert.Error(t, err)
}

func TestEncodeDeterministic(t *testing.T) {
	m := meshiotest.Box(geom.Around(geom.V(1, 2, 3), 4))
	var a, b bytes.Buffer
	require.NoError(t, Encode(&a, m))
	require.NoError(t, Encode(&b, m))
	assert.Equal(t, a.Bytes(), b.Bytes())
	// 80-byte header, count, 50 bytes per triangle
	assert.Equal(t, 84+12*50, a.Len())
}

func TestInspectBox(t *testing.T) {
	d := Inspect(meshiotest.Box(geom.Box{Min: geom.V(0, 0, 0), Max: geom.V(10, 10, 10)}))
	assert.Equal(t, 12, d.Triangles)
	assert.False(t, d.NeedsRepair)
	assert.InDelta(t, 1000, math.Abs(d.VolumeMM3), 1e-6)
}

func TestInspectOpenMesh(t *testing.T) {
	m := meshiotest.Box(geom.Box{Min: geom.V(0, 0, 0), Max: geom.V(10, 10, 10)})
	m.Indices = m.Indices[:len(m.Indices)-3]
	assert.True(t, Inspect(m).NeedsRepair)
}
