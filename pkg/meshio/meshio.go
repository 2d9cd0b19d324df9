// Package meshio reads and writes STL triangle meshes and exposes a loaded
// surface as a solid that can be voxelized.
package meshio

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/chazu/orbishell/pkg/geom"
	"github.com/chazu/orbishell/pkg/kernel"
	"github.com/unixpickle/model3d/model3d"
)

// Surface is a triangle surface read from disk. It implements voxel.Field:
// a point is inside when a ray from it crosses the surface an odd number
// of times.
type Surface struct {
	tris   []*model3d.Triangle
	bounds geom.Box
	solid  model3d.Solid
}

// Load reads a binary or ASCII STL file.
func Load(path string) (*Surface, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("meshio: open %s: %w", path, err)
	}
	defer f.Close()

	tris, err := model3d.ReadSTL(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("meshio: read %s: %w", path, err)
	}
	return NewSurface(tris), nil
}

// NewSurface wraps a triangle list.
func NewSurface(tris []*model3d.Triangle) *Surface {
	s := &Surface{tris: tris, bounds: geom.Box{Min: geom.V(1, 1, 1)}}
	for _, t := range tris {
		for _, c := range t {
			p := geom.V(c.X, c.Y, c.Z)
			s.bounds = s.bounds.Union(geom.Box{Min: p, Max: p})
		}
	}
	return s
}

// TriangleCount returns the number of triangles read.
func (s *Surface) TriangleCount() int { return len(s.tris) }

// Bounds returns the bounding box of every vertex; empty for an empty
// surface.
func (s *Surface) Bounds() geom.Box { return s.bounds }

// Inside reports whether p is enclosed by the surface. The collision
// structure is built on first use.
func (s *Surface) Inside(p geom.Vec3) bool {
	if len(s.tris) == 0 {
		return false
	}
	if s.solid == nil {
		mesh := model3d.NewMeshTriangles(s.tris)
		s.solid = model3d.NewColliderSolid(model3d.MeshToCollider(mesh))
	}
	return s.solid.Contains(model3d.Coord3D{X: p.X, Y: p.Y, Z: p.Z})
}

// Save writes m to path as a binary STL. A partially written file is
// removed on failure.
func Save(path string, m *kernel.Mesh) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("meshio: create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("meshio: close %s: %w", path, cerr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	w := bufio.NewWriter(f)
	if err := Encode(w, m); err != nil {
		return fmt.Errorf("meshio: write %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("meshio: write %s: %w", path, err)
	}
	return nil
}

// Encode writes m as a binary STL, triangles in mesh order.
func Encode(w io.Writer, m *kernel.Mesh) error {
	return model3d.WriteSTL(w, triangles(m))
}

func triangles(m *kernel.Mesh) []*model3d.Triangle {
	out := make([]*model3d.Triangle, m.TriangleCount())
	for i := range out {
		c := m.Triangle(i)
		out[i] = &model3d.Triangle{
			model3d.Coord3D{X: c[0].X, Y: c[0].Y, Z: c[0].Z},
			model3d.Coord3D{X: c[1].X, Y: c[1].Y, Z: c[1].Z},
			model3d.Coord3D{X: c[2].X, Y: c[2].Y, Z: c[2].Z},
		}
	}
	return out
}

// Diagnostics summarizes the topology of an exported mesh.
type Diagnostics struct {
	Triangles   int
	NeedsRepair bool    // some edge is not shared by exactly two triangles
	VolumeMM3   float64 // signed volume from the triangle winding
}

// Inspect checks m for printability problems.
func Inspect(m *kernel.Mesh) Diagnostics {
	mesh := model3d.NewMeshTriangles(triangles(m))
	return Diagnostics{
		Triangles:   m.TriangleCount(),
		NeedsRepair: mesh.NeedsRepair(),
		VolumeMM3:   mesh.Volume(),
	}
}
