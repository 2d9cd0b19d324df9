// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library. Primitives are sdfx
// signed distance functions sampled at voxel centres; surfaces are
// extracted with sdfx's uniform marching cubes over the volume's
// occupancy field.
package sdfx

import (
	"fmt"
	"math"

	"github.com/chazu/orbishell/pkg/geom"
	"github.com/chazu/orbishell/pkg/kernel"
	"github.com/chazu/orbishell/pkg/voxel"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct {
	voxelSize float64
}

// New returns a kernel producing volumes of the given voxel size.
func New(voxelSize float64) *SdfxKernel {
	if !(voxelSize > 0) {
		panic(fmt.Sprintf("sdfx: invalid voxel size %v", voxelSize))
	}
	return &SdfxKernel{voxelSize: voxelSize}
}

// VoxelSize returns the lattice edge length.
func (k *SdfxKernel) VoxelSize() float64 { return k.voxelSize }

// solid adapts an sdf.SDF3 to voxel.Field.
type solid struct {
	s sdf.SDF3
}

func (s solid) Bounds() geom.Box {
	bb := s.s.BoundingBox()
	return geom.Box{Min: fromVec(bb.Min), Max: fromVec(bb.Max)}
}

func (s solid) Inside(p geom.Vec3) bool {
	return s.s.Evaluate(toVec(p)) <= 0
}

func toVec(p geom.Vec3) v3.Vec { return v3.Vec{X: p.X, Y: p.Y, Z: p.Z} }
func fromVec(p v3.Vec) geom.Vec3 { return geom.Vec3{X: p.X, Y: p.Y, Z: p.Z} }

func sphere(c geom.Vec3, r float64) sdf.SDF3 {
	s, err := sdf.Sphere3D(r)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Sphere3D: %v", err))
	}
	return sdf.Transform3D(s, sdf.Translate3d(toVec(c)))
}

// Sphere rasterizes a solid ball.
func (k *SdfxKernel) Sphere(c geom.Vec3, r float64) *voxel.Volume {
	return k.Rasterize(solid{sphere(c, r)})
}

// Cylinder rasterizes a Z-aligned cylinder centred on c.
func (k *SdfxKernel) Cylinder(c geom.Vec3, r, h float64) *voxel.Volume {
	s, err := sdf.Cylinder3D(h, r, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Cylinder3D: %v", err))
	}
	return k.Rasterize(solid{sdf.Transform3D(s, sdf.Translate3d(toVec(c)))})
}

// Lattice rasterizes every beam and sphere into one volume. Each primitive
// is sampled only over its own bounding box.
func (k *SdfxKernel) Lattice(l *kernel.Lattice) *voxel.Volume {
	fields := make([]voxel.Field, 0, l.Len())
	for _, b := range l.Beams {
		fields = append(fields, solid{newBeam(b)})
	}
	for _, s := range l.Spheres {
		fields = append(fields, solid{sphere(s.Center, s.Radius)})
	}
	return voxel.Rasterize(k.voxelSize, fields...)
}

// Rasterize samples an arbitrary field at this kernel's voxel size.
func (k *SdfxKernel) Rasterize(f voxel.Field) *voxel.Volume {
	return voxel.Rasterize(k.voxelSize, f)
}

// ToMesh extracts the closed surface of v using marching cubes at roughly
// one cube per voxel.
func (k *SdfxKernel) ToMesh(v *voxel.Volume) (*kernel.Mesh, error) {
	occ, ok := newOccupancy(v)
	if !ok {
		return nil, kernel.ErrEmptyVolume
	}
	bb := occ.BoundingBox()
	extent := math.Max(bb.Max.X-bb.Min.X, math.Max(bb.Max.Y-bb.Min.Y, bb.Max.Z-bb.Min.Z))
	cells := int(math.Ceil(extent / v.VoxelSize()))

	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(occ, renderer)

	numTri := len(triangles)
	numVerts := numTri * 3

	vertices := make([]float32, 0, numVerts*3)
	normals := make([]float32, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for i, tri := range triangles {
		// Compute face normal.
		n := tri.Normal()
		nx := float32(n.X)
		ny := float32(n.Y)
		nz := float32(n.Z)

		for j := 0; j < 3; j++ {
			p := tri[j]
			vertices = append(vertices, float32(p.X), float32(p.Y), float32(p.Z))
			normals = append(normals, nx, ny, nz)
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &kernel.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}, nil
}
