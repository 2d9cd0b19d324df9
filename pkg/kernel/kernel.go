// Package kernel defines the primitive rasterization and surface
// extraction contract the shell stages build on. Implementations turn
// analytic primitives into voxel volumes on one shared lattice, and turn
// a finished volume back into a triangle mesh. The sdfx package provides
// the production implementation.
package kernel

import (
	"errors"

	"github.com/chazu/orbishell/pkg/geom"
	"github.com/chazu/orbishell/pkg/voxel"
)

// Kernel rasterizes primitives into volumes and extracts surfaces.
// Every volume a Kernel returns uses VoxelSize and is owned by the caller.
type Kernel interface {
	// VoxelSize is the lattice edge length of every volume produced.
	VoxelSize() float64

	// Primitives
	Sphere(center geom.Vec3, radius float64) *voxel.Volume
	Cylinder(center geom.Vec3, radius, height float64) *voxel.Volume // axis +Z, centred on center
	Lattice(l *Lattice) *voxel.Volume
	Rasterize(f voxel.Field) *voxel.Volume

	// Mesh output
	ToMesh(v *voxel.Volume) (*Mesh, error)
}

// ErrEmptyVolume is returned by ToMesh for a volume with no occupied cells.
var ErrEmptyVolume = errors.New("kernel: volume is empty")
