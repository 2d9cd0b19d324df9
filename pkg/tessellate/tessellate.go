// Package tessellate turns the finished shell volume into a triangle mesh
// and writes it as a binary STL. One mesh is produced per build.
package tessellate

import (
	"fmt"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/chazu/orbishell/pkg/geom"
	"github.com/chazu/orbishell/pkg/kernel"
	"github.com/chazu/orbishell/pkg/meshio"
	"github.com/chazu/orbishell/pkg/voxel"
)

// Result describes an exported shell.
type Result struct {
	Mesh        *kernel.Mesh
	VolumeMM3   float64  // enclosed volume before extraction
	Bounds      geom.Box // occupied bounds before extraction
	Diagnostics meshio.Diagnostics
}

// Tessellate measures v, extracts its surface with k and names the mesh.
// Memory held by released volumes is returned to the OS first so the
// extraction peak does not stack on top of it. v is not modified.
func Tessellate(k kernel.Kernel, v *voxel.Volume, name string) (*Result, error) {
	vol, box := v.Measure()

	runtime.GC()
	debug.FreeOSMemory()

	mesh, err := k.ToMesh(v)
	if err != nil {
		return nil, fmt.Errorf("tessellate: ToMesh failed for %s: %w", name, err)
	}
	mesh.Name = name

	return &Result{
		Mesh:        mesh,
		VolumeMM3:   vol,
		Bounds:      box,
		Diagnostics: meshio.Inspect(mesh),
	}, nil
}

// Export tessellates v and writes the mesh to path. It consumes v: the
// volume is released once the mesh exists.
func Export(k kernel.Kernel, v *voxel.Volume, path string) (*Result, error) {
	res, err := Tessellate(k, v, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	v.Release()
	if err != nil {
		return nil, err
	}
	if err := meshio.Save(path, res.Mesh); err != nil {
		return nil, fmt.Errorf("tessellate: %w", err)
	}
	return res, nil
}
