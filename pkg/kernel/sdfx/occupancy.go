package sdfx

import (
	"math"

	"github.com/chazu/orbishell/pkg/voxel"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// occupancy presents a voxel volume as an sdf.SDF3. Occupied cell centres
// evaluate to -size/2, empty ones to +size/2, and points in between are
// interpolated trilinearly, so the zero level set runs along the voxel
// faces. The box is padded so the surface closes everywhere.
type occupancy struct {
	v    *voxel.Volume
	size float64
	bb   sdf.Box3
}

func newOccupancy(v *voxel.Volume) (*occupancy, bool) {
	_, box := v.Measure()
	if box.IsEmpty() {
		return nil, false
	}
	box = box.Expand(2 * v.VoxelSize())
	return &occupancy{
		v:    v,
		size: v.VoxelSize(),
		bb:   sdf.Box3{Min: toVec(box.Min), Max: toVec(box.Max)},
	}, true
}

func (o *occupancy) BoundingBox() sdf.Box3 { return o.bb }

func (o *occupancy) Evaluate(p v3.Vec) float64 {
	gx, gy, gz := p.X/o.size-0.5, p.Y/o.size-0.5, p.Z/o.size-0.5
	fx, fy, fz := math.Floor(gx), math.Floor(gy), math.Floor(gz)
	tx, ty, tz := gx-fx, gy-fy, gz-fz
	i, j, k := int(fx), int(fy), int(fz)

	h := o.size / 2
	var d float64
	for c := 0; c < 8; c++ {
		di, dj, dk := c&1, (c>>1)&1, (c>>2)&1
		w := lerpWeight(tx, di) * lerpWeight(ty, dj) * lerpWeight(tz, dk)
		if w == 0 {
			continue
		}
		if o.v.Occupied(i+di, j+dj, k+dk) {
			d -= w * h
		} else {
			d += w * h
		}
	}
	return d
}

func lerpWeight(t float64, side int) float64 {
	if side == 0 {
		return 1 - t
	}
	return t
}
