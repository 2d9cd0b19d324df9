package voxel

import "github.com/chazu/orbishell/pkg/geom"

// Field is an implicit solid that can be sampled at voxel centres.
type Field interface {
	// Bounds encloses every point for which Inside can be true.
	Bounds() geom.Box
	// Inside reports whether p belongs to the solid.
	Inside(p geom.Vec3) bool
}

// Rasterize samples fields into a new volume of the given voxel size.
func Rasterize(size float64, fields ...Field) *Volume {
	v := New(size)
	v.Fill(fields...)
	return v
}

// Fill sets every cell whose centre lies inside any of the fields. Each
// field is only sampled over its own bounds.
func (v *Volume) Fill(fields ...Field) {
	v.mustLive()
	var all geom.Box
	all.Min = geom.V(1, 1, 1)
	for _, f := range fields {
		all = all.Union(f.Bounds())
	}
	if all.IsEmpty() {
		return
	}
	lo, hi := v.span(all)
	if hi[0] < lo[0] || hi[1] < lo[1] || hi[2] < lo[2] {
		return
	}
	v.grow(lo, hi)
	for _, f := range fields {
		b := f.Bounds()
		if b.IsEmpty() {
			continue
		}
		flo, fhi := v.span(b)
		for k := flo[2]; k <= fhi[2]; k++ {
			for j := flo[1]; j <= fhi[1]; j++ {
				for i := flo[0]; i <= fhi[0]; i++ {
					if f.Inside(v.Center(i, j, k)) {
						v.set(i, j, k)
					}
				}
			}
		}
	}
}

// BoxField is the solid axis-aligned box.
type BoxField geom.Box

func (b BoxField) Bounds() geom.Box { return geom.Box(b) }
func (b BoxField) Inside(p geom.Vec3) bool { return geom.Box(b).Contains(p) }

// Clip limits f to the cells whose centres lie inside b. Filling a clipped
// field samples and stores only that part, so an oversized field costs no
// more than b.
func Clip(f Field, b geom.Box) Field { return clipped{f, b} }

type clipped struct {
	Field
	box geom.Box
}

func (c clipped) Bounds() geom.Box { return c.Field.Bounds().Intersect(c.box) }
func (c clipped) Inside(p geom.Vec3) bool {
	return c.box.Contains(p) && c.Field.Inside(p)
}
