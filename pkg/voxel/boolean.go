package voxel

import "github.com/chazu/orbishell/pkg/geom"

// Union adds every cell of o to v. o is left untouched.
func (v *Volume) Union(o *Volume) {
	v.mustMatch(o)
	lo, hi, ok := o.occupiedBounds()
	if !ok {
		return
	}
	v.grow(lo, hi)
	o.forEach(v.set)
}

// Subtract removes every cell of o from v. o is left untouched.
func (v *Volume) Subtract(o *Volume) {
	v.mustMatch(o)
	if v.bits == nil {
		return
	}
	o.forEach(v.clear)
}

// Trim keeps only the cells whose centres lie inside b.
func (v *Volume) Trim(b geom.Box) {
	v.mustLive()
	if v.bits == nil {
		return
	}
	lo, hi := v.span(b)
	cur := v.hi()
	for a := 0; a < 3; a++ {
		lo[a] = max(lo[a], v.org[a])
		hi[a] = min(hi[a], cur[a])
	}
	v.regrid(lo, hi)
}
