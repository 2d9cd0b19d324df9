// Package voxel implements the discretized occupancy volumes the shell is
// built from.
//
// Every Volume lives on one global cubic lattice anchored at the world
// origin: lattice cell n = (i, j, k) has its centre at (n + 0.5) * size.
// A Volume stores a dense bit grid over the part of the lattice it has
// touched, growing on union and shrinking on trim and erosion. Volumes of
// different voxel sizes never mix; combining them panics.
package voxel

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/chazu/orbishell/pkg/geom"
)

// Volume is a mutable voxel occupancy set. The zero value is not usable;
// construct with New or Rasterize.
type Volume struct {
	size     float64
	org      [3]int // lattice coordinates of grid cell (0,0,0)
	dim      [3]int
	bits     []uint64
	released bool
}

// New returns an empty volume on the lattice of the given voxel size.
func New(size float64) *Volume {
	if !(size > 0) || math.IsInf(size, 0) {
		panic(fmt.Sprintf("voxel: invalid voxel size %v", size))
	}
	return &Volume{size: size}
}

func newGrid(size float64, lo, hi [3]int) *Volume {
	v := New(size)
	v.alloc(lo, hi)
	return v
}

func (v *Volume) alloc(lo, hi [3]int) {
	v.org = lo
	v.dim = [3]int{}
	v.bits = nil
	if hi[0] < lo[0] || hi[1] < lo[1] || hi[2] < lo[2] {
		return
	}
	for a := 0; a < 3; a++ {
		v.dim[a] = hi[a] - lo[a] + 1
	}
	v.bits = make([]uint64, (v.cells()+63)/64)
}

// VoxelSize returns the lattice edge length in millimetres.
func (v *Volume) VoxelSize() float64 { return v.size }

func (v *Volume) cells() int { return v.dim[0] * v.dim[1] * v.dim[2] }

func (v *Volume) hi() [3]int {
	return [3]int{v.org[0] + v.dim[0] - 1, v.org[1] + v.dim[1] - 1, v.org[2] + v.dim[2] - 1}
}

func (v *Volume) local(i, j, k int) (int, bool) {
	i -= v.org[0]
	j -= v.org[1]
	k -= v.org[2]
	if i < 0 || j < 0 || k < 0 || i >= v.dim[0] || j >= v.dim[1] || k >= v.dim[2] {
		return 0, false
	}
	return i + v.dim[0]*(j+v.dim[1]*k), true
}

// Occupied reports whether lattice cell (i, j, k) is set. Cells outside
// the stored grid are empty.
func (v *Volume) Occupied(i, j, k int) bool {
	idx, ok := v.local(i, j, k)
	return ok && v.bits[idx>>6]&(1<<(uint(idx)&63)) != 0
}

// Contains reports whether the cell holding world point p is occupied.
func (v *Volume) Contains(p geom.Vec3) bool {
	return v.Occupied(
		int(math.Floor(p.X/v.size)),
		int(math.Floor(p.Y/v.size)),
		int(math.Floor(p.Z/v.size)),
	)
}

// set marks a lattice cell that must lie inside the grid.
func (v *Volume) set(i, j, k int) {
	idx, ok := v.local(i, j, k)
	if !ok {
		panic(fmt.Sprintf("voxel: cell (%d,%d,%d) outside grid", i, j, k))
	}
	v.bits[idx>>6] |= 1 << (uint(idx) & 63)
}

func (v *Volume) clear(i, j, k int) {
	if idx, ok := v.local(i, j, k); ok {
		v.bits[idx>>6] &^= 1 << (uint(idx) & 63)
	}
}

// Center returns the world position of the centre of lattice cell (i, j, k).
func (v *Volume) Center(i, j, k int) geom.Vec3 {
	return geom.Vec3{
		X: (float64(i) + 0.5) * v.size,
		Y: (float64(j) + 0.5) * v.size,
		Z: (float64(k) + 0.5) * v.size,
	}
}

// span returns the lattice cells whose centres lie inside b.
func (v *Volume) span(b geom.Box) (lo, hi [3]int) {
	mn := [3]float64{b.Min.X, b.Min.Y, b.Min.Z}
	mx := [3]float64{b.Max.X, b.Max.Y, b.Max.Z}
	for a := 0; a < 3; a++ {
		lo[a] = int(math.Ceil(mn[a]/v.size - 0.5))
		hi[a] = int(math.Floor(mx[a]/v.size - 0.5))
	}
	return lo, hi
}

// forEach calls fn with the lattice coordinates of every occupied cell in
// storage order (x fastest, then y, then z).
func (v *Volume) forEach(fn func(i, j, k int)) {
	nx, ny := v.dim[0], v.dim[1]
	for w, word := range v.bits {
		for word != 0 {
			b := bits.TrailingZeros64(word)
			word &^= 1 << uint(b)
			idx := w<<6 + b
			fn(v.org[0]+idx%nx, v.org[1]+(idx/nx)%ny, v.org[2]+idx/(nx*ny))
		}
	}
}

// Count returns the number of occupied cells.
func (v *Volume) Count() int {
	v.mustLive()
	n := 0
	for _, w := range v.bits {
		n += bits.OnesCount64(w)
	}
	return n
}

// IsEmpty reports whether no cell is occupied.
func (v *Volume) IsEmpty() bool {
	v.mustLive()
	for _, w := range v.bits {
		if w != 0 {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (v *Volume) Clone() *Volume {
	v.mustLive()
	c := &Volume{size: v.size, org: v.org, dim: v.dim}
	c.bits = append([]uint64(nil), v.bits...)
	return c
}

// Release drops the storage. Any later use of the volume panics.
func (v *Volume) Release() {
	v.bits = nil
	v.dim = [3]int{}
	v.released = true
}

// Released reports whether Release was called.
func (v *Volume) Released() bool { return v.released }

func (v *Volume) mustLive() {
	if v.released {
		panic("voxel: use of released volume")
	}
}

func (v *Volume) mustMatch(o *Volume) {
	v.mustLive()
	o.mustLive()
	if v.size != o.size {
		panic(fmt.Sprintf("voxel: voxel size mismatch %v != %v", v.size, o.size))
	}
}

// occupiedBounds returns the inclusive lattice range of occupied cells.
func (v *Volume) occupiedBounds() (lo, hi [3]int, ok bool) {
	v.forEach(func(i, j, k int) {
		n := [3]int{i, j, k}
		if !ok {
			lo, hi, ok = n, n, true
			return
		}
		for a := 0; a < 3; a++ {
			lo[a] = min(lo[a], n[a])
			hi[a] = max(hi[a], n[a])
		}
	})
	return lo, hi, ok
}

// regrid moves the stored grid to cover exactly [lo, hi], dropping cells
// that fall outside.
func (v *Volume) regrid(lo, hi [3]int) {
	if lo == v.org && hi == v.hi() && v.bits != nil {
		return
	}
	old := *v
	v.alloc(lo, hi)
	if v.bits == nil {
		return
	}
	old.forEach(func(i, j, k int) {
		if idx, ok := v.local(i, j, k); ok {
			v.bits[idx>>6] |= 1 << (uint(idx) & 63)
		}
	})
}

// grow extends the stored grid so it covers [lo, hi].
func (v *Volume) grow(lo, hi [3]int) {
	if v.bits == nil {
		v.alloc(lo, hi)
		return
	}
	cur := v.hi()
	nlo, nhi := v.org, cur
	for a := 0; a < 3; a++ {
		nlo[a] = min(nlo[a], lo[a])
		nhi[a] = max(nhi[a], hi[a])
	}
	v.regrid(nlo, nhi)
}

// compact shrinks the grid to the occupied cells.
func (v *Volume) compact() {
	lo, hi, ok := v.occupiedBounds()
	if !ok {
		v.alloc([3]int{}, [3]int{-1, -1, -1})
		return
	}
	v.regrid(lo, hi)
}

// Measure returns the enclosed volume in cubic millimetres and the world
// bounding box of the occupied cells. An empty volume measures zero with
// an empty box.
func (v *Volume) Measure() (float64, geom.Box) {
	v.mustLive()
	lo, hi, ok := v.occupiedBounds()
	if !ok {
		return 0, geom.Box{Min: geom.V(1, 1, 1)}
	}
	box := geom.Box{
		Min: geom.V(float64(lo[0])*v.size, float64(lo[1])*v.size, float64(lo[2])*v.size),
		Max: geom.V(float64(hi[0]+1)*v.size, float64(hi[1]+1)*v.size, float64(hi[2]+1)*v.size),
	}
	return float64(v.Count()) * v.size * v.size * v.size, box
}

// Equal reports whether both volumes occupy exactly the same cells.
func (v *Volume) Equal(o *Volume) bool {
	v.mustMatch(o)
	if v.Count() != o.Count() {
		return false
	}
	same := true
	v.forEach(func(i, j, k int) {
		if same && !o.Occupied(i, j, k) {
			same = false
		}
	})
	return same
}
