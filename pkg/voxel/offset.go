package voxel

import "math"

// maxSlabCells bounds the scratch distance grid of one offset slab
// (float32 cells, so 64 MiB).
const maxSlabCells = 1 << 24

// far stands in for an infinite squared distance.
const far = 1e20

// Offset returns a new volume grown (d > 0) or shrunk (d < 0) by |d|
// millimetres. A cell survives dilation when its centre is within |d| of an
// occupied centre, and survives erosion when every empty centre is farther
// than |d| away. Distances are exact Euclidean, computed slab by slab
// along Z so scratch memory stays bounded.
func (v *Volume) Offset(d float64) *Volume {
	v.mustLive()
	if d == 0 || v.IsEmpty() {
		return v.Clone()
	}
	r := math.Abs(d) / v.size
	halo := int(math.Ceil(r))
	if d > 0 {
		return v.dilate(r*r, halo)
	}
	return v.erode(r*r, halo)
}

func (v *Volume) dilate(r2 float64, halo int) *Volume {
	lo, hi := v.org, v.hi()
	for a := 0; a < 3; a++ {
		lo[a] -= halo
		hi[a] += halo
	}
	out := newGrid(v.size, lo, hi)
	v.slabs(lo, hi, halo, func(i, j, k int) float32 {
		if v.Occupied(i, j, k) {
			return 0
		}
		return far
	}, func(i, j, k int, d2 float32) {
		if float64(d2) <= r2 {
			out.set(i, j, k)
		}
	})
	out.compact()
	return out
}

func (v *Volume) erode(r2 float64, halo int) *Volume {
	out := newGrid(v.size, v.org, v.hi())
	// One empty ring around the grid in X and Y stands for everything
	// outside it; along Z the slab window already reaches past the grid.
	lo, hi := v.org, v.hi()
	for a := 0; a < 2; a++ {
		lo[a]--
		hi[a]++
	}
	zlo, zhi := v.org[2], v.hi()[2]
	v.slabs([3]int{lo[0], lo[1], zlo}, [3]int{hi[0], hi[1], zhi}, halo, func(i, j, k int) float32 {
		if v.Occupied(i, j, k) {
			return far
		}
		return 0
	}, func(i, j, k int, d2 float32) {
		if float64(d2) > r2 && v.Occupied(i, j, k) {
			out.set(i, j, k)
		}
	})
	out.compact()
	return out
}

// slabs runs a squared distance transform over the lattice box [lo, hi]
// in Z slabs. seed gives the initial value of each cell (0 for sources),
// emit receives the squared distance (in voxel units) of every cell of
// the box. Each slab is padded by halo layers above and below so
// distances up to halo are exact.
func (v *Volume) slabs(lo, hi [3]int, halo int, seed func(i, j, k int) float32, emit func(i, j, k int, d2 float32)) {
	nx, ny := hi[0]-lo[0]+1, hi[1]-lo[1]+1
	depth := max(1, maxSlabCells/(nx*ny)-2*halo)
	tr := newTransform(max(nx, ny, hi[2]-lo[2]+1+2*halo))
	var grid []float32

	for z0 := lo[2]; z0 <= hi[2]; z0 += depth {
		z1 := min(z0+depth-1, hi[2])
		wlo, whi := z0-halo, z1+halo
		nz := whi - wlo + 1
		if n := nx * ny * nz; cap(grid) < n {
			grid = make([]float32, n)
		} else {
			grid = grid[:n]
		}

		c := 0
		for k := wlo; k <= whi; k++ {
			for j := lo[1]; j <= hi[1]; j++ {
				for i := lo[0]; i <= hi[0]; i++ {
					grid[c] = seed(i, j, k)
					c++
				}
			}
		}
		tr.apply(grid, nx, ny, nz)

		for k := z0; k <= z1; k++ {
			c = (k - wlo) * nx * ny
			for j := lo[1]; j <= hi[1]; j++ {
				for i := lo[0]; i <= hi[0]; i++ {
					emit(i, j, k, grid[c])
					c++
				}
			}
		}
	}
}

// transform is the separable squared Euclidean distance transform of
// Felzenszwalb and Huttenlocher, one lower envelope of parabolas per line.
type transform struct {
	f, d, z []float64
	v       []int
}

func newTransform(n int) *transform {
	return &transform{
		f: make([]float64, n),
		d: make([]float64, n),
		z: make([]float64, n+1),
		v: make([]int, n),
	}
}

func (t *transform) apply(g []float32, nx, ny, nz int) {
	t.pass(g, nx, 1, nx, ny*nz)
	for k := 0; k < nz; k++ {
		base := k * nx * ny
		for i := 0; i < nx; i++ {
			t.line(g[base+i:], ny, nx)
		}
	}
	plane := nx * ny
	for c := 0; c < plane; c++ {
		t.line(g[c:], nz, plane)
	}
}

// pass transforms count consecutive lines of length n laid out stride
// apart.
func (t *transform) pass(g []float32, n, step, stride, count int) {
	for l := 0; l < count; l++ {
		t.line(g[l*stride:], n, step)
	}
}

// line transforms g[0], g[step], ... g[(n-1)*step] in place.
func (t *transform) line(g []float32, n, step int) {
	f, d, z, v := t.f, t.d, t.z, t.v
	for q := 0; q < n; q++ {
		f[q] = float64(g[q*step])
	}

	k := 0
	v[0] = 0
	z[0] = math.Inf(-1)
	z[1] = math.Inf(1)
	for q := 1; q < n; q++ {
		fq := f[q] + float64(q*q)
		s := (fq - f[v[k]] - float64(v[k]*v[k])) / float64(2*(q-v[k]))
		for s <= z[k] {
			k--
			s = (fq - f[v[k]] - float64(v[k]*v[k])) / float64(2*(q-v[k]))
		}
		k++
		v[k] = q
		z[k] = s
		z[k+1] = math.Inf(1)
	}

	k = 0
	for q := 0; q < n; q++ {
		for z[k+1] < float64(q) {
			k++
		}
		dq := float64(q - v[k])
		d[q] = dq*dq + f[v[k]]
	}
	for q := 0; q < n; q++ {
		g[q*step] = float32(d[q])
	}
}
