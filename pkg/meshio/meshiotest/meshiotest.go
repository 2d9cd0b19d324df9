// Package meshiotest provides mesh fixtures for tests.
package meshiotest

import (
	"github.com/chazu/orbishell/pkg/geom"
	"github.com/chazu/orbishell/pkg/kernel"
)

// Box returns the closed twelve-triangle surface of b with outward
// winding.
func Box(b geom.Box) *kernel.Mesh {
	lo, hi := b.Min, b.Max
	m := &kernel.Mesh{Name: "box"}
	for i := 0; i < 8; i++ {
		p := lo
		if i&1 != 0 {
			p.X = hi.X
		}
		if i&2 != 0 {
			p.Y = hi.Y
		}
		if i&4 != 0 {
			p.Z = hi.Z
		}
		m.Vertices = append(m.Vertices, float32(p.X), float32(p.Y), float32(p.Z))
	}
	m.Indices = []uint32{
		0, 2, 1, 1, 2, 3, // -z
		4, 5, 6, 5, 7, 6, // +z
		0, 1, 4, 1, 5, 4, // -y
		2, 6, 3, 3, 6, 7, // +y
		0, 4, 2, 2, 4, 6, // -x
		1, 3, 5, 3, 7, 5, // +x
	}
	return m
}
