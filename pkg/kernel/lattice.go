package kernel

import (
	"fmt"

	"github.com/chazu/orbishell/pkg/geom"
)

// Beam is a tapered capsule from A (radius RA) to B (radius RB). With
// RoundCaps the solid is the convex hull of the two end spheres; without,
// it is a truncated cone cut flat at both ends.
type Beam struct {
	A, B      geom.Vec3
	RA, RB    float64
	RoundCaps bool
}

// Sphere is a solid ball.
type Sphere struct {
	Center geom.Vec3
	Radius float64
}

// Lattice is an ordered set of beams and spheres rasterized as one
// volume.
type Lattice struct {
	Beams   []Beam
	Spheres []Sphere
}

// AddBeam appends a beam. Radii must be positive.
func (l *Lattice) AddBeam(a, b geom.Vec3, ra, rb float64, roundCaps bool) {
	if !(ra > 0) || !(rb > 0) {
		panic(fmt.Sprintf("kernel: beam radii must be positive, got %v and %v", ra, rb))
	}
	l.Beams = append(l.Beams, Beam{A: a, B: b, RA: ra, RB: rb, RoundCaps: roundCaps})
}

// AddSphere appends a sphere. The radius must be positive.
func (l *Lattice) AddSphere(c geom.Vec3, r float64) {
	if !(r > 0) {
		panic(fmt.Sprintf("kernel: sphere radius must be positive, got %v", r))
	}
	l.Spheres = append(l.Spheres, Sphere{Center: c, Radius: r})
}

// Len returns the number of primitives.
func (l *Lattice) Len() int {
	return len(l.Beams) + len(l.Spheres)
}

// Bounds encloses every primitive.
func (l *Lattice) Bounds() geom.Box {
	b := geom.Box{Min: geom.V(1, 1, 1)}
	for _, bm := range l.Beams {
		b = b.Union(bm.Bounds())
	}
	for _, s := range l.Spheres {
		b = b.Union(geom.Around(s.Center, s.Radius))
	}
	return b
}

// Bounds encloses the beam including its caps.
func (b Beam) Bounds() geom.Box {
	r := max(b.RA, b.RB)
	return geom.NewBox(b.A, b.B).Expand(r)
}
