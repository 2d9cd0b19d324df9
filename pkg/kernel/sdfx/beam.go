package sdfx

import (
	"math"

	"github.com/chazu/orbishell/pkg/geom"
	"github.com/chazu/orbishell/pkg/kernel"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// beamSDF is the signed distance function of a kernel.Beam.
//
// Round caps give a round cone, the hull of the two end spheres, with an
// exact distance. Flat caps give a truncated cone whose distance is a
// bound that is exact in sign.
type beamSDF struct {
	a, b   geom.Vec3
	ra, rb float64
	round  bool

	ba  geom.Vec3
	l2  float64 // |b-a|^2
	rr  float64 // ra - rb
	a2  float64 // l2 - rr^2
	il2 float64
	bb  sdf.Box3
}

func newBeam(b kernel.Beam) *beamSDF {
	s := &beamSDF{a: b.A, b: b.B, ra: b.RA, rb: b.RB, round: b.RoundCaps}
	s.ba = b.B.Sub(b.A)
	s.l2 = s.ba.Dot(s.ba)
	s.rr = b.RA - b.RB
	s.a2 = s.l2 - s.rr*s.rr
	if s.l2 > 0 {
		s.il2 = 1 / s.l2
	}
	box := b.Bounds()
	s.bb = sdf.Box3{Min: toVec(box.Min), Max: toVec(box.Max)}
	return s
}

func (s *beamSDF) BoundingBox() sdf.Box3 { return s.bb }

func (s *beamSDF) Evaluate(p v3.Vec) float64 {
	q := fromVec(p)
	if s.l2 == 0 {
		return q.Sub(s.a).Length() - math.Max(s.ra, s.rb)
	}
	if s.round {
		return s.roundCone(q)
	}
	return s.flatCone(q)
}

func (s *beamSDF) roundCone(q geom.Vec3) float64 {
	if s.a2 <= 0 {
		// one end sphere swallows the other
		return math.Min(q.Sub(s.a).Length()-s.ra, q.Sub(s.b).Length()-s.rb)
	}
	pa := q.Sub(s.a)
	y := pa.Dot(s.ba)
	z := y - s.l2
	w := pa.Scale(s.l2).Sub(s.ba.Scale(y))
	x2 := w.Dot(w)
	y2 := y * y * s.l2
	z2 := z * z * s.l2

	k := sign(s.rr) * s.rr * s.rr * x2
	if sign(z)*s.a2*z2 > k {
		return math.Sqrt(x2+z2)*s.il2 - s.rb
	}
	if sign(y)*s.a2*y2 < k {
		return math.Sqrt(x2+y2)*s.il2 - s.ra
	}
	return (math.Sqrt(x2*s.a2*s.il2)+y*s.rr)*s.il2 - s.ra
}

func (s *beamSDF) flatCone(q geom.Vec3) float64 {
	h := math.Sqrt(s.l2)
	pa := q.Sub(s.a)
	t := pa.Dot(s.ba) * s.il2
	axial := t * h
	radial := pa.Sub(s.ba.Scale(t)).Length()
	slope := (s.rb - s.ra) / h
	side := (radial - (s.ra + slope*axial)) / math.Sqrt(1+slope*slope)
	ends := math.Max(-axial, axial-h)
	return math.Max(side, ends)
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
