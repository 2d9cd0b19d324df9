package orbi

import (
	"github.com/chazu/orbishell/pkg/config"
	"github.com/chazu/orbishell/pkg/geom"
	"github.com/chazu/orbishell/pkg/kernel"
	"github.com/chazu/orbishell/pkg/voxel"
)

// Both curvature knobs are tuned by eye and scale differently.
const (
	outwardCurveScale  = 0.25
	curveStrengthScale = 0.12
)

// LegCurve returns the outward knee displacement. OutwardCurveMM wins when
// positive, otherwise CurveStrength applies.
func LegCurve(l config.Legs) float64 {
	if l.OutwardCurveMM > 0 {
		return l.OutwardCurveMM * outwardCurveScale
	}
	return l.CurveStrength * curveStrengthScale
}

// LegRadii returns the hip, knee, shin and ankle radii. BulgeCount cuts
// BulgeRadiiMM short and later joints reuse the last radius kept, so a
// count of 1 gives every bulge the hip radius.
func LegRadii(l config.Legs) [4]float64 {
	n := min(max(l.BulgeCount, 1), len(l.BulgeRadiiMM))
	at := func(i int) float64 { return l.BulgeRadiiMM[min(i, n-1)] }

	knee := at(1)
	if l.MiddleBulgeRadiusMM > 0 {
		knee = l.MiddleBulgeRadiusMM
	}
	return [4]float64{at(0), knee, at(2), l.FootTaperRadiusMM}
}

// Waypoint is a leg vertex in the leg's own half-plane.
type Waypoint struct {
	Radial, Z float64
}

// LegWaypoints returns hip, knee, shin and ankle.
func LegWaypoints(l config.Legs) [4]Waypoint {
	curve := LegCurve(l)
	return [4]Waypoint{
		{l.StartRadialMM, l.JunctionZMM},
		{l.StartRadialMM + curve, l.JunctionZMM - l.KneeDropMM},
		{l.StartRadialMM - l.ShinInsetMM, l.ShinZMM},
		{l.FootRadialMM, l.FootGroundZMM + l.FootHeightMM},
	}
}

// LegLattice chains three round-capped beams per leg with spheres at the
// knee and shin, where beams of different radii would otherwise show a
// seam.
func LegLattice(l config.Legs) *kernel.Lattice {
	wp := LegWaypoints(l)
	r := LegRadii(l)

	lat := &kernel.Lattice{}
	for i := 0; i < Arms; i++ {
		a := armAngle(i)
		var p [4]geom.Vec3
		for j, w := range wp {
			p[j] = geom.Polar(w.Radial, a, w.Z)
		}
		for j := 0; j < 3; j++ {
			lat.AddBeam(p[j], p[j+1], r[j], r[j+1], true)
		}
		lat.AddSphere(p[1], r[1])
		lat.AddSphere(p[2], r[2])
	}
	return lat
}

// Legs builds the three legs with their feet, trimmed to the safe box.
func Legs(k kernel.Kernel, cfg *config.Config) *voxel.Volume {
	l := cfg.Legs
	legs := k.Lattice(LegLattice(l))
	for i := 0; i < Arms; i++ {
		c := geom.Polar(l.FootRadialMM, armAngle(i), l.FootGroundZMM+l.FootHeightMM/2)
		fold(legs, k.Cylinder(c, l.FootRadiusMM, l.FootHeightMM))
	}
	legs.Trim(cfg.Build.SafeBox)
	return legs
}
