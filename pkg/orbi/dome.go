package orbi

import (
	"fmt"

	"github.com/chazu/orbishell/pkg/config"
	"github.com/chazu/orbishell/pkg/geom"
	"github.com/chazu/orbishell/pkg/kernel"
	"github.com/chazu/orbishell/pkg/voxel"
)

// Dome adds the enclosure selected by cfg.Dome.Style to shell. The closed
// bowl also cuts its three inlet capsules.
func Dome(k kernel.Kernel, cfg *config.Config, shell *voxel.Volume) error {
	switch cfg.Dome.Style {
	case config.DomeClosedBowl:
		closedBowl(k, cfg, shell)
		carve(shell, k.Lattice(InletLattice(cfg)))
	case config.DomeOpenLegacy:
		openDome(k, cfg.Dome, shell)
	default:
		return fmt.Errorf("orbi: dome: %w: %q", config.ErrInvalidDomeStyle, cfg.Dome.Style)
	}
	return nil
}

// BowlTrim is the region a bowl sphere of radius r is clipped to.
func BowlTrim(d config.Dome, r float64) geom.Box {
	e := r + d.TrimMarginMM
	return geom.Box{
		Min: geom.V(-e, -e, d.CenterZMM-d.RimDropMM),
		Max: geom.V(e, e, d.TrimTopZMM),
	}
}

func closedBowl(k kernel.Kernel, cfg *config.Config, shell *voxel.Volume) {
	d := cfg.Dome
	c := geom.V(0, 0, d.CenterZMM)
	innerR := d.RadiusMM - cfg.Flow.WallThicknessMM

	outer := k.Sphere(c, d.RadiusMM)
	outer.Trim(BowlTrim(d, d.RadiusMM))
	inner := k.Sphere(c, innerR)
	inner.Trim(BowlTrim(d, innerR))

	carve(outer, inner)
	fold(shell, outer)
}

// InletLattice returns the three capsules bored through the closed bowl.
func InletLattice(cfg *config.Config) *kernel.Lattice {
	in := cfg.Inlets
	radial := cfg.Dome.RadiusMM * in.RadialFraction
	top := cfg.Dome.CenterZMM + in.TopAboveCenterMM
	bottom := cfg.Dome.CenterZMM - in.BottomBelowCenterMM

	lat := &kernel.Lattice{}
	for i := 0; i < Arms; i++ {
		a := armAngle(i)
		lat.AddBeam(geom.Polar(radial, a, top), geom.Polar(radial, a, bottom), in.RadiusMM, in.RadiusMM, true)
	}
	return lat
}

func openDome(k kernel.Kernel, d config.Dome, shell *voxel.Volume) {
	trim := func(r float64) geom.Box {
		return geom.Box{Min: geom.V(-r, -r, d.OpenBottomZMM), Max: geom.V(r, r, d.OpenTopZMM)}
	}
	outer := k.Sphere(geom.V(0, 0, 0), d.OpenOuterRMM)
	outer.Trim(trim(d.OpenOuterRMM))
	inner := k.Sphere(geom.V(0, 0, 0), d.OpenInnerRMM)
	inner.Trim(trim(d.OpenInnerRMM))

	carve(outer, inner)
	fold(shell, outer)
}
