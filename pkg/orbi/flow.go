package orbi

import (
	"github.com/chazu/orbishell/pkg/config"
	"github.com/chazu/orbishell/pkg/geom"
	"github.com/chazu/orbishell/pkg/kernel"
	"github.com/chazu/orbishell/pkg/voxel"
)

// FlowVolume returns the air path: a flattened plenum disc with three
// curved ducts rising to the side exits. The caller owns the result.
func FlowVolume(k kernel.Kernel, cfg *config.Config) *voxel.Volume {
	f := cfg.Flow
	e := f.PlenumRadiusMM + f.PlenumTrimMarginMM

	plenum := k.Sphere(geom.V(0, 0, f.PlenumZMM), f.PlenumRadiusMM)
	plenum.Trim(geom.Box{
		Min: geom.V(-e, -e, f.PlenumZMinMM),
		Max: geom.V(e, e, f.PlenumZMaxMM),
	})
	fold(plenum, k.Lattice(DuctLattice(f)))
	return plenum
}

// DuctLattice returns the constant-radius ducts from the plenum rim
// through the bend to the side exits.
func DuctLattice(f config.Flow) *kernel.Lattice {
	r := f.TubeRadiusMM
	lat := &kernel.Lattice{}
	for i := 0; i < Arms; i++ {
		a := armAngle(i)
		start := geom.Polar(f.PlenumRadiusMM, a, f.PlenumZMM)
		mid := geom.Polar(f.CurveMidRadialMM, a, f.CurveMidZMM)
		exit := geom.Polar(f.SideExitRadialMM, a, f.SideExitZMM)
		lat.AddBeam(start, mid, r, r, true)
		lat.AddBeam(mid, exit, r, r, true)
	}
	return lat
}

// Wall returns the skin of thickness t around flow, excluding flow itself.
func Wall(flow *voxel.Volume, t float64) *voxel.Volume {
	wall := flow.Offset(t)
	wall.Subtract(flow)
	return wall
}

// HollowDucts folds the wall around flow into shell and releases flow.
// The open dome then gets its vertical inlet bores; the closed bowl cut
// its inlets already. It reports whether the bores were cut.
func HollowDucts(k kernel.Kernel, cfg *config.Config, shell, flow *voxel.Volume) bool {
	wall := Wall(flow, cfg.Flow.WallThicknessMM)
	flow.Release()
	fold(shell, wall)

	if cfg.Dome.Style.CutsInletsInDome() {
		return false
	}
	LegacyInlets(k, cfg.Inlets, shell)
	return true
}

// LegacyInlets bores three vertical cylinders through shell.
func LegacyInlets(k kernel.Kernel, in config.Inlets, shell *voxel.Volume) {
	z := (in.LegacyZBottomMM + in.LegacyZTopMM) / 2
	h := in.LegacyZTopMM - in.LegacyZBottomMM + in.LegacyExtraHeightMM
	for i := 0; i < Arms; i++ {
		carve(shell, k.Cylinder(geom.Polar(in.LegacyRadialMM, armAngle(i), z), in.LegacyRadiusMM, h))
	}
}
