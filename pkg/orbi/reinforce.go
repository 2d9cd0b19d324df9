package orbi

import (
	"math"

	"github.com/chazu/orbishell/pkg/config"
	"github.com/chazu/orbishell/pkg/geom"
	"github.com/chazu/orbishell/pkg/kernel"
	"github.com/chazu/orbishell/pkg/voxel"
)

// Reinforced lists what Reinforce added.
type Reinforced struct {
	Collars int
	Bosses  int
	Skipped bool // preview build
}

// Reinforce thickens the nozzle bases and adds the drilled mounting
// bosses, each only when enabled. Preview builds skip both.
func Reinforce(k kernel.Kernel, cfg *config.Config, shell *voxel.Volume) Reinforced {
	var done Reinforced
	if cfg.Build.PreviewMode {
		done.Skipped = true
		return done
	}
	r := cfg.Reinforcement
	if r.NozzleBaseThickening {
		done.Collars = collars(k, cfg.Joints, r, shell)
	}
	if r.MountingBosses {
		done.Bosses = bosses(k, r, shell)
	}
	return done
}

func collars(k kernel.Kernel, j config.Joints, r config.Reinforcement, shell *voxel.Volume) int {
	outerR := j.NozzleOuterRBaseMM + r.NozzleBaseExtraRMM
	outer, inner := &kernel.Lattice{}, &kernel.Lattice{}
	for i := 0; i < Arms; i++ {
		c := BallCenter(j, i)
		end := c.Sub(geom.V(0, 0, r.NozzleBaseHeightMM))
		outer.AddBeam(c, end, outerR, outerR, true)
		inner.AddBeam(c, end, j.NozzleInnerRBaseMM, j.NozzleInnerRBaseMM, true)
	}
	v := k.Lattice(outer)
	carve(v, k.Lattice(inner))
	fold(shell, v)
	return Arms
}

// BossCenter returns the centre of mounting boss i.
func BossCenter(r config.Reinforcement, i int) geom.Vec3 {
	deg := r.BossAngleDeg + float64(i)*360/float64(r.BossCount)
	return geom.Polar(r.BossRadialMM, deg*math.Pi/180, r.BossZMM)
}

func bosses(k kernel.Kernel, r config.Reinforcement, shell *voxel.Volume) int {
	for i := 0; i < r.BossCount; i++ {
		c := BossCenter(r, i)
		fold(shell, k.Cylinder(c, r.BossRadiusMM, r.BossHeightMM))
		carve(shell, k.Cylinder(c, r.BossHoleRadiusMM, r.BossHeightMM+r.BossHoleExtraHeightMM))
	}
	return r.BossCount
}
