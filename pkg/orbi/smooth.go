package orbi

import (
	"github.com/chazu/orbishell/pkg/config"
	"github.com/chazu/orbishell/pkg/voxel"
)

const maxSmoothingPasses = 2

// SmoothingPasses returns how many closing passes to run.
func SmoothingPasses(cfg *config.Config) int {
	n := max(cfg.Smoothing.Passes, 0)
	if !cfg.Smoothing.Heavy {
		n = min(n, maxSmoothingPasses)
	}
	if cfg.Build.LaptopMode {
		n = min(n, 1)
	}
	return n
}

// Close dilates v by d and erodes the result by d. Concave creases and
// gaps narrower than 2d fill in; convex regions are unchanged.
func Close(v *voxel.Volume, d float64) *voxel.Volume {
	grown := v.Offset(d)
	closed := grown.Offset(-d)
	grown.Release()
	return closed
}

// Smooth runs the configured closing passes. It consumes shell and returns
// the smoothed volume, which is shell itself when no pass runs.
func Smooth(cfg *config.Config, shell *voxel.Volume) *voxel.Volume {
	for n := SmoothingPasses(cfg); n > 0; n-- {
		next := Close(shell, cfg.Smoothing.OffsetMM)
		shell.Release()
		shell = next
	}
	return shell
}
