package orbi

import (
	"fmt"

	"github.com/chazu/orbishell/pkg/config"
	"github.com/chazu/orbishell/pkg/kernel"
	"github.com/chazu/orbishell/pkg/meshio"
	"github.com/chazu/orbishell/pkg/voxel"
)

// LoadSource reads the source STL and rasterizes its interior inside the
// safe box. Nothing outside the safe box is sampled. It returns the volume
// and the input triangle count.
func LoadSource(k kernel.Kernel, cfg *config.Config) (*voxel.Volume, int, error) {
	surface, err := meshio.Load(cfg.Paths.Source)
	if err != nil {
		return nil, 0, fmt.Errorf("orbi: load source: %w", err)
	}
	n := surface.TriangleCount()
	if n == 0 {
		return nil, 0, fmt.Errorf("%w: %s", ErrEmptySource, cfg.Paths.Source)
	}
	return k.Rasterize(voxel.Clip(surface, cfg.Build.SafeBox)), n, nil
}
