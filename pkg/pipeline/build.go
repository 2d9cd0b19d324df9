package pipeline

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/chazu/orbishell/pkg/config"
	"github.com/chazu/orbishell/pkg/geom"
	"github.com/chazu/orbishell/pkg/kernel"
	"github.com/chazu/orbishell/pkg/report"
	"github.com/chazu/orbishell/pkg/tessellate"
	"github.com/chazu/orbishell/pkg/voxel"
)

// Build is the state one run threads through its steps. The pipeline owns
// Shell and Flow exclusively; a step that replaces either releases the old
// volume.
type Build struct {
	Config *config.Config
	Kernel kernel.Kernel
	Logger *zap.Logger

	Shell *voxel.Volume // accumulator, nil once exported
	Flow  *voxel.Volume // air path between flow-volume and hollow-ducts

	SourceTriangles int
	Result          *tessellate.Result
	Report          *report.Report

	note string
}

// NewBuild clones cfg and starts an empty shell on k's lattice.
func NewBuild(cfg *config.Config, k kernel.Kernel) *Build {
	cfg = cfg.Clone()
	return &Build{
		Config: cfg,
		Kernel: k,
		Logger: zap.NewNop(),
		Shell:  voxel.New(k.VoxelSize()),
		Report: &report.Report{Output: cfg.Paths.Output},
	}
}

// Notef sets the note recorded for the running stage.
func (b *Build) Notef(format string, args ...any) {
	b.note = fmt.Sprintf(format, args...)
}

// Release frees every volume the build still holds.
func (b *Build) Release() {
	for _, v := range []**voxel.Volume{&b.Shell, &b.Flow} {
		if *v != nil {
			(*v).Release()
			*v = nil
		}
	}
}

func (b *Build) measure() (float64, geom.Box) {
	switch {
	case b.Shell != nil && !b.Shell.Released():
		return b.Shell.Measure()
	case b.Result != nil:
		return b.Result.VolumeMM3, b.Result.Bounds
	}
	return 0, geom.Box{Min: geom.V(1, 1, 1)}
}
