package pipeline

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chazu/orbishell/pkg/config"
	"github.com/chazu/orbishell/pkg/kernel/sdfx"
	"github.com/chazu/orbishell/pkg/report"
)

// Run validates cfg and executes the default steps with the sdfx kernel.
// A failure is logged once as "build aborted" and returned; the partial
// report is returned either way.
func Run(cfg *config.Config, logger *zap.Logger) (*report.Report, error) {
	runID := uuid.NewString()
	log := logger.With(zap.String("run_id", runID))

	if err := cfg.Validate(); err != nil {
		log.Error("build aborted", zap.Error(err))
		return &report.Report{RunID: runID, Output: cfg.Paths.Output}, err
	}

	b := NewBuild(cfg, sdfx.New(cfg.Build.VoxelSizeMM))
	b.Logger = log
	b.Report.RunID = runID
	b.Report.Started = time.Now()

	p := New(WithLogger(log))
	p.AddSteps(DefaultSteps()...)

	log.Info("build started",
		zap.Float64("voxel_size_mm", cfg.Build.VoxelSizeMM),
		zap.Stringer("dome_style", cfg.Dome.Style),
		zap.Bool("laptop_mode", cfg.Build.LaptopMode),
		zap.Bool("preview_mode", cfg.Build.PreviewMode),
	)
	err := p.Execute(b)
	b.Release()
	b.Report.Total = time.Since(b.Report.Started)
	if err != nil {
		log.Error("build aborted", zap.Error(err))
		return b.Report, err
	}
	log.Info("build finished",
		zap.Duration("elapsed", b.Report.Total),
		zap.String("output", cfg.Paths.Output),
	)
	return b.Report, nil
}
