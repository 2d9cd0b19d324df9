package pipeline

import (
	"go.uber.org/zap"

	"github.com/chazu/orbishell/pkg/orbi"
	"github.com/chazu/orbishell/pkg/tessellate"
)

// Stage names, in build order.
const (
	StageLoadSource     = "load-source"
	StageLegs           = "legs"
	StageDome           = "dome"
	StageFlowVolume     = "flow-volume"
	StageHollowDucts    = "hollow-ducts"
	StageSocketsNozzles = "sockets-nozzles"
	StageReinforce      = "reinforce"
	StageSmooth         = "smooth"
	StageExport         = "export"
)

// DefaultSteps returns the full shell build.
func DefaultSteps() []Step {
	return []Step{
		NewStep(StageLoadSource, loadSource),
		NewStep(StageLegs, legs),
		NewStep(StageDome, dome),
		NewStep(StageFlowVolume, flowVolume),
		NewStep(StageHollowDucts, hollowDucts),
		NewStep(StageSocketsNozzles, socketsNozzles),
		NewStep(StageReinforce, reinforce),
		NewStep(StageSmooth, smooth),
		NewStep(StageExport, export),
	}
}

// loadSource rasterizes the reference surface for diagnostics. The volume
// is measured and dropped; it never joins the shell.
func loadSource(b *Build) error {
	v, n, err := orbi.LoadSource(b.Kernel, b.Config)
	if err != nil {
		return err
	}
	vol, box := v.Measure()
	v.Release()

	b.SourceTriangles = n
	b.Report.SourceTriangles = n
	if box.IsEmpty() {
		b.Notef("%d triangles, empty inside the safe box", n)
		return nil
	}
	b.Notef("%d triangles, %.0f mm³, z %.1f..%.1f", n, vol, box.Min.Z, box.Max.Z)
	return nil
}

func legs(b *Build) error {
	v := orbi.Legs(b.Kernel, b.Config)
	b.Shell.Union(v)
	v.Release()
	r := orbi.LegRadii(b.Config.Legs)
	b.Notef("curve %.2f mm, radii %v", orbi.LegCurve(b.Config.Legs), r)
	return nil
}

func dome(b *Build) error {
	if err := orbi.Dome(b.Kernel, b.Config, b.Shell); err != nil {
		return err
	}
	b.Notef("%s", b.Config.Dome.Style)
	return nil
}

func flowVolume(b *Build) error {
	b.Flow = orbi.FlowVolume(b.Kernel, b.Config)
	vol, _ := b.Flow.Measure()
	b.Notef("air path %.0f mm³", vol)
	return nil
}

func hollowDucts(b *Build) error {
	flow := b.Flow
	b.Flow = nil
	if orbi.HollowDucts(b.Kernel, b.Config, b.Shell, flow) {
		b.Notef("wall %.1f mm, legacy inlets cut", b.Config.Flow.WallThicknessMM)
		return nil
	}
	b.Logger.Info("legacy inlet cut skipped", zap.Stringer("dome_style", b.Config.Dome.Style))
	b.Notef("wall %.1f mm, inlets cut by dome", b.Config.Flow.WallThicknessMM)
	return nil
}

func socketsNozzles(b *Build) error {
	j := b.Config.Joints
	orbi.Joints(b.Kernel, j, b.Shell)
	b.Notef("ball %.1f mm, socket %.2f mm", j.BallDiameterMM, 2*orbi.SocketRadius(j))
	return nil
}

func reinforce(b *Build) error {
	r := orbi.Reinforce(b.Kernel, b.Config, b.Shell)
	if r.Skipped {
		b.Logger.Info("reinforcement skipped", zap.Bool("preview_mode", true))
		b.Notef("skipped (preview)")
		return nil
	}
	b.Notef("%d collars, %d bosses", r.Collars, r.Bosses)
	return nil
}

func smooth(b *Build) error {
	n := orbi.SmoothingPasses(b.Config)
	b.Shell = orbi.Smooth(b.Config, b.Shell)
	b.Notef("%d × %.2f mm", n, b.Config.Smoothing.OffsetMM)
	return nil
}

// export hands the shell to the tessellator, which releases it once the
// mesh exists.
func export(b *Build) error {
	if b.Flow != nil {
		b.Flow.Release()
		b.Flow = nil
	}
	shell := b.Shell
	b.Shell = nil

	res, err := tessellate.Export(b.Kernel, shell, b.Config.Paths.Output)
	if err != nil {
		return err
	}
	b.Result = res
	b.Report.OutputTriangles = res.Mesh.TriangleCount()
	b.Report.VolumeMM3 = res.VolumeMM3
	b.Report.NeedsRepair = res.Diagnostics.NeedsRepair

	b.Logger.Info("mesh written",
		zap.String("path", b.Config.Paths.Output),
		zap.Int("triangles", res.Mesh.TriangleCount()),
		zap.Int("source_triangles", b.SourceTriangles),
	)
	if res.Diagnostics.NeedsRepair {
		b.Logger.Warn("mesh has unpaired edges", zap.String("path", b.Config.Paths.Output))
	}
	b.Notef("%d triangles", res.Mesh.TriangleCount())
	return nil
}
