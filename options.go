package main

import (
	"github.com/spf13/pflag"

	"github.com/chazu/orbishell/pkg/config"
)

// options holds the build flags. Flag values only override the
// configuration when they were set on the command line.
type options struct {
	configPath string
	paramsPath string
	source     string
	output     string
	voxelSize  float64
	preview    bool
	laptop     bool
	reportPath string

	flags *pflag.FlagSet
}

func (o *options) bind(fs *pflag.FlagSet) {
	fs.StringVarP(&o.configPath, "config", "c", "", "YAML configuration file (default: ./orbishell.yaml, then the XDG config dir)")
	fs.StringVarP(&o.paramsPath, "params", "p", "", "parameter script applied on top of the configuration")
	fs.StringVarP(&o.source, "source", "s", "", "source STL path")
	fs.StringVarP(&o.output, "output", "o", "", "output STL path")
	fs.Float64Var(&o.voxelSize, "voxel-size", config.DefaultVoxelSizeMM, "voxel edge length in mm")
	fs.BoolVar(&o.preview, "preview", false, "skip reinforcement")
	fs.BoolVar(&o.laptop, "laptop", true, "limit smoothing to one pass")
	fs.StringVar(&o.reportPath, "report", "", "write a Markdown build report to this path (- for stdout)")
	o.flags = fs
}

func (o *options) changed(name string) bool {
	return o.flags != nil && o.flags.Changed(name)
}

func (o *options) apply(cfg *config.Config) {
	if o.changed("source") {
		cfg.Paths.Source = o.source
	}
	if o.changed("output") {
		cfg.Paths.Output = o.output
	}
	if o.changed("voxel-size") {
		cfg.Build.VoxelSizeMM = o.voxelSize
	}
	if o.changed("preview") {
		cfg.Build.PreviewMode = o.preview
	}
	if o.changed("laptop") {
		cfg.Build.LaptopMode = o.laptop
	}
}
