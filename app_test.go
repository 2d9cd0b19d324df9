package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chazu/orbishell/pkg/config"
	"github.com/chazu/orbishell/pkg/geom"
	"github.com/chazu/orbishell/pkg/kernel"
	"github.com/chazu/orbishell/pkg/meshio"
	"github.com/chazu/orbishell/pkg/meshio/meshiotest"
	"github.com/chazu/orbishell/pkg/orbi"
)

// newTestApp returns an App with a fixed environment, running in an empty
// working directory so no stray orbishell.yaml is picked up.
func newTestApp(t *testing.T, env map[string]string) *App {
	t.Helper()
	t.Chdir(t.TempDir())
	app := NewApp(zap.NewNop())
	app.getenv = func(k string) string { return env[k] }
	return app
}

func parseOptions(t *testing.T, args ...string) *options {
	t.Helper()
	opts := &options{}
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	opts.bind(fs)
	require.NoError(t, fs.Parse(args))
	return opts
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestConfigureDefaults(t *testing.T) {
	app := newTestApp(t, nil)
	cfg, err := app.Configure(parseOptions(t))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestConfigureLayerOrder(t *testing.T) {
	file := writeFile(t, "orbishell.yaml", `
build:
  voxel_size_mm: 1
legs:
  outward_curve_mm: 40
`)
	script := writeFile(t, "params.zy", `
(build :voxel-size-mm 0.5)
(dome :style "open-dome")
`)
	app := newTestApp(t, map[string]string{
		config.EnvVoxelSize: "0.8",
		config.EnvOutput:    "env.stl",
	})
	opts := parseOptions(t, "--config", file, "--params", script, "--voxel-size", "2", "--preview")

	cfg, err := app.Configure(opts)
	require.NoError(t, err)
	assert.Equal(t, 40.0, cfg.Legs.OutwardCurveMM, "file layer")
	assert.Equal(t, config.DomeOpenLegacy, cfg.Dome.Style, "script layer")
	assert.Equal(t, "env.stl", cfg.Paths.Output, "environment layer")
	assert.Equal(t, 2.0, cfg.Build.VoxelSizeMM, "flags win")
	assert.True(t, cfg.Build.PreviewMode)
	assert.True(t, cfg.Build.LaptopMode, "unset flag overrode the default")
}

func TestConfigureDiscoversWorkingDirFile(t *testing.T) {
	app := newTestApp(t, nil)
	require.NoError(t, os.WriteFile(config.DefaultConfigFile, []byte("smoothing:\n  passes: 1\n"), 0o600))

	cfg, err := app.Configure(parseOptions(t))
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Smoothing.Passes)
}

func TestConfigureExampleFiles(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	app := newTestApp(t, nil)
	opts := parseOptions(t,
		"--config", filepath.Join(wd, "examples", "orbishell.yaml"),
		"--params", filepath.Join(wd, "examples", "open_dome.zy"),
	)

	cfg, err := app.Configure(opts)
	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.Build.VoxelSizeMM, "script overrides the file")
	assert.Equal(t, 0.2, cfg.Joints.SocketToleranceMM)
	assert.False(t, cfg.Reinforcement.MountingBosses)
	assert.True(t, cfg.Build.PreviewMode)
	assert.Equal(t, config.DomeOpenLegacy, cfg.Dome.Style)
	assert.Equal(t, 96.0, cfg.Dome.OpenInnerRMM)
	assert.Equal(t, []float64{16, 26, 16}, cfg.Legs.BulgeRadiiMM)
}

func TestConfigureErrors(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		args  func(t *testing.T) []string
		check func(t *testing.T, err error)
	}{
		{
			name: "missing explicit config",
			args: func(t *testing.T) []string {
				return []string{"--config", filepath.Join(t.TempDir(), "nope.yaml")}
			},
			check: func(t *testing.T, err error) { assert.ErrorIs(t, err, config.ErrConfigNotFound) },
		},
		{
			name: "unknown yaml key",
			args: func(t *testing.T) []string {
				return []string{"--config", writeFile(t, "bad.yaml", "legs:\n  toes: 5\n")}
			},
			check: func(t *testing.T, err error) { assert.Contains(t, err.Error(), "toes") },
		},
		{
			name: "script syntax error",
			args: func(t *testing.T) []string {
				return []string{"--params", writeFile(t, "bad.zy", "(legs :knee-drop-mm 3")}
			},
			check: func(t *testing.T, err error) {
				var se *ScriptError
				require.True(t, errors.As(err, &se), "got %T: %v", err, err)
				assert.NotEmpty(t, se.Errors)
			},
		},
		{
			name: "script sets unknown key",
			args: func(t *testing.T) []string {
				return []string{"--params", writeFile(t, "bad.zy", "(legs :toes 5)")}
			},
			check: func(t *testing.T, err error) { assert.Contains(t, err.Error(), "toes") },
		},
		{
			name: "malformed environment",
			env:  map[string]string{config.EnvLaptopMode: "sometimes"},
			args: func(t *testing.T) []string { return nil },
			check: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), config.EnvLaptopMode)
			},
		},
		{
			name:  "invalid flag value",
			args:  func(t *testing.T) []string { return []string{"--voxel-size", "0"} },
			check: func(t *testing.T, err error) { assert.ErrorIs(t, err, config.ErrInvalidVoxelSize) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := tt.args(t)
			app := newTestApp(t, tt.env)
			_, err := app.Configure(parseOptions(t, args...))
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func testSource(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cube.stl")
	require.NoError(t, meshio.Save(path, meshiotest.Box(geom.Box{Min: geom.V(-15, -15, 0), Max: geom.V(15, 15, 30)})))
	return path
}

func TestBuildWritesReport(t *testing.T) {
	if testing.Short() {
		t.Skip("full build in -short mode")
	}
	app := newTestApp(t, nil)
	out := filepath.Join(t.TempDir(), "shell.stl")
	cfg, err := app.Configure(parseOptions(t, "--voxel-size", "2", "--source", testSource(t), "--output", out))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, app.Build(cfg, &buf))
	assert.FileExists(t, out)
	assert.Contains(t, buf.String(), "# Orbi Shell Build")
	assert.Contains(t, buf.String(), "sockets-nozzles")
}

func TestBuildFailureIsMarkedLogged(t *testing.T) {
	app := newTestApp(t, nil)
	source := filepath.Join(t.TempDir(), "empty.stl")
	require.NoError(t, meshio.Save(source, &kernel.Mesh{}))
	cfg, err := app.Configure(parseOptions(t, "--voxel-size", "2", "--source", source))
	require.NoError(t, err)

	var buf bytes.Buffer
	err = app.Build(cfg, &buf)
	require.Error(t, err)
	var logged *loggedError
	assert.True(t, errors.As(err, &logged))
	assert.ErrorIs(t, err, orbi.ErrEmptySource)
	assert.Zero(t, buf.Len(), "report written for a failed build")
}
