package main

import (
	"bytes"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/chazu/orbishell/pkg/config"
)

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd()

	if cmd.Use != "orbishell" {
		t.Errorf("expected use 'orbishell', got %q", cmd.Use)
	}
	if cmd.Short == "" || cmd.Long == "" {
		t.Error("expected non-empty descriptions")
	}
	if cmd.Version == "" {
		t.Error("expected non-empty version")
	}

	flag := cmd.PersistentFlags().Lookup("verbose")
	if flag == nil {
		t.Fatal("expected verbose flag")
	}
	if flag.Shorthand != "v" {
		t.Errorf("expected shorthand 'v', got %q", flag.Shorthand)
	}

	for _, name := range []string{"config", "params", "source", "output", "voxel-size", "preview", "laptop", "report"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("root command lacks --%s", name)
		}
	}

	want := map[string]bool{"build": false, "config": false, "version": false}
	for _, sub := range cmd.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestShorthands(t *testing.T) {
	cmd := NewBuildCmd()
	for name, short := range map[string]string{"config": "c", "params": "p", "source": "s", "output": "o"} {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			t.Errorf("build lacks --%s", name)
			continue
		}
		if f.Shorthand != short {
			t.Errorf("--%s shorthand = %q, want %q", name, f.Shorthand, short)
		}
	}
}

func TestConfigCmdPrintsEffectiveYAML(t *testing.T) {
	t.Chdir(t.TempDir())
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"config", "--voxel-size", "0.5", "--preview"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("config command error = %v", err)
	}

	got := config.Default()
	if err := yaml.Unmarshal(out.Bytes(), got); err != nil {
		t.Fatalf("output is not valid YAML: %v\n%s", err, out.String())
	}
	if got.Build.VoxelSizeMM != 0.5 || !got.Build.PreviewMode {
		t.Errorf("flags not reflected: voxel %v, preview %v", got.Build.VoxelSizeMM, got.Build.PreviewMode)
	}
	if got.Dome.Style != config.DomeClosedBowl {
		t.Errorf("dome style = %v, want default", got.Dome.Style)
	}
}

func TestRootRejectsArgs(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetArgs([]string{"extra"})
	cmd.SetOut(&bytes.Buffer{})
	if err := cmd.Execute(); err == nil {
		t.Error("expected error for positional argument")
	}
}
