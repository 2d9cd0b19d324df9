package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// Overrides maps a section name (the YAML key of a Config field) to the
// keys set within it, e.g. {"legs": {"outward_curve_mm": 40}}.
type Overrides map[string]map[string]any

// LoadFile reads a YAML file on top of the defaults. Keys missing from the
// file keep their default values; unknown keys are an error.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg := Default()
	if err := cfg.Decode(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode merges a YAML document into c.
func (c *Config) Decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Apply merges overrides into c. Values go through the YAML schema, so
// unknown sections or keys and mistyped values are rejected.
func (c *Config) Apply(o Overrides) error {
	if len(o) == 0 {
		return nil
	}
	data, err := yaml.Marshal(o)
	if err != nil {
		return fmt.Errorf("failed to encode overrides: %w", err)
	}
	if err := c.Decode(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to apply overrides: %w", err)
	}
	return nil
}

// YAML renders the configuration.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for orbishell.yaml in the current directory
// 3. Look for orbishell.yaml in the XDG config directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		p := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	p := filepath.Join(ConfigDir(), DefaultConfigFile)
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return ""
}

// Environment variables read by ApplyEnv.
const (
	EnvVoxelSize   = "ORBI_VOXEL_SIZE_MM"
	EnvLaptopMode  = "ORBI_LAPTOP_MODE"
	EnvPreviewMode = "ORBI_PREVIEW_MODE"
	EnvOutput      = "ORBI_OUTPUT"
)

// ApplyEnv applies environment variable overrides. Unset variables are
// ignored; malformed values are an error.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if s := getenv(EnvVoxelSize); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvVoxelSize, err)
		}
		c.Build.VoxelSizeMM = v
	}
	for _, b := range []struct {
		key string
		dst *bool
	}{
		{EnvLaptopMode, &c.Build.LaptopMode},
		{EnvPreviewMode, &c.Build.PreviewMode},
	} {
		if s := getenv(b.key); s != "" {
			v, err := strconv.ParseBool(s)
			if err != nil {
				return fmt.Errorf("%s: %w", b.key, err)
			}
			*b.dst = v
		}
	}
	if s := getenv(EnvOutput); s != "" {
		c.Paths.Output = s
	}
	return nil
}

// Sections returns the YAML names of the top-level configuration sections
// in declaration order.
func Sections() []string {
	t := reflect.TypeOf(Config{})
	names := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		tag, _, _ := strings.Cut(t.Field(i).Tag.Get("yaml"), ",")
		names = append(names, tag)
	}
	return names
}
