// Package config holds the parameter table that fully determines one
// shell build. A Config is assembled once (defaults, YAML file, parameter
// script, environment, flags), validated, and then treated as read-only
// by every stage.
package config

import (
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/chazu/orbishell/pkg/geom"
)

const (
	// AppName is used for XDG directory paths.
	AppName = "orbishell"

	// DefaultConfigFile is looked up in the working directory and then in
	// the XDG config directory.
	DefaultConfigFile = "orbishell.yaml"

	// DefaultVoxelSizeMM is fine enough for printable 0.4 mm nozzles and
	// still fits a laptop's memory.
	DefaultVoxelSizeMM = 0.35

	// DefaultSourcePath is the reference surface loaded for diagnostics.
	DefaultSourcePath = "ref.files/Bodacious Snaget(1).stl"

	// DefaultOutputPath is where the finished shell is written.
	DefaultOutputPath = "Orbi_V3_Final_Tuned_OriginalRef.stl"
)

// Config is the complete parameter table. All lengths are millimetres.
type Config struct {
	Build         Build         `yaml:"build"`
	Paths         Paths         `yaml:"paths"`
	Legs          Legs          `yaml:"legs"`
	Dome          Dome          `yaml:"dome"`
	Inlets        Inlets        `yaml:"inlets"`
	Flow          Flow          `yaml:"flow"`
	Joints        Joints        `yaml:"joints"`
	Reinforcement Reinforcement `yaml:"reinforcement"`
	Smoothing     Smoothing     `yaml:"smoothing"`
}

// Build selects resolution and run mode.
type Build struct {
	VoxelSizeMM float64  `yaml:"voxel_size_mm"`
	LaptopMode  bool     `yaml:"laptop_mode"`  // at most one smoothing pass
	PreviewMode bool     `yaml:"preview_mode"` // skip reinforcement
	SafeBox     geom.Box `yaml:"safe_box"`     // every construction is clipped to it
}

// Paths names the input and output files.
type Paths struct {
	Source string `yaml:"source"`
	Output string `yaml:"output"`
}

// Legs shapes the three organic legs and their feet.
type Legs struct {
	BulgeCount          int       `yaml:"bulge_count"`
	BulgeRadiiMM        []float64 `yaml:"bulge_radii_mm"`
	MiddleBulgeRadiusMM float64   `yaml:"middle_bulge_radius_mm"` // overrides the knee radius when > 0
	StartRadialMM       float64   `yaml:"start_radial_mm"`
	JunctionZMM         float64   `yaml:"junction_z_mm"`
	CurveStrength       float64   `yaml:"curve_strength"`
	OutwardCurveMM      float64   `yaml:"outward_curve_mm"` // takes precedence over CurveStrength when > 0
	KneeDropMM          float64   `yaml:"knee_drop_mm"`
	ShinInsetMM         float64   `yaml:"shin_inset_mm"`
	ShinZMM             float64   `yaml:"shin_z_mm"`
	FootTaperRadiusMM   float64   `yaml:"foot_taper_radius_mm"`
	FootRadiusMM        float64   `yaml:"foot_radius_mm"`
	FootHeightMM        float64   `yaml:"foot_height_mm"`
	FootGroundZMM       float64   `yaml:"foot_ground_z_mm"`
	FootRadialMM        float64   `yaml:"foot_radial_mm"`
}

// Dome configures the top enclosure. Radius, CenterZ and the trim values
// apply to the closed bowl; the Open* values to the legacy open dome.
type Dome struct {
	Style         DomeStyle `yaml:"style"`
	RadiusMM      float64   `yaml:"radius_mm"`
	CenterZMM     float64   `yaml:"center_z_mm"`
	RimDropMM     float64   `yaml:"rim_drop_mm"`
	TrimMarginMM  float64   `yaml:"trim_margin_mm"`
	TrimTopZMM    float64   `yaml:"trim_top_z_mm"`
	OpenOuterRMM  float64   `yaml:"open_outer_radius_mm"`
	OpenInnerRMM  float64   `yaml:"open_inner_radius_mm"`
	OpenBottomZMM float64   `yaml:"open_bottom_z_mm"`
	OpenTopZMM    float64   `yaml:"open_top_z_mm"`
}

// Inlets configures the fan inlet bores. The closed bowl cuts capsules
// through its wall; the open dome cuts vertical cylinders after hollowing.
type Inlets struct {
	RadiusMM            float64 `yaml:"radius_mm"`
	RadialFraction      float64 `yaml:"radial_fraction"` // of the dome radius
	TopAboveCenterMM    float64 `yaml:"top_above_center_mm"`
	BottomBelowCenterMM float64 `yaml:"bottom_below_center_mm"`
	LegacyRadiusMM      float64 `yaml:"legacy_radius_mm"`
	LegacyRadialMM      float64 `yaml:"legacy_radial_mm"`
	LegacyZTopMM        float64 `yaml:"legacy_z_top_mm"`
	LegacyZBottomMM     float64 `yaml:"legacy_z_bottom_mm"`
	LegacyExtraHeightMM float64 `yaml:"legacy_extra_height_mm"`
}

// Flow describes the internal plenum and ducts that get hollowed out.
type Flow struct {
	PlenumRadiusMM     float64 `yaml:"plenum_radius_mm"`
	PlenumZMM          float64 `yaml:"plenum_z_mm"`
	PlenumZMinMM       float64 `yaml:"plenum_z_min_mm"`
	PlenumZMaxMM       float64 `yaml:"plenum_z_max_mm"`
	PlenumTrimMarginMM float64 `yaml:"plenum_trim_margin_mm"`
	TubeRadiusMM       float64 `yaml:"tube_radius_mm"`
	WallThicknessMM    float64 `yaml:"wall_thickness_mm"`
	CurveMidRadialMM   float64 `yaml:"curve_mid_radial_mm"`
	CurveMidZMM        float64 `yaml:"curve_mid_z_mm"`
	SideExitRadialMM   float64 `yaml:"side_exit_radial_mm"`
	SideExitZMM        float64 `yaml:"side_exit_z_mm"`
}

// Joints places the ball joints, their sockets and the nozzles.
type Joints struct {
	BallRadialMM       float64 `yaml:"ball_radial_mm"`
	BallZMM            float64 `yaml:"ball_z_mm"`
	BallDiameterMM     float64 `yaml:"ball_diameter_mm"`
	SocketToleranceMM  float64 `yaml:"socket_tolerance_mm"` // radial clearance
	NozzleTipRadialMM  float64 `yaml:"nozzle_tip_radial_mm"`
	NozzleTipZMM       float64 `yaml:"nozzle_tip_z_mm"`
	NozzleOuterRBaseMM float64 `yaml:"nozzle_outer_r_base_mm"`
	NozzleOuterRTipMM  float64 `yaml:"nozzle_outer_r_tip_mm"`
	NozzleInnerRBaseMM float64 `yaml:"nozzle_inner_r_base_mm"`
	NozzleInnerRTipMM  float64 `yaml:"nozzle_inner_r_tip_mm"`
}

// Reinforcement toggles and sizes the nozzle collars and mounting bosses.
type Reinforcement struct {
	NozzleBaseThickening bool    `yaml:"nozzle_base_thickening"`
	NozzleBaseExtraRMM   float64 `yaml:"nozzle_base_extra_r_mm"`
	NozzleBaseHeightMM   float64 `yaml:"nozzle_base_height_mm"`

	MountingBosses        bool    `yaml:"mounting_bosses"`
	BossCount             int     `yaml:"boss_count"`
	BossRadiusMM          float64 `yaml:"boss_radius_mm"`
	BossHeightMM          float64 `yaml:"boss_height_mm"`
	BossHoleRadiusMM      float64 `yaml:"boss_hole_radius_mm"`
	BossHoleExtraHeightMM float64 `yaml:"boss_hole_extra_height_mm"`
	BossZMM               float64 `yaml:"boss_z_mm"`
	BossRadialMM          float64 `yaml:"boss_radial_mm"`
	BossAngleDeg          float64 `yaml:"boss_angle_deg"`
}

// Smoothing controls the closing passes applied to the whole shell.
type Smoothing struct {
	OffsetMM float64 `yaml:"offset_mm"`
	Passes   int     `yaml:"passes"`
	Heavy    bool    `yaml:"heavy"` // lift the two-pass cap
}

// Default returns the tuned parameter table.
func Default() *Config {
	return &Config{
		Build: Build{
			VoxelSizeMM: DefaultVoxelSizeMM,
			LaptopMode:  true,
			SafeBox:     geom.Box{Min: geom.V(-110, -110, -55), Max: geom.V(110, 110, 110)},
		},
		Paths: Paths{
			Source: DefaultSourcePath,
			Output: DefaultOutputPath,
		},
		Legs: Legs{
			BulgeCount:          3,
			BulgeRadiiMM:        []float64{18, 28, 18},
			MiddleBulgeRadiusMM: 31,
			StartRadialMM:       75,
			JunctionZMM:         50,
			CurveStrength:       42,
			OutwardCurveMM:      48,
			KneeDropMM:          17,
			ShinInsetMM:         2,
			ShinZMM:             8,
			FootTaperRadiusMM:   12,
			FootRadiusMM:        13,
			FootHeightMM:        22,
			FootGroundZMM:       -40,
			FootRadialMM:        70,
		},
		Dome: Dome{
			Style:         DomeClosedBowl,
			RadiusMM:      115,
			CenterZMM:     58,
			RimDropMM:     18,
			TrimMarginMM:  2,
			TrimTopZMM:    125,
			OpenOuterRMM:  100,
			OpenInnerRMM:  95,
			OpenBottomZMM: 50,
			OpenTopZMM:    100,
		},
		Inlets: Inlets{
			RadiusMM:            25,
			RadialFraction:      0.48,
			TopAboveCenterMM:    52,
			BottomBelowCenterMM: 28,
			LegacyRadiusMM:      25,
			LegacyRadialMM:      25,
			LegacyZTopMM:        100,
			LegacyZBottomMM:     20,
			LegacyExtraHeightMM: 4,
		},
		Flow: Flow{
			PlenumRadiusMM:     35,
			PlenumZMM:          20,
			PlenumZMinMM:       15,
			PlenumZMaxMM:       25,
			PlenumTrimMarginMM: 2,
			TubeRadiusMM:       15,
			WallThicknessMM:    5,
			CurveMidRadialMM:   70,
			CurveMidZMM:        35,
			SideExitRadialMM:   90,
			SideExitZMM:        50,
		},
		Joints: Joints{
			BallRadialMM:       45,
			BallZMM:            75,
			BallDiameterMM:     24,
			SocketToleranceMM:  0.3,
			NozzleTipRadialMM:  70,
			NozzleTipZMM:       -40,
			NozzleOuterRBaseMM: 8,
			NozzleOuterRTipMM:  6,
			NozzleInnerRBaseMM: 3,
			NozzleInnerRTipMM:  2,
		},
		Reinforcement: Reinforcement{
			NozzleBaseThickening:  true,
			NozzleBaseExtraRMM:    1.5,
			NozzleBaseHeightMM:    10,
			MountingBosses:        true,
			BossCount:             4,
			BossRadiusMM:          4,
			BossHeightMM:          8,
			BossHoleRadiusMM:      1.5,
			BossHoleExtraHeightMM: 4,
			BossZMM:               35,
			BossRadialMM:          22,
			BossAngleDeg:          45,
		},
		Smoothing: Smoothing{
			OffsetMM: 2.2,
			Passes:   2,
		},
	}
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	cp := *c
	cp.Legs.BulgeRadiiMM = append([]float64(nil), c.Legs.BulgeRadiiMM...)
	return &cp
}

// ConfigDir returns the XDG configuration directory for orbishell.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}
