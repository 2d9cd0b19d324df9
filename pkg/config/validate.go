package config

import "fmt"

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	if !(c.Build.VoxelSizeMM > 0) {
		return fmt.Errorf("%w: build.voxel_size_mm = %v", ErrInvalidVoxelSize, c.Build.VoxelSizeMM)
	}
	if c.Build.SafeBox.IsEmpty() {
		return ErrInvalidSafeBox
	}
	if c.Paths.Output == "" {
		return ErrNoOutput
	}
	if !c.Dome.Style.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidDomeStyle, int(c.Dome.Style))
	}
	if len(c.Legs.BulgeRadiiMM) == 0 {
		return ErrNoBulgeRadii
	}
	for i, r := range c.Legs.BulgeRadiiMM {
		if err := positive(fmt.Sprintf("legs.bulge_radii_mm[%d]", i), r); err != nil {
			return err
		}
	}

	lengths := []struct {
		key string
		v   float64
	}{
		{"legs.foot_taper_radius_mm", c.Legs.FootTaperRadiusMM},
		{"legs.foot_radius_mm", c.Legs.FootRadiusMM},
		{"legs.foot_height_mm", c.Legs.FootHeightMM},
		{"flow.plenum_radius_mm", c.Flow.PlenumRadiusMM},
		{"flow.tube_radius_mm", c.Flow.TubeRadiusMM},
		{"flow.wall_thickness_mm", c.Flow.WallThicknessMM},
		{"joints.ball_diameter_mm", c.Joints.BallDiameterMM},
		{"joints.nozzle_inner_r_base_mm", c.Joints.NozzleInnerRBaseMM},
		{"joints.nozzle_inner_r_tip_mm", c.Joints.NozzleInnerRTipMM},
	}
	for _, l := range lengths {
		if err := positive(l.key, l.v); err != nil {
			return err
		}
	}
	if c.Flow.PlenumZMinMM > c.Flow.PlenumZMaxMM {
		return fmt.Errorf("%w: flow.plenum_z_min_mm %v > flow.plenum_z_max_mm %v",
			ErrInvalidRange, c.Flow.PlenumZMinMM, c.Flow.PlenumZMaxMM)
	}

	switch c.Dome.Style {
	case DomeClosedBowl:
		if err := positive("dome.radius_mm", c.Dome.RadiusMM); err != nil {
			return err
		}
		if c.Flow.WallThicknessMM >= c.Dome.RadiusMM {
			return ErrWallTooThick
		}
		if err := positive("inlets.radius_mm", c.Inlets.RadiusMM); err != nil {
			return err
		}
		if !(c.Inlets.RadialFraction > 0 && c.Inlets.RadialFraction < 1) {
			return fmt.Errorf("%w: %v", ErrInvalidRadialFraction, c.Inlets.RadialFraction)
		}
	case DomeOpenLegacy:
		if err := positive("dome.open_inner_radius_mm", c.Dome.OpenInnerRMM); err != nil {
			return err
		}
		if c.Dome.OpenInnerRMM >= c.Dome.OpenOuterRMM {
			return fmt.Errorf("%w: dome.open_inner_radius_mm %v >= dome.open_outer_radius_mm %v",
				ErrInvalidRange, c.Dome.OpenInnerRMM, c.Dome.OpenOuterRMM)
		}
		if c.Dome.OpenBottomZMM > c.Dome.OpenTopZMM {
			return fmt.Errorf("%w: dome.open_bottom_z_mm %v > dome.open_top_z_mm %v",
				ErrInvalidRange, c.Dome.OpenBottomZMM, c.Dome.OpenTopZMM)
		}
		if err := positive("inlets.legacy_radius_mm", c.Inlets.LegacyRadiusMM); err != nil {
			return err
		}
		if c.Inlets.LegacyZBottomMM > c.Inlets.LegacyZTopMM {
			return fmt.Errorf("%w: inlets.legacy_z_bottom_mm %v > inlets.legacy_z_top_mm %v",
				ErrInvalidRange, c.Inlets.LegacyZBottomMM, c.Inlets.LegacyZTopMM)
		}
	}

	if !(c.Joints.SocketToleranceMM > 0) {
		return fmt.Errorf("%w: %v", ErrInvalidSocketTolerance, c.Joints.SocketToleranceMM)
	}
	if c.Joints.NozzleInnerRBaseMM >= c.Joints.NozzleOuterRBaseMM ||
		c.Joints.NozzleInnerRTipMM >= c.Joints.NozzleOuterRTipMM {
		return ErrNozzleBore
	}

	r := c.Reinforcement
	if r.NozzleBaseThickening {
		if err := positive("reinforcement.nozzle_base_height_mm", r.NozzleBaseHeightMM); err != nil {
			return err
		}
		if r.NozzleBaseExtraRMM < 0 {
			return fmt.Errorf("%w: reinforcement.nozzle_base_extra_r_mm = %v", ErrInvalidLength, r.NozzleBaseExtraRMM)
		}
	}
	if r.MountingBosses {
		if r.BossCount < 1 {
			return fmt.Errorf("%w: reinforcement.boss_count = %d", ErrInvalidRange, r.BossCount)
		}
		for _, l := range []struct {
			key string
			v   float64
		}{
			{"reinforcement.boss_radius_mm", r.BossRadiusMM},
			{"reinforcement.boss_height_mm", r.BossHeightMM},
			{"reinforcement.boss_hole_radius_mm", r.BossHoleRadiusMM},
		} {
			if err := positive(l.key, l.v); err != nil {
				return err
			}
		}
		if r.BossHoleRadiusMM >= r.BossRadiusMM {
			return fmt.Errorf("%w: reinforcement.boss_hole_radius_mm %v >= reinforcement.boss_radius_mm %v",
				ErrInvalidRange, r.BossHoleRadiusMM, r.BossRadiusMM)
		}
	}

	if c.Smoothing.OffsetMM < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidSmoothing, c.Smoothing.OffsetMM)
	}
	return nil
}

func positive(key string, v float64) error {
	if !(v > 0) {
		return fmt.Errorf("%w: %s = %v", ErrInvalidLength, key, v)
	}
	return nil
}
