package config

import "errors"

// Configuration validation errors, returned (possibly wrapped with the
// offending key) by Config.Validate.
var (
	// ErrInvalidVoxelSize is returned when the voxel size is not positive.
	ErrInvalidVoxelSize = errors.New("invalid voxel size: must be positive")

	// ErrInvalidSafeBox is returned when the safe bounding box is empty.
	ErrInvalidSafeBox = errors.New("invalid safe box: min must not exceed max")

	// ErrNoOutput is returned when no output path is configured.
	ErrNoOutput = errors.New("no output path configured")

	// ErrNoBulgeRadii is returned when the leg bulge radius list is empty.
	ErrNoBulgeRadii = errors.New("leg bulge radii must not be empty")

	// ErrInvalidLength is returned for a radius, height or thickness that
	// must be positive but is not.
	ErrInvalidLength = errors.New("invalid length: must be positive")

	// ErrInvalidRange is returned when a lower bound exceeds its upper bound.
	ErrInvalidRange = errors.New("invalid range: lower bound exceeds upper bound")

	// ErrInvalidDomeStyle is returned for an unknown dome style.
	ErrInvalidDomeStyle = errors.New("invalid dome style: want closed-bowl or open-dome")

	// ErrInvalidRadialFraction is returned when the inlet position is not
	// strictly between the axis and the dome wall.
	ErrInvalidRadialFraction = errors.New("invalid inlet radial fraction: must be in (0, 1)")

	// ErrWallTooThick is returned when the flow wall would swallow the dome.
	ErrWallTooThick = errors.New("flow wall thickness must be smaller than the dome radius")

	// ErrInvalidSocketTolerance is returned when the socket clearance is not
	// positive; a zero clearance fuses the joint.
	ErrInvalidSocketTolerance = errors.New("invalid socket tolerance: must be positive")

	// ErrNozzleBore is returned when a nozzle's inner radius reaches its
	// outer radius, which would leave no wall.
	ErrNozzleBore = errors.New("nozzle inner radius must be smaller than outer radius")

	// ErrInvalidSmoothing is returned for a negative smoothing offset.
	ErrInvalidSmoothing = errors.New("invalid smoothing offset: must be non-negative")
)
