// Package orbi builds the Orbi shell: three organic legs, a dome, a
// hollowed plenum with side ducts, ball-joint sockets with nozzles, and
// optional reinforcement, all composed as voxel booleans on one lattice.
//
// Every function here is a pure transformation of its inputs. Functions
// that take a shell mutate it in place; every other volume they create is
// released before they return.
package orbi

import (
	"errors"

	"github.com/chazu/orbishell/pkg/geom"
	"github.com/chazu/orbishell/pkg/voxel"
)

// ErrEmptySource is returned when the source surface has no triangles.
var ErrEmptySource = errors.New("orbi: source surface is empty")

// Arms is the number of legs, ducts, joints and inlets; they are spaced a
// third of a turn apart around +Z.
const Arms = 3

func armAngle(i int) float64 { return float64(i) * geom.ThirdTurn }

// fold unions part into shell and releases it.
func fold(shell, part *voxel.Volume) {
	shell.Union(part)
	part.Release()
}

// carve subtracts part from shell and releases it.
func carve(shell, part *voxel.Volume) {
	shell.Subtract(part)
	part.Release()
}
