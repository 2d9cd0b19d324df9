package orbi

import (
	"github.com/chazu/orbishell/pkg/config"
	"github.com/chazu/orbishell/pkg/geom"
	"github.com/chazu/orbishell/pkg/kernel"
	"github.com/chazu/orbishell/pkg/voxel"
)

// BallRadius is half the ball diameter.
func BallRadius(j config.Joints) float64 { return j.BallDiameterMM / 2 }

// SocketRadius is the ball radius plus the radial print clearance, so a
// ball of the same diameter seats with 2*SocketToleranceMM of play.
func SocketRadius(j config.Joints) float64 { return BallRadius(j) + j.SocketToleranceMM }

// BallCenter returns the centre of joint i.
func BallCenter(j config.Joints, i int) geom.Vec3 {
	return geom.Polar(j.BallRadialMM, armAngle(i), j.BallZMM)
}

// NozzleTip returns the tip of nozzle i.
func NozzleTip(j config.Joints, i int) geom.Vec3 {
	return geom.Polar(j.NozzleTipRadialMM, armAngle(i), j.NozzleTipZMM)
}

func spheres(j config.Joints, r float64) *kernel.Lattice {
	lat := &kernel.Lattice{}
	for i := 0; i < Arms; i++ {
		lat.AddSphere(BallCenter(j, i), r)
	}
	return lat
}

// NozzleLattices returns the nozzle bodies and their bores, each a tapered
// beam from the ball centre to the tip.
func NozzleLattices(j config.Joints) (outer, inner *kernel.Lattice) {
	outer, inner = &kernel.Lattice{}, &kernel.Lattice{}
	for i := 0; i < Arms; i++ {
		c, tip := BallCenter(j, i), NozzleTip(j, i)
		outer.AddBeam(c, tip, j.NozzleOuterRBaseMM, j.NozzleOuterRTipMM, true)
		inner.AddBeam(c, tip, j.NozzleInnerRBaseMM, j.NozzleInnerRTipMM, true)
	}
	return outer, inner
}

// Joints adds the balls, cuts the sockets and adds the bored nozzles.
func Joints(k kernel.Kernel, j config.Joints, shell *voxel.Volume) {
	fold(shell, k.Lattice(spheres(j, BallRadius(j))))
	carve(shell, k.Lattice(spheres(j, SocketRadius(j))))

	o, in := NozzleLattices(j)
	nozzles := k.Lattice(o)
	carve(nozzles, k.Lattice(in))
	fold(shell, nozzles)
}
