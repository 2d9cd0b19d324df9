// Package geom holds the small value types shared by the volume engine,
// the primitive kernels and the shell stages.
package geom

import "math"

// ThirdTurn is the angular spacing of the tripod's three-fold features.
const ThirdTurn = 2 * math.Pi / 3

// Vec3 is a point or direction in millimetres.
type Vec3 struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
	Z float64 `yaml:"z" json:"z"`
}

// V is shorthand for a Vec3 literal.
func V(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Polar returns the point at the given radial distance from the Z axis,
// at angle (radians, counter-clockwise from +X) and height z.
func Polar(radial, angle, z float64) Vec3 {
	return Vec3{X: radial * math.Cos(angle), Y: radial * math.Sin(angle), Z: z}
}

func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }

func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }

func (a Vec3) Scale(s float64) Vec3 { return Vec3{a.X * s, a.Y * s, a.Z * s} }

func (a Vec3) Dot(b Vec3) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

// Length returns the Euclidean norm.
func (a Vec3) Length() float64 { return math.Sqrt(a.Dot(a)) }

// Min returns the component-wise minimum.
func (a Vec3) Min(b Vec3) Vec3 {
	return Vec3{math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z)}
}

// Max returns the component-wise maximum.
func (a Vec3) Max(b Vec3) Vec3 {
	return Vec3{math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z)}
}

// Box is an axis-aligned bounding box. A box with any Min component
// greater than the matching Max component is empty.
type Box struct {
	Min Vec3 `yaml:"min" json:"min"`
	Max Vec3 `yaml:"max" json:"max"`
}

// NewBox builds a box from its two corners in any order.
func NewBox(a, b Vec3) Box {
	return Box{Min: a.Min(b), Max: a.Max(b)}
}

// Around returns the cube of half-size r centred on c.
func Around(c Vec3, r float64) Box {
	d := Vec3{r, r, r}
	return Box{Min: c.Sub(d), Max: c.Add(d)}
}

// IsEmpty reports whether the box encloses no points.
func (b Box) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Contains reports whether p lies inside b, boundary included.
func (b Box) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Size returns the extent along each axis.
func (b Box) Size() Vec3 { return b.Max.Sub(b.Min) }

// Expand grows the box by d on every side.
func (b Box) Expand(d float64) Box {
	e := Vec3{d, d, d}
	return Box{Min: b.Min.Sub(e), Max: b.Max.Add(e)}
}

// Union returns the smallest box enclosing both. Empty operands are ignored.
func (b Box) Union(o Box) Box {
	switch {
	case b.IsEmpty():
		return o
	case o.IsEmpty():
		return b
	}
	return Box{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

// Intersect returns the overlap of both boxes, possibly empty.
func (b Box) Intersect(o Box) Box {
	return Box{Min: b.Min.Max(o.Min), Max: b.Max.Min(o.Max)}
}
