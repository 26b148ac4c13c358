package depot

import "math"

type Vec2 struct {
	X, Y float64
}

// FromAngle returns the unit vector at angle radians
func FromAngle(angle float64) Vec2 {
	return Vec2{X: math.Cos(angle), Y: math.Sin(angle)}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

func (v Vec2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Rotate rotates v counter-clockwise by angle radians
func (v Vec2) Rotate(angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{X: v.X*cos - v.Y*sin, Y: v.X*sin + v.Y*cos}
}

// WithLen keeps the direction of v and sets its length. The zero vector has
// no direction and stays zero.
func (v Vec2) WithLen(length float64) Vec2 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Scale(length / l)
}
