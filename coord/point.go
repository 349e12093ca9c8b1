package coord

import (
	"math"
)

type Point struct{ X, Y, Z float64 }

func (p Point) Equal(b Point) bool {
	return p.X == b.X && p.Y == b.Y && p.Z == b.Z
}

// Sub will subtract the target values from p.
func (p Point) Sub(target Point) Point {
	p.X -= target.X
	p.Y -= target.Y
	p.Z -= target.Z
	return p
}

// Distance will return the distance between p and the target.
func (p Point) Distance(target Point) float64 {
	d := target.Sub(p)
	return math.Sqrt(d.X*d.X + d.Y*d.Y + d.Z*d.Z)
}

// Min returns the axis-wise minimum of p and the target.
func (p Point) Min(target Point) Point {
	p.X = math.Min(p.X, target.X)
	p.Y = math.Min(p.Y, target.Y)
	p.Z = math.Min(p.Z, target.Z)
	return p
}

// Max returns the axis-wise maximum of p and the target.
func (p Point) Max(target Point) Point {
	p.X = math.Max(p.X, target.X)
	p.Y = math.Max(p.Y, target.Y)
	p.Z = math.Max(p.Z, target.Z)
	return p
}
