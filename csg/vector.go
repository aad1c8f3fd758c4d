package csg

import (
	"math"

	"github.com/unixpickle/model3d/model3d"
)

// lerp linearly interpolates from a to b, with t=0 giving a and t=1 giving b.
func lerp(a, b model3d.Coord3D, t float64) model3d.Coord3D {
	return a.Add(b.Sub(a).Scale(t))
}

func finiteCoord(c model3d.Coord3D) bool {
	for _, x := range c.Array() {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
