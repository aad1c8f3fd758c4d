package csg

import (
	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/model3d/model3d"
)

// A Vertex is a point on a polygon along with the attributes which are
// interpolated when the polygon is cut.
//
// Normals need not be unit length, and are not renormalized by Interpolate.
type Vertex struct {
	Pos    model3d.Coord3D
	Normal model3d.Coord3D
	UV     model2d.Coord

	// Color is optional, and may be nil.
	Color *model3d.Coord3D
}

func NewVertex(pos, normal model3d.Coord3D, uv model2d.Coord) *Vertex {
	return &Vertex{Pos: pos, Normal: normal, UV: uv}
}

func (v *Vertex) Clone() *Vertex {
	res := *v
	if v.Color != nil {
		c := *v.Color
		res.Color = &c
	}
	return &res
}

// Flip reverses the orientation of the vertex normal.
func (v *Vertex) Flip() {
	v.Normal = v.Normal.Scale(-1)
}

// Interpolate creates a new vertex between v and other, where t=0 gives v and
// t=1 gives other.
//
// A missing color is treated as black when the other vertex has one. The
// result only has a color if at least one of the inputs does.
func (v *Vertex) Interpolate(other *Vertex, t float64) *Vertex {
	res := &Vertex{
		Pos:    lerp(v.Pos, other.Pos, t),
		Normal: lerp(v.Normal, other.Normal, t),
		UV:     v.UV.Add(other.UV.Sub(v.UV).Scale(t)),
	}
	if v.Color != nil || other.Color != nil {
		var c1, c2 model3d.Coord3D
		if v.Color != nil {
			c1 = *v.Color
		}
		if other.Color != nil {
			c2 = *other.Color
		}
		c := lerp(c1, c2, t)
		res.Color = &c
	}
	return res
}
