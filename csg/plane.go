package csg

import (
	"math"

	"github.com/unixpickle/model3d/model3d"
)

// Epsilon is the tolerance used to decide whether a point lies on a plane.
const Epsilon = 1e-5

// A PlaneSide classifies a point or polygon relative to a plane.
//
// Sides are bit flags, so the side of a polygon is the bitwise OR of the
// sides of its vertices.
type PlaneSide int

const (
	Coplanar PlaneSide = 0
	Front    PlaneSide = 1
	Back     PlaneSide = 2
	Spanning PlaneSide = Front | Back
)

func (p PlaneSide) String() string {
	switch p {
	case Coplanar:
		return "coplanar"
	case Front:
		return "front"
	case Back:
		return "back"
	case Spanning:
		return "spanning"
	}
	return "invalid"
}

// A Plane is the set of points c where Normal.Dot(c) == W.
// The front of the plane is the side Normal points towards.
type Plane struct {
	Normal model3d.Coord3D
	W      float64
}

// NewPlaneFromPoints creates the plane through three points, oriented so that
// a, b, c wind counter-clockwise when viewed from the front.
//
// If the points are collinear, the resulting plane is not finite.
func NewPlaneFromPoints(a, b, c model3d.Coord3D) *Plane {
	n := b.Sub(a).Cross(c.Sub(a)).Normalize()
	return &Plane{Normal: n, W: n.Dot(a)}
}

func (p *Plane) Clone() *Plane {
	res := *p
	return &res
}

// IsFinite checks that the plane was not derived from degenerate points.
func (p *Plane) IsFinite() bool {
	return finiteCoord(p.Normal) && !math.IsNaN(p.W) && !math.IsInf(p.W, 0)
}

// Flip reverses the front and back of the plane.
func (p *Plane) Flip() {
	p.Normal = p.Normal.Scale(-1)
	p.W = -p.W
}

// SignedDist computes the signed distance of c from the plane.
func (p *Plane) SignedDist(c model3d.Coord3D) float64 {
	return p.Normal.Dot(c) - p.W
}

// Classify determines which side of the plane a point is on.
func (p *Plane) Classify(c model3d.Coord3D) PlaneSide {
	t := p.SignedDist(c)
	if t < -Epsilon {
		return Back
	} else if t > Epsilon {
		return Front
	}
	return Coplanar
}

// ClassifyPolygon determines which side of the plane a polygon is on, which
// may be Spanning if it has vertices on both sides.
func (p *Plane) ClassifyPolygon(poly *Polygon) PlaneSide {
	var side PlaneSide
	for _, v := range poly.Vertices {
		side |= p.Classify(v.Pos)
	}
	return side
}

// SplitPolygon sorts poly into one of the four lists, splitting it into a
// front and back piece if it spans the plane.
//
// Coplanar polygons go into coplanarFront when they face the same way as the
// plane, and coplanarBack otherwise. The same list may be passed for several
// of the arguments.
func (p *Plane) SplitPolygon(poly *Polygon, coplanarFront, coplanarBack, front,
	back *[]*Polygon) {
	types := make([]PlaneSide, len(poly.Vertices))
	var polyType PlaneSide
	for i, v := range poly.Vertices {
		t := p.Classify(v.Pos)
		polyType |= t
		types[i] = t
	}

	switch polyType {
	case Coplanar:
		if p.Normal.Dot(poly.Plane.Normal) > 0 {
			*coplanarFront = append(*coplanarFront, poly)
		} else {
			*coplanarBack = append(*coplanarBack, poly)
		}
	case Front:
		*front = append(*front, poly)
	case Back:
		*back = append(*back, poly)
	case Spanning:
		n := len(poly.Vertices)
		f := make([]*Vertex, 0, n+1)
		b := make([]*Vertex, 0, n+1)
		for i, vi := range poly.Vertices {
			j := (i + 1) % n
			ti, tj := types[i], types[j]
			vj := poly.Vertices[j]
			if ti != Back {
				f = append(f, vi)
			}
			if ti != Front {
				if ti != Back {
					b = append(b, vi.Clone())
				} else {
					b = append(b, vi)
				}
			}
			if ti|tj == Spanning {
				// x = vi + t*(vj-vi)
				// n*x = w
				// => t = (w - n*vi) / (n*(vj-vi))
				t := (p.W - p.Normal.Dot(vi.Pos)) / p.Normal.Dot(vj.Pos.Sub(vi.Pos))
				v := vi.Interpolate(vj, t)
				f = append(f, v)
				b = append(b, v.Clone())
			}
		}
		if len(f) >= 3 {
			*front = append(*front, NewPolygon(f, poly.Shared))
		}
		if len(b) >= 3 {
			*back = append(*back, NewPolygon(b, poly.Shared))
		}
	}
}
