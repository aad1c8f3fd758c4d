package csg

import (
	"math"

	"github.com/unixpickle/model3d/model3d"
)

// A CSG is a solid represented by a list of boundary polygons.
//
// Boolean operations never modify their inputs, and the resulting solid
// never shares polygons with them.
type CSG struct {
	Polygons []*Polygon
}

// NewCSG creates a solid which takes ownership of polygons.
func NewCSG(polygons []*Polygon) *CSG {
	return &CSG{Polygons: polygons}
}

// Clone creates a deep copy of the solid, dropping any polygons whose plane
// is degenerate.
func (c *CSG) Clone() *CSG {
	res := &CSG{Polygons: make([]*Polygon, 0, len(c.Polygons))}
	for _, p := range c.Polygons {
		p1 := p.Clone()
		if p1.Plane.IsFinite() {
			res.Polygons = append(res.Polygons, p1)
		}
	}
	return res
}

// Union computes the volume inside either c or other.
func (c *CSG) Union(other *CSG) *CSG {
	a := NewNode(c.Clone().Polygons)
	b := NewNode(other.Clone().Polygons)
	a.ClipTo(b)
	b.ClipTo(a)
	b.Invert()
	b.ClipTo(a)
	b.Invert()
	a.Build(b.AllPolygons())
	return NewCSG(a.AllPolygons())
}

// Subtract computes the volume inside c but not inside other.
func (c *CSG) Subtract(other *CSG) *CSG {
	a := NewNode(c.Clone().Polygons)
	b := NewNode(other.Clone().Polygons)
	a.Invert()
	a.ClipTo(b)
	b.ClipTo(a)
	b.Invert()
	b.ClipTo(a)
	b.Invert()
	a.Build(b.AllPolygons())
	a.Invert()
	return NewCSG(a.AllPolygons())
}

// Intersect computes the volume inside both c and other.
func (c *CSG) Intersect(other *CSG) *CSG {
	a := NewNode(c.Clone().Polygons)
	b := NewNode(other.Clone().Polygons)
	a.Invert()
	b.ClipTo(a)
	b.Invert()
	a.ClipTo(b)
	b.ClipTo(a)
	a.Build(b.AllPolygons())
	a.Invert()
	return NewCSG(a.AllPolygons())
}

// Inverse swaps solid and empty space.
func (c *CSG) Inverse() *CSG {
	res := c.Clone()
	for _, p := range res.Polygons {
		p.Flip()
	}
	return res
}

// Tree builds a BSP tree from a copy of the polygons, which can be used to
// query point containment.
func (c *CSG) Tree() *Node {
	return NewNode(c.Clone().Polygons)
}

// Transform creates a copy of the solid with positions transformed by m and
// normals transformed by the normal matrix of m.
func (c *CSG) Transform(m *Matrix4) *CSG {
	vt := newVertexTransform(m)
	res := &CSG{Polygons: make([]*Polygon, len(c.Polygons))}
	for i, p := range c.Polygons {
		res.Polygons[i] = NewPolygon(vt.Apply(p.Vertices), p.Shared)
	}
	return res
}

// NumTriangles counts the triangles in a fan triangulation of the solid.
func (c *CSG) NumTriangles() int {
	var res int
	for _, p := range c.Polygons {
		res += p.NumTriangles()
	}
	return res
}

// Volume computes the signed volume enclosed by the polygons.
//
// The result is only meaningful for closed surfaces, and is negative for
// inverted solids.
func (c *CSG) Volume() float64 {
	var res float64
	for _, p := range c.Polygons {
		p.IterateTriangles(func(v1, v2, v3 *Vertex) {
			res += v1.Pos.Dot(v2.Pos.Cross(v3.Pos))
		})
	}
	return res / 6
}

// Bounds gets the bounding box of all vertices.
//
// For an empty solid, min will be greater than max.
func (c *CSG) Bounds() (min, max model3d.Coord3D) {
	min = model3d.XYZ(math.Inf(1), math.Inf(1), math.Inf(1))
	max = min.Scale(-1)
	for _, p := range c.Polygons {
		for _, v := range p.Vertices {
			min = min.Min(v.Pos)
			max = max.Max(v.Pos)
		}
	}
	return
}
