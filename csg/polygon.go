package csg

// NoShared is the Shared tag of polygons which belong to no group.
const NoShared = -1

// A Polygon is a convex, planar loop of vertices.
//
// Convexity and planarity are not checked on construction; see Validate.
//
// The Shared tag identifies the group (e.g. material) the polygon came from.
// It is carried through splits and clones but otherwise ignored.
type Polygon struct {
	Vertices []*Vertex
	Shared   int
	Plane    *Plane
}

// NewPolygon creates a polygon, deriving its plane from the first three
// vertices.
//
// There must be at least three vertices.
func NewPolygon(vertices []*Vertex, shared int) *Polygon {
	if len(vertices) < 3 {
		panic("polygon must have at least three vertices")
	}
	return &Polygon{
		Vertices: vertices,
		Shared:   shared,
		Plane:    NewPlaneFromPoints(vertices[0].Pos, vertices[1].Pos, vertices[2].Pos),
	}
}

func (p *Polygon) Clone() *Polygon {
	vertices := make([]*Vertex, len(p.Vertices))
	for i, v := range p.Vertices {
		vertices[i] = v.Clone()
	}
	return NewPolygon(vertices, p.Shared)
}

// Flip reverses the winding order and normals of the polygon, so that it
// faces the opposite direction.
func (p *Polygon) Flip() {
	vs := p.Vertices
	for i := 0; i < len(vs)/2; i++ {
		vs[i], vs[len(vs)-1-i] = vs[len(vs)-1-i], vs[i]
	}
	for _, v := range vs {
		v.Flip()
	}
	p.Plane.Flip()
}

// NumTriangles is the number of triangles in a fan triangulation of p.
func (p *Polygon) NumTriangles() int {
	return len(p.Vertices) - 2
}

// IterateTriangles calls f with the vertices of each triangle in a fan
// triangulation around the first vertex.
func (p *Polygon) IterateTriangles(f func(v1, v2, v3 *Vertex)) {
	for j := 2; j < len(p.Vertices); j++ {
		f(p.Vertices[0], p.Vertices[j-1], p.Vertices[j])
	}
}
