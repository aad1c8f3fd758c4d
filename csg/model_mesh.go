package csg

import "github.com/unixpickle/model3d/model3d"

// FromMesh creates a solid from the triangles of a mesh, tagging every
// polygon with shared.
//
// Vertex normals are set to the face normals, and degenerate triangles are
// dropped.
func FromMesh(m *model3d.Mesh, shared int) *CSG {
	tris := m.TriangleSlice()
	res := &CSG{Polygons: make([]*Polygon, 0, len(tris))}
	for _, t := range tris {
		normal := t.Normal()
		vertices := make([]*Vertex, 3)
		for i, c := range t {
			vertices[i] = &Vertex{Pos: c, Normal: normal}
		}
		p := NewPolygon(vertices, shared)
		if p.Plane.IsFinite() {
			res.Polygons = append(res.Polygons, p)
		}
	}
	return res
}

// Mesh creates a triangle mesh from a fan triangulation of the polygons.
func (c *CSG) Mesh() *model3d.Mesh {
	res := model3d.NewMesh()
	for _, p := range c.Polygons {
		p.IterateTriangles(func(v1, v2, v3 *Vertex) {
			res.Add(&model3d.Triangle{v1.Pos, v2.Pos, v3.Pos})
		})
	}
	return res
}
