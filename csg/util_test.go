package csg

import (
	"math"
	"testing"

	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/model3d/model3d"
)

// testCube creates an axis-aligned cube of quads with the given half-size.
func testCube(center model3d.Coord3D, radius float64, shared int) *CSG {
	faces := []struct {
		Indices [4]int
		Normal  model3d.Coord3D
	}{
		{[4]int{0, 4, 6, 2}, model3d.X(-1)},
		{[4]int{1, 3, 7, 5}, model3d.X(1)},
		{[4]int{0, 1, 5, 4}, model3d.Y(-1)},
		{[4]int{2, 6, 7, 3}, model3d.Y(1)},
		{[4]int{0, 2, 3, 1}, model3d.Z(-1)},
		{[4]int{4, 5, 7, 6}, model3d.Z(1)},
	}
	res := &CSG{}
	for _, face := range faces {
		vertices := make([]*Vertex, 4)
		for i, idx := range face.Indices {
			corner := model3d.XYZ(
				float64(2*(idx&1)-1),
				float64((idx&2)-1),
				float64((idx&4)/2-1),
			)
			vertices[i] = &Vertex{
				Pos:    center.Add(corner.Scale(radius)),
				Normal: face.Normal,
				UV:     model2d.XY(float64(i&1), float64(i/2)),
			}
		}
		res.Polygons = append(res.Polygons, NewPolygon(vertices, shared))
	}
	return res
}

func testSphere(center model3d.Coord3D, radius float64) *CSG {
	return FromMesh(model3d.NewMeshIcosphere(center, radius, 2), NoShared)
}

func insideBox(c, center model3d.Coord3D, radius float64) bool {
	d := c.Sub(center).Abs()
	return d.X < radius && d.Y < radius && d.Z < radius
}

// boxBoundaryDist gets the distance from c to the surface of a box.
func boxBoundaryDist(c, center model3d.Coord3D, radius float64) float64 {
	d := c.Sub(center).Abs()
	if insideBox(c, center, radius) {
		return radius - d.MaxCoord()
	}
	outside := d.Sub(model3d.XYZ(radius, radius, radius)).Max(model3d.Origin)
	return outside.Norm()
}

func polygonCentroid(p *Polygon) model3d.Coord3D {
	var sum model3d.Coord3D
	for _, v := range p.Vertices {
		sum = sum.Add(v.Pos)
	}
	return sum.Scale(1 / float64(len(p.Vertices)))
}

func polygonArea(p *Polygon) float64 {
	var res float64
	p.IterateTriangles(func(v1, v2, v3 *Vertex) {
		res += v2.Pos.Sub(v1.Pos).Cross(v3.Pos.Sub(v1.Pos)).Norm() / 2
	})
	return res
}

func mustApprox(t *testing.T, name string, expected, actual, eps float64) {
	if math.Abs(expected-actual) > eps {
		t.Fatalf("%s: expected %f but got %f", name, expected, actual)
	}
}
