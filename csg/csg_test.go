package csg

import (
	"math/rand"
	"testing"

	"github.com/unixpickle/model3d/model3d"
)

func TestCSGClosure(t *testing.T) {
	a := testCube(model3d.Origin, 0.5, NoShared)
	b := testCube(model3d.XYZ(0.3, 0.2, 0.1), 0.5, NoShared)
	for name, result := range map[string]*CSG{
		"union":     a.Union(b),
		"subtract":  a.Subtract(b),
		"intersect": a.Intersect(b),
	} {
		if len(result.Polygons) == 0 {
			t.Errorf("%s: no polygons", name)
		}
		if err := result.Validate(); err != nil {
			t.Errorf("%s: %s", name, err)
		}
	}
}

func TestCSGInputsUnmodified(t *testing.T) {
	a := testCube(model3d.Origin, 0.5, NoShared)
	b := testCube(model3d.XYZ(0.5, 0, 0), 0.5, NoShared)
	aOrig := a.Clone()
	bOrig := b.Clone()
	a.Union(b)
	a.Subtract(b)
	a.Intersect(b)
	a.Inverse()
	for _, pair := range [][2]*CSG{{a, aOrig}, {b, bOrig}} {
		if len(pair[0].Polygons) != len(pair[1].Polygons) {
			t.Fatal("polygon count changed")
		}
		for i, p := range pair[0].Polygons {
			p1 := pair[1].Polygons[i]
			for j, v := range p.Vertices {
				if v.Pos != p1.Vertices[j].Pos || v.Normal != p1.Vertices[j].Normal {
					t.Fatal("operand was modified")
				}
			}
		}
	}
}

func TestCSGUnionOverlapping(t *testing.T) {
	a := testCube(model3d.Origin, 0.5, NoShared)
	b := testCube(model3d.X(0.5), 0.5, NoShared)
	union := a.Union(b)
	mustApprox(t, "volume", 1.5, union.Volume(), 1e-8)

	// No surviving face may be interior to either operand.
	for _, p := range union.Polygons {
		c := polygonCentroid(p)
		outward := c.Add(p.Plane.Normal.Scale(1e-3))
		inward := c.Add(p.Plane.Normal.Scale(-1e-3))
		if insideBox(outward, model3d.Origin, 0.5) || insideBox(outward, model3d.X(0.5), 0.5) {
			t.Errorf("polygon at %v faces into the solid", c)
		}
		if !insideBox(inward, model3d.Origin, 0.5) && !insideBox(inward, model3d.X(0.5), 0.5) {
			t.Errorf("polygon at %v is not backed by the solid", c)
		}
	}

	var area float64
	for _, p := range union.Polygons {
		area += polygonArea(p)
	}
	mustApprox(t, "area", 2*1.5*4/2+2, area, 1e-8)
}

func TestCSGUnionCommutative(t *testing.T) {
	a := testCube(model3d.Origin, 0.5, NoShared)
	b := testCube(model3d.XYZ(0.4, 0.3, -0.2), 0.6, NoShared)
	v1 := a.Union(b).Volume()
	v2 := b.Union(a).Volume()
	mustApprox(t, "volume", v1, v2, 1e-8)
	mustApprox(t, "volume", 1+1.2*1.2*1.2-0.7*0.8*0.9, v1, 1e-8)
}

func TestCSGInverseTwice(t *testing.T) {
	a := testSphere(model3d.Origin, 1)
	inv := a.Inverse()
	if inv.Volume() >= 0 {
		t.Fatal("inverse should have negative volume")
	}
	mustApprox(t, "volume", -a.Volume(), inv.Volume(), 1e-8)
	restored := inv.Inverse()
	if len(restored.Polygons) != len(a.Polygons) {
		t.Fatal("polygon count changed")
	}
	for i, p := range restored.Polygons {
		orig := a.Polygons[i]
		for j, v := range p.Vertices {
			if v.Pos != orig.Vertices[j].Pos {
				t.Fatalf("polygon %d vertex %d: expected %v but got %v", i, j,
					orig.Vertices[j].Pos, v.Pos)
			}
			if v.Normal != orig.Vertices[j].Normal {
				t.Fatalf("polygon %d vertex %d: normal not restored", i, j)
			}
		}
		if p.Plane.Normal.Dot(orig.Plane.Normal) < 1-1e-8 {
			t.Fatalf("polygon %d: plane not restored", i)
		}
	}
}

func TestCSGSelfSubtract(t *testing.T) {
	a := testCube(model3d.XYZ(0.1, 0.2, 0.3), 0.5, NoShared)
	if n := len(a.Subtract(a).Polygons); n != 0 {
		t.Fatalf("expected no polygons but got %d", n)
	}
}

func TestCSGSelfIntersect(t *testing.T) {
	a := testCube(model3d.XYZ(0.1, 0.2, 0.3), 0.5, NoShared)
	mustApprox(t, "volume", a.Volume(), a.Intersect(a).Volume(), 1e-8)
	mustApprox(t, "volume", a.Volume(), a.Union(a).Volume(), 1e-8)
}

func TestCSGDisjointIntersect(t *testing.T) {
	a := testSphere(model3d.Origin, 1)
	b := testSphere(model3d.X(10), 1)
	if n := len(a.Intersect(b).Polygons); n != 0 {
		t.Fatalf("expected no polygons but got %d", n)
	}
	mustApprox(t, "volume", a.Volume()+b.Volume(), a.Union(b).Volume(), 1e-8)
}

func TestCSGEnclosedSubtract(t *testing.T) {
	a := testCube(model3d.Origin, 1.5, NoShared)
	b := testCube(model3d.Origin, 0.5, NoShared)
	shell := a.Subtract(b)
	mustApprox(t, "volume", 26, shell.Volume(), 1e-8)

	var cavityArea float64
	var numCavity int
	for _, p := range shell.Polygons {
		c := polygonCentroid(p)
		if c.Abs().MaxCoord() > 1 {
			continue
		}
		numCavity++
		cavityArea += polygonArea(p)
		if p.Plane.Normal.Dot(c) >= 0 {
			t.Errorf("cavity polygon at %v should face inward", c)
		}
	}
	if numCavity != 6 {
		t.Errorf("expected 6 cavity faces but got %d", numCavity)
	}
	mustApprox(t, "cavity area", 6, cavityArea, 1e-8)
}

func TestCSGContainment(t *testing.T) {
	centerA := model3d.Origin
	centerB := model3d.XYZ(0.5, 0.25, -0.125)
	a := testCube(centerA, 0.5, NoShared)
	b := testCube(centerB, 0.5, NoShared)

	ops := []struct {
		Name   string
		Result *CSG
		Expr   func(inA, inB bool) bool
	}{
		{"union", a.Union(b), func(inA, inB bool) bool { return inA || inB }},
		{"subtract", a.Subtract(b), func(inA, inB bool) bool { return inA && !inB }},
		{"intersect", a.Intersect(b), func(inA, inB bool) bool { return inA && inB }},
	}

	rng := rand.New(rand.NewSource(1337))
	for _, op := range ops {
		tree := op.Result.Tree()
		for i := 0; i < 2000; i++ {
			c := model3d.XYZ(rng.Float64(), rng.Float64(), rng.Float64()).Scale(2.5).AddScalar(-1)
			if boxBoundaryDist(c, centerA, 0.5) < 1e-4 || boxBoundaryDist(c, centerB, 0.5) < 1e-4 {
				continue
			}
			expected := op.Expr(insideBox(c, centerA, 0.5), insideBox(c, centerB, 0.5))
			if actual := tree.Contains(c); actual != expected {
				t.Fatalf("%s: point %v should have containment %v", op.Name, c, expected)
			}
		}
	}
}

func TestCSGSphereOperations(t *testing.T) {
	sphere := testSphere(model3d.Origin, 1)
	cube := testCube(model3d.X(1), 0.5, NoShared)
	sphereVolume := sphere.Volume()
	cubeVolume := cube.Volume()

	inter := sphere.Intersect(cube).Volume()
	diff := sphere.Subtract(cube).Volume()
	union := sphere.Union(cube).Volume()
	if inter <= 0 || inter >= cubeVolume {
		t.Fatalf("unexpected intersection volume %f", inter)
	}
	mustApprox(t, "subtract", sphereVolume-inter, diff, 1e-5)
	mustApprox(t, "union", sphereVolume+cubeVolume-inter, union, 1e-5)
}

func TestCSGTransform(t *testing.T) {
	cube := testCube(model3d.Origin, 0.5, NoShared)
	m := NewMatrix4Translate(model3d.XYZ(1, 2, 3)).Mul(NewMatrix4Scale(model3d.XYZ(2, 1, 1)))
	moved := cube.Transform(m)
	mustApprox(t, "volume", 2, moved.Volume(), 1e-8)
	min, max := moved.Bounds()
	if min.Dist(model3d.XYZ(0, 1.5, 2.5)) > 1e-8 || max.Dist(model3d.XYZ(2, 2.5, 3.5)) > 1e-8 {
		t.Fatalf("unexpected bounds %v %v", min, max)
	}

	mirrored := cube.Transform(NewMatrix4Scale(model3d.XYZ(-1, 1, 1)))
	mustApprox(t, "volume", 1, mirrored.Volume(), 1e-8)
	for _, p := range mirrored.Polygons {
		if p.Plane.Normal.Dot(p.Vertices[0].Normal) <= 0 {
			t.Fatal("mirrored winding disagrees with normals")
		}
	}
}

func TestCSGCloneDropsDegenerate(t *testing.T) {
	cube := testCube(model3d.Origin, 0.5, NoShared)
	cube.Polygons = append(cube.Polygons, NewPolygon([]*Vertex{
		{Pos: model3d.X(0)},
		{Pos: model3d.X(1)},
		{Pos: model3d.X(2)},
	}, NoShared))
	if n := len(cube.Clone().Polygons); n != 6 {
		t.Fatalf("expected 6 polygons but got %d", n)
	}
}

func TestCSGSolid(t *testing.T) {
	solid := testCube(model3d.Origin, 0.5, NoShared).Union(testCube(model3d.X(0.5), 0.5, NoShared)).Solid()
	if solid.Min().Dist(model3d.XYZ(-0.5, -0.5, -0.5)) > 1e-8 {
		t.Fatalf("unexpected min %v", solid.Min())
	}
	if !solid.Contains(model3d.X(0.9)) || solid.Contains(model3d.X(1.1)) {
		t.Fatal("unexpected containment")
	}
}
