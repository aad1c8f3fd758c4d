package csg

import (
	"github.com/pkg/errors"
)

// PlanarityEpsilon is the maximum distance a vertex may be from its
// polygon's plane before Validate reports it.
const PlanarityEpsilon = Epsilon * 10

// Validate checks the preconditions that the boolean operations assume but
// never verify: the polygon must have a finite plane, and its vertices must
// form a planar, convex loop.
func (p *Polygon) Validate() error {
	if len(p.Vertices) < 3 {
		return errors.Errorf("polygon has %d vertices", len(p.Vertices))
	}
	if !p.Plane.IsFinite() {
		return errors.New("polygon has degenerate plane")
	}
	for i, v := range p.Vertices {
		if d := p.Plane.SignedDist(v.Pos); d > PlanarityEpsilon || d < -PlanarityEpsilon {
			return errors.Errorf("vertex %d is %e away from polygon plane", i, d)
		}
	}
	n := len(p.Vertices)
	for i := range p.Vertices {
		v0 := p.Vertices[i].Pos
		v1 := p.Vertices[(i+1)%n].Pos
		v2 := p.Vertices[(i+2)%n].Pos
		turn := v1.Sub(v0).Cross(v2.Sub(v1)).Dot(p.Plane.Normal)
		if turn < -PlanarityEpsilon {
			return errors.Errorf("polygon is not convex at vertex %d", (i+1)%n)
		}
	}
	return nil
}

// Validate checks every polygon in the solid.
func (c *CSG) Validate() error {
	for i, p := range c.Polygons {
		if err := p.Validate(); err != nil {
			return errors.Wrapf(err, "validate polygon %d", i)
		}
	}
	return nil
}
