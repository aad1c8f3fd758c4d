package csg

import "github.com/unixpickle/model3d/model3d"

// Solid creates a model3d.Solid for the volume enclosed by the polygons.
//
// Containment is answered by a BSP tree built once up front.
func (c *CSG) Solid() model3d.Solid {
	min, max := c.Bounds()
	tree := c.Tree()
	return model3d.CheckedFuncSolid(min, max, tree.Contains)
}
