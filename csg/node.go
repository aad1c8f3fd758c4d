package csg

import (
	"fmt"
	"strings"

	"github.com/unixpickle/model3d/model3d"
)

// A Node is a node in a BSP tree built from a collection of polygons.
//
// The first polygon passed to Build determines the splitting plane. All
// polygons coplanar with it are stored in the node itself, and the rest are
// filtered into the Front and Back subtrees. There is no distinction between
// internal and leaf nodes.
//
// A Node with a nil Plane is an empty tree.
type Node struct {
	Plane    *Plane
	Polygons []*Polygon
	Front    *Node
	Back     *Node
}

// NewNode creates a tree from the polygons.
//
// The polygons are owned by the resulting tree and may be modified by
// further operations like Invert or ClipTo.
func NewNode(polygons []*Polygon) *Node {
	n := &Node{}
	n.Build(polygons)
	return n
}

// Clone creates a deep copy of the tree.
func (n *Node) Clone() *Node {
	res := &Node{
		Polygons: make([]*Polygon, len(n.Polygons)),
	}
	if n.Plane != nil {
		res.Plane = n.Plane.Clone()
	}
	if n.Front != nil {
		res.Front = n.Front.Clone()
	}
	if n.Back != nil {
		res.Back = n.Back.Clone()
	}
	for i, p := range n.Polygons {
		res.Polygons[i] = p.Clone()
	}
	return res
}

// Build adds polygons to the tree.
//
// When called on a non-empty tree, the new polygons are filtered down to the
// bottom of the tree and become new nodes there.
func (n *Node) Build(polygons []*Polygon) {
	if len(polygons) == 0 {
		return
	}
	if n.Plane == nil {
		n.Plane = polygons[0].Plane.Clone()
	}
	var front, back []*Polygon
	for _, p := range polygons {
		n.Plane.SplitPolygon(p, &n.Polygons, &n.Polygons, &front, &back)
	}
	if len(front) > 0 {
		if n.Front == nil {
			n.Front = &Node{}
		}
		n.Front.Build(front)
	}
	if len(back) > 0 {
		if n.Back == nil {
			n.Back = &Node{}
		}
		n.Back.Build(back)
	}
}

// Invert converts solid space into empty space and vice versa.
func (n *Node) Invert() {
	for _, p := range n.Polygons {
		p.Flip()
	}
	if n.Plane != nil {
		n.Plane.Flip()
	}
	if n.Front != nil {
		n.Front.Invert()
	}
	if n.Back != nil {
		n.Back.Invert()
	}
	n.Front, n.Back = n.Back, n.Front
}

// ClipPolygons removes the parts of polygons which are inside the solid
// represented by this tree, returning the remaining polygons and fragments.
func (n *Node) ClipPolygons(polygons []*Polygon) []*Polygon {
	if n.Plane == nil {
		return append([]*Polygon{}, polygons...)
	}
	var front, back []*Polygon
	for _, p := range polygons {
		n.Plane.SplitPolygon(p, &front, &back, &front, &back)
	}
	if n.Front != nil {
		front = n.Front.ClipPolygons(front)
	}
	if n.Back != nil {
		back = n.Back.ClipPolygons(back)
	} else {
		back = nil
	}
	return append(front, back...)
}

// ClipTo removes all polygons in this tree which are inside of other.
func (n *Node) ClipTo(other *Node) {
	n.Polygons = other.ClipPolygons(n.Polygons)
	if n.Front != nil {
		n.Front.ClipTo(other)
	}
	if n.Back != nil {
		n.Back.ClipTo(other)
	}
}

// AllPolygons gets every polygon in the tree, in pre-order.
func (n *Node) AllPolygons() []*Polygon {
	res := append([]*Polygon{}, n.Polygons...)
	if n.Front != nil {
		res = append(res, n.Front.AllPolygons()...)
	}
	if n.Back != nil {
		res = append(res, n.Back.AllPolygons()...)
	}
	return res
}

// Contains checks if a point is inside the solid bounded by the tree.
//
// The tree must have been built from a closed surface. Points within Epsilon
// of a splitting plane are treated as being in front of it, so results on
// the boundary itself are unreliable.
func (n *Node) Contains(c model3d.Coord3D) bool {
	if n.Plane == nil {
		return false
	}
	for {
		if n.Plane.Classify(c) == Back {
			if n.Back == nil {
				return true
			}
			n = n.Back
		} else {
			if n.Front == nil {
				return false
			}
			n = n.Front
		}
	}
}

// NumNodes counts the nodes in the tree, including n.
func (n *Node) NumNodes() int {
	res := 1
	if n.Front != nil {
		res += n.Front.NumNodes()
	}
	if n.Back != nil {
		res += n.Back.NumNodes()
	}
	return res
}

// Depth is the length of the longest path from n to a descendant.
func (n *Node) Depth() int {
	var res int
	for _, child := range []*Node{n.Front, n.Back} {
		if child != nil {
			if d := child.Depth() + 1; d > res {
				res = d
			}
		}
	}
	return res
}

func (n *Node) String() string {
	if n.Plane == nil {
		return "empty"
	}
	header := fmt.Sprintf("plane %v * point = %v (%d polygons)", n.Plane.Normal, n.Plane.W,
		len(n.Polygons))
	var parts []string
	parts = append(parts, header)
	if n.Front != nil {
		parts = append(parts, "front:", indentText(n.Front.String()))
	}
	if n.Back != nil {
		parts = append(parts, "back:", indentText(n.Back.String()))
	}
	return strings.Join(parts, "\n")
}

func indentText(text string) string {
	lines := strings.Split(text, "\n")
	for i, x := range lines {
		lines[i] = "  " + x
	}
	return strings.Join(lines, "\n")
}
