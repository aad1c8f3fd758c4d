package csg

import (
	"math"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

// A Group is a range of a BufferMesh's index buffer which is rendered with a
// single material.
//
// Start and Count are measured in indices, so a triangle takes up three.
type Group struct {
	Start         int `json:"start"`
	Count         int `json:"count"`
	MaterialIndex int `json:"materialIndex"`
}

// A BufferMesh is a triangle mesh stored as flat attribute arrays, in the
// layout that renderers upload to the GPU.
//
// Positions and Normals hold three floats per vertex, UVs holds two, and
// Colors holds three. UVs and Colors may be nil. If Index is nil, every
// three consecutive vertices make up a triangle.
//
// World positions the mesh in the scene. It is informational, and callers
// still pass world matrices explicitly when importing.
type BufferMesh struct {
	Positions []float32 `json:"positions"`
	Normals   []float32 `json:"normals"`
	UVs       []float32 `json:"uvs,omitempty"`
	Colors    []float32 `json:"colors,omitempty"`
	Index     []uint32  `json:"index,omitempty"`
	Groups    []Group   `json:"groups,omitempty"`
	World     *Matrix4  `json:"world,omitempty"`

	BoundingBox    *model3d.Rect   `json:"-"`
	BoundingSphere *model3d.Sphere `json:"-"`
}

func (b *BufferMesh) NumVertices() int {
	return len(b.Positions) / 3
}

func (b *BufferMesh) NumTriangles() int {
	if b.Index != nil {
		return len(b.Index) / 3
	}
	return b.NumVertices() / 3
}

// Validate checks that the attribute arrays agree in size and that the index
// buffer and groups only reference existing data.
func (b *BufferMesh) Validate() error {
	if len(b.Positions)%3 != 0 {
		return errors.Errorf("position buffer length %d is not a multiple of 3",
			len(b.Positions))
	}
	n := b.NumVertices()
	if len(b.Normals) != n*3 {
		return errors.Errorf("expected %d normal components but got %d", n*3, len(b.Normals))
	}
	if b.UVs != nil && len(b.UVs) != n*2 {
		return errors.Errorf("expected %d uv components but got %d", n*2, len(b.UVs))
	}
	if b.Colors != nil && len(b.Colors) != n*3 {
		return errors.Errorf("expected %d color components but got %d", n*3, len(b.Colors))
	}
	for i, idx := range b.Index {
		if int(idx) >= n {
			return errors.Errorf("index %d references vertex %d of %d", i, idx, n)
		}
	}
	for i, g := range b.Groups {
		if g.Start < 0 || g.Count < 0 {
			return errors.Errorf("group %d has negative range", i)
		}
	}
	return nil
}

// ComputeBounds updates the bounding box and bounding sphere of the mesh.
//
// The sphere is centered at the middle of the box.
func (b *BufferMesh) ComputeBounds() {
	n := b.NumVertices()
	if n == 0 {
		b.BoundingBox = &model3d.Rect{}
		b.BoundingSphere = &model3d.Sphere{}
		return
	}
	min := readCoord3D(b.Positions, 0)
	max := min
	for i := 1; i < n; i++ {
		c := readCoord3D(b.Positions, i)
		min = min.Min(c)
		max = max.Max(c)
	}
	center := min.Mid(max)
	var radiusSq float64
	for i := 0; i < n; i++ {
		radiusSq = math.Max(radiusSq, readCoord3D(b.Positions, i).SquaredDist(center))
	}
	b.BoundingBox = &model3d.Rect{MinVal: min, MaxVal: max}
	b.BoundingSphere = &model3d.Sphere{Center: center, Radius: math.Sqrt(radiusSq)}
}

// indices gets the index buffer, or a sequential one for non-indexed meshes.
func (b *BufferMesh) indices() []uint32 {
	if b.Index != nil {
		return b.Index
	}
	res := make([]uint32, b.NumVertices())
	for i := range res {
		res[i] = uint32(i)
	}
	return res
}
