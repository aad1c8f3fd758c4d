package csg

import "github.com/pkg/errors"

// FromBufferMesh creates a solid from the triangles of a mesh, moving them
// into world space with the world matrix.
//
// If objectIndex is non-nil, every polygon is tagged with it. Otherwise, each
// polygon is tagged with the material index of the group containing its
// triangle, or NoShared if there is no such group.
//
// Degenerate triangles are silently dropped. An error is only returned if
// the buffers of the mesh are inconsistent.
func FromBufferMesh(mesh *BufferMesh, world *Matrix4, objectIndex *int) (*CSG, error) {
	if err := mesh.Validate(); err != nil {
		return nil, errors.Wrap(err, "import buffer mesh")
	}
	vt := newVertexTransform(world)
	index := mesh.indices()
	res := &CSG{Polygons: make([]*Polygon, 0, len(index)/3)}
	for i := 0; i+2 < len(index); i += 3 {
		vertices := make([]*Vertex, 3)
		for j := range vertices {
			vi := int(index[i+j])
			v := &Vertex{
				Pos:    readCoord3D(mesh.Positions, vi),
				Normal: readCoord3D(mesh.Normals, vi),
			}
			if mesh.UVs != nil {
				v.UV = readCoord2D(mesh.UVs, vi)
			}
			if mesh.Colors != nil {
				c := readCoord3D(mesh.Colors, vi)
				v.Color = &c
			}
			vertices[j] = v
		}
		shared := NoShared
		if objectIndex != nil {
			shared = *objectIndex
		} else {
			for _, g := range mesh.Groups {
				if i >= g.Start && i < g.Start+g.Count {
					shared = g.MaterialIndex
				}
			}
		}
		poly := NewPolygon(vt.Apply(vertices), shared)
		if poly.Plane.IsFinite() {
			res.Polygons = append(res.Polygons, poly)
		}
	}
	return res, nil
}

// ToBufferMesh creates a mesh from the solid, moving it out of world space
// with the inverse of the world matrix. The resulting mesh carries a copy of
// the world matrix.
//
// Polygons are fan triangulated. If any polygon has a Shared tag, the mesh
// is indexed and grouped by tag, with one group per tag from 0 up to the
// largest tag, followed by a final group for untagged polygons.
func ToBufferMesh(c *CSG, world *Matrix4) *BufferMesh {
	vt := newVertexTransform(world.Inverse())

	triCount := c.NumTriangles()
	hasColor := false
	maxShared := NoShared
	for _, p := range c.Polygons {
		if p.Vertices[0].Color != nil {
			hasColor = true
		}
		if p.Shared > maxShared {
			maxShared = p.Shared
		}
	}

	positions := newPackedBuffer[float32](triCount * 3 * 3)
	normals := newPackedBuffer[float32](triCount * 3 * 3)
	uvs := newPackedBuffer[float32](triCount * 3 * 2)
	var colors *packedBuffer[float32]
	if hasColor {
		colors = newPackedBuffer[float32](triCount * 3 * 3)
	}

	groups := make([][]uint32, maxShared+1)
	var defaultGroup []uint32
	var vertexCount uint32

	for _, p := range c.Polygons {
		vertices := vt.Apply(p.Vertices)
		for _, v := range vertices {
			if norm := v.Normal.Norm(); norm != 0 {
				v.Normal = v.Normal.Scale(1 / norm)
			}
		}
		poly := &Polygon{Vertices: vertices, Shared: p.Shared}
		poly.IterateTriangles(func(v1, v2, v3 *Vertex) {
			ids := []uint32{vertexCount, vertexCount + 1, vertexCount + 2}
			vertexCount += 3
			if p.Shared >= 0 {
				groups[p.Shared] = append(groups[p.Shared], ids...)
			} else {
				defaultGroup = append(defaultGroup, ids...)
			}
			for _, v := range [3]*Vertex{v1, v2, v3} {
				positions.WriteCoord3D(v.Pos)
				normals.WriteCoord3D(v.Normal)
				uvs.WriteCoord2D(v.UV)
				if colors != nil {
					if v.Color != nil {
						colors.WriteCoord3D(*v.Color)
					} else {
						colors.Top += 3
					}
				}
			}
		})
	}

	worldCopy := *world
	res := &BufferMesh{
		Positions: positions.Array,
		Normals:   normals.Array,
		UVs:       uvs.Array,
		World:     &worldCopy,
	}
	if colors != nil {
		res.Colors = colors.Array
	}
	if len(groups) > 0 {
		res.Index = make([]uint32, 0, vertexCount)
		var start int
		for i, g := range groups {
			res.Groups = append(res.Groups, Group{Start: start, Count: len(g), MaterialIndex: i})
			start += len(g)
			res.Index = append(res.Index, g...)
		}
		res.Groups = append(res.Groups, Group{
			Start:         start,
			Count:         len(defaultGroup),
			MaterialIndex: len(groups),
		})
		res.Index = append(res.Index, defaultGroup...)
	}
	res.ComputeBounds()
	return res
}

// UnionMeshes computes the union of two meshes, each given with its world
// matrix. The result is expressed in the local space of mesh a.
func UnionMeshes(a *BufferMesh, aWorld *Matrix4, b *BufferMesh,
	bWorld *Matrix4) (*BufferMesh, error) {
	return binaryMeshOp(a, aWorld, b, bWorld, (*CSG).Union, "union meshes")
}

// SubtractMeshes computes mesh a minus mesh b, each given with its world
// matrix. The result is expressed in the local space of mesh a.
func SubtractMeshes(a *BufferMesh, aWorld *Matrix4, b *BufferMesh,
	bWorld *Matrix4) (*BufferMesh, error) {
	return binaryMeshOp(a, aWorld, b, bWorld, (*CSG).Subtract, "subtract meshes")
}

// IntersectMeshes computes the intersection of two meshes, each given with
// its world matrix. The result is expressed in the local space of mesh a.
func IntersectMeshes(a *BufferMesh, aWorld *Matrix4, b *BufferMesh,
	bWorld *Matrix4) (*BufferMesh, error) {
	return binaryMeshOp(a, aWorld, b, bWorld, (*CSG).Intersect, "intersect meshes")
}

// InverseMesh swaps the inside and outside of a mesh.
func InverseMesh(a *BufferMesh, aWorld *Matrix4) (*BufferMesh, error) {
	csgA, err := FromBufferMesh(a, aWorld, nil)
	if err != nil {
		return nil, errors.Wrap(err, "inverse mesh")
	}
	return ToBufferMesh(csgA.Inverse(), aWorld), nil
}

func binaryMeshOp(a *BufferMesh, aWorld *Matrix4, b *BufferMesh, bWorld *Matrix4,
	op func(c, other *CSG) *CSG, context string) (*BufferMesh, error) {
	csgA, err := FromBufferMesh(a, aWorld, nil)
	if err != nil {
		return nil, errors.Wrap(err, context)
	}
	csgB, err := FromBufferMesh(b, bWorld, nil)
	if err != nil {
		return nil, errors.Wrap(err, context)
	}
	return ToBufferMesh(op(csgA, csgB), aWorld), nil
}
