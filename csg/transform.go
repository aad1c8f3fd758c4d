package csg

import (
	"math"

	"github.com/unixpickle/model3d/model3d"
)

// A Matrix4 is a 4x4 homogeneous transformation matrix, stored in row-major
// order.
type Matrix4 [16]float64

func NewMatrix4Identity() *Matrix4 {
	return &Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// NewMatrix4Affine creates a matrix which applies linear and then adds
// offset.
func NewMatrix4Affine(linear *model3d.Matrix3, offset model3d.Coord3D) *Matrix4 {
	return &Matrix4{
		linear[0], linear[1], linear[2], offset.X,
		linear[3], linear[4], linear[5], offset.Y,
		linear[6], linear[7], linear[8], offset.Z,
		0, 0, 0, 1,
	}
}

func NewMatrix4Translate(offset model3d.Coord3D) *Matrix4 {
	return NewMatrix4Affine(&model3d.Matrix3{1, 0, 0, 0, 1, 0, 0, 0, 1}, offset)
}

func NewMatrix4Scale(scale model3d.Coord3D) *Matrix4 {
	return NewMatrix4Affine(&model3d.Matrix3{scale.X, 0, 0, 0, scale.Y, 0, 0, 0, scale.Z},
		model3d.Origin)
}

// NewMatrix4ColumnMajor creates a matrix from elements stored in
// column-major order, which is how most rendering libraries lay out
// transforms.
func NewMatrix4ColumnMajor(elements [16]float64) *Matrix4 {
	var res Matrix4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			res[row*4+col] = elements[col*4+row]
		}
	}
	return &res
}

// ColumnMajor is the inverse of NewMatrix4ColumnMajor.
func (m *Matrix4) ColumnMajor() [16]float64 {
	var res [16]float64
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			res[col*4+row] = m[row*4+col]
		}
	}
	return res
}

// Linear gets the upper-left 3x3 block of the matrix.
func (m *Matrix4) Linear() *model3d.Matrix3 {
	return &model3d.Matrix3{
		m[0], m[1], m[2],
		m[4], m[5], m[6],
		m[8], m[9], m[10],
	}
}

// Mul computes m*m1, which applies m1 first.
func (m *Matrix4) Mul(m1 *Matrix4) *Matrix4 {
	var res Matrix4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[row*4+k] * m1[k*4+col]
			}
			res[row*4+col] = sum
		}
	}
	return &res
}

// Apply transforms a point, performing the perspective divide if the matrix
// is not affine.
func (m *Matrix4) Apply(c model3d.Coord3D) model3d.Coord3D {
	res := model3d.XYZ(
		m[0]*c.X+m[1]*c.Y+m[2]*c.Z+m[3],
		m[4]*c.X+m[5]*c.Y+m[6]*c.Z+m[7],
		m[8]*c.X+m[9]*c.Y+m[10]*c.Z+m[11],
	)
	w := m[12]*c.X + m[13]*c.Y + m[14]*c.Z + m[15]
	if w != 1 {
		res = res.Scale(1 / w)
	}
	return res
}

// NormalMatrix gets the inverse transpose of the linear part of m, which
// maps surface normals under the transformation.
func (m *Matrix4) NormalMatrix() *model3d.Matrix3 {
	return m.Linear().Inverse().Transpose()
}

// Det computes the determinant of the linear part of m.
//
// A negative determinant indicates that the transform mirrors space.
func (m *Matrix4) Det() float64 {
	return m.Linear().Det()
}

// IsAffine checks if the bottom row of m is (0, 0, 0, 1).
func (m *Matrix4) IsAffine() bool {
	return m[12] == 0 && m[13] == 0 && m[14] == 0 && m[15] == 1
}

// Offset gets the translation column of m.
func (m *Matrix4) Offset() model3d.Coord3D {
	return model3d.XYZ(m[3], m[7], m[11])
}

// Inverse computes the inverse of m.
//
// Singular matrices produce non-finite entries.
func (m *Matrix4) Inverse() *Matrix4 {
	if m.IsAffine() {
		linear := m.Linear().Inverse()
		return NewMatrix4Affine(linear, linear.MulColumn(m.Offset()).Scale(-1))
	}
	return m.projectiveInverse()
}

// projectiveInverse inverts a general 4x4 matrix with Gauss-Jordan
// elimination and partial pivoting.
func (m *Matrix4) projectiveInverse() *Matrix4 {
	a := *m
	res := *NewMatrix4Identity()
	for col := 0; col < 4; col++ {
		pivot := col
		for row := col + 1; row < 4; row++ {
			if math.Abs(a[row*4+col]) > math.Abs(a[pivot*4+col]) {
				pivot = row
			}
		}
		if pivot != col {
			for k := 0; k < 4; k++ {
				a[col*4+k], a[pivot*4+k] = a[pivot*4+k], a[col*4+k]
				res[col*4+k], res[pivot*4+k] = res[pivot*4+k], res[col*4+k]
			}
		}
		scale := 1 / a[col*4+col]
		for k := 0; k < 4; k++ {
			a[col*4+k] *= scale
			res[col*4+k] *= scale
		}
		for row := 0; row < 4; row++ {
			if row == col {
				continue
			}
			factor := a[row*4+col]
			if factor == 0 {
				continue
			}
			for k := 0; k < 4; k++ {
				a[row*4+k] -= factor * a[col*4+k]
				res[row*4+k] -= factor * res[col*4+k]
			}
		}
	}
	return &res
}

// vertexTransform moves vertices into a new coordinate system.
type vertexTransform struct {
	matrix  *Matrix4
	normals *model3d.Matrix3
	mirror  bool
}

func newVertexTransform(m *Matrix4) *vertexTransform {
	return &vertexTransform{
		matrix:  m,
		normals: m.NormalMatrix(),
		mirror:  m.Det() < 0,
	}
}

// Apply creates transformed copies of the vertices.
//
// For mirroring transforms, the order of the vertices is reversed so that
// the winding still agrees with the normals.
func (v *vertexTransform) Apply(vs []*Vertex) []*Vertex {
	res := make([]*Vertex, len(vs))
	for i, vertex := range vs {
		v1 := vertex.Clone()
		v1.Pos = v.matrix.Apply(vertex.Pos)
		v1.Normal = v.normals.MulColumn(vertex.Normal)
		if v.mirror {
			res[len(vs)-1-i] = v1
		} else {
			res[i] = v1
		}
	}
	return res
}
