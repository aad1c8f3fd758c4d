package csg

import (
	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/model3d/model3d"
	"golang.org/x/exp/constraints"
)

// A packedBuffer writes fixed-size attribute vectors into a pre-allocated
// flat array.
type packedBuffer[F constraints.Float] struct {
	Array []F
	Top   int
}

func newPackedBuffer[F constraints.Float](size int) *packedBuffer[F] {
	return &packedBuffer[F]{Array: make([]F, size)}
}

func (p *packedBuffer[F]) WriteCoord3D(c model3d.Coord3D) {
	p.Array[p.Top] = F(c.X)
	p.Array[p.Top+1] = F(c.Y)
	p.Array[p.Top+2] = F(c.Z)
	p.Top += 3
}

func (p *packedBuffer[F]) WriteCoord2D(c model2d.Coord) {
	p.Array[p.Top] = F(c.X)
	p.Array[p.Top+1] = F(c.Y)
	p.Top += 2
}

func readCoord3D[F constraints.Float](arr []F, idx int) model3d.Coord3D {
	return model3d.XYZ(float64(arr[idx*3]), float64(arr[idx*3+1]), float64(arr[idx*3+2]))
}

func readCoord2D[F constraints.Float](arr []F, idx int) model2d.Coord {
	return model2d.XY(float64(arr[idx*2]), float64(arr[idx*2+1]))
}
