package csg

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/model3d/model3d"
)

const hasColorFlag = 1

// WritePolygons serializes the polygons of c in a 32-bit precision binary
// format.
func WritePolygons(w io.Writer, c *CSG) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(c.Polygons))); err != nil {
		return errors.Wrap(err, "write polygons")
	}
	for _, p := range c.Polygons {
		if err := writePolygon(w, p); err != nil {
			return errors.Wrap(err, "write polygons")
		}
	}
	return nil
}

func writePolygon(w io.Writer, p *Polygon) error {
	var flags uint8
	if p.Vertices[0].Color != nil {
		flags |= hasColorFlag
	}
	header := struct {
		Shared      int32
		NumVertices uint32
		Flags       uint8
	}{int32(p.Shared), uint32(len(p.Vertices)), flags}
	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return err
	}
	for _, v := range p.Vertices {
		values := []float32{
			float32(v.Pos.X), float32(v.Pos.Y), float32(v.Pos.Z),
			float32(v.Normal.X), float32(v.Normal.Y), float32(v.Normal.Z),
			float32(v.UV.X), float32(v.UV.Y),
		}
		if flags&hasColorFlag != 0 {
			var color model3d.Coord3D
			if v.Color != nil {
				color = *v.Color
			}
			values = append(values, float32(color.X), float32(color.Y), float32(color.Z))
		}
		if err := binary.Write(w, binary.LittleEndian, values); err != nil {
			return err
		}
	}
	return nil
}

// ReadPolygons reads the output written by WritePolygons.
//
// Polygons with a degenerate plane are dropped.
func ReadPolygons(r io.Reader) (*CSG, error) {
	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, errors.Wrap(err, "read polygons")
	}
	res := &CSG{}
	for i := 0; i < int(count); i++ {
		p, err := readPolygon(r)
		if err != nil {
			return nil, errors.Wrapf(err, "read polygons: polygon %d", i)
		}
		if p.Plane.IsFinite() {
			res.Polygons = append(res.Polygons, p)
		}
	}
	return res, nil
}

func readPolygon(r io.Reader) (*Polygon, error) {
	var header struct {
		Shared      int32
		NumVertices uint32
		Flags       uint8
	}
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, err
	}
	if header.NumVertices < 3 {
		return nil, errors.Errorf("invalid vertex count: %d", header.NumVertices)
	}
	numValues := 8
	if header.Flags&hasColorFlag != 0 {
		numValues += 3
	}
	// The count is untrusted, so the slice only grows as vertices arrive.
	vertices := make([]*Vertex, 0, 4)
	values := make([]float32, numValues)
	for i := uint32(0); i < header.NumVertices; i++ {
		if err := binary.Read(r, binary.LittleEndian, values); err != nil {
			return nil, err
		}
		v := &Vertex{
			Pos:    model3d.XYZ(float64(values[0]), float64(values[1]), float64(values[2])),
			Normal: model3d.XYZ(float64(values[3]), float64(values[4]), float64(values[5])),
			UV:     model2d.XY(float64(values[6]), float64(values[7])),
		}
		if header.Flags&hasColorFlag != 0 {
			c := model3d.XYZ(float64(values[8]), float64(values[9]), float64(values[10]))
			v.Color = &c
		}
		vertices = append(vertices, v)
	}
	return NewPolygon(vertices, int(header.Shared)), nil
}

// Load opens the file at path and decodes it with f.
func Load[T any](path string, f func(r io.Reader) (T, error)) (T, error) {
	r, err := os.Open(path)
	if err != nil {
		var zero T
		return zero, errors.Wrap(err, "load")
	}
	defer r.Close()
	res, err := f(r)
	if err != nil {
		return res, errors.Wrapf(err, "load %s", path)
	}
	return res, nil
}

// Save creates the file at path and encodes obj into it with f.
func Save[T any](path string, obj T, f func(w io.Writer, obj T) error) error {
	w, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "save")
	}
	if err := f(w, obj); err != nil {
		w.Close()
		return errors.Wrapf(err, "save %s", path)
	}
	if err := w.Close(); err != nil {
		return errors.Wrapf(err, "save %s", path)
	}
	return nil
}
