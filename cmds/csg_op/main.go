package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/unixpickle/bsp-csg/csg"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/model3d/model3d"
)

func main() {
	var translateB string
	var scaleB float64
	var validate bool
	flag.StringVar(&translateB, "translate-b", "0,0,0", "offset applied to the second operand")
	flag.Float64Var(&scaleB, "scale-b", 1, "scale applied to the second operand")
	flag.BoolVar(&validate, "validate", false, "check the result for non-convex or non-planar polygons")
	flag.Parse()

	args := flag.Args()
	if len(args) < 3 {
		usage()
	}
	op := args[0]
	var inputPaths []string
	if op == "inverse" {
		if len(args) != 3 {
			usage()
		}
		inputPaths = args[1:2]
	} else {
		if len(args) != 4 {
			usage()
		}
		inputPaths = args[1:3]
	}
	outputPath := args[len(args)-1]

	var operands []*csg.CSG
	for i, path := range inputPaths {
		log.Printf("Loading mesh %d...", i+1)
		tris, err := csg.Load(path, model3d.ReadSTL)
		essentials.Must(err)
		operands = append(operands, csg.FromMesh(model3d.NewMeshTriangles(tris), i))
	}

	if len(operands) == 2 {
		offset, err := parseCoord(translateB)
		essentials.Must(err)
		transform := csg.NewMatrix4Translate(offset).Mul(csg.NewMatrix4Scale(model3d.XYZ(scaleB, scaleB, scaleB)))
		operands[1] = operands[1].Transform(transform)
	}

	log.Printf("Computing %s...", op)
	var result *csg.CSG
	switch op {
	case "union":
		result = operands[0].Union(operands[1])
	case "subtract":
		result = operands[0].Subtract(operands[1])
	case "intersect":
		result = operands[0].Intersect(operands[1])
	case "inverse":
		result = operands[0].Inverse()
	default:
		essentials.Die("unknown operation: " + op)
	}
	log.Printf(" - result has %d polygons (%d triangles)", len(result.Polygons), result.NumTriangles())

	if validate {
		log.Println("Validating result...")
		essentials.Must(result.Validate())
	}

	log.Println("Writing output...")
	essentials.Must(result.Mesh().SaveGroupedSTL(outputPath))
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: csg_op [flags] <union|subtract|intersect|inverse> <a.stl> [b.stl] <output.stl>")
	fmt.Fprintln(os.Stderr)
	flag.PrintDefaults()
	os.Exit(1)
}

func parseCoord(s string) (model3d.Coord3D, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return model3d.Coord3D{}, fmt.Errorf("expected three comma-separated values but got %q", s)
	}
	var values [3]float64
	for i, part := range parts {
		x, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return model3d.Coord3D{}, err
		}
		values[i] = x
	}
	return model3d.NewCoord3DArray(values), nil
}
