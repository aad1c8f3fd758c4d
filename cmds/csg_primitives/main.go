package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/unixpickle/bsp-csg/csg"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/model3d/model3d"
)

func main() {
	var center model3d.Coord3D
	var radius float64
	var subdivisions int
	flag.Float64Var(&center.X, "x", 0, "x coordinate of the center")
	flag.Float64Var(&center.Y, "y", 0, "y coordinate of the center")
	flag.Float64Var(&center.Z, "z", 0, "z coordinate of the center")
	flag.Float64Var(&radius, "radius", 1, "half-width of the box or radius of the sphere")
	flag.IntVar(&subdivisions, "subdivisions", 2, "icosphere subdivisions for spheres")
	flag.Parse()

	args := flag.Args()
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: csg_primitives [flags] <box|sphere> <output.stl>")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
		os.Exit(1)
	}
	kind, outputPath := args[0], args[1]

	log.Printf("Creating %s...", kind)
	var mesh *model3d.Mesh
	switch kind {
	case "box":
		mesh = model3d.NewMeshRect(center.AddScalar(-radius), center.AddScalar(radius))
	case "sphere":
		mesh = model3d.NewMeshIcosphere(center, radius, subdivisions)
	default:
		essentials.Die("unknown primitive: " + kind)
	}

	// Round trip through polygons so that the output uses the same
	// triangulation as csg_op results.
	solid := csg.FromMesh(mesh, csg.NoShared)
	log.Printf(" - %d polygons, volume %f", len(solid.Polygons), solid.Volume())

	log.Println("Writing output...")
	essentials.Must(solid.Mesh().SaveGroupedSTL(outputPath))
}
