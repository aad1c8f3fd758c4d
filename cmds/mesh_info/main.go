package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/unixpickle/bsp-csg/csg"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/model3d/model3d"
)

func main() {
	var numSamples int
	flag.IntVar(&numSamples, "num-samples", 100000, "number of containment samples for volume estimation")
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: mesh_info [flags] <input.stl|input.bin>")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
		os.Exit(1)
	}
	inputPath := args[0]

	var solid *csg.CSG
	if strings.ToLower(filepath.Ext(inputPath)) == ".stl" {
		log.Println("Loading mesh...")
		tris, err := csg.Load(inputPath, model3d.ReadSTL)
		essentials.Must(err)
		solid = csg.FromMesh(model3d.NewMeshTriangles(tris), csg.NoShared)
	} else {
		log.Println("Loading polygons...")
		var err error
		solid, err = csg.Load(inputPath, csg.ReadPolygons)
		essentials.Must(err)
	}

	fmt.Println("Number of polygons:", len(solid.Polygons))
	fmt.Println("Number of triangles:", solid.NumTriangles())
	if len(solid.Polygons) == 0 {
		return
	}
	min, max := solid.Bounds()
	fmt.Println("Bounds:", min, max)
	fmt.Println("Volume:", solid.Volume())

	tree := solid.Tree()
	fmt.Println("BSP nodes:", tree.NumNodes())
	fmt.Println("BSP depth:", tree.Depth())

	log.Println("Sampling volume...")
	size := max.Sub(min)
	inside := make([]bool, numSamples)
	essentials.StatefulConcurrentMap(0, numSamples, func() func(i int) {
		gen := rand.New(rand.NewSource(rand.Int63()))
		return func(i int) {
			point := model3d.XYZ(gen.Float64(), gen.Float64(), gen.Float64()).Mul(size).Add(min)
			inside[i] = tree.Contains(point)
		}
	})
	var count int
	for _, x := range inside {
		if x {
			count++
		}
	}
	fmt.Println("Sampled volume:", float64(count)/float64(numSamples)*size.X*size.Y*size.Z)

	if err := solid.Validate(); err != nil {
		fmt.Println("Validation error:", err)
	}
}
