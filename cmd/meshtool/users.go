package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/meshras/internal/config"
	"github.com/Faultbox/meshras/internal/convert"
	"github.com/Faultbox/meshras/internal/engine/deformer"
	"github.com/Faultbox/meshras/internal/engine/rasterizer"
	"github.com/Faultbox/meshras/internal/logger"
	"github.com/Faultbox/meshras/pkg/math"
)

func cmdUsers(args []string) error {
	fs := flag.NewFlagSet("users", flag.ExitOnError)
	flags := config.RegisterFlags(fs)
	count := fs.Int("n", 2, "Number of users to add")
	deform := fs.Bool("deform", false, "Give every user a shape key deformer (private arrays)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshtool users [-n N] [-deform] <mesh.yaml>")
		os.Exit(1)
	}
	if _, err := setup(flags); err != nil {
		return err
	}

	mesh, buckets, err := loadMesh(fs.Arg(0))
	if err != nil {
		return err
	}
	defer mesh.Release()

	var proto rasterizer.Deformer
	if *deform {
		proto, err = liftDeformer(mesh)
		if err != nil {
			return err
		}
	}

	users := make([]rasterizer.UserID, *count)
	var slots []*rasterizer.MeshSlot
	for i := range users {
		users[i] = rasterizer.NewUserID()
		var d rasterizer.Deformer
		if proto != nil {
			d = proto.Replica()
		}
		slots = mesh.AddMeshUser(users[i], slots, d)
	}
	applied := rasterizer.UpdateDeformedSlots(slots)

	fmt.Printf("Mesh:  %s\n", mesh.Name())
	fmt.Printf("Users: %d (%s deformer, %d slots deformed)\n", len(users), deformer.KindOf(proto), applied)
	printBuckets(buckets)

	for _, u := range users {
		mesh.RemoveFromBuckets(u)
	}
	logger.Debug("users removed", zap.Int("users", len(users)))

	fmt.Println("After removal:")
	printBuckets(buckets)
	return nil
}

func printBuckets(buckets *convert.Buckets) {
	for _, b := range buckets.All() {
		private := 0
		for _, ms := range b.Slots() {
			if ms.HasPrivateArray() {
				private++
			}
		}
		fmt.Printf("  %-16s %d slots, %d private\n", b.Material().Name, b.NumSlots(), private)
	}
}

// liftDeformer builds a shape key deformer that raises every vertex along Y
// by half of its authored height.
func liftDeformer(mesh *rasterizer.MeshObject) (rasterizer.Deformer, error) {
	if mesh.NumShapeKeys() == 0 {
		return nil, fmt.Errorf("mesh %q declares no shape keys", mesh.Name())
	}

	height := mesh.Aabb().Size().Y
	offsets := make(map[int]math.Vec3)
	for _, mm := range mesh.Materials() {
		for _, v := range mm.BaseSlot().DisplayArray().Vertices {
			offsets[v.OrigIndex] = math.Vec3{Y: height}
		}
	}

	d, err := deformer.NewShapeKeyDeformer(mesh, []deformer.ShapeKey{{Name: "lift", Offsets: offsets}})
	if err != nil {
		return nil, err
	}
	if err := d.SetWeight(0, 0.5); err != nil {
		return nil, err
	}
	return d, nil
}
