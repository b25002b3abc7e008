package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/meshras/internal/config"
	"github.com/Faultbox/meshras/internal/engine/camera"
	"github.com/Faultbox/meshras/internal/engine/rasterizer"
	"github.com/Faultbox/meshras/internal/logger"
)

func cmdSort(args []string) error {
	fs := flag.NewFlagSet("sort", flag.ExitOnError)
	flags := config.RegisterFlags(fs)
	frames := fs.Int("frames", 1, "Number of camera positions around the mesh")
	watch := fs.Bool("watch", false, "Re-sort whenever the config file changes")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshtool sort [-frames N] [-watch] <mesh.yaml>")
		os.Exit(1)
	}

	cfg, err := setup(flags)
	if err != nil {
		return err
	}
	mesh, _, err := loadMesh(fs.Arg(0))
	if err != nil {
		return err
	}
	defer mesh.Release()

	user := rasterizer.NewUserID()
	mesh.AddMeshUser(user, nil, nil)

	if err := runSort(mesh, user, cfg, *frames); err != nil {
		return err
	}
	if !*watch {
		return nil
	}

	path := flags.ConfigPath()
	if path == "" {
		return fmt.Errorf("-watch needs -config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configs, errs, err := config.Watch(ctx, path)
	if err != nil {
		return err
	}
	logger.Info("watching config", zap.String("path", path))

	for {
		select {
		case <-ctx.Done():
			return nil
		case next, ok := <-configs:
			if !ok {
				return nil
			}
			if err := runSort(mesh, user, next, *frames); err != nil {
				logger.Warn("sort failed", zap.Error(err))
			}
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			logger.Warn("config reload failed", zap.Error(err))
		}
	}
}

// runSort orbits a camera around the mesh and sorts the user's slots once
// per frame, printing the resulting triangle order.
func runSort(mesh *rasterizer.MeshObject, user rasterizer.UserID, cfg *config.Config, frames int) error {
	order, err := rasterizer.ParseSortOrder(cfg.Render.SortOrder)
	if err != nil {
		return err
	}

	slots := mesh.UserSlots(user)
	if cfg.Render.SortAlphaOnly {
		slots = mesh.SlotsNeedingSort(user)
	}
	if len(slots) == 0 {
		fmt.Printf("%s: no slots to sort\n", mesh.Name())
		return nil
	}

	cam := camera.NewOrbitCamera()
	cam.FitToBounds(mesh.Aabb())
	if cfg.Camera.Distance > 0 {
		cam.Distance = cfg.Camera.Distance
	}
	cam.Pitch = cfg.Camera.Pitch
	cam.Yaw = cfg.Camera.Yaw

	if frames < 1 {
		frames = 1
	}
	step := 2 * math32.Pi / float32(frames)

	for f := 0; f < frames; f++ {
		view := cam.ViewMatrix()
		eye := cam.Position()
		fmt.Printf("frame %d  eye (%.2f, %.2f, %.2f)  %s\n", f, eye.X, eye.Y, eye.Z, order)

		for _, ms := range slots {
			mesh.SortPolygonsOrdered(ms, view, order)
			array := ms.DisplayArray()
			fmt.Printf("  %-16s", ms.Bucket().Material().Name)
			for t := 0; t < array.TriangleCount(); t++ {
				tri := array.Triangle(t)
				fmt.Printf(" [%d %d %d]", tri[0], tri[1], tri[2])
			}
			fmt.Println()
		}
		cam.Orbit(step, 0)
	}
	return nil
}
