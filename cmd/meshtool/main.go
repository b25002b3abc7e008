// meshtool inspects mesh descriptions: conversion stats, depth sorting from
// an orbit camera, and mesh user bookkeeping.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/Faultbox/meshras/internal/config"
	"github.com/Faultbox/meshras/internal/convert"
	"github.com/Faultbox/meshras/internal/engine/rasterizer"
	"github.com/Faultbox/meshras/internal/logger"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "stats", "info":
		err = cmdStats(args)
	case "sort":
		err = cmdSort(args)
	case "users":
		err = cmdUsers(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`meshtool - mesh rasterization inspector

Usage:
  meshtool <command> [options] <mesh.yaml>

Commands:
  stats <mesh.yaml>...                 Show materials, vertex sharing and bounds
  sort [-frames N] [-watch] <mesh.yaml> Depth sort alpha slots from an orbit camera
  users [-n N] [-deform] <mesh.yaml>   Add and remove mesh users, report slots

Common options:
  -config <file>       Config file (.yaml or .toml)
  -sort-order <order>  back_to_front or front_to_back
  -debug               Debug logging
  -log-file <file>     Also log to a rotating file

Examples:
  meshtool stats testdata/crate.yaml
  meshtool sort -frames 8 -sort-order front_to_back crate.yaml
  meshtool sort -watch -config meshtool.yaml crate.yaml
  meshtool users -n 3 -deform crate.yaml`)
}

// setup loads config with flag overrides and starts logging.
func setup(flags *config.Flags) (*config.Config, error) {
	cfg, err := config.Load(flags)
	if err != nil {
		return nil, err
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, nil
}

// loadMesh converts the mesh description at path into a fresh bucket set.
func loadMesh(path string) (*rasterizer.MeshObject, *convert.Buckets, error) {
	desc, err := convert.LoadFile(path)
	if err != nil {
		return nil, nil, err
	}
	buckets := convert.NewBuckets()
	mesh, err := convert.Convert(desc, buckets)
	if err != nil {
		return nil, nil, err
	}
	return mesh, buckets, nil
}

func cmdStats(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	flags := config.RegisterFlags(fs)
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshtool stats <mesh.yaml>...")
		os.Exit(1)
	}
	if _, err := setup(flags); err != nil {
		return err
	}

	for _, path := range fs.Args() {
		desc, err := convert.LoadFile(path)
		if err != nil {
			return err
		}
		mesh, err := convert.Convert(desc, convert.NewBuckets())
		if err != nil {
			return err
		}
		printStats(convert.Summarize(mesh, desc.Meta))
	}
	return nil
}

func printStats(s convert.Stats) {
	fmt.Printf("Mesh:      %s\n", s.Name)
	fmt.Printf("Polygons:  %d\n", s.Polygons)
	fmt.Printf("Vertices:  %d stored, %d authored (%.2f per origin)\n", s.TotalVerts, s.Origins, s.SharedRatio)
	fmt.Printf("Triangles: %d\n", s.TotalTris)
	fmt.Printf("Collider:  %v\n", s.Colliders)
	keys := make([]string, 0, len(s.Meta))
	for k := range s.Meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("Meta:      %s = %s\n", k, s.Meta[k])
	}
	fmt.Printf("Bounds:    (%.3f, %.3f, %.3f) - (%.3f, %.3f, %.3f)\n",
		s.Aabb.Min.X, s.Aabb.Min.Y, s.Aabb.Min.Z, s.Aabb.Max.X, s.Aabb.Max.Y, s.Aabb.Max.Z)
	fmt.Println()
	fmt.Println("Materials:")
	for i, m := range s.Materials {
		zsort := ""
		if m.ZSort {
			zsort = " zsort"
		}
		fmt.Printf("  %2d %-16s %-16s %-6s%s  %d verts, %d tris\n",
			i, m.Name, m.Texture, m.Blend, zsort, m.Vertices, m.Triangles)
	}
	fmt.Println()
}
