// Command seed loads service areas from a YAML file and upserts them by name.
//
//	seed -file areas.yaml [-replace] [-dry-run]
//
// The file lists areas with their vertices in drawing order:
//
//	areas:
//	  - name: Northside
//	    active: true
//	    coordinates:
//	      - [-27.40, 153.00]
//	      - [-27.40, 153.10]
//	      - [-27.50, 153.10]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/sirupsen/logrus"

	"buildersite/internal/config"
	"buildersite/internal/geo"
	"buildersite/internal/logger"
	"buildersite/internal/repository"
	"buildersite/internal/services"
)

var (
	filePath = flag.String("file", "", "Path to the service-area YAML file (required)")
	replace  = flag.Bool("replace", false, "Delete stored areas that are not in the file")
	dryRun   = flag.Bool("dry-run", false, "Parse and validate only; no DB writes")
)

type seedFile struct {
	Areas []seedArea `yaml:"areas"`
}

type seedArea struct {
	Name        string      `yaml:"name"`
	Active      *bool       `yaml:"active"`
	Coordinates [][]float64 `yaml:"coordinates"`
}

// area is a parsed and validated seed entry.
type area struct {
	Name   string
	Active bool
	Ring   geo.Polygon
}

func main() {
	flag.Parse()
	if *filePath == "" {
		fatalf("-file is required")
	}

	cfg, err := config.Load()
	if err != nil {
		fatalf("config: %v", err)
	}
	if _, err := logger.Setup(logger.Options{Level: cfg.LogLevel, Stdout: true}); err != nil {
		fatalf("logger: %v", err)
	}

	raw, err := os.ReadFile(*filePath)
	if err != nil {
		fatalf("read %s: %v", *filePath, err)
	}
	areas, err := parseAreas(raw)
	if err != nil {
		fatalf("%s: %v", *filePath, err)
	}
	fmt.Printf("Loaded %d service areas from %s\n", len(areas), *filePath)

	if *dryRun {
		for _, a := range areas {
			fmt.Printf("  %-30s active=%-5v vertices=%d\n", a.Name, a.Active, len(a.Ring))
		}
		fmt.Println("Dry run complete. No changes made.")
		return
	}

	db, err := config.OpenDB(cfg)
	if err != nil {
		fatalf("database: %v", err)
	}
	svc := services.NewServiceAreaService(repository.NewServiceAreaRepository(db))

	created, updated, deleted, err := apply(context.Background(), svc, areas, *replace)
	if err != nil {
		fatalf("seed failed: %v", err)
	}
	fmt.Printf("Done: %d created, %d updated, %d deleted\n", created, updated, deleted)
}

// parseAreas decodes the file and assembles every ring through a Draft, so a
// bad vertex is reported with the area name and its position.
func parseAreas(raw []byte) ([]area, error) {
	var f seedFile
	if err := yaml.UnmarshalWithOptions(raw, &f, yaml.DisallowUnknownField()); err != nil {
		return nil, err
	}
	if len(f.Areas) == 0 {
		return nil, fmt.Errorf("no areas defined")
	}

	seen := make(map[string]bool, len(f.Areas))
	out := make([]area, 0, len(f.Areas))
	for i, sa := range f.Areas {
		if sa.Name == "" {
			return nil, fmt.Errorf("area %d: name is required", i)
		}
		if seen[sa.Name] {
			return nil, fmt.Errorf("area %q: defined twice", sa.Name)
		}
		seen[sa.Name] = true

		var d geo.Draft
		for j, c := range sa.Coordinates {
			if len(c) != 2 {
				return nil, fmt.Errorf("area %q: vertex %d: want [lat, lon], got %d values", sa.Name, j, len(c))
			}
			d.Add(geo.Point{Lat: c[0], Lon: c[1]})
		}
		ring, err := d.Polygon()
		if err != nil {
			return nil, fmt.Errorf("area %q: %w", sa.Name, err)
		}

		active := true
		if sa.Active != nil {
			active = *sa.Active
		}
		out = append(out, area{Name: sa.Name, Active: active, Ring: ring})
	}
	return out, nil
}

func apply(ctx context.Context, svc *services.ServiceAreaService, areas []area, replace bool) (created, updated, deleted int, err error) {
	keep := make(map[string]bool, len(areas))
	for _, a := range areas {
		stored, isNew, err := svc.Upsert(ctx, a.Name, a.Ring, a.Active)
		if err != nil {
			return created, updated, deleted, fmt.Errorf("area %q: %w", a.Name, err)
		}
		keep[stored.Name] = true
		if isNew {
			created++
		} else {
			updated++
		}
		logrus.WithFields(logrus.Fields{
			"service_area_id": stored.ID,
			"name":            stored.Name,
			"created":         isNew,
		}).Info("Seeded service area")
	}

	if !replace {
		return created, updated, deleted, nil
	}
	all, err := svc.List(ctx, false)
	if err != nil {
		return created, updated, deleted, err
	}
	for _, stored := range all {
		if keep[stored.Name] {
			continue
		}
		if err := svc.Delete(ctx, stored.ID); err != nil {
			return created, updated, deleted, fmt.Errorf("delete %q: %w", stored.Name, err)
		}
		deleted++
	}
	return created, updated, deleted, nil
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "seed: "+format+"\n", args...)
	os.Exit(1)
}
