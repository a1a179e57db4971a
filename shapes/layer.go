// Package shapes loads polygon shapefiles into triangle meshes that can be
// drawn directly by ebiten.
package shapes

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/jonas-p/go-shp"
	"golang.org/x/sync/errgroup"

	"github.com/OpticalFlyer/trellis/proj"
)

// Bounds is an axis-aligned box in Web Mercator meters.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// EmptyBounds returns bounds that contain nothing and grow on Extend.
func EmptyBounds() Bounds {
	return Bounds{math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)}
}

func (b Bounds) Empty() bool { return b.MinX > b.MaxX || b.MinY > b.MaxY }

func (b *Bounds) Extend(x, y float64) {
	b.MinX, b.MaxX = min(b.MinX, x), max(b.MaxX, x)
	b.MinY, b.MaxY = min(b.MinY, y), max(b.MaxY, y)
}

func (b *Bounds) Union(o Bounds) {
	if o.Empty() {
		return
	}
	b.Extend(o.MinX, o.MinY)
	b.Extend(o.MaxX, o.MaxY)
}

// Feature is one shapefile record.
type Feature struct {
	// Attributes holds the record's values in Layer.Fields order.
	Attributes []string
	Bounds     Bounds
	Meshes     []Mesh
}

// Contains reports whether the world point (x, y) is inside the feature.
func (f *Feature) Contains(x, y float64) bool {
	for _, m := range f.Meshes {
		if m.Contains(x, y) {
			return true
		}
	}
	return false
}

// Layer holds the polygon features of one shapefile.
type Layer struct {
	Name     string
	Path     string
	Fields   []string
	Features []Feature
	Bounds   Bounds
	// Skipped counts records that were not polygons or failed to
	// triangulate.
	Skipped int
}

// Attribute returns the value of field for the feature at index i.
func (l *Layer) Attribute(i int, field string) (string, bool) {
	col := slices.Index(l.Fields, field)
	if col < 0 || i < 0 || i >= len(l.Features) {
		return "", false
	}
	return l.Features[i].Attributes[col], true
}

// FeatureAt returns the index of the topmost feature containing the world
// point (x, y), or -1.
func (l *Layer) FeatureAt(x, y float64) int {
	for i := len(l.Features) - 1; i >= 0; i-- {
		if l.Features[i].Contains(x, y) {
			return i
		}
	}
	return -1
}

// LoadLayer reads the polygons of the shapefile at path. Coordinates are
// taken as WGS84 longitude/latitude unless the file's bounding box only fits
// Web Mercator meters.
func LoadLayer(path string) (*Layer, error) {
	r, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening shapefile %s: %w", path, err)
	}
	defer r.Close()

	l := &Layer{
		Name:   strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Path:   path,
		Bounds: EmptyBounds(),
	}
	fields := r.Fields()
	for _, f := range fields {
		l.Fields = append(l.Fields, f.String())
	}
	mercator := isMercator(r.BBox())

	for r.Next() {
		n, s := r.Shape()
		poly, ok := s.(*shp.Polygon)
		if !ok {
			l.Skipped++
			continue
		}
		f, err := newFeature(poly, mercator)
		if err != nil {
			slog.Warn("skipping feature", "layer", l.Name, "feature", n, "err", err)
			l.Skipped++
			continue
		}
		f.Attributes = make([]string, len(fields))
		for i := range fields {
			f.Attributes[i] = strings.TrimRight(r.Attribute(i), " \x00")
		}
		l.Bounds.Union(f.Bounds)
		l.Features = append(l.Features, f)
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("reading shapefile %s: %w", path, err)
	}

	slog.Debug("loaded layer", "layer", l.Name, "features", len(l.Features), "skipped", l.Skipped)
	return l, nil
}

// LoadLayers loads every path concurrently, returning the layers in the
// order given. The first failure cancels the remaining loads.
func LoadLayers(ctx context.Context, paths []string) ([]*Layer, error) {
	layers := make([]*Layer, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			l, err := LoadLayer(path)
			if err != nil {
				return err
			}
			layers[i] = l
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return layers, nil
}

func isMercator(box shp.Box) bool {
	return box.MinX < -180 || box.MaxX > 180 || box.MinY < -90 || box.MaxY > 90
}

// newFeature groups the polygon's rings and triangulates them. Shapefile
// outer rings wind clockwise, so with y flipped into world coordinates
// they have a positive signed area and holes a negative one.
func newFeature(p *shp.Polygon, mercator bool) (Feature, error) {
	f := Feature{Bounds: EmptyBounds()}
	var outer []float64
	var holes [][]float64
	flush := func() error {
		if outer == nil {
			return nil
		}
		m, err := Triangulate(outer, holes...)
		if err != nil {
			return err
		}
		f.Meshes = append(f.Meshes, m)
		outer, holes = nil, nil
		return nil
	}

	for i := range p.Parts {
		start, end := int(p.Parts[i]), len(p.Points)
		if i+1 < len(p.Parts) {
			end = int(p.Parts[i+1])
		}
		if start < 0 || start > end || end > len(p.Points) {
			return f, fmt.Errorf("part %d has invalid range %d:%d", i, start, end)
		}
		ring := make([]float64, 0, 2*(end-start))
		for _, pt := range p.Points[start:end] {
			x, y := pt.X, pt.Y
			if !mercator {
				x, y = proj.LatLonToWebMercator(y, x)
			}
			f.Bounds.Extend(x, y)
			wx, wy := proj.WebMercatorToTileCoords(x, y, 0)
			ring = append(ring, wx, wy)
		}
		if outer != nil && signedArea(ring) < 0 {
			holes = append(holes, ring)
			continue
		}
		if err := flush(); err != nil {
			return f, err
		}
		outer = ring
	}
	return f, flush()
}
