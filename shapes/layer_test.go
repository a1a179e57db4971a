package shapes

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jonas-p/go-shp"

	"github.com/OpticalFlyer/trellis/proj"
)

type record struct {
	name  string
	parts [][]shp.Point
}

// writePolygons writes a polygon shapefile with a NAME attribute.
func writePolygons(t *testing.T, name string, records ...record) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name+".shp")
	w, err := shp.Create(path, shp.POLYGON)
	if err != nil {
		t.Fatalf("creating shapefile: %v", err)
	}
	if err := w.SetFields([]shp.Field{shp.StringField("NAME", 25)}); err != nil {
		t.Fatalf("setting fields: %v", err)
	}
	for _, r := range records {
		poly := shp.Polygon(*shp.NewPolyLine(r.parts))
		row := w.Write(&poly)
		if err := w.WriteAttribute(int(row), 0, r.name); err != nil {
			t.Fatalf("writing attribute: %v", err)
		}
	}
	w.Close()
	renameDBF(t, path)
	return path
}

// renameDBF moves the attribute table go-shp writes as "<base>dbf" to the
// "<base>.dbf" name its reader opens.
func renameDBF(t *testing.T, path string) {
	t.Helper()
	base := strings.TrimSuffix(path, ".shp")
	if _, err := os.Stat(base + "dbf"); errors.Is(err, os.ErrNotExist) {
		return
	}
	if err := os.Rename(base+"dbf", base+".dbf"); err != nil {
		t.Fatalf("renaming attribute table: %v", err)
	}
}

// Outer rings wind clockwise and holes counter-clockwise.
var (
	squareWithHole = record{"square", [][]shp.Point{
		{{X: -1, Y: -1}, {X: -1, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: -1}},
		{{X: -0.5, Y: -0.5}, {X: 0.5, Y: -0.5}, {X: 0.5, Y: 0.5}, {X: -0.5, Y: 0.5}, {X: -0.5, Y: -0.5}},
	}}
	twoIslands = record{"islands", [][]shp.Point{
		{{X: 2, Y: 2}, {X: 2, Y: 3}, {X: 3, Y: 2}, {X: 2, Y: 2}},
		{{X: 4, Y: 2}, {X: 4, Y: 3}, {X: 5, Y: 2}, {X: 4, Y: 2}},
	}}
)

func TestLoadLayer(t *testing.T) {
	path := writePolygons(t, "parcels", squareWithHole, twoIslands)
	l, err := LoadLayer(path)
	if err != nil {
		t.Fatalf("LoadLayer: %v", err)
	}
	if l.Name != "parcels" || l.Path != path || l.Skipped != 0 {
		t.Errorf("layer = %q at %q, %d skipped", l.Name, l.Path, l.Skipped)
	}
	if diff := cmp.Diff([]string{"NAME"}, l.Fields); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
	if len(l.Features) != 2 {
		t.Fatalf("features = %d; want 2", len(l.Features))
	}

	var meshes, triangles []int
	for _, f := range l.Features {
		meshes = append(meshes, len(f.Meshes))
		for _, m := range f.Meshes {
			triangles = append(triangles, m.Triangles())
		}
	}
	if diff := cmp.Diff([]int{1, 2}, meshes); diff != "" {
		t.Errorf("meshes per feature mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{8, 1, 1}, triangles); diff != "" {
		t.Errorf("triangles per mesh mismatch (-want +got):\n%s", diff)
	}

	for i, want := range []string{"square", "islands"} {
		if got, ok := l.Attribute(i, "NAME"); !ok || got != want {
			t.Errorf("Attribute(%d, NAME) = %q, %v; want %q", i, got, ok, want)
		}
	}
	if _, ok := l.Attribute(0, "MISSING"); ok {
		t.Error("Attribute found a missing field")
	}

	minX, minY := proj.LatLonToWebMercator(-1, -1)
	maxX, maxY := proj.LatLonToWebMercator(3, 5)
	want := Bounds{minX, minY, maxX, maxY}
	if diff := cmp.Diff(want, l.Bounds, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
		t.Errorf("bounds mismatch (-want +got):\n%s", diff)
	}
}

func TestLayerFeatureAt(t *testing.T) {
	l, err := LoadLayer(writePolygons(t, "parcels", squareWithHole, twoIslands))
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name     string
		lat, lon float64
		want     int
	}{
		{"in square", 0, 0.75, 0},
		{"in hole", 0, 0, -1},
		{"in second island", 2.2, 4.2, 1},
		{"nowhere", 10, 10, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := proj.LatLonToTileCoords(tt.lat, tt.lon, 0)
			if got := l.FeatureAt(x, y); got != tt.want {
				t.Errorf("FeatureAt = %d; want %d", got, tt.want)
			}
		})
	}
}

func TestLoadLayerMercator(t *testing.T) {
	x0, y0 := proj.LatLonToWebMercator(-1, -1)
	x1, y1 := proj.LatLonToWebMercator(1, 1)
	path := writePolygons(t, "meters", record{"m", [][]shp.Point{
		{{X: x0, Y: y0}, {X: x0, Y: y1}, {X: x1, Y: y1}, {X: x1, Y: y0}, {X: x0, Y: y0}},
	}})
	l, err := LoadLayer(path)
	if err != nil {
		t.Fatal(err)
	}
	want := Bounds{x0, y0, x1, y1}
	if diff := cmp.Diff(want, l.Bounds, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
		t.Errorf("meter coordinates were reprojected (-want +got):\n%s", diff)
	}
}

func TestLoadLayerSkipsOtherShapes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wells.shp")
	w, err := shp.Create(path, shp.POINT)
	if err != nil {
		t.Fatal(err)
	}
	w.Write(&shp.Point{X: 1, Y: 1})
	w.Close()

	l, err := LoadLayer(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Features) != 0 || l.Skipped != 1 {
		t.Errorf("features, skipped = %d, %d; want 0, 1", len(l.Features), l.Skipped)
	}
	if !l.Bounds.Empty() {
		t.Errorf("bounds = %+v; want empty", l.Bounds)
	}
}

func TestLoadLayers(t *testing.T) {
	a := writePolygons(t, "a", squareWithHole)
	b := writePolygons(t, "b", twoIslands)

	t.Run("keeps order", func(t *testing.T) {
		layers, err := LoadLayers(context.Background(), []string{b, a})
		if err != nil {
			t.Fatal(err)
		}
		var names []string
		for _, l := range layers {
			names = append(names, l.Name)
		}
		if diff := cmp.Diff([]string{"b", "a"}, names); diff != "" {
			t.Errorf("names mismatch (-want +got):\n%s", diff)
		}
	})
	t.Run("missing file", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "missing.shp")
		if _, err := LoadLayers(context.Background(), []string{a, missing}); err == nil {
			t.Error("LoadLayers succeeded with a missing file")
		}
	})
	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := LoadLayers(ctx, []string{a, b}); !errors.Is(err, context.Canceled) {
			t.Errorf("err = %v; want context.Canceled", err)
		}
	})
}

func TestBounds(t *testing.T) {
	b := EmptyBounds()
	if !b.Empty() {
		t.Fatal("EmptyBounds is not empty")
	}
	b.Union(EmptyBounds())
	b.Extend(1, 2)
	b.Union(Bounds{-1, 0, 0, 5})
	if diff := cmp.Diff(Bounds{-1, 0, 1, 5}, b); diff != "" {
		t.Errorf("bounds mismatch (-want +got):\n%s", diff)
	}
}
