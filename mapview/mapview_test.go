package mapview

import (
	"image/color"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/OpticalFlyer/trellis/proj"
	"github.com/OpticalFlyer/trellis/scene"
	"github.com/OpticalFlyer/trellis/shapes"
)

const leftButton = int(ebiten.MouseButtonLeft)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

// newView returns a 512x512 view of the whole world at zoom 1 on an
// 800x600 stage.
func newView() (*scene.Stage, *MapView) {
	s := scene.NewStage(800, 600)
	m := New(0, 0, 1, Style{Selection: color.White, Grid: color.White})
	s.AddActor(m)
	m.SetBounds(0, 0, 512, 512)
	return s, m
}

// parcel is a layer with one square feature covering world x 0.5..0.75
// and y 0.25..0.5 at zoom 0.
func parcel(t *testing.T) *shapes.Layer {
	t.Helper()
	mesh, err := shapes.Triangulate([]float64{0.5, 0.25, 0.75, 0.25, 0.75, 0.5, 0.5, 0.5})
	if err != nil {
		t.Fatal(err)
	}
	minX, maxY := proj.TileCoordsToWebMercator(0.5, 0.25, 0)
	maxX, minY := proj.TileCoordsToWebMercator(0.75, 0.5, 0)
	return &shapes.Layer{
		Name:   "parcel",
		Fields: []string{"NAME"},
		Bounds: shapes.Bounds{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY},
		Features: []shapes.Feature{{
			Attributes: []string{"lot 1"},
			Bounds:     shapes.Bounds{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY},
			Meshes:     []shapes.Mesh{mesh},
		}},
	}
}

func TestPanBy(t *testing.T) {
	tests := []struct {
		name             string
		dx, dy           float64
		wantLat, wantLon float64
	}{
		{"west edge", 256, 0, 0, -180},
		{"east", -128, 0, 0, 90},
		{"clamped north", 0, 10000, proj.MaxLat, 0},
		{"clamped south", 0, -10000, proj.MinLat, 0},
		{"clamped east", -10000, 0, 0, 180},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, m := newView()
			m.PanBy(tt.dx, tt.dy)
			lat, lon := m.Center()
			if !near(lat, tt.wantLat) || !near(lon, tt.wantLon) {
				t.Errorf("center = (%v, %v); want (%v, %v)", lat, lon, tt.wantLat, tt.wantLon)
			}
		})
	}
}

func TestPan(t *testing.T) {
	_, m := newView()
	m.Pan(PanLeft)
	wantX, _ := proj.LatLonToTileCoords(0, 0, 1)
	lat, lon := m.Center()
	gotX, _ := proj.LatLonToTileCoords(lat, lon, 1)
	if !near(gotX, wantX-float64(PanStep)/TileSize) {
		t.Errorf("center tile x = %v; want %v", gotX, wantX-float64(PanStep)/TileSize)
	}
	m.Pan(PanRight)
	if lat, lon := m.Center(); !near(lat, 0) || !near(lon, 0) {
		t.Errorf("center after panning back = (%v, %v)", lat, lon)
	}
}

func TestZoomLimits(t *testing.T) {
	_, m := newView()
	m.SetZoom(MaxZoomLevel)
	m.ZoomIn()
	if m.Zoom() != MaxZoomLevel {
		t.Errorf("zoom = %d; want %d", m.Zoom(), MaxZoomLevel)
	}
	m.SetZoom(-4)
	m.ZoomOut()
	if m.Zoom() != 0 {
		t.Errorf("zoom = %d; want 0", m.Zoom())
	}
	m.SetZoom(40)
	if m.Zoom() != MaxZoomLevel {
		t.Errorf("SetZoom(40) = %d", m.Zoom())
	}
}

func TestZoomAtPoint(t *testing.T) {
	_, m := newView()
	wx, wy := m.ScreenToWorld(384, 256)
	m.ZoomAtPoint(true, 384, 256)
	if m.Zoom() != 2 {
		t.Fatalf("zoom = %d; want 2", m.Zoom())
	}
	gx, gy := m.ScreenToWorld(384, 256)
	if !near(gx, wx*2) || !near(gy, wy*2) {
		t.Errorf("world under pointer = (%v, %v); want (%v, %v)", gx, gy, wx*2, wy*2)
	}

	m.ZoomAtPoint(false, 384, 256)
	gx, gy = m.ScreenToWorld(384, 256)
	if m.Zoom() != 1 || !near(gx, wx) || !near(gy, wy) {
		t.Errorf("zoom out = %d at (%v, %v); want 1 at (%v, %v)", m.Zoom(), gx, gy, wx, wy)
	}

	m.SetZoom(0)
	m.SetCenter(0, 0)
	m.ZoomAtPoint(true, 0, 0)
	if m.Zoom() != 0 {
		t.Error("zoomed at a point outside the world")
	}
}

func TestMapViewInput(t *testing.T) {
	t.Run("drag pans without selecting", func(t *testing.T) {
		s, m := newView()
		selections := 0
		m.OnSelect(func(*MapLayer, int) { selections++ })
		s.TouchDown(100, 100, 0, leftButton)
		s.TouchDragged(228, 100, 0)
		s.TouchUp(228, 100, 0, leftButton)
		if _, lon := m.Center(); !near(lon, -90) {
			t.Errorf("center lon = %v; want -90", lon)
		}
		if selections != 0 {
			t.Errorf("drag selected %d times", selections)
		}
	})
	t.Run("wheel zooms", func(t *testing.T) {
		s, m := newView()
		s.MouseMoved(384, 256)
		if !s.Scrolled(0, -1) || m.Zoom() != 2 {
			t.Errorf("zoom after scrolling up = %d; want 2", m.Zoom())
		}
		s.Scrolled(0, 1)
		if m.Zoom() != 1 {
			t.Errorf("zoom after scrolling down = %d; want 1", m.Zoom())
		}
	})
	t.Run("keys", func(t *testing.T) {
		s, m := newView()
		s.TouchDown(10, 10, 0, leftButton)
		s.TouchUp(10, 10, 0, leftButton)
		if s.KeyboardFocus() != scene.Actor(m) {
			t.Fatal("press did not focus the map")
		}
		s.KeyDown(ebiten.KeyEqual)
		if m.Zoom() != 2 {
			t.Errorf("zoom = %d; want 2", m.Zoom())
		}
		s.KeyDown(ebiten.KeyArrowLeft)
		if _, lon := m.Center(); lon >= 0 {
			t.Errorf("lon = %v after panning left; want west of 0", lon)
		}
		if s.KeyDown(ebiten.KeyQ) {
			t.Error("unbound key was handled")
		}
	})
}

func TestPinchZoom(t *testing.T) {
	s, m := newView()
	selections := 0
	m.OnSelect(func(*MapLayer, int) { selections++ })

	s.TouchDown(200, 256, 1, 0)
	s.TouchDown(300, 256, 2, 0)
	s.TouchDragged(330, 256, 2)
	if m.Zoom() != 2 {
		t.Errorf("zoom after spreading = %d; want 2", m.Zoom())
	}
	s.TouchDragged(320, 256, 2)
	if m.Zoom() != 2 {
		t.Errorf("zoom after a small move = %d; want 2", m.Zoom())
	}
	s.TouchDragged(250, 256, 2)
	if m.Zoom() != 1 {
		t.Errorf("zoom after pinching = %d; want 1", m.Zoom())
	}
	s.TouchUp(250, 256, 2, 0)
	s.TouchUp(200, 256, 1, 0)
	if selections != 0 {
		t.Errorf("pinch selected %d times", selections)
	}
}

func TestSelection(t *testing.T) {
	s, m := newView()
	ml := m.AddLayer(parcel(t), nil)
	type selection struct {
		Name    string
		Feature int
	}
	var got []selection
	m.OnSelect(func(l *MapLayer, feature int) {
		name := ""
		if l != nil {
			name = l.Layer.Name
		}
		got = append(got, selection{name, feature})
	})

	s.TouchDown(320, 192, 0, leftButton)
	s.TouchUp(320, 192, 0, leftButton)
	s.TouchDown(100, 100, 0, leftButton)
	s.TouchUp(100, 100, 0, leftButton)
	s.TouchDown(320, 192, 0, leftButton)
	s.TouchUp(320, 192, 0, leftButton)
	want := []selection{{"parcel", 0}, {"", -1}, {"parcel", 0}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("selections mismatch (-want +got):\n%s", diff)
	}

	ml.Visible = false
	if l, f := m.FeatureAt(320, 192); l != nil || f != -1 {
		t.Errorf("hidden layer hit: %v, %d", l, f)
	}
	if !m.RemoveLayer(ml) {
		t.Fatal("RemoveLayer failed")
	}
	if l, f := m.Selection(); l != nil || f != -1 {
		t.Errorf("selection survived removing its layer: %v, %d", l, f)
	}
	if m.RemoveLayer(ml) {
		t.Error("removed a layer twice")
	}
}

func TestFitBounds(t *testing.T) {
	_, m := newView()
	minX, minY := proj.LatLonToWebMercator(-1, -1)
	maxX, maxY := proj.LatLonToWebMercator(1, 1)
	m.FitBounds(shapes.Bounds{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY})
	if m.Zoom() != 8 {
		t.Errorf("zoom = %d; want 8", m.Zoom())
	}
	if lat, lon := m.Center(); !near(lat, 0) || !near(lon, 0) {
		t.Errorf("center = (%v, %v); want (0, 0)", lat, lon)
	}

	m.FitBounds(shapes.EmptyBounds())
	if m.Zoom() != 8 {
		t.Error("empty bounds changed the zoom")
	}
	m.FitBounds(shapes.Bounds{MinX: minX, MinY: minY, MaxX: minX, MaxY: minY})
	if m.Zoom() != MaxZoomLevel {
		t.Errorf("zoom for a point = %d; want %d", m.Zoom(), MaxZoomLevel)
	}
}

func TestVisibleTiles(t *testing.T) {
	tests := []struct {
		name string
		zoom int
		want TileRange
	}{
		{"whole world", 1, TileRange{0, 1, 0, 1}},
		{"zoomed", 3, TileRange{3, 5, 3, 5}},
		{"clamped at zoom 0", 0, TileRange{0, 0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, m := newView()
			m.SetZoom(tt.zoom)
			got := m.VisibleTiles()
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("tiles mismatch (-want +got):\n%s", diff)
			}
		})
	}
	if n := (TileRange{3, 5, 3, 5}).Count(); n != 9 {
		t.Errorf("Count = %d; want 9", n)
	}
}

func TestViewBounds(t *testing.T) {
	_, m := newView()
	b := m.ViewBounds()
	want := shapes.Bounds{MinX: -proj.MaxMeters, MinY: -proj.MaxMeters, MaxX: proj.MaxMeters, MaxY: proj.MaxMeters}
	if !near(b.MinX, want.MinX) || !near(b.MaxY, want.MaxY) || !near(b.MaxX, want.MaxX) || !near(b.MinY, want.MinY) {
		t.Errorf("view bounds = %+v; want %+v", b, want)
	}
}

func TestLayerColor(t *testing.T) {
	a, b := LayerColor(0), LayerColor(1)
	if a == b {
		t.Error("neighboring layers share a color")
	}
	if c := a.(color.NRGBA); c.A != 0xb4 {
		t.Errorf("alpha = %#x; want 0xb4", c.A)
	}
	_, m := newView()
	if got := m.AddLayer(parcel(t), nil).Color; got != a {
		t.Errorf("first layer color = %v; want %v", got, a)
	}
}
