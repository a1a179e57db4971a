// Package mapview provides a slippy map widget that draws vector layers.
package mapview

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/OpticalFlyer/trellis/layout"
	"github.com/OpticalFlyer/trellis/proj"
	"github.com/OpticalFlyer/trellis/scene"
	"github.com/OpticalFlyer/trellis/shapes"
)

const (
	// TileSize is the size of a map tile in pixels.
	TileSize = 256
	// MaxZoomLevel is the deepest zoom a MapView allows.
	MaxZoomLevel = 19
)

// Style holds the colors a MapView draws with.
type Style struct {
	Background scene.Drawable
	// Selection fills the selected feature.
	Selection color.Color
	// Grid outlines tiles when the tile grid is shown.
	Grid color.Color
}

// MapLayer is a layer drawn by a MapView.
type MapLayer struct {
	Layer   *shapes.Layer
	Color   color.Color
	Visible bool
}

// MapView shows shapes layers over a Web Mercator plane. Dragging pans,
// the wheel or a two-finger pinch zooms around the pointer and clicking
// selects the feature under the pointer.
type MapView struct {
	layout.Widget

	style Style

	centerLat, centerLon float64
	zoom                 int
	showGrid             bool

	layers []*MapLayer

	selLayer, selFeature int
	onSelect             func(l *MapLayer, feature int)

	drag  *scene.DragListener
	click *scene.ClickListener
}

// New returns a map view centered on lat/lon at zoom.
func New(lat, lon float64, zoom int, style Style) *MapView {
	m := &MapView{style: style, selLayer: -1, selFeature: -1}
	m.Init(m)
	m.SetCenter(lat, lon)
	m.SetZoom(zoom)

	m.click = scene.NewClickListener(func(e *scene.InputEvent, x, y float64) {
		m.selectAt(x, y)
	})
	m.drag = scene.NewDragListener()
	m.drag.OnDragStart = func(e *scene.InputEvent, x, y float64, pointer int) {
		m.click.Cancel()
	}
	m.drag.OnDrag = func(e *scene.InputEvent, x, y float64, pointer int) {
		m.PanBy(m.drag.DeltaX(), m.drag.DeltaY())
	}
	m.AddListener(m.click)
	m.AddListener(m.drag)
	m.AddListener(&scene.InputListener{
		OnTouchDown: func(e *scene.InputEvent, x, y float64, pointer, button int) bool {
			e.Stage.SetKeyboardFocus(m)
			return false
		},
		OnScrolled: func(e *scene.InputEvent, x, y, amountX, amountY float64) bool {
			switch {
			case amountY < 0:
				m.ZoomAtPoint(true, x, y)
			case amountY > 0:
				m.ZoomAtPoint(false, x, y)
			}
			return true
		},
		OnKeyDown: m.keyDown,
	})
	m.AddListener(newPinchListener(m))
	m.SetSize(m.PrefWidth(), m.PrefHeight())
	return m
}

func (m *MapView) keyDown(e *scene.InputEvent, key ebiten.Key) bool {
	switch key {
	case ebiten.KeyArrowLeft, ebiten.KeyA:
		m.Pan(PanLeft)
	case ebiten.KeyArrowRight, ebiten.KeyD:
		m.Pan(PanRight)
	case ebiten.KeyArrowUp, ebiten.KeyW:
		m.Pan(PanUp)
	case ebiten.KeyArrowDown, ebiten.KeyS:
		m.Pan(PanDown)
	case ebiten.KeyEqual, ebiten.KeyNumpadAdd:
		m.ZoomIn()
	case ebiten.KeyMinus, ebiten.KeyNumpadSubtract:
		m.ZoomOut()
	default:
		return false
	}
	return true
}

func (m *MapView) PrefWidth() float64  { return TileSize }
func (m *MapView) PrefHeight() float64 { return TileSize }
func (m *MapView) MinWidth() float64   { return 0 }
func (m *MapView) MinHeight() float64  { return 0 }

// Center returns the latitude and longitude at the middle of the view.
func (m *MapView) Center() (lat, lon float64) { return m.centerLat, m.centerLon }

// SetCenter moves the middle of the view, clamping to the mapped world.
func (m *MapView) SetCenter(lat, lon float64) {
	m.centerLat = max(proj.MinLat, min(lat, proj.MaxLat))
	m.centerLon = max(-180, min(lon, 180))
}

func (m *MapView) Zoom() int { return m.zoom }

// SetZoom sets the zoom level, clamped to [0, MaxZoomLevel].
func (m *MapView) SetZoom(zoom int) {
	m.zoom = max(0, min(zoom, MaxZoomLevel))
}

// SetShowTileGrid outlines and labels the tiles under the view.
func (m *MapView) SetShowTileGrid(show bool) { m.showGrid = show }

// AddLayer draws l above the existing layers. A nil color picks one from
// the layer palette.
func (m *MapView) AddLayer(l *shapes.Layer, clr color.Color) *MapLayer {
	if clr == nil {
		clr = LayerColor(len(m.layers))
	}
	ml := &MapLayer{Layer: l, Color: clr, Visible: true}
	m.layers = append(m.layers, ml)
	return ml
}

// RemoveLayer removes l, clearing the selection if it was on l.
func (m *MapView) RemoveLayer(l *MapLayer) bool {
	for i, ml := range m.layers {
		if ml != l {
			continue
		}
		m.layers = append(m.layers[:i], m.layers[i+1:]...)
		switch {
		case m.selLayer == i:
			m.ClearSelection()
		case m.selLayer > i:
			m.selLayer--
		}
		return true
	}
	return false
}

func (m *MapView) Layers() []*MapLayer { return m.layers }

// OnSelect registers fn to be called when a click selects a feature or
// clears the selection, in which case l is nil and feature is -1.
func (m *MapView) OnSelect(fn func(l *MapLayer, feature int)) { m.onSelect = fn }

// Selection returns the selected layer and feature index, or nil and -1.
func (m *MapView) Selection() (*MapLayer, int) {
	if m.selLayer < 0 {
		return nil, -1
	}
	return m.layers[m.selLayer], m.selFeature
}

func (m *MapView) ClearSelection() {
	m.selLayer, m.selFeature = -1, -1
}

// FeatureAt returns the topmost visible feature under the local point.
func (m *MapView) FeatureAt(x, y float64) (*MapLayer, int) {
	layer, feature := m.featureAt(x, y)
	if layer < 0 {
		return nil, -1
	}
	return m.layers[layer], feature
}

func (m *MapView) featureAt(x, y float64) (layer, feature int) {
	tx, ty := m.ScreenToWorld(x, y)
	n := proj.TileCount(m.zoom)
	wx, wy := tx/n, ty/n
	for i := len(m.layers) - 1; i >= 0; i-- {
		if !m.layers[i].Visible {
			continue
		}
		if f := m.layers[i].Layer.FeatureAt(wx, wy); f >= 0 {
			return i, f
		}
	}
	return -1, -1
}

func (m *MapView) selectAt(x, y float64) {
	m.selLayer, m.selFeature = m.featureAt(x, y)
	if m.onSelect != nil {
		l, f := m.Selection()
		m.onSelect(l, f)
	}
}

// LayerColor returns the i-th color of a palette that keeps neighboring
// layers apart in hue.
func LayerColor(i int) color.Color {
	hue := math.Mod(float64(i)*137.508, 360)
	r, g, b := colorful.Hcl(hue, 0.45, 0.65).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xb4}
}

// Draw draws the background, then every visible layer clipped to the view.
func (m *MapView) Draw(b *scene.Batch, parentAlpha float32) {
	m.Validate()
	alpha := parentAlpha * m.Alpha()
	if m.style.Background != nil {
		m.style.Background.Draw(b, m.X(), m.Y(), m.Width(), m.Height(), alpha)
	}
	if !b.PushClip(m.X(), m.Y(), m.Width(), m.Height()) {
		return
	}
	defer b.PopClip()

	originX, originY := m.worldOrigin()
	scale := proj.TileCount(m.zoom) * TileSize
	offX, offY := m.X()-originX, m.Y()-originY
	view := m.ViewBounds()
	for i, ml := range m.layers {
		if !ml.Visible {
			continue
		}
		clr := scene.WithAlpha(ml.Color, alpha)
		for j := range ml.Layer.Features {
			f := &ml.Layer.Features[j]
			if !intersects(f.Bounds, view) {
				continue
			}
			fill := clr
			if i == m.selLayer && j == m.selFeature && m.style.Selection != nil {
				fill = scene.WithAlpha(m.style.Selection, alpha)
			}
			for _, mesh := range f.Meshes {
				b.DrawTriangles(mesh.Points, mesh.Indices, offX, offY, scale, fill)
			}
		}
	}
	if m.showGrid {
		m.drawTileGrid(b)
	}
}

// ViewBounds returns the area under the view in Web Mercator meters.
func (m *MapView) ViewBounds() shapes.Bounds {
	minTX, minTY := m.ScreenToWorld(0, 0)
	maxTX, maxTY := m.ScreenToWorld(m.Width(), m.Height())
	minX, maxY := proj.TileCoordsToWebMercator(minTX, minTY, m.zoom)
	maxX, minY := proj.TileCoordsToWebMercator(maxTX, maxTY, m.zoom)
	return shapes.Bounds{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}

func intersects(a, b shapes.Bounds) bool {
	return a.MinX <= b.MaxX && a.MaxX >= b.MinX && a.MinY <= b.MaxY && a.MaxY >= b.MinY
}
