package mapview

import (
	"math"

	"github.com/OpticalFlyer/trellis/proj"
	"github.com/OpticalFlyer/trellis/shapes"
)

// PanDirection represents a direction to pan the map
type PanDirection int

const (
	PanLeft PanDirection = iota
	PanRight
	PanUp
	PanDown
)

// PanStep is the distance in pixels moved by Pan.
const PanStep = 50

// Pan moves the view one step in the given direction.
func (m *MapView) Pan(dir PanDirection) {
	switch dir {
	case PanLeft:
		m.PanBy(PanStep, 0)
	case PanRight:
		m.PanBy(-PanStep, 0)
	case PanUp:
		m.PanBy(0, PanStep)
	case PanDown:
		m.PanBy(0, -PanStep)
	}
}

// PanBy moves the map by pixel offsets, the way a drag does: positive dx
// moves the map east so the view shows more of the west, positive dy moves
// it south.
func (m *MapView) PanBy(dx, dy float64) {
	cx, cy := proj.LatLonToTileCoords(m.centerLat, m.centerLon, m.zoom)
	n := proj.TileCount(m.zoom)

	// No wrapping around the antimeridian.
	cx = max(0, min(n, cx-dx/TileSize))
	cy = max(0, min(n, cy-dy/TileSize))
	m.setCenterTile(cx, cy)
}

func (m *MapView) setCenterTile(tileX, tileY float64) {
	lat, lon := proj.TileCoordsToLatLon(tileX, tileY, m.zoom)
	m.SetCenter(lat, lon)
}

// ZoomIn increases the zoom level if not at max zoom
func (m *MapView) ZoomIn() {
	if m.zoom < MaxZoomLevel {
		m.zoom++
	}
}

// ZoomOut decreases the zoom level if not at minimum zoom
func (m *MapView) ZoomOut() {
	if m.zoom > 0 {
		m.zoom--
	}
}

// ScreenToWorld converts a local point to tile coordinates at the current
// zoom.
func (m *MapView) ScreenToWorld(x, y float64) (tileX, tileY float64) {
	cx, cy := proj.LatLonToTileCoords(m.centerLat, m.centerLon, m.zoom)
	tileX = cx + (x-m.Width()/2)/TileSize
	tileY = cy + (y-m.Height()/2)/TileSize
	return tileX, tileY
}

// worldOrigin returns the world pixel at the view's top-left corner.
func (m *MapView) worldOrigin() (x, y float64) {
	tx, ty := m.ScreenToWorld(0, 0)
	return tx * TileSize, ty * TileSize
}

// ZoomAtPoint zooms one level in or out, keeping the world point under the
// local point (x, y) in place. Points outside the world are ignored.
func (m *MapView) ZoomAtPoint(zoomIn bool, x, y float64) {
	if (zoomIn && m.zoom >= MaxZoomLevel) || (!zoomIn && m.zoom <= 0) {
		return
	}
	wx, wy := m.ScreenToWorld(x, y)
	n := proj.TileCount(m.zoom)
	if wx < 0 || wx > n || wy < 0 || wy > n {
		return
	}

	scale := 2.0
	if zoomIn {
		m.zoom++
	} else {
		m.zoom--
		scale = 0.5
	}
	cx := wx*scale - (x-m.Width()/2)/TileSize
	cy := wy*scale - (y-m.Height()/2)/TileSize
	m.setCenterTile(cx, cy)
}

// FitBounds centers the view on b at the deepest zoom that shows all of
// it. Empty bounds are ignored.
func (m *MapView) FitBounds(b shapes.Bounds) {
	if b.Empty() {
		return
	}
	width, height := m.Width(), m.Height()
	if width <= 0 || height <= 0 {
		width, height = m.PrefWidth(), m.PrefHeight()
	}

	// Extent of b in pixels at zoom 0.
	worldPixels := TileSize / (2 * proj.MaxMeters)
	spanX := (b.MaxX - b.MinX) * worldPixels
	spanY := (b.MaxY - b.MinY) * worldPixels
	zoom := MaxZoomLevel
	if spanX > 0 || spanY > 0 {
		fit := math.Inf(1)
		if spanX > 0 {
			fit = width / spanX
		}
		if spanY > 0 {
			fit = min(fit, height/spanY)
		}
		zoom = int(math.Floor(math.Log2(fit)))
	}
	m.SetZoom(zoom)

	lat, lon := proj.WebMercatorToLatLon((b.MinX+b.MaxX)/2, (b.MinY+b.MaxY)/2)
	m.SetCenter(lat, lon)
}
