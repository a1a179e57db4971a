package mapview

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/OpticalFlyer/trellis/proj"
	"github.com/OpticalFlyer/trellis/scene"
)

// TileRange defines the range of tiles needed to cover the view
type TileRange struct {
	MinX, MaxX int
	MinY, MaxY int
}

// Count returns the number of tiles in the range.
func (r TileRange) Count() int {
	if r.MaxX < r.MinX || r.MaxY < r.MinY {
		return 0
	}
	return (r.MaxX - r.MinX + 1) * (r.MaxY - r.MinY + 1)
}

// VisibleTiles returns the tiles under the view at the current zoom.
func (m *MapView) VisibleTiles() TileRange {
	minX, minY := m.ScreenToWorld(0, 0)
	maxX, maxY := m.ScreenToWorld(m.Width(), m.Height())
	last := int(proj.TileCount(m.zoom)) - 1
	return TileRange{
		MinX: max(0, int(math.Floor(minX))),
		MaxX: min(last, int(math.Floor(maxX))),
		MinY: max(0, int(math.Floor(minY))),
		MaxY: min(last, int(math.Floor(maxY))),
	}
}

// drawTileGrid outlines each visible tile and prints its zoom/x/y.
func (m *MapView) drawTileGrid(b *scene.Batch) {
	clr := m.style.Grid
	if clr == nil {
		return
	}
	originX, originY := m.worldOrigin()
	bx, by := b.Origin()
	r := m.VisibleTiles()
	for ty := r.MinY; ty <= r.MaxY; ty++ {
		for tx := r.MinX; tx <= r.MaxX; tx++ {
			x := m.X() + float64(tx)*TileSize - originX
			y := m.Y() + float64(ty)*TileSize - originY
			b.StrokeRect(x, y, TileSize, TileSize, 1, clr)
			ebitenutil.DebugPrintAt(b.Target(),
				fmt.Sprintf("%d/%d/%d", m.zoom, tx, ty),
				int(bx+x)+2, int(by+y)+2)
		}
	}
}
