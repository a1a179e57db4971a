package layout

import (
	"image/color"

	"github.com/OpticalFlyer/trellis/scene"
)

// Debug selects which debug lines a table draws.
type Debug uint8

const (
	DebugNone Debug = 0
	// DebugTable outlines the grid and its rows and columns.
	DebugTable Debug = 1 << (iota - 1)
	// DebugCell outlines each cell inside its padding.
	DebugCell
	// DebugActor outlines each actor.
	DebugActor

	DebugAll = DebugTable | DebugCell | DebugActor
)

var (
	debugTableColor = color.RGBA{B: 0xff, A: 0xff}
	debugCellColor  = color.RGBA{R: 0xff, A: 0xff}
	debugActorColor = color.RGBA{G: 0xff, A: 0xff}
)

type debugRect struct {
	x, y, width, height float64
	clr                 color.Color
}

// SetDebugMode selects the debug lines drawn by the table.
func (t *Table) SetDebugMode(d Debug) *Table {
	t.debug = d
	t.Invalidate()
	return t
}

// DebugMode returns the debug lines drawn by the table. A table with its
// actor debug flag set draws all of them.
func (t *Table) DebugMode() Debug { return t.debugMode() }

func (t *Table) debugMode() Debug {
	if t.debug != DebugNone {
		return t.debug
	}
	if t.Debug() {
		return DebugAll
	}
	return DebugNone
}

func (t *Table) addCellDebug(d Debug, c *Cell, x, y, width, height float64) {
	if d&DebugCell != 0 {
		t.debugRects = append(t.debugRects, debugRect{x, y, width, height, debugCellColor})
	}
	if d&DebugActor != 0 && c.actor != nil {
		t.debugRects = append(t.debugRects, debugRect{c.actorX, c.actorY, c.actorWidth, c.actorHeight, debugActorColor})
	}
}

func (t *Table) addTableDebug(x, y, width, height float64, columnWidth, rowHeight []float64) {
	t.debugRects = append(t.debugRects, debugRect{x, y, width, height, debugTableColor})
	cx := x
	for i, w := range columnWidth {
		cx += w
		if i < len(columnWidth)-1 {
			t.debugRects = append(t.debugRects, debugRect{cx, y, 0, height, debugTableColor})
		}
	}
	cy := y
	for i, h := range rowHeight {
		cy += h
		if i < len(rowHeight)-1 {
			t.debugRects = append(t.debugRects, debugRect{x, cy, width, 0, debugTableColor})
		}
	}
}

func (t *Table) drawDebug(b *scene.Batch) {
	if len(t.debugRects) == 0 || t.debugMode() == DebugNone {
		return
	}
	b.Push(t.X(), t.Y())
	for _, r := range t.debugRects {
		if r.width == 0 || r.height == 0 {
			b.StrokeLine(r.x, r.y, r.x+r.width, r.y+r.height, 1, r.clr)
			continue
		}
		b.StrokeRect(r.x, r.y, r.width, r.height, 1, r.clr)
	}
	b.Pop()
}
