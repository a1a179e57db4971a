package ui

import (
	"errors"
	"image/color"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/OpticalFlyer/trellis/layout"
	"github.com/OpticalFlyer/trellis/scene"
)

const leftButton = int(ebiten.MouseButtonLeft)

func solid(w, h float64) *ColorDrawable {
	return &ColorDrawable{Color: color.White, Width: w, Height: h}
}

func padded(top, right, bottom, left float64) *ColorDrawable {
	return &ColorDrawable{Color: color.White, Insets: Insets{Top: top, Right: right, Bottom: bottom, Left: left}}
}

func labelStyle() *LabelStyle {
	return &LabelStyle{Font: FixedFont(), Color: color.White}
}

func textButtonStyle() *TextButtonStyle {
	return &TextButtonStyle{
		ButtonStyle: ButtonStyle{Up: padded(2, 4, 2, 4)},
		Font:        FixedFont(),
		FontColor:   color.White,
	}
}

func windowStyle() *WindowStyle {
	return &WindowStyle{
		Background:      padded(0, 4, 4, 4),
		TitleBackground: solid(0, 0),
		TitleFont:       FixedFont(),
		DockPreview:     padded(0, 4, 4, 4),
	}
}

// click presses and releases the left button at a stage point.
func click(s *scene.Stage, x, y float64) {
	s.TouchDown(x, y, 0, leftButton)
	s.TouchUp(x, y, 0, leftButton)
}

// drag presses at one stage point, moves to another and releases there.
func drag(s *scene.Stage, x0, y0, x1, y1 float64) {
	s.TouchDown(x0, y0, 0, leftButton)
	s.TouchDragged(x1, y1, 0)
	s.TouchUp(x1, y1, 0, leftButton)
}

type bounds struct {
	X, Y, W, H float64
}

func boundsOf(a scene.Actor) bounds {
	n := a.Base()
	return bounds{n.X(), n.Y(), n.Width(), n.Height()}
}

func expectPanic(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("expected panic wrapping %v", target)
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, target) {
			t.Fatalf("panic %v does not wrap %v", r, target)
		}
	}()
	fn()
}

// box is a widget with fixed min and pref sizes.
type box struct {
	layout.Widget
	minW, minH   float64
	prefW, prefH float64
}

func newBox(minW, minH, prefW, prefH float64) *box {
	b := &box{minW: minW, minH: minH, prefW: prefW, prefH: prefH}
	b.Init(b)
	return b
}

func (b *box) MinWidth() float64   { return b.minW }
func (b *box) MinHeight() float64  { return b.minH }
func (b *box) PrefWidth() float64  { return b.prefW }
func (b *box) PrefHeight() float64 { return b.prefH }

// cursorLog records the cursor shapes a widget sets.
type cursorLog []ebiten.CursorShapeType

func (c *cursorLog) set(shape ebiten.CursorShapeType) { *c = append(*c, shape) }

func (c cursorLog) last() ebiten.CursorShapeType {
	if len(c) == 0 {
		return ebiten.CursorShapeDefault
	}
	return c[len(c)-1]
}
