package layout

import (
	"errors"
	"testing"

	"github.com/OpticalFlyer/trellis/scene"
)

// box is a widget with fixed size bounds.
type box struct {
	Widget
	minW, minH   float64
	prefW, prefH float64
	maxW, maxH   float64
}

func newBox(minW, minH, prefW, prefH float64) *box {
	b := &box{minW: minW, minH: minH, prefW: prefW, prefH: prefH}
	b.Init(b)
	return b
}

// fixedBox returns a box whose min and pref sizes are equal.
func fixedBox(w, h float64) *box { return newBox(w, h, w, h) }

func (b *box) MinWidth() float64   { return b.minW }
func (b *box) MinHeight() float64  { return b.minH }
func (b *box) PrefWidth() float64  { return b.prefW }
func (b *box) PrefHeight() float64 { return b.prefH }
func (b *box) MaxWidth() float64   { return b.maxW }
func (b *box) MaxHeight() float64  { return b.maxH }

type bounds struct {
	X, Y, W, H float64
}

func boundsOf(a scene.Actor) bounds {
	n := a.Base()
	return bounds{n.X(), n.Y(), n.Width(), n.Height()}
}

// layoutAt sizes t and runs its layout.
func layoutAt(t *Table, width, height float64) {
	t.SetSize(width, height)
	t.Invalidate()
	t.Validate()
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

// drawable is a background with fixed borders.
type drawable struct {
	top, left, bottom, right float64
	minW, minH               float64
}

func (d *drawable) Draw(b *scene.Batch, x, y, width, height float64, alpha float32) {}

func (d *drawable) LeftWidth() float64    { return d.left }
func (d *drawable) RightWidth() float64   { return d.right }
func (d *drawable) TopHeight() float64    { return d.top }
func (d *drawable) BottomHeight() float64 { return d.bottom }
func (d *drawable) MinWidth() float64     { return d.minW }
func (d *drawable) MinHeight() float64    { return d.minH }
