package ui

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/OpticalFlyer/trellis/layout"
	"github.com/OpticalFlyer/trellis/scene"
)

// SplitPaneStyle is the look of a SplitPane.
type SplitPaneStyle struct {
	// Handle is drawn between the two actors; its min size is the handle
	// thickness.
	Handle scene.Drawable
}

// SplitPane shows two actors side by side, or one above the other when
// vertical, separated by a handle that can be dragged to change the split.
type SplitPane struct {
	layout.WidgetGroup

	style         *SplitPaneStyle
	first, second scene.Actor
	vertical      bool

	split              float64
	minSplit, maxSplit float64

	firstBounds, secondBounds, handleBounds scene.Rectangle

	dragPointer    int
	lastX, lastY   float64
	handleX        float64
	handleY        float64
	cursorOverride bool

	setCursor func(ebiten.CursorShapeType)
}

// NewSplitPane returns a pane splitting its area evenly between first and
// second. Either may be nil.
func NewSplitPane(first, second scene.Actor, vertical bool, style *SplitPaneStyle) *SplitPane {
	if style == nil || style.Handle == nil {
		panic(errInvalid("split pane style needs a handle"))
	}
	p := &SplitPane{
		style:       style,
		vertical:    vertical,
		split:       0.5,
		maxSplit:    1,
		dragPointer: -1,
		setCursor:   ebiten.SetCursorShape,
	}
	p.Init(p)
	p.SetFirst(first)
	p.SetSecond(second)
	p.AddListener(&scene.InputListener{
		OnTouchDown:    p.touchDown,
		OnTouchDragged: p.touchDragged,
		OnTouchUp: func(e *scene.InputEvent, x, y float64, pointer, button int) {
			if pointer == p.dragPointer {
				p.dragPointer = -1
			}
		},
		OnMouseMoved: func(e *scene.InputEvent, x, y float64) bool {
			p.updateCursor(p.handleBounds.Contains(x, y))
			return false
		},
		OnExit: func(e *scene.InputEvent, x, y float64, pointer int, to scene.Actor) {
			if p.dragPointer == -1 {
				p.updateCursor(false)
			}
		},
	})
	return p
}

// NewSplitPane returns a split pane using the named SplitPaneStyle of the
// skin.
func (s *Skin) NewSplitPane(first, second scene.Actor, vertical bool, style string) (*SplitPane, error) {
	if s == nil {
		return nil, ErrNoSkin
	}
	st, err := Get[*SplitPaneStyle](s, styleName(style))
	if err != nil {
		return nil, err
	}
	return NewSplitPane(first, second, vertical, st), nil
}

// SetFirst replaces the left or top actor.
func (p *SplitPane) SetFirst(a scene.Actor) { p.replace(&p.first, a) }

// SetSecond replaces the right or bottom actor.
func (p *SplitPane) SetSecond(a scene.Actor) { p.replace(&p.second, a) }

func (p *SplitPane) First() scene.Actor  { return p.first }
func (p *SplitPane) Second() scene.Actor { return p.second }

func (p *SplitPane) replace(slot *scene.Actor, a scene.Actor) {
	if *slot == a {
		return
	}
	if old := *slot; old != nil {
		*slot = nil
		p.Group.RemoveActor(old)
	}
	*slot = a
	if a != nil {
		p.Group.AddActor(a)
	}
	p.Invalidate()
}

// RemoveActor removes a child, emptying its side of the pane.
func (p *SplitPane) RemoveActor(actor scene.Actor) bool {
	switch actor {
	case p.first:
		p.first = nil
	case p.second:
		p.second = nil
	}
	return p.Group.RemoveActor(actor)
}

// Split returns the fraction of the available space given to the first
// actor.
func (p *SplitPane) Split() float64 { return p.split }

// SetSplit sets the fraction of the available space given to the first
// actor. It is clamped when the pane is laid out.
func (p *SplitPane) SetSplit(split float64) {
	p.split = split
	p.Invalidate()
}

// SetMinSplit sets the smallest split. It panics outside [0, 1].
func (p *SplitPane) SetMinSplit(v float64) {
	if v < 0 || v > 1 {
		panic(errInvalid("min split must be within [0, 1]"))
	}
	p.minSplit = v
}

// SetMaxSplit sets the largest split. It panics outside [0, 1].
func (p *SplitPane) SetMaxSplit(v float64) {
	if v < 0 || v > 1 {
		panic(errInvalid("max split must be within [0, 1]"))
	}
	p.maxSplit = v
}

func (p *SplitPane) IsVertical() bool { return p.vertical }

func (p *SplitPane) SetVertical(vertical bool) {
	if p.vertical == vertical {
		return
	}
	p.vertical = vertical
	p.InvalidateHierarchy()
}

func minSize(a scene.Actor) (float64, float64) {
	if l, ok := a.(layout.Layout); ok {
		return l.MinWidth(), l.MinHeight()
	}
	return a.Base().Width(), a.Base().Height()
}

func (p *SplitPane) sizes(f func(scene.Actor) (float64, float64)) (w1, h1, w2, h2 float64) {
	if p.first != nil {
		w1, h1 = f(p.first)
	}
	if p.second != nil {
		w2, h2 = f(p.second)
	}
	return
}

func (p *SplitPane) MinWidth() float64 {
	w1, _, w2, _ := p.sizes(minSize)
	if p.vertical {
		return max(w1, w2)
	}
	return w1 + p.style.Handle.MinWidth() + w2
}

func (p *SplitPane) MinHeight() float64 {
	_, h1, _, h2 := p.sizes(minSize)
	if !p.vertical {
		return max(h1, h2)
	}
	return h1 + p.style.Handle.MinHeight() + h2
}

func (p *SplitPane) PrefWidth() float64 {
	w1, _, w2, _ := p.sizes(prefSize)
	if p.vertical {
		return max(w1, w2)
	}
	return w1 + p.style.Handle.MinWidth() + w2
}

func (p *SplitPane) PrefHeight() float64 {
	_, h1, _, h2 := p.sizes(prefSize)
	if !p.vertical {
		return max(h1, h2)
	}
	return h1 + p.style.Handle.MinHeight() + h2
}

// available returns the length shared by the two actors.
func (p *SplitPane) available() float64 {
	if p.vertical {
		return p.Height() - p.style.Handle.MinHeight()
	}
	return p.Width() - p.style.Handle.MinWidth()
}

// clampSplit keeps the split within the min and max splits and leaves each
// actor at least its min size. When both cannot hold, the split is the
// average of the two limits.
func (p *SplitPane) clampSplit() {
	lo, hi := p.minSplit, p.maxSplit
	if avail := p.available(); avail > 0 {
		w1, h1, w2, h2 := p.sizes(minSize)
		first, second := w1, w2
		if p.vertical {
			first, second = h1, h2
		}
		if p.first != nil {
			lo = max(lo, min(first/avail, 1))
		}
		if p.second != nil {
			hi = min(hi, 1-min(second/avail, 1))
		}
	}
	if lo > hi {
		p.split = (lo + hi) / 2
		return
	}
	p.split = clamp(p.split, lo, hi)
}

// Arrange clamps the split and sizes both actors and the handle.
func (p *SplitPane) Arrange() {
	p.clampSplit()
	avail := p.available()
	firstSize := math.Floor(avail * p.split)
	if p.vertical {
		handle := p.style.Handle.MinHeight()
		p.firstBounds = scene.Rectangle{Width: p.Width(), Height: firstSize}
		p.handleBounds = scene.Rectangle{Y: firstSize, Width: p.Width(), Height: handle}
		p.secondBounds = scene.Rectangle{Y: firstSize + handle, Width: p.Width(), Height: avail - firstSize}
	} else {
		handle := p.style.Handle.MinWidth()
		p.firstBounds = scene.Rectangle{Width: firstSize, Height: p.Height()}
		p.handleBounds = scene.Rectangle{X: firstSize, Width: handle, Height: p.Height()}
		p.secondBounds = scene.Rectangle{X: firstSize + handle, Width: avail - firstSize, Height: p.Height()}
	}
	place(p.first, p.firstBounds)
	place(p.second, p.secondBounds)
}

func place(a scene.Actor, r scene.Rectangle) {
	if a == nil {
		return
	}
	a.Base().SetBounds(r.X, r.Y, r.Width, r.Height)
	if l, ok := a.(layout.Layout); ok {
		l.Validate()
	}
}

// HandleBounds returns the handle rectangle in the pane's coordinates.
func (p *SplitPane) HandleBounds() scene.Rectangle {
	p.Validate()
	return p.handleBounds
}

func (p *SplitPane) touchDown(e *scene.InputEvent, x, y float64, pointer, button int) bool {
	if p.dragPointer != -1 {
		return false
	}
	if pointer == 0 && button != int(ebiten.MouseButtonLeft) {
		return false
	}
	if !p.handleBounds.Contains(x, y) {
		return false
	}
	p.dragPointer = pointer
	p.lastX, p.lastY = x, y
	p.handleX, p.handleY = p.handleBounds.X, p.handleBounds.Y
	return true
}

func (p *SplitPane) touchDragged(e *scene.InputEvent, x, y float64, pointer int) {
	if pointer != p.dragPointer {
		return
	}
	avail := p.available()
	if avail <= 0 {
		return
	}
	if p.vertical {
		p.handleY += y - p.lastY
		p.split = clamp(p.handleY, 0, avail) / avail
	} else {
		p.handleX += x - p.lastX
		p.split = clamp(p.handleX, 0, avail) / avail
	}
	p.lastX, p.lastY = x, y
	p.Invalidate()
}

func (p *SplitPane) updateCursor(over bool) {
	if over == p.cursorOverride || p.setCursor == nil {
		return
	}
	p.cursorOverride = over
	switch {
	case !over:
		p.setCursor(ebiten.CursorShapeDefault)
	case p.vertical:
		p.setCursor(ebiten.CursorShapeNSResize)
	default:
		p.setCursor(ebiten.CursorShapeEWResize)
	}
}

// Draw draws the handle and each actor clipped to its side of the pane.
func (p *SplitPane) Draw(b *scene.Batch, parentAlpha float32) {
	p.Validate()
	alpha := parentAlpha * p.Alpha()
	r := p.handleBounds
	p.style.Handle.Draw(b, p.X()+r.X, p.Y()+r.Y, r.Width, r.Height, alpha)
	b.Push(p.X(), p.Y())
	defer b.Pop()
	for _, side := range []struct {
		actor  scene.Actor
		bounds scene.Rectangle
	}{{p.first, p.firstBounds}, {p.second, p.secondBounds}} {
		if side.actor == nil || !side.actor.Base().Visible() {
			continue
		}
		if b.PushClip(side.bounds.X, side.bounds.Y, side.bounds.Width, side.bounds.Height) {
			side.actor.Draw(b, alpha)
			b.PopClip()
		}
	}
}
