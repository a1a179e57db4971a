package ui

import (
	"github.com/OpticalFlyer/trellis/layout"
	"github.com/OpticalFlyer/trellis/scene"
)

// ScrollPaneStyle is the look of a ScrollPane. Every drawable is optional;
// a scroll bar without a knob is not drawn and takes no space.
type ScrollPaneStyle struct {
	Background           scene.Drawable
	HScroll, HScrollKnob scene.Drawable
	VScroll, VScrollKnob scene.Drawable
}

type scrollBar uint8

const (
	barNone scrollBar = iota
	barHorizontal
	barVertical
)

// ScrollPane shows part of a larger actor and scrolls it with the mouse
// wheel, by dragging the content or by dragging the scroll bar knobs.
type ScrollPane struct {
	layout.WidgetGroup

	style  *ScrollPaneStyle
	widget scene.Actor

	disableX, disableY bool
	scrollX, scrollY   bool
	amountX, amountY   float64
	maxX, maxY         float64

	area         scene.Rectangle
	hBar, vBar   scene.Rectangle
	hKnob, vKnob scene.Rectangle

	// FlickScroll scrolls by dragging the content.
	FlickScroll bool

	drag          *scene.DragListener
	draggingBar   scrollBar
	barGrabOffset float64
}

// NewScrollPane returns a pane scrolling widget, which may be nil.
func NewScrollPane(widget scene.Actor, style *ScrollPaneStyle) *ScrollPane {
	if style == nil {
		panic(errInvalid("nil scroll pane style"))
	}
	p := &ScrollPane{style: style, FlickScroll: true}
	p.Init(p)
	p.SetActor(widget)

	p.AddListener(&scene.InputListener{
		OnTouchDown:    p.barTouchDown,
		OnTouchDragged: p.barTouchDragged,
		OnTouchUp: func(e *scene.InputEvent, x, y float64, pointer, button int) {
			p.draggingBar = barNone
		},
		OnScrolled: func(e *scene.InputEvent, x, y, amountX, amountY float64) bool {
			p.Validate()
			if p.scrollY {
				p.SetScrollY(p.amountY + amountY*p.wheelStepY())
			} else if p.scrollX {
				p.SetScrollX(p.amountX + amountY*p.wheelStepX())
			}
			if amountX != 0 && p.scrollX {
				p.SetScrollX(p.amountX + amountX*p.wheelStepX())
			}
			return p.scrollX || p.scrollY
		},
	})

	p.drag = scene.NewDragListener()
	p.drag.Button = scene.AnyButton
	p.drag.OnDragStart = func(e *scene.InputEvent, x, y float64, pointer int) {
		if p.FlickScroll && p.draggingBar == barNone && e.Stage != nil {
			e.Stage.CancelTouchFocus(p.Self())
		}
	}
	p.drag.OnDrag = func(e *scene.InputEvent, x, y float64, pointer int) {
		if !p.FlickScroll || p.draggingBar != barNone {
			return
		}
		p.SetScrollX(p.amountX - p.drag.DeltaX())
		p.SetScrollY(p.amountY - p.drag.DeltaY())
	}
	p.AddListener(p.drag)
	return p
}

// NewScrollPane returns a scroll pane using the named ScrollPaneStyle of the
// skin.
func (s *Skin) NewScrollPane(widget scene.Actor, style string) (*ScrollPane, error) {
	if s == nil {
		return nil, ErrNoSkin
	}
	st, err := Get[*ScrollPaneStyle](s, styleName(style))
	if err != nil {
		return nil, err
	}
	return NewScrollPane(widget, st), nil
}

// SetActor replaces the scrolled actor.
func (p *ScrollPane) SetActor(widget scene.Actor) {
	if widget != nil && widget.Base() == p.Base() {
		panic(errInvalid("scroll pane cannot scroll itself"))
	}
	if p.widget == widget {
		return
	}
	if p.widget != nil {
		old := p.widget
		p.widget = nil
		p.Group.RemoveActor(old)
	}
	p.widget = widget
	if widget != nil {
		p.Group.AddActor(widget)
	}
}

func (p *ScrollPane) Actor() scene.Actor { return p.widget }

// RemoveActor removes a child, forgetting it if it is the scrolled actor.
func (p *ScrollPane) RemoveActor(actor scene.Actor) bool {
	if actor == p.widget {
		p.widget = nil
	}
	return p.Group.RemoveActor(actor)
}

// SetScrollingDisabled stops scrolling along either axis; the content is
// then sized to the visible area along that axis.
func (p *ScrollPane) SetScrollingDisabled(x, y bool) {
	p.disableX, p.disableY = x, y
	p.InvalidateHierarchy()
}

func (p *ScrollPane) IsScrollX() bool { return p.scrollX }
func (p *ScrollPane) IsScrollY() bool { return p.scrollY }

func (p *ScrollPane) ScrollX() float64 { return p.amountX }
func (p *ScrollPane) ScrollY() float64 { return p.amountY }
func (p *ScrollPane) MaxX() float64    { return p.maxX }
func (p *ScrollPane) MaxY() float64    { return p.maxY }

// ScrollWidth returns the width of the visible area.
func (p *ScrollPane) ScrollWidth() float64 { return p.area.Width }

// ScrollHeight returns the height of the visible area.
func (p *ScrollPane) ScrollHeight() float64 { return p.area.Height }

// SetScrollX scrolls horizontally, clamped to the content.
func (p *ScrollPane) SetScrollX(x float64) {
	p.amountX = clamp(x, 0, p.maxX)
	p.updateWidgetPosition()
}

// SetScrollY scrolls vertically, clamped to the content.
func (p *ScrollPane) SetScrollY(y float64) {
	p.amountY = clamp(y, 0, p.maxY)
	p.updateWidgetPosition()
}

func (p *ScrollPane) ScrollPercentX() float64 {
	if p.maxX == 0 {
		return 0
	}
	return clamp(p.amountX/p.maxX, 0, 1)
}

func (p *ScrollPane) ScrollPercentY() float64 {
	if p.maxY == 0 {
		return 0
	}
	return clamp(p.amountY/p.maxY, 0, 1)
}

func (p *ScrollPane) SetScrollPercentX(percent float64) { p.SetScrollX(p.maxX * clamp(percent, 0, 1)) }
func (p *ScrollPane) SetScrollPercentY(percent float64) { p.SetScrollY(p.maxY * clamp(percent, 0, 1)) }

// ScrollTo scrolls the least amount that makes the rectangle, in the
// scrolled actor's coordinates, visible.
func (p *ScrollPane) ScrollTo(x, y, width, height float64) {
	p.Validate()
	ax, ay := p.amountX, p.amountY
	if x+width > ax+p.area.Width {
		ax = x + width - p.area.Width
	}
	if x < ax {
		ax = x
	}
	if y+height > ay+p.area.Height {
		ay = y + height - p.area.Height
	}
	if y < ay {
		ay = y
	}
	p.SetScrollX(ax)
	p.SetScrollY(ay)
}

func (p *ScrollPane) wheelStepX() float64 {
	return min(p.area.Width, max(p.area.Width*0.9, p.maxX*0.1)/4)
}

func (p *ScrollPane) wheelStepY() float64 {
	return min(p.area.Height, max(p.area.Height*0.9, p.maxY*0.1)/4)
}

func (p *ScrollPane) barWidth() float64 {
	if p.style.VScrollKnob == nil {
		return 0
	}
	w := p.style.VScrollKnob.MinWidth()
	if p.style.VScroll != nil {
		w = max(w, p.style.VScroll.MinWidth())
	}
	return w
}

func (p *ScrollPane) barHeight() float64 {
	if p.style.HScrollKnob == nil {
		return 0
	}
	h := p.style.HScrollKnob.MinHeight()
	if p.style.HScroll != nil {
		h = max(h, p.style.HScroll.MinHeight())
	}
	return h
}

func (p *ScrollPane) backgroundInsets() (left, right, top, bottom float64) {
	if bg := p.style.Background; bg != nil {
		return bg.LeftWidth(), bg.RightWidth(), bg.TopHeight(), bg.BottomHeight()
	}
	return 0, 0, 0, 0
}

func prefSize(a scene.Actor) (float64, float64) {
	if l, ok := a.(layout.Layout); ok {
		return l.PrefWidth(), l.PrefHeight()
	}
	return a.Base().Width(), a.Base().Height()
}

func (p *ScrollPane) PrefWidth() float64 {
	l, r, _, _ := p.backgroundInsets()
	w := l + r
	if p.widget != nil {
		pw, _ := prefSize(p.widget)
		w += pw
	}
	if p.scrollY {
		w += p.barWidth()
	}
	return w
}

func (p *ScrollPane) PrefHeight() float64 {
	_, _, t, b := p.backgroundInsets()
	h := t + b
	if p.widget != nil {
		_, ph := prefSize(p.widget)
		h += ph
	}
	if p.scrollX {
		h += p.barHeight()
	}
	return h
}

func (p *ScrollPane) MinWidth() float64  { return 0 }
func (p *ScrollPane) MinHeight() float64 { return 0 }

// Arrange decides which axes scroll, sizes the content to at least the
// visible area and places the scroll bars.
func (p *ScrollPane) Arrange() {
	l, r, t, b := p.backgroundInsets()
	area := scene.Rectangle{X: l, Y: t, Width: p.Width() - l - r, Height: p.Height() - t - b}
	if p.widget == nil {
		p.area = area
		p.scrollX, p.scrollY = false, false
		p.maxX, p.maxY = 0, 0
		return
	}
	ww, wh := prefSize(p.widget)
	if p.disableX {
		ww = area.Width
	}
	if p.disableY {
		wh = area.Height
	}

	barW, barH := p.barWidth(), p.barHeight()
	p.scrollX = !p.disableX && ww > area.Width
	p.scrollY = !p.disableY && wh > area.Height
	// A scroll bar takes space from the other axis, which may then need
	// one too.
	if p.scrollY {
		area.Width -= barW
		if p.disableX {
			ww = area.Width
		}
		if !p.scrollX && !p.disableX && ww > area.Width {
			p.scrollX = true
		}
	}
	if p.scrollX {
		area.Height -= barH
		if p.disableY {
			wh = area.Height
		}
		if !p.scrollY && !p.disableY && wh > area.Height {
			p.scrollY = true
			area.Width -= barW
		}
	}
	area.Width, area.Height = max(area.Width, 0), max(area.Height, 0)
	p.area = area

	ww, wh = max(ww, area.Width), max(wh, area.Height)
	p.maxX, p.maxY = ww-area.Width, wh-area.Height
	p.amountX = clamp(p.amountX, 0, p.maxX)
	p.amountY = clamp(p.amountY, 0, p.maxY)

	p.hBar = scene.Rectangle{X: area.X, Y: area.Y + area.Height, Width: area.Width, Height: barH}
	p.vBar = scene.Rectangle{X: area.X + area.Width, Y: area.Y, Width: barW, Height: area.Height}

	p.widget.Base().SetSize(ww, wh)
	if lw, ok := p.widget.(layout.Layout); ok {
		lw.Validate()
	}
	p.updateWidgetPosition()
}

// updateWidgetPosition moves the content and the knobs for the current
// scroll amounts.
func (p *ScrollPane) updateWidgetPosition() {
	if p.widget != nil {
		p.widget.Base().SetPosition(p.area.X-p.amountX, p.area.Y-p.amountY)
	}
	if p.scrollX && p.style.HScrollKnob != nil {
		ww := p.area.Width + p.maxX
		w := max(p.style.HScrollKnob.MinWidth(), p.hBar.Width*p.area.Width/ww)
		p.hKnob = scene.Rectangle{
			X:      p.hBar.X + (p.hBar.Width-w)*p.ScrollPercentX(),
			Y:      p.hBar.Y,
			Width:  w,
			Height: p.hBar.Height,
		}
	}
	if p.scrollY && p.style.VScrollKnob != nil {
		wh := p.area.Height + p.maxY
		h := max(p.style.VScrollKnob.MinHeight(), p.vBar.Height*p.area.Height/wh)
		p.vKnob = scene.Rectangle{
			X:      p.vBar.X,
			Y:      p.vBar.Y + (p.vBar.Height-h)*p.ScrollPercentY(),
			Width:  p.vBar.Width,
			Height: h,
		}
	}
}

// KnobBounds returns the horizontal and vertical knob rectangles.
func (p *ScrollPane) KnobBounds() (horizontal, vertical scene.Rectangle) {
	p.Validate()
	return p.hKnob, p.vKnob
}

func (p *ScrollPane) barTouchDown(e *scene.InputEvent, x, y float64, pointer, button int) bool {
	p.Validate()
	switch {
	case p.scrollY && p.vBar.Contains(x, y):
		if p.vKnob.Contains(x, y) {
			p.draggingBar = barVertical
			p.barGrabOffset = y - p.vKnob.Y
		} else if y < p.vKnob.Y {
			p.SetScrollY(p.amountY - p.area.Height)
		} else {
			p.SetScrollY(p.amountY + p.area.Height)
		}
		return true
	case p.scrollX && p.hBar.Contains(x, y):
		if p.hKnob.Contains(x, y) {
			p.draggingBar = barHorizontal
			p.barGrabOffset = x - p.hKnob.X
		} else if x < p.hKnob.X {
			p.SetScrollX(p.amountX - p.area.Width)
		} else {
			p.SetScrollX(p.amountX + p.area.Width)
		}
		return true
	}
	return false
}

func (p *ScrollPane) barTouchDragged(e *scene.InputEvent, x, y float64, pointer int) {
	switch p.draggingBar {
	case barVertical:
		if track := p.vBar.Height - p.vKnob.Height; track > 0 {
			p.SetScrollPercentY((y - p.barGrabOffset - p.vBar.Y) / track)
		}
	case barHorizontal:
		if track := p.hBar.Width - p.hKnob.Width; track > 0 {
			p.SetScrollPercentX((x - p.barGrabOffset - p.hBar.X) / track)
		}
	}
}

// Hit ignores points outside the pane and returns the pane itself for
// points on the scroll bars.
func (p *ScrollPane) Hit(x, y float64, touchable bool) scene.Actor {
	if x < 0 || x >= p.Width() || y < 0 || y >= p.Height() {
		return nil
	}
	if touchable && p.Touchable() == scene.TouchDisabled {
		return nil
	}
	if p.scrollX && p.hBar.Contains(x, y) || p.scrollY && p.vBar.Contains(x, y) {
		return p.Self()
	}
	return p.WidgetGroup.Hit(x, y, touchable)
}

func (p *ScrollPane) Draw(b *scene.Batch, parentAlpha float32) {
	p.Validate()
	alpha := parentAlpha * p.Alpha()
	x, y := p.X(), p.Y()
	if bg := p.style.Background; bg != nil {
		bg.Draw(b, x, y, p.Width(), p.Height(), alpha)
	}
	b.Push(x, y)
	clipped := b.PushClip(p.area.X, p.area.Y, p.area.Width, p.area.Height)
	b.Pop()
	if clipped {
		p.DrawChildren(b, parentAlpha)
		b.PopClip()
	}
	if p.scrollX {
		drawRect(b, p.style.HScroll, x, y, p.hBar, alpha)
		drawRect(b, p.style.HScrollKnob, x, y, p.hKnob, alpha)
	}
	if p.scrollY {
		drawRect(b, p.style.VScroll, x, y, p.vBar, alpha)
		drawRect(b, p.style.VScrollKnob, x, y, p.vKnob, alpha)
	}
}

func drawRect(b *scene.Batch, d scene.Drawable, x, y float64, r scene.Rectangle, alpha float32) {
	if d == nil || r.Empty() {
		return
	}
	d.Draw(b, x+r.X, y+r.Y, r.Width, r.Height, alpha)
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
