package scene

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Listener reacts to events delivered to an actor. Returning true marks the
// event handled; a TouchDown that is handled gives the listener touch focus
// for that pointer, so it also receives the matching drags and TouchUp.
type Listener interface {
	Handle(e *InputEvent) bool
}

// InputListener dispatches events to optional callbacks. Coordinates passed
// to the callbacks are local to the listener actor.
type InputListener struct {
	OnTouchDown    func(e *InputEvent, x, y float64, pointer, button int) bool
	OnTouchUp      func(e *InputEvent, x, y float64, pointer, button int)
	OnTouchDragged func(e *InputEvent, x, y float64, pointer int)
	OnMouseMoved   func(e *InputEvent, x, y float64) bool
	OnEnter        func(e *InputEvent, x, y float64, pointer int, from Actor)
	OnExit         func(e *InputEvent, x, y float64, pointer int, to Actor)
	OnScrolled     func(e *InputEvent, x, y, amountX, amountY float64) bool
	OnKeyDown      func(e *InputEvent, key ebiten.Key) bool
	OnKeyUp        func(e *InputEvent, key ebiten.Key) bool
	OnKeyTyped     func(e *InputEvent, char rune) bool
}

// Handle implements Listener.
func (l *InputListener) Handle(e *InputEvent) bool {
	switch e.Type {
	case KeyDown:
		return l.OnKeyDown != nil && l.OnKeyDown(e, e.Key)
	case KeyUp:
		return l.OnKeyUp != nil && l.OnKeyUp(e, e.Key)
	case KeyTyped:
		return l.OnKeyTyped != nil && l.OnKeyTyped(e, e.Char)
	}
	x, y := e.LocalPosition(e.ListenerActor)
	switch e.Type {
	case TouchDown:
		return l.OnTouchDown != nil && l.OnTouchDown(e, x, y, e.Pointer, e.Button)
	case TouchUp:
		if l.OnTouchUp != nil {
			l.OnTouchUp(e, x, y, e.Pointer, e.Button)
		}
		return true
	case TouchDragged:
		if l.OnTouchDragged != nil {
			l.OnTouchDragged(e, x, y, e.Pointer)
		}
		return true
	case MouseMoved:
		return l.OnMouseMoved != nil && l.OnMouseMoved(e, x, y)
	case Enter:
		if l.OnEnter != nil {
			l.OnEnter(e, x, y, e.Pointer, e.RelatedActor)
		}
		return false
	case Exit:
		if l.OnExit != nil {
			l.OnExit(e, x, y, e.Pointer, e.RelatedActor)
		}
		return false
	case Scrolled:
		return l.OnScrolled != nil && l.OnScrolled(e, x, y, e.ScrollX, e.ScrollY)
	}
	return false
}

// ChangeListener is notified when a widget fires a Changed event.
type ChangeListener struct {
	OnChanged func(e *InputEvent, actor Actor)
}

// OnChange returns a ChangeListener calling fn.
func OnChange(fn func(e *InputEvent, actor Actor)) *ChangeListener {
	return &ChangeListener{OnChanged: fn}
}

// Handle implements Listener.
func (c *ChangeListener) Handle(e *InputEvent) bool {
	if e.Type != Changed || c.OnChanged == nil {
		return false
	}
	c.OnChanged(e, e.Target)
	return false
}

// FireChanged sends a Changed event from a and reports whether a listener
// cancelled it.
func FireChanged(a Actor) bool {
	e := &InputEvent{Type: Changed, Target: a, Stage: a.Base().Stage()}
	return a.Base().Fire(e)
}

const (
	// AnyButton lets a ClickListener or DragListener react to every button.
	AnyButton = -1

	defaultTapSquareSize = 14
	tapCountInterval     = 400 * time.Millisecond
)

// ClickListener detects clicks: a press followed by a release over the
// listener actor, or within a small tap square around the press.
type ClickListener struct {
	// Button restricts the mouse button that clicks; AnyButton accepts all.
	Button int
	// TapSquareSize is the distance a touch may travel and still click.
	TapSquareSize float64
	// OnClicked is called for each click.
	OnClicked func(e *InputEvent, x, y float64)

	pressed, over, cancelled bool
	pressedPointer           int
	pressedButton            int
	touchDownX, touchDownY   float64
	tapCount                 int
	lastTap                  time.Time
	now                      func() time.Time
}

// NewClickListener returns a listener for the primary button.
func NewClickListener(onClicked func(e *InputEvent, x, y float64)) *ClickListener {
	return &ClickListener{
		Button:         int(ebiten.MouseButtonLeft),
		TapSquareSize:  defaultTapSquareSize,
		OnClicked:      onClicked,
		pressedPointer: -1,
		pressedButton:  -1,
		touchDownX:     -1,
		touchDownY:     -1,
	}
}

// Handle implements Listener.
func (c *ClickListener) Handle(e *InputEvent) bool {
	switch e.Type {
	case TouchDown, TouchUp, TouchDragged, Enter, Exit:
	default:
		return false
	}
	x, y := e.LocalPosition(e.ListenerActor)
	switch e.Type {
	case TouchDown:
		if c.pressed {
			return false
		}
		if e.Pointer == 0 && c.Button != AnyButton && e.Button != c.Button {
			return false
		}
		c.pressed = true
		c.pressedPointer = e.Pointer
		c.pressedButton = e.Button
		c.touchDownX, c.touchDownY = x, y
		return true
	case TouchDragged:
		if e.Pointer != c.pressedPointer || c.cancelled {
			return true
		}
		c.pressed = c.IsOverPoint(e.ListenerActor, x, y)
		if !c.pressed {
			c.InvalidateTapSquare()
		}
		return true
	case TouchUp:
		if e.Pointer != c.pressedPointer {
			return true
		}
		if !c.cancelled && !e.IsTouchFocusCancel() {
			touchUpOver := c.IsOverPoint(e.ListenerActor, x, y)
			if touchUpOver && e.Pointer == 0 && c.Button != AnyButton && e.Button != c.Button {
				touchUpOver = false
			}
			if touchUpOver {
				now := c.clock()
				if now.Sub(c.lastTap) > tapCountInterval {
					c.tapCount = 0
				}
				c.tapCount++
				c.lastTap = now
				if c.OnClicked != nil {
					c.OnClicked(e, x, y)
				}
			}
		}
		c.pressed = false
		c.pressedPointer = -1
		c.pressedButton = -1
		c.cancelled = false
		return true
	case Enter:
		if e.Pointer == -1 || e.Pointer == 0 {
			c.over = true
		}
	case Exit:
		related := e.RelatedActor
		if (e.Pointer == -1 || e.Pointer == 0) && (related == nil || !related.Base().IsDescendantOf(e.ListenerActor)) {
			c.over = false
		}
	}
	return false
}

func (c *ClickListener) clock() time.Time {
	if c.now != nil {
		return c.now()
	}
	return time.Now()
}

// IsOverPoint reports whether the local point is over actor or still inside
// the tap square.
func (c *ClickListener) IsOverPoint(actor Actor, x, y float64) bool {
	if hit := actor.Hit(x, y, true); hit != nil && hit.Base().IsDescendantOf(actor) {
		return true
	}
	return c.InTapSquare(x, y)
}

// InTapSquare reports whether the point is within the tap square of the
// last press.
func (c *ClickListener) InTapSquare(x, y float64) bool {
	if c.touchDownX == -1 && c.touchDownY == -1 {
		return false
	}
	half := c.TapSquareSize / 2
	return x >= c.touchDownX-half && x <= c.touchDownX+half &&
		y >= c.touchDownY-half && y <= c.touchDownY+half
}

// InvalidateTapSquare makes the current press stop counting as over.
func (c *ClickListener) InvalidateTapSquare() {
	c.touchDownX, c.touchDownY = -1, -1
}

// Cancel ignores the current press.
func (c *ClickListener) Cancel() {
	if c.pressedPointer == -1 {
		return
	}
	c.cancelled = true
	c.pressed = false
}

// IsPressed reports whether the actor is currently pressed.
func (c *ClickListener) IsPressed() bool { return c.pressed }

// IsOver reports whether the mouse is over the actor or it is pressed.
func (c *ClickListener) IsOver() bool { return c.over || c.pressed }

// IsVisualPressed reports whether the actor should be drawn pressed.
func (c *ClickListener) IsVisualPressed() bool { return c.pressed && c.over || c.pressed && c.pressedPointer > 0 }

// TapCount returns the number of quick consecutive clicks.
func (c *ClickListener) TapCount() int { return c.tapCount }

// PressedButton returns the button being held, or -1.
func (c *ClickListener) PressedButton() int { return c.pressedButton }

// DragListener reports drags that leave the tap square around a press.
type DragListener struct {
	Button        int
	TapSquareSize float64
	OnDragStart   func(e *InputEvent, x, y float64, pointer int)
	OnDrag        func(e *InputEvent, x, y float64, pointer int)
	OnDragStop    func(e *InputEvent, x, y float64, pointer int)

	pressedPointer         int
	touchDownX, touchDownY float64
	dragX, dragY           float64
	dragLastX, dragLastY   float64
	dragging               bool
}

// NewDragListener returns a drag listener for the primary button.
func NewDragListener() *DragListener {
	return &DragListener{
		Button:         int(ebiten.MouseButtonLeft),
		TapSquareSize:  defaultTapSquareSize,
		pressedPointer: -1,
	}
}

// Handle implements Listener.
func (d *DragListener) Handle(e *InputEvent) bool {
	switch e.Type {
	case TouchDown, TouchUp, TouchDragged:
	default:
		return false
	}
	x, y := e.LocalPosition(e.ListenerActor)
	switch e.Type {
	case TouchDown:
		if d.pressedPointer != -1 {
			return false
		}
		if e.Pointer == 0 && d.Button != AnyButton && e.Button != d.Button {
			return false
		}
		d.pressedPointer = e.Pointer
		d.touchDownX, d.touchDownY = x, y
		d.dragX, d.dragY = e.StageX, e.StageY
		d.dragLastX, d.dragLastY = e.StageX, e.StageY
		return true
	case TouchDragged:
		if e.Pointer != d.pressedPointer {
			return true
		}
		if !d.dragging && (abs(d.touchDownX-x) > d.TapSquareSize/2 || abs(d.touchDownY-y) > d.TapSquareSize/2) {
			d.dragging = true
			if d.OnDragStart != nil {
				d.OnDragStart(e, x, y, e.Pointer)
			}
		}
		if d.dragging {
			d.dragLastX, d.dragLastY = d.dragX, d.dragY
			d.dragX, d.dragY = e.StageX, e.StageY
			if d.OnDrag != nil {
				d.OnDrag(e, x, y, e.Pointer)
			}
		}
		return true
	case TouchUp:
		if e.Pointer != d.pressedPointer {
			return true
		}
		if d.dragging && d.OnDragStop != nil {
			d.OnDragStop(e, x, y, e.Pointer)
		}
		d.dragging = false
		d.pressedPointer = -1
		return true
	}
	return false
}

// IsDragging reports whether a drag is in progress.
func (d *DragListener) IsDragging() bool { return d.dragging }

// DeltaX returns the stage distance moved along x by the last drag event.
func (d *DragListener) DeltaX() float64 { return d.dragX - d.dragLastX }

// DeltaY returns the stage distance moved along y by the last drag event.
func (d *DragListener) DeltaY() float64 { return d.dragY - d.dragLastY }

// Cancel abandons the current drag without calling OnDragStop.
func (d *DragListener) Cancel() {
	d.dragging = false
	d.pressedPointer = -1
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
