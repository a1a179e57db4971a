package layout

import (
	"fmt"
	"math"

	"github.com/OpticalFlyer/trellis/scene"
)

// Container sizes and positions a single child using the same constraints
// as a table cell, without a grid.
type Container[T scene.Actor] struct {
	WidgetGroup

	actor    T
	hasActor bool

	minWidth, minHeight   Value
	prefWidth, prefHeight Value
	maxWidth, maxHeight   Value

	padTop, padLeft, padBottom, padRight Value

	fillX, fillY float64
	align        Align
	background   scene.Drawable
	clip         bool
	round        bool
}

var _ Layout = (*Container[scene.Actor])(nil)

// NewContainer returns a container holding actor.
func NewContainer[T scene.Actor](actor T) *Container[T] {
	c := &Container[T]{}
	c.Init(c)
	c.SetActor(actor)
	return c
}

// Init prepares the container. Types embedding Container call it with
// themselves before use.
func (c *Container[T]) Init(self scene.Actor) {
	c.WidgetGroup.Init(self)
	c.minWidth, c.minHeight = MinWidth, MinHeight
	c.prefWidth, c.prefHeight = PrefWidth, PrefHeight
	c.maxWidth, c.maxHeight = Zero, Zero
	c.padTop, c.padLeft, c.padBottom, c.padRight = backgroundTop, backgroundLeft, backgroundBottom, backgroundRight
	c.align = Center
	c.round = true
	c.SetTouchable(scene.TouchChildrenOnly)
}

// SetActor replaces the child. It panics if actor is the container itself.
func (c *Container[T]) SetActor(actor T) *Container[T] {
	a := scene.Actor(actor)
	if a != nil && a.Base() == c.Base() {
		panic(fmt.Errorf("%w: actor cannot be the container", ErrInvalidArgument))
	}
	if c.hasActor && scene.Actor(c.actor) == a {
		return c
	}
	if c.hasActor {
		old := c.actor
		c.clearActor()
		c.Group.RemoveActor(old)
	}
	if a == nil {
		return c
	}
	c.actor, c.hasActor = actor, true
	c.Group.AddActor(actor)
	return c
}

func (c *Container[T]) clearActor() {
	var zero T
	c.actor, c.hasActor = zero, false
}

// Actor returns the child and whether there is one.
func (c *Container[T]) Actor() (T, bool) { return c.actor, c.hasActor }

// RemoveActor removes a child, forgetting it if it is the container's
// actor.
func (c *Container[T]) RemoveActor(actor scene.Actor) bool {
	if c.hasActor && scene.Actor(c.actor) == actor {
		c.clearActor()
	}
	return c.Group.RemoveActor(actor)
}

func (c *Container[T]) actorOrNil() scene.Actor {
	if !c.hasActor {
		return nil
	}
	return c.actor
}

// Size sets the min, pref and max size of the child.
func (c *Container[T]) Size(v Value) *Container[T] { return c.SizeWH(v, v) }

// SizeWH sets the min, pref and max width and height of the child.
func (c *Container[T]) SizeWH(width, height Value) *Container[T] {
	c.minWidth, c.prefWidth, c.maxWidth = width, width, width
	c.minHeight, c.prefHeight, c.maxHeight = height, height, height
	c.InvalidateHierarchy()
	return c
}

func (c *Container[T]) MinSize(v Value) *Container[T] {
	c.minWidth, c.minHeight = v, v
	c.InvalidateHierarchy()
	return c
}

func (c *Container[T]) PrefSize(v Value) *Container[T] {
	c.prefWidth, c.prefHeight = v, v
	c.InvalidateHierarchy()
	return c
}

// MaxSize sets the max size of the child. 0 means unbounded.
func (c *Container[T]) MaxSize(v Value) *Container[T] {
	c.maxWidth, c.maxHeight = v, v
	c.InvalidateHierarchy()
	return c
}

// Pad sets the padding around the child. It panics if v is negative.
func (c *Container[T]) Pad(v Value) *Container[T] {
	return c.PadTRBL(v, v, v, v)
}

// PadTRBL sets the padding on each side. It panics if any is negative.
func (c *Container[T]) PadTRBL(top, right, bottom, left Value) *Container[T] {
	c.padTop = checkNonNegative("padTop", top)
	c.padRight = checkNonNegative("padRight", right)
	c.padBottom = checkNonNegative("padBottom", bottom)
	c.padLeft = checkNonNegative("padLeft", left)
	c.InvalidateHierarchy()
	return c
}

// Fill sizes the child to the whole container.
func (c *Container[T]) Fill() *Container[T] { return c.FillXY(1, 1) }
func (c *Container[T]) FillX() *Container[T] { return c.FillXY(1, c.fillY) }
func (c *Container[T]) FillY() *Container[T] { return c.FillXY(c.fillX, 1) }

func (c *Container[T]) FillXY(x, y float64) *Container[T] {
	c.fillX, c.fillY = x, y
	c.InvalidateHierarchy()
	return c
}

// Align sets where the child sits when it does not fill the container.
func (c *Container[T]) Align(a Align) *Container[T] {
	c.align = a
	c.InvalidateHierarchy()
	return c
}

func (c *Container[T]) SetBackground(d scene.Drawable) *Container[T] {
	if c.background == d {
		return c
	}
	old := c.background
	c.background = d
	if !sameDrawableSize(old, d) {
		c.InvalidateHierarchy()
	}
	return c
}

func (c *Container[T]) Background() scene.Drawable { return c.background }

func (c *Container[T]) SetClip(clip bool) *Container[T] {
	c.clip = clip
	return c
}

func (c *Container[T]) SetRound(round bool) *Container[T] {
	c.round = round
	c.InvalidateHierarchy()
	return c
}

func (c *Container[T]) padX() float64 {
	self := c.Self()
	return c.padLeft.Get(self) + c.padRight.Get(self)
}

func (c *Container[T]) padY() float64 {
	self := c.Self()
	return c.padTop.Get(self) + c.padBottom.Get(self)
}

func (c *Container[T]) MinWidth() float64 {
	return c.minWidth.Get(c.actorOrNil()) + c.padX()
}

func (c *Container[T]) MinHeight() float64 {
	return c.minHeight.Get(c.actorOrNil()) + c.padY()
}

func (c *Container[T]) PrefWidth() float64 {
	v := c.prefWidth.Get(c.actorOrNil())
	if c.background != nil {
		v = max(v, c.background.MinWidth())
	}
	return max(c.MinWidth(), v+c.padX())
}

func (c *Container[T]) PrefHeight() float64 {
	v := c.prefHeight.Get(c.actorOrNil())
	if c.background != nil {
		v = max(v, c.background.MinHeight())
	}
	return max(c.MinHeight(), v+c.padY())
}

func (c *Container[T]) MaxWidth() float64 {
	v := c.maxWidth.Get(c.actorOrNil())
	if v > 0 {
		v += c.padX()
	}
	return v
}

func (c *Container[T]) MaxHeight() float64 {
	v := c.maxHeight.Get(c.actorOrNil())
	if v > 0 {
		v += c.padY()
	}
	return v
}

// Arrange sizes and positions the child.
func (c *Container[T]) Arrange() {
	if !c.hasActor {
		return
	}
	a := scene.Actor(c.actor)
	self := c.Self()
	padLeft, padTop := c.padLeft.Get(self), c.padTop.Get(self)
	containerWidth := c.Width() - padLeft - c.padRight.Get(self)
	containerHeight := c.Height() - padTop - c.padBottom.Get(self)

	minW, minH := c.minWidth.Get(a), c.minHeight.Get(a)
	prefW, prefH := c.prefWidth.Get(a), c.prefHeight.Get(a)
	maxW, maxH := c.maxWidth.Get(a), c.maxHeight.Get(a)

	width := min(prefW, containerWidth)
	if c.fillX > 0 {
		width = containerWidth * c.fillX
	}
	width = max(width, minW)
	if maxW > 0 {
		width = min(width, maxW)
	}
	height := min(prefH, containerHeight)
	if c.fillY > 0 {
		height = containerHeight * c.fillY
	}
	height = max(height, minH)
	if maxH > 0 {
		height = min(height, maxH)
	}

	x := padLeft + c.align.offsetX(containerWidth, width)
	y := padTop + c.align.offsetY(containerHeight, height)
	if c.round {
		x, y = math.Floor(x), math.Floor(y)
		width, height = math.Ceil(width), math.Ceil(height)
	}
	a.Base().SetBounds(x, y, width, height)
	if l, ok := a.(Layout); ok {
		l.Validate()
	}
}

// Draw validates the container and draws its background and child.
func (c *Container[T]) Draw(b *scene.Batch, parentAlpha float32) {
	c.layout().Validate()
	if c.background != nil {
		c.background.Draw(b, c.X(), c.Y(), c.Width(), c.Height(), parentAlpha*c.Alpha())
	}
	if !c.clip {
		c.DrawChildren(b, parentAlpha)
		return
	}
	b.Push(c.X(), c.Y())
	clipped := b.PushClip(0, 0, c.Width(), c.Height())
	b.Pop()
	if clipped {
		c.DrawChildren(b, parentAlpha)
		b.PopClip()
	}
}

// Hit ignores points outside the container's bounds when clipping.
func (c *Container[T]) Hit(x, y float64, touchable bool) scene.Actor {
	if c.clip {
		if touchable && c.Touchable() == scene.TouchDisabled {
			return nil
		}
		if x < 0 || x >= c.Width() || y < 0 || y >= c.Height() {
			return nil
		}
	}
	return c.Group.Hit(x, y, touchable)
}
