package ui

import (
	"github.com/OpticalFlyer/trellis/layout"
	"github.com/OpticalFlyer/trellis/scene"
)

// ButtonStyle is the look of a Button. Every drawable is optional; states
// without one are drawn with Up.
type ButtonStyle struct {
	Up, Over, Down       scene.Drawable
	Checked, CheckedOver scene.Drawable
	Disabled             scene.Drawable
	// The content is moved by the offset while pressed.
	PressedOffsetX, PressedOffsetY float64
}

// Button is a table that can be clicked and, optionally, stays checked
// between clicks. Each click toggles the checked state and fires a Changed
// event; cancelling the event reverts the toggle.
type Button struct {
	layout.Table

	style    *ButtonStyle
	click    *scene.ClickListener
	checked  bool
	disabled bool
	group    *ButtonGroup

	// ProgrammaticChangeEvents makes SetChecked fire Changed events too.
	ProgrammaticChangeEvents bool
}

// NewButton returns an empty button. Add content to it like to a table.
func NewButton(style *ButtonStyle) *Button {
	b := &Button{}
	b.Init(b)
	b.SetStyle(style)
	b.SetSize(b.PrefWidth(), b.PrefHeight())
	return b
}

// NewButton returns a button using the named ButtonStyle of the skin.
func (s *Skin) NewButton(style string) (*Button, error) {
	if s == nil {
		return nil, ErrNoSkin
	}
	st, err := Get[*ButtonStyle](s, styleName(style))
	if err != nil {
		return nil, err
	}
	return NewButton(st), nil
}

// Init prepares the button. Types embedding Button call it with themselves.
func (b *Button) Init(self scene.Actor) {
	b.Table.Init(self)
	b.ProgrammaticChangeEvents = true
	b.SetTouchable(scene.TouchEnabled)
	b.click = scene.NewClickListener(func(e *scene.InputEvent, x, y float64) {
		if b.disabled {
			return
		}
		b.setChecked(!b.checked, true)
	})
	b.AddListener(b.click)
}

// SetStyle replaces the look of the button. It panics if style is nil.
func (b *Button) SetStyle(style *ButtonStyle) {
	if style == nil {
		panic(errInvalid("nil button style"))
	}
	b.style = style
	b.SetBackground(b.background())
}

func (b *Button) Style() *ButtonStyle { return b.style }

// ClickListener returns the listener tracking presses of the button.
func (b *Button) ClickListener() *scene.ClickListener { return b.click }

// OnClick calls fn after each click of the enabled button.
func (b *Button) OnClick(fn func()) {
	self := b.Self()
	b.AddListener(scene.OnChange(func(e *scene.InputEvent, actor scene.Actor) {
		if actor == self {
			fn()
		}
	}))
}

func (b *Button) IsChecked() bool { return b.checked }

// SetChecked sets the checked state, firing a Changed event if
// ProgrammaticChangeEvents is set.
func (b *Button) SetChecked(checked bool) {
	b.setChecked(checked, b.ProgrammaticChangeEvents)
}

// Toggle inverts the checked state.
func (b *Button) Toggle() { b.SetChecked(!b.checked) }

func (b *Button) setChecked(checked, fire bool) {
	if b.checked == checked {
		return
	}
	if b.group != nil && !b.group.canCheck(b, checked) {
		return
	}
	b.checked = checked
	if fire && scene.FireChanged(b.Self()) {
		b.checked = !checked
		if b.group != nil {
			b.group.revert(b, checked)
		}
	}
}

func (b *Button) IsDisabled() bool { return b.disabled }

// SetDisabled stops clicks from changing the button.
func (b *Button) SetDisabled(disabled bool) { b.disabled = disabled }

// IsPressed reports whether the button is drawn pressed.
func (b *Button) IsPressed() bool { return b.click.IsVisualPressed() }

// IsOver reports whether the mouse is over the button.
func (b *Button) IsOver() bool { return b.click.IsOver() }

// background returns the drawable for the current state.
func (b *Button) background() scene.Drawable {
	s := b.style
	switch {
	case b.disabled && s.Disabled != nil:
		return s.Disabled
	case b.IsPressed() && s.Down != nil:
		return s.Down
	case b.IsOver() && b.checked && s.CheckedOver != nil:
		return s.CheckedOver
	case b.IsOver() && !b.checked && s.Over != nil:
		return s.Over
	case b.checked && s.Checked != nil:
		return s.Checked
	}
	return s.Up
}

// Draw draws the background for the current state and the content, moved
// by the pressed offset while pressed.
func (b *Button) Draw(batch *scene.Batch, parentAlpha float32) {
	b.SetBackground(b.background())
	b.Validate()
	dx, dy := 0.0, 0.0
	if b.IsPressed() && !b.disabled {
		dx, dy = b.style.PressedOffsetX, b.style.PressedOffsetY
	}
	if dx == 0 && dy == 0 {
		b.Table.Draw(batch, parentAlpha)
		return
	}
	children := b.Children()
	for _, c := range children {
		n := c.Base()
		n.SetPosition(n.X()+dx, n.Y()+dy)
	}
	b.Table.Draw(batch, parentAlpha)
	for _, c := range children {
		n := c.Base()
		n.SetPosition(n.X()-dx, n.Y()-dy)
	}
}

// PrefWidth is at least the width of every state's drawable.
func (b *Button) PrefWidth() float64 {
	w := b.Table.PrefWidth()
	for _, d := range b.drawables() {
		w = max(w, d.MinWidth())
	}
	return w
}

// PrefHeight is at least the height of every state's drawable.
func (b *Button) PrefHeight() float64 {
	h := b.Table.PrefHeight()
	for _, d := range b.drawables() {
		h = max(h, d.MinHeight())
	}
	return h
}

func (b *Button) MinWidth() float64  { return b.PrefWidth() }
func (b *Button) MinHeight() float64 { return b.PrefHeight() }

func (b *Button) drawables() []scene.Drawable {
	s := b.style
	out := make([]scene.Drawable, 0, 6)
	for _, d := range []scene.Drawable{s.Up, s.Over, s.Down, s.Checked, s.CheckedOver, s.Disabled} {
		if d != nil {
			out = append(out, d)
		}
	}
	return out
}
