package ui

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/OpticalFlyer/trellis/layout"
	"github.com/OpticalFlyer/trellis/scene"
)

const dialogSpacing = 6.0

// Dialog is a modal window with a content table above a row of buttons.
// Clicking a button added with Button, or pressing a key added with Key,
// passes the associated value to the result callback and hides the dialog.
type Dialog struct {
	Window

	content *layout.Table
	buttons *layout.Table

	values     map[scene.Actor]any
	keys       map[ebiten.Key]any
	result     func(value any)
	cancelHide bool

	previousKeyboardFocus scene.Actor
	previousScrollFocus   scene.Actor
}

// NewDialog returns an empty modal dialog titled title.
func NewDialog(title string, style *WindowStyle) *Dialog {
	d := &Dialog{
		values: make(map[scene.Actor]any),
		keys:   make(map[ebiten.Key]any),
	}
	d.Init(d)
	d.initWindow(title, style)
	d.SetModal(true)
	d.SetDockable(false)

	d.content = layout.NewTable()
	d.content.Defaults().Space(layout.Fixed(dialogSpacing))
	d.buttons = layout.NewTable()
	d.buttons.Defaults().Space(layout.Fixed(dialogSpacing))
	d.Add(d.content).Grow().Pad(layout.Fixed(dialogSpacing))
	d.Row()
	d.Add(d.buttons).FillX().Pad(layout.Fixed(dialogSpacing))

	d.buttons.AddListener(scene.OnChange(func(e *scene.InputEvent, actor scene.Actor) {
		for a := actor; a != nil && a.Base().Parent() != nil; a = a.Base().Parent() {
			if a.Base().Parent() != scene.Parent(d.buttons) {
				continue
			}
			if v, ok := d.values[a]; ok {
				d.finish(v)
			}
			return
		}
	}))
	d.AddListener(&scene.InputListener{
		OnKeyDown: func(e *scene.InputEvent, key ebiten.Key) bool {
			if v, ok := d.keys[key]; ok {
				d.finish(v)
				return true
			}
			return false
		},
	})
	return d
}

// NewDialog returns a dialog using the named WindowStyle of the skin.
func (s *Skin) NewDialog(title, style string) (*Dialog, error) {
	if s == nil {
		return nil, ErrNoSkin
	}
	st, err := Get[*WindowStyle](s, styleName(style))
	if err != nil {
		return nil, err
	}
	return NewDialog(title, st), nil
}

func (d *Dialog) ContentTable() *layout.Table { return d.content }
func (d *Dialog) ButtonTable() *layout.Table  { return d.buttons }

// Text adds a label to the content table.
func (d *Dialog) Text(label *Label) *Dialog {
	d.content.Add(label)
	return d
}

// Button adds a button that closes the dialog with value.
func (d *Dialog) Button(button scene.Actor, value any) *Dialog {
	d.buttons.Add(button)
	d.values[button] = value
	return d
}

// Key makes pressing key close the dialog with value.
func (d *Dialog) Key(key ebiten.Key, value any) *Dialog {
	d.keys[key] = value
	return d
}

// OnResult sets the callback receiving the value of the button or key that
// closed the dialog.
func (d *Dialog) OnResult(fn func(value any)) { d.result = fn }

// Cancel keeps the dialog open. It is called from the result callback.
func (d *Dialog) Cancel() { d.cancelHide = true }

func (d *Dialog) finish(value any) {
	if d.result != nil {
		d.result(value)
	}
	if !d.cancelHide {
		d.Hide()
	}
	d.cancelHide = false
}

// Show adds the dialog to stage, centered at its preferred size, and gives
// it keyboard and scroll focus.
func (d *Dialog) Show(stage *scene.Stage) *Dialog {
	stage.CancelTouchFocus(nil)
	d.previousKeyboardFocus = stage.KeyboardFocus()
	d.previousScrollFocus = stage.ScrollFocus()
	stage.AddActor(d)
	d.Pack()
	d.SetPosition(math.Round((stage.Width()-d.Width())/2), math.Round((stage.Height()-d.Height())/2))
	stage.SetKeyboardFocus(d)
	stage.SetScrollFocus(d)
	return d
}

// Hide removes the dialog from its stage and restores the focus it took.
func (d *Dialog) Hide() {
	stage := d.Stage()
	if stage == nil {
		return
	}
	if a := d.previousKeyboardFocus; a != nil && a.Base().Stage() == nil {
		d.previousKeyboardFocus = nil
	}
	if a := d.previousScrollFocus; a != nil && a.Base().Stage() == nil {
		d.previousScrollFocus = nil
	}
	d.Remove()
	if f := stage.KeyboardFocus(); f == nil || f.Base().IsDescendantOf(d) {
		stage.SetKeyboardFocus(d.previousKeyboardFocus)
	}
	if f := stage.ScrollFocus(); f == nil || f.Base().IsDescendantOf(d) {
		stage.SetScrollFocus(d.previousScrollFocus)
	}
	d.previousKeyboardFocus, d.previousScrollFocus = nil, nil
}
