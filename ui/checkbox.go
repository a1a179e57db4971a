package ui

import (
	"github.com/OpticalFlyer/trellis/layout"
	"github.com/OpticalFlyer/trellis/scene"
)

// CheckBoxStyle is the look of a CheckBox.
type CheckBoxStyle struct {
	TextButtonStyle
	CheckboxOn, CheckboxOff scene.Drawable
	// Optional.
	CheckboxOver                            scene.Drawable
	CheckboxOnDisabled, CheckboxOffDisabled scene.Drawable
	// Spacing between the box and the text.
	Spacing float64
}

// CheckBox is a text button showing its checked state as an image left of
// the text.
type CheckBox struct {
	TextButton

	style *CheckBoxStyle
	image *Image
}

// NewCheckBox returns an unchecked check box labelled s.
func NewCheckBox(s string, style *CheckBoxStyle) *CheckBox {
	c := &CheckBox{}
	c.Init(c)
	if style == nil || style.CheckboxOff == nil {
		panic(errInvalid("check box style needs an off drawable"))
	}
	c.style = style
	c.initLabel(s, &style.TextButtonStyle)
	c.label.SetAlignment(layout.Left)
	c.image = NewImage(style.CheckboxOff, ScalingNone)
	c.Add(c.image)
	c.Add(c.label).GrowX().PadLeft(layout.Fixed(style.Spacing))
	c.SetSize(c.PrefWidth(), c.PrefHeight())
	return c
}

// NewCheckBox returns a check box using the named CheckBoxStyle of the skin.
func (s *Skin) NewCheckBox(text, style string) (*CheckBox, error) {
	if s == nil {
		return nil, ErrNoSkin
	}
	st, err := Get[*CheckBoxStyle](s, styleName(style))
	if err != nil {
		return nil, err
	}
	return NewCheckBox(text, st), nil
}

func (c *CheckBox) Image() *Image { return c.image }

// box returns the drawable showing the current state.
func (c *CheckBox) box() scene.Drawable {
	s := c.style
	switch {
	case c.IsDisabled() && c.IsChecked() && s.CheckboxOnDisabled != nil:
		return s.CheckboxOnDisabled
	case c.IsDisabled() && !c.IsChecked() && s.CheckboxOffDisabled != nil:
		return s.CheckboxOffDisabled
	case c.IsChecked() && s.CheckboxOn != nil:
		return s.CheckboxOn
	case c.IsOver() && s.CheckboxOver != nil:
		return s.CheckboxOver
	}
	return s.CheckboxOff
}

func (c *CheckBox) Draw(batch *scene.Batch, parentAlpha float32) {
	c.image.SetDrawable(c.box())
	c.TextButton.Draw(batch, parentAlpha)
}
