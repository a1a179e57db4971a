package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/OpticalFlyer/trellis/layout"
	"github.com/OpticalFlyer/trellis/scene"
)

// TextButtonStyle is the look of a TextButton. The font colors other than
// FontColor are optional.
type TextButtonStyle struct {
	ButtonStyle
	Font text.Face

	FontColor         color.Color
	OverFontColor     color.Color
	DownFontColor     color.Color
	CheckedFontColor  color.Color
	DisabledFontColor color.Color
}

// TextButton is a button holding a centered label.
type TextButton struct {
	Button

	style *TextButtonStyle
	label *Label
}

// NewTextButton returns a button labelled s.
func NewTextButton(s string, style *TextButtonStyle) *TextButton {
	b := &TextButton{}
	b.Init(b)
	b.initLabel(s, style)
	b.label.SetAlignment(layout.Center)
	b.Add(b.label).Grow()
	b.SetSize(b.PrefWidth(), b.PrefHeight())
	return b
}

// NewTextButton returns a text button using the named TextButtonStyle of
// the skin.
func (s *Skin) NewTextButton(text, style string) (*TextButton, error) {
	if s == nil {
		return nil, ErrNoSkin
	}
	st, err := Get[*TextButtonStyle](s, styleName(style))
	if err != nil {
		return nil, err
	}
	return NewTextButton(text, st), nil
}

func (b *TextButton) initLabel(s string, style *TextButtonStyle) {
	if style == nil || style.Font == nil {
		panic(errInvalid("text button style needs a font"))
	}
	b.style = style
	b.SetStyle(&style.ButtonStyle)
	b.label = NewLabel(s, &LabelStyle{Font: style.Font, Color: style.FontColor})
}

func (b *TextButton) Label() *Label { return b.label }

func (b *TextButton) Text() string { return b.label.Text() }

func (b *TextButton) SetText(s string) { b.label.SetText(s) }

// fontColor returns the label color for the current state.
func (b *TextButton) fontColor() color.Color {
	s := b.style
	switch {
	case b.IsDisabled() && s.DisabledFontColor != nil:
		return s.DisabledFontColor
	case b.IsPressed() && s.DownFontColor != nil:
		return s.DownFontColor
	case b.IsChecked() && s.CheckedFontColor != nil:
		return s.CheckedFontColor
	case b.IsOver() && s.OverFontColor != nil:
		return s.OverFontColor
	}
	return s.FontColor
}

func (b *TextButton) Draw(batch *scene.Batch, parentAlpha float32) {
	b.label.SetColor(b.fontColor())
	b.Button.Draw(batch, parentAlpha)
}
