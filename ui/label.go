package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/OpticalFlyer/trellis/layout"
	"github.com/OpticalFlyer/trellis/scene"
)

// LabelStyle is the look of a Label.
type LabelStyle struct {
	Font  text.Face
	Color color.Color
	// Background is optional. Its borders pad the text.
	Background scene.Drawable
}

// Label draws text. Lines are separated by '\n'; the preferred size fits
// the widest line and every line.
type Label struct {
	layout.Widget

	style *LabelStyle
	text  string
	align layout.Align
	color color.Color

	sizeInvalid           bool
	textWidth, textHeight float64
	textX, textY          float64
}

// NewLabel returns a label sized to its text. It panics if style has no
// font.
func NewLabel(s string, style *LabelStyle) *Label {
	l := &Label{text: s, align: layout.Left}
	l.Init(l)
	l.SetStyle(style)
	l.SetSize(l.PrefWidth(), l.PrefHeight())
	return l
}

// NewLabel returns a label using the named LabelStyle of the skin.
func (s *Skin) NewLabel(text, style string) (*Label, error) {
	if s == nil {
		return nil, ErrNoSkin
	}
	st, err := Get[*LabelStyle](s, styleName(style))
	if err != nil {
		return nil, err
	}
	return NewLabel(text, st), nil
}

// SetStyle replaces the look of the label.
func (l *Label) SetStyle(style *LabelStyle) {
	if style == nil || style.Font == nil {
		panic(errInvalid("label style needs a font"))
	}
	l.style = style
	l.sizeInvalid = true
	l.InvalidateHierarchy()
}

func (l *Label) Style() *LabelStyle { return l.style }

func (l *Label) Text() string { return l.text }

// SetText changes the text, relaying out the label's ancestors if it did.
func (l *Label) SetText(s string) {
	if s == l.text {
		return
	}
	l.text = s
	l.sizeInvalid = true
	l.InvalidateHierarchy()
}

// SetAlignment positions the text within the label's bounds when the label
// is bigger than its text. The default is left, vertically centered.
func (l *Label) SetAlignment(a layout.Align) {
	l.align = a
	l.Invalidate()
}

// SetColor overrides the style color; nil restores it.
func (l *Label) SetColor(c color.Color) { l.color = c }

func (l *Label) computeSize() {
	l.sizeInvalid = false
	l.textWidth, l.textHeight = measure(l.text, l.style.Font)
}

func (l *Label) PrefWidth() float64 {
	if l.sizeInvalid {
		l.computeSize()
	}
	w := l.textWidth
	if bg := l.style.Background; bg != nil {
		w = max(w+bg.LeftWidth()+bg.RightWidth(), bg.MinWidth())
	}
	return w
}

func (l *Label) PrefHeight() float64 {
	if l.sizeInvalid {
		l.computeSize()
	}
	h := l.textHeight
	if bg := l.style.Background; bg != nil {
		h = max(h+bg.TopHeight()+bg.BottomHeight(), bg.MinHeight())
	}
	return h
}

// Arrange positions the text within the label.
func (l *Label) Arrange() {
	if l.sizeInvalid {
		l.computeSize()
	}
	x, y := 0.0, 0.0
	width, height := l.Width(), l.Height()
	if bg := l.style.Background; bg != nil {
		x, y = bg.LeftWidth(), bg.TopHeight()
		width -= bg.LeftWidth() + bg.RightWidth()
		height -= bg.TopHeight() + bg.BottomHeight()
	}
	switch l.align.Horizontal() {
	case 1:
		x += width - l.textWidth
	case 0:
		x += (width - l.textWidth) / 2
	}
	switch l.align.Vertical() {
	case 1:
		y += height - l.textHeight
	case 0:
		y += (height - l.textHeight) / 2
	}
	l.textX, l.textY = x, y
}

// TextPosition returns where the text block starts within the label.
func (l *Label) TextPosition() (float64, float64) {
	l.Validate()
	return l.textX, l.textY
}

func (l *Label) Draw(b *scene.Batch, parentAlpha float32) {
	l.Validate()
	alpha := parentAlpha * l.Alpha()
	if bg := l.style.Background; bg != nil {
		bg.Draw(b, l.X(), l.Y(), l.Width(), l.Height(), alpha)
	}
	if l.text == "" {
		return
	}
	clr := l.color
	if clr == nil {
		clr = l.style.Color
	}
	if clr == nil {
		clr = color.White
	}
	// Lines align among themselves the way the block aligns in the label.
	x, textAlign := l.textX, text.AlignStart
	switch l.align.Horizontal() {
	case 1:
		x, textAlign = l.textX+l.textWidth, text.AlignEnd
	case 0:
		x, textAlign = l.textX+l.textWidth/2, text.AlignCenter
	}
	b.DrawText(l.text, l.style.Font, l.X()+x, l.Y()+l.textY, lineHeight(l.style.Font), textAlign, scene.WithAlpha(clr, alpha))
}
