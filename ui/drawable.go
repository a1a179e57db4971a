package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/OpticalFlyer/trellis/scene"
)

// Insets are the border sizes a drawable reserves around content drawn on
// top of it.
type Insets struct {
	Top, Right, Bottom, Left float64
}

// Tinter is implemented by drawables that can produce a tinted copy of
// themselves.
type Tinter interface {
	Tint(c color.Color) scene.Drawable
}

// ColorDrawable fills its rectangle with a solid color and an optional
// border.
type ColorDrawable struct {
	Color       color.Color
	BorderColor color.Color
	BorderWidth float64
	Insets      Insets
	// Width and Height are the minimum size, raised to the insets if they
	// are smaller.
	Width, Height float64
}

var (
	_ scene.Drawable = (*ColorDrawable)(nil)
	_ Tinter         = (*ColorDrawable)(nil)
)

func (d *ColorDrawable) Draw(b *scene.Batch, x, y, width, height float64, alpha float32) {
	if d.Color != nil {
		b.FillRect(x, y, width, height, scene.WithAlpha(d.Color, alpha))
	}
	if d.BorderColor != nil && d.BorderWidth > 0 {
		b.StrokeRect(x, y, width, height, d.BorderWidth, scene.WithAlpha(d.BorderColor, alpha))
	}
}

func (d *ColorDrawable) LeftWidth() float64    { return d.Insets.Left }
func (d *ColorDrawable) RightWidth() float64   { return d.Insets.Right }
func (d *ColorDrawable) TopHeight() float64    { return d.Insets.Top }
func (d *ColorDrawable) BottomHeight() float64 { return d.Insets.Bottom }
func (d *ColorDrawable) MinWidth() float64     { return max(d.Width, d.Insets.Left+d.Insets.Right) }
func (d *ColorDrawable) MinHeight() float64    { return max(d.Height, d.Insets.Top+d.Insets.Bottom) }

// Tint returns a copy whose colors are multiplied by c.
func (d *ColorDrawable) Tint(c color.Color) scene.Drawable {
	t := *d
	t.Color = multiply(d.Color, c)
	t.BorderColor = multiply(d.BorderColor, c)
	return &t
}

// ImageDrawable stretches an image over its rectangle.
type ImageDrawable struct {
	Image *ebiten.Image
	// Color tints the image; nil draws it unchanged.
	Color  color.Color
	Insets Insets
}

var (
	_ scene.Drawable = (*ImageDrawable)(nil)
	_ Tinter         = (*ImageDrawable)(nil)
)

func (d *ImageDrawable) Draw(b *scene.Batch, x, y, width, height float64, alpha float32) {
	if d.Image == nil {
		return
	}
	clr := d.Color
	if clr == nil {
		clr = color.White
	}
	b.DrawImage(d.Image, x, y, width, height, scene.WithAlpha(clr, alpha))
}

func (d *ImageDrawable) LeftWidth() float64    { return d.Insets.Left }
func (d *ImageDrawable) RightWidth() float64   { return d.Insets.Right }
func (d *ImageDrawable) TopHeight() float64    { return d.Insets.Top }
func (d *ImageDrawable) BottomHeight() float64 { return d.Insets.Bottom }

func (d *ImageDrawable) MinWidth() float64 {
	if d.Image == nil {
		return d.Insets.Left + d.Insets.Right
	}
	return float64(d.Image.Bounds().Dx())
}

func (d *ImageDrawable) MinHeight() float64 {
	if d.Image == nil {
		return d.Insets.Top + d.Insets.Bottom
	}
	return float64(d.Image.Bounds().Dy())
}

// Tint returns a copy drawn with color c.
func (d *ImageDrawable) Tint(c color.Color) scene.Drawable {
	t := *d
	t.Color = multiply(d.Color, c)
	return &t
}

// multiply returns the component-wise product of two colors. A nil color
// acts as white.
func multiply(a, b color.Color) color.Color {
	switch {
	case a == nil && b == nil:
		return nil
	case a == nil:
		return b
	case b == nil:
		return a
	}
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return color.RGBA64{
		R: uint16(ar * br / 0xffff),
		G: uint16(ag * bg / 0xffff),
		B: uint16(ab * bb / 0xffff),
		A: uint16(aa * ba / 0xffff),
	}
}
