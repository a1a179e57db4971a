package ui

import (
	"github.com/OpticalFlyer/trellis/layout"
	"github.com/OpticalFlyer/trellis/scene"
)

// Scaling decides how an Image fits its drawable into its bounds.
type Scaling uint8

const (
	// ScalingNone draws the drawable at its min size.
	ScalingNone Scaling = iota
	// ScalingFit scales uniformly so the whole drawable is visible.
	ScalingFit
	// ScalingFill scales uniformly so the drawable covers the bounds.
	ScalingFill
	// ScalingStretch scales each axis to the bounds.
	ScalingStretch
)

// Image draws a drawable, sized by its min size.
type Image struct {
	layout.Widget

	drawable scene.Drawable
	scaling  Scaling
	align    layout.Align

	imageX, imageY          float64
	imageWidth, imageHeight float64
}

// NewImage returns an image widget sized to d.
func NewImage(d scene.Drawable, scaling Scaling) *Image {
	i := &Image{drawable: d, scaling: scaling, align: layout.Center}
	i.Init(i)
	i.SetSize(i.PrefWidth(), i.PrefHeight())
	return i
}

// SetDrawable replaces the drawable, relaying out if its size changed.
func (i *Image) SetDrawable(d scene.Drawable) {
	if i.drawable == d {
		return
	}
	if d == nil || i.drawable == nil ||
		d.MinWidth() != i.drawable.MinWidth() || d.MinHeight() != i.drawable.MinHeight() {
		i.drawable = d
		i.InvalidateHierarchy()
		return
	}
	i.drawable = d
}

func (i *Image) Drawable() scene.Drawable { return i.drawable }

func (i *Image) SetScaling(s Scaling) {
	i.scaling = s
	i.Invalidate()
}

func (i *Image) SetAlignment(a layout.Align) {
	i.align = a
	i.Invalidate()
}

func (i *Image) MinWidth() float64  { return 0 }
func (i *Image) MinHeight() float64 { return 0 }

func (i *Image) PrefWidth() float64 {
	if i.drawable == nil {
		return 0
	}
	return i.drawable.MinWidth()
}

func (i *Image) PrefHeight() float64 {
	if i.drawable == nil {
		return 0
	}
	return i.drawable.MinHeight()
}

// Arrange computes the drawn rectangle for the current bounds.
func (i *Image) Arrange() {
	if i.drawable == nil {
		i.imageX, i.imageY, i.imageWidth, i.imageHeight = 0, 0, 0, 0
		return
	}
	srcW, srcH := i.drawable.MinWidth(), i.drawable.MinHeight()
	w, h := i.Width(), i.Height()
	switch i.scaling {
	case ScalingNone:
		w, h = srcW, srcH
	case ScalingFit, ScalingFill:
		if srcW > 0 && srcH > 0 {
			sx, sy := w/srcW, h/srcH
			s := min(sx, sy)
			if i.scaling == ScalingFill {
				s = max(sx, sy)
			}
			w, h = srcW*s, srcH*s
		}
	}
	i.imageWidth, i.imageHeight = w, h
	switch i.align.Horizontal() {
	case -1:
		i.imageX = 0
	case 1:
		i.imageX = i.Width() - w
	default:
		i.imageX = (i.Width() - w) / 2
	}
	switch i.align.Vertical() {
	case -1:
		i.imageY = 0
	case 1:
		i.imageY = i.Height() - h
	default:
		i.imageY = (i.Height() - h) / 2
	}
}

// ImageBounds returns the rectangle the drawable is drawn in, relative to
// the widget.
func (i *Image) ImageBounds() scene.Rectangle {
	i.Validate()
	return scene.Rectangle{X: i.imageX, Y: i.imageY, Width: i.imageWidth, Height: i.imageHeight}
}

func (i *Image) Draw(b *scene.Batch, parentAlpha float32) {
	i.Validate()
	if i.drawable == nil {
		return
	}
	i.drawable.Draw(b, i.X()+i.imageX, i.Y()+i.imageY, i.imageWidth, i.imageHeight, parentAlpha*i.Alpha())
}
