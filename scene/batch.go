package scene

import (
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	whiteOnce  sync.Once
	whiteImage *ebiten.Image
)

// whiteSubImage is the one pixel source used for solid triangles.
func whiteSubImage() *ebiten.Image {
	whiteOnce.Do(func() {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	})
	return whiteImage
}

type origin struct{ x, y float64 }

// Batch draws onto a target image in the coordinates of the actor being
// drawn. Groups push their position before drawing children and pop it
// afterwards.
type Batch struct {
	dst    *ebiten.Image
	x, y   float64
	stack  []origin
	clips  []*ebiten.Image
	vertex []ebiten.Vertex
}

// NewBatch returns a batch drawing onto dst.
func NewBatch(dst *ebiten.Image) *Batch {
	return &Batch{dst: dst}
}

// Target returns the image currently drawn to, clipped if a clip is active.
func (b *Batch) Target() *ebiten.Image {
	if n := len(b.clips); n > 0 {
		return b.clips[n-1]
	}
	return b.dst
}

// Origin returns the current translation in target pixels.
func (b *Batch) Origin() (float64, float64) { return b.x, b.y }

// Push translates subsequent drawing by (dx, dy).
func (b *Batch) Push(dx, dy float64) {
	b.stack = append(b.stack, origin{b.x, b.y})
	b.x += dx
	b.y += dy
}

// Pop restores the translation saved by the matching Push.
func (b *Batch) Pop() {
	n := len(b.stack)
	if n == 0 {
		return
	}
	o := b.stack[n-1]
	b.stack = b.stack[:n-1]
	b.x, b.y = o.x, o.y
}

// PushClip restricts drawing to the rectangle until PopClip. It returns
// false, pushing nothing, if the visible area is empty.
func (b *Batch) PushClip(x, y, width, height float64) bool {
	r := image.Rect(
		int(math.Floor(b.x+x)), int(math.Floor(b.y+y)),
		int(math.Ceil(b.x+x+width)), int(math.Ceil(b.y+y+height)),
	)
	r = r.Intersect(b.Target().Bounds())
	if r.Empty() {
		return false
	}
	b.clips = append(b.clips, b.Target().SubImage(r).(*ebiten.Image))
	return true
}

// PopClip removes the clip pushed last.
func (b *Batch) PopClip() {
	if n := len(b.clips); n > 0 {
		b.clips = b.clips[:n-1]
	}
}

// FillRect fills a rectangle.
func (b *Batch) FillRect(x, y, width, height float64, clr color.Color) {
	if width <= 0 || height <= 0 {
		return
	}
	vector.DrawFilledRect(b.Target(),
		float32(b.x+x), float32(b.y+y), float32(width), float32(height), clr, false)
}

// StrokeRect outlines a rectangle with lines of the given width.
func (b *Batch) StrokeRect(x, y, width, height, strokeWidth float64, clr color.Color) {
	vector.StrokeRect(b.Target(),
		float32(b.x+x), float32(b.y+y), float32(width), float32(height),
		float32(strokeWidth), clr, false)
}

// StrokeLine draws a line segment.
func (b *Batch) StrokeLine(x0, y0, x1, y1, strokeWidth float64, clr color.Color) {
	vector.StrokeLine(b.Target(),
		float32(b.x+x0), float32(b.y+y0), float32(b.x+x1), float32(b.y+y1),
		float32(strokeWidth), clr, false)
}

// DrawText draws s with its top-left corner at (x, y). Multiple lines are
// separated by lineSpacing pixels.
func (b *Batch) DrawText(s string, face text.Face, x, y, lineSpacing float64, align text.Align, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(b.x+x, b.y+y)
	op.ColorScale.ScaleWithColor(clr)
	op.LineSpacing = lineSpacing
	op.PrimaryAlign = align
	text.Draw(b.Target(), s, face, op)
}

// DrawImage scales img to fill the rectangle, tinted by clr.
func (b *Batch) DrawImage(img *ebiten.Image, x, y, width, height float64, clr color.Color) {
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(width/float64(bounds.Dx()), height/float64(bounds.Dy()))
	op.GeoM.Translate(b.x+x, b.y+y)
	op.ColorScale.ScaleWithColor(clr)
	op.Filter = ebiten.FilterLinear
	b.Target().DrawImage(img, op)
}

// DrawTriangles fills indexed triangles given as x,y pairs in local
// coordinates, scaled by scale and offset by (x, y).
func (b *Batch) DrawTriangles(points []float64, indices []uint16, x, y, scale float64, clr color.Color) {
	if len(indices) == 0 {
		return
	}
	r, g, bl, a := clr.RGBA()
	cr, cg, cb, ca := float32(r)/0xffff, float32(g)/0xffff, float32(bl)/0xffff, float32(a)/0xffff
	b.vertex = b.vertex[:0]
	for i := 0; i+1 < len(points); i += 2 {
		b.vertex = append(b.vertex, ebiten.Vertex{
			DstX:   float32(b.x + x + points[i]*scale),
			DstY:   float32(b.y + y + points[i+1]*scale),
			SrcX:   1.5,
			SrcY:   1.5,
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		})
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true, ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha}
	b.Target().DrawTriangles(b.vertex, indices, whiteSubImage(), op)
}

// WithAlpha scales the alpha of clr, keeping it premultiplied.
func WithAlpha(clr color.Color, alpha float32) color.Color {
	if alpha >= 1 {
		return clr
	}
	r, g, b, a := clr.RGBA()
	f := float64(max(alpha, 0))
	return color.RGBA64{
		R: uint16(float64(r) * f),
		G: uint16(float64(g) * f),
		B: uint16(float64(b) * f),
		A: uint16(float64(a) * f),
	}
}

// Drawable knows how to draw itself to fill a rectangle. Its border sizes
// pad whatever is laid out on top of it.
type Drawable interface {
	Draw(b *Batch, x, y, width, height float64, alpha float32)
	LeftWidth() float64
	RightWidth() float64
	TopHeight() float64
	BottomHeight() float64
	MinWidth() float64
	MinHeight() float64
}
