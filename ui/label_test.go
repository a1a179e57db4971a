package ui

import (
	"testing"

	"github.com/OpticalFlyer/trellis/layout"
	"github.com/OpticalFlyer/trellis/scene"
)

func TestLabelPrefSize(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		background scene.Drawable
		wantW      float64
		wantH      float64
	}{
		{name: "single line", text: "abc", wantW: 21, wantH: 13},
		{name: "widest line wins", text: "ab\nabcd", wantW: 28, wantH: 26},
		{name: "empty", text: "", wantW: 0, wantH: 0},
		{name: "background insets", text: "abc", background: padded(1, 2, 3, 4), wantW: 27, wantH: 17},
		{name: "background min size", text: "a", background: solid(30, 20), wantW: 30, wantH: 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style := labelStyle()
			style.Background = tt.background
			l := NewLabel(tt.text, style)
			if l.PrefWidth() != tt.wantW || l.PrefHeight() != tt.wantH {
				t.Errorf("pref = %vx%v; want %vx%v", l.PrefWidth(), l.PrefHeight(), tt.wantW, tt.wantH)
			}
			if l.MinWidth() != tt.wantW || l.MinHeight() != tt.wantH {
				t.Errorf("min = %vx%v; want the pref size", l.MinWidth(), l.MinHeight())
			}
			if l.Width() != tt.wantW || l.Height() != tt.wantH {
				t.Errorf("initial size = %vx%v; want the pref size", l.Width(), l.Height())
			}
		})
	}
}

func TestLabelAlignment(t *testing.T) {
	tests := []struct {
		name         string
		align        layout.Align
		wantX, wantY float64
	}{
		{"default", 0, 0, 10},
		{"center", layout.Center, 10, 10},
		{"top left", layout.TopLeft, 0, 0},
		{"bottom right", layout.BottomRight, 20, 20},
		{"right", layout.Right, 20, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLabel("abc", labelStyle())
			if tt.align != 0 {
				l.SetAlignment(tt.align)
			}
			l.SetSize(41, 33)
			x, y := l.TextPosition()
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("text at (%v, %v); want (%v, %v)", x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestLabelSetTextRelayouts(t *testing.T) {
	l := NewLabel("abc", labelStyle())
	table := layout.NewTable()
	table.Add(l)
	table.Pack()
	if table.Width() != 21 {
		t.Fatalf("table width = %v; want 21", table.Width())
	}

	l.SetText("abc")
	if table.NeedsLayout() {
		t.Error("setting the same text invalidated the table")
	}
	l.SetText("abcdef")
	if !table.NeedsLayout() {
		t.Fatal("changing the text did not invalidate the table")
	}
	table.Pack()
	if table.Width() != 42 || l.Width() != 42 {
		t.Errorf("widths after SetText = %v, %v; want 42", table.Width(), l.Width())
	}
}

func TestLabelNeedsFont(t *testing.T) {
	expectPanic(t, layout.ErrInvalidArgument, func() { NewLabel("x", &LabelStyle{}) })
	expectPanic(t, layout.ErrInvalidArgument, func() { NewLabel("x", nil) })
}

func TestImageScaling(t *testing.T) {
	tests := []struct {
		name    string
		scaling Scaling
		align   layout.Align
		want    scene.Rectangle
	}{
		{"none", ScalingNone, layout.Center, scene.Rectangle{X: 40, Y: 45, Width: 20, Height: 10}},
		{"fit", ScalingFit, layout.Center, scene.Rectangle{X: 0, Y: 25, Width: 100, Height: 50}},
		{"fit top", ScalingFit, layout.Top, scene.Rectangle{X: 0, Y: 0, Width: 100, Height: 50}},
		{"fill", ScalingFill, layout.Center, scene.Rectangle{X: -50, Y: 0, Width: 200, Height: 100}},
		{"stretch", ScalingStretch, layout.Center, scene.Rectangle{X: 0, Y: 0, Width: 100, Height: 100}},
		{"none bottom right", ScalingNone, layout.BottomRight, scene.Rectangle{X: 80, Y: 90, Width: 20, Height: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := NewImage(solid(20, 10), tt.scaling)
			img.SetAlignment(tt.align)
			img.SetSize(100, 100)
			if got := img.ImageBounds(); got != tt.want {
				t.Errorf("ImageBounds = %+v; want %+v", got, tt.want)
			}
		})
	}
}

func TestImageSetDrawable(t *testing.T) {
	img := NewImage(solid(20, 10), ScalingNone)
	table := layout.NewTable()
	table.Add(img)
	table.Pack()

	img.SetDrawable(solid(20, 10))
	if table.NeedsLayout() {
		t.Error("same sized drawable invalidated the table")
	}
	img.SetDrawable(solid(30, 10))
	if !table.NeedsLayout() {
		t.Error("resized drawable did not invalidate the table")
	}
	if img.MinWidth() != 0 || img.PrefWidth() != 30 {
		t.Errorf("min, pref width = %v, %v; want 0, 30", img.MinWidth(), img.PrefWidth())
	}
}
