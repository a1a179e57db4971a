package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/OpticalFlyer/trellis/scene"
)

func TestContainerArrange(t *testing.T) {
	tests := []struct {
		name      string
		configure func(c *Container[*box])
		size      [2]float64
		want      bounds
	}{
		{
			name:      "centered at pref size",
			configure: func(*Container[*box]) {},
			size:      [2]float64{100, 50},
			want:      bounds{40, 20, 20, 10},
		},
		{
			name:      "fill",
			configure: func(c *Container[*box]) { c.Fill() },
			size:      [2]float64{100, 50},
			want:      bounds{0, 0, 100, 50},
		},
		{
			name:      "fill x aligned top left",
			configure: func(c *Container[*box]) { c.FillX().Align(TopLeft) },
			size:      [2]float64{100, 50},
			want:      bounds{0, 0, 100, 10},
		},
		{
			name:      "bottom right",
			configure: func(c *Container[*box]) { c.Align(BottomRight) },
			size:      [2]float64{100, 50},
			want:      bounds{80, 40, 20, 10},
		},
		{
			name:      "padded fill",
			configure: func(c *Container[*box]) { c.Pad(Fixed(5)).Fill() },
			size:      [2]float64{100, 50},
			want:      bounds{5, 5, 90, 40},
		},
		{
			name:      "max size caps fill",
			configure: func(c *Container[*box]) { c.MaxSize(Fixed(30)).Fill() },
			size:      [2]float64{100, 50},
			want:      bounds{35, 10, 30, 30},
		},
		{
			name:      "min size overflows",
			configure: func(c *Container[*box]) { c.MinSize(Fixed(60)) },
			size:      [2]float64{40, 40},
			want:      bounds{-10, -10, 60, 60},
		},
		{
			name:      "shrinks below pref",
			configure: func(c *Container[*box]) {},
			size:      [2]float64{10, 5},
			want:      bounds{0, 0, 10, 5},
		},
		{
			name:      "percent of container",
			configure: func(c *Container[*box]) { c.SizeWH(PercentWidthOf(0.5, c), PercentHeightOf(0.2, c)) },
			size:      [2]float64{100, 50},
			want:      bounds{25, 20, 50, 10},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newBox(0, 0, 20, 10)
			c := NewContainer(a)
			tt.configure(c)
			c.SetSize(tt.size[0], tt.size[1])
			c.Validate()
			if diff := cmp.Diff(tt.want, boundsOf(a)); diff != "" {
				t.Errorf("bounds mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestContainerSize(t *testing.T) {
	a := newBox(8, 4, 20, 10)
	c := NewContainer(a).PadTRBL(Fixed(1), Fixed(2), Fixed(3), Fixed(4))
	got := []float64{c.MinWidth(), c.MinHeight(), c.PrefWidth(), c.PrefHeight(), c.MaxWidth(), c.MaxHeight()}
	want := []float64{14, 8, 26, 14, 0, 0}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sizes mismatch (-want +got):\n%s", diff)
	}

	c.MaxSize(Fixed(50))
	if got := c.MaxWidth(); got != 56 {
		t.Errorf("MaxWidth() = %v; want 56", got)
	}

	c.Pad(Zero).SetBackground(&drawable{top: 2, left: 2, bottom: 2, right: 2, minW: 40, minH: 3})
	if got := c.PrefWidth(); got != 40 {
		t.Errorf("PrefWidth() with background = %v; want 40", got)
	}
}

func TestContainerBackgroundPadding(t *testing.T) {
	a := newBox(0, 0, 20, 10)
	c := NewContainer(a).Fill()
	c.SetBackground(&drawable{top: 1, left: 2, bottom: 3, right: 4})
	if got := c.PrefWidth(); got != 26 {
		t.Errorf("PrefWidth() = %v; want 26", got)
	}
	c.SetSize(50, 50)
	c.Validate()
	if diff := cmp.Diff(bounds{2, 1, 44, 46}, boundsOf(a)); diff != "" {
		t.Errorf("bounds mismatch (-want +got):\n%s", diff)
	}
}

func TestContainerSetActor(t *testing.T) {
	a := fixedBox(10, 10)
	b := fixedBox(20, 20)
	c := NewContainer(a)
	c.SetActor(b)
	if a.HasParent() {
		t.Errorf("replaced actor still has a parent")
	}
	if got, ok := c.Actor(); !ok || got != b {
		t.Errorf("Actor() = %v, %v; want new actor", got, ok)
	}
	if got := len(c.Children()); got != 1 {
		t.Errorf("len(Children()) = %d; want 1", got)
	}

	b.Remove()
	if _, ok := c.Actor(); ok {
		t.Errorf("container still holds removed actor")
	}
	if got := c.PrefWidth(); got != 0 {
		t.Errorf("empty PrefWidth() = %v; want 0", got)
	}
	c.SetSize(10, 10)
	c.Validate()
}

func TestContainerSelfPanics(t *testing.T) {
	c := NewContainer[scene.Actor](fixedBox(1, 1))
	expectPanic(t, ErrInvalidArgument, func() { c.SetActor(c) })
}

func TestContainerInTable(t *testing.T) {
	a := fixedBox(20, 10)
	c := NewContainer(a).Pad(Fixed(5))
	tb := NewTable()
	tb.Add(c).Grow()
	layoutAt(tb, 100, 60)
	if diff := cmp.Diff(bounds{0, 0, 100, 60}, boundsOf(c)); diff != "" {
		t.Errorf("container bounds mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(bounds{40, 25, 20, 10}, boundsOf(a)); diff != "" {
		t.Errorf("actor bounds mismatch (-want +got):\n%s", diff)
	}
}
