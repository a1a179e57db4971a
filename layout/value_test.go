package layout

import (
	"testing"

	"github.com/OpticalFlyer/trellis/scene"
)

func TestValueGet(t *testing.T) {
	w := newBox(10, 20, 30, 40)
	w.maxW, w.maxH = 50, 60
	w.SetSize(100, 200)

	plain := &scene.Node{}
	plain.SetSize(7, 9)

	tests := []struct {
		name    string
		value   Value
		context scene.Actor
		want    float64
	}{
		{name: "zero", value: Zero, context: w, want: 0},
		{name: "fixed ignores context", value: Fixed(12.5), context: w, want: 12.5},
		{name: "fixed without context", value: Fixed(3), want: 3},
		{name: "min width", value: MinWidth, context: w, want: 10},
		{name: "min height", value: MinHeight, context: w, want: 20},
		{name: "pref width", value: PrefWidth, context: w, want: 30},
		{name: "pref height", value: PrefHeight, context: w, want: 40},
		{name: "max width", value: MaxWidth, context: w, want: 50},
		{name: "max height", value: MaxHeight, context: w, want: 60},
		{name: "percent width", value: PercentWidth(0.25), context: w, want: 25},
		{name: "percent height", value: PercentHeight(0.5), context: w, want: 100},
		{name: "no context", value: PrefWidth, want: 0},
		{name: "non layout min uses width", value: MinWidth, context: plain, want: 7},
		{name: "non layout pref uses height", value: PrefHeight, context: plain, want: 9},
		{name: "non layout max uses width", value: MaxWidth, context: plain, want: 7},
		{name: "explicit actor wins", value: PrefWidthOf(w), context: plain, want: 30},
		{name: "explicit actor without context", value: MaxHeightOf(w), want: 60},
		{name: "explicit percent", value: PercentWidthOf(0.1, w), context: plain, want: 10},
		{name: "background without drawable", value: backgroundTop, context: NewTable(), want: 0},
		{name: "background of non table", value: backgroundLeft, context: w, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.Get(tt.context); got != tt.want {
				t.Errorf("Get() = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestValueBackground(t *testing.T) {
	table := NewTable()
	table.SetBackground(&drawable{top: 1, left: 2, bottom: 3, right: 4})
	tests := []struct {
		value Value
		want  float64
	}{
		{backgroundTop, 1},
		{backgroundLeft, 2},
		{backgroundBottom, 3},
		{backgroundRight, 4},
	}
	for _, tt := range tests {
		t.Run(tt.value.String(), func(t *testing.T) {
			if got := tt.value.Get(table); got != tt.want {
				t.Errorf("Get() = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestValueExplicitNilActorPanics(t *testing.T) {
	ctors := map[string]func(){
		"MinWidthOf":      func() { MinWidthOf(nil) },
		"MinHeightOf":     func() { MinHeightOf(nil) },
		"PrefWidthOf":     func() { PrefWidthOf(nil) },
		"PrefHeightOf":    func() { PrefHeightOf(nil) },
		"MaxWidthOf":      func() { MaxWidthOf(nil) },
		"MaxHeightOf":     func() { MaxHeightOf(nil) },
		"PercentWidthOf":  func() { PercentWidthOf(1, nil) },
		"PercentHeightOf": func() { PercentHeightOf(1, nil) },
	}
	for name, fn := range ctors {
		t.Run(name, func(t *testing.T) {
			expectPanic(t, ErrInvalidArgument, fn)
		})
	}
}

func TestValueString(t *testing.T) {
	tests := map[string]Value{
		"4.5":                Fixed(4.5),
		"prefWidth":          PrefWidth,
		"percentHeight(0.5)": PercentHeight(0.5),
	}
	for want, v := range tests {
		if got := v.String(); got != want {
			t.Errorf("String() = %q; want %q", got, want)
		}
	}
}

func TestAlign(t *testing.T) {
	tests := []struct {
		align      Align
		horizontal int
		vertical   int
		str        string
	}{
		{Center, 0, 0, "center"},
		{TopLeft, -1, -1, "top,left"},
		{BottomRight, 1, 1, "bottom,right"},
		{Top, 0, -1, "top"},
		{Right | Center, 1, 0, "right"},
	}
	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			if got := tt.align.Horizontal(); got != tt.horizontal {
				t.Errorf("Horizontal() = %d; want %d", got, tt.horizontal)
			}
			if got := tt.align.Vertical(); got != tt.vertical {
				t.Errorf("Vertical() = %d; want %d", got, tt.vertical)
			}
			if got := tt.align.String(); got != tt.str {
				t.Errorf("String() = %q; want %q", got, tt.str)
			}
		})
	}
}
