package ui

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/OpticalFlyer/trellis/scene"
)

// stageWithWindow places a 200x150 window at (100, 100) on an 800x600
// stage.
func stageWithWindow() (*scene.Stage, *Window, *cursorLog) {
	s := scene.NewStage(800, 600)
	w := NewWindow("Layers", windowStyle())
	cursors := &cursorLog{}
	w.setCursor = cursors.set
	s.AddActor(w)
	w.SetBounds(100, 100, 200, 150)
	w.Validate()
	return s, w, cursors
}

func TestWindowTitleBar(t *testing.T) {
	_, w, _ := stageWithWindow()
	if got := w.PadTopValue().Get(w); got != titleBarHeight {
		t.Errorf("top padding = %v; want the title bar height %v", got, titleBarHeight)
	}
	if got, want := boundsOf(w.TitleTable()), (bounds{4, 0, 192, titleBarHeight}); got != want {
		t.Errorf("title bar bounds = %+v; want %+v", got, want)
	}
	if w.TitleLabel().Text() != "Layers" {
		t.Errorf("title = %q", w.TitleLabel().Text())
	}

	content := newBox(10, 10, 300, 50)
	w.Add(content)
	w.ClearChildren()
	if w.TitleTable().Parent() == nil || content.Parent() != nil {
		t.Error("ClearChildren removed the title bar or kept the content")
	}
}

func TestWindowDrag(t *testing.T) {
	s, w, _ := stageWithWindow()
	s.TouchDown(200, 110, 0, leftButton)
	if !w.IsDragging() {
		t.Fatal("press in the title bar did not start a drag")
	}
	s.TouchDragged(250, 160, 0)
	s.TouchUp(250, 160, 0, leftButton)
	if w.IsDragging() {
		t.Error("still dragging after release")
	}
	if got, want := boundsOf(w), (bounds{150, 150, 200, 150}); got != want {
		t.Errorf("bounds = %+v; want %+v", got, want)
	}

	w.SetMovable(false)
	drag(s, 200, 160, 300, 260)
	if got, want := boundsOf(w), (bounds{150, 150, 200, 150}); got != want {
		t.Errorf("immovable window moved to %+v", got)
	}
}

func TestWindowResize(t *testing.T) {
	tests := []struct {
		name     string
		from, to [2]float64
		want     bounds
	}{
		{"right edge", [2]float64{298, 175}, [2]float64{348, 175}, bounds{100, 100, 250, 150}},
		{"right edge min width", [2]float64{298, 175}, [2]float64{148, 175}, bounds{100, 100, minWindowWidth, 150}},
		{"left edge keeps right side", [2]float64{102, 175}, [2]float64{52, 175}, bounds{50, 100, 250, 150}},
		{"bottom edge", [2]float64{200, 248}, [2]float64{200, 278}, bounds{100, 100, 200, 180}},
		{"top left corner", [2]float64{102, 102}, [2]float64{92, 92}, bounds{90, 90, 210, 160}},
		{"top edge min height", [2]float64{200, 102}, [2]float64{200, 302}, bounds{100, 200, 200, minWindowHeight}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, w, _ := stageWithWindow()
			s.TouchDown(tt.from[0], tt.from[1], 0, leftButton)
			if !w.IsResizing() {
				t.Fatal("press on the edge did not start a resize")
			}
			s.TouchDragged(tt.to[0], tt.to[1], 0)
			s.TouchUp(tt.to[0], tt.to[1], 0, leftButton)
			if got := boundsOf(w); got != tt.want {
				t.Errorf("bounds = %+v; want %+v", got, tt.want)
			}
		})
	}
}

func TestWindowCursor(t *testing.T) {
	s, w, cursors := stageWithWindow()
	steps := []struct {
		x, y float64
		want ebiten.CursorShapeType
	}{
		{298, 175, ebiten.CursorShapeEWResize},
		{200, 248, ebiten.CursorShapeNSResize},
		{102, 102, ebiten.CursorShapeNWSEResize},
		{200, 110, ebiten.CursorShapeMove},
		{200, 200, ebiten.CursorShapeDefault},
	}
	for _, step := range steps {
		s.MouseMoved(step.x, step.y)
		if got := cursors.last(); got != step.want {
			t.Errorf("cursor at (%v, %v) = %v; want %v", step.x, step.y, got, step.want)
		}
	}
	n := len(*cursors)
	s.MouseMoved(201, 200)
	if len(*cursors) != n {
		t.Error("cursor set again without a change")
	}

	w.SetResizable(false)
	s.MouseMoved(298, 175)
	if got := cursors.last(); got != ebiten.CursorShapeDefault {
		t.Errorf("cursor over the edge of a fixed window = %v", got)
	}
}

func TestWindowDock(t *testing.T) {
	tests := []struct {
		name   string
		to     [2]float64
		dock   Dock
		docked bounds
	}{
		{"left", [2]float64{5, 300}, DockLeft, bounds{0, 0, defaultDockSize, 600}},
		{"right", [2]float64{795, 300}, DockRight, bounds{600, 0, defaultDockSize, 600}},
		{"top", [2]float64{400, 5}, DockTop, bounds{0, 0, 800, defaultDockSize}},
		{"bottom", [2]float64{400, 595}, DockBottom, bounds{0, 400, 800, defaultDockSize}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, w, _ := stageWithWindow()
			s.TouchDown(200, 110, 0, leftButton)
			s.TouchDragged(tt.to[0], tt.to[1], 0)
			if w.DockPreview() != tt.dock {
				t.Errorf("preview = %v; want %v", w.DockPreview(), tt.dock)
			}
			s.TouchUp(tt.to[0], tt.to[1], 0, leftButton)
			if w.Dock() != tt.dock || w.DockPreview() != DockNone {
				t.Errorf("dock, preview = %v, %v; want %v, none", w.Dock(), w.DockPreview(), tt.dock)
			}
			if got := boundsOf(w); got != tt.docked {
				t.Errorf("docked bounds = %+v; want %+v", got, tt.docked)
			}

			w.Undock()
			if w.Dock() != DockNone || w.Width() != 200 || w.Height() != 150 {
				t.Errorf("after Undock: dock %v, size %vx%v; want none, 200x150", w.Dock(), w.Width(), w.Height())
			}
		})
	}
}

func TestWindowDockPreviewCancelled(t *testing.T) {
	s, w, _ := stageWithWindow()
	s.TouchDown(200, 110, 0, leftButton)
	s.TouchDragged(5, 300, 0)
	s.TouchDragged(300, 300, 0)
	if w.DockPreview() != DockNone {
		t.Errorf("preview = %v after leaving the edge", w.DockPreview())
	}
	s.TouchUp(300, 300, 0, leftButton)
	if w.Dock() != DockNone || w.Width() != 200 || w.Height() != 150 {
		t.Errorf("dock %v, size %vx%v; want none, 200x150", w.Dock(), w.Width(), w.Height())
	}
}

func TestDockedWindow(t *testing.T) {
	s, w, _ := stageWithWindow()
	w.DockTo(DockLeft)

	// Only the side facing the stage resizes, and the dock keeps the width.
	s.TouchDown(198, 300, 0, leftButton)
	s.TouchDragged(248, 300, 0)
	s.TouchUp(248, 300, 0, leftButton)
	if got, want := boundsOf(w), (bounds{0, 0, 250, 600}); got != want {
		t.Errorf("after resize = %+v; want %+v", got, want)
	}
	s.SetViewport(800, 700)
	w.Act(0)
	if got, want := boundsOf(w), (bounds{0, 0, 250, 700}); got != want {
		t.Errorf("after stage resize = %+v; want %+v", got, want)
	}

	// Dragging the title bar undocks at the undocked size.
	s.TouchDown(125, 10, 0, leftButton)
	if w.Dock() != DockNone || w.Width() != 200 || w.Height() != 150 {
		t.Errorf("dock %v, size %vx%v; want none, 200x150", w.Dock(), w.Width(), w.Height())
	}
	s.TouchUp(125, 10, 0, leftButton)

	w.SetDockable(false)
	drag(s, 150, 10, 5, 300)
	if w.Dock() != DockNone {
		t.Errorf("undockable window docked %v", w.Dock())
	}
}

func TestModalWindow(t *testing.T) {
	s, w, _ := stageWithWindow()
	other := newBox(0, 0, 0, 0)
	other.SetBounds(500, 500, 50, 50)
	s.Root().AddActorAt(0, other)

	if got := s.Hit(520, 520); got != scene.Actor(other) {
		t.Fatalf("Hit beside a modeless window = %v; want the other actor", got)
	}
	w.SetModal(true)
	if got := s.Hit(520, 520); got != scene.Actor(w) {
		t.Errorf("Hit beside a modal window = %v; want the window", got)
	}
	s.SetKeyboardFocus(w)
	if !s.KeyDown(ebiten.KeyA) {
		t.Error("modal window did not consume a key")
	}
}

func TestDialog(t *testing.T) {
	newDialog := func() (*scene.Stage, *Dialog, *TextButton, *[]any) {
		s := scene.NewStage(800, 600)
		d := NewDialog("Remove layer", windowStyle())
		d.setCursor = nil
		ok := NewTextButton("OK", textButtonStyle())
		d.Text(NewLabel("Remove roads?", labelStyle()))
		d.Button(ok, true)
		d.Button(NewTextButton("Cancel", textButtonStyle()), false)
		d.Key(ebiten.KeyEscape, false)
		results := &[]any{}
		d.OnResult(func(v any) { *results = append(*results, v) })
		return s, d, ok, results
	}

	t.Run("show centers and focuses", func(t *testing.T) {
		s, d, _, _ := newDialog()
		d.Show(s)
		if d.Stage() != s || s.KeyboardFocus() != scene.Actor(d) {
			t.Fatal("dialog not shown with keyboard focus")
		}
		if d.Width() != d.PrefWidth() || d.X() != math.Round((800-d.Width())/2) {
			t.Errorf("dialog bounds %+v not centered at its pref size", boundsOf(d))
		}
		if !d.IsModal() {
			t.Error("dialog is not modal")
		}
	})
	t.Run("button", func(t *testing.T) {
		s, d, ok, results := newDialog()
		d.Show(s)
		x, y := ok.LocalToStage(ok.Width()/2, ok.Height()/2)
		s.MouseMoved(x, y)
		click(s, x, y)
		if diff := cmp.Diff([]any{true}, *results); diff != "" {
			t.Errorf("results mismatch (-want +got):\n%s", diff)
		}
		if d.Stage() != nil {
			t.Error("dialog still shown")
		}
	})
	t.Run("key", func(t *testing.T) {
		s, d, _, results := newDialog()
		d.Show(s)
		s.KeyDown(ebiten.KeyEscape)
		if diff := cmp.Diff([]any{false}, *results); diff != "" {
			t.Errorf("results mismatch (-want +got):\n%s", diff)
		}
		if d.Stage() != nil {
			t.Error("dialog still shown")
		}
	})
	t.Run("cancel keeps it open", func(t *testing.T) {
		s, d, _, _ := newDialog()
		d.OnResult(func(v any) { d.Cancel() })
		d.Show(s)
		s.KeyDown(ebiten.KeyEscape)
		if d.Stage() != s {
			t.Error("cancelled dialog was hidden")
		}
		s.KeyDown(ebiten.KeyEscape)
		if d.Stage() != s {
			t.Error("second cancel hid the dialog")
		}
	})
	t.Run("hide restores focus", func(t *testing.T) {
		s, d, _, _ := newDialog()
		field := newBox(0, 0, 10, 10)
		s.AddActor(field)
		s.SetKeyboardFocus(field)
		d.Show(s)
		d.Hide()
		if s.KeyboardFocus() != scene.Actor(field) {
			t.Errorf("keyboard focus = %v; want the previous focus", s.KeyboardFocus())
		}
	})
}
