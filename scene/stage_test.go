package scene

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/hajimehoshi/ebiten/v2"
)

const leftButton = int(ebiten.MouseButtonLeft)

func newTestStage() (*Stage, *Node) {
	st := NewStage(200, 200)
	btn := newNode("btn", 10, 10, 50, 50)
	st.AddActor(btn)
	return st, btn
}

func TestClickListener(t *testing.T) {
	type point struct{ x, y float64 }
	tests := []struct {
		name   string
		down   point
		button int
		drags  []point
		up     point
		want   int
	}{
		{name: "release inside", down: point{20, 20}, button: leftButton, up: point{25, 25}, want: 1},
		{name: "release far outside", down: point{20, 20}, button: leftButton, up: point{150, 150}},
		{name: "release just outside within tap square", down: point{58, 58}, button: leftButton, up: point{62, 62}, want: 1},
		{
			name:   "drag out invalidates tap square",
			down:   point{58, 58},
			button: leftButton,
			drags:  []point{{100, 100}, {62, 62}},
			up:     point{62, 62},
		},
		{
			name:   "drag out and back in",
			down:   point{20, 20},
			button: leftButton,
			drags:  []point{{100, 100}, {30, 30}},
			up:     point{30, 30},
			want:   1,
		},
		{name: "other button", down: point{20, 20}, button: int(ebiten.MouseButtonRight), up: point{20, 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, btn := newTestStage()
			clicks := 0
			click := NewClickListener(func(*InputEvent, float64, float64) { clicks++ })
			btn.AddListener(click)

			st.TouchDown(tt.down.x, tt.down.y, 0, tt.button)
			for _, d := range tt.drags {
				st.TouchDragged(d.x, d.y, 0)
			}
			st.TouchUp(tt.up.x, tt.up.y, 0, tt.button)
			if clicks != tt.want {
				t.Errorf("clicks = %d; want %d", clicks, tt.want)
			}
			if click.IsPressed() {
				t.Errorf("still pressed after release")
			}
		})
	}
}

func TestClickListenerLocalPosition(t *testing.T) {
	st, btn := newTestStage()
	var got [2]float64
	btn.AddListener(NewClickListener(func(_ *InputEvent, x, y float64) { got = [2]float64{x, y} }))
	st.TouchDown(20, 30, 0, leftButton)
	st.TouchUp(25, 35, 0, leftButton)
	if got != [2]float64{15, 25} {
		t.Errorf("click at %v; want [15 25]", got)
	}
}

func TestClickListenerTapCount(t *testing.T) {
	st, btn := newTestStage()
	click := NewClickListener(nil)
	now := time.Unix(0, 0)
	click.now = func() time.Time { return now }
	btn.AddListener(click)

	tap := func(after time.Duration) int {
		now = now.Add(after)
		st.TouchDown(20, 20, 0, leftButton)
		st.TouchUp(20, 20, 0, leftButton)
		return click.TapCount()
	}
	got := []int{tap(0), tap(100 * time.Millisecond), tap(200 * time.Millisecond), tap(time.Second)}
	if diff := cmp.Diff([]int{1, 2, 3, 1}, got); diff != "" {
		t.Errorf("tap counts mismatch (-want +got):\n%s", diff)
	}
}

func TestClickListenerOver(t *testing.T) {
	st, btn := newTestStage()
	click := NewClickListener(nil)
	btn.AddListener(click)

	st.MouseMoved(20, 20)
	if !click.IsOver() {
		t.Errorf("IsOver() = false after moving onto the actor")
	}
	st.TouchDown(20, 20, 0, leftButton)
	if !click.IsVisualPressed() {
		t.Errorf("IsVisualPressed() = false while pressed over the actor")
	}
	if click.PressedButton() != leftButton {
		t.Errorf("PressedButton() = %d; want %d", click.PressedButton(), leftButton)
	}
	st.TouchUp(20, 20, 0, leftButton)
	st.MouseMoved(150, 150)
	if click.IsOver() {
		t.Errorf("IsOver() = true after leaving the actor")
	}
}

func TestEnterExit(t *testing.T) {
	st, btn := newTestStage()
	var events []string
	btn.AddListener(&InputListener{
		OnEnter: func(_ *InputEvent, x, y float64, pointer int, from Actor) {
			events = append(events, "enter")
		},
		OnExit: func(_ *InputEvent, x, y float64, pointer int, to Actor) {
			events = append(events, "exit")
		},
	})
	st.MouseMoved(20, 20)
	st.MouseMoved(30, 30)
	st.MouseMoved(150, 150)
	st.MouseMoved(20, 20)
	if diff := cmp.Diff([]string{"enter", "exit", "enter"}, events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestRemovingActorCancelsTouchFocus(t *testing.T) {
	st, btn := newTestStage()
	clicks := 0
	click := NewClickListener(func(*InputEvent, float64, float64) { clicks++ })
	btn.AddListener(click)

	st.TouchDown(20, 20, 0, leftButton)
	if !st.IsInteracting() {
		t.Fatalf("IsInteracting() = false during a press")
	}
	btn.Remove()
	if st.IsInteracting() {
		t.Errorf("IsInteracting() = true after removing the pressed actor")
	}
	if click.IsPressed() {
		t.Errorf("listener still pressed after cancel")
	}
	st.TouchUp(20, 20, 0, leftButton)
	if clicks != 0 {
		t.Errorf("clicks = %d; want 0", clicks)
	}
}

func TestCancelTouchFocusExcept(t *testing.T) {
	st, a := newTestStage()
	b := newNode("b", 100, 100, 50, 50)
	st.AddActor(b)
	ca, cb := NewClickListener(nil), NewClickListener(nil)
	ca.Button, cb.Button = AnyButton, AnyButton
	a.AddListener(ca)
	b.AddListener(cb)

	st.TouchDown(20, 20, 1, 0)
	st.TouchDown(120, 120, 2, 0)
	st.CancelTouchFocus(a)
	if !ca.IsPressed() {
		t.Errorf("excepted listener lost its press")
	}
	if cb.IsPressed() {
		t.Errorf("other listener still pressed")
	}
}

func TestDragListener(t *testing.T) {
	st, btn := newTestStage()
	drag := NewDragListener()
	var events []string
	drag.OnDragStart = func(*InputEvent, float64, float64, int) { events = append(events, "start") }
	drag.OnDrag = func(*InputEvent, float64, float64, int) { events = append(events, "drag") }
	drag.OnDragStop = func(*InputEvent, float64, float64, int) { events = append(events, "stop") }
	btn.AddListener(drag)

	st.TouchDown(20, 20, 0, leftButton)
	st.TouchDragged(22, 22, 0)
	if drag.IsDragging() {
		t.Fatalf("dragging inside the tap square")
	}
	st.TouchDragged(40, 25, 0)
	if !drag.IsDragging() {
		t.Fatalf("not dragging after leaving the tap square")
	}
	if drag.DeltaX() != 20 || drag.DeltaY() != 5 {
		t.Errorf("delta = (%v, %v); want (20, 5)", drag.DeltaX(), drag.DeltaY())
	}
	st.TouchDragged(50, 25, 0)
	if drag.DeltaX() != 10 || drag.DeltaY() != 0 {
		t.Errorf("delta = (%v, %v); want (10, 0)", drag.DeltaX(), drag.DeltaY())
	}
	st.TouchUp(50, 25, 0, leftButton)
	if drag.IsDragging() {
		t.Errorf("still dragging after release")
	}
	if diff := cmp.Diff([]string{"start", "drag", "drag", "stop"}, events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestKeyboardFocus(t *testing.T) {
	st, btn := newTestStage()
	var keys []ebiten.Key
	var chars []rune
	btn.AddListener(&InputListener{
		OnKeyDown:  func(_ *InputEvent, k ebiten.Key) bool { keys = append(keys, k); return true },
		OnKeyTyped: func(_ *InputEvent, c rune) bool { chars = append(chars, c); return true },
	})

	if st.KeyDown(ebiten.KeyA) {
		t.Errorf("key handled without focus")
	}
	st.SetKeyboardFocus(btn)
	if !st.KeyDown(ebiten.KeyB) {
		t.Errorf("focused key not handled")
	}
	st.KeyTyped('x')
	if diff := cmp.Diff([]ebiten.Key{ebiten.KeyB}, keys); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]rune{'x'}, chars); diff != "" {
		t.Errorf("chars mismatch (-want +got):\n%s", diff)
	}

	btn.Remove()
	if st.KeyboardFocus() != nil {
		t.Errorf("keyboard focus kept by removed actor")
	}
}

func TestScrolled(t *testing.T) {
	st, btn := newTestStage()
	other := newNode("other", 100, 100, 50, 50)
	st.AddActor(other)
	var got []string
	scroll := func(name string) *InputListener {
		return &InputListener{OnScrolled: func(_ *InputEvent, x, y, ax, ay float64) bool {
			got = append(got, name)
			return true
		}}
	}
	btn.AddListener(scroll("btn"))
	other.AddListener(scroll("other"))

	st.MouseMoved(20, 20)
	st.Scrolled(0, 1)
	st.SetScrollFocus(other)
	st.Scrolled(0, 1)
	other.Remove()
	st.Scrolled(0, 1)
	if diff := cmp.Diff([]string{"btn", "other", "btn"}, got); diff != "" {
		t.Errorf("scroll targets mismatch (-want +got):\n%s", diff)
	}
}

func TestStageViewport(t *testing.T) {
	st := NewStage(100, 50)
	st.SetViewport(320, 240)
	if st.Width() != 320 || st.Height() != 240 {
		t.Errorf("size = %vx%v; want 320x240", st.Width(), st.Height())
	}
	if st.Root().Width() != 320 || st.Root().Height() != 240 {
		t.Errorf("root size = %vx%v; want 320x240", st.Root().Width(), st.Root().Height())
	}
	n := newNode("n", 0, 0, 10, 10)
	st.AddActor(n)
	if n.Stage() != st {
		t.Errorf("added actor not attached to stage")
	}
	if got := st.Hit(5, 5); got != Actor(n) {
		t.Errorf("Hit(5, 5) = %v; want n", got)
	}
	n.Remove()
	if n.Stage() != nil {
		t.Errorf("removed actor still attached to stage")
	}
}
