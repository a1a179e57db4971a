package scene

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Pointer 0 is the mouse; touch n is reported as pointer n+1.
const mousePointer = 0

var mouseButtons = []ebiten.MouseButton{
	ebiten.MouseButtonLeft,
	ebiten.MouseButtonRight,
	ebiten.MouseButtonMiddle,
}

type inputState struct {
	mouseX, mouseY int
	mouseSeen      bool

	touchX map[ebiten.TouchID]int
	touchY map[ebiten.TouchID]int

	touches []ebiten.TouchID
	keys    []ebiten.Key
	chars   []rune
}

// PollInput translates this tick's ebiten input into stage events.
func (s *Stage) PollInput() {
	in := &s.input
	if in.touchX == nil {
		in.touchX = make(map[ebiten.TouchID]int)
		in.touchY = make(map[ebiten.TouchID]int)
	}
	s.pollMouse(in)
	s.pollTouches(in)
	s.pollKeys(in)
}

func (s *Stage) pollMouse(in *inputState) {
	x, y := ebiten.CursorPosition()
	fx, fy := float64(x), float64(y)
	moved := !in.mouseSeen || x != in.mouseX || y != in.mouseY
	in.mouseX, in.mouseY, in.mouseSeen = x, y, true

	for _, b := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(b) {
			s.TouchDown(fx, fy, mousePointer, int(b))
		}
	}
	if moved {
		dragging := false
		for _, b := range mouseButtons {
			if ebiten.IsMouseButtonPressed(b) {
				dragging = true
				break
			}
		}
		if dragging {
			s.TouchDragged(fx, fy, mousePointer)
		} else {
			s.MouseMoved(fx, fy)
		}
	}
	for _, b := range mouseButtons {
		if inpututil.IsMouseButtonJustReleased(b) {
			s.TouchUp(fx, fy, mousePointer, int(b))
		}
	}

	// ebiten reports positive y for scrolling up; stage amounts are positive
	// when scrolling down.
	if wx, wy := ebiten.Wheel(); wx != 0 || wy != 0 {
		s.Scrolled(-wx, -wy)
	}
}

func (s *Stage) pollTouches(in *inputState) {
	in.touches = inpututil.AppendJustPressedTouchIDs(in.touches[:0])
	for _, id := range in.touches {
		x, y := ebiten.TouchPosition(id)
		in.touchX[id], in.touchY[id] = x, y
		s.TouchDown(float64(x), float64(y), int(id)+1, 0)
	}

	in.touches = ebiten.AppendTouchIDs(in.touches[:0])
	for _, id := range in.touches {
		x, y := ebiten.TouchPosition(id)
		lastX, ok := in.touchX[id]
		if !ok {
			continue
		}
		if x != lastX || y != in.touchY[id] {
			in.touchX[id], in.touchY[id] = x, y
			s.TouchDragged(float64(x), float64(y), int(id)+1)
		}
	}

	in.touches = inpututil.AppendJustReleasedTouchIDs(in.touches[:0])
	for _, id := range in.touches {
		x, y := inpututil.TouchPositionInPreviousTick(id)
		delete(in.touchX, id)
		delete(in.touchY, id)
		s.TouchUp(float64(x), float64(y), int(id)+1, 0)
	}
}

func (s *Stage) pollKeys(in *inputState) {
	in.keys = inpututil.AppendJustPressedKeys(in.keys[:0])
	for _, k := range in.keys {
		s.KeyDown(k)
	}
	in.chars = ebiten.AppendInputChars(in.chars[:0])
	for _, r := range in.chars {
		s.KeyTyped(r)
	}
	in.keys = inpututil.AppendJustReleasedKeys(in.keys[:0])
	for _, k := range in.keys {
		s.KeyUp(k)
	}
}
