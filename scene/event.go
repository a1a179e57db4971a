package scene

import "github.com/hajimehoshi/ebiten/v2"

// EventType identifies the kind of an InputEvent.
type EventType uint8

const (
	TouchDown EventType = iota
	TouchUp
	TouchDragged
	MouseMoved
	Enter
	Exit
	Scrolled
	KeyDown
	KeyUp
	KeyTyped
	Changed
)

func (t EventType) String() string {
	switch t {
	case TouchDown:
		return "touchDown"
	case TouchUp:
		return "touchUp"
	case TouchDragged:
		return "touchDragged"
	case MouseMoved:
		return "mouseMoved"
	case Enter:
		return "enter"
	case Exit:
		return "exit"
	case Scrolled:
		return "scrolled"
	case KeyDown:
		return "keyDown"
	case KeyUp:
		return "keyUp"
	case KeyTyped:
		return "keyTyped"
	case Changed:
		return "changed"
	default:
		return "unknown"
	}
}

// InputEvent describes input delivered to actors. Positions are in stage
// coordinates; listeners convert them to the listener actor's coordinates.
type InputEvent struct {
	Type   EventType
	Stage  *Stage
	Target Actor
	// ListenerActor is the actor whose listener is currently handling the
	// event.
	ListenerActor Actor
	// RelatedActor is the actor being left on Enter and entered on Exit.
	RelatedActor Actor

	StageX, StageY   float64
	Pointer, Button  int
	ScrollX, ScrollY float64
	Key              ebiten.Key
	Char             rune

	handled, stopped, cancelled bool
}

// Handle marks the event as handled.
func (e *InputEvent) Handle() { e.handled = true }

// Stop prevents the event from reaching further actors.
func (e *InputEvent) Stop() { e.stopped = true }

// Cancel stops the event and marks it cancelled.
func (e *InputEvent) Cancel() {
	e.cancelled = true
	e.stopped = true
	e.handled = true
}

func (e *InputEvent) IsHandled() bool   { return e.handled }
func (e *InputEvent) IsStopped() bool   { return e.stopped }
func (e *InputEvent) IsCancelled() bool { return e.cancelled }

// LocalPosition returns the event position in a's coordinates.
func (e *InputEvent) LocalPosition(a Actor) (float64, float64) {
	return a.Base().StageToLocal(e.StageX, e.StageY)
}

// IsTouchFocusCancel reports whether the event is the synthetic TouchUp a
// stage sends when touch focus is taken away.
func (e *InputEvent) IsTouchFocusCancel() bool {
	return e.Type == TouchUp && e.StageX == cancelPosition && e.StageY == cancelPosition
}

const cancelPosition = -1 << 31
