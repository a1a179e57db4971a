package scene

import (
	"fmt"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

type touchFocus struct {
	listener      Listener
	listenerActor Actor
	target        Actor
	pointer       int
	button        int
}

type pointerState struct {
	x, y    float64
	touched bool
	over    Actor
}

// Stage owns the root of the actor tree, routes input to actors and draws
// them. It implements the ebiten Update/Draw/Layout cycle through Update,
// Draw and SetViewport.
type Stage struct {
	root   *Group
	width  float64
	height float64

	pointers      map[int]*pointerState
	touchFocuses  []touchFocus
	keyboardFocus Actor
	scrollFocus   Actor

	input  inputState
	logger *slog.Logger
}

// NewStage creates a stage with the given viewport size.
func NewStage(width, height float64) *Stage {
	s := &Stage{
		root:     NewGroup(),
		pointers: make(map[int]*pointerState),
		logger:   slog.Default().With("component", "stage"),
	}
	s.root.setStage(s)
	s.SetViewport(width, height)
	return s
}

// SetLogger replaces the logger used for focus changes.
func (s *Stage) SetLogger(l *slog.Logger) {
	s.logger = l.With("component", "stage")
}

// Root returns the root group.
func (s *Stage) Root() *Group { return s.root }

// AddActor adds an actor to the root group.
func (s *Stage) AddActor(a Actor) { s.root.AddActor(a) }

// Actors returns the children of the root group.
func (s *Stage) Actors() []Actor { return s.root.Children() }

func (s *Stage) Width() float64  { return s.width }
func (s *Stage) Height() float64 { return s.height }

// SetViewport resizes the stage and its root group.
func (s *Stage) SetViewport(width, height float64) {
	s.width, s.height = width, height
	s.root.SetSize(width, height)
	for _, a := range s.root.Children() {
		if v, ok := a.(interface{ Invalidate() }); ok {
			v.Invalidate()
		}
	}
}

// Update polls ebiten input and advances every actor by one tick.
func (s *Stage) Update() error {
	s.PollInput()
	s.Act(1 / float64(ebiten.TPS()))
	return nil
}

// Act refreshes which actors the pointers are over and updates the tree.
func (s *Stage) Act(delta float64) {
	for pointer, p := range s.pointers {
		if pointer == 0 || p.touched {
			p.over = s.fireEnterAndExit(p.over, p.x, p.y, pointer)
		}
	}
	s.root.Act(delta)
}

// Draw draws every visible actor onto screen.
func (s *Stage) Draw(screen *ebiten.Image) {
	if !s.root.Visible() {
		return
	}
	b := NewBatch(screen)
	s.root.Draw(b, 1)
}

// ShowDebugInfo draws frame rate and pointer information.
func (s *Stage) ShowDebugInfo(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, s.DebugInfo())
}

// DebugInfo returns the text drawn by ShowDebugInfo.
func (s *Stage) DebugInfo() string {
	fps := ebiten.ActualFPS()
	tps := ebiten.ActualTPS()
	return fmt.Sprintf("FPS: %.2f TPS: %.2f\nActors: %d Focus: %d",
		fps, tps, countActors(s.root), len(s.touchFocuses))
}

func countActors(a Actor) int {
	n := 1
	if p, ok := a.(Parent); ok {
		for _, c := range p.Children() {
			n += countActors(c)
		}
	}
	return n
}

// IsInteracting reports whether any actor other than the root holds touch
// focus, so callers can keep input away from what lies under the UI.
func (s *Stage) IsInteracting() bool {
	for _, f := range s.touchFocuses {
		if f.listenerActor != Actor(s.root) {
			return true
		}
	}
	return false
}

// Hit returns the deepest touchable actor at the stage point, or nil.
func (s *Stage) Hit(x, y float64) Actor {
	return s.root.Hit(x-s.root.x, y-s.root.y, true)
}

func (s *Stage) pointer(p int) *pointerState {
	ps, ok := s.pointers[p]
	if !ok {
		ps = &pointerState{}
		s.pointers[p] = ps
	}
	return ps
}

func (s *Stage) fireEnterAndExit(overLast Actor, x, y float64, pointer int) Actor {
	over := s.Hit(x, y)
	if over == overLast {
		return overLast
	}
	if overLast != nil && overLast.Base().Stage() == s {
		e := &InputEvent{Type: Exit, Stage: s, StageX: x, StageY: y, Pointer: pointer, RelatedActor: over}
		overLast.Base().Fire(e)
	}
	if over != nil {
		e := &InputEvent{Type: Enter, Stage: s, StageX: x, StageY: y, Pointer: pointer, RelatedActor: overLast}
		over.Base().Fire(e)
	}
	return over
}

// TouchDown delivers a press to the actor under the point and reports
// whether any listener handled it.
func (s *Stage) TouchDown(x, y float64, pointer, button int) bool {
	p := s.pointer(pointer)
	p.x, p.y, p.touched = x, y, true
	target := s.Hit(x, y)
	if target == nil {
		if s.root.Touchable() != TouchEnabled {
			return false
		}
		target = s.root
	}
	e := &InputEvent{Type: TouchDown, Stage: s, StageX: x, StageY: y, Pointer: pointer, Button: button}
	target.Base().Fire(e)
	return e.handled
}

// TouchDragged delivers a drag to the listeners holding touch focus for
// the pointer.
func (s *Stage) TouchDragged(x, y float64, pointer int) bool {
	p := s.pointer(pointer)
	p.x, p.y = x, y
	p.over = s.fireEnterAndExit(p.over, x, y, pointer)
	if len(s.touchFocuses) == 0 {
		return false
	}
	e := &InputEvent{Type: TouchDragged, Stage: s, StageX: x, StageY: y, Pointer: pointer}
	for _, f := range append([]touchFocus(nil), s.touchFocuses...) {
		if f.pointer != pointer || !s.hasTouchFocus(f) {
			continue
		}
		e.Target = f.target
		e.ListenerActor = f.listenerActor
		if f.listener.Handle(e) {
			e.handled = true
		}
	}
	return e.handled
}

// TouchUp delivers a release to the listeners holding touch focus for the
// pointer and drops their focus.
func (s *Stage) TouchUp(x, y float64, pointer, button int) bool {
	p := s.pointer(pointer)
	p.x, p.y, p.touched = x, y, false
	if pointer != 0 {
		if p.over != nil {
			s.fireEnterAndExit(p.over, cancelPosition, cancelPosition, pointer)
		}
		delete(s.pointers, pointer)
	}
	if len(s.touchFocuses) == 0 {
		return false
	}
	e := &InputEvent{Type: TouchUp, Stage: s, StageX: x, StageY: y, Pointer: pointer, Button: button}
	for _, f := range append([]touchFocus(nil), s.touchFocuses...) {
		if f.pointer != pointer || f.button != button {
			continue
		}
		if !s.removeTouchFocus(f) {
			continue
		}
		e.Target = f.target
		e.ListenerActor = f.listenerActor
		if f.listener.Handle(e) {
			e.handled = true
		}
	}
	return e.handled
}

// MouseMoved delivers pointer motion without a pressed button.
func (s *Stage) MouseMoved(x, y float64) bool {
	p := s.pointer(0)
	p.x, p.y = x, y
	p.over = s.fireEnterAndExit(p.over, x, y, 0)
	target := s.Hit(x, y)
	if target == nil {
		target = s.root
	}
	e := &InputEvent{Type: MouseMoved, Stage: s, StageX: x, StageY: y}
	target.Base().Fire(e)
	return e.handled
}

// Scrolled delivers wheel movement to the scroll focus, or to the actor
// under the mouse when nothing has scroll focus.
func (s *Stage) Scrolled(amountX, amountY float64) bool {
	p := s.pointer(0)
	target := s.scrollFocus
	if target == nil {
		target = s.Hit(p.x, p.y)
	}
	if target == nil {
		target = s.root
	}
	e := &InputEvent{Type: Scrolled, Stage: s, StageX: p.x, StageY: p.y, ScrollX: amountX, ScrollY: amountY}
	target.Base().Fire(e)
	return e.handled
}

// KeyDown delivers a key press to the keyboard focus.
func (s *Stage) KeyDown(key ebiten.Key) bool {
	return s.fireKey(&InputEvent{Type: KeyDown, Key: key})
}

// KeyUp delivers a key release to the keyboard focus.
func (s *Stage) KeyUp(key ebiten.Key) bool {
	return s.fireKey(&InputEvent{Type: KeyUp, Key: key})
}

// KeyTyped delivers a typed character to the keyboard focus.
func (s *Stage) KeyTyped(char rune) bool {
	return s.fireKey(&InputEvent{Type: KeyTyped, Char: char})
}

func (s *Stage) fireKey(e *InputEvent) bool {
	target := s.keyboardFocus
	if target == nil {
		target = s.root
	}
	e.Stage = s
	target.Base().Fire(e)
	return e.handled
}

func (s *Stage) addTouchFocus(l Listener, listenerActor, target Actor, pointer, button int) {
	f := touchFocus{listener: l, listenerActor: listenerActor, target: target, pointer: pointer, button: button}
	if s.hasTouchFocus(f) {
		return
	}
	s.touchFocuses = append(s.touchFocuses, f)
}

func (s *Stage) hasTouchFocus(f touchFocus) bool {
	for _, existing := range s.touchFocuses {
		if existing == f {
			return true
		}
	}
	return false
}

func (s *Stage) removeTouchFocus(f touchFocus) bool {
	for i, existing := range s.touchFocuses {
		if existing == f {
			s.touchFocuses = append(s.touchFocuses[:i], s.touchFocuses[i+1:]...)
			return true
		}
	}
	return false
}

// CancelTouchFocus sends a cancelling TouchUp to every listener holding
// touch focus except those registered on except, which may be nil.
func (s *Stage) CancelTouchFocus(except Actor) {
	s.cancelTouchFocusWhere(func(f touchFocus) bool {
		return except == nil || f.listenerActor != except
	})
}

// CancelTouchFocusOf cancels the touch focus held by listeners on actor or
// any of its descendants.
func (s *Stage) CancelTouchFocusOf(actor Actor) {
	s.cancelTouchFocusWhere(func(f touchFocus) bool {
		return f.listenerActor.Base().IsDescendantOf(actor)
	})
}

func (s *Stage) cancelTouchFocusWhere(match func(touchFocus) bool) {
	e := &InputEvent{Type: TouchUp, Stage: s, StageX: cancelPosition, StageY: cancelPosition}
	for _, f := range append([]touchFocus(nil), s.touchFocuses...) {
		if !match(f) || !s.removeTouchFocus(f) {
			continue
		}
		e.Target = f.target
		e.ListenerActor = f.listenerActor
		e.Pointer = f.pointer
		e.Button = f.button
		f.listener.Handle(e)
	}
}

// KeyboardFocus returns the actor receiving key events, or nil.
func (s *Stage) KeyboardFocus() Actor { return s.keyboardFocus }

// SetKeyboardFocus routes key events to a. Passing nil routes them to the
// root.
func (s *Stage) SetKeyboardFocus(a Actor) {
	if s.keyboardFocus == a {
		return
	}
	s.keyboardFocus = a
	s.logger.Debug("keyboard focus changed", "actor", actorName(a))
}

// ScrollFocus returns the actor receiving scroll events, or nil.
func (s *Stage) ScrollFocus() Actor { return s.scrollFocus }

// SetScrollFocus routes scroll events to a. Passing nil routes them to the
// actor under the mouse.
func (s *Stage) SetScrollFocus(a Actor) {
	if s.scrollFocus == a {
		return
	}
	s.scrollFocus = a
	s.logger.Debug("scroll focus changed", "actor", actorName(a))
}

// unfocus drops every kind of focus held by actor or its descendants. It
// is called when actor leaves the tree.
func (s *Stage) unfocus(actor Actor) {
	s.CancelTouchFocusOf(actor)
	if s.scrollFocus != nil && s.scrollFocus.Base().IsDescendantOf(actor) {
		s.SetScrollFocus(nil)
	}
	if s.keyboardFocus != nil && s.keyboardFocus.Base().IsDescendantOf(actor) {
		s.SetKeyboardFocus(nil)
	}
	for _, p := range s.pointers {
		if p.over != nil && p.over.Base().IsDescendantOf(actor) {
			p.over = nil
		}
	}
}

// SetDebugAll turns debug drawing on or off for every actor in the tree.
func (s *Stage) SetDebugAll(debug bool) {
	setDebugTree(s.root, debug)
}

func setDebugTree(a Actor, debug bool) {
	a.Base().SetDebug(debug)
	if p, ok := a.(Parent); ok {
		for _, c := range p.Children() {
			setDebugTree(c, debug)
		}
	}
}

func actorName(a Actor) string {
	if a == nil {
		return "<nil>"
	}
	if name := a.Base().Name(); name != "" {
		return name
	}
	return fmt.Sprintf("%T", a)
}
