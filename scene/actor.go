// Package scene implements the retained actor tree the layout engine and
// widgets are built on: actors with bounds, groups that own children, a
// stage that routes input and drawing, and listeners that react to input.
//
// Coordinates are y-down, matching ebiten. An actor's position is relative
// to its parent.
package scene

// Actor represents the basic building block of the scene.
// All scene elements must implement this interface, usually by embedding
// Node (leaves) or Group (containers) and calling Init with themselves.
type Actor interface {
	Base() *Node
	Act(delta float64)
	Draw(b *Batch, parentAlpha float32)
	Hit(x, y float64, touchable bool) Actor
}

// Parent represents an Actor that can hold and manage other Actors.
type Parent interface {
	Actor
	AddActor(child Actor)
	RemoveActor(child Actor) bool
	Children() []Actor
}

// Touchable determines how touch input is distributed to an actor and its
// children.
type Touchable uint8

const (
	// TouchEnabled delivers input to the actor and its children.
	TouchEnabled Touchable = iota
	// TouchDisabled ignores input for the actor and its children.
	TouchDisabled
	// TouchChildrenOnly delivers input to the children but not the actor.
	TouchChildrenOnly
)

// Hooks an outer actor may implement to observe changes made through its
// embedded Node or Group.
type (
	sizeChanger     interface{ SizeChanged() }
	positionChanger interface{ PositionChanged() }
	childrenChanger interface{ ChildrenChanged() }
)

// Node holds the state shared by every actor. The zero value is a visible,
// touchable actor with no size.
type Node struct {
	self   Actor
	parent Parent
	stage  *Stage

	name          string
	x, y          float64
	width, height float64
	hidden        bool
	touchable     Touchable
	transparency  float32
	debug         bool

	listeners []Listener
	userData  any
}

var _ Actor = (*Node)(nil)

// Init records the outermost actor embedding n. Tree operations, hooks and
// hit results refer to that actor rather than to the embedded Node.
func (n *Node) Init(self Actor) {
	n.self = self
}

// Base returns n itself.
func (n *Node) Base() *Node { return n }

// Self returns the outermost actor embedding n, or n when Init was never
// called.
func (n *Node) Self() Actor {
	if n.self == nil {
		return n
	}
	return n.self
}

// Act does nothing for plain nodes.
func (n *Node) Act(delta float64) {}

// Draw does nothing for plain nodes.
func (n *Node) Draw(b *Batch, parentAlpha float32) {}

// Hit returns the actor if the local point lies within its bounds.
func (n *Node) Hit(x, y float64, touchable bool) Actor {
	if touchable && n.touchable != TouchEnabled {
		return nil
	}
	if !n.Visible() {
		return nil
	}
	if x >= 0 && x < n.width && y >= 0 && y < n.height {
		return n.Self()
	}
	return nil
}

func (n *Node) Name() string        { return n.name }
func (n *Node) SetName(name string) { n.name = name }

func (n *Node) UserData() any        { return n.userData }
func (n *Node) SetUserData(data any) { n.userData = data }

// Parent returns the parent actor, or nil if n is not in a tree.
func (n *Node) Parent() Parent { return n.parent }

// HasParent reports whether the actor is attached to a parent.
func (n *Node) HasParent() bool { return n.parent != nil }

// Stage returns the stage the actor is attached to, or nil.
func (n *Node) Stage() *Stage { return n.stage }

func (n *Node) setStage(s *Stage) {
	n.stage = s
}

func (n *Node) X() float64      { return n.x }
func (n *Node) Y() float64      { return n.y }
func (n *Node) Width() float64  { return n.width }
func (n *Node) Height() float64 { return n.height }
func (n *Node) Right() float64  { return n.x + n.width }
func (n *Node) Bottom() float64 { return n.y + n.height }

// Bounds returns the actor's bounds in parent coordinates.
func (n *Node) Bounds() Rectangle {
	return Rectangle{X: n.x, Y: n.y, Width: n.width, Height: n.height}
}

// SetPosition moves the actor within its parent.
func (n *Node) SetPosition(x, y float64) {
	if n.x == x && n.y == y {
		return
	}
	n.x, n.y = x, y
	if pc, ok := n.Self().(positionChanger); ok {
		pc.PositionChanged()
	}
}

// SetSize resizes the actor, calling SizeChanged on the outer actor when
// the size differs.
func (n *Node) SetSize(width, height float64) {
	if n.width == width && n.height == height {
		return
	}
	n.width, n.height = width, height
	if sc, ok := n.Self().(sizeChanger); ok {
		sc.SizeChanged()
	}
}

func (n *Node) SetWidth(width float64)   { n.SetSize(width, n.height) }
func (n *Node) SetHeight(height float64) { n.SetSize(n.width, height) }

// SetBounds sets position and size in one call.
func (n *Node) SetBounds(x, y, width, height float64) {
	n.SetPosition(x, y)
	n.SetSize(width, height)
}

// Visible reports whether the actor is drawn and hit tested.
func (n *Node) Visible() bool          { return !n.hidden }
func (n *Node) SetVisible(visible bool) { n.hidden = !visible }

func (n *Node) Touchable() Touchable     { return n.touchable }
func (n *Node) SetTouchable(t Touchable) { n.touchable = t }

// Alpha returns the actor's opacity in [0, 1].
func (n *Node) Alpha() float32 { return 1 - n.transparency }

// SetAlpha sets the actor's opacity, clamped to [0, 1].
func (n *Node) SetAlpha(a float32) {
	n.transparency = 1 - min(max(a, 0), 1)
}

func (n *Node) Debug() bool         { return n.debug }
func (n *Node) SetDebug(debug bool) { n.debug = debug }

// AddListener registers l. Adding the same listener twice has no effect.
func (n *Node) AddListener(l Listener) {
	for _, existing := range n.listeners {
		if existing == l {
			return
		}
	}
	n.listeners = append(n.listeners, l)
}

// RemoveListener unregisters l and reports whether it was registered.
func (n *Node) RemoveListener(l Listener) bool {
	for i, existing := range n.listeners {
		if existing == l {
			n.listeners = append(n.listeners[:i], n.listeners[i+1:]...)
			return true
		}
	}
	return false
}

func (n *Node) Listeners() []Listener { return n.listeners }

// Remove detaches the actor from its parent through the parent's
// RemoveActor, so owners can clear their references to it.
func (n *Node) Remove() bool {
	if n.parent == nil {
		return false
	}
	return n.parent.RemoveActor(n.Self())
}

// IsDescendantOf reports whether actor is n or one of its ancestors.
func (n *Node) IsDescendantOf(actor Actor) bool {
	if actor == nil {
		return false
	}
	target := actor.Base()
	for p := n; p != nil; {
		if p == target {
			return true
		}
		if p.parent == nil {
			return false
		}
		p = p.parent.Base()
	}
	return false
}

// IsAscendantOf reports whether n is actor or one of its ancestors.
func (n *Node) IsAscendantOf(actor Actor) bool {
	if actor == nil {
		return false
	}
	return actor.Base().IsDescendantOf(n.Self())
}

// LocalToStage converts a point in the actor's coordinates to stage
// coordinates.
func (n *Node) LocalToStage(x, y float64) (float64, float64) {
	for p := n; p != nil; {
		x += p.x
		y += p.y
		if p.parent == nil {
			break
		}
		p = p.parent.Base()
	}
	return x, y
}

// StageToLocal converts a point in stage coordinates to the actor's
// coordinates.
func (n *Node) StageToLocal(x, y float64) (float64, float64) {
	ox, oy := n.LocalToStage(0, 0)
	return x - ox, y - oy
}

// Fire delivers e to the listeners of its target and then to those of
// every ancestor, stopping when a listener stops the event.
func (n *Node) Fire(e *InputEvent) bool {
	if e.Target == nil {
		e.Target = n.Self()
	}
	if e.Stage == nil {
		e.Stage = n.stage
	}
	for a := n.Self(); a != nil; {
		an := a.Base()
		an.notify(e)
		if e.stopped {
			break
		}
		if an.parent == nil {
			break
		}
		a = an.parent
	}
	return e.cancelled
}

func (n *Node) notify(e *InputEvent) bool {
	if len(n.listeners) == 0 {
		return e.cancelled
	}
	// Listeners may remove themselves while handling.
	listeners := append([]Listener(nil), n.listeners...)
	for _, l := range listeners {
		e.ListenerActor = n.Self()
		if l.Handle(e) {
			e.handled = true
			if e.Type == TouchDown && e.Stage != nil {
				e.Stage.addTouchFocus(l, n.Self(), e.Target, e.Pointer, e.Button)
			}
		}
	}
	return e.cancelled
}
