package scene

// Group is an Actor that owns an ordered list of children. Children are
// drawn in order and hit tested in reverse order.
type Group struct {
	Node
	children []Actor
}

var _ Parent = (*Group)(nil)

// NewGroup returns an empty group.
func NewGroup() *Group {
	g := &Group{}
	g.Init(g)
	return g
}

func (g *Group) parentSelf() Parent {
	if p, ok := g.Self().(Parent); ok {
		return p
	}
	return g
}

// Children returns the children in draw order. The slice must not be
// modified.
func (g *Group) Children() []Actor { return g.children }

// HasChildren reports whether the group has any children.
func (g *Group) HasChildren() bool { return len(g.children) > 0 }

// AddActor appends child, removing it from any previous parent first.
func (g *Group) AddActor(child Actor) {
	g.AddActorAt(len(g.children), child)
}

// AddActorAt inserts child at index, clamped to the child count.
func (g *Group) AddActorAt(index int, child Actor) {
	cn := child.Base()
	if cn.parent != nil {
		if cn.parent.Base() == &g.Node {
			return
		}
		cn.parent.RemoveActor(child)
	}
	index = min(max(index, 0), len(g.children))
	g.children = append(g.children, nil)
	copy(g.children[index+1:], g.children[index:])
	g.children[index] = child
	cn.parent = g.parentSelf()
	setStageTree(child, g.stage)
	g.childrenChanged()
}

// RemoveActor removes child and reports whether it was a child of g.
func (g *Group) RemoveActor(child Actor) bool {
	for i, c := range g.children {
		if c == child {
			g.removeAt(i)
			return true
		}
	}
	return false
}

func (g *Group) removeAt(i int) Actor {
	child := g.children[i]
	g.children = append(g.children[:i], g.children[i+1:]...)
	if g.stage != nil {
		g.stage.unfocus(child)
	}
	cn := child.Base()
	cn.parent = nil
	setStageTree(child, nil)
	g.childrenChanged()
	return child
}

// ClearChildren removes every child through the outer actor's RemoveActor.
func (g *Group) ClearChildren() {
	p := g.parentSelf()
	for len(g.children) > 0 {
		last := g.children[len(g.children)-1]
		if !p.RemoveActor(last) {
			g.removeAt(len(g.children) - 1)
		}
	}
}

// FindActor returns the first descendant with the given name.
func (g *Group) FindActor(name string) Actor {
	for _, c := range g.children {
		if c.Base().name == name {
			return c
		}
	}
	for _, c := range g.children {
		if p, ok := c.(interface{ FindActor(string) Actor }); ok {
			if found := p.FindActor(name); found != nil {
				return found
			}
		}
	}
	return nil
}

// SwapActor exchanges the positions of two children.
func (g *Group) SwapActor(first, second Actor) bool {
	fi, si := -1, -1
	for i, c := range g.children {
		switch c {
		case first:
			fi = i
		case second:
			si = i
		}
	}
	if fi == -1 || si == -1 {
		return false
	}
	g.children[fi], g.children[si] = g.children[si], g.children[fi]
	return true
}

// ToFront moves child to the end of the draw order.
func (g *Group) ToFront(child Actor) {
	for i, c := range g.children {
		if c == child {
			copy(g.children[i:], g.children[i+1:])
			g.children[len(g.children)-1] = child
			return
		}
	}
}

func (g *Group) childrenChanged() {
	if cc, ok := g.Self().(childrenChanger); ok {
		cc.ChildrenChanged()
	}
}

// Act updates the children.
func (g *Group) Act(delta float64) {
	for _, c := range append([]Actor(nil), g.children...) {
		c.Act(delta)
	}
}

// Draw draws the children translated to the group's position.
func (g *Group) Draw(b *Batch, parentAlpha float32) {
	g.DrawChildren(b, parentAlpha)
}

// DrawChildren draws every visible child relative to the group origin.
func (g *Group) DrawChildren(b *Batch, parentAlpha float32) {
	alpha := parentAlpha * g.Alpha()
	b.Push(g.x, g.y)
	for _, c := range g.children {
		if c.Base().Visible() {
			c.Draw(b, alpha)
		}
	}
	b.Pop()
}

// Hit tests the children front to back before testing the group itself.
func (g *Group) Hit(x, y float64, touchable bool) Actor {
	if touchable && g.touchable == TouchDisabled {
		return nil
	}
	if !g.Visible() {
		return nil
	}
	for i := len(g.children) - 1; i >= 0; i-- {
		c := g.children[i]
		cn := c.Base()
		if !cn.Visible() {
			continue
		}
		if hit := c.Hit(x-cn.x, y-cn.y, touchable); hit != nil {
			return hit
		}
	}
	if touchable && g.touchable == TouchChildrenOnly {
		return nil
	}
	return g.Node.Hit(x, y, touchable)
}

func setStageTree(a Actor, s *Stage) {
	a.Base().setStage(s)
	if p, ok := a.(Parent); ok {
		for _, c := range p.Children() {
			setStageTree(c, s)
		}
	}
}
