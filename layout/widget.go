// Package layout sizes and positions actors. Table arranges children in a
// grid of cells described by size constraints; Container does the same for a
// single child. Both report min, pref and max sizes so they nest inside one
// another.
package layout

import "github.com/OpticalFlyer/trellis/scene"

// maxLayoutRetries bounds how often the root-most layout reruns Arrange when
// arranging invalidated it again.
const maxLayoutRetries = 5

// Layout is implemented by actors that report size bounds and arrange their
// content. A max size of 0 means unbounded.
type Layout interface {
	scene.Actor

	// Arrange positions and sizes the actor's content for its current size.
	Arrange()
	// Invalidate marks the actor as needing Arrange on the next Validate.
	Invalidate()
	// InvalidateHierarchy invalidates the actor and every Layout ancestor.
	InvalidateHierarchy()
	// Validate calls Arrange if the actor was invalidated.
	Validate()
	// Pack sizes the actor to its preferred size and validates it.
	Pack()
	SetFillParent(fill bool)
	SetLayoutEnabled(enabled bool)

	MinWidth() float64
	MinHeight() float64
	PrefWidth() float64
	PrefHeight() float64
	MaxWidth() float64
	MaxHeight() float64
}

// layoutState is shared by Widget and WidgetGroup. The zero value needs
// layout.
type layoutState struct {
	valid      bool
	fillParent bool
	disabled   bool
}

// validate implements Validate for n, whose outermost actor is l. Only
// groups retry; a group nested in another Layout leaves the retry to it.
func (s *layoutState) validate(n *scene.Node, l Layout, retry bool) {
	if s.disabled {
		return
	}
	parent := n.Parent()
	if s.fillParent && parent != nil {
		pw, ph := parent.Base().Width(), parent.Base().Height()
		if st := n.Stage(); st != nil && parent == scene.Parent(st.Root()) {
			pw, ph = st.Width(), st.Height()
		}
		if n.Width() != pw || n.Height() != ph {
			n.SetSize(pw, ph)
			l.Invalidate()
		}
	}
	if s.valid {
		return
	}
	s.valid = true
	l.Arrange()
	if s.valid || !retry {
		return
	}
	if _, ok := parent.(Layout); ok {
		return
	}
	for i := 0; i < maxLayoutRetries && !s.valid; i++ {
		s.valid = true
		l.Arrange()
	}
}

func invalidateHierarchy(n *scene.Node, l Layout, s *layoutState) {
	if s.disabled {
		return
	}
	l.Invalidate()
	if p, ok := n.Parent().(Layout); ok {
		p.InvalidateHierarchy()
	}
}

// Widget is the base of leaf actors that take part in layout. Embedders
// call Init with themselves and override the size methods they need; the
// min size defaults to the pref size.
type Widget struct {
	scene.Node
	state layoutState
}

var _ Layout = (*Widget)(nil)

func (w *Widget) layout() Layout {
	if l, ok := w.Self().(Layout); ok {
		return l
	}
	return w
}

func (w *Widget) MinWidth() float64   { return w.layout().PrefWidth() }
func (w *Widget) MinHeight() float64  { return w.layout().PrefHeight() }
func (w *Widget) PrefWidth() float64  { return 0 }
func (w *Widget) PrefHeight() float64 { return 0 }
func (w *Widget) MaxWidth() float64   { return 0 }
func (w *Widget) MaxHeight() float64  { return 0 }

// Arrange does nothing for widgets without content to position.
func (w *Widget) Arrange() {}

func (w *Widget) Invalidate()          { w.state.valid = false }
func (w *Widget) InvalidateHierarchy() { invalidateHierarchy(&w.Node, w.layout(), &w.state) }
func (w *Widget) Validate()            { w.state.validate(&w.Node, w.layout(), false) }

// NeedsLayout reports whether the widget was invalidated since it was last
// arranged.
func (w *Widget) NeedsLayout() bool { return !w.state.valid }

func (w *Widget) Pack() {
	l := w.layout()
	w.SetSize(l.PrefWidth(), l.PrefHeight())
	l.Validate()
}

// SetFillParent makes the widget take its parent's size when validated, or
// the stage's size when its parent is the stage root.
func (w *Widget) SetFillParent(fill bool) { w.state.fillParent = fill }

func (w *Widget) SetLayoutEnabled(enabled bool) {
	w.state.disabled = !enabled
	if enabled {
		w.layout().InvalidateHierarchy()
	}
}

// SizeChanged invalidates the widget.
func (w *Widget) SizeChanged() { w.layout().Invalidate() }

// Draw validates the widget. Embedders call it before drawing.
func (w *Widget) Draw(b *scene.Batch, parentAlpha float32) {
	w.layout().Validate()
}

// WidgetGroup is the base of container actors that take part in layout.
type WidgetGroup struct {
	scene.Group
	state layoutState
}

var _ Layout = (*WidgetGroup)(nil)

func (g *WidgetGroup) layout() Layout {
	if l, ok := g.Self().(Layout); ok {
		return l
	}
	return g
}

func (g *WidgetGroup) MinWidth() float64   { return g.layout().PrefWidth() }
func (g *WidgetGroup) MinHeight() float64  { return g.layout().PrefHeight() }
func (g *WidgetGroup) PrefWidth() float64  { return 0 }
func (g *WidgetGroup) PrefHeight() float64 { return 0 }
func (g *WidgetGroup) MaxWidth() float64   { return 0 }
func (g *WidgetGroup) MaxHeight() float64  { return 0 }

// Arrange does nothing by default.
func (g *WidgetGroup) Arrange() {}

func (g *WidgetGroup) Invalidate()          { g.state.valid = false }
func (g *WidgetGroup) InvalidateHierarchy() { invalidateHierarchy(&g.Node, g.layout(), &g.state) }
func (g *WidgetGroup) Validate()            { g.state.validate(&g.Node, g.layout(), true) }
func (g *WidgetGroup) NeedsLayout() bool    { return !g.state.valid }

func (g *WidgetGroup) Pack() {
	l := g.layout()
	g.SetSize(l.PrefWidth(), l.PrefHeight())
	l.Validate()
}

func (g *WidgetGroup) SetFillParent(fill bool) { g.state.fillParent = fill }

// SetLayoutEnabled enables or disables layout for the group and every
// Layout descendant.
func (g *WidgetGroup) SetLayoutEnabled(enabled bool) {
	g.state.disabled = !enabled
	for _, c := range g.Children() {
		if l, ok := c.(Layout); ok {
			l.SetLayoutEnabled(enabled)
		}
	}
	if enabled {
		g.layout().InvalidateHierarchy()
	}
}

func (g *WidgetGroup) SizeChanged()     { g.layout().Invalidate() }
func (g *WidgetGroup) ChildrenChanged() { g.layout().InvalidateHierarchy() }

// Draw validates the group and draws its children.
func (g *WidgetGroup) Draw(b *scene.Batch, parentAlpha float32) {
	g.layout().Validate()
	g.DrawChildren(b, parentAlpha)
}

// validateChildren validates every Layout child of p.
func validateChildren(p scene.Parent) {
	for _, c := range p.Children() {
		if l, ok := c.(Layout); ok {
			l.Validate()
		}
	}
}
