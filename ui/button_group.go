package ui

import "slices"

// ButtonGroup keeps the number of checked buttons among its members between
// a minimum and a maximum. By default exactly one button is checked, and
// checking another unchecks the one checked last.
type ButtonGroup struct {
	buttons     []*Button
	checked     []*Button
	last        *Button
	minCheck    int
	maxCheck    int
	uncheckLast bool
}

// NewButtonGroup returns a group holding buttons.
func NewButtonGroup(buttons ...*Button) *ButtonGroup {
	g := &ButtonGroup{minCheck: 1, maxCheck: 1, uncheckLast: true}
	g.Add(buttons...)
	return g
}

// Add moves buttons into the group. A button is checked when added if it
// already was or the group needs more checked buttons.
func (g *ButtonGroup) Add(buttons ...*Button) {
	for _, b := range buttons {
		if b.group != nil {
			b.group.Remove(b)
		}
		check := b.checked || len(g.buttons) < g.minCheck
		b.checked = false
		b.group = g
		g.buttons = append(g.buttons, b)
		b.SetChecked(check)
	}
}

// Remove takes b out of the group.
func (g *ButtonGroup) Remove(b *Button) {
	if b.group != g {
		return
	}
	b.group = nil
	g.buttons = slices.DeleteFunc(g.buttons, func(o *Button) bool { return o == b })
	g.checked = slices.DeleteFunc(g.checked, func(o *Button) bool { return o == b })
	if g.last == b {
		g.last = nil
	}
}

// Clear removes every button.
func (g *ButtonGroup) Clear() {
	for _, b := range slices.Clone(g.buttons) {
		g.Remove(b)
	}
}

func (g *ButtonGroup) Buttons() []*Button { return g.buttons }

// AllChecked returns the checked buttons in the order they were checked.
func (g *ButtonGroup) AllChecked() []*Button { return g.checked }

// Checked returns the button checked first, or nil.
func (g *ButtonGroup) Checked() *Button {
	if len(g.checked) == 0 {
		return nil
	}
	return g.checked[0]
}

// CheckedIndex returns the index of the first checked button, or -1.
func (g *ButtonGroup) CheckedIndex() int {
	if len(g.checked) == 0 {
		return -1
	}
	return slices.Index(g.buttons, g.checked[0])
}

// UncheckAll unchecks every button, ignoring the minimum.
func (g *ButtonGroup) UncheckAll() {
	old := g.minCheck
	g.minCheck = 0
	for _, b := range g.buttons {
		b.SetChecked(false)
	}
	g.minCheck = old
}

func (g *ButtonGroup) SetMinCheckCount(n int) { g.minCheck = n }

// SetMaxCheckCount sets the maximum; -1 means no maximum.
func (g *ButtonGroup) SetMaxCheckCount(n int) {
	if n == 0 {
		n = -1
	}
	g.maxCheck = n
}

// SetUncheckLast decides whether checking past the maximum unchecks the
// button checked last or is refused.
func (g *ButtonGroup) SetUncheckLast(uncheck bool) { g.uncheckLast = uncheck }

// canCheck reports whether b may change to checked, updating the group's
// bookkeeping if so.
func (g *ButtonGroup) canCheck(b *Button, checked bool) bool {
	if b.checked == checked {
		return false
	}
	if !checked {
		if len(g.checked) <= g.minCheck {
			return false
		}
		g.checked = slices.DeleteFunc(g.checked, func(o *Button) bool { return o == b })
		if g.last == b {
			g.last = nil
			if n := len(g.checked); n > 0 {
				g.last = g.checked[n-1]
			}
		}
		return true
	}
	if g.maxCheck != -1 && len(g.checked) >= g.maxCheck {
		if !g.uncheckLast || g.last == nil {
			return false
		}
		old := g.minCheck
		g.minCheck = 0
		g.last.SetChecked(false)
		g.minCheck = old
		if len(g.checked) >= g.maxCheck {
			return false
		}
	}
	g.checked = append(g.checked, b)
	g.last = b
	return true
}

// revert undoes the bookkeeping of a change to b that was cancelled.
func (g *ButtonGroup) revert(b *Button, checked bool) {
	if checked {
		g.checked = slices.DeleteFunc(g.checked, func(o *Button) bool { return o == b })
		g.last = nil
		if n := len(g.checked); n > 0 {
			g.last = g.checked[n-1]
		}
		return
	}
	g.checked = append(g.checked, b)
	g.last = b
}
