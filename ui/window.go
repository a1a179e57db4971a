package ui

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/OpticalFlyer/trellis/layout"
	"github.com/OpticalFlyer/trellis/scene"
)

// Dock is a stage edge a window is attached to.
type Dock uint8

const (
	DockNone Dock = iota
	DockLeft
	DockRight
	DockTop
	DockBottom
)

func (d Dock) String() string {
	switch d {
	case DockLeft:
		return "left"
	case DockRight:
		return "right"
	case DockTop:
		return "top"
	case DockBottom:
		return "bottom"
	}
	return "none"
}

// edge is a set of window sides being resized.
type edge uint8

const (
	edgeLeft edge = 1 << iota
	edgeRight
	edgeTop
	edgeBottom
)

const (
	titleBarHeight   = 20.0
	resizeArea       = 5.0
	minWindowWidth   = 100.0
	minWindowHeight  = 50.0
	dockThreshold    = 20.0
	defaultDockSize  = 200.0
	titleLabelIndent = 4.0
)

// WindowStyle is the look of a Window.
type WindowStyle struct {
	Background      scene.Drawable
	TitleBackground scene.Drawable
	TitleFont       text.Face
	TitleFontColor  color.Color
	// StageBackground is drawn over the whole stage behind a modal window.
	StageBackground scene.Drawable
	// DockPreview replaces Background while a drag would dock the window.
	DockPreview scene.Drawable
}

// Window is a table with a title bar. It can be dragged by its title bar,
// resized by its edges and docked to a stage edge by dragging it there.
type Window struct {
	layout.Table

	style      *WindowStyle
	titleTable *layout.Table
	titleLabel *Label

	movable, resizable, dockable bool
	modal, keepWithinStage       bool
	resizeBorder                 float64

	dragging       bool
	edge           edge
	startX, startY float64
	startBounds    scene.Rectangle

	dock     Dock
	preview  Dock
	undocked scene.Rectangle
	dockSize float64

	setCursor func(ebiten.CursorShapeType)
	cursor    ebiten.CursorShapeType
}

// NewWindow returns a movable, resizable, dockable window titled title.
func NewWindow(title string, style *WindowStyle) *Window {
	w := &Window{}
	w.Init(w)
	w.initWindow(title, style)
	return w
}

// NewWindow returns a window using the named WindowStyle of the skin.
func (s *Skin) NewWindow(title, style string) (*Window, error) {
	if s == nil {
		return nil, ErrNoSkin
	}
	st, err := Get[*WindowStyle](s, styleName(style))
	if err != nil {
		return nil, err
	}
	return NewWindow(title, st), nil
}

func (w *Window) initWindow(title string, style *WindowStyle) {
	if style == nil || style.TitleFont == nil {
		panic(errInvalid("window style needs a title font"))
	}
	w.style = style
	w.movable, w.resizable, w.dockable = true, true, true
	w.keepWithinStage = true
	w.resizeBorder = resizeArea
	w.dockSize = defaultDockSize
	w.setCursor = ebiten.SetCursorShape
	w.SetTouchable(scene.TouchEnabled)
	w.SetClip(true)
	w.SetBackground(style.Background)

	w.titleLabel = NewLabel(title, &LabelStyle{Font: style.TitleFont, Color: style.TitleFontColor})
	w.titleTable = layout.NewTable()
	w.titleTable.SetBackground(style.TitleBackground)
	w.titleTable.Add(w.titleLabel).GrowX().MinHeight(layout.Fixed(titleBarHeight)).PadLeft(layout.Fixed(titleLabelIndent))
	w.Group.AddActor(w.titleTable)
	w.PadTop(layout.PrefHeightOf(w.titleTable))

	w.AddListener(&scene.InputListener{
		OnTouchDown:    w.touchDown,
		OnTouchDragged: w.touchDragged,
		OnTouchUp:      w.touchUp,
		OnMouseMoved: func(e *scene.InputEvent, x, y float64) bool {
			w.updateCursor(x, y)
			return w.modal
		},
		OnExit: func(e *scene.InputEvent, x, y float64, pointer int, to scene.Actor) {
			if !w.dragging && w.edge == 0 && (to == nil || !to.Base().IsDescendantOf(w.Self())) {
				w.changeCursor(ebiten.CursorShapeDefault)
			}
		},
		OnScrolled: func(e *scene.InputEvent, x, y, amountX, amountY float64) bool {
			return w.modal
		},
		OnKeyDown: func(e *scene.InputEvent, key ebiten.Key) bool {
			return w.modal
		},
	})
}

func (w *Window) Style() *WindowStyle       { return w.style }
func (w *Window) TitleLabel() *Label        { return w.titleLabel }
func (w *Window) TitleTable() *layout.Table { return w.titleTable }

func (w *Window) SetMovable(movable bool)       { w.movable = movable }
func (w *Window) SetResizable(resizable bool)   { w.resizable = resizable }
func (w *Window) SetDockable(dockable bool)     { w.dockable = dockable }
func (w *Window) SetKeepWithinStage(keep bool)  { w.keepWithinStage = keep }
func (w *Window) SetResizeBorder(width float64) { w.resizeBorder = width }

// SetModal makes the window capture all input on the stage.
func (w *Window) SetModal(modal bool) { w.modal = modal }

func (w *Window) IsModal() bool    { return w.modal }
func (w *Window) IsDragging() bool { return w.dragging }
func (w *Window) IsResizing() bool { return w.edge != 0 }

// Dock returns the edge the window is docked to.
func (w *Window) Dock() Dock { return w.dock }

// DockPreview returns the edge the window would dock to if the current drag
// ended now.
func (w *Window) DockPreview() Dock { return w.preview }

// ClearChildren removes the content but keeps the title bar.
func (w *Window) ClearChildren() {
	w.Table.ClearChildren()
	w.Group.AddActor(w.titleTable)
}

func (w *Window) PrefWidth() float64 {
	return max(w.Table.PrefWidth(), w.titleTable.PrefWidth()+w.PadX())
}

// Arrange lays out the content and stretches the title bar over the top
// padding.
func (w *Window) Arrange() {
	w.Table.Arrange()
	w.titleTable.SetBounds(w.PadLeftValue().Get(w), 0, w.Width()-w.PadX(), w.PadTopValue().Get(w))
	w.titleTable.Validate()
}

// Act keeps a docked window attached to its edge when the stage resizes.
func (w *Window) Act(delta float64) {
	w.Table.Act(delta)
	if w.dock != DockNone && !w.dragging {
		w.applyDock(w.dock)
	}
}

// stageSize returns the size of the area the window docks within.
func (w *Window) stageSize() (float64, float64, bool) {
	if p := w.Parent(); p != nil {
		if st := w.Stage(); st != nil && p == scene.Parent(st.Root()) {
			return st.Width(), st.Height(), true
		}
		return p.Base().Width(), p.Base().Height(), true
	}
	return 0, 0, false
}

// DockTo attaches the window to an edge of the stage, remembering its
// undocked bounds. DockNone undocks it.
func (w *Window) DockTo(d Dock) {
	if d == DockNone {
		w.Undock()
		return
	}
	if w.dock == DockNone && w.preview == DockNone {
		w.undocked = w.Bounds()
	}
	w.preview = DockNone
	w.dock = d
	w.applyDock(d)
}

// Undock restores the bounds the window had before docking.
func (w *Window) Undock() {
	if w.dock == DockNone {
		return
	}
	w.dock = DockNone
	w.SetBounds(w.undocked.X, w.undocked.Y, w.undocked.Width, w.undocked.Height)
}

func (w *Window) applyDock(d Dock) {
	sw, sh, ok := w.stageSize()
	if !ok {
		return
	}
	size := w.dockSize
	switch d {
	case DockLeft:
		w.SetBounds(0, 0, size, sh)
	case DockRight:
		w.SetBounds(sw-size, 0, size, sh)
	case DockTop:
		w.SetBounds(0, 0, sw, size)
	case DockBottom:
		w.SetBounds(0, sh-size, sw, size)
	}
}

// dockAt returns the edge a drag ending at the stage point would dock to.
func (w *Window) dockAt(x, y float64) Dock {
	sw, sh, ok := w.stageSize()
	if !ok {
		return DockNone
	}
	switch {
	case x < dockThreshold:
		return DockLeft
	case sw-x < dockThreshold:
		return DockRight
	case y < dockThreshold:
		return DockTop
	case sh-y < dockThreshold:
		return DockBottom
	}
	return DockNone
}

func (w *Window) checkDocking(x, y float64) {
	d := w.dockAt(x, y)
	if d == DockNone {
		if w.preview != DockNone {
			// Back to the size it had when the drag started.
			w.preview = DockNone
			w.SetSize(w.undocked.Width, w.undocked.Height)
		}
		return
	}
	if w.preview == DockNone {
		w.undocked = w.Bounds()
	}
	w.preview = d
	w.applyDock(d)
}

// edgeAt returns the sides whose resize area holds the local point. A
// docked window only resizes along the side facing the stage.
func (w *Window) edgeAt(x, y float64) edge {
	if !w.resizable || x < 0 || y < 0 || x > w.Width() || y > w.Height() {
		return 0
	}
	b := w.resizeBorder
	var e edge
	if x < b {
		e |= edgeLeft
	} else if x > w.Width()-b {
		e |= edgeRight
	}
	if y < b {
		e |= edgeTop
	} else if y > w.Height()-b {
		e |= edgeBottom
	}
	switch w.dock {
	case DockLeft:
		e &= edgeRight
	case DockRight:
		e &= edgeLeft
	case DockTop:
		e &= edgeBottom
	case DockBottom:
		e &= edgeTop
	}
	return e
}

func (w *Window) inTitleBar(x, y float64) bool {
	return w.edgeAt(x, y) == 0 && x >= 0 && x <= w.Width() && y >= 0 && y <= w.PadTopValue().Get(w)
}

func (w *Window) touchDown(e *scene.InputEvent, x, y float64, pointer, button int) bool {
	if button != int(ebiten.MouseButtonLeft) {
		return w.modal
	}
	if p, ok := w.Parent().(interface{ ToFront(scene.Actor) }); ok {
		p.ToFront(w.Self())
	}
	w.edge = w.edgeAt(x, y)
	w.dragging = w.edge == 0 && w.movable && w.inTitleBar(x, y)
	if w.dragging && w.dock != DockNone {
		// Undock under the cursor, keeping its relative position in the
		// title bar.
		rel := x / w.Width()
		w.dock = DockNone
		w.SetSize(w.undocked.Width, w.undocked.Height)
		w.SetPosition(w.X()+x-w.Width()*rel, w.Y()+y-titleBarHeight/2)
	}
	w.startX, w.startY = e.StageX, e.StageY
	w.startBounds = w.Bounds()
	if w.dragging && w.dockable {
		w.undocked = w.startBounds
	}
	return w.dragging || w.edge != 0 || w.modal
}

func (w *Window) touchDragged(e *scene.InputEvent, x, y float64, pointer int) {
	dx, dy := e.StageX-w.startX, e.StageY-w.startY
	if w.dragging {
		w.SetPosition(w.startBounds.X+dx, w.startBounds.Y+dy)
		if w.dockable {
			w.checkDocking(e.StageX, e.StageY)
		}
		return
	}
	if w.edge == 0 {
		return
	}
	minW := max(minWindowWidth, w.MinWidth())
	minH := max(minWindowHeight, w.MinHeight())
	b := w.startBounds
	nx, ny, width, height := b.X, b.Y, b.Width, b.Height
	if w.edge&edgeLeft != 0 {
		width = max(minW, b.Width-dx)
		nx = b.X + b.Width - width
	}
	if w.edge&edgeRight != 0 {
		width = max(minW, b.Width+dx)
	}
	if w.edge&edgeTop != 0 {
		height = max(minH, b.Height-dy)
		ny = b.Y + b.Height - height
	}
	if w.edge&edgeBottom != 0 {
		height = max(minH, b.Height+dy)
	}
	w.SetBounds(nx, ny, width, height)
	switch w.dock {
	case DockLeft, DockRight:
		w.dockSize = width
	case DockTop, DockBottom:
		w.dockSize = height
	}
}

func (w *Window) touchUp(e *scene.InputEvent, x, y float64, pointer, button int) {
	if w.dragging && w.preview != DockNone {
		w.dock = w.preview
		w.preview = DockNone
		w.applyDock(w.dock)
	}
	w.dragging = false
	w.edge = 0
}

func (w *Window) updateCursor(x, y float64) {
	switch e := w.edgeAt(x, y); e {
	case edgeLeft, edgeRight:
		w.changeCursor(ebiten.CursorShapeEWResize)
	case edgeTop, edgeBottom:
		w.changeCursor(ebiten.CursorShapeNSResize)
	case edgeTop | edgeLeft, edgeBottom | edgeRight:
		w.changeCursor(ebiten.CursorShapeNWSEResize)
	case edgeTop | edgeRight, edgeBottom | edgeLeft:
		w.changeCursor(ebiten.CursorShapeNESWResize)
	default:
		if w.movable && w.inTitleBar(x, y) {
			w.changeCursor(ebiten.CursorShapeMove)
		} else {
			w.changeCursor(ebiten.CursorShapeDefault)
		}
	}
}

func (w *Window) changeCursor(shape ebiten.CursorShapeType) {
	if w.cursor == shape {
		return
	}
	w.cursor = shape
	if w.setCursor != nil {
		w.setCursor(shape)
	}
}

// Hit returns the window for any point on the stage when it is modal.
func (w *Window) Hit(x, y float64, touchable bool) scene.Actor {
	if !w.Visible() {
		return nil
	}
	hit := w.Table.Hit(x, y, touchable)
	if hit == nil && w.modal && (!touchable || w.Touchable() == scene.TouchEnabled) {
		return w.Self()
	}
	return hit
}

func (w *Window) keepInStage() {
	sw, sh, ok := w.stageSize()
	if !ok || w.dock != DockNone || w.preview != DockNone {
		return
	}
	x, y := w.X(), w.Y()
	if w.Width() <= sw {
		x = math.Min(math.Max(x, 0), sw-w.Width())
	}
	if w.Height() <= sh {
		y = math.Min(math.Max(y, 0), sh-w.Height())
	}
	w.SetPosition(x, y)
}

func (w *Window) Draw(b *scene.Batch, parentAlpha float32) {
	if w.keepWithinStage {
		w.keepInStage()
	}
	if w.preview != DockNone && w.style.DockPreview != nil {
		w.SetBackground(w.style.DockPreview)
	} else {
		w.SetBackground(w.style.Background)
	}
	if w.modal && w.style.StageBackground != nil {
		if st, p := w.Stage(), w.Parent(); st != nil && p != nil {
			ox, oy := p.Base().StageToLocal(0, 0)
			w.style.StageBackground.Draw(b, ox, oy, st.Width(), st.Height(), parentAlpha*w.Alpha())
		}
	}
	w.Table.Draw(b, parentAlpha)
}
