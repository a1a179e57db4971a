package layout

import (
	"fmt"

	"github.com/OpticalFlyer/trellis/scene"
)

// Table sizes and positions its children using a grid of cells. Cells are
// added row by row; Row ends the current row.
//
//	t := layout.NewTable()
//	t.Add(nameLabel).Right()
//	t.Add(nameField).GrowX()
//	t.Row()
//	t.Add(okButton).Colspan(2)
//
// A Table is itself a Layout, so tables nest inside other tables.
type Table struct {
	WidgetGroup

	cells          []*Cell
	byActor        map[scene.Actor]*Cell
	cellDefaults   *Cell
	rowDefaults    *Cell
	columnDefaults []*Cell
	columns, rows  int
	implicitEndRow bool

	sizeInvalid     bool
	columnMinWidth  []float64
	rowMinHeight    []float64
	columnPrefWidth []float64
	rowPrefHeight   []float64
	columnWidth     []float64
	rowHeight       []float64
	expandWidth     []float64
	expandHeight    []float64

	// Scratch space for the grow distribution, owned by the table.
	columnWeightedWidth []float64
	rowWeightedHeight   []float64

	tableMinWidth, tableMinHeight   float64
	tablePrefWidth, tablePrefHeight float64
	layoutX, layoutY                float64

	padTop, padLeft, padBottom, padRight Value
	align                                Align
	round                                bool
	clip                                 bool
	background                           scene.Drawable

	debug      Debug
	debugRects []debugRect
}

var _ Layout = (*Table)(nil)

// NewTable returns an empty table.
func NewTable() *Table {
	t := &Table{}
	t.Init(t)
	return t
}

// Init prepares the table. Types embedding Table call it with themselves
// before use.
func (t *Table) Init(self scene.Actor) {
	t.WidgetGroup.Init(self)
	if t.cellDefaults != nil {
		return
	}
	t.byActor = make(map[scene.Actor]*Cell)
	t.cellDefaults = obtainCell(t)
	t.cellDefaults.set(builtinDefaults)
	t.padTop, t.padLeft, t.padBottom, t.padRight = backgroundTop, backgroundLeft, backgroundBottom, backgroundRight
	t.align = Center
	t.round = true
	t.sizeInvalid = true
	t.SetTouchable(scene.TouchChildrenOnly)
}

// Add appends a cell for actor to the current row and adds actor to the
// table. A nil actor adds an empty cell.
func (t *Table) Add(actor scene.Actor) *Cell {
	c := obtainCell(t)
	// The row was ended for layout, not by the caller, so reopen it.
	if t.implicitEndRow {
		t.implicitEndRow = false
		t.rows--
		t.cells[len(t.cells)-1].endRow = false
	}
	if n := len(t.cells); n > 0 {
		last := t.cells[n-1]
		if !last.endRow {
			c.column = last.column + last.ColspanValue()
			c.row = last.row
		} else {
			c.column = 0
			c.row = last.row + 1
		}
		if c.row > 0 {
			c.cellAboveIndex = t.cellAbove(c.column)
		}
	}
	t.cells = append(t.cells, c)

	c.set(t.cellDefaults)
	if c.column < len(t.columnDefaults) {
		c.Merge(t.columnDefaults[c.column])
	}
	c.Merge(t.rowDefaults)

	if actor != nil {
		c.actor = actor
		t.bind(actor, c)
		t.addChild(actor)
	}
	t.layout().InvalidateHierarchy()
	return c
}

// cellAbove returns the index of the nearest earlier cell spanning column,
// or -1.
func (t *Table) cellAbove(column int) int {
	for i := len(t.cells) - 1; i >= 0; i-- {
		other := t.cells[i]
		if column >= other.column && column < other.column+other.ColspanValue() {
			return i
		}
	}
	return -1
}

// AddEmpty appends a cell without an actor.
func (t *Table) AddEmpty() *Cell { return t.Add(nil) }

func (t *Table) bind(actor scene.Actor, c *Cell) { t.byActor[actor] = c }

func (t *Table) unbind(actor scene.Actor, c *Cell) {
	if t.byActor[actor] == c {
		delete(t.byActor, actor)
	}
}

// addChild adds actor as a child. Adding an existing child does nothing.
func (t *Table) addChild(actor scene.Actor) {
	t.Group.AddActor(actor)
}

// RemoveActor removes a child and clears the cell that referenced it. The
// cell keeps its place in the grid.
func (t *Table) RemoveActor(actor scene.Actor) bool {
	if !t.Group.RemoveActor(actor) {
		return false
	}
	if c, ok := t.byActor[actor]; ok {
		c.actor = nil
		delete(t.byActor, actor)
	}
	return true
}

// Row ends the current row and returns the defaults cell for the next one.
// Constraints set on it apply to every cell added to that row.
func (t *Table) Row() *Cell {
	if len(t.cells) > 0 {
		if !t.implicitEndRow {
			if t.cells[len(t.cells)-1].endRow {
				return t.rowDefaults
			}
			t.endRow()
		}
		t.Invalidate()
	}
	t.implicitEndRow = false
	if t.rowDefaults != nil {
		freeCell(t.rowDefaults)
	}
	t.rowDefaults = obtainCell(t)
	return t.rowDefaults
}

func (t *Table) endRow() {
	rowColumns := 0
	for i := len(t.cells) - 1; i >= 0; i-- {
		c := t.cells[i]
		if c.endRow {
			break
		}
		rowColumns += c.ColspanValue()
	}
	t.columns = max(t.columns, rowColumns)
	t.rows++
	t.cells[len(t.cells)-1].endRow = true
}

// Defaults returns the cell whose constraints every new cell starts with.
func (t *Table) Defaults() *Cell { return t.cellDefaults }

// ColumnDefaults returns the defaults cell for a column. Its constraints
// override the table defaults for cells added to that column.
func (t *Table) ColumnDefaults(column int) *Cell {
	if column < 0 {
		panic(fmt.Errorf("%w: column cannot be < 0: %d", ErrInvalidArgument, column))
	}
	for len(t.columnDefaults) <= column {
		t.columnDefaults = append(t.columnDefaults, nil)
	}
	c := t.columnDefaults[column]
	if c == nil {
		c = obtainCell(t)
		t.columnDefaults[column] = c
	}
	return c
}

// ClearChildren removes every child and cell.
func (t *Table) ClearChildren() {
	for i := len(t.cells) - 1; i >= 0; i-- {
		if a := t.cells[i].actor; a != nil {
			a.Base().Remove()
		}
	}
	for i, c := range t.cells {
		freeCell(c)
		t.cells[i] = nil
	}
	t.cells = t.cells[:0]
	t.rows, t.columns = 0, 0
	if t.rowDefaults != nil {
		freeCell(t.rowDefaults)
		t.rowDefaults = nil
	}
	t.implicitEndRow = false
	t.WidgetGroup.ClearChildren()
	clear(t.byActor)
	t.Invalidate()
}

// Clear is ClearChildren.
func (t *Table) Clear() { t.ClearChildren() }

// Reset clears the table and restores its padding, alignment, debug mode,
// rounding, clipping and every defaults cell.
func (t *Table) Reset() {
	t.ClearChildren()
	t.padTop, t.padLeft, t.padBottom, t.padRight = backgroundTop, backgroundLeft, backgroundBottom, backgroundRight
	t.align = Center
	t.debug = DebugNone
	t.round = true
	t.clip = false
	t.cellDefaults.Reset()
	for i, c := range t.columnDefaults {
		if c != nil {
			freeCell(c)
		}
		t.columnDefaults[i] = nil
	}
	t.columnDefaults = t.columnDefaults[:0]
	t.InvalidateHierarchy()
}

// Cells returns the cells in the order they were added. The slice must not
// be modified.
func (t *Table) Cells() []*Cell { return t.cells }

// GetCell returns the cell positioning actor, or nil.
func (t *Table) GetCell(actor scene.Actor) *Cell {
	if actor == nil {
		return nil
	}
	return t.byActor[actor]
}

// Invalidate marks the cached sizes stale and the table as needing layout.
func (t *Table) Invalidate() {
	t.sizeInvalid = true
	t.WidgetGroup.Invalidate()
}

// SetBackground sets the drawable drawn behind the table. Unless set
// explicitly, the table's padding is the drawable's border size. The table
// is relaid out only if the new drawable is sized differently.
func (t *Table) SetBackground(d scene.Drawable) *Table {
	if t.background == d {
		return t
	}
	old := t.background
	t.background = d
	if !sameDrawableSize(old, d) {
		t.InvalidateHierarchy()
	}
	return t
}

func sameDrawableSize(a, b scene.Drawable) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.LeftWidth() == b.LeftWidth() && a.RightWidth() == b.RightWidth() &&
		a.TopHeight() == b.TopHeight() && a.BottomHeight() == b.BottomHeight() &&
		a.MinWidth() == b.MinWidth() && a.MinHeight() == b.MinHeight()
}

// Background returns the background drawable, or nil.
func (t *Table) Background() scene.Drawable { return t.background }

// SetClip restricts drawing of the children to the table's bounds.
func (t *Table) SetClip(clip bool) *Table {
	t.clip = clip
	return t
}

func (t *Table) Clip() bool { return t.clip }

// SetRound floors positions and ceils sizes to whole pixels. Rounding is on
// by default.
func (t *Table) SetRound(round bool) *Table {
	t.round = round
	t.Invalidate()
	return t
}

func (t *Table) Round() bool { return t.round }

// Pad sets the padding inside the table's edges on every side. It panics if
// v is negative.
func (t *Table) Pad(v Value) *Table {
	return t.PadTRBL(v, v, v, v)
}

// PadTRBL sets the padding on each side. It panics if any is negative.
func (t *Table) PadTRBL(top, right, bottom, left Value) *Table {
	return t.PadTop(top).PadRight(right).PadBottom(bottom).PadLeft(left)
}

func (t *Table) PadTop(v Value) *Table {
	t.padTop = checkNonNegative("padTop", v)
	t.sizeInvalid = true
	t.InvalidateHierarchy()
	return t
}

func (t *Table) PadLeft(v Value) *Table {
	t.padLeft = checkNonNegative("padLeft", v)
	t.sizeInvalid = true
	t.InvalidateHierarchy()
	return t
}

func (t *Table) PadBottom(v Value) *Table {
	t.padBottom = checkNonNegative("padBottom", v)
	t.sizeInvalid = true
	t.InvalidateHierarchy()
	return t
}

func (t *Table) PadRight(v Value) *Table {
	t.padRight = checkNonNegative("padRight", v)
	t.sizeInvalid = true
	t.InvalidateHierarchy()
	return t
}

func (t *Table) PadTopValue() Value    { return t.padTop }
func (t *Table) PadLeftValue() Value   { return t.padLeft }
func (t *Table) PadBottomValue() Value { return t.padBottom }
func (t *Table) PadRightValue() Value  { return t.padRight }

// PadX returns the total horizontal padding.
func (t *Table) PadX() float64 { return t.padLeft.Get(t.Self()) + t.padRight.Get(t.Self()) }

// PadY returns the total vertical padding.
func (t *Table) PadY() float64 { return t.padTop.Get(t.Self()) + t.padBottom.Get(t.Self()) }

// Align sets where the grid sits within the table when the table is larger
// than the grid.
func (t *Table) Align(a Align) *Table {
	t.align = a
	t.Invalidate()
	return t
}

func (t *Table) AlignValue() Align { return t.align }

// Columns returns the number of columns.
func (t *Table) Columns() int { return t.columns }

// Rows returns the number of rows, counting a final row not yet ended.
func (t *Table) Rows() int {
	if n := len(t.cells); n > 0 && !t.cells[n-1].endRow {
		return t.rows + 1
	}
	return t.rows
}

// GetRow returns the row at y in table coordinates, or -1 if y is above or
// below every row.
func (t *Table) GetRow(y float64) int {
	if len(t.cells) == 0 || y < t.layoutY {
		return -1
	}
	top := t.layoutY
	for r := 0; r < t.rows && r < len(t.rowHeight); r++ {
		top += t.rowHeight[r]
		if y < top {
			return r
		}
	}
	return -1
}

func (t *Table) ensureSize() {
	if t.sizeInvalid {
		t.computeSize()
	}
}

func (t *Table) MinWidth() float64 {
	t.ensureSize()
	return t.tableMinWidth
}

func (t *Table) MinHeight() float64 {
	t.ensureSize()
	return t.tableMinHeight
}

func (t *Table) PrefWidth() float64 {
	t.ensureSize()
	if t.background != nil {
		return max(t.tablePrefWidth, t.background.MinWidth())
	}
	return t.tablePrefWidth
}

func (t *Table) PrefHeight() float64 {
	t.ensureSize()
	if t.background != nil {
		return max(t.tablePrefHeight, t.background.MinHeight())
	}
	return t.tablePrefHeight
}

// ColumnMinWidth returns the min width of a column, including cell padding.
func (t *Table) ColumnMinWidth(column int) float64 {
	t.ensureSize()
	return t.columnMinWidth[column]
}

// ColumnPrefWidth returns the pref width of a column, including cell
// padding.
func (t *Table) ColumnPrefWidth(column int) float64 {
	t.ensureSize()
	return t.columnPrefWidth[column]
}

func (t *Table) RowMinHeight(row int) float64 {
	t.ensureSize()
	return t.rowMinHeight[row]
}

func (t *Table) RowPrefHeight(row int) float64 {
	t.ensureSize()
	return t.rowPrefHeight[row]
}

// ColumnWidth returns the width given to a column by the last layout.
func (t *Table) ColumnWidth(column int) float64 {
	if column < 0 || column >= len(t.columnWidth) {
		return 0
	}
	return t.columnWidth[column]
}

// RowHeight returns the height given to a row by the last layout.
func (t *Table) RowHeight(row int) float64 {
	if row < 0 || row >= len(t.rowHeight) {
		return 0
	}
	return t.rowHeight[row]
}

// Draw validates the table and draws its background, children and debug
// lines.
func (t *Table) Draw(b *scene.Batch, parentAlpha float32) {
	t.layout().Validate()
	alpha := parentAlpha * t.Alpha()
	if t.background != nil {
		t.background.Draw(b, t.X(), t.Y(), t.Width(), t.Height(), alpha)
	}
	if t.clip {
		b.Push(t.X(), t.Y())
		clipped := b.PushClip(0, 0, t.Width(), t.Height())
		b.Pop()
		if !clipped {
			return
		}
		t.DrawChildren(b, parentAlpha)
		b.PopClip()
	} else {
		t.DrawChildren(b, parentAlpha)
	}
	t.drawDebug(b)
}

// Hit ignores points outside the table's bounds when clipping.
func (t *Table) Hit(x, y float64, touchable bool) scene.Actor {
	if t.clip {
		if touchable && t.Touchable() == scene.TouchDisabled {
			return nil
		}
		if x < 0 || x >= t.Width() || y < 0 || y >= t.Height() {
			return nil
		}
	}
	return t.Group.Hit(x, y, touchable)
}
