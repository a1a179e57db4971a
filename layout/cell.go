package layout

import (
	"fmt"
	"sync"

	"github.com/OpticalFlyer/trellis/scene"
)

var cellPool = sync.Pool{
	New: func() any { return new(Cell) },
}

func obtainCell(t *Table) *Cell {
	c := cellPool.Get().(*Cell)
	c.clear()
	c.table = t
	return c
}

func freeCell(c *Cell) {
	c.clear()
	c.table = nil
	cellPool.Put(c)
}

// builtinDefaults are the constraints of a cell nothing else configured:
// sized by its actor, no spacing or padding, centered, unfilled.
var builtinDefaults = func() *Cell {
	c := &Cell{}
	c.minWidth = some(MinWidth)
	c.minHeight = some(MinHeight)
	c.prefWidth = some(PrefWidth)
	c.prefHeight = some(PrefHeight)
	c.maxWidth = some(MaxWidth)
	c.maxHeight = some(MaxHeight)
	c.spaceTop = some(Zero)
	c.spaceLeft = some(Zero)
	c.spaceBottom = some(Zero)
	c.spaceRight = some(Zero)
	c.padTop = some(Zero)
	c.padLeft = some(Zero)
	c.padBottom = some(Zero)
	c.padRight = some(Zero)
	c.fillX = some(0.0)
	c.fillY = some(0.0)
	c.align = some(Center)
	c.expandX = some(0)
	c.expandY = some(0)
	c.colspan = some(1)
	return c
}()

// Cell holds the constraints for one slot of a Table and a reference to
// the actor it positions. Setters return the cell so calls can be chained:
//
//	t.Add(label).PadRight(layout.Fixed(8)).ExpandX().FillX()
//
// Constraints left unset take the table's column, row and table-wide
// defaults when the cell is added.
type Cell struct {
	table *Table
	actor scene.Actor

	row, column    int
	endRow         bool
	cellAboveIndex int

	minWidth, minHeight   opt[Value]
	prefWidth, prefHeight opt[Value]
	maxWidth, maxHeight   opt[Value]

	spaceTop, spaceLeft, spaceBottom, spaceRight opt[Value]
	padTop, padLeft, padBottom, padRight         opt[Value]

	fillX, fillY       opt[float64]
	align              opt[Align]
	expandX, expandY   opt[int]
	colspan            opt[int]
	uniformX, uniformY opt[bool]

	actorX, actorY, actorWidth, actorHeight                              float64
	computedPadTop, computedPadLeft, computedPadBottom, computedPadRight float64
}

// clear unsets every constraint and detaches the actor reference.
func (c *Cell) clear() {
	table := c.table
	*c = Cell{table: table, cellAboveIndex: -1}
}

// Reset clears the actor and every constraint, then applies the table-wide
// defaults, or the built-in defaults for a cell without a table.
func (c *Cell) Reset() {
	if c.table != nil && c.actor != nil {
		c.table.unbind(c.actor, c)
	}
	c.clear()
	if c.table != nil && c != c.table.cellDefaults {
		c.set(c.table.cellDefaults)
	} else {
		c.set(builtinDefaults)
	}
}

// set copies every constraint of other.
func (c *Cell) set(other *Cell) {
	c.minWidth, c.minHeight = other.minWidth, other.minHeight
	c.prefWidth, c.prefHeight = other.prefWidth, other.prefHeight
	c.maxWidth, c.maxHeight = other.maxWidth, other.maxHeight
	c.spaceTop, c.spaceLeft = other.spaceTop, other.spaceLeft
	c.spaceBottom, c.spaceRight = other.spaceBottom, other.spaceRight
	c.padTop, c.padLeft = other.padTop, other.padLeft
	c.padBottom, c.padRight = other.padBottom, other.padRight
	c.fillX, c.fillY = other.fillX, other.fillY
	c.align = other.align
	c.expandX, c.expandY = other.expandX, other.expandY
	c.colspan = other.colspan
	c.uniformX, c.uniformY = other.uniformX, other.uniformY
}

// Merge copies every constraint that is set on other. A nil other is
// ignored.
func (c *Cell) Merge(other *Cell) {
	if other == nil {
		return
	}
	c.minWidth.merge(other.minWidth)
	c.minHeight.merge(other.minHeight)
	c.prefWidth.merge(other.prefWidth)
	c.prefHeight.merge(other.prefHeight)
	c.maxWidth.merge(other.maxWidth)
	c.maxHeight.merge(other.maxHeight)
	c.spaceTop.merge(other.spaceTop)
	c.spaceLeft.merge(other.spaceLeft)
	c.spaceBottom.merge(other.spaceBottom)
	c.spaceRight.merge(other.spaceRight)
	c.padTop.merge(other.padTop)
	c.padLeft.merge(other.padLeft)
	c.padBottom.merge(other.padBottom)
	c.padRight.merge(other.padRight)
	c.fillX.merge(other.fillX)
	c.fillY.merge(other.fillY)
	c.align.merge(other.align)
	c.expandX.merge(other.expandX)
	c.expandY.merge(other.expandY)
	c.colspan.merge(other.colspan)
	c.uniformX.merge(other.uniformX)
	c.uniformY.merge(other.uniformY)
}

// Clear removes the actor from the table and resets the constraints. The
// cell keeps its place in the grid.
func (c *Cell) Clear() {
	c.SetActor(nil)
	c.Reset()
}

// SetActor replaces the cell's actor. The previous actor is removed from
// the table; the new one is added to it.
func (c *Cell) SetActor(actor scene.Actor) *Cell {
	if c.actor == actor {
		return c
	}
	if old := c.actor; old != nil {
		if c.table != nil && old.Base().Parent() == scene.Parent(c.table) {
			old.Base().Remove()
		}
		if c.table != nil {
			c.table.unbind(old, c)
		}
	}
	c.actor = actor
	if actor != nil && c.table != nil {
		c.table.bind(actor, c)
		c.table.addChild(actor)
	}
	return c
}

// Actor returns the actor positioned by the cell, or nil.
func (c *Cell) Actor() scene.Actor { return c.actor }

// HasActor reports whether the cell positions an actor.
func (c *Cell) HasActor() bool { return c.actor != nil }

// Table returns the table the cell belongs to.
func (c *Cell) Table() *Table { return c.table }

func (c *Cell) invalidate() {
	if c.table != nil {
		c.table.layout().InvalidateHierarchy()
	}
}

// Size sets the min, pref and max width and height.
func (c *Cell) Size(v Value) *Cell {
	return c.Width(v).Height(v)
}

// SizeWH sets the min, pref and max width and height separately.
func (c *Cell) SizeWH(width, height Value) *Cell {
	return c.Width(width).Height(height)
}

// Width sets the min, pref and max width.
func (c *Cell) Width(v Value) *Cell {
	c.minWidth, c.prefWidth, c.maxWidth = some(v), some(v), some(v)
	c.invalidate()
	return c
}

// Height sets the min, pref and max height.
func (c *Cell) Height(v Value) *Cell {
	c.minHeight, c.prefHeight, c.maxHeight = some(v), some(v), some(v)
	c.invalidate()
	return c
}

// MinSize sets the min width and height.
func (c *Cell) MinSize(v Value) *Cell { return c.MinWidth(v).MinHeight(v) }

// MinWidth sets the min width, overriding the actor's own.
func (c *Cell) MinWidth(v Value) *Cell {
	c.minWidth = some(v)
	c.invalidate()
	return c
}

// MinHeight sets the min height, overriding the actor's own.
func (c *Cell) MinHeight(v Value) *Cell {
	c.minHeight = some(v)
	c.invalidate()
	return c
}

// PrefSize sets the pref width and height.
func (c *Cell) PrefSize(v Value) *Cell { return c.PrefWidth(v).PrefHeight(v) }

// PrefWidth sets the pref width, overriding the actor's own.
func (c *Cell) PrefWidth(v Value) *Cell {
	c.prefWidth = some(v)
	c.invalidate()
	return c
}

// PrefHeight sets the pref height, overriding the actor's own.
func (c *Cell) PrefHeight(v Value) *Cell {
	c.prefHeight = some(v)
	c.invalidate()
	return c
}

// MaxSize sets the max width and height. 0 means unbounded.
func (c *Cell) MaxSize(v Value) *Cell { return c.MaxWidth(v).MaxHeight(v) }

// MaxWidth sets the max width. 0 means unbounded.
func (c *Cell) MaxWidth(v Value) *Cell {
	c.maxWidth = some(v)
	c.invalidate()
	return c
}

// MaxHeight sets the max height. 0 means unbounded.
func (c *Cell) MaxHeight(v Value) *Cell {
	c.maxHeight = some(v)
	c.invalidate()
	return c
}

// Space sets the space around the cell on every side. Space between two
// cells is the larger of their facing spaces and is never added to the
// table's edges. It panics if v is negative.
func (c *Cell) Space(v Value) *Cell {
	return c.SpaceTRBL(v, v, v, v)
}

// SpaceTRBL sets the space on each side. It panics if any is negative.
func (c *Cell) SpaceTRBL(top, right, bottom, left Value) *Cell {
	return c.SpaceTop(top).SpaceRight(right).SpaceBottom(bottom).SpaceLeft(left)
}

func (c *Cell) SpaceTop(v Value) *Cell {
	c.spaceTop = some(checkNonNegative("spaceTop", v))
	c.invalidate()
	return c
}

func (c *Cell) SpaceLeft(v Value) *Cell {
	c.spaceLeft = some(checkNonNegative("spaceLeft", v))
	c.invalidate()
	return c
}

func (c *Cell) SpaceBottom(v Value) *Cell {
	c.spaceBottom = some(checkNonNegative("spaceBottom", v))
	c.invalidate()
	return c
}

func (c *Cell) SpaceRight(v Value) *Cell {
	c.spaceRight = some(checkNonNegative("spaceRight", v))
	c.invalidate()
	return c
}

// Pad sets the padding around the actor on every side. Padding is always
// added, including at the table's edges. It panics if v is negative.
func (c *Cell) Pad(v Value) *Cell {
	return c.PadTRBL(v, v, v, v)
}

// PadTRBL sets the padding on each side. It panics if any is negative.
func (c *Cell) PadTRBL(top, right, bottom, left Value) *Cell {
	return c.PadTop(top).PadRight(right).PadBottom(bottom).PadLeft(left)
}

func (c *Cell) PadTop(v Value) *Cell {
	c.padTop = some(checkNonNegative("padTop", v))
	c.invalidate()
	return c
}

func (c *Cell) PadLeft(v Value) *Cell {
	c.padLeft = some(checkNonNegative("padLeft", v))
	c.invalidate()
	return c
}

func (c *Cell) PadBottom(v Value) *Cell {
	c.padBottom = some(checkNonNegative("padBottom", v))
	c.invalidate()
	return c
}

func (c *Cell) PadRight(v Value) *Cell {
	c.padRight = some(checkNonNegative("padRight", v))
	c.invalidate()
	return c
}

// Fill sizes the actor to the whole cell on both axes.
func (c *Cell) Fill() *Cell { return c.FillXY(1, 1) }

func (c *Cell) FillX() *Cell {
	c.fillX = some(1.0)
	c.invalidate()
	return c
}

func (c *Cell) FillY() *Cell {
	c.fillY = some(1.0)
	c.invalidate()
	return c
}

// FillXY sets the fraction of the cell, from 0 to 1, the actor fills on
// each axis. The actor is never made smaller than its min size.
func (c *Cell) FillXY(x, y float64) *Cell {
	c.fillX, c.fillY = some(x), some(y)
	c.invalidate()
	return c
}

// Align sets where the actor sits within the cell when it does not fill
// it.
func (c *Cell) Align(a Align) *Cell {
	c.align = some(a)
	c.invalidate()
	return c
}

func (c *Cell) Center() *Cell { return c.Align(Center) }

func (c *Cell) Top() *Cell    { return c.Align(c.align.or(0)&^Bottom | Top) }
func (c *Cell) Bottom() *Cell { return c.Align(c.align.or(0)&^Top | Bottom) }
func (c *Cell) Left() *Cell   { return c.Align(c.align.or(0)&^Right | Left) }
func (c *Cell) Right() *Cell  { return c.Align(c.align.or(0)&^Left | Right) }

// Expand lets the cell's column and row take extra space.
func (c *Cell) Expand() *Cell { return c.ExpandXY(1, 1) }

func (c *Cell) ExpandX() *Cell {
	c.expandX = some(1)
	c.invalidate()
	return c
}

func (c *Cell) ExpandY() *Cell {
	c.expandY = some(1)
	c.invalidate()
	return c
}

// ExpandXY sets the expand weights. Extra space is shared between
// expanding columns or rows in proportion to their weights.
func (c *Cell) ExpandXY(x, y int) *Cell {
	c.expandX, c.expandY = some(x), some(y)
	c.invalidate()
	return c
}

// Grow is Expand and Fill.
func (c *Cell) Grow() *Cell  { return c.Expand().Fill() }
func (c *Cell) GrowX() *Cell { return c.ExpandX().FillX() }
func (c *Cell) GrowY() *Cell { return c.ExpandY().FillY() }

// Colspan sets how many columns the cell occupies. It panics if span is
// less than 1.
func (c *Cell) Colspan(span int) *Cell {
	if span < 1 {
		panic(fmt.Errorf("%w: colspan cannot be < 1: %d", ErrInvalidArgument, span))
	}
	c.colspan = some(span)
	c.invalidate()
	return c
}

// Uniform puts the cell in both uniform groups. Cells in a group share the
// largest min and pref size of the group.
func (c *Cell) Uniform() *Cell { return c.UniformXY(true, true) }

func (c *Cell) UniformX() *Cell { return c.UniformXY(true, c.uniformY.or(false)) }
func (c *Cell) UniformY() *Cell { return c.UniformXY(c.uniformX.or(false), true) }

func (c *Cell) UniformXY(x, y bool) *Cell {
	c.uniformX, c.uniformY = some(x), some(y)
	c.invalidate()
	return c
}

// Row ends the table's current row and returns the defaults cell for the
// next one.
func (c *Cell) Row() *Cell {
	if c.table == nil {
		panic(fmt.Errorf("%w: cell does not belong to a table", ErrIllegalState))
	}
	return c.table.Row()
}

// Accessors for the constraint values.

func (c *Cell) MinWidthValue() Value    { return c.minWidth.or(MinWidth) }
func (c *Cell) MinHeightValue() Value   { return c.minHeight.or(MinHeight) }
func (c *Cell) PrefWidthValue() Value   { return c.prefWidth.or(PrefWidth) }
func (c *Cell) PrefHeightValue() Value  { return c.prefHeight.or(PrefHeight) }
func (c *Cell) MaxWidthValue() Value    { return c.maxWidth.or(MaxWidth) }
func (c *Cell) MaxHeightValue() Value   { return c.maxHeight.or(MaxHeight) }
func (c *Cell) SpaceTopValue() Value    { return c.spaceTop.or(Zero) }
func (c *Cell) SpaceLeftValue() Value   { return c.spaceLeft.or(Zero) }
func (c *Cell) SpaceBottomValue() Value { return c.spaceBottom.or(Zero) }
func (c *Cell) SpaceRightValue() Value  { return c.spaceRight.or(Zero) }
func (c *Cell) PadTopValue() Value      { return c.padTop.or(Zero) }
func (c *Cell) PadLeftValue() Value     { return c.padLeft.or(Zero) }
func (c *Cell) PadBottomValue() Value   { return c.padBottom.or(Zero) }
func (c *Cell) PadRightValue() Value    { return c.padRight.or(Zero) }
func (c *Cell) FillXValue() float64     { return c.fillX.or(0) }
func (c *Cell) FillYValue() float64     { return c.fillY.or(0) }
func (c *Cell) AlignValue() Align       { return c.align.or(Center) }
func (c *Cell) ExpandXValue() int       { return c.expandX.or(0) }
func (c *Cell) ExpandYValue() int       { return c.expandY.or(0) }
func (c *Cell) ColspanValue() int       { return c.colspan.or(1) }
func (c *Cell) UniformXValue() bool     { return c.uniformX.or(false) }
func (c *Cell) UniformYValue() bool     { return c.uniformY.or(false) }

// RowIndex returns the row the cell is in.
func (c *Cell) RowIndex() int { return c.row }

// Column returns the first column the cell occupies.
func (c *Cell) Column() int { return c.column }

// IsEndRow reports whether the cell is the last in its row.
func (c *Cell) IsEndRow() bool { return c.endRow }

// Results of the last layout pass, in table coordinates.

func (c *Cell) ActorX() float64      { return c.actorX }
func (c *Cell) ActorY() float64      { return c.actorY }
func (c *Cell) ActorWidth() float64  { return c.actorWidth }
func (c *Cell) ActorHeight() float64 { return c.actorHeight }

// SetActorBounds overrides the bounds computed for the actor. It takes
// effect when the table positions its actors.
func (c *Cell) SetActorBounds(x, y, width, height float64) {
	c.actorX, c.actorY, c.actorWidth, c.actorHeight = x, y, width, height
}

func (c *Cell) ComputedPadTop() float64    { return c.computedPadTop }
func (c *Cell) ComputedPadLeft() float64   { return c.computedPadLeft }
func (c *Cell) ComputedPadBottom() float64 { return c.computedPadBottom }
func (c *Cell) ComputedPadRight() float64  { return c.computedPadRight }

func (c *Cell) String() string {
	if c.actor == nil {
		return fmt.Sprintf("cell(%d,%d)", c.row, c.column)
	}
	return fmt.Sprintf("cell(%d,%d) %s", c.row, c.column, actorName(c.actor))
}

func actorName(a scene.Actor) string {
	if name := a.Base().Name(); name != "" {
		return name
	}
	return fmt.Sprintf("%T", a)
}
