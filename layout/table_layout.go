package layout

import (
	"math"
)

// resize returns s with length n and every element zeroed, reusing its
// storage when possible.
func resize(s []float64, n int) []float64 {
	if cap(s) < n {
		return make([]float64, n)
	}
	s = s[:n]
	clear(s)
	return s
}

// bounds evaluates a cell's size constraints against its actor, with
// pref clamped into [min, max].
func (c *Cell) bounds() (minW, minH, prefW, prefH, maxW, maxH float64) {
	a := c.actor
	minW, minH = c.MinWidthValue().Get(a), c.MinHeightValue().Get(a)
	prefW, prefH = c.PrefWidthValue().Get(a), c.PrefHeightValue().Get(a)
	maxW, maxH = c.MaxWidthValue().Get(a), c.MaxHeightValue().Get(a)
	if prefW < minW {
		prefW = minW
	}
	if prefH < minH {
		prefH = minH
	}
	if maxW > 0 && prefW > maxW {
		prefW = maxW
	}
	if maxH > 0 && prefH > maxH {
		prefH = maxH
	}
	return minW, minH, prefW, prefH, maxW, maxH
}

// computeSize derives the min and pref size of every column and row, and of
// the table, from the cell constraints.
func (t *Table) computeSize() {
	t.sizeInvalid = false
	cells := t.cells
	if n := len(cells); n > 0 && !cells[n-1].endRow {
		t.endRow()
		t.implicitEndRow = true
	}
	// Colspans may have changed since their rows ended.
	t.columns = 0
	for _, c := range cells {
		t.columns = max(t.columns, c.column+c.ColspanValue())
	}

	columns, rows := t.columns, t.rows
	t.columnMinWidth = resize(t.columnMinWidth, columns)
	t.columnPrefWidth = resize(t.columnPrefWidth, columns)
	t.columnWidth = resize(t.columnWidth, columns)
	t.expandWidth = resize(t.expandWidth, columns)
	t.rowMinHeight = resize(t.rowMinHeight, rows)
	t.rowPrefHeight = resize(t.rowPrefHeight, rows)
	t.rowHeight = resize(t.rowHeight, rows)
	t.expandHeight = resize(t.expandHeight, rows)
	columnMinWidth, columnPrefWidth := t.columnMinWidth, t.columnPrefWidth
	rowMinHeight, rowPrefHeight := t.rowMinHeight, t.rowPrefHeight
	expandWidth, expandHeight := t.expandWidth, t.expandHeight

	spaceRightLast := 0.0
	for _, c := range cells {
		a := c.actor
		column, row, colspan := c.column, c.row, c.ColspanValue()

		// Rows that expand, and colspan 1 columns that expand.
		if ey := c.ExpandYValue(); ey != 0 && expandHeight[row] == 0 {
			expandHeight[row] = float64(ey)
		}
		if ex := c.ExpandXValue(); colspan == 1 && ex != 0 && expandWidth[column] == 0 {
			expandWidth[column] = float64(ex)
		}

		// Spacing between cells is the larger of the two facing spaces and
		// is never applied at the table's edges.
		c.computedPadLeft = c.PadLeftValue().Get(a)
		if column != 0 {
			c.computedPadLeft += max(0, c.SpaceLeftValue().Get(a)-spaceRightLast)
		}
		c.computedPadTop = c.PadTopValue().Get(a)
		if c.cellAboveIndex != -1 {
			above := cells[c.cellAboveIndex]
			c.computedPadTop += max(0, c.SpaceTopValue().Get(a)-above.SpaceBottomValue().Get(a))
		}
		spaceRight := c.SpaceRightValue().Get(a)
		c.computedPadRight = c.PadRightValue().Get(a)
		if column+colspan != columns {
			c.computedPadRight += spaceRight
		}
		c.computedPadBottom = c.PadBottomValue().Get(a)
		if row != rows-1 {
			c.computedPadBottom += c.SpaceBottomValue().Get(a)
		}
		spaceRightLast = spaceRight

		minW, minH, prefW, prefH, _, _ := c.bounds()
		if t.round {
			minW, minH = math.Ceil(minW), math.Ceil(minH)
			prefW, prefH = math.Ceil(prefW), math.Ceil(prefH)
		}

		// Spanned columns get their share later.
		if colspan == 1 {
			hpad := c.computedPadLeft + c.computedPadRight
			columnPrefWidth[column] = max(columnPrefWidth[column], prefW+hpad)
			columnMinWidth[column] = max(columnMinWidth[column], minW+hpad)
		}
		vpad := c.computedPadTop + c.computedPadBottom
		rowPrefHeight[row] = max(rowPrefHeight[row], prefH+vpad)
		rowMinHeight[row] = max(rowMinHeight[row], minH+vpad)
	}

	var uniformMinWidth, uniformMinHeight, uniformPrefWidth, uniformPrefHeight float64
	for _, c := range cells {
		column, colspan := c.column, c.ColspanValue()

		// An expanding colspan expands every spanned column, unless one of
		// them already expands.
		if ex := c.ExpandXValue(); ex != 0 {
			spannedExpands := false
			for i := column; i < column+colspan; i++ {
				if expandWidth[i] != 0 {
					spannedExpands = true
					break
				}
			}
			if !spannedExpands {
				for i := column; i < column+colspan; i++ {
					expandWidth[i] = float64(ex)
				}
			}
		}

		if c.UniformXValue() && colspan == 1 {
			hpad := c.computedPadLeft + c.computedPadRight
			uniformMinWidth = max(uniformMinWidth, columnMinWidth[column]-hpad)
			uniformPrefWidth = max(uniformPrefWidth, columnPrefWidth[column]-hpad)
		}
		if c.UniformYValue() {
			vpad := c.computedPadTop + c.computedPadBottom
			uniformMinHeight = max(uniformMinHeight, rowMinHeight[c.row]-vpad)
			uniformPrefHeight = max(uniformPrefHeight, rowPrefHeight[c.row]-vpad)
		}
	}

	if uniformPrefWidth > 0 || uniformPrefHeight > 0 {
		for _, c := range cells {
			if uniformPrefWidth > 0 && c.UniformXValue() && c.ColspanValue() == 1 {
				hpad := c.computedPadLeft + c.computedPadRight
				columnMinWidth[c.column] = uniformMinWidth + hpad
				columnPrefWidth[c.column] = uniformPrefWidth + hpad
			}
			if uniformPrefHeight > 0 && c.UniformYValue() {
				vpad := c.computedPadTop + c.computedPadBottom
				rowMinHeight[c.row] = uniformMinHeight + vpad
				rowPrefHeight[c.row] = uniformPrefHeight + vpad
			}
		}
	}

	// Spread any min and pref width a colspan cell needs beyond its spanned
	// columns over those columns, by expand weight or evenly.
	for _, c := range cells {
		colspan := c.ColspanValue()
		if colspan == 1 {
			continue
		}
		column := c.column
		minW, _, prefW, _, _, _ := c.bounds()
		if t.round {
			minW, prefW = math.Ceil(minW), math.Ceil(prefW)
		}
		spannedMinWidth := -(c.computedPadLeft + c.computedPadRight)
		spannedPrefWidth := spannedMinWidth
		totalExpandWidth := 0.0
		for i := column; i < column+colspan; i++ {
			spannedMinWidth += columnMinWidth[i]
			spannedPrefWidth += columnPrefWidth[i]
			totalExpandWidth += expandWidth[i]
		}
		extraMinWidth := max(0, minW-spannedMinWidth)
		extraPrefWidth := max(0, prefW-spannedPrefWidth)
		for i := column; i < column+colspan; i++ {
			ratio := 1 / float64(colspan)
			if totalExpandWidth != 0 {
				ratio = expandWidth[i] / totalExpandWidth
			}
			columnMinWidth[i] += extraMinWidth * ratio
			columnPrefWidth[i] += extraPrefWidth * ratio
		}
	}

	self := t.Self()
	hpad := t.padLeft.Get(self) + t.padRight.Get(self)
	vpad := t.padTop.Get(self) + t.padBottom.Get(self)
	t.tableMinWidth, t.tablePrefWidth = hpad, hpad
	for i := 0; i < columns; i++ {
		t.tableMinWidth += columnMinWidth[i]
		t.tablePrefWidth += columnPrefWidth[i]
	}
	t.tableMinHeight, t.tablePrefHeight = vpad, vpad
	for i := 0; i < rows; i++ {
		t.tableMinHeight += rowMinHeight[i]
		t.tablePrefHeight += max(rowMinHeight[i], rowPrefHeight[i])
	}
	t.tablePrefWidth = max(t.tableMinWidth, t.tablePrefWidth)
	t.tablePrefHeight = max(t.tableMinHeight, t.tablePrefHeight)
}

// weighted distributes the space available beyond the total min size over
// the columns or rows, each getting a share proportional to how far its
// pref exceeds its min. No entry grows past its pref.
func weighted(dst, minSize, prefSize []float64, tableMin, tablePref, available float64) []float64 {
	totalGrow := tablePref - tableMin
	if totalGrow == 0 {
		return minSize
	}
	extra := min(totalGrow, max(0, available-tableMin))
	dst = resize(dst, len(minSize))
	for i := range minSize {
		grow := prefSize[i] - minSize[i]
		dst[i] = minSize[i] + extra*grow/totalGrow
	}
	return dst
}

// expand gives the space left over in size to the entries with a nonzero
// expand weight. Any remainder goes to the last expanding entry, so the
// sizes add up to exactly the available space.
func expand(size, weights []float64, available float64) {
	totalExpand := 0.0
	for _, w := range weights {
		totalExpand += w
	}
	if totalExpand <= 0 {
		return
	}
	extra := available
	for _, s := range size {
		extra -= s
	}
	if extra <= 0 {
		return
	}
	used := 0.0
	last := 0
	for i, w := range weights {
		if w == 0 {
			continue
		}
		amount := extra * w / totalExpand
		size[i] += amount
		used += amount
		last = i
	}
	size[last] += extra - used
}

// Arrange sizes and positions every cell's actor for the table's current
// size, then validates the children.
func (t *Table) Arrange() {
	t.ensureSize()
	self := t.Self()
	layoutWidth, layoutHeight := t.Width(), t.Height()
	columns, rows := t.columns, t.rows
	padLeft, padTop := t.padLeft.Get(self), t.padTop.Get(self)
	hpad := padLeft + t.padRight.Get(self)
	vpad := padTop + t.padBottom.Get(self)

	columnWeightedWidth := weighted(t.columnWeightedWidth, t.columnMinWidth, t.columnPrefWidth,
		t.tableMinWidth, t.tablePrefWidth, layoutWidth)
	if t.tablePrefWidth != t.tableMinWidth {
		t.columnWeightedWidth = columnWeightedWidth
	}
	rowWeightedHeight := weighted(t.rowWeightedHeight, t.rowMinHeight, t.rowPrefHeight,
		t.tableMinHeight, t.tablePrefHeight, layoutHeight)
	if t.tablePrefHeight != t.tableMinHeight {
		t.rowWeightedHeight = rowWeightedHeight
	}

	columnWidth := resize(t.columnWidth, columns)
	rowHeight := resize(t.rowHeight, rows)
	t.columnWidth, t.rowHeight = columnWidth, rowHeight

	// Actor sizes before expand and fill.
	for _, c := range t.cells {
		column, row, colspan := c.column, c.row, c.ColspanValue()
		spannedWeightedWidth := 0.0
		for i := column; i < column+colspan; i++ {
			spannedWeightedWidth += columnWeightedWidth[i]
		}
		weightedHeight := rowWeightedHeight[row]

		_, _, prefW, prefH, _, _ := c.bounds()
		c.actorWidth = min(spannedWeightedWidth-c.computedPadLeft-c.computedPadRight, prefW)
		c.actorHeight = min(weightedHeight-c.computedPadTop-c.computedPadBottom, prefH)

		if colspan == 1 {
			columnWidth[column] = max(columnWidth[column], spannedWeightedWidth)
		}
		rowHeight[row] = max(rowHeight[row], weightedHeight)
	}

	expand(columnWidth, t.expandWidth, layoutWidth-hpad)
	expand(rowHeight, t.expandHeight, layoutHeight-vpad)

	// Spread width a colspan cell was given beyond its spanned columns
	// evenly over them.
	for _, c := range t.cells {
		colspan := c.ColspanValue()
		if colspan == 1 {
			continue
		}
		extraWidth := 0.0
		for i := c.column; i < c.column+colspan; i++ {
			extraWidth += columnWeightedWidth[i] - columnWidth[i]
		}
		extraWidth -= max(0, c.computedPadLeft+c.computedPadRight)
		extraWidth /= float64(colspan)
		if extraWidth > 0 {
			for i := c.column; i < c.column+colspan; i++ {
				columnWidth[i] += extraWidth
			}
		}
	}

	tableWidth, tableHeight := hpad, vpad
	for _, w := range columnWidth {
		tableWidth += w
	}
	for _, h := range rowHeight {
		tableHeight += h
	}

	x := padLeft + t.align.offsetX(layoutWidth, tableWidth)
	y := padTop + t.align.offsetY(layoutHeight, tableHeight)
	t.layoutX, t.layoutY = x, y

	debug := t.debugMode()
	t.debugRects = t.debugRects[:0]

	currentX, currentY := x, y
	for _, c := range t.cells {
		a := c.actor
		spannedCellWidth := 0.0
		for i := c.column; i < c.column+c.ColspanValue(); i++ {
			spannedCellWidth += columnWidth[i]
		}
		spannedCellWidth -= c.computedPadLeft + c.computedPadRight
		currentX += c.computedPadLeft

		if fillX := c.FillXValue(); fillX > 0 {
			c.actorWidth = max(spannedCellWidth*fillX, c.MinWidthValue().Get(a))
			if maxW := c.MaxWidthValue().Get(a); maxW > 0 {
				c.actorWidth = min(c.actorWidth, maxW)
			}
		}
		rh := rowHeight[c.row]
		if fillY := c.FillYValue(); fillY > 0 {
			c.actorHeight = max(rh*fillY-c.computedPadTop-c.computedPadBottom, c.MinHeightValue().Get(a))
			if maxH := c.MaxHeightValue().Get(a); maxH > 0 {
				c.actorHeight = min(c.actorHeight, maxH)
			}
		}

		align := c.AlignValue()
		c.actorX = currentX + align.offsetX(spannedCellWidth, c.actorWidth)
		switch align.Vertical() {
		case -1:
			c.actorY = c.computedPadTop
		case 1:
			c.actorY = rh - c.actorHeight - c.computedPadBottom
		default:
			c.actorY = (rh - c.actorHeight + c.computedPadTop - c.computedPadBottom) / 2
		}
		c.actorY += currentY

		if t.round {
			c.actorWidth = math.Ceil(c.actorWidth)
			c.actorHeight = math.Ceil(c.actorHeight)
			c.actorX = math.Floor(c.actorX)
			c.actorY = math.Floor(c.actorY)
		}

		if debug&(DebugCell|DebugActor) != 0 {
			t.addCellDebug(debug, c, currentX, currentY+c.computedPadTop, spannedCellWidth,
				rh-c.computedPadTop-c.computedPadBottom)
		}

		if c.endRow {
			currentX = x
			currentY += rh
		} else {
			currentX += spannedCellWidth + c.computedPadRight
		}
	}

	if debug&DebugTable != 0 {
		t.addTableDebug(x, y, tableWidth-hpad, tableHeight-vpad, columnWidth, rowHeight)
	}

	for _, c := range t.cells {
		if c.actor != nil {
			c.actor.Base().SetBounds(c.actorX, c.actorY, c.actorWidth, c.actorHeight)
		}
	}
	validateChildren(&t.Group)
}
