package grid

// Placeable is a placement record owned by the widget model. The builder
// reads spans and positions and writes row/column back for records that are
// not pinned.
type Placeable interface {
	Row() int
	Column() int
	RowSpan() int
	ColSpan() int
	// Pinned reports whether row and column are fixed by the model and must
	// not be auto-assigned.
	Pinned() bool
	SetRow(row int)
	SetColumn(column int)
}

// Placement is the resolved position of a single record.
type Placement struct {
	Record  Placeable
	Row     int
	Column  int
	RowSpan int
	ColSpan int
}

// LogicalGrid is the outcome of a placement pass.
type LogicalGrid struct {
	RowCount    int
	ColumnCount int
	Placements  []Placement
}

// Empty reports whether the grid has no cells at all.
func (g LogicalGrid) Empty() bool {
	return len(g.Placements) == 0
}

// Place assigns a row and column to every record that is not pinned, scanning
// for the first free cell in row-major order, and reports the resulting grid.
// columnCount is fixed for the pass while rows are appended on demand.
//
// A spanning record is never split across the end of a row: the scan moves on
// to the first cell where the whole span rectangle is free and fits.
//
// Records are only written once every record has been placed; on error none
// of them is modified.
//
// An empty record list yields a grid with zero rows and zero columns.
func Place(records []Placeable, columnCount int) (LogicalGrid, error) {
	if len(records) == 0 {
		return LogicalGrid{}, nil
	}

	occupied := newOccupancy(columnCount)
	placements := make([]Placement, 0, len(records))
	row, column := 0, 0

	for index, record := range records {
		rowSpan := normalizeSpan(record.RowSpan())
		colSpan := normalizeSpan(record.ColSpan())
		if colSpan > columnCount {
			return LogicalGrid{}, invalidPlacement(&PlacementError{
				Index: index, Row: record.Row(), Column: record.Column(),
				RowSpan: rowSpan, ColSpan: colSpan, ColumnCount: columnCount,
				Reason: "column span exceeds column count",
			})
		}

		var targetRow, targetColumn int
		if record.Pinned() {
			targetRow, targetColumn = record.Row(), record.Column()
			if targetRow < 0 || targetColumn < 0 || targetColumn+colSpan > columnCount {
				return LogicalGrid{}, invalidPlacement(&PlacementError{
					Index: index, Row: targetRow, Column: targetColumn,
					RowSpan: rowSpan, ColSpan: colSpan, ColumnCount: columnCount,
					Reason: "pinned cell lies outside the grid",
				})
			}
		} else {
			row, column = occupied.nextFree(row, column, rowSpan, colSpan)
			targetRow, targetColumn = row, column
		}

		occupied.grow(targetRow + rowSpan)
		if !occupied.mark(targetRow, targetColumn, rowSpan, colSpan) {
			return LogicalGrid{}, invalidPlacement(&PlacementError{
				Index: index, Row: targetRow, Column: targetColumn,
				RowSpan: rowSpan, ColSpan: colSpan, ColumnCount: columnCount,
				Reason: "cell overlaps an occupied cell",
			})
		}

		placements = append(placements, Placement{
			Record:  record,
			Row:     targetRow,
			Column:  targetColumn,
			RowSpan: rowSpan,
			ColSpan: colSpan,
		})
	}

	for _, placement := range placements {
		if placement.Record.Pinned() {
			continue
		}
		placement.Record.SetRow(placement.Row)
		placement.Record.SetColumn(placement.Column)
	}

	return LogicalGrid{
		RowCount:    occupied.rows(),
		ColumnCount: columnCount,
		Placements:  placements,
	}, nil
}

func normalizeSpan(span int) int {
	if span < 1 {
		return 1
	}
	return span
}

// occupancy is the pass-scoped cell map. Rows are only ever appended.
type occupancy struct {
	columns int
	cells   [][]bool
}

func newOccupancy(columns int) *occupancy {
	return &occupancy{columns: columns}
}

func (o *occupancy) rows() int {
	return len(o.cells)
}

func (o *occupancy) grow(rows int) {
	for len(o.cells) < rows {
		o.cells = append(o.cells, make([]bool, o.columns))
	}
}

// nextFree advances from (row, column) in row-major order until it reaches a
// free cell whose span rectangle fits the grid and is entirely free. With
// single-cell spans this is the first empty cell at or after the cursor.
func (o *occupancy) nextFree(row, column, rowSpan, colSpan int) (int, int) {
	for {
		o.grow(row + 1)
		if !o.cells[row][column] && o.fits(row, column, rowSpan, colSpan) {
			return row, column
		}
		column++
		if column >= o.columns {
			column = 0
			row++
		}
	}
}

func (o *occupancy) fits(row, column, rowSpan, colSpan int) bool {
	if column+colSpan > o.columns {
		return false
	}
	for r := row; r < row+rowSpan && r < len(o.cells); r++ {
		for c := column; c < column+colSpan; c++ {
			if o.cells[r][c] {
				return false
			}
		}
	}
	return true
}

// mark flags the span rectangle as occupied. It returns false, leaving the
// map untouched, when any cell in the rectangle is already taken.
func (o *occupancy) mark(row, column, rowSpan, colSpan int) bool {
	if !o.fits(row, column, rowSpan, colSpan) {
		return false
	}
	for r := row; r < row+rowSpan; r++ {
		for c := column; c < column+colSpan; c++ {
			o.cells[r][c] = true
		}
	}
	return true
}
