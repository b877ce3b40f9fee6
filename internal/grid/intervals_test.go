package grid

import "testing"

// tableMeasurer renders a uniform table: every column is columnWidth wide and
// every row rowHeight tall, separated by gap pixels, starting at origin.
type tableMeasurer struct {
	origin      Point
	columnWidth int
	rowHeight   int
	gap         int
	hidden      map[Placeable]bool
}

func (m tableMeasurer) CellBounds(p Placement) (Rect, bool) {
	if m.hidden[p.Record] {
		return Rect{}, false
	}
	return NewRect(
		m.origin.X+p.Column*(m.columnWidth+m.gap),
		m.origin.Y+p.Row*(m.rowHeight+m.gap),
		p.ColSpan*m.columnWidth+(p.ColSpan-1)*m.gap,
		p.RowSpan*m.rowHeight+(p.RowSpan-1)*m.gap,
	), true
}

func (m tableMeasurer) RowBounds(row int) (Rect, bool) {
	return NewRect(m.origin.X, m.origin.Y+row*(m.rowHeight+m.gap), 0, m.rowHeight), true
}

func assertInterval(t *testing.T, label string, got *Interval, begin, length int) {
	t.Helper()
	if got == nil {
		t.Fatalf("%s: expected (%d,%d), got unresolved", label, begin, length)
	}
	if got.Begin != begin || got.Length != length {
		t.Fatalf("%s: expected (%d,%d), got (%d,%d)", label, begin, length, got.Begin, got.Length)
	}
}

func TestResolveDirectIntervalsInLocalSpace(t *testing.T) {
	grid, err := Place(cells(&testCell{}, &testCell{}, &testCell{}, &testCell{}), 2)
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	measurer := tableMeasurer{origin: Point{X: 100, Y: 50}, columnWidth: 40, rowHeight: 20, gap: 4}

	intervals := Resolve(grid, measurer, Point{X: 100, Y: 50})

	assertInterval(t, "column 0", intervals.Columns[0], 0, 40)
	assertInterval(t, "column 1", intervals.Columns[1], 44, 40)
	assertInterval(t, "row 0", intervals.Rows[0], 0, 20)
	assertInterval(t, "row 1", intervals.Rows[1], 24, 20)
}

func TestResolveSplitsSpannedAggregate(t *testing.T) {
	wide := &testCell{colSpan: 2}
	grid := LogicalGrid{
		RowCount:    1,
		ColumnCount: 2,
		Placements:  []Placement{{Record: wide, Row: 0, Column: 0, RowSpan: 1, ColSpan: 2}},
	}
	measurer := MeasureFuncs{
		Cell: func(Placement) (Rect, bool) { return NewRect(10, 0, 20, 15), true },
	}

	intervals := Resolve(grid, measurer, Point{})

	assertInterval(t, "column 0", intervals.Columns[0], 10, 10)
	assertInterval(t, "column 1", intervals.Columns[1], 20, 10)
	assertInterval(t, "row 0", intervals.Rows[0], 0, 15)
}

func TestResolveDropsRemainderPixels(t *testing.T) {
	grid := LogicalGrid{
		RowCount:    1,
		ColumnCount: 2,
		Placements:  []Placement{{Record: &testCell{}, ColSpan: 2, RowSpan: 1}},
	}
	measurer := MeasureFuncs{
		Cell: func(Placement) (Rect, bool) { return NewRect(0, 0, 21, 10), true },
	}

	intervals := Resolve(grid, measurer, Point{})

	assertInterval(t, "column 0", intervals.Columns[0], 0, 10)
	assertInterval(t, "column 1", intervals.Columns[1], 10, 10)
}

func TestResolvePrefersDirectOverSpanned(t *testing.T) {
	wide := &testCell{colSpan: 2}
	left := &testCell{}
	grid, err := Place(cells(wide, left), 2)
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	// Row 1 only holds a cell in column 0, so column 1 is approximated from
	// the spanning cell while column 0 is resolved directly.
	measurer := tableMeasurer{columnWidth: 30, rowHeight: 10, gap: 2}

	intervals := Resolve(grid, measurer, Point{})

	assertInterval(t, "column 0", intervals.Columns[0], 0, 30)
	assertInterval(t, "column 1", intervals.Columns[1], 31, 31)
	assertInterval(t, "row 1", intervals.Rows[1], 12, 10)
}

func TestResolveRowSpanUsesRowOrigin(t *testing.T) {
	tall := &testCell{rowSpan: 2}
	grid, err := Place(cells(tall), 1)
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	measurer := tableMeasurer{columnWidth: 30, rowHeight: 10, gap: 0}

	intervals := Resolve(grid, measurer, Point{})

	assertInterval(t, "row 0", intervals.Rows[0], 0, 10)
	assertInterval(t, "row 1", intervals.Rows[1], 10, 10)
}

func TestResolveLeavesUnmeasuredIndicesNil(t *testing.T) {
	hidden := &testCell{}
	shown := &testCell{}
	grid, err := Place(cells(hidden, shown), 2)
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	measurer := tableMeasurer{columnWidth: 10, rowHeight: 10, hidden: map[Placeable]bool{hidden: true}}

	intervals := Resolve(grid, measurer, Point{})

	if intervals.Columns[0] != nil {
		t.Fatalf("expected column 0 to stay unresolved, got %+v", intervals.Columns[0])
	}
	assertInterval(t, "column 1", intervals.Columns[1], 10, 10)
}

func TestResolveEmptyGrid(t *testing.T) {
	intervals := Resolve(LogicalGrid{}, tableMeasurer{}, Point{})
	if len(intervals.Rows) != 0 || len(intervals.Columns) != 0 {
		t.Fatalf("expected no intervals, got %d rows %d columns", len(intervals.Rows), len(intervals.Columns))
	}
}

func TestResolveIntervalsAreMonotonic(t *testing.T) {
	grid, err := Place(cells(
		&testCell{colSpan: 3},
		&testCell{},
		&testCell{rowSpan: 2},
		&testCell{},
		&testCell{},
		&testCell{colSpan: 2},
	), 3)
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	intervals := Resolve(grid, tableMeasurer{columnWidth: 25, rowHeight: 12, gap: 3}, Point{})

	for _, axis := range [][]*Interval{intervals.Columns, intervals.Rows} {
		var previous *Interval
		for index, interval := range axis {
			if interval == nil {
				continue
			}
			if previous != nil && previous.End() > interval.Begin {
				t.Fatalf("interval %d (%+v) overlaps previous %+v", index, *interval, *previous)
			}
			previous = interval
		}
	}
}
