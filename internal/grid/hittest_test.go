package grid

import "testing"

func intervalsOf(pairs ...[2]int) []*Interval {
	out := make([]*Interval, len(pairs))
	for i, pair := range pairs {
		out[i] = &Interval{Begin: pair[0], Length: pair[1]}
	}
	return out
}

func testHitConfig() HitConfig {
	return HitConfig{
		InsertThresholdColumn: 5,
		InsertThresholdRow:    5,
		InsertMargin:          2,
		VirtualColumnGap:      10,
		VirtualColumnSize:     30,
		VirtualRowGap:         10,
		VirtualRowSize:        20,
	}
}

func TestHitTestBeforeFirstColumn(t *testing.T) {
	intervals := Intervals{
		Columns: intervalsOf([2]int{10, 20}, [2]int{40, 15}),
		Rows:    intervalsOf([2]int{0, 20}),
	}

	target := HitTest(intervals, Point{X: 5, Y: 10}, testHitConfig())

	if !target.InsertColumn() || target.Column.Index != 0 {
		t.Fatalf("expected insert at column 0, got %+v", target.Column)
	}
	insert := target.Column.Insert
	if insert.Begin != 1 || insert.End != 10 {
		t.Fatalf("expected marker [1,10], got [%d,%d]", insert.Begin, insert.End)
	}
	if insert.Gap != 10 {
		t.Fatalf("expected visual gap 10, got %d", insert.Gap)
	}
	if insert.TargetBegin != -4 || insert.TargetEnd != 15 {
		t.Fatalf("expected target bounds [-4,15], got [%d,%d]", insert.TargetBegin, insert.TargetEnd)
	}
	if target.ColumnInsertBounds == nil {
		t.Fatal("expected column insert bounds")
	}
	if target.ColumnInsertBounds.Y != -2 || target.ColumnInsertBounds.Height != 24 {
		t.Fatalf("expected insert bounds to span rows with margin, got %+v", *target.ColumnInsertBounds)
	}
	if target.Row.Kind != TargetExisting || target.Row.Index != 0 {
		t.Fatalf("expected existing row 0, got %+v", target.Row)
	}
}

func TestHitTestColumnAxis(t *testing.T) {
	columns := intervalsOf([2]int{0, 30}, [2]int{40, 30}, [2]int{72, 20})

	tests := map[string]struct {
		x     int
		kind  TargetKind
		index int
	}{
		"inside first column":              {x: 12, kind: TargetExisting, index: 0},
		"direct gap":                       {x: 35, kind: TargetInsert, index: 1},
		"first pixel of column":            {x: 0, kind: TargetExisting, index: 0},
		"wide gap is not widened":          {x: 28, kind: TargetExisting, index: 0},
		"narrow gap near end of column 1":  {x: 68, kind: TargetInsert, index: 2},
		"narrow gap near begin of next":    {x: 75, kind: TargetInsert, index: 2},
		"inside last column":               {x: 85, kind: TargetExisting, index: 2},
		"just past the grid is virtual":    {x: 95, kind: TargetVirtual, index: 3},
		"far past the grid is later slots": {x: 190, kind: TargetVirtual, index: 5},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			target := HitTest(Intervals{Columns: columns}, Point{X: tc.x}, testHitConfig())
			if target.Column.Kind != tc.kind || target.Column.Index != tc.index {
				t.Fatalf("expected %s column %d, got %s column %d",
					tc.kind, tc.index, target.Column.Kind, target.Column.Index)
			}
		})
	}
}

func TestHitTestExistingColumnFeedbackIsInclusive(t *testing.T) {
	intervals := Intervals{
		Columns: intervalsOf([2]int{0, 30}),
		Rows:    intervalsOf([2]int{0, 20}),
	}

	target := HitTest(intervals, Point{X: 10, Y: 10}, testHitConfig())

	want := NewRect(0, 0, 31, 21)
	if target.Feedback != want {
		t.Fatalf("expected feedback %+v, got %+v", want, target.Feedback)
	}
	if target.ColumnInsertBounds != nil || target.RowInsertBounds != nil {
		t.Fatalf("expected no insert bounds for an existing cell")
	}
}

func TestHitTestVirtualColumnBeyondGrid(t *testing.T) {
	intervals := Intervals{Columns: intervalsOf([2]int{10, 20}, [2]int{40, 15})}

	target := HitTest(intervals, Point{X: 200}, testHitConfig())

	// (200 - 55 - 5) / 40 = 3 slots past the last column.
	if target.Column.Kind != TargetVirtual || target.Column.Index != 2+3 {
		t.Fatalf("expected virtual column 5, got %+v", target.Column)
	}
	if target.Column.Feedback.Begin != 55+10+3*40 {
		t.Fatalf("expected slot to begin at 185, got %d", target.Column.Feedback.Begin)
	}
	if target.Column.Feedback.Length != 31 {
		t.Fatalf("expected slot width 31, got %d", target.Column.Feedback.Length)
	}
}

func TestHitTestEmptyGridFallsThroughToVirtual(t *testing.T) {
	tester := NewHitTester(testHitConfig())

	target := tester.Test(HitTestInput{
		Cursor: Point{X: 3, Y: 45},
		Panel:  NewRect(0, 0, 300, 200),
	})

	if target.Column.Kind != TargetVirtual || target.Column.Index != 0 {
		t.Fatalf("expected virtual column 0, got %+v", target.Column)
	}
	// (45 - 0 - 5) / 30 = 1
	if target.Row.Kind != TargetVirtual || target.Row.Index != 1 {
		t.Fatalf("expected virtual row 1, got %+v", target.Row)
	}
	if target.Feedback != NewRect(10, 40, 31, 21) {
		t.Fatalf("unexpected feedback %+v", target.Feedback)
	}
}

func TestHitTestEmptyGridStartsVirtualSlotsAtPanelEdge(t *testing.T) {
	tester := NewHitTester(testHitConfig())

	target := tester.Test(HitTestInput{
		Cursor: Point{X: 25, Y: 25},
		Panel:  NewRect(20, 20, 300, 200),
	})

	if target.Column.Kind != TargetVirtual || target.Column.Index != 0 {
		t.Fatalf("expected virtual column 0, got %+v", target.Column)
	}
	if target.Column.Feedback != (Interval{Begin: 30, Length: 31}) {
		t.Fatalf("expected column slot after the panel edge, got %+v", target.Column.Feedback)
	}
	if target.Row.Kind != TargetVirtual || target.Row.Index != 0 {
		t.Fatalf("expected virtual row 0, got %+v", target.Row)
	}
	if target.Row.Feedback != (Interval{Begin: 30, Length: 21}) {
		t.Fatalf("expected row slot after the panel edge, got %+v", target.Row.Feedback)
	}

	// (95 - 20 - 5) / 40 = 1
	further := tester.Test(HitTestInput{
		Cursor: Point{X: 95, Y: 25},
		Panel:  NewRect(20, 20, 300, 200),
	})
	if further.Column.Index != 1 || further.Column.Feedback.Begin != 70 {
		t.Fatalf("expected virtual column 1 at 70, got %+v", further.Column)
	}
}

func TestHitTestSkipsUnresolvedIntervals(t *testing.T) {
	intervals := Intervals{
		Columns: []*Interval{{Begin: 0, Length: 20}, nil, {Begin: 60, Length: 20}},
	}

	gap := HitTest(intervals, Point{X: 40}, testHitConfig())
	if !gap.InsertColumn() || gap.Column.Index != 1 {
		t.Fatalf("expected insert at column 1 across the unresolved column, got %+v", gap.Column)
	}

	last := HitTest(intervals, Point{X: 70}, testHitConfig())
	if last.Column.Kind != TargetExisting || last.Column.Index != 2 {
		t.Fatalf("expected existing column 2, got %+v", last.Column)
	}
}

func TestHitTestRowInsertSpansPanelWithoutColumns(t *testing.T) {
	tester := NewHitTester(testHitConfig())
	target := tester.Test(HitTestInput{
		Intervals: Intervals{Rows: intervalsOf([2]int{0, 20}, [2]int{24, 20})},
		Cursor:    Point{X: 50, Y: 22},
		Panel:     NewRect(0, 0, 120, 80),
	})

	if !target.InsertRow() || target.Row.Index != 1 {
		t.Fatalf("expected row insert at 1, got %+v", target.Row)
	}
	if target.RowInsertBounds == nil {
		t.Fatal("expected row insert bounds")
	}
	if target.RowInsertBounds.X != 0 || target.RowInsertBounds.Width != 120 {
		t.Fatalf("expected row insert bounds to span the panel, got %+v", *target.RowInsertBounds)
	}
}

func TestInsertGeometryBetween(t *testing.T) {
	tests := map[string]struct {
		before, after Interval
		minGap        int
		want          InsertGeometry
	}{
		"wide gap keeps edges": {
			before: Interval{Begin: 0, Length: 30},
			after:  Interval{Begin: 40, Length: 30},
			minGap: 5,
			want:   InsertGeometry{Gap: 10, Begin: 31, End: 40, TargetBegin: 26, TargetEnd: 45},
		},
		"narrow gap widens with smaller left half": {
			before: Interval{Begin: 0, Length: 10},
			after:  Interval{Begin: 12, Length: 10},
			minGap: 5,
			want:   InsertGeometry{Gap: 5, Begin: 9, End: 14, TargetBegin: 4, TargetEnd: 19},
		},
		"touching intervals": {
			before: Interval{Begin: 0, Length: 10},
			after:  Interval{Begin: 10, Length: 10},
			minGap: 4,
			want:   InsertGeometry{Gap: 4, Begin: 8, End: 12, TargetBegin: 4, TargetEnd: 16},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := InsertGeometryBetween(tc.before, tc.after, tc.minGap)
			if got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}
