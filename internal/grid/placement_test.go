package grid

import (
	"errors"
	"math/rand"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

type testCell struct {
	row, column      int
	rowSpan, colSpan int
	pinned           bool
}

func (c *testCell) Row() int             { return c.row }
func (c *testCell) Column() int          { return c.column }
func (c *testCell) RowSpan() int         { return c.rowSpan }
func (c *testCell) ColSpan() int         { return c.colSpan }
func (c *testCell) Pinned() bool         { return c.pinned }
func (c *testCell) SetRow(row int)       { c.row = row }
func (c *testCell) SetColumn(column int) { c.column = column }

func cells(items ...*testCell) []Placeable {
	out := make([]Placeable, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}

func TestPlaceSingleCell(t *testing.T) {
	cell := &testCell{}
	grid, err := Place(cells(cell), 2)
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if cell.row != 0 || cell.column != 0 {
		t.Fatalf("expected cell at (0,0), got (%d,%d)", cell.row, cell.column)
	}
	if grid.RowCount != 1 || grid.ColumnCount != 2 {
		t.Fatalf("expected 1x2 grid, got %dx%d", grid.RowCount, grid.ColumnCount)
	}
	if grid.Placements[0].RowSpan != 1 || grid.Placements[0].ColSpan != 1 {
		t.Fatalf("expected default spans of 1, got %+v", grid.Placements[0])
	}
}

func TestPlaceWrapsToNextRow(t *testing.T) {
	first, second, third := &testCell{}, &testCell{}, &testCell{}
	grid, err := Place(cells(first, second, third), 2)
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	expected := map[*testCell][2]int{
		first:  {0, 0},
		second: {0, 1},
		third:  {1, 0},
	}
	for cell, want := range expected {
		if cell.row != want[0] || cell.column != want[1] {
			t.Fatalf("expected (%d,%d), got (%d,%d)", want[0], want[1], cell.row, cell.column)
		}
	}
	if grid.RowCount != 2 {
		t.Fatalf("expected 2 rows, got %d", grid.RowCount)
	}
}

func TestPlaceSkipsRowFilledBySpan(t *testing.T) {
	wide := &testCell{colSpan: 2}
	single := &testCell{}
	grid, err := Place(cells(wide, single), 2)
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if wide.row != 0 || wide.column != 0 {
		t.Fatalf("expected spanning cell at (0,0), got (%d,%d)", wide.row, wide.column)
	}
	if single.row != 1 || single.column != 0 {
		t.Fatalf("expected single cell at (1,0), got (%d,%d)", single.row, single.column)
	}
	if grid.RowCount != 2 {
		t.Fatalf("expected 2 rows, got %d", grid.RowCount)
	}
}

func TestPlaceRowSpanGrowsGrid(t *testing.T) {
	tall := &testCell{rowSpan: 3}
	right := &testCell{}
	below := &testCell{}
	grid, err := Place(cells(tall, right, below), 2)
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if grid.RowCount != 3 {
		t.Fatalf("expected 3 rows, got %d", grid.RowCount)
	}
	if right.row != 0 || right.column != 1 {
		t.Fatalf("expected (0,1), got (%d,%d)", right.row, right.column)
	}
	if below.row != 1 || below.column != 1 {
		t.Fatalf("expected (1,1) next to the tall cell, got (%d,%d)", below.row, below.column)
	}
}

func TestPlaceSpanThatDoesNotFitMovesToNextRow(t *testing.T) {
	single := &testCell{}
	wide := &testCell{colSpan: 2}
	if _, err := Place(cells(single, wide), 2); err != nil {
		t.Fatalf("place: %v", err)
	}
	if wide.row != 1 || wide.column != 0 {
		t.Fatalf("expected wide cell to wrap to (1,0), got (%d,%d)", wide.row, wide.column)
	}
}

func TestPlaceEmptyReportsZeroGrid(t *testing.T) {
	grid, err := Place(nil, 4)
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if grid.RowCount != 0 || grid.ColumnCount != 0 {
		t.Fatalf("expected empty grid, got %dx%d", grid.RowCount, grid.ColumnCount)
	}
	if !grid.Empty() {
		t.Fatalf("expected grid to report empty")
	}
}

func TestPlaceKeepsPinnedCells(t *testing.T) {
	pinned := &testCell{row: 1, column: 1, pinned: true}
	auto := &testCell{}
	grid, err := Place(cells(pinned, auto), 2)
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if pinned.row != 1 || pinned.column != 1 {
		t.Fatalf("pinned cell moved to (%d,%d)", pinned.row, pinned.column)
	}
	if auto.row != 0 || auto.column != 0 {
		t.Fatalf("expected auto cell at (0,0), got (%d,%d)", auto.row, auto.column)
	}
	if grid.RowCount != 2 {
		t.Fatalf("expected 2 rows, got %d", grid.RowCount)
	}
}

func TestPlaceRejectsInvalidRecords(t *testing.T) {
	tests := map[string][]Placeable{
		"span wider than grid": cells(&testCell{colSpan: 3}),
		"pinned outside grid":  cells(&testCell{row: 0, column: 1, colSpan: 2, pinned: true}),
		"negative pinned row":  cells(&testCell{row: -1, pinned: true}),
		"overlapping pinned": cells(
			&testCell{row: 0, column: 0, rowSpan: 2, pinned: true},
			&testCell{row: 1, column: 0, pinned: true},
		),
	}

	for name, records := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Place(records, 2)
			if err == nil {
				t.Fatal("expected placement error")
			}
			if !errors.Is(err, ErrInvalidPlacement) {
				t.Fatalf("expected ErrInvalidPlacement, got %v", err)
			}
			if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
				t.Fatalf("expected validation category, got %v", err)
			}
			var placementErr *PlacementError
			if !errors.As(err, &placementErr) || placementErr.Reason == "" {
				t.Fatalf("expected PlacementError with reason, got %v", err)
			}
		})
	}
}

func TestPlaceLeavesRecordsUntouchedOnError(t *testing.T) {
	first := &testCell{row: 9, column: 9}
	second := &testCell{row: 7, column: 7}
	wide := &testCell{row: 3, column: 3, colSpan: 5}

	_, err := Place(cells(first, second, wide), 2)
	if !errors.Is(err, ErrInvalidPlacement) {
		t.Fatalf("expected ErrInvalidPlacement, got %v", err)
	}
	if first.row != 9 || first.column != 9 {
		t.Fatalf("expected first record to keep (9,9), got (%d,%d)", first.row, first.column)
	}
	if second.row != 7 || second.column != 7 {
		t.Fatalf("expected second record to keep (7,7), got (%d,%d)", second.row, second.column)
	}
	if wide.row != 3 || wide.column != 3 {
		t.Fatalf("expected failing record to keep (3,3), got (%d,%d)", wide.row, wide.column)
	}
}

func TestPlacePropertiesOnRandomLayouts(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for iteration := 0; iteration < 200; iteration++ {
		columnCount := 1 + rng.Intn(5)
		records := make([]*testCell, 1+rng.Intn(12))
		for i := range records {
			records[i] = &testCell{
				rowSpan: 1 + rng.Intn(3),
				colSpan: 1 + rng.Intn(columnCount),
			}
		}

		grid, err := Place(cells(records...), columnCount)
		if err != nil {
			t.Fatalf("iteration %d: place: %v", iteration, err)
		}

		seen := map[[2]int]int{}
		for index, p := range grid.Placements {
			if p.Row+p.RowSpan > grid.RowCount || p.Column+p.ColSpan > grid.ColumnCount {
				t.Fatalf("iteration %d: placement %d escapes %dx%d grid: %+v",
					iteration, index, grid.RowCount, grid.ColumnCount, p)
			}
			for r := p.Row; r < p.Row+p.RowSpan; r++ {
				for c := p.Column; c < p.Column+p.ColSpan; c++ {
					if other, ok := seen[[2]int{r, c}]; ok {
						t.Fatalf("iteration %d: placements %d and %d overlap at (%d,%d)", iteration, other, index, r, c)
					}
					seen[[2]int{r, c}] = index
				}
			}
		}

		before := make([][2]int, len(records))
		for i, record := range records {
			before[i] = [2]int{record.row, record.column}
			record.pinned = true
		}
		again, err := Place(cells(records...), columnCount)
		if err != nil {
			t.Fatalf("iteration %d: replace pinned: %v", iteration, err)
		}
		if again.RowCount != grid.RowCount {
			t.Fatalf("iteration %d: expected %d rows on rerun, got %d", iteration, grid.RowCount, again.RowCount)
		}
		for i, record := range records {
			if record.row != before[i][0] || record.column != before[i][1] {
				t.Fatalf("iteration %d: record %d moved from %v to (%d,%d)", iteration, i, before[i], record.row, record.column)
			}
		}
	}
}
