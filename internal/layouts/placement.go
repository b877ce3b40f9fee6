package layouts

import "github.com/goliatone/go-gridlayout/internal/grid"

// cellPlacement exposes a Cell to the placement builder.
type cellPlacement struct {
	cell *Cell
}

var _ grid.Placeable = cellPlacement{}

func (p cellPlacement) Row() int             { return p.cell.Row }
func (p cellPlacement) Column() int          { return p.cell.Column }
func (p cellPlacement) RowSpan() int         { return p.cell.RowSpan }
func (p cellPlacement) ColSpan() int         { return p.cell.ColSpan }
func (p cellPlacement) Pinned() bool         { return p.cell.Pinned }
func (p cellPlacement) SetRow(row int)       { p.cell.Row = row }
func (p cellPlacement) SetColumn(column int) { p.cell.Column = column }

// Placeables adapts cells, in the given order, for grid.Place.
func Placeables(cells []*Cell) []grid.Placeable {
	out := make([]grid.Placeable, 0, len(cells))
	for _, cell := range cells {
		if cell == nil {
			continue
		}
		out = append(out, cellPlacement{cell: cell})
	}
	return out
}

// CellOf returns the cell behind a placement produced from Placeables.
func CellOf(p grid.Placement) (*Cell, bool) {
	adapted, ok := p.Record.(cellPlacement)
	if !ok {
		return nil, false
	}
	return adapted.cell, true
}

// LayoutGrid pairs a layout with the logical grid computed from its cells.
type LayoutGrid struct {
	Layout *Layout
	Cells  []*Cell
	Grid   grid.LogicalGrid
}
