package gridlayout

import "github.com/goliatone/go-gridlayout/internal/grid"

// ErrInvalidPlacement is returned when placement records violate the grid
// preconditions.
var ErrInvalidPlacement = grid.ErrInvalidPlacement

type (
	Point          = grid.Point
	Rect           = grid.Rect
	Interval       = grid.Interval
	Intervals      = grid.Intervals
	Axis           = grid.Axis
	Placeable      = grid.Placeable
	Placement      = grid.Placement
	LogicalGrid    = grid.LogicalGrid
	PlacementError = grid.PlacementError
	Measurer       = grid.Measurer
	MeasureFuncs   = grid.MeasureFuncs
	HitConfig      = grid.HitConfig
	HitTestInput   = grid.HitTestInput
	HitTester      = grid.HitTester
	Target         = grid.Target
	AxisTarget     = grid.AxisTarget
	TargetKind     = grid.TargetKind
	InsertGeometry = grid.InsertGeometry
)

const (
	AxisColumn = grid.AxisColumn
	AxisRow    = grid.AxisRow

	TargetExisting = grid.TargetExisting
	TargetInsert   = grid.TargetInsert
	TargetVirtual  = grid.TargetVirtual
)

// NewRect creates a Rect.
func NewRect(x, y, width, height int) Rect {
	return grid.NewRect(x, y, width, height)
}

// Place assigns a row and column to every record that is not pinned and
// reports the resulting grid.
func Place(records []Placeable, columnCount int) (LogicalGrid, error) {
	return grid.Place(records, columnCount)
}

// Resolve measures the pixel interval of every row and column of g relative
// to origin.
func Resolve(g LogicalGrid, m Measurer, origin Point) Intervals {
	return grid.Resolve(g, m, origin)
}

// NewHitTester returns a hit tester using cfg.
func NewHitTester(cfg HitConfig) *HitTester {
	return grid.NewHitTester(cfg)
}

// HitTest maps cursor onto intervals.
func HitTest(intervals Intervals, cursor Point, cfg HitConfig) Target {
	return grid.HitTest(intervals, cursor, cfg)
}
