package grid

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

const invalidPlacementCode = "GRID_INVALID_PLACEMENT"

// ErrInvalidPlacement reports placement records that break the grid
// preconditions: spans wider than the grid, negative pinned positions or
// overlapping cells.
var ErrInvalidPlacement = errors.New("grid: invalid grid placement")

// PlacementError describes the record that failed placement.
type PlacementError struct {
	Index       int
	Row         int
	Column      int
	RowSpan     int
	ColSpan     int
	ColumnCount int
	Reason      string
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("grid: invalid grid placement for record %d at (%d,%d) span %dx%d in %d columns: %s",
		e.Index, e.Row, e.Column, e.RowSpan, e.ColSpan, e.ColumnCount, e.Reason)
}

func (e *PlacementError) Unwrap() error {
	return ErrInvalidPlacement
}

func invalidPlacement(e *PlacementError) error {
	return goerrors.Wrap(e, goerrors.CategoryValidation, "invalid grid placement").
		WithTextCode(invalidPlacementCode)
}
