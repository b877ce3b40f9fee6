package grid

// Point is a location in pixels.
type Point struct {
	X, Y int
}

// Sub returns p translated by -other.
func (p Point) Sub(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// Rect is an axis aligned box in pixels.
type Rect struct {
	X, Y          int
	Width, Height int
}

// NewRect creates a Rect.
func NewRect(x, y, width, height int) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Right returns the exclusive right edge.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Translate returns r moved so that origin becomes (0, 0).
func (r Rect) Translate(origin Point) Rect {
	return Rect{X: r.X - origin.X, Y: r.Y - origin.Y, Width: r.Width, Height: r.Height}
}

// Interval is a one dimensional pixel range, the extent of a row or a column.
type Interval struct {
	Begin  int
	Length int
}

// End returns Begin + Length.
func (i Interval) End() int { return i.Begin + i.Length }

// Contains reports whether v lies in [Begin, End).
func (i Interval) Contains(v int) bool {
	return i.Begin <= v && v < i.End()
}

// Intervals holds the resolved extent of every row and column. A nil entry
// means the index could not be resolved from any rendered cell.
type Intervals struct {
	Rows    []*Interval
	Columns []*Interval
}

// Axis selects one of the two grid dimensions.
type Axis uint8

const (
	AxisColumn Axis = iota
	AxisRow
)

// String returns the axis name used in logs.
func (a Axis) String() string {
	if a == AxisRow {
		return "row"
	}
	return "column"
}

func (r Rect) span(axis Axis) Interval {
	if axis == AxisRow {
		return Interval{Begin: r.Y, Length: r.Height}
	}
	return Interval{Begin: r.X, Length: r.Width}
}

func (p Point) along(axis Axis) int {
	if axis == AxisRow {
		return p.Y
	}
	return p.X
}

func rectFrom(columns, rows Interval) Rect {
	return Rect{X: columns.Begin, Y: rows.Begin, Width: columns.Length, Height: rows.Length}
}
