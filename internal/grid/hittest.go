package grid

// HitConfig holds the editor thresholds used when mapping a cursor onto the
// grid. Values are in pixels.
type HitConfig struct {
	// InsertThresholdColumn and InsertThresholdRow are the minimum visual
	// width of an insertion marker and the distance from a seam within which
	// tightly packed columns/rows still report an insertion.
	InsertThresholdColumn int
	InsertThresholdRow    int
	// InsertMargin pads the insert bounds along the opposite axis.
	InsertMargin int

	VirtualColumnGap  int
	VirtualColumnSize int
	VirtualRowGap     int
	VirtualRowSize    int
}

// TargetKind classifies what the cursor points at along one axis.
type TargetKind uint8

const (
	// TargetExisting is an existing column or row.
	TargetExisting TargetKind = iota
	// TargetInsert is the seam before the index, where a new column or row
	// would be inserted.
	TargetInsert
	// TargetVirtual is a column or row past the end of the grid.
	TargetVirtual
)

// String returns the kind name used in logs.
func (k TargetKind) String() string {
	switch k {
	case TargetInsert:
		return "insert"
	case TargetVirtual:
		return "virtual"
	default:
		return "existing"
	}
}

// InsertGeometry is the feedback for an insertion seam between two intervals.
type InsertGeometry struct {
	// Gap is the rendered gap, never narrower than the minimum gap.
	Gap int
	// Begin and End bound the insertion marker.
	Begin int
	End   int
	// TargetBegin and TargetEnd bound the wider highlight around the marker.
	TargetBegin int
	TargetEnd   int
}

// AxisTarget is the hit test outcome along a single axis.
type AxisTarget struct {
	Index int
	Kind  TargetKind
	// Feedback is the highlighted extent along this axis.
	Feedback Interval
	// Insert is only meaningful when Kind is TargetInsert.
	Insert InsertGeometry
}

// Target is the result of a hit test. Column and Row are always populated.
type Target struct {
	Column AxisTarget
	Row    AxisTarget
	// Feedback combines both axes into the cell highlight.
	Feedback Rect
	// ColumnInsertBounds is set when a column insertion is targeted and spans
	// the row axis. RowInsertBounds is the transposed counterpart.
	ColumnInsertBounds *Rect
	RowInsertBounds    *Rect
}

// InsertColumn reports whether the target inserts a new column.
func (t Target) InsertColumn() bool { return t.Column.Kind == TargetInsert }

// InsertRow reports whether the target inserts a new row.
func (t Target) InsertRow() bool { return t.Row.Kind == TargetInsert }

// HitTestInput carries the geometry for a single cursor event. Cursor and
// Panel are in the grid's local space; Panel is used as the baseline when an
// axis has no resolved interval.
type HitTestInput struct {
	Intervals Intervals
	Cursor    Point
	Panel     Rect
}

// HitTester maps cursor positions onto resolved grid intervals.
type HitTester struct {
	cfg HitConfig
}

// NewHitTester creates a hit tester for the given thresholds.
func NewHitTester(cfg HitConfig) *HitTester {
	return &HitTester{cfg: cfg}
}

// Config returns the thresholds in use.
func (h *HitTester) Config() HitConfig {
	return h.cfg
}

// HitTest is a shorthand for NewHitTester(cfg).Test with an empty panel.
func HitTest(intervals Intervals, cursor Point, cfg HitConfig) Target {
	return NewHitTester(cfg).Test(HitTestInput{Intervals: intervals, Cursor: cursor})
}

// Test resolves both axes independently and assembles the feedback geometry.
// It always returns a target; unresolved intervals are skipped.
func (h *HitTester) Test(in HitTestInput) Target {
	columns := compact(in.Intervals.Columns)
	rows := compact(in.Intervals.Rows)

	target := Target{
		Column: resolveAxis(columns, len(in.Intervals.Columns), in.Cursor.along(AxisColumn), axisConfig{
			threshold:   h.cfg.InsertThresholdColumn,
			virtualGap:  h.cfg.VirtualColumnGap,
			virtualSize: h.cfg.VirtualColumnSize,
			baseline:    in.Panel.span(AxisColumn).Begin,
		}),
		Row: resolveAxis(rows, len(in.Intervals.Rows), in.Cursor.along(AxisRow), axisConfig{
			threshold:   h.cfg.InsertThresholdRow,
			virtualGap:  h.cfg.VirtualRowGap,
			virtualSize: h.cfg.VirtualRowSize,
			baseline:    in.Panel.span(AxisRow).Begin,
		}),
	}
	target.Feedback = rectFrom(target.Column.Feedback, target.Row.Feedback)

	if target.InsertColumn() {
		marker := Interval{Begin: target.Column.Insert.Begin, Length: target.Column.Insert.End - target.Column.Insert.Begin}
		bounds := rectFrom(marker, h.extent(rows, in.Panel.span(AxisRow)))
		target.ColumnInsertBounds = &bounds
	}
	if target.InsertRow() {
		marker := Interval{Begin: target.Row.Insert.Begin, Length: target.Row.Insert.End - target.Row.Insert.Begin}
		bounds := rectFrom(h.extent(columns, in.Panel.span(AxisColumn)), marker)
		target.RowInsertBounds = &bounds
	}

	return target
}

// extent spans every resolved interval on an axis plus the insert margin, or
// the panel when nothing is resolved.
func (h *HitTester) extent(resolved []indexedInterval, panel Interval) Interval {
	if len(resolved) == 0 {
		return panel
	}
	begin := resolved[0].Begin - h.cfg.InsertMargin
	end := resolved[len(resolved)-1].End() + h.cfg.InsertMargin
	return Interval{Begin: begin, Length: end - begin}
}

// InsertGeometryBetween computes the insertion marker between before and
// after. The marker is centred on the gap and widened to at least minGap;
// when widening is uneven the left side takes the smaller half. A marker that
// would start on the left interval's edge is moved one pixel off it.
func InsertGeometryBetween(before, after Interval, minGap int) InsertGeometry {
	gap := after.Begin - before.End()
	visual := max(gap, minGap)
	spill := visual - gap

	begin := before.End() - spill/2
	end := begin + visual
	if begin == before.End() && end-begin > 1 {
		begin++
	}

	return InsertGeometry{
		Gap:         visual,
		Begin:       begin,
		End:         end,
		TargetBegin: begin - minGap,
		TargetEnd:   end + minGap,
	}
}

type axisConfig struct {
	threshold   int
	virtualGap  int
	virtualSize int
	// baseline is where virtual slots start when the axis has no resolved
	// interval: the panel's leading edge.
	baseline int
}

type indexedInterval struct {
	Interval
	index int
}

func compact(intervals []*Interval) []indexedInterval {
	out := make([]indexedInterval, 0, len(intervals))
	for index, interval := range intervals {
		if interval == nil {
			continue
		}
		out = append(out, indexedInterval{Interval: *interval, index: index})
	}
	return out
}

func resolveAxis(resolved []indexedInterval, count, pos int, cfg axisConfig) AxisTarget {
	if len(resolved) > 0 && pos < resolved[0].Begin {
		geometry := InsertGeometryBetween(Interval{}, resolved[0].Interval, cfg.threshold)
		return insertTarget(0, geometry)
	}

	for i, current := range resolved {
		if i < len(resolved)-1 {
			next := resolved[i+1]
			gap := next.Begin - current.End()
			direct := current.End() <= pos && pos < next.Begin
			narrow := gap < 2*cfg.threshold
			nearEnd := abs(pos-current.End()) < cfg.threshold
			nearBegin := abs(pos-next.Begin) < cfg.threshold
			if direct || (narrow && (nearEnd || nearBegin)) {
				geometry := InsertGeometryBetween(current.Interval, next.Interval, cfg.threshold)
				return insertTarget(current.index+1, geometry)
			}
		}
		if current.Contains(pos) {
			return AxisTarget{
				Index:    current.index,
				Kind:     TargetExisting,
				Feedback: Interval{Begin: current.Begin, Length: current.Length + 1},
			}
		}
	}

	return virtualTarget(resolved, count, pos, cfg)
}

func insertTarget(index int, geometry InsertGeometry) AxisTarget {
	return AxisTarget{
		Index: index,
		Kind:  TargetInsert,
		Feedback: Interval{
			Begin:  geometry.TargetBegin,
			Length: geometry.TargetEnd - geometry.TargetBegin,
		},
		Insert: geometry,
	}
}

// virtualTarget projects evenly spaced slots past the last resolved interval,
// or past the panel edge when nothing is resolved, and picks the one under
// pos. Slots never precede the end of the grid.
func virtualTarget(resolved []indexedInterval, count, pos int, cfg axisConfig) AxisTarget {
	lastEnd := cfg.baseline
	if len(resolved) > 0 {
		lastEnd = resolved[len(resolved)-1].End()
	}
	step := cfg.virtualSize + cfg.virtualGap
	if step <= 0 {
		step = 1
	}
	delta := floorDiv(pos-lastEnd-cfg.virtualGap/2, step)
	if delta < 0 {
		delta = 0
	}
	return AxisTarget{
		Index: count + delta,
		Kind:  TargetVirtual,
		Feedback: Interval{
			Begin:  lastEnd + cfg.virtualGap + delta*step,
			Length: cfg.virtualSize + 1,
		},
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
