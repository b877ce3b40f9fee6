package grid

// Measurer reports the rendered geometry of the grid in absolute coordinates.
// A false return means the element is not rendered yet.
type Measurer interface {
	// CellBounds returns the box of the cell element owning the placement.
	CellBounds(p Placement) (Rect, bool)
	// RowBounds returns the box of the row element at index row.
	RowBounds(row int) (Rect, bool)
}

// MeasureFuncs adapts plain functions to Measurer. A nil Row falls back to
// the cell box when resolving row intervals.
type MeasureFuncs struct {
	Cell func(p Placement) (Rect, bool)
	Row  func(row int) (Rect, bool)
}

func (m MeasureFuncs) CellBounds(p Placement) (Rect, bool) {
	if m.Cell == nil {
		return Rect{}, false
	}
	return m.Cell(p)
}

func (m MeasureFuncs) RowBounds(row int) (Rect, bool) {
	if m.Row == nil {
		return Rect{}, false
	}
	return m.Row(row)
}

type spanKey struct {
	start int
	span  int
}

type spanGroup struct {
	spanKey
	interval Interval
}

func (g spanGroup) covers(index int) bool {
	return g.start <= index && index < g.start+g.span
}

// spanGroups collects aggregate intervals of spanning cells keyed by the
// range they cover. The first aggregate recorded for a range wins.
type spanGroups struct {
	seen   map[spanKey]struct{}
	groups []spanGroup
}

func (s *spanGroups) record(start, span int, interval Interval) {
	key := spanKey{start: start, span: span}
	if s.seen == nil {
		s.seen = make(map[spanKey]struct{})
	}
	if _, ok := s.seen[key]; ok {
		return
	}
	s.seen[key] = struct{}{}
	s.groups = append(s.groups, spanGroup{spanKey: key, interval: interval})
}

// approximate assigns equal slices of a covering aggregate to every index
// still unresolved. Integer division drops the remainder pixels.
func (s *spanGroups) approximate(intervals []*Interval) {
	for index := range intervals {
		if intervals[index] != nil {
			continue
		}
		for _, group := range s.groups {
			if !group.covers(index) {
				continue
			}
			sliceLength := group.interval.Length / group.span
			for k := 0; k < group.span; k++ {
				target := group.start + k
				if target >= len(intervals) || intervals[target] != nil {
					continue
				}
				intervals[target] = &Interval{
					Begin:  group.interval.Begin + k*sliceLength,
					Length: sliceLength,
				}
			}
			break
		}
	}
}

// Resolve produces one interval per row and per column of g. Boxes returned
// by m are translated by origin into the grid's local space. Non-spanning
// cells resolve their indices directly; spanning cells contribute aggregate
// intervals that are split evenly across indices nobody else resolved.
// Indices that no cell touches stay nil.
func Resolve(g LogicalGrid, m Measurer, origin Point) Intervals {
	result := Intervals{
		Rows:    make([]*Interval, g.RowCount),
		Columns: make([]*Interval, g.ColumnCount),
	}
	if g.Empty() || m == nil {
		return result
	}

	var rowGroups, columnGroups spanGroups

	for _, p := range g.Placements {
		cell, ok := m.CellBounds(p)
		if !ok {
			continue
		}
		cell = cell.Translate(origin)

		if inRange(p.Row, result.Rows) && result.Rows[p.Row] == nil {
			rowBox := cell
			if measured, ok := m.RowBounds(p.Row); ok {
				rowBox = measured.Translate(origin)
			}
			if p.RowSpan == 1 {
				resolved := rowBox.span(AxisRow)
				result.Rows[p.Row] = &resolved
			} else {
				rowGroups.record(p.Row, p.RowSpan, Interval{Begin: rowBox.Y, Length: cell.Height})
			}
		}

		if inRange(p.Column, result.Columns) && result.Columns[p.Column] == nil {
			if p.ColSpan == 1 {
				resolved := cell.span(AxisColumn)
				result.Columns[p.Column] = &resolved
			} else {
				columnGroups.record(p.Column, p.ColSpan, cell.span(AxisColumn))
			}
		}
	}

	rowGroups.approximate(result.Rows)
	columnGroups.approximate(result.Columns)

	return result
}

func inRange(index int, intervals []*Interval) bool {
	return index >= 0 && index < len(intervals)
}
