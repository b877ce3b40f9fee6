package editor

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-gridlayout/internal/grid"
	"github.com/goliatone/go-gridlayout/internal/layouts"
	"github.com/goliatone/go-gridlayout/internal/logging"
	"github.com/goliatone/go-gridlayout/pkg/interfaces"
)

// GridSource recomputes the logical grid of a layout.
type GridSource interface {
	RecomputeGrid(ctx context.Context, layoutID uuid.UUID) (*layouts.LayoutGrid, error)
}

// Session is the editing state of one layout. Refresh takes the write lock;
// Measure also writes but only replaces intervals; Target and the snapshot
// accessors read under the shared lock.
type Session struct {
	mu        sync.RWMutex
	layoutID  uuid.UUID
	source    GridSource
	tester    *grid.HitTester
	logger    interfaces.Logger
	current   *layouts.LayoutGrid
	intervals grid.Intervals
	origin    grid.Point
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger sets the session logger.
func WithLogger(logger interfaces.Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSession creates a session for layoutID. The grid is empty until the
// first successful Refresh.
func NewSession(source GridSource, layoutID uuid.UUID, cfg grid.HitConfig, opts ...SessionOption) *Session {
	s := &Session{
		layoutID: layoutID,
		source:   source,
		tester:   grid.NewHitTester(cfg),
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LayoutID returns the layout the session edits.
func (s *Session) LayoutID() uuid.UUID {
	return s.layoutID
}

// Refresh recomputes placement. On failure the previous grid and intervals
// are kept and the error is returned.
func (s *Session) Refresh(ctx context.Context) (grid.LogicalGrid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger := logging.WithLayoutContext(s.logger, s.layoutID.String(), "").WithContext(ctx)

	result, err := s.source.RecomputeGrid(ctx, s.layoutID)
	if err != nil {
		logger.Warn("editor.refresh.failed", "error", err)
		if s.current == nil {
			return grid.LogicalGrid{}, err
		}
		return s.current.Grid, err
	}

	s.current = result
	s.intervals = grid.Intervals{}
	logger.Debug("editor.refresh.completed", "rows", result.Grid.RowCount, "columns", result.Grid.ColumnCount)
	return result.Grid, nil
}

// Measure resolves row and column intervals for the current grid. Bounds
// reported by m are translated into the panel space anchored at origin.
func (s *Session) Measure(m grid.Measurer, origin grid.Point) grid.Intervals {
	s.mu.Lock()
	defer s.mu.Unlock()

	var logical grid.LogicalGrid
	if s.current != nil {
		logical = s.current.Grid
	}
	s.intervals = grid.Resolve(logical, m, origin)
	s.origin = origin
	return cloneIntervals(s.intervals)
}

// Target hit-tests cursor against the last measured intervals. cursor and
// panel use the same coordinate space as the bounds given to Measure.
func (s *Session) Target(cursor grid.Point, panel grid.Rect) grid.Target {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.tester.Test(grid.HitTestInput{
		Intervals: s.intervals,
		Cursor:    cursor.Sub(s.origin),
		Panel:     panel.Translate(s.origin),
	})
}

// Grid returns the current logical grid.
func (s *Session) Grid() grid.LogicalGrid {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return grid.LogicalGrid{}
	}
	return s.current.Grid
}

// Cells returns the cells of the current grid in document order.
func (s *Session) Cells() []*layouts.Cell {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil
	}
	return append([]*layouts.Cell(nil), s.current.Cells...)
}

// Intervals returns a copy of the last measured intervals.
func (s *Session) Intervals() grid.Intervals {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneIntervals(s.intervals)
}

func cloneIntervals(src grid.Intervals) grid.Intervals {
	return grid.Intervals{
		Rows:    cloneAxis(src.Rows),
		Columns: cloneAxis(src.Columns),
	}
}

func cloneAxis(src []*grid.Interval) []*grid.Interval {
	if src == nil {
		return nil
	}
	out := make([]*grid.Interval, len(src))
	for i, interval := range src {
		if interval != nil {
			copied := *interval
			out[i] = &copied
		}
	}
	return out
}
