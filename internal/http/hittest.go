package http

import (
	"net/http"

	"github.com/goliatone/go-gridlayout/internal/grid"
)

type intervalPayload struct {
	Begin  int `json:"begin"`
	Length int `json:"length"`
}

type rectPayload struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

type pointPayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type hitConfigPayload struct {
	InsertThresholdColumn int `json:"insert_threshold_column"`
	InsertThresholdRow    int `json:"insert_threshold_row"`
	InsertMargin          int `json:"insert_margin"`
	VirtualColumnGap      int `json:"virtual_column_gap"`
	VirtualColumnSize     int `json:"virtual_column_size"`
	VirtualRowGap         int `json:"virtual_row_gap"`
	VirtualRowSize        int `json:"virtual_row_size"`
}

// Null entries in rows/columns mark intervals that could not be resolved.
type hitTestRequest struct {
	Rows    []*intervalPayload `json:"rows"`
	Columns []*intervalPayload `json:"columns"`
	Cursor  pointPayload       `json:"cursor"`
	Panel   rectPayload        `json:"panel"`
	Config  *hitConfigPayload  `json:"config,omitempty"`
}

type insertPayload struct {
	Gap         int `json:"gap"`
	Begin       int `json:"begin"`
	End         int `json:"end"`
	TargetBegin int `json:"target_begin"`
	TargetEnd   int `json:"target_end"`
}

type axisTargetPayload struct {
	Index    int             `json:"index"`
	Kind     string          `json:"kind"`
	Feedback intervalPayload `json:"feedback"`
	Insert   *insertPayload  `json:"insert,omitempty"`
}

type hitTestResponse struct {
	Column             axisTargetPayload `json:"column"`
	Row                axisTargetPayload `json:"row"`
	Feedback           rectPayload       `json:"feedback"`
	ColumnInsertBounds *rectPayload      `json:"column_insert_bounds,omitempty"`
	RowInsertBounds    *rectPayload      `json:"row_insert_bounds,omitempty"`
}

func (api *EditorAPI) registerHitTestRoutes(mux *http.ServeMux, base string) {
	mux.HandleFunc("POST "+joinPath(base, "hit-test"), api.handleHitTest)
}

func (api *EditorAPI) handleHitTest(w http.ResponseWriter, r *http.Request) {
	var req hitTestRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid json payload")
		return
	}

	cfg := api.hit
	if req.Config != nil {
		cfg = grid.HitConfig{
			InsertThresholdColumn: req.Config.InsertThresholdColumn,
			InsertThresholdRow:    req.Config.InsertThresholdRow,
			InsertMargin:          req.Config.InsertMargin,
			VirtualColumnGap:      req.Config.VirtualColumnGap,
			VirtualColumnSize:     req.Config.VirtualColumnSize,
			VirtualRowGap:         req.Config.VirtualRowGap,
			VirtualRowSize:        req.Config.VirtualRowSize,
		}
	}

	target := grid.NewHitTester(cfg).Test(grid.HitTestInput{
		Intervals: grid.Intervals{
			Rows:    toIntervals(req.Rows),
			Columns: toIntervals(req.Columns),
		},
		Cursor: grid.Point{X: req.Cursor.X, Y: req.Cursor.Y},
		Panel:  grid.NewRect(req.Panel.X, req.Panel.Y, req.Panel.Width, req.Panel.Height),
	})

	writeJSON(w, http.StatusOK, newHitTestResponse(target))
}

func toIntervals(in []*intervalPayload) []*grid.Interval {
	out := make([]*grid.Interval, len(in))
	for i, item := range in {
		if item == nil {
			continue
		}
		out[i] = &grid.Interval{Begin: item.Begin, Length: item.Length}
	}
	return out
}

func newHitTestResponse(target grid.Target) hitTestResponse {
	resp := hitTestResponse{
		Column:   newAxisTargetPayload(target.Column),
		Row:      newAxisTargetPayload(target.Row),
		Feedback: newRectPayload(target.Feedback),
	}
	if target.ColumnInsertBounds != nil {
		bounds := newRectPayload(*target.ColumnInsertBounds)
		resp.ColumnInsertBounds = &bounds
	}
	if target.RowInsertBounds != nil {
		bounds := newRectPayload(*target.RowInsertBounds)
		resp.RowInsertBounds = &bounds
	}
	return resp
}

func newAxisTargetPayload(target grid.AxisTarget) axisTargetPayload {
	payload := axisTargetPayload{
		Index:    target.Index,
		Kind:     target.Kind.String(),
		Feedback: intervalPayload{Begin: target.Feedback.Begin, Length: target.Feedback.Length},
	}
	if target.Kind == grid.TargetInsert {
		payload.Insert = &insertPayload{
			Gap:         target.Insert.Gap,
			Begin:       target.Insert.Begin,
			End:         target.Insert.End,
			TargetBegin: target.Insert.TargetBegin,
			TargetEnd:   target.Insert.TargetEnd,
		}
	}
	return payload
}

func newRectPayload(r grid.Rect) rectPayload {
	return rectPayload{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}
