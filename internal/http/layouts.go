package http

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/goliatone/go-gridlayout/internal/layouts"
)

type createLayoutRequest struct {
	Code        string         `json:"code"`
	Name        string         `json:"name"`
	Description *string        `json:"description,omitempty"`
	ColumnCount int            `json:"column_count"`
	CellSchema  map[string]any `json:"cell_schema,omitempty"`
	CreatedBy   *uuid.UUID     `json:"created_by,omitempty"`
	ActorID     *uuid.UUID     `json:"actor_id,omitempty"`
}

type updateLayoutRequest struct {
	Name        *string        `json:"name,omitempty"`
	Description *string        `json:"description,omitempty"`
	ColumnCount *int           `json:"column_count,omitempty"`
	CellSchema  map[string]any `json:"cell_schema,omitempty"`
	UpdatedBy   *uuid.UUID     `json:"updated_by,omitempty"`
	ActorID     *uuid.UUID     `json:"actor_id,omitempty"`
}

type addCellRequest struct {
	WidgetType    string         `json:"widget_type"`
	Position      *int           `json:"position,omitempty"`
	Row           int            `json:"row"`
	Column        int            `json:"column"`
	RowSpan       int            `json:"row_span"`
	ColSpan       int            `json:"col_span"`
	Pinned        bool           `json:"pinned"`
	Configuration map[string]any `json:"configuration,omitempty"`
}

type updateCellRequest struct {
	WidgetType    *string        `json:"widget_type,omitempty"`
	Row           *int           `json:"row,omitempty"`
	Column        *int           `json:"column,omitempty"`
	RowSpan       *int           `json:"row_span,omitempty"`
	ColSpan       *int           `json:"col_span,omitempty"`
	Pinned        *bool          `json:"pinned,omitempty"`
	Configuration map[string]any `json:"configuration,omitempty"`
}

type reorderCellsRequest struct {
	CellIDs []uuid.UUID `json:"cell_ids"`
}

type placementResponse struct {
	CellID  uuid.UUID `json:"cell_id"`
	Row     int       `json:"row"`
	Column  int       `json:"column"`
	RowSpan int       `json:"row_span"`
	ColSpan int       `json:"col_span"`
}

type gridResponse struct {
	Layout      *layouts.Layout     `json:"layout"`
	RowCount    int                 `json:"row_count"`
	ColumnCount int                 `json:"column_count"`
	Placements  []placementResponse `json:"placements"`
}

func (api *EditorAPI) registerLayoutRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "layouts")

	mux.HandleFunc("GET "+root, api.handleListLayouts)
	mux.HandleFunc("POST "+root, api.handleCreateLayout)
	mux.HandleFunc("GET "+root+"/{id}", api.handleGetLayout)
	mux.HandleFunc("PUT "+root+"/{id}", api.handleUpdateLayout)
	mux.HandleFunc("DELETE "+root+"/{id}", api.handleDeleteLayout)
	mux.HandleFunc("POST "+root+"/{id}/recompute", api.handleRecompute)
}

func (api *EditorAPI) registerCellRoutes(mux *http.ServeMux, base string) {
	layoutRoot := joinPath(base, "layouts")
	cellRoot := joinPath(base, "cells")

	mux.HandleFunc("POST "+layoutRoot+"/{id}/cells", api.handleAddCell)
	mux.HandleFunc("PUT "+layoutRoot+"/{id}/cells/order", api.handleReorderCells)
	mux.HandleFunc("PUT "+cellRoot+"/{id}", api.handleUpdateCell)
	mux.HandleFunc("DELETE "+cellRoot+"/{id}", api.handleRemoveCell)
}

func (api *EditorAPI) handleListLayouts(w http.ResponseWriter, r *http.Request) {
	if api.layouts == nil {
		serviceUnavailable(w)
		return
	}
	records, err := api.layouts.ListLayouts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if records == nil {
		records = []*layouts.Layout{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (api *EditorAPI) handleCreateLayout(w http.ResponseWriter, r *http.Request) {
	if api.layouts == nil {
		serviceUnavailable(w)
		return
	}
	var req createLayoutRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid json payload")
		return
	}
	record, err := api.layouts.CreateLayout(r.Context(), layouts.CreateLayoutInput{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		ColumnCount: req.ColumnCount,
		CellSchema:  req.CellSchema,
		CreatedBy:   resolveActorID(req.CreatedBy, req.ActorID),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (api *EditorAPI) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	if api.layouts == nil {
		serviceUnavailable(w)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		badRequest(w, "invalid layout id")
		return
	}
	record, err := api.layouts.GetLayout(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *EditorAPI) handleUpdateLayout(w http.ResponseWriter, r *http.Request) {
	if api.layouts == nil {
		serviceUnavailable(w)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		badRequest(w, "invalid layout id")
		return
	}
	var req updateLayoutRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid json payload")
		return
	}
	record, err := api.layouts.UpdateLayout(r.Context(), layouts.UpdateLayoutInput{
		LayoutID:    id,
		Name:        req.Name,
		Description: req.Description,
		ColumnCount: req.ColumnCount,
		CellSchema:  req.CellSchema,
		UpdatedBy:   resolveActorID(req.UpdatedBy, req.ActorID),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *EditorAPI) handleDeleteLayout(w http.ResponseWriter, r *http.Request) {
	if api.layouts == nil {
		serviceUnavailable(w)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		badRequest(w, "invalid layout id")
		return
	}
	if err := api.layouts.DeleteLayout(r.Context(), layouts.DeleteLayoutRequest{
		LayoutID:   id,
		HardDelete: true,
	}); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (api *EditorAPI) handleRecompute(w http.ResponseWriter, r *http.Request) {
	if api.layouts == nil {
		serviceUnavailable(w)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		badRequest(w, "invalid layout id")
		return
	}
	result, err := api.layouts.RecomputeGrid(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newGridResponse(result))
}

func (api *EditorAPI) handleAddCell(w http.ResponseWriter, r *http.Request) {
	if api.layouts == nil {
		serviceUnavailable(w)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		badRequest(w, "invalid layout id")
		return
	}
	var req addCellRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid json payload")
		return
	}
	cell, err := api.layouts.AddCell(r.Context(), layouts.AddCellInput{
		LayoutID:      id,
		WidgetType:    req.WidgetType,
		Position:      req.Position,
		Row:           req.Row,
		Column:        req.Column,
		RowSpan:       req.RowSpan,
		ColSpan:       req.ColSpan,
		Pinned:        req.Pinned,
		Configuration: req.Configuration,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, cell)
}

func (api *EditorAPI) handleReorderCells(w http.ResponseWriter, r *http.Request) {
	if api.layouts == nil {
		serviceUnavailable(w)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		badRequest(w, "invalid layout id")
		return
	}
	var req reorderCellsRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid json payload")
		return
	}
	cells, err := api.layouts.ReorderCells(r.Context(), layouts.ReorderCellsInput{
		LayoutID: id,
		CellIDs:  req.CellIDs,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cells)
}

func (api *EditorAPI) handleUpdateCell(w http.ResponseWriter, r *http.Request) {
	if api.layouts == nil {
		serviceUnavailable(w)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		badRequest(w, "invalid cell id")
		return
	}
	var req updateCellRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid json payload")
		return
	}
	cell, err := api.layouts.UpdateCell(r.Context(), layouts.UpdateCellInput{
		CellID:        id,
		WidgetType:    req.WidgetType,
		Row:           req.Row,
		Column:        req.Column,
		RowSpan:       req.RowSpan,
		ColSpan:       req.ColSpan,
		Pinned:        req.Pinned,
		Configuration: req.Configuration,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cell)
}

func (api *EditorAPI) handleRemoveCell(w http.ResponseWriter, r *http.Request) {
	if api.layouts == nil {
		serviceUnavailable(w)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		badRequest(w, "invalid cell id")
		return
	}
	if err := api.layouts.RemoveCell(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func newGridResponse(result *layouts.LayoutGrid) gridResponse {
	resp := gridResponse{Placements: []placementResponse{}}
	if result == nil {
		return resp
	}
	resp.Layout = result.Layout
	resp.RowCount = result.Grid.RowCount
	resp.ColumnCount = result.Grid.ColumnCount
	for _, placement := range result.Grid.Placements {
		entry := placementResponse{
			Row:     placement.Row,
			Column:  placement.Column,
			RowSpan: placement.RowSpan,
			ColSpan: placement.ColSpan,
		}
		if cell, ok := layouts.CellOf(placement); ok && cell != nil {
			entry.CellID = cell.ID
		}
		resp.Placements = append(resp.Placements, entry)
	}
	return resp
}
