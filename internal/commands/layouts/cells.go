package layoutscmd

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/goliatone/go-gridlayout/internal/commands"
	"github.com/goliatone/go-gridlayout/internal/layouts"
	"github.com/goliatone/go-gridlayout/internal/logging"
	"github.com/goliatone/go-gridlayout/pkg/interfaces"
)

const (
	addLayoutCellMessageType    = "grid.layouts.cell.add"
	removeLayoutCellMessageType = "grid.layouts.cell.remove"
)

// AddLayoutCellCommand appends a cell to a layout and recomputes its grid.
type AddLayoutCellCommand struct {
	LayoutID      uuid.UUID      `json:"layout_id"`
	WidgetType    string         `json:"widget_type"`
	Position      *int           `json:"position,omitempty"`
	Row           int            `json:"row"`
	Column        int            `json:"column"`
	RowSpan       int            `json:"row_span"`
	ColSpan       int            `json:"col_span"`
	Pinned        bool           `json:"pinned"`
	Configuration map[string]any `json:"configuration,omitempty"`
}

// Type implements command.Message.
func (AddLayoutCellCommand) Type() string { return addLayoutCellMessageType }

// Validate implements command.Message.
func (m AddLayoutCellCommand) Validate() error {
	errs := validation.Errors{}
	if m.LayoutID == uuid.Nil {
		errs["layout_id"] = validation.NewError("grid.layouts.cell.add.layout_id_required", "layout_id is required")
	}
	if strings.TrimSpace(m.WidgetType) == "" {
		errs["widget_type"] = validation.NewError("grid.layouts.cell.add.widget_type_required", "widget_type is required")
	}
	if m.RowSpan < 0 {
		errs["row_span"] = validation.NewError("grid.layouts.cell.add.row_span_invalid", "row_span cannot be negative")
	}
	if m.ColSpan < 0 {
		errs["col_span"] = validation.NewError("grid.layouts.cell.add.col_span_invalid", "col_span cannot be negative")
	}
	if m.Pinned && (m.Row < 0 || m.Column < 0) {
		errs["pinned"] = validation.NewError("grid.layouts.cell.add.pinned_position_invalid", "pinned cells need a non-negative row and column")
	}
	if m.Position != nil && *m.Position < 0 {
		errs["position"] = validation.NewError("grid.layouts.cell.add.position_invalid", "position cannot be negative")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// AddLayoutCellHandler executes AddLayoutCellCommand.
type AddLayoutCellHandler struct {
	inner *commands.Handler[AddLayoutCellCommand]
}

// NewAddLayoutCellHandler wires the handler to the layout service.
func NewAddLayoutCellHandler(service layouts.Service, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[AddLayoutCellCommand]) *AddLayoutCellHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg AddLayoutCellCommand) error {
		if !gates.enabled() {
			return ErrLayoutsCommandsDisabled
		}
		cell, err := service.AddCell(ctx, layouts.AddCellInput{
			LayoutID:      msg.LayoutID,
			WidgetType:    msg.WidgetType,
			Position:      msg.Position,
			Row:           msg.Row,
			Column:        msg.Column,
			RowSpan:       msg.RowSpan,
			ColSpan:       msg.ColSpan,
			Pinned:        msg.Pinned,
			Configuration: msg.Configuration,
		})
		if err != nil {
			return err
		}
		if _, err := service.RecomputeGrid(ctx, msg.LayoutID); err != nil {
			// The new cell cannot be placed, so it must not linger.
			if removeErr := service.RemoveCell(ctx, cell.ID); removeErr != nil {
				baseLogger.Error("layouts.command.cell.rollback_failed", "cell_id", cell.ID, "error", removeErr)
			}
			return err
		}
		logging.WithLayoutContext(baseLogger, msg.LayoutID.String(), "").
			Info("layouts.command.cell.added", "cell_id", cell.ID, "widget_type", cell.WidgetType)
		return nil
	}

	handlerOpts := []commands.HandlerOption[AddLayoutCellCommand]{
		commands.WithLogger[AddLayoutCellCommand](baseLogger),
		commands.WithOperation[AddLayoutCellCommand]("layouts.cell.add"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &AddLayoutCellHandler{
		inner: commands.NewHandler[AddLayoutCellCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[AddLayoutCellCommand].
func (h *AddLayoutCellHandler) Execute(ctx context.Context, msg AddLayoutCellCommand) error {
	return h.inner.Execute(ctx, msg)
}

// RemoveLayoutCellCommand deletes a cell and recomputes its layout.
type RemoveLayoutCellCommand struct {
	CellID uuid.UUID `json:"cell_id"`
}

// Type implements command.Message.
func (RemoveLayoutCellCommand) Type() string { return removeLayoutCellMessageType }

// Validate implements command.Message.
func (m RemoveLayoutCellCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.CellID, validation.By(func(value any) error {
			if id, _ := value.(uuid.UUID); id == uuid.Nil {
				return validation.NewError("grid.layouts.cell.remove.cell_id_required", "cell_id is required")
			}
			return nil
		})),
	)
}

// RemoveLayoutCellHandler executes RemoveLayoutCellCommand.
type RemoveLayoutCellHandler struct {
	inner *commands.Handler[RemoveLayoutCellCommand]
}

// CellLookup finds the layout owning a cell.
type CellLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*layouts.Cell, error)
}

// NewRemoveLayoutCellHandler wires the handler to the layout service. cells
// resolves the owning layout so it can be recomputed after the delete.
func NewRemoveLayoutCellHandler(service layouts.Service, cells CellLookup, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[RemoveLayoutCellCommand]) *RemoveLayoutCellHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg RemoveLayoutCellCommand) error {
		if !gates.enabled() {
			return ErrLayoutsCommandsDisabled
		}
		cell, err := cells.GetByID(ctx, msg.CellID)
		if err != nil {
			return err
		}
		if err := service.RemoveCell(ctx, msg.CellID); err != nil {
			return err
		}
		if _, err := service.RecomputeGrid(ctx, cell.LayoutID); err != nil {
			return err
		}
		logging.WithLayoutContext(baseLogger, cell.LayoutID.String(), "").
			Info("layouts.command.cell.removed", "cell_id", msg.CellID)
		return nil
	}

	handlerOpts := []commands.HandlerOption[RemoveLayoutCellCommand]{
		commands.WithLogger[RemoveLayoutCellCommand](baseLogger),
		commands.WithOperation[RemoveLayoutCellCommand]("layouts.cell.remove"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &RemoveLayoutCellHandler{
		inner: commands.NewHandler[RemoveLayoutCellCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[RemoveLayoutCellCommand].
func (h *RemoveLayoutCellHandler) Execute(ctx context.Context, msg RemoveLayoutCellCommand) error {
	return h.inner.Execute(ctx, msg)
}
