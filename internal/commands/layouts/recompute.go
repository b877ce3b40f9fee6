package layoutscmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	command "github.com/goliatone/go-command"
	"github.com/google/uuid"

	"github.com/goliatone/go-gridlayout/internal/commands"
	"github.com/goliatone/go-gridlayout/internal/layouts"
	"github.com/goliatone/go-gridlayout/internal/logging"
	"github.com/goliatone/go-gridlayout/pkg/interfaces"
)

const recomputeLayoutMessageType = "grid.layouts.recompute"

// RecomputeLayoutCommand reruns placement for a layout and persists the
// auto-assigned positions.
type RecomputeLayoutCommand struct {
	LayoutID uuid.UUID `json:"layout_id"`
}

// Type implements command.Message.
func (RecomputeLayoutCommand) Type() string { return recomputeLayoutMessageType }

// Validate implements command.Message.
func (m RecomputeLayoutCommand) Validate() error {
	errs := validation.Errors{}
	if m.LayoutID == uuid.Nil {
		errs["layout_id"] = validation.NewError("grid.layouts.recompute.layout_id_required", "layout_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RecomputeLayoutHandler executes RecomputeLayoutCommand.
type RecomputeLayoutHandler struct {
	inner *commands.Handler[RecomputeLayoutCommand]
}

// NewRecomputeLayoutHandler wires the handler to the layout service.
func NewRecomputeLayoutHandler(service layouts.Service, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[RecomputeLayoutCommand]) *RecomputeLayoutHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg RecomputeLayoutCommand) error {
		if !gates.enabled() {
			return ErrLayoutsCommandsDisabled
		}
		result, err := service.RecomputeGrid(ctx, msg.LayoutID)
		if err != nil {
			return err
		}
		logging.WithLayoutContext(baseLogger, msg.LayoutID.String(), result.Layout.Code).
			Info("layouts.command.recomputed", "rows", result.Grid.RowCount, "columns", result.Grid.ColumnCount)
		return nil
	}

	handlerOpts := []commands.HandlerOption[RecomputeLayoutCommand]{
		commands.WithLogger[RecomputeLayoutCommand](baseLogger),
		commands.WithOperation[RecomputeLayoutCommand]("layouts.recompute"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &RecomputeLayoutHandler{
		inner: commands.NewHandler[RecomputeLayoutCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[RecomputeLayoutCommand].
func (h *RecomputeLayoutHandler) Execute(ctx context.Context, msg RecomputeLayoutCommand) error {
	return h.inner.Execute(ctx, msg)
}

// CLIHandler exposes the handler to CLI integrations.
func (h *RecomputeLayoutHandler) CLIHandler() any {
	return h
}

// CLIOptions describes the CLI metadata.
func (h *RecomputeLayoutHandler) CLIOptions() command.CLIConfig {
	return command.CLIConfig{
		Path:        []string{"layouts", "recompute"},
		Group:       "layouts",
		Description: "Recompute cell placement for one layout",
	}
}
