package layoutscmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-gridlayout/internal/commands"
	"github.com/goliatone/go-gridlayout/internal/layouts"
	"github.com/goliatone/go-gridlayout/internal/logging"
	"github.com/goliatone/go-gridlayout/pkg/interfaces"
)

const recomputeAllLayoutsMessageType = "grid.layouts.recompute_all"

// DefaultRecomputeAllCron is the schedule used when no override is given.
const DefaultRecomputeAllCron = "@hourly"

// RecomputeAllLayoutsCommand reruns placement for every stored layout.
type RecomputeAllLayoutsCommand struct{}

// Type implements command.Message.
func (RecomputeAllLayoutsCommand) Type() string { return recomputeAllLayoutsMessageType }

// Validate implements command.Message.
func (RecomputeAllLayoutsCommand) Validate() error { return nil }

// RecomputeAllOption customises RecomputeAllLayoutsHandler.
type RecomputeAllOption func(*RecomputeAllLayoutsHandler)

// RecomputeAllWithCronExpression overrides the cron schedule.
func RecomputeAllWithCronExpression(expression string) RecomputeAllOption {
	return func(h *RecomputeAllLayoutsHandler) {
		if trimmed := strings.TrimSpace(expression); trimmed != "" {
			h.cronConfig.Expression = trimmed
		}
	}
}

// RecomputeAllWithHandlerOptions forwards options to the wrapped handler.
func RecomputeAllWithHandlerOptions(opts ...commands.HandlerOption[RecomputeAllLayoutsCommand]) RecomputeAllOption {
	return func(h *RecomputeAllLayoutsHandler) {
		h.handlerOpts = append(h.handlerOpts, opts...)
	}
}

// RecomputeAllLayoutsHandler executes RecomputeAllLayoutsCommand and can be
// registered with a cron scheduler.
type RecomputeAllLayoutsHandler struct {
	inner       *commands.Handler[RecomputeAllLayoutsCommand]
	cronConfig  command.HandlerConfig
	handlerOpts []commands.HandlerOption[RecomputeAllLayoutsCommand]
}

// NewRecomputeAllLayoutsHandler wires the handler to the layout service. A
// layout that fails to recompute does not stop the others; all failures are
// joined into the returned error.
func NewRecomputeAllLayoutsHandler(service layouts.Service, logger interfaces.Logger, gates FeatureGates, opts ...RecomputeAllOption) *RecomputeAllLayoutsHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	h := &RecomputeAllLayoutsHandler{
		cronConfig: command.HandlerConfig{Expression: DefaultRecomputeAllCron},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}

	exec := func(ctx context.Context, _ RecomputeAllLayoutsCommand) error {
		if !gates.enabled() {
			return ErrLayoutsCommandsDisabled
		}
		all, err := service.ListLayouts(ctx)
		if err != nil {
			return err
		}
		var errs []error
		for _, layout := range all {
			if _, err := service.RecomputeGrid(ctx, layout.ID); err != nil {
				logging.WithLayoutContext(baseLogger, layout.ID.String(), layout.Code).
					Warn("layouts.command.recompute_all.layout_failed", "error", err)
				errs = append(errs, fmt.Errorf("layout %s: %w", layout.Code, err))
			}
		}
		baseLogger.Info("layouts.command.recompute_all.completed", "layouts", len(all), "failed", len(errs))
		return errors.Join(errs...)
	}

	handlerOpts := []commands.HandlerOption[RecomputeAllLayoutsCommand]{
		commands.WithLogger[RecomputeAllLayoutsCommand](baseLogger),
		commands.WithOperation[RecomputeAllLayoutsCommand]("layouts.recompute_all"),
	}
	handlerOpts = append(handlerOpts, h.handlerOpts...)
	h.inner = commands.NewHandler[RecomputeAllLayoutsCommand](exec, handlerOpts...)
	return h
}

// Execute satisfies command.Commander[RecomputeAllLayoutsCommand].
func (h *RecomputeAllLayoutsHandler) Execute(ctx context.Context, msg RecomputeAllLayoutsCommand) error {
	return h.inner.Execute(ctx, msg)
}

// CronHandler satisfies command.CronCommand.
func (h *RecomputeAllLayoutsHandler) CronHandler() func() error {
	return func() error {
		return h.Execute(context.Background(), RecomputeAllLayoutsCommand{})
	}
}

// CronOptions satisfies command.CronCommand.
func (h *RecomputeAllLayoutsHandler) CronOptions() command.HandlerConfig {
	return h.cronConfig
}

// CLIHandler exposes the handler to CLI integrations.
func (h *RecomputeAllLayoutsHandler) CLIHandler() any {
	return h
}

// CLIOptions describes the CLI metadata.
func (h *RecomputeAllLayoutsHandler) CLIOptions() command.CLIConfig {
	return command.CLIConfig{
		Path:        []string{"layouts", "recompute-all"},
		Group:       "layouts",
		Description: "Recompute cell placement for every layout",
	}
}
