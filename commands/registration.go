package commands

import (
	"errors"
	"fmt"
	"strings"

	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"

	internalcommands "github.com/goliatone/go-gridlayout/internal/commands"
	layoutscmd "github.com/goliatone/go-gridlayout/internal/commands/layouts"
	"github.com/goliatone/go-gridlayout/internal/di"
	"github.com/goliatone/go-gridlayout/pkg/interfaces"
)

// CommandRegistry records command handlers so hosts can expose them via CLI or cron.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CommandDispatcher subscribes command handlers to a dispatcher implementation.
type CommandDispatcher interface {
	RegisterCommand(handler any) (CommandSubscription, error)
}

// CommandSubscription allows hosts to tear down dispatcher subscriptions.
type CommandSubscription interface {
	Unsubscribe()
}

// CronRegistrar registers command handlers with a cron scheduler.
type CronRegistrar func(command.HandlerConfig, any) error

// RegistrationOptions configures how handlers are registered during construction.
type RegistrationOptions struct {
	Registry       CommandRegistry
	Dispatcher     CommandDispatcher
	CronRegistrar  CronRegistrar
	LoggerProvider interfaces.LoggerProvider
	// RecomputeAllCron overrides the schedule of the recompute-all handler.
	RecomputeAllCron string
}

// RegistrationResult captures the constructed command handlers and any dispatcher subscriptions.
type RegistrationResult struct {
	Handlers      []any
	Subscriptions []CommandSubscription
}

// Unsubscribe tears down every dispatcher subscription.
func (r *RegistrationResult) Unsubscribe() {
	if r == nil {
		return
	}
	for _, sub := range r.Subscriptions {
		sub.Unsubscribe()
	}
	r.Subscriptions = nil
}

// RegisterContainerCommands builds the layout command handlers exposed by the
// container and optionally registers them with registry/dispatcher/cron
// integrations. Handlers are only built when the commands feature is on.
func RegisterContainerCommands(container *di.Container, opts RegistrationOptions) (*RegistrationResult, error) {
	if container == nil {
		return &RegistrationResult{}, nil
	}

	cfg := container.Config

	provider := opts.LoggerProvider
	if provider == nil {
		provider = container.LoggerProvider()
	}

	result := &RegistrationResult{
		Handlers:      make([]any, 0),
		Subscriptions: make([]CommandSubscription, 0),
	}
	if !cfg.Features.Commands {
		return result, nil
	}

	var errs error

	register := func(handler any) {
		if handler == nil {
			return
		}
		result.Handlers = append(result.Handlers, handler)

		if opts.Registry != nil {
			if err := opts.Registry.RegisterCommand(handler); err != nil {
				errs = errors.Join(errs, err)
			}
		}

		if opts.Dispatcher != nil {
			subscription, err := opts.Dispatcher.RegisterCommand(handler)
			if err != nil {
				errs = errors.Join(errs, err)
			} else if subscription != nil {
				result.Subscriptions = append(result.Subscriptions, subscription)
			}
		}

		if opts.CronRegistrar != nil {
			if cronCmd, ok := handler.(command.CronCommand); ok {
				if err := opts.CronRegistrar(cronCmd.CronOptions(), cronCmd.CronHandler()); err != nil {
					errs = errors.Join(errs, err)
				}
			}
		}
	}

	service := container.LayoutService()
	if service == nil {
		return result, errors.New("no layout service configured")
	}

	gates := layoutscmd.FeatureGates{
		CommandsEnabled: func() bool { return cfg.Features.Commands },
	}
	logger := CommandLogger(provider, "layouts")
	timeout := cfg.Commands.Timeout

	register(layoutscmd.NewRecomputeLayoutHandler(service, logger, gates,
		internalcommands.WithTimeout[layoutscmd.RecomputeLayoutCommand](timeout)))
	register(layoutscmd.NewAddLayoutCellHandler(service, logger, gates,
		internalcommands.WithTimeout[layoutscmd.AddLayoutCellCommand](timeout)))
	register(layoutscmd.NewRemoveLayoutCellHandler(service, container.CellRepository(), logger, gates,
		internalcommands.WithTimeout[layoutscmd.RemoveLayoutCellCommand](timeout)))

	allOpts := []layoutscmd.RecomputeAllOption{
		layoutscmd.RecomputeAllWithHandlerOptions(
			internalcommands.WithTimeout[layoutscmd.RecomputeAllLayoutsCommand](timeout)),
	}
	if expr := strings.TrimSpace(opts.RecomputeAllCron); expr != "" {
		allOpts = append(allOpts, layoutscmd.RecomputeAllWithCronExpression(expr))
	}
	register(layoutscmd.NewRecomputeAllLayoutsHandler(service, logger, gates, allOpts...))

	return result, errs
}

// CommandLogger returns the logger for a command module.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	return internalcommands.CommandLogger(provider, module)
}

// GoCommandDispatcher subscribes the layout handlers to the go-command
// global dispatcher.
type GoCommandDispatcher struct {
	MaxRetries int
}

// RegisterCommand implements CommandDispatcher.
func (d GoCommandDispatcher) RegisterCommand(handler any) (CommandSubscription, error) {
	retries := runner.WithMaxRetries(max(d.MaxRetries, 0))
	switch h := handler.(type) {
	case *layoutscmd.RecomputeLayoutHandler:
		return dispatcher.SubscribeCommand(h, retries), nil
	case *layoutscmd.AddLayoutCellHandler:
		return dispatcher.SubscribeCommand(h, retries), nil
	case *layoutscmd.RemoveLayoutCellHandler:
		return dispatcher.SubscribeCommand(h, retries), nil
	case *layoutscmd.RecomputeAllLayoutsHandler:
		return dispatcher.SubscribeCommand(h, retries), nil
	default:
		return nil, fmt.Errorf("commands: unsupported handler %T", handler)
	}
}
