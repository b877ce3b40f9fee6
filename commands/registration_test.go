package commands

import (
	"context"
	"errors"
	"testing"

	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-command/dispatcher"

	layoutscmd "github.com/goliatone/go-gridlayout/internal/commands/layouts"
	"github.com/goliatone/go-gridlayout/internal/di"
	"github.com/goliatone/go-gridlayout/internal/layouts"
	"github.com/goliatone/go-gridlayout/internal/runtimeconfig"
)

func TestRegisterContainerCommandsBuildsHandlers(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Commands = true

	registry := &recordingRegistry{}
	dispatch := &recordingDispatcher{}
	cron := &recordingCron{}

	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	result, err := RegisterContainerCommands(container, RegistrationOptions{
		Registry:         registry,
		Dispatcher:       dispatch,
		CronRegistrar:    cron.Registrar(),
		RecomputeAllCron: "@weekly",
	})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}

	if len(result.Handlers) != 4 {
		t.Fatalf("expected 4 handlers, got %d", len(result.Handlers))
	}
	if len(registry.handlers) != len(result.Handlers) {
		t.Fatalf("expected registry to record all handlers, got %d of %d", len(registry.handlers), len(result.Handlers))
	}
	if len(result.Subscriptions) != len(result.Handlers) {
		t.Fatalf("expected a subscription per handler, got %d", len(result.Subscriptions))
	}
	if len(cron.registrations) != 1 {
		t.Fatalf("expected one cron registration, got %d", len(cron.registrations))
	}
	if got := cron.registrations[0].config.Expression; got != "@weekly" {
		t.Fatalf("expected cron expression override, got %q", got)
	}

	result.Unsubscribe()
	if dispatch.unsubscribed != len(result.Handlers) {
		t.Fatalf("expected every subscription torn down, got %d", dispatch.unsubscribed)
	}
}

func TestRegisterContainerCommandsSkipsWhenDisabled(t *testing.T) {
	container, err := di.NewContainer(runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	result, err := RegisterContainerCommands(container, RegistrationOptions{Registry: &recordingRegistry{}})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}
	if len(result.Handlers) != 0 {
		t.Fatalf("expected no handlers when commands are disabled, got %d", len(result.Handlers))
	}
}

func TestRegisterContainerCommandsJoinsRegistrarErrors(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Commands = true
	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	boom := errors.New("registry offline")
	result, err := RegisterContainerCommands(container, RegistrationOptions{Registry: &recordingRegistry{err: boom}})
	if !errors.Is(err, boom) {
		t.Fatalf("expected registry error, got %v", err)
	}
	if len(result.Handlers) != 4 {
		t.Fatalf("expected handlers to be built despite registry errors, got %d", len(result.Handlers))
	}
}

func TestGoCommandDispatcherRoutesMessages(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Commands = true
	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	result, err := RegisterContainerCommands(container, RegistrationOptions{Dispatcher: GoCommandDispatcher{MaxRetries: 1}})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}
	t.Cleanup(result.Unsubscribe)

	ctx := context.Background()
	layout, err := container.LayoutService().CreateLayout(ctx, layouts.CreateLayoutInput{Code: "routed", Name: "Routed", ColumnCount: 1})
	if err != nil {
		t.Fatalf("create layout: %v", err)
	}

	for _, widget := range []string{"first", "second"} {
		if err := dispatcher.Dispatch(ctx, layoutscmd.AddLayoutCellCommand{LayoutID: layout.ID, WidgetType: widget}); err != nil {
			t.Fatalf("dispatch add %s: %v", widget, err)
		}
	}

	cells, err := container.CellRepository().ListByLayout(ctx, layout.ID)
	if err != nil {
		t.Fatalf("list cells: %v", err)
	}
	if len(cells) != 2 {
		t.Fatalf("expected 2 cells, got %d", len(cells))
	}
	if cells[1].Row != 1 || cells[1].Column != 0 {
		t.Fatalf("expected second cell on row 1, got (%d,%d)", cells[1].Row, cells[1].Column)
	}
}

func TestGoCommandDispatcherRejectsUnknownHandlers(t *testing.T) {
	if _, err := (GoCommandDispatcher{}).RegisterCommand(struct{}{}); err == nil {
		t.Fatal("expected error for unsupported handler")
	}
}

type recordingRegistry struct {
	handlers []any
	err      error
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	r.handlers = append(r.handlers, handler)
	return r.err
}

type recordingDispatcher struct {
	handlers     []any
	unsubscribed int
}

func (d *recordingDispatcher) RegisterCommand(handler any) (CommandSubscription, error) {
	d.handlers = append(d.handlers, handler)
	return recordingSubscription{dispatcher: d}, nil
}

type recordingSubscription struct {
	dispatcher *recordingDispatcher
}

func (s recordingSubscription) Unsubscribe() {
	s.dispatcher.unsubscribed++
}

type cronRegistration struct {
	config  command.HandlerConfig
	handler func() error
}

type recordingCron struct {
	registrations []cronRegistration
}

func (c *recordingCron) Registrar() CronRegistrar {
	return func(cfg command.HandlerConfig, handler any) error {
		var fn func() error
		if h, ok := handler.(func() error); ok {
			fn = h
		}
		c.registrations = append(c.registrations, cronRegistration{
			config:  cfg,
			handler: fn,
		})
		return nil
	}
}
