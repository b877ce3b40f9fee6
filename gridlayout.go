package gridlayout

import (
	"errors"
	"net/http"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-gridlayout/commands"
	"github.com/goliatone/go-gridlayout/internal/di"
	"github.com/goliatone/go-gridlayout/internal/editor"
	gridhttp "github.com/goliatone/go-gridlayout/internal/http"
	"github.com/goliatone/go-gridlayout/internal/layouts"
	"github.com/goliatone/go-gridlayout/pkg/interfaces"
)

// LayoutService exports the layouts service contract.
type LayoutService = layouts.Service

type (
	Layout              = layouts.Layout
	Cell                = layouts.Cell
	LayoutGrid          = layouts.LayoutGrid
	CreateLayoutInput   = layouts.CreateLayoutInput
	UpdateLayoutInput   = layouts.UpdateLayoutInput
	DeleteLayoutRequest = layouts.DeleteLayoutRequest
	AddCellInput        = layouts.AddCellInput
	UpdateCellInput     = layouts.UpdateCellInput
	ReorderCellsInput   = layouts.ReorderCellsInput
	NotFoundError       = layouts.NotFoundError
)

// Session exports the editor session type.
type Session = editor.Session

// Option customises the module container.
type Option = di.Option

// WithLoggerProvider overrides the provider built from LoggingConfig.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return di.WithLoggerProvider(provider)
}

// WithBunDB supplies an open database handle; migrations are not applied to it.
func WithBunDB(db *bun.DB) Option {
	return di.WithBunDB(db)
}

// WithCache overrides the repository cache used in front of bun storage.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return di.WithCache(service, serializer)
}

// Module represents the top level grid layout runtime façade.
type Module struct {
	container *di.Container
	commands  *commands.RegistrationResult
}

// New constructs a module using the provided configuration. Databases opened
// from StorageConfig are migrated with the embedded migrations. When the
// commands feature is on, layout command handlers are subscribed to the
// go-command dispatcher until Close.
func New(cfg Config, opts ...Option) (*Module, error) {
	options := append([]Option{di.WithMigrations(GetMigrationsFS())}, opts...)
	container, err := di.NewContainer(cfg, options...)
	if err != nil {
		return nil, err
	}

	registration, err := commands.RegisterContainerCommands(container, commands.RegistrationOptions{
		Dispatcher: commands.GoCommandDispatcher{MaxRetries: cfg.Commands.MaxRetries},
	})
	if err != nil {
		registration.Unsubscribe()
		return nil, errors.Join(err, container.Close())
	}

	return &Module{container: container, commands: registration}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Layouts returns the layout service.
func (m *Module) Layouts() LayoutService {
	return m.container.LayoutService()
}

// Session opens an editor session for layoutID. Call Refresh before
// measuring.
func (m *Module) Session(layoutID uuid.UUID) *Session {
	return m.container.NewSession(layoutID)
}

// Commands returns the command handlers subscribed to the dispatcher.
func (m *Module) Commands() []any {
	if m.commands == nil {
		return nil
	}
	return append([]any(nil), m.commands.Handlers...)
}

// RegisterRoutes mounts the layout and hit-test JSON endpoints on mux under
// basePath ("/grid/api" when empty). Hit tests default to the editor
// thresholds from Config.
func (m *Module) RegisterRoutes(mux *http.ServeMux, basePath string) error {
	api := gridhttp.NewEditorAPI(
		gridhttp.WithBasePath(basePath),
		gridhttp.WithLayoutService(m.container.LayoutService()),
		gridhttp.WithHitConfig(di.HitConfig(m.container.Config.Editor)),
	)
	return api.Register(mux)
}

// Close drops dispatcher subscriptions and releases storage.
func (m *Module) Close() error {
	m.commands.Unsubscribe()
	return m.container.Close()
}
