package di

import (
	"context"
	"fmt"
	"io/fs"
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-gridlayout/internal/adapters/storage"
	"github.com/goliatone/go-gridlayout/internal/editor"
	"github.com/goliatone/go-gridlayout/internal/grid"
	"github.com/goliatone/go-gridlayout/internal/layouts"
	"github.com/goliatone/go-gridlayout/internal/logging"
	"github.com/goliatone/go-gridlayout/internal/logging/console"
	"github.com/goliatone/go-gridlayout/internal/logging/gologger"
	"github.com/goliatone/go-gridlayout/internal/runtimeconfig"
	"github.com/goliatone/go-gridlayout/pkg/interfaces"
)

// Container wires storage, logging and services based on the runtime
// configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	clock          func() time.Time

	bunDB         *bun.DB
	ownsDB        bool
	migrations    fs.FS
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	layoutRepo layouts.LayoutRepository
	cellRepo   layouts.CellRepository
	layoutSvc  layouts.Service
}

// Option mutates the container before services are built.
type Option func(*Container)

// WithLoggerProvider overrides the provider built from LoggingConfig.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithBunDB supplies an open database handle. The container does not close
// handles it did not open.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithMigrations sets the SQL migrations applied to databases the container
// opens itself.
func WithMigrations(fsys fs.FS) Option {
	return func(c *Container) {
		c.migrations = fsys
	}
}

// WithCache overrides the repository cache used in front of bun storage.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithRepositories replaces the layout and cell repositories.
func WithRepositories(layoutRepo layouts.LayoutRepository, cellRepo layouts.CellRepository) Option {
	return func(c *Container) {
		c.layoutRepo = layoutRepo
		c.cellRepo = cellRepo
	}
}

// WithClock sets the clock used by the layout service.
func WithClock(clock func() time.Time) Option {
	return func(c *Container) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// NewContainer validates cfg and builds every service it enables.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		Config:   cfg,
		cacheTTL: cfg.Cache.DefaultTTL,
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	if err := c.configureStorage(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	c.configureRepositories()

	serviceOpts := []layouts.ServiceOption{
		layouts.WithLogger(logging.LayoutsLogger(c.loggerProvider)),
		layouts.WithMaxColumnCount(cfg.Layouts.MaxColumnCount),
		layouts.WithDefaultColumnCount(cfg.Layouts.DefaultColumnCount),
	}
	if c.clock != nil {
		serviceOpts = append(serviceOpts, layouts.WithClock(c.clock))
	}
	c.layoutSvc = layouts.NewService(c.layoutRepo, c.cellRepo, serviceOpts...)

	if err := c.seedDefinitions(context.Background()); err != nil {
		_ = c.Close()
		return nil, err
	}

	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}
	cfg := c.Config.Logging
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
		if err != nil {
			return fmt.Errorf("di: configure go-logger: %w", err)
		}
		c.loggerProvider = provider
	default:
		level := console.ParseLevel(cfg.Level)
		c.loggerProvider = console.NewProvider(console.Options{MinLevel: &level})
	}
	return nil
}

func (c *Container) configureStorage() error {
	if c.bunDB != nil || storage.Provider(c.Config.Storage) == storage.ProviderMemory {
		return nil
	}
	db, err := storage.Open(c.Config.Storage)
	if err != nil {
		return err
	}
	if c.migrations != nil {
		if err := storage.Migrate(context.Background(), db, c.migrations); err != nil {
			_ = db.Close()
			return err
		}
	}
	c.bunDB = db
	c.ownsDB = true
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.layoutRepo != nil && c.cellRepo != nil {
		return
	}
	switch {
	case c.bunDB != nil && c.cacheService != nil:
		c.layoutRepo = layouts.NewBunLayoutRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		c.cellRepo = layouts.NewBunCellRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	case c.bunDB != nil:
		c.layoutRepo = layouts.NewBunLayoutRepository(c.bunDB)
		c.cellRepo = layouts.NewBunCellRepository(c.bunDB)
	default:
		c.layoutRepo = layouts.NewMemoryLayoutRepository()
		c.cellRepo = layouts.NewMemoryCellRepository()
	}
}

func (c *Container) seedDefinitions(ctx context.Context) error {
	if len(c.Config.Layouts.Definitions) == 0 {
		return nil
	}
	definitions := make([]layouts.Definition, 0, len(c.Config.Layouts.Definitions))
	for _, def := range c.Config.Layouts.Definitions {
		definitions = append(definitions, toDefinition(def))
	}
	if err := c.layoutSvc.SyncDefinitions(ctx, definitions); err != nil {
		return fmt.Errorf("di: seed layout definitions: %w", err)
	}
	return nil
}

func toDefinition(cfg runtimeconfig.LayoutDefinitionConfig) layouts.Definition {
	def := layouts.Definition{
		Code:        cfg.Code,
		Name:        cfg.Name,
		ColumnCount: cfg.ColumnCount,
		CellSchema:  cfg.CellSchema,
	}
	if desc := strings.TrimSpace(cfg.Description); desc != "" {
		def.Description = &desc
	}
	for _, cell := range cfg.Cells {
		def.Cells = append(def.Cells, layouts.CellDefinition{
			Key:           cell.Key,
			WidgetType:    cell.WidgetType,
			Row:           cell.Row,
			Column:        cell.Column,
			RowSpan:       cell.RowSpan,
			ColSpan:       cell.ColSpan,
			Pinned:        cell.Pinned,
			Configuration: cell.Configuration,
		})
	}
	return def
}

// HitConfig converts the editor configuration into hit-test thresholds.
func HitConfig(cfg runtimeconfig.EditorConfig) grid.HitConfig {
	return grid.HitConfig{
		InsertThresholdColumn: cfg.InsertThresholdColumn,
		InsertThresholdRow:    cfg.InsertThresholdRow,
		InsertMargin:          cfg.InsertMargin,
		VirtualColumnGap:      cfg.VirtualColumnGap,
		VirtualColumnSize:     cfg.VirtualColumnSize,
		VirtualRowGap:         cfg.VirtualRowGap,
		VirtualRowSize:        cfg.VirtualRowSize,
	}
}

// NewSession opens an editor session for layoutID using the configured
// thresholds.
func (c *Container) NewSession(layoutID uuid.UUID) *editor.Session {
	return editor.NewSession(c.layoutSvc, layoutID, HitConfig(c.Config.Editor),
		editor.WithLogger(logging.EditorLogger(c.loggerProvider)))
}

// LayoutService returns the layout service.
func (c *Container) LayoutService() layouts.Service {
	return c.layoutSvc
}

// CellRepository returns the cell repository backing the layout service.
func (c *Container) CellRepository() layouts.CellRepository {
	return c.cellRepo
}

// LoggerProvider returns the configured provider, nil when logging is off.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// BunDB returns the database handle, nil for memory storage.
func (c *Container) BunDB() *bun.DB {
	return c.bunDB
}

// Close closes the database when the container opened it.
func (c *Container) Close() error {
	if !c.ownsDB || c.bunDB == nil {
		return nil
	}
	err := c.bunDB.Close()
	c.bunDB = nil
	return err
}
