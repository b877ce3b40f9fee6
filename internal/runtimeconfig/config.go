package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrStorageProviderUnknown      = errors.New("grid config: storage provider is invalid")
	ErrStorageDSNRequired          = errors.New("grid config: storage dsn is required for sql providers")
	ErrCacheTTLInvalid             = errors.New("grid config: cache ttl must be positive when cache is enabled")
	ErrLayoutColumnCountInvalid    = errors.New("grid config: default column count must be between 1 and the max column count")
	ErrLayoutDefinitionCodeMissing = errors.New("grid config: layout definition code is required")
	ErrEditorThresholdInvalid      = errors.New("grid config: editor thresholds and margins must be zero or positive")
	ErrEditorVirtualSizeInvalid    = errors.New("grid config: editor virtual sizes must be positive")
	ErrCommandsTimeoutInvalid      = errors.New("grid config: command timeout must be zero or positive")
	ErrLoggingProviderRequired     = errors.New("grid config: logging provider is required when logging feature is enabled")
	ErrLoggingProviderUnknown      = errors.New("grid config: logging provider is invalid")
	ErrLoggingLevelInvalid         = errors.New("grid config: logging level is invalid")
	ErrLoggingFormatInvalid        = errors.New("grid config: logging format is invalid")
)

// Config aggregates storage, layout, editor and adapter settings for the
// grid layout module.
type Config struct {
	Enabled  bool
	Storage  StorageConfig
	Cache    CacheConfig
	Features Features
	Layouts  LayoutsConfig
	Editor   EditorConfig
	Logging  LoggingConfig
	Commands CommandsConfig
}

// StorageConfig selects the persistence backend. DSN is ignored for memory.
type StorageConfig struct {
	Provider string
	DSN      string
}

// CacheConfig controls the repository cache placed in front of bun storage.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// Features toggles optional module functionality.
type Features struct {
	Commands bool
	Logger   bool
}

// LayoutsConfig bounds layout shapes and lists layouts seeded at start.
type LayoutsConfig struct {
	DefaultColumnCount int
	MaxColumnCount     int
	Definitions        []LayoutDefinitionConfig
}

// LayoutDefinitionConfig seeds one layout.
type LayoutDefinitionConfig struct {
	Code        string
	Name        string
	Description string
	ColumnCount int
	CellSchema  map[string]any
	Cells       []CellDefinitionConfig
}

// CellDefinitionConfig seeds one cell of a layout definition.
type CellDefinitionConfig struct {
	Key           string
	WidgetType    string
	Row           int
	Column        int
	RowSpan       int
	ColSpan       int
	Pinned        bool
	Configuration map[string]any
}

// EditorConfig holds the hit-test thresholds and virtual slot geometry used
// by editor sessions. All values are in pixels.
type EditorConfig struct {
	InsertThresholdColumn int
	InsertThresholdRow    int
	InsertMargin          int
	VirtualColumnGap      int
	VirtualColumnSize     int
	VirtualRowGap         int
	VirtualRowSize        int
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// CommandsConfig captures command-layer behaviour.
type CommandsConfig struct {
	Timeout    time.Duration
	MaxRetries int
}

// DefaultConfig returns an in-memory configuration with the stock editor
// geometry.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Storage: StorageConfig{
			Provider: "memory",
		},
		Cache: CacheConfig{
			Enabled:    false,
			DefaultTTL: time.Minute,
		},
		Layouts: LayoutsConfig{
			DefaultColumnCount: 2,
			MaxColumnCount:     24,
		},
		Editor: EditorConfig{
			InsertThresholdColumn: 5,
			InsertThresholdRow:    5,
			InsertMargin:          2,
			VirtualColumnGap:      10,
			VirtualColumnSize:     30,
			VirtualRowGap:         10,
			VirtualRowSize:        20,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
		Commands: CommandsConfig{
			Timeout: 5 * time.Second,
		},
	}
}

// Validate performs consistency checks.
func (cfg Config) Validate() error {
	switch provider := normalize(cfg.Storage.Provider); provider {
	case "", "memory":
	case "sqlite", "postgres":
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return fmt.Errorf("%w: %s", ErrStorageDSNRequired, provider)
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, provider)
	}
	if cfg.Cache.Enabled && cfg.Cache.DefaultTTL <= 0 {
		return ErrCacheTTLInvalid
	}

	maxColumns := cfg.Layouts.MaxColumnCount
	if maxColumns <= 0 || cfg.Layouts.DefaultColumnCount < 1 || cfg.Layouts.DefaultColumnCount > maxColumns {
		return ErrLayoutColumnCountInvalid
	}
	for idx, def := range cfg.Layouts.Definitions {
		if strings.TrimSpace(def.Code) == "" {
			return fmt.Errorf("%w: definition %d", ErrLayoutDefinitionCodeMissing, idx)
		}
	}

	if err := cfg.Editor.Validate(); err != nil {
		return err
	}
	if cfg.Commands.Timeout < 0 {
		return ErrCommandsTimeoutInvalid
	}

	if cfg.Features.Logger {
		provider := normalize(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

// Validate rejects negative thresholds and empty virtual slots.
func (cfg EditorConfig) Validate() error {
	if cfg.InsertThresholdColumn < 0 || cfg.InsertThresholdRow < 0 || cfg.InsertMargin < 0 ||
		cfg.VirtualColumnGap < 0 || cfg.VirtualRowGap < 0 {
		return ErrEditorThresholdInvalid
	}
	if cfg.VirtualColumnSize <= 0 || cfg.VirtualRowSize <= 0 {
		return ErrEditorVirtualSizeInvalid
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
