package gridlayout

import "github.com/goliatone/go-gridlayout/internal/runtimeconfig"

var (
	ErrStorageProviderUnknown      = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageDSNRequired          = runtimeconfig.ErrStorageDSNRequired
	ErrCacheTTLInvalid             = runtimeconfig.ErrCacheTTLInvalid
	ErrLayoutColumnCountInvalid    = runtimeconfig.ErrLayoutColumnCountInvalid
	ErrLayoutDefinitionCodeMissing = runtimeconfig.ErrLayoutDefinitionCodeMissing
	ErrEditorThresholdInvalid      = runtimeconfig.ErrEditorThresholdInvalid
	ErrEditorVirtualSizeInvalid    = runtimeconfig.ErrEditorVirtualSizeInvalid
	ErrCommandsTimeoutInvalid      = runtimeconfig.ErrCommandsTimeoutInvalid
	ErrLoggingProviderRequired     = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown      = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid         = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid        = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config                 = runtimeconfig.Config
	StorageConfig          = runtimeconfig.StorageConfig
	CacheConfig            = runtimeconfig.CacheConfig
	Features               = runtimeconfig.Features
	LayoutsConfig          = runtimeconfig.LayoutsConfig
	LayoutDefinitionConfig = runtimeconfig.LayoutDefinitionConfig
	CellDefinitionConfig   = runtimeconfig.CellDefinitionConfig
	EditorConfig           = runtimeconfig.EditorConfig
	LoggingConfig          = runtimeconfig.LoggingConfig
	CommandsConfig         = runtimeconfig.CommandsConfig
)

// DefaultConfig returns an in-memory configuration with the stock editor
// geometry.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
