package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-gridlayout/internal/grid"
	"github.com/goliatone/go-gridlayout/internal/layouts"
)

// EditorAPI registers layout and hit-test endpoints.
type EditorAPI struct {
	basePath string
	layouts  layouts.Service
	hit      grid.HitConfig
}

// EditorOption mutates the EditorAPI configuration.
type EditorOption func(*EditorAPI)

// NewEditorAPI constructs an EditorAPI instance.
func NewEditorAPI(opts ...EditorOption) *EditorAPI {
	api := &EditorAPI{
		basePath: "/grid/api",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithBasePath overrides the base API path (defaults to "/grid/api").
func WithBasePath(path string) EditorOption {
	return func(api *EditorAPI) {
		if api == nil {
			return
		}
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithLayoutService wires the layout service.
func WithLayoutService(service layouts.Service) EditorOption {
	return func(api *EditorAPI) {
		if api != nil {
			api.layouts = service
		}
	}
}

// WithHitConfig sets the default thresholds used by /hit-test when the
// request does not carry its own.
func WithHitConfig(cfg grid.HitConfig) EditorOption {
	return func(api *EditorAPI) {
		if api != nil {
			api.hit = cfg
		}
	}
}

// Register attaches the endpoints to the provided mux.
func (api *EditorAPI) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if api == nil {
		return fmt.Errorf("http: editor api is nil")
	}

	base := joinPath(api.basePath, "")

	api.registerLayoutRoutes(mux, base)
	api.registerCellRoutes(mux, base)
	api.registerHitTestRoutes(mux, base)

	return nil
}
