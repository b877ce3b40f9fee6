package logging

import (
	"maps"

	"github.com/goliatone/go-gridlayout/pkg/interfaces"
)

// WithFields attaches structured fields when the logger supports
// interfaces.FieldsLogger and returns it unchanged otherwise.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}
	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(maps.Clone(fields))
	}
	return logger
}

// WithLayoutContext tags a logger with the layout being worked on.
func WithLayoutContext(logger interfaces.Logger, layoutID, code string) interfaces.Logger {
	fields := map[string]any{}
	if layoutID != "" {
		fields[fieldLayoutID] = layoutID
	}
	if code != "" {
		fields[fieldLayoutCode] = code
	}
	return WithFields(logger, fields)
}
