package loader

import (
	"log"

	"github.com/Carmen-Shannon/oxy-actor/engine/model"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithDirectory is an option builder that sets the directory description files are read from.
//
// Parameters:
//   - dir: the directory path
//
// Returns:
//   - LoaderBuilderOption: a function that applies the directory option to a loader
func WithDirectory(dir string) LoaderBuilderOption {
	return func(l *loader) {
		l.dir = dir
	}
}

// WithModel is an option builder that pre-populates the model cache with a model.
//
// Parameters:
//   - key: the cache key for the model
//   - model: the model to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the model option to a loader
func WithModel(key string, model model.Model) LoaderBuilderOption {
	return func(l *loader) {
		l.modelCache[key] = model
	}
}

// WithLogger is an option builder that overrides the diagnostics destination.
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - LoaderBuilderOption: a function that applies the logger option to a loader
func WithLogger(logger *log.Logger) LoaderBuilderOption {
	return func(l *loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithReloadCallback is an option builder that sets the function called with the identifier
// of every description file the watcher reports as changed.
//
// Parameters:
//   - fn: the callback
//
// Returns:
//   - LoaderBuilderOption: a function that applies the callback option to a loader
func WithReloadCallback(fn func(id string)) LoaderBuilderOption {
	return func(l *loader) {
		l.onReload = fn
	}
}
