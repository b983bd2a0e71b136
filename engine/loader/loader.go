package loader

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-actor/engine/model"
)

// LoaderBackendType identifies the description file format backend to use.
type LoaderBackendType int

const (
	// BackendTypeYAML selects the YAML object-set description backend.
	BackendTypeYAML LoaderBackendType = iota

	// BackendTypeGLTF selects the glTF 2.0 backend, which turns the first skin into the
	// skeleton and every animation clip into a group.
	BackendTypeGLTF
)

// ErrModelNotFound is returned when no description file exists for a model identifier.
var ErrModelNotFound = errors.New("loader: model not found")

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	dir    string
	logger *log.Logger

	modelCache map[string]model.Model

	backend loaderBackend

	watcher  *watcher
	onReload func(id string)
}

// Loader defines the public-facing interface for loading and caching object-set descriptions.
// It abstracts the file format behind a backend, caches loaded models by identifier and can
// watch its directory to drop cache entries whose files change.
type Loader interface {
	// LoadObjects resolves a model identifier to a Model, loading <dir>/<id>.<ext> on a cache miss.
	// With baseOnly set the returned model carries no renderables or particle systems.
	//
	// Parameters:
	//   - id: the model identifier, or a path with an extension
	//   - baseOnly: strip renderables and particle systems
	//
	// Returns:
	//   - model.Model: the loaded model
	//   - error: ErrModelNotFound or a wrapped parse error
	LoadObjects(id string, baseOnly bool) (model.Model, error)

	// Get retrieves a cached model by identifier. Returns nil if not cached.
	//
	// Parameters:
	//   - id: the cache key to look up
	//
	// Returns:
	//   - model.Model: the cached model or nil
	Get(id string) model.Model

	// Models returns a copy of the model cache.
	//
	// Returns:
	//   - map[string]model.Model: all cached models keyed by identifier
	Models() map[string]model.Model

	// Invalidate drops a model from the cache so the next LoadObjects reads it again.
	//
	// Parameters:
	//   - id: the cache key to drop
	Invalidate(id string)

	// Watch starts watching the loader directory; changed description files are
	// invalidated and reported to the reload callback. Calling Watch twice is a no-op.
	//
	// Returns:
	//   - error: error if the watcher cannot be created
	Watch() error

	// Close stops the watcher, if any.
	//
	// Returns:
	//   - error: error from closing the watcher
	Close() error
}

var _ Loader = &loader{}

// NewLoader creates a new Loader instance with the specified backend type and options applied.
//
// Parameters:
//   - backendType: the type of loader backend to use (e.g., BackendTypeYAML)
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided backend and options
func NewLoader(backendType LoaderBackendType, options ...LoaderBuilderOption) Loader {
	l := &loader{
		mu:         sync.RWMutex{},
		dir:        ".",
		logger:     log.Default(),
		modelCache: make(map[string]model.Model),
	}

	switch backendType {
	case BackendTypeYAML:
		l.backend = newYAMLLoaderBackend()
	case BackendTypeGLTF:
		l.backend = newGLTFLoaderBackend()
	}

	for _, option := range options {
		option(l)
	}
	return l
}

func (l *loader) LoadObjects(id string, baseOnly bool) (model.Model, error) {
	m, err := l.load(id)
	if err != nil {
		return nil, err
	}
	if baseOnly {
		return m.BaseCopy(), nil
	}
	return m, nil
}

func (l *loader) load(id string) (model.Model, error) {
	l.mu.RLock()
	if cached, ok := l.modelCache[id]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	path, err := l.resolvePath(id)
	if err != nil {
		return nil, err
	}

	m, err := l.backend.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	l.mu.Lock()
	l.modelCache[id] = m
	l.mu.Unlock()

	l.logger.Printf("[Loader] loaded %s (%s)", id, path)
	return m, nil
}

func (l *loader) Get(id string) model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.modelCache[id]
}

func (l *loader) Models() map[string]model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make(map[string]model.Model, len(l.modelCache))
	for k, v := range l.modelCache {
		result[k] = v
	}
	return result
}

func (l *loader) Invalidate(id string) {
	l.mu.Lock()
	delete(l.modelCache, id)
	l.mu.Unlock()
}

func (l *loader) Watch() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.watcher != nil {
		return nil
	}

	w, err := newWatcher(l.backend.Extensions(), l.dir)
	if err != nil {
		return fmt.Errorf("watch %s: %w", l.dir, err)
	}
	l.watcher = w
	go l.consume(w)
	return nil
}

// consume drains watcher events until the watcher closes.
func (l *loader) consume(w *watcher) {
	for {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return
			}
			id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			l.Invalidate(id)
			l.logger.Printf("[Loader] %s changed, cache entry dropped", id)
			if l.onReload != nil {
				l.onReload(id)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			l.logger.Printf("[Loader] watch error: %v", err)
		}
	}
}

func (l *loader) Close() error {
	l.mu.Lock()
	w := l.watcher
	l.watcher = nil
	l.mu.Unlock()
	if w == nil {
		return nil
	}
	return w.Close()
}

// resolvePath maps an identifier to a description file. Identifiers with a supported
// extension are used as paths relative to the loader directory.
func (l *loader) resolvePath(id string) (string, error) {
	exts := l.backend.Extensions()
	ext := strings.ToLower(filepath.Ext(id))
	for _, e := range exts {
		if ext == e {
			path := id
			if !filepath.IsAbs(path) {
				path = filepath.Join(l.dir, id)
			}
			if _, err := os.Stat(path); err != nil {
				return "", fmt.Errorf("%w: %s", ErrModelNotFound, id)
			}
			return path, nil
		}
	}

	for _, e := range exts {
		path := filepath.Join(l.dir, id+e)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrModelNotFound, id)
}
