package loader

import (
	"io"

	"github.com/Carmen-Shannon/oxy-actor/engine/model"
)

// loaderBackend defines the generic interface for loading object-set descriptions from files
// or streams. Concrete implementations (e.g., yamlLoaderBackend) handle format-specific details.
type loaderBackend interface {
	// Load reads and converts the description file at path.
	//
	// Parameters:
	//   - path: the file path to load
	//
	// Returns:
	//   - model.Model: the loaded model
	//   - error: error if loading fails
	Load(path string) (model.Model, error)

	// LoadReader reads and converts a description from a reader stream.
	//
	// Parameters:
	//   - name: the model name used when the description does not set one
	//   - r: the reader providing the description
	//
	// Returns:
	//   - model.Model: the loaded model
	//   - error: error if loading fails
	LoadReader(name string, r io.Reader) (model.Model, error)

	// Extensions returns the lower-case file extensions the backend reads, in lookup order.
	//
	// Returns:
	//   - []string: the extensions including the leading dot
	Extensions() []string
}
