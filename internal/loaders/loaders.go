package loaders

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Loader extracts plain text from one document format.
type Loader interface {
	// Extensions returns the file extensions this loader handles,
	// lowercase and including the leading dot.
	Extensions() []string

	// Extract converts raw file bytes to plain text.
	Extract(data []byte) (string, error)
}

// Registry selects a loader by file extension.
type Registry struct {
	byExt    map[string]Loader
	fallback Loader
}

// NewRegistry creates a registry with the given fallback loader, used
// for any extension no registered loader claims.
func NewRegistry(fallback Loader) *Registry {
	return &Registry{
		byExt:    make(map[string]Loader),
		fallback: fallback,
	}
}

// Register adds a loader for all of its extensions.
func (r *Registry) Register(loader Loader) {
	for _, ext := range loader.Extensions() {
		r.byExt[ext] = loader
	}
}

// ForPath returns the loader for the path's extension.
func (r *Registry) ForPath(path string) Loader {
	ext := strings.ToLower(filepath.Ext(path))
	if loader, ok := r.byExt[ext]; ok {
		return loader
	}
	return r.fallback
}

// Default returns a registry covering the policy document formats:
// plain text, markdown, HTML and DOCX.
func Default() *Registry {
	r := NewRegistry(NewPlaintext())
	r.Register(NewMarkdown())
	r.Register(NewHTML())
	r.Register(NewDOCX())
	return r
}

// ReadPolicy reads a policy file and extracts its text through the
// default registry.
func ReadPolicy(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	text, err := Default().ForPath(path).Extract(data)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", path, err)
	}
	return text, nil
}
