package extract

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/kandyfoma/goshopper/internal/model"
	"github.com/kandyfoma/goshopper/internal/service"
)

// Registry is an in-memory view of the stored shop templates. It satisfies
// TemplateProvider and is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	storage   service.Storage
	templates map[string]model.ShopTemplate
}

// NewRegistry creates an empty registry. storage may be nil for a purely
// in-memory registry.
func NewRegistry(storage service.Storage) *Registry {
	return &Registry{
		storage:   storage,
		templates: make(map[string]model.ShopTemplate),
	}
}

// Load replaces the in-memory view with the stored templates.
func (r *Registry) Load(ctx context.Context) error {
	if r.storage == nil {
		return nil
	}

	stored, err := r.storage.GetAllTemplates(ctx)
	if err != nil {
		return fmt.Errorf("loading shop templates: %w", err)
	}

	templates := make(map[string]model.ShopTemplate, len(stored))
	for _, t := range stored {
		templates[t.ShopID] = t
	}

	r.mu.Lock()
	r.templates = templates
	r.mu.Unlock()

	slog.Info("Loaded shop templates", "count", len(templates))
	return nil
}

// Template returns the template for a shop, if one is known.
func (r *Registry) Template(shopID string) (model.ShopTemplate, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.templates[shopID]
	return t, ok
}

// Put installs or replaces a template in the in-memory view only. Storage
// writes happen through the learning engine.
func (r *Registry) Put(template model.ShopTemplate) {
	r.mu.Lock()
	r.templates[template.ShopID] = template
	r.mu.Unlock()
}

// Count returns how many templates are loaded.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.templates)
}
