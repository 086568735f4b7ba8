package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-wishform/pkg/controller"
	"github.com/goliatone/go-wishform/pkg/form"
)

// Resource is a controller bound to one field group.
type Resource interface {
	Group() form.Group
	Actions() []controller.Action
	Inputs(action controller.Action) []string
	Do(ctx context.Context, action controller.Action) error
}

var (
	_ Resource = (*controller.WishlistController)(nil)
	_ Resource = (*controller.ProductController)(nil)
)

// ResourceRegistry stores resources by group name, remembering registration
// order for display.
type ResourceRegistry struct {
	mu        sync.RWMutex
	resources map[string]Resource
	order     []string
}

// NewResourceRegistry creates an empty registry.
func NewResourceRegistry() *ResourceRegistry {
	return &ResourceRegistry{
		resources: make(map[string]Resource),
	}
}

// Register adds a resource by its group name. Duplicate names return an error.
func (r *ResourceRegistry) Register(resource Resource) error {
	if resource == nil {
		return fmt.Errorf("orchestrator: resource is required")
	}
	name := normalizeName(resource.Group().Resource)
	if name == "" {
		return fmt.Errorf("orchestrator: resource name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.resources[name]; exists {
		return fmt.Errorf("orchestrator: resource %q already registered", name)
	}
	r.resources[name] = resource
	r.order = append(r.order, name)
	return nil
}

// MustRegister panics on registration failure.
func (r *ResourceRegistry) MustRegister(resource Resource) {
	if err := r.Register(resource); err != nil {
		panic(err)
	}
}

// Get retrieves a resource by name.
func (r *ResourceRegistry) Get(name string) (Resource, error) {
	key := normalizeName(name)
	if key == "" {
		return nil, fmt.Errorf("orchestrator: resource name is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	resource, ok := r.resources[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownResource, key)
	}
	return resource, nil
}

// List returns resource names in registration order.
func (r *ResourceRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
