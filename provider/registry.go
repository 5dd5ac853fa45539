package provider

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/foundry-9/quilltap-providers/model"
)

// Registry holds the plugin descriptors available to a host. Hosts create
// their own registry and register the plugins they want; there is no
// package-level singleton.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]*model.Plugin
}

// NewRegistry creates an empty plugin registry.
func NewRegistry() *Registry {
	return &Registry{plugins: make(map[string]*model.Plugin)}
}

// Register adds a plugin descriptor. Duplicate or empty ids are rejected.
func (r *Registry) Register(p *model.Plugin) error {
	if p == nil || p.Metadata.ID == "" {
		return fmt.Errorf("plugin must have an id")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.plugins[p.Metadata.ID]; exists {
		return fmt.Errorf("plugin already registered: %s", p.Metadata.ID)
	}
	r.plugins[p.Metadata.ID] = p
	return nil
}

// Lookup returns the plugin registered under id.
func (r *Registry) Lookup(id string) (*model.Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plugins[id]
	return p, ok
}

// IDs returns all registered plugin ids, sorted.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.plugins))
	for id := range r.plugins {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// RegisterBuiltins registers every plugin this module ships. Each plugin
// gets a child logger tagged with its provider id.
func RegisterBuiltins(r *Registry, log zerolog.Logger) error {
	builtins := []*model.Plugin{
		OpenRouterPlugin(log.With().Str("provider", "openrouter").Logger()),
		OpenAIPlugin(log.With().Str("provider", "openai").Logger()),
	}
	for _, p := range builtins {
		if err := r.Register(p); err != nil {
			return err
		}
	}
	return nil
}
