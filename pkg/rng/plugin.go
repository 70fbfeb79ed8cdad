package rng

import (
	"errors"
	"fmt"
	"sort"
)

var ErrPluginNotFound = errors.New("plugin not found")

// PluginFunc receives the generator it is registered on and the options given
// to Invoke.
type PluginFunc func(g *Generator, opts any) (any, error)

type Plugin struct {
	Name string
	Func PluginFunc
}

// Register binds fn to name on this generator, replacing any plugin already
// registered under that name.
func (g *Generator) Register(name string, fn PluginFunc) *Generator {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.plugins[name] = fn
	return g
}

// RegisterAll registers plugins in order; later entries win on name clashes.
func (g *Generator) RegisterAll(plugins ...Plugin) *Generator {
	for _, p := range plugins {
		g.Register(p.Name, p.Func)
	}
	return g
}

// Invoke calls the plugin registered under name with this generator and opts.
func (g *Generator) Invoke(name string, opts any) (any, error) {
	g.mu.RLock()
	fn, ok := g.plugins[name]
	g.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPluginNotFound, name)
	}
	return fn(g, opts)
}

func (g *Generator) Has(name string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.plugins[name]
	return ok
}

// Plugins lists registered plugin names in sorted order.
func (g *Generator) Plugins() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	names := make([]string, 0, len(g.plugins))
	for name := range g.plugins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
