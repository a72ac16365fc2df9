// Package registry collects codec.Format adapters under their names and
// sniffs input headers against them in a stable order, the way the
// teacher's top-level pack.go composes independently-built MatchFinder and
// Parser strategies into one selectable set rather than hardcoding a
// single choice.
package registry

import "github.com/retrolz/retrolz/codec"

// Registry maps a format name to its adapter.
type Registry struct {
	order []string
	byName map[string]codec.Format
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{byName: make(map[string]codec.Format)}
}

// Register adds f under f.Name(). Registering the same name twice replaces
// the earlier adapter but keeps its original position in identification
// order.
func (r *Registry) Register(f codec.Format) {
	name := f.Name()
	if _, ok := r.byName[name]; !ok {
		r.order = append(r.order, name)
	}
	r.byName[name] = f
}

// Lookup returns the adapter registered under name.
func (r *Registry) Lookup(name string) (codec.Format, bool) {
	f, ok := r.byName[name]
	return f, ok
}

// Names returns every registered format name in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Identify runs every registered adapter's Identify against header in
// registration order and returns the first match.
func (r *Registry) Identify(header []byte) (codec.Format, bool) {
	for _, name := range r.order {
		f := r.byName[name]
		if f.Identify(header) {
			return f, true
		}
	}
	return nil, false
}
