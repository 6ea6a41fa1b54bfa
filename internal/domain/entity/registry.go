package entity

import (
	"sort"
	"sync"
)

// Registry tracks root ports and dockables by their persistent ids.
// Entries stay until explicitly unregistered.
type Registry struct {
	mu        sync.RWMutex
	roots     map[PortID]*Port
	rootOrder []PortID
	dockables map[DockableID]*Dockable
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		roots:     make(map[PortID]*Port),
		dockables: make(map[DockableID]*Dockable),
	}
}

// RegisterRoot adds a root port. Re-registering an id replaces the previous port.
func (r *Registry) RegisterRoot(p *Port) {
	if p == nil || p.ID == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	p.Root = true
	if _, exists := r.roots[p.ID]; !exists {
		r.rootOrder = append(r.rootOrder, p.ID)
	}
	r.roots[p.ID] = p
}

// UnregisterRoot removes a root port, typically when its window closes.
func (r *Registry) UnregisterRoot(id PortID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.roots[id]; !exists {
		return
	}
	delete(r.roots, id)
	for i, rid := range r.rootOrder {
		if rid == id {
			r.rootOrder = append(r.rootOrder[:i], r.rootOrder[i+1:]...)
			break
		}
	}
}

// Root returns the root port with the given id.
func (r *Registry) Root(id PortID) *Port {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.roots[id]
}

// DefaultRoot returns the first registered root port.
func (r *Registry) DefaultRoot() *Port {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.rootOrder) == 0 {
		return nil
	}
	return r.roots[r.rootOrder[0]]
}

// Roots returns all root ports in registration order.
func (r *Registry) Roots() []*Port {
	r.mu.RLock()
	defer r.mu.RUnlock()
	roots := make([]*Port, 0, len(r.rootOrder))
	for _, id := range r.rootOrder {
		roots = append(roots, r.roots[id])
	}
	return roots
}

// RegisterDockable adds a dockable.
func (r *Registry) RegisterDockable(d *Dockable) {
	if d == nil || d.ID == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dockables[d.ID] = d
}

// UnregisterDockable removes a dockable.
func (r *Registry) UnregisterDockable(id DockableID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.dockables, id)
}

// Dockable returns the dockable with the given id.
func (r *Registry) Dockable(id DockableID) *Dockable {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.dockables[id]
}

// Dockables returns all dockables sorted by id.
func (r *Registry) Dockables() []*Dockable {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Dockable, 0, len(r.dockables))
	for _, d := range r.dockables {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
