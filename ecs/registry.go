package ecs

import "slices"

// Registry owns values of one type behind generational handles. Holders of
// a handle never see a destroyed value; it simply stops resolving.
type Registry[T any] struct {
	entities entityStore
	values   SparseSet[T]
}

// NewRegistry creates an empty registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{}
}

// Create stores v and returns its handle.
func (r *Registry[T]) Create(v T) Entity {
	e := r.entities.create()
	r.values.Set(e.ID, v)
	return e
}

// Get resolves a handle. The pointer stays valid until the next Create or
// Destroy.
func (r *Registry[T]) Get(e Entity) (*T, bool) {
	if r == nil || !r.entities.isAlive(e) {
		return nil, false
	}
	v := r.values.Get(e.ID)
	return v, v != nil
}

// Destroy removes the value and invalidates the handle. Returns false for
// stale or unknown handles.
func (r *Registry[T]) Destroy(e Entity) bool {
	if r == nil || !r.entities.destroy(e) {
		return false
	}
	r.values.Remove(e.ID)
	return true
}

// IsAlive reports whether a handle still resolves.
func (r *Registry[T]) IsAlive(e Entity) bool {
	return r != nil && r.entities.isAlive(e)
}

// Len returns the number of live values.
func (r *Registry[T]) Len() int {
	if r == nil {
		return 0
	}
	return r.values.Len()
}

// Entities returns live handles in ascending id order.
func (r *Registry[T]) Entities() []Entity {
	if r == nil {
		return nil
	}
	ids := append([]int(nil), r.values.IDs()...)
	slices.Sort(ids)
	out := make([]Entity, 0, len(ids))
	for _, id := range ids {
		out = append(out, Entity{ID: id, Gen: r.entities.gen[id-1]})
	}
	return out
}

// Each calls fn for every live value in ascending id order, so iteration
// does not depend on insertion or removal history.
func (r *Registry[T]) Each(fn func(e Entity, v *T)) {
	if r == nil || fn == nil {
		return
	}
	for _, e := range r.Entities() {
		if v := r.values.Get(e.ID); v != nil {
			fn(e, v)
		}
	}
}
