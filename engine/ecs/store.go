package ecs

import "reflect"

// store is the type-erased view of a component store, used when destroying
// an entity across every component type.
type store interface {
	removeEntity(w *World, e Entity)
	hasEntity(id uint32) bool
}

type componentStore[T any] struct {
	data     map[uint32]*T
	onSet    []func(w *World, e Entity, value *T)
	onRemove []func(w *World, e Entity, value *T)
}

func (s *componentStore[T]) hasEntity(id uint32) bool {
	_, ok := s.data[id]
	return ok
}

func (s *componentStore[T]) removeEntity(w *World, e Entity) {
	value, ok := s.data[e.ID]
	if !ok {
		return
	}
	for _, hook := range s.onRemove {
		hook(w, e, value)
	}
	delete(s.data, e.ID)
}

func storeFor[T any](w *World) *componentStore[T] {
	var zero T
	t := reflect.TypeOf(zero)
	if existing, ok := w.stores[t]; ok {
		return existing.(*componentStore[T])
	}
	s := &componentStore[T]{data: make(map[uint32]*T)}
	w.stores[t] = s
	return s
}

// Set attaches (or replaces) the component value on the entity and fires the
// registered OnSet hooks.
func Set[T any](w *World, e Entity, value T) *T {
	if !w.Alive(e) {
		return nil
	}
	s := storeFor[T](w)
	ptr := &value
	s.data[e.ID] = ptr
	for _, hook := range s.onSet {
		hook(w, e, ptr)
	}
	return ptr
}

// Get returns a pointer to the entity's component of type T.
func Get[T any](w *World, e Entity) (*T, bool) {
	if !w.Alive(e) {
		return nil, false
	}
	ptr, ok := storeFor[T](w).data[e.ID]
	return ptr, ok
}

// Has reports whether the entity carries a component of type T.
func Has[T any](w *World, e Entity) bool {
	if !w.Alive(e) {
		return false
	}
	return storeFor[T](w).hasEntity(e.ID)
}

// Remove detaches the component of type T, firing OnRemove hooks.
func Remove[T any](w *World, e Entity) {
	if !w.Alive(e) {
		return
	}
	storeFor[T](w).removeEntity(w, e)
}

// Each visits every live entity carrying a component of type T. The visit
// order is unspecified; mutation of the visited component is allowed,
// creation or destruction of entities during iteration is not.
func Each[T any](w *World, visit func(e Entity, value *T)) {
	s := storeFor[T](w)
	for id, ptr := range s.data {
		e := Entity{ID: id, Version: w.metas[id].version}
		visit(e, ptr)
	}
}

// OnSet registers a hook fired after every Set of a T component.
func OnSet[T any](w *World, hook func(w *World, e Entity, value *T)) {
	s := storeFor[T](w)
	s.onSet = append(s.onSet, hook)
}

// OnRemove registers a hook fired before a T component is detached, either
// explicitly or on entity destruction.
func OnRemove[T any](w *World, hook func(w *World, e Entity, value *T)) {
	s := storeFor[T](w)
	s.onRemove = append(s.onRemove, hook)
}
