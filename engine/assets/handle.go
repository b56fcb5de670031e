package assets

import (
	"github.com/raoe/engine/engine/ecs"
)

// refBlock carries the two counters shared by every handle to one asset.
// The backing entity dies when strong reaches zero; the block itself is
// abandoned once weak reaches zero as well.
type refBlock struct {
	strong int
	weak   int
}

// Handle is a strong, reference-counted owner of an asset entity. Handles
// are duplicated with Clone and released with Release; the zero value is an
// empty handle. All counter mutation happens on the scheduler goroutine.
type Handle[T any] struct {
	block  *refBlock
	world  *ecs.World
	entity ecs.Entity
}

func newHandle[T any](world *ecs.World, e ecs.Entity) Handle[T] {
	return Handle[T]{
		block:  &refBlock{strong: 1},
		world:  world,
		entity: e,
	}
}

// Clone takes another unit of ownership.
func (h Handle[T]) Clone() Handle[T] {
	if h.block == nil {
		return Handle[T]{}
	}
	h.block.strong++
	return h
}

// Release drops this handle's unit of ownership. The last strong release
// destroys the backing entity. Releasing an empty handle is a no-op;
// callers must not reuse the handle afterwards.
func (h *Handle[T]) Release() {
	if h.block == nil {
		return
	}
	h.block.strong--
	if h.block.strong == 0 {
		h.world.DestroyEntity(h.entity)
	}
	h.block = nil
}

// Valid reports whether the handle still owns a live asset.
func (h Handle[T]) Valid() bool {
	return h.block != nil && h.block.strong > 0 && h.world.Alive(h.entity)
}

// Get returns the asset component, or nil when the handle is invalid.
func (h Handle[T]) Get() *T {
	if !h.Valid() {
		return nil
	}
	ptr, ok := ecs.Get[T](h.world, h.entity)
	if !ok {
		return nil
	}
	return ptr
}

// Meta returns the asset's bookkeeping component, or nil.
func (h Handle[T]) Meta() *Meta {
	if !h.Valid() {
		return nil
	}
	ptr, ok := ecs.Get[Meta](h.world, h.entity)
	if !ok {
		return nil
	}
	return ptr
}

// Entity exposes the backing entity for systems that need to attach more
// components to the asset.
func (h Handle[T]) Entity() ecs.Entity {
	return h.entity
}

// Weak derives a non-owning handle from a strong one.
func (h Handle[T]) Weak() WeakHandle[T] {
	if h.block == nil {
		return WeakHandle[T]{}
	}
	h.block.weak++
	return WeakHandle[T]{block: h.block, world: h.world, entity: h.entity}
}

// WeakHandle observes an asset without keeping it alive. It can never be
// dereferenced directly; Upgrade it to a strong handle first.
type WeakHandle[T any] struct {
	block  *refBlock
	world  *ecs.World
	entity ecs.Entity
}

func (h WeakHandle[T]) Clone() WeakHandle[T] {
	if h.block == nil {
		return WeakHandle[T]{}
	}
	h.block.weak++
	return h
}

func (h *WeakHandle[T]) Release() {
	if h.block == nil {
		return
	}
	h.block.weak--
	h.block = nil
}

// Valid reports whether an Upgrade would currently succeed.
func (h WeakHandle[T]) Valid() bool {
	return h.block != nil && h.block.strong > 0 && h.world.Alive(h.entity)
}

// Upgrade promotes the weak handle to a strong one. It fails once the last
// strong handle has been released, even if the entity id were reused.
func (h WeakHandle[T]) Upgrade() (Handle[T], bool) {
	if !h.Valid() {
		return Handle[T]{}, false
	}
	h.block.strong++
	return Handle[T]{block: h.block, world: h.world, entity: h.entity}, true
}
