package ecs

import (
	"reflect"

	"github.com/raoe/engine/engine/core"
)

// World owns every entity and component store. All mutation happens on the
// scheduler goroutine; the world is not safe for concurrent use.
type World struct {
	metas   []entityMeta
	freeIDs []uint32
	stores  map[reflect.Type]store
	names   map[string]Entity
	quit    bool
}

func NewWorld() *World {
	return &World{
		stores: make(map[reflect.Type]store),
		names:  make(map[string]Entity),
	}
}

// CreateEntity allocates a new anonymous entity.
func (w *World) CreateEntity() Entity {
	var id uint32
	if n := len(w.freeIDs); n > 0 {
		id = w.freeIDs[n-1]
		w.freeIDs = w.freeIDs[:n-1]
	} else {
		id = uint32(len(w.metas))
		w.metas = append(w.metas, entityMeta{})
	}
	meta := &w.metas[id]
	meta.version++
	meta.alive = true
	meta.name = ""
	meta.parent = Nil
	return Entity{ID: id, Version: meta.version}
}

// CreateNamedEntity allocates an entity addressable by name. A duplicate
// name replaces the lookup entry but leaves the previous entity alive.
func (w *World) CreateNamedEntity(name string) Entity {
	e := w.CreateEntity()
	w.metas[e.ID].name = name
	if prev, ok := w.names[name]; ok && w.Alive(prev) {
		core.LogWarn("entity name %q already in use, lookup now points at the new entity", name)
	}
	w.names[name] = e
	return e
}

// Lookup resolves a named entity. Returns Nil when the name is unknown or
// the entity has since been destroyed.
func (w *World) Lookup(name string) Entity {
	e, ok := w.names[name]
	if !ok || !w.Alive(e) {
		return Nil
	}
	return e
}

// Alive reports whether the handle refers to a live entity.
func (w *World) Alive(e Entity) bool {
	if e.IsNil() || int(e.ID) >= len(w.metas) {
		return false
	}
	meta := &w.metas[e.ID]
	return meta.alive && meta.version == e.Version
}

// Name returns the entity's name, or "" for anonymous entities.
func (w *World) Name(e Entity) string {
	if !w.Alive(e) {
		return ""
	}
	return w.metas[e.ID].name
}

// SetParent links the entity under a parent for transform composition.
// Passing Nil clears the link.
func (w *World) SetParent(child, parent Entity) {
	if !w.Alive(child) {
		core.Panicf("SetParent on dead entity %v", child)
	}
	if !parent.IsNil() && !w.Alive(parent) {
		core.Panicf("SetParent to dead parent %v", parent)
	}
	w.metas[child.ID].parent = parent
}

// Parent returns the entity's parent, or Nil.
func (w *World) Parent(e Entity) Entity {
	if !w.Alive(e) {
		return Nil
	}
	p := w.metas[e.ID].parent
	if !w.Alive(p) {
		return Nil
	}
	return p
}

// DestroyEntity removes every component (firing OnRemove hooks), releases
// the name, and recycles the slot. Destroying a dead entity is a no-op.
func (w *World) DestroyEntity(e Entity) {
	if !w.Alive(e) {
		return
	}
	for _, s := range w.stores {
		s.removeEntity(w, e)
	}
	meta := &w.metas[e.ID]
	if meta.name != "" {
		if named, ok := w.names[meta.name]; ok && named == e {
			delete(w.names, meta.name)
		}
	}
	meta.alive = false
	meta.parent = Nil
	w.freeIDs = append(w.freeIDs, e.ID)
}

// EntityCount returns the number of live entities.
func (w *World) EntityCount() int {
	count := 0
	for i := range w.metas {
		if w.metas[i].alive {
			count++
		}
	}
	return count
}

// Quit asks the frame orchestrator to stop after the current tick.
func (w *World) Quit() {
	w.quit = true
}

// ShouldQuit reports whether Quit has been called.
func (w *World) ShouldQuit() bool {
	return w.quit
}
