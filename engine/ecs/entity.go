package ecs

// Entity is a handle into a World: a slot ID plus a version tag used to
// detect stale handles after the slot is recycled.
type Entity struct {
	ID      uint32
	Version uint32
}

// Nil is the zero Entity; it never refers to a live entity.
var Nil = Entity{}

// IsNil reports whether the handle is the zero value.
func (e Entity) IsNil() bool {
	return e == Nil
}

// entityMeta stores per-slot bookkeeping.
type entityMeta struct {
	version uint32
	alive   bool
	name    string
	parent  Entity
}
