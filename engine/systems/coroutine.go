package systems

import (
	"github.com/raoe/engine/engine/components"
	"github.com/raoe/engine/engine/ecs"
	"github.com/raoe/engine/engine/task"
)

// SetupCoroutines installs the hook pairing coroutine lifetime with host
// entity lifetime: destroying the entity cancels the task.
func SetupCoroutines(world *ecs.World) {
	ecs.OnRemove(world, func(w *ecs.World, e ecs.Entity, c *components.CoroutineBox) {
		c.Box.Cancel()
	})
}

// StartCoroutine launches a task on a fresh entity. The body runs for the
// first time during the next coroutine pump.
func StartCoroutine(world *ecs.World, t task.Task) ecs.Entity {
	e := world.CreateEntity()
	ecs.Set(world, e, components.CoroutineBox{Box: task.Start(t)})
	return e
}

// PumpCoroutines advances every live coroutine by one scheduling step and
// destroys the hosts of completed tasks. The host set is snapshotted before
// any task resumes, so a task started during the pump is first resumed on
// the next pump. Runs once per tick, before the render chain.
func PumpCoroutines(world *ecs.World, _ float64) {
	var hosts []ecs.Entity
	ecs.Each(world, func(e ecs.Entity, _ *components.CoroutineBox) {
		hosts = append(hosts, e)
	})
	for _, e := range hosts {
		c, ok := ecs.Get[components.CoroutineBox](world, e)
		if !ok {
			continue
		}
		if !c.Box.Invoke() {
			world.DestroyEntity(e)
		}
	}
}
