// Package systems implements the phased frame pipeline: phase entities
// with a strict dependency chain, system registration per phase, and the
// built-in transform and coroutine systems.
package systems

import (
	"github.com/raoe/engine/engine/core"
	"github.com/raoe/engine/engine/ecs"
)

// Phase names one pipeline slot.
type Phase string

// Startup chain, run once in order during the first progress call.
const (
	PhaseOnPreInit        Phase = "on_pre_init"
	PhaseOnWindowStart    Phase = "on_window_start"
	PhaseOnRenderStart    Phase = "on_render_start"
	PhaseOnScriptInit     Phase = "on_script_init"
	PhaseOnScriptPostInit Phase = "on_script_post_init"
	PhaseOnEngineInit     Phase = "on_engine_init"
	PhaseOnGamePreStart   Phase = "on_game_pre_start"
	PhaseOnGameStart      Phase = "on_game_start"
)

// Render chain, run every tick.
const (
	PhaseRenderBegin  Phase = "render_begin"
	PhasePollWindow   Phase = "poll_window"
	PhasePrepareFrame Phase = "prepare_frame"
	PhaseDraw         Phase = "draw"
	PhasePostDraw     Phase = "post_draw"
	PhasePresent      Phase = "present"
	PhaseRenderEnd    Phase = "render_end"
)

// StartupChain lists the startup phases; each depends on its predecessor.
func StartupChain() []Phase {
	return []Phase{
		PhaseOnPreInit,
		PhaseOnWindowStart,
		PhaseOnRenderStart,
		PhaseOnScriptInit,
		PhaseOnScriptPostInit,
		PhaseOnEngineInit,
		PhaseOnGamePreStart,
		PhaseOnGameStart,
	}
}

// RenderChain lists the per-tick phases; each depends on its predecessor.
func RenderChain() []Phase {
	return []Phase{
		PhaseRenderBegin,
		PhasePollWindow,
		PhasePrepareFrame,
		PhaseDraw,
		PhasePostDraw,
		PhasePresent,
		PhaseRenderEnd,
	}
}

// PhaseInfo is the component carried by a phase entity. DependsOn names
// the single predecessor phase, or "" for the chain head.
type PhaseInfo struct {
	Name      Phase
	DependsOn Phase
}

// registerPhases creates one named entity per phase, chained onto its
// predecessor. Re-registering an existing phase is rejected.
func registerPhases(world *ecs.World, chain []Phase) {
	previous := Phase("")
	for _, name := range chain {
		entityName := "phase/" + string(name)
		if world.Lookup(entityName) != ecs.Nil {
			core.Panicf("phase %q registered twice", name)
		}
		e := world.CreateNamedEntity(entityName)
		ecs.Set(world, e, PhaseInfo{Name: name, DependsOn: previous})
		previous = name
	}
}

// sortPhases orders the chain's phases topologically from the PhaseInfo
// dependency edges stored in the world.
func sortPhases(world *ecs.World, chain []Phase) []Phase {
	members := make(map[Phase]bool, len(chain))
	for _, p := range chain {
		members[p] = true
	}

	dependents := make(map[Phase][]Phase)
	indegree := make(map[Phase]int)
	ecs.Each(world, func(e ecs.Entity, info *PhaseInfo) {
		if !members[info.Name] {
			return
		}
		if _, ok := indegree[info.Name]; !ok {
			indegree[info.Name] = 0
		}
		if info.DependsOn != "" && members[info.DependsOn] {
			dependents[info.DependsOn] = append(dependents[info.DependsOn], info.Name)
			indegree[info.Name]++
		}
	})

	var ready []Phase
	for p, deg := range indegree {
		if deg == 0 {
			ready = append(ready, p)
		}
	}

	var order []Phase
	for len(ready) > 0 {
		p := ready[0]
		ready = ready[1:]
		order = append(order, p)
		for _, next := range dependents[p] {
			indegree[next]--
			if indegree[next] == 0 {
				ready = append(ready, next)
			}
		}
	}
	if len(order) != len(indegree) {
		core.Panicf("phase dependency cycle detected")
	}
	return order
}
