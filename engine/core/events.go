package core

import (
	"sync"

	"github.com/raoe/engine/engine/containers"
)

// System internal event codes. Application should use codes beyond 255.
type SystemEventCode int

const (
	// Shuts the engine down on the next frame.
	EVENT_CODE_APPLICATION_QUIT SystemEventCode = 0x01

	// A pack entity changed state (mounted/unmounted).
	// Data is a *pack.StateChange.
	EVENT_CODE_PACK_STATE_CHANGE SystemEventCode = 0x02

	// Resized/resolution changed from the OS.
	EVENT_CODE_RESIZED SystemEventCode = 0x03

	MAX_EVENT_CODE SystemEventCode = 0xFF
)

const MAX_MESSAGE_CODES = 4096

// Size of the deferred event queue. Events fired with EventPost wait here
// until the orchestrator pumps them at the top of the next tick.
const deferredQueueSize = 512

type EventContext struct {
	Type SystemEventCode
	Data interface{}
}

// Should return true if handled, which stops propagation.
type FnOnEvent func(context EventContext) bool

type registeredEvent struct {
	listener interface{}
	callback FnOnEvent
}

type eventSystemState struct {
	registered [MAX_MESSAGE_CODES][]*registeredEvent
	deferred   *containers.RingQueue[EventContext]
}

var onceEvent sync.Once
var eventState *eventSystemState

func EventSystemInitialize() bool {
	onceEvent.Do(func() {
		eventState = &eventSystemState{
			deferred: containers.NewRingQueue[EventContext](deferredQueueSize),
		}
	})
	return eventState != nil
}

func EventSystemShutdown() error {
	if eventState == nil {
		return nil
	}
	for i := 0; i < MAX_MESSAGE_CODES; i++ {
		eventState.registered[i] = nil
	}
	return nil
}

func validEventCode(code SystemEventCode) bool {
	if code < 0 || code >= MAX_MESSAGE_CODES {
		LogError("event code %d outside [0, %d)", code, MAX_MESSAGE_CODES)
		return false
	}
	return true
}

// EventRegister subscribes the callback to the given code. Duplicate
// listener registrations for the same code are rejected.
func EventRegister(code SystemEventCode, listener interface{}, onEvent FnOnEvent) bool {
	if eventState == nil || !validEventCode(code) {
		return false
	}
	for _, e := range eventState.registered[code] {
		if e.listener == listener {
			LogWarn("EventRegister: listener already registered for code %d", code)
			return false
		}
	}
	eventState.registered[code] = append(eventState.registered[code], &registeredEvent{
		listener: listener,
		callback: onEvent,
	})
	return true
}

func EventUnregister(code SystemEventCode, listener interface{}) bool {
	if eventState == nil || !validEventCode(code) {
		return false
	}
	events := eventState.registered[code]
	for i, e := range events {
		if e.listener == listener {
			eventState.registered[code] = append(events[:i], events[i+1:]...)
			return true
		}
	}
	return false
}

// EventFire dispatches synchronously. Returns true when a listener handled
// the event.
func EventFire(context EventContext) bool {
	if eventState == nil || !validEventCode(context.Type) {
		return false
	}
	for _, e := range eventState.registered[context.Type] {
		if e.callback(context) {
			return true
		}
	}
	return false
}

// EventPost queues the event for dispatch at the start of the next tick.
// A full queue drops the event with a log, never blocks.
func EventPost(context EventContext) {
	if eventState == nil {
		return
	}
	if err := eventState.deferred.Enqueue(context); err != nil {
		LogError("EventPost: dropping event %d: %v", context.Type, err)
	}
}

// EventPump fires every deferred event queued since the last pump.
func EventPump() {
	if eventState == nil {
		return
	}
	for !eventState.deferred.IsEmpty() {
		ctx, err := eventState.deferred.Dequeue()
		if err != nil {
			return
		}
		EventFire(ctx)
	}
}
