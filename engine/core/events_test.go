package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventFireAndHandle(t *testing.T) {
	require.True(t, EventSystemInitialize())

	listener := &struct{ hits int }{}
	ok := EventRegister(EVENT_CODE_APPLICATION_QUIT, listener, func(ctx EventContext) bool {
		listener.hits++
		return true
	})
	require.True(t, ok)
	defer EventUnregister(EVENT_CODE_APPLICATION_QUIT, listener)

	assert.True(t, EventFire(EventContext{Type: EVENT_CODE_APPLICATION_QUIT}))
	assert.Equal(t, 1, listener.hits)
}

func TestEventDuplicateListenerRejected(t *testing.T) {
	require.True(t, EventSystemInitialize())

	listener := &struct{}{}
	require.True(t, EventRegister(EVENT_CODE_RESIZED, listener, func(EventContext) bool { return false }))
	defer EventUnregister(EVENT_CODE_RESIZED, listener)

	assert.False(t, EventRegister(EVENT_CODE_RESIZED, listener, func(EventContext) bool { return false }))
}

func TestEventPostPump(t *testing.T) {
	require.True(t, EventSystemInitialize())

	listener := &struct{ hits int }{}
	require.True(t, EventRegister(EVENT_CODE_PACK_STATE_CHANGE, listener, func(ctx EventContext) bool {
		listener.hits++
		return false
	}))
	defer EventUnregister(EVENT_CODE_PACK_STATE_CHANGE, listener)

	EventPost(EventContext{Type: EVENT_CODE_PACK_STATE_CHANGE})
	EventPost(EventContext{Type: EVENT_CODE_PACK_STATE_CHANGE})
	assert.Equal(t, 0, listener.hits)

	EventPump()
	assert.Equal(t, 2, listener.hits)

	EventPump()
	assert.Equal(t, 2, listener.hits)
}

func TestEventCodeOutOfRangeRejected(t *testing.T) {
	require.True(t, EventSystemInitialize())

	listener := &struct{}{}
	noop := func(EventContext) bool { return true }

	assert.False(t, EventRegister(MAX_MESSAGE_CODES, listener, noop))
	assert.False(t, EventRegister(-1, listener, noop))
	assert.False(t, EventUnregister(MAX_MESSAGE_CODES, listener))
	assert.False(t, EventFire(EventContext{Type: MAX_MESSAGE_CODES}))
	assert.False(t, EventFire(EventContext{Type: -1}))
}
