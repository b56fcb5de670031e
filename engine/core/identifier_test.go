package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDGenerate(t *testing.T) {
	u := NewUUID()
	b := u.Bytes()

	// RFC 4122 variant and version 4 bits.
	assert.Equal(t, byte(0x80), b[8]&0xC0)
	assert.Equal(t, byte(0x40), b[6]&0xF0)

	other := NewUUID()
	assert.NotEqual(t, u, other)
}

func TestUUIDRoundTrip(t *testing.T) {
	u := NewUUID()
	parsed, ok := ParseUUID(u.String())
	require.True(t, ok)
	assert.Equal(t, u, parsed)
}

func TestUUIDParseBraces(t *testing.T) {
	u := NewUUID()
	parsed, ok := ParseUUID("{" + u.String() + "}")
	require.True(t, ok)
	assert.Equal(t, u, parsed)
}

func TestUUIDParseInvalid(t *testing.T) {
	for _, s := range []string{"", "not-a-uuid", "1234", "{}", "urn:uuid:x"} {
		_, ok := ParseUUID(s)
		assert.False(t, ok, s)
	}
}
