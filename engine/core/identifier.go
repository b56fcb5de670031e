package core

import (
	"strings"

	"github.com/google/uuid"
)

// UUID is a 128-bit identifier. Freshly generated values are version 4 with
// the RFC 4122 variant bits set.
type UUID struct {
	value uuid.UUID
}

// NewUUID generates a random v4 UUID.
func NewUUID() UUID {
	return UUID{value: uuid.New()}
}

// ParseUUID accepts the canonical 36-character form, optionally wrapped in
// braces. Anything else yields ok=false.
func ParseUUID(s string) (UUID, bool) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
		s = s[1 : len(s)-1]
	}
	if len(s) != 36 {
		return UUID{}, false
	}
	v, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, false
	}
	return UUID{value: v}, true
}

// Bytes returns the 16 raw bytes, big-endian field order.
func (u UUID) Bytes() [16]byte {
	return u.value
}

// IsNil reports whether the UUID is all zero.
func (u UUID) IsNil() bool {
	return u.value == uuid.Nil
}

func (u UUID) String() string {
	return u.value.String()
}
