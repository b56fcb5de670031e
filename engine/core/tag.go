package core

import (
	"regexp"
	"strings"
)

// Tag is a namespaced identifier of the form "[prefix[#type]:]identifier".
// When no ':' is present the prefix defaults to "raoe". A tag that fails
// validation is the zero Tag, which is falsy.
type Tag struct {
	Prefix     string
	Type       string
	Identifier string
}

const TagDefaultPrefix = "raoe"

var (
	tagPrefixRe     = regexp.MustCompile(`^[a-zA-Z0-9_.#-]*$`)
	tagIdentifierRe = regexp.MustCompile(`^[a-zA-Z0-9_./-]*$`)
)

// NewTag parses s into a Tag. Invalid prefixes or identifiers yield the zero
// value rather than an error; callers test with IsValid.
func NewTag(s string) Tag {
	prefix := TagDefaultPrefix
	typ := ""
	identifier := s

	if idx := strings.Index(s, ":"); idx >= 0 {
		prefix = s[:idx]
		identifier = s[idx+1:]
		if h := strings.Index(prefix, "#"); h >= 0 {
			typ = prefix[h+1:]
			prefix = prefix[:h]
		}
	}

	if !tagPrefixRe.MatchString(prefix) || !tagIdentifierRe.MatchString(identifier) {
		return Tag{}
	}
	if identifier == "" {
		return Tag{}
	}
	return Tag{Prefix: prefix, Type: typ, Identifier: identifier}
}

// IsValid reports whether the tag carries an identifier.
func (t Tag) IsValid() bool {
	return t.Identifier != ""
}

// Matches compares two tags ignoring the type segment when either side
// leaves it empty.
func (t Tag) Matches(other Tag) bool {
	if t.Prefix != other.Prefix || t.Identifier != other.Identifier {
		return false
	}
	if t.Type == "" || other.Type == "" {
		return true
	}
	return t.Type == other.Type
}

func (t Tag) String() string {
	if !t.IsValid() {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(t.Prefix)
	if t.Type != "" {
		sb.WriteString("#")
		sb.WriteString(t.Type)
	}
	sb.WriteString(":")
	sb.WriteString(t.Identifier)
	return sb.String()
}
