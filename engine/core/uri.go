package core

import "strings"

// URI is a parsed RFC 3986 style reference. Unlike net/url it keeps a bare
// "scheme:path" form with an empty host and preserves "[ipv6]" hosts
// literally, which is what the asset addressing layer expects.
type URI struct {
	Scheme   string
	UserInfo string
	Host     string
	Port     string
	Path     string
	Query    string
	Fragment string
}

// ParseURI splits s into its URI components. Both "scheme://authority/path"
// and "scheme:path" forms are recognized.
func ParseURI(s string) URI {
	var u URI

	if idx := strings.Index(s, "#"); idx >= 0 {
		u.Fragment = s[idx+1:]
		s = s[:idx]
	}
	if idx := strings.Index(s, "?"); idx >= 0 {
		u.Query = s[idx+1:]
		s = s[:idx]
	}

	if idx := strings.Index(s, "://"); idx >= 0 {
		u.Scheme = s[:idx]
		rest := s[idx+3:]

		authority := rest
		if slash := strings.Index(rest, "/"); slash >= 0 {
			authority = rest[:slash]
			u.Path = rest[slash:]
		}
		parseAuthority(authority, &u)
		return u
	}

	// Bare scheme:path form.
	if idx := strings.Index(s, ":"); idx >= 0 {
		u.Scheme = s[:idx]
		u.Path = s[idx+1:]
		return u
	}

	u.Path = s
	return u
}

func parseAuthority(authority string, u *URI) {
	if at := strings.LastIndex(authority, "@"); at >= 0 {
		u.UserInfo = authority[:at]
		authority = authority[at+1:]
	}

	// Bracketed IPv6 literals keep their brackets; the port follows the
	// closing bracket.
	if strings.HasPrefix(authority, "[") {
		if end := strings.Index(authority, "]"); end >= 0 {
			u.Host = authority[:end+1]
			rest := authority[end+1:]
			if strings.HasPrefix(rest, ":") {
				u.Port = rest[1:]
			}
			return
		}
	}

	if colon := strings.LastIndex(authority, ":"); colon >= 0 {
		u.Host = authority[:colon]
		u.Port = authority[colon+1:]
		return
	}
	u.Host = authority
}

func (u URI) String() string {
	var sb strings.Builder
	if u.Scheme != "" {
		sb.WriteString(u.Scheme)
		sb.WriteString(":")
		if u.Host != "" || u.UserInfo != "" || u.Port != "" {
			sb.WriteString("//")
		}
	}
	if u.UserInfo != "" {
		sb.WriteString(u.UserInfo)
		sb.WriteString("@")
	}
	sb.WriteString(u.Host)
	if u.Port != "" {
		sb.WriteString(":")
		sb.WriteString(u.Port)
	}
	sb.WriteString(u.Path)
	if u.Query != "" {
		sb.WriteString("?")
		sb.WriteString(u.Query)
	}
	if u.Fragment != "" {
		sb.WriteString("#")
		sb.WriteString(u.Fragment)
	}
	return sb.String()
}
