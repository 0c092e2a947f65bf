package paste

import (
	"net/url"
	"strings"
)

// IDFromPath returns the first segment of a location path, or "" when the
// path points at the root.
func IDFromPath(path string) string {
	trimmed := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		trimmed = trimmed[:i]
	}
	return trimmed
}

// PathForID returns the location of a paste; the empty id maps to root.
func PathForID(id string) string {
	return "/" + id
}

// ParseLocation accepts a bare id, a path, or a full share URL and returns
// the paste id it points at.
func ParseLocation(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if strings.Contains(trimmed, "://") {
		u, err := url.Parse(trimmed)
		if err != nil {
			return ""
		}
		return IDFromPath(u.Path)
	}
	if strings.HasPrefix(trimmed, "/") {
		return IDFromPath(trimmed)
	}
	return IDFromPath("/" + trimmed)
}

// ShareURL joins a base URL and a paste id.
func ShareURL(base, id string) string {
	return strings.TrimRight(base, "/") + PathForID(id)
}
