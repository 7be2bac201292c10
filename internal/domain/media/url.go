package media

import (
	"net/url"
	"strings"
)

// BuildURL derives the public web path for a relative media path:
// <prefix>/<percent-encoded segment>/.../<percent-encoded filename>.
// The empty path maps to the prefix itself.
func BuildURL(prefix, rel string) string {
	if rel == "" {
		return prefix
	}
	parts := strings.Split(rel, "/")
	encoded := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		encoded = append(encoded, url.PathEscape(p))
	}
	return prefix + "/" + strings.Join(encoded, "/")
}

// ExtractPathFromURL inverts BuildURL for any URL this core produced.
// The second return value reports whether u was such a URL.
func ExtractPathFromURL(prefix, u string) (string, bool) {
	if !strings.HasPrefix(u, prefix+"/") {
		return "", false
	}
	raw := strings.TrimPrefix(u, prefix+"/")
	parts := strings.Split(raw, "/")
	decoded := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		d, err := url.PathUnescape(p)
		if err != nil {
			return "", false
		}
		decoded = append(decoded, d)
	}
	if len(decoded) == 0 {
		return "", false
	}
	return strings.Join(decoded, "/"), true
}
